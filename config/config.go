package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Cart     CartConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Catalog  CatalogConfig
	AI       AIConfig
	Observ   ObservabilityConfig
	Business BusinessConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type CartConfig struct {
	// Storage selects the durable cart backend: "memory" or "redis".
	Storage  string
	TTLHours int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	TopicReceipts string
}

type CatalogConfig struct {
	// DatabaseURL is optional. When empty the built-in menu is served.
	DatabaseURL string
}

type AIConfig struct {
	APIKey     string
	TextModel  string
	ImageModel string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type BusinessConfig struct {
	PaymentDelayMs     int
	PickupOpen         string
	PickupClose        string
	ShopTimezone       string
	SessionIdleMinutes int
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cartTTL, _ := strconv.Atoi(getEnv("CART_TTL_HOURS", "720"))
	paymentDelay, _ := strconv.Atoi(getEnv("PAYMENT_DELAY_MS", "2000"))
	sessionIdle, _ := strconv.Atoi(getEnv("SESSION_IDLE_MINUTES", "120"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Cart: CartConfig{
			Storage:  getEnv("CART_STORAGE", "memory"),
			TTLHours: cartTTL,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "")),
			TopicReceipts: getEnv("KAFKA_TOPIC_RECEIPTS", "bakery-receipts"),
		},
		Catalog: CatalogConfig{
			DatabaseURL: getEnv("CATALOG_DATABASE_URL", ""),
		},
		AI: AIConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			TextModel:  getEnv("GEMINI_TEXT_MODEL", "gemini-3-flash-preview"),
			ImageModel: getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		},
		Business: BusinessConfig{
			PaymentDelayMs:     paymentDelay,
			PickupOpen:         getEnv("PICKUP_OPEN", "10:00"),
			PickupClose:        getEnv("PICKUP_CLOSE", "20:00"),
			ShopTimezone:       getEnv("SHOP_TIMEZONE", "Asia/Kuala_Lumpur"),
			SessionIdleMinutes: sessionIdle,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, cart_storage=%s", cfg.Server.Env, cfg.Server.Port, cfg.Cart.Storage)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
