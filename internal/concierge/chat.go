package concierge

import (
	"context"
	"strings"
	"sync"
	"time"

	"bakery-storefront/internal/util"

	"go.uber.org/zap"
)

const (
	WelcomeMessage = "Welcome to Qisti Bakery! I am QisAI, your personal concierge. How may I assist you with your celebration today?"
	ApologyMessage = "I apologize, but I am unable to connect at the moment. Please kindly contact us via WhatsApp for immediate assistance."
)

// QuickPrompts are offered as one-tap questions under the chat input.
var QuickPrompts = []string{
	"🎂 Wedding Cake Prices",
	"🚚 Delivery Info",
	"🎨 Custom Design",
	"📅 How to Book",
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

type Message struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

// Conversation is one visitor's chat with the concierge. The provider chat
// is started on the first message and reused afterwards.
type Conversation struct {
	adapter Adapter
	guard   util.InFlight
	logger  *zap.Logger

	mu       sync.RWMutex
	session  ChatSession
	messages []Message
	nextID   int
}

func NewConversation(adapter Adapter) *Conversation {
	c := &Conversation{
		adapter: adapter,
		logger:  util.GetLogger(),
	}
	c.appendMessage(SenderAI, WelcomeMessage)
	return c
}

// Messages returns a copy of the history, oldest first.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Busy reports whether a reply is still streaming.
func (c *Conversation) Busy() bool {
	return c.guard.Busy()
}

// Send posts text and streams the reply. Each non-empty fragment is
// appended to a single AI message and passed to onFragment. Provider
// failures end with the apology message rather than an error; a reply that
// was cut short keeps its partial text. The returned message is the last
// one added to the history.
func (c *Conversation) Send(ctx context.Context, text string, onFragment func(string)) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyPrompt
	}
	if !c.guard.TryAcquire() {
		return Message{}, ErrBusy
	}
	defer c.guard.Release()

	ctx, span := util.StartSpan(context.WithoutCancel(ctx), "Conversation.Send")
	defer span.End()

	start := time.Now()
	defer func() {
		util.ConciergeLatency.WithLabelValues("chat").Observe(time.Since(start).Seconds())
	}()

	c.appendMessage(SenderUser, text)

	session, err := c.chatSession(ctx)
	if err != nil {
		return c.fail("start", err), nil
	}

	replyID := -1
	received := 0
	for fragment, err := range session.SendMessage(ctx, text) {
		if err != nil {
			return c.fail("stream", err, zap.Int("fragments", received)), nil
		}
		if fragment == "" {
			continue
		}
		if replyID < 0 {
			replyID = c.appendMessage(SenderAI, "")
		}
		c.extendMessage(replyID, fragment)
		received++
		if onFragment != nil {
			onFragment(fragment)
		}
	}

	if replyID < 0 {
		return c.fail("empty", ErrMalformedResponse), nil
	}

	util.ConciergeRequestsTotal.WithLabelValues("chat", "ok").Inc()
	return c.message(replyID), nil
}

func (c *Conversation) chatSession(ctx context.Context) (ChatSession, error) {
	c.mu.RLock()
	s := c.session
	c.mu.RUnlock()
	if s != nil {
		return s, nil
	}

	s, err := c.adapter.StartChat(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	return s, nil
}

func (c *Conversation) fail(stage string, err error, fields ...zap.Field) Message {
	util.ConciergeRequestsTotal.WithLabelValues("chat", "error").Inc()
	c.logger.Warn("Concierge chat failed",
		append([]zap.Field{zap.String("stage", stage), zap.Error(err)}, fields...)...)

	return c.message(c.appendMessage(SenderAI, ApologyMessage))
}

func (c *Conversation) appendMessage(sender Sender, text string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.messages = append(c.messages, Message{ID: id, Text: text, Sender: sender})
	return id
}

func (c *Conversation) extendMessage(id int, fragment string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i].Text += fragment
			return
		}
	}
}

func (c *Conversation) message(id int) Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.messages {
		if m.ID == id {
			return m
		}
	}
	return Message{}
}
