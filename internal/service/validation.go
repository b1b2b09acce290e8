package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"bakery-storefront/internal/models"
	"bakery-storefront/internal/util"

	"github.com/go-playground/validator/v10"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// PickupWindow is the daily pickup range, inclusive on both ends.
type PickupWindow struct {
	Open  time.Duration
	Close time.Duration
}

// ParsePickupWindow reads "HH:MM" bounds.
func ParsePickupWindow(open, close string) (PickupWindow, error) {
	o, err := parseClock(open)
	if err != nil {
		return PickupWindow{}, fmt.Errorf("invalid pickup open time: %w", err)
	}
	c, err := parseClock(close)
	if err != nil {
		return PickupWindow{}, fmt.Errorf("invalid pickup close time: %w", err)
	}
	if c < o {
		return PickupWindow{}, fmt.Errorf("pickup window closes before it opens: %s-%s", open, close)
	}
	return PickupWindow{Open: o, Close: c}, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// DetailsValidator checks customer details at the checkout boundary.
// Dates are judged in the shop's time zone.
type DetailsValidator struct {
	validate *validator.Validate
	loc      *time.Location
	window   PickupWindow
	now      func() time.Time
}

func NewDetailsValidator(loc *time.Location, window PickupWindow) *DetailsValidator {
	dv := &DetailsValidator{
		validate: validator.New(),
		loc:      loc,
		window:   window,
		now:      time.Now,
	}

	dv.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	util.MustRegisterValidation(dv.validate, map[string]validator.Func{
		"pickup_date": dv.pickupDate,
		"pickup_time": dv.pickupTime,
	})

	return dv
}

func (dv *DetailsValidator) pickupDate(fl validator.FieldLevel) bool {
	day, err := time.ParseInLocation(dateLayout, fl.Field().String(), dv.loc)
	if err != nil {
		return false
	}
	y, m, d := dv.now().In(dv.loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, dv.loc)
	return !day.Before(today)
}

func (dv *DetailsValidator) pickupTime(fl validator.FieldLevel) bool {
	at, err := parseClock(fl.Field().String())
	if err != nil {
		return false
	}
	return at >= dv.window.Open && at <= dv.window.Close
}

// Validate returns a *ValidationError describing every failing field.
func (dv *DetailsValidator) Validate(details models.CustomerDetails) error {
	err := dv.validate.Struct(details)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate customer details: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = dv.message(fe)
	}
	return &ValidationError{Fields: fields}
}

func (dv *DetailsValidator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "pickup_date":
		return "must be today or later (YYYY-MM-DD)"
	case "pickup_time":
		return fmt.Sprintf("must be between %s and %s (HH:MM)",
			formatClock(dv.window.Open), formatClock(dv.window.Close))
	default:
		return "is invalid"
	}
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
