// Package booking builds prefilled WhatsApp links for custom cake inquiries.
package booking

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"bakery-storefront/internal/util"

	"github.com/go-playground/validator/v10"
)

const (
	// Recipient is the shop's WhatsApp number in international form.
	Recipient = "60139927122"

	deepLinkBase   = "https://wa.me/"
	inquiryHeader  = "Hi Qisti Bakery, I would like to inquire about a cake:"
	generalMessage = "Hi Qisti Bakery, I would like to know more about your cakes."
)

var (
	EventTypes = []string{"Wedding", "Engagement", "Birthday", "Corporate Event", "Other"}
	Budgets    = []string{"RM 500 - RM 1,000", "RM 1,000 - RM 2,000", "RM 2,000 - RM 3,500", "RM 3,500+"}
	Deliveries = []string{"Pickup", "COD"}
)

// InquiryForm mirrors the booking form. Contact is required so the shop
// can reply, but it is not part of the WhatsApp message.
type InquiryForm struct {
	Name      string `json:"name" validate:"required"`
	Contact   string `json:"contact" validate:"required"`
	EventType string `json:"event_type" validate:"required,event_type"`
	EventDate string `json:"event_date" validate:"required"`
	Budget    string `json:"budget" validate:"required,budget"`
	Delivery  string `json:"delivery" validate:"required,delivery"`
	Theme     string `json:"theme"`
}

// DefaultForm returns the form as first shown.
func DefaultForm() InquiryForm {
	return InquiryForm{
		EventType: EventTypes[0],
		Budget:    Budgets[0],
		Delivery:  Deliveries[0],
	}
}

// FormError lists the invalid form fields by JSON name.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	return fmt.Sprintf("invalid booking form: %s", strings.Join(names, ", "))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	util.MustRegisterValidation(v, map[string]validator.Func{
		"event_type": oneOf(EventTypes),
		"budget":     oneOf(Budgets),
		"delivery":   oneOf(Deliveries),
	})
	return v
}

func oneOf(options []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, o := range options {
			if o == value {
				return true
			}
		}
		return false
	}
}

func trimmed(f InquiryForm) InquiryForm {
	return InquiryForm{
		Name:      strings.TrimSpace(f.Name),
		Contact:   strings.TrimSpace(f.Contact),
		EventType: strings.TrimSpace(f.EventType),
		EventDate: strings.TrimSpace(f.EventDate),
		Budget:    strings.TrimSpace(f.Budget),
		Delivery:  strings.TrimSpace(f.Delivery),
		Theme:     strings.TrimSpace(f.Theme),
	}
}

// Validate checks the form and returns a *FormError on failure.
func Validate(form InquiryForm) error {
	err := validate.Struct(trimmed(form))
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate booking form: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			fields[fe.Field()] = "is required"
		} else {
			fields[fe.Field()] = "is not one of the offered options"
		}
	}
	return &FormError{Fields: fields}
}

// InquiryMessage renders the plain-text message for a form.
func InquiryMessage(form InquiryForm) string {
	form = trimmed(form)

	var b strings.Builder
	b.WriteString(inquiryHeader)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Event: %s\n", form.EventType)
	fmt.Fprintf(&b, "Date: %s\n", form.EventDate)
	fmt.Fprintf(&b, "Budget: %s\n", form.Budget)
	fmt.Fprintf(&b, "Delivery: %s\n", form.Delivery)
	fmt.Fprintf(&b, "Theme: %s\n", form.Theme)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Name: %s", form.Name)
	return b.String()
}

// BuildInquiryLink validates form and returns the WhatsApp deep link
// carrying the inquiry message.
func BuildInquiryLink(form InquiryForm) (string, error) {
	if err := Validate(form); err != nil {
		return "", err
	}
	return deepLink(InquiryMessage(form)), nil
}

// GeneralInquiryLink is the link behind the floating WhatsApp button.
func GeneralInquiryLink() string {
	return deepLink(generalMessage)
}

func deepLink(message string) string {
	q := url.Values{"text": {message}}.Encode()
	return deepLinkBase + Recipient + "?" + strings.ReplaceAll(q, "+", "%20")
}
