package booking

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledForm() InquiryForm {
	f := DefaultForm()
	f.Name = "Nur Aisyah"
	f.Contact = "012-345 6789"
	f.EventDate = "2026-12-05"
	f.Theme = "Rustic & gold, 3 tiers"
	return f
}

func TestInquiryMessage(t *testing.T) {
	expected := "Hi Qisti Bakery, I would like to inquire about a cake:\n\n" +
		"Event: Wedding\n" +
		"Date: 2026-12-05\n" +
		"Budget: RM 500 - RM 1,000\n" +
		"Delivery: Pickup\n" +
		"Theme: Rustic & gold, 3 tiers\n" +
		"\n" +
		"Name: Nur Aisyah"
	assert.Equal(t, expected, InquiryMessage(filledForm()))
	assert.NotContains(t, InquiryMessage(filledForm()), "012-345 6789")
}

func TestBuildInquiryLinkEncodesMessage(t *testing.T) {
	link, err := BuildInquiryLink(filledForm())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/60139927122?text="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%0A")
	assert.Contains(t, link, "%26")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, InquiryMessage(filledForm()), u.Query().Get("text"))
}

func TestBuildInquiryLinkRejectsInvalidForm(t *testing.T) {
	form := filledForm()
	form.Name = "  "
	form.Budget = "RM 10"
	form.Delivery = "Drone"

	_, err := BuildInquiryLink(form)
	var ferr *FormError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, map[string]string{
		"name":     "is required",
		"budget":   "is not one of the offered options",
		"delivery": "is not one of the offered options",
	}, ferr.Fields)
}

func TestThemeIsOptional(t *testing.T) {
	form := filledForm()
	form.Theme = ""
	assert.NoError(t, Validate(form))
}

func TestEveryOfferedOptionValidates(t *testing.T) {
	for _, e := range EventTypes {
		for _, b := range Budgets {
			for _, d := range Deliveries {
				form := filledForm()
				form.EventType, form.Budget, form.Delivery = e, b, d
				assert.NoError(t, Validate(form), "%s / %s / %s", e, b, d)
			}
		}
	}
}

func TestGeneralInquiryLink(t *testing.T) {
	u, err := url.Parse(GeneralInquiryLink())
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/60139927122", u.Path)
	assert.Equal(t, "Hi Qisti Bakery, I would like to know more about your cakes.", u.Query().Get("text"))
}
