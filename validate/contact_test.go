// ABOUTME: Tests for contact validation and normalization
// ABOUTME: Covers field ordering, dedup rules, the email-or-phone invariant, and sparse payloads
package validate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContactDraft() ContactDraft {
	return ContactDraft{
		FirstName: "Ada",
		Emails:    []string{"ada@example.com"},
	}
}

func TestContact_Minimal(t *testing.T) {
	payload, err := Contact(validContactDraft())
	require.NoError(t, err)

	assert.Equal(t, "Ada", payload.FirstName)
	assert.Equal(t, []string{"ada@example.com"}, payload.Emails)
	assert.Empty(t, payload.Phones)
	assert.Nil(t, payload.Address)
}

func TestContact_Idempotent(t *testing.T) {
	draft := ContactDraft{
		FirstName: "  Ada ",
		LastName:  "Lovelace",
		Emails:    []string{" Ada@Example.com ", "ada@example.com"},
		Phones:    []string{"+1 555 010 0100"},
		Street:    "12 Analytical Way",
	}

	first, err := Contact(draft)
	require.NoError(t, err)
	second, err := Contact(draft)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestContact_SparseOmission(t *testing.T) {
	draft := validContactDraft()
	draft.LastName = ""
	draft.CompanyName = ""

	payload, err := Contact(draft)
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "lastName")
	assert.NotContains(t, string(data), "companyName")
	assert.NotContains(t, string(data), "address")
}

func TestContact_RequiredFirstName(t *testing.T) {
	draft := validContactDraft()
	draft.FirstName = "   "

	_, err := Contact(draft)
	require.Error(t, err)

	verr := AsError(err)
	require.NotNil(t, verr)
	assert.Equal(t, Required, verr.Kind)
	assert.Equal(t, "First name is required.", verr.Message)
}

func TestContact_FieldOrderFirstErrorWins(t *testing.T) {
	// Both firstName and lastName are invalid; firstName is checked
	// first, so its message is the one the caller sees.
	draft := ContactDraft{
		FirstName: strings.Repeat("a", 31),
		LastName:  strings.Repeat("b", 31),
		Emails:    []string{"ada@example.com"},
	}

	_, err := Contact(draft)
	require.Error(t, err)
	assert.Equal(t, "First name must be 30 characters or less.", err.Error())
}

func TestContact_LengthBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ContactDraft)
		message string
	}{
		{"lastName", func(d *ContactDraft) { d.LastName = strings.Repeat("x", 31) }, "Last name must be 30 characters or less."},
		{"companyName", func(d *ContactDraft) { d.CompanyName = strings.Repeat("x", 61) }, "Company name must be 60 characters or less."},
		{"photoUrl", func(d *ContactDraft) { d.PhotoURL = "https://example.com/" + strings.Repeat("x", 200) }, "Photo URL must be 208 characters or less."},
		{"street", func(d *ContactDraft) { d.Street = strings.Repeat("x", 101) }, "Street must be 100 characters or less."},
		{"city", func(d *ContactDraft) { d.City = strings.Repeat("x", 51) }, "City must be 50 characters or less."},
		{"state", func(d *ContactDraft) { d.State = strings.Repeat("x", 51) }, "State must be 50 characters or less."},
		{"postalCode", func(d *ContactDraft) { d.PostalCode = strings.Repeat("x", 11) }, "Postal code must be 10 characters or less."},
		{"zipCode", func(d *ContactDraft) { d.ZipCode = strings.Repeat("x", 11) }, "Zip code must be 10 characters or less."},
		{"country", func(d *ContactDraft) { d.Country = strings.Repeat("x", 26) }, "Country must be 25 characters or less."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validContactDraft()
			tt.mutate(&draft)

			_, err := Contact(draft)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, TooLong, AsError(err).Kind)
		})
	}
}

func TestContact_PhotoURL(t *testing.T) {
	draft := validContactDraft()
	draft.PhotoURL = "not a url"

	_, err := Contact(draft)
	require.Error(t, err)
	assert.Equal(t, InvalidFormat, AsError(err).Kind)

	draft.PhotoURL = "https://example.com/avatar.png"
	payload, err := Contact(draft)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/avatar.png", payload.PhotoURL)
}

func TestContact_EmailDedupCaseInsensitive(t *testing.T) {
	draft := validContactDraft()
	draft.Emails = []string{"A@b.com", "a@b.com"}

	payload, err := Contact(draft)
	require.NoError(t, err)

	// First occurrence wins and its casing is preserved.
	assert.Equal(t, []string{"A@b.com"}, payload.Emails)
}

func TestContact_EmailRules(t *testing.T) {
	draft := validContactDraft()

	draft.Emails = []string{"nonsense"}
	_, err := Contact(draft)
	require.Error(t, err)
	assert.Equal(t, InvalidFormat, AsError(err).Kind)

	draft.Emails = []string{strings.Repeat("a", 55) + "@example.com"}
	_, err = Contact(draft)
	require.Error(t, err)
	assert.Equal(t, "Each email must be 60 characters or less.", err.Error())

	emails := make([]string, 11)
	for i := range emails {
		emails[i] = "user@example.com"
	}
	draft.Emails = emails
	_, err = Contact(draft)
	require.Error(t, err)
	assert.Equal(t, OutOfRange, AsError(err).Kind)
	assert.Equal(t, "You can add up to 10 email addresses.", err.Error())
}

func TestContact_PhoneNormalization(t *testing.T) {
	draft := ContactDraft{
		FirstName: "Ada",
		Phones:    []string{" +1 555 010 0100 ", "+15550100100", "+1555010\t0100"},
	}

	payload, err := Contact(draft)
	require.NoError(t, err)

	// Whitespace is stripped before exact dedup, so all three collapse.
	assert.Equal(t, []string{"+15550100100"}, payload.Phones)
}

func TestContact_PhoneBounds(t *testing.T) {
	draft := ContactDraft{FirstName: "Ada", Phones: []string{"123456"}}
	_, err := Contact(draft)
	require.Error(t, err)
	assert.Equal(t, "Each phone number must be between 7 and 20 characters.", err.Error())

	phones := make([]string, 11)
	for i := range phones {
		phones[i] = "5550100100"
	}
	draft.Phones = phones
	_, err = Contact(draft)
	require.Error(t, err)
	assert.Equal(t, "You can add up to 10 phone numbers.", err.Error())
}

func TestContact_EmailOrPhoneRequired(t *testing.T) {
	draft := ContactDraft{FirstName: "Ada"}

	_, err := Contact(draft)
	require.Error(t, err)

	verr := AsError(err)
	require.NotNil(t, verr)
	assert.Equal(t, CrossFieldInvariant, verr.Kind)
	assert.Equal(t, "At least one email or phone number is required.", verr.Message)
}

func TestContact_EmptyEntriesDoNotSatisfyInvariant(t *testing.T) {
	draft := ContactDraft{
		FirstName: "Ada",
		Emails:    []string{"   ", ""},
		Phones:    []string{" \t "},
	}

	_, err := Contact(draft)
	require.Error(t, err)
	assert.Equal(t, CrossFieldInvariant, AsError(err).Kind)
}

func TestContact_PostalCodeWinsOverZip(t *testing.T) {
	draft := validContactDraft()
	draft.PostalCode = "60601"
	draft.ZipCode = "94103"

	payload, err := Contact(draft)
	require.NoError(t, err)
	require.NotNil(t, payload.Address)
	assert.Equal(t, "60601", payload.Address.PostalCode)

	draft.PostalCode = ""
	payload, err = Contact(draft)
	require.NoError(t, err)
	require.NotNil(t, payload.Address)
	assert.Equal(t, "94103", payload.Address.PostalCode)
}

func TestContact_AddressOmittedWhenEmpty(t *testing.T) {
	draft := validContactDraft()
	draft.Street = "   "
	draft.City = ""

	payload, err := Contact(draft)
	require.NoError(t, err)
	assert.Nil(t, payload.Address)
}
