// ABOUTME: Contact form validation and normalization
// ABOUTME: Shapes raw contact form fields into a sparse creation payload
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Contact field limits.
const (
	maxFirstNameLen   = 30
	maxLastNameLen    = 30
	maxCompanyNameLen = 60
	maxPhotoURLLen    = 208
	maxEmails         = 10
	maxEmailLen       = 60
	maxPhones         = 10
	minPhoneLen       = 7
	maxPhoneLen       = 20
	maxStreetLen      = 100
	maxCityLen        = 50
	maxStateLen       = 50
	maxPostalCodeLen  = 10
	maxCountryLen     = 25
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactDraft holds raw contact form fields prior to validation.
// PostalCode and ZipCode are aliases for the same output field;
// PostalCode wins when both are set.
type ContactDraft struct {
	FirstName   string
	LastName    string
	CompanyName string
	PhotoURL    string
	Emails      []string
	Phones      []string
	Street      string
	City        string
	State       string
	PostalCode  string
	ZipCode     string
	Country     string
}

// ContactPayload is the normalized creation payload. Optional fields
// that ended up empty are omitted entirely rather than sent as null or
// empty strings; the API treats the payload as a sparse patch.
type ContactPayload struct {
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName,omitempty"`
	CompanyName string          `json:"companyName,omitempty"`
	PhotoURL    string          `json:"photoUrl,omitempty"`
	Emails      []string        `json:"emails,omitempty"`
	Phones      []string        `json:"phones,omitempty"`
	Address     *AddressPayload `json:"address,omitempty"`
}

type AddressPayload struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Contact validates and normalizes a contact draft. Validation is
// short-circuit, first-error-wins, in fixed field order: firstName,
// lastName, companyName, photoUrl, emails, phones, the email-or-phone
// invariant, then address fields.
func Contact(d ContactDraft) (*ContactPayload, error) {
	firstName := strings.TrimSpace(d.FirstName)
	if firstName == "" {
		return nil, errRequired("firstName", "First name is required.")
	}
	if len(firstName) > maxFirstNameLen {
		return nil, errTooLong("firstName", fmt.Sprintf("First name must be %d characters or less.", maxFirstNameLen))
	}

	lastName := strings.TrimSpace(d.LastName)
	if len(lastName) > maxLastNameLen {
		return nil, errTooLong("lastName", fmt.Sprintf("Last name must be %d characters or less.", maxLastNameLen))
	}

	companyName := strings.TrimSpace(d.CompanyName)
	if len(companyName) > maxCompanyNameLen {
		return nil, errTooLong("companyName", fmt.Sprintf("Company name must be %d characters or less.", maxCompanyNameLen))
	}

	photoURL := strings.TrimSpace(d.PhotoURL)
	if photoURL != "" {
		if len(photoURL) > maxPhotoURLLen {
			return nil, errTooLong("photoUrl", fmt.Sprintf("Photo URL must be %d characters or less.", maxPhotoURLLen))
		}
		if u, err := url.Parse(photoURL); err != nil || u.Scheme == "" || u.Host == "" {
			return nil, errInvalidFormat("photoUrl", "Photo URL must be a valid URL.")
		}
	}

	emails, err := normalizeEmails(d.Emails)
	if err != nil {
		return nil, err
	}

	phones, err := normalizePhones(d.Phones)
	if err != nil {
		return nil, err
	}

	if len(emails) == 0 && len(phones) == 0 {
		return nil, errCrossField("", "At least one email or phone number is required.")
	}

	address, err := normalizeAddress(d)
	if err != nil {
		return nil, err
	}

	return &ContactPayload{
		FirstName:   firstName,
		LastName:    lastName,
		CompanyName: companyName,
		PhotoURL:    photoURL,
		Emails:      emails,
		Phones:      phones,
		Address:     address,
	}, nil
}

func normalizeEmails(raw []string) ([]string, error) {
	if len(raw) > maxEmails {
		return nil, errOutOfRange("emails", fmt.Sprintf("You can add up to %d email addresses.", maxEmails))
	}

	emails := trimAll(raw)
	for _, email := range emails {
		if len(email) > maxEmailLen {
			return nil, errTooLong("emails", fmt.Sprintf("Each email must be %d characters or less.", maxEmailLen))
		}
		if !emailPattern.MatchString(email) {
			return nil, errInvalidFormat("emails", fmt.Sprintf("%q is not a valid email address.", email))
		}
	}

	return dedupeFold(emails), nil
}

func normalizePhones(raw []string) ([]string, error) {
	if len(raw) > maxPhones {
		return nil, errOutOfRange("phones", fmt.Sprintf("You can add up to %d phone numbers.", maxPhones))
	}

	phones := make([]string, 0, len(raw))
	for _, phone := range raw {
		phone = stripSpaces(phone)
		if phone == "" {
			continue
		}
		if len(phone) < minPhoneLen || len(phone) > maxPhoneLen {
			return nil, errOutOfRange("phones", fmt.Sprintf("Each phone number must be between %d and %d characters.", minPhoneLen, maxPhoneLen))
		}
		phones = append(phones, phone)
	}

	return dedupeExact(phones), nil
}

func normalizeAddress(d ContactDraft) (*AddressPayload, error) {
	street := strings.TrimSpace(d.Street)
	if len(street) > maxStreetLen {
		return nil, errTooLong("street", fmt.Sprintf("Street must be %d characters or less.", maxStreetLen))
	}

	city := strings.TrimSpace(d.City)
	if len(city) > maxCityLen {
		return nil, errTooLong("city", fmt.Sprintf("City must be %d characters or less.", maxCityLen))
	}

	state := strings.TrimSpace(d.State)
	if len(state) > maxStateLen {
		return nil, errTooLong("state", fmt.Sprintf("State must be %d characters or less.", maxStateLen))
	}

	postalCode := strings.TrimSpace(d.PostalCode)
	if len(postalCode) > maxPostalCodeLen {
		return nil, errTooLong("postalCode", fmt.Sprintf("Postal code must be %d characters or less.", maxPostalCodeLen))
	}

	zipCode := strings.TrimSpace(d.ZipCode)
	if len(zipCode) > maxPostalCodeLen {
		return nil, errTooLong("zipCode", fmt.Sprintf("Zip code must be %d characters or less.", maxPostalCodeLen))
	}

	// postalCode and zipCode collapse to one output field; postalCode
	// wins when both are present.
	if postalCode == "" {
		postalCode = zipCode
	}

	country := strings.TrimSpace(d.Country)
	if len(country) > maxCountryLen {
		return nil, errTooLong("country", fmt.Sprintf("Country must be %d characters or less.", maxCountryLen))
	}

	if street == "" && city == "" && state == "" && postalCode == "" && country == "" {
		return nil, nil
	}

	return &AddressPayload{
		Street:     street,
		City:       city,
		State:      state,
		PostalCode: postalCode,
		Country:    country,
	}, nil
}
