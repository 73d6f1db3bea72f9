package synth

import (
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns canned values so contact behavior is deterministic
// up to the injected rand source.
type stubProvider struct {
	email          string
	phone          string
	callingCode    string
	callingCodeErr error
}

func (s *stubProvider) FirstName(locale string) string { return "Stub" }
func (s *stubProvider) LastName(locale string) string  { return "Person" }
func (s *stubProvider) PhoneNumber(locale string) string {
	return s.phone
}
func (s *stubProvider) CallingCode(locale string) (string, error) {
	return s.callingCode, s.callingCodeErr
}
func (s *stubProvider) RawEmail(locale string) string { return s.email }
func (s *stubProvider) DateOfBirth(locale string, minAge, maxAge int) time.Time {
	return time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestContact(t *testing.T, r *rand.Rand, provider TextProvider, domains Table[string]) *ContactSynthesizer {
	t.Helper()
	contact, err := NewContactSynthesizer(r, provider, domains, testLogger())
	require.NoError(t, err)
	return contact
}

func TestNewContactSynthesizerRejectsPlaceholderOnlyDomains(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	_, err := NewContactSynthesizer(r, &stubProvider{}, Table[string]{"example.com": 1}, testLogger())
	assert.Error(t, err)
}

func TestEmailYearSuffixMatchesBirthYear(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	contact := newTestContact(t, r, &stubProvider{email: "drawn@yahoo.com", phone: "555 1234"}, Table[string]{"gmail.com": 1})

	for i := 0; i < 500; i++ {
		email := contact.Email("Giulia", "Rossi", "1985-06-15", "Italy")
		local := email[:strings.Index(email, "@")]

		suffix := trailingDigits(local)
		if suffix != "" {
			assert.Contains(t, []string{"85", "1985"}, suffix,
				"year suffix in %q must come from the birth year", email)
		}
	}
}

func trailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[i:]
}

func TestEmailRejectsPlaceholderDomains(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	// Provider insists on a placeholder domain; the local part is kept and
	// the domain comes from the weighted table instead.
	contact := newTestContact(t, r, &stubProvider{email: "keepme@example.org"}, Table[string]{"gmail.com": 1})

	for i := 0; i < 300; i++ {
		email := contact.Email("Anna", "Schmidt", "", "Germany")
		assert.NotContains(t, email, "example", "placeholder domain leaked into %q", email)
	}
}

func TestEmailFallsBackWithoutNames(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	contact := newTestContact(t, r, &stubProvider{email: "no-at-sign"}, Table[string]{"gmail.com": 1})

	for i := 0; i < 100; i++ {
		email := contact.Email("", "", "", "France")
		assert.Contains(t, email, "@", "fallback must still be an address: %q", email)
	}
}

func TestPhoneStylings(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	contact := newTestContact(t, r, &stubProvider{phone: "555 123-4567", callingCode: "+39"}, Table[string]{"gmail.com": 1})

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		phone := contact.Phone("Italy")
		assert.NotEmpty(t, phone)
		seen[phone] = true
	}
	// Four stylings over a fixed raw number collapse to four outputs.
	assert.Contains(t, seen, "+39 555 123-4567")
	assert.Contains(t, seen, "5551234567")
	assert.Contains(t, seen, "(555) 123-4567")
	assert.Contains(t, seen, "555 123-4567")
}

func TestPhoneCallingCodeFailureFallsBack(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	contact := newTestContact(t, r, &stubProvider{
		phone:          "555 1234",
		callingCodeErr: errors.New("no calling code"),
	}, Table[string]{"gmail.com": 1})

	for i := 0; i < 200; i++ {
		phone := contact.Phone("Italy")
		assert.NotEmpty(t, phone)
	}
}

func TestPhoneEmptyProviderNumber(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	contact := newTestContact(t, r, &stubProvider{phone: ""}, Table[string]{"gmail.com": 1})

	phone := contact.Phone("Italy")
	assert.NotEmpty(t, phone)
}

func TestCountryDisplayVariants(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	contact := newTestContact(t, r, &stubProvider{}, Table[string]{"gmail.com": 1})

	for i := 0; i < 200; i++ {
		display := contact.CountryDisplay("Italy")
		assert.Contains(t, []string{"Italia", "IT", "Italy"}, display)
	}
}

func TestCountryDisplayUnmappedFallsBack(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	contact := newTestContact(t, r, &stubProvider{}, Table[string]{"gmail.com": 1})

	for i := 0; i < 50; i++ {
		assert.Equal(t, "Atlantis", contact.CountryDisplay("Atlantis"))
	}
}
