package synth

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
)

// Probability that an email is derived from the customer's name rather
// than drawn from the text provider.
const nameBasedEmailRate = 0.6

// ContactSynthesizer builds email addresses, phone numbers and country
// display values. Every method fails soft: a bad draw degrades to a
// deterministic fallback instead of propagating an error.
type ContactSynthesizer struct {
	r        *rand.Rand
	provider TextProvider
	domains  Table[string]
	logger   *slog.Logger
}

// NewContactSynthesizer validates the domain table up front so later
// draws cannot fail on distribution errors.
func NewContactSynthesizer(r *rand.Rand, provider TextProvider, domains Table[string], logger *slog.Logger) (*ContactSynthesizer, error) {
	valid := domains.Without(isPlaceholderDomain)
	if err := valid.Validate(); err != nil {
		return nil, err
	}
	return &ContactSynthesizer{
		r:        r,
		provider: provider,
		domains:  valid,
		logger:   logger,
	}, nil
}

// isPlaceholderDomain reports whether a domain is a reserved placeholder
// that must never appear in generated contact data.
func isPlaceholderDomain(domain string) bool {
	return strings.HasPrefix(domain, "example")
}

// Email builds an email address for the customer. With a fixed probability
// the local part is derived from the name pair (six patterns, optionally
// suffixed with a birth-year fragment); otherwise the address comes from
// the text provider, rejecting placeholder domains.
func (c *ContactSynthesizer) Email(name, surname, dateOfBirth, country string) string {
	domain, err := c.domains.Pick(c.r)
	if err != nil {
		// Unreachable after constructor validation; keep the run alive anyway.
		domain = "gmail.com"
	}

	if c.r.Float64() < nameBasedEmailRate && name != "" && surname != "" {
		return c.nameBasedEmail(name, surname, dateOfBirth, domain)
	}

	locale := LocaleFor(country)
	var email string
	for i := 0; i < 3; i++ {
		email = c.provider.RawEmail(locale)
		at := strings.LastIndex(email, "@")
		if at < 0 {
			continue
		}
		if !isPlaceholderDomain(email[at+1:]) {
			return email
		}
	}

	// Could not draw a clean address; keep the local part and rewrite the
	// domain to one from the weighted table.
	if at := strings.LastIndex(email, "@"); at > 0 {
		return email[:at+1] + domain
	}
	return c.fallbackEmail(name, surname)
}

// nameBasedEmail assembles a local part from the name pair.
func (c *ContactSynthesizer) nameBasedEmail(name, surname, dateOfBirth, domain string) string {
	name = normalizeNamePart(name)
	surname = normalizeNamePart(surname)
	if name == "" || surname == "" {
		return c.fallbackEmail(name, surname)
	}

	yearSuffix := ""
	if year := yearFromDOB(dateOfBirth); year != "" {
		if c.r.Float64() < 0.7 {
			yearSuffix = year[len(year)-2:]
		} else {
			yearSuffix = year
		}
	}
	if yearSuffix == "" && c.r.Float64() < 0.3 {
		yearSuffix = fmt.Sprintf("%02d", c.r.Intn(100))
	}

	var username string
	switch c.r.Intn(6) {
	case 0:
		username = name + "." + surname
	case 1:
		username = firstRune(name) + surname
	case 2:
		username = name + firstRune(surname)
	case 3:
		username = surname + "." + name
	case 4:
		username = firstRune(name) + surname + yearSuffix
	default:
		username = name + yearSuffix
	}

	if len(username) < 5 && yearSuffix == "" {
		username += fmt.Sprintf("%d", 100+c.r.Intn(900))
	}

	return sanitizeLocalPart(username) + "@" + domain
}

// fallbackEmail is the deterministic degraded address.
func (c *ContactSynthesizer) fallbackEmail(name, surname string) string {
	cleanName := sanitizeAlnum(strings.ToLower(name))
	if cleanName == "" {
		cleanName = "user"
	}
	cleanSurname := sanitizeAlnum(strings.ToLower(surname))
	if cleanSurname == "" {
		cleanSurname = fmt.Sprintf("%04d", c.r.Intn(10000))
	}
	return cleanName + "." + cleanSurname + "@gmail.com"
}

// Phone obtains a raw number from the provider and applies one of four
// stylings, chosen uniformly.
func (c *ContactSynthesizer) Phone(country string) string {
	locale := LocaleFor(country)
	phone := c.provider.PhoneNumber(locale)
	if phone == "" {
		return c.fallbackPhone()
	}

	switch c.r.Intn(4) {
	case 0: // international prefix
		code, err := c.provider.CallingCode(locale)
		if err != nil {
			c.logger.Warn("calling code unavailable, using synthetic prefix",
				slog.String("locale", locale),
				slog.String("error", err.Error()),
			)
			code = fmt.Sprintf("+%d", 1+c.r.Intn(99))
		}
		return code + " " + phone

	case 1: // punctuation stripped
		return strings.Map(func(r rune) rune {
			switch r {
			case ' ', '-', '.', '(', ')':
				return -1
			}
			return r
		}, phone)

	case 2: // parenthesized area code
		parts := strings.SplitN(phone, " ", 2)
		if len(parts) == 2 {
			return "(" + parts[0] + ") " + parts[1]
		}
		return phone

	default:
		return phone
	}
}

// fallbackPhone is a synthetic but well-formed number used when the
// provider fails.
func (c *ContactSynthesizer) fallbackPhone() string {
	return fmt.Sprintf("+%d %03d-%03d-%04d",
		1+c.r.Intn(99), 100+c.r.Intn(900), 100+c.r.Intn(900), 1000+c.r.Intn(9000))
}

// CountryDisplay picks one of the three country representations uniformly,
// falling back to the English name when a mapping is missing.
func (c *ContactSynthesizer) CountryDisplay(country string) string {
	switch c.r.Intn(3) {
	case 0:
		if native, ok := NativeCountryNames[country]; ok {
			return native
		}
	case 1:
		if iso, ok := ISOCountryCodes[country]; ok {
			return iso
		}
	}
	return country
}

// firstRune returns the initial character without splitting multibyte
// runes.
func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// normalizeNamePart lowercases and strips spaces and hyphens.
func normalizeNamePart(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// sanitizeLocalPart keeps alphanumerics plus '.' and '_'.
func sanitizeLocalPart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_':
			return r
		}
		return -1
	}, s)
}

// sanitizeAlnum keeps alphanumerics only.
func sanitizeAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, s)
}
