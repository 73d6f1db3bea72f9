package synth

import (
	"log/slog"
	"math/rand"

	"github.com/mrollo/retailgen/internal/models"
)

// Match strategies for duplicate records.
type Strategy string

const (
	// StrategyExactContact keeps name, surname, email and phone verbatim.
	StrategyExactContact Strategy = "exact-contact"
	// StrategyFuzzyName keeps the name pair up to one injected typo and
	// usually regenerates the contact fields.
	StrategyFuzzyName Strategy = "fuzzy-name"
)

// Rates of incidental variation applied to exact-contact duplicates and
// of contact regeneration for fuzzy-name duplicates.
const (
	dobReformatRate     = 0.3
	countryReformatRate = 0.3
	contactRegenRate    = 0.8
)

// DuplicatorConfig carries the fuzzy-name typo rate.
type DuplicatorConfig struct {
	NameTypoRate float64
}

// Duplicator derives near-duplicate customers from base records. A new
// globally unique customer_id is always assigned by the caller after the
// collision check; internal failures degrade to a minimal copy rather
// than raising.
type Duplicator struct {
	r       *rand.Rand
	contact *ContactSynthesizer
	cfg     DuplicatorConfig
	dobs    Table[string]
	logger  *slog.Logger
}

// NewDuplicator creates a duplicate synthesizer.
func NewDuplicator(r *rand.Rand, contact *ContactSynthesizer, cfg DuplicatorConfig, logger *slog.Logger) *Duplicator {
	return &Duplicator{
		r:       r,
		contact: contact,
		cfg:     cfg,
		dobs:    DOBFormats,
		logger:  logger,
	}
}

// Duplicate produces a mutated copy of source under the given strategy.
// The second return value marks a degraded minimal duplicate.
func (d *Duplicator) Duplicate(source *models.Customer, strategy Strategy) (*models.Customer, bool) {
	dup := source.Clone()
	dup.CustomerID = NewCustomerID(d.r)
	dup.SourceID = models.FlipSource(source.SourceID)

	switch strategy {
	case StrategyExactContact:
		d.varyExactContact(dup)
	case StrategyFuzzyName:
		d.fuzzName(dup)
	default:
		d.logger.Warn("unknown match strategy, emitting minimal duplicate",
			slog.String("strategy", string(strategy)),
			slog.String("source_id", source.CustomerID),
		)
		return dup, true
	}

	return dup, false
}

// varyExactContact leaves the matching fields (name, surname, email,
// phone) untouched and occasionally re-encodes the incidental ones.
func (d *Duplicator) varyExactContact(dup *models.Customer) {
	if dup.DateOfBirth != nil && d.r.Float64() < dobReformatRate {
		if reformatted, ok := ReformatDOB(d.r, *dup.DateOfBirth, d.dobs); ok {
			dup.DateOfBirth = &reformatted
		}
	}

	if dup.Country != nil && d.r.Float64() < countryReformatRate {
		display := d.contact.CountryDisplay(dup.OriginCountry)
		dup.Country = &display
	}
}

// fuzzName forces a typo into exactly one of the name fields with the
// configured probability, then usually regenerates the contact fields
// from the possibly typo'd name.
func (d *Duplicator) fuzzName(dup *models.Customer) {
	if d.r.Float64() < d.cfg.NameTypoRate {
		if d.r.Float64() < 0.5 {
			dup.Name = ForceMutate(d.r, dup.Name)
		} else {
			dup.Surname = ForceMutate(d.r, dup.Surname)
		}
	}

	if dup.Email != nil && d.r.Float64() < contactRegenRate {
		dobText := ""
		if dup.DateOfBirth != nil {
			dobText = *dup.DateOfBirth
		}
		email := d.contact.Email(dup.Name, dup.Surname, dobText, dup.OriginCountry)
		dup.Email = &email
	}

	if dup.MobilePhoneNumber != nil && d.r.Float64() < contactRegenRate {
		phone := d.contact.Phone(dup.OriginCountry)
		dup.MobilePhoneNumber = &phone
	}
}
