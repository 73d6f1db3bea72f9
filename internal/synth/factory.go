package synth

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mrollo/retailgen/internal/models"
)

// FactoryConfig carries the per-field fill rates and the typo probability
// applied to provider-drawn names.
type FactoryConfig struct {
	TypoProbability float64
	CountryFillRate float64
	DOBFillRate     float64
	EmailFillRate   float64
	PhoneFillRate   float64
	MinAge          int
	MaxAge          int
}

// Factory produces base customer records. Creation never fails: an
// unrecoverable internal error degrades to a minimal sequential
// placeholder record instead of aborting the batch.
type Factory struct {
	r         *rand.Rand
	provider  TextProvider
	contact   *ContactSynthesizer
	cfg       FactoryConfig
	countries Table[string]
	sources   Table[int]
	dobs      Table[string]
	logger    *slog.Logger

	fallbackSeq int
}

// NewFactory validates every weight table up front; a malformed table is a
// configuration error and surfaces immediately.
func NewFactory(r *rand.Rand, provider TextProvider, contact *ContactSynthesizer, cfg FactoryConfig, logger *slog.Logger) (*Factory, error) {
	if cfg.MinAge == 0 {
		cfg.MinAge = 18
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 90
	}
	for name, err := range map[string]error{
		"country": CountryWeights.Validate(),
		"source":  CustomerSources.Validate(),
		"dob":     DOBFormats.Validate(),
	} {
		if err != nil {
			return nil, fmt.Errorf("%s table: %w", name, err)
		}
	}
	return &Factory{
		r:         r,
		provider:  provider,
		contact:   contact,
		cfg:       cfg,
		countries: CountryWeights,
		sources:   CustomerSources,
		dobs:      DOBFormats,
		logger:    logger,
	}, nil
}

// NewCustomer produces one fully populated customer record. sourceID 0
// means draw from the channel distribution. The second return value marks
// a degraded fallback record.
func (f *Factory) NewCustomer(sourceID int) (*models.Customer, bool) {
	customer, err := f.create(sourceID)
	if err != nil {
		f.logger.Warn("customer generation degraded to fallback",
			slog.String("error", err.Error()),
		)
		return f.fallbackCustomer(sourceID), true
	}
	return customer, false
}

func (f *Factory) create(sourceID int) (*models.Customer, error) {
	if sourceID == 0 {
		drawn, err := f.sources.Pick(f.r)
		if err != nil {
			return nil, err
		}
		sourceID = drawn
	}

	country, err := f.countries.Pick(f.r)
	if err != nil {
		return nil, err
	}
	locale := LocaleFor(country)

	customer := &models.Customer{
		CustomerID:    NewCustomerID(f.r),
		Name:          Mutate(f.r, f.provider.FirstName(locale), f.cfg.TypoProbability),
		Surname:       Mutate(f.r, f.provider.LastName(locale), f.cfg.TypoProbability),
		SourceID:      sourceID,
		OriginCountry: country,
	}

	if f.r.Float64() < f.cfg.DOBFillRate {
		dob, err := FormatDOB(f.r, f.provider.DateOfBirth(locale, f.cfg.MinAge, f.cfg.MaxAge), f.dobs)
		if err != nil {
			return nil, err
		}
		customer.DateOfBirth = &dob
	}

	if f.r.Float64() < f.cfg.EmailFillRate {
		dobText := ""
		if customer.DateOfBirth != nil {
			dobText = *customer.DateOfBirth
		}
		email := f.contact.Email(customer.Name, customer.Surname, dobText, country)
		customer.Email = &email
	}

	if f.r.Float64() < f.cfg.PhoneFillRate {
		phone := f.contact.Phone(country)
		customer.MobilePhoneNumber = &phone
	}

	if f.r.Float64() < f.cfg.CountryFillRate {
		display := f.contact.CountryDisplay(country)
		customer.Country = &display
	}

	return customer, nil
}

// fallbackCustomer is the minimal synthetic record used when generation
// fails past recovery. Names are sequential so degraded records are easy
// to spot in the output.
func (f *Factory) fallbackCustomer(sourceID int) *models.Customer {
	f.fallbackSeq++
	if sourceID == 0 {
		sourceID = models.SourcePOS
	}
	name := fmt.Sprintf("User_%04d", f.fallbackSeq)
	surname := fmt.Sprintf("Surname_%04d", f.fallbackSeq)
	email := fmt.Sprintf("user_%04d.surname_%04d@gmail.com", f.fallbackSeq, f.fallbackSeq)
	return &models.Customer{
		CustomerID:    NewCustomerID(f.r),
		Name:          name,
		Surname:       surname,
		Email:         &email,
		SourceID:      sourceID,
		OriginCountry: "United States",
	}
}
