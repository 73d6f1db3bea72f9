package models

// Customer source channel constants
const (
	SourceEcommerce = 1
	SourcePOS       = 2
)

// Customer represents one synthesized customer record. Country, date of
// birth, email and phone are optional and nil when the fill-rate roll left
// them empty. OriginCountry is the country used for locale and pricing
// decisions; it is carried through generation but never persisted.
type Customer struct {
	CustomerID        string  `json:"customer_id"`
	Country           *string `json:"country"`
	Name              string  `json:"name"`
	Surname           string  `json:"surname"`
	DateOfBirth       *string `json:"date_of_birth"`
	Email             *string `json:"email"`
	MobilePhoneNumber *string `json:"mobile_phone_number"`
	SourceID          int     `json:"source_id"`

	OriginCountry string `json:"-"`
}

// CustomerRef is the minimal carry-forward projection handed to order
// generation for every customer produced (base and duplicate).
type CustomerRef struct {
	CustomerID    string `json:"customer_id"`
	OriginCountry string `json:"origin_country"`
	SourceID      int    `json:"source_id"`
}

// Clone returns a deep copy; optional fields get their own backing values
// so mutating the copy never touches the source record.
func (c *Customer) Clone() *Customer {
	dup := *c
	dup.Country = cloneString(c.Country)
	dup.DateOfBirth = cloneString(c.DateOfBirth)
	dup.Email = cloneString(c.Email)
	dup.MobilePhoneNumber = cloneString(c.MobilePhoneNumber)
	return &dup
}

// Ref returns the carry-forward projection of the customer.
func (c *Customer) Ref() CustomerRef {
	return CustomerRef{
		CustomerID:    c.CustomerID,
		OriginCountry: c.OriginCountry,
		SourceID:      c.SourceID,
	}
}

// Validate performs basic validation on customer data
func (c *Customer) Validate() error {
	if c.CustomerID == "" {
		return ErrInvalidInput("customer_id is required")
	}
	if c.Name == "" || c.Surname == "" {
		return ErrInvalidInput("name and surname are required")
	}
	if c.SourceID != SourceEcommerce && c.SourceID != SourcePOS {
		return ErrInvalidInput("source_id must be 1 (e-commerce) or 2 (POS)")
	}
	return nil
}

// FlipSource returns the opposite sales channel.
func FlipSource(sourceID int) int {
	if sourceID == SourcePOS {
		return SourceEcommerce
	}
	return SourcePOS
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
