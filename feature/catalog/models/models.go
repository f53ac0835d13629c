package models

// Currency is one row of the currencies table. CurrencyID is the natural
// key; a feed entry without it never becomes a Currency.
type Currency struct {
	// CurrencyID is the vendor's currency identifier (e.g. "RUB").
	CurrencyID string
	// Code is the currency code, falling back to CurrencyID when blank.
	Code string
	// Name is the display name.
	Name string
	// Rate is the exchange rate relative to the feed's base currency.
	Rate float64
}

// Category is one row of the categories table, keyed by the vendor's
// integer category id.
type Category struct {
	CategoryID int
	Name       string
	// ParentID references another category's CategoryID. It is stored
	// opportunistically: the parent row may not exist. Nil means the
	// category is a root or the feed value was unparseable.
	ParentID *int
}

// Offer is one row of the offers table plus its owned attribute rows.
// VendorCode is the sole stable identity; OfferID is carried along but
// offers are reconciled by vendor code.
type Offer struct {
	OfferID     string
	VendorCode  string
	Available   bool
	Name        string
	Price       float64
	CurrencyID  string
	CategoryID  int
	Picture     string
	Description string

	// Attributes is the offer's full param list in feed order. Every sync
	// replaces the persisted set wholesale; attributes have no identity of
	// their own.
	Attributes []OfferAttribute
}

// OfferAttribute is one nested <param> of an offer.
type OfferAttribute struct {
	Name  string
	Value string
}
