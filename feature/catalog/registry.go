package catalog

import (
	"errors"
	"fmt"
	"strings"

	"catalog-sync/core/feed"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Kind identifies one of the feed's entity kinds. The set is closed; every
// per-kind behavior (DDL, expected columns, extraction, upsert) lives in the
// registry below, so adding a kind means adding exactly one entry.
type Kind string

const (
	KindCurrency Kind = "currency"
	KindCategory Kind = "category"
	KindOffer    Kind = "offer"
)

// ErrUnknownKind is returned for an entity kind outside the closed set.
var ErrUnknownKind = errors.New("unknown entity kind")

// Supported dialects. The registry carries SQL for both; anything else is
// rejected at execution time.
const (
	dialectMySQL  = "mysql"
	dialectSQLite = "sqlite"
)

// tableDDL bundles one table's creation statements per dialect.
type tableDDL struct {
	name       string
	statements map[string][]string
}

// kindSpec is the registry entry for one entity kind.
type kindSpec struct {
	kind            Kind
	table           string
	naturalKey      string
	expectedColumns []string
	tables          []tableDDL
	upsert          map[string]string
	// run extracts the kind's records from the feed tree and applies the
	// batched statements on tx. It returns the number of rows written.
	run func(tx *gorm.DB, upsert string, root *feed.Node, opts ExtractOptions, log *zap.Logger) (int, error)
}

var registry = map[Kind]*kindSpec{
	KindCurrency: {
		kind:            KindCurrency,
		table:           "currencies",
		naturalKey:      "currency_id",
		expectedColumns: []string{"id", "currency_id", "code", "name", "rate"},
		tables: []tableDDL{{
			name: "currencies",
			statements: map[string][]string{
				dialectMySQL: {`CREATE TABLE IF NOT EXISTS currencies (
    id SERIAL PRIMARY KEY,
    currency_id VARCHAR(10) UNIQUE,
    code VARCHAR(10),
    name TEXT,
    rate NUMERIC(18, 6)
)`},
				dialectSQLite: {`CREATE TABLE IF NOT EXISTS currencies (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    currency_id VARCHAR(10) UNIQUE,
    code VARCHAR(10),
    name TEXT,
    rate NUMERIC
)`},
			},
		}},
		upsert: map[string]string{
			dialectMySQL: `INSERT INTO currencies (currency_id, code, name, rate) VALUES (?, ?, ?, ?) ` +
				`ON DUPLICATE KEY UPDATE code = VALUES(code), name = VALUES(name), rate = VALUES(rate)`,
			dialectSQLite: `INSERT INTO currencies (currency_id, code, name, rate) VALUES (?, ?, ?, ?) ` +
				`ON CONFLICT(currency_id) DO UPDATE SET code = excluded.code, name = excluded.name, rate = excluded.rate`,
		},
		run: runCurrencies,
	},
	KindCategory: {
		kind:            KindCategory,
		table:           "categories",
		naturalKey:      "category_id",
		expectedColumns: []string{"id", "category_id", "name", "parent_id"},
		tables: []tableDDL{{
			name: "categories",
			statements: map[string][]string{
				dialectMySQL: {`CREATE TABLE IF NOT EXISTS categories (
    id SERIAL PRIMARY KEY,
    category_id INTEGER UNIQUE,
    name TEXT,
    parent_id INTEGER
)`},
				dialectSQLite: {`CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category_id INTEGER UNIQUE,
    name TEXT,
    parent_id INTEGER
)`},
			},
		}},
		upsert: map[string]string{
			dialectMySQL: `INSERT INTO categories (category_id, name, parent_id) VALUES (?, ?, ?) ` +
				`ON DUPLICATE KEY UPDATE name = VALUES(name), parent_id = VALUES(parent_id)`,
			dialectSQLite: `INSERT INTO categories (category_id, name, parent_id) VALUES (?, ?, ?) ` +
				`ON CONFLICT(category_id) DO UPDATE SET name = excluded.name, parent_id = excluded.parent_id`,
		},
		run: runCategories,
	},
	KindOffer: {
		kind:            KindOffer,
		table:           "offers",
		naturalKey:      "vendor_code",
		expectedColumns: []string{"id", "offer_id", "vendor_code", "available", "name", "price", "currency_id", "category_id", "picture", "description"},
		tables: []tableDDL{
			{
				name: "offers",
				statements: map[string][]string{
					dialectMySQL: {`CREATE TABLE IF NOT EXISTS offers (
    id SERIAL PRIMARY KEY,
    offer_id VARCHAR(50) UNIQUE,
    vendor_code VARCHAR(100) UNIQUE,
    available BOOLEAN,
    name TEXT,
    price NUMERIC(18, 6),
    currency_id VARCHAR(10),
    category_id INTEGER,
    picture TEXT,
    description TEXT
)`},
					dialectSQLite: {`CREATE TABLE IF NOT EXISTS offers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    offer_id VARCHAR(50) UNIQUE,
    vendor_code VARCHAR(100) UNIQUE,
    available BOOLEAN,
    name TEXT,
    price NUMERIC,
    currency_id VARCHAR(10),
    category_id INTEGER,
    picture TEXT,
    description TEXT
)`},
				},
			},
			{
				name: "offer_attributes",
				statements: map[string][]string{
					dialectMySQL: {`CREATE TABLE IF NOT EXISTS offer_attributes (
    id SERIAL PRIMARY KEY,
    offer_vendor_code VARCHAR(100),
    param_name VARCHAR(255),
    param_value TEXT,
    FOREIGN KEY (offer_vendor_code) REFERENCES offers (vendor_code)
)`,
						`CREATE INDEX idx_offer_attributes_vendor_code ON offer_attributes (offer_vendor_code)`},
					dialectSQLite: {`CREATE TABLE IF NOT EXISTS offer_attributes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    offer_vendor_code VARCHAR(100) REFERENCES offers (vendor_code),
    param_name VARCHAR(255),
    param_value TEXT
)`,
						`CREATE INDEX IF NOT EXISTS idx_offer_attributes_vendor_code ON offer_attributes (offer_vendor_code)`},
				},
			},
		},
		upsert: map[string]string{
			dialectMySQL: `INSERT INTO offers (offer_id, vendor_code, available, name, price, currency_id, category_id, picture, description) ` +
				`VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) ` +
				`ON DUPLICATE KEY UPDATE offer_id = VALUES(offer_id), available = VALUES(available), name = VALUES(name), ` +
				`price = VALUES(price), currency_id = VALUES(currency_id), category_id = VALUES(category_id), ` +
				`picture = VALUES(picture), description = VALUES(description)`,
			// A clause per unique index mirrors MySQL's ON DUPLICATE KEY
			// UPDATE, which fires on whichever key collides.
			dialectSQLite: `INSERT INTO offers (offer_id, vendor_code, available, name, price, currency_id, category_id, picture, description) ` +
				`VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) ` +
				`ON CONFLICT(offer_id) DO UPDATE SET available = excluded.available, name = excluded.name, ` +
				`price = excluded.price, currency_id = excluded.currency_id, category_id = excluded.category_id, ` +
				`picture = excluded.picture, description = excluded.description ` +
				`ON CONFLICT(vendor_code) DO UPDATE SET offer_id = excluded.offer_id, available = excluded.available, name = excluded.name, ` +
				`price = excluded.price, currency_id = excluded.currency_id, category_id = excluded.category_id, ` +
				`picture = excluded.picture, description = excluded.description`,
		},
		run: runOffers,
	},
}

// Attribute rows are replaced wholesale on every offer sync: delete the
// vendor code's rows, then insert the freshly extracted set.
const (
	offerAttributeDelete = `DELETE FROM offer_attributes WHERE offer_vendor_code = ?`
	offerAttributeInsert = `INSERT INTO offer_attributes (offer_vendor_code, param_name, param_value) VALUES (?, ?, ?)`
)

// Kinds returns all entity kinds in sync order: currencies first,
// categories second, offers last, so that offers' loose references have the
// best chance of pointing at rows that already exist.
func Kinds() []Kind {
	return []Kind{KindCurrency, KindCategory, KindOffer}
}

// ParseKind resolves a kind or table name, case-insensitively, to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "currency", "currencies":
		return KindCurrency, nil
	case "category", "categories":
		return KindCategory, nil
	case "offer", "offers":
		return KindOffer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// TableName returns the kind's canonical table name.
func TableName(kind Kind) (string, error) {
	spec, err := lookup(kind)
	if err != nil {
		return "", err
	}
	return spec.table, nil
}

// NaturalKey returns the kind's upsert conflict column.
func NaturalKey(kind Kind) (string, error) {
	spec, err := lookup(kind)
	if err != nil {
		return "", err
	}
	return spec.naturalKey, nil
}

func lookup(kind Kind) (*kindSpec, error) {
	spec, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return spec, nil
}
