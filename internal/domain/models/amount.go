// internal/domain/models/amount.go
package models

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Amount is a non-negative monetary value (business_amount on TYFTB records
// and every sum derived from it).
//
// Stored as Decimal128. Reads tolerate legacy double/int encodings, and an
// absent or null value decodes as zero so sums never fail on missing data.
// JSON output is a bare number with two fractional digits.
type Amount struct {
	d decimal.Decimal
}

// ZeroAmount is the additive identity.
var ZeroAmount = Amount{}

// ParseAmount parses a decimal string such as "500" or "1250.75".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d: d}, nil
}

// MustAmount is ParseAmount for literals in tests and fixtures.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }
func (a Amount) Cmp(b Amount) int    { return a.d.Cmp(b.d) }
func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }
func (a Amount) IsZero() bool        { return a.d.IsZero() }
func (a Amount) String() string      { return a.d.StringFixed(2) }

// MarshalJSON renders the amount as a JSON number, e.g. 500.00.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number, a quoted decimal string, or null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		a.d = decimal.Zero
		return nil
	}
	b = bytes.Trim(b, `"`)
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	a.d = d
	return nil
}

// MarshalBSONValue stores the amount as Decimal128.
func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d128, err := primitive.ParseDecimal128(a.d.String())
	if err != nil {
		return 0, nil, fmt.Errorf("amount: %w", err)
	}
	return bson.MarshalValue(d128)
}

// UnmarshalBSONValue decodes Decimal128, double, int32 and int64 values.
// Null and undefined decode as zero.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		a.d = decimal.Zero
	case bsontype.Decimal128:
		d128, ok := rv.Decimal128OK()
		if !ok {
			return fmt.Errorf("amount: malformed decimal128")
		}
		d, err := decimal.NewFromString(d128.String())
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		a.d = d
	case bsontype.Double:
		f, ok := rv.DoubleOK()
		if !ok {
			return fmt.Errorf("amount: malformed double")
		}
		a.d = decimal.NewFromFloat(f)
	case bsontype.Int32:
		n, ok := rv.Int32OK()
		if !ok {
			return fmt.Errorf("amount: malformed int32")
		}
		a.d = decimal.NewFromInt32(n)
	case bsontype.Int64:
		n, ok := rv.Int64OK()
		if !ok {
			return fmt.Errorf("amount: malformed int64")
		}
		a.d = decimal.NewFromInt(n)
	default:
		return fmt.Errorf("amount: cannot decode bson type %s", t)
	}
	return nil
}
