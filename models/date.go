package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

const dateOnlyLayout = "2006-01-02"

// Date is a time.Time that accepts both RFC 3339 timestamps and plain
// "2006-01-02" dates in JSON bodies and query strings. It is stored in
// MongoDB as a regular datetime so range filters keep working.
type Date struct {
	time.Time
}

// ParseDate parses an RFC 3339 timestamp or a plain date string.
func ParseDate(value string) (Date, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return Date{t}, nil
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return Date{t}, nil
	}
	return Date{}, fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", value)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.UTC().Format(time.RFC3339) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected a JSON string", data)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.Time)
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return bson.UnmarshalValue(t, data, &d.Time)
}
