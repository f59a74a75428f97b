// Package types contains common types used across the application
package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// NullInt is an integer that may be missing. The zero value is missing.
type NullInt struct {
	Value int
	Valid bool
}

// Int returns a present NullInt holding v.
func Int(v int) NullInt { return NullInt{Value: v, Valid: true} }

// Missing is the absent value.
var Missing = NullInt{}

// Sub returns a - b, missing when either operand is missing.
func Sub(a, b NullInt) NullInt {
	if !a.Valid || !b.Valid {
		return Missing
	}
	return Int(a.Value - b.Value)
}

// Get returns the value and whether it is present.
func (n NullInt) Get() (int, bool) { return n.Value, n.Valid }

// String renders the value, or "NA" when missing.
func (n NullInt) String() string {
	if !n.Valid {
		return "NA"
	}
	return strconv.Itoa(n.Value)
}

// MarshalJSON encodes a missing value as null.
func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n.Value)), nil
}

// UnmarshalJSON decodes null as missing.
func (n *NullInt) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*n = Missing
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Int(v)
	return nil
}
