package entities

import (
	"encoding/json"
	"strconv"
)

// ValueKind discriminates the scalar stored in a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
)

// String method for ValueKind enum
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	default:
		return "Unknown"
	}
}

// Value is a tagged scalar holding one pass-through attribute. The
// engine preserves and propagates these without interpreting them;
// numeric cells are kept as numbers so opportunistic stats (revenue,
// price) can aggregate them.
type Value struct {
	kind ValueKind
	str  string
	num  float64
}

// StringValue creates a string-kinded Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// NumberValue creates a number-kinded Value.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// ParseValue auto-types a raw cell: numeric text becomes a number,
// everything else stays a string.
func ParseValue(raw string) Value {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return NumberValue(f)
	}
	return StringValue(raw)
}

// Kind returns the scalar kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Text returns the canonical text form of the value.
func (v Value) Text() string {
	if v.kind == KindNumber {
		return formatNumber(v.num)
	}
	return v.str
}

// Number returns the numeric value and whether the value is numeric.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// MarshalJSON renders the native scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts either a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = NumberValue(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*v = StringValue(str)
	return nil
}
