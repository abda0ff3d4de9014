package intake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the variant tag of a Value
type Kind int

const (
	KindMissing Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Value is a single intake field value. The zero Value is Missing.
type Value struct {
	kind  Kind
	str   string
	i     int64
	f     float64
	isInt bool
	b     bool
	raw   json.RawMessage
}

func Missing() Value { return Value{} }

func Null() Value { return Value{kind: KindNull} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Int(n int64) Value { return Value{kind: KindNumber, i: n, isInt: true} }

func Float(f float64) Value { return Value{kind: KindNumber, f: f} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Raw holds an array or object verbatim. It is never coerced.
func Raw(data json.RawMessage) Value {
	return Value{kind: KindRaw, raw: append(json.RawMessage(nil), data...)}
}

func (v Value) Kind() Kind { return v.kind }

// Present reports whether the field carries a non-null value.
func (v Value) Present() bool {
	return v.kind != KindMissing && v.kind != KindNull
}

func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsInt() bool    { return v.kind == KindNumber && v.isInt }

// Str returns the string payload, or "" for non-string values.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Float64 returns the numeric payload as a float.
func (v Value) Float64() float64 {
	if v.kind != KindNumber {
		return 0
	}
	if v.isInt {
		return float64(v.i)
	}
	return v.f
}

// Int64 returns the integer payload; floats are truncated.
func (v Value) Int64() int64 {
	if v.kind != KindNumber {
		return 0
	}
	if v.isInt {
		return v.i
	}
	return int64(v.f)
}

func (v Value) BoolValue() bool {
	return v.kind == KindBool && v.b
}

// Truthy follows the usual falsy set: missing, null, "", false and 0.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.Float64() != 0
	case KindBool:
		return v.b
	case KindRaw:
		trimmed := bytes.TrimSpace(v.raw)
		return !bytes.Equal(trimmed, []byte("[]")) && !bytes.Equal(trimmed, []byte("{}"))
	default:
		return false
	}
}

// Equal compares kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		if v.isInt != o.isInt {
			return false
		}
		if v.isInt {
			return v.i == o.i
		}
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindRaw:
		return bytes.Equal(v.raw, o.raw)
	default:
		return true
	}
}

// String renders the value the way the policy haystack sees it.
func (v Value) String() string {
	switch v.kind {
	case KindMissing, KindNull:
		return "none"
	case KindString:
		return v.str
	case KindNumber:
		if v.isInt {
			return strconv.FormatInt(v.i, 10)
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindRaw:
		return string(v.raw)
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindMissing, KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if v.isInt {
			return []byte(strconv.FormatInt(v.i, 10)), nil
		}
		return json.Marshal(v.f)
	case KindBool:
		return json.Marshal(v.b)
	case KindRaw:
		return v.raw, nil
	default:
		return nil, fmt.Errorf("intake: cannot marshal value of kind %d", v.kind)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// DecodeValue converts one JSON value into its tagged form.
func DecodeValue(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Value{}, fmt.Errorf("intake: empty json value")
	}

	switch trimmed[0] {
	case 'n':
		return Null(), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Value{}, err
		}
		return String(s), nil
	case '[', '{':
		if !json.Valid(trimmed) {
			return Value{}, fmt.Errorf("intake: invalid composite value")
		}
		return Raw(trimmed), nil
	default:
		return decodeNumber(string(trimmed))
	}
}

func decodeNumber(text string) (Value, error) {
	var n json.Number
	if err := json.Unmarshal([]byte(text), &n); err != nil {
		return Value{}, err
	}
	if !strings.ContainsAny(text, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, err
	}
	return Float(f), nil
}
