package intake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Intake is an ordered mapping from field name to value. Keys keep their
// first insertion position; a later Set on the same key replaces the value.
type Intake struct {
	keys   []string
	values map[string]Value
}

func New() *Intake {
	return &Intake{values: make(map[string]Value)}
}

// Get returns the value for key, or Missing.
func (in *Intake) Get(key Field) Value {
	if in == nil {
		return Missing()
	}
	return in.values[string(key)]
}

// Has reports whether the key exists, including null values.
func (in *Intake) Has(key Field) bool {
	if in == nil {
		return false
	}
	_, ok := in.values[string(key)]
	return ok
}

// Set stores v under key. Setting Missing removes the key.
func (in *Intake) Set(key Field, v Value) {
	k := string(key)
	if v.Kind() == KindMissing {
		in.delete(k)
		return
	}
	if in.values == nil {
		in.values = make(map[string]Value)
	}
	if _, ok := in.values[k]; !ok {
		in.keys = append(in.keys, k)
	}
	in.values[k] = v
}

func (in *Intake) delete(k string) {
	if _, ok := in.values[k]; !ok {
		return
	}
	delete(in.values, k)
	for i, existing := range in.keys {
		if existing == k {
			in.keys = append(in.keys[:i], in.keys[i+1:]...)
			break
		}
	}
}

// Keys returns field names in insertion order.
func (in *Intake) Keys() []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in.keys...)
}

func (in *Intake) Len() int {
	if in == nil {
		return 0
	}
	return len(in.keys)
}

// Values returns values in key order.
func (in *Intake) Values() []Value {
	if in == nil {
		return nil
	}
	out := make([]Value, 0, len(in.keys))
	for _, k := range in.keys {
		out = append(out, in.values[k])
	}
	return out
}

// Clone returns an independent copy.
func (in *Intake) Clone() *Intake {
	out := New()
	if in == nil {
		return out
	}
	for _, k := range in.keys {
		out.Set(Field(k), in.values[k])
	}
	return out
}

var (
	truthyWords  = map[string]bool{"true": true, "yes": true, "y": true, "1": true}
	falsyWords   = map[string]bool{"false": true, "no": true, "n": true, "0": true}
	numberString = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// Normalize coerces top-level values and returns a new Intake. Boolean
// coercion runs before numeric coercion so "0" and "1" become booleans, and
// both run before agreement_type is lowercased. Applying it twice is a no-op.
func (in *Intake) Normalize() *Intake {
	out := New()
	if in == nil {
		return out
	}
	for _, k := range in.keys {
		v := CoerceNumber(CoerceBool(in.values[k]))
		if Field(k) == FieldAgreementType && v.IsString() {
			v = String(strings.ToLower(strings.TrimSpace(v.Str())))
		}
		out.Set(Field(k), v)
	}
	return out
}

// CoerceBool maps boolean-like strings to Bool and leaves anything else alone.
func CoerceBool(v Value) Value {
	if !v.IsString() {
		return v
	}
	lowered := strings.ToLower(strings.TrimSpace(v.Str()))
	if truthyWords[lowered] {
		return Bool(true)
	}
	if falsyWords[lowered] {
		return Bool(false)
	}
	return v
}

// CoerceNumber maps numeric-like strings (commas allowed) to Number.
func CoerceNumber(v Value) Value {
	if !v.IsString() {
		return v
	}
	candidate := strings.TrimSpace(strings.ReplaceAll(v.Str(), ",", ""))
	if !numberString.MatchString(candidate) {
		return v
	}
	if !strings.Contains(candidate, ".") {
		if n, err := strconv.ParseInt(candidate, 10, 64); err == nil {
			return Int(n)
		}
	}
	f, err := strconv.ParseFloat(candidate, 64)
	if err != nil {
		return v
	}
	return Float(f)
}

// DecodeObject decodes exactly one JSON object, keeping key order. Anything
// other than whitespace around the object is an error.
func DecodeObject(data []byte) (*Intake, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("intake: expected object, got %v", tok)
	}

	out := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("intake: expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("intake: value for %q: %w", key, err)
		}
		v, err := DecodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("intake: value for %q: %w", key, err)
		}
		out.Set(Field(key), v)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("intake: trailing data after object")
	}
	return out, nil
}

func (in *Intake) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if in != nil {
		for i, k := range in.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			val, err := in.values[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (in *Intake) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeObject(data)
	if err != nil {
		return err
	}
	*in = *parsed
	return nil
}
