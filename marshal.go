package gnum

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/mgo.v2/bson"
)

// valueDoc is the document form of a Value used by the JSON and BSON
// encodings. The value is always the signed decimal, which is unambiguous
// once the size is known.
type valueDoc struct {
	Size  string `json:"size" bson:"size"`
	Value string `json:"value" bson:"value"`
}

func (v Value) doc() valueDoc {
	return valueDoc{Size: v.size.String(), Value: v.String()}
}

func (d valueDoc) value() (Value, error) {
	size, err := ParseSizeName(d.Size)
	if err != nil {
		return Value{}, err
	}
	out, ok := ParseSize(d.Value, Decimal, size)
	if !ok {
		return Value{}, fmt.Errorf("gnum: %s value %q invalid", size, d.Value)
	}
	return out, nil
}

// MarshalText encodes v as "<size>:<decimal>", e.g. "word:-2".
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.size.String() + ":" + v.String()), nil
}

func (v *Value) UnmarshalText(bts []byte) error {
	s := string(bts)
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return fmt.Errorf("gnum: value %q missing size", s)
	}
	out, err := valueDoc{Size: s[:idx], Value: s[idx+1:]}.value()
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// MarshalJSON encodes v as {"size":"word","value":"-2"}. The value is a
// string so that OWord values survive JSON number handling.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.doc())
}

func (v *Value) UnmarshalJSON(bts []byte) error {
	var d valueDoc
	if err := json.Unmarshal(bts, &d); err != nil {
		return fmt.Errorf("gnum: value invalid JSON %q: %w", string(bts), err)
	}
	out, err := d.value()
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// GetBSON implements bson.Getter; the document has the same shape as the
// JSON encoding.
func (v Value) GetBSON() (interface{}, error) {
	return v.doc(), nil
}

// SetBSON implements bson.Setter.
func (v *Value) SetBSON(raw bson.Raw) error {
	var d valueDoc
	if err := raw.Unmarshal(&d); err != nil {
		return fmt.Errorf("gnum: value invalid BSON: %w", err)
	}
	out, err := d.value()
	if err != nil {
		return err
	}
	*v = out
	return nil
}

var (
	_ bson.Getter = Value{}
	_ bson.Setter = (*Value)(nil)
)
