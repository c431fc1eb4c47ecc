package watcher

import (
	"encoding/json"
	"strconv"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// ParamKind identifies which value a ParamValue holds.
type ParamKind uint8

const (
	ParamUnset ParamKind = iota
	ParamStringKind
	ParamNumberKind
	ParamBoolKind
)

// ParamValue is a query parameter or comparison value: a string, a number or a boolean.
// Numbers keep their JSON literal, so integers beyond 2^53 survive a round trip.
type ParamValue struct {
	kind ParamKind
	s    string
	n    json.Number
	b    bool
}

// StringParam returns a string value. Strings may contain mustache templates.
func StringParam(v string) ParamValue { return ParamValue{kind: ParamStringKind, s: v} }

// NumberParam returns a numeric value.
func NumberParam(v float64) ParamValue {
	return ParamValue{kind: ParamNumberKind, n: json.Number(strconv.FormatFloat(v, 'g', -1, 64))}
}

// IntParam returns an integer value without going through float64.
func IntParam(v int64) ParamValue {
	return ParamValue{kind: ParamNumberKind, n: json.Number(strconv.FormatInt(v, 10))}
}

// BoolParam returns a boolean value.
func BoolParam(v bool) ParamValue { return ParamValue{kind: ParamBoolKind, b: v} }

// Kind returns which value is held.
func (p ParamValue) Kind() ParamKind { return p.kind }

// AsString returns the string value.
func (p ParamValue) AsString() (string, bool) { return p.s, p.kind == ParamStringKind }

// AsNumber returns the numeric value as a float64.
func (p ParamValue) AsNumber() (float64, bool) {
	if p.kind != ParamNumberKind {
		return 0, false
	}
	f, err := p.n.Float64()
	return f, err == nil
}

// AsInt returns the numeric value when it is an integer literal.
func (p ParamValue) AsInt() (int64, bool) {
	if p.kind != ParamNumberKind {
		return 0, false
	}
	i, err := p.n.Int64()
	return i, err == nil
}

// AsBool returns the boolean value.
func (p ParamValue) AsBool() (bool, bool) { return p.b, p.kind == ParamBoolKind }

// Interface returns the held value as a plain Go value, nil when unset.
// Numbers are returned as json.Number.
func (p ParamValue) Interface() any {
	switch p.kind {
	case ParamStringKind:
		return p.s
	case ParamNumberKind:
		return p.n
	case ParamBoolKind:
		return p.b
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p ParamValue) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case ParamUnset:
		return nil, NewInvalidJSONError("param", "value is not set", nil)
	case ParamNumberKind:
		if !utils.Valid([]byte(p.n)) {
			return nil, NewInvalidJSONError("param", "number "+string(p.n)+" has no json form", nil)
		}
		return []byte(p.n), nil
	}
	return utils.Marshal(p.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ParamValue) UnmarshalJSON(data []byte) error {
	var v any
	if err := utils.UnmarshalNumber(data, &v); err != nil {
		return NewInvalidJSONError("param", "invalid value", err)
	}
	switch x := v.(type) {
	case string:
		*p = StringParam(x)
	case json.Number:
		*p = ParamValue{kind: ParamNumberKind, n: x}
	case bool:
		*p = BoolParam(x)
	default:
		return NewInvalidJSONError("param", "expected a string, number or boolean", nil)
	}
	return nil
}

// Params maps parameter names to values. It serializes with sorted keys.
type Params map[string]ParamValue

// MarshalJSON implements json.Marshaler.
func (p Params) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	members := make([]utils.Member, 0, len(p))
	for _, k := range utils.SortedKeys(p) {
		raw, err := p[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		members = append(members, utils.Member{Key: k, Raw: raw})
	}
	return utils.WriteObject(members)
}

func (p Params) clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
