package watcher

import (
	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// ConditionKind is the wire key of a condition variant.
type ConditionKind string

const (
	ConditionKindAlways  ConditionKind = "always"
	ConditionKindNever   ConditionKind = "never"
	ConditionKindCompare ConditionKind = "compare"
	ConditionKindScript  ConditionKind = "script"
)

var conditionKeys = []string{
	string(ConditionKindAlways),
	string(ConditionKindNever),
	string(ConditionKindCompare),
	string(ConditionKindScript),
}

// Condition decides whether a watch's actions run.
type Condition interface {
	ConditionKind() ConditionKind
	IntoContainer() ConditionContainer
}

// ConditionContainer holds at most one condition.
type ConditionContainer struct {
	condition Condition
}

// Kind returns the populated slot, or "" when empty.
func (c ConditionContainer) Kind() ConditionKind {
	if c.condition == nil {
		return ""
	}
	return c.condition.ConditionKind()
}

// IsEmpty reports whether no slot is populated.
func (c ConditionContainer) IsEmpty() bool { return c.condition == nil }

// Condition returns the held condition, or nil.
func (c ConditionContainer) Condition() Condition { return c.condition }

// Compare returns the compare slot.
func (c ConditionContainer) Compare() (CompareCondition, bool) {
	v, ok := c.condition.(CompareCondition)
	return v, ok
}

// Script returns the script slot.
func (c ConditionContainer) Script() (ScriptCondition, bool) {
	v, ok := c.condition.(ScriptCondition)
	if ok {
		v = v.clone()
	}
	return v, ok
}

// MarshalJSON implements json.Marshaler.
func (c ConditionContainer) MarshalJSON() ([]byte, error) {
	return encodeVariant(string(c.Kind()), c.condition)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ConditionContainer) UnmarshalJSON(data []byte) error {
	key, raw, err := decodeVariant("condition", data, conditionKeys)
	if err != nil {
		return err
	}
	var cond Condition
	switch ConditionKind(key) {
	case ConditionKindAlways:
		cond = AlwaysCondition{}
	case ConditionKindNever:
		cond = NeverCondition{}
	case ConditionKindCompare:
		var v CompareCondition
		err = decodePayload("condition", key, raw, &v)
		cond = v
	case ConditionKindScript:
		var v ScriptCondition
		err = decodePayload("condition", key, raw, &v)
		cond = v
	}
	if err != nil {
		return err
	}
	c.condition = cond
	return nil
}

func (c ConditionContainer) clone() ConditionContainer {
	if c.condition == nil {
		return c
	}
	return c.condition.IntoContainer()
}

// AlwaysCondition always lets the actions run.
type AlwaysCondition struct{}

// ConditionKind implements Condition.
func (AlwaysCondition) ConditionKind() ConditionKind { return ConditionKindAlways }
// IntoContainer wraps a copy of the always condition in a ConditionContainer.
func (AlwaysCondition) IntoContainer() ConditionContainer {
	return ConditionContainer{condition: AlwaysCondition{}}
}

// MarshalJSON implements json.Marshaler.
func (AlwaysCondition) MarshalJSON() ([]byte, error) { return []byte("{}"), nil }

// NeverCondition never lets the actions run.
type NeverCondition struct{}

// ConditionKind implements Condition.
func (NeverCondition) ConditionKind() ConditionKind { return ConditionKindNever }
// IntoContainer wraps a copy of the never condition in a ConditionContainer.
func (NeverCondition) IntoContainer() ConditionContainer {
	return ConditionContainer{condition: NeverCondition{}}
}

// MarshalJSON implements json.Marshaler.
func (NeverCondition) MarshalJSON() ([]byte, error) { return []byte("{}"), nil }

// CompareCondition compares a value in the execution context against a
// constant. It serializes as {"<path>": {"<op>": value}}. An unset Value
// compares against null.
type CompareCondition struct {
	Path  string
	Op    CompareOp
	Value ParamValue
}

// ConditionKind implements Condition.
func (CompareCondition) ConditionKind() ConditionKind { return ConditionKindCompare }
// IntoContainer wraps a copy of the compare condition in a ConditionContainer.
func (c CompareCondition) IntoContainer() ConditionContainer {
	return ConditionContainer{condition: c}
}

// MarshalJSON implements json.Marshaler.
func (c CompareCondition) MarshalJSON() ([]byte, error) {
	if c.Path == "" {
		return nil, NewInvalidJSONError("compare_condition", "path is required", nil)
	}
	op, err := compareOps.marshal(c.Op)
	if err != nil {
		return nil, err
	}
	value := []byte("null")
	if c.Value.Kind() != ParamUnset {
		if value, err = c.Value.MarshalJSON(); err != nil {
			return nil, err
		}
	}
	var opKey string
	if err := utils.Unmarshal(op, &opKey); err != nil {
		return nil, err
	}
	inner, err := utils.WriteObject([]utils.Member{{Key: opKey, Raw: value}})
	if err != nil {
		return nil, err
	}
	return utils.WriteObject([]utils.Member{{Key: c.Path, Raw: inner}})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CompareCondition) UnmarshalJSON(data []byte) error {
	outer, err := utils.ObjectMembers(data)
	if err != nil {
		return NewInvalidJSONError("compare_condition", "expected a json object", err)
	}
	if len(outer) != 1 {
		return NewInvalidJSONError("compare_condition", "expected exactly one path", nil)
	}
	inner, err := utils.ObjectMembers(outer[0].Raw)
	if err != nil {
		return NewInvalidJSONError("compare_condition", "expected an operator object", err)
	}
	if len(inner) != 1 {
		return NewInvalidJSONError("compare_condition", "expected exactly one operator", nil)
	}
	op, err := compareOps.parse(inner[0].Key)
	if err != nil {
		return err
	}
	var value ParamValue
	if !utils.IsNull(inner[0].Raw) {
		if err := value.UnmarshalJSON(inner[0].Raw); err != nil {
			return err
		}
	}
	*c = CompareCondition{Path: outer[0].Key, Op: op, Value: value}
	return nil
}

// ScriptCondition runs a script that returns a boolean.
type ScriptCondition struct {
	Script
}

// ConditionKind implements Condition.
func (ScriptCondition) ConditionKind() ConditionKind { return ConditionKindScript }
// IntoContainer wraps a copy of the script condition in a ConditionContainer.
func (c ScriptCondition) IntoContainer() ConditionContainer {
	return ConditionContainer{condition: c.clone()}
}

func (c ScriptCondition) clone() ScriptCondition {
	return ScriptCondition{Script: c.Script.clone()}
}

// ConditionBuilder selects one condition kind. Each selector replaces the previous one.
type ConditionBuilder struct {
	c ConditionContainer
}

// NewConditionBuilder returns an empty builder.
func NewConditionBuilder() *ConditionBuilder {
	return &ConditionBuilder{}
}

// Always selects a condition that always passes.
func (b *ConditionBuilder) Always() *ConditionBuilder {
	b.c = AlwaysCondition{}.IntoContainer()
	return b
}

// Never selects a condition that never passes.
func (b *ConditionBuilder) Never() *ConditionBuilder {
	b.c = NeverCondition{}.IntoContainer()
	return b
}

// Compare checks the value at path, e.g. "ctx.payload.hits.total", against value.
func (b *ConditionBuilder) Compare(path string, op CompareOp, value ParamValue) *ConditionBuilder {
	b.c = CompareCondition{Path: path, Op: op, Value: value}.IntoContainer()
	return b
}

// Script selects a script condition.
func (b *ConditionBuilder) Script(script Script) *ConditionBuilder {
	b.c = ScriptCondition{Script: script}.IntoContainer()
	return b
}

// Build returns the built ConditionContainer.
func (b *ConditionBuilder) Build() ConditionContainer {
	return b.c
}
