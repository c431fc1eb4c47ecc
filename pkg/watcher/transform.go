package watcher

import (
	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// TransformKind is the wire key of a transform variant.
type TransformKind string

const (
	TransformKindSearch TransformKind = "search"
	TransformKindScript TransformKind = "script"
	TransformKindChain  TransformKind = "chain"
)

var transformKeys = []string{string(TransformKindSearch), string(TransformKindScript), string(TransformKindChain)}

// Transform reshapes the watch payload before actions run.
type Transform interface {
	TransformKind() TransformKind
	// IntoContainer wraps the transform in the container slot it belongs to.
	IntoContainer() TransformContainer
}

// TransformContainer holds at most one transform.
type TransformContainer struct {
	transform Transform
}

// Kind returns the populated slot, or "" when empty.
func (c TransformContainer) Kind() TransformKind {
	if c.transform == nil {
		return ""
	}
	return c.transform.TransformKind()
}

// IsEmpty reports whether no slot is populated.
func (c TransformContainer) IsEmpty() bool { return c.transform == nil }

// Transform returns the held transform, or nil.
func (c TransformContainer) Transform() Transform { return c.transform }

// Search returns the search slot.
func (c TransformContainer) Search() (SearchTransform, bool) {
	v, ok := c.transform.(SearchTransform)
	if ok {
		v = v.clone()
	}
	return v, ok
}

// Script returns the script slot.
func (c TransformContainer) Script() (ScriptTransform, bool) {
	v, ok := c.transform.(ScriptTransform)
	if ok {
		v = v.clone()
	}
	return v, ok
}

// Chain returns the chain slot.
func (c TransformContainer) Chain() (ChainTransform, bool) {
	v, ok := c.transform.(ChainTransform)
	if ok {
		v = v.clone()
	}
	return v, ok
}

// MarshalJSON implements json.Marshaler.
func (c TransformContainer) MarshalJSON() ([]byte, error) {
	return encodeVariant(string(c.Kind()), c.transform)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *TransformContainer) UnmarshalJSON(data []byte) error {
	key, raw, err := decodeVariant("transform", data, transformKeys)
	if err != nil {
		return err
	}
	var tr Transform
	switch TransformKind(key) {
	case TransformKindSearch:
		var v SearchTransform
		err = decodePayload("transform", key, raw, &v)
		tr = v
	case TransformKindScript:
		var v ScriptTransform
		err = decodePayload("transform", key, raw, &v)
		tr = v
	case TransformKindChain:
		var v ChainTransform
		err = decodePayload("transform", key, raw, &v)
		tr = v
	}
	if err != nil {
		return err
	}
	c.transform = tr
	return nil
}

func (c TransformContainer) clone() TransformContainer {
	if c.transform == nil {
		return c
	}
	return c.transform.IntoContainer()
}

// SearchTransform replaces the payload with the result of a search.
type SearchTransform struct {
	SearchType     SearchType      `json:"search_type,omitempty"`
	Indices        []string        `json:"indices,omitempty"`
	IndicesOptions *IndicesOptions `json:"indices_options,omitempty"`
	Types          []string        `json:"type,omitempty"`
	Body           map[string]any  `json:"body,omitempty"`
	Template       *SearchTemplate `json:"template,omitempty"`
}

// TransformKind implements Transform.
func (SearchTransform) TransformKind() TransformKind { return TransformKindSearch }
// IntoContainer wraps a copy of the search transform in a TransformContainer.
func (t SearchTransform) IntoContainer() TransformContainer {
	return TransformContainer{transform: t.clone()}
}

func (t SearchTransform) clone() SearchTransform {
	t.Indices = utils.CloneStrings(t.Indices)
	t.Types = utils.CloneStrings(t.Types)
	t.Body = utils.CloneAnyMap(t.Body)
	if t.IndicesOptions != nil {
		o := t.IndicesOptions.clone()
		t.IndicesOptions = &o
	}
	if t.Template != nil {
		tpl := t.Template.clone()
		t.Template = &tpl
	}
	return t
}

// ScriptTransform replaces the payload with the result of a script.
type ScriptTransform struct {
	Script
}

// TransformKind implements Transform.
func (ScriptTransform) TransformKind() TransformKind { return TransformKindScript }
// IntoContainer wraps a copy of the script transform in a TransformContainer.
func (t ScriptTransform) IntoContainer() TransformContainer {
	return TransformContainer{transform: t.clone()}
}

func (t ScriptTransform) clone() ScriptTransform {
	return ScriptTransform{Script: t.Script.clone()}
}

// ChainTransform runs transforms in order, each seeing the previous output.
// It serializes as a JSON array of transform containers.
type ChainTransform struct {
	Transforms []TransformContainer
}

// TransformKind implements Transform.
func (ChainTransform) TransformKind() TransformKind { return TransformKindChain }
// IntoContainer wraps a copy of the chain transform in a TransformContainer.
func (t ChainTransform) IntoContainer() TransformContainer {
	return TransformContainer{transform: t.clone()}
}

func (t ChainTransform) clone() ChainTransform {
	if t.Transforms == nil {
		return t
	}
	out := make([]TransformContainer, len(t.Transforms))
	for i, c := range t.Transforms {
		out[i] = c.clone()
	}
	return ChainTransform{Transforms: out}
}

// MarshalJSON implements json.Marshaler.
func (t ChainTransform) MarshalJSON() ([]byte, error) {
	if t.Transforms == nil {
		return []byte("[]"), nil
	}
	return utils.Marshal(t.Transforms)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *ChainTransform) UnmarshalJSON(data []byte) error {
	var items []TransformContainer
	if err := utils.Unmarshal(data, &items); err != nil {
		return err
	}
	if len(items) == 0 {
		items = nil
	}
	t.Transforms = items
	return nil
}

// SearchTransformBuilder builds a SearchTransform.
type SearchTransformBuilder struct {
	t SearchTransform
}

// NewSearchTransformBuilder returns an empty builder.
func NewSearchTransformBuilder() *SearchTransformBuilder {
	return &SearchTransformBuilder{}
}

// SearchType sets the search type.
func (b *SearchTransformBuilder) SearchType(t SearchType) *SearchTransformBuilder {
	b.t.SearchType = t
	return b
}

// Indices sets the indices.
func (b *SearchTransformBuilder) Indices(indices ...string) *SearchTransformBuilder {
	b.t.Indices = utils.CloneStrings(indices)
	return b
}

// IndicesOptionsWith configures the indices options through a builder.
func (b *SearchTransformBuilder) IndicesOptionsWith(fn func(*IndicesOptionsBuilder)) *SearchTransformBuilder {
	ob := NewIndicesOptionsBuilder()
	fn(ob)
	opts := ob.Build()
	b.t.IndicesOptions = &opts
	return b
}

// Types sets the types.
func (b *SearchTransformBuilder) Types(types ...string) *SearchTransformBuilder {
	b.t.Types = utils.CloneStrings(types)
	return b
}

// Body sets the body.
func (b *SearchTransformBuilder) Body(body map[string]any) *SearchTransformBuilder {
	b.t.Body = utils.CloneAnyMap(body)
	return b
}

// Template sets the template.
func (b *SearchTransformBuilder) Template(t SearchTemplate) *SearchTransformBuilder {
	t = t.clone()
	b.t.Template = &t
	return b
}

// Build returns the built SearchTransform.
func (b *SearchTransformBuilder) Build() SearchTransform {
	return b.t.clone()
}

// ScriptTransformBuilder builds a ScriptTransform.
type ScriptTransformBuilder struct {
	t ScriptTransform
}

// NewScriptTransformBuilder returns an empty builder.
func NewScriptTransformBuilder() *ScriptTransformBuilder {
	return &ScriptTransformBuilder{}
}

// Source sets the inline script source.
func (b *ScriptTransformBuilder) Source(source string) *ScriptTransformBuilder {
	b.t.Source = source
	return b
}

// ID references a stored script.
func (b *ScriptTransformBuilder) ID(id string) *ScriptTransformBuilder {
	b.t.ID = id
	return b
}

// Lang sets the lang.
func (b *ScriptTransformBuilder) Lang(lang string) *ScriptTransformBuilder {
	b.t.Lang = lang
	return b
}

// Param sets one script parameter.
func (b *ScriptTransformBuilder) Param(name string, value any) *ScriptTransformBuilder {
	if b.t.Params == nil {
		b.t.Params = make(map[string]any)
	}
	b.t.Params[name] = value
	return b
}

// Build returns the built ScriptTransform.
func (b *ScriptTransformBuilder) Build() ScriptTransform {
	return b.t.clone()
}

// ChainTransformBuilder builds a ChainTransform.
type ChainTransformBuilder struct {
	t ChainTransform
}

// NewChainTransformBuilder returns an empty builder.
func NewChainTransformBuilder() *ChainTransformBuilder {
	return &ChainTransformBuilder{}
}

// Add appends a transform to the chain.
func (b *ChainTransformBuilder) Add(t Transform) *ChainTransformBuilder {
	if t == nil {
		return b
	}
	b.t.Transforms = append(b.t.Transforms, t.IntoContainer())
	return b
}

// Build returns the built ChainTransform.
func (b *ChainTransformBuilder) Build() ChainTransform {
	return b.t.clone()
}

// TransformBuilder selects one transform kind. Each selector replaces the previous one.
type TransformBuilder struct {
	c TransformContainer
}

// NewTransformBuilder returns an empty builder.
func NewTransformBuilder() *TransformBuilder {
	return &TransformBuilder{}
}

// Search selects the search kind.
func (b *TransformBuilder) Search(fn func(*SearchTransformBuilder)) *TransformBuilder {
	tb := NewSearchTransformBuilder()
	fn(tb)
	b.c = tb.Build().IntoContainer()
	return b
}

// Script selects the script kind.
func (b *TransformBuilder) Script(fn func(*ScriptTransformBuilder)) *TransformBuilder {
	tb := NewScriptTransformBuilder()
	fn(tb)
	b.c = tb.Build().IntoContainer()
	return b
}

// Chain selects the chain kind.
func (b *TransformBuilder) Chain(fn func(*ChainTransformBuilder)) *TransformBuilder {
	tb := NewChainTransformBuilder()
	fn(tb)
	b.c = tb.Build().IntoContainer()
	return b
}

// Build returns the built TransformContainer.
func (b *TransformBuilder) Build() TransformContainer {
	return b.c
}
