package watcher

import (
	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// InputKind is the wire key of an input variant.
type InputKind string

const (
	InputKindHTTP   InputKind = "http"
	InputKindSearch InputKind = "search"
	InputKindSimple InputKind = "simple"
)

var inputKeys = []string{string(InputKindHTTP), string(InputKindSearch), string(InputKindSimple)}

// Input is a way for a watch to load the data it evaluates.
type Input interface {
	InputKind() InputKind
	// IntoContainer wraps the input in the container slot it belongs to.
	IntoContainer() InputContainer
}

// InputContainer holds at most one input.
type InputContainer struct {
	input Input
}

// Kind returns the populated slot, or "" when empty.
func (c InputContainer) Kind() InputKind {
	if c.input == nil {
		return ""
	}
	return c.input.InputKind()
}

// IsEmpty reports whether no slot is populated.
func (c InputContainer) IsEmpty() bool { return c.input == nil }

// Input returns the held input, or nil.
func (c InputContainer) Input() Input { return c.input }

// HTTP returns the http slot.
func (c InputContainer) HTTP() (HTTPInput, bool) {
	v, ok := c.input.(HTTPInput)
	if ok {
		v = v.clone()
	}
	return v, ok
}

// Search returns the search slot.
func (c InputContainer) Search() (SearchInput, bool) {
	v, ok := c.input.(SearchInput)
	if ok {
		v = v.clone()
	}
	return v, ok
}

// Simple returns the simple slot.
func (c InputContainer) Simple() (SimpleInput, bool) {
	v, ok := c.input.(SimpleInput)
	if ok {
		v = v.clone()
	}
	return v, ok
}

// MarshalJSON implements json.Marshaler.
func (c InputContainer) MarshalJSON() ([]byte, error) {
	return encodeVariant(string(c.Kind()), c.input)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *InputContainer) UnmarshalJSON(data []byte) error {
	key, raw, err := decodeVariant("input", data, inputKeys)
	if err != nil {
		return err
	}
	var in Input
	switch InputKind(key) {
	case InputKindHTTP:
		var v HTTPInput
		err = decodePayload("input", key, raw, &v)
		in = v
	case InputKindSearch:
		var v SearchInput
		err = decodePayload("input", key, raw, &v)
		in = v
	case InputKindSimple:
		var v SimpleInput
		err = decodePayload("input", key, raw, &v)
		in = v
	}
	if err != nil {
		return err
	}
	c.input = in
	return nil
}

func (c InputContainer) clone() InputContainer {
	if c.input == nil {
		return c
	}
	return c.input.IntoContainer()
}

// HTTPInput queries an HTTP endpoint and loads the response as the payload.
type HTTPInput struct {
	// Extract limits the payload to these dotted key paths.
	Extract []string           `json:"extract,omitempty"`
	Request WatcherHTTPRequest `json:"request"`
}

// InputKind implements Input.
func (HTTPInput) InputKind() InputKind { return InputKindHTTP }
// IntoContainer wraps a copy of the HTTP input in an InputContainer.
func (i HTTPInput) IntoContainer() InputContainer { return InputContainer{input: i.clone()} }

func (i HTTPInput) clone() HTTPInput {
	i.Extract = utils.CloneStrings(i.Extract)
	i.Request = i.Request.clone()
	return i
}

// SearchInput runs a search and loads the response as the payload.
type SearchInput struct {
	Extract []string           `json:"extract,omitempty"`
	Request SearchInputRequest `json:"request"`
	Timeout Time               `json:"timeout,omitempty"`
}

// InputKind implements Input.
func (SearchInput) InputKind() InputKind { return InputKindSearch }
// IntoContainer wraps a copy of the search input in an InputContainer.
func (i SearchInput) IntoContainer() InputContainer { return InputContainer{input: i.clone()} }

func (i SearchInput) clone() SearchInput {
	i.Extract = utils.CloneStrings(i.Extract)
	i.Request = i.Request.clone()
	return i
}

// SimpleInput loads a static payload. It serializes as the bare payload object.
type SimpleInput struct {
	Payload map[string]any
}

// InputKind implements Input.
func (SimpleInput) InputKind() InputKind { return InputKindSimple }
// IntoContainer wraps a copy of the simple input in an InputContainer.
func (i SimpleInput) IntoContainer() InputContainer { return InputContainer{input: i.clone()} }

func (i SimpleInput) clone() SimpleInput {
	i.Payload = utils.CloneAnyMap(i.Payload)
	return i
}

// MarshalJSON implements json.Marshaler.
func (i SimpleInput) MarshalJSON() ([]byte, error) {
	if i.Payload == nil {
		return []byte("{}"), nil
	}
	return utils.Marshal(i.Payload)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *SimpleInput) UnmarshalJSON(data []byte) error {
	var payload map[string]any
	if err := utils.Unmarshal(data, &payload); err != nil {
		return NewInvalidJSONError("simple_input", "expected a json object", err)
	}
	if len(payload) == 0 {
		payload = nil
	}
	i.Payload = payload
	return nil
}

// HTTPInputBuilder builds an HTTPInput.
type HTTPInputBuilder struct {
	in HTTPInput
}

// NewHTTPInputBuilder returns an empty builder.
func NewHTTPInputBuilder() *HTTPInputBuilder {
	return &HTTPInputBuilder{}
}

// Request sets the request.
func (b *HTTPInputBuilder) Request(req WatcherHTTPRequest) *HTTPInputBuilder {
	b.in.Request = req.clone()
	return b
}

// RequestWith configures the request through a builder.
func (b *HTTPInputBuilder) RequestWith(fn func(*WatcherHTTPRequestBuilder)) *HTTPInputBuilder {
	rb := NewWatcherHTTPRequestBuilder()
	fn(rb)
	b.in.Request = rb.Build()
	return b
}

// Extract keeps only these dotted key paths of the response.
func (b *HTTPInputBuilder) Extract(paths ...string) *HTTPInputBuilder {
	b.in.Extract = utils.CloneStrings(paths)
	return b
}

// Build returns the built HTTPInput.
func (b *HTTPInputBuilder) Build() HTTPInput {
	return b.in.clone()
}

// SearchInputBuilder builds a SearchInput.
type SearchInputBuilder struct {
	in SearchInput
}

// NewSearchInputBuilder returns an empty builder.
func NewSearchInputBuilder() *SearchInputBuilder {
	return &SearchInputBuilder{}
}

// Request sets the request.
func (b *SearchInputBuilder) Request(req SearchInputRequest) *SearchInputBuilder {
	b.in.Request = req.clone()
	return b
}

// RequestWith configures the request through a builder.
func (b *SearchInputBuilder) RequestWith(fn func(*SearchInputRequestBuilder)) *SearchInputBuilder {
	rb := NewSearchInputRequestBuilder()
	fn(rb)
	b.in.Request = rb.Build()
	return b
}

// Extract keeps only these dotted key paths of the response.
func (b *SearchInputBuilder) Extract(paths ...string) *SearchInputBuilder {
	b.in.Extract = utils.CloneStrings(paths)
	return b
}

// Timeout bounds the search.
func (b *SearchInputBuilder) Timeout(t Time) *SearchInputBuilder {
	b.in.Timeout = t
	return b
}

// Build returns the built SearchInput.
func (b *SearchInputBuilder) Build() SearchInput {
	return b.in.clone()
}

// SimpleInputBuilder builds a SimpleInput.
type SimpleInputBuilder struct {
	in SimpleInput
}

// NewSimpleInputBuilder returns an empty builder.
func NewSimpleInputBuilder() *SimpleInputBuilder {
	return &SimpleInputBuilder{}
}

// Set adds one payload field.
func (b *SimpleInputBuilder) Set(key string, value any) *SimpleInputBuilder {
	if b.in.Payload == nil {
		b.in.Payload = make(map[string]any)
	}
	b.in.Payload[key] = value
	return b
}

// Payload replaces the whole payload.
func (b *SimpleInputBuilder) Payload(payload map[string]any) *SimpleInputBuilder {
	b.in.Payload = utils.CloneAnyMap(payload)
	return b
}

// Build returns the built SimpleInput.
func (b *SimpleInputBuilder) Build() SimpleInput {
	return b.in.clone()
}

// InputBuilder selects one input kind. Each selector replaces the previous one.
type InputBuilder struct {
	c InputContainer
}

// NewInputBuilder returns an empty builder.
func NewInputBuilder() *InputBuilder {
	return &InputBuilder{}
}

// HTTP selects the HTTP kind.
func (b *InputBuilder) HTTP(fn func(*HTTPInputBuilder)) *InputBuilder {
	ib := NewHTTPInputBuilder()
	fn(ib)
	b.c = ib.Build().IntoContainer()
	return b
}

// Search selects the search kind.
func (b *InputBuilder) Search(fn func(*SearchInputBuilder)) *InputBuilder {
	ib := NewSearchInputBuilder()
	fn(ib)
	b.c = ib.Build().IntoContainer()
	return b
}

// Simple selects the simple kind.
func (b *InputBuilder) Simple(fn func(*SimpleInputBuilder)) *InputBuilder {
	ib := NewSimpleInputBuilder()
	fn(ib)
	b.c = ib.Build().IntoContainer()
	return b
}

// Build returns the built InputContainer.
func (b *InputBuilder) Build() InputContainer {
	return b.c
}
