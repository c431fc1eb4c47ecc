package watcher

import (
	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// IndicesOptions controls how index expressions resolve.
type IndicesOptions struct {
	ExpandWildcards   ExpandWildcards `json:"expand_wildcards,omitempty"`
	IgnoreUnavailable *bool           `json:"ignore_unavailable,omitempty"`
	AllowNoIndices    *bool           `json:"allow_no_indices,omitempty"`
}

func (o IndicesOptions) clone() IndicesOptions {
	if o.IgnoreUnavailable != nil {
		v := *o.IgnoreUnavailable
		o.IgnoreUnavailable = &v
	}
	if o.AllowNoIndices != nil {
		v := *o.AllowNoIndices
		o.AllowNoIndices = &v
	}
	return o
}

// IndicesOptionsBuilder builds IndicesOptions.
type IndicesOptionsBuilder struct {
	opts IndicesOptions
}

// NewIndicesOptionsBuilder returns an empty builder.
func NewIndicesOptionsBuilder() *IndicesOptionsBuilder {
	return &IndicesOptionsBuilder{}
}

// ExpandWildcards sets which indices wildcards expand to.
func (b *IndicesOptionsBuilder) ExpandWildcards(e ExpandWildcards) *IndicesOptionsBuilder {
	b.opts.ExpandWildcards = e
	return b
}

// IgnoreUnavailable sets the ignore unavailable.
func (b *IndicesOptionsBuilder) IgnoreUnavailable(v bool) *IndicesOptionsBuilder {
	b.opts.IgnoreUnavailable = &v
	return b
}

// AllowNoIndices sets the allow no indices.
func (b *IndicesOptionsBuilder) AllowNoIndices(v bool) *IndicesOptionsBuilder {
	b.opts.AllowNoIndices = &v
	return b
}

// Build returns the built IndicesOptions.
func (b *IndicesOptionsBuilder) Build() IndicesOptions {
	return b.opts.clone()
}

// SearchTemplate references a stored or inline search template.
type SearchTemplate struct {
	ID     string         `json:"id,omitempty"`
	Source string         `json:"source,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

func (t SearchTemplate) clone() SearchTemplate {
	t.Params = utils.CloneAnyMap(t.Params)
	return t
}

// Script is an inline or stored script.
type Script struct {
	Source string         `json:"source,omitempty"`
	ID     string         `json:"id,omitempty"`
	Lang   string         `json:"lang,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

func (s Script) clone() Script {
	s.Params = utils.CloneAnyMap(s.Params)
	return s
}

// SearchInputRequest is the search a search input executes. Body is the
// query DSL passed through as-is.
type SearchInputRequest struct {
	SearchType     SearchType      `json:"search_type,omitempty"`
	Indices        []string        `json:"indices,omitempty"`
	Types          []string        `json:"types,omitempty"`
	IndicesOptions *IndicesOptions `json:"indices_options,omitempty"`
	Body           map[string]any  `json:"body,omitempty"`
	Template       *SearchTemplate `json:"template,omitempty"`
}

func (r SearchInputRequest) clone() SearchInputRequest {
	r.Indices = utils.CloneStrings(r.Indices)
	r.Types = utils.CloneStrings(r.Types)
	r.Body = utils.CloneAnyMap(r.Body)
	if r.IndicesOptions != nil {
		o := r.IndicesOptions.clone()
		r.IndicesOptions = &o
	}
	if r.Template != nil {
		t := r.Template.clone()
		r.Template = &t
	}
	return r
}

// SearchInputRequestBuilder builds a SearchInputRequest.
type SearchInputRequestBuilder struct {
	req SearchInputRequest
}

// NewSearchInputRequestBuilder returns an empty builder.
func NewSearchInputRequestBuilder() *SearchInputRequestBuilder {
	return &SearchInputRequestBuilder{}
}

// SearchType sets the search type.
func (b *SearchInputRequestBuilder) SearchType(t SearchType) *SearchInputRequestBuilder {
	b.req.SearchType = t
	return b
}

// Indices sets the indices.
func (b *SearchInputRequestBuilder) Indices(indices ...string) *SearchInputRequestBuilder {
	b.req.Indices = utils.CloneStrings(indices)
	return b
}

// Types sets the types.
func (b *SearchInputRequestBuilder) Types(types ...string) *SearchInputRequestBuilder {
	b.req.Types = utils.CloneStrings(types)
	return b
}

// IndicesOptions sets the indices options.
func (b *SearchInputRequestBuilder) IndicesOptions(opts IndicesOptions) *SearchInputRequestBuilder {
	opts = opts.clone()
	b.req.IndicesOptions = &opts
	return b
}

// IndicesOptionsWith configures the indices options through a builder.
func (b *SearchInputRequestBuilder) IndicesOptionsWith(fn func(*IndicesOptionsBuilder)) *SearchInputRequestBuilder {
	ob := NewIndicesOptionsBuilder()
	fn(ob)
	return b.IndicesOptions(ob.Build())
}

// Body sets the body.
func (b *SearchInputRequestBuilder) Body(body map[string]any) *SearchInputRequestBuilder {
	b.req.Body = utils.CloneAnyMap(body)
	return b
}

// Template sets the template.
func (b *SearchInputRequestBuilder) Template(t SearchTemplate) *SearchInputRequestBuilder {
	t = t.clone()
	b.req.Template = &t
	return b
}

// Build returns the built SearchInputRequest.
func (b *SearchInputRequestBuilder) Build() SearchInputRequest {
	return b.req.clone()
}
