package watcher

import (
	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// enumTable maps enum ordinals to their wire strings. Index 0 is the unset value.
type enumTable[E ~uint8] struct {
	name string
	wire []string
}

func (t enumTable[E]) wireOf(e E) string {
	if int(e) <= 0 || int(e) >= len(t.wire) {
		return ""
	}
	return t.wire[e]
}

func (t enumTable[E]) parse(s string) (E, error) {
	for i := 1; i < len(t.wire); i++ {
		if t.wire[i] == s {
			return E(i), nil
		}
	}
	return 0, NewUnknownEnumError(t.name, s)
}

func (t enumTable[E]) marshal(e E) ([]byte, error) {
	s := t.wireOf(e)
	if s == "" {
		return nil, NewUnsetEnumError(t.name)
	}
	return utils.Marshal(s)
}

func (t enumTable[E]) unmarshal(data []byte, dst *E) error {
	if utils.IsNull(data) {
		return nil
	}
	var s string
	if err := utils.Unmarshal(data, &s); err != nil {
		return NewInvalidJSONError(t.name, "expected a string", err)
	}
	v, err := t.parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// ConnectionScheme is the URL scheme of a watcher HTTP request.
type ConnectionScheme uint8

const (
	SchemeHTTP ConnectionScheme = iota + 1
	SchemeHTTPS
)

var connectionSchemes = enumTable[ConnectionScheme]{name: "connection_scheme", wire: []string{"", "http", "https"}}

// ParseConnectionScheme returns the scheme for a wire string.
func ParseConnectionScheme(s string) (ConnectionScheme, error) { return connectionSchemes.parse(s) }

// String returns the wire name, or "" when unset.
func (e ConnectionScheme) String() string { return connectionSchemes.wireOf(e) }
// MarshalJSON implements json.Marshaler.
func (e ConnectionScheme) MarshalJSON() ([]byte, error) { return connectionSchemes.marshal(e) }
// UnmarshalJSON implements json.Unmarshaler.
func (e *ConnectionScheme) UnmarshalJSON(b []byte) error { return connectionSchemes.unmarshal(b, e) }

// HTTPMethod is the method of a watcher HTTP request. The server defaults to get.
type HTTPMethod uint8

const (
	MethodHead HTTPMethod = iota + 1
	MethodGet
	MethodPost
	MethodPut
	MethodDelete
)

var httpMethods = enumTable[HTTPMethod]{name: "http_method", wire: []string{"", "head", "get", "post", "put", "delete"}}

// ParseHTTPMethod returns the method for a wire string.
func ParseHTTPMethod(s string) (HTTPMethod, error) { return httpMethods.parse(s) }

// String returns the wire name, or "" when unset.
func (e HTTPMethod) String() string { return httpMethods.wireOf(e) }
// MarshalJSON implements json.Marshaler.
func (e HTTPMethod) MarshalJSON() ([]byte, error) { return httpMethods.marshal(e) }
// UnmarshalJSON implements json.Unmarshaler.
func (e *HTTPMethod) UnmarshalJSON(b []byte) error { return httpMethods.unmarshal(b, e) }

// ResponseContentType overrides how the server parses an HTTP response body.
type ResponseContentType uint8

const (
	ContentTypeJSON ResponseContentType = iota + 1
	ContentTypeYAML
	ContentTypeText
)

var responseContentTypes = enumTable[ResponseContentType]{name: "response_content_type", wire: []string{"", "json", "yaml", "text"}}

// ParseResponseContentType returns the content type for a wire string.
func ParseResponseContentType(s string) (ResponseContentType, error) {
	return responseContentTypes.parse(s)
}

// String returns the wire name, or "" when unset.
func (e ResponseContentType) String() string { return responseContentTypes.wireOf(e) }
// MarshalJSON implements json.Marshaler.
func (e ResponseContentType) MarshalJSON() ([]byte, error) { return responseContentTypes.marshal(e) }
// UnmarshalJSON implements json.Unmarshaler.
func (e *ResponseContentType) UnmarshalJSON(b []byte) error { return responseContentTypes.unmarshal(b, e) }

// ExpandWildcards controls which indices a wildcard expression expands to.
type ExpandWildcards uint8

const (
	ExpandOpen ExpandWildcards = iota + 1
	ExpandClosed
	ExpandNone
	ExpandAll
)

var expandWildcards = enumTable[ExpandWildcards]{name: "expand_wildcards", wire: []string{"", "open", "closed", "none", "all"}}

// ParseExpandWildcards returns the expansion mode for a wire string.
func ParseExpandWildcards(s string) (ExpandWildcards, error) { return expandWildcards.parse(s) }

// String returns the wire name, or "" when unset.
func (e ExpandWildcards) String() string { return expandWildcards.wireOf(e) }
// MarshalJSON implements json.Marshaler.
func (e ExpandWildcards) MarshalJSON() ([]byte, error) { return expandWildcards.marshal(e) }
// UnmarshalJSON implements json.Unmarshaler.
func (e *ExpandWildcards) UnmarshalJSON(b []byte) error { return expandWildcards.unmarshal(b, e) }

// SearchType selects the distributed scoring strategy of a search.
type SearchType uint8

const (
	SearchQueryThenFetch SearchType = iota + 1
	SearchDFSQueryThenFetch
)

var searchTypes = enumTable[SearchType]{name: "search_type", wire: []string{"", "query_then_fetch", "dfs_query_then_fetch"}}

// ParseSearchType returns the search type for a wire string.
func ParseSearchType(s string) (SearchType, error) { return searchTypes.parse(s) }

// String returns the wire name, or "" when unset.
func (e SearchType) String() string { return searchTypes.wireOf(e) }
// MarshalJSON implements json.Marshaler.
func (e SearchType) MarshalJSON() ([]byte, error) { return searchTypes.marshal(e) }
// UnmarshalJSON implements json.Unmarshaler.
func (e *SearchType) UnmarshalJSON(b []byte) error { return searchTypes.unmarshal(b, e) }

// CompareOp is the operator of a compare condition.
type CompareOp uint8

const (
	CompareEq CompareOp = iota + 1
	CompareNotEq
	CompareGt
	CompareGte
	CompareLt
	CompareLte
)

var compareOps = enumTable[CompareOp]{name: "compare_op", wire: []string{"", "eq", "not_eq", "gt", "gte", "lt", "lte"}}

// ParseCompareOp returns the operator for a wire string.
func ParseCompareOp(s string) (CompareOp, error) { return compareOps.parse(s) }

// String returns the wire name, or "" when unset.
func (e CompareOp) String() string { return compareOps.wireOf(e) }
// MarshalJSON implements json.Marshaler.
func (e CompareOp) MarshalJSON() ([]byte, error) { return compareOps.marshal(e) }
// UnmarshalJSON implements json.Unmarshaler.
func (e *CompareOp) UnmarshalJSON(b []byte) error { return compareOps.unmarshal(b, e) }

// LoggingLevel is the level a logging action writes at.
type LoggingLevel uint8

const (
	LevelError LoggingLevel = iota + 1
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var loggingLevels = enumTable[LoggingLevel]{name: "logging_level", wire: []string{"", "error", "warn", "info", "debug", "trace"}}

// ParseLoggingLevel returns the level for a wire string.
func ParseLoggingLevel(s string) (LoggingLevel, error) { return loggingLevels.parse(s) }

// String returns the wire name, or "" when unset.
func (e LoggingLevel) String() string { return loggingLevels.wireOf(e) }
// MarshalJSON implements json.Marshaler.
func (e LoggingLevel) MarshalJSON() ([]byte, error) { return loggingLevels.marshal(e) }
// UnmarshalJSON implements json.Unmarshaler.
func (e *LoggingLevel) UnmarshalJSON(b []byte) error { return loggingLevels.unmarshal(b, e) }

// EmailPriority is the priority header of an email action.
type EmailPriority uint8

const (
	PriorityLowest EmailPriority = iota + 1
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityHighest
)

var emailPriorities = enumTable[EmailPriority]{name: "email_priority", wire: []string{"", "lowest", "low", "normal", "high", "highest"}}

// ParseEmailPriority returns the priority for a wire string.
func ParseEmailPriority(s string) (EmailPriority, error) { return emailPriorities.parse(s) }

// String returns the wire name, or "" when unset.
func (e EmailPriority) String() string { return emailPriorities.wireOf(e) }
// MarshalJSON implements json.Marshaler.
func (e EmailPriority) MarshalJSON() ([]byte, error) { return emailPriorities.marshal(e) }
// UnmarshalJSON implements json.Unmarshaler.
func (e *EmailPriority) UnmarshalJSON(b []byte) error { return emailPriorities.unmarshal(b, e) }

// AckState is the acknowledgement state the server reports for an action.
// It is read-only and kept open so new server states do not break decoding.
type AckState string

const (
	AckAwaitsSuccessfulExecution AckState = "awaits_successful_execution"
	AckAckable                   AckState = "ackable"
	AckAcked                     AckState = "acked"
)
