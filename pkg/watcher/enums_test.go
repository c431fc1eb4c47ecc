package watcher

import (
	"testing"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

type enumCase struct {
	name  string
	wire  []string
	parse func(string) (string, error)
}

func enumCases() []enumCase {
	return []enumCase{
		{"connection_scheme", connectionSchemes.wire[1:], func(s string) (string, error) {
			v, err := ParseConnectionScheme(s)
			return v.String(), err
		}},
		{"http_method", httpMethods.wire[1:], func(s string) (string, error) {
			v, err := ParseHTTPMethod(s)
			return v.String(), err
		}},
		{"response_content_type", responseContentTypes.wire[1:], func(s string) (string, error) {
			v, err := ParseResponseContentType(s)
			return v.String(), err
		}},
		{"expand_wildcards", expandWildcards.wire[1:], func(s string) (string, error) {
			v, err := ParseExpandWildcards(s)
			return v.String(), err
		}},
		{"search_type", searchTypes.wire[1:], func(s string) (string, error) {
			v, err := ParseSearchType(s)
			return v.String(), err
		}},
		{"compare_op", compareOps.wire[1:], func(s string) (string, error) {
			v, err := ParseCompareOp(s)
			return v.String(), err
		}},
		{"logging_level", loggingLevels.wire[1:], func(s string) (string, error) {
			v, err := ParseLoggingLevel(s)
			return v.String(), err
		}},
		{"email_priority", emailPriorities.wire[1:], func(s string) (string, error) {
			v, err := ParseEmailPriority(s)
			return v.String(), err
		}},
	}
}

func TestEnums_WireNames(t *testing.T) {
	assert.Equal(t, []string{"http", "https"}, connectionSchemes.wire[1:])
	assert.Equal(t, []string{"head", "get", "post", "put", "delete"}, httpMethods.wire[1:])
	assert.Equal(t, []string{"json", "yaml", "text"}, responseContentTypes.wire[1:])
	assert.Equal(t, []string{"open", "closed", "none", "all"}, expandWildcards.wire[1:])

	for _, tc := range enumCases() {
		t.Run(tc.name, func(t *testing.T) {
			for _, w := range tc.wire {
				got, err := tc.parse(w)
				require.NoError(t, err)
				assert.Equal(t, w, got)
			}
		})
	}
}

func TestEnums_UnknownValue(t *testing.T) {
	var m HTTPMethod
	err := m.UnmarshalJSON([]byte(`"GET"`))
	require.Error(t, err)
	assert.True(t, IsUnknownEnumError(err))

	var s ConnectionScheme
	err = s.UnmarshalJSON([]byte(`"ftp"`))
	require.Error(t, err)
	assert.True(t, IsUnknownEnumError(err))

	err = s.UnmarshalJSON([]byte(`1`))
	require.Error(t, err)
	assert.True(t, IsInvalidJSONError(err))
}

func TestEnums_NullLeavesValue(t *testing.T) {
	m := MethodPost
	require.NoError(t, m.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, MethodPost, m)
}

func TestEnums_UnsetValue(t *testing.T) {
	_, err := HTTPMethod(0).MarshalJSON()
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrCodeUnsetEnum, e.Code)

	data, err := utils.Marshal(WatcherHTTPRequest{Host: "h"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"host":"h"}`, string(data))
}

func TestEnums_MarshalUsesWireName(t *testing.T) {
	data, err := utils.Marshal(WatcherHTTPRequest{Scheme: SchemeHTTPS, Method: MethodDelete, ResponseContentType: ContentTypeText})
	require.NoError(t, err)
	assert.JSONEq(t, `{"scheme":"https","method":"delete","response_content_type":"text"}`, string(data))
}

func TestEnums_RandomStringsRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cases := enumCases()
		tc := cases[rapid.IntRange(0, len(cases)-1).Draw(t, "enum")]
		s := rapid.String().Draw(t, "value")
		if slice.Contain(tc.wire, s) {
			t.Skip("known wire name")
		}
		if _, err := tc.parse(s); !IsUnknownEnumError(err) {
			t.Fatalf("%s: expected unknown enum error for %q, got %v", tc.name, s, err)
		}
	})
}
