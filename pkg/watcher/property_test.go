package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

func drawParams(t *rapid.T) Params {
	keys := rapid.SliceOfDistinct(rapid.StringMatching(`[a-z_]{1,8}`), func(s string) string { return s }).Draw(t, "paramKeys")
	if len(keys) == 0 {
		return nil
	}
	params := make(Params, len(keys))
	for _, k := range keys {
		switch rapid.IntRange(0, 2).Draw(t, "paramKind") {
		case 0:
			params[k] = StringParam(rapid.String().Draw(t, "s"))
		case 1:
			params[k] = NumberParam(float64(rapid.IntRange(-100000, 100000).Draw(t, "n")))
		default:
			params[k] = BoolParam(rapid.Bool().Draw(t, "b"))
		}
	}
	return params
}

func drawHTTPRequest(t *rapid.T) WatcherHTTPRequest {
	req := WatcherHTTPRequest{
		Scheme: ConnectionScheme(rapid.IntRange(0, 2).Draw(t, "scheme")),
		Host:   rapid.StringMatching(`[a-z]{1,10}(\.[a-z]{2,5})?`).Draw(t, "host"),
		Port:   rapid.IntRange(0, 65535).Draw(t, "port"),
		Path:   rapid.StringMatching(`(/[a-z_{}.]{1,8}){0,3}`).Draw(t, "path"),
		Method: HTTPMethod(rapid.IntRange(0, 5).Draw(t, "method")),
		Params: drawParams(t),
		Body:   rapid.String().Draw(t, "body"),
	}
	headers := rapid.MapOf(rapid.StringMatching(`X-[A-Z][a-z]{1,6}`), rapid.String()).Draw(t, "headers")
	if len(headers) > 0 {
		req.Headers = headers
	}
	if rapid.Bool().Draw(t, "auth") {
		req.Authentication = &WatcherAuthentication{Basic: &WatcherBasicAuthentication{
			Username: rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "user"),
			Password: rapid.String().Draw(t, "password"),
		}}
	}
	if rapid.Bool().Draw(t, "proxy") {
		port := rapid.IntRange(1, 65535).Draw(t, "proxyPort")
		req.Proxy = &WatcherProxy{Host: "proxy.local", Port: &port}
	}
	if rapid.Bool().Draw(t, "timeouts") {
		req.ConnectionTimeout = NewTime(time.Duration(rapid.SampledFrom([]int{1, 5, 30}).Draw(t, "ct")) * time.Second)
		req.ReadTimeout = "1m"
	}
	return req
}

func TestProperty_HTTPInputRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := HTTPInput{Request: drawHTTPRequest(t)}
		extract := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,5}(\.[a-z]{1,5})?`)).Draw(t, "extract")
		if len(extract) > 0 {
			in.Extract = extract
		}
		c := in.IntoContainer()

		data, err := utils.Marshal(c)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back InputContainer
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		require.Equal(t, c, back)
	})
}

func TestProperty_WebhookActionRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := WebhookAction{WatcherHTTPRequest: drawHTTPRequest(t)}.IntoAction()
		data, err := a.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Action
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		require.Equal(t, a, back)
	})
}

func TestProperty_ActionNamesKeepOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Za-z_][A-Za-z0-9_-]{0,10}`), 1, 8,
			func(s string) string { return s }).Draw(t, "names")

		var actions Actions
		for _, name := range names {
			actions.Add(name, IndexAction{Index: "idx", DocID: name, Timeout: NewTime(0)}.IntoAction())
		}
		data, err := actions.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Actions
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		require.Equal(t, names, back.Names())
		require.Equal(t, actions, back)
	})
}

func TestProperty_VariantKeysExclusive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfNDistinct(rapid.SampledFrom(inputKeys), 2, 3, func(s string) string { return s }).Draw(t, "keys")
		members := make([]utils.Member, 0, len(keys))
		for _, k := range keys {
			members = append(members, utils.Member{Key: k, Raw: []byte(`{}`)})
		}
		doc, err := utils.WriteObject(members)
		if err != nil {
			t.Fatalf("write: %v", err)
		}
		var c InputContainer
		if err := c.UnmarshalJSON(doc); !IsMalformedVariantError(err) {
			t.Fatalf("expected malformed variant for %s, got %v", doc, err)
		}
	})
}
