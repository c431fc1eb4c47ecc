package watcher

import (
	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// WatcherHTTPRequest describes an HTTP call the server makes on behalf of a
// watch, either to fetch input or as a webhook action.
type WatcherHTTPRequest struct {
	// Scheme is the url scheme.
	Scheme ConnectionScheme `json:"scheme,omitempty"`
	// Port the http service is listening on. Required unless URL is set.
	Port int `json:"port,omitempty"`
	// Host to connect to. Required unless URL is set.
	Host string `json:"host,omitempty"`
	// Path may be static text or contain mustache templates.
	// Query string parameters belong in Params.
	Path string `json:"path,omitempty"`
	// Method defaults to get on the server.
	Method HTTPMethod `json:"method,omitempty"`
	// Headers values may contain mustache templates.
	Headers map[string]string `json:"headers,omitempty"`
	// Params are the url query string parameters.
	Params Params `json:"params,omitempty"`
	// URL sets scheme, host, port and params at once. Do not combine it
	// with the individual fields; the server may let one overwrite the other.
	URL            string                 `json:"url,omitempty"`
	Authentication *WatcherAuthentication `json:"auth,omitempty"`
	Proxy          *WatcherProxy          `json:"proxy,omitempty"`
	// ConnectionTimeout bounds connection setup. The input fails when it elapses.
	ConnectionTimeout Time `json:"connection_timeout,omitempty"`
	// ReadTimeout bounds waiting for a response.
	ReadTimeout Time `json:"read_timeout,omitempty"`
	// Body may contain mustache templates.
	Body string `json:"body,omitempty"`
	// ResponseContentType overrides the response Content-Type header. With
	// text, an input may not declare extract keys.
	ResponseContentType ResponseContentType `json:"response_content_type,omitempty"`
}

func (r WatcherHTTPRequest) clone() WatcherHTTPRequest {
	out := r
	out.Headers = utils.CloneStringMap(r.Headers)
	out.Params = r.Params.clone()
	if r.Authentication != nil {
		auth := r.Authentication.clone()
		out.Authentication = &auth
	}
	if r.Proxy != nil {
		proxy := r.Proxy.clone()
		out.Proxy = &proxy
	}
	return out
}

// WatcherAuthentication holds authentication for a watcher HTTP request.
// Basic is the only scheme the server supports.
type WatcherAuthentication struct {
	Basic *WatcherBasicAuthentication `json:"basic,omitempty"`
}

func (a WatcherAuthentication) clone() WatcherAuthentication {
	if a.Basic != nil {
		basic := *a.Basic
		a.Basic = &basic
	}
	return a
}

// WatcherBasicAuthentication is HTTP basic authentication.
type WatcherBasicAuthentication struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// WatcherProxy is the proxy used to reach the host.
type WatcherProxy struct {
	Host string `json:"host,omitempty"`
	Port *int   `json:"port,omitempty"`
}

func (p WatcherProxy) clone() WatcherProxy {
	if p.Port != nil {
		port := *p.Port
		p.Port = &port
	}
	return p
}

// WatcherHTTPRequestBuilder builds a WatcherHTTPRequest.
type WatcherHTTPRequestBuilder struct {
	req WatcherHTTPRequest
}

// NewWatcherHTTPRequestBuilder returns an empty builder.
func NewWatcherHTTPRequestBuilder() *WatcherHTTPRequestBuilder {
	return &WatcherHTTPRequestBuilder{}
}

// Scheme sets the scheme.
func (b *WatcherHTTPRequestBuilder) Scheme(scheme ConnectionScheme) *WatcherHTTPRequestBuilder {
	b.req.Scheme = scheme
	return b
}

// Host sets the host.
func (b *WatcherHTTPRequestBuilder) Host(host string) *WatcherHTTPRequestBuilder {
	b.req.Host = host
	return b
}

// Port sets the port.
func (b *WatcherHTTPRequestBuilder) Port(port int) *WatcherHTTPRequestBuilder {
	b.req.Port = port
	return b
}

// Path sets the path.
func (b *WatcherHTTPRequestBuilder) Path(path string) *WatcherHTTPRequestBuilder {
	b.req.Path = path
	return b
}

// Method sets the method.
func (b *WatcherHTTPRequestBuilder) Method(method HTTPMethod) *WatcherHTTPRequestBuilder {
	b.req.Method = method
	return b
}

// Header sets a single header, keeping the others.
func (b *WatcherHTTPRequestBuilder) Header(name, value string) *WatcherHTTPRequestBuilder {
	if b.req.Headers == nil {
		b.req.Headers = make(map[string]string)
	}
	b.req.Headers[name] = value
	return b
}

// Headers replaces all headers.
func (b *WatcherHTTPRequestBuilder) Headers(headers map[string]string) *WatcherHTTPRequestBuilder {
	b.req.Headers = utils.CloneStringMap(headers)
	return b
}

// Param sets a single query parameter, keeping the others.
func (b *WatcherHTTPRequestBuilder) Param(name string, value ParamValue) *WatcherHTTPRequestBuilder {
	if b.req.Params == nil {
		b.req.Params = make(Params)
	}
	b.req.Params[name] = value
	return b
}

// Params replaces all query parameters.
func (b *WatcherHTTPRequestBuilder) Params(params Params) *WatcherHTTPRequestBuilder {
	b.req.Params = params.clone()
	return b
}

// URL sets the full url. Do not combine it with Scheme, Host or Port.
func (b *WatcherHTTPRequestBuilder) URL(url string) *WatcherHTTPRequestBuilder {
	b.req.URL = url
	return b
}

// Authentication sets the authentication.
func (b *WatcherHTTPRequestBuilder) Authentication(auth WatcherAuthentication) *WatcherHTTPRequestBuilder {
	auth = auth.clone()
	b.req.Authentication = &auth
	return b
}

// AuthenticationWith configures authentication through a builder.
func (b *WatcherHTTPRequestBuilder) AuthenticationWith(fn func(*WatcherAuthenticationBuilder)) *WatcherHTTPRequestBuilder {
	ab := NewWatcherAuthenticationBuilder()
	fn(ab)
	return b.Authentication(ab.Build())
}

// Proxy sets the proxy.
func (b *WatcherHTTPRequestBuilder) Proxy(proxy WatcherProxy) *WatcherHTTPRequestBuilder {
	proxy = proxy.clone()
	b.req.Proxy = &proxy
	return b
}

// ProxyWith configures the proxy through a builder.
func (b *WatcherHTTPRequestBuilder) ProxyWith(fn func(*WatcherProxyBuilder)) *WatcherHTTPRequestBuilder {
	pb := NewWatcherProxyBuilder()
	fn(pb)
	return b.Proxy(pb.Build())
}

// ConnectionTimeout sets the connection timeout.
func (b *WatcherHTTPRequestBuilder) ConnectionTimeout(t Time) *WatcherHTTPRequestBuilder {
	b.req.ConnectionTimeout = t
	return b
}

// ReadTimeout sets the read timeout.
func (b *WatcherHTTPRequestBuilder) ReadTimeout(t Time) *WatcherHTTPRequestBuilder {
	b.req.ReadTimeout = t
	return b
}

// Body sets the request body.
func (b *WatcherHTTPRequestBuilder) Body(body string) *WatcherHTTPRequestBuilder {
	b.req.Body = body
	return b
}

// ResponseContentType sets the response content type.
func (b *WatcherHTTPRequestBuilder) ResponseContentType(ct ResponseContentType) *WatcherHTTPRequestBuilder {
	b.req.ResponseContentType = ct
	return b
}

// Build returns a copy that later builder calls do not affect.
func (b *WatcherHTTPRequestBuilder) Build() WatcherHTTPRequest {
	return b.req.clone()
}

// WatcherAuthenticationBuilder builds a WatcherAuthentication.
type WatcherAuthenticationBuilder struct {
	auth WatcherAuthentication
}

// NewWatcherAuthenticationBuilder returns an empty builder.
func NewWatcherAuthenticationBuilder() *WatcherAuthenticationBuilder {
	return &WatcherAuthenticationBuilder{}
}

// Basic sets basic authentication.
func (b *WatcherAuthenticationBuilder) Basic(basic WatcherBasicAuthentication) *WatcherAuthenticationBuilder {
	b.auth.Basic = &basic
	return b
}

// BasicWith configures basic authentication through a builder.
func (b *WatcherAuthenticationBuilder) BasicWith(fn func(*WatcherBasicAuthenticationBuilder)) *WatcherAuthenticationBuilder {
	bb := NewWatcherBasicAuthenticationBuilder()
	fn(bb)
	return b.Basic(bb.Build())
}

// Build returns the built WatcherAuthentication.
func (b *WatcherAuthenticationBuilder) Build() WatcherAuthentication {
	return b.auth.clone()
}

// WatcherBasicAuthenticationBuilder builds a WatcherBasicAuthentication.
type WatcherBasicAuthenticationBuilder struct {
	basic WatcherBasicAuthentication
}

// NewWatcherBasicAuthenticationBuilder returns an empty builder.
func NewWatcherBasicAuthenticationBuilder() *WatcherBasicAuthenticationBuilder {
	return &WatcherBasicAuthenticationBuilder{}
}

// Username sets the username.
func (b *WatcherBasicAuthenticationBuilder) Username(username string) *WatcherBasicAuthenticationBuilder {
	b.basic.Username = username
	return b
}

// Password sets the password.
func (b *WatcherBasicAuthenticationBuilder) Password(password string) *WatcherBasicAuthenticationBuilder {
	b.basic.Password = password
	return b
}

// Build returns the built WatcherBasicAuthentication.
func (b *WatcherBasicAuthenticationBuilder) Build() WatcherBasicAuthentication {
	return b.basic
}

// WatcherProxyBuilder builds a WatcherProxy.
type WatcherProxyBuilder struct {
	proxy WatcherProxy
}

// NewWatcherProxyBuilder returns an empty builder.
func NewWatcherProxyBuilder() *WatcherProxyBuilder {
	return &WatcherProxyBuilder{}
}

// Host sets the host.
func (b *WatcherProxyBuilder) Host(host string) *WatcherProxyBuilder {
	b.proxy.Host = host
	return b
}

// Port sets the port.
func (b *WatcherProxyBuilder) Port(port int) *WatcherProxyBuilder {
	b.proxy.Port = &port
	return b
}

// Build returns the built WatcherProxy.
func (b *WatcherProxyBuilder) Build() WatcherProxy {
	return b.proxy.clone()
}
