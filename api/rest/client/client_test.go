package client

import (
	"context"
	"encoding/base64"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/martinferreira/elasticsearch-net/pkg/watcher"
)

type captured struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
	Params map[string]string
}

func capture(c *fiber.Ctx) captured {
	return captured{
		Method: c.Method(),
		Path:   c.Path(),
		Query:  string(c.Request().URI().QueryString()),
		Auth:   c.Get(fiber.HeaderAuthorization),
		Body:   append([]byte(nil), c.Body()...),
		Params: c.AllParams(),
	}
}

// setupTestServer starts a fiber app on a loopback port and returns its base url.
func setupTestServer(t *testing.T, register func(app *fiber.App)) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	register(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func newTestClient(baseURL string) *Client {
	return NewClient(&Config{
		BaseURL:  baseURL + "/",
		Username: "elastic",
		Password: "changeme",
		Timeout:  5 * time.Second,
		Logger:   zap.NewNop(),
	})
}

func TestClient_PutWatch(t *testing.T) {
	seen := make(chan captured, 1)
	base := setupTestServer(t, func(app *fiber.App) {
		app.Put("/_watcher/watch/:id", func(c *fiber.Ctx) error {
			seen <- capture(c)
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{"_id": c.Params("id"), "_version": 1, "created": true})
		})
	})
	client := newTestClient(base)
	defer client.Close()

	req := watcher.NewPutWatchBuilder("cluster_health").
		Active(false).
		Schedule(func(s *watcher.ScheduleBuilder) { s.Interval("10s") }).
		Action("log", func(a *watcher.ActionBuilder) { a.Logging("hi", watcher.LevelInfo) }).
		Build()

	resp, err := client.PutWatch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "cluster_health", resp.ID)
	assert.Equal(t, 1, resp.Version)
	assert.True(t, resp.Created)

	got := <-seen
	assert.Equal(t, fiber.MethodPut, got.Method)
	assert.Equal(t, "/_watcher/watch/cluster_health", got.Path)
	assert.Equal(t, "active=false", got.Query)
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("elastic:changeme")), got.Auth)

	want, err := req.Body()
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got.Body))
}

func TestClient_PutWatchRequiresID(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://127.0.0.1:1", Logger: zap.NewNop()})
	_, err := client.PutWatch(context.Background(), watcher.PutWatchRequest{})
	assert.Error(t, err)
}

func TestClient_GetWatch(t *testing.T) {
	base := setupTestServer(t, func(app *fiber.App) {
		app.Get("/_watcher/watch/:id", func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(`{"found":true,"_id":"w1","_version":4,
				"status":{"version":4,"state":{"active":true,"timestamp":"2017-01-01T00:00:00Z"}},
				"watch":{"trigger":{"schedule":{"interval":"1m"}},"actions":{"b":{"logging":{"text":"x"}},"a":{"index":{"index":"i"}}}}}`)
		})
	})
	client := newTestClient(base)

	resp, err := client.GetWatch(context.Background(), "w1")
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, 4, resp.Version)
	require.NotNil(t, resp.Status)
	assert.True(t, resp.Status.State.Active)
	require.NotNil(t, resp.Watch)
	assert.Equal(t, []string{"b", "a"}, resp.Watch.Actions.Names())
}

func TestClient_RemoteErrorKeepsBody(t *testing.T) {
	body := `{"error":{"root_cause":[],"type":"resource_not_found_exception","reason":"watch [missing] not found"},"status":404}`
	base := setupTestServer(t, func(app *fiber.App) {
		app.Delete("/_watcher/watch/:id", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusNotFound).SendString(body)
		})
	})
	client := newTestClient(base)

	_, err := client.DeleteWatch(context.Background(), "missing")
	require.Error(t, err)

	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, 404, remote.StatusCode)
	assert.Equal(t, "Not Found", remote.Status)
	assert.Equal(t, body, string(remote.Body))
	assert.Equal(t, "watch [missing] not found", remote.Reason())
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "watch [missing] not found")
}

func TestClient_RemoteErrorWithoutReason(t *testing.T) {
	base := setupTestServer(t, func(app *fiber.App) {
		app.Put("/_watcher/watch/:id/_activate", func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusInternalServerError).SendString("boom")
		})
	})
	client := newTestClient(base)

	_, err := client.ActivateWatch(context.Background(), "w")
	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "boom", string(remote.Body))
	assert.Empty(t, remote.Reason())
	assert.False(t, IsNotFound(err))
}

func TestClient_AckWatch(t *testing.T) {
	seen := make(chan captured, 2)
	status := `{"_status":{"version":2,"actions":{"a":{"ack":{"state":"acked","timestamp":"2017-01-01T00:00:00Z"}}}}}`
	base := setupTestServer(t, func(app *fiber.App) {
		handler := func(c *fiber.Ctx) error {
			seen <- capture(c)
			return c.SendString(status)
		}
		app.Put("/_watcher/watch/:id/_ack", handler)
		app.Put("/_watcher/watch/:id/_ack/:actions", handler)
	})
	client := newTestClient(base)

	resp, err := client.AckWatch(context.Background(), "w", "b", "a", "b", "")
	require.NoError(t, err)
	got := <-seen
	assert.Equal(t, "/_watcher/watch/w/_ack/b,a", got.Path)
	assert.Equal(t, "b,a", got.Params["actions"])

	action, ok := resp.Status.Action("a")
	require.True(t, ok)
	assert.Equal(t, watcher.AckAcked, action.Ack.State)

	_, err = client.AckWatch(context.Background(), "w")
	require.NoError(t, err)
	got = <-seen
	assert.Equal(t, "/_watcher/watch/w/_ack", got.Path)
}

func TestClient_ActivateDeactivate(t *testing.T) {
	seen := make(chan captured, 2)
	base := setupTestServer(t, func(app *fiber.App) {
		app.Put("/_watcher/watch/:id/_activate", func(c *fiber.Ctx) error {
			seen <- capture(c)
			return c.SendString(`{"_status":{"state":{"active":true}}}`)
		})
		app.Put("/_watcher/watch/:id/_deactivate", func(c *fiber.Ctx) error {
			seen <- capture(c)
			return c.SendString(`{"_status":{"state":{"active":false}}}`)
		})
	})
	client := newTestClient(base)

	on, err := client.ActivateWatch(context.Background(), "w1")
	require.NoError(t, err)
	assert.True(t, on.Status.State.Active)
	assert.Equal(t, "w1", (<-seen).Params["id"])

	off, err := client.DeactivateWatch(context.Background(), "w")
	require.NoError(t, err)
	assert.False(t, off.Status.State.Active)
	assert.Equal(t, "/_watcher/watch/w/_deactivate", (<-seen).Path)
}

func TestClient_ExecuteWatch(t *testing.T) {
	seen := make(chan captured, 2)
	base := setupTestServer(t, func(app *fiber.App) {
		handler := func(c *fiber.Ctx) error {
			seen <- capture(c)
			return c.SendString(`{"_id":"run_1","watch_record":{"state":"executed"}}`)
		}
		app.Put("/_watcher/watch/_execute", handler)
		app.Put("/_watcher/watch/:id/_execute", handler)
	})
	client := newTestClient(base)

	inline := watcher.NewPutWatchBuilder("").
		InputWith(func(i *watcher.InputBuilder) {
			i.Simple(func(s *watcher.SimpleInputBuilder) { s.Set("a", 1) })
		}).
		Build().WatchDefinition

	resp, err := client.ExecuteWatch(context.Background(), watcher.ExecuteWatchRequest{Watch: &inline, Debug: true})
	require.NoError(t, err)
	assert.Equal(t, "executed", resp.RecordState())
	got := <-seen
	assert.Equal(t, "/_watcher/watch/_execute", got.Path)
	assert.Equal(t, "debug=true", got.Query)
	assert.JSONEq(t, `{"watch":{"input":{"simple":{"a":1}}}}`, string(got.Body))

	_, err = client.ExecuteWatch(context.Background(), watcher.ExecuteWatchRequest{ID: "stored", IgnoreCondition: true})
	require.NoError(t, err)
	got = <-seen
	assert.Equal(t, "/_watcher/watch/stored/_execute", got.Path)
	assert.Empty(t, got.Query)

	_, err = client.ExecuteWatch(context.Background(), watcher.ExecuteWatchRequest{})
	assert.Error(t, err)
}

func TestClient_TransportError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := newTestClient("http://" + addr)
	_, err = client.GetWatch(context.Background(), "w")
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, fiber.MethodGet, te.Method)
}

func TestClient_CanceledContext(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.DeactivateWatch(ctx, "w")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_IDsStayOnePathSegment(t *testing.T) {
	uris := make(chan string, 4)
	base := setupTestServer(t, func(app *fiber.App) {
		app.Use(func(c *fiber.Ctx) error {
			uris <- string(c.Request().Header.RequestURI())
			return c.SendString(`{"_status":{}}`)
		})
	})
	client := newTestClient(base)

	_, err := client.GetWatch(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/_watcher/watch/a%2Fb", <-uris)

	_, err = client.PutWatch(context.Background(), watcher.PutWatchRequest{ID: "x/_execute"})
	require.NoError(t, err)
	assert.Equal(t, "/_watcher/watch/x%2F_execute", <-uris)

	_, err = client.AckWatch(context.Background(), "w", "a/b", "c")
	require.NoError(t, err)
	assert.Equal(t, "/_watcher/watch/w/_ack/a%2Fb,c", <-uris)
}

func TestClient_RejectsDotIDs(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://127.0.0.1:1", Logger: zap.NewNop()})
	ctx := context.Background()

	for _, id := range []string{".", ".."} {
		_, err := client.GetWatch(ctx, id)
		assert.Error(t, err, id)
		_, err = client.DeleteWatch(ctx, id)
		assert.Error(t, err, id)
		_, err = client.ExecuteWatch(ctx, watcher.ExecuteWatchRequest{ID: id})
		assert.Error(t, err, id)
		_, err = client.AckWatch(ctx, "w", id)
		assert.Error(t, err, id)

		var te *TransportError
		assert.False(t, errors.As(err, &te), "no request is sent for %q", id)
	}
}
