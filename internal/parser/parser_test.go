package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinferreira/elasticsearch-net/pkg/watcher"
)

const yamlDefinition = `
id: cluster_health
active: false
watch:
  metadata:
    team: ops
  trigger:
    schedule:
      interval: 10s
  input:
    http:
      extract: [status]
      request:
        host: localhost
        port: 9200
        path: /_cluster/health
        params:
          pretty: true
  condition:
    compare:
      ctx.payload.status:
        eq: red
  actions:
    zeta_log:
      throttle_period: 15m
      logging:
        text: "cluster is {{ctx.payload.status}}"
        level: warn
    Alpha_Index:
      index:
        index: alerts
`

const jsonDefinition = `{
  "id": "cluster_health",
  "active": false,
  "watch": {
    "metadata": {"team": "ops"},
    "trigger": {"schedule": {"interval": "10s"}},
    "input": {"http": {"extract": ["status"], "request": {"host": "localhost", "port": 9200, "path": "/_cluster/health", "params": {"pretty": true}}}},
    "condition": {"compare": {"ctx.payload.status": {"eq": "red"}}},
    "actions": {
      "zeta_log": {"throttle_period": "15m", "logging": {"text": "cluster is {{ctx.payload.status}}", "level": "warn"}},
      "Alpha_Index": {"index": {"index": "alerts"}}
    }
  }
}`

func TestDefinitionParser_ParseYAML(t *testing.T) {
	req, err := NewDefinitionParser().Parse([]byte(yamlDefinition), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "cluster_health", req.ID)
	require.NotNil(t, req.Active)
	assert.False(t, *req.Active)
	assert.Equal(t, map[string]any{"team": "ops"}, req.Metadata)

	require.NotNil(t, req.Input)
	h, ok := req.Input.HTTP()
	require.True(t, ok)
	assert.Equal(t, 9200, h.Request.Port)
	assert.Equal(t, watcher.BoolParam(true), h.Request.Params["pretty"])

	cmp, ok := req.Condition.Compare()
	require.True(t, ok)
	assert.Equal(t, watcher.CompareEq, cmp.Op)
	assert.Equal(t, watcher.StringParam("red"), cmp.Value)

	assert.Equal(t, []string{"zeta_log", "Alpha_Index"}, req.Actions.Names())
	zeta, ok := req.Actions.Get("zeta_log")
	require.True(t, ok)
	assert.Equal(t, watcher.Time("15m"), zeta.ThrottlePeriod)
	l, ok := zeta.Logging()
	require.True(t, ok)
	assert.Equal(t, watcher.LevelWarn, l.Level)
}

func TestDefinitionParser_JSONMatchesYAML(t *testing.T) {
	p := NewDefinitionParser()
	fromYAML, err := p.Parse([]byte(yamlDefinition), FormatYAML)
	require.NoError(t, err)
	fromJSON, err := p.Parse([]byte(jsonDefinition), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, fromYAML.ID, fromJSON.ID)
	assert.Equal(t, fromYAML.Active, fromJSON.Active)
	assert.Equal(t, fromYAML.WatchDefinition, fromJSON.WatchDefinition)
}

func TestDefinitionParser_BareBody(t *testing.T) {
	req, err := NewDefinitionParser().Parse([]byte(`
trigger:
  schedule:
    cron: "0 0/5 * * * ?"
input:
  simple:
    answer: 42
`), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, req.ID)
	assert.Nil(t, req.Active)

	s, ok := req.Input.Simple()
	require.True(t, ok)
	assert.Equal(t, float64(42), s.Payload["answer"])
}

func TestDefinitionParser_SyntaxErrorHasLine(t *testing.T) {
	_, err := NewDefinitionParser().Parse([]byte("watch:\n  trigger:\n    schedule: {interval: 10s\n"), FormatYAML)
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Greater(t, pe.Line, 0)
}

func TestDefinitionParser_InvalidJSON(t *testing.T) {
	_, err := NewDefinitionParser().Parse([]byte(`{"trigger": }`), FormatJSON)
	require.Error(t, err)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestDefinitionParser_NotAMapping(t *testing.T) {
	_, err := NewDefinitionParser().Parse([]byte("- a\n- b\n"), FormatYAML)
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Line)
}

func TestDefinitionParser_Validation(t *testing.T) {
	cases := map[string]struct {
		doc   string
		field string
	}{
		"missing trigger":   {doc: "input:\n  simple: {a: 1}\n", field: "trigger.schedule"},
		"empty input":       {doc: "trigger: {schedule: {interval: 1m}}\ninput: {mystery: {}}\n", field: "input"},
		"empty action":      {doc: "trigger: {schedule: {interval: 1m}}\nactions:\n  noop: {throttle_period: 1m}\n", field: "actions.noop"},
		"dotted action":     {doc: "trigger: {schedule: {interval: 1m}}\nactions:\n  notify.v2: {}\n", field: `actions["notify.v2"]`},
		"unknown top level": {doc: "id: a\nextra: 1\nwatch: {trigger: {schedule: {interval: 1m}}}\n", field: "extra"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewDefinitionParser().Parse([]byte(tc.doc), FormatYAML)
			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), err.Error())
			assert.Equal(t, tc.field, ve.Field())
		})
	}
}

func TestDefinitionParser_AllowMissingTrigger(t *testing.T) {
	req, err := NewDefinitionParser().AllowMissingTrigger().Parse([]byte("input:\n  simple: {a: 1}\n"), FormatYAML)
	require.NoError(t, err)
	assert.Nil(t, req.Trigger)
}

func TestDefinitionParser_MalformedVariant(t *testing.T) {
	_, err := NewDefinitionParser().Parse([]byte(`
trigger: {schedule: {interval: 1m}}
input:
  simple: {a: 1}
  http: {request: {host: h}}
`), FormatYAML)
	require.Error(t, err)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestDefinitionParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "watch.JSON")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonDefinition), 0o600))

	req, err := NewDefinitionParser().ParseFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "cluster_health", req.ID)

	_, err = NewDefinitionParser().ParseFile(filepath.Join(dir, "missing.yaml"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.json"))
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("watch"))
}

func TestPrinter_RoundTrip(t *testing.T) {
	req, err := NewDefinitionParser().Parse([]byte(yamlDefinition), FormatYAML)
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			out, err := NewPrinter().Print(req, format)
			require.NoError(t, err)

			s := string(out)
			assert.Less(t, strings.Index(s, "zeta_log"), strings.Index(s, "Alpha_Index"))
			assert.Less(t, strings.Index(s, "id"), strings.Index(s, "watch"))

			back, err := NewDefinitionParser().Parse(out, format)
			require.NoError(t, err, s)
			assert.Equal(t, req.ID, back.ID)
			assert.Equal(t, req.Active, back.Active)
			assert.Equal(t, req.WatchDefinition, back.WatchDefinition)
		})
	}
}

func TestDefinitionParser_ParseFileNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watch:\n  trigger: [\n"), 0o600))

	_, err := NewDefinitionParser().ParseFile(path)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, path, pe.File)
	assert.True(t, strings.HasPrefix(err.Error(), path+":"), err.Error())
}

func TestValidationError_Message(t *testing.T) {
	err := NewValidationError("action has no known type", "actions", "notify.v2")
	assert.Equal(t, []string{"actions", "notify.v2"}, err.Path)
	assert.Equal(t, `invalid watch at actions["notify.v2"]: action has no known type`, err.Error())

	assert.Equal(t, "invalid watch: empty", NewValidationError("empty").Error())
	assert.Equal(t, "definition: bad", NewParseError(0, 0, "bad", nil).Error())
	assert.Equal(t, "3:7: bad", NewParseError(3, 7, "bad", nil).Error())
}
