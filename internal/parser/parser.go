// Package parser loads watch definitions from YAML or JSON documents.
//
// A document either holds the watch body directly or wraps it:
//
//	id: cluster_health
//	active: true
//	watch:
//	  trigger: ...
//	  input: ...
//	  actions: ...
package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
	"github.com/martinferreira/elasticsearch-net/pkg/watcher"
)

// Format is the encoding of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension. Anything that is
// not .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// DefinitionParser turns definition documents into put watch requests.
type DefinitionParser struct {
	requireTrigger bool
}

// NewDefinitionParser creates a parser that requires a trigger.
func NewDefinitionParser() *DefinitionParser {
	return &DefinitionParser{requireTrigger: true}
}

// AllowMissingTrigger accepts definitions without a trigger, as used for
// inline execution.
func (p *DefinitionParser) AllowMissingTrigger() *DefinitionParser {
	p.requireTrigger = false
	return p
}

// Parse parses a definition document.
func (p *DefinitionParser) Parse(data []byte, format Format) (*watcher.PutWatchRequest, error) {
	doc, err := p.toJSON(data, format)
	if err != nil {
		return nil, err
	}
	req, err := p.decode(doc)
	if err != nil {
		return nil, err
	}
	if err := p.validate(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ParseFile parses a definition file, choosing the format by extension.
func (p *DefinitionParser) ParseFile(path string) (*watcher.PutWatchRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{File: path, Message: "failed to read file", Cause: err}
	}
	req, err := p.Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, inFile(err, path)
	}
	return req, nil
}

func (p *DefinitionParser) toJSON(data []byte, format Format) ([]byte, error) {
	if format == FormatJSON && !utils.Valid(data) {
		// yaml reports a position for most json syntax errors
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, wrapYAMLError(err)
		}
		return nil, NewParseError(0, 0, "invalid json", nil)
	}

	var node yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&node); err != nil {
		return nil, wrapYAMLError(err)
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 && node.Content[0].Kind != yaml.MappingNode {
		c := node.Content[0]
		return nil, NewParseError(c.Line, c.Column, "definition must be a mapping", nil)
	}
	return nodeToJSON(&node)
}

type envelope struct {
	ID     string `json:"id"`
	Active *bool  `json:"active"`
}

func (p *DefinitionParser) decode(doc []byte) (*watcher.PutWatchRequest, error) {
	members, err := utils.ObjectMembers(doc)
	if err != nil {
		return nil, NewParseError(0, 0, "definition must be a mapping", err)
	}

	req := &watcher.PutWatchRequest{}
	body := doc
	for _, m := range members {
		if m.Key == "watch" {
			body = m.Raw
			var env envelope
			if err := utils.Unmarshal(doc, &env); err != nil {
				return nil, NewParseError(0, 0, "invalid id or active", err)
			}
			req.ID = env.ID
			req.Active = env.Active
			for _, other := range members {
				switch other.Key {
				case "id", "active", "watch":
				default:
					return nil, NewValidationError("unknown field next to watch", other.Key)
				}
			}
			break
		}
	}

	if err := utils.Unmarshal(body, &req.WatchDefinition); err != nil {
		return nil, NewParseError(0, 0, "invalid watch definition", err)
	}
	return req, nil
}

func (p *DefinitionParser) validate(req *watcher.PutWatchRequest) error {
	if p.requireTrigger {
		if req.Trigger == nil || req.Trigger.Schedule == nil || req.Trigger.Schedule.IsEmpty() {
			return NewValidationError("a schedule trigger is required", "trigger", "schedule")
		}
	}
	if req.Input != nil && req.Input.IsEmpty() {
		return NewValidationError("input has no known type", "input")
	}
	if req.Condition != nil && req.Condition.IsEmpty() {
		return NewValidationError("condition has no known type", "condition")
	}
	for _, na := range req.Actions {
		if na.Action.Kind() == "" {
			return NewValidationError("action has no known type", "actions", na.Name)
		}
	}
	return nil
}

// wrapYAMLError converts a YAML error to a ParseError with line information.
func wrapYAMLError(err error) error {
	errStr := err.Error()
	line, column := extractLineColumn(errStr)
	return NewParseError(line, column, strings.TrimPrefix(errStr, "yaml: "), err)
}

// extractLineColumn pulls "line X" and "column Y" out of a yaml error message.
func extractLineColumn(errStr string) (int, int) {
	var line, column int
	if idx := strings.Index(errStr, "line "); idx != -1 {
		fmt.Sscanf(errStr[idx:], "line %d", &line)
	}
	if idx := strings.Index(errStr, "column "); idx != -1 {
		fmt.Sscanf(errStr[idx:], "column %d", &column)
	}
	return line, column
}
