package parser

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
	"github.com/martinferreira/elasticsearch-net/pkg/watcher"
)

// Printer renders put watch requests as definition documents.
type Printer struct {
	indent int
}

// NewPrinter creates a Printer with two space indentation.
func NewPrinter() *Printer {
	return &Printer{indent: 2}
}

// WithIndent sets the indentation width.
func (p *Printer) WithIndent(spaces int) *Printer {
	p.indent = spaces
	return p
}

// envelopeJSON wraps the body with id and active, in that order.
func envelopeJSON(req *watcher.PutWatchRequest) ([]byte, error) {
	body, err := req.Body()
	if err != nil {
		return nil, err
	}
	var members []utils.Member
	if req.ID != "" {
		raw, err := utils.Marshal(req.ID)
		if err != nil {
			return nil, err
		}
		members = append(members, utils.Member{Key: "id", Raw: raw})
	}
	if req.Active != nil {
		raw, err := utils.Marshal(*req.Active)
		if err != nil {
			return nil, err
		}
		members = append(members, utils.Member{Key: "active", Raw: raw})
	}
	members = append(members, utils.Member{Key: "watch", Raw: body})
	return utils.WriteObject(members)
}

// Print renders the request in the given format.
func (p *Printer) Print(req *watcher.PutWatchRequest, format Format) ([]byte, error) {
	doc, err := envelopeJSON(req)
	if err != nil {
		return nil, NewParseError(0, 0, "failed to encode watch", err)
	}
	if format == FormatJSON {
		var buf bytes.Buffer
		if err := utils.IndentJSON(&buf, doc, p.indent); err != nil {
			return nil, NewParseError(0, 0, "failed to indent json", err)
		}
		return buf.Bytes(), nil
	}

	node, err := jsonToNode(doc)
	if err != nil {
		return nil, NewParseError(0, 0, "failed to convert watch to yaml", err)
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(p.indent)
	if err := encoder.Encode(node); err != nil {
		return nil, NewParseError(0, 0, "failed to encode watch to yaml", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, NewParseError(0, 0, "failed to close yaml encoder", err)
	}
	return buf.Bytes(), nil
}
