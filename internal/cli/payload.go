package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/paramspec/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a payload file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf guesses the format from a file extension. Unknown extensions and
// "-" (stdin) are treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadPayload reads the payload at path, or stdin when path is "-".
func LoadPayload(path string, stdin io.Reader) (*schema.Payload, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open payload: %w", err)
		}
		defer f.Close()
		r = f
	}

	p, err := DecodePayload(r, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("payload %s: %w", path, err)
	}
	return p, nil
}

// DecodePayload decodes a single top-level object. Key order is kept.
func DecodePayload(r io.Reader, format Format) (*schema.Payload, error) {
	if format == FormatJSON {
		return schema.DecodeJSON(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, schema.ErrNotObject
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, schema.ErrNotObject
	}

	root := doc.Content[0]
	p := schema.NewPayload()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: keys must be scalars", key.Line)
		}
		v, err := yamlValue(root.Content[i+1])
		if err != nil {
			return nil, err
		}
		p.Set(key.Value, v)
	}
	return p, nil
}

// yamlValue converts a node into the values the validator understands:
// sequences become []any and nested mappings map[string]any.
func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, errors.New("unsupported yaml node")
	}
}
