package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bft-labs/chatship/internal/domain"
)

// Output formats accepted by NewRenderer.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Renderer writes results to an output stream.
type Renderer struct {
	w      io.Writer
	format string
}

// NewRenderer returns a renderer for format ("json" or "yaml").
func NewRenderer(w io.Writer, format string) (*Renderer, error) {
	switch format {
	case FormatJSON, FormatYAML:
		return &Renderer{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Render writes one result. JSON output is the backend value byte for byte
// (or the error object) followed by a newline; YAML output is a document.
func (r *Renderer) Render(res domain.Result) error {
	if r.format == FormatJSON {
		return r.renderJSON(res)
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	// Numbers stay json.Number so large integers keep their digits; yaml.v3
	// would otherwise turn anything beyond int64 into a float.
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	out, err := yaml.Marshal(yamlNumbers(doc))
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = fmt.Fprintf(r.w, "---\n%s", out)
	return err
}

func (r *Renderer) renderJSON(res domain.Result) error {
	if res.OK() {
		value := res.Value
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		_, err := fmt.Fprintf(r.w, "%s\n", value)
		return err
	}

	enc := json.NewEncoder(r.w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(domain.ErrorResult{Error: res.Error}); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// yamlNumbers replaces json.Number values with scalar nodes carrying the
// original digits.
func yamlNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, e := range t {
			t[k] = yamlNumbers(e)
		}
		return t
	case []interface{}:
		for i, e := range t {
			t[i] = yamlNumbers(e)
		}
		return t
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}
	default:
		return v
	}
}

// RenderAll writes results in order, stopping at the first write error.
func (r *Renderer) RenderAll(results []domain.Result) error {
	for _, res := range results {
		if err := r.Render(res); err != nil {
			return err
		}
	}
	return nil
}
