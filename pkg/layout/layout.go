// Package layout loads legacy warehouse descriptions from YAML or JSON
// files. Unknown keys are rejected and the result is validated.
package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported layout format")
	ErrEmptyDocument     = errors.New("empty layout document")
)

// Format is a layout file encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// edgeDoc mirrors warehouse.Edge but lets bidirectional default to true.
type edgeDoc struct {
	ID            string  `json:"id" yaml:"id"`
	From          string  `json:"from_node" yaml:"from_node"`
	To            string  `json:"to_node" yaml:"to_node"`
	Distance      float64 `json:"distance" yaml:"distance"`
	Bidirectional *bool   `json:"bidirectional,omitempty" yaml:"bidirectional,omitempty"`
}

type document struct {
	Name        string           `json:"name" yaml:"name"`
	Width       float64          `json:"width" yaml:"width"`
	Length      float64          `json:"length" yaml:"length"`
	Aisles      int              `json:"aisles" yaml:"aisles"`
	AisleWidth  float64          `json:"aisle_width" yaml:"aisle_width"`
	AisleLength float64          `json:"aisle_length" yaml:"aisle_length"`
	Zones       []warehouse.Zone `json:"zones" yaml:"zones"`
	Nodes       []warehouse.Node `json:"nodes" yaml:"nodes"`
	Edges       []edgeDoc        `json:"edges" yaml:"edges"`
	Obstacles   []geometry.Rect  `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
	Receiving   *geometry.Point  `json:"receiving,omitempty" yaml:"receiving,omitempty"`
	Shipping    *geometry.Point  `json:"shipping,omitempty" yaml:"shipping,omitempty"`
}

func (d document) warehouse() warehouse.LegacyWarehouse {
	edges := make([]warehouse.Edge, len(d.Edges))
	for i, e := range d.Edges {
		edges[i] = warehouse.Edge{
			ID:            e.ID,
			From:          e.From,
			To:            e.To,
			Distance:      e.Distance,
			Bidirectional: e.Bidirectional == nil || *e.Bidirectional,
		}
	}
	return warehouse.LegacyWarehouse{
		Name:        d.Name,
		Width:       d.Width,
		Length:      d.Length,
		Aisles:      d.Aisles,
		AisleWidth:  d.AisleWidth,
		AisleLength: d.AisleLength,
		Zones:       d.Zones,
		Nodes:       d.Nodes,
		Edges:       edges,
		Obstacles:   d.Obstacles,
		Receiving:   d.Receiving,
		Shipping:    d.Shipping,
	}
}

// Decode parses and validates one layout document.
func Decode(r io.Reader, format Format) (*warehouse.LegacyWarehouse, error) {
	var doc document
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEmptyDocument
			}
			return nil, fmt.Errorf("decode yaml layout: %w", err)
		}
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEmptyDocument
			}
			return nil, fmt.Errorf("decode json layout: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	w, err := warehouse.New(doc.warehouse())
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", doc.Name, err)
	}
	return w, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte, format Format) (*warehouse.LegacyWarehouse, error) {
	return Decode(bytes.NewReader(data), format)
}

// LoadFile reads a layout, choosing the format by extension.
func LoadFile(path string) (*warehouse.LegacyWarehouse, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	return Decode(f, format)
}
