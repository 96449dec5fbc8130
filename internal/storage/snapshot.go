package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/user/ajar/internal/model"
)

// Snapshot is the bulk data source the stores are seeded from.
type Snapshot struct {
	Stok         []model.Stock   `json:"stok" yaml:"stok"`
	Paket        []model.Package `json:"paket" yaml:"paket"`
	Tracking     TrackingList    `json:"tracking" yaml:"tracking"`
	UpbjjList    []string        `json:"upbjjList" yaml:"upbjjList"`
	KategoriList []string        `json:"kategoriList" yaml:"kategoriList"`
	Pengguna     []model.User    `json:"pengguna,omitempty" yaml:"pengguna,omitempty"`
}

// TrackingList holds delivery orders in file order.
//
// On disk it is either an array of single-key objects keyed by DO number
// ([{"DO2025-0001": {...}}]) or one object keyed by DO number. It is always
// written in the array form.
type TrackingList []model.DeliveryOrder

// UnmarshalJSON accepts both tracking layouts. Orders keep the order
// their keys appear in the file.
func (tl *TrackingList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*tl = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var out TrackingList
	var err error
	if data[0] == '[' {
		err = decodeTrackingGroups(dec, &out)
	} else {
		err = decodeTrackingGroup(dec, &out)
	}
	if err != nil {
		return fmt.Errorf("failed to parse tracking: %w", err)
	}
	*tl = out
	return nil
}

func decodeTrackingGroups(dec *json.Decoder, out *TrackingList) error {
	if err := expectDelim(dec, '['); err != nil {
		return err
	}
	for dec.More() {
		if err := decodeTrackingGroup(dec, out); err != nil {
			return err
		}
	}
	return expectDelim(dec, ']')
}

// decodeTrackingGroup reads one object keyed by DO number.
func decodeTrackingGroup(dec *json.Decoder, out *TrackingList) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		var d model.DeliveryOrder
		if err := dec.Decode(&d); err != nil {
			return fmt.Errorf("order %s: %w", key, err)
		}
		d.NomorDO = key
		*out = append(*out, d)
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %s, got %v", want, tok)
	}
	return nil
}

// MarshalJSON writes the array-of-single-key-objects layout.
func (tl TrackingList) MarshalJSON() ([]byte, error) {
	groups := make([]map[string]model.DeliveryOrder, len(tl))
	for i, d := range tl {
		groups[i] = map[string]model.DeliveryOrder{d.NomorDO: d}
	}
	return json.Marshal(groups)
}

// MarshalYAML writes the same layout as MarshalJSON.
func (tl TrackingList) MarshalYAML() (interface{}, error) {
	groups := make([]map[string]model.DeliveryOrder, len(tl))
	for i, d := range tl {
		groups[i] = map[string]model.DeliveryOrder{d.NomorDO: d}
	}
	return groups, nil
}

// UnmarshalYAML accepts both tracking layouts, keeping file order.
func (tl *TrackingList) UnmarshalYAML(node *yaml.Node) error {
	var out TrackingList
	switch node.Kind {
	case yaml.MappingNode:
		if err := appendTrackingNode(node, &out); err != nil {
			return err
		}
	case yaml.SequenceNode:
		for _, group := range node.Content {
			if group.Kind != yaml.MappingNode {
				return fmt.Errorf("failed to parse tracking: line %d: expected a mapping", group.Line)
			}
			if err := appendTrackingNode(group, &out); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("failed to parse tracking: expected a list or a mapping")
	}

	*tl = out
	return nil
}

// appendTrackingNode decodes a mapping keyed by DO number. Content holds
// key and value nodes alternately, in file order.
func appendTrackingNode(node *yaml.Node, out *TrackingList) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var d model.DeliveryOrder
		if err := node.Content[i+1].Decode(&d); err != nil {
			return fmt.Errorf("failed to parse tracking %s: %w", key, err)
		}
		d.NomorDO = key
		*out = append(*out, d)
	}
	return nil
}

// LoadSnapshot reads a data source file. The format follows the extension:
// .yaml/.yml is YAML, anything else is JSON.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var snap Snapshot
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}

	return &snap, nil
}

// WriteSnapshot writes a data source file atomically, in the format chosen
// by its extension.
func WriteSnapshot(path string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(snap)
	} else {
		data, err = json.MarshalIndent(snap, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
