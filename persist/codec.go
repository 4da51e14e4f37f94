// SPDX-License-Identifier: MIT

package persist

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects a codec.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the codec for a file name: .json is JSON, anything else
// YAML.
func FormatOf(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode writes s to w in format f, stamping the current Version.
func Encode(w io.Writer, s Snapshot, f Format) error {
	s.Version = Version
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("persist: unknown format %q", f)
}

// Decode reads a snapshot in format f from r and validates it.
func Decode(r io.Reader, f Format) (Snapshot, error) {
	var s Snapshot
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return Snapshot{}, fmt.Errorf("persist: decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && err != io.EOF {
			return Snapshot{}, fmt.Errorf("persist: decode yaml: %w", err)
		}
	default:
		return Snapshot{}, fmt.Errorf("persist: unknown format %q", f)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
