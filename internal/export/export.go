// Package export serializes parsed descriptor documents to
// machine-readable formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"eprdesc/internal/descriptor"
)

// Format identifies an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON document model",
	},
	FormatYAML: {
		Name:        FormatYAML,
		MIMEType:    "application/yaml",
		Extension:   ".yaml",
		Description: "YAML document model",
	},
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = FormatYAML
	}
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("unknown format %q, want one of %s", s, knownFormats())
	}
	return f, nil
}

func knownFormats() string {
	var names []string
	for f := range FormatRegistry {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Serialization DTOs. Entries are tagged objects so the Parameter vs
// DeviceBlock distinction and the source order both survive.

type documentDTO struct {
	Sections []sectionDTO `json:"sections" yaml:"sections"`
}

type sectionDTO struct {
	Tag     string     `json:"tag" yaml:"tag"`
	Version string     `json:"version,omitempty" yaml:"version,omitempty"`
	Title   string     `json:"title,omitempty" yaml:"title,omitempty"`
	Entries []entryDTO `json:"entries" yaml:"entries"`
}

type entryDTO struct {
	Parameter *paramDTO  `json:"parameter,omitempty" yaml:"parameter,omitempty"`
	Device    *deviceDTO `json:"device,omitempty" yaml:"device,omitempty"`
}

type paramDTO struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

type deviceDTO struct {
	Name       string     `json:"name" yaml:"name"`
	Version    string     `json:"version" yaml:"version"`
	Parameters []paramDTO `json:"parameters" yaml:"parameters"`
}

// Write serializes doc to w in the given format.
func Write(w io.Writer, doc *descriptor.Document, format Format) error {
	dto := toDTO(doc)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dto); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dto); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("closing yaml encoder: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	return nil
}

func toDTO(doc *descriptor.Document) documentDTO {
	dto := documentDTO{}
	for _, sec := range doc.Sections {
		s := sectionDTO{
			Tag:     sec.Tag,
			Version: sec.Version,
			Title:   sec.Title,
			Entries: []entryDTO{},
		}
		for _, e := range sec.Entries {
			switch v := e.(type) {
			case descriptor.Parameter:
				s.Entries = append(s.Entries, entryDTO{
					Parameter: &paramDTO{Key: v.Key, Value: v.Value},
				})
			case *descriptor.DeviceBlock:
				d := &deviceDTO{Name: v.Name, Version: v.Version, Parameters: []paramDTO{}}
				for _, p := range v.Params {
					d.Parameters = append(d.Parameters, paramDTO{Key: p.Key, Value: p.Value})
				}
				s.Entries = append(s.Entries, entryDTO{Device: d})
			}
		}
		dto.Sections = append(dto.Sections, s)
	}
	return dto
}
