package descriptor

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamRef locates one parameter within the document: the section tag it
// lives under, the device block name (empty for bare parameters), and
// the raw value.
type ParamRef struct {
	Section string
	Device  string
	Key     string
	Value   string
	Line    int
}

// ParsedDescriptor is the Layer 2 application model: a flattened,
// order-preserving view over a parsed Document with typed accessors.
type ParsedDescriptor struct {
	Name   string
	Doc    *Document
	Params []ParamRef
}

// Flatten converts a Layer 1 Document into a Layer 2 ParsedDescriptor.
// The display name comes from the TITL parameter when present, else the
// file name without extension.
func Flatten(doc *Document, filename string) *ParsedDescriptor {
	pd := &ParsedDescriptor{Doc: doc}

	for _, sec := range doc.Sections {
		for _, e := range sec.Entries {
			switch v := e.(type) {
			case Parameter:
				pd.Params = append(pd.Params, ParamRef{
					Section: sec.Tag,
					Key:     v.Key,
					Value:   v.Value,
					Line:    v.Line,
				})
			case *DeviceBlock:
				for _, p := range v.Params {
					pd.Params = append(pd.Params, ParamRef{
						Section: sec.Tag,
						Device:  v.Name,
						Key:     p.Key,
						Value:   p.Value,
						Line:    p.Line,
					})
				}
			}
		}
	}

	if title, ok := pd.String("TITL"); ok && title != "" {
		pd.Name = title
	} else {
		pd.Name = filenameWithoutExt(filename)
	}

	return pd
}

// Lookup returns the raw value of the first parameter with the given key.
func (p *ParsedDescriptor) Lookup(key string) (string, bool) {
	for _, ref := range p.Params {
		if ref.Key == key {
			return ref.Value, true
		}
	}
	return "", false
}

// All returns every parameter with the given key, in document order.
// Duplicate keys across device blocks are independent entries.
func (p *ParsedDescriptor) All(key string) []ParamRef {
	var refs []ParamRef
	for _, ref := range p.Params {
		if ref.Key == key {
			refs = append(refs, ref)
		}
	}
	return refs
}

// InSection returns every parameter under the section with the given tag.
func (p *ParsedDescriptor) InSection(tag string) []ParamRef {
	var refs []ParamRef
	for _, ref := range p.Params {
		if ref.Section == tag {
			refs = append(refs, ref)
		}
	}
	return refs
}

// String returns the value of the first parameter with the given key,
// with BES3T single-quote wrapping removed.
func (p *ParsedDescriptor) String(key string) (string, bool) {
	v, ok := p.Lookup(key)
	if !ok {
		return "", false
	}
	return Unquote(v), true
}

// Float parses the leading numeric field of the value and returns it
// together with any trailing unit text, e.g. `3390.00 G` -> 3390.0, "G".
func (p *ParsedDescriptor) Float(key string) (float64, string, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return 0, "", fmt.Errorf("parameter %s not present", key)
	}
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return 0, "", fmt.Errorf("parameter %s has no value", key)
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, "", fmt.Errorf("parameter %s: %q is not numeric", key, fields[0])
	}
	return f, strings.Join(fields[1:], " "), nil
}

// Int parses the value of the first parameter with the given key as an
// integer.
func (p *ParsedDescriptor) Int(key string) (int, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("parameter %s not present", key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %q is not an integer", key, v)
	}
	return n, nil
}

// Axis describes the recorded abscissa of the associated dataset.
type Axis struct {
	Name   string
	Unit   string
	Points int
	Min    float64
	Width  float64
}

// Axis extracts the sweep axis from the XPTS/XMIN/XWID descriptor keys.
// It reads recorded metadata only; the values are not validated against
// any waveform data.
func (p *ParsedDescriptor) Axis() (Axis, error) {
	points, err := p.Int("XPTS")
	if err != nil {
		return Axis{}, err
	}
	min, _, err := p.Float("XMIN")
	if err != nil {
		return Axis{}, err
	}
	width, _, err := p.Float("XWID")
	if err != nil {
		return Axis{}, err
	}

	ax := Axis{Points: points, Min: min, Width: width}
	ax.Name, _ = p.String("XNAM")
	ax.Unit, _ = p.String("XUNI")
	return ax, nil
}

// Unquote strips the single-quote wrapping BES3T uses for string values.
func Unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'") {
		return v[1 : len(v)-1]
	}
	return v
}

func filenameWithoutExt(filename string) string {
	name := filename
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[:idx]
	}
	return name
}
