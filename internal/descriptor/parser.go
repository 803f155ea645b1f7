package descriptor

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxInput bounds accepted input size. Real descriptors are a few
// kilobytes; anything near this limit is not a descriptor.
const DefaultMaxInput = 16 << 20

var versionPattern = regexp.MustCompile(`^\d+(\.\d+)*$`)

// Parse parses BES3T descriptor text into a Document. It returns a
// *FormatError when the input does not begin with a #TAG section header
// or a .DVC marker is missing its name or version. Parse does no I/O
// and keeps no state, so concurrent calls on independent inputs are safe.
func Parse(filename string, content []byte) (*Document, error) {
	return ParseLimit(filename, content, DefaultMaxInput)
}

// ParseLimit is Parse with an explicit input-size ceiling in bytes.
func ParseLimit(filename string, content []byte, maxBytes int) (*Document, error) {
	if len(content) > maxBytes {
		return nil, fmt.Errorf("%s: input is %d bytes, limit is %d", filename, len(content), maxBytes)
	}

	lines := strings.Split(string(content), "\n")

	doc := &Document{}
	var section *Section
	var device *DeviceBlock

	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)

		// Blank lines separate blocks visually but never close them.
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			sec, err := parseHeader(trimmed, i+1)
			if err != nil {
				return nil, err
			}
			doc.Sections = append(doc.Sections, sec)
			section = sec
			device = nil
			continue
		}

		// Comment and terminator lines, e.g. the ***** banners.
		if strings.HasPrefix(trimmed, "*") {
			continue
		}

		if section == nil {
			return nil, &FormatError{
				Line:    i + 1,
				Reason:  "expected a #TAG section header",
				Excerpt: excerpt(trimmed),
			}
		}

		if isDeviceMarker(trimmed) {
			blk, err := parseDeviceMarker(trimmed, i+1)
			if err != nil {
				return nil, err
			}
			// Appending at the marker keeps the block at its source
			// position relative to sibling entries.
			section.Entries = append(section.Entries, blk)
			device = blk
			continue
		}

		param := parseParameter(trimmed, i+1)
		if device != nil {
			device.Params = append(device.Params, param)
		} else {
			section.Entries = append(section.Entries, param)
		}
	}

	if len(doc.Sections) == 0 {
		return nil, &FormatError{Line: 1, Reason: "no section header found"}
	}

	return doc, nil
}

// parseHeader parses a `#TAG <version> * <title>` line. The title's
// trailing run of asterisks is banner padding, not content.
func parseHeader(trimmed string, line int) (*Section, error) {
	rest := strings.TrimPrefix(trimmed, "#")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, &FormatError{
			Line:    line,
			Reason:  "section header has no tag",
			Excerpt: excerpt(trimmed),
		}
	}

	sec := &Section{Tag: fields[0], Line: line}

	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "*") {
			break
		}
		if versionPattern.MatchString(f) {
			sec.Version = f
			break
		}
	}

	if idx := strings.Index(rest, "*"); idx >= 0 {
		title := strings.TrimRight(strings.TrimSpace(rest[idx+1:]), "*")
		sec.Title = strings.TrimSpace(title)
	}

	return sec, nil
}

func isDeviceMarker(trimmed string) bool {
	rest := strings.TrimPrefix(trimmed, ".DVC")
	if rest == trimmed {
		return false
	}
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// parseDeviceMarker parses a `.DVC <name>, <version>` line.
func parseDeviceMarker(trimmed string, line int) (*DeviceBlock, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, ".DVC"))
	name, version, ok := strings.Cut(rest, ",")
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if !ok || name == "" || version == "" {
		return nil, &FormatError{
			Line:    line,
			Reason:  "malformed .DVC marker, want `.DVC <name>, <version>`",
			Excerpt: excerpt(trimmed),
		}
	}
	return &DeviceBlock{Name: name, Version: version, Line: line}, nil
}

// parseParameter splits a line on the first whitespace run. The value is
// the trimmed remainder with internal whitespace kept verbatim. A key
// with nothing after it is a legal empty-valued parameter.
func parseParameter(trimmed string, line int) Parameter {
	idx := strings.IndexAny(trimmed, " \t")
	if idx < 0 {
		return Parameter{Key: trimmed, Line: line}
	}
	return Parameter{
		Key:   trimmed[:idx],
		Value: strings.TrimSpace(trimmed[idx:]),
		Line:  line,
	}
}

func excerpt(line string) string {
	const max = 40
	if len(line) <= max {
		return line
	}
	return line[:max] + "..."
}
