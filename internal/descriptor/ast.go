package descriptor

import "fmt"

// Layer 1: structural document model for BES3T descriptor text.

type Document struct {
	Sections []*Section
}

type Section struct {
	Tag     string // e.g. "DESC", "SPL", "DSL"
	Version string // version token from the header, e.g. "1.2"
	Title   string // header comment text, e.g. "DESCRIPTOR INFORMATION"
	Line    int    // 1-based line number of the #TAG header
	Entries []Entry
}

// Entry is either a Parameter or a *DeviceBlock.
type Entry interface {
	entry()
}

// Parameter is a single key/value line. The value is the raw remainder
// after the key: internal whitespace is preserved verbatim, so vector
// literals like `{2;3,9;0} 0,0.996` survive untouched.
type Parameter struct {
	Key   string
	Value string
	Line  int // 1-based
}

// DeviceBlock groups the parameters of one instrument module, from its
// .DVC marker to the next .DVC marker or section end.
type DeviceBlock struct {
	Name    string // e.g. "fieldCtrl"
	Version string // e.g. "1.0"
	Line    int    // 1-based line number of the .DVC marker
	Params  []Parameter
}

func (Parameter) entry()    {}
func (*DeviceBlock) entry() {}

// FormatError reports a structurally invalid descriptor. It is the only
// fatal parse failure; malformed parameter payloads are kept as opaque
// values instead.
type FormatError struct {
	Line    int // 1-based
	Reason  string
	Excerpt string
}

func (e *FormatError) Error() string {
	if e.Excerpt == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Excerpt)
}
