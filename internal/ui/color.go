package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	updStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	deviceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func UpdLine(w io.Writer, path string) {
	fmt.Fprintln(w, updStyle.Render("upd")+"  "+path)
}

func SummaryLine(w io.Writer, count int) {
	fmt.Fprintf(w, "imported %d files\n", count)
}

func ListRow(w io.Writer, id int64, fileName, title string, sections, params, idWidth, fileWidth, titleWidth int) {
	fmt.Fprintf(w, "%-*d  %-*s  %-*s  %s\n",
		idWidth, id,
		fileWidth, fileName,
		titleWidth, title,
		faintStyle.Render(fmt.Sprintf("%d sections, %d params", sections, params)))
}

func SectionHeader(w io.Writer, tag, version, title string) {
	line := sectionStyle.Render("#" + tag)
	if version != "" {
		line += " " + version
	}
	if title != "" {
		line += "  " + faintStyle.Render(title)
	}
	fmt.Fprintln(w, line)
}

func DeviceHeader(w io.Writer, name, version string) {
	fmt.Fprintln(w, "  "+deviceStyle.Render(name)+faintStyle.Render(", "+version))
}

// ParamLine pads the key by hand: the ANSI escape bytes lipgloss adds
// would throw off a %-*s width.
func ParamLine(w io.Writer, indent, key, value string, keyWidth int) {
	fmt.Fprintln(w, indent+keyStyle.Render(key)+pad(key, keyWidth)+"  "+value)
}

func ParamRow(w io.Writer, section, device, key, value string) {
	loc := section
	if device != "" {
		loc += "/" + device
	}
	fmt.Fprintf(w, "%s  %s  %s\n", faintStyle.Render(loc), keyStyle.Render(key), value)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return ""
	}
	return strings.Repeat(" ", width-len(s))
}
