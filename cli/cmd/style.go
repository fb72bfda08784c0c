package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the lipgloss styles of command output. Styles are bound to
// the output writer, so color is dropped when it is not a terminal.
type styles struct {
	category lipgloss.Style
	script   lipgloss.Style
	level    lipgloss.Style
	function lipgloss.Style
	param    lipgloss.Style
	match    lipgloss.Style
	faint    lipgloss.Style
	branch   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		category: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		script:   r.NewStyle(),
		level:    r.NewStyle().Foreground(lipgloss.Color("11")),
		function: r.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		param:    r.NewStyle().Foreground(lipgloss.Color("14")),
		match:    r.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("10")),
		faint:    r.NewStyle().Faint(true),
		branch:   r.NewStyle().Foreground(lipgloss.Color("8")).MarginRight(1),
	}
}
