// Package output provides rendering for CLI results. The renderer adapts
// to the environment: styled text on a terminal, markdown when piped, and
// JSON on request.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ValidMode reports whether s names a known output mode.
func ValidMode(s string) bool {
	switch Mode(s) {
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return true
	}
	return false
}

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	FilePath lipgloss.Style
}

func defaultStyles() *Styles {
	return &Styles{
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Bold:     lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		FilePath: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	}
}

// Renderer writes formatted output.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer for the given writers and mode.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, styles: defaultStyles()}
}

// EffectiveMode resolves ModeAuto: styled text on a terminal, markdown
// otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok {
		if termenv.NewOutput(f).ColorProfile() != termenv.Ascii {
			return ModeText
		}
	}
	return ModeMarkdown
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Printf writes formatted output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Println writes a line.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Header writes a section header: styled on terminals, '#' prefixed in
// markdown.
func (r *Renderer) Header(level int, s string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(strings.Repeat("#", level) + " " + s)
		return
	}
	r.Println(r.styles.Bold.Render(s))
}

// Success writes a confirmation line.
func (r *Renderer) Success(s string) {
	if r.EffectiveMode() == ModeText {
		s = r.styles.Success.Render(s)
	}
	r.Println(s)
}

// Error writes an error line to the error stream.
func (r *Renderer) Error(s string) {
	if r.EffectiveMode() == ModeText {
		s = r.styles.Error.Render(s)
	}
	_, _ = fmt.Fprintln(r.errOut, s)
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(s string) {
	if r.EffectiveMode() == ModeText {
		s = r.styles.Muted.Render(s)
	}
	r.Println(s)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
