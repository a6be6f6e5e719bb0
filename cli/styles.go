package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette holds the styles used for help, errors and command output.
type Palette struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Command lipgloss.Style
	Sub     lipgloss.Style
	Flag    lipgloss.Style
	Muted   lipgloss.Style
	Italic  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

var (
	orange = lipgloss.AdaptiveColor{Light: "#B35900", Dark: "#FFA066"}
	blue   = lipgloss.AdaptiveColor{Light: "#1F5FAD", Dark: "#7E9CD8"}
	cyan   = lipgloss.AdaptiveColor{Light: "#0E7C86", Dark: "#7AA89F"}
	violet = lipgloss.AdaptiveColor{Light: "#6A3FA0", Dark: "#957FB8"}
	red    = lipgloss.AdaptiveColor{Light: "#B3262D", Dark: "#E46876"}
	yellow = lipgloss.AdaptiveColor{Light: "#8A6D00", Dark: "#E6C384"}
	green  = lipgloss.AdaptiveColor{Light: "#3A7D2C", Dark: "#98BB6C"}
	gray   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#727169"}
)

// DefaultPalette is the palette used by every docnav command.
var DefaultPalette = Palette{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(orange),
	Section: lipgloss.NewStyle().Italic(true).Foreground(orange),
	Command: lipgloss.NewStyle().Bold(true).Foreground(blue),
	Sub:     lipgloss.NewStyle().Foreground(cyan),
	Flag:    lipgloss.NewStyle().Foreground(violet),
	Muted:   lipgloss.NewStyle().Foreground(gray),
	Italic:  lipgloss.NewStyle().Italic(true),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(red),
	Warning: lipgloss.NewStyle().Foreground(yellow),
	Success: lipgloss.NewStyle().Bold(true).Foreground(green),
}

// DisableColor switches lipgloss to plain output for the rest of the process.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
