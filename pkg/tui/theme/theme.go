package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea viewer.
type Theme struct {
	Header HeaderTheme
	Chart  ChartTheme
	Footer FooterTheme
}

// HeaderTheme styles the project title block.
type HeaderTheme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	View     lipgloss.Style
}

// ChartTheme styles the timeline grid and bars.
type ChartTheme struct {
	Label    lipgloss.Style
	SubLabel lipgloss.Style
	Today    lipgloss.Style
	Weekend  lipgloss.Style
	TaskName lipgloss.Style
	Empty    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme used across the viewer.
func Default() Theme {
	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true),
			Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			View: lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1),
		},
		Chart: ChartTheme{
			Label:    lipgloss.NewStyle().Bold(true),
			SubLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Today:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Weekend:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			TaskName: lipgloss.NewStyle(),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
	}
}

// Bar returns the style for a bar in the given category color.
func Bar(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
