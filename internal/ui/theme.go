package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Green     lipgloss.AdaptiveColor
	Red       lipgloss.AdaptiveColor
}

var Color = Theme{
	Primary:   lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"},
	Secondary: lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"},
	Highlight: lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#8b2def"},
	Border:    lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"},
	Green:     lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF00"},
	Red:       lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF0000"},
}

type styles struct {
	base        lipgloss.Style
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	body        lipgloss.Style
	title       lipgloss.Style
	placeholder lipgloss.Style
	frame       lipgloss.Style
	info        lipgloss.Style
	errorText   lipgloss.Style
	dim         lipgloss.Style
}

func newStyles(t Theme) styles {
	base := lipgloss.NewStyle()
	tab := base.Padding(0, 2).Border(lipgloss.RoundedBorder(), true, true, false, true)
	return styles{
		base:        base,
		activeTab:   tab.BorderForeground(t.Highlight).Foreground(t.Highlight).Bold(true),
		inactiveTab: tab.BorderForeground(t.Border).Foreground(t.Secondary),
		body: base.Padding(1, 2).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(t.Border),
		title:       base.Bold(true).Foreground(t.Primary),
		placeholder: base.Italic(true).Foreground(t.Secondary),
		frame:       base.Border(lipgloss.DoubleBorder()).BorderForeground(t.Highlight).Padding(1, 3),
		info:        base.Foreground(t.Green),
		errorText:   base.Foreground(t.Red).Bold(true),
		dim:         base.Foreground(t.Secondary),
	}
}
