package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cjeanneret/cardcam/internal/logic/capture"
)

// Placeholder texts shown on each tab.
const (
	InventoryText = "Your card collection will appear here"
	PicturesText  = "Card photos and scans will be displayed here"
	SettingsText  = "App preferences and configuration"
)

func (m *Model) View() string {
	body := m.styles.body
	if m.width > 0 {
		body = body.Width(m.width)
	}

	var content string
	switch m.screen {
	case Inventory:
		content = m.viewPlaceholder(InventoryText)
	case Pictures:
		content = m.viewPictures()
	case Settings:
		content = m.viewSettings()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewTabs(),
		body.Render(content),
		m.viewNotice(),
		m.help.View(m.keys),
	)
}

func (m *Model) viewTabs() string {
	tabs := make([]string, 0, len(Screens()))
	for i, s := range Screens() {
		label := fmt.Sprintf("%d %s", i+1, s.Title())
		if s == m.screen {
			tabs = append(tabs, m.styles.activeTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.inactiveTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m *Model) viewPlaceholder(text string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(m.screen.Title()),
		"",
		m.styles.placeholder.Render(text),
	)
}

func (m *Model) viewSettings() string {
	parts := []string{m.styles.title.Render(Settings.Title()), "", m.styles.placeholder.Render(SettingsText)}
	if len(m.opts.Settings) > 0 {
		parts = append(parts, "", m.settings.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// viewPictures renders the capture flow. Every state variant has a case.
func (m *Model) viewPictures() string {
	var lines []string
	switch st := m.snap.State.(type) {
	case capture.PermissionUnknown:
		if m.pending != "" {
			lines = append(lines, m.spinner.View()+" Checking camera permission...")
		} else {
			lines = append(lines,
				"Camera permission has not been decided yet.",
				m.styles.dim.Render("Press p to request camera access."),
			)
		}

	case capture.PermissionDenied:
		if m.pending != "" {
			lines = append(lines, m.spinner.View()+" Requesting camera access...")
		} else {
			lines = append(lines,
				m.styles.errorText.Render("Camera access denied."),
				m.styles.dim.Render("Grant access to the camera, then press p to try again."),
			)
		}

	case capture.CameraLive:
		live := lipgloss.JoinVertical(lipgloss.Center,
			m.styles.info.Render("● LIVE")+"  "+m.flow.CameraName(),
			"",
			"Line up the card inside the frame",
		)
		lines = append(lines, m.styles.frame.Render(live))
		if m.pending == "capture" {
			lines = append(lines, m.spinner.View()+" Capturing...")
		} else {
			lines = append(lines, m.styles.dim.Render("Press space to capture."))
		}

	case capture.Previewing:
		p := st.Photo
		info := []string{
			m.styles.title.Render("Preview"),
			"",
			"ID:     " + p.ID,
			"Camera: " + p.Source,
			"Size:   " + p.Dimensions(),
			"Taken:  " + p.TakenAt.Format("15:04:05"),
		}
		if p.URI != "" {
			info = append(info, "URI:    "+p.URI)
		}
		if p.Size() > 0 {
			info = append(info, fmt.Sprintf("Bytes:  %d (%s)", p.Size(), p.MIMEType))
		}
		lines = append(lines, m.styles.frame.Render(strings.Join(info, "\n")))
		if m.pending == "save" {
			lines = append(lines, m.spinner.View()+" Saving...")
		} else {
			lines = append(lines, m.styles.dim.Render("Press r to retake or s to save."))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(Pictures.Title()),
		m.styles.placeholder.Render(PicturesText),
		"",
		strings.Join(lines, "\n"),
	)
}

func (m *Model) viewNotice() string {
	if m.notice.Msg == "" {
		return ""
	}
	if m.notice.IsError() {
		return m.styles.errorText.Render("✖ " + m.notice.Msg)
	}
	return m.styles.info.Render("✔ " + m.notice.Msg)
}
