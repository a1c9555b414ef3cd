package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/cjeanneret/cardcam/internal/logic/capture"
)

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	JumpTab key.Binding
	Capture key.Binding
	Retake  key.Binding
	Save    key.Binding
	Request key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextTab: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		JumpTab: key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "go to tab")),
		Capture: key.NewBinding(key.WithKeys(" ", "c"), key.WithHelp("space", "capture")),
		Retake:  key.NewBinding(key.WithKeys("r", "backspace"), key.WithHelp("r", "retake")),
		Save:    key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "save")),
		Request: key.NewBinding(key.WithKeys("p", "enter"), key.WithHelp("p", "request access")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Capture, k.Retake, k.Save, k.Request, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.JumpTab},
		{k.Capture, k.Retake, k.Save, k.Request},
		{k.Help, k.Quit},
	}
}

// flowKeys enables only the bindings that make sense in the current view, so
// the help line never advertises a key that would be ignored.
func (k *keyMap) flowKeys(onPictures bool, kind capture.Kind) {
	k.Capture.SetEnabled(onPictures && kind == capture.KindCameraLive)
	k.Retake.SetEnabled(onPictures && kind == capture.KindPreviewing)
	k.Save.SetEnabled(onPictures && kind == capture.KindPreviewing)
	k.Request.SetEnabled(onPictures && (kind == capture.KindPermissionDenied || kind == capture.KindPermissionUnknown))
}
