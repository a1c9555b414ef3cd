// Package ui is the terminal front end: a tab bar (Inventory, Pictures,
// Settings) where the Pictures tab drives the capture flow.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cjeanneret/cardcam/internal/debug"
	"github.com/cjeanneret/cardcam/internal/logic/capture"
	"github.com/cjeanneret/cardcam/internal/notice"
)

// Flow is the capture flow as seen by the UI. *capture.Controller implements it.
type Flow interface {
	CameraName() string
	Snapshot() capture.Snapshot
	Start(ctx context.Context) (capture.Snapshot, error)
	RequestPermission(ctx context.Context) (capture.Snapshot, error)
	Capture(ctx context.Context) (capture.Snapshot, error)
	Retake() (capture.Snapshot, error)
	Save(ctx context.Context) (capture.Snapshot, error)
}

// Options configures the model.
type Options struct {
	Start         Screen
	NoticeTTL     time.Duration // zero keeps notices until replaced
	ActionTimeout time.Duration // zero means no deadline
	Settings      []table.Row   // key/value rows for the Settings tab
}

// flowResultMsg carries the outcome of a flow action run in a tea.Cmd.
type flowResultMsg struct {
	action string
	snap   capture.Snapshot
	err    error
}

// noticeExpiredMsg clears the notice with the same sequence number.
type noticeExpiredMsg struct {
	seq int
}

// Model implements tea.Model.
type Model struct {
	flow Flow
	opts Options

	width  int
	height int
	styles styles
	keys   keyMap

	help     help.Model
	spinner  spinner.Model
	settings table.Model

	screen    Screen
	started   bool   // Start has been dispatched
	pending   string // in-flight flow action, "" when idle
	snap      capture.Snapshot
	notice    notice.Notice
	noticeSeq int
	lastShown time.Time // time of the newest notice shown; survives expiry
}

// New builds the model. The flow is started the first time the Pictures tab
// is shown.
func New(flow Flow, opts Options) *Model {
	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.Foreground(Color.Highlight)
	settings := table.New(
		table.WithColumns([]table.Column{
			{Title: "Setting", Width: 24},
			{Title: "Value", Width: 40},
		}),
		table.WithRows(opts.Settings),
		table.WithFocused(true),
		table.WithHeight(min(len(opts.Settings)+1, 16)),
		table.WithStyles(tableStyle),
	)

	m := &Model{
		flow:     flow,
		opts:     opts,
		styles:   newStyles(Color),
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		settings: settings,
		screen:   opts.Start,
		snap:     flow.Snapshot(),
	}
	m.syncKeys()
	return m
}

// Init starts the flow right away when the app opens on the Pictures tab.
func (m *Model) Init() tea.Cmd {
	if m.screen == Pictures {
		return m.startFlow()
	}
	return nil
}

// Update takes a tea.Msg as input and uses a type switch to handle different types of messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // required by interface
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case flowResultMsg:
		return m, m.handleResult(msg)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = notice.Notice{}
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTo(m.screen.Next())
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTo(m.screen.Prev())
	case key.Matches(msg, m.keys.JumpTab):
		s, err := ParseScreen(msg.String())
		if err != nil {
			return nil
		}
		return m.switchTo(s)
	}

	switch m.screen {
	case Settings:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return cmd
	case Pictures:
		return m.handleFlowKey(msg)
	}
	return nil
}

func (m *Model) handleFlowKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Capture):
		return m.dispatch("capture", m.flow.Capture)
	case key.Matches(msg, m.keys.Retake):
		return m.dispatch("retake", func(context.Context) (capture.Snapshot, error) {
			return m.flow.Retake()
		})
	case key.Matches(msg, m.keys.Save):
		return m.dispatch("save", m.flow.Save)
	case key.Matches(msg, m.keys.Request):
		return m.dispatch("request permission", m.flow.RequestPermission)
	}
	return nil
}

func (m *Model) switchTo(s Screen) tea.Cmd {
	if s == m.screen {
		return nil
	}
	debug.Verbose("UI: tab %s -> %s", m.screen, s)
	m.screen = s
	m.syncKeys()
	if s == Pictures && !m.started {
		return m.startFlow()
	}
	return nil
}

func (m *Model) startFlow() tea.Cmd {
	cmd := m.dispatch("start", m.flow.Start)
	if cmd != nil {
		m.started = true
	}
	return cmd
}

// dispatch runs action off the event loop. A second action while one is in
// flight is dropped.
func (m *Model) dispatch(action string, run func(context.Context) (capture.Snapshot, error)) tea.Cmd {
	if m.pending != "" {
		debug.Verbose("UI: %s dropped, %s in flight", action, m.pending)
		return nil
	}
	m.pending = action
	timeout := m.opts.ActionTimeout

	do := func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		snap, err := run(ctx)
		return flowResultMsg{action: action, snap: snap, err: err}
	}
	return tea.Batch(do, m.spinner.Tick)
}

func (m *Model) handleResult(msg flowResultMsg) tea.Cmd {
	if msg.action == m.pending {
		m.pending = ""
	}
	if capture.IsNoEffect(msg.err) {
		// The snapshot was taken mid-flight elsewhere; re-read instead.
		debug.Verbose("UI: %s had no effect: %v", msg.action, msg.err)
		m.snap = m.flow.Snapshot()
		m.syncKeys()
		return nil
	}

	m.snap = msg.snap
	m.syncKeys()
	if n := msg.snap.Notice; n.Msg != "" && n.Time.After(m.lastShown) {
		return m.showNotice(n)
	}
	if msg.err != nil {
		return m.showNotice(notice.New(notice.LevelError, capture.Describe(msg.err)))
	}
	return nil
}

func (m *Model) showNotice(n notice.Notice) tea.Cmd {
	m.notice = n
	m.noticeSeq++
	if n.Time.After(m.lastShown) {
		m.lastShown = n.Time
	}
	if m.opts.NoticeTTL <= 0 {
		return nil
	}
	seq := m.noticeSeq
	return tea.Tick(m.opts.NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) syncKeys() {
	m.keys.flowKeys(m.screen == Pictures, m.snap.Kind())
}

// Screen returns the active tab.
func (m *Model) Screen() Screen { return m.screen }

// Snapshot returns the flow state the view was last rendered from.
func (m *Model) Snapshot() capture.Snapshot { return m.snap }
