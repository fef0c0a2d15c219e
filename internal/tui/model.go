// Package tui renders the query panel in the terminal with Bubble Tea.
//
// The event loop is the only writer of the panel state. Each submission runs
// its outbound call inside a tea.Cmd and reports back with a resultMsg tagged
// with the request sequence number, so a late answer to an older request is
// dropped by the panel reducer.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recopanel/internal/domain/panel"
	"github.com/kailas-cloud/recopanel/internal/usecase/recommend"
)

const (
	defaultWidth = 100
	scoreWidth   = 12
	tableHeight  = 10
)

// Page holds the static copy shown above the input.
type Page struct {
	Title       string
	Heading     string
	Tagline     string
	Placeholder string
}

type focusArea int

const (
	focusInput focusArea = iota
	focusTable
)

// Model is the Bubble Tea model of the terminal panel.
type Model struct {
	ctx    context.Context
	svc    *recommend.Service
	open   Opener
	logger *zap.Logger
	page   Page

	state panel.State

	input   textinput.Model
	spinner spinner.Model
	table   table.Model
	help    help.Model
	keys    keyMap

	focus  focusArea
	status string
	width  int
}

// Option configures a Model.
type Option func(*Model)

// WithOpener replaces the system browser opener.
func WithOpener(o Opener) Option {
	return func(m *Model) { m.open = o }
}

// WithLogger sets the logger used for UI side effects.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates the terminal panel in the Idle state.
func New(ctx context.Context, svc *recommend.Service, page Page, opts ...Option) *Model {
	ti := textinput.New()
	ti.Placeholder = page.Placeholder
	ti.Prompt = ""
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("33"))

	tbl := table.New(
		table.WithColumns(columnsFor(defaultWidth)),
		table.WithHeight(tableHeight),
		table.WithStyles(styles),
	)

	m := &Model{
		ctx:     ctx,
		svc:     svc,
		open:    OpenBrowser,
		logger:  zap.NewNop(),
		page:    page,
		state:   panel.New(),
		input:   ti,
		spinner: sp,
		table:   tbl,
		help:    help.New(),
		keys:    defaultKeyMap(),
		width:   defaultWidth,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current panel state.
func (m *Model) State() panel.State { return m.state }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-20, 10)
		m.table.SetColumns(columnsFor(msg.Width))
		m.table.SetWidth(msg.Width)
		return m, nil

	case resultMsg:
		m.state = m.svc.Resolve(m.state, recommend.Outcome(msg))
		m.syncTable()
		if !m.state.ShowResults() && m.focus == focusTable {
			m.focusInput()
		}
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.logger.Warn("open assessment link failed", zap.String("url", msg.url), zap.Error(msg.err))
			m.status = "Could not open link: " + msg.url
		} else {
			m.status = "Opened " + msg.url
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Focus) {
		if m.focus == focusInput && m.state.ShowResults() {
			m.focusTable()
		} else {
			m.focusInput()
		}
		return m, nil
	}

	if m.focus == focusTable {
		if key.Matches(msg, m.keys.Open) {
			return m, m.openSelected()
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Submit) {
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = m.state.WithQuery(m.input.Value())
	return m, cmd
}

// submit dispatches the typed query. The control is disabled while a request
// is in flight, and a blank query does nothing.
func (m *Model) submit() tea.Cmd {
	if m.state.Busy() {
		return nil
	}

	raw := m.input.Value()
	next, req, ok := m.svc.Begin(m.state, raw)
	if !ok {
		return nil
	}
	m.state = next
	m.status = ""
	m.syncTable()

	return tea.Batch(m.fetch(req), m.spinner.Tick)
}

func (m *Model) fetch(req panel.Request) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return resultMsg(svc.Fetch(ctx, req))
	}
}

func (m *Model) openSelected() tea.Cmd {
	row := m.table.SelectedRow()
	if len(row) < 3 {
		return nil
	}
	url, open := row[2], m.open
	return func() tea.Msg {
		if err := checkLink(url); err != nil {
			return openedMsg{url: url, err: err}
		}
		return openedMsg{url: url, err: open(url)}
	}
}

func (m *Model) syncTable() {
	items := m.state.Items()
	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, table.Row{it.Name, it.ScoreLabel(), it.URL})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m *Model) focusInput() {
	m.focus = focusInput
	m.table.Blur()
	m.input.Focus()
}

func (m *Model) focusTable() {
	m.focus = focusTable
	m.input.Blur()
	m.table.Focus()
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.page.Title))
	b.WriteString("\n")
	b.WriteString(headingStyle.Render(m.page.Heading))
	b.WriteString("\n")
	b.WriteString(taglineStyle.Render(m.page.Tagline))
	b.WriteString("\n\n")

	box := inputBoxStyle
	if m.focus == focusInput {
		box = focusedBoxStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		box.Render(m.input.View()),
		" ",
		m.button(),
	))
	b.WriteString("\n\n")

	switch {
	case m.state.ShowError():
		b.WriteString(bannerStyle.Render(m.state.Error()))
		b.WriteString("\n")
	case m.state.ShowResults():
		b.WriteString(resultsTitleStyle.Render("Recommended Assessments"))
		b.WriteString("  ")
		b.WriteString(countStyle.Render(fmt.Sprintf("%d results", len(m.table.Rows()))))
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) button() string {
	if m.state.Busy() {
		return busyButtonStyle.Render(m.spinner.View() + " Searching…")
	}
	return buttonStyle.Render("Search")
}

// columnsFor splits the terminal width between name and link, keeping the score narrow.
func columnsFor(width int) []table.Column {
	rest := max(width-scoreWidth-8, 20)
	name := rest / 2
	return []table.Column{
		{Title: "Assessment Name", Width: name},
		{Title: "Match Score", Width: scoreWidth},
		{Title: "Link", Width: rest - name},
	}
}

// Run starts the terminal panel and blocks until the user quits or ctx ends.
func Run(ctx context.Context, svc *recommend.Service, page Page, opts ...Option) error {
	p := tea.NewProgram(New(ctx, svc, page, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal panel: %w", err)
	}
	return nil
}
