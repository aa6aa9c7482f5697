package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/revfmt/log"
	"github.com/ardnew/revfmt/style"
	"github.com/ardnew/revfmt/template"
	"github.com/ardnew/revfmt/vcs"
)

const prompt = "➜ "

func helpMessage() string {
	return `
: Commands (prefix with ':'):

  :help         Print this cruft
  :list         List configured templates, properties, and functions
  :kind         Toggle between commit and operation records
  :next         Advance to the next sample record
  :clear        Clear screen
  :quit         Exit REPL

Usage:
  Type a template expression to render it against the current record
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to dismiss candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *template.Session
	renderer     *style.Renderer
	logger       log.Logger
	history      *History
	commits      []*vcs.Commit
	ops          []*vcs.Operation
	record       int           // index of the current sample record
	kind         template.ContextKind
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts the REPL over the given engine configuration.
func Run(
	ctx context.Context,
	cfg *template.Config,
	palette style.Palette,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	commits := vcs.SampleCommits()
	ops := vcs.SampleOperations()

	session := template.NewSession(cfg,
		template.WithLogger(logger),
		template.WithClock(time.Now),
		template.WithIdResolver(vcs.HistoryResolver(commits, ops)),
	)

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("template_count", len(cfg.TemplateNames())),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, session, palette, commits, ops, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	session *template.Session,
	palette style.Palette,
	commits []*vcs.Commit,
	ops []*vcs.Operation,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    session,
		renderer:   style.NewRenderer(palette),
		logger:     logger,
		history:    history,
		commits:    commits,
		ops:        ops,
		kind:       template.ContextCommit,
		historyIdx: history.Len(),
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		pos := m.historyIdx + 1 // 1-based for display
		b.WriteString(hintStyle.Render(
			fmt.Sprintf("%d/%d", pos, m.history.Len())))
		b.WriteString("\n")

	case strings.TrimSpace(input) == "":
		hint := fmt.Sprintf(
			"Type a template expression (current record: %s %d)",
			m.kind, m.record+1)
		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(
			m.matches, m.suggIdx, m.tabActive, m.width))
		b.WriteString("\n")

	default:
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.handleTab(1)

	case tea.KeyShiftTab:
		return m.handleTab(-1)

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)
		}

		return m, nil

	case tea.KeyRunes:
		// Space breaks an active tab-cycle.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

func (m model) handleTab(dir int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx += dir
		if m.suggIdx >= len(m.matches) {
			m.suggIdx = 0
		}

		if m.suggIdx < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.input.SetValue(m.history.At(m.historyIdx))
		m.input.CursorEnd()
		m.tabActive = false
		m.matches = nil
	}

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx < m.history.Len() {
		m.historyIdx++

		if m.historyIdx == m.history.Len() {
			m.input.SetValue("")
		} else {
			m.input.SetValue(m.history.At(m.historyIdx))
		}

		m.input.CursorEnd()
		m.tabActive = false
		m.matches = nil
	}

	return m, nil
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())

	m.input.SetValue("")
	m.tabActive = false
	m.matches = nil

	if input == "" {
		return m, nil
	}

	_, _ = m.history.Write(input)
	m.historyIdx = m.history.Len()

	echo := formatCommand(input)

	if cmd, ok := strings.CutPrefix(input, ":"); ok {
		return m.executeCommand(strings.TrimSpace(cmd), echo)
	}

	output, err := m.render(input)
	if err != nil {
		return m, tea.Sequence(
			tea.Println(echo),
			tea.Println(errorStyle.Render("🗴 "+err.Error())),
		)
	}

	return m, tea.Sequence(
		tea.Println(echo),
		tea.Println(strings.TrimSuffix(output, "\n")),
	)
}

// render evaluates template source against the current sample record.
func (m model) render(source string) (string, error) {
	var (
		frags []template.Fragment
		err   error
	)

	if m.kind == template.ContextOperation {
		frags, err = m.session.RenderOperationSource(
			source, m.ops[m.record%len(m.ops)])
	} else {
		frags, err = m.session.RenderCommitSource(
			source, m.commits[m.record%len(m.commits)])
	}

	if err != nil {
		return "", err
	}

	return m.renderer.Render(frags), nil
}

func (m model) executeCommand(cmd, echo string) (model, tea.Cmd) {
	switch cmd {
	case "help":
		return m, tea.Sequence(tea.Println(echo), tea.Println(helpMessage()))

	case "list":
		return m, tea.Sequence(tea.Println(echo), tea.Println(m.listing()))

	case "kind":
		if m.kind == template.ContextCommit {
			m.kind = template.ContextOperation
		} else {
			m.kind = template.ContextCommit
		}

		m.record = 0

		return m, tea.Sequence(
			tea.Println(echo),
			tea.Println(hintStyle.Render("now rendering "+m.kind.String())),
		)

	case "next":
		m.record++

		return m, tea.Sequence(
			tea.Println(echo),
			tea.Println(hintStyle.Render(
				fmt.Sprintf("record %d", m.record+1))),
		)

	case "clear":
		return m, tea.Sequence(tea.ClearScreen, textinput.Blink)

	case "quit", "exit":
		m.quitting = true

		return m, tea.Quit
	}

	return m, tea.Sequence(
		tea.Println(echo),
		tea.Println(errorStyle.Render("🗴 unknown command: "+cmd)),
	)
}

// listing formats the completion candidate groups for the :list command.
func (m model) listing() string {
	var b strings.Builder

	b.WriteString("Templates:\n")

	for _, name := range m.session.Config().TemplateNames() {
		b.WriteString("  " + name + "\n")
	}

	b.WriteString("Properties:\n")

	for _, name := range template.PropertyNames(m.kind) {
		b.WriteString("  " + name + "\n")
	}

	b.WriteString("Functions:\n")

	for _, name := range template.BuiltinNames() {
		b.WriteString("  " + name + "\n")
	}

	b.WriteString("Aliases:\n")

	for _, name := range m.session.Config().Aliases.Names() {
		b.WriteString("  " + name + "\n")
	}

	return b.String()
}
