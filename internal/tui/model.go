// Package tui implements the optional full-screen calculator built on
// bubbletea. The plain driver loop remains the default mode.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/linecalc/internal/calc"
	"github.com/agbru/linecalc/internal/cli"
	"github.com/agbru/linecalc/internal/config"
	apperrors "github.com/agbru/linecalc/internal/errors"
	"github.com/agbru/linecalc/internal/sysmon"
	"github.com/agbru/linecalc/internal/telemetry"
)

const (
	headerHeight     = 1
	inputHeight      = 3
	footerHeight     = 1
	cpuSparklineSize = 20
	tickInterval     = time.Second
)

// TickMsg drives the periodic footer refresh.
type TickMsg time.Time

// SysStatsMsg carries one resource usage sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// Model is the root bubbletea model of the calculator.
type Model struct {
	input    textinput.Model
	viewport viewport.Model
	keymap   KeyMap

	lines     []string
	evaluated int
	failed    int

	recall    []string
	recallIdx int

	stats   sysmon.Stats
	cpuHist *RingBuffer

	config   config.AppConfig
	recorder cli.CalcRecorder
	version  string

	width  int
	height int
	ready  bool
}

// NewModel creates the calculator model.
func NewModel(cfg config.AppConfig, recorder cli.CalcRecorder, version string) Model {
	if recorder == nil {
		recorder = cli.NopRecorder{}
	}

	input := textinput.New()
	input.Placeholder = "5 + 5"
	input.Prompt = "> "
	input.PromptStyle = promptStyle
	input.Focus()

	return Model{
		input:     input,
		keymap:    DefaultKeyMap(),
		config:    cfg,
		recorder:  recorder,
		version:   version,
		cpuHist:   NewRingBuffer(cpuSparklineSize),
		recallIdx: -1,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.stats = sysmon.Stats{CPUPercent: msg.CPUPercent, MemPercent: msg.MemPercent}
		m.cpuHist.Push(msg.CPUPercent)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		return m.submit()

	case key.Matches(msg, m.keymap.RecallPrev):
		m.recallPrev()
		return m, nil

	case key.Matches(msg, m.keymap.RecallNext):
		m.recallNext()
		return m, nil

	case key.Matches(msg, m.keymap.ScrollUp):
		m.viewport.LineUp(3)
		return m, nil

	case key.Matches(msg, m.keymap.ScrollDown):
		m.viewport.LineDown(3)
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.lines = nil
		m.evaluated = 0
		m.failed = 0
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit evaluates the current input line. Typed quit words end the
// session, matching the line-mode driver loop.
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return m, nil
	}

	switch strings.ToLower(trimmed) {
	case "q", "quit", "exit":
		return m, tea.Quit
	}

	m.evaluateLine(raw)
	m.rememberInput(trimmed)
	m.input.Reset()
	m.refreshViewport()
	return m, nil
}

// evaluateLine runs the parse-then-evaluate pipeline and appends the
// rendered outcome.
func (m *Model) evaluateLine(raw string) {
	_, span := telemetry.StartCalculation(context.Background(), "tui", len(raw))

	expr, err := calc.Parse(raw)
	if err != nil {
		var perr *calc.ParseError
		if errors.As(err, &perr) {
			m.recorder.RecordParseError(perr.Kind.String())
		}
		m.failed++
		m.lines = append(m.lines, errorStyle.Render(cli.ErrorPrefix+err.Error()))
		telemetry.EndCalculation(span, "", err)
		return
	}

	start := time.Now()
	result, err := expr.Evaluate()
	elapsed := time.Since(start)

	if err != nil {
		var eerr *calc.EvalError
		if errors.As(err, &eerr) {
			m.recorder.RecordEvalError(eerr.Kind.String())
		}
		m.failed++
		m.lines = append(m.lines, errorStyle.Render(cli.ErrorPrefix+err.Error()))
		telemetry.EndCalculation(span, string(expr.Op), err)
		return
	}

	m.recorder.RecordCalculation(string(expr.Op), elapsed)
	m.evaluated++
	m.lines = append(m.lines, resultStyle.Render(cli.FormatResultLine(expr, result, m.config.Precision)))
	telemetry.EndCalculation(span, string(expr.Op), nil)
}

// rememberInput pushes the line onto the recall stack and resets the
// cursor past the newest entry.
func (m *Model) rememberInput(line string) {
	if n := len(m.recall); n == 0 || m.recall[n-1] != line {
		m.recall = append(m.recall, line)
	}
	if len(m.recall) > m.config.HistorySize && m.config.HistorySize > 0 {
		m.recall = m.recall[1:]
	}
	m.recallIdx = -1
}

func (m *Model) recallPrev() {
	if len(m.recall) == 0 {
		return
	}
	if m.recallIdx == -1 {
		m.recallIdx = len(m.recall) - 1
	} else if m.recallIdx > 0 {
		m.recallIdx--
	}
	m.input.SetValue(m.recall[m.recallIdx])
	m.input.CursorEnd()
}

func (m *Model) recallNext() {
	if m.recallIdx == -1 {
		return
	}
	m.recallIdx++
	if m.recallIdx >= len(m.recall) {
		m.recallIdx = -1
		m.input.Reset()
		return
	}
	m.input.SetValue(m.recall[m.recallIdx])
	m.input.CursorEnd()
}

func (m *Model) layout() {
	bodyHeight := m.height - headerHeight - inputHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = bodyHeight
	}
	m.input.Width = m.width - 6
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	if len(m.lines) == 0 {
		m.viewport.SetContent(dimStyle.Render("Enter a calculation like 5 + 5 and press enter."))
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	title := titleStyle.Render("linecalc")
	if m.version != "" && m.version != "dev" {
		title += versionStyle.Render(" " + m.version)
	}
	counts := dimStyle.Render(fmt.Sprintf("%d evaluated, %d failed", m.evaluated, m.failed))
	header := title + spaces(m.width-lipgloss.Width(title)-lipgloss.Width(counts)) + counts

	body := m.viewport.View()

	inputBox := panelStyle.Width(m.width - 2).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, inputBox, m.footerView())
}

func (m Model) footerView() string {
	hints := []string{
		footerKeyStyle.Render("enter") + footerDescStyle.Render(" evaluate"),
		footerKeyStyle.Render("↑/↓") + footerDescStyle.Render(" recall"),
		footerKeyStyle.Render("ctrl+l") + footerDescStyle.Render(" clear"),
		footerKeyStyle.Render("esc") + footerDescStyle.Render(" quit"),
	}
	left := strings.Join(hints, footerDescStyle.Render("  "))

	right := sparklineStyle.Render(RenderSparkline(m.cpuHist.Slice())) +
		footerDescStyle.Render(" "+m.stats.String())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	return left + spaces(gap) + right
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// Run is the public entry point for the full-screen mode. It creates the
// bubbletea program, runs it until quit, and returns the exit code.
func Run(ctx context.Context, cfg config.AppConfig, recorder cli.CalcRecorder, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(cfg, recorder, version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after the refresh
// interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats off the UI
// goroutine.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}
