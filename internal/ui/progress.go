package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner is an indeterminate activity indicator.
type Spinner interface {
	// SetTitle updates the text shown beside the spinner.
	SetTitle(title string)
	// Stop halts the spinner and clears its output.
	Stop()
}

// ProgressBar is a determinate progress indicator.
type ProgressBar interface {
	// Incr advances the bar by n units.
	Incr(n int)
	// Done completes and stops the bar.
	Done()
}

// Progress creates spinners and progress bars, falling back to plain log
// lines in headless mode.
type Progress interface {
	Spinner(title string) Spinner
	Bar(title string, total int) ProgressBar
}

// progressImpl implements the Progress interface.
type progressImpl struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
}

// NewProgress creates a Progress backed by the given theme and headless
// manager. Output goes to os.Stdout.
func NewProgress(theme *Theme, hm *HeadlessManager) Progress {
	return &progressImpl{theme: theme, headless: hm, writer: os.Stdout}
}

// newProgressImpl creates a progressImpl with a custom writer (for testing).
func newProgressImpl(theme *Theme, hm *HeadlessManager, w io.Writer) *progressImpl {
	return &progressImpl{theme: theme, headless: hm, writer: w}
}

// Spinner creates an indeterminate spinner. In headless mode it prints the
// title as a log line.
func (p *progressImpl) Spinner(title string) Spinner {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return newHeadlessSpinner(title, p.writer)
	}
	return newInteractiveSpinner(p.theme, title)
}

// Bar creates a determinate progress bar with the given total. In headless
// mode it returns a log-based bar.
func (p *progressImpl) Bar(title string, total int) ProgressBar {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return newHeadlessBar(title, total, p.writer)
	}
	return newInteractiveBar(p.theme, title, total)
}

// --- interactive spinner ---

type spinnerTitleMsg string
type spinnerStopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveSpinner(theme *Theme, title string) *interactiveSpinner {
	p := tea.NewProgram(newSpinnerModel(theme, title))
	s := &interactiveSpinner{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return s
}

func (s *interactiveSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

func (s *interactiveSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}

// --- headless spinner ---

type headlessSpinner struct {
	writer io.Writer
}

func newHeadlessSpinner(title string, w io.Writer) *headlessSpinner {
	s := &headlessSpinner{writer: w}
	_, _ = fmt.Fprintf(w, "%s...\n", title)
	return s
}

func (s *headlessSpinner) SetTitle(title string) {
	_, _ = fmt.Fprintf(s.writer, "%s...\n", title)
}

func (s *headlessSpinner) Stop() {}

// --- interactive progress bar ---

type barIncrMsg int
type barDoneMsg struct{}

type barModel struct {
	bar     progress.Model
	title   string
	current int
	total   int
	done    bool
}

func newBarModel(theme *Theme, title string, total int) barModel {
	bar := progress.New(
		progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary),
		progress.WithWidth(40),
	)
	return barModel{bar: bar, title: title, total: total}
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case barIncrMsg:
		m.current = min(m.current+int(msg), m.total)
		return m, m.bar.SetPercent(float64(m.current) / float64(m.total))
	case barDoneMsg:
		m.current = m.total
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m barModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s %d/%d\n", m.title, m.bar.View(), m.current, m.total)
}

type interactiveBar struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveBar(theme *Theme, title string, total int) *interactiveBar {
	p := tea.NewProgram(newBarModel(theme, title, total))
	b := &interactiveBar{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return b
}

func (b *interactiveBar) Incr(n int) {
	b.program.Send(barIncrMsg(n))
}

func (b *interactiveBar) Done() {
	b.once.Do(func() {
		b.program.Send(barDoneMsg{})
		b.program.Wait()
	})
}

// --- headless progress bar ---

type headlessBar struct {
	writer  io.Writer
	title   string
	current int
	total   int
}

func newHeadlessBar(title string, total int, w io.Writer) *headlessBar {
	return &headlessBar{writer: w, title: title, total: total}
}

func (b *headlessBar) Incr(n int) {
	b.current = min(b.current+n, b.total)
	_, _ = fmt.Fprintf(b.writer, "%s: %d/%d\n", b.title, b.current, b.total)
}

func (b *headlessBar) Done() {
	_, _ = fmt.Fprintf(b.writer, "%s: done\n", b.title)
}
