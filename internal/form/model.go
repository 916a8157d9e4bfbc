// Package form is the terminal screen for asking a question about the book.
package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/bookcompanion/internal/mutation"
	"github.com/at-ishikawa/bookcompanion/internal/validation"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultSampleQuestion = "Who is Kaladin?"

	defaultWidth = 72
	minWidth     = 24
	maxWidth     = 100
	inputHeight  = 4
	charLimit    = 2000
)

type focus int

const (
	focusQuestion focus = iota
	focusAsk
	focusSample
	focusCount
)

// settledMsg carries the controller state once the in-flight question resolves
type settledMsg mutation.Snapshot

type Options struct {
	BookTitle      string
	SampleQuestion string
}

// Model renders the form and forwards submissions to the controller.
// The question text is local to the model and is never cleared on submit.
type Model struct {
	ctx        context.Context
	controller *mutation.Controller
	validate   *validator.Validate

	bookTitle      string
	sampleQuestion string

	question textarea.Model
	spinner  spinner.Model
	styles   Styles
	focus    focus
	width    int
}

func NewModel(ctx context.Context, controller *mutation.Controller, options Options) (Model, error) {
	validate, _, err := validation.New()
	if err != nil {
		return Model{}, fmt.Errorf("validation.New() > %w", err)
	}
	if options.SampleQuestion == "" {
		options.SampleQuestion = DefaultSampleQuestion
	}

	styles := DefaultStyles()

	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = charLimit
	ta.SetHeight(inputHeight)
	ta.SetWidth(defaultWidth)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		ctx:            ctx,
		controller:     controller,
		validate:       validate,
		bookTitle:      options.BookTitle,
		sampleQuestion: options.SampleQuestion,
		question:       ta,
		spinner:        sp,
		styles:         styles,
		focus:          focusQuestion,
		width:          defaultWidth,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Question returns the local question text as typed
func (m Model) Question() string {
	return m.question.Value()
}

// SetQuestion replaces the local question text
func (m *Model) SetQuestion(text string) {
	m.question.SetValue(text)
}

func (m Model) Snapshot() mutation.Snapshot {
	return m.controller.Snapshot()
}

func (m Model) Controls() Controls {
	return ControlsFor(m.Question(), m.Snapshot())
}

func (m Model) Panel() Panel {
	return PanelFor(m.Snapshot())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = clamp(msg.Width-4, minWidth, maxWidth)
		m.question.SetWidth(m.width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			return m.submit()
		case "ctrl+t":
			return m.askSample()
		case "tab":
			return m.moveFocus(1)
		case "shift+tab":
			return m.moveFocus(-1)
		case "enter":
			switch m.focus {
			case focusAsk:
				return m.submit()
			case focusSample:
				return m.askSample()
			}
		}
		if m.focus != focusQuestion || m.Snapshot().IsPending() {
			return m, nil
		}

	case spinner.TickMsg:
		if !m.Snapshot().IsPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case settledMsg:
		slog.Default().Debug("question settled", "status", msg.Status)
		if m.focus == focusQuestion {
			return m, m.question.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.question, cmd = m.question.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return render(screen{
		bookTitle: m.bookTitle,
		input:     m.question.View(),
		text:      m.Question(),
		snapshot:  m.Snapshot(),
		focus:     m.focus,
		spinner:   m.spinner.View(),
		width:     m.width,
	}, m.styles)
}

// submit ignores blank text without reporting an error
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.Snapshot().IsPending() {
		return m, nil
	}
	form := NewQuestionForm(m.Question())
	if err := form.Validate(m.validate); err != nil {
		slog.Default().Debug("blank question ignored", "error", err)
		return m, nil
	}
	return m.trigger(form.Question)
}

func (m Model) askSample() (tea.Model, tea.Cmd) {
	if !m.Controls().SampleEnabled {
		return m, nil
	}
	return m.trigger(m.sampleQuestion)
}

func (m Model) trigger(question string) (tea.Model, tea.Cmd) {
	done, err := m.controller.Trigger(m.ctx, question)
	if err != nil {
		slog.Default().Debug("question not triggered", "question", question, "error", err)
		return m, nil
	}

	m.question.Blur()
	return m, tea.Batch(m.spinner.Tick, waitForSettled(done))
}

func (m Model) moveFocus(step int) (tea.Model, tea.Cmd) {
	m.focus = focus((int(m.focus) + step + int(focusCount)) % int(focusCount))
	if m.focus == focusQuestion && !m.Snapshot().IsPending() {
		return m, m.question.Focus()
	}
	m.question.Blur()
	return m, nil
}

func waitForSettled(done <-chan mutation.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return settledMsg(<-done)
	}
}

func clamp(v, low, high int) int {
	return max(low, min(v, high))
}
