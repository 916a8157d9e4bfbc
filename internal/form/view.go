package form

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/bookcompanion/internal/mutation"
	"github.com/charmbracelet/lipgloss"
)

const (
	askLabel       = "Ask Question"
	askingLabel    = "Asking..."
	sampleLabel    = "Test with Sample Question"
	questionLabel  = "What would you like to know about the book?"
	loadingMessage = "Thinking about your question..."
	placeholder    = "e.g., What happened to Kaladin in chapter 5? Who is Szeth? What are Shardblades?"
	helpMessage    = "ctrl+s ask • ctrl+t sample question • tab switch focus • esc quit"
)

// Panel is the result area shown below the form. At most one is shown.
type Panel int

const (
	PanelNone Panel = iota
	PanelError
	PanelAnswer
	PanelLoading
)

func (p Panel) String() string {
	switch p {
	case PanelNone:
		return "none"
	case PanelError:
		return "error"
	case PanelAnswer:
		return "answer"
	case PanelLoading:
		return "loading"
	}
	return fmt.Sprintf("Panel(%d)", int(p))
}

// PanelFor picks the panel in priority order: error, answer, loading
func PanelFor(snapshot mutation.Snapshot) Panel {
	switch {
	case snapshot.Err != nil:
		return PanelError
	case snapshot.Data != nil:
		return PanelAnswer
	case snapshot.IsPending():
		return PanelLoading
	}
	return PanelNone
}

type Controls struct {
	SubmitEnabled bool
	SampleEnabled bool
}

// ControlsFor decides which actions are available for the local text and request state
func ControlsFor(text string, snapshot mutation.Snapshot) Controls {
	pending := snapshot.IsPending()
	return Controls{
		SubmitEnabled: !pending && strings.TrimSpace(text) != "",
		SampleEnabled: !pending,
	}
}

type screen struct {
	bookTitle string
	input     string
	text      string
	snapshot  mutation.Snapshot
	focus     focus
	spinner   string
	width     int
}

func render(s screen, styles Styles) string {
	controls := ControlsFor(s.text, s.snapshot)

	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("Ask About %q", s.bookTitle)))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render(questionLabel))
	b.WriteString("\n")
	b.WriteString(s.input)
	b.WriteString("\n\n")

	submitLabel := askLabel
	if s.snapshot.IsPending() {
		submitLabel = askingLabel
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		renderButton(submitLabel, controls.SubmitEnabled, s.focus == focusAsk, styles.Button, styles),
		"  ",
		renderButton(sampleLabel, controls.SampleEnabled, s.focus == focusSample, styles.SampleButton, styles),
	))
	b.WriteString("\n\n")

	switch PanelFor(s.snapshot) {
	case PanelError:
		b.WriteString(styles.ErrorPanel.Width(s.width).Render(
			styles.ErrorLabel.Render("Error:") + " " + s.snapshot.Err.Error(),
		))
		b.WriteString("\n")
	case PanelAnswer:
		b.WriteString(styles.AnswerPanel.Width(s.width).Render(
			styles.AnswerTitle.Render("Answer:") + "\n" + styles.AnswerText.Render(s.snapshot.Data.Answer),
		))
		b.WriteString("\n")
	case PanelLoading:
		b.WriteString(s.spinner + " " + styles.Loading.Render(loadingMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render(helpMessage))
	return b.String()
}

func renderButton(label string, enabled, focused bool, style lipgloss.Style, styles Styles) string {
	if !enabled {
		style = styles.DisabledButton
	}
	button := style.Render(label)
	if focused {
		return styles.FocusedButton.Render("›") + button
	}
	return " " + button
}
