package form

import "github.com/charmbracelet/lipgloss"

var (
	colorTitle       = lipgloss.Color("#1f2937")
	colorLabel       = lipgloss.Color("#374151")
	colorPrimary     = lipgloss.Color("#2563eb")
	colorSample      = lipgloss.Color("#059669")
	colorDisabled    = lipgloss.Color("#9ca3af")
	colorError       = lipgloss.Color("#dc2626")
	colorErrorBorder = lipgloss.Color("#f87171")
	colorBorder      = lipgloss.Color("#e5e7eb")
	colorMuted       = lipgloss.Color("#6b7280")
)

type Styles struct {
	Title          lipgloss.Style
	Label          lipgloss.Style
	Button         lipgloss.Style
	SampleButton   lipgloss.Style
	DisabledButton lipgloss.Style
	FocusedButton  lipgloss.Style
	ErrorPanel     lipgloss.Style
	ErrorLabel     lipgloss.Style
	AnswerPanel    lipgloss.Style
	AnswerTitle    lipgloss.Style
	AnswerText     lipgloss.Style
	Spinner        lipgloss.Style
	Loading        lipgloss.Style
	Help           lipgloss.Style
}

func DefaultStyles() Styles {
	button := lipgloss.NewStyle().
		Padding(0, 2).
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(colorPrimary)

	return Styles{
		Title:          lipgloss.NewStyle().Bold(true).Foreground(colorTitle).MarginBottom(1),
		Label:          lipgloss.NewStyle().Foreground(colorLabel),
		Button:         button,
		SampleButton:   button.Background(colorSample),
		DisabledButton: button.Background(colorDisabled).Bold(false),
		FocusedButton:  lipgloss.NewStyle().Underline(true),
		ErrorPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorErrorBorder).
			Foreground(colorError).
			Padding(0, 1),
		ErrorLabel: lipgloss.NewStyle().Bold(true),
		AnswerPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		AnswerTitle: lipgloss.NewStyle().Bold(true).Foreground(colorTitle).MarginBottom(1),
		AnswerText:  lipgloss.NewStyle().Foreground(colorLabel),
		Spinner:     lipgloss.NewStyle().Foreground(colorPrimary),
		Loading:     lipgloss.NewStyle().Foreground(colorMuted),
		Help:        lipgloss.NewStyle().Foreground(colorMuted),
	}
}
