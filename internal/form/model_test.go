package form

import (
	"context"
	"testing"
	"time"

	"github.com/at-ishikawa/bookcompanion/internal/bookqa"
	mock_bookqa "github.com/at-ishikawa/bookcompanion/internal/mocks/bookqa"
	"github.com/at-ishikawa/bookcompanion/internal/mutation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestModel(t *testing.T, client bookqa.Client) Model {
	t.Helper()
	m, err := NewModel(context.Background(), mutation.NewController(client), Options{
		BookTitle:      "The Way of Kings",
		SampleQuestion: "Who is Kaladin?",
	})
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok)
	return result, cmd
}

// settle runs the commands returned by a submission until the settled message arrives
func settle(t *testing.T, cmd tea.Cmd) settledMsg {
	t.Helper()
	require.NotNil(t, cmd)

	msg := cmd()
	if settled, ok := msg.(settledMsg); ok {
		return settled
	}
	batch, ok := msg.(tea.BatchMsg)
	require.True(t, ok, "unexpected message %T", msg)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if settled, ok := c().(settledMsg); ok {
			return settled
		}
	}
	t.Fatal("no settled message in batch")
	return settledMsg{}
}

func keyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func TestModel_SubmitQuestion_EndToEnd(t *testing.T) {
	m := newTestModel(t, bookqa.NewStubClient("The Way of Kings", 20*time.Millisecond))
	m.SetQuestion("Who is Szeth?")

	m, cmd := update(t, m, keyMsg(tea.KeyCtrlS))
	assert.Equal(t, mutation.StatusPending, m.Snapshot().Status)
	assert.Equal(t, PanelLoading, m.Panel())
	view := m.View()
	assert.Contains(t, view, loadingMessage)
	assert.Contains(t, view, askingLabel)
	assert.NotContains(t, view, "Answer:")

	settled := settle(t, cmd)
	assert.Equal(t, mutation.StatusSucceeded, settled.Status)
	m, _ = update(t, m, settled)

	view = m.View()
	assert.Equal(t, PanelAnswer, m.Panel())
	assert.Contains(t, view, "Answer:")
	assert.Contains(t, view, `your question: "Who is Szeth?"`)
	assert.NotContains(t, view, "Error:")
	assert.NotContains(t, view, loadingMessage)
	assert.Equal(t, "Who is Szeth?", m.Question(), "question text is kept after submission")
}

func TestModel_SubmitQuestion_EchoesQuestion(t *testing.T) {
	m := newTestModel(t, bookqa.NewStubClient("The Way of Kings", 0))
	m.SetQuestion("What are Shardblades?")

	_, cmd := update(t, m, keyMsg(tea.KeyCtrlS))
	settled := settle(t, cmd)
	require.NotNil(t, settled.Data)
	assert.Contains(t, settled.Data.Answer, "What are Shardblades?")
}

func TestModel_SubmitQuestion_TrimsInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_bookqa.NewMockClient(ctrl)
	client.EXPECT().Ask(gomock.Any(), "Who is Szeth?").
		Return(bookqa.QuestionResponse{Answer: "an assassin"}, nil).
		Times(1)

	m := newTestModel(t, client)
	m.SetQuestion("  Who is Szeth?\n")
	_, cmd := update(t, m, keyMsg(tea.KeyCtrlS))
	settle(t, cmd)
}

func TestModel_SubmitQuestion_BlankIsIgnored(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "spaces", text: "   "},
		{name: "newlines and tabs", text: "\n\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_bookqa.NewMockClient(ctrl)

			m := newTestModel(t, client)
			m.SetQuestion(tt.text)
			assert.False(t, m.Controls().SubmitEnabled)

			m, cmd := update(t, m, keyMsg(tea.KeyCtrlS))
			assert.Nil(t, cmd)
			assert.Equal(t, mutation.StatusIdle, m.Snapshot().Status)
			assert.Equal(t, PanelNone, m.Panel())
			assert.NotContains(t, m.View(), "Error:")
		})
	}
}

func TestModel_SampleQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_bookqa.NewMockClient(ctrl)
	client.EXPECT().Ask(gomock.Any(), "Who is Kaladin?").
		Return(bookqa.QuestionResponse{Answer: "a bridgeman"}, nil).
		Times(2)

	m := newTestModel(t, client)
	m.SetQuestion("What are Shardblades?")

	m, cmd := update(t, m, keyMsg(tea.KeyCtrlT))
	m, _ = update(t, m, settle(t, cmd))
	assert.Equal(t, "What are Shardblades?", m.Question())

	// the sample action also works with blank text
	m.SetQuestion("   ")
	m, cmd = update(t, m, keyMsg(tea.KeyCtrlT))
	m, _ = update(t, m, settle(t, cmd))
	assert.Equal(t, PanelAnswer, m.Panel())
}

func TestModel_ControlsDisabledWhilePending(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_bookqa.NewMockClient(ctrl)

	release := make(chan struct{})
	client.EXPECT().Ask(gomock.Any(), "Who is Szeth?").
		DoAndReturn(func(ctx context.Context, question string) (bookqa.QuestionResponse, error) {
			<-release
			return bookqa.QuestionResponse{Answer: "an assassin"}, nil
		}).
		Times(1)

	m := newTestModel(t, client)
	m.SetQuestion("Who is Szeth?")
	assert.Equal(t, Controls{SubmitEnabled: true, SampleEnabled: true}, m.Controls())

	m, cmd := update(t, m, keyMsg(tea.KeyCtrlS))
	assert.Equal(t, Controls{SubmitEnabled: false, SampleEnabled: false}, m.Controls())

	// neither action issues another call while pending
	m, again := update(t, m, keyMsg(tea.KeyCtrlS))
	assert.Nil(t, again)
	m, again = update(t, m, keyMsg(tea.KeyCtrlT))
	assert.Nil(t, again)

	// typing is ignored while pending
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "Who is Szeth?", m.Question())

	close(release)
	m, _ = update(t, m, settle(t, cmd))
	assert.Equal(t, Controls{SubmitEnabled: true, SampleEnabled: true}, m.Controls())
}

func TestModel_ForcedFailure(t *testing.T) {
	m := newTestModel(t, bookqa.NewClient(bookqa.StubOptions{FailureMessage: "upstream unavailable"}))
	m.SetQuestion("Who is Szeth?")

	m, cmd := update(t, m, keyMsg(tea.KeyCtrlS))
	m, _ = update(t, m, settle(t, cmd))

	assert.Equal(t, PanelError, m.Panel())
	view := m.View()
	assert.Contains(t, view, "Error:")
	assert.Contains(t, view, "upstream unavailable")
	assert.NotContains(t, view, "Answer:")
	assert.True(t, m.Controls().SubmitEnabled)
}

func TestModel_FailureAfterSuccessHidesStaleAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_bookqa.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().Ask(gomock.Any(), "Who is Kaladin?").
			Return(bookqa.QuestionResponse{Answer: "a bridgeman"}, nil),
		client.EXPECT().Ask(gomock.Any(), "Who is Szeth?").
			Return(bookqa.QuestionResponse{}, &bookqa.APIError{Message: "upstream unavailable", Status: 503}),
	)

	m := newTestModel(t, client)
	m, cmd := update(t, m, keyMsg(tea.KeyCtrlT))
	m, _ = update(t, m, settle(t, cmd))
	assert.Contains(t, m.View(), "a bridgeman")

	m.SetQuestion("Who is Szeth?")
	m, cmd = update(t, m, keyMsg(tea.KeyCtrlS))
	m, _ = update(t, m, settle(t, cmd))

	view := m.View()
	assert.Contains(t, view, "upstream unavailable")
	assert.NotContains(t, view, "a bridgeman")
}

func TestModel_Typing(t *testing.T) {
	m := newTestModel(t, bookqa.NewStubClient("", 0))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Who is Szeth?")})
	assert.Equal(t, "Who is Szeth?", m.Question())
	assert.True(t, m.Controls().SubmitEnabled)
}

func TestModel_FocusAndEnter(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_bookqa.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().Ask(gomock.Any(), "Who is Szeth?").
			Return(bookqa.QuestionResponse{Answer: "an assassin"}, nil),
		client.EXPECT().Ask(gomock.Any(), "Who is Kaladin?").
			Return(bookqa.QuestionResponse{Answer: "a bridgeman"}, nil),
	)

	m := newTestModel(t, client)
	m.SetQuestion("Who is Szeth?")

	m, _ = update(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, focusAsk, m.focus)
	m, cmd := update(t, m, keyMsg(tea.KeyEnter))
	m, _ = update(t, m, settle(t, cmd))

	m, _ = update(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, focusSample, m.focus)
	m, cmd = update(t, m, keyMsg(tea.KeyEnter))
	m, _ = update(t, m, settle(t, cmd))

	m, _ = update(t, m, keyMsg(tea.KeyShiftTab))
	m, _ = update(t, m, keyMsg(tea.KeyShiftTab))
	assert.Equal(t, focusQuestion, m.focus)
	assert.Equal(t, "Who is Szeth?", m.Question())
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, bookqa.NewStubClient("", 0))

	_, cmd := update(t, m, keyMsg(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t, bookqa.NewStubClient("", 0))

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 40})
	assert.Equal(t, 56, m.width)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 0, Height: 0})
	assert.Equal(t, minWidth, m.width)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 1000, Height: 40})
	assert.Equal(t, maxWidth, m.width)
}
