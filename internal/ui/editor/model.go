package editor

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizedit/internal/quiz"
	"quizedit/internal/session"
)

// statusKind selects the style of the status line.
type statusKind int

const (
	statusInfo statusKind = iota
	statusError
	statusOK
)

const dateHint = "Date must look like YYYY-MM-DD."

// Model is the Bubble Tea model binding a session to the terminal.
type Model struct {
	ctx     context.Context
	session *session.Session
	doc     quiz.Document
	rows    []row
	focus   int
	input   textinput.Model
	keys    keyMap
	help    help.Model
	styles  styles

	loading bool
	saving  bool
	saved   bool
	outcome session.Outcome

	status     string
	statusKind statusKind
	width      int
	height     int
}

// loadedMsg reports the end of the initial fetch.
type loadedMsg struct {
	err error
}

// savedMsg reports the end of a save attempt.
type savedMsg struct {
	outcome session.Outcome
	err     error
}

// NewModel builds an editor for the session.
func NewModel(ctx context.Context, sess *session.Session, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 0
	m := Model{
		ctx:     ctx,
		session: sess,
		doc:     sess.Document(),
		input:   input,
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  newStyles(opts.NoColor),
		loading: sess.Mode().IsEditing(),
	}
	m.rows = buildRows(m.doc)
	if m.loading {
		m = m.setStatus("Loading quiz "+sess.Mode().Key()+"...", statusInfo)
	}
	return m.focusRow(0)
}

// Init starts the fetch when editing an existing quiz.
func (m Model) Init() tea.Cmd {
	if !m.loading {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, loadCmd(m.ctx, m.session))
}

// Saved reports whether the editor exited after a successful save.
func (m Model) Saved() (session.Outcome, bool) {
	return m.outcome, m.saved
}

// Update routes terminal events into document operations.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.help.Width = typed.Width
		m.input.Width = max(typed.Width-24, 10)
		return m, nil
	case loadedMsg:
		return m.handleLoaded(typed), nil
	case savedMsg:
		return m.handleSaved(typed)
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.focusRow(m.focus + 1), nil
	case key.Matches(msg, m.keys.Prev):
		return m.focusRow(m.focus - 1), nil
	}
	if m.loading {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.startSave()
	case key.Matches(msg, m.keys.Add):
		return m.addQuestion(), nil
	case key.Matches(msg, m.keys.Remove):
		return m.removeQuestion(), nil
	}

	current, ok := m.current()
	if !ok {
		return m, nil
	}
	if !current.isText() {
		switch {
		case key.Matches(msg, m.keys.Left):
			return m.cycle(current, -1), nil
		case key.Matches(msg, m.keys.Right):
			return m.cycle(current, 1), nil
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m = m.commitInput(current)
	}
	return m, cmd
}

func (m Model) handleLoaded(msg loadedMsg) Model {
	m.loading = false
	m = m.refresh()
	if msg.err != nil {
		return m.setStatus(failureMessage(msg.err), statusError)
	}
	return m.setStatus("Loaded "+strconv.Itoa(m.doc.Len())+" questions.", statusInfo)
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m = m.setStatus(failureMessage(msg.err), statusError)
		var validationErr *quiz.ValidationError
		if errors.As(msg.err, &validationErr) {
			if index := rowForField(m.rows, validationErr.Field); index >= 0 {
				m = m.focusRow(index)
			}
		}
		return m, nil
	}
	m.saved = true
	m.outcome = msg.outcome
	m = m.setStatus(msg.outcome.Message, statusOK)
	return m, tea.Quit
}

func (m Model) startSave() (tea.Model, tea.Cmd) {
	if m.saving {
		return m.setStatus(session.MsgSaveInFlight, statusInfo), nil
	}
	m.saving = true
	m = m.setStatus("Saving...", statusInfo)
	return m, saveCmd(m.ctx, m.session)
}

func (m Model) addQuestion() Model {
	m = m.apply(func(doc quiz.Document) (quiz.Document, error) {
		return quiz.AddQuestion(doc), nil
	})
	target := row{kind: rowText, question: m.doc.Len() - 1}
	return m.focusRow(findRow(m.rows, target))
}

func (m Model) removeQuestion() Model {
	current, ok := m.current()
	if !ok || current.question < 0 {
		return m.setStatus("Move to a question to remove it.", statusInfo)
	}
	label := quiz.LabelFor(current.question).Name
	m = m.apply(func(doc quiz.Document) (quiz.Document, error) {
		return quiz.RemoveQuestion(doc, current.question)
	})
	next := findRow(m.rows, row{kind: rowText, question: min(current.question, m.doc.Len()-1)})
	if next < 0 {
		next = len(m.rows) - 1
	}
	return m.focusRow(next).setStatus("Removed question "+label+".", statusInfo)
}

func (m Model) cycle(r row, delta int) Model {
	return m.apply(func(doc quiz.Document) (quiz.Document, error) {
		return cycle(doc, r, delta)
	})
}

// commitInput writes the text input into the document. An invalid draft, such as
// a half typed date, stays in the input until it parses.
func (m Model) commitInput(r row) Model {
	value := m.input.Value()
	err := m.session.Apply(func(doc quiz.Document) (quiz.Document, error) {
		return applyText(doc, r, value)
	})
	if err != nil {
		if errors.Is(err, quiz.ErrInvalidDate) {
			return m.setStatus(dateHint, statusInfo)
		}
		return m.setStatus(err.Error(), statusError)
	}
	m.doc = m.session.Document()
	if m.status == dateHint {
		m = m.setStatus("", statusInfo)
	}
	return m
}

// apply runs a mutation through the session and refreshes the view.
func (m Model) apply(fn func(quiz.Document) (quiz.Document, error)) Model {
	if err := m.session.Apply(fn); err != nil {
		return m.setStatus(err.Error(), statusError)
	}
	return m.refresh()
}

// refresh re-reads the document and keeps focus inside the rows.
func (m Model) refresh() Model {
	m.doc = m.session.Document()
	m.rows = buildRows(m.doc)
	return m.focusRow(m.focus)
}

func (m Model) current() (row, bool) {
	if m.focus < 0 || m.focus >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.focus], true
}

// focusRow moves focus, clamping to the row range, and loads text rows into the input.
func (m Model) focusRow(index int) Model {
	if len(m.rows) == 0 {
		m.focus = 0
		m.input.Blur()
		return m
	}
	m.focus = max(0, min(index, len(m.rows)-1))
	current := m.rows[m.focus]
	if current.isText() {
		m.input.SetValue(rowValue(m.doc, current))
		m.input.Placeholder = rowPlaceholder(current)
		m.input.CursorEnd()
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

func (m Model) setStatus(text string, kind statusKind) Model {
	m.status = text
	m.statusKind = kind
	return m
}

// View renders the form around the focused row.
func (m Model) View() string {
	title := "Create a New Quiz"
	if m.session.Mode().IsEditing() {
		title = "Edit Quiz: " + m.session.Mode().Key()
	}
	lines, focusLine := m.formLines()
	lines = visibleWindow(lines, focusLine, m.height-4)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(title),
		strings.Join(lines, "\n"),
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

// formLines renders every row and reports the line index of the focused row.
func (m Model) formLines() ([]string, int) {
	st := m.styles
	lines := []string{st.section.Render("Quiz Information")}
	focusLine := 0
	entries := quiz.Entries(m.doc)
	for i, r := range m.rows {
		if r.kind == rowText {
			lines = append(lines, "", st.section.Render("Question "+entries[r.question].Name))
		}
		if i == m.focus {
			focusLine = len(lines)
		}
		lines = append(lines, m.renderRow(i, r))
	}
	if m.doc.Len() == 0 {
		lines = append(lines, "", st.muted.Render("No questions yet. Press ctrl+n to add one."))
	}
	return lines, focusLine
}

func (m Model) renderRow(index int, r row) string {
	st := m.styles
	focused := index == m.focus
	marker := "  "
	label := st.label.Render(padLabel(rowLabel(r)))
	if focused {
		marker = st.focused.Render("> ")
		label = st.focused.Render(padLabel(rowLabel(r)))
	}
	var value string
	switch {
	case r.isText() && focused:
		value = m.input.View()
	case r.isText():
		value = rowValue(m.doc, r)
		if value == "" {
			value = st.muted.Render(rowPlaceholder(r))
		}
	default:
		value = renderSelector(rowValue(m.doc, r), st)
	}
	if r.kind == rowOption && r.option == m.doc.Questions[r.question].CorrectIndex {
		value += st.okText.Render("  ✓")
	}
	return marker + label + value
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	switch m.statusKind {
	case statusError:
		return m.styles.errText.Render(m.status)
	case statusOK:
		return m.styles.okText.Render(m.status)
	default:
		return m.styles.info.Render(m.status)
	}
}

// visibleWindow returns at most height lines that include the focused line.
func visibleWindow(lines []string, focusLine, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := focusLine - height/2
	start = max(0, min(start, len(lines)-height))
	return lines[start : start+height]
}

func loadCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: sess.Load(ctx)}
	}
}

func saveCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		outcome, err := sess.Save(ctx)
		return savedMsg{outcome: outcome, err: err}
	}
}

// failureMessage picks the user facing text of an error.
func failureMessage(err error) string {
	var failure *session.Failure
	if errors.As(err, &failure) {
		return failure.Message
	}
	if errors.Is(err, session.ErrSaveInProgress) {
		return session.MsgSaveInFlight
	}
	return err.Error()
}
