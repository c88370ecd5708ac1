package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizedit/internal/quiz"
)

type styles struct {
	title    lipgloss.Style
	section  lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	muted    lipgloss.Style
	selector lipgloss.Style
	info     lipgloss.Style
	errText  lipgloss.Style
	okText   lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain, section: plain, label: plain, focused: plain, muted: plain,
			selector: plain, info: plain, errText: plain, okText: plain,
		}
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		section:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		selector: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		info:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		okText:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

var metaLabels = map[quiz.Field]string{
	quiz.FieldTitle:         "Title",
	quiz.FieldDate:          "Date",
	quiz.FieldDescription:   "Description",
	quiz.FieldSeedExtension: "Seed extension",
	quiz.FieldVersion:       "Version",
}

var metaPlaceholders = map[quiz.Field]string{
	quiz.FieldTitle:         "Quiz Title",
	quiz.FieldDate:          "YYYY-MM-DD",
	quiz.FieldDescription:   "Quiz Description",
	quiz.FieldSeedExtension: "Seed Extension",
}

// rowLabel returns the left column label of a row.
func rowLabel(r row) string {
	switch r.kind {
	case rowMeta:
		return metaLabels[r.field]
	case rowText:
		return "Question"
	case rowOption:
		return "  " + strconv.Itoa(r.option+1) + "."
	case rowCorrect:
		return "Correct option"
	case rowLang:
		return "Option language"
	}
	return ""
}

// rowPlaceholder returns the hint shown for an empty text row.
func rowPlaceholder(r row) string {
	switch r.kind {
	case rowMeta:
		return metaPlaceholders[r.field]
	case rowText:
		return "Enter question text"
	case rowOption:
		return "Option " + strconv.Itoa(r.option+1)
	}
	return ""
}

// renderSelector renders a cycling choice.
func renderSelector(value string, st styles) string {
	return st.selector.Render("‹ " + value + " ›")
}

// padLabel left-aligns labels to a common width.
func padLabel(label string) string {
	const width = 16
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label))
}
