package editor

import (
	"fmt"
	"strconv"

	"quizedit/internal/quiz"
)

// rowKind identifies what a focusable editor row edits.
type rowKind int

const (
	rowMeta rowKind = iota
	rowText
	rowOption
	rowCorrect
	rowLang
)

// row is one focusable line of the form.
type row struct {
	kind     rowKind
	field    quiz.Field
	question int
	option   int
}

var metaFields = []quiz.Field{
	quiz.FieldTitle,
	quiz.FieldDate,
	quiz.FieldDescription,
	quiz.FieldSeedExtension,
	quiz.FieldVersion,
}

// versionChoices are the versions offered by the selector.
var versionChoices = []string{"A", "B"}

// isText reports whether the row is edited through the text input.
func (r row) isText() bool {
	switch r.kind {
	case rowMeta:
		return r.field != quiz.FieldVersion
	case rowText, rowOption:
		return true
	default:
		return false
	}
}

// buildRows lists the focusable rows for a document in display order.
func buildRows(doc quiz.Document) []row {
	rows := make([]row, 0, len(metaFields)+doc.Len()*(quiz.OptionCount+3))
	for _, field := range metaFields {
		rows = append(rows, row{kind: rowMeta, field: field, question: -1})
	}
	for q, question := range doc.Questions {
		rows = append(rows, row{kind: rowText, question: q})
		for o := range question.Options {
			rows = append(rows, row{kind: rowOption, question: q, option: o})
		}
		rows = append(rows, row{kind: rowCorrect, question: q}, row{kind: rowLang, question: q})
	}
	return rows
}

// findRow returns the index of target in rows, or -1.
func findRow(rows []row, target row) int {
	for i, r := range rows {
		if r == target {
			return i
		}
	}
	return -1
}

// rowForField maps a validation field path to the row that fixes it.
func rowForField(rows []row, path string) int {
	for _, field := range metaFields {
		if path == "quizInfo."+string(field) {
			return findRow(rows, row{kind: rowMeta, field: field, question: -1})
		}
	}
	var q, o int
	if n, _ := fmt.Sscanf(path, "quizQuestions[%d].options[%d]", &q, &o); n == 2 {
		return findRow(rows, row{kind: rowOption, question: q, option: o})
	}
	if _, err := fmt.Sscanf(path, "quizQuestions[%d].question", &q); err == nil {
		return findRow(rows, row{kind: rowText, question: q})
	}
	if _, err := fmt.Sscanf(path, "quizQuestions[%d].correctIndex", &q); err == nil {
		return findRow(rows, row{kind: rowCorrect, question: q})
	}
	return -1
}

// rowValue returns the text shown for a row.
func rowValue(doc quiz.Document, r row) string {
	switch r.kind {
	case rowMeta:
		return metaValue(doc.Metadata, r.field)
	case rowText:
		return doc.Questions[r.question].Text
	case rowOption:
		return doc.Questions[r.question].Options[r.option]
	case rowCorrect:
		return strconv.Itoa(doc.Questions[r.question].CorrectIndex + 1)
	case rowLang:
		return doc.Questions[r.question].Lang.Short()
	}
	return ""
}

func metaValue(meta quiz.Metadata, field quiz.Field) string {
	switch field {
	case quiz.FieldTitle:
		return meta.Title
	case quiz.FieldDate:
		return meta.Date
	case quiz.FieldDescription:
		return meta.Description
	case quiz.FieldSeedExtension:
		return meta.SeedExtension
	case quiz.FieldVersion:
		return meta.Version
	}
	return ""
}

// applyText writes the text input value into the document.
func applyText(doc quiz.Document, r row, value string) (quiz.Document, error) {
	switch r.kind {
	case rowMeta:
		return quiz.SetMetadataField(doc, r.field, value)
	case rowText:
		return quiz.UpdateQuestionText(doc, r.question, value)
	case rowOption:
		return quiz.UpdateOption(doc, r.question, r.option, value)
	}
	return doc, nil
}

// cycle moves a selector row by delta choices.
func cycle(doc quiz.Document, r row, delta int) (quiz.Document, error) {
	switch r.kind {
	case rowMeta:
		next := versionChoices[wrap(indexOf(versionChoices, doc.Metadata.Version), delta, len(versionChoices))]
		return quiz.SetMetadataField(doc, quiz.FieldVersion, next)
	case rowCorrect:
		question := doc.Questions[r.question]
		if len(question.Options) == 0 {
			return doc, nil
		}
		return quiz.SetCorrectIndex(doc, r.question, wrap(question.CorrectIndex, delta, len(question.Options)))
	case rowLang:
		current := -1
		if lang, ok := quiz.ParseOptionLang(string(doc.Questions[r.question].Lang)); ok {
			current = indexOf(quiz.OptionLangs, lang)
		}
		return quiz.SetOptionLanguage(doc, r.question, string(quiz.OptionLangs[wrap(current, delta, len(quiz.OptionLangs))]))
	}
	return doc, nil
}

// wrap steps index by delta within [0, n). An unknown index (-1) lands on the
// first choice when stepping forward.
func wrap(index, delta, n int) int {
	if index < 0 {
		if delta > 0 {
			return 0
		}
		return n - 1
	}
	return ((index+delta)%n + n) % n
}

func indexOf[T comparable](values []T, target T) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}
