package quiz

import (
	"strconv"
	"strings"
	"time"
)

// Field names a metadata field.
type Field string

// Metadata fields in their wire spelling.
const (
	FieldTitle         Field = "title"
	FieldDate          Field = "date"
	FieldDescription   Field = "description"
	FieldSeedExtension Field = "seedExtension"
	FieldVersion       Field = "version"
)

// DateLayout is the calendar date format of Metadata.Date.
const DateLayout = "2006-01-02"

// SetMetadataField updates a single metadata field.
func SetMetadataField(doc Document, field Field, value string) (Document, error) {
	meta := doc.Metadata
	switch field {
	case FieldTitle:
		meta.Title = value
	case FieldDate:
		if value != "" {
			if _, err := time.Parse(DateLayout, value); err != nil {
				return doc, mutationErr("set date", -1, value, ErrInvalidDate)
			}
		}
		meta.Date = value
	case FieldDescription:
		meta.Description = value
	case FieldSeedExtension:
		meta.SeedExtension = value
	case FieldVersion:
		if !IsVersion(value) {
			return doc, mutationErr("set version", -1, value, ErrInvalidEnum)
		}
		meta.Version = value
	default:
		return doc, mutationErr("set metadata", -1, string(field), ErrUnknownField)
	}
	out := doc.Clone()
	out.Metadata = meta
	return out, nil
}

// IsVersion reports whether value is a single uppercase letter.
func IsVersion(value string) bool {
	return len(value) == 1 && value[0] >= 'A' && value[0] <= 'Z'
}

// AddQuestion appends a blank question.
func AddQuestion(doc Document) Document {
	out := doc.Clone()
	out.Questions = append(out.Questions, NewQuestion())
	return out
}

// UpdateQuestionText replaces the text of the question at index.
func UpdateQuestionText(doc Document, index int, text string) (Document, error) {
	if !inRange(index, len(doc.Questions)) {
		return doc, mutationErr("update question text", index, "", ErrIndexOutOfRange)
	}
	out := doc.Clone()
	out.Questions[index].Text = text
	return out, nil
}

// UpdateOption replaces one option of the question at qIndex.
func UpdateOption(doc Document, qIndex, oIndex int, text string) (Document, error) {
	if !inRange(qIndex, len(doc.Questions)) {
		return doc, mutationErr("update option", qIndex, "", ErrIndexOutOfRange)
	}
	if !inRange(oIndex, len(doc.Questions[qIndex].Options)) {
		return doc, mutationErr("update option", qIndex, strconv.Itoa(oIndex), ErrIndexOutOfRange)
	}
	out := doc.Clone()
	out.Questions[qIndex].Options[oIndex] = text
	return out, nil
}

// SetCorrectIndex marks the option at value as the correct answer.
func SetCorrectIndex(doc Document, qIndex, value int) (Document, error) {
	if !inRange(qIndex, len(doc.Questions)) {
		return doc, mutationErr("set correct index", qIndex, "", ErrIndexOutOfRange)
	}
	if !inRange(value, len(doc.Questions[qIndex].Options)) {
		return doc, mutationErr("set correct index", qIndex, strconv.Itoa(value), ErrInvalidSelection)
	}
	out := doc.Clone()
	out.Questions[qIndex].CorrectIndex = value
	return out, nil
}

// ParseCorrectIndex parses raw as a base-10 option index and applies it.
func ParseCorrectIndex(doc Document, qIndex int, raw string) (Document, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return doc, mutationErr("set correct index", qIndex, raw, ErrInvalidSelection)
	}
	return SetCorrectIndex(doc, qIndex, value)
}

// SetOptionLanguage sets the option language of the question at qIndex.
func SetOptionLanguage(doc Document, qIndex int, lang string) (Document, error) {
	if !inRange(qIndex, len(doc.Questions)) {
		return doc, mutationErr("set option language", qIndex, "", ErrIndexOutOfRange)
	}
	parsed, ok := ParseOptionLang(lang)
	if !ok {
		return doc, mutationErr("set option language", qIndex, lang, ErrInvalidEnum)
	}
	out := doc.Clone()
	out.Questions[qIndex].Lang = parsed
	return out, nil
}

// RemoveQuestion deletes the question at index. Later questions move up one
// position and take the labels of their new positions.
func RemoveQuestion(doc Document, index int) (Document, error) {
	if !inRange(index, len(doc.Questions)) {
		return doc, mutationErr("remove question", index, "", ErrIndexOutOfRange)
	}
	out := Document{Metadata: doc.Metadata, Questions: make([]Question, 0, len(doc.Questions)-1)}
	for i, q := range doc.Questions {
		if i == index {
			continue
		}
		out.Questions = append(out.Questions, q.clone())
	}
	return out, nil
}

// ParseOptionLang accepts either the wire tag ("language-js") or its short form ("js").
func ParseOptionLang(value string) (OptionLang, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if !strings.HasPrefix(normalized, "language-") {
		normalized = "language-" + normalized
	}
	for _, lang := range OptionLangs {
		if string(lang) == normalized {
			return lang, true
		}
	}
	return "", false
}

// Short returns the tag without its "language-" prefix.
func (lang OptionLang) Short() string {
	return strings.TrimPrefix(string(lang), "language-")
}

func inRange(index, length int) bool {
	return index >= 0 && index < length
}
