package quiz

import "fmt"

// Reason codes for validation failures, in check order.
const (
	ReasonMissingInfo     = "missing quiz info"
	ReasonMissingQuestion = "missing question text"
	ReasonMissingOption   = "missing option text"
	ReasonBadSelection    = "invalid correct option"
)

var reasonMessages = map[string]string{
	ReasonMissingInfo:     "Please fill in all quiz information fields.",
	ReasonMissingQuestion: "Please fill in all question texts.",
	ReasonMissingOption:   "Please fill in all options for each question.",
	ReasonBadSelection:    "Please choose a correct option for each question.",
}

// ValidationError is the first problem found in a document before save.
type ValidationError struct {
	Reason string
	Field  string
}

// Error returns the user facing message for the failure.
func (err *ValidationError) Error() string {
	if msg, ok := reasonMessages[err.Reason]; ok {
		return msg
	}
	return err.Reason
}

// Validate checks that a document is complete enough to save. The first failing
// check wins: metadata, then question texts, then options.
func Validate(doc Document) error {
	meta := doc.Metadata
	switch {
	case meta.Title == "":
		return &ValidationError{Reason: ReasonMissingInfo, Field: "quizInfo.title"}
	case meta.Date == "":
		return &ValidationError{Reason: ReasonMissingInfo, Field: "quizInfo.date"}
	case meta.Description == "":
		return &ValidationError{Reason: ReasonMissingInfo, Field: "quizInfo.description"}
	}

	for i, q := range doc.Questions {
		if q.Text == "" {
			return &ValidationError{Reason: ReasonMissingQuestion, Field: fmt.Sprintf("quizQuestions[%d].question", i)}
		}
		for j, option := range q.Options {
			if option == "" {
				return &ValidationError{Reason: ReasonMissingOption, Field: fmt.Sprintf("quizQuestions[%d].options[%d]", i, j)}
			}
		}
	}

	// Mutators keep CorrectIndex in range; only hydrated documents can fail here.
	for i, q := range doc.Questions {
		if !inRange(q.CorrectIndex, len(q.Options)) {
			return &ValidationError{Reason: ReasonBadSelection, Field: fmt.Sprintf("quizQuestions[%d].correctIndex", i)}
		}
	}
	return nil
}
