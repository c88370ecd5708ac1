package quiz

// Label is the position-derived identity of a question.
type Label struct {
	ID   int
	Name string
}

// Entry is a question together with the label of its current position.
type Entry struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"questionName" yaml:"questionName"`
	Question `yaml:",inline"`
}

// LabelFor returns the label of the question at a zero-based position.
func LabelFor(position int) Label {
	return Label{ID: position + 1, Name: Letters(position)}
}

// Letters returns the display letters for a zero-based position. Positions past Z
// continue as AA, AB, ... ZZ, AAA.
func Letters(position int) string {
	if position < 0 {
		return ""
	}
	var buf []byte
	for n := position + 1; n > 0; n = (n - 1) / 26 {
		buf = append(buf, byte('A'+(n-1)%26))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// NewQuestion returns a blank question with four empty options.
func NewQuestion() Question {
	return Question{
		Options:      make([]string, OptionCount),
		Lang:         LangText,
		CorrectIndex: 0,
	}
}

// CreateQuestion returns a blank question labeled for the given position.
func CreateQuestion(position int) Entry {
	label := LabelFor(position)
	return Entry{ID: label.ID, Name: label.Name, Question: NewQuestion()}
}

// Relabel returns a copy of entries with every id and name matching its position.
func Relabel(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, entry := range entries {
		label := LabelFor(i)
		out[i] = Entry{ID: label.ID, Name: label.Name, Question: entry.Question.clone()}
	}
	return out
}

// Entries returns the labeled view of a document's questions.
func Entries(doc Document) []Entry {
	out := make([]Entry, len(doc.Questions))
	for i, q := range doc.Questions {
		label := LabelFor(i)
		out[i] = Entry{ID: label.ID, Name: label.Name, Question: q.clone()}
	}
	return out
}
