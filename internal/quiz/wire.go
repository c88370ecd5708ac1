package quiz

import "encoding/json"

// Wire is the persisted shape shared with the quiz server.
type Wire struct {
	QuizInfo      Metadata `json:"quizInfo" yaml:"quizInfo"`
	QuizQuestions []Entry  `json:"quizQuestions" yaml:"quizQuestions"`
}

// ToWire labels every question and returns the persisted shape.
func ToWire(doc Document) Wire {
	return Wire{QuizInfo: doc.Metadata, QuizQuestions: Entries(doc)}
}

// FromWire converts a persisted payload into a document. Stored ids and names are
// discarded; positions decide the labels. Language tags are kept as sent, in either
// spelling, and a missing language defaults to text.
func FromWire(wire Wire) Document {
	doc := Document{Metadata: wire.QuizInfo, Questions: make([]Question, len(wire.QuizQuestions))}
	for i, entry := range Relabel(wire.QuizQuestions) {
		q := entry.Question
		if q.Lang == "" {
			q.Lang = LangText
		}
		doc.Questions[i] = q
	}
	return doc
}

// MarshalJSON encodes the document in its wire shape.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToWire(d))
}

// UnmarshalJSON decodes a wire payload into the document.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire Wire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*d = FromWire(wire)
	return nil
}
