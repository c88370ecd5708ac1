package quiz

// Defaults applied to a fresh document.
const (
	DefaultSeedExtension = "default_seed"
	DefaultVersion       = "A"
	// OptionCount is the number of options every new question starts with.
	OptionCount = 4
)

// OptionLang is a rendering hint for option text. It carries no execution semantics.
type OptionLang string

// Recognized option languages, in the order the editor cycles through them.
const (
	LangJS   OptionLang = "language-js"
	LangHTML OptionLang = "language-html"
	LangCSS  OptionLang = "language-css"
	LangText OptionLang = "language-text"
)

// OptionLangs lists the recognized option languages.
var OptionLangs = []OptionLang{LangJS, LangHTML, LangCSS, LangText}

// Metadata describes the quiz as a whole.
type Metadata struct {
	Title         string `json:"title" yaml:"title"`
	Date          string `json:"date" yaml:"date"`
	Description   string `json:"description" yaml:"description"`
	SeedExtension string `json:"seedExtension" yaml:"seedExtension"`
	Version       string `json:"version" yaml:"version"`
}

// Question is a single multiple choice question. Its id and display letter are not
// stored; they are derived from its position in a Document.
type Question struct {
	Text         string     `json:"question" yaml:"question"`
	Options      []string   `json:"options" yaml:"options"`
	Lang         OptionLang `json:"optionLang" yaml:"optionLang"`
	CorrectIndex int        `json:"correctIndex" yaml:"correctIndex"`
}

// Document is the in-memory quiz being edited. Mutators never alias the slices of
// the document they were given.
type Document struct {
	Metadata  Metadata
	Questions []Question
}

// NewDocument returns an empty document with default metadata.
func NewDocument() Document {
	return Document{
		Metadata: Metadata{
			SeedExtension: DefaultSeedExtension,
			Version:       DefaultVersion,
		},
		Questions: []Question{},
	}
}

// Len returns the number of questions.
func (d Document) Len() int {
	return len(d.Questions)
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	return Document{Metadata: d.Metadata, Questions: cloneQuestions(d.Questions)}
}

func cloneQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.clone()
	}
	return out
}

func (q Question) clone() Question {
	if q.Options != nil {
		q.Options = append([]string(nil), q.Options...)
	}
	return q
}
