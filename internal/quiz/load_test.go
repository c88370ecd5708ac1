package quiz

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// TestWriteReadFileRoundTrip verifies YAML and JSON files round trip.
func TestWriteReadFileRoundTrip(t *testing.T) {
	doc := completeDoc(t)
	for _, name := range []string{"quiz.yml", "quiz.yaml", "quiz.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteFile(path, doc); err != nil {
				t.Fatalf("write: %v", err)
			}
			loaded, err := ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !reflect.DeepEqual(loaded, doc) {
				t.Fatalf("mismatch:\n got %+v\nwant %+v", loaded, doc)
			}
		})
	}
}

// TestReadFileYAML verifies a hand written YAML document loads.
func TestReadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.yml")
	payload := `quizInfo:
  title: midterm-1
  date: "2026-10-14"
  description: Weeks 1-6
  seedExtension: default_seed
  version: A
quizQuestions:
  - question: What does CSS stand for?
    options: [Cascading Style Sheets, Computer Style Sheets, Creative Style, Colorful Sheets]
    optionLang: css
    correctIndex: 0
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if doc.Metadata.Title != "midterm-1" || doc.Len() != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Questions[0].Lang != "css" {
		t.Fatalf("expected css kept as written, got %q", doc.Questions[0].Lang)
	}
}

// TestReadFileRejectsUnknownFields verifies typos in files are reported.
func TestReadFileRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	payload := `{"quizInfo": {"title": "t", "author": "me"}, "quizQuestions": []}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := ReadFile(path)
	if err == nil || !strings.Contains(err.Error(), "parse json") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

// TestReadFileRejectsMultipleDocuments verifies only one YAML document is allowed.
func TestReadFileRejectsMultipleDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.yml")
	payload := "quizInfo:\n  title: a\n---\nquizInfo:\n  title: b\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatalf("expected error")
	}
}
