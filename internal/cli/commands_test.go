package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizedit/internal/config"
	"quizedit/internal/quiz"
	"quizedit/internal/session"
	"quizedit/internal/testutil"
	"quizedit/internal/ui/editor"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvTimeout, "")
	t.Setenv(config.DefaultTokenEnv, "")
}

// writeConfig writes a config pointing at baseURL and returns its path.
func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := config.ConfigPath(t.TempDir())
	if err := config.Scaffold(path, baseURL); err != nil {
		t.Fatalf("scaffold config: %v", err)
	}
	return path
}

func validQuiz() quiz.Document {
	doc := quiz.AddQuestion(quiz.NewDocument())
	doc.Metadata.Title = "midterm"
	doc.Metadata.Date = "2026-10-14"
	doc.Metadata.Description = "Weeks 1-6"
	doc.Questions[0].Text = "2+2?"
	doc.Questions[0].Options = []string{"3", "4", "5", "6"}
	doc.Questions[0].CorrectIndex = 1
	return doc
}

func writeQuiz(t *testing.T, name string, doc quiz.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := quiz.WriteFile(path, doc); err != nil {
		t.Fatalf("write quiz: %v", err)
	}
	return path
}

// TestInitCommandCreatesConfig verifies init scaffolds a loadable config.
func TestInitCommandCreatesConfig(t *testing.T) {
	clearEnv(t)
	original := initInput
	t.Cleanup(func() { initInput = original })
	initInput = strings.NewReader("y\nhttps://quiz.example.com\n")

	path := filepath.Join(t.TempDir(), ".quizedit", "config.yml")
	var out, err bytes.Buffer
	code := Run([]string{"init", "--config", path}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "Wrote "+path) {
		t.Fatalf("expected write message, got %q", out.String())
	}
	cfg, loadErr := config.Load(path)
	if loadErr != nil {
		t.Fatalf("load config: %v", loadErr)
	}
	if cfg.API.BaseURL != "https://quiz.example.com" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
}

// TestInitCommandRefusesOverwrite verifies an existing config is left alone.
func TestInitCommandRefusesOverwrite(t *testing.T) {
	path := writeConfig(t, "http://localhost:3000")
	var out, err bytes.Buffer
	code := Run([]string{"init", "--config", path}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "already exists") {
		t.Fatalf("expected overwrite error, got %q", err.String())
	}
}

// TestInitCommandCancelled verifies answering no writes nothing.
func TestInitCommandCancelled(t *testing.T) {
	original := initInput
	t.Cleanup(func() { initInput = original })
	initInput = strings.NewReader("n\n")

	path := filepath.Join(t.TempDir(), "config.yml")
	var out, err bytes.Buffer
	if code := Run([]string{"init", "--config", path}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no config written, stat err %v", statErr)
	}
}

// TestValidateCommand verifies validate reports the first problem with its field.
func TestValidateCommand(t *testing.T) {
	good := writeQuiz(t, "good.yml", validQuiz())
	var out, err bytes.Buffer
	if code := Run([]string{"validate", good}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "Quiz OK (1 questions)") {
		t.Fatalf("unexpected output %q", out.String())
	}

	broken := validQuiz()
	broken.Questions[0].Options[2] = ""
	bad := writeQuiz(t, "bad.json", broken)
	out.Reset()
	err.Reset()
	if code := Run([]string{"validate", bad}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	want := "quizQuestions[0].options[2]: Please fill in all options for each question."
	if !strings.Contains(err.String(), want) {
		t.Fatalf("expected %q in stderr, got %q", want, err.String())
	}
}

// TestValidateCommandMissingFile verifies unreadable files fail cleanly.
func TestValidateCommandMissingFile(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"validate", filepath.Join(t.TempDir(), "missing.yml")}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "Validation failed") {
		t.Fatalf("unexpected stderr %q", err.String())
	}
}

// TestPushCreatesThenUpdates verifies push routes by --name.
func TestPushCreatesThenUpdates(t *testing.T) {
	clearEnv(t)
	server := testutil.StartQuizServer(t)
	cfgPath := writeConfig(t, server.URL)
	file := writeQuiz(t, "midterm.yml", validQuiz())

	var out, err bytes.Buffer
	if code := Run([]string{"push", file, "--config", cfgPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), session.MsgCreated) {
		t.Fatalf("expected create message, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Quizzes: "+server.URL+"/quizzes") {
		t.Fatalf("expected listing url, got %q", out.String())
	}

	out.Reset()
	if code := Run([]string{"push", file, "--name", "midterm", "--config", cfgPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), session.MsgUpdated) {
		t.Fatalf("expected update message, got %q", out.String())
	}
	methods := []string{}
	for _, req := range server.Requests() {
		methods = append(methods, req.Method)
	}
	if strings.Join(methods, ",") != "POST,PUT" {
		t.Fatalf("unexpected requests %v", methods)
	}
}

// TestPushRejected verifies server reasons reach the user.
func TestPushRejected(t *testing.T) {
	clearEnv(t)
	server := testutil.StartQuizServer(t)
	server.Put("midterm", validQuiz())
	cfgPath := writeConfig(t, server.URL)
	file := writeQuiz(t, "midterm.yml", validQuiz())

	var out, err bytes.Buffer
	if code := Run([]string{"push", file, "--config", cfgPath}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "Failed to save quiz: Quiz already exists") {
		t.Fatalf("unexpected stderr %q", err.String())
	}
}

// TestPushInvalidSkipsNetwork verifies validation runs before any request.
func TestPushInvalidSkipsNetwork(t *testing.T) {
	clearEnv(t)
	server := testutil.StartQuizServer(t)
	cfgPath := writeConfig(t, server.URL)
	doc := validQuiz()
	doc.Metadata.Title = ""
	file := writeQuiz(t, "untitled.yml", doc)

	var out, err bytes.Buffer
	if code := Run([]string{"push", file, "--config", cfgPath}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "Please fill in all quiz information fields.") {
		t.Fatalf("unexpected stderr %q", err.String())
	}
	if len(server.Requests()) != 0 {
		t.Fatalf("expected no requests, got %d", len(server.Requests()))
	}
}

// TestPullWritesFile verifies pull stores the fetched quiz locally.
func TestPullWritesFile(t *testing.T) {
	clearEnv(t)
	server := testutil.StartQuizServer(t)
	server.Put("midterm", validQuiz())
	cfgPath := writeConfig(t, server.URL)
	target := filepath.Join(t.TempDir(), "pulled.json")

	var out, err bytes.Buffer
	if code := Run([]string{"pull", "midterm", "--out", target, "--config", cfgPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	doc, readErr := quiz.ReadFile(target)
	if readErr != nil {
		t.Fatalf("read pulled file: %v", readErr)
	}
	if doc.Metadata.Title != "midterm" || doc.Len() != 1 || doc.Questions[0].CorrectIndex != 1 {
		t.Fatalf("unexpected pulled document %+v", doc)
	}
}

// TestPullMissingQuiz verifies a 404 is reported as a failure.
func TestPullMissingQuiz(t *testing.T) {
	clearEnv(t)
	server := testutil.StartQuizServer(t)
	cfgPath := writeConfig(t, server.URL)

	var out, err bytes.Buffer
	code := Run([]string{"pull", "nope", "--out", filepath.Join(t.TempDir(), "x.yml"), "--config", cfgPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), fmt.Sprintf("http %d", http.StatusNotFound)) {
		t.Fatalf("unexpected stderr %q", err.String())
	}
}

// TestEditRequiresTerminal verifies the editor refuses redirected streams.
func TestEditRequiresTerminal(t *testing.T) {
	original := isTerminal
	t.Cleanup(func() { isTerminal = original })
	isTerminal = func(any) bool { return false }

	var out, err bytes.Buffer
	if code := Run([]string{"edit"}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "interactive terminal") {
		t.Fatalf("unexpected stderr %q", err.String())
	}
}

// TestEditRunsEditor verifies edit wires the session and prints the outcome.
func TestEditRunsEditor(t *testing.T) {
	clearEnv(t)
	server := testutil.StartQuizServer(t)
	cfgPath := writeConfig(t, server.URL)
	seed := writeQuiz(t, "seed.yml", validQuiz())

	originalTTY, originalRun := isTerminal, runEditor
	t.Cleanup(func() {
		isTerminal = originalTTY
		runEditor = originalRun
	})
	isTerminal = func(any) bool { return true }
	var seen quiz.Document
	runEditor = func(ctx context.Context, sess *session.Session, opts editor.Options) (editor.Result, error) {
		seen = sess.Document()
		if !opts.NoColor {
			t.Errorf("expected --no-color to reach the editor")
		}
		outcome, err := sess.Save(ctx)
		if err != nil {
			return editor.Result{}, err
		}
		return editor.Result{Saved: true, Outcome: outcome}, nil
	}

	var out, err bytes.Buffer
	code := Run([]string{"edit", "--from", seed, "--no-color", "--config", cfgPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if seen.Metadata.Title != "midterm" {
		t.Fatalf("expected seeded document, got %+v", seen.Metadata)
	}
	if !strings.Contains(out.String(), session.MsgCreated) || !strings.Contains(out.String(), server.URL+"/quizzes") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

// TestEditQuitWithoutSaving verifies quitting reports that nothing was saved.
func TestEditQuitWithoutSaving(t *testing.T) {
	clearEnv(t)
	cfgPath := writeConfig(t, "http://localhost:3000")
	originalTTY, originalRun := isTerminal, runEditor
	t.Cleanup(func() {
		isTerminal = originalTTY
		runEditor = originalRun
	})
	isTerminal = func(any) bool { return true }
	var key string
	runEditor = func(_ context.Context, sess *session.Session, _ editor.Options) (editor.Result, error) {
		key = sess.Mode().Key()
		return editor.Result{}, nil
	}

	var out, err bytes.Buffer
	if code := Run([]string{"edit", "midterm", "--config", cfgPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, err.String())
	}
	if key != "midterm" {
		t.Fatalf("expected editing midterm, got %q", key)
	}
	if !strings.Contains(out.String(), "No changes saved.") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
