package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"quizedit/internal/quiz"
	"quizedit/internal/testutil"
	"quizedit/pkg/quizapi"
)

func sampleDoc() quiz.Document {
	doc := quiz.AddQuestion(quiz.NewDocument())
	doc.Metadata.Title = "midterm-1"
	doc.Metadata.Date = "2026-10-14"
	doc.Metadata.Description = "Weeks 1-6"
	doc.Questions[0].Text = "What is 2+2?"
	doc.Questions[0].Options = []string{"3", "4", "5", "6"}
	doc.Questions[0].CorrectIndex = 1
	return doc
}

// TestNewAppliesOptions ensures functional options configure the client.
func TestNewAppliesOptions(t *testing.T) {
	timeout := 1500 * time.Millisecond
	client := New("http://example/", WithTimeout(timeout), WithToken("secret"))
	if client.client.Timeout != timeout {
		t.Fatalf("expected timeout %s, got %s", timeout, client.client.Timeout)
	}
	if client.BaseURL() != "http://example" {
		t.Fatalf("expected trailing slash trimmed, got %q", client.BaseURL())
	}
	if client.token != "secret" {
		t.Fatalf("expected token to be set")
	}
}

// TestFetchDecodesDocument verifies GET /api/quizzes/{name} hydrates a document.
func TestFetchDecodesDocument(t *testing.T) {
	server := testutil.StartQuizServer(t)
	server.Put("midterm-1", sampleDoc())
	client := New(server.URL)

	doc, err := client.Fetch(testutil.Context(t, 0), "midterm-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !reflect.DeepEqual(doc, sampleDoc()) {
		t.Fatalf("unexpected document: %+v", doc)
	}
	requests := server.Requests()
	if len(requests) != 1 || requests[0].Method != http.MethodGet || requests[0].Name != "midterm-1" {
		t.Fatalf("unexpected requests: %+v", requests)
	}
}

// TestFetchEscapesName verifies quiz names are path escaped.
func TestFetchEscapesName(t *testing.T) {
	server := testutil.StartQuizServer(t)
	name := "week 3/quiz?"
	server.Put(name, sampleDoc())
	client := New(server.URL)
	if _, err := client.Fetch(testutil.Context(t, 0), name); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := server.Requests()[0].Name; got != name {
		t.Fatalf("expected server to see %q, got %q", name, got)
	}
}

// TestNamesWithSubDelimitersReachServer verifies reserved characters are encoded.
func TestNamesWithSubDelimitersReachServer(t *testing.T) {
	server := testutil.StartQuizServer(t)
	name := "a+b&c=d:e@f$g,h"
	server.Put(name, sampleDoc())
	client := New(server.URL)
	if _, err := client.Fetch(testutil.Context(t, 0), name); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if err := client.Update(testutil.Context(t, 0), name, sampleDoc()); err != nil {
		t.Fatalf("update: %v", err)
	}
	for _, req := range server.Requests() {
		if req.Name != name {
			t.Fatalf("expected server to see %q, got %q", name, req.Name)
		}
	}
}

func TestQuizPathEncoding(t *testing.T) {
	cases := map[string]string{
		"midterm-1":     "/api/quizzes/midterm-1",
		"a+b":           "/api/quizzes/a%2Bb",
		"week 3/quiz?":  "/api/quizzes/week%203%2Fquiz%3F",
		"x&y=z:@$,":     "/api/quizzes/x%26y%3Dz%3A%40%24%2C",
		"keep-_.!~*'()": "/api/quizzes/keep-_.!~*'()",
		"café":          "/api/quizzes/caf%C3%A9",
	}
	for name, want := range cases {
		if got := quizPath(name); got != want {
			t.Fatalf("quizPath(%q) = %q, want %q", name, got, want)
		}
	}
}

// TestCreateAndUpdateRouting verifies create posts and update puts by name.
func TestCreateAndUpdateRouting(t *testing.T) {
	server := testutil.StartQuizServer(t)
	client := New(server.URL, WithToken("tok"))
	ctx := testutil.Context(t, 0)

	if err := client.Create(ctx, sampleDoc()); err != nil {
		t.Fatalf("create: %v", err)
	}
	updated := sampleDoc()
	updated.Metadata.Description = "Revised"
	if err := client.Update(ctx, "midterm-1", updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	requests := server.Requests()
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	if requests[0].Method != http.MethodPost || requests[0].Name != "" {
		t.Fatalf("expected POST without name, got %+v", requests[0])
	}
	if requests[1].Method != http.MethodPut || requests[1].Name != "midterm-1" {
		t.Fatalf("expected PUT midterm-1, got %+v", requests[1])
	}
	for _, req := range requests {
		if req.Auth != "Bearer tok" {
			t.Fatalf("expected bearer token, got %q", req.Auth)
		}
		if _, err := uuid.Parse(req.RequestID); err != nil {
			t.Fatalf("expected uuid request id, got %q", req.RequestID)
		}
	}
	var sent quiz.Wire
	if err := json.Unmarshal(requests[1].Body, &sent); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if sent.QuizInfo.Description != "Revised" || len(sent.QuizQuestions) != 1 || sent.QuizQuestions[0].Name != "A" {
		t.Fatalf("unexpected body: %+v", sent)
	}
	stored, _ := server.Get("midterm-1")
	if stored.QuizInfo.Description != "Revised" {
		t.Fatalf("expected stored quiz updated, got %+v", stored.QuizInfo)
	}
}

// TestErrorsCarryServerReason verifies JSON error bodies become HTTPError reasons.
func TestErrorsCarryServerReason(t *testing.T) {
	server := testutil.StartQuizServer(t)
	client := New(server.URL)
	ctx := testutil.Context(t, 0)

	if err := client.Create(ctx, sampleDoc()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := client.Create(ctx, sampleDoc())
	var httpErr *quizapi.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusConflict || httpErr.Reason != "Quiz already exists" {
		t.Fatalf("unexpected error: %+v", httpErr)
	}

	server.FailWith(http.StatusBadGateway, "")
	_, err = client.Fetch(ctx, "midterm-1")
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadGateway || httpErr.Reason != "" {
		t.Fatalf("expected bare 502, got %v", err)
	}
}

// TestContextCancellationStopsRequest verifies deadlines abort slow calls.
func TestContextCancellationStopsRequest(t *testing.T) {
	server := testutil.StartQuizServer(t)
	server.Delay(2 * time.Second)
	client := New(server.URL)
	ctx, cancel := context.WithTimeout(testutil.Context(t, 0), 50*time.Millisecond)
	defer cancel()
	err := client.Update(ctx, "midterm-1", sampleDoc())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
