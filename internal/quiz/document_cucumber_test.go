//go:build cucumber

package quiz

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

// TestDocumentScenarios runs the quiz document feature scenarios.
func TestDocumentScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "quiz-document", "editing.feature")
	suite := godog.TestSuite{
		Name:                "quiz-document",
		ScenarioInitializer: InitializeDocumentScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeDocumentScenario wires steps for document scenarios.
func InitializeDocumentScenario(ctx *godog.ScenarioContext) {
	state := &documentScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty quiz$`, state.givenEmptyQuiz)
	ctx.Step(`^a quiz with questions "([^"]*)"$`, state.givenQuizWithQuestions)
	ctx.Step(`^the quiz has a title and date but no description$`, state.givenMissingDescription)
	ctx.Step(`^I add (\d+) questions$`, state.whenAddQuestions)
	ctx.Step(`^I remove question (\d+)$`, state.whenRemoveQuestion)
	ctx.Step(`^I choose option (\d+) as correct for question (\d+)$`, state.whenChooseOption)
	ctx.Step(`^I validate the quiz$`, state.whenValidate)
	ctx.Step(`^the quiz has (\d+) questions$`, state.thenQuestionCount)
	ctx.Step(`^the question labels are "([^"]*)"$`, state.thenLabels)
	ctx.Step(`^question "([^"]*)" reads "([^"]*)"$`, state.thenQuestionReads)
	ctx.Step(`^question (\d+) is labeled "([^"]*)"$`, state.thenQuestionLabeled)
	ctx.Step(`^the edit is rejected as an invalid selection$`, state.thenInvalidSelection)
	ctx.Step(`^question (\d+) still has option (\d+) marked correct$`, state.thenCorrectOption)
	ctx.Step(`^validation fails with "([^"]*)"$`, state.thenValidationFails)
}

type documentScenarioState struct {
	doc Document
	err error
}

// reset clears scenario state.
func (s *documentScenarioState) reset() {
	s.doc = NewDocument()
	s.err = nil
}

func (s *documentScenarioState) givenEmptyQuiz() error {
	s.doc = NewDocument()
	return nil
}

// givenQuizWithQuestions seeds a complete quiz whose questions carry the given texts.
func (s *documentScenarioState) givenQuizWithQuestions(list string) error {
	s.doc = NewDocument()
	s.doc.Metadata = Metadata{Title: "t", Date: "2026-10-14", Description: "d", SeedExtension: DefaultSeedExtension, Version: DefaultVersion}
	for i, text := range strings.Split(list, ",") {
		s.doc = AddQuestion(s.doc)
		var err error
		if s.doc, err = UpdateQuestionText(s.doc, i, text); err != nil {
			return err
		}
		for o := 0; o < OptionCount; o++ {
			if s.doc, err = UpdateOption(s.doc, i, o, fmt.Sprintf("option %d", o+1)); err != nil {
				return err
			}
		}
	}
	return nil
}

// givenMissingDescription clears the description and one option.
func (s *documentScenarioState) givenMissingDescription() error {
	var err error
	if s.doc, err = SetMetadataField(s.doc, FieldDescription, ""); err != nil {
		return err
	}
	s.doc, err = UpdateOption(s.doc, 0, 2, "")
	return err
}

func (s *documentScenarioState) whenAddQuestions(count int) error {
	for i := 0; i < count; i++ {
		s.doc = AddQuestion(s.doc)
	}
	return nil
}

func (s *documentScenarioState) whenRemoveQuestion(position int) error {
	var err error
	s.doc, err = RemoveQuestion(s.doc, position-1)
	return err
}

func (s *documentScenarioState) whenChooseOption(option, position int) error {
	s.doc, s.err = SetCorrectIndex(s.doc, position-1, option-1)
	return nil
}

func (s *documentScenarioState) whenValidate() error {
	s.err = Validate(s.doc)
	return nil
}

func (s *documentScenarioState) thenQuestionCount(count int) error {
	if s.doc.Len() != count {
		return fmt.Errorf("expected %d questions, got %d", count, s.doc.Len())
	}
	return nil
}

func (s *documentScenarioState) thenLabels(list string) error {
	names := make([]string, 0, s.doc.Len())
	for i, entry := range Entries(s.doc) {
		if entry.ID != i+1 {
			return fmt.Errorf("question %d has id %d", i+1, entry.ID)
		}
		names = append(names, entry.Name)
	}
	if got := strings.Join(names, ","); got != list {
		return fmt.Errorf("expected labels %s, got %s", list, got)
	}
	return nil
}

func (s *documentScenarioState) thenQuestionReads(name, text string) error {
	for _, entry := range Entries(s.doc) {
		if entry.Name == name {
			if entry.Text != text {
				return fmt.Errorf("question %s reads %q", name, entry.Text)
			}
			return nil
		}
	}
	return fmt.Errorf("no question labeled %s", name)
}

func (s *documentScenarioState) thenQuestionLabeled(position int, name string) error {
	entries := Entries(s.doc)
	if position < 1 || position > len(entries) {
		return fmt.Errorf("no question %d", position)
	}
	if got := entries[position-1].Name; got != name {
		return fmt.Errorf("question %d labeled %q", position, got)
	}
	return nil
}

func (s *documentScenarioState) thenInvalidSelection() error {
	if !errors.Is(s.err, ErrInvalidSelection) {
		return fmt.Errorf("expected invalid selection, got %v", s.err)
	}
	return nil
}

func (s *documentScenarioState) thenCorrectOption(position, option int) error {
	if got := s.doc.Questions[position-1].CorrectIndex; got != option-1 {
		return fmt.Errorf("expected correct index %d, got %d", option-1, got)
	}
	return nil
}

func (s *documentScenarioState) thenValidationFails(reason string) error {
	var validationErr *ValidationError
	if !errors.As(s.err, &validationErr) {
		return fmt.Errorf("expected validation error, got %v", s.err)
	}
	if validationErr.Reason != reason {
		return fmt.Errorf("expected %q, got %q", reason, validationErr.Reason)
	}
	return nil
}
