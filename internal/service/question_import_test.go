package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows (header first) into an in-memory xlsx file.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestParseQuestionWorkbookSingle(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Question", "Option A", "Option B", "Option C", "Option D", "Answer"},
		{"Capital of France?", "London", "Paris", "Berlin", "Madrid", "B"},
		{"Largest planet?", "Mars", "Venus", "Jupiter", "Saturn", "c"},
	})

	questions, err := ParseQuestionWorkbook(r, model.QuestionTypeSingle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}

	first := questions[0]
	if first.Prompt != "Capital of France?" {
		t.Errorf("got prompt %q", first.Prompt)
	}
	if first.CorrectAnswer != "B" {
		t.Errorf("got answer %q, want B", first.CorrectAnswer)
	}
	if len(first.Options) != 4 || first.Options[1] != "Paris" {
		t.Errorf("got options %v", first.Options)
	}
	if questions[1].CorrectAnswer != "C" {
		t.Errorf("lowercase answer not uppercased: got %q", questions[1].CorrectAnswer)
	}
}

func TestParseQuestionWorkbookMultipleCanonicalizesAnswer(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Question", "Option A", "Option B", "Option C", "Option D", "Answer"},
		{"Prime numbers?", "2", "4", "5", "6", "c, a"},
	})

	questions, err := ParseQuestionWorkbook(r, model.QuestionTypeMultiple)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	if questions[0].CorrectAnswer != "AC" {
		t.Errorf("got answer %q, want canonical AC", questions[0].CorrectAnswer)
	}
}

func TestParseQuestionWorkbookSkipsInvalidRows(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Question", "Option A", "Option B", "Answer"},
		{"Valid row", "yes", "no", "A"},
		{"", "yes", "no", "A"},           // missing prompt
		{"Missing answer", "yes", "no", ""},
		{"Answer out of range", "yes", "no", "C"},
		{"Multi-letter single answer", "yes", "no", "AB"},
	})

	questions, err := ParseQuestionWorkbook(r, model.QuestionTypeBoolean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want only the valid row", len(questions))
	}
	if questions[0].Prompt != "Valid row" {
		t.Errorf("wrong row kept: %q", questions[0].Prompt)
	}
}

func TestParseQuestionWorkbookMultipleNeedsTwoOptions(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Question", "Option A", "Option B", "Answer"},
		{"Only one option filled", "yes", "", "A"},
	})

	_, err := ParseQuestionWorkbook(r, model.QuestionTypeMultiple)
	if !errors.Is(err, ErrNoValidQuestions) {
		t.Fatalf("got %v, want ErrNoValidQuestions", err)
	}
}

func TestParseQuestionWorkbookHeaderOnly(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Question", "Option A", "Option B", "Answer"},
	})

	_, err := ParseQuestionWorkbook(r, model.QuestionTypeSingle)
	if !errors.Is(err, ErrNoValidQuestions) {
		t.Fatalf("got %v, want ErrNoValidQuestions", err)
	}
}

func TestParseQuestionWorkbookMissingColumns(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Prompt", "Option A", "Option B"},
		{"No recognised headers", "yes", "no"},
	})

	_, err := ParseQuestionWorkbook(r, model.QuestionTypeSingle)
	if err == nil {
		t.Fatal("want error for missing Question/Answer columns")
	}
}

func TestParseQuestionWorkbookNotAnXLSX(t *testing.T) {
	_, err := ParseQuestionWorkbook(bytes.NewReader([]byte("not a workbook")), model.QuestionTypeSingle)
	if err == nil {
		t.Fatal("want error for malformed workbook data")
	}
}
