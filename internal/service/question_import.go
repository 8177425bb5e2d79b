package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// ErrNoValidQuestions is returned when a workbook contains no importable rows.
var ErrNoValidQuestions = errors.New("no valid questions to import")

// Expected column headers in the first row of the first sheet. Option
// columns beyond the first are optional; empty option cells are skipped.
const (
	headerQuestion = "question"
	headerAnswer   = "answer"
	headerOption   = "option" // "Option A" .. "Option H"
)

// ParseQuestionWorkbook reads an xlsx workbook and maps its rows to
// questions of the given type. The first sheet is used; the first row must
// be a header row. Rows missing a prompt or answer, with no options, or
// whose answer letters do not reference an existing option are skipped.
// Multiple-choice answers are stored in canonical form.
func ParseQuestionWorkbook(r io.Reader, questionType model.QuestionType) ([]model.Question, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoValidQuestions
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrNoValidQuestions
	}

	promptCol, answerCol, optionCols := mapColumns(rows[0])
	if promptCol < 0 || answerCol < 0 {
		return nil, fmt.Errorf("workbook is missing a %q or %q column", "Question", "Answer")
	}

	var questions []model.Question
	for _, row := range rows[1:] {
		q, ok := rowToQuestion(row, questionType, promptCol, answerCol, optionCols)
		if !ok {
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, ErrNoValidQuestions
	}
	return questions, nil
}

// mapColumns locates the prompt, answer and option columns in the header
// row. Option columns are returned in letter order (A first).
func mapColumns(header []string) (promptCol, answerCol int, optionCols []int) {
	promptCol, answerCol = -1, -1
	optionCols = make([]int, model.MaxOptions)
	for i := range optionCols {
		optionCols[i] = -1
	}

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case name == headerQuestion:
			promptCol = i
		case name == headerAnswer:
			answerCol = i
		case strings.HasPrefix(name, headerOption):
			letter := strings.TrimSpace(strings.TrimPrefix(name, headerOption))
			if len(letter) == 1 && letter[0] >= 'a' && letter[0] < 'a'+model.MaxOptions {
				optionCols[letter[0]-'a'] = i
			}
		}
	}
	return promptCol, answerCol, optionCols
}

func rowToQuestion(row []string, questionType model.QuestionType, promptCol, answerCol int, optionCols []int) (model.Question, bool) {
	prompt := strings.TrimSpace(cellAt(row, promptCol))
	answer := strings.TrimSpace(cellAt(row, answerCol))
	if prompt == "" || answer == "" {
		return model.Question{}, false
	}

	var options []string
	for _, col := range optionCols {
		if col < 0 {
			continue
		}
		if opt := strings.TrimSpace(cellAt(row, col)); opt != "" {
			options = append(options, opt)
		}
	}

	switch questionType {
	case model.QuestionTypeMultiple:
		if len(options) < 2 {
			return model.Question{}, false
		}
		answer = NormalizeAnswer(answer)
	default:
		if len(options) < 1 {
			return model.Question{}, false
		}
		answer = strings.ToUpper(answer)
		if len(answer) != 1 {
			return model.Question{}, false
		}
	}

	if !answerReferencesOptions(answer, len(options)) {
		return model.Question{}, false
	}

	return model.Question{
		Type:          questionType,
		Prompt:        prompt,
		Options:       options,
		CorrectAnswer: answer,
	}, true
}

// answerReferencesOptions checks every answer letter addresses an existing
// option (A addresses the first option, and so on).
func answerReferencesOptions(answer string, optionCount int) bool {
	if answer == "" {
		return false
	}
	for _, r := range answer {
		if r < 'A' || r >= rune('A'+optionCount) {
			return false
		}
	}
	return true
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
