package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
)

// QuestionHandler handles question bank endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions godoc
// GET /api/v1/questions?type=single|multiple|boolean
// Lists questions of one type (study mode), or every question when the
// type filter is omitted.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questionType := model.QuestionType(c.Query("type"))

	var (
		questions []model.Question
		err       error
	)
	if questionType == "" {
		questions, err = h.questionService.ListAll(c.Request.Context())
	} else {
		questions, err = h.questionService.ListByType(c.Request.Context(), questionType)
	}
	if err != nil {
		if errors.Is(err, service.ErrUnknownQuestionType) {
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownQuestionType)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// ImportQuestions godoc
// POST /api/v1/admin/questions/import
// Imports questions of one type from an uploaded xlsx workbook
// (multipart fields: file, type).
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	questionType := model.QuestionType(c.PostForm("type"))
	if !model.ValidQuestionType(questionType) {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownQuestionType)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer file.Close()

	count, err := h.questionService.Import(c.Request.Context(), file, questionType)
	if err != nil {
		if errors.Is(err, service.ErrNoValidQuestions) {
			response.Fail(c, http.StatusBadRequest, response.ErrNoValidQuestions)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"imported": count})
}

// DeleteQuestions godoc
// DELETE /api/v1/admin/questions?type=single|multiple|boolean
// Bulk-deletes questions of one type, or every question when the type
// filter is omitted.
func (h *QuestionHandler) DeleteQuestions(c *gin.Context) {
	questionType := model.QuestionType(c.Query("type"))

	deleted, err := h.questionService.DeleteByType(c.Request.Context(), questionType)
	if err != nil {
		if errors.Is(err, service.ErrUnknownQuestionType) {
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownQuestionType)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}
