package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
	"github.com/quizforge/quizforge-backend/internal/validator"
)

// WrongQuestionHandler handles mistake book endpoints.
type WrongQuestionHandler struct {
	wrongService *service.WrongQuestionService
}

// NewWrongQuestionHandler creates a new WrongQuestionHandler.
func NewWrongQuestionHandler(wrongService *service.WrongQuestionService) *WrongQuestionHandler {
	return &WrongQuestionHandler{wrongService: wrongService}
}

// RecordWrongQuestion godoc
// POST /api/v1/wrong-questions
// Records a miss for the current user (study mode reports misses directly).
func (h *WrongQuestionHandler) RecordWrongQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.RecordWrongQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.wrongService.Record(c.Request.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"record": record})
}

// ListWrongQuestions godoc
// GET /api/v1/wrong-questions
// Lists the current user's misses with question details, newest first.
func (h *WrongQuestionHandler) ListWrongQuestions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	records, err := h.wrongService.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if records == nil {
		records = []model.WrongQuestionDetail{}
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// RemoveWrongQuestion godoc
// DELETE /api/v1/wrong-questions/:question_id
// Removes one miss from the current user's mistake book. Removing an
// absent record succeeds (no-op).
func (h *WrongQuestionHandler) RemoveWrongQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.wrongService.Remove(c.Request.Context(), claims.UserID, questionID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
