package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/upgrad/stackoverflow/internal/api/middleware"
	"github.com/upgrad/stackoverflow/internal/core/ports"
)

type QuestionHandler struct {
	questions ports.QuestionService
}

func NewQuestionHandler(questions ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type questionRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

type statusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Create posts a new question owned by the caller.
//
// @Summary      Create a question
// @Tags         question
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string           true  "Access token"
// @Param        body           body      questionRequest  true  "Question"
// @Success      201            {object}  statusResponse
// @Failure      401            {object}  map[string]string
// @Router       /question/create [post]
func (h *QuestionHandler) Create(c echo.Context) error {
	var req questionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	q, err := h.questions.CreateQuestion(c.Request().Context(), middleware.Token(c), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, statusResponse{ID: q.ID, Status: "QUESTION CREATED"})
}
