package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/upgrad/stackoverflow/internal/api/middleware"
	"github.com/upgrad/stackoverflow/internal/core/ports"
)

type AnswerHandler struct {
	answers   ports.AnswerService
	questions ports.QuestionService
}

func NewAnswerHandler(answers ports.AnswerService, questions ports.QuestionService) *AnswerHandler {
	return &AnswerHandler{answers: answers, questions: questions}
}

type answerRequest struct {
	Answer string `json:"answer" validate:"required,max=500"`
}

type answerEditRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

type answerDetailsResponse struct {
	ID              string `json:"id"`
	QuestionContent string `json:"question_content"`
	AnswerContent   string `json:"answer_content"`
}

// Create posts an answer to a question.
//
// @Summary      Answer a question
// @Tags         answer
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string         true  "Access token"
// @Param        questionId     path      string         true  "Question id"
// @Param        body           body      answerRequest  true  "Answer"
// @Success      201            {object}  statusResponse
// @Failure      401            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /question/{questionId}/answer/create [post]
func (h *AnswerHandler) Create(c echo.Context) error {
	var req answerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.answers.CreateAnswer(c.Request().Context(), middleware.Token(c), c.Param("questionId"), req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, statusResponse{ID: a.ID, Status: "ANSWER CREATED"})
}

// Edit replaces the content of an answer. Only its owner may edit it.
//
// @Summary      Edit an answer
// @Tags         answer
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string             true  "Access token"
// @Param        answerId       path      string             true  "Answer id"
// @Param        body           body      answerEditRequest  true  "New content"
// @Success      200            {object}  statusResponse
// @Failure      401            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /answer/edit/{answerId} [put]
func (h *AnswerHandler) Edit(c echo.Context) error {
	var req answerEditRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.answers.EditAnswer(c.Request().Context(), middleware.Token(c), c.Param("answerId"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{ID: a.ID, Status: "ANSWER EDITED"})
}

// Delete removes an answer. Its owner or an admin may delete it.
//
// @Summary      Delete an answer
// @Tags         answer
// @Produce      json
// @Param        Authorization  header    string  true  "Access token"
// @Param        answerId       path      string  true  "Answer id"
// @Success      200            {object}  statusResponse
// @Failure      401            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /answer/delete/{answerId} [delete]
func (h *AnswerHandler) Delete(c echo.Context) error {
	a, err := h.answers.DeleteAnswer(c.Request().Context(), middleware.Token(c), c.Param("answerId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{ID: a.ID, Status: "ANSWER DELETED"})
}

// List returns every answer to a question, oldest first.
//
// @Summary      List answers
// @Tags         answer
// @Produce      json
// @Param        Authorization  header    string  true  "Access token"
// @Param        questionId     path      string  true  "Question id"
// @Success      200            {array}   answerDetailsResponse
// @Failure      401            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /answer/all/{questionId} [get]
func (h *AnswerHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	questionID := c.Param("questionId")

	answers, err := h.answers.ListAnswers(ctx, middleware.Token(c), questionID)
	if err != nil {
		return err
	}
	q, err := h.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}

	out := make([]answerDetailsResponse, 0, len(answers))
	for _, a := range answers {
		out = append(out, answerDetailsResponse{ID: a.ID, QuestionContent: q.Content, AnswerContent: a.Content})
	}
	return c.JSON(http.StatusOK, out)
}
