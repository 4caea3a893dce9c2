package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a comment creation request. Emptiness after
// trimming is checked in the service, not here.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListComments godoc
// @Summary List a task's comments in chronological order
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {array} view.Comment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/comments [get]
func (h *CommentHandler) ListComments(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.commentService.List(c.Request().Context(), userID, taskID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// CreateComment godoc
// @Summary Add a comment to a task
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} view.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	comment, err := h.commentService.Create(c.Request().Context(), userID, taskID, req.Content)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary Delete a comment (author or task owner only)
// @Tags comments
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param cid path int true "Comment ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/comments/{cid} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "cid")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Request().Context(), userID, taskID, commentID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
