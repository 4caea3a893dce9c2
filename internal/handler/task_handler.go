package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard/internal/service"
)

const dateLayout = "2006-01-02"

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// OptionalUserID is a user reference field that distinguishes an omitted
// field from an explicit null clearing the reference.
type OptionalUserID struct {
	Present bool
	ID      *uint
}

// UnmarshalJSON marks the field present and accepts either a user id or null.
func (o *OptionalUserID) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.ID = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.ID = &id
	return nil
}

// CreateTaskRequest represents a task creation request. The board is required
// here and immutable afterwards.
type CreateTaskRequest struct {
	Board       uint   `json:"board" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Status      string `json:"status" validate:"required,max=20"`
	Priority    string `json:"priority" validate:"required,max=20"`
	AssigneeID  *uint  `json:"assignee_id"`
	ReviewerID  *uint  `json:"reviewer_id"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// UpdateTaskRequest represents a partial task update. The board field is not
// accepted; a task never moves between boards.
type UpdateTaskRequest struct {
	Title       *string        `json:"title" validate:"omitempty,max=200"`
	Description *string        `json:"description" validate:"omitempty,max=1000"`
	Status      *string        `json:"status" validate:"omitempty,max=20"`
	Priority    *string        `json:"priority" validate:"omitempty,max=20"`
	AssigneeID  OptionalUserID `json:"assignee_id"`
	ReviewerID  OptionalUserID `json:"reviewer_id"`
	DueDate     *string        `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// ListTasks godoc
// @Summary List tasks the caller owns, is assigned to, or reviews
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} view.TaskDetail
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tasks, err := h.taskService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListAssignedToMe godoc
// @Summary List tasks assigned to the caller, soonest due first
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} view.TaskDetail
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/assigned-to-me [get]
func (h *TaskHandler) ListAssignedToMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tasks, err := h.taskService.ListAssignedTo(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListReviewing godoc
// @Summary List tasks the caller reviews, soonest due first
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} view.TaskDetail
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/reviewing [get]
func (h *TaskHandler) ListReviewing(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	tasks, err := h.taskService.ListReviewing(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary Create a task on a board
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} view.TaskDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid due_date")
	}

	task, err := h.taskService.Create(c.Request().Context(), userID, service.CreateTaskInput{
		Board:       req.Board,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		ReviewerID:  req.ReviewerID,
		DueDate:     dueDate,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} view.TaskDetail
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), userID, taskID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Partially update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} view.TaskDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeSet: req.AssigneeID.Present,
		AssigneeID:  req.AssigneeID.ID,
		ReviewerSet: req.ReviewerID.Present,
		ReviewerID:  req.ReviewerID.ID,
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid due_date")
		}
		in.DueDate = &dueDate
	}

	task, err := h.taskService.Update(c.Request().Context(), userID, taskID, in)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task and its comments
// @Tags tasks
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), userID, taskID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
