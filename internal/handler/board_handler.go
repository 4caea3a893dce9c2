package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/service"
)

// BoardHandler handles board endpoints.
type BoardHandler struct {
	boardService service.BoardService
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// CreateBoardRequest represents a board creation request.
type CreateBoardRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Members []uint `json:"members"`
}

// UpdateBoardRequest represents a partial board update. A present member_ids
// field replaces the full member set.
type UpdateBoardRequest struct {
	Title     *string `json:"title" validate:"omitempty,max=200"`
	MemberIDs *[]uint `json:"member_ids"`
}

// ListBoards godoc
// @Summary List boards accessible to the caller
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} view.BoardSummary
// @Failure 401 {object} errors.ErrorResponse
// @Router /boards [get]
func (h *BoardHandler) ListBoards(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	boards, err := h.boardService.List(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, boards)
}

// CreateBoard godoc
// @Summary Create a board owned by the caller
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBoardRequest true "Board data"
// @Success 201 {object} view.BoardSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /boards [post]
func (h *BoardHandler) CreateBoard(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	board, err := h.boardService.Create(c.Request().Context(), userID, service.CreateBoardInput{
		Title:   req.Title,
		Members: req.Members,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, board)
}

// GetBoard godoc
// @Summary Get a board with members and tasks
// @Tags boards
// @Produce json
// @Security BearerAuth
// @Param id path int true "Board ID"
// @Success 200 {object} view.BoardDetail
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /boards/{id} [get]
func (h *BoardHandler) GetBoard(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	boardID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	board, err := h.boardService.Get(c.Request().Context(), userID, boardID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, board)
}

// UpdateBoard godoc
// @Summary Update a board's title and/or member set (owner only)
// @Tags boards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Board ID"
// @Param request body UpdateBoardRequest true "Fields to update"
// @Success 200 {object} view.BoardDetailWithOwner
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /boards/{id} [patch]
func (h *BoardHandler) UpdateBoard(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	boardID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	board, err := h.boardService.Update(c.Request().Context(), userID, boardID, service.UpdateBoardInput{
		Title:   req.Title,
		Members: req.MemberIDs,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, board)
}

// DeleteBoard godoc
// @Summary Delete a board and all of its tasks (owner only)
// @Tags boards
// @Security BearerAuth
// @Param id path int true "Board ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /boards/{id} [delete]
func (h *BoardHandler) DeleteBoard(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	boardID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.boardService.Delete(c.Request().Context(), userID, boardID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
