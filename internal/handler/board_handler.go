package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

// BoardHandler serves the board CRUD endpoints
type BoardHandler struct {
	boardService service.BoardService
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// CreateBoard handles POST /boards
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.boardService.CreateBoard(c.Request.Context(), principal, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ListBoards handles GET /boards
func (h *BoardHandler) ListBoards(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}

	result, err := h.boardService.ListBoards(c.Request.Context(), principal)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetBoard handles GET /boards/:boardId
func (h *BoardHandler) GetBoard(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}

	result, err := h.boardService.GetBoard(c.Request.Context(), principal, boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// UpdateBoard handles PATCH /boards/:boardId
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}

	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.boardService.UpdateBoard(c.Request.Context(), principal, boardID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// DeleteBoard handles DELETE /boards/:boardId
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), principal, boardID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusNoContent, nil)
}
