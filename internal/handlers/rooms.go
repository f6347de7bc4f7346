package handlers

import (
	"errors"
	"net/http"

	"escape-game-backend/internal/game"
	"escape-game-backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// RoomHandler is the host-facing room administration surface.
type RoomHandler struct {
	gameService *game.Service
}

func NewRoomHandler(gameService *game.Service) *RoomHandler {
	return &RoomHandler{gameService: gameService}
}

type CreateRoomRequest struct {
	Code string `json:"code" binding:"omitempty,max=8"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	room, players, err := h.gameService.EnterRoom(req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"room":    room,
		"players": players,
	})
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.gameService.Rooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, players, err := h.gameService.Room(c.Param("code"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":     room,
		"players":  players,
		"snapshot": h.gameService.Snapshot(room),
	})
}

// ResetRoom is the host-side full reset: progression back to NOT_STARTED and
// player identities cleared.
func (h *RoomHandler) ResetRoom(c *gin.Context) {
	if err := h.gameService.ResetRoom(c.Param("code")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "room reset"})
}

func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	if err := h.gameService.DeleteRoom(c.Param("code")); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "room deleted"})
}
