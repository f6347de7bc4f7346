package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"escape-game-backend/internal/game"
	"escape-game-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// PlayHandler is the player-facing gateway: room entry plus the websocket
// through which all game actions flow.
type PlayHandler struct {
	gameService *game.Service
	hub         *ws.Hub
}

func NewPlayHandler(gameService *game.Service, hub *ws.Hub) *PlayHandler {
	return &PlayHandler{gameService: gameService, hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type EnterRequest struct {
	Code string `json:"code" binding:"omitempty,max=8"`
}

// Enter gets or creates a room by code. First visit to an unseen code creates
// the room and its batch of player join codes.
func (h *PlayHandler) Enter(c *gin.Context) {
	var req EnterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	room, players, err := h.gameService.EnterRoom(req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	// Players see how many codes exist, not the codes themselves.
	c.JSON(http.StatusOK, gin.H{
		"room":         room,
		"player_count": len(players),
		"snapshot":     h.gameService.Snapshot(room),
	})
}

// clientAction is the envelope every inbound websocket message uses.
type clientAction struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type authAction struct {
	PlayerCode string `json:"player_code"`
	Name       string `json:"name"`
}

// submitAction carries the stage the client was answering, taken from its
// latest state snapshot. A submission whose stage has already been settled is
// dropped by the game.
type submitAction struct {
	Stage   int            `json:"stage"`
	Payload map[string]any `json:"payload"`
}

type chatAction struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// HandleRoomWebSocket subscribes a connection to a room's broadcasts and
// dispatches its actions into the state machine. Unknown or malformed
// actions are dropped; the connection stays up.
func (h *PlayHandler) HandleRoomWebSocket(c *gin.Context) {
	code := c.Param("code")
	room, _, err := h.gameService.Room(code)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(room.Code, conn)
	defer h.hub.RemoveConnection(room.Code, conn)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var action clientAction
		if err := json.Unmarshal(raw, &action); err != nil {
			continue
		}
		h.dispatch(room.Code, conn, action)
	}
}

func (h *PlayHandler) dispatch(code string, conn *websocket.Conn, action clientAction) {
	switch action.Type {
	case "auth":
		var data authAction
		if err := json.Unmarshal(action.Data, &data); err != nil {
			h.hub.Send(conn, ws.Message{Type: "auth_result", Data: game.AuthResult{
				OK: false, Msg: "Invalid request.",
			}})
			return
		}
		result, snapshot := h.gameService.Authenticate(code, data.PlayerCode, data.Name)
		h.hub.Send(conn, ws.Message{Type: "auth_result", Data: result})
		if snapshot != nil {
			h.hub.Send(conn, ws.Message{Type: "state", Data: *snapshot})
		}

	case "start":
		h.gameService.Start(code)

	case "replay":
		h.gameService.Replay(code)

	case "hint":
		h.gameService.RequestHint(code)

	case "submit":
		var data submitAction
		if err := json.Unmarshal(action.Data, &data); err != nil {
			return
		}
		h.gameService.Submit(code, data.Stage, data.Payload)

	case "chat_message":
		var data chatAction
		if err := json.Unmarshal(action.Data, &data); err != nil {
			return
		}
		h.gameService.Chat(code, data.Name, data.Text)
	}
}
