package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/analysis"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/game"
	"github.com/iamasit07/5-in-a-row/backend/pkg/auth"
	"github.com/iamasit07/5-in-a-row/backend/pkg/httputil"
	"github.com/iamasit07/5-in-a-row/backend/pkg/uid"
)

const (
	pingInterval = 30 * time.Second
	readTimeout  = 60 * time.Second
)

type Handler struct {
	ConnManager       *ConnectionManager
	SessionManager    *game.SessionManager
	Analysis          *analysis.Service
	DefaultDifficulty bot.Difficulty
	AuthRequired      bool
	JWTSecret         string
	Upgrader          websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, svc *analysis.Service, defaultDifficulty bot.Difficulty) *Handler {
	return &Handler{
		ConnManager:       cm,
		SessionManager:    sm,
		Analysis:          svc,
		DefaultDifficulty: defaultDifficulty,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// WithAuth makes the upgrade require a client token, read from the
// Authorization header or the "token" query parameter.
func (h *Handler) WithAuth(secret string) *Handler {
	h.AuthRequired = true
	h.JWTSecret = secret
	return h
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	if h.AuthRequired {
		token, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if _, err := auth.ValidateToken(token, h.JWTSecret); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn, c.ClientIP())
}

func (h *Handler) handleConnection(conn *websocket.Conn, remote string) {
	clientID, err := uid.GenerateClientID()
	if err != nil {
		log.Printf("[WS] %v", err)
		conn.Close()
		return
	}
	h.ConnManager.AddConnection(clientID, conn)
	log.Printf("[WS] Client %s connected from %s", clientID, remote)

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := h.ConnManager.Ping(clientID); err != nil {
					return
				}
			}
		}
	}()

	defer func() {
		close(done)
		log.Printf("[WS] Client %s disconnected", clientID)
		h.SessionManager.EndForClient(clientID)
		h.ConnManager.RemoveConnection(clientID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client %s closed unexpectedly: %v", clientID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(clientID, "Invalid message format")
			continue
		}

		h.processMessage(clientID, msg)
	}
}

func (h *Handler) processMessage(clientID string, msg domain.ClientMessage) {
	switch msg.Type {
	case "find_move":
		difficulty := msg.Difficulty
		if difficulty == "" {
			difficulty = string(h.DefaultDifficulty)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		res, err := h.Analysis.BestMove(ctx, analysis.MoveRequest{
			Board:      msg.Board,
			Computer:   msg.Computer,
			Human:      msg.Human,
			Difficulty: difficulty,
		})
		if err != nil {
			h.sendError(clientID, err.Error())
			return
		}
		reply := domain.ServerMessage{Type: "move", NoMove: res.NoMove, Source: res.Source}
		if !res.NoMove {
			reply.Move = &domain.Position{Row: res.Row, Col: res.Col}
		}
		h.ConnManager.SendMessage(clientID, reply)

	case "new_game":
		difficulty := h.DefaultDifficulty
		if msg.Difficulty != "" {
			d, err := bot.ParseDifficulty(msg.Difficulty)
			if err != nil {
				h.sendError(clientID, err.Error())
				return
			}
			difficulty = d
		}
		_, err := h.SessionManager.Start(clientID, game.StartOptions{
			Difficulty: difficulty,
			HumanPlays: domain.PlayerID(msg.HumanPlays),
			Size:       msg.Size,
		}, h.ConnManager)
		if err != nil {
			h.sendError(clientID, err.Error())
		}

	case "make_move":
		session, exists := h.SessionManager.GetSessionByClientID(clientID)
		if !exists {
			h.sendError(clientID, "Game not found")
			return
		}
		if err := session.HandleMove(domain.Position{Row: msg.Row, Col: msg.Col}); err != nil {
			h.sendError(clientID, err.Error())
		}

	case "rematch":
		if _, err := h.SessionManager.Rematch(clientID, h.ConnManager); err != nil {
			h.sendError(clientID, err.Error())
		}

	case "abandon_game":
		h.SessionManager.EndForClient(clientID)

	default:
		h.sendError(clientID, "Unknown message type")
	}
}

func (h *Handler) sendError(clientID, message string) {
	h.ConnManager.SendMessage(clientID, domain.ServerMessage{Type: "error", Message: message})
}
