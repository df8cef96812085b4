package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/analysis"
)

type EngineHandler struct {
	Analysis *analysis.Service
}

func NewEngineHandler(svc *analysis.Service) *EngineHandler {
	return &EngineHandler{Analysis: svc}
}

func (h *EngineHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// FindMove answers POST /api/move.
func (h *EngineHandler) FindMove(c *gin.Context) {
	var req analysis.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	res, err := h.Analysis.BestMove(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CheckWin answers POST /api/win.
func (h *EngineHandler) CheckWin(c *gin.Context) {
	var req analysis.WinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	res, err := h.Analysis.CheckWin(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Threats answers POST /api/threats.
func (h *EngineHandler) Threats(c *gin.Context) {
	var req analysis.ThreatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	hints, err := h.Analysis.Threats(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hints)
}

// writeError maps validation failures to 400 and everything else to 500.
func writeError(c *gin.Context, err error) {
	var domainErr domain.Error
	if errors.As(err, &domainErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request cancelled"})
		return
	}
	log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}
