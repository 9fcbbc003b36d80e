package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/pkg/auth"
)

// Handler upgrades HTTP requests to WebSocket connections for the
// notification stream.
type Handler struct {
	hub        *Hub
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, jwtService *auth.JWTService, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		logger:     logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for realtime notifications
// @Description Upgrades the HTTP connection to a WebSocket stream of notification events for the authenticated user. Browsers cannot set headers on WebSocket requests, so the JWT is passed as a query parameter.
// @Tags notifications, websocket
// @Produce json
// @Param token query string true "JWT access token"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Router /ws/notifications [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	claims, err := h.jwtService.ValidateAndExtractClaims(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or missing token",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", claims.UserID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: claims.UserID,
		logger: h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("userID", claims.UserID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
