package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mushaf/internal/notify"
)

// NotificationsHandler streams notifications over a websocket.
// GET /ws/notifications
func NotificationsHandler(hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	}
}
