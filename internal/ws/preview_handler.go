package ws

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins; the route sits behind JWT auth.
		return true
	},
}

// PreviewHandler upgrades to a websocket streaming SectionEvents. The
// optional ?sections=about,footer query limits which sections are sent.
func PreviewHandler(hub *PreviewHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sections := map[string]struct{}{}
		for _, s := range strings.Split(c.Query("sections"), ",") {
			if s = strings.TrimSpace(s); s != "" {
				sections[s] = struct{}{}
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := newPreviewClient(hub, conn, sections)
		if !hub.join(client) {
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			conn.Close()
			return
		}

		go client.writePump()
		client.readPump()
	}
}
