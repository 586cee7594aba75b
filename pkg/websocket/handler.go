package websocket

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	hub *Hub
}

func NewHandler() *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub: hub,
	}
}

// HandleWebSocket upgrades the connection. Anonymous clients are accepted;
// they still receive catalog-wide events but have no personal room.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	var userObjectID primitive.ObjectID
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(primitive.ObjectID); ok {
			userObjectID = id
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userObjectID)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Handler) SendListingUpdate(locationID primitive.ObjectID, updateType string, data map[string]interface{}) {
	message := Message{
		Type:      updateType,
		RoomID:    "location_" + locationID.Hex(),
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}

	h.hub.SendListingUpdate(locationID, message)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
