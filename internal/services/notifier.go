package services

import (
	"venuehub/pkg/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChangeEvent describes a catalog mutation. Consumers use it to drop stale
// views instead of re-fetching the whole catalog.
type ChangeEvent struct {
	Type       string                 `json:"type"`
	LocationID primitive.ObjectID     `json:"location_id"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

type ChangeNotifier interface {
	Notify(event ChangeEvent)
}

type hubNotifier struct {
	handler *websocket.Handler
}

// NewHubNotifier fans change events out over the websocket hub: once to
// every connected client, once to the room watching the affected listing.
func NewHubNotifier(handler *websocket.Handler) ChangeNotifier {
	return &hubNotifier{handler: handler}
}

func (n *hubNotifier) Notify(event ChangeEvent) {
	data := event.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	data["location_id"] = event.LocationID.Hex()

	n.handler.GetHub().BroadcastCatalogEvent(event.Type, data)
	n.handler.SendListingUpdate(event.LocationID, event.Type, data)
}

// NopNotifier drops events. Used where no hub is running.
type NopNotifier struct{}

func (NopNotifier) Notify(ChangeEvent) {}
