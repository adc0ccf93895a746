// Package kds fans state changes out to every connected device, replacing
// polling: waiters see a table claimed elsewhere the moment it happens, the
// kitchen display refreshes itself.
package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Event types.
const (
	EventTableUpdate  = "table_update"
	EventTableRelease = "table_release"
	EventPartyClosed  = "party_closed"
	EventActivity     = "activity"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected client (waiter, kitchen, admin) with its role.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastTableUpdate announces a claimed or re-confirmed table.
func BroadcastTableUpdate(number int, record models.TableRecord) {
	broadcast(Message{
		Event: EventTableUpdate,
		Data: map[string]interface{}{
			"table_number": number,
			"record":       record,
		},
	})
}

// BroadcastTableRelease announces a cleared table.
func BroadcastTableRelease(number int, record models.TableRecord) {
	broadcast(Message{
		Event: EventTableRelease,
		Data: map[string]interface{}{
			"table_number": number,
			"record":       record,
		},
	})
}

// BroadcastPartyClosed announces a completed payment.
func BroadcastPartyClosed(record models.SalesRecord) {
	broadcast(Message{
		Event: EventPartyClosed,
		Data:  record,
	})
}

// BroadcastActivity mirrors a new activity entry to admin screens.
func BroadcastActivity(entry models.ActivityLog) {
	broadcast(Message{
		Event: EventActivity,
		Data:  entry,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("kds: marshal broadcast: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("kds: send failed, dropping client: %v", err)
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
