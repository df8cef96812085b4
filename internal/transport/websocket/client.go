package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

// ConnectionManager tracks live sockets by client id.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// conn.WriteJSON is not safe for concurrent use; bot replies arrive on
	// their own goroutines.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

func (cm *ConnectionManager) AddConnection(clientID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[clientID]; exists {
		oldConn.Close()
	}
	cm.connections[clientID] = conn
	cm.writeMu[clientID] = &sync.Mutex{}
}

func (cm *ConnectionManager) RemoveConnection(clientID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[clientID]; exists {
		conn.Close()
		delete(cm.connections, clientID)
		delete(cm.writeMu, clientID)
	}
}

// SendMessage writes one JSON message; unknown clients are ignored.
func (cm *ConnectionManager) SendMessage(clientID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[clientID]
	mu, muExists := cm.writeMu[clientID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(message)
}

// Ping sends a control ping under the client's write lock.
func (cm *ConnectionManager) Ping(clientID string) error {
	cm.mu.RLock()
	conn, exists := cm.connections[clientID]
	mu, muExists := cm.writeMu[clientID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return websocket.ErrCloseSent
	}

	mu.Lock()
	defer mu.Unlock()
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
