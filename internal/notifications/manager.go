package notifications

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ProgressUpdate is pushed to a user's open tabs after a completion
// event so list views and progress bars can refresh without polling.
type ProgressUpdate struct {
	ProjectID string    `json:"project_id"`
	Section   string    `json:"section"`
	Progress  int       `json:"progress"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Broadcaster is the seam the survey service publishes through.
type Broadcaster interface {
	BroadcastProgress(userID string, update ProgressUpdate)
}

// Manager handles WebSocket connections and routes progress updates to
// the owning user's connections. Delivery is best effort: a slow or
// gone client never blocks a save.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]map[string]*connection // userID -> connID -> conn
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

type connection struct {
	id     string
	userID string
	conn   *websocket.Conn
	send   chan ProgressUpdate
}

// NewManager creates a WebSocket manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		connections: make(map[string]map[string]*connection),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// HandleConnection upgrades the request and starts the read/write pumps
// for an authenticated user.
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request, userID string) error {
	ws, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &connection{
		id:     uuid.NewString(),
		userID: userID,
		conn:   ws,
		send:   make(chan ProgressUpdate, 16),
	}

	m.mu.Lock()
	if m.connections[userID] == nil {
		m.connections[userID] = make(map[string]*connection)
	}
	m.connections[userID][c.id] = c
	m.mu.Unlock()

	go m.readPump(c)
	go m.writePump(c)
	return nil
}

// BroadcastProgress delivers an update to every open connection of the
// user. Connections with a full send buffer are skipped.
func (m *Manager) BroadcastProgress(userID string, update ProgressUpdate) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.connections[userID] {
		select {
		case c.send <- update:
		default:
			m.logger.Warn("dropping progress update, send buffer full",
				zap.String("user_id", userID), zap.String("conn_id", c.id))
		}
	}
}

// ConnectionCount reports the number of open connections.
func (m *Manager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, conns := range m.connections {
		n += len(conns)
	}
	return n
}

func (m *Manager) unregister(c *connection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conns, ok := m.connections[c.userID]; ok {
		delete(conns, c.id)
		if len(conns) == 0 {
			delete(m.connections, c.userID)
		}
	}
}

// readPump drains client frames to keep the connection alive; clients
// never send application messages.
func (m *Manager) readPump(c *connection) {
	defer func() {
		m.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.logger.Debug("websocket closed", zap.Error(err))
			}
			return
		}
	}
}

func (m *Manager) writePump(c *connection) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case update, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(update); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
