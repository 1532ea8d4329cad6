package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 20 * time.Second

// Hub tracks one websocket connection per authenticated user and pushes job
// status events to the two participants of a job. Delivery is best effort;
// the database remains the source of truth.
type Hub struct {
	logger *log.Logger

	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[int]*websocket.Conn
	locks map[int]*sync.Mutex
}

type JobEvent struct {
	Type   string `json:"type"`
	JobID  int    `json:"job_id"`
	Status string `json:"status,omitempty"`
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[int]*websocket.Conn),
		locks: make(map[int]*sync.Mutex),
	}
}

// ServeWS upgrades the request for an already-authenticated user. A second
// connection for the same user replaces the first.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws upgrade failed for user %d: %v", userID, err)
		return
	}

	h.mu.Lock()
	if old, ok := h.conns[userID]; ok {
		old.Close()
	}
	h.conns[userID] = conn
	h.locks[userID] = &sync.Mutex{}
	h.mu.Unlock()

	go h.readLoop(userID, conn)
}

func (h *Hub) readLoop(userID int, conn *websocket.Conn) {
	defer h.drop(userID, conn)
	for {
		// Clients never send payloads; the read pump only notices closes.
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.conns[userID]; ok && current == conn {
		delete(h.conns, userID)
		delete(h.locks, userID)
	}
	conn.Close()
}

func (h *Hub) send(userID int, event JobEvent) {
	h.mu.RLock()
	conn, ok := h.conns[userID]
	lock := h.locks[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	lock.Lock()
	defer lock.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(event); err != nil {
		h.logger.Printf("ws write to user %d failed: %v", userID, err)
		h.drop(userID, conn)
	}
}

// JobStatusChanged pushes the new status to the job's client and, when
// assigned, its cleaner.
func (h *Hub) JobStatusChanged(jobID int, status string, clientID int, cleanerID *int) {
	event := JobEvent{Type: "job_status", JobID: jobID, Status: status}
	h.send(clientID, event)
	if cleanerID != nil {
		h.send(*cleanerID, event)
	}
}

// ApplicationReceived tells the job owner a new application arrived.
func (h *Hub) ApplicationReceived(jobID, clientID int) {
	h.send(clientID, JobEvent{Type: "application_received", JobID: jobID})
}
