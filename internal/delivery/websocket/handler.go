package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// BoardReader is the subset of the analysis repository the push loop needs.
type BoardReader interface {
	List() []domain.Analysis
	Status() domain.CycleStatus
}

type Handler struct {
	repo BoardReader
}

func NewHandler(repo BoardReader) *Handler {
	return &Handler{repo: repo}
}

type boardMessage struct {
	Analyses []domain.Analysis `json:"analyses"`
	Done     int               `json:"done"`
	Total    int               `json:"total"`
	Warning  string            `json:"warning,omitempty"`
}

// Handle upgrades the connection and streams the board every 5 seconds.
// Progressive loading means consecutive frames differ while a cycle is in
// flight; clients just re-render.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	log.Println("[INFO] websocket client connected")

	if err := conn.WriteJSON(h.snapshot()); err != nil {
		log.Println("[ERROR] websocket write:", err)
		return
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteJSON(h.snapshot()); err != nil {
			log.Println("[ERROR] websocket write:", err)
			return
		}
	}
}

func (h *Handler) snapshot() boardMessage {
	status := h.repo.Status()
	return boardMessage{
		Analyses: h.repo.List(),
		Done:     status.Done,
		Total:    status.Total,
		Warning:  status.Warning,
	}
}
