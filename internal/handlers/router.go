package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/privylabs/privyrecord/internal/database"
	"github.com/privylabs/privyrecord/internal/websocket"
)

// Router wraps the mux router and database
type Router struct {
	*mux.Router
	db      *database.DB
	hub     *websocket.Hub
	baseURL string
}

// NewRouter creates a new HTTP router with all routes. The hub may be nil, in
// which case no events are published.
func NewRouter(db *database.DB, hub *websocket.Hub, baseURL string) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		db:      db,
		hub:     hub,
		baseURL: baseURL,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Record service API
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/user", r.upsertUser).Methods("POST")

	api.HandleFunc("/message/send", r.sendMessage).Methods("POST")
	api.HandleFunc("/message/inbox/{address}", r.getInbox).Methods("GET")

	api.HandleFunc("/poll/create", r.createPoll).Methods("POST")
	api.HandleFunc("/polls", r.listPolls).Methods("GET")
	api.HandleFunc("/poll/{pollId}", r.getPoll).Methods("GET")
	api.HandleFunc("/poll/{pollId}/vote", r.castVote).Methods("POST")
	api.HandleFunc("/poll/{pollId}/qr", r.pollShareQR).Methods("GET")

	api.HandleFunc("/notes/create", r.createNote).Methods("POST")
	// "/notes/get/{noteId}" must register before "/notes/{address}"
	api.HandleFunc("/notes/get/{noteId}", r.getNote).Methods("GET")
	api.HandleFunc("/notes/{address}", r.listNotes).Methods("GET")
	api.HandleFunc("/notes/{noteId}", r.updateNote).Methods("PUT")
	api.HandleFunc("/notes/{noteId}", r.deleteNote).Methods("DELETE")

	// Live event stream
	r.HandleFunc("/ws", r.serveWS).Methods("GET")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// serveWS upgrades the connection and attaches it to the event hub
func (r *Router) serveWS(w http.ResponseWriter, req *http.Request) {
	if r.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "Event stream not available")
		return
	}
	websocket.ServeWS(r.hub, w, req)
}

// publish broadcasts a record event to connected frontends
func (r *Router) publish(eventType string, payload interface{}) {
	if r.hub == nil {
		return
	}
	r.hub.Broadcast(websocket.Event{Type: eventType, Payload: payload})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
