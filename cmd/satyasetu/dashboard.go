// cmd/satyasetu/dashboard.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Dashboard serves the JSON API and pushes new analyses to websocket clients
type Dashboard struct {
	engine *Engine
	store  *Store
	feeds  []Feed

	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool

	server *http.Server
}

func NewDashboard(engine *Engine, store *Store, feeds []Feed) *Dashboard {
	return &Dashboard{
		engine: engine,
		store:  store,
		feeds:  feeds,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// Router builds the API routes
func (d *Dashboard) Router() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/analyze", d.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/analyses", d.handleListAnalyses).Methods(http.MethodGet)
	api.HandleFunc("/analyses/{id}", d.handleGetAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/alerts", d.handleAlerts).Methods(http.MethodGet)
	api.HandleFunc("/status", d.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/metrics", d.handleMetrics).Methods(http.MethodGet)
	api.HandleFunc("/feeds", d.handleFeeds).Methods(http.MethodGet)
	api.HandleFunc("/ws", d.handleWebSocket)
	return router
}

// Start runs the HTTP server in a goroutine
func (d *Dashboard) Start() {
	d.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ListenPort),
		Handler:      d.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		Logger().Info("dashboard listening on %s", d.server.Addr)
		if err := d.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			Logger().Error("dashboard server: %v", err)
		}
	}()
}

// Shutdown stops the HTTP server and closes websocket clients
func (d *Dashboard) Shutdown(ctx context.Context) {
	d.mu.Lock()
	for conn := range d.clients {
		conn.Close()
	}
	d.clients = make(map[*websocket.Conn]bool)
	d.mu.Unlock()

	if d.server != nil {
		if err := d.server.Shutdown(ctx); err != nil {
			Logger().Warning("dashboard shutdown: %v", err)
		}
	}
}

// NotifyAnalysis broadcasts a new analysis record to websocket clients
func (d *Dashboard) NotifyAnalysis(record *AnalysisRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for conn := range d.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(record); err != nil {
			conn.Close()
			delete(d.clients, conn)
		}
	}
}

func (d *Dashboard) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := d.engine.Analyze(r.Context(), &req)
	if err != nil {
		if shieldErr, ok := err.(*ShieldError); ok && shieldErr.Code == ErrAnalysisInput {
			respondWithError(w, http.StatusBadRequest, shieldErr.Message)
			return
		}
		Logger().Error("analysis failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	record, err := d.store.SaveAnalysis(req.Title, req.URL, "api", result)
	if err != nil {
		Logger().Error("saving analysis: %v", err)
		respondWithError(w, http.StatusInternalServerError, "failed to save analysis")
		return
	}

	d.NotifyAnalysis(record)
	respondWithJSON(w, http.StatusOK, record)
}

func (d *Dashboard) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	respondWithJSON(w, http.StatusOK, d.store.RecentAnalyses(limit))
}

func (d *Dashboard) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	record, ok := d.store.GetAnalysis(id)
	if !ok {
		respondWithError(w, http.StatusNotFound, "analysis not found")
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

func (d *Dashboard) handleAlerts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, d.store.RecentAlerts(50))
}

func (d *Dashboard) handleStatus(w http.ResponseWriter, r *http.Request) {
	analyses, alerts := d.store.Counts()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"version":         cfg.Version,
		"analyses_stored": analyses,
		"alerts_stored":   alerts,
		"web_verify":      cfg.EnableWebVerify,
		"oracle":          cfg.EnableOracle && cfg.GroqAPIKey != "",
		"fact_check":      cfg.EnableFactCheck && cfg.GoogleFactCheckAPIKey != "",
		"monitor":         cfg.EnableMonitor,
		"time":            time.Now().UTC(),
	})
}

func (d *Dashboard) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, collectMetrics())
}

func (d *Dashboard) handleFeeds(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, d.feeds)
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		Logger().Warning("websocket upgrade: %v", err)
		return
	}

	d.mu.Lock()
	d.clients[conn] = true
	d.mu.Unlock()

	// Drain reads so close frames are processed; drop the client on error
	go func() {
		defer func() {
			d.mu.Lock()
			delete(d.clients, conn)
			d.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		Logger().Error("encoding response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
