package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"rcfetch/internal/rclone"

	"github.com/gorilla/mux"
)

// Daemon is a fake `rclone rcd` serving the RC endpoints rcfetch uses
type Daemon struct {
	Server *httptest.Server

	mu         sync.Mutex
	copyDelay  time.Duration
	copyStatus int
	copyBody   string
	stats      *rclone.Stats
	calls      map[string]int
	authHeader []string
	copyReqs   []rclone.CopyURLRequest
}

// NewDaemon starts a fake daemon that is shut down when the test ends
func NewDaemon(t *testing.T) *Daemon {
	t.Helper()

	d := &Daemon{
		copyStatus: http.StatusOK,
		copyBody:   "{}",
		calls:      make(map[string]int),
	}

	router := mux.NewRouter()
	router.HandleFunc("/core/pid", d.handlePid).Methods(http.MethodPost)
	router.HandleFunc("/core/stats", d.handleStats).Methods(http.MethodPost)
	router.HandleFunc("/operations/copyurl", d.handleCopyURL).Methods(http.MethodPost)
	router.Use(d.record)

	d.Server = httptest.NewServer(router)
	t.Cleanup(d.Server.Close)

	return d
}

// URL returns the base URL of the fake daemon
func (d *Daemon) URL() string {
	return d.Server.URL
}

// Calls returns how many times endpoint was hit
func (d *Daemon) Calls(endpoint string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[endpoint]
}

// AuthHeaders returns the Authorization header of every request received
func (d *Daemon) AuthHeaders() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.authHeader...)
}

// SetStats sets what core/stats answers; nil makes it fail with a 500
func (d *Daemon) SetStats(stats *rclone.Stats) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats = stats
}

// SetCopyResponse makes operations/copyurl block for delay, then answer with status and body
func (d *Daemon) SetCopyResponse(status int, body string, delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.copyStatus = status
	d.copyBody = body
	d.copyDelay = delay
}

// CopyRequests returns the decoded payloads sent to operations/copyurl
func (d *Daemon) CopyRequests() []rclone.CopyURLRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]rclone.CopyURLRequest(nil), d.copyReqs...)
}

func (d *Daemon) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.mu.Lock()
		d.calls[r.URL.Path[1:]]++
		d.authHeader = append(d.authHeader, r.Header.Get("Authorization"))
		d.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (d *Daemon) handlePid(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"pid": 4242})
}

func (d *Daemon) handleStats(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	stats := d.stats
	d.mu.Unlock()

	if stats == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (d *Daemon) handleCopyURL(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	var req rclone.CopyURLRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	d.mu.Lock()
	d.copyReqs = append(d.copyReqs, req)
	status, respBody, delay := d.copyStatus, d.copyBody, d.copyDelay
	d.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(respBody))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
