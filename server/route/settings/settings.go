package settings

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"camdeck/v0/internal/config"
	"camdeck/v0/server/route/settings/interfaces"
	"github.com/gorilla/mux"
)

type settingsHandlers struct {
	store *config.ServerConfigStore

	// Applied settings per camera id, kept in memory only.
	applied map[int]interfaces.SettingsResponse
	mutex   sync.RWMutex
}

// parsePositive parses a form value the way the panel submits it, verbatim strings.
func parsePositive(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// cameraFromRequest resolves the {cameraId} path variable to a known camera.
func (h *settingsHandlers) cameraFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["cameraId"])
	if err != nil {
		log.Printf("Failed settings request for camera '%s'. Invalid id.\n", mux.Vars(r)["cameraId"])
		http.Error(w, "camera not found", http.StatusNotFound)
		return 0, false
	}
	if _, ok := h.store.Camera(id); !ok {
		log.Printf("Failed settings request for camera '%d'. Camera not found.\n", id)
		http.Error(w, "camera not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// Applies the recording settings of a camera.
// Request expected to be of type ApplySettingsRequest.
// On success, responds with the applied SettingsResponse.
func (h *settingsHandlers) postSettingsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cameraFromRequest(w, r)
	if !ok {
		return
	}

	bodyBytes, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		log.Printf("Failed to read request body:%v\n", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	req := interfaces.ApplySettingsRequest{}
	if err := json.Unmarshal(bodyBytes, &req); err != nil {
		log.Printf("Failed to deserialize settings request :%v\n", err)
		http.Error(w, "failed to deserialize body", http.StatusBadRequest)
		return
	}

	recordLength, ok := parsePositive(req.RecordLength)
	if !ok {
		log.Printf("Failed to apply settings for camera '%d'. Invalid record length '%s'\n", id, req.RecordLength)
		http.Error(w, "invalid recordLength entry", http.StatusBadRequest)
		return
	}
	fileSize, ok := parsePositive(req.FileSize)
	if !ok {
		log.Printf("Failed to apply settings for camera '%d'. Invalid file size '%s'\n", id, req.FileSize)
		http.Error(w, "invalid fileSize entry", http.StatusBadRequest)
		return
	}

	applied := interfaces.SettingsResponse{
		RecordLength: strconv.Itoa(recordLength),
		FileSize:     strconv.Itoa(fileSize),
	}
	h.mutex.Lock()
	h.applied[id] = applied
	h.mutex.Unlock()

	log.Printf("Applied settings for camera '%d': recordLength=%d fileSize=%d\n", id, recordLength, fileSize)
	w.Header().Add("Content-Type", "application/json")
	json.NewEncoder(w).Encode(applied)
}

// Gets the settings last applied to a camera.
// On success, responds with SettingsResponse.
func (h *settingsHandlers) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cameraFromRequest(w, r)
	if !ok {
		return
	}

	h.mutex.RLock()
	applied, found := h.applied[id]
	h.mutex.RUnlock()
	if !found {
		http.Error(w, "no settings applied", http.StatusNotFound)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	json.NewEncoder(w).Encode(applied)
}

// Create routes & handlers.
func CreateRoutes(r *mux.Router, store *config.ServerConfigStore) {
	h := &settingsHandlers{
		store:   store,
		applied: map[int]interfaces.SettingsResponse{},
	}

	r.HandleFunc("/settings/{cameraId}", h.postSettingsHandler).Methods("POST")
	r.HandleFunc("/settings/{cameraId}", h.getSettingsHandler).Methods("GET")
}
