package recordings

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"camdeck/v0/internal/config"
	"camdeck/v0/server/route/recordings/interfaces"
	fileio "camdeck/v0/utils/fileIO"
	"github.com/gorilla/mux"
)

type recordingsHandlers struct {
	store *config.ServerConfigStore
}

// ListRecordings returns the regular files of dir sorted by name.
func ListRecordings(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Lists available recordings.
// On success, responds with ListRecordingsResponse.
func (h *recordingsHandlers) getRecordingsHandler(w http.ResponseWriter, r *http.Request) {
	dir := h.store.Get().Storage.RecordingsPath

	names, err := ListRecordings(dir)
	if err != nil {
		log.Printf("Failed to read recordings from '%s': %v\n", dir, err)
		http.Error(w, "Failed to read recordings", http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	json.NewEncoder(w).Encode(interfaces.ListRecordingsResponse{Recordings: names})
}

// Serves a single recording's content.
func (h *recordingsHandlers) getRecordingHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if !fileio.IsPlainFilename(name) {
		log.Printf("Rejected recording request for '%s'\n", name)
		http.Error(w, "invalid recording name", http.StatusBadRequest)
		return
	}

	path := filepath.Join(h.store.Get().Storage.RecordingsPath, name)
	if !fileio.FileExists(path) {
		http.Error(w, "recording not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, path)
}

// Create routes & handlers.
func CreateRoutes(r *mux.Router, store *config.ServerConfigStore) {
	h := &recordingsHandlers{store: store}

	r.HandleFunc("/recordings", h.getRecordingsHandler).Methods("GET")
	r.HandleFunc("/recordings/{name}", h.getRecordingHandler).Methods("GET")
}
