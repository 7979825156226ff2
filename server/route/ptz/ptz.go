package ptz

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"camdeck/v0/internal/config"
	"camdeck/v0/server/route/ptz/interfaces"
	"github.com/gorilla/mux"
)

// MotionState is the last known motion of a camera.
type MotionState struct {
	Moving    bool
	Last      interfaces.MoveCommand
	UpdatedAt time.Time
}

// Tracker keeps the motion state of every camera in memory. There is no device
// protocol behind it, commands are recorded and logged.
type Tracker struct {
	states map[int]MotionState
	mutex  sync.RWMutex
}

func NewTracker() *Tracker {
	return &Tracker{states: map[int]MotionState{}}
}

// State returns the motion state of a camera.
func (t *Tracker) State(id int) MotionState {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.states[id]
}

func (t *Tracker) move(id int, cmd interfaces.MoveCommand) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.states[id] = MotionState{Moving: true, Last: cmd, UpdatedAt: time.Now()}
}

func (t *Tracker) stop(id int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	state := t.states[id]
	state.Moving = false
	state.UpdatedAt = time.Now()
	t.states[id] = state
}

func validAxis(v int) bool {
	return v >= -1 && v <= 1
}

type ptzHandlers struct {
	store   *config.ServerConfigStore
	tracker *Tracker
}

func (h *ptzHandlers) cameraFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["cameraId"])
	if err == nil {
		if _, ok := h.store.Camera(id); ok {
			return id, true
		}
	}

	log.Printf("Failed ptz request for camera '%s'. Camera not found.\n", mux.Vars(r)["cameraId"])
	http.Error(w, "camera not found", http.StatusNotFound)
	return 0, false
}

// Starts continuous motion on a camera.
// Request expected to be of type MoveCommand.
// On success, responds with an empty message.
func (h *ptzHandlers) postMoveHandler(w http.ResponseWriter, r *http.Request) {
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

	cmd := interfaces.MoveCommand{}
	if err := json.Unmarshal(bodyBytes, &cmd); err != nil {
		log.Printf("Failed to deserialize ptz move request :%v\n", err)
		http.Error(w, "failed to deserialize body", http.StatusBadRequest)
		return
	}

	if cmd.Type != interfaces.CONTINUOUS_MOTION {
		http.Error(w, "unsupported move type", http.StatusBadRequest)
		return
	}
	if !validAxis(cmd.Pan) || !validAxis(cmd.Tilt) || !validAxis(cmd.Zoom) {
		log.Printf("Rejected ptz move for camera '%d': pan=%d tilt=%d zoom=%d\n", id, cmd.Pan, cmd.Tilt, cmd.Zoom)
		http.Error(w, "axis values must be -1, 0 or 1", http.StatusBadRequest)
		return
	}

	h.tracker.move(id, cmd)
	log.Printf("PTZ move camera '%d': pan=%d tilt=%d zoom=%d\n", id, cmd.Pan, cmd.Tilt, cmd.Zoom)

	w.Header().Add("Content-Type", "application/json")
	w.Write([]byte("{}"))
}

// Stops any motion on a camera. The request carries no body.
func (h *ptzHandlers) postStopHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cameraFromRequest(w, r)
	if !ok {
		return
	}

	h.tracker.stop(id)
	if config.Verbose {
		log.Printf("PTZ stop camera '%d'\n", id)
	}

	w.Header().Add("Content-Type", "application/json")
	w.Write([]byte("{}"))
}

// Create routes & handlers.
func CreateRoutes(r *mux.Router, store *config.ServerConfigStore, tracker *Tracker) {
	h := &ptzHandlers{
		store:   store,
		tracker: tracker,
	}

	r.HandleFunc("/ptz/{cameraId}/move", h.postMoveHandler).Methods("POST")
	r.HandleFunc("/ptz/{cameraId}/stop", h.postStopHandler).Methods("POST")
}
