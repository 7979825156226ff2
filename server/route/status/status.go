package status

import (
	"encoding/json"
	"net/http"

	"camdeck/v0/pkg/meter"
	"camdeck/v0/server/route/status/interfaces"
	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Add("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Create routes & handlers, reporting on the relayed feeds measured by m.
func CreateRoutes(r *mux.Router, m *meter.StreamMeter) {
	sr := r.PathPrefix("/status").Subrouter()

	sr.HandleFunc("/frame_rate", func(w http.ResponseWriter, r *http.Request) {
		fps, _ := m.Rates()
		writeJSON(w, interfaces.RateResponse{Rate: fps})
	}).Methods("GET")

	sr.HandleFunc("/stream_rate", func(w http.ResponseWriter, r *http.Request) {
		_, mbps := m.Rates()
		writeJSON(w, interfaces.RateResponse{Rate: mbps})
	}).Methods("GET")

	sr.HandleFunc("/signal_strength", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, interfaces.SignalStrengthResponse{Strength: m.SignalStrength()})
	}).Methods("GET")
}
