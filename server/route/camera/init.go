package camera

import (
	"fmt"
	"net/http"
	"time"

	"camdeck/v0/internal/config"
	"camdeck/v0/pkg/meter"
	"github.com/gorilla/mux"
)

type cameraHandlers struct {
	store    *config.ServerConfigStore
	meter    *meter.StreamMeter
	upstream *http.Client
}

// CreateRoutes registers the camera list and feed relay routes.
func CreateRoutes(r *mux.Router, store *config.ServerConfigStore, streamMeter *meter.StreamMeter) error {
	if store == nil || streamMeter == nil {
		return fmt.Errorf("camera routes require a config store and a stream meter")
	}

	h := &cameraHandlers{
		store: store,
		meter: streamMeter,
		upstream: &http.Client{
			// Only bounds connection setup, the relay itself runs until the viewer leaves.
			Transport: &http.Transport{
				ResponseHeaderTimeout: 10 * time.Second,
			},
		},
	}

	h.createCameraListRoute(r)
	h.createCameraFeedRoute(r)
	return nil
}
