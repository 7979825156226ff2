package camera

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"camdeck/v0/server/route/camera/interfaces"
	"github.com/gorilla/mux"
)

// GET endpoint request for retrieving all configured cameras.
// Returns a ListCameraResponse.
func (h *cameraHandlers) getCameraListHandler(w http.ResponseWriter, r *http.Request) {
	resp := interfaces.ListCameraResponse{
		Cameras: []interfaces.CameraResponseBase{},
	}
	for id, cam := range h.store.Get().Cameras {
		resp.Cameras = append(resp.Cameras, interfaces.CameraResponseBase{
			Id:   id,
			Name: cam.Name,
			Feed: fmt.Sprintf(interfaces.FEED_ENDPOINT_FMT, id),
		})
	}

	respBody, err := json.Marshal(resp)
	if err != nil {
		log.Printf("Failed to serialize response message for camera list request: %v\n", err)
		http.Error(
			w,
			"failed to serialize response body",
			http.StatusInternalServerError,
		)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.Write(respBody)
}

// Creates request routes & handlers.
func (h *cameraHandlers) createCameraListRoute(r *mux.Router) {
	r.HandleFunc("/cameras", h.getCameraListHandler).Methods("GET")
}
