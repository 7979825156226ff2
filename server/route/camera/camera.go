package camera

import (
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"camdeck/v0/internal/config"
	"github.com/gorilla/mux"
)

const (
	// Boundary of the relayed multipart stream, as expected by image viewers.
	FEED_BOUNDARY = "frame"
)

// countingWriter counts bytes written through it.
type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}

// relayFrames re-frames every part of an upstream multipart stream under the feed
// boundary, recording each relayed frame in the meter.
// It returns an error reflecting the failure state, io.EOF included when the
// upstream ended normally.
func (h *cameraHandlers) relayFrames(w http.ResponseWriter, src *multipart.Reader) error {
	mw := multipart.NewWriter(w)
	if err := mw.SetBoundary(FEED_BOUNDARY); err != nil {
		return err
	}
	flusher, _ := w.(http.Flusher)

	for {
		part, err := src.NextPart()
		if err == io.EOF {
			mw.Close()
			return err
		}
		if err != nil {
			return err
		}

		contentType := part.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}
		dst, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {contentType}})
		if err != nil {
			part.Close()
			return err
		}

		cw := &countingWriter{w: dst}
		_, err = io.Copy(cw, part)
		part.Close()
		if err != nil {
			return err
		}
		h.meter.AddFrame(cw.n)

		if flusher != nil {
			flusher.Flush()
		}
	}
}

// Streaming endpoint relaying a camera's upstream MJPEG feed.
// Responds with multipart/x-mixed-replace frames until either side closes.
func (h *cameraHandlers) getCameraFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["cameraId"])
	if err != nil {
		http.Error(w, "invalid camera id", http.StatusBadRequest)
		return
	}

	cam, ok := h.store.Camera(id)
	if !ok {
		log.Printf("Failed feed request for camera '%d'. Camera not found.\n", id)
		http.Error(w, "Camera not found", http.StatusNotFound)
		return
	}

	upstreamReq, err := http.NewRequestWithContext(r.Context(), http.MethodGet, cam.URL, nil)
	if err != nil {
		log.Printf("Failed to construct upstream request for camera[%s]: %v\n", cam.Name, err)
		http.Error(w, "invalid camera url", http.StatusInternalServerError)
		return
	}

	upstream, err := h.upstream.Do(upstreamReq)
	if err != nil {
		log.Printf("Error: Could not open camera stream for %s: %v\n", cam.Name, err)
		http.Error(w, "camera unreachable", http.StatusBadGateway)
		return
	}
	defer upstream.Body.Close()

	if upstream.StatusCode != http.StatusOK {
		log.Printf("Error: camera stream for %s responded %d\n", cam.Name, upstream.StatusCode)
		http.Error(w, fmt.Sprintf("camera responded %d", upstream.StatusCode), http.StatusBadGateway)
		return
	}

	mediaType, params, err := mime.ParseMediaType(upstream.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		log.Printf("Error: camera %s is not an MJPEG stream (%s)\n", cam.Name, upstream.Header.Get("Content-Type"))
		http.Error(w, "camera is not an mjpeg stream", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+FEED_BOUNDARY)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	log.Printf("Streaming started for camera: %s\n", cam.Name)
	err = h.relayFrames(w, multipart.NewReader(upstream.Body, params["boundary"]))
	if err != nil && err != io.EOF && r.Context().Err() == nil && config.Verbose {
		log.Printf("Relay for camera %s ended: %v\n", cam.Name, err)
	}
	log.Printf("Streaming stopped for camera: %s\n", cam.Name)
}

func (h *cameraHandlers) createCameraFeedRoute(r *mux.Router) {
	r.HandleFunc("/video_feed/{cameraId:[0-9]+}", h.getCameraFeedHandler).Methods("GET")
}
