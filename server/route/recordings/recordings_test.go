package recordings

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"camdeck/v0/internal/config"
	"github.com/gorilla/mux"
)

func TestGetRecordingHandler_RejectsNonPlainNames(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.mp4"), []byte("a"), 0644)
	h := &recordingsHandlers{store: config.NewStaticServerConfigStore(&config.ServerConfig{
		Storage: config.StorageConfig{RecordingsPath: dir},
	})}

	cases := map[string]int{
		"a.mp4":     http.StatusOK,
		"b.mp4":     http.StatusNotFound,
		"..":        http.StatusBadRequest,
		"../a.mp4":  http.StatusBadRequest,
		`..\secret`: http.StatusBadRequest,
	}
	for name, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/recordings/x", nil)
		req = mux.SetURLVars(req, map[string]string{"name": name})
		rec := httptest.NewRecorder()

		h.getRecordingHandler(rec, req)
		if rec.Code != want {
			t.Errorf("GET recording %q = %d, want %d", name, rec.Code, want)
		}
	}
}

func TestListRecordings_MissingDirectory(t *testing.T) {
	if _, err := ListRecordings(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("error = nil, want error")
	}
}
