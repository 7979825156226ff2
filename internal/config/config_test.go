package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
}

const validServerConfig = `
cameras:
  - name: porch
    url: http://10.0.0.10/mjpeg
  - name: garage
    url: https://10.0.0.11/stream
storage:
  recordings_path: /var/lib/camdeck
`

func TestLoadServerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	writeFile(t, path, validServerConfig)

	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("LoadServerConfig() error: %v", err)
	}
	if len(cfg.Cameras) != 2 || cfg.Cameras[1].Name != "garage" {
		t.Errorf("cameras = %+v", cfg.Cameras)
	}
	if cfg.Storage.RecordingsPath != "/var/lib/camdeck" {
		t.Errorf("recordings_path = %q", cfg.Storage.RecordingsPath)
	}
	if cfg.Status.Window != 10*time.Second {
		t.Errorf("default window = %s, want 10s", cfg.Status.Window)
	}
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing recordings": "cameras: []\n",
		"short window":       "storage:\n  recordings_path: /tmp\nstatus:\n  window: 100ms\n",
		"rtsp camera":        "storage:\n  recordings_path: /tmp\ncameras:\n  - name: a\n    url: rtsp://10.0.0.1/\n",
		"nameless camera":    "storage:\n  recordings_path: /tmp\ncameras:\n  - url: http://10.0.0.1/\n",
		"malformed yaml":     "cameras: [\n",
	}

	dir := t.TempDir()
	for name, content := range cases {
		path := filepath.Join(dir, "server.yaml")
		writeFile(t, path, content)
		if _, err := LoadServerConfig(path); err == nil {
			t.Errorf("%s: error = nil, want error", name)
		}
	}

	if _, err := LoadServerConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file: error = nil, want error")
	}
}

func TestServerConfigStore_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	writeFile(t, path, validServerConfig)

	store, err := NewServerConfigStore(path)
	if err != nil {
		t.Fatalf("NewServerConfigStore() error: %v", err)
	}
	if cam, ok := store.Camera(1); !ok || cam.Name != "garage" {
		t.Errorf("Camera(1) = %+v, %v", cam, ok)
	}
	if _, ok := store.Camera(2); ok {
		t.Error("Camera(2) found, want missing")
	}
	if _, ok := store.Camera(-1); ok {
		t.Error("Camera(-1) found, want missing")
	}

	writeFile(t, path, "storage:\n  recordings_path: /srv\ncameras:\n  - name: attic\n    url: http://10.0.0.12/\n")
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	if cam, ok := store.Camera(0); !ok || cam.Name != "attic" {
		t.Errorf("Camera(0) after reload = %+v", cam)
	}

	// An invalid file keeps the previous configuration.
	writeFile(t, path, "cameras: [\n")
	if err := store.Reload(); err == nil {
		t.Error("Reload() of invalid file error = nil")
	}
	if store.Get().Storage.RecordingsPath != "/srv" {
		t.Errorf("config replaced by invalid file")
	}
}

func TestInitConfig_FileEnvAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camdeck.yaml")
	writeFile(t, path, "server:\n  host: cams.local\n  port: 8080\npanel:\n  frame_interval: 250ms\n")
	t.Setenv("CAMDECK_SERVER_PORT", "9090")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	v := viper.New()
	if err := InitConfig(v, path); err != nil {
		t.Fatalf("InitConfig() error: %v", err)
	}
	cfg := NewPanelConfig(v)

	if cfg.Server.Endpoint() != "cams.local:9090" {
		t.Errorf("Endpoint() = %q, want env port to win", cfg.Server.Endpoint())
	}
	if cfg.FrameInterval != 250*time.Millisecond {
		t.Errorf("FrameInterval = %s", cfg.FrameInterval)
	}
	if cfg.StatusInterval != 30*time.Second || cfg.PtzRelease != 300*time.Millisecond {
		t.Errorf("defaults = %s/%s", cfg.StatusInterval, cfg.PtzRelease)
	}
	if cfg.Server.Scheme != "http" || cfg.LogFile != "camdeck-panel.log" {
		t.Errorf("defaults = %q/%q", cfg.Server.Scheme, cfg.LogFile)
	}
	if cfg.TelegramToken != "123:abc" {
		t.Errorf("TelegramToken = %q", cfg.TelegramToken)
	}
}

func TestInitConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camdeck.yaml")
	writeFile(t, path, "server: [\n")

	if err := InitConfig(viper.New(), path); err == nil {
		t.Error("error = nil, want error")
	}
}
