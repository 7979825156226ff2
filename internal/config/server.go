package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"sync"
	"time"

	"camdeck/v0/utils/filewatcher"
	"gopkg.in/yaml.v3"
)

// ServerConfig is the reference server's YAML configuration.
type ServerConfig struct {
	Cameras []CameraConfig `yaml:"cameras"`
	Storage StorageConfig  `yaml:"storage"`
	Status  StatusConfig   `yaml:"status"`
}

// CameraConfig is a single camera entry. A camera's id is its index in the list.
type CameraConfig struct {
	Name string `yaml:"name"`

	// Upstream MJPEG endpoint relayed by /video_feed/{id}.
	URL string `yaml:"url"`
}

type StorageConfig struct {
	RecordingsPath string `yaml:"recordings_path"`
}

type StatusConfig struct {
	// Sliding window the stream meter averages over.
	Window time.Duration `yaml:"window"`
}

// LoadServerConfig reads and validates the server configuration file.
func LoadServerConfig(path string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %v", err)
	}

	var cfg ServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %v", err)
	}

	if cfg.Status.Window == 0 {
		cfg.Status.Window = 10 * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %v", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *ServerConfig) Validate() error {
	if c.Storage.RecordingsPath == "" {
		return fmt.Errorf("storage.recordings_path is required")
	}

	if c.Status.Window < time.Second {
		return fmt.Errorf("status.window must be at least 1s")
	}

	for i, cam := range c.Cameras {
		if cam.Name == "" {
			return fmt.Errorf("camera %d: name is required", i)
		}
		u, err := url.Parse(cam.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("camera '%s': url must be an http(s) MJPEG endpoint", cam.Name)
		}
	}

	return nil
}

// ServerConfigStore holds the current server configuration, swapping it whenever the
// backing file changes.
type ServerConfigStore struct {
	path  string
	cfg   *ServerConfig
	mutex sync.RWMutex
}

// NewServerConfigStore loads the initial configuration from path.
func NewServerConfigStore(path string) (*ServerConfigStore, error) {
	cfg, err := LoadServerConfig(path)
	if err != nil {
		return nil, err
	}

	return &ServerConfigStore{
		path: path,
		cfg:  cfg,
	}, nil
}

// NewStaticServerConfigStore wraps an already loaded configuration which is never
// reloaded.
func NewStaticServerConfigStore(cfg *ServerConfig) *ServerConfigStore {
	return &ServerConfigStore{cfg: cfg}
}

// Get returns the current configuration. Callers must not modify it.
func (s *ServerConfigStore) Get() *ServerConfig {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.cfg
}

// Camera returns the camera entry with the given id.
func (s *ServerConfigStore) Camera(id int) (CameraConfig, bool) {
	cfg := s.Get()
	if id < 0 || id >= len(cfg.Cameras) {
		return CameraConfig{}, false
	}
	return cfg.Cameras[id], true
}

// Reload re-reads the backing file. The previous configuration is kept when the file
// is invalid.
func (s *ServerConfigStore) Reload() error {
	if s.path == "" {
		return nil
	}

	cfg, err := LoadServerConfig(s.path)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	s.cfg = cfg
	s.mutex.Unlock()
	return nil
}

// Watch reloads the configuration on file changes until done is closed.
// Intended to run in a goroutine.
func (s *ServerConfigStore) Watch(done <-chan struct{}) {
	fw := filewatcher.NewFileWatcher(s.path)
	defer fw.Close()

	for {
		select {
		case <-done:
			return
		case _, ok := <-fw.ChangeTriggerChan:
			if !ok {
				return
			}
			if err := s.Reload(); err != nil {
				log.Printf("Failed to reload server config '%s': %v\n", s.path, err)
				continue
			}
			log.Printf("Server config '%s' reloaded with %d cameras\n", s.path, len(s.Get().Cameras))
		}
	}
}
