package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"time"

	"camdeck/v0/internal/config"
	"camdeck/v0/server/middleware"
	"camdeck/v0/server/route"
	fileio "camdeck/v0/utils/fileIO"
	"github.com/gorilla/mux"
)

type ServerOpts struct {
	ConfigPath        string
	ServerCertificate string
	ServerKey         string
	HostEndpoint      string
	PortEndpoint      uint16
}

// NewRouter builds the server's router, with request logging, over the given
// dependencies.
func NewRouter(deps route.Dependencies) (*mux.Router, error) {
	router := mux.NewRouter()

	// Add middleware.
	router.Use(middleware.BasicLogger)

	// Add server root endpoints.
	if err := route.InitRootRoute(router, deps); err != nil {
		return nil, fmt.Errorf("failed to create root server routes: %v", err)
	}
	return router, nil
}

// Run serves until ctx is done. TLS is used when both a certificate and a key are
// given.
func Run(ctx context.Context, opts *ServerOpts) error {
	useTLS := opts.ServerCertificate != "" || opts.ServerKey != ""
	if useTLS {
		// Check if the server's certificate & key exists.
		if !fileio.FileExists(opts.ServerCertificate) {
			return fmt.Errorf("server certificate '%s' does not exist", opts.ServerCertificate)
		}
		if !fileio.FileExists(opts.ServerKey) {
			return fmt.Errorf("server key '%s' does not exist", opts.ServerKey)
		}
	}

	store, err := config.NewServerConfigStore(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load server config: %v", err)
	}
	log.Printf("Loaded %d cameras, recordings from '%s'\n", len(store.Get().Cameras), store.Get().Storage.RecordingsPath)
	go store.Watch(ctx.Done())

	router, err := NewRouter(route.Dependencies{Config: store})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", opts.HostEndpoint, opts.PortEndpoint),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	// Shutdown once the root context is cancelled. Feed relays end with their request
	// contexts.
	go func() {
		<-ctx.Done()
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown failed: %v\n", err)
		}
	}()

	log.Printf("Listening on %s:%d.\n", opts.HostEndpoint, opts.PortEndpoint)
	if useTLS {
		err = server.ListenAndServeTLS(opts.ServerCertificate, opts.ServerKey)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %v", err)
	}

	return nil
}
