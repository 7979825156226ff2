package route

import (
	"fmt"

	"camdeck/v0/internal/config"
	"camdeck/v0/pkg/meter"
	"camdeck/v0/server/route/camera"
	"camdeck/v0/server/route/ping"
	"camdeck/v0/server/route/ptz"
	"camdeck/v0/server/route/recordings"
	"camdeck/v0/server/route/settings"
	"camdeck/v0/server/route/status"
	mux "github.com/gorilla/mux"
)

// Dependencies shared by the server routes.
type Dependencies struct {
	Config  *config.ServerConfigStore
	Meter   *meter.StreamMeter
	Tracker *ptz.Tracker
}

func InitRootRoute(r *mux.Router, deps Dependencies) error {
	if deps.Config == nil {
		return fmt.Errorf("routes require a config store")
	}
	if deps.Meter == nil {
		deps.Meter = meter.NewStreamMeter(deps.Config.Get().Status.Window)
	}
	if deps.Tracker == nil {
		deps.Tracker = ptz.NewTracker()
	}

	ping.CreateRoute(r)
	settings.CreateRoutes(r, deps.Config)
	ptz.CreateRoutes(r, deps.Config, deps.Tracker)
	status.CreateRoutes(r, deps.Meter)
	recordings.CreateRoutes(r, deps.Config)
	if err := camera.CreateRoutes(r, deps.Config, deps.Meter); err != nil {
		return fmt.Errorf("failed to create camera routes: %v", err)
	}

	return nil
}
