package panel

import (
	"context"
	"log"

	setif "camdeck/v0/server/route/settings/interfaces"
)

// NO_CAMERA is the path segment used when settings are applied without a selection.
const NO_CAMERA = "null"

// SettingsForm holds the raw settings inputs.
type SettingsForm struct {
	RecordLength string
	FileSize     string
}

// ToggleSettingsMenu flips the settings menu's visibility.
func (p *Panel) ToggleSettingsMenu() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.settingsVisible = !p.settingsVisible
}

// SettingsMenuVisible reports whether the settings menu is shown.
func (p *Panel) SettingsMenuVisible() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.settingsVisible
}

// ApplySettings posts the form verbatim for the selected camera. Failures are only
// logged and leave the panel untouched.
func (p *Panel) ApplySettings(ctx context.Context, form SettingsForm) error {
	cameraId, ok := p.Viewer().Selected()
	if !ok {
		cameraId = NO_CAMERA
	}

	err := p.api.ApplySettings(ctx, cameraId, setif.ApplySettingsRequest{
		RecordLength: form.RecordLength,
		FileSize:     form.FileSize,
	})
	if err != nil {
		log.Printf("Failed to apply settings for camera[%s]: %v\n", cameraId, err)
	}
	return err
}
