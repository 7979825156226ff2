package panel

import (
	"context"
	"log"

	"camdeck/v0/internal/client"
)

// RecordingLink is a rendered entry of the recordings list.
type RecordingLink struct {
	Name string
	Href string

	// Links open outside the panel.
	NewTab bool
}

// ToggleRecordingsMenu hides a visible menu, or fetches the recordings and shows it.
// A failed fetch keeps the previous list but still shows the menu.
func (p *Panel) ToggleRecordingsMenu(ctx context.Context) error {
	if p.RecordingsMenuVisible() {
		p.mutex.Lock()
		p.recordingsVisible = false
		p.mutex.Unlock()
		return nil
	}

	names, err := p.api.ListRecordings(ctx)
	if err != nil {
		log.Printf("Failed to fetch recordings: %v\n", err)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if err == nil {
		links := make([]RecordingLink, 0, len(names))
		for _, name := range names {
			links = append(links, RecordingLink{
				Name:   name,
				Href:   client.RecordingPath(name),
				NewTab: true,
			})
		}
		p.recordings = links
	}
	p.recordingsVisible = true
	return err
}

// RecordingsMenuVisible reports whether the recordings menu is shown.
func (p *Panel) RecordingsMenuVisible() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.recordingsVisible
}

// Recordings returns a copy of the rendered list.
func (p *Panel) Recordings() []RecordingLink {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	links := make([]RecordingLink, len(p.recordings))
	copy(links, p.recordings)
	return links
}
