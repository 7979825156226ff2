package tui

import (
	"context"
	"fmt"
	"image"
	"strings"
	"testing"

	"camdeck/v0/pkg/panel"
	camif "camdeck/v0/server/route/camera/interfaces"
	ptzif "camdeck/v0/server/route/ptz/interfaces"
	setif "camdeck/v0/server/route/settings/interfaces"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeDispatcher struct {
	moves []string
	stops []string
}

func (d *fakeDispatcher) Move(cameraId string, cmd ptzif.MoveCommand) uint64 {
	d.moves = append(d.moves, fmt.Sprintf("%s:%d,%d,%d", cameraId, cmd.Pan, cmd.Tilt, cmd.Zoom))
	return uint64(len(d.moves) + len(d.stops))
}

func (d *fakeDispatcher) Stop(cameraId string) uint64 {
	d.stops = append(d.stops, cameraId)
	return uint64(len(d.moves) + len(d.stops))
}

type fakeAPI struct {
	recordings []string
	applied    []string
	err        error
}

func (a *fakeAPI) ApplySettings(ctx context.Context, cameraId string, req setif.ApplySettingsRequest) error {
	a.applied = append(a.applied, cameraId+":"+req.RecordLength+":"+req.FileSize)
	return a.err
}

func (a *fakeAPI) ListRecordings(ctx context.Context) ([]string, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.recordings, nil
}

type fakeClient struct {
	cameras []camif.CameraResponseBase
}

func (c *fakeClient) ListCameras(ctx context.Context) ([]camif.CameraResponseBase, error) {
	return c.cameras, nil
}

func (c *fakeClient) FetchFrame(ctx context.Context, src string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (c *fakeClient) URL(path string) string {
	return "http://cam.test" + path
}

type testPanel struct {
	model      Model
	panel      *panel.Panel
	dispatcher *fakeDispatcher
	api        *fakeAPI
}

func newTestPanel(t *testing.T) *testPanel {
	t.Helper()
	dispatcher := &fakeDispatcher{}
	api := &fakeAPI{recordings: []string{"a.mp4", "b.mp4"}}
	p, err := panel.New(panel.Options{API: api, PTZ: dispatcher})
	if err != nil {
		t.Fatalf("panel.New() error: %v", err)
	}

	c := &fakeClient{cameras: []camif.CameraResponseBase{
		{Id: 0, Name: "porch", Feed: "/video_feed/0"},
		{Id: 3, Name: "garage", Feed: "/video_feed/3"},
	}}
	tp := &testPanel{
		model:      NewModel(Options{Panel: p, Client: c}),
		panel:      p,
		dispatcher: dispatcher,
		api:        api,
	}
	tp.send(tea.WindowSizeMsg{Width: 80, Height: 30})
	tp.send(tp.model.listCameras())
	return tp
}

func (tp *testPanel) send(msg tea.Msg) tea.Cmd {
	next, cmd := tp.model.Update(msg)
	tp.model = next.(Model)
	return cmd
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runeMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func release() tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionRelease}
}

func TestGrid_EnterOpensFullScreen(t *testing.T) {
	tp := newTestPanel(t)

	tp.send(keyMsg(tea.KeyDown))
	cmd := tp.send(keyMsg(tea.KeyEnter))

	state := tp.panel.Viewer()
	if id, ok := state.Selected(); !ok || id != "3" {
		t.Fatalf("Selected() = %q, %v; want 3", id, ok)
	}
	if state.Source() != "/video_feed/3" {
		t.Errorf("Source() = %q", state.Source())
	}
	if cmd == nil {
		t.Fatal("opening fullscreen returned no frame fetch")
	}

	if next := tp.send(cmd()); next == nil {
		t.Error("frame did not schedule a refresh")
	}
	if tp.model.frame == nil {
		t.Error("frame not stored")
	}
}

func TestFrame_StaleSourceIgnored(t *testing.T) {
	tp := newTestPanel(t)
	tp.send(keyMsg(tea.KeyEnter))

	cmd := tp.send(frameMsg{src: "/video_feed/9", img: image.NewRGBA(image.Rect(0, 0, 1, 1))})
	if cmd != nil || tp.model.frame != nil {
		t.Error("frame of another source was accepted")
	}

	tp.send(keyMsg(tea.KeyEsc))
	if cmd := tp.send(frameTickMsg{src: "/video_feed/0"}); cmd != nil {
		t.Error("closed viewer kept fetching frames")
	}
}

func TestViewer_KeyRepeatPressesOnce(t *testing.T) {
	tp := newTestPanel(t)
	tp.send(keyMsg(tea.KeyDown))
	tp.send(keyMsg(tea.KeyEnter))

	for i := 0; i < 3; i++ {
		if cmd := tp.send(keyMsg(tea.KeyUp)); cmd == nil {
			t.Fatal("press did not schedule a release")
		}
	}
	if got := tp.dispatcher.moves; len(got) != 1 || got[0] != "3:0,1,0" {
		t.Fatalf("moves = %v, want [3:0,1,0]", got)
	}

	// Releases scheduled by earlier repeats are stale.
	tp.send(releaseMsg{seq: 1})
	if len(tp.dispatcher.stops) != 0 {
		t.Fatalf("stale release stopped the camera")
	}

	tp.send(releaseMsg{seq: tp.model.pressSeq})
	if got := tp.dispatcher.stops; len(got) != 1 || got[0] != "3" {
		t.Errorf("stops = %v, want [3]", got)
	}
}

func TestViewer_EscReleasesHeldKey(t *testing.T) {
	tp := newTestPanel(t)
	tp.send(keyMsg(tea.KeyEnter))
	tp.send(keyMsg(tea.KeyRight))
	tp.send(keyMsg(tea.KeyEsc))

	if got := tp.dispatcher.stops; len(got) != 1 || got[0] != "0" {
		t.Errorf("stops = %v, want [0]", got)
	}
	if tp.panel.Viewer().Visible() {
		t.Error("viewer still visible after esc")
	}
}

func TestViewer_MouseReleaseStops(t *testing.T) {
	tp := newTestPanel(t)
	tp.send(keyMsg(tea.KeyEnter))

	// Second button of the bar is up.
	tp.send(press(buttonWidth, ptzBarLine(30)))
	if got := tp.dispatcher.moves; len(got) != 1 || got[0] != "0:0,1,0" {
		t.Fatalf("moves = %v, want [0:0,1,0]", got)
	}

	tp.send(release())
	if got := tp.dispatcher.stops; len(got) != 1 || got[0] != "0" {
		t.Errorf("stops = %v, want [0]", got)
	}
}

func TestGrid_TileButtonDoesNotOpen(t *testing.T) {
	tp := newTestPanel(t)

	// Zoom-in button of the second tile.
	tp.send(press(tileIndent+4*buttonWidth, gridTop+tileHeight+tileButtonRow))
	if got := tp.dispatcher.moves; len(got) != 1 || got[0] != "3:0,0,1" {
		t.Fatalf("moves = %v, want [3:0,0,1]", got)
	}
	if tp.panel.Viewer().Visible() {
		t.Fatal("tile button click opened the viewer")
	}

	// A release with no selected camera sends nothing.
	tp.send(release())
	if len(tp.dispatcher.stops) != 0 {
		t.Errorf("stops = %v, want none", tp.dispatcher.stops)
	}

	tp.send(press(tileIndent, gridTop))
	if id, ok := tp.panel.Viewer().Selected(); !ok || id != "0" {
		t.Errorf("Selected() = %q, %v; want 0", id, ok)
	}
}

func TestRecordingsMenu_ListsLinks(t *testing.T) {
	tp := newTestPanel(t)

	cmd := tp.send(runeMsg("r"))
	if cmd == nil {
		t.Fatal("r returned no command")
	}
	tp.send(cmd())

	if !tp.panel.RecordingsMenuVisible() {
		t.Fatal("recordings menu not visible")
	}
	view := tp.model.View()
	for _, want := range []string{"a.mp4", "/recordings/b.mp4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	tp.send(keyMsg(tea.KeyDown))
	tp.send(keyMsg(tea.KeyEnter))
	if tp.model.notice != "http://cam.test/recordings/b.mp4" {
		t.Errorf("notice = %q, want the link's url", tp.model.notice)
	}

	tp.send(tp.send(keyMsg(tea.KeyEsc))())
	if tp.panel.RecordingsMenuVisible() {
		t.Error("recordings menu still visible")
	}
}

func TestSettingsMenu_AppliesWithoutSelection(t *testing.T) {
	tp := newTestPanel(t)

	tp.send(runeMsg("s"))
	if !tp.panel.SettingsMenuVisible() {
		t.Fatal("settings menu not visible")
	}
	tp.send(runeMsg("60"))
	tp.send(keyMsg(tea.KeyTab))
	tp.send(runeMsg("500"))

	cmd := tp.send(keyMsg(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	tp.send(cmd())

	if got := tp.api.applied; len(got) != 1 || got[0] != "null:60:500" {
		t.Errorf("applied = %v, want [null:60:500]", got)
	}
	if !tp.panel.SettingsMenuVisible() {
		t.Error("settings menu closed after apply")
	}
}

func TestMenus_FailuresShowNoNotice(t *testing.T) {
	tp := newTestPanel(t)
	tp.api.err = fmt.Errorf("server responded 500")

	tp.send(runeMsg("s"))
	tp.send(runeMsg("60"))
	tp.send(tp.send(keyMsg(tea.KeyEnter))())
	if len(tp.api.applied) != 1 {
		t.Fatalf("applied = %v, want one attempt", tp.api.applied)
	}
	if tp.model.notice != "" {
		t.Errorf("notice after failed apply = %q, want none", tp.model.notice)
	}
	if !tp.panel.SettingsMenuVisible() {
		t.Error("settings menu closed after failed apply")
	}

	tp.send(keyMsg(tea.KeyEsc))
	tp.send(tp.send(runeMsg("r"))())
	if tp.model.notice != "" {
		t.Errorf("notice after failed recordings fetch = %q, want none", tp.model.notice)
	}
	if !tp.panel.RecordingsMenuVisible() {
		t.Error("recordings menu hidden after failed fetch")
	}
}
