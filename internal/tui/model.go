// tui package is the terminal control panel: a grid of camera tiles, a fullscreen
// viewer with its PTZ bar, the settings & recordings menus and the status ribbon.
package tui

import (
	"context"
	"fmt"
	"image"
	"log"
	"os/exec"
	"strconv"
	"time"

	"camdeck/v0/internal/config"
	"camdeck/v0/pkg/panel"
	"camdeck/v0/pkg/status"
	camif "camdeck/v0/server/route/camera/interfaces"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Client is the part of the server contract the TUI reads directly.
type Client interface {
	ListCameras(ctx context.Context) ([]camif.CameraResponseBase, error)
	FetchFrame(ctx context.Context, src string) (image.Image, error)
	URL(path string) string
}

type Options struct {
	Context context.Context
	Panel   *panel.Panel
	Client  Client

	FrameInterval time.Duration

	// Terminals report no key release. A held PTZ key is released once its repeats
	// stop for this long.
	PtzRelease time.Duration

	// Optional command opening recording links, ie. xdg-open.
	OpenCommand string
}

// Messages
type camerasMsg struct {
	cameras []camif.CameraResponseBase
	err     error
}

type frameMsg struct {
	src string
	img image.Image
	err error
}

type frameTickMsg struct {
	src string
}

// RibbonMsg carries a refreshed status ribbon into the program.
type RibbonMsg status.Ribbon

type releaseMsg struct {
	seq int
}

// The panel logs failures of these calls; the menus do not report them.
type recordingsMsg struct{}

type settingsMsg struct{}

type openedMsg struct {
	href string
	err  error
}

// Model
type Model struct {
	ctx    context.Context
	panel  *panel.Panel
	client Client
	opts   Options
	keys   keyMap

	cameras []camif.CameraResponseBase
	cursor  int

	// Fullscreen frame, for the current viewer source only.
	frame    image.Image
	frameErr error

	ribbon status.Ribbon

	// Keyboard PTZ hold.
	holding  bool
	heldDir  panel.Direction
	pressSeq int

	inputs          []textinput.Model
	focusedInput    int
	recordingCursor int

	notice string
	isErr  bool

	// Terminal dimensions
	width  int
	height int
}

// NewModel creates the panel model over an already constructed panel.
func NewModel(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second
	}
	if opts.PtzRelease <= 0 {
		opts.PtzRelease = 300 * time.Millisecond
	}

	recordLength := textinput.New()
	recordLength.Prompt = "Record length: "
	recordLength.Placeholder = "seconds"
	recordLength.CharLimit = 16

	fileSize := textinput.New()
	fileSize.Prompt = "File size:     "
	fileSize.Placeholder = "MB"
	fileSize.CharLimit = 16

	return Model{
		ctx:    opts.Context,
		panel:  opts.Panel,
		client: opts.Client,
		opts:   opts,
		keys:   defaultKeyMap(),
		inputs: []textinput.Model{recordLength, fileSize},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.listCameras,
		tea.SetWindowTitle("camdeck"),
	)
}

func (m Model) listCameras() tea.Msg {
	cameras, err := m.client.ListCameras(m.ctx)
	return camerasMsg{cameras: cameras, err: err}
}

func (m Model) fetchFrame(src string) tea.Cmd {
	return func() tea.Msg {
		img, err := m.client.FetchFrame(m.ctx, src)
		return frameMsg{src: src, img: img, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case camerasMsg:
		if msg.err != nil {
			log.Printf("Failed to list cameras: %v\n", msg.err)
			m.setNotice(fmt.Sprintf("failed to list cameras: %v", msg.err), true)
			return m, nil
		}
		m.cameras = msg.cameras
		if m.cursor >= len(m.cameras) {
			m.cursor = 0
		}
		return m, nil

	case RibbonMsg:
		m.ribbon = status.Ribbon(msg)
		return m, nil

	case frameTickMsg:
		if m.panel.Viewer().Source() != msg.src {
			return m, nil
		}
		return m, m.fetchFrame(msg.src)

	case frameMsg:
		// Frames of a previous source arrive after the viewer moved on.
		if m.panel.Viewer().Source() != msg.src {
			return m, nil
		}
		if msg.err != nil {
			if config.Verbose {
				log.Printf("Failed to fetch frame from '%s': %v\n", msg.src, msg.err)
			}
			m.frameErr = msg.err
		} else {
			m.frame, m.frameErr = msg.img, nil
		}
		src := msg.src
		return m, tea.Tick(m.opts.FrameInterval, func(time.Time) tea.Msg {
			return frameTickMsg{src: src}
		})

	case releaseMsg:
		if m.holding && msg.seq == m.pressSeq {
			m.releaseHold()
		}
		return m, nil

	case recordingsMsg:
		m.recordingCursor = 0
		return m, nil

	case settingsMsg:
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("failed to open %s: %v", msg.href, msg.err), true)
		} else {
			m.setNotice("opened "+msg.href, false)
		}
		return m, nil
	}

	// Keep the focused input's cursor blinking.
	if m.panel.SettingsMenuVisible() {
		var cmd tea.Cmd
		m.inputs[m.focusedInput], cmd = m.inputs[m.focusedInput].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setNotice(notice string, isErr bool) {
	m.notice = notice
	m.isErr = isErr
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.releaseHold()
		return m, tea.Quit
	}

	switch {
	case m.panel.SettingsMenuVisible():
		return m.handleSettingsKey(msg)
	case m.panel.RecordingsMenuVisible():
		return m.handleRecordingsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.releaseHold()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Settings):
		return m.toggleSettings()
	case key.Matches(msg, m.keys.Recordings):
		return m, m.toggleRecordings
	}

	if m.panel.Viewer().Visible() {
		return m.handleViewerKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.cameras)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(m.cameras) {
			return m.openCamera(m.cursor)
		}
	}
	return m, nil
}

func (m Model) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if dir, ok := m.keys.ptzDirection(msg); ok {
		return m.pressDirection(dir)
	}

	switch {
	case key.Matches(msg, m.keys.Release):
		m.releaseHold()
	case key.Matches(msg, m.keys.Close):
		// A held key would otherwise be released after the camera is deselected.
		m.releaseHold()
		m.panel.CloseFullScreen()
		m.frame, m.frameErr = nil, nil
	}
	return m, nil
}

// pressDirection presses dir on the selected camera. Key repeats of the held direction
// only postpone the synthesized release.
func (m Model) pressDirection(dir panel.Direction) (tea.Model, tea.Cmd) {
	m.pressSeq++
	if !m.holding || m.heldDir != dir {
		if !m.panel.Press(panel.NewEvent(), dir) {
			return m, nil
		}
		m.holding, m.heldDir = true, dir
	}

	seq := m.pressSeq
	return m, tea.Tick(m.opts.PtzRelease, func(time.Time) tea.Msg {
		return releaseMsg{seq: seq}
	})
}

func (m *Model) releaseHold() {
	if !m.holding {
		return
	}
	m.holding = false
	m.panel.Release()
}

// openCamera opens the fullscreen viewer on the idx-th camera's feed.
func (m Model) openCamera(idx int) (tea.Model, tea.Cmd) {
	cam := m.cameras[idx]
	m.cursor = idx
	m.frame, m.frameErr = nil, nil
	m.panel.OpenFullScreen(cam.Feed, strconv.Itoa(cam.Id))
	return m, m.fetchFrame(cam.Feed)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// A release anywhere stops the selected camera.
	if msg.Action == tea.MouseActionRelease {
		m.holding = false
		m.panel.Release()
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.panel.SettingsMenuVisible() || m.panel.RecordingsMenuVisible() {
		return m, nil
	}

	if m.panel.Viewer().Visible() {
		if msg.Y == ptzBarLine(m.height) {
			if dir, ok := buttonAt(msg.X, 0); ok {
				m.panel.Press(panel.NewEvent(), dir)
			}
		}
		return m, nil
	}

	idx, row, ok := tileAt(msg.Y, len(m.cameras))
	if !ok {
		return m, nil
	}

	// Tile PTZ buttons consume the click so the tile does not also open.
	ev := panel.NewEvent()
	if row == tileButtonRow {
		if dir, ok := buttonAt(msg.X, tileIndent); ok {
			m.panel.SendPTZCommand(ev, strconv.Itoa(m.cameras[idx].Id), dir.Vector())
		}
	}
	if !ev.Propagates() {
		m.cursor = idx
		return m, nil
	}
	return m.openCamera(idx)
}

func (m Model) toggleSettings() (tea.Model, tea.Cmd) {
	m.panel.ToggleSettingsMenu()
	if !m.panel.SettingsMenuVisible() {
		m.inputs[m.focusedInput].Blur()
		return m, nil
	}

	m.focusedInput = 0
	m.inputs[1].Blur()
	return m, m.inputs[0].Focus()
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.toggleSettings()

	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		m.inputs[m.focusedInput].Blur()
		if key.Matches(msg, m.keys.NextField) {
			m.focusedInput = (m.focusedInput + 1) % len(m.inputs)
		} else {
			m.focusedInput = (m.focusedInput + len(m.inputs) - 1) % len(m.inputs)
		}
		return m, m.inputs[m.focusedInput].Focus()

	case key.Matches(msg, m.keys.Open):
		form := panel.SettingsForm{
			RecordLength: m.inputs[0].Value(),
			FileSize:     m.inputs[1].Value(),
		}
		return m, func() tea.Msg {
			m.panel.ApplySettings(m.ctx, form)
			return settingsMsg{}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusedInput], cmd = m.inputs[m.focusedInput].Update(msg)
	return m, cmd
}

func (m Model) toggleRecordings() tea.Msg {
	m.panel.ToggleRecordingsMenu(m.ctx)
	return recordingsMsg{}
}

func (m Model) handleRecordingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	links := m.panel.Recordings()

	switch {
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Recordings):
		return m, m.toggleRecordings
	case key.Matches(msg, m.keys.Quit):
		m.releaseHold()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.recordingCursor > 0 {
			m.recordingCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.recordingCursor < len(links)-1 {
			m.recordingCursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.recordingCursor < len(links) {
			return m.openLink(links[m.recordingCursor])
		}
	}
	return m, nil
}

// openLink hands a recording's absolute url to the open command, outside the panel.
// Without one the url is only shown.
func (m Model) openLink(link panel.RecordingLink) (tea.Model, tea.Cmd) {
	href := m.client.URL(link.Href)
	if m.opts.OpenCommand == "" {
		m.setNotice(href, false)
		return m, nil
	}

	openCommand := m.opts.OpenCommand
	return m, func() tea.Msg {
		cmd := exec.Command(openCommand, href)
		err := cmd.Start()
		if err != nil {
			log.Printf("Failed to open recording '%s': %v\n", link.Name, err)
		} else {
			go cmd.Wait()
		}
		return openedMsg{href: href, err: err}
	}
}
