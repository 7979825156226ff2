package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	camif "camdeck/v0/server/route/camera/interfaces"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSource struct {
	stopped    []string
	stopErr    error
	rateErr    error
	recordings []string
}

func (s *fakeSource) FrameRate(ctx context.Context) (float64, error) {
	return 24, s.rateErr
}

func (s *fakeSource) StreamRate(ctx context.Context) (float64, error) {
	return 1.5, s.rateErr
}

func (s *fakeSource) SignalStrength(ctx context.Context) (string, error) {
	return "Moderate", nil
}

func (s *fakeSource) ListCameras(ctx context.Context) ([]camif.CameraResponseBase, error) {
	return []camif.CameraResponseBase{{Id: 0, Name: "porch"}, {Id: 1, Name: "garage"}}, nil
}

func (s *fakeSource) ListRecordings(ctx context.Context) ([]string, error) {
	return s.recordings, nil
}

func (s *fakeSource) StopPTZ(ctx context.Context, cameraId string) error {
	s.stopped = append(s.stopped, cameraId)
	return s.stopErr
}

func (s *fakeSource) URL(path string) string {
	return "http://cam.test" + path
}

func reply(t *testing.T, b *Bot, text string) []string {
	t.Helper()
	msg := &tgbotapi.Message{Text: text, Chat: &tgbotapi.Chat{ID: 42}}

	texts := []string{}
	for _, r := range b.Reply(msg) {
		m, ok := r.(tgbotapi.MessageConfig)
		if !ok {
			t.Fatalf("reply is %T, want MessageConfig", r)
		}
		if m.ChatID != 42 {
			t.Errorf("reply chat = %d, want 42", m.ChatID)
		}
		texts = append(texts, m.Text)
	}
	return texts
}

func TestReply_Status(t *testing.T) {
	b := newBot(context.Background(), nil, &fakeSource{})

	got := reply(t, b, "/status")
	want := "Frame rate: 24fps\nStream rate: 1.5Mbps\nSignal: Moderate [status-indicator yellow]"
	if len(got) != 1 || got[0] != want {
		t.Errorf("/status = %q, want %q", got, want)
	}

	b = newBot(context.Background(), nil, &fakeSource{rateErr: fmt.Errorf("down")})
	got = reply(t, b, "/status")
	if len(got) != 1 || !strings.Contains(got[0], "Frame rate: unavailable") {
		t.Errorf("/status with failing rates = %q", got)
	}
}

func TestReply_CamerasAndRecordings(t *testing.T) {
	b := newBot(context.Background(), nil, &fakeSource{recordings: []string{"a b.mp4"}})

	if got := reply(t, b, "/cameras"); len(got) != 1 || got[0] != "0: porch\n1: garage" {
		t.Errorf("/cameras = %q", got)
	}
	if got := reply(t, b, "/recordings@camdeck_bot"); len(got) != 1 || got[0] != "a b.mp4 - http://cam.test/recordings/a%20b.mp4" {
		t.Errorf("/recordings = %q", got)
	}
}

func TestReply_Stop(t *testing.T) {
	src := &fakeSource{}
	b := newBot(context.Background(), nil, src)

	if got := reply(t, b, "/stop"); len(got) != 1 || !strings.HasPrefix(got[0], "Usage") {
		t.Errorf("/stop without id = %q", got)
	}
	if got := reply(t, b, "/stop 3"); len(got) != 1 || got[0] != "Camera 3 stopped." {
		t.Errorf("/stop 3 = %q", got)
	}
	if len(src.stopped) != 1 || src.stopped[0] != "3" {
		t.Errorf("stopped = %v, want [3]", src.stopped)
	}
}

func TestReply_UnknownAndPlainText(t *testing.T) {
	b := newBot(context.Background(), nil, &fakeSource{})

	got := reply(t, b, "/snap")
	if len(got) != 2 || got[0] != "Unknown command 'snap'" {
		t.Fatalf("/snap = %q", got)
	}
	for _, name := range []string{"/help", "/status", "/cameras", "/recordings", "/stop <cameraId>"} {
		if !strings.Contains(got[1], name) {
			t.Errorf("help missing %s", name)
		}
	}

	if got := reply(t, b, "hello"); len(got) != 0 {
		t.Errorf("plain text got replies %q", got)
	}
}
