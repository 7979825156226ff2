package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	camif "camdeck/v0/server/route/camera/interfaces"
	ptzif "camdeck/v0/server/route/ptz/interfaces"
	recif "camdeck/v0/server/route/recordings/interfaces"
	setif "camdeck/v0/server/route/settings/interfaces"
	statif "camdeck/v0/server/route/status/interfaces"
)

// invokeJSON invokes an endpoint and deserializes its response into out.
func (ctx *ClientHttpContext) invokeJSON(c context.Context, apiEndpoint, httpMethod string, requestBody, out interface{}) error {
	resBody, err := ctx.Invoke(c, apiEndpoint, httpMethod, requestBody)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resBody, out); err != nil {
		return fmt.Errorf("failed to deserialize %s response: %v", apiEndpoint, err)
	}
	return nil
}

// Ping invokes /ping, returning the raw response.
func (ctx *ClientHttpContext) Ping(c context.Context) (string, error) {
	resBody, err := ctx.Invoke(c, "ping", http.MethodGet, nil)
	if err != nil {
		return "", err
	}
	return string(resBody), nil
}

// ListCameras lists the cameras known to the server.
func (ctx *ClientHttpContext) ListCameras(c context.Context) ([]camif.CameraResponseBase, error) {
	resp := camif.ListCameraResponse{}
	if err := ctx.invokeJSON(c, "cameras", http.MethodGet, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cameras, nil
}

// ApplySettings posts the settings form to /settings/{cameraId}.
func (ctx *ClientHttpContext) ApplySettings(c context.Context, cameraId string, req setif.ApplySettingsRequest) error {
	_, err := ctx.Invoke(c, "settings/"+url.PathEscape(cameraId), http.MethodPost, req)
	return err
}

// GetSettings fetches the settings the server applied for a camera.
func (ctx *ClientHttpContext) GetSettings(c context.Context, cameraId string) (*setif.SettingsResponse, error) {
	resp := &setif.SettingsResponse{}
	if err := ctx.invokeJSON(c, "settings/"+url.PathEscape(cameraId), http.MethodGet, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// MovePTZ starts continuous motion on a camera.
func (ctx *ClientHttpContext) MovePTZ(c context.Context, cameraId string, cmd ptzif.MoveCommand) error {
	_, err := ctx.Invoke(c, fmt.Sprintf("ptz/%s/move", url.PathEscape(cameraId)), http.MethodPost, cmd)
	return err
}

// StopPTZ stops any motion on a camera. The request carries no body.
func (ctx *ClientHttpContext) StopPTZ(c context.Context, cameraId string) error {
	_, err := ctx.Invoke(c, fmt.Sprintf("ptz/%s/stop", url.PathEscape(cameraId)), http.MethodPost, nil)
	return err
}

// FrameRate fetches /status/frame_rate.
func (ctx *ClientHttpContext) FrameRate(c context.Context) (float64, error) {
	resp := statif.RateResponse{}
	if err := ctx.invokeJSON(c, "status/frame_rate", http.MethodGet, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Rate, nil
}

// StreamRate fetches /status/stream_rate.
func (ctx *ClientHttpContext) StreamRate(c context.Context) (float64, error) {
	resp := statif.RateResponse{}
	if err := ctx.invokeJSON(c, "status/stream_rate", http.MethodGet, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Rate, nil
}

// SignalStrength fetches /status/signal_strength.
func (ctx *ClientHttpContext) SignalStrength(c context.Context) (string, error) {
	resp := statif.SignalStrengthResponse{}
	if err := ctx.invokeJSON(c, "status/signal_strength", http.MethodGet, nil, &resp); err != nil {
		return "", err
	}
	return resp.Strength, nil
}

// ListRecordings fetches the recording names.
func (ctx *ClientHttpContext) ListRecordings(c context.Context) ([]string, error) {
	resp := recif.ListRecordingsResponse{}
	if err := ctx.invokeJSON(c, "recordings", http.MethodGet, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Recordings, nil
}

// RecordingPath returns the server-relative link of a recording.
func RecordingPath(name string) string {
	return "/recordings/" + url.PathEscape(name)
}

// DownloadRecording streams a recording into w.
// It returns the number of bytes written along with an error reflecting the failure state.
func (ctx *ClientHttpContext) DownloadRecording(c context.Context, name string, w io.Writer) (int64, error) {
	resp, err := ctx.HttpClient.R().
		SetContext(c).
		SetDoNotParseResponse(true).
		Get(RecordingPath(name))
	if err != nil {
		return 0, fmt.Errorf("failed to request recording '%s': %v", name, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return 0, &StatusError{
			Method:     http.MethodGet,
			Endpoint:   RecordingPath(name),
			StatusCode: resp.StatusCode(),
		}
	}

	n, err := io.Copy(w, body)
	if err != nil {
		return n, fmt.Errorf("failed to download recording '%s': %v", name, err)
	}
	return n, nil
}
