package client

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	camif "camdeck/v0/server/route/camera/interfaces"
)

// FetchFrame grabs a single still image from a viewer source. The source may be a
// plain image or an MJPEG multipart/x-mixed-replace stream, in which case only the
// first part is consumed and the stream is closed.
// It returns the decoded image along with an error reflecting the failure state.
func (ctx *ClientHttpContext) FetchFrame(c context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("empty frame source")
	}

	resp, err := ctx.HttpClient.R().
		SetContext(c).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "image/*, multipart/x-mixed-replace").
		Get(ctx.URL(src))
	if err != nil {
		return nil, fmt.Errorf("failed to request frame from '%s': %v", src, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &StatusError{
			Method:     http.MethodGet,
			Endpoint:   src,
			StatusCode: resp.StatusCode(),
		}
	}

	return DecodeFrame(resp.Header().Get("Content-Type"), body)
}

// DecodeFrame decodes the first image found in r given its content type.
func DecodeFrame(contentType string, r io.Reader) (image.Image, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err == nil && strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return nil, fmt.Errorf("multipart frame source without boundary")
		}

		part, err := multipart.NewReader(r, boundary).NextPart()
		if err != nil {
			return nil, fmt.Errorf("failed to read first stream part: %v", err)
		}
		defer part.Close()
		r = part
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %v", err)
	}
	return img, nil
}

// FeedCheck is the outcome of probing a camera's feed.
type FeedCheck struct {
	Camera camif.CameraResponseBase
	Bounds image.Rectangle
	Err    error
}

// CheckFeeds grabs one frame from each camera's feed, one camera at a time, each
// bounded by timeout when positive.
func (ctx *ClientHttpContext) CheckFeeds(c context.Context, cameras []camif.CameraResponseBase, timeout time.Duration) []FeedCheck {
	checks := make([]FeedCheck, 0, len(cameras))
	for _, cam := range cameras {
		checkCtx, cancel := c, context.CancelFunc(func() {})
		if timeout > 0 {
			checkCtx, cancel = context.WithTimeout(c, timeout)
		}

		check := FeedCheck{Camera: cam}
		img, err := ctx.FetchFrame(checkCtx, cam.Feed)
		cancel()
		if err != nil {
			check.Err = err
		} else {
			check.Bounds = img.Bounds()
		}
		checks = append(checks, check)
	}
	return checks
}
