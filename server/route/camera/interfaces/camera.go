package interfaces

// FEED_ENDPOINT_FMT is the relative source of a camera's MJPEG feed.
const FEED_ENDPOINT_FMT = "/video_feed/%d"

type CameraResponseBase struct {
	Id   int    `json:"id"`
	Name string `json:"name"`

	// Relative feed source, usable as the viewer's image source.
	Feed string `json:"feed"`
}

type ListCameraResponse struct {
	Cameras []CameraResponseBase `json:"cameras"`
}
