package interfaces

// ApplySettingsRequest carries the settings form values verbatim. The server is the
// sole authority on how they are interpreted.
type ApplySettingsRequest struct {
	RecordLength string `json:"recordLength"`
	FileSize     string `json:"fileSize"`
}

type SettingsResponse struct {
	RecordLength string `json:"recordLength"`
	FileSize     string `json:"fileSize"`
}
