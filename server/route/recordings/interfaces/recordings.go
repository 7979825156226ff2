package interfaces

type ListRecordingsResponse struct {
	Recordings []string `json:"recordings"`
}
