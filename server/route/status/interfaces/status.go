package interfaces

type RateResponse struct {
	Rate float64 `json:"rate"`
}

type SignalStrengthResponse struct {
	Strength string `json:"strength"`
}
