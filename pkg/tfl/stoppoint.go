package tfl

// StopPointTypes is the stop type filter used for nearest stop searches
const StopPointTypes = "NaptanPublicBusCoachTram"

// StopPointRadius is the search radius in metres
const StopPointRadius = 500

type StopPoint struct {
	ID         string   `json:"id"`
	NaptanID   string   `json:"naptanId"`
	CommonName string   `json:"commonName"`
	StopType   string   `json:"stopType"`
	Modes      []string `json:"modes"`
	Distance   float64  `json:"distance"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
}

type stopPointsResponse struct {
	StopPoints *[]StopPoint `json:"stopPoints"`
}
