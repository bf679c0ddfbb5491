package models

// Flight represents a scheduled flight in the catalog
type Flight struct {
	FlightNo       string  `json:"flightNo"`
	Destination    string  `json:"destination"`
	DayTime        string  `json:"dayTime"`
	Distance       string  `json:"distance"`
	Plane          string  `json:"plane"`
	Duration       string  `json:"duration"`
	Capacity       int     `json:"capacity"`
	AvailableSeats int     `json:"availableSeats"`
	Price          float64 `json:"price"`
}

// Aircraft represents a plane model flights can be scheduled on
type Aircraft struct {
	Model      string   `json:"model"`
	TotalSeats int      `json:"totalSeats"`
	Features   []string `json:"features,omitempty"`
}

// SeatState is a single cell of a flight's seat grid
type SeatState struct {
	Seat   string     `json:"seat"`
	Row    int        `json:"row"`
	Column string     `json:"column"`
	Status SeatStatus `json:"status"`
}

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusBooked    SeatStatus = "booked"
)
