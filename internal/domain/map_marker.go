package domain

type MarkerColor string

const (
	MarkerGreen  MarkerColor = "green"
	MarkerYellow MarkerColor = "yellow"
	MarkerRed    MarkerColor = "red"
)

type MapMarker struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Position     Position    `json:"position"`
	Slots        int         `json:"slots"` // available
	MaxSlots     int         `json:"max_slots"`
	PricePerHour float64     `json:"price_per_hour"`
	Color        MarkerColor `json:"color"`
	IconURL      string      `json:"icon_url"`
}

type MapView struct {
	Center  Position    `json:"center"`
	Zoom    int         `json:"zoom"`
	Markers []MapMarker `json:"markers"`
}
