package domain

// Hotel mirrors one entry of the hotels file. Coordinates are kept as the
// source strings since nothing here does geo math.
type Hotel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Lat     string `json:"lat"`
	Lng     string `json:"lng"`
}
