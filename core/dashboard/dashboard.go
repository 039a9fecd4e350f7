package dashboard

// Chart is the parallel label/value shape consumed by the client-side
// charting library.
type Chart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Summary is the admin totals card.
type Summary struct {
	Users    int     `json:"users"`
	Products int     `json:"products"`
	Orders   int     `json:"orders"`
	Revenue  float64 `json:"revenue"`
}
