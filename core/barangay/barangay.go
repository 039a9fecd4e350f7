package barangay

type Barangay struct {
	ID           string `json:"id" db:"barangay_id"`
	Name         string `json:"name" db:"name"`
	Municipality string `json:"municipality" db:"municipality"`
}
