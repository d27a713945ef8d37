package domain

// Address is a delivery address owned by the account subsystem and consumed read-only by
// checkout.
type Address struct {
	ID      string `json:"id,omitempty"`
	Label   string `json:"label,omitempty"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
	Line    string `json:"addressLine"`
}
