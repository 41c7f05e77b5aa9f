package enums

// SaleStatus toggles a sale window on or off without deleting it.
type SaleStatus int

const (
	SaleStatusInactive SaleStatus = 0
	SaleStatusActive   SaleStatus = 1
)

func (s SaleStatus) String() string {
	if s == SaleStatusActive {
		return "active"
	}
	return "inactive"
}

func (s SaleStatus) IsValid() bool {
	return s == SaleStatusInactive || s == SaleStatusActive
}
