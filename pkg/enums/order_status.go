package enums

// OrderStatus tracks an order through its lifecycle.
type OrderStatus int

const (
	OrderStatusNew       OrderStatus = 1
	OrderStatusConfirmed OrderStatus = 2
	OrderStatusShipping  OrderStatus = 3
	OrderStatusCompleted OrderStatus = 4
	OrderStatusCancelled OrderStatus = 5
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusNew:
		return "new"
	case OrderStatusConfirmed:
		return "confirmed"
	case OrderStatusShipping:
		return "shipping"
	case OrderStatusCompleted:
		return "completed"
	case OrderStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusNew && s <= OrderStatusCancelled
}
