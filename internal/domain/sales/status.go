package sales

// OrderStatus represents the fulfilment status of a customer order.
// Only documents whose type has HasStatusFlow use it.
type OrderStatus string

const (
	StatusNew           OrderStatus = "new"
	StatusInPreparation OrderStatus = "in_preparation"
	StatusReady         OrderStatus = "ready"
	StatusInDelivery    OrderStatus = "in_delivery"
	StatusShipped       OrderStatus = "shipped"
	StatusCancelled     OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusInPreparation, StatusReady, StatusInDelivery, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states with no outgoing transitions
func (s OrderStatus) IsTerminal() bool {
	return s == StatusShipped || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// The pipeline is strictly linear; cancellation is reachable from any
// non-terminal state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == StatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case StatusNew:
		return target == StatusInPreparation
	case StatusInPreparation:
		return target == StatusReady
	case StatusReady:
		return target == StatusInDelivery
	case StatusInDelivery:
		return target == StatusShipped
	}
	return false
}

// Label returns the customer-facing French label used in notifications.
func (s OrderStatus) Label() string {
	switch s {
	case StatusNew:
		return "Nouvelle Commande"
	case StatusInPreparation:
		return "En cours de préparation"
	case StatusReady:
		return "Prête"
	case StatusInDelivery:
		return "En cours de livraison"
	case StatusShipped:
		return "Expédiée"
	case StatusCancelled:
		return "Annulée"
	}
	return string(s)
}
