package cart

import (
	"github.com/quickbite/storefront/services/cartapi"
)

// Phase describes where the cart is in its lifecycle. It is advisory for the
// web layer; the entries themselves are only ever replaced with what the
// remote cart service returned.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseHydrating
	PhaseReady
	PhaseMutating
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseHydrating:
		return "hydrating"
	case PhaseReady:
		return "ready"
	case PhaseMutating:
		return "mutating"
	}
	return "unknown"
}

// CartState is the in-memory cart together with the identity that owns it.
// OwnerUID is empty while no signed-in user has been observed.
type CartState struct {
	OwnerUID string
	Phase    Phase
	Entries  []cartapi.CartLine
}

// TotalItems sums the quantities of all lines that still have a product
// attached. Lines whose product was deleted remotely do not count.
func (s CartState) TotalItems() int {
	total := 0
	for _, line := range s.Entries {
		if line.Product == nil {
			continue
		}
		total += line.Quantity
	}
	return total
}

// TotalAmount is the cart total in the smallest currency unit.
func (s CartState) TotalAmount() int {
	total := 0
	for _, line := range s.Entries {
		if line.Product == nil {
			continue
		}
		total += line.Product.Price * line.Quantity
	}
	return total
}

// VisibleEntries returns the lines the shop can render: those with a product.
func (s CartState) VisibleEntries() []cartapi.CartLine {
	visible := make([]cartapi.CartLine, 0, len(s.Entries))
	for _, line := range s.Entries {
		if line.Product == nil {
			continue
		}
		visible = append(visible, line)
	}
	return visible
}

// CachedCart is the locally persisted mirror of the last known server cart.
// It only serves to warm-start the UI before the first fetch completes and is
// never treated as authoritative.
type CachedCart struct {
	OwnerUID string             `json:"ownerUid"`
	Entries  []cartapi.CartLine `json:"entries"`
}

const currentCartKey = "current"
