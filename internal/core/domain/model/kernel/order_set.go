package kernel

import "sort"

// OrderSet is a set of order identifiers. Vehicles and repositories hold one to
// record which orders are currently with them; the orders themselves live in the
// order registry.
type OrderSet map[OrderID]struct{}

// NewOrderSet builds a set from the given identifiers.
func NewOrderSet(ids ...OrderID) OrderSet {
	set := make(OrderSet, len(ids))
	set.Add(ids...)
	return set
}

func (s OrderSet) Add(ids ...OrderID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Remove deletes the identifiers, ignoring those not in the set.
func (s OrderSet) Remove(ids ...OrderID) {
	for _, id := range ids {
		delete(s, id)
	}
}

func (s OrderSet) Has(id OrderID) bool {
	_, ok := s[id]
	return ok
}

// Sorted lists the identifiers in ascending order.
func (s OrderSet) Sorted() []OrderID {
	ids := make([]OrderID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s OrderSet) Clone() OrderSet {
	clone := make(OrderSet, len(s))
	for id := range s {
		clone[id] = struct{}{}
	}
	return clone
}
