// Package location models the places an order passes through.
//
// A Location is a closed variant with two kinds:
//   - Destination: the final address of a delivery
//   - Repository: a named depot at an address
//
// Orders keep Location values for their origin and destination. The Repository
// aggregate additionally tracks its inventory, the set of orders currently held
// there. The inventory is a reference set of order identifiers; the orders are
// owned by the order registry.
package location
