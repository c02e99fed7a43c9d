// Package order provides the Order aggregate root of the parcel system together
// with the value types it owns.
//
// The package includes:
//   - Order: identity, payer, service level, route, package, fee, bill reference,
//     billing timing, status and the append-only history log
//   - Package: physical attributes of the shipment
//   - Service, SizeClass, WeightClass: the fee tables
//   - Entry: the closed set of history events (Arrival, Transit, Other)
//   - Status: the delivery status, changed only by new history entries
//   - BillingTiming: when an order's fee is invoiced
//
// Key business rules:
//   - The fee is computed on first access and memoised
//   - The due date is the collection date plus the service's day offset
//   - An order is attached to at most one bill
//   - Arrival at a destination delivers the order; arrival at a repository does not
//   - Broken, missing and delayed reports set the status before the event is logged
package order
