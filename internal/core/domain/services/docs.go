// Package services provides domain services that coordinate several aggregates
// of the parcel system in one business operation.
//
// The package includes:
//   - DeliveryTracker: records staff reports in an order's history and moves the
//     order between the reference sets of repositories and vehicles
//   - BillingPolicy: bills orders and issues bills at the moment their billing
//     timing asks for
//
// Services are stateless. Loading and saving the aggregates they touch is the
// caller's job.
package services
