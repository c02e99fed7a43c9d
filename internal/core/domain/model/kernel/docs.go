// Package kernel provides core domain primitives shared by every aggregate of the
// parcel system.
//
// The package includes:
//   - CustomerID, OrderID, BillID, StaffID: sequence-based identifiers with fixed,
//     human-readable formats (C00042, O0000000000042, B000420003, S00007)
//   - UUID: a value object used where an identity has no business format, such as
//     the entries of an order's history log
//   - OrderSet: a set of order identifiers held by vehicles and repositories
//   - PasswordHash: a bcrypt hash; plaintext passwords are never kept
//
// Identifiers are immutable value objects. Their zero values are invalid and are
// rejected by Validate, so an aggregate restored from storage with a missing or
// malformed identifier fails loudly instead of carrying it around.
package kernel
