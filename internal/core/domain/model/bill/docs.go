// Package bill provides the Bill aggregate, which collects the fees of one or
// more orders and tracks whether they were invoiced and paid.
//
// A bill moves through three states:
//
//	open ──Issue──> issued ──Pay──> paid
//
// Paying an open bill is allowed and skips the issued state.
//
// Bills come in two kinds. A standard bill gets its due date when issued,
// fifteen days later. A monthly bill aggregates a customer's orders over a
// month; its due date is fixed at construction to the 15th of the following
// month and it rejects new items once issued.
//
// Snapshot and FromSnapshot define the persisted form of a bill. A snapshot
// stores only the sequence suffix of the bill identifier; the owner's
// identifier supplies the rest on restore.
package bill
