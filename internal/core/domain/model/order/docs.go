// Package order provides the Order aggregate root and the value types around it.
//
// The package includes:
//   - Order: identity, number, items, totals, contact and delivery snapshots, status history
//   - Status: a closed state machine with an explicit transition table
//   - Item: a priced line snapshot taken at checkout time
//   - HistoryEntry: one append-only record of a status change or an item edit
//   - Events: facts raised by the aggregate for outbox and post-commit processing
//
// Key business rules:
//   - totalAmount is always the sum of item subtotals; itemsCount the sum of quantities
//   - every status change appends exactly one history entry
//   - clients may only cancel, and only from new_order or processing
//   - items are editable only in new_order, processing and confirmed
//
// Stock bookkeeping is not done here. The application layer reads the lines an
// operation touched and applies them to the stock ledger inside the same transaction.
package order
