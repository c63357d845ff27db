// Package tracker implements the bookkeeping engine behind ExpenseTrackerPro.
// It is designed to be local-first and embeddable: the presentation layer
// collects user input and calls into this package, which owns all of the
// actual logic.
//
// The core functionalities include:
//   - Ledger Management: Recording income and expense transactions in an
//     ordered, most-recent-first collection with full-record updates and
//     unconditional deletes.
//   - Derived Views: Stateless recomputation of totals, category breakdowns,
//     monthly buckets, and filtered listings from a ledger snapshot.
//   - Savings Account: A secondary balance with goal tracking whose deposits
//     and withdrawals synthesize linked ledger transactions.
//   - Currency Display: Formatting amounts in a user-selected currency.
//     Switching the display currency relabels amounts, it never converts them.
//   - Import/Export: Lenient CSV ingestion and CSV/JSON report generation.
//   - Data Persistence: A small key-value contract for host applications,
//     with a JSON file implementation included.
package tracker
