package tracker

import (
	"fmt"
	"strings"
	"sync"
)

// Ledger holds the ordered collection of transactions.
//
// The collection is kept most-recent-first: new records are inserted at the
// head, which is the display convention of the application. The order is
// stable within a session.
//
// The engine has exactly one logical writer, but mutations are serialized
// with a lock anyway since add/update/remove do not commute with the
// synthesized inserts coming from the savings account.
type Ledger struct {
	mu           sync.RWMutex
	transactions []Transaction

	// nowFn supplies "today" for defaulted dates; tests override it.
	nowFn func() Date
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		nowFn:        Today,
	}
}

// validate checks the record invariants that manual entry must satisfy:
// a non-blank title and a strictly positive amount.
func validate(tx Transaction) error {
	if strings.TrimSpace(tx.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", ErrValidation, tx.Amount)
	}
	return nil
}

// normalize fills the defaulted fields of a validated record: id, date,
// category and type fall back to their defaults, and the amount is fixed to
// two fraction digits.
func (l *Ledger) normalize(tx Transaction) Transaction {
	if tx.ID == "" {
		tx.ID = newID()
	}
	if tx.Date.IsZero() {
		tx.Date = l.nowFn()
	}
	if _, ok := ParseCategory(string(tx.Category)); !ok {
		tx.Category = Other
	}
	tx.Type = ParseTxType(string(tx.Type))
	tx.Amount = tx.Amount.Round2()
	return tx
}

// Add validates and inserts a record at the head of the collection, assigning
// a unique id if the record has none. It returns the stored record.
func (l *Ledger) Add(tx Transaction) (Transaction, error) {
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}
	tx = l.normalize(tx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexLocked(tx.ID) >= 0 {
		return Transaction{}, fmt.Errorf("%w: duplicate id %q", ErrValidation, tx.ID)
	}
	l.transactions = append([]Transaction{tx}, l.transactions...)
	return tx, nil
}

// Update replaces the record with the given id wholesale. There is no partial
// patch: the stored record becomes the given one, keeping the original id.
func (l *Ledger) Update(id string, tx Transaction) (Transaction, error) {
	if err := validate(tx); err != nil {
		return Transaction{}, err
	}
	tx = l.normalize(tx)
	tx.ID = id // the stored id is immutable

	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(id)
	if i < 0 {
		return Transaction{}, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	l.transactions[i] = tx
	return tx, nil
}

// Remove deletes the record with the given id. Deletion is immediate and
// irreversible, and performs no referential check: removing a transaction
// synthesized by a savings transfer does not roll back the savings balance.
func (l *Ledger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
	return nil
}

// Clear empties the collection unconditionally.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = l.transactions[:0]
}

// List returns a copy of the collection, most recent first.
func (l *Ledger) List() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Len returns the number of records in the ledger.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.transactions)
}

// Get returns the record with the given id.
func (l *Ledger) Get(id string) (Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := l.indexLocked(id)
	if i < 0 {
		return Transaction{}, false
	}
	return l.transactions[i], true
}

// Seed replaces the collection with the sample starter records and returns them.
func (l *Ledger) Seed() []Transaction {
	samples := SampleTransactions(l.nowFn())
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append(l.transactions[:0], samples...)
	return samples
}

// append inserts records at the head without validation, preserving their
// relative order. This is the path used by CSV import, which is lenient by
// design and may insert zero amounts, and by the savings account after it
// has done its own checks.
func (l *Ledger) append(txs ...Transaction) {
	if len(txs) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append(append(make([]Transaction, 0, len(txs)+len(l.transactions)), txs...), l.transactions...)
}

// indexLocked returns the position of the record with the given id, or -1.
// The caller must hold the lock.
func (l *Ledger) indexLocked(id string) int {
	for i, tx := range l.transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}
