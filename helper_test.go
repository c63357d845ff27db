package tracker

import "testing"

// testLedger returns a ledger whose clock is pinned to 'today', so defaulted
// dates and sample data are deterministic.
func testLedger(today string) *Ledger {
	l := NewLedger()
	on := MustParseDate(today)
	l.nowFn = func() Date { return on }
	return l
}

func mustAdd(t *testing.T, l *Ledger, tx Transaction) Transaction {
	t.Helper()
	got, err := l.Add(tx)
	if err != nil {
		t.Fatalf("Add(%q) returned error: %v", tx.Title, err)
	}
	return got
}

// tx is a compact fixture builder for tests.
func tx(title string, amount float64, cat Category, date string, typ TxType) Transaction {
	return Transaction{
		Title:    title,
		Amount:   A(amount),
		Category: cat,
		Date:     MustParseDate(date),
		Type:     typ,
	}
}
