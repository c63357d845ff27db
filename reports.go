package tracker

import "sort"

// This file contains the derived views: pure functions over a ledger
// snapshot. Nothing here is cached or persisted; every caller recomputes from
// the current collection, which keeps the functions referentially transparent
// and trivially testable.

// Summary provides the at-a-glance money totals derived from a snapshot.
type Summary struct {
	TotalIncome   Amount
	TotalExpenses Amount
	// Balance is TotalIncome - TotalExpenses.
	Balance Amount
	// TotalSavingsDeposits is the sum of expense-type, Savings-category
	// transactions, i.e. the money moved into the savings account.
	TotalSavingsDeposits Amount
	// RemainingBalance is TotalIncome - (TotalExpenses + TotalSavingsDeposits).
	// TotalExpenses already contains the savings deposits, so they are
	// subtracted twice. That reproduces the historical behavior of the
	// application; see Ledger.Remove for the matching asymmetry.
	RemainingBalance Amount
	// NetWorth is Balance plus the savings account balance.
	NetWorth Amount
}

// NewSummary computes the summary totals from a transaction snapshot and the
// current savings balance.
func NewSummary(txs []Transaction, savingsCurrent Amount) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(tx.Amount)
			if tx.Category == Savings {
				s.TotalSavingsDeposits = s.TotalSavingsDeposits.Add(tx.Amount)
			}
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	s.RemainingBalance = s.TotalIncome.Sub(s.TotalExpenses.Add(s.TotalSavingsDeposits))
	s.NetWorth = s.Balance.Add(savingsCurrent)
	return s
}

// CategoryTotals sums expense amounts per category. Income is excluded.
func CategoryTotals(txs []Transaction) map[Category]Amount {
	totals := make(map[Category]Amount)
	for _, tx := range txs {
		if tx.Type != Expense {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// CategoryShare is one category's slice of total spending.
type CategoryShare struct {
	Category Category
	Total    Amount
	Share    Percent
}

// CategoryBreakdown returns the expense totals per category with their share
// of total spending, largest first. When there are no expenses at all every
// share is 0, never NaN.
func CategoryBreakdown(txs []Transaction) []CategoryShare {
	totals := CategoryTotals(txs)
	var grand Amount
	for _, t := range totals {
		grand = grand.Add(t)
	}

	shares := make([]CategoryShare, 0, len(totals))
	for cat, t := range totals {
		var share Percent
		if !grand.IsZero() {
			share = Percent(t.Float64() / grand.Float64() * 100)
		}
		shares = append(shares, CategoryShare{Category: cat, Total: t, Share: share})
	}
	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Total.Equal(shares[j].Total) {
			return shares[i].Total.GreaterThan(shares[j].Total)
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// MonthlyFlow is the income/expense pair for one month.
type MonthlyFlow struct {
	Income   Amount
	Expenses Amount
}

// MonthlyData buckets the snapshot by "YYYY-MM" month key. Dates are
// normalized at ingestion, so the key is always well-formed here.
func MonthlyData(txs []Transaction) map[string]MonthlyFlow {
	months := make(map[string]MonthlyFlow)
	for _, tx := range txs {
		key := tx.Date.MonthKey()
		flow := months[key]
		if tx.Type == Income {
			flow.Income = flow.Income.Add(tx.Amount)
		} else {
			flow.Expenses = flow.Expenses.Add(tx.Amount)
		}
		months[key] = flow
	}
	return months
}

// TypeFilter selects transactions by direction.
type TypeFilter string

const (
	FilterAll     TypeFilter = "all"
	FilterIncome  TypeFilter = "income"
	FilterExpense TypeFilter = "expense"
)

// TimeFilter selects transactions by a rolling day-count window measured
// from a reference date. The windows are not calendar-aligned: a transaction
// from 29 days ago passes PastMonth, one from 31 days ago does not.
type TimeFilter string

const (
	TimeAll     TimeFilter = "all"
	PastWeek    TimeFilter = "week"
	PastMonth   TimeFilter = "month"
	PastQuarter TimeFilter = "quarter"
)

// windowDays returns the inclusive day threshold of the filter, or -1 for no
// time filtering.
func (f TimeFilter) windowDays() int {
	switch f {
	case PastWeek:
		return 7
	case PastMonth:
		return 30
	case PastQuarter:
		return 90
	default:
		return -1
	}
}

// Filter returns the subset of the snapshot matching a type filter and a time
// window relative to 'now', preserving order. Future-dated transactions pass
// every time window, as their day difference is negative.
func Filter(txs []Transaction, typ TypeFilter, window TimeFilter, now Date) []Transaction {
	days := window.windowDays()
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if typ != FilterAll && tx.Type != TxType(typ) {
			continue
		}
		if days >= 0 && now.DaysSince(tx.Date) > days {
			continue
		}
		out = append(out, tx)
	}
	return out
}
