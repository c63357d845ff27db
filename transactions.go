package tracker

import (
	"strings"

	"github.com/google/uuid"
)

// TxType is a typed string discriminating the direction of a transaction.
type TxType string

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// ParseTxType reads a transaction type leniently: anything that is not
// recognizably income is an expense, matching the import defaults.
func ParseTxType(s string) TxType {
	if strings.ToLower(strings.TrimSpace(s)) == string(Income) {
		return Income
	}
	return Expense
}

// Category is one of the fixed set of spending/earning categories. The set is
// not user-extensible.
type Category string

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Utilities     Category = "Utilities"
	Entertainment Category = "Entertainment"
	Shopping      Category = "Shopping"
	Healthcare    Category = "Healthcare"
	Education     Category = "Education"
	Salary        Category = "Salary"
	Freelance     Category = "Freelance"
	Savings       Category = "Savings"
	Other         Category = "Other"
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		Food, Transport, Utilities, Entertainment, Shopping,
		Healthcare, Education, Salary, Freelance, Savings, Other,
	}
}

// ParseCategory matches a category name case-insensitively. Unknown names
// yield Other and false.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return Other, false
}

// Transaction is the atomic ledger record.
//
// Amount is a magnitude; the direction comes from Type. The id is immutable
// once the record is in the ledger.
type Transaction struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Amount      Amount   `json:"amount"`
	Category    Category `json:"category"`
	Date        Date     `json:"date"`
	Type        TxType   `json:"type"`
	Description string   `json:"description,omitempty"`
}

// NewTransaction builds a record with a fresh unique id.
func NewTransaction(title string, amount Amount, category Category, on Date, typ TxType, description string) Transaction {
	return Transaction{
		ID:          newID(),
		Title:       title,
		Amount:      amount,
		Category:    category,
		Date:        on,
		Type:        typ,
		Description: description,
	}
}

// Equal reports whether two transactions carry the same data. Amounts compare
// by value, not by internal representation.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Title == o.Title &&
		t.Amount.Equal(o.Amount) &&
		t.Category == o.Category &&
		t.Date == o.Date &&
		t.Type == o.Type &&
		t.Description == o.Description
}

// newID returns a collision-resistant unique transaction id. Two records
// created within the same instant still get distinct ids.
func newID() string { return uuid.NewString() }

// SampleTransactions returns the starter records offered to first-time users,
// dated 'on'.
func SampleTransactions(on Date) []Transaction {
	return []Transaction{
		NewTransaction("Monthly Salary", A(3500.00), Salary, on, Income, "Monthly paycheck"),
		NewTransaction("Grocery Shopping", A(245.75), Food, on, Expense, "Weekly groceries"),
		NewTransaction("Electric Bill", A(89.50), Utilities, on, Expense, "Monthly electricity"),
	}
}
