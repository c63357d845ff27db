package tracker

import (
	"fmt"
	"math"
	"time"
)

// SavingsDirection discriminates the two savings movements in the history log.
type SavingsDirection string

const (
	SavingsDeposit  SavingsDirection = "deposit"
	SavingsWithdraw SavingsDirection = "withdraw"
)

// SavingsEntry is one line of the savings audit trail.
type SavingsEntry struct {
	Time        time.Time        `json:"timestamp"`
	Amount      Amount           `json:"amount"`
	Direction   SavingsDirection `json:"direction"`
	Description string           `json:"description,omitempty"`
}

// SavingsAccount is the singleton secondary balance linked to the ledger.
//
// Current is mutated directly by the operations; History is an append-only
// side log, not the source of truth. Each successful deposit or withdrawal
// also synthesizes a Savings-category transaction in the ledger, which keeps
// ledger and savings in sync going forward. The link is one-way: removing a
// synthesized transaction from the ledger afterwards does not adjust Current.
type SavingsAccount struct {
	Current       Amount         `json:"current"`
	Goal          Amount         `json:"goal"`          // zero means unset
	MonthlyTarget Amount         `json:"monthlyTarget"` // informational, never enforced
	History       []SavingsEntry `json:"history,omitempty"`

	nowFn func() time.Time
}

// NewSavingsAccount creates an empty savings account.
func NewSavingsAccount() *SavingsAccount {
	return &SavingsAccount{nowFn: time.Now}
}

func (s *SavingsAccount) now() time.Time {
	if s.nowFn == nil {
		return time.Now()
	}
	return s.nowFn()
}

// SetGoal replaces the target balance.
func (s *SavingsAccount) SetGoal(a Amount) error {
	if !a.IsPositive() {
		return fmt.Errorf("%w: goal must be greater than zero, got %s", ErrValidation, a)
	}
	s.Goal = a.Round2()
	return nil
}

// SetMonthlyTarget replaces the informational monthly saving target.
func (s *SavingsAccount) SetMonthlyTarget(a Amount) error {
	if !a.IsPositive() {
		return fmt.Errorf("%w: monthly target must be greater than zero, got %s", ErrValidation, a)
	}
	s.MonthlyTarget = a.Round2()
	return nil
}

// Deposit moves money from the ledger balance into savings. The available
// balance is the ledger-derived balance supplied by the caller: a deposit can
// never exceed what the ledger says is there. On success the savings balance
// grows, the history gets an entry and an expense transaction
// "Transfer to Savings" is synthesized in the ledger. All checks happen
// before any mutation.
func (s *SavingsAccount) Deposit(l *Ledger, amount, available Amount) (Transaction, error) {
	amount = amount.Round2()
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: deposit must be greater than zero, got %s", ErrValidation, amount)
	}
	if amount.GreaterThan(available) {
		return Transaction{}, fmt.Errorf("%w: deposit %s exceeds available balance %s", ErrInsufficientFunds, amount, available)
	}

	tx := NewTransaction("Transfer to Savings", amount, Savings, l.nowFn(), Expense, "Savings deposit")
	s.Current = s.Current.Add(amount)
	s.History = append(s.History, SavingsEntry{
		Time:        s.now(),
		Amount:      amount,
		Direction:   SavingsDeposit,
		Description: "Transfer to Savings",
	})
	l.append(tx)
	return tx, nil
}

// Withdraw moves money from savings back to the ledger balance. On success
// the savings balance shrinks, the history gets an entry and an income
// transaction "Withdrawal from Savings" is synthesized in the ledger.
func (s *SavingsAccount) Withdraw(l *Ledger, amount Amount) (Transaction, error) {
	amount = amount.Round2()
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: withdrawal must be greater than zero, got %s", ErrValidation, amount)
	}
	if amount.GreaterThan(s.Current) {
		return Transaction{}, fmt.Errorf("%w: withdrawal %s exceeds savings balance %s", ErrInsufficientFunds, amount, s.Current)
	}

	tx := NewTransaction("Withdrawal from Savings", amount, Savings, l.nowFn(), Income, "Savings withdrawal")
	s.Current = s.Current.Sub(amount)
	s.History = append(s.History, SavingsEntry{
		Time:        s.now(),
		Amount:      amount,
		Direction:   SavingsWithdraw,
		Description: "Withdrawal from Savings",
	})
	l.append(tx)
	return tx, nil
}

// PercentOfGoal returns the progress towards the goal rounded to the nearest
// whole percent, or false while the goal is unset.
func (s *SavingsAccount) PercentOfGoal() (Percent, bool) {
	if !s.Goal.IsPositive() {
		return 0, false
	}
	return Percent(math.Round(s.Current.Float64() / s.Goal.Float64() * 100)), true
}
