package tracker

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestImportCSV(t *testing.T) {
	l := testLedger("2024-03-15")
	csv := `Title,Amount,Category,Date,Type,Description
"Coffee","$4.50","Food","2024-02-01","expense",""`

	n, err := ImportCSV(l, csv)
	if err != nil {
		t.Fatalf("ImportCSV() returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("ImportCSV() = %d rows, want 1", n)
	}

	got := l.List()[0]
	if got.ID == "" {
		t.Error("imported row has no id")
	}
	if got.Title != "Coffee" {
		t.Errorf("title = %q, want Coffee", got.Title)
	}
	if got.Amount.String() != "4.50" {
		t.Errorf("amount = %s, want 4.50 (symbol stripped)", got.Amount)
	}
	if got.Category != Food || got.Type != Expense {
		t.Errorf("category/type = %s/%s, want Food/expense", got.Category, got.Type)
	}
	if got.Date != MustParseDate("2024-02-01") {
		t.Errorf("date = %s, want 2024-02-01", got.Date)
	}
}

func TestImportCSVLenientDefaults(t *testing.T) {
	l := testLedger("2024-03-15")
	csv := `Title,Amount,Category,Date,Type,Description
"","garbage","Nonsense","not-a-date","INCOME?","note"
"Short row"`

	n, err := ImportCSV(l, csv)
	if err != nil {
		t.Fatalf("ImportCSV() returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("ImportCSV() = %d rows, want 2", n)
	}

	list := l.List()
	first := list[0]
	if first.Title != "Imported" {
		t.Errorf("defaulted title = %q, want Imported", first.Title)
	}
	// garbage amounts degrade to zero and are accepted without the manual-add check
	if first.Amount.String() != "0.00" {
		t.Errorf("defaulted amount = %s, want 0.00", first.Amount)
	}
	if first.Category != Other {
		t.Errorf("defaulted category = %q, want Other", first.Category)
	}
	if first.Date != MustParseDate("2024-03-15") {
		t.Errorf("defaulted date = %s, want today", first.Date)
	}
	if first.Type != Expense {
		t.Errorf("defaulted type = %q, want expense", first.Type)
	}
	if first.Description != "note" {
		t.Errorf("description = %q, want note", first.Description)
	}

	second := list[1]
	if second.Title != "Short row" || second.Amount.String() != "0.00" {
		t.Errorf("short row = %+v, want title kept and remaining fields defaulted", second)
	}

	// the zero-amount imports must aggregate without error
	sum := NewSummary(list, A(0))
	if !sum.TotalExpenses.IsZero() {
		t.Errorf("TotalExpenses = %s, want 0.00", sum.TotalExpenses)
	}
}

func TestImportCSVHeaderOrder(t *testing.T) {
	l := testLedger("2024-03-15")
	// columns shuffled and cased oddly: matching is positional by header name
	csv := `DATE,title,AMOUNT,type
"2024-02-02","Taxi","12.00","expense"`

	if _, err := ImportCSV(l, csv); err != nil {
		t.Fatalf("ImportCSV() returned error: %v", err)
	}
	got := l.List()[0]
	if got.Title != "Taxi" || got.Amount.String() != "12.00" || got.Date != MustParseDate("2024-02-02") {
		t.Errorf("imported row = %+v, want fields matched by header name", got)
	}
	if got.Category != Other {
		t.Errorf("missing category column = %q, want Other", got.Category)
	}
}

func TestImportCSVUnreadable(t *testing.T) {
	for _, input := range []string{"", "   \n\n  "} {
		l := testLedger("2024-03-15")
		if _, err := ImportCSV(l, input); !errors.Is(err, ErrImportParse) {
			t.Errorf("ImportCSV(%q) error = %v, want ErrImportParse", input, err)
		}
	}
}

func TestExportCSV(t *testing.T) {
	l := testLedger("2024-03-15")
	mustAdd(t, l, tx("Groceries", 245.75, Food, "2024-01-02", Expense))

	var sb strings.Builder
	if err := ExportCSV(&sb, l.List(), USD); err != nil {
		t.Fatalf("ExportCSV() returned error: %v", err)
	}
	want := "Date,Type,Category,Title,Amount,Description\n" +
		`"2024-01-02","expense","Food","Groceries","245.75",""`
	if got := sb.String(); got != want {
		t.Errorf("ExportCSV() =\n%s\nwant\n%s", got, want)
	}
}

// Exporting to CSV and importing the result must reproduce the same number
// of rows, with amounts equal within a cent.
func TestCSVRoundTrip(t *testing.T) {
	l := testLedger("2024-03-15")
	mustAdd(t, l, tx("Salary", 850, Salary, "2024-01-01", Income))
	mustAdd(t, l, tx("Groceries", 245.75, Food, "2024-01-02", Expense))
	mustAdd(t, l, tx("Coffee", 4.5, Food, "2024-01-03", Expense))

	var sb strings.Builder
	if err := ExportCSV(&sb, l.List(), USD); err != nil {
		t.Fatalf("ExportCSV() returned error: %v", err)
	}

	fresh := testLedger("2024-03-15")
	n, err := ImportCSV(fresh, sb.String())
	if err != nil {
		t.Fatalf("ImportCSV() returned error: %v", err)
	}
	if n != l.Len() {
		t.Fatalf("round trip imported %d rows, want %d", n, l.Len())
	}

	byTitle := make(map[string]Transaction)
	for _, tx := range fresh.List() {
		byTitle[tx.Title] = tx
	}
	for _, orig := range l.List() {
		got, ok := byTitle[orig.Title]
		if !ok {
			t.Errorf("round trip lost %q", orig.Title)
			continue
		}
		if diff := math.Abs(got.Amount.Float64() - orig.Amount.Float64()); diff > 0.01 {
			t.Errorf("%q amount = %s, want %s within 0.01", orig.Title, got.Amount, orig.Amount)
		}
		if got.Date != orig.Date || got.Type != orig.Type || got.Category != orig.Category {
			t.Errorf("%q round trip = %+v, want %+v", orig.Title, got, orig)
		}
		if got.ID == orig.ID {
			t.Errorf("%q kept its id across import, want a fresh one", orig.Title)
		}
	}
}

func TestExportJSON(t *testing.T) {
	l := testLedger("2024-01-15")
	mustAdd(t, l, tx("Salary", 3500, Salary, "2024-01-01", Income))
	mustAdd(t, l, tx("Groceries", 245.75, Food, "2024-01-02", Expense))
	s := testSavings()
	if err := s.SetGoal(A(5000)); err != nil {
		t.Fatalf("SetGoal: %v", err)
	}
	if err := s.SetMonthlyTarget(A(400)); err != nil {
		t.Fatalf("SetMonthlyTarget: %v", err)
	}
	if _, err := s.Deposit(l, A(500), A(3254.25)); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	var sb strings.Builder
	if err := ExportJSON(&sb, l.List(), s, USD, now); err != nil {
		t.Fatalf("ExportJSON() returned error: %v", err)
	}

	var doc struct {
		ExportedAt   string `json:"exportedAt"`
		Currency     string `json:"currency"`
		TotalIncome  string `json:"totalIncome"`
		Balance      string `json:"balance"`
		NetWorth     string `json:"netWorth"`
		Savings      struct {
			Current       string `json:"current"`
			Goal          string `json:"goal"`
			MonthlyTarget string `json:"monthlyTarget"`
			Progress      string `json:"progress"`
		} `json:"savings"`
		Transactions []Transaction `json:"transactions"`
	}
	if err := json.Unmarshal([]byte(sb.String()), &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v\n%s", err, sb.String())
	}

	if doc.ExportedAt != "2024-01-15T12:00:00Z" {
		t.Errorf("exportedAt = %q", doc.ExportedAt)
	}
	if doc.Currency != "USD" {
		t.Errorf("currency = %q, want USD", doc.Currency)
	}
	if doc.TotalIncome != "$3,500.00" {
		t.Errorf("totalIncome = %q, want $3,500.00", doc.TotalIncome)
	}
	if doc.Balance != "$2,754.25" {
		t.Errorf("balance = %q, want $2,754.25", doc.Balance)
	}
	// net worth = balance + savings
	if doc.NetWorth != "$3,254.25" {
		t.Errorf("netWorth = %q, want $3,254.25", doc.NetWorth)
	}
	if doc.Savings.Current != "$500.00" || doc.Savings.Goal != "$5,000.00" {
		t.Errorf("savings snapshot = %+v", doc.Savings)
	}
	// the monthly target renders in the display currency like its siblings
	if doc.Savings.MonthlyTarget != "$400.00" {
		t.Errorf("monthlyTarget = %q, want $400.00", doc.Savings.MonthlyTarget)
	}
	if doc.Savings.Progress != "10%" {
		t.Errorf("progress = %q, want 10%%", doc.Savings.Progress)
	}
	if len(doc.Transactions) != 3 {
		t.Errorf("exported %d transactions, want 3", len(doc.Transactions))
	}
}

func TestExportJSONGoalNotSet(t *testing.T) {
	var sb strings.Builder
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	if err := ExportJSON(&sb, nil, testSavings(), EUR, now); err != nil {
		t.Fatalf("ExportJSON() returned error: %v", err)
	}
	var doc struct {
		Savings struct {
			Progress string `json:"progress"`
		} `json:"savings"`
	}
	if err := json.Unmarshal([]byte(sb.String()), &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.Savings.Progress != "Not set" {
		t.Errorf("progress without a goal = %q, want \"Not set\"", doc.Savings.Progress)
	}

	// an unset monthly target is left out of the document entirely
	var raw struct {
		Savings map[string]json.RawMessage `json:"savings"`
	}
	if err := json.Unmarshal([]byte(sb.String()), &raw); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if _, ok := raw.Savings["monthlyTarget"]; ok {
		t.Error("monthlyTarget present without a target set, want omitted")
	}
}

func TestExportText(t *testing.T) {
	l := testLedger("2024-01-15")
	mustAdd(t, l, tx("Salary", 3500, Salary, "2024-01-01", Income))
	mustAdd(t, l, tx("Groceries", 245.75, Food, "2024-01-02", Expense))
	mustAdd(t, l, tx("Taxi", 12, Transport, "2024-01-03", Expense))
	s := testSavings()
	if _, err := s.Deposit(l, A(500), A(3242.25)); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	var sb strings.Builder
	if err := ExportText(&sb, l.List(), s, USD, MustParseDate("2024-01-15")); err != nil {
		t.Fatalf("ExportText() returned error: %v", err)
	}

	want := "Expense Report - Generated on 2024-01-15\n" +
		"\nSUMMARY:\n" +
		"• Total Income: $3,500.00\n" +
		"• Total Expenses: $757.75\n" +
		"• Net Balance: $2,742.25\n" +
		"• Savings: $500.00\n" +
		"\nRECENT TRANSACTIONS:\n" +
		"• 2024-01-15 - Transfer to Savings: $500.00 (expense)\n" +
		"• 2024-01-03 - Taxi: $12.00 (expense)\n" +
		"• 2024-01-02 - Groceries: $245.75 (expense)\n" +
		"• 2024-01-01 - Salary: $3,500.00 (income)\n" +
		"\nCATEGORY BREAKDOWN:\n" +
		"• Savings: $500.00\n" +
		"• Food: $245.75\n" +
		"• Transport: $12.00\n"
	if got := sb.String(); got != want {
		t.Errorf("ExportText() =\n%s\nwant\n%s", got, want)
	}
}

func TestExportTextRecentCap(t *testing.T) {
	l := testLedger("2024-01-15")
	for day := 1; day <= 12; day++ {
		date := MustParseDate("2024-01-01").Add(day - 1)
		mustAdd(t, l, tx("Coffee", 4.5, Food, date.String(), Expense))
	}

	var sb strings.Builder
	if err := ExportText(&sb, l.List(), testSavings(), USD, MustParseDate("2024-01-15")); err != nil {
		t.Fatalf("ExportText() returned error: %v", err)
	}
	if got := strings.Count(sb.String(), "- Coffee:"); got != 10 {
		t.Errorf("report lists %d transactions, want the 10 most recent", got)
	}
}
