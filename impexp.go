package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// This file contains the import/export codecs. The CSV format is the one the
// application has always produced: a fixed header, every field double-quote
// wrapped, no quoted-comma escaping. Import is lenient by design and
// substitutes defaults for anything it cannot read instead of rejecting rows.

// csvHeader is the column order of exported CSV files.
var csvHeader = []string{"Date", "Type", "Category", "Title", "Amount", "Description"}

// ExportCSV writes the transactions as CSV. Amounts are rendered in the
// display currency without its symbol, so that the cells survive a numeric
// re-import.
func ExportCSV(w io.Writer, txs []Transaction, cur Currency) error {
	lines := make([]string, 0, len(txs)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, tx := range txs {
		fields := []string{
			tx.Date.String(),
			string(tx.Type),
			string(tx.Category),
			tx.Title,
			cur.Format(tx.Amount, false),
			tx.Description,
		}
		for i, f := range fields {
			fields[i] = `"` + f + `"`
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("cannot write CSV export: %w", err)
	}
	return nil
}

// ExportJSON writes the full report document: export timestamp, display
// currency, formatted summary totals, the savings snapshot, net worth and
// the complete transaction list. There is no matching import; the document
// is a report, not a backup format.
func ExportJSON(w io.Writer, txs []Transaction, savings *SavingsAccount, cur Currency, now time.Time) error {
	sum := NewSummary(txs, savings.Current)

	progress := "Not set"
	if pct, ok := savings.PercentOfGoal(); ok {
		progress = fmt.Sprintf("%d%%", int(pct))
	}
	target := ""
	if !savings.MonthlyTarget.IsZero() {
		target = cur.Format(savings.MonthlyTarget, true)
	}
	var sw jsonObjectWriter
	sw.Append("current", cur.Format(savings.Current, true))
	sw.Append("goal", cur.Format(savings.Goal, true))
	sw.Optional("monthlyTarget", target)
	sw.Append("progress", progress)

	var jw jsonObjectWriter
	jw.Append("exportedAt", now.Format(time.RFC3339))
	jw.Append("currency", string(cur))
	jw.Append("totalIncome", cur.Format(sum.TotalIncome, true))
	jw.Append("totalExpenses", cur.Format(sum.TotalExpenses, true))
	jw.Append("balance", cur.Format(sum.Balance, true))
	jw.Append("remainingBalance", cur.Format(sum.RemainingBalance, true))
	jw.Append("savings", &sw)
	jw.Append("netWorth", cur.Format(sum.NetWorth, true))
	jw.Append("transactions", txs)

	data, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot marshal JSON export: %w", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return fmt.Errorf("cannot format JSON export: %w", err)
	}
	if _, err := w.Write(indented.Bytes()); err != nil {
		return fmt.Errorf("cannot write JSON export: %w", err)
	}
	return nil
}

// ExportText writes the plain-text report the share-by-email flow sends:
// summary totals, the ten most recent transactions and the per-category
// spending breakdown, largest first.
func ExportText(w io.Writer, txs []Transaction, savings *SavingsAccount, cur Currency, on Date) error {
	sum := NewSummary(txs, savings.Current)

	var b strings.Builder
	fmt.Fprintf(&b, "Expense Report - Generated on %s\n", on)
	b.WriteString("\nSUMMARY:\n")
	fmt.Fprintf(&b, "• Total Income: %s\n", cur.Format(sum.TotalIncome, true))
	fmt.Fprintf(&b, "• Total Expenses: %s\n", cur.Format(sum.TotalExpenses, true))
	fmt.Fprintf(&b, "• Net Balance: %s\n", cur.Format(sum.Balance, true))
	fmt.Fprintf(&b, "• Savings: %s\n", cur.Format(savings.Current, true))

	b.WriteString("\nRECENT TRANSACTIONS:\n")
	recent := txs
	if len(recent) > 10 {
		recent = recent[:10]
	}
	for _, tx := range recent {
		fmt.Fprintf(&b, "• %s - %s: %s (%s)\n", tx.Date, tx.Title, cur.Format(tx.Amount, true), tx.Type)
	}

	b.WriteString("\nCATEGORY BREAKDOWN:\n")
	for _, share := range CategoryBreakdown(txs) {
		fmt.Fprintf(&b, "• %s: %s\n", share.Category, cur.Format(share.Total, true))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("cannot write text report: %w", err)
	}
	return nil
}

// ImportCSV parses CSV text and inserts the rows into the ledger, newest at
// the head in row order. The first line is the header: column names are
// matched case-insensitively after stripping quotes and whitespace, so any
// column order works.
//
// Rows are split on raw commas; there is no quoted-comma escaping. Fields
// that are missing or unreadable fall back to defaults (title "Imported",
// amount 0.00, category Other, date today, type expense) instead of failing
// the row, and imported amounts skip the amount>0 check that manual entry
// enforces. A payload without a usable header is the one thing that fails.
//
// It returns the number of transactions imported.
func ImportCSV(l *Ledger, text string) (int, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(strings.TrimSpace(text)) == 0 {
		return 0, fmt.Errorf("%w: empty input", ErrImportParse)
	}

	headers := splitCSVLine(lines[0])
	usable := false
	for i, h := range headers {
		headers[i] = strings.ToLower(h)
		if headers[i] != "" {
			usable = true
		}
	}
	if !usable {
		return 0, fmt.Errorf("%w: missing header line", ErrImportParse)
	}

	var imported []Transaction
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitCSVLine(line)
		record := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(values) {
				record[h] = values[i]
			}
		}
		imported = append(imported, importedTransaction(record, l.nowFn()))
	}

	l.append(imported...)
	return len(imported), nil
}

// splitCSVLine splits on raw commas and strips quotes and whitespace from
// every field.
func splitCSVLine(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(strings.TrimSpace(f), `"`, "")
	}
	return fields
}

// importedTransaction builds a record from a header-keyed row, substituting
// defaults for whatever is missing or unreadable.
func importedTransaction(record map[string]string, today Date) Transaction {
	title := record["title"]
	if strings.TrimSpace(title) == "" {
		title = "Imported"
	}

	amount := A(0)
	if a, err := ParseAmount(record["amount"]); err == nil {
		amount = a.Round2()
	}

	category := Other
	if c, ok := ParseCategory(record["category"]); ok {
		category = c
	}

	on := today
	if d, err := ParseDate(record["date"]); err == nil {
		on = d
	}

	return Transaction{
		ID:          newID(),
		Title:       title,
		Amount:      amount,
		Category:    category,
		Date:        on,
		Type:        ParseTxType(record["type"]),
		Description: record["description"],
	}
}
