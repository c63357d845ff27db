package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// This file contains the persistence collaborator. The engine itself never
// persists anything: the host hands it a KV store and the engine serializes
// its state under namespaced keys, one JSON value per key. Anything corrupt
// or missing falls back to the empty default so that a damaged data file can
// never prevent the application from starting.

// Keys under which the engine state is persisted. They are kept identical to
// the keys of the original application so existing data files keep loading.
const (
	keyTransactions = "expense-tracker-data"
	keyCurrency     = "expense-tracker-currency"
	keySavings      = "expense-tracker-savings"
	keyTutorialSeen = "has-seen-tutorial"
)

// KV is the persistence contract the host application provides. Load returns
// the previously stored value for a key, or false when nothing was stored.
type KV interface {
	Load(key string) ([]byte, bool)
	Save(key string, value []byte) error
}

// State bundles everything the engine persists: the ledger, the savings
// account, the selected display currency and the one-shot tutorial flag.
type State struct {
	Ledger       *Ledger
	Savings      *SavingsAccount
	Currency     Currency
	TutorialSeen bool
}

// NewState returns the empty default state: no transactions, empty savings,
// USD display, tutorial not yet seen.
func NewState() *State {
	return &State{
		Ledger:   NewLedger(),
		Savings:  NewSavingsAccount(),
		Currency: USD,
	}
}

// LoadState restores the engine state from the store. Each key is read
// independently; a corrupt value is logged and replaced by its empty default,
// never surfaced to the caller.
func LoadState(kv KV) *State {
	st := NewState()

	if data, ok := kv.Load(keyTransactions); ok {
		var txs []Transaction
		if err := json.Unmarshal(data, &txs); err != nil {
			log.Printf("load: corrupt transaction data, starting empty: %v", err)
		} else {
			st.Ledger.append(txs...)
		}
	}

	if data, ok := kv.Load(keyCurrency); ok {
		var code string
		if err := json.Unmarshal(data, &code); err != nil {
			log.Printf("load: corrupt currency selection, keeping %s: %v", st.Currency, err)
		} else if cur, err := ParseCurrency(code); err != nil {
			log.Printf("load: %v, keeping %s", err, st.Currency)
		} else {
			st.Currency = cur
		}
	}

	if data, ok := kv.Load(keySavings); ok {
		var savings SavingsAccount
		if err := json.Unmarshal(data, &savings); err != nil {
			log.Printf("load: corrupt savings data, starting empty: %v", err)
		} else {
			st.Savings.Current = savings.Current
			st.Savings.Goal = savings.Goal
			st.Savings.MonthlyTarget = savings.MonthlyTarget
			st.Savings.History = savings.History
		}
	}

	if data, ok := kv.Load(keyTutorialSeen); ok {
		var seen bool
		if err := json.Unmarshal(data, &seen); err != nil {
			log.Printf("load: corrupt tutorial flag, resetting: %v", err)
		} else {
			st.TutorialSeen = seen
		}
	}

	return st
}

// Save persists every part of the state under its own key. All keys are
// attempted; the joined errors are returned.
func (st *State) Save(kv KV) error {
	var errs error

	save := func(key string, value any) {
		data, err := json.Marshal(value)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot marshal %q: %w", key, err))
			return
		}
		if err := kv.Save(key, data); err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot save %q: %w", key, err))
		}
	}

	save(keyTransactions, st.Ledger.List())
	save(keyCurrency, string(st.Currency))
	save(keySavings, st.Savings)
	save(keyTutorialSeen, st.TutorialSeen)
	return errs
}

// FileKV is a KV store backed by a single JSON file, for hosts that do not
// bring their own persistence. The whole file is rewritten on every save; at
// four small keys that is simpler than being clever.
type FileKV struct {
	mu      sync.Mutex
	path    string
	entries map[string]json.RawMessage
}

// NewFileKV opens or creates the store at path, creating parent directories
// as needed. A corrupt file is logged and treated as empty.
func NewFileKV(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data dir for %q: %w", path, err)
	}

	f := &FileKV{path: path, entries: make(map[string]json.RawMessage)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read data file %q: %w", path, err)
	}
	if err := json.Unmarshal(data, &f.entries); err != nil {
		log.Printf("load: corrupt data file %q, starting empty: %v", path, err)
		f.entries = make(map[string]json.RawMessage)
	}
	return f, nil
}

// Load returns the stored value for key.
func (f *FileKV) Load(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.entries[key]
	return value, ok
}

// Save stores the value under key and rewrites the file.
func (f *FileKV) Save(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal data file %q: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write data file %q: %w", f.path, err)
	}
	return nil
}

var _ KV = (*FileKV)(nil)
