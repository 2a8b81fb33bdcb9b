package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/ledger-replay/internal/domain"
)

// DuplicatePolicy decides what happens when a deposit or withdrawal reuses a
// transaction id that is already in the journal.
type DuplicatePolicy string

const (
	DuplicateOverwrite DuplicatePolicy = "overwrite"
	DuplicateReject    DuplicatePolicy = "reject"
)

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case DuplicateOverwrite, DuplicateReject:
		return p, nil
	default:
		return "", fmt.Errorf("ParseDuplicatePolicy: unknown policy %q", s)
	}
}

type store interface {
	GetOrCreateAccount(client domain.ClientID) *domain.Account
	FindTransaction(tx domain.TxID) (*domain.JournalEntry, bool)
	PutTransaction(entry domain.JournalEntry)
}

// Engine applies events one at a time against a store. Every rejection
// returns before the store is mutated, apart from the lazy creation of the
// referenced account.
type Engine struct {
	store      store
	duplicates DuplicatePolicy
}

func New(s store, duplicates DuplicatePolicy) *Engine {
	if duplicates == "" {
		duplicates = DuplicateOverwrite
	}
	return &Engine{store: s, duplicates: duplicates}
}

// Process validates and applies one raw event. An unknown kind is rejected
// before any account is looked up. A locked account rejects every kind,
// including those that would settle an open dispute.
func (e *Engine) Process(kind string, client domain.ClientID, tx domain.TxID, amount decimal.NullDecimal) error {
	k, err := domain.ParseKind(kind)
	if err != nil {
		return fmt.Errorf("Process: %w", err)
	}

	acct, err := e.unlockedAccount(client)
	if err != nil {
		return fmt.Errorf("Process: %w", err)
	}

	ev, err := domain.NewEvent(k, client, tx, amount)
	if err != nil {
		return fmt.Errorf("Process: %w", err)
	}

	if err := e.apply(acct, ev); err != nil {
		return fmt.Errorf("Process: %w", err)
	}
	return nil
}

// ProcessRecord is Process for a parsed input row.
func (e *Engine) ProcessRecord(r domain.Record) error {
	return e.Process(r.Kind, r.Client, r.Tx, r.Amount)
}

// Apply applies an already typed event.
func (e *Engine) Apply(ev domain.Event) error {
	acct, err := e.unlockedAccount(ev.ClientID())
	if err != nil {
		return fmt.Errorf("Apply: %w", err)
	}
	if err := e.apply(acct, ev); err != nil {
		return fmt.Errorf("Apply: %w", err)
	}
	return nil
}

func (e *Engine) unlockedAccount(client domain.ClientID) (*domain.Account, error) {
	acct := e.store.GetOrCreateAccount(client)
	if acct.Locked {
		return nil, fmt.Errorf("client %d: %w", client, domain.ErrAccountLocked)
	}
	return acct, nil
}

func (e *Engine) apply(acct *domain.Account, ev domain.Event) error {
	switch ev := ev.(type) {
	case domain.Movement:
		switch ev.Kind {
		case domain.KindDeposit:
			return e.deposit(acct, ev)
		case domain.KindWithdrawal:
			return e.withdraw(acct, ev)
		}
	case domain.DisputeStep:
		switch ev.Kind {
		case domain.KindDispute:
			return e.dispute(acct, ev)
		case domain.KindResolve:
			return e.resolve(acct, ev)
		case domain.KindChargeback:
			return e.chargeback(acct, ev)
		}
	}
	return fmt.Errorf("apply: %s: %w", ev.EventKind(), domain.ErrInvalidKind)
}

func (e *Engine) deposit(acct *domain.Account, m domain.Movement) error {
	if err := e.checkDuplicate(m.Tx); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}

	acct.Credit(m.Amount)
	e.record(m)
	return nil
}

func (e *Engine) withdraw(acct *domain.Account, m domain.Movement) error {
	if acct.Available.LessThan(m.Amount) {
		return fmt.Errorf("withdraw: tx %d: available %s, requested %s: %w",
			m.Tx, acct.Available, m.Amount, domain.ErrInsufficientFunds)
	}
	if err := e.checkDuplicate(m.Tx); err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}

	acct.Debit(m.Amount)
	e.record(m)
	return nil
}

func (e *Engine) dispute(acct *domain.Account, d domain.DisputeStep) error {
	entry, err := e.ownedEntry(d)
	if err != nil {
		return fmt.Errorf("dispute: %w", err)
	}

	acct.Hold(entry.Amount)
	entry.Disputed = true
	return nil
}

func (e *Engine) resolve(acct *domain.Account, d domain.DisputeStep) error {
	entry, err := e.disputedEntry(d)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	acct.Release(entry.Amount)
	entry.Disputed = false
	return nil
}

func (e *Engine) chargeback(acct *domain.Account, d domain.DisputeStep) error {
	entry, err := e.disputedEntry(d)
	if err != nil {
		return fmt.Errorf("chargeback: %w", err)
	}

	acct.Reverse(entry.Amount)
	entry.Disputed = false
	return nil
}

func (e *Engine) ownedEntry(d domain.DisputeStep) (*domain.JournalEntry, error) {
	entry, ok := e.store.FindTransaction(d.Tx)
	if !ok {
		return nil, fmt.Errorf("tx %d: %w", d.Tx, domain.ErrTransactionNotFound)
	}
	if entry.Client != d.Client {
		return nil, fmt.Errorf("tx %d owned by client %d, not %d: %w",
			d.Tx, entry.Client, d.Client, domain.ErrClientMismatch)
	}
	return entry, nil
}

func (e *Engine) disputedEntry(d domain.DisputeStep) (*domain.JournalEntry, error) {
	entry, err := e.ownedEntry(d)
	if err != nil {
		return nil, err
	}
	if !entry.Disputed {
		return nil, fmt.Errorf("tx %d: %w", d.Tx, domain.ErrNotDisputed)
	}
	return entry, nil
}

func (e *Engine) checkDuplicate(tx domain.TxID) error {
	if e.duplicates != DuplicateReject {
		return nil
	}
	if _, ok := e.store.FindTransaction(tx); ok {
		return fmt.Errorf("tx %d: %w", tx, domain.ErrDuplicateTransaction)
	}
	return nil
}

func (e *Engine) record(m domain.Movement) {
	e.store.PutTransaction(domain.JournalEntry{
		Tx:     m.Tx,
		Client: m.Client,
		Kind:   m.Kind,
		Amount: m.Amount,
	})
}
