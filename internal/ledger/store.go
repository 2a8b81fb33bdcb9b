package ledger

import (
	"sort"

	"github.com/josh-kwaku/ledger-replay/internal/domain"
)

// Store owns every account and journal entry of one replay. It does no
// locking; a single writer is assumed.
type Store struct {
	accounts map[domain.ClientID]*domain.Account
	journal  map[domain.TxID]*domain.JournalEntry
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[domain.ClientID]*domain.Account),
		journal:  make(map[domain.TxID]*domain.JournalEntry),
	}
}

// GetOrCreateAccount returns the live account for client, creating a zero
// balance unlocked one on first reference.
func (s *Store) GetOrCreateAccount(client domain.ClientID) *domain.Account {
	if a, ok := s.accounts[client]; ok {
		return a
	}
	a := domain.NewAccount(client)
	s.accounts[client] = a
	return a
}

// FindTransaction returns the live journal entry for tx, or false.
func (s *Store) FindTransaction(tx domain.TxID) (*domain.JournalEntry, bool) {
	e, ok := s.journal[tx]
	return e, ok
}

// PutTransaction inserts entry, replacing any entry with the same tx id.
func (s *Store) PutTransaction(entry domain.JournalEntry) {
	s.journal[entry.Tx] = &entry
}

// Accounts returns copies of every account, ordered by client id.
func (s *Store) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Client < out[j].Client
	})
	return out
}

func (s *Store) Len() (accounts, transactions int) {
	return len(s.accounts), len(s.journal)
}
