package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/ledger-replay/internal/domain"
)

func TestGetOrCreateAccount(t *testing.T) {
	s := NewStore()

	a := s.GetOrCreateAccount(7)
	require.NotNil(t, a)
	assert.Equal(t, domain.ClientID(7), a.Client)
	assert.True(t, a.Available.IsZero())
	assert.True(t, a.Held.IsZero())
	assert.False(t, a.Locked)

	a.Credit(decimal.NewFromInt(5))
	again := s.GetOrCreateAccount(7)
	assert.Same(t, a, again)
	assert.True(t, again.Available.Equal(decimal.NewFromInt(5)))

	accounts, _ := s.Len()
	assert.Equal(t, 1, accounts)
}

func TestPutTransactionReplaces(t *testing.T) {
	s := NewStore()

	_, ok := s.FindTransaction(1)
	assert.False(t, ok)

	s.PutTransaction(domain.JournalEntry{Tx: 1, Client: 1, Kind: domain.KindDeposit, Amount: decimal.NewFromInt(10)})
	s.PutTransaction(domain.JournalEntry{Tx: 1, Client: 2, Kind: domain.KindWithdrawal, Amount: decimal.NewFromInt(3)})

	e, ok := s.FindTransaction(1)
	require.True(t, ok)
	assert.Equal(t, domain.ClientID(2), e.Client)
	assert.Equal(t, domain.KindWithdrawal, e.Kind)
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(3)))

	_, txs := s.Len()
	assert.Equal(t, 1, txs)
}

func TestAccountsSnapshot(t *testing.T) {
	s := NewStore()
	for _, c := range []domain.ClientID{3, 1, 2} {
		s.GetOrCreateAccount(c)
	}

	snap := s.Accounts()
	require.Len(t, snap, 3)
	assert.Equal(t, domain.ClientID(1), snap[0].Client)
	assert.Equal(t, domain.ClientID(2), snap[1].Client)
	assert.Equal(t, domain.ClientID(3), snap[2].Client)

	snap[0].Locked = true
	assert.False(t, s.GetOrCreateAccount(1).Locked, "snapshot must not alias live accounts")
}
