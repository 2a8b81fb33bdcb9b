package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountTransitions(t *testing.T) {
	d := decimal.RequireFromString
	a := NewAccount(9)

	a.Credit(d("10.75"))
	a.Hold(d("4.25"))
	assert.True(t, a.Available.Equal(d("6.5")))
	assert.True(t, a.Held.Equal(d("4.25")))
	assert.True(t, a.Total().Equal(d("10.75")))

	a.Release(d("4.25"))
	assert.True(t, a.Available.Equal(d("10.75")))
	assert.True(t, a.Held.IsZero())

	a.Debit(d("0.75"))
	a.Hold(d("10"))
	a.Reverse(d("10"))
	assert.True(t, a.Available.IsZero())
	assert.True(t, a.Held.IsZero())
	assert.True(t, a.Total().IsZero())
	assert.True(t, a.Locked)
}
