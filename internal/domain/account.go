package domain

import "github.com/shopspring/decimal"

type ClientID uint16

type Account struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

func NewAccount(client ClientID) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total is never stored; it is always available + held.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

func (a *Account) Credit(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
}

func (a *Account) Debit(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
}

// Hold moves amount from available to held. Total is unchanged.
func (a *Account) Hold(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
}

// Release reverses Hold.
func (a *Account) Release(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
}

// Reverse removes amount from held without crediting available and locks the
// account for good.
func (a *Account) Reverse(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Locked = true
}
