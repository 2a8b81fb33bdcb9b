package domain

import "github.com/shopspring/decimal"

type TxID uint32

// JournalEntry records an applied deposit or withdrawal so that later
// dispute steps can find it by transaction id.
type JournalEntry struct {
	Tx       TxID
	Client   ClientID
	Kind     Kind
	Amount   decimal.Decimal
	Disputed bool
}
