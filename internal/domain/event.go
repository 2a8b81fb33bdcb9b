package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Kind uint8

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

var kindNames = map[Kind]string{
	KindDeposit:    "deposit",
	KindWithdrawal: "withdrawal",
	KindDispute:    "dispute",
	KindResolve:    "resolve",
	KindChargeback: "chargeback",
}

// Kinds lists every event kind in declaration order.
var Kinds = []Kind{KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsMovement reports whether events of this kind carry an amount and create
// journal entries.
func (k Kind) IsMovement() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// ParseKind matches the exact lower-case kind names. Normalising case and
// whitespace is left to the input reader.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("ParseKind: %q: %w", s, ErrInvalidKind)
}

// Record is one raw input row before it has been turned into an Event.
type Record struct {
	Kind   string
	Client ClientID
	Tx     TxID
	Amount decimal.NullDecimal
}

func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s client=%d tx=%d", r.Kind, r.Client, r.Tx)
	if r.Amount.Valid {
		fmt.Fprintf(&b, " amount=%s", r.Amount.Decimal)
	}
	return b.String()
}

// Event is implemented by Movement and DisputeStep only.
type Event interface {
	EventKind() Kind
	ClientID() ClientID
	TxID() TxID
	event()
}

// Movement is a deposit or a withdrawal.
type Movement struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount decimal.Decimal
}

func (m Movement) EventKind() Kind    { return m.Kind }
func (m Movement) ClientID() ClientID { return m.Client }
func (m Movement) TxID() TxID         { return m.Tx }
func (Movement) event()               {}

// DisputeStep is a dispute, resolve or chargeback. It refers to an earlier
// movement by transaction id and carries no amount of its own.
type DisputeStep struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
}

func (d DisputeStep) EventKind() Kind    { return d.Kind }
func (d DisputeStep) ClientID() ClientID { return d.Client }
func (d DisputeStep) TxID() TxID         { return d.Tx }
func (DisputeStep) event()               {}

// NewEvent builds the typed event for kind. Dispute steps ignore amount.
func NewEvent(kind Kind, client ClientID, tx TxID, amount decimal.NullDecimal) (Event, error) {
	switch kind {
	case KindDeposit, KindWithdrawal:
		if !amount.Valid {
			return nil, fmt.Errorf("NewEvent: %s tx %d: %w", kind, tx, ErrMissingAmount)
		}
		return Movement{Kind: kind, Client: client, Tx: tx, Amount: amount.Decimal}, nil
	case KindDispute, KindResolve, KindChargeback:
		return DisputeStep{Kind: kind, Client: client, Tx: tx}, nil
	default:
		return nil, fmt.Errorf("NewEvent: %s: %w", kind, ErrInvalidKind)
	}
}
