package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountSnapshot is one exported account row of a finished run.
type AccountSnapshot struct {
	RunID     uuid.UUID
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
	CreatedAt time.Time
}
