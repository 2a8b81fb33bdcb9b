package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/josh-kwaku/ledger-replay/internal/domain"
)

var snapshotHeader = []string{"client", "available", "held", "total", "locked"}

// WriteSnapshot writes one row per account. Amounts are printed exactly,
// without rounding.
func WriteSnapshot(w io.Writer, accounts []domain.Account) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(snapshotHeader); err != nil {
		return fmt.Errorf("WriteSnapshot: header: %w", err)
	}

	for _, a := range accounts {
		row := []string{
			strconv.FormatUint(uint64(a.Client), 10),
			a.Available.String(),
			a.Held.String(),
			a.Total().String(),
			strconv.FormatBool(a.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("WriteSnapshot: client %d: %w", a.Client, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteSnapshot: flush: %w", err)
	}
	return nil
}
