package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/ledger-replay/internal/domain"
)

// ErrMalformedRecord marks input that cannot be turned into a record at all.
// It is fatal for the run, unlike per-event rejections.
var ErrMalformedRecord = errors.New("malformed record")

var requiredColumns = []string{"type", "client", "tx"}

// Reader streams records from a header-first delimited input with the
// columns type, client, tx and an optional amount.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
	line    int
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &Reader{csv: cr}
}

// Next returns the next record, or io.EOF once the input is exhausted.
func (r *Reader) Next() (domain.Record, error) {
	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			return domain.Record{}, err
		}
	}

	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Record{}, io.EOF
		}
		return domain.Record{}, fmt.Errorf("Next: %w", err)
	}
	r.line, _ = r.csv.FieldPos(0)

	rec, err := r.parse(fields)
	if err != nil {
		return domain.Record{}, fmt.Errorf("Next: line %d: %w", r.line, err)
	}
	return rec, nil
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("readHeader: empty input: %w", ErrMalformedRecord)
		}
		return fmt.Errorf("readHeader: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return fmt.Errorf("readHeader: missing column %q: %w", name, ErrMalformedRecord)
		}
	}

	r.columns = columns
	return nil
}

func (r *Reader) field(fields []string, name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func (r *Reader) parse(fields []string) (domain.Record, error) {
	client, err := strconv.ParseUint(r.field(fields, "client"), 10, 16)
	if err != nil {
		return domain.Record{}, fmt.Errorf("client: %v: %w", err, ErrMalformedRecord)
	}
	tx, err := strconv.ParseUint(r.field(fields, "tx"), 10, 32)
	if err != nil {
		return domain.Record{}, fmt.Errorf("tx: %v: %w", err, ErrMalformedRecord)
	}

	var amount decimal.NullDecimal
	if raw := r.field(fields, "amount"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Record{}, fmt.Errorf("amount: %v: %w", err, ErrMalformedRecord)
		}
		amount = decimal.NewNullDecimal(d)
	}

	return domain.Record{
		Kind:   strings.ToLower(r.field(fields, "type")),
		Client: domain.ClientID(client),
		Tx:     domain.TxID(tx),
		Amount: amount,
	}, nil
}
