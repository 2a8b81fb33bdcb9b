package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/josh-kwaku/ledger-replay/internal/domain"
	"github.com/josh-kwaku/ledger-replay/internal/logging"
)

// RejectionCounter counts rejected events per event kind and per reason and
// logs each one at debug level.
type RejectionCounter struct {
	mu       sync.Mutex
	byKind   map[string]int
	byReason map[string]int
}

func NewRejectionCounter() *RejectionCounter {
	return &RejectionCounter{
		byKind:   make(map[string]int),
		byReason: make(map[string]int),
	}
}

func (c *RejectionCounter) Rejected(ctx context.Context, rec domain.Record, err error) {
	reason := "unknown"
	if r := domain.RejectionReason(err); r != nil {
		reason = r.Error()
	}
	kind := rec.Kind
	if kind == "" {
		kind = "(empty)"
	}

	c.mu.Lock()
	c.byKind[kind]++
	c.byReason[reason]++
	c.mu.Unlock()

	logging.FromContext(ctx).Debug("event rejected",
		"kind", rec.Kind,
		"client", rec.Client,
		"tx", rec.Tx,
		"reason", reason,
		"error", err,
	)
}

type Count struct {
	Key   string
	Count int
}

func (c *RejectionCounter) ByKind() []Count {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sortedCounts(c.byKind)
}

func (c *RejectionCounter) ByReason() []Count {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sortedCounts(c.byReason)
}

func (c *RejectionCounter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.byKind {
		n += v
	}
	return n
}

// LogSummary writes one line per kind and per reason. Nothing is logged for a
// run without rejections.
func (c *RejectionCounter) LogSummary(logger *slog.Logger) {
	total := c.Total()
	if total == 0 {
		return
	}

	logger.Warn("events rejected", "total", total)
	for _, kc := range c.ByKind() {
		logger.Info("rejections by kind", "kind", kc.Key, "count", kc.Count)
	}
	for _, rc := range c.ByReason() {
		logger.Info("rejections by reason", "reason", rc.Key, "count", rc.Count)
	}
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}
