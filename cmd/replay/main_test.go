package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/ledger-replay/internal/config"
	"github.com/josh-kwaku/ledger-replay/internal/csvio"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig() *config.Config {
	return &config.Config{LogLevel: "info", AppEnv: "development", DuplicateTxPolicy: "overwrite"}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunWritesSnapshot(t *testing.T) {
	path := writeInput(t, "type, client, tx, amount\n"+
		"deposit, 2, 1, 1.0\n"+
		"deposit, 1, 2, 2.0\n"+
		"withdrawal, 1, 3, 1.5\n"+
		"withdrawal, 2, 4, 3.0\n"+
		"dispute, 2, 1,\n")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testConfig(), []string{path}, &out, quietLogger()))

	want := "client,available,held,total,locked\n" +
		"1,0.5,0,0.5,false\n" +
		"2,0,1,1,false\n"
	assert.Equal(t, want, out.String())
}

func TestRunRejectDuplicates(t *testing.T) {
	path := writeInput(t, "type,client,tx,amount\ndeposit,1,1,5\ndeposit,1,1,7\n")
	cfg := testConfig()
	cfg.DuplicateTxPolicy = "reject"

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, []string{path}, &out, quietLogger()))
	assert.Equal(t, "client,available,held,total,locked\n1,5,0,5,false\n", out.String())
}

func TestRunFatalErrors(t *testing.T) {
	t.Run("missing argument", func(t *testing.T) {
		err := run(context.Background(), testConfig(), nil, io.Discard, quietLogger())
		require.ErrorIs(t, err, errUsage)
	})

	t.Run("unreadable file", func(t *testing.T) {
		err := run(context.Background(), testConfig(), []string{filepath.Join(t.TempDir(), "nope.csv")}, io.Discard, quietLogger())
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed record", func(t *testing.T) {
		path := writeInput(t, "type,client,tx,amount\ndeposit,one,1,1\n")
		var out bytes.Buffer
		err := run(context.Background(), testConfig(), []string{path}, &out, quietLogger())
		require.ErrorIs(t, err, csvio.ErrMalformedRecord)
		assert.Empty(t, out.String())
	})

	t.Run("unknown duplicate policy", func(t *testing.T) {
		cfg := testConfig()
		cfg.DuplicateTxPolicy = "merge"
		err := run(context.Background(), cfg, []string{writeInput(t, "type,client,tx,amount\n")}, io.Discard, quietLogger())
		require.Error(t, err)
	})
}
