package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esflavor/internal/batch"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{"esvalid"}, args...))
	return out.String(), err
}

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("all valid", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "check", "--kind", "nif", "12345678z", "X1234567L")
		require.NoError(t, err)
		assert.Contains(t, out, "ok\tidentity_card\t12345678Z\n")
		assert.Contains(t, out, "ok\tidentity_card\tX1234567L\n")
	})

	t.Run("pasted values are cleaned", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "check", "--kind", "postal_code", " 28001\r\n")
		require.NoError(t, err)
		assert.Equal(t, "ok\tpostal_code\t28001\n", out)
	})

	t.Run("invalid value fails the command", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "check", "--kind", "ccc", "2100-0418-46-0200051332")
		assert.ErrorIs(t, err, ErrInvalidValues)
		assert.Contains(t, out, "invalid\tbank_account\t2100-0418-46-0200051332\tchecksum")
	})

	t.Run("only nif nie", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "check", "--kind", "identity_card", "--only-nif-nie", "A58818501")
		assert.ErrorIs(t, err, ErrInvalidValues)
		assert.Contains(t, out, "invalid_only_nif")
	})

	t.Run("spanish messages", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "check", "--kind", "postal_code", "--lang", "es", "99000")
		assert.ErrorIs(t, err, ErrInvalidValues)
		assert.Contains(t, out, "Introduzca un código postal válido")
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, "check", "--kind", "postal", "--format", "json", "28001")
		require.NoError(t, err)

		var results []batch.Result
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 1)
		assert.True(t, results[0].Valid)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, "check", "--kind", "iban", "ES00")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidValues)
	})

	t.Run("no values", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, "check", "--kind", "phone")
		assert.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, "check", "--kind", "phone", "--format", "xml", "612345678")
		assert.ErrorIs(t, err, errUnknownFormat)
	})
}

func TestBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "items.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
items:
  - kind: phone
    value: "612345678"
  - kind: postal_code
    value: "53000"
`), 0o600))

	out, err := run(t, "batch", "--workers", "2", manifest)
	assert.ErrorIs(t, err, ErrInvalidValues)
	assert.Contains(t, out, "ok\tphone_number\t612345678\n")
	assert.Contains(t, out, "invalid\tpostal_code\t53000\tinvalid")

	_, err = run(t, "batch", filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "batch")
	assert.Error(t, err)
}
