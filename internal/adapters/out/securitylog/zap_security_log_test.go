package securitylog_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"parcel/internal/adapters/out/securitylog"
	"parcel/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapSecurityLog_Record(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := securitylog.New(zap.New(core))

	log.Record(ports.EventLoginFailed, "ada@example.com", "wrong password")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "LOGIN_FAILED", entry.Message)
	assert.Equal(t, map[string]any{"subject": "ada@example.com", "detail": "wrong password"}, entry.ContextMap())
}

func TestOpen_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "security.log")

	first, err := securitylog.Open(path)
	require.NoError(t, err)
	first.Record(ports.EventRegister, "C00001", "ada@example.com")
	require.NoError(t, first.Close())

	second, err := securitylog.Open(path)
	require.NoError(t, err)
	second.Record(ports.EventPayment, "C00001", "B000010001")
	require.NoError(t, second.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var events []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		events = append(events, line["msg"].(string))
		assert.Equal(t, "C00001", line["subject"])
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []string{"REGISTER", "PAYMENT"}, events)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := securitylog.Open("")
	assert.Error(t, err)
}
