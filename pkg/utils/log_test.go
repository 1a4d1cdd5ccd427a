package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/infotraining/quote_syncer/pkg/xerror"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogRejectsUnknownLevel(t *testing.T) {
	err := initLogger(log.New(), LogOptions{Level: "chatty"})
	require.Error(t, err)

	xerr, ok := xerror.As(err)
	require.True(t, ok)
	assert.Equal(t, xerror.Config, xerr.Category())
}

func TestInitLogWritesToFile(t *testing.T) {
	logger := log.New()
	path := filepath.Join(t.TempDir(), "quote_syncer.log")
	require.NoError(t, initLogger(logger, LogOptions{
		Level:    "debug",
		Filename: path,
		Fields:   log.Fields{"service": "quote_syncer"},
	}))

	logger.Debug("hello from test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), "service=quote_syncer")
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestFieldHookKeepsExplicitFields(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	logger.AddHook(NewFieldHook(log.Fields{"service": "quote_syncer", "symbol": "default"}))

	logger.WithField("symbol", "ACME").Info("price changed")

	out := buf.String()
	assert.Contains(t, out, "service=quote_syncer")
	assert.Contains(t, out, "symbol=ACME")
	assert.NotContains(t, out, "symbol=default")
}
