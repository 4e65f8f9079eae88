package main

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSweeper(t *testing.T) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("disabled", func(t *testing.T) {
		ta := testutils.New(t)
		cfg := testutils.Config()
		cfg.Trading.SweepEnabled = false
		assert.Nil(t, startSweeper(ta.App, cfg))
	})

	t.Run("bad schedule", func(t *testing.T) {
		ta := testutils.New(t)
		cfg := testutils.Config()
		cfg.Trading = &config.Trading{SweepEnabled: true, SweepSchedule: "every tuesday", SweepGrace: time.Minute}
		assert.Nil(t, startSweeper(ta.App, cfg))
	})

	t.Run("running", func(t *testing.T) {
		ta := testutils.New(t)
		cfg := testutils.Config()
		cfg.Trading = &config.Trading{SweepEnabled: true, SweepSchedule: "@every 1h", SweepGrace: time.Minute}
		s := startSweeper(ta.App, cfg)
		require.NotNil(t, s)
		assert.True(t, s.IsRunning())
		s.Stop()
		assert.False(t, s.IsRunning())
	})
}
