package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/perfwrap/log"
)

func TestParseLevelAndFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level      string
		format     string
		wantLevel  log.Level
		wantFormat log.Format
		wantErr    error
	}{
		"defaults": {
			level:      "info",
			format:     "auto",
			wantLevel:  log.LevelInfo,
			wantFormat: log.FormatAuto,
		},
		"warning alias and upper case": {
			level:      "WARNING",
			format:     "JSON",
			wantLevel:  log.LevelWarn,
			wantFormat: log.FormatJSON,
		},
		"debug text": {
			level:      "debug",
			format:     "text",
			wantLevel:  log.LevelDebug,
			wantFormat: log.FormatText,
		},
		"unknown level": {
			level:   "trace",
			format:  "logfmt",
			wantErr: log.ErrUnknownLogLevel,
		},
		"unknown format": {
			level:   "error",
			format:  "xml",
			wantErr: log.ErrUnknownLogFormat,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lvl, lvlErr := log.ParseLevel(tc.level)
			format, formatErr := log.ParseFormat(tc.format)

			if tc.wantErr != nil {
				require.ErrorIs(t, errors.Join(lvlErr, formatErr), tc.wantErr)

				return
			}

			require.NoError(t, lvlErr)
			require.NoError(t, formatErr)
			assert.Equal(t, tc.wantLevel, lvl)
			assert.Equal(t, tc.wantFormat, format)
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		format log.Format
		want   []string
	}{
		"logfmt": {
			format: log.FormatLogfmt,
			want:   []string{"level=WARN", `msg="profiler reported no counters"`, "module=fft.wasm"},
		},
		"auto on a buffer falls back to logfmt": {
			format: log.FormatAuto,
			want:   []string{"level=WARN", "module=fft.wasm"},
		},
		"text": {
			format: log.FormatText,
			want:   []string{"WARN", "profiler reported no counters", "module=fft.wasm"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := slog.New(log.NewHandler(&buf, log.LevelInfo, tc.format))
			logger.Warn("profiler reported no counters", slog.String("module", "fft.wasm"))

			for _, want := range tc.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestNewHandlerLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(log.NewHandler(&buf, log.LevelWarn, log.FormatJSON))
	logger.Info("runs complete")
	logger.Debug("running profiler")
	assert.Empty(t, buf.String())

	logger.Warn("profiler exited with non-zero status", slog.Int("status", 130))

	var entry map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.InDelta(t, 130, entry["status"], 0)
}

func TestNewHandlerFromStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler, err := log.NewHandlerFromStrings(&buf, "info", "json")
	require.NoError(t, err)
	slog.New(handler).Info("runs complete")
	assert.Contains(t, buf.String(), `"msg":"runs complete"`)

	for _, args := range [][2]string{{"loud", "json"}, {"info", "yaml"}} {
		_, err := log.NewHandlerFromStrings(&buf, args[0], args[1])
		require.ErrorIs(t, err, log.ErrInvalidArgument)
	}
}

func TestLevelSlogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelError, log.LevelError.SlogLevel())
	assert.Equal(t, slog.LevelWarn, log.LevelWarn.SlogLevel())
	assert.Equal(t, slog.LevelInfo, log.LevelInfo.SlogLevel())
	assert.Equal(t, slog.LevelDebug, log.LevelDebug.SlogLevel())
	assert.Equal(t, slog.LevelInfo, log.Level("").SlogLevel())
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()

	cmd := &cobra.Command{Use: "perfwrap"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	for flag, want := range map[string][]string{
		"log-level":  log.GetAllLevelStrings(),
		"log-format": log.GetAllFormatStrings(),
	} {
		completionFn, ok := cmd.GetFlagCompletionFunc(flag)
		require.True(t, ok, flag)

		values, directive := completionFn(cmd, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		assert.Equal(t, want, values)
	}
}

func TestConfigNewLogger(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()

	cmd := &cobra.Command{Use: "perfwrap"}
	cfg.RegisterFlags(cmd.Flags())

	err := cmd.Flags().Parse([]string{"--log-level=debug", "--log-format=json"})
	require.NoError(t, err)

	var buf bytes.Buffer

	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Debug("running profiler", slog.String("profiler", "p1"))

	var entry map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "p1", entry["profiler"])

	cfg.Format = "xml"

	_, err = cfg.NewLogger(&buf)
	require.ErrorIs(t, err, log.ErrInvalidArgument)
	require.ErrorIs(t, err, log.ErrUnknownLogFormat)
}
