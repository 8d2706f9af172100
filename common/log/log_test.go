package log

import (
	"testing"

	"github.com/framebluffer/KTX-Software/go/options"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelsAndPanic(t *testing.T) {
	prev := L()
	defer ReplaceLogger(prev)

	core, logs := observer.New(zap.DebugLevel)
	ReplaceLogger(zap.New(core))

	Debug("index levels")
	Info("load texture")
	Warn("failed to remove temporary texture")
	Error("upload object")
	require.PanicsWithValue(t, "bad container", func() { Panic("bad container") })
	require.NoError(t, Sync())

	var got []string
	for _, e := range logs.All() {
		got = append(got, e.Level.String())
	}
	require.Equal(t, []string{"debug", "info", "warn", "error", "panic"}, got)
}

func TestInitLogger(t *testing.T) {
	prev := L()
	defer ReplaceLogger(prev)

	require.NoError(t, InitLogger(options.LogConfig{Level: "debug", Format: "console"}, AddStacktrace(zap.ErrorLevel), Fields(String("component", "ktx"))))
	require.True(t, L().Core().Enabled(zap.DebugLevel))
	require.Error(t, InitLogger(options.LogConfig{Level: "loud", Format: "json"}))
}

func TestFieldsReachCore(t *testing.T) {
	prev := L()
	defer ReplaceLogger(prev)

	core, logs := observer.New(zap.DebugLevel)
	ReplaceLogger(zap.New(core))

	Debug("open file", String("path", "a.ktx"), Int64("size", 64))
	entries := logs.FilterMessage("open file").All()
	require.Len(t, entries, 1)
	require.Equal(t, "a.ktx", entries[0].ContextMap()["path"])
	require.EqualValues(t, 64, entries[0].ContextMap()["size"])
}
