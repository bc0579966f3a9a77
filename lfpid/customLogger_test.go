package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Info("Enabling Pion", "module", "init", "tables", 2)
	log.Debug("hidden")
	log.WithGroup("db").With("host", "localhost").Warn("slow query")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if assert.Len(t, lines, 2) {
		assert.Regexp(t, `^\[\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}\] \[INFO\] \[init\] Enabling Pion tables=2$`, string(lines[0]))
		assert.Regexp(t, `\[WARN\] slow query db\.host=localhost$`, string(lines[1]))
	}
}

func TestLoggerModule(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{
		InfoLog:  slog.New(NewHandler(&buf, nil)),
		ErrorLog: slog.New(slog.NewJSONHandler(&buf, nil)),
	}
	l.Info("Run started", "main")
	l.Error("boom")
	assert.Contains(t, buf.String(), "[INFO] [main] Run started\n")
	assert.Contains(t, buf.String(), `"msg":"boom"`)
}
