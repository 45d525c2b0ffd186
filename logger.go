package main

import (
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/dotse/slug"
	slogmulti "github.com/samber/slog-multi"
)

func MustCreateLogger(settings userSettings) func() {
	var level slog.Level

	switch settings.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	default:
		level = slog.LevelError
	}

	closer := func() {}

	var handlers []slog.Handler

	// Write debug logs to ninja.log
	if settings.DebugLogEnabled {
		logFile, errLogFile := os.Create(path.Join(settings.configRoot, "ninja.log"))
		if errLogFile != nil {
			panic(fmt.Sprintf("Failed to open logfile: %v", errLogFile))
		}

		closer = func() {
			if errClose := logFile.Close(); errClose != nil {
				panic(fmt.Sprintf("Failed to close log file: %v", errClose))
			}
		}

		handlers = append(handlers, slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level}))
	}

	// Colourised logs on stderr, stdout belongs to the server table.
	handlers = append(handlers, slug.NewHandler(slug.HandlerOptions{
		HandlerOptions: slog.HandlerOptions{
			Level: level,
		},
	}, os.Stderr))

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))

	return closer
}

func errAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
