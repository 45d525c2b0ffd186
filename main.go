package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	// Build info embedded by goreleaser.
	version = "master" //nolint:gochecknoglobals
	commit  = "latest" //nolint:gochecknoglobals
	date    = "n/a"    //nolint:gochecknoglobals
)

func run(reset bool) error {
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, errSettings := loadSettings(reset, newPrompter())
	if errSettings != nil {
		return errSettings
	}

	logCloser := MustCreateLogger(settings)
	defer logCloser()

	slog.Info("Starting ninja",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("date", date))

	hideCursor(os.Stdout)
	defer showCursor(os.Stdout)

	browser := newServerBrowser(settings)

	serviceGroup, serviceCtx := errgroup.WithContext(rootCtx)
	serviceGroup.Go(func() error {
		browser.start(serviceCtx)

		return nil
	})

	return serviceGroup.Wait()
}

func rootCommand() *cobra.Command {
	var reset bool

	rootCmd := &cobra.Command{
		Use:          "ninja",
		Short:        "Steam server browser using keywords",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(reset)
		},
	}

	rootCmd.Flags().BoolVar(&reset, "reset", false, "Discard saved settings and run first time setup again")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("ninja %s (%s) %s\n", version, commit, date)
		},
	})

	return rootCmd
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
