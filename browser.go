package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/sync/errgroup"
)

const durationPollInterval = time.Minute

// serverBrowser polls the directory and redraws the server table each cycle. The
// settings value is fixed at construction, changing them means restarting.
type serverBrowser struct {
	settings userSettings
	client   serverListClient
	out      io.Writer
}

func newServerBrowser(settings userSettings) *serverBrowser {
	return &serverBrowser{
		settings: settings,
		client:   newServerListClient(settings),
		out:      os.Stdout,
	}
}

// fetchServers queries the directory once per include keyword and merges the
// normalized results into a single collection keyed by connect address. Queries run
// concurrently but merge in configured keyword order, so when two keywords return
// the same address the later keyword wins, same as a sequential pass would give.
func (b *serverBrowser) fetchServers(ctx context.Context) (map[string]ServerEntry, []error) {
	var (
		results     = make([][]rawServer, len(b.settings.Include))
		queryErrors = make([]error, len(b.settings.Include))
	)

	group, groupCtx := errgroup.WithContext(ctx)

	for index, keyword := range b.settings.Include {
		index, keyword := index, keyword

		group.Go(func() error {
			records, errQuery := b.client.Query(groupCtx, keyword)
			if errQuery != nil {
				queryErrors[index] = errQuery

				return nil
			}

			results[index] = records

			return nil
		})
	}

	// Query failures are collected per keyword, never returned.
	_ = group.Wait()

	servers := map[string]ServerEntry{}

	var failures []error

	for index, keyword := range b.settings.Include {
		if errQuery := queryErrors[index]; errQuery != nil {
			slog.Debug("Directory query failed", slog.String("keyword", keyword), errAttr(errQuery))

			failures = append(failures, errQuery)

			continue
		}

		for _, record := range results[index] {
			entry, ok, errEntry := newServerEntry(record, b.settings)
			if errEntry != nil {
				slog.Warn("Dropping server with malformed address",
					slog.String("addr", record.Addr), errAttr(errEntry))

				continue
			}

			if !ok {
				continue
			}

			servers[entry.Address] = entry
		}
	}

	return servers, failures
}

func (b *serverBrowser) update(ctx context.Context) {
	loading := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	loading.Suffix = " Loading servers..."
	loading.Start()

	servers, failures := b.fetchServers(ctx)

	loading.Stop()

	clearScreen(b.out)

	for _, errQuery := range failures {
		fmt.Fprintln(b.out, errorLine(errQuery))
	}

	for _, line := range renderServers(servers) {
		fmt.Fprintln(b.out, line)
	}
}

// start runs an immediate first cycle then repolls on a fixed interval until the
// context is cancelled. Cancellation also aborts any in-flight directory queries.
func (b *serverBrowser) start(ctx context.Context) {
	timer := time.NewTicker(durationPollInterval)
	defer timer.Stop()

	b.update(ctx)

	for {
		select {
		case <-timer.C:
			b.update(ctx)
		case <-ctx.Done():
			return
		}
	}
}
