package main

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"gastropath/internal/adapters/observability"
	"gastropath/internal/domain"
	"gastropath/internal/shared"
	"gastropath/internal/wiring"
)

// importer adds every location reference given as an argument, or one per
// stdin line when there are no arguments.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	refs := os.Args[1:]
	if len(refs) == 0 {
		refs = readLines()
	}
	log.Info().Int("refs", len(refs)).Int("workers", cfg.ImportWorkers).Msg("importer starting")

	p, err := wiring.Pipeline(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize pipeline")
	}

	sem := semaphore.NewWeighted(int64(cfg.ImportWorkers))
	var wg sync.WaitGroup
	var created, present, failed atomic.Int64

	for _, ref := range refs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			defer sem.Release(1)

			out, err := p.Add(ctx, domain.LocationReference(ref))
			if err != nil {
				failed.Add(1)
				log.Warn().Str("ref", ref).Str("kind", string(domain.KindOf(err))).Err(err).Msg("import failed")
				return
			}
			if out.Created {
				created.Add(1)
			} else {
				present.Add(1)
			}
			log.Info().Str("ref", ref).Str("name", out.Record.Name).Bool("created", out.Created).Msg("import ok")
		}(ref)
	}

	wg.Wait()
	log.Info().
		Int64("created", created.Load()).
		Int64("present", present.Load()).
		Int64("failed", failed.Load()).
		Msg("import completed")
	if failed.Load() > 0 {
		os.Exit(1)
	}
}

func readLines() []string {
	var out []string
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		log.Fatal().Err(err).Msg("read stdin failed")
	}
	return out
}
