package analyze

import (
	"context"
	"sync"

	"endingspan/ending"
	"endingspan/furigana"
	"endingspan/logger"
	"endingspan/model"
)

// DefaultWorkers is used when Options.Workers is not positive.
const DefaultWorkers = 4

// Options controls a batch run.
type Options struct {
	Workers int
	// Furigana converts bracket notation in both forms to ruby markup
	// before marking.
	Furigana bool
}

// Summary counts results per markup context.
type Summary struct {
	Total     int                   `json:"total"`
	ByContext map[model.Context]int `json:"by_context"`
	Fallbacks int                   `json:"fallbacks"`
}

// Report is the outcome of a batch run. Results follow input order.
type Report struct {
	Results []model.Result `json:"results"`
	Summary Summary        `json:"summary"`
}

// MarkPair marks a single pair, applying the furigana conversion when asked.
// The returned result carries the pair as given.
func MarkPair(p model.Pair, withFurigana bool) model.Result {
	base, form := p.BaseForm, p.Conjugation
	if withFurigana {
		base, form = furigana.ToRuby(base), furigana.ToRuby(form)
	}
	res := ending.Mark(base, form)
	res.Pair = p
	return res
}

// Run marks every pair on a pool of workers. It stops early and returns the
// context error when ctx is cancelled.
func Run(ctx context.Context, pairs []model.Pair, opts Options) (Report, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}
	log := logger.Ctx(ctx)
	log.Debug("batch start", "pairs", len(pairs), "workers", workers)

	results := make([]model.Result, len(pairs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = MarkPair(pairs[i], opts.Furigana)
				logger.WithPair(log, pairs[i]).Trace("pair marked",
					"context", results[i].Context, "split", results[i].SplitIndex)
			}
		}()
	}

feed:
	for i := range pairs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		log.Warn("batch cancelled", "err", err)
		return Report{}, err
	}

	report := Report{Results: results, Summary: Summarize(results)}
	log.Info("batch done", "total", report.Summary.Total, "fallbacks", report.Summary.Fallbacks)
	return report, nil
}

// Summarize counts results per context.
func Summarize(results []model.Result) Summary {
	s := Summary{Total: len(results), ByContext: make(map[model.Context]int)}
	for _, r := range results {
		s.ByContext[r.Context]++
		if r.Fallback {
			s.Fallbacks++
		}
	}
	return s
}
