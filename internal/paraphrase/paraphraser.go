package paraphrase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/humanizer/internal/cache"
	"github.com/ppiankov/humanizer/internal/model"
	"github.com/ppiankov/humanizer/internal/preserve"
	"github.com/ppiankov/humanizer/internal/util"
	"github.com/ppiankov/humanizer/internal/worker"
)

// Fallback rewrites a batch locally when the upstream cannot
type Fallback interface {
	Transform(text string, intensity model.Intensity) string
}

// Options tune a Paraphraser
type Options struct {
	BatchDelay    time.Duration // Minimum spacing between upstream calls
	MaxBatchChars int           // Batches this long or longer skip the upstream
	Cache         cache.Cache   // Optional result cache
	CacheTTL      time.Duration
	Model         string // Part of the cache key
	Logger        *slog.Logger
	Preserver     *preserve.Preserver // Upstream output must keep every extracted term
}

// Stats counts how each batch was handled
type Stats struct {
	Batches   int
	Upstream  int
	CacheHits int
	Fallbacks int
}

// Paraphraser sends text to a Provider in sentence batches
type Paraphraser struct {
	provider Provider
	fallback Fallback
	opts     Options
	limiter  *worker.Limiter
	logger   *slog.Logger
}

// NewParaphraser creates a paraphraser; provider may be nil, in which case
// every batch goes to the fallback
func NewParaphraser(provider Provider, fallback Fallback, opts Options) *Paraphraser {
	if opts.MaxBatchChars <= 0 {
		opts.MaxBatchChars = 500
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if provider != nil {
		logger = logger.With("provider", provider.Name())
	}
	return &Paraphraser{
		provider: provider,
		fallback: fallback,
		opts:     opts,
		limiter:  worker.NewIntervalLimiter(opts.BatchDelay),
		logger:   logger,
	}
}

// Provider returns the configured upstream, or nil
func (p *Paraphraser) Provider() Provider {
	return p.provider
}

// Paraphrase rewrites text batch by batch and never fails: every upstream
// problem is logged and the batch is rewritten by the fallback instead
func (p *Paraphraser) Paraphrase(ctx context.Context, text string, intensity model.Intensity) (string, Stats) {
	var stats Stats

	sentences := util.SplitSentences(text)
	if len(sentences) == 0 {
		return text, stats
	}

	size := model.ConfigFor(intensity).ParaphraseBatchSize
	if size <= 0 {
		size = 1
	}

	var out []string
	for i := 0; i < len(sentences); i += size {
		end := i + size
		if end > len(sentences) {
			end = len(sentences)
		}
		batch := strings.TrimSpace(util.JoinSentences(sentences[i:end]))
		stats.Batches++

		rewritten, source := p.paraphraseBatch(ctx, batch, stats.Batches, intensity)
		switch source {
		case sourceUpstream:
			stats.Upstream++
		case sourceCache:
			stats.CacheHits++
		default:
			stats.Fallbacks++
		}
		if rewritten != "" {
			out = append(out, rewritten)
		}
	}

	result := postProcess(strings.Join(out, " "))
	if result == "" {
		return text, stats
	}
	return result, stats
}

type batchSource int

const (
	sourceFallback batchSource = iota
	sourceUpstream
	sourceCache
)

func (p *Paraphraser) paraphraseBatch(ctx context.Context, batch string, n int, intensity model.Intensity) (string, batchSource) {
	if p.provider == nil || batch == "" || len(batch) >= p.opts.MaxBatchChars {
		return p.fallback.Transform(batch, intensity), sourceFallback
	}

	key := cache.Key("paraphrase", p.provider.Name(), p.opts.Model, batch)
	if p.opts.Cache != nil {
		if data, ok := p.opts.Cache.Get(key); ok {
			return string(data), sourceCache
		}
	}

	rewritten, err := p.callUpstream(ctx, batch)
	if err != nil {
		p.logger.Warn("paraphrase upstream failed, using rules",
			"batch", n,
			"error", err,
		)
		return p.fallback.Transform(batch, intensity), sourceFallback
	}

	if p.opts.Cache != nil {
		if err := p.opts.Cache.Set(key, []byte(rewritten), p.opts.CacheTTL); err != nil {
			p.logger.Debug("paraphrase cache write failed", "error", err)
		}
	}
	return rewritten, sourceUpstream
}

func (p *Paraphraser) callUpstream(ctx context.Context, batch string) (string, error) {
	if err := p.limiter.Wait(ctx, p.provider.Name()); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}

	rewritten, err := p.provider.Paraphrase(ctx, batch)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}

	rewritten = strings.TrimSpace(rewritten)
	switch {
	case rewritten == "":
		return "", fmt.Errorf("%w: empty response", model.ErrUpstreamUnavailable)
	case rewritten == batch:
		return "", fmt.Errorf("%w: response identical to input", model.ErrUpstreamUnavailable)
	}

	if p.opts.Preserver != nil {
		for _, term := range p.opts.Preserver.Extract(batch) {
			if !strings.Contains(rewritten, term) {
				return "", fmt.Errorf("%w: response dropped term %q", model.ErrUpstreamUnavailable, term)
			}
		}
	}
	return rewritten, nil
}

// postProcess capitalizes every sentence and collapses whitespace
func postProcess(text string) string {
	sentences := util.SplitSentences(text)
	for i := range sentences {
		sentences[i].Body = capitalize(sentences[i].Body)
	}
	return util.NormalizeSpace(util.JoinSentences(sentences))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
