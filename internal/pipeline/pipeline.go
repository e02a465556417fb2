// Package pipeline wires the detector, transformer, paraphraser and change
// analyzer into the detect, transform and process operations.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ppiankov/humanizer/internal/analyze"
	"github.com/ppiankov/humanizer/internal/cache"
	"github.com/ppiankov/humanizer/internal/detect"
	"github.com/ppiankov/humanizer/internal/lexicon"
	"github.com/ppiankov/humanizer/internal/model"
	"github.com/ppiankov/humanizer/internal/paraphrase"
	"github.com/ppiankov/humanizer/internal/preserve"
	"github.com/ppiankov/humanizer/internal/transform"
)

// EscalationThreshold is the minimum score drop a transform must achieve
// before the additional pass is skipped
const EscalationThreshold = 0.1

// Pipeline runs the humanizer operations; it keeps no state between calls
type Pipeline struct {
	detector    *detect.Detector
	transformer *transform.Transformer
	preserver   *preserve.Preserver
	paraphraser *paraphrase.Paraphraser // nil when no upstream is configured
	logger      *slog.Logger
	now         func() time.Time
}

type options struct {
	logger   *slog.Logger
	lexicon  *lexicon.Lexicon
	seed     *int64
	provider paraphrase.Provider
	cache    cache.Cache
	now      func() time.Time
}

// Option configures a Pipeline
type Option func(*options)

// WithLogger sets the logger used for paraphrase fallbacks and escalations
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithLexicon overrides the lexicon named in the config
func WithLexicon(lex *lexicon.Lexicon) Option {
	return func(o *options) { o.lexicon = lex }
}

// WithSeed fixes the transformer seed
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = &seed }
}

// WithProvider overrides the paraphrase provider built from the config
func WithProvider(p paraphrase.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithCache overrides the paraphrase cache built from the config
func WithCache(c cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithClock sets the time source for result timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	lex := o.lexicon
	if lex == nil {
		var err error
		if lex, err = loadLexicon(cfg.Transform.LexiconPath); err != nil {
			return nil, err
		}
	}

	seed := o.seed
	if seed == nil && cfg.Transform.Seed != 0 {
		seed = &cfg.Transform.Seed
	}

	preserver := preserve.New(lex)
	topts := []transform.Option{transform.WithPreserver(preserver)}
	if seed != nil {
		topts = append(topts, transform.WithSeed(*seed))
	}
	transformer := transform.New(lex, topts...)

	p := &Pipeline{
		detector:    detect.NewDetector(lex, detect.DefaultWeights()),
		transformer: transformer,
		preserver:   preserver,
		logger:      logger,
		now:         o.now,
	}

	provider := o.provider
	if provider == nil {
		var err error
		provider, err = paraphrase.NewProvider(paraphrase.ConfigFromModel(cfg.Paraphrase))
		if err != nil {
			// Paraphrasing is optional; the rules still work
			logger.Warn("paraphrase provider disabled", "error", err)
			provider = nil
		}
	}
	if provider != nil {
		c := o.cache
		if c == nil && cfg.Cache.Enabled {
			c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		}
		p.paraphraser = paraphrase.NewParaphraser(provider, transformer, paraphrase.Options{
			BatchDelay:    cfg.Paraphrase.BatchDelay,
			MaxBatchChars: cfg.Paraphrase.MaxBatchChars,
			Cache:         c,
			CacheTTL:      cfg.Cache.DiskTTL,
			Model:         cfg.Paraphrase.Model,
			Logger:        logger,
			Preserver:     preserver,
		})
	}

	return p, nil
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default(), nil
	}
	lex, err := lexicon.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return lex, nil
}

// Paraphrasing reports whether an external upstream is configured
func (p *Pipeline) Paraphrasing() bool {
	return p.paraphraser != nil
}

// Detect scores text
func (p *Pipeline) Detect(text string) (*model.DetectResult, error) {
	if isBlank(text) {
		return nil, model.ErrInvalidInput
	}
	return &model.DetectResult{
		Detection: p.detector.Score(text),
		CheckedAt: p.now().UTC(),
	}, nil
}

// Transform humanizes text, escalating once to the additional pass when the
// score did not drop by more than EscalationThreshold
func (p *Pipeline) Transform(ctx context.Context, text string, intensity model.Intensity) (*model.TransformResult, error) {
	if isBlank(text) {
		return nil, model.ErrInvalidInput
	}
	return p.transform(ctx, text, intensity, p.detector.Score(text)), nil
}

func (p *Pipeline) transform(ctx context.Context, text string, intensity model.Intensity, original model.ScoredText) *model.TransformResult {
	humanized, source := p.humanize(ctx, text, intensity)
	score := p.detector.Score(humanized)

	escalated := false
	if intensity != model.IntensityLow && original.Score-score.Score <= EscalationThreshold {
		humanized = p.transformer.AdditionalPass(humanized, intensity, p.preserver.Extract(text))
		score = p.detector.Score(humanized)
		escalated = true
		p.logger.Debug("applied additional pass",
			"intensity", intensity,
			"original_score", original.Score,
			"score", score.Score,
		)
	}

	return &model.TransformResult{
		Original:         text,
		Transformed:      humanized,
		Intensity:        intensity,
		OriginalScore:    original,
		TransformedScore: score,
		Changes:          analyze.Analyze(text, humanized),
		Escalated:        escalated,
		Source:           source,
	}
}

func (p *Pipeline) humanize(ctx context.Context, text string, intensity model.Intensity) (string, model.Source) {
	if p.paraphraser == nil {
		return p.transformer.Transform(text, intensity), model.SourceRules
	}
	out, stats := p.paraphraser.Paraphrase(ctx, text, intensity)
	if stats.Upstream+stats.CacheHits == 0 {
		return out, model.SourceRules
	}
	return out, model.SourceParaphrase
}

// Process detects and, when the text looks machine-written or force is set,
// runs the transform sequence
func (p *Pipeline) Process(ctx context.Context, text string, intensity model.Intensity, force bool) (*model.ProcessResult, error) {
	if isBlank(text) {
		return nil, model.ErrInvalidInput
	}

	detection := p.detector.Score(text)
	result := &model.ProcessResult{
		Original:  text,
		Detection: detection,
		Forced:    force,
		Triggered: detection.IsLikelyMachine || force,
	}
	if !result.Triggered {
		return result, nil
	}

	tr := p.transform(ctx, text, intensity, detection)
	result.Transformed = &tr.Transformed
	result.TransformedScore = &tr.TransformedScore
	result.Changes = &tr.Changes
	result.Escalated = tr.Escalated
	result.Source = tr.Source
	return result, nil
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
