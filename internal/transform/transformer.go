// Package transform rewrites machine-sounding text into a more casual,
// human register using the lexicon's rule tables.
//
// A Transformer is stateless between calls. Every rewrite decision draws
// from a source keyed on the call seed, the stage and the candidate text, so
// concurrent calls never share state, a fixed seed makes the output
// reproducible, and raising the intensity only ever adds rewrites.
package transform

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ppiankov/humanizer/internal/lexicon"
	"github.com/ppiankov/humanizer/internal/model"
	"github.com/ppiankov/humanizer/internal/preserve"
)

// Stats counts the rewrites applied by one Transform call
type Stats struct {
	PhraseSubstitutions int `json:"phrase_substitutions"`
	Fillers             int `json:"fillers"`
	Contractions        int `json:"contractions"`
	Splits              int `json:"splits"`
	Merges              int `json:"merges"`
	Framings            int `json:"framings"`
	PassiveRewrites     int `json:"passive_rewrites"`
	Synonyms            int `json:"synonyms"`
}

// Total returns the number of rewrites of any kind
func (s Stats) Total() int {
	return s.PhraseSubstitutions + s.Fillers + s.Contractions + s.Splits +
		s.Merges + s.Framings + s.PassiveRewrites + s.Synonyms
}

// Option configures a Transformer
type Option func(*Transformer)

// WithSeed makes every call draw from a source seeded with seed
func WithSeed(seed int64) Option {
	return func(t *Transformer) {
		t.seed = &seed
	}
}

// WithPreserver overrides the term extractor used to protect terms
func WithPreserver(p *preserve.Preserver) Option {
	return func(t *Transformer) {
		t.preserver = p
	}
}

// Transformer applies the ordered rewrite stages
type Transformer struct {
	lex       *lexicon.Lexicon
	preserver *preserve.Preserver
	seed      *int64
	seeds     *seeder
}

// New creates a transformer over lex
func New(lex *lexicon.Lexicon, opts ...Option) *Transformer {
	if lex == nil {
		lex = lexicon.Default()
	}
	t := &Transformer{
		lex:   lex,
		seeds: newSeeder(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.preserver == nil {
		t.preserver = preserve.New(lex)
	}
	return t
}

// Transform rewrites text at the given intensity
// Blank input, or a rewrite that comes out empty, returns text unchanged
func (t *Transformer) Transform(text string, intensity model.Intensity) string {
	out, _ := t.TransformWithStats(text, intensity)
	return out
}

// TransformWithStats is Transform that also reports what was rewritten
func (t *Transformer) TransformWithStats(text string, intensity model.Intensity) (string, Stats) {
	if strings.TrimSpace(text) == "" {
		return text, Stats{}
	}

	r := t.newRun(text, intensity, t.preserver.Extract(text))

	out := r.text
	out = r.substitutePhrases(out)
	out = r.injectFillers(out, r.cfg.CasualFiller, false)
	out = r.contract(out, r.cfg.Contraction, r.cfg.Contraction*negationFactor)
	out = r.reshape(out)
	out = r.frame(out)
	out = r.activateVoice(out)
	out = r.swapSynonyms(out, stageSynonyms, t.lex.SynonymPattern, t.lex.Synonyms, r.cfg.SynonymSwap)

	return r.finish(out, text), r.stats
}

// stage names a decision stream within one call
type stage uint64

const (
	stagePhrases stage = iota + 1
	stageFillers
	stageContractions
	stageNegations
	stageSplits
	stageMerges
	stageFraming
	stageMidFraming
	stagePassive
	stageSynonyms
	stageRevisitFillers
	stageAdditionalSynonyms
)

// run holds the state of a single call
type run struct {
	lex   *lexicon.Lexicon
	cfg   model.TransformConfig
	seed  uint64
	seen  map[candidate]int // Occurrences drawn so far per candidate
	ph    *preserve.Placeholders
	text  string // Protected input
	stats Stats
}

type candidate struct {
	stage stage
	key   string
}

func (t *Transformer) newRun(text string, intensity model.Intensity, terms []string) *run {
	protected, ph := preserve.Protect(text, terms)
	return &run{
		lex:  t.lex,
		cfg:  model.ConfigFor(intensity),
		seed: uint64(t.nextSeed()),
		seen: make(map[candidate]int),
		ph:   ph,
		text: protected,
	}
}

func (t *Transformer) nextSeed() int64 {
	if t.seed != nil {
		return *t.seed
	}
	return t.seeds.next()
}

// source returns the random source for the next occurrence of key in st
// The same occurrence gets the same source at every intensity, so a gate
// that passes at a lower probability also passes at a higher one.
func (r *run) source(st stage, key string) *rand.Rand {
	c := candidate{stage: st, key: strings.ToLower(key)}
	n := r.seen[c]
	r.seen[c] = n + 1

	var buf [8]byte
	h := fnv.New64a()
	_, _ = h.Write([]byte(c.key))
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	_, _ = h.Write(buf[:])

	return rand.New(rand.NewPCG(r.seed^uint64(st), h.Sum64()))
}

// chance draws one gate value for key
func (r *run) chance(st stage, key string, p float64) bool {
	return r.source(st, key).Float64() < p
}

// pick draws a gate value and then a choice index in [0,n) for key
func (r *run) pick(st stage, key string, p float64, n int) (bool, int) {
	src := r.source(st, key)
	hit := src.Float64() < p
	if n <= 0 {
		return false, 0
	}
	return hit, src.IntN(n)
}

// slot keys a decision that belongs to a position rather than to a word
func slot(i int) string {
	return "#" + strconv.Itoa(i)
}

// seeder hands out seeds for unseeded calls
type seeder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newSeeder(seed int64) *seeder {
	return &seeder{rng: rand.New(rand.NewPCG(uint64(seed), 0))}
}

func (s *seeder) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int64()
}
