package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/humanizer/internal/model"
)

// Processor runs the detect-then-humanize operation on one text
type Processor interface {
	Process(ctx context.Context, text string, intensity model.Intensity, force bool) (*model.ProcessResult, error)
}

// Loader reads the text of a source (a file path or URL)
type Loader func(ctx context.Context, source string) (string, error)

// DocumentJob processes one manifest entry
type DocumentJob struct {
	Index     int
	Source    string
	Intensity model.Intensity
	Force     bool
	Load      Loader
	Processor Processor
}

// Execute loads and processes the document
func (j *DocumentJob) Execute(ctx context.Context) Result {
	start := time.Now()
	res := &DocumentResult{Index: j.Index, Source: j.Source}

	text, err := j.Load(ctx, j.Source)
	if err != nil {
		res.Error = fmt.Errorf("load %s: %w", j.Source, err)
		res.Duration = time.Since(start)
		return res
	}

	result, err := j.Processor.Process(ctx, text, j.Intensity, j.Force)
	if err != nil {
		res.Error = fmt.Errorf("process %s: %w", j.Source, err)
	}
	res.Result = result
	res.Duration = time.Since(start)
	return res
}

// DocumentResult is the outcome of one DocumentJob
type DocumentResult struct {
	Index    int                  `json:"index"`
	Source   string               `json:"source"`
	Result   *model.ProcessResult `json:"result,omitempty"`
	Error    error                `json:"-"`
	Duration time.Duration        `json:"duration"`
}

// GetError returns the error from the document result
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor processes many documents concurrently
type BatchProcessor struct {
	processor   Processor
	load        Loader
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(processor Processor, load Loader, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		load:        load,
		concurrency: concurrency,
	}
}

// ProcessSources processes every source and returns results in input order
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string, intensity model.Intensity, force bool) []*DocumentResult {
	if len(sources) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()

	collected := make(chan []*DocumentResult, 1)
	go func() {
		var out []*DocumentResult
		for r := range pool.Results() {
			out = append(out, r.(*DocumentResult))
		}
		collected <- out
	}()

	for i, source := range sources {
		job := &DocumentJob{
			Index:     i,
			Source:    source,
			Intensity: intensity,
			Force:     force,
			Load:      b.load,
			Processor: b.processor,
		}
		if !pool.Submit(job) {
			break
		}
	}
	pool.Close()

	results := <-collected
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// ProcessManifest reads a manifest and processes its sources
func (b *BatchProcessor) ProcessManifest(ctx context.Context, path string, intensity model.Intensity, force bool) ([]*DocumentResult, error) {
	sources, err := ReadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.ProcessSources(ctx, sources, intensity, force), nil
}

// ReadManifest reads sources from a file, one file path or URL per line
// Blank lines and # comments are skipped; duplicates are dropped.
func ReadManifest(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
