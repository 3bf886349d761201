package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Batch processing limits.
const (
	DefaultBatchSize   = 50
	MinBatchSize       = 1
	MaxBatchSize       = 1000
	DefaultConcurrency = 4
)

var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
)

// BatchFunc processes items[start:start+len(batch)]. batchIndex is 0-based.
type BatchFunc[T any] func(ctx context.Context, batch []T, start, batchIndex int) error

// Progress is reported after each completed batch.
type Progress struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
}

// PercentComplete returns completion as 0-100.
func (p Progress) PercentComplete() float64 {
	if p.TotalItems == 0 {
		return 0
	}
	return float64(p.ProcessedItems) / float64(p.TotalItems) * 100
}

// Processor splits a slice into fixed-size batches and runs them on a
// bounded errgroup.
type Processor[T any] struct {
	batchSize   int
	concurrency int
	onProgress  func(Progress)

	mu       sync.Mutex
	progress Progress
}

// NewProcessor creates a processor. concurrency below 1 runs batches one at
// a time.
func NewProcessor[T any](batchSize, concurrency int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize, concurrency: max(1, concurrency)}, nil
}

// WithProgress sets a callback invoked after each batch. Calls are serialised.
func (p *Processor[T]) WithProgress(fn func(Progress)) *Processor[T] {
	p.onProgress = fn
	return p
}

// Batches returns the [start, end) bounds of each batch for n items.
func (p *Processor[T]) Batches(n int) [][2]int {
	var out [][2]int
	for start := 0; start < n; start += p.batchSize {
		out = append(out, [2]int{start, min(start+p.batchSize, n)})
	}
	return out
}

// Process runs fn over every batch. The first error cancels the remaining
// batches and is returned.
func (p *Processor[T]) Process(ctx context.Context, items []T, fn BatchFunc[T]) error {
	if fn == nil {
		return ErrNilCallback
	}
	bounds := p.Batches(len(items))

	p.mu.Lock()
	p.progress = Progress{TotalItems: len(items), TotalBatches: len(bounds)}
	p.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, b := range bounds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(gctx, items[b[0]:b[1]], b[0], i); err != nil {
				return fmt.Errorf("batch %d failed: %w", i, err)
			}
			p.advance(b[1] - b[0])
			return nil
		})
	}
	return g.Wait()
}

func (p *Processor[T]) advance(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress.ProcessedItems += n
	p.progress.ProcessedBatches++
	if p.onProgress != nil {
		p.onProgress(p.progress)
	}
}
