// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vigcrack/vigcrack/internal/cipher"
	"github.com/vigcrack/vigcrack/internal/config"
)

// ErrUnsupportedFormat is returned when no registered reader accepts a document.
var ErrUnsupportedFormat = errors.New("unsupported input format")

type Pipeline struct {
	readers   []Reader
	cfg       config.Config
	sampler   Sampler
	reference Distribution
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithReaders registers input readers. They are tried in order.
func WithReaders(readers ...Reader) Option {
	return func(p *Pipeline) {
		p.readers = append(p.readers, readers...)
	}
}

// WithConfig replaces the default tuning parameters.
func WithConfig(cfg config.Config) Option {
	return func(p *Pipeline) {
		p.cfg = cfg
	}
}

// WithSampler injects the random source used by the coincidence estimator.
func WithSampler(s Sampler) Option {
	return func(p *Pipeline) {
		p.sampler = s
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// NewPipeline creates a Pipeline. Without a sampler one is seeded from the
// configured seed, or from the clock when that is zero.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:       config.Default(),
		reference: English,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sampler == nil {
		p.sampler = NewSampler(p.cfg.Seed)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	return p
}

// Run reads doc with the first matching reader, normalizes it and cracks it.
func (p *Pipeline) Run(ctx context.Context, doc Document) (Result, error) {
	reader, err := p.selectReader(doc)
	if err != nil {
		return Result{}, err
	}

	raw, err := reader.Extract(ctx, doc)
	if err != nil {
		return Result{}, fmt.Errorf("reader %q failed: %w", reader.Name(), err)
	}

	result, err := p.Crack(ctx, cipher.Normalize(raw))
	if err != nil {
		return Result{}, err
	}
	result.ReaderUsed = reader.Name()
	return result, nil
}

// Crack runs key length selection, key recovery and decoding on text.
func (p *Pipeline) Crack(ctx context.Context, text cipher.Text) (Result, error) {
	runID := uuid.NewString()
	log := p.logger.With("run_id", runID)
	log.Info("run started", "letters", text.Len())

	selector := Selector{
		Estimator: Estimator{
			Sampler: p.sampler,
			Samples: p.cfg.Samples,
			Map:     cipher.ToUpper,
		},
		Threshold: p.cfg.Threshold,
		MaxStride: p.cfg.MaxStride,
	}
	keyLen, err := selector.Select(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("select key length: %w", err)
	}
	for _, s := range keyLen.Scanned {
		log.Debug("stride scored", "stride", s.Stride, "score", s.Score)
	}
	log.Info("key length selected", "stride", keyLen.Stride, "score", keyLen.Score, "scanned", len(keyLen.Scanned))

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("recover key: %w", err)
	}
	key, correlations := RecoverKey(text, keyLen.Stride, p.reference)
	columns := make([]ColumnReport, len(key))
	for col, shift := range key {
		freq := ColumnFrequencies(text, keyLen.Stride, col)
		columns[col] = DescribeColumn(col, freq, shift, correlations[col], p.reference)
		if columns[col].Degenerate {
			log.Warn("column has no letters", "column", col)
		}
	}
	log.Info("key recovered", "key", key.String(), "shifts", key.Shifts())

	return Result{
		RunID:     runID,
		Letters:   text.Len(),
		KeyLength: keyLen,
		Key:       key,
		Columns:   columns,
		Plaintext: cipher.DecodeText(text, key),
	}, nil
}

// selectReader returns the first registered reader that can handle doc.
func (p *Pipeline) selectReader(doc Document) (Reader, error) {
	for _, reader := range p.readers {
		if reader.CanHandle(doc) {
			return reader, nil
		}
	}
	return nil, fmt.Errorf("%w: no reader found for source %q (format hint: %q)", ErrUnsupportedFormat, doc.ID, doc.Format)
}

// RegisteredReaders returns the names of all registered readers.
func (p *Pipeline) RegisteredReaders() []string {
	names := make([]string, len(p.readers))
	for i, reader := range p.readers {
		names[i] = reader.Name()
	}
	return names
}
