// SPDX-License-Identifier: MIT

package decoder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/ashish33/geosolver2/formula"
	"github.com/ashish33/geosolver2/loglinear"
	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/rule"
)

var (
	// ErrNilModel is returned when a model is missing.
	ErrNilModel = errors.New("decoder: model is nil")

	// ErrModelArity is returned when a model serves the wrong arity class.
	ErrModelArity = errors.New("decoder: model arity mismatch")

	// ErrInvalidStart is returned when the start signature is not unary.
	ErrInvalidStart = errors.New("decoder: start signature must have valence 1")
)

// Input is one sentence to decode.
type Input struct {
	Context *rule.Context
	Start   *ontology.Signature
}

// Decoder turns tagged sentences into weighted formula sets using one
// unary and one binary model. It holds no per-call state.
type Decoder struct {
	unary      *loglinear.Model
	binary     *loglinear.Model
	logger     *slog.Logger
	maxResults int
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMaxResults keeps only the n most probable formulas; 0 keeps all.
// Merging happens before truncation.
func WithMaxResults(n int) Option {
	return func(d *Decoder) {
		if n >= 0 {
			d.maxResults = n
		}
	}
}

// New pairs a unary and a binary model.
func New(unary, binary *loglinear.Model, opts ...Option) (*Decoder, error) {
	if unary == nil || binary == nil {
		return nil, ErrNilModel
	}
	if unary.Arity() != ontology.Unary || binary.Arity() != ontology.Binary {
		return nil, fmt.Errorf("%w: got %s and %s", ErrModelArity, unary.Arity(), binary.Arity())
	}
	d := &Decoder{unary: unary, binary: binary, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// FormulaDistribution returns every fully grounded formula derivable from
// in.Start with its probability. Derivations producing the same tree are
// merged. The result is empty when no derivation reaches leaves everywhere.
func (d *Decoder) FormulaDistribution(ctx context.Context, in Input) (*Distribution, error) {
	ctx, span := tracer.Start(ctx, "decoder.FormulaDistribution")
	defer span.End()

	if in.Context == nil || in.Context.Sentence == nil {
		return nil, rule.ErrNilContext
	}
	if in.Start == nil || in.Start.Valence() != 1 {
		return nil, ErrInvalidStart
	}
	span.SetAttributes(
		attribute.Int("words", in.Context.Sentence.Len()),
		attribute.Int("tags", len(in.Context.Tags)),
		attribute.String("start", in.Start.ID()),
	)

	started := time.Now()
	w := &walker{d: d, ctx: ctx, input: in.Context, memo: make(map[string]*accum)}
	root, err := w.expand(rule.ImpliedSlot(in.Start), rule.NewPositionSet())
	decodeDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		decodeTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, err
	}

	dist := newDistribution(root, d.maxResults)
	outcome := "ok"
	if dist.Len() == 0 {
		outcome = "empty"
	}
	decodeTotal.WithLabelValues(outcome).Inc()
	formulasPerDecode.Observe(float64(len(root.entries)))
	span.SetAttributes(
		attribute.Int("formulas", len(root.entries)),
		attribute.Int("expansions", w.expansions),
	)
	d.logger.Debug("decoded sentence",
		slog.String("sentence", in.Context.Sentence.String()),
		slog.Int("formulas", len(root.entries)),
		slog.Int("expansions", w.expansions))
	return dist, nil
}

// DecodeAll decodes inputs concurrently, at most limit at a time (limit
// ≤ 0 means unbounded). Results are in input order; the first error
// cancels the rest.
func (d *Decoder) DecodeAll(ctx context.Context, inputs []Input, limit int) ([]*Distribution, error) {
	out := make([]*Distribution, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range inputs {
		g.Go(func() error {
			dist, err := d.FormulaDistribution(gctx, inputs[i])
			if err != nil {
				return fmt.Errorf("decoder: input %d: %w", i, err)
			}
			out[i] = dist
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// walker carries the state of one FormulaDistribution call.
type walker struct {
	d          *Decoder
	ctx        context.Context
	input      *rule.Context
	memo       map[string]*accum
	expansions int
}

// expand returns every subtree rooted at slot. The slot's own position
// joins the exclusion set handed to its children; siblings do not share
// exclusions.
func (w *walker) expand(slot rule.Slot, excluded rule.PositionSet) (*accum, error) {
	if err := w.ctx.Err(); err != nil {
		return nil, err
	}
	key := slot.Key() + excluded.Key()
	if a, ok := w.memo[key]; ok {
		return a, nil
	}

	var (
		a   *accum
		err error
	)
	switch slot.Sig.Arity() {
	case ontology.Leaf:
		a = newAccum()
		a.add(formula.Leaf(slot.Sig), 0)
	case ontology.Unary:
		a, err = w.expandUnary(slot, excluded.With(slot.Pos))
	case ontology.Binary:
		a, err = w.expandBinary(slot, excluded.With(slot.Pos))
	case ontology.Nary:
		w.d.logger.Debug("no model for signature", slog.String("signature", slot.Sig.ID()),
			slog.Int("valence", slot.Sig.Valence()))
		a = newAccum()
	}
	if err != nil {
		return nil, err
	}
	w.memo[key] = a
	return a, nil
}

func (w *walker) expandUnary(slot rule.Slot, excluded rule.PositionSet) (*accum, error) {
	local, err := w.d.unary.LogDistribution(w.input, slot, excluded)
	if err != nil {
		return nil, err
	}
	w.expansions++
	out := newAccum()
	for _, e := range local.Entries() {
		children, err := w.expand(e.Rule.Children()[0], excluded)
		if err != nil {
			return nil, err
		}
		for _, c := range children.entries {
			out.add(formula.New(slot.Sig, c.Formula), e.LogProb+c.LogProb)
		}
	}
	return out, nil
}

func (w *walker) expandBinary(slot rule.Slot, excluded rule.PositionSet) (*accum, error) {
	local, err := w.d.binary.LogDistribution(w.input, slot, excluded)
	if err != nil {
		return nil, err
	}
	w.expansions++
	out := newAccum()
	for _, e := range local.Entries() {
		children := e.Rule.Children()
		as, err := w.expand(children[0], excluded)
		if err != nil {
			return nil, err
		}
		bs, err := w.expand(children[1], excluded)
		if err != nil {
			return nil, err
		}
		for _, a := range as.entries {
			for _, b := range bs.entries {
				out.add(formula.New(slot.Sig, a.Formula, b.Formula), e.LogProb+a.LogProb+b.LogProb)
			}
		}
	}
	return out, nil
}
