// Package service is the entry point the CLI, HTTP and MCP surfaces share.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"retodfa/internal/cache"
	"retodfa/internal/dto"
	"retodfa/internal/logging"
	"retodfa/internal/metrics"
	"retodfa/internal/regexlib"
)

// ErrTooLong is returned when an expression exceeds the configured limit.
var ErrTooLong = fmt.Errorf("%w: expression too long", regexlib.ErrMalformedExpression)

type Converter struct {
	cache   cache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
	maxLen  int
	limits  regexlib.Limits
}

type Option func(*Converter)

func WithCache(c cache.Cache) Option {
	return func(s *Converter) { s.cache = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Converter) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Converter) { s.logger = l }
}

// WithMaxExpressionLength rejects longer expressions before any work is
// done. Zero disables the check.
func WithMaxExpressionLength(n int) Option {
	return func(s *Converter) { s.maxLen = n }
}

// WithMaxDFAStates stops subset construction once n states exist. Zero
// disables the check.
func WithMaxDFAStates(n int) Option {
	return func(s *Converter) { s.limits.MaxDFAStates = n }
}

func New(opts ...Option) *Converter {
	s := &Converter{
		cache:  cache.Nop{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convert compiles expression over alphabet and returns the wire document.
// Input errors come back unwrapped so regexlib.Kind still classifies them.
func (s *Converter) Convert(ctx context.Context, alphabet, expression string) (*dto.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.maxLen > 0 && len(expression) > s.maxLen {
		s.metrics.ObserveConversion(regexlib.Kind(ErrTooLong), 0, 0)
		return nil, &regexlib.SyntaxError{
			Err:    ErrTooLong,
			Offset: s.maxLen,
			Detail: fmt.Sprintf("%d bytes, limit %d", len(expression), s.maxLen),
		}
	}

	alpha, err := regexlib.ParseAlphabet(alphabet)
	if err != nil {
		s.fail(err, alphabet, expression)
		return nil, err
	}

	key := cache.Key(alpha.Symbols(), regexlib.Normalize(expression))
	doc, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", "error", err)
	}
	s.metrics.CacheLookup(ok)
	if ok {
		s.logger.Debug("cache hit", "expression", expression)
		return doc, nil
	}

	start := time.Now()
	res, err := regexlib.CompileContext(ctx, alpha, expression, s.limits)
	if err != nil {
		s.fail(err, alphabet, expression)
		return nil, err
	}
	elapsed := time.Since(start)
	s.metrics.ObserveConversion("ok", elapsed, len(res.DFA.States))
	s.logger.Info("converted",
		"expression", res.Expression,
		"nfa_states", res.NFA.Len(),
		"dfa_states", len(res.DFA.States),
		"elapsed", elapsed,
	)

	doc = dto.FromResult(res)
	if err := s.cache.Set(ctx, key, doc); err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
	return doc, nil
}

// Match converts once and runs every input through the DFA. An input that
// cannot be split into alphabet symbols is reported in its own result; it
// does not fail the call.
func (s *Converter) Match(ctx context.Context, alphabet, expression string, inputs []string) ([]dto.MatchResult, error) {
	doc, err := s.Convert(ctx, alphabet, expression)
	if err != nil {
		return nil, err
	}
	alpha, err := regexlib.NewAlphabet(doc.Alphabet...)
	if err != nil {
		return nil, fmt.Errorf("rebuild alphabet: %w", err)
	}
	out := make([]dto.MatchResult, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := dto.MatchResult{Input: in}
		syms, err := alpha.Split(in)
		if err != nil {
			res.Error = err.Error()
			res.Kind = regexlib.Kind(err)
		} else {
			res.Accepted = doc.Accepts(syms)
			s.metrics.ObserveMatch(res.Accepted)
		}
		out = append(out, res)
	}
	return out, nil
}

func (s *Converter) fail(err error, alphabet, expression string) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.metrics.ObserveConversion("canceled", 0, 0)
		s.logger.Debug("conversion canceled", "expression", expression, "error", err)
		return
	}
	kind := regexlib.Kind(err)
	s.metrics.ObserveConversion(kind, 0, 0)
	if regexlib.IsInputError(err) {
		s.logger.Debug("conversion rejected", "kind", kind, "alphabet", alphabet, "expression", expression, "error", err)
		return
	}
	s.logger.Error("conversion failed", "alphabet", alphabet, "expression", expression, "error", err)
}
