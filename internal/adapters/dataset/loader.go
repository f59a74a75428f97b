package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/okian/laureates/internal/domain/lifespan"
	"github.com/okian/laureates/internal/domain/model"
	"github.com/okian/laureates/pkg/logger"
	"github.com/okian/laureates/pkg/metrics"
)

// ctxCheckEvery is how many rows are read between cancellation checks.
const ctxCheckEvery = 256

// SchemaError collects the row-level problems found while loading. It
// matches ErrSchema with errors.Is, as well as each listed violation.
type SchemaError struct {
	Violations []error
	Truncated  bool // more violations existed than were collected
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	suffix := ""
	if e.Truncated {
		suffix = "; ..."
	}
	return fmt.Sprintf("%s: %d problem(s): %s%s", ErrSchema, len(e.Violations), strings.Join(msgs, "; "), suffix)
}

// Unwrap exposes ErrSchema and every violation to errors.Is/As.
func (e *SchemaError) Unwrap() []error {
	return append([]error{ErrSchema}, e.Violations...)
}

type loader struct {
	maxViolations int
	logger        logger.Logger
	allowEmpty    bool
}

func newLoader(opts []Option) *loader {
	l := &loader{
		maxViolations: defaultMaxViolations,
		logger:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and validates the CSV file at path. Any failure is fatal for the
// caller: the file is missing, unreadable, or violates the schema.
func Load(ctx context.Context, path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		metrics.RecordDatasetLoadFailure(0)
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	s, err := read(ctx, f, path, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Read is Load for an already open stream.
func Read(ctx context.Context, r io.Reader, opts ...Option) (*Store, error) {
	return read(ctx, r, "", opts)
}

func read(ctx context.Context, r io.Reader, source string, opts []Option) (*Store, error) {
	l := newLoader(opts)
	start := time.Now()

	recs, aliased, err := l.parse(ctx, r)
	if err != nil {
		var se *SchemaError
		n, truncated := 1, false
		if errors.As(err, &se) {
			n, truncated = len(se.Violations), se.Truncated
		}
		metrics.RecordDatasetLoadFailure(n)
		l.logger.Error(ctx, "dataset rejected",
			logger.String("source", source),
			logger.Int("violations", n),
			logger.Bool("truncated", truncated),
			logger.Error(err))
		return nil, err
	}

	s := newStore(lifespan.DeriveAll(recs), source, aliased)
	took := time.Since(start)
	metrics.RecordDatasetLoad(s.Len(), s.MissingAges(), aliased, float64(took.Microseconds())/1000)

	if aliased > 0 {
		l.logger.Warn(ctx, "category alias mapped to canonical label",
			logger.Int("rows", aliased),
			logger.String("canonical", "Economics"))
	}
	l.logger.Info(ctx, "dataset loaded",
		logger.String("source", source),
		logger.String("dataset_id", s.ID()),
		logger.Int("records", s.Len()),
		logger.Int("missing_ages", s.MissingAges()),
		logger.Duration("took", took))
	return s, nil
}

// parse reads the header and every row. Row problems are collected up to
// maxViolations and returned together as a *SchemaError.
func (l *loader) parse(ctx context.Context, r io.Reader) ([]model.Laureate, int, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, &SchemaError{Violations: []error{ErrEmpty}}
	}
	if err != nil {
		return nil, 0, &SchemaError{Violations: []error{fmt.Errorf("header: %w", err)}}
	}
	sch, err := newSchema(header)
	if err != nil {
		return nil, 0, &SchemaError{Violations: []error{err}}
	}

	var (
		recs       []model.Laureate
		aliased    int
		violations []error
		truncated  bool
	)
	// add records a violation and reports whether reading should go on.
	// Truncated is only set once a violation arrives past the cap.
	add := func(err error) bool {
		if len(violations) >= l.maxViolations {
			truncated = true
			return false
		}
		violations = append(violations, err)
		return true
	}
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 && ctx.Err() != nil {
			return nil, 0, fmt.Errorf("read cancelled: %w", ctx.Err())
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if !add(err) || !errors.Is(err, csv.ErrFieldCount) {
				break
			}
			continue
		}
		line, _ := cr.FieldPos(0)
		rec, alias, err := sch.record(row)
		if err != nil {
			if !add(fmt.Errorf("line %d: %w", line, err)) {
				break
			}
			continue
		}
		recs = append(recs, rec)
		if alias {
			aliased++
		}
	}

	if len(violations) > 0 {
		return nil, 0, &SchemaError{Violations: violations, Truncated: truncated}
	}
	if len(recs) == 0 && !l.allowEmpty {
		return nil, 0, &SchemaError{Violations: []error{ErrEmpty}}
	}
	return recs, aliased, nil
}
