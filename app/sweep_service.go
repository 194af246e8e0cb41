package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"studysize/domain/core"
	"studysize/domain/table"
	"studysize/internal"
	"studysize/internal/calculator"
	"studysize/ports"
)

// SweepService evaluates one catalog function over the Cartesian product of
// candidate argument values.
type SweepService struct {
	catalog           ports.FunctionCatalogPort
	workers           int
	maxRows           int
	defaultConfidence float64
	logger            *internal.Logger
}

// SweepOptions bounds a sweep.
type SweepOptions struct {
	Workers           int
	MaxRows           int
	DefaultConfidence float64
}

// SweepRequest names a function and, per parameter, its candidate values.
// A scalar is a one-element sequence.
type SweepRequest struct {
	Function string               `json:"function" validate:"required"`
	Args     map[string][]float64 `json:"args"`
}

// SweepResult contains the complete output of a sweep
type SweepResult struct {
	SweepID     core.SweepID          `json:"sweep_id"`
	Function    string                `json:"function"`
	Table       *table.Table          `json:"table"`
	Summary     []table.ColumnSummary `json:"summary"`
	Fingerprint core.Hash             `json:"fingerprint"`
	RuntimeMs   int64                 `json:"runtime_ms"`
}

// NewSweepService creates a sweep service
func NewSweepService(catalog ports.FunctionCatalogPort, opts SweepOptions, logger *internal.Logger) *SweepService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxRows < 1 {
		opts.MaxRows = 100000
	}
	if !(opts.DefaultConfidence > 0 && opts.DefaultConfidence < 1) {
		opts.DefaultConfidence = 0.95
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SweepService{
		catalog:           catalog,
		workers:           opts.Workers,
		maxRows:           opts.MaxRows,
		defaultConfidence: opts.DefaultConfidence,
		logger:            logger,
	}
}

// Map evaluates req.Function once per combination of argument values. Rows
// are ordered with the first declared parameter varying slowest. Any failing
// combination fails the whole sweep.
func (s *SweepService) Map(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	startTime := time.Now()

	fn, err := s.catalog.Lookup(req.Function)
	if err != nil {
		return nil, err
	}
	grid, err := s.resolveGrid(fn, req.Args)
	if err != nil {
		return nil, err
	}
	count, err := s.combinations(grid)
	if err != nil {
		return nil, err
	}

	sweepID := core.NewSweepID()
	log := s.logger.With("sweep_id", sweepID.String())
	log.Debug("sweep %s: %d combinations on %d workers", fn.Name, count, s.workers)

	rows := make([][]float64, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := 0; i < count; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		args := combination(grid, i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cells, err := fn.Eval(args)
			if err != nil {
				return fmt.Errorf("combination %d (%s): %w", i+1, describe(fn, args), err)
			}
			row := make([]float64, len(cells))
			for c, cell := range cells {
				row[c] = cell.Value
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("sweep %s failed: %v", fn.Name, err)
		return nil, err
	}
	// errgroup does not surface a parent cancellation that stopped scheduling
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := table.New(fn.Columns(), count)
	for _, row := range rows {
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}

	result := &SweepResult{
		SweepID:     sweepID,
		Function:    fn.Name,
		Table:       t,
		Summary:     t.Summarize(fn.Outputs...),
		Fingerprint: t.Fingerprint(),
		RuntimeMs:   time.Since(startTime).Milliseconds(),
	}
	log.Info("sweep %s: %d rows, fingerprint %s", fn.Name, t.Len(), result.Fingerprint.Short())
	return result, nil
}

// resolveGrid orders candidate values by parameter, filling defaults.
func (s *SweepService) resolveGrid(fn calculator.Function, args map[string][]float64) ([][]float64, error) {
	known := make(map[string]bool, len(fn.Params))
	grid := make([][]float64, len(fn.Params))
	for i, p := range fn.Params {
		known[p.Name] = true
		values, ok := args[p.Name]
		switch {
		case ok && len(values) == 0:
			return nil, core.NewInvalidArgument(p.Name, "needs at least one value")
		case ok:
			grid[i] = values
		case p.Name == "ci":
			grid[i] = []float64{s.defaultConfidence}
		case p.Default != nil:
			grid[i] = []float64{*p.Default}
		default:
			return nil, core.NewInvalidArgument(p.Name, "is required by "+fn.Name)
		}
	}
	for name := range args {
		if !known[name] {
			return nil, core.NewInvalidArgument(name, "is not a parameter of "+fn.Name)
		}
	}
	return grid, nil
}

func (s *SweepService) combinations(grid [][]float64) (int, error) {
	count := 1
	for _, values := range grid {
		if count > math.MaxInt/len(values) || count*len(values) > s.maxRows {
			return 0, core.NewInvalidArgument("args", fmt.Sprintf("sweep exceeds the limit of %d rows", s.maxRows))
		}
		count *= len(values)
	}
	return count, nil
}

// combination decodes row index i as a mixed-radix number whose last digit is
// the last parameter.
func combination(grid [][]float64, i int) []float64 {
	args := make([]float64, len(grid))
	for p := len(grid) - 1; p >= 0; p-- {
		n := len(grid[p])
		args[p] = grid[p][i%n]
		i /= n
	}
	return args
}

func describe(fn calculator.Function, args []float64) string {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = fmt.Sprintf("%s=%g", fn.Params[i].Name, v)
	}
	return strings.Join(parts, ", ")
}
