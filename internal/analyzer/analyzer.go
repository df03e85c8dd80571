// Package analyzer runs the S-box calculators as one analysis pass.
package analyzer

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sboxscope/sboxscope/internal/metrics"
	"github.com/sboxscope/sboxscope/internal/parallel"
	"github.com/sboxscope/sboxscope/pkg/types"
)

// Metric task names, in report order
const (
	TaskBijectivity         = "bijectivity"
	TaskNonlinearity        = "nonlinearity"
	TaskSAC                 = "sac"
	TaskBICNL               = "bic_nl"
	TaskBICSAC              = "bic_sac"
	TaskLAP                 = "lap"
	TaskDifferential        = "differential"
	TaskAlgebraicDegree     = "algebraic_degree"
	TaskSACMatrix           = "sac_matrix"
	TaskBICNLAverage        = "bic_nl_average"
	TaskCorrelationImmunity = "correlation_immunity"
	TaskBalanced            = "balanced"
	TaskTransparencyOrder   = "transparency_order"
)

// Options configures an Engine
type Options struct {
	Workers    int          // Pool size; <= 0 means one per CPU
	Parallel   bool         // Fan calculators out over a worker pool
	Extended   bool         // Also compute the secondary figures
	Logger     *zap.Logger  // nil disables logging
	OnProgress ProgressFunc // Called once per finished calculator, possibly concurrently
}

// DefaultOptions returns parallel, core-only analysis
func DefaultOptions() Options {
	return Options{Parallel: true}
}

// Event reports one finished calculator
type Event struct {
	Metric  string
	Elapsed time.Duration
	Done    int
	Total   int
}

// ProgressFunc receives progress events
type ProgressFunc func(Event)

// Result is the outcome of one analysis pass
type Result struct {
	Name     string
	SBox     types.SBox
	Metrics  types.Metrics
	Extended *types.Extended
	Duration time.Duration
}

// PreconditionError reports a calculator that violated an internal
// precondition. The whole analysis is discarded when this happens.
type PreconditionError struct {
	Metric string
	Cause  error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violated in %s: %v", e.Metric, e.Cause)
}

func (e *PreconditionError) Unwrap() error {
	return e.Cause
}

type task struct {
	name string
	run  func()
}

// Engine computes metrics for S-boxes
type Engine struct {
	opts Options
	log  *zap.Logger
}

// New creates an engine
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{opts: opts, log: log}
}

// Tasks returns the names of the calculators an Analyze call will run
func (e *Engine) Tasks() []string {
	names := []string{
		TaskBijectivity,
		TaskNonlinearity,
		TaskSAC,
		TaskBICNL,
		TaskBICSAC,
		TaskLAP,
		TaskDifferential,
		TaskAlgebraicDegree,
	}
	if e.opts.Extended {
		names = append(names, TaskSACMatrix, TaskBICNLAverage, TaskCorrelationImmunity, TaskBalanced, TaskTransparencyOrder)
	}
	return names
}

// Analyze computes every metric of s. Either all metrics are returned or an
// error is; partial results are never exposed.
func (e *Engine) Analyze(name string, s types.SBox) (*Result, error) {
	start := time.Now()

	var (
		m   types.Metrics
		ext types.Extended
	)
	if err := e.run(e.plan(&s, &m, &ext)); err != nil {
		e.log.Error("analysis aborted", zap.String("sbox", name), zap.Error(err))
		return nil, err
	}

	res := &Result{
		Name:     name,
		SBox:     s,
		Metrics:  m,
		Duration: time.Since(start),
	}
	if e.opts.Extended {
		res.Extended = &ext
	}

	e.log.Info("analysis complete",
		zap.String("sbox", name),
		zap.Bool("bijective", m.Bijective),
		zap.Int("nonlinearity", m.Nonlinearity),
		zap.Int("differential_uniformity", m.DifferentialUniformity),
		zap.Duration("elapsed", res.Duration),
	)
	return res, nil
}

// plan binds each calculator to the field it fills; no two tasks share a field
func (e *Engine) plan(s *types.SBox, m *types.Metrics, ext *types.Extended) []task {
	all := map[string]func(){
		TaskBijectivity:  func() { m.Bijective = metrics.Bijective(s) },
		TaskNonlinearity: func() { m.Nonlinearity = metrics.Nonlinearity(s) },
		TaskSAC:          func() { m.SAC = metrics.SAC(s) },
		TaskBICNL:        func() { m.BICNL = metrics.BICNL(s) },
		TaskBICSAC:       func() { m.BICSAC = metrics.BICSAC(s) },
		TaskLAP: func() {
			bias := metrics.LAPMaxBias(s)
			m.LAP = metrics.LAPFrom(bias)
			ext.LAPMaxBias = bias
		},
		TaskDifferential: func() {
			du := metrics.DifferentialUniformity(s)
			m.DifferentialUniformity = du
			m.DAP = metrics.DAPFrom(du)
		},
		TaskAlgebraicDegree: func() { m.AlgebraicDegree = metrics.AlgebraicDegree(s) },
		TaskSACMatrix: func() {
			ext.SACMatrix = metrics.SACMatrix(s)
			ext.SACMaxDeviation = metrics.SACMaxDeviation(ext.SACMatrix)
		},
		TaskBICNLAverage:        func() { ext.BICNLAverage = metrics.BICNLAverage(s) },
		TaskCorrelationImmunity: func() { ext.CorrelationImmunity = metrics.CorrelationImmunity(s) },
		TaskBalanced:            func() { ext.Balanced = metrics.Balanced(s) },
		TaskTransparencyOrder:   func() { ext.TransparencyOrder = metrics.TransparencyOrder(s) },
	}

	names := e.Tasks()
	tasks := make([]task, 0, len(names))
	for _, n := range names {
		tasks = append(tasks, task{name: n, run: all[n]})
	}
	return tasks
}

func (e *Engine) run(tasks []task) error {
	var done atomic.Int64
	total := len(tasks)

	wrap := func(t task) func() error {
		return func() error {
			start := time.Now()
			if err := parallel.Safe(func() error { t.run(); return nil }); err != nil {
				return &PreconditionError{Metric: t.name, Cause: err}
			}
			elapsed := time.Since(start)
			e.log.Debug("metric computed", zap.String("metric", t.name), zap.Duration("elapsed", elapsed))
			if e.opts.OnProgress != nil {
				e.opts.OnProgress(Event{
					Metric:  t.name,
					Elapsed: elapsed,
					Done:    int(done.Add(1)),
					Total:   total,
				})
			}
			return nil
		}
	}

	if !e.opts.Parallel {
		for _, t := range tasks {
			if err := wrap(t)(); err != nil {
				return err
			}
		}
		return nil
	}

	pool, err := parallel.NewWorkerPool(&parallel.WorkerPoolOptions{Size: e.opts.Workers})
	if err != nil {
		return err
	}
	defer pool.Shutdown()

	for _, t := range tasks {
		if err := pool.Submit(wrap(t)); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", t.name, err)
		}
	}
	err = pool.Wait()
	stats := pool.Stats()
	e.log.Debug("worker pool drained",
		zap.Int("capacity", stats.Capacity),
		zap.Int64("submitted", stats.Submitted),
		zap.Int64("completed", stats.Completed),
		zap.Int64("failed", stats.Failed),
	)
	return err
}
