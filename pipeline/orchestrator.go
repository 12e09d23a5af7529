package pipeline

import (
	"context"
	"errors"
	"io"
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/noise"
	"github.com/aence/hichew/search"
	"github.com/aence/hichew/segment"
)

// Result aggregates a full orchestrator run.
type Result struct {
	// OptParams maps each completed chromosome to its optimal parameter.
	// Skipped chromosomes (collapsed search region) are absent.
	OptParams map[string]float64
	// Stats maps chromosome and scanned window to the segmentation
	// statistics; populated by the insulation pipeline only.
	Stats map[string]map[float64]segment.Stats
	// All holds one row per segment per evaluated parameter; Optimal is
	// the subset at each chromosome's optimal parameter.
	All     dataframe.DataFrame
	Optimal dataframe.DataFrame
}

// Orchestrator runs the parameter search across chromosomes.
type Orchestrator struct {
	provider MatrixProvider
	gen      *segment.Generator
	cfg      Config
	log      *logrus.Entry
	// target is the expected segment size in resolution units.
	target float64
}

// New validates cfg and builds an orchestrator using provider for the
// matrices and adapter for the segmentation oracles.
func New(provider MatrixProvider, adapter *segment.Adapter, cfg Config) (*Orchestrator, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Log = logrus.NewEntry(l)
	}
	gen, err := segment.NewGenerator(adapter, segment.Options{
		Method:            cfg.Method,
		MaxInterTADSize:   cfg.MaxInterTADSize,
		MaxTADSize:        cfg.MaxTADSize,
		BadBinDistance:    cfg.BadBinDistance,
		AdaptiveThreshold: cfg.AdaptiveThreshold,
		Log:               cfg.Log,
	})
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		provider: provider,
		gen:      gen,
		cfg:      cfg,
		log:      cfg.Log,
		target:   cfg.Expected / float64(cfg.Resolution),
	}, nil
}

// chromOutcome is one chromosome task's local accumulator, merged into
// the shared tables only after the task completes.
type chromOutcome struct {
	chrom    string
	skipped  bool
	optParam float64
	all      []row
	optimal  []row
	stats    map[float64]segment.Stats
}

// Run executes the search for every configured chromosome on a bounded
// worker pool and merges the per-chromosome rows, in chromosome input
// order, into the combined and optimal-only tables. When OutDir is set
// both tables are also persisted as tab-delimited files.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	begin := time.Now()
	o.log.WithField("method", o.cfg.Method).Info("start searching optimal segmentation")

	grp, gctx := errgroup.WithContext(ctx)
	workers := o.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	grp.SetLimit(workers)

	outcomes := make([]*chromOutcome, len(o.cfg.Chromosomes))
	for i, chrom := range o.cfg.Chromosomes {
		i, chrom := i, chrom
		grp.Go(func() error {
			out, err := o.runChromosome(gctx, chrom)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		OptParams: make(map[string]float64),
		Stats:     make(map[string]map[float64]segment.Stats),
	}
	var all, optimal []row
	for _, out := range outcomes {
		if out == nil || out.skipped {
			continue
		}
		res.OptParams[out.chrom] = out.optParam
		if out.stats != nil {
			res.Stats[out.chrom] = out.stats
		}
		all = append(all, out.all...)
		optimal = append(optimal, out.optimal...)
	}
	res.All = o.buildFrame(all)
	res.Optimal = o.buildFrame(optimal)

	if o.cfg.OutDir != "" {
		if err := o.writeTables(res); err != nil {
			return nil, err
		}
	}
	o.log.WithField("elapsed", time.Since(begin).Round(time.Second)).
		Info("searching optimal segmentation completed")
	return res, nil
}

func (o *Orchestrator) runChromosome(ctx context.Context, chrom string) (*chromOutcome, error) {
	log := o.log.WithFields(logrus.Fields{"chrom": chrom, "method": o.cfg.Method})
	log.Info("start chromosome")
	begin := time.Now()

	m, err := o.provider.Matrix(ctx, o.cfg.Stage, chrom)
	if err != nil {
		return nil, err
	}
	nr, err := noise.BuildMask(m, o.cfg.Method, o.cfg.Percentile)
	if err != nil {
		return nil, err
	}
	eval := search.EvaluatorFunc(func(ctx context.Context, param float64, final bool) ([]hic.Segment, segment.Stats, error) {
		return o.gen.Generate(ctx, nr.Matrix, param, nr.Stripes, nr.Good, final)
	})

	var out *chromOutcome
	if o.cfg.Method == hic.Insulation {
		out, err = o.runInsulation(ctx, log, chrom, nr, eval)
	} else {
		out, err = o.runDensity(ctx, log, chrom, eval)
	}
	if err != nil {
		return nil, err
	}
	log.WithField("elapsed", time.Since(begin).Round(time.Millisecond)).Info("end chromosome")
	return out, nil
}

// runDensity is the full adaptive search: validate, narrow both sides,
// bracket the coarse optimum, zoom-refine.
func (o *Orchestrator) runDensity(ctx context.Context, log *logrus.Entry, chrom string, eval search.Evaluator) (*chromOutcome, error) {
	rep, err := search.ValidateRange(ctx, eval, o.cfg.Grid)
	if err != nil {
		return nil, err
	}
	for _, w := range rep.Warnings {
		log.Error(w)
	}

	upper, err := search.Narrow(ctx, eval, o.cfg.Grid, search.Upper, o.cfg.Eps)
	if err != nil {
		return nil, err
	}
	log.WithField("bound", upper.Last()).Info("found parameter upper bound")

	narrowed, err := search.Narrow(ctx, eval, upper, search.Lower, o.cfg.Eps)
	if errors.Is(err, search.ErrRegionCollapsed) {
		log.WithError(err).Error("probably out of parameter region of interest, change the grid")
		return &chromOutcome{chrom: chrom, skipped: true}, nil
	}
	if err != nil {
		return nil, err
	}
	log.WithField("bound", narrowed.First()).Info("found parameter lower bound")

	scan, err := search.FindGlobalOptimum(ctx, eval, narrowed, o.target)
	if err != nil {
		return nil, err
	}
	log.WithField("param", scan.OptParam).Info("found coarse optimal parameter")

	final, rounds, err := search.Refine(ctx, eval, scan.OptParam, o.cfg.Grid.Step(), o.target, o.cfg.Eps)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"param": final.Param, "rounds": rounds}).
		Info("found refined optimal parameter")

	out := &chromOutcome{chrom: chrom, optParam: final.Param}
	for _, ev := range scan.Evaluations {
		for _, s := range ev.Segments {
			out.all = append(out.all, row{bgn: s.Start, end: s.End, param: ev.Param, chrom: chrom})
		}
	}
	for _, s := range final.Segments {
		out.optimal = append(out.optimal, row{bgn: s.Start, end: s.End, param: final.Param, chrom: chrom})
	}
	return out, nil
}

// runInsulation scans the window grid directly and stops early once both
// the expected-size and expected-count crossings are behind it and the
// trailing boundary counts have settled.
func (o *Orchestrator) runInsulation(ctx context.Context, log *logrus.Entry, chrom string, nr *noise.Result, eval search.Evaluator) (*chromOutcome, error) {
	goodCnt := nr.Good.GoodCount()
	expectedCnt := math.Floor(float64(goodCnt) / o.target)
	log.WithFields(logrus.Fields{
		"bins":          len(nr.Good),
		"good_bins":     goodCnt,
		"expected_tads": expectedCnt,
	}).Info("expected domain count for chromosome")

	out := &chromOutcome{chrom: chrom, stats: make(map[float64]segment.Stats)}
	sc := search.NewScanner(o.target)
	countCrossed := false
	var (
		counts    []float64
		countPrev float64
	)

	for i := 0; i < o.cfg.Grid.Len(); i++ {
		window := o.cfg.Grid.At(i)
		segs, st, err := eval.Evaluate(ctx, window, false)
		if err != nil {
			return nil, err
		}
		sc.Observe(window, st)
		out.stats[window] = st
		for _, s := range segs {
			out.all = append(out.all, row{bgn: s.Start, end: s.End, param: window, chrom: chrom})
		}

		cnt := float64(st.Count)
		if i > 0 && (countPrev-expectedCnt)*(cnt-expectedCnt) <= 0 {
			countCrossed = true
		}
		countPrev = cnt
		counts = append(counts, cnt)

		if sc.Crossed() && countCrossed && len(counts) >= o.cfg.WindowEps &&
			countsSettled(counts, expectedCnt, o.cfg.WindowEps, o.cfg.Eps) {
			log.WithField("window", window).Info("boundary counts settled, stopping scan early")
			break
		}
	}

	opt, err := sc.Best()
	if err != nil {
		return nil, err
	}
	out.optParam = opt
	log.WithField("window", opt).Info("found optimal window")

	// Rerun at the optimum for the drop-count diagnostics.
	if _, _, err := eval.Evaluate(ctx, opt, true); err != nil {
		return nil, err
	}
	for _, r := range out.all {
		if r.param == opt {
			out.optimal = append(out.optimal, r)
		}
	}
	return out, nil
}

// countsSettled reports whether the mean relative deviation of the
// trailing window of boundary counts, measured against the last count's
// distance from the expected count, is below eps. A zero last deviation
// never settles.
func countsSettled(counts []float64, expected float64, window int, eps float64) bool {
	if window < 2 || len(counts) < window {
		return false
	}
	tail := counts[len(counts)-window:]
	devs := make([]float64, window)
	for i, c := range tail {
		devs[i] = math.Abs(c - expected)
	}
	last := devs[window-1]
	sum := 0.0
	for _, d := range devs[:window-1] {
		sum += math.Abs(d-last) / last
	}
	return sum/float64(window-1) < eps
}
