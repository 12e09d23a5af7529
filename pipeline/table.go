package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sirupsen/logrus"

	"github.com/aence/hichew/hic"
)

// row is one (segment, parameter) record destined for the result tables.
type row struct {
	bgn, end int64
	param    float64
	chrom    string
}

// buildFrame assembles rows into the result table layout: bgn and end,
// a derived length column plus the method tag for density runs, the
// parameter under its method-specific name, and the chromosome. Window
// values are written as integers, gammas as floats.
func (o *Orchestrator) buildFrame(rows []row) dataframe.DataFrame {
	n := len(rows)
	bgn := make([]int, n)
	end := make([]int, n)
	chs := make([]string, n)
	for i, r := range rows {
		bgn[i] = int(r.bgn)
		end[i] = int(r.end)
		chs[i] = r.chrom
	}

	cols := []series.Series{
		series.New(bgn, series.Int, "bgn"),
		series.New(end, series.Int, "end"),
	}
	if o.cfg.Method == hic.Insulation {
		wins := make([]int, n)
		for i, r := range rows {
			wins[i] = int(r.param)
		}
		cols = append(cols, series.New(wins, series.Int, "window"))
	} else {
		length := make([]int, n)
		gammas := make([]float64, n)
		methods := make([]string, n)
		for i, r := range rows {
			length[i] = int(r.end - r.bgn)
			gammas[i] = r.param
			methods[i] = string(o.cfg.Method)
		}
		cols = append(cols,
			series.New(length, series.Int, "length"),
			series.New(gammas, series.Float, "gamma"),
			series.New(methods, series.String, "method"),
		)
	}
	cols = append(cols, series.New(chs, series.String, "ch"))
	return dataframe.New(cols...)
}

// writeTables persists the combined and optimal-only tables as
// tab-delimited files under OutDir.
func (o *Orchestrator) writeTables(res *Result) error {
	suffix := fmt.Sprintf("%s_%dkb_%dkb.csv",
		o.cfg.Method, int(o.cfg.Expected/1000), o.cfg.Resolution/1000)
	allPath := filepath.Join(o.cfg.OutDir, "all_tads_"+suffix)
	optPath := filepath.Join(o.cfg.OutDir, "opt_tads_"+suffix)

	if err := writeTSV(allPath, res.All); err != nil {
		return err
	}
	if err := writeTSV(optPath, res.Optimal); err != nil {
		return err
	}
	o.log.WithFields(logrus.Fields{"all": allPath, "optimal": optPath}).
		Info("wrote segmentation tables")
	return nil
}

func writeTSV(path string, df dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pipeline: create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.WriteAll(df.Records()); err != nil {
		f.Close()
		return fmt.Errorf("pipeline: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("pipeline: close %s: %w", path, err)
	}
	return nil
}
