package contact

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Load reads a whitespace-delimited dense matrix from path and wraps it
// with the given resolution. Files ending in ".gz" are decompressed on
// the fly. Cells spelled "nan" (any case) parse to NaN and are left for
// normalization to clean up.
func Load(path string, resolution int) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("contact: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("contact: gunzip %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	return Read(r, resolution)
}

// Read parses a dense matrix from r. Every non-empty line is one row of
// whitespace-separated float64 values; all rows must have equal length
// and the result must be square.
func Read(r io.Reader, resolution int) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<20), 1<<26)

	var (
		vals []float64
		rows int
		cols int
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if cols == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, ErrRaggedInput
		}
		for _, fld := range fields {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("contact: row %d: %w", rows, err)
			}
			vals = append(vals, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("contact: read: %w", err)
	}
	if rows == 0 {
		return nil, ErrEmptyMatrix
	}
	if rows != cols {
		return nil, ErrNotSquare
	}
	return NewMatrix(mat.NewDense(rows, cols, vals), resolution)
}

// DirProvider resolves (stage, chromosome) pairs to matrix files laid out
// as "<root>/<stage>/<chrom>.tsv" with an optional ".gz" suffix.
type DirProvider struct {
	root       string
	resolution int
	log        *logrus.Entry
}

// NewDirProvider returns a provider rooted at root with a fixed bin
// resolution. A nil log entry silences progress messages.
func NewDirProvider(root string, resolution int, log *logrus.Entry) (*DirProvider, error) {
	if resolution <= 0 {
		return nil, ErrBadResolution
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &DirProvider{root: root, resolution: resolution, log: log}, nil
}

// Matrix loads the contact map for one stage and chromosome. Candidate
// file names are tried in order: <chrom>.tsv, <chrom>.tsv.gz, <chrom>.txt,
// <chrom>.txt.gz. Returns ErrNoMatrix when none exists.
func (p *DirProvider) Matrix(ctx context.Context, stage, chrom string) (*Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	begin := time.Now()
	for _, name := range []string{
		chrom + ".tsv", chrom + ".tsv.gz", chrom + ".txt", chrom + ".txt.gz",
	} {
		path := filepath.Join(p.root, stage, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m, err := Load(path, p.resolution)
		if err != nil {
			return nil, err
		}
		p.log.WithFields(logrus.Fields{
			"stage":   stage,
			"chrom":   chrom,
			"bins":    m.Bins(),
			"elapsed": time.Since(begin).Round(time.Millisecond),
		}).Info("loaded contact matrix")
		return m, nil
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNoMatrix, stage, chrom)
}
