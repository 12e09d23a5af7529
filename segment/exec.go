package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"

	"github.com/aence/hichew/contact"
	"github.com/aence/hichew/hic"
	"github.com/aence/hichew/noise"
)

// ExecOracle binds an external segmentation program as an Oracle. Each
// Segment call spawns one process, writes a JSON request to its stdin and
// reads a JSON response from its stdout, so any language can implement a
// backend. The process inherits ctx cancellation.
type ExecOracle struct {
	method hic.Method
	name   string
	args   []string
}

// NewExecOracle returns an oracle that runs name with args for method.
func NewExecOracle(method hic.Method, name string, args ...string) *ExecOracle {
	return &ExecOracle{method: method, name: name, args: args}
}

type execRequest struct {
	Method     string      `json:"method"`
	Parameter  float64     `json:"parameter"`
	Resolution int         `json:"resolution"`
	GoodBins   []bool      `json:"good_bins"`
	Matrix     [][]float64 `json:"matrix"`
}

type execAnnotation struct {
	Strength   *float64 `json:"strength"`
	Insulation float64  `json:"insulation"`
}

type execResponse struct {
	Segments    [][2]int64       `json:"segments"`
	Annotations []execAnnotation `json:"annotations"`
}

// Segment implements Oracle by round-tripping through the external
// program. A null strength in the response maps to NaN, which the
// adapter then discards.
func (e *ExecOracle) Segment(ctx context.Context, m *contact.Matrix, param float64, good noise.Mask) ([]hic.Segment, []Annotation, error) {
	n := m.Bins()
	req := execRequest{
		Method:     string(e.method),
		Parameter:  param,
		Resolution: m.Resolution(),
		GoodBins:   good,
		Matrix:     make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = m.At(i, j)
		}
		req.Matrix[i] = row
	}
	payload, err := json.Marshal(&req)
	if err != nil {
		return nil, nil, fmt.Errorf("segment: encode oracle request: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.name, e.args...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, nil, fmt.Errorf("segment: oracle %s: %w: %s", e.name, err, stderr.String())
	}

	var resp execResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, nil, fmt.Errorf("segment: decode oracle response: %w", err)
	}
	segs := make([]hic.Segment, len(resp.Segments))
	for i, s := range resp.Segments {
		segs[i] = hic.Segment{Start: s[0], End: s[1]}
	}
	if resp.Annotations == nil {
		return segs, nil, nil
	}
	anns := make([]Annotation, len(resp.Annotations))
	for i, a := range resp.Annotations {
		strength := math.NaN()
		if a.Strength != nil {
			strength = *a.Strength
		}
		anns[i] = Annotation{Strength: strength, Insulation: a.Insulation}
	}
	return segs, anns, nil
}
