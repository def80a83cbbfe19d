package main

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/robert-malhotra/go-las/las"
	"github.com/robert-malhotra/go-las/points"
)

// statsLayout is what the stats command decodes.
var statsLayout = points.MustLayout(points.Position3D, points.Classification, points.ReturnNumber)

// axisStats summarises one coordinate axis.
type axisStats struct {
	Min, Max     float64
	Mean, StdDev float64
}

// moments accumulates count, mean, sum of squared deviations and range
// chunk by chunk, merging each chunk with Chan's pairwise update.
type moments struct {
	n, mean, m2 float64
	min, max    float64
}

func (m *moments) add(values []float64) {
	if len(values) == 0 {
		return
	}
	nb := float64(len(values))
	mb := stat.Mean(values, nil)
	var m2b float64
	for _, v := range values {
		d := v - mb
		m2b += d * d
	}
	lo, hi := floats.Min(values), floats.Max(values)

	if m.n == 0 {
		*m = moments{n: nb, mean: mb, m2: m2b, min: lo, max: hi}
		return
	}
	n := m.n + nb
	delta := mb - m.mean
	m.mean += delta * nb / n
	m.m2 += m2b + delta*delta*m.n*nb/n
	m.n = n
	m.min = min(m.min, lo)
	m.max = max(m.max, hi)
}

// stats reports the sample standard deviation, 0 below two values.
func (m *moments) stats() axisStats {
	s := axisStats{Min: m.min, Max: m.max, Mean: m.mean}
	if m.n > 1 {
		s.StdDev = math.Sqrt(m.m2 / (m.n - 1))
	}
	return s
}

type summary struct {
	Points         uint64
	Axes           [3]axisStats
	Classification map[uint8]uint64
	Returns        map[uint8]uint64
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Print coordinate statistics and class counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			s, err := collectStats(r, a.cfg.Reader.ChunkSize)
			if err != nil {
				return err
			}
			printStats(a.out, s)
			return nil
		},
	}
}

func collectStats(r *las.Reader, chunkSize int) (*summary, error) {
	s := &summary{
		Classification: make(map[uint8]uint64),
		Returns:        make(map[uint8]uint64),
	}
	var acc [3]moments
	var coords [3][]float64
	for axis := range coords {
		coords[axis] = make([]float64, 0, chunkSize)
	}

	for r.RemainingPoints() > 0 {
		buf := points.NewInterleaved(statsLayout, chunkSize)
		if _, err := r.ReadInto(buf, uint64(chunkSize)); err != nil {
			return nil, err
		}
		xyz, err := points.Values[[3]float64](buf, points.Position3D.Name)
		if err != nil {
			return nil, err
		}
		classes, err := points.Values[uint8](buf, points.Classification.Name)
		if err != nil {
			return nil, err
		}
		returns, err := points.Values[uint8](buf, points.ReturnNumber.Name)
		if err != nil {
			return nil, err
		}
		for axis := range coords {
			coords[axis] = coords[axis][:0]
		}
		for i, p := range xyz {
			for axis := range coords {
				coords[axis] = append(coords[axis], p[axis])
			}
			s.Classification[classes[i]]++
			s.Returns[returns[i]]++
		}
		for axis := range acc {
			acc[axis].add(coords[axis])
		}
		s.Points += uint64(buf.Len())
	}

	for axis := range acc {
		s.Axes[axis] = acc[axis].stats()
	}
	return s, nil
}

func printStats(w io.Writer, s *summary) {
	fmt.Fprintf(w, "Points: %d\n", s.Points)
	if s.Points == 0 {
		return
	}

	fmt.Fprintf(w, "%-4s %16s %16s %16s %16s\n", "axis", "min", "max", "mean", "stddev")
	for axis, a := range s.Axes {
		fmt.Fprintf(w, "%-4s %16.4f %16.4f %16.4f %16.4f\n", []string{"x", "y", "z"}[axis], a.Min, a.Max, a.Mean, a.StdDev)
	}

	fmt.Fprintln(w, "Classification:")
	printCounts(w, s.Classification)
	fmt.Fprintln(w, "Return number:")
	printCounts(w, s.Returns)
}

func printCounts(w io.Writer, counts map[uint8]uint64) {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %3d: %d\n", k, counts[uint8(k)])
	}
}
