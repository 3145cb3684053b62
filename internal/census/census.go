// Package census exports the garden as CSV records and summarises them.
package census

import (
	"fmt"
	"io"
	"sort"

	"garden/internal/garden"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// Row is one occupied cell.
type Row struct {
	Row       int    `csv:"row"`
	Col       int    `csv:"col"`
	Kind      string `csv:"kind"`
	Stage     string `csv:"stage"`
	Frame     int    `csv:"frame"`
	PlantedAt int64  `csv:"planted_at"`
	SeedMS    int64  `csv:"seed_ms"`
	GrowthMS  int64  `csv:"growth_ms"`
	AgeMS     int64  `csv:"age_ms"`
}

// Rows lists every occupied cell in row-major order. Ages are measured at
// now (epoch ms).
func Rows(s *garden.Store, now int64) []Row {
	entries := s.Sorted()
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		r := Row{Row: e.Coord.Row, Col: e.Coord.Col, Kind: e.Cell.Kind.String()}
		if e.Cell.IsPlant() {
			p := e.Cell.Plant
			r.Stage = p.Stage.String()
			r.Frame = int(p.Frame)
			r.PlantedAt = p.PlantedAt
			r.SeedMS = p.SeedDuration
			r.GrowthMS = p.TreeAfter()
			r.AgeMS = max(now-p.PlantedAt, 0)
		}
		rows = append(rows, r)
	}
	return rows
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing census: %w", err)
	}
	return nil
}

// ReadCSV parses rows written by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading census: %w", err)
	}
	return rows, nil
}

// Summary aggregates a census.
type Summary struct {
	Seeds   int
	Sprouts int
	Trees   int
	Water   int

	MeanGrowthMS   float64
	StdDevGrowthMS float64
	MedianAgeMS    float64
}

// Plants returns the number of plant cells.
func (s Summary) Plants() int { return s.Seeds + s.Sprouts + s.Trees }

// Summarize counts cells per stage and describes plant growth thresholds
// and ages.
func Summarize(rows []Row) Summary {
	var sum Summary
	var growth, ages []float64
	for _, r := range rows {
		switch r.Stage {
		case garden.StageSeed.String():
			sum.Seeds++
		case garden.StageSprout.String():
			sum.Sprouts++
		case garden.StageTree.String():
			sum.Trees++
		default:
			if r.Kind == garden.KindWater.String() {
				sum.Water++
			}
			continue
		}
		growth = append(growth, float64(r.GrowthMS))
		ages = append(ages, float64(r.AgeMS))
	}
	if len(growth) == 0 {
		return sum
	}
	sum.MeanGrowthMS, sum.StdDevGrowthMS = stat.MeanStdDev(growth, nil)
	if len(growth) == 1 {
		sum.StdDevGrowthMS = 0
	}
	sort.Float64s(ages)
	sum.MedianAgeMS = stat.Quantile(0.5, stat.Empirical, ages, nil)
	return sum
}

// String renders the summary for terminal output.
func (s Summary) String() string {
	return fmt.Sprintf("seeds=%d sprouts=%d trees=%d water=%d growth_mean=%.0fms growth_sd=%.0fms median_age=%.0fms",
		s.Seeds, s.Sprouts, s.Trees, s.Water, s.MeanGrowthMS, s.StdDevGrowthMS, s.MedianAgeMS)
}
