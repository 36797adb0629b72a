package main

import (
	"fmt"
	"io"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/tenten/autoplay"
	"github.com/plus3/tenten/puzzle/supply"
)

type Report struct {
	// Configuration
	Games   int
	Seed    uint64
	Mode    supply.Mode
	Revives bool
	Workers int

	// Results
	TotalTime    time.Duration
	Unfinished   int
	Score        Stats[int]
	Moves        Stats[int]
	Lines        Stats[int]
	RevivesUsed  int
	GameTime     Stats[time.Duration]
	Supply       supply.Stats
	BestGameSeed uint64

	bestScore int
}

type number interface {
	~int | ~int64
}

// Stats summarises samples of one measurement.
type Stats[T number] struct {
	Min     T
	Max     T
	Avg     T
	Median  T
	Samples []T
}

func (s *Stats[T]) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total T
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / T(len(s.Samples))

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.Median = sorted[len(sorted)/2]
}

// Add records one finished game.
func (r *Report) Add(seed uint64, res autoplay.Result, elapsed time.Duration, stats supply.Stats) {
	if len(r.Score.Samples) == 0 || res.Score > r.bestScore {
		r.BestGameSeed = seed
		r.bestScore = res.Score
	}
	r.Score.Samples = append(r.Score.Samples, res.Score)
	r.Moves.Samples = append(r.Moves.Samples, res.Moves)
	r.Lines.Samples = append(r.Lines.Samples, res.Lines)
	r.GameTime.Samples = append(r.GameTime.Samples, elapsed)
	r.RevivesUsed += res.Revives
	r.Supply = r.Supply.Merge(stats)
}

func (r *Report) Finalize() {
	r.Score.Finalize()
	r.Moves.Finalize()
	r.Lines.Finalize()
	r.GameTime.Finalize()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Simulation Report

## Configuration
- **Games:** {{.Games}}
- **First Seed:** {{.Seed}}
- **Mode:** {{.Mode}}
- **Revives:** {{if .Revives}}spent{{else}}off{{end}}
- **Workers:** {{.Workers}}

## Results
- **Total Time:** {{.TotalTime}}
- **Unfinished Games:** {{.Unfinished}} (left out of the figures below)
- **Score:** avg {{.Score.Avg}}, median {{.Score.Median}}, min {{.Score.Min}}, max {{.Score.Max}} (seed {{.BestGameSeed}})
- **Moves:** avg {{.Moves.Avg}}, median {{.Moves.Median}}, min {{.Moves.Min}}, max {{.Moves.Max}}
- **Lines:** avg {{.Lines.Avg}}, median {{.Lines.Median}}, min {{.Lines.Min}}, max {{.Lines.Max}}
- **Revives Used:** {{.RevivesUsed}}
- **Game Time:** avg {{.GameTime.Avg}}, min {{.GameTime.Min}}, max {{.GameTime.Max}}

## Piece Supply
- **Batches:** {{.Supply.TotalBatches}}
- **Degraded:** {{.Supply.TotalDegraded}} ({{pct .Supply.TotalDegraded .Supply.TotalBatches}})

| Strategy | Batches | Share | Degraded | Avg | Min | Max |
|---|---|---|---|---|---|---|
{{- range .Supply.Strategies}}
| {{.Name}} | {{.ExecutionCount}} | {{pct .ExecutionCount $.Supply.TotalBatches}} | {{.DegradedCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}
`

	fm := template.FuncMap{
		"pct": func(part, whole int64) string {
			if whole == 0 {
				return "0.0%"
			}
			return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
