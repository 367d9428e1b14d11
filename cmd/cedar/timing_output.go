package main

import (
	"fmt"
	"io"
	"time"

	"cedar/internal/driver"
	"cedar/internal/pipeline"
)

var stageTimingLabels = []struct {
	stage pipeline.Stage
	label string
}{
	{pipeline.StageLoad, "loaded"},
	{pipeline.StageLex, "lexed"},
	{pipeline.StageParse, "parsed"},
	{pipeline.StageAnalyze, "analyzed"},
}

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	for _, row := range stageTimingLabels {
		if !timings.Has(row.stage) {
			continue
		}
		_, _ = fmt.Fprintf(out, "%s %.1f ms\n", row.label, toMillis(timings.Duration(row.stage)))
	}
	_, _ = fmt.Fprintf(out, "total %.1f ms\n", toMillis(timings.Total()))
}

// aggregateTimings sums stage durations across all results of a directory run.
func aggregateTimings(results []*driver.Result) pipeline.Timings {
	var total pipeline.Timings
	for _, res := range results {
		if res == nil {
			continue
		}
		for _, stage := range pipeline.AllStages {
			if res.Timings.Has(stage) {
				total.Add(stage, res.Timings.Duration(stage))
			}
		}
	}
	return total
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
