package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// StatsProgress reports graph-statistics progress with a progress bar.
// The descendant-count stage dominates runtime on large ontologies, so it
// gets the visible feedback.
type StatsProgress struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewStatsProgress creates a progress reporter; quiet disables all output.
func NewStatsProgress(quiet bool) *StatsProgress {
	return &StatsProgress{quiet: quiet}
}

func (p *StatsProgress) OnStatsStart(totalNodes int) {
	if p.quiet {
		return
	}
	p.bar = progressbar.NewOptions(totalNodes,
		progressbar.OptionSetDescription("Computing node statistics"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("nodes/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (p *StatsProgress) OnNodeProcessed() {
	if p.quiet || p.bar == nil {
		return
	}
	p.bar.Add(1)
}

func (p *StatsProgress) OnStatsComplete(nodeCount int, duration time.Duration) {
	if p.quiet {
		return
	}
	log.Printf("Computed statistics for %d nodes in %s", nodeCount, duration.Round(time.Millisecond))
}
