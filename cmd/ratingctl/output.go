package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/learning"
	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/teamgen"
)

// isInteractive reports whether w is a terminal a human is watching —
// the same check cmd/cryptorun's runDefaultEntry uses to decide
// between a menu and automation-friendly output.
func isInteractive(w *os.File) bool {
	return term.IsTerminal(int(w.Fd()))
}

func renderDeltas(w *os.File, deltas map[string]float64, breakdown map[string]learning.Breakdown) error {
	if !isInteractive(w) {
		return json.NewEncoder(w).Encode(deltas)
	}

	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tDELTA\tCAP\tCAPPED")
	for _, id := range ids {
		b := breakdown[id]
		capped := b.FinalDelta == b.Cap || b.FinalDelta == -b.Cap
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%t\n", id, deltas[id], b.Cap, capped)
	}
	return tw.Flush()
}

func renderSplits(w *os.File, splits []teamgen.Split) error {
	if !isInteractive(w) {
		return json.NewEncoder(w).Encode(splits)
	}

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCORE\tDHAT\tTEAM A\tTEAM B")
	for i, split := range splits {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%v\t%v\n", i+1, split.Score, split.DHat, split.TeamA, split.TeamB)
	}
	return tw.Flush()
}

func renderSwaps(w *os.File, swaps []teamgen.Swap) error {
	if !isInteractive(w) {
		return json.NewEncoder(w).Encode(swaps)
	}

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "OUT\tIN\tSCORE DELTA")
	for _, swap := range swaps {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\n", swap.PlayerOut, swap.PlayerIn, swap.ScoreDelta)
	}
	return tw.Flush()
}
