package detector

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/opdetect/opqa/internal/config"
)

// Heuristic is the built-in reference detector. It pairs raw watcher events
// into high-level operations using a sliding time window: most watchers
// report a rename as a remove followed by a create, and a copy as a create
// that mirrors the size of a file that is still present.
type Heuristic struct {
	pairWindow    time.Duration
	minConfidence float64
	logger        *slog.Logger
}

// NewHeuristic creates a reference detector with the given tuning.
func NewHeuristic(cfg config.DetectorConfig) *Heuristic {
	window := cfg.PairWindow
	if window <= 0 {
		window = 2 * time.Second
	}

	return &Heuristic{
		pairWindow:    window,
		minConfidence: cfg.MinConfidence,
		logger:        slog.Default().With("component", "detector"),
	}
}

// Detect implements Detector.
func (h *Heuristic) Detect(ctx context.Context, events []Event) ([]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ops := make([]Operation, 0, len(events))
	used := make([]bool, len(events))

	// Explicit rename events carry both paths; trust them almost entirely.
	for i, ev := range events {
		if ev.Op != EventRename {
			continue
		}
		used[i] = true
		typ := OpRename
		if ev.OldPath != "" && filepath.Dir(ev.OldPath) != filepath.Dir(ev.Path) {
			typ = OpMove
		}
		ops = append(ops, Operation{
			Type:       typ,
			Confidence: 0.95,
			Paths:      renamePaths(ev),
		})
	}

	// Pair each remove with the first unconsumed create inside the window.
	for i, ev := range events {
		if used[i] || ev.Op != EventRemove {
			continue
		}
		for j := range events {
			cand := events[j]
			if used[j] || j == i || cand.Op != EventCreate {
				continue
			}
			gap := cand.Timestamp.Sub(ev.Timestamp)
			if gap < 0 || gap > h.pairWindow {
				continue
			}

			typ := OpMove
			base := 0.85
			switch {
			case filepath.Dir(ev.Path) == filepath.Dir(cand.Path):
				typ = OpRename
				base = 0.9
			case filepath.Base(ev.Path) == filepath.Base(cand.Path):
				base = 0.9
			}

			used[i], used[j] = true, true
			ops = append(ops, Operation{
				Type:       typ,
				Confidence: decay(base, gap, h.pairWindow),
				Paths:      []string{ev.Path, cand.Path},
			})
			break
		}
	}

	// A leftover create that mirrors the size of an earlier file which is
	// still present reads as a copy.
	for j, ev := range events {
		if used[j] || ev.Op != EventCreate || ev.Size == 0 {
			continue
		}
		for i := 0; i < j; i++ {
			src := events[i]
			if src.Path == ev.Path {
				continue
			}
			if src.Op != EventCreate && src.Op != EventWrite {
				continue
			}
			if src.Size != ev.Size {
				continue
			}
			gap := ev.Timestamp.Sub(src.Timestamp)
			if gap < 0 || gap > h.pairWindow {
				continue
			}
			if removedBefore(events, src.Path, j) {
				continue
			}

			used[j] = true
			ops = append(ops, Operation{
				Type:       OpCopy,
				Confidence: decay(0.8, gap, h.pairWindow),
				Paths:      []string{src.Path, ev.Path},
			})
			break
		}
	}

	// Unpaired creates and removes stand on their own.
	for i, ev := range events {
		if used[i] {
			continue
		}
		switch ev.Op {
		case EventCreate:
			used[i] = true
			ops = append(ops, Operation{Type: OpCreate, Confidence: 0.8, Paths: []string{ev.Path}})
		case EventRemove:
			used[i] = true
			ops = append(ops, Operation{Type: OpDelete, Confidence: 0.8, Paths: []string{ev.Path}})
		}
	}

	// Writes against pre-existing paths fold into one edit per path.
	// Writes that flesh out a file created within the sequence do not.
	created := make(map[string]bool)
	for _, ev := range events {
		if ev.Op == EventCreate || ev.Op == EventRename {
			created[ev.Path] = true
		}
	}
	edited := make(map[string]bool)
	for i, ev := range events {
		if used[i] || ev.Op != EventWrite {
			continue
		}
		if created[ev.Path] || edited[ev.Path] {
			continue
		}
		edited[ev.Path] = true
		ops = append(ops, Operation{Type: OpEdit, Confidence: 0.7, Paths: []string{ev.Path}})
	}

	filtered := make([]Operation, 0, len(ops))
	for _, op := range ops {
		if op.Confidence < h.minConfidence {
			h.logger.Debug("suppressing low-confidence operation",
				"type", op.Type, "confidence", op.Confidence)
			continue
		}
		filtered = append(filtered, op)
	}

	return filtered, nil
}

// decay lowers a base confidence as the gap approaches the pairing window.
func decay(base float64, gap, window time.Duration) float64 {
	if window <= 0 {
		return base
	}
	conf := base - 0.3*(float64(gap)/float64(window))
	if conf < 0 {
		conf = 0
	}
	return conf
}

func renamePaths(ev Event) []string {
	if ev.OldPath != "" {
		return []string{ev.OldPath, ev.Path}
	}
	return []string{ev.Path}
}

// removedBefore reports whether path was removed by an event earlier than
// index limit.
func removedBefore(events []Event, path string, limit int) bool {
	for i := 0; i < limit; i++ {
		if events[i].Op == EventRemove && events[i].Path == path {
			return true
		}
	}
	return false
}
