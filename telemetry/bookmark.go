package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkTreeGrown     BookmarkType = "tree_grown"
	BookmarkCrownFull     BookmarkType = "crown_full"
	BookmarkCrownSettled  BookmarkType = "crown_settled"
	BookmarkCrownThinning BookmarkType = "crown_thinning"
)

// Bookmark marks a notable moment in the animation.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches window stats for milestones. Each one-shot
// milestone fires at most once; thinning fires again after a new peak.
type BookmarkDetector struct {
	maxHearts int

	sawGrown   bool
	sawFull    bool
	sawSettled bool

	peakHearts int
}

// NewBookmarkDetector creates a detector for a population capped at maxHearts.
func NewBookmarkDetector(maxHearts int) *BookmarkDetector {
	return &BookmarkDetector{maxHearts: maxHearts}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if stats.TreeGrown && !bd.sawGrown {
		bd.sawGrown = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkTreeGrown,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Tree fully grown by %.1fs", stats.SimTimeSec),
		})
	}

	if bd.maxHearts > 0 && stats.Hearts >= bd.maxHearts && !bd.sawFull {
		bd.sawFull = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkCrownFull,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Heart population reached cap %d", bd.maxHearts),
		})
	}

	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if b := bd.checkThinning(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.Hearts > bd.peakHearts {
		bd.peakHearts = stats.Hearts
	}

	return bookmarks
}

// checkSettled fires once every live heart is floating.
func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if bd.sawSettled || stats.Hearts == 0 || stats.Floating != stats.Hearts {
		return nil
	}
	bd.sawSettled = true
	return &Bookmark{
		Type:        BookmarkCrownSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("All %d hearts floating", stats.Hearts),
	}
}

// checkThinning fires when the population drops more than 30% from its peak,
// which only happens with decaying hearts.
func (bd *BookmarkDetector) checkThinning(stats WindowStats) *Bookmark {
	if bd.peakHearts < 10 {
		return nil
	}

	drop := 1.0 - float64(stats.Hearts)/float64(bd.peakHearts)
	if drop <= 0.30 {
		return nil
	}

	// Reset peak after triggering
	oldPeak := bd.peakHearts
	bd.peakHearts = stats.Hearts

	return &Bookmark{
		Type:        BookmarkCrownThinning,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Hearts thinned %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Hearts),
	}
}
