package navigate

import (
	"github.com/brianmcjilton/treest/internal/termctl"
	"github.com/brianmcjilton/treest/internal/treecore"
)

// JumpBy names the scroll granularities the view actions take.
type JumpBy int

const (
	Line JumpBy = iota
	Mouse
	HalfWin
	Win
)

func jumpAmount(by JumpBy) int {
	rows, _ := termctl.Size()
	switch by {
	case Line:
		return 1
	case Mouse:
		return 3
	case HalfWin:
		return rows / 2
	case Win:
		return rows - 1
	default:
		return 1
	}
}

// View is the scroll/viewport state the renderer both reads and
// repopulates every frame: the scroll offset, the total logical row
// count the tree currently occupies, and a row-to-NodeHandle mapping
// for mouse hit testing.
type View struct {
	Scroll      int
	Total       int
	LineMapping []treecore.NodeHandle
}

// Visible returns the [start, end) logical row range currently on
// screen, leaving the last two rows for the path/message/pending
// status line.
func (v *View) Visible() (start, end int) {
	rows, _ := termctl.Size()
	start = v.Scroll
	end = v.Scroll + rows - 2
	if end < start {
		end = start
	}
	return start, end
}

// Down scrolls forward by the given granularity, saturating so that
// Scroll never exceeds Total-1.
func (v *View) Down(by JumpBy) {
	amount := jumpAmount(by)
	if v.Total == 0 {
		return
	}
	if v.Scroll < v.Total-amount {
		v.Scroll += amount
	} else {
		v.Scroll = v.Total - 1
	}
	if v.Scroll < 0 {
		v.Scroll = 0
	}
}

// Up scrolls backward by the given granularity, saturating at 0.
func (v *View) Up(by JumpBy) {
	amount := jumpAmount(by)
	if amount < v.Scroll {
		v.Scroll -= amount
	} else {
		v.Scroll = 0
	}
}
