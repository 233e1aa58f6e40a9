package navigate

import (
	"fmt"
	"strings"
)

// Options are the live, in-session copies of the booleans the `:set`
// command manipulates, with the no-prefix / trailing-! toggle /
// trailing-? query grammar. Mouse and altscreen changes come back as
// Effect values the host applies: the core never writes escape
// sequences itself.
type Options struct {
	Mouse     bool
	AltScreen bool
	Pretty    bool
	OnlyChild bool
}

// DefaultOptions has everything on.
func DefaultOptions() Options {
	return Options{Mouse: true, AltScreen: true, Pretty: true, OnlyChild: true}
}

// Effect describes a side effect the host must perform after Update
// changes mouse or altscreen mode (the core itself never writes to the
// terminal).
type Effect int

const (
	NoEffect Effect = iota
	EnableMouse
	DisableMouse
	EnableAltScreen
	DisableAltScreen
)

// Update parses and applies a single `:set`-style option token
// (e.g. "nomouse", "pretty?", "altscreen!"). It returns a message to
// surface to the user (for a query, or an error), and an Effect the
// host should perform, if any.
func (o *Options) Update(opt string) (message string, hasMessage bool, effect Effect) {
	no := false
	if rest, ok := strings.CutPrefix(opt, "no"); ok {
		no = true
		opt = rest
	}
	query := false
	if rest, ok := strings.CutSuffix(opt, "?"); ok {
		query = true
		opt = rest
	}
	toggle := false
	if rest, ok := strings.CutSuffix(opt, "!"); ok {
		toggle = true
		opt = rest
	}
	if eq := strings.IndexByte(opt, '='); eq >= 0 {
		opt = opt[:eq]
	}

	switch opt {
	case "mouse":
		newVal, msg, has, changed := applyBool(o.Mouse, no, query, toggle, "mouse")
		o.Mouse = newVal
		if changed {
			if newVal {
				return "", false, EnableMouse
			}
			return "", false, DisableMouse
		}
		return msg, has, NoEffect

	case "alts", "altscreen":
		newVal, msg, has, changed := applyBool(o.AltScreen, no, query, toggle, "altscreen")
		o.AltScreen = newVal
		if changed {
			if newVal {
				return "", false, EnableAltScreen
			}
			return "", false, DisableAltScreen
		}
		return msg, has, NoEffect

	case "pretty":
		newVal, msg, has, _ := applyBool(o.Pretty, no, query, toggle, "pretty")
		o.Pretty = newVal
		return msg, has, NoEffect

	case "onchl", "onlychild":
		newVal, msg, has, _ := applyBool(o.OnlyChild, no, query, toggle, "onlychild")
		o.OnlyChild = newVal
		return msg, has, NoEffect

	default:
		return fmt.Sprintf("\x1b[31munknown option: %s\x1b[m", opt), true, NoEffect
	}
}

// applyBool resolves one boolean option token: query reports the
// current value as a string, toggle flips unconditionally, and
// no/bare-name set to false/true respectively. It returns whether the
// value actually changed so callers can decide whether to fire an
// Effect.
func applyBool(cur, no, query, toggle bool, name string) (next bool, message string, hasMessage, changed bool) {
	if query {
		prefix := ""
		if !cur {
			prefix = "no"
		}
		return cur, prefix + name, true, false
	}

	switch {
	case !cur && !no && !toggle:
		next = true
	case !cur && toggle:
		next = true
	case cur && no && !toggle:
		next = false
	case cur && toggle:
		next = false
	default:
		return cur, "", false, false
	}
	return next, "", false, next != cur
}
