package prompt

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Completer produces candidate completions for the argument at argIdx,
// given the already-tokenized argv and the cursor's char offset within
// that argument. The variants below compose rather than forming one
// monolithic callback.
type Completer interface {
	Complete(argv []string, argIdx, charAt int) []string
}

// None never offers anything.
type None struct{}

func (None) Complete(argv []string, argIdx, charAt int) []string { return nil }

// Fn adapts a plain function into a Completer.
type Fn func(argv []string, argIdx, charAt int) []string

func (f Fn) Complete(argv []string, argIdx, charAt int) []string { return f(argv, argIdx, charAt) }

// Deferred computes a Completer lazily (once per completion request)
// and applies it, useful when the candidate set depends on state that
// would otherwise need recomputing on every keystroke.
type Deferred func() Completer

func (d Deferred) Complete(argv []string, argIdx, charAt int) []string {
	return d().Complete(argv, argIdx, charAt)
}

// Words completes from a fixed, owned candidate list, filtered by the
// prefix already typed at argIdx up to charAt.
type Words []string

func (w Words) Complete(argv []string, argIdx, charAt int) []string {
	return filterPrefix(w, prefixAt(argv, argIdx, charAt))
}

// StaticWords is identical to Words but documents intent: a list that
// never changes for the lifetime of the Completer (e.g. command names),
// as opposed to Words built fresh per call by a Deferred.
type StaticWords []string

func (w StaticWords) Complete(argv []string, argIdx, charAt int) []string {
	return filterPrefix(w, prefixAt(argv, argIdx, charAt))
}

// Of completes argument 0 (the command name) against a fixed command,
// then hands off to shift once a command has been typed in full, for
// argument-position-dependent completion of subcommands.
type Of struct {
	Command string
	Shift   Completer
}

func (o Of) Complete(argv []string, argIdx, charAt int) []string {
	if argIdx == 0 {
		if strings.HasPrefix(o.Command, prefixAt(argv, argIdx, charAt)) {
			return []string{o.Command}
		}
		return nil
	}
	return o.Shift.Complete(argv, argIdx, charAt)
}

// Nth picks a different Completer per argument index; the last entry in
// the list applies to every index beyond the list's length.
type Nth []Completer

func (n Nth) Complete(argv []string, argIdx, charAt int) []string {
	if len(n) == 0 {
		return nil
	}
	i := argIdx
	if i >= len(n) {
		i = len(n) - 1
	}
	return n[i].Complete(argv, argIdx, charAt)
}

// PathLookup completes executable-like names found on $PATH. A file
// counts as executable-like if any execute-permission bit is set on
// POSIX, or its name ends in .exe/.com on Windows.
type PathLookup struct{}

func (PathLookup) Complete(argv []string, argIdx, charAt int) []string {
	prefix := prefixAt(argv, argIdx, charAt)
	var names []string
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !strings.HasPrefix(e.Name(), prefix) {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if isExecutableLike(e.Name(), info.Mode()) {
				names = append(names, e.Name())
			}
		}
	}
	return dedupSorted(names)
}

func isExecutableLike(name string, mode os.FileMode) bool {
	if runtime.GOOS == "windows" {
		lower := strings.ToLower(name)
		return strings.HasSuffix(lower, ".exe") || strings.HasSuffix(lower, ".com")
	}
	return mode&0o111 != 0
}

func prefixAt(argv []string, argIdx, charAt int) string {
	if argIdx < 0 || argIdx >= len(argv) {
		return ""
	}
	arg := argv[argIdx]
	if charAt < 0 || charAt > len(arg) {
		return arg
	}
	return arg[:charAt]
}

func filterPrefix(words []string, prefix string) []string {
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return dedupSorted(out)
}

func dedupSorted(in []string) []string {
	sort.Strings(in)
	out := in[:0]
	var last string
	haveLast := false
	for _, s := range in {
		if haveLast && s == last {
			continue
		}
		out = append(out, s)
		last = s
		haveLast = true
	}
	return out
}
