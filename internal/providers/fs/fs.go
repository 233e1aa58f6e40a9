// Package fs provides a filesystem tree provider: directories unfold
// into their entries, each entry carrying a FileKind (directory, named
// pipe, char/block device, socket, executable, regular file, or a
// symlink with its resolved target) and a humanized size. Entries sort
// directories first, then case-insensitively by name.
package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/brianmcjilton/treest/internal/treecore"
)

// FileKind classifies a directory entry for display coloring and an
// ls -F style single-glyph suffix (dir "/", exec "*").
type FileKind int

const (
	KindRegular FileKind = iota
	KindDir
	KindExec
	KindSymlink
	KindNamedPipe
	KindCharDevice
	KindBlockDevice
	KindSocket
)

// Fragment is one filesystem entry: its display name, kind, and (for
// symlinks) the link target, plus a humanized size for the status line.
type Fragment struct {
	Name   string
	Kind   FileKind
	Target string
	Size   uint64
}

// String renders the entry: color prefix by kind, name, then a
// kind-specific suffix/reset.
func (f Fragment) String() string {
	switch f.Kind {
	case KindDir:
		return "\x1b[34m" + f.Name + "\x1b[m/"
	case KindExec:
		return "\x1b[32m" + f.Name + "\x1b[m*"
	case KindSymlink:
		return "\x1b[36m" + f.Name + "\x1b[m -> " + f.Target
	case KindNamedPipe:
		return "\x1b[33m" + f.Name + "\x1b[m|"
	case KindCharDevice, KindBlockDevice:
		return "\x1b[33m" + f.Name + "\x1b[m"
	case KindSocket:
		return "\x1b[35m" + f.Name + "\x1b[m="
	default:
		return f.Name
	}
}

// Provider walks a real directory tree rooted at Base.
type Provider struct {
	Base string
}

func New(root string) *Provider {
	return &Provider{Base: root}
}

func (p *Provider) ProvideRoot() Fragment {
	return Fragment{Name: p.Base, Kind: KindDir}
}

func (p *Provider) Provide(path []Fragment) ([]Fragment, error) {
	parts := make([]string, len(path))
	for i, f := range path {
		parts[i] = f.Name
	}
	dir := filepath.Join(parts...)

	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fs: %s: %w", dir, err)
	}

	sort.Slice(ents, func(i, j int) bool {
		a, b := ents[i], ents[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
	})

	out := make([]Fragment, 0, len(ents))
	for _, e := range ents {
		full := filepath.Join(dir, e.Name())
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, fragmentFor(full, e.Name(), info))
	}
	return out, nil
}

func fragmentFor(full, name string, info fs.FileInfo) Fragment {
	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		target, err := os.Readlink(full)
		if err != nil {
			target = "?"
		}
		return Fragment{Name: name, Kind: KindSymlink, Target: target, Size: uint64(info.Size())}
	case info.IsDir():
		return Fragment{Name: name, Kind: KindDir}
	case mode&os.ModeNamedPipe != 0:
		return Fragment{Name: name, Kind: KindNamedPipe}
	case mode&os.ModeCharDevice != 0:
		return Fragment{Name: name, Kind: KindCharDevice}
	case mode&os.ModeDevice != 0:
		return Fragment{Name: name, Kind: KindBlockDevice}
	case mode&os.ModeSocket != 0:
		return Fragment{Name: name, Kind: KindSocket}
	case mode&0o111 != 0:
		return Fragment{Name: name, Kind: KindExec, Size: uint64(info.Size())}
	default:
		return Fragment{Name: name, Kind: KindRegular, Size: uint64(info.Size())}
	}
}

func (p *Provider) Compare(a, b Fragment) int {
	if a.Kind == KindDir && b.Kind != KindDir {
		return -1
	}
	if a.Kind != KindDir && b.Kind == KindDir {
		return 1
	}
	al, bl := strings.ToLower(a.Name), strings.ToLower(b.Name)
	switch {
	case al < bl:
		return -1
	case al > bl:
		return 1
	default:
		return 0
	}
}

func (p *Provider) Keep(a Fragment) bool { return true }

// detail renders the humanized-size status text for a leaf fragment.
func (f Fragment) detail() string {
	if f.Kind == KindDir {
		return ""
	}
	return humanize.Bytes(f.Size)
}

func (p *Provider) FmtFragPath(w io.Writer, path []Fragment) error {
	for _, f := range path[1:] {
		if _, err := fmt.Fprintf(w, " %s", f.Name); err != nil {
			return err
		}
	}
	if len(path) > 0 {
		last := path[len(path)-1]
		if d := last.detail(); d != "" {
			if _, err := fmt.Fprintf(w, " (%s)", d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Provider) WriteArgPath(w io.Writer, path []Fragment) error {
	parts := make([]string, len(path))
	for i, f := range path {
		parts[i] = f.Name
	}
	_, err := io.WriteString(w, shellQuote(filepath.Join(parts...)))
	return err
}

// shellQuote wraps s so it survives re-parsing by a shell; paths made
// only of safe bytes pass through untouched.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool { return !shellSafe(r) }) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func shellSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("_-./,:=+%@", r)
}

func (p *Provider) ProviderCommand(args []string) (string, error) {
	return "", fmt.Errorf("no provider-specific commands")
}

var _ treecore.Full[Fragment] = (*Provider)(nil)
var _ treecore.Ext[Fragment] = (*Provider)(nil)
