// Package dispatch unifies every concrete provider behind one
// treecore.Full[DynFragment], so navigate and render only ever need to
// be instantiated once (over DynFragment) regardless of which provider
// the user selected. Providers are wrapped in an explicit tagged union
// (a Kind enum plus one field per variant), closed at this one
// dispatcher; every concrete provider package is otherwise unaware
// dispatch exists.
package dispatch

import (
	"fmt"
	"io"

	"github.com/brianmcjilton/treest/internal/providers/fs"
	"github.com/brianmcjilton/treest/internal/providers/generic"
	"github.com/brianmcjilton/treest/internal/providers/jsonprov"
	"github.com/brianmcjilton/treest/internal/providers/procprov"
	"github.com/brianmcjilton/treest/internal/providers/sqliteprov"
	"github.com/brianmcjilton/treest/internal/providers/tomlprov"
	"github.com/brianmcjilton/treest/internal/providers/xmlprov"
	"github.com/brianmcjilton/treest/internal/providers/yamlprov"
	"github.com/brianmcjilton/treest/internal/treecore"
)

// Kind names which concrete variant a DynProvider/DynFragment wraps.
// Json/Yaml/Toml/Xml all share the KindGeneric variant since they are
// all thin generic.Provider adapters (xmlprov builds its own element
// tree first, then exposes it through the same generic.Value contract).
type Kind int

const (
	KindFs Kind = iota
	KindGeneric
	KindSqlite
	KindProc
)

// DynFragment is the closed tagged union of every concrete Fragment
// type.
type DynFragment struct {
	Kind    Kind
	Fs      fs.Fragment
	Generic generic.Fragment
	Sqlite  sqliteprov.Fragment
	Proc    procprov.Fragment
}

func (f DynFragment) String() string {
	switch f.Kind {
	case KindFs:
		return f.Fs.String()
	case KindGeneric:
		return f.Generic.String()
	case KindSqlite:
		return f.Sqlite.String()
	case KindProc:
		return f.Proc.String()
	default:
		return ""
	}
}

// DynProvider is the closed tagged union of every concrete Provider.
type DynProvider struct {
	kind    Kind
	fs      *fs.Provider
	generic *generic.Provider
	sqlite  *sqliteprov.Provider
	proc    *procprov.Provider
}

func (p *DynProvider) ProvideRoot() DynFragment {
	switch p.kind {
	case KindFs:
		return DynFragment{Kind: KindFs, Fs: p.fs.ProvideRoot()}
	case KindGeneric:
		return DynFragment{Kind: KindGeneric, Generic: p.generic.ProvideRoot()}
	case KindSqlite:
		return DynFragment{Kind: KindSqlite, Sqlite: p.sqlite.ProvideRoot()}
	case KindProc:
		return DynFragment{Kind: KindProc, Proc: p.proc.ProvideRoot()}
	default:
		panic("dispatch: unknown provider kind")
	}
}

func (p *DynProvider) Provide(path []DynFragment) ([]DynFragment, error) {
	switch p.kind {
	case KindFs:
		in := make([]fs.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Fs
		}
		out, err := p.fs.Provide(in)
		res := make([]DynFragment, len(out))
		for i, f := range out {
			res[i] = DynFragment{Kind: KindFs, Fs: f}
		}
		return res, err

	case KindGeneric:
		in := make([]generic.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Generic
		}
		out, err := p.generic.Provide(in)
		res := make([]DynFragment, len(out))
		for i, f := range out {
			res[i] = DynFragment{Kind: KindGeneric, Generic: f}
		}
		return res, err

	case KindSqlite:
		in := make([]sqliteprov.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Sqlite
		}
		out, err := p.sqlite.Provide(in)
		res := make([]DynFragment, len(out))
		for i, f := range out {
			res[i] = DynFragment{Kind: KindSqlite, Sqlite: f}
		}
		return res, err

	case KindProc:
		in := make([]procprov.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Proc
		}
		out, err := p.proc.Provide(in)
		res := make([]DynFragment, len(out))
		for i, f := range out {
			res[i] = DynFragment{Kind: KindProc, Proc: f}
		}
		return res, err

	default:
		panic("dispatch: unknown provider kind")
	}
}

func (p *DynProvider) Compare(a, b DynFragment) int {
	switch p.kind {
	case KindFs:
		return p.fs.Compare(a.Fs, b.Fs)
	case KindGeneric:
		return p.generic.Compare(a.Generic, b.Generic)
	case KindSqlite:
		return p.sqlite.Compare(a.Sqlite, b.Sqlite)
	case KindProc:
		return p.proc.Compare(a.Proc, b.Proc)
	default:
		panic("dispatch: unknown provider kind")
	}
}

func (p *DynProvider) Keep(a DynFragment) bool {
	switch p.kind {
	case KindFs:
		return p.fs.Keep(a.Fs)
	case KindGeneric:
		return p.generic.Keep(a.Generic)
	case KindSqlite:
		return p.sqlite.Keep(a.Sqlite)
	case KindProc:
		return p.proc.Keep(a.Proc)
	default:
		panic("dispatch: unknown provider kind")
	}
}

func (p *DynProvider) FmtFragPath(w io.Writer, path []DynFragment) error {
	switch p.kind {
	case KindFs:
		in := make([]fs.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Fs
		}
		return p.fs.FmtFragPath(w, in)
	case KindGeneric:
		in := make([]generic.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Generic
		}
		return p.generic.FmtFragPath(w, in)
	case KindSqlite:
		in := make([]sqliteprov.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Sqlite
		}
		return p.sqlite.FmtFragPath(w, in)
	case KindProc:
		in := make([]procprov.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Proc
		}
		return p.proc.FmtFragPath(w, in)
	default:
		return fmt.Errorf("dispatch: unknown provider kind")
	}
}

func (p *DynProvider) WriteArgPath(w io.Writer, path []DynFragment) error {
	switch p.kind {
	case KindFs:
		in := make([]fs.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Fs
		}
		return p.fs.WriteArgPath(w, in)
	case KindGeneric:
		in := make([]generic.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Generic
		}
		return p.generic.WriteArgPath(w, in)
	case KindSqlite:
		in := make([]sqliteprov.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Sqlite
		}
		return p.sqlite.WriteArgPath(w, in)
	case KindProc:
		in := make([]procprov.Fragment, len(path))
		for i, f := range path {
			in[i] = f.Proc
		}
		return p.proc.WriteArgPath(w, in)
	default:
		return fmt.Errorf("dispatch: unknown provider kind")
	}
}

func (p *DynProvider) ProviderCommand(args []string) (string, error) {
	switch p.kind {
	case KindFs:
		return p.fs.ProviderCommand(args)
	case KindGeneric:
		return p.generic.ProviderCommand(args)
	case KindSqlite:
		return p.sqlite.ProviderCommand(args)
	case KindProc:
		return p.proc.ProviderCommand(args)
	default:
		return "", fmt.Errorf("dispatch: unknown provider kind")
	}
}

// Select constructs the named provider over arg. Adding a provider kind
// is a closed change here, not in navigate or render.
func Select(name, arg string) (*DynProvider, error) {
	switch name {
	case "fs":
		return &DynProvider{kind: KindFs, fs: fs.New(arg)}, nil
	case "json":
		p, err := jsonprov.New(arg)
		if err != nil {
			return nil, err
		}
		return &DynProvider{kind: KindGeneric, generic: p}, nil
	case "yaml":
		p, err := yamlprov.New(arg)
		if err != nil {
			return nil, err
		}
		return &DynProvider{kind: KindGeneric, generic: p}, nil
	case "toml":
		p, err := tomlprov.New(arg)
		if err != nil {
			return nil, err
		}
		return &DynProvider{kind: KindGeneric, generic: p}, nil
	case "xml":
		p, err := xmlprov.New(arg)
		if err != nil {
			return nil, err
		}
		return &DynProvider{kind: KindGeneric, generic: p}, nil
	case "sqlite":
		p, err := sqliteprov.New(arg)
		if err != nil {
			return nil, err
		}
		return &DynProvider{kind: KindSqlite, sqlite: p}, nil
	case "proc":
		p, err := procprov.New(arg)
		if err != nil {
			return nil, err
		}
		return &DynProvider{kind: KindProc, proc: p}, nil
	default:
		return nil, fmt.Errorf("dispatch: %q is not a provider", name)
	}
}

var (
	_ treecore.Full[DynFragment] = (*DynProvider)(nil)
	_ treecore.Ext[DynFragment]  = (*DynProvider)(nil)
)
