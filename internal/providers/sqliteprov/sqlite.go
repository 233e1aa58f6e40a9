// Package sqliteprov provides a database-schema-and-contents tree over
// github.com/mattn/go-sqlite3: the root is the database file, its
// children are the objects in sqlite_master (tables, views, indexes,
// triggers), a table/view's children are its rows (only the first
// pageSize rows are loaded; later rows are not shown), and a row's
// children are column = value leaves.
package sqliteprov

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/brianmcjilton/treest/internal/treecore"
)

const pageSize = 200

// Kind distinguishes the four levels of the tree.
type Kind int

const (
	KindDatabase Kind = iota
	KindObject        // a row in sqlite_master: table, view, index, or trigger
	KindRow
	KindColumn
)

// Fragment is one node: its kind, a display label, and enough of the
// schema/row context to fetch its own children lazily.
type Fragment struct {
	Kind       Kind
	Label      string
	ObjectName string // sqlite_master.name, set on KindObject/KindRow
	ObjectType string // sqlite_master.type ("table"/"view"/"index"/"trigger")
	RowOffset  int    // KindRow: this row's 0-based offset within its table
	ColValue   string // KindColumn: the formatted value
}

func (f Fragment) String() string {
	switch f.Kind {
	case KindDatabase:
		return f.Label
	case KindObject:
		return fmt.Sprintf("\x1b[34m%s\x1b[m (%s)", f.ObjectName, f.ObjectType)
	case KindRow:
		return fmt.Sprintf("row %d", f.RowOffset)
	case KindColumn:
		return fmt.Sprintf("\x1b[34m%s\x1b[m: %s", f.Label, f.ColValue)
	default:
		return f.Label
	}
}

// Provider walks one open database connection.
type Provider struct {
	db   *sql.DB
	path string
}

func New(path string) (*Provider, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqliteprov: %s: %w", path, err)
	}
	return &Provider{db: db, path: path}, nil
}

func (p *Provider) Close() error { return p.db.Close() }

func (p *Provider) ProvideRoot() Fragment {
	return Fragment{Kind: KindDatabase, Label: p.path}
}

func (p *Provider) Provide(path []Fragment) ([]Fragment, error) {
	last := path[len(path)-1]
	switch last.Kind {
	case KindDatabase:
		return p.provideObjects()
	case KindObject:
		return p.provideRows(last)
	case KindRow:
		return p.provideColumns(last)
	default:
		return nil, nil
	}
}

func (p *Provider) provideObjects() ([]Fragment, error) {
	rows, err := p.db.Query(`SELECT name, type FROM sqlite_master WHERE name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("sqliteprov: listing schema objects: %w", err)
	}
	defer rows.Close()

	var out []Fragment
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return out, fmt.Errorf("sqliteprov: scanning schema row: %w", err)
		}
		out = append(out, Fragment{Kind: KindObject, ObjectName: name, ObjectType: typ})
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("sqliteprov: listing schema objects: %w", err)
	}
	return out, nil
}

// provideRows materializes only the first page, honoring "Provider.
// provide returns this node's children in natural source order" without
// loading an entire table at once.
func (p *Provider) provideRows(obj Fragment) ([]Fragment, error) {
	if obj.ObjectType != "table" && obj.ObjectType != "view" {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT rowid FROM %s LIMIT %d`, quoteIdent(obj.ObjectName), pageSize)
	rows, err := p.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("sqliteprov: querying %s: %w", obj.ObjectName, err)
	}
	defer rows.Close()

	var out []Fragment
	offset := 0
	for rows.Next() {
		out = append(out, Fragment{
			Kind:       KindRow,
			ObjectName: obj.ObjectName,
			ObjectType: obj.ObjectType,
			RowOffset:  offset,
		})
		offset++
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("sqliteprov: reading rows of %s: %w", obj.ObjectName, err)
	}
	return out, nil
}

func (p *Provider) provideColumns(row Fragment) ([]Fragment, error) {
	query := fmt.Sprintf(`SELECT * FROM %s LIMIT 1 OFFSET %d`, quoteIdent(row.ObjectName), row.RowOffset)
	rows, err := p.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("sqliteprov: querying row %d of %s: %w", row.RowOffset, row.ObjectName, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqliteprov: reading columns of %s: %w", row.ObjectName, err)
	}
	if !rows.Next() {
		return nil, nil
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("sqliteprov: scanning row %d of %s: %w", row.RowOffset, row.ObjectName, err)
	}

	out := make([]Fragment, len(cols))
	for i, c := range cols {
		out[i] = Fragment{Kind: KindColumn, Label: c, ColValue: formatValue(vals[i])}
	}
	return out, nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "\x1b[35mnull"
	case []byte:
		return fmt.Sprintf("\x1b[32m%q", string(t))
	case string:
		return fmt.Sprintf("\x1b[32m%q", t)
	default:
		return fmt.Sprintf("\x1b[33m%v", t)
	}
}

// quoteIdent brackets a sqlite_master-sourced identifier so it can be
// interpolated into a query without ever treating user/:set-supplied
// text as SQL: identifiers come only from sqlite_master, never from
// prompt arguments, and doubling embedded quotes neutralizes the one
// character the bracketing itself can't escape.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (p *Provider) Compare(a, b Fragment) int {
	al, bl := sortKey(a), sortKey(b)
	switch {
	case al < bl:
		return -1
	case al > bl:
		return 1
	default:
		return 0
	}
}

func sortKey(f Fragment) string {
	switch f.Kind {
	case KindObject:
		return f.ObjectName
	case KindRow:
		return fmt.Sprintf("%08d", f.RowOffset)
	case KindColumn:
		return f.Label
	default:
		return f.Label
	}
}

func (p *Provider) Keep(a Fragment) bool { return true }

func (p *Provider) FmtFragPath(w io.Writer, path []Fragment) error {
	for _, f := range path[1:] {
		if _, err := fmt.Fprintf(w, " %s", f.String()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) WriteArgPath(w io.Writer, path []Fragment) error {
	parts := make([]string, 0, len(path))
	for _, f := range path[1:] {
		switch f.Kind {
		case KindObject:
			parts = append(parts, f.ObjectName)
		case KindRow:
			parts = append(parts, fmt.Sprintf("%d", f.RowOffset))
		case KindColumn:
			parts = append(parts, f.Label)
		}
	}
	_, err := io.WriteString(w, strings.Join(parts, "."))
	return err
}

func (p *Provider) ProviderCommand(args []string) (string, error) {
	return "", fmt.Errorf("no provider-specific commands")
}

var _ treecore.Full[Fragment] = (*Provider)(nil)
var _ treecore.Ext[Fragment] = (*Provider)(nil)
