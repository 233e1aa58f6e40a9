// Package jsonprov provides a JSON document tree via tidwall/gjson:
// parse once, walk lazily through gjson.Result, plugged into the
// internal/providers/generic scaffold.
package jsonprov

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"

	"github.com/brianmcjilton/treest/internal/providers/generic"
)

// Value adapts a gjson.Result into generic.Value.
type Value struct {
	result gjson.Result
}

func (v Value) Children() []generic.Child {
	switch {
	case v.result.IsObject():
		var children []generic.Child
		v.result.ForEach(func(key, val gjson.Result) bool {
			children = append(children, generic.Child{
				Key:   generic.NameKey(key.String()),
				Value: Value{result: val},
			})
			return true
		})
		return children

	case v.result.IsArray():
		var children []generic.Child
		i := 0
		v.result.ForEach(func(_, val gjson.Result) bool {
			children = append(children, generic.Child{
				Key:   generic.IndexKey(i),
				Value: Value{result: val},
			})
			i++
			return true
		})
		return children

	default:
		return nil
	}
}

func (v Value) FmtLeaf(w io.Writer) error {
	switch v.result.Type {
	case gjson.Null:
		_, err := io.WriteString(w, "\x1b[35mnull")
		return err
	case gjson.True, gjson.False:
		_, err := fmt.Fprintf(w, "\x1b[35m%s", v.result.Raw)
		return err
	case gjson.Number:
		_, err := fmt.Fprintf(w, "\x1b[33m%s", v.result.Raw)
		return err
	case gjson.String:
		s := v.result.String()
		if len(s) > 42 {
			s = s[:42]
		}
		_, err := fmt.Fprintf(w, "\x1b[32m%q", s)
		return err
	case gjson.JSON:
		if v.result.IsObject() {
			_, err := fmt.Fprintf(w, "{%d}", len(v.result.Map()))
			return err
		}
		_, err := fmt.Fprintf(w, "[%d]", len(v.result.Array()))
		return err
	default:
		_, err := io.WriteString(w, v.result.Raw)
		return err
	}
}

// New builds a json provider over the file at path.
func New(path string) (*generic.Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("jsonprov: %s is not valid JSON", path)
	}
	root := gjson.ParseBytes(data)
	return &generic.Provider{Root: Value{result: root}, Style: generic.StylePath}, nil
}
