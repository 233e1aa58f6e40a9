package treecore

import "io"

// Provider is the abstract data source contract: it hands out Fragments,
// opaque provider-defined payloads the core never inspects beyond
// equality, display and the provider's own ordering.
type Provider[F any] interface {
	// ProvideRoot returns the synthetic root's fragment.
	ProvideRoot() F

	// Provide returns the natural-order children fragments for the node
	// at the end of path (path runs root-to-node inclusive). An empty
	// result means "no children": a leaf, not an error. On a non-nil
	// error (permission denied, a parse or query failure) the node still
	// becomes a provided, childless leaf, but the error is surfaced as a
	// message rather than silently swallowed.
	Provide(path []F) ([]F, error)
}

// FilterSorter orders and filters a Provider's own fragments, the same
// contract fisovec.FilterSorter uses, restated here so Provider
// implementations read as "this is the provider's ordering".
type FilterSorter[F any] interface {
	Compare(a, b F) int
	Keep(a F) bool
}

// Full is what Tree actually requires: a Provider that is also its own
// FilterSorter.
type Full[F any] interface {
	Provider[F]
	FilterSorter[F]
}

// Ext is an optional Provider extension: richer display and a
// provider-specific command fallthrough. A Provider that
// doesn't need it simply doesn't implement this interface; callers probe
// for it with a type assertion.
type Ext[F any] interface {
	// FmtFragPath renders the fragment path for the status line.
	FmtFragPath(w io.Writer, path []F) error

	// WriteArgPath renders the path as a shell-usable token, used for "%"
	// substitution in prompt commands.
	WriteArgPath(w io.Writer, path []F) error

	// ProviderCommand executes a provider-specific `:` command and
	// returns an optional user-visible message.
	ProviderCommand(args []string) (string, error)
}
