package navigate

// ExecRequest describes a subprocess the host must run on the core's
// behalf. Restore tells the host whether to drop raw/alt-screen mode
// for the duration of the child.
type ExecRequest struct {
	Restore bool
	Path    string
	Args    []string
}

// ExecStatusResult is what the host reports back for a fire-and-forget
// subprocess (the `t`/`T` sub-tree spawn): either it ran with some exit
// status, or it could not even be started.
type ExecStatusResult struct {
	Success bool
	Code    int
	Err     error
}

// ExecOutputResult is what the host reports back for a captured
// subprocess (the `f` binding): stdout/stderr on success, or the error
// that prevented the run.
type ExecOutputResult struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// PromptResponse is what the host fills in after running the line
// editor: the raw line and its tokenized args, or Aborted if the user
// cancelled.
type PromptResponse struct {
	Line    string
	Args    []string
	Aborted bool
}
