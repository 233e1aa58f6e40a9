package navigate

import "github.com/brianmcjilton/treest/internal/reqres"

// StateKind tags which suspension variant a State holds. Exactly one is
// live at a time, and the host drives the session entirely by
// inspecting the kind, performing the matching I/O, and calling Step.
type StateKind int

const (
	KindContinue StateKind = iota
	KindPrompt
	KindExecStatus
	KindExecOutput
)

// State wraps exactly one live ReqRes, tagged by Kind. Constructing one
// directly is unusual; use the NewXxx constructors below.
type State struct {
	Kind       StateKind
	continueRR reqres.ReqRes[struct{}, byte]
	promptRR   reqres.ReqRes[string, PromptResponse]
	statusRR   reqres.ReqRes[ExecRequest, ExecStatusResult]
	outputRR   reqres.ReqRes[ExecRequest, ExecOutputResult]
}

// NewContinueState is the initial/default state: waiting for one input
// byte.
func NewContinueState() State {
	return State{Kind: KindContinue, continueRR: reqres.New[struct{}, byte](struct{}{})}
}

// NewPromptState asks the host to run the line editor with the given
// prompt label.
func NewPromptState(label string) State {
	return State{Kind: KindPrompt, promptRR: reqres.New[string, PromptResponse](label)}
}

// NewExecStatusState asks the host to run req and report only
// success/failure.
func NewExecStatusState(req ExecRequest) State {
	return State{Kind: KindExecStatus, statusRR: reqres.New[ExecRequest, ExecStatusResult](req)}
}

// NewExecOutputState asks the host to run req and capture its output.
func NewExecOutputState(req ExecRequest) State {
	return State{Kind: KindExecOutput, outputRR: reqres.New[ExecRequest, ExecOutputResult](req)}
}

// ContinueRequest returns the pending Continue request, valid only when
// Kind == KindContinue.
func (s State) ContinueRequest() reqres.ReqRes[struct{}, byte] { return s.continueRR }

// PromptRequest returns the pending Prompt request's label, valid only
// when Kind == KindPrompt.
func (s State) PromptRequest() string { return s.promptRR.Request() }

// ExecStatusRequest returns the pending ExecStatus request, valid only
// when Kind == KindExecStatus.
func (s State) ExecStatusRequest() ExecRequest { return s.statusRR.Request() }

// ExecOutputRequest returns the pending ExecOutput request, valid only
// when Kind == KindExecOutput.
func (s State) ExecOutputRequest() ExecRequest { return s.outputRR.Request() }

// RespondContinue answers a Continue request with one input byte.
func (s State) RespondContinue(b byte) State {
	s.continueRR = s.continueRR.Respond(b)
	return s
}

// RespondPrompt answers a Prompt request.
func (s State) RespondPrompt(resp PromptResponse) State {
	s.promptRR = s.promptRR.Respond(resp)
	return s
}

// RespondExecStatus answers an ExecStatus request.
func (s State) RespondExecStatus(res ExecStatusResult) State {
	s.statusRR = s.statusRR.Respond(res)
	return s
}

// RespondExecOutput answers an ExecOutput request.
func (s State) RespondExecOutput(res ExecOutputResult) State {
	s.outputRR = s.outputRR.Respond(res)
	return s
}
