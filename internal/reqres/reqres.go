// Package reqres models a single outstanding request/response pair: the
// suspension primitive the navigate state machine uses to hand control to
// the host for input, a prompt, or a subprocess, then resume once the host
// fills in the answer.
package reqres

// ReqRes is either a pending Request carrying a value of type Req, or an
// already-filled Response carrying a value of type Res. It is not safe
// for concurrent use: the navigate driver loop is strictly single
// threaded.
type ReqRes[Req, Res any] struct {
	req      Req
	res      Res
	answered bool
}

// New wraps req as a pending Request.
func New[Req, Res any](req Req) ReqRes[Req, Res] {
	return ReqRes[Req, Res]{req: req}
}

// IsRequest reports whether this value is still awaiting a Respond call.
func (r ReqRes[Req, Res]) IsRequest() bool {
	return !r.answered
}

// IsResponse reports whether Respond has already been called.
func (r ReqRes[Req, Res]) IsResponse() bool {
	return r.answered
}

// Request returns the carried request value, kept around even after
// Respond so callers can still ask "what was this a response to".
func (r ReqRes[Req, Res]) Request() Req {
	return r.req
}

// Respond answers a pending request, turning it into a Response.
// Respond on an already-answered value panics: answering twice is always
// a driver-loop bug, not a recoverable condition.
func (r ReqRes[Req, Res]) Respond(res Res) ReqRes[Req, Res] {
	if r.answered {
		panic("reqres: Respond called on an already-answered ReqRes")
	}
	return ReqRes[Req, Res]{req: r.req, res: res, answered: true}
}

// Unwrap returns the response value. Unwrap on a still-pending value
// panics.
func (r ReqRes[Req, Res]) Unwrap() Res {
	if !r.answered {
		panic("reqres: Unwrap called on a still-pending ReqRes")
	}
	return r.res
}
