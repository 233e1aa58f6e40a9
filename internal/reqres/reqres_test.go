package reqres

import "testing"

func TestRequestThenRespond(t *testing.T) {
	r := New[string, int]("read a byte")
	if !r.IsRequest() || r.IsResponse() {
		t.Fatalf("fresh ReqRes should be a pending request")
	}
	if r.Request() != "read a byte" {
		t.Fatalf("Request() = %q", r.Request())
	}

	r2 := r.Respond(42)
	if r2.IsRequest() || !r2.IsResponse() {
		t.Fatalf("after Respond, should be a response")
	}
	if got := r2.Unwrap(); got != 42 {
		t.Fatalf("Unwrap() = %d, want 42", got)
	}
}

func TestRequestSurvivesRespond(t *testing.T) {
	r := New[string, int]("read a byte").Respond(7)
	if r.Request() != "read a byte" {
		t.Fatalf("Request() after Respond = %q, want request preserved", r.Request())
	}
}

func TestUnwrapOnRequestPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Unwrap on a pending request should panic")
		}
	}()
	New[int, int](1).Unwrap()
}

func TestRespondTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Respond on an already-answered ReqRes should panic")
		}
	}()
	r := New[int, int](1).Respond(2)
	r.Respond(3)
}
