package result_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	. "github.com/npillmayer/pmatch/result"
)

func TestResultSimple(t *testing.T) {
	x := Ok(7) // infers type
	y := Err[int](errors.New("not ok"))

	var v int
	var e error

	switch m := x.Match(); m {
	case m.Ok(&v):
		t.Logf("Ok(%d)", v)
	case m.Err(&e):
		t.Logf("Err")
	}
	if v != 7 {
		t.Errorf("expected v to be 7, is %#v", v)
	}

	switch m := y.Match(); m {
	case m.Ok(&v):
		t.Logf("Ok(%d)", v)
	case m.Err(&e):
		t.Logf("Err: %s", e.Error())
	}
	if e == nil {
		t.Errorf("expected error to be non-nil, but it is nil")
	}
}

func TestResultOfSlice(t *testing.T) {
	x := Of([]any{1, "a"}, nil)
	var v []any
	switch m := x.Match(); m {
	case m.Ok(&v):
	case m.Err(nil):
		t.Errorf("expected Ok")
	}
	if len(v) != 2 {
		t.Errorf("expected 2 elements, have %v", v)
	}
	if Of(1, errors.New("x")).IsOk() {
		t.Errorf("expected error to win")
	}
}

func TestResultAndThen(t *testing.T) {
	half := func(n int) Result[int] {
		if n%2 != 0 {
			return Err[int](errors.Newf("%d is odd", n))
		}
		return Ok(n / 2)
	}
	if r := AndThen(half, Ok(8)); r.WithDefault(-1) != 4 {
		t.Errorf("expected 8/2 = 4")
	}
	if r := AndThen(half, AndThen(half, Ok(6))); r.IsOk() {
		t.Errorf("expected 3 to be odd")
	}
}
