package guard

import (
	"github.com/cockroachdb/errors"
	"github.com/dop251/goja"
)

// Receiver is the name under which a script guard sees the case it is
// evaluated for. The receiver offers the maps 'source' and 'targets'.
// If a source or capture is called like the receiver, the receiver is
// renamed by prefixing underscores until the name is free.
const Receiver = "self"

// Script compiles a guard from a JavaScript expression. Sources and
// captures are visible as global variables; captures hide sources of the
// same name. names lists the sources the expression requires.
//
//    g, err := guard.Script("x == y && x > limit", "limit")
//
func Script(text string, names ...string) (Guard, error) {
	prog, err := goja.Compile("guard", "(\n"+text+"\n)", true)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot compile guard %q", text)
	}
	return &script{text: text, prog: prog, sources: uniqueSorted(names)}, nil
}

type script struct {
	text    string
	prog    *goja.Program
	sources []string
}

func (s *script) String() string {
	return s.text
}

func (s *script) Sources() []string {
	return s.sources
}

// Test evaluates the script in a fresh interpreter, so script guards may
// be evaluated concurrently for different cases.
func (s *script) Test(env Env) (bool, error) {
	vm := goja.New()
	srcnames := env.SourceNames()
	sources := make(map[string]interface{}, len(srcnames))
	for _, name := range srcnames {
		v, _ := env.Source(name)
		sources[name] = v
		vm.Set(name, v)
	}
	capnames := env.CaptureNames()
	targets := make(map[string]interface{}, len(capnames))
	for _, name := range capnames {
		v, _ := env.Capture(name)
		targets[name] = v
		vm.Set(name, v)
	}
	recv := vm.NewObject()
	recv.Set("source", sources)
	recv.Set("targets", targets)
	taken := append(append([]string{}, srcnames...), capnames...)
	vm.Set(ReceiverName(taken), recv)
	val, err := vm.RunProgram(s.prog)
	if err != nil {
		return false, errors.Wrapf(err, "guard %q failed", s.text)
	}
	tracer().Debugf("guard %q = %v", s.text, val)
	return val.ToBoolean(), nil
}

// ReceiverName returns the name for the receiver of a script guard,
// avoiding collisions with the names already taken.
func ReceiverName(taken []string) string {
	name := Receiver
	for contains(taken, name) {
		name = "_" + name
	}
	return name
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
