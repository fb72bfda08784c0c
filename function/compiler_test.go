package function

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func inline(t *testing.T, name, do, revert string, params ...Parameter) *SharedFunction {
	t.Helper()

	fn, err := New(name, params, Body{Code: &Code{Do: do, Revert: revert}})
	if err != nil {
		t.Fatalf("New(%q) error = %v", name, err)
	}

	return fn
}

func composite(t *testing.T, name string, calls []*Call, params ...Parameter) *SharedFunction {
	t.Helper()

	fn, err := New(name, params, Body{Calls: calls})
	if err != nil {
		t.Fatalf("New(%q) error = %v", name, err)
	}

	return fn
}

func registry(t *testing.T, fns ...*SharedFunction) *Registry {
	t.Helper()

	r, err := NewRegistry(fns...)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	return r
}

func args(kv ...string) Arguments {
	list := make([]Argument, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		list = append(list, Argument{Name: kv[i], Value: kv[i+1]})
	}

	return MustArguments(list...)
}

func TestCompile_InvalidInput(t *testing.T) {
	reg := registry(t, inline(t, "f", "x", ""))

	tests := []struct {
		name     string
		calls    []*Call
		registry *Registry
		msg      string
	}{
		{"nil registry", []*Call{NewCall("f", Arguments{})}, nil, "undefined functions"},
		{"nil calls", nil, reg, "undefined calls"},
		{"nil call", []*Call{NewCall("f", Arguments{}), nil}, reg, "undefined function call"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompiler().Compile(tt.calls, tt.registry)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("Compile() error = %v, want ErrInvalidArgument", err)
			}

			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", err, tt.msg)
			}
		})
	}
}

func TestCompile_FunctionNotFound(t *testing.T) {
	reg := registry(t, inline(t, "f", "x", ""))

	_, err := NewCompiler().Compile([]*Call{NewCall("g", Arguments{})}, reg)
	if !errors.Is(err, ErrFunctionNotFound) {
		t.Fatalf("Compile() error = %v, want ErrFunctionNotFound", err)
	}

	if !strings.Contains(err.Error(), `"g"`) {
		t.Errorf("error %q does not name the missing function", err)
	}
}

func TestCompile_ParameterMismatch(t *testing.T) {
	tests := []struct {
		name string
		fn   *SharedFunction
		call *Call
		want string
	}{
		{
			name: "no parameters declared",
			fn:   inline(t, "f", "x", ""),
			call: NewCall("f", args("x", "1")),
			want: `function "f" has unexpected parameter(s) provided: "x". expected parameter(s): none`,
		},
		{
			name: "some parameters declared",
			fn:   inline(t, "f", "x", "", Parameter{Name: "a", Required: true}, Parameter{Name: "b"}),
			call: NewCall("f", args("a", "1", "x", "2", "y", "3")),
			want: `function "f" has unexpected parameter(s) provided: "x", "y". expected parameter(s): "a", "b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompiler().Compile([]*Call{tt.call}, registry(t, tt.fn))
			if !errors.Is(err, ErrParameterMismatch) {
				t.Fatalf("Compile() error = %v, want ErrParameterMismatch", err)
			}

			if !strings.HasSuffix(err.Error(), tt.want) {
				t.Errorf("Compile() error = %q, want suffix %q", err, tt.want)
			}
		})
	}
}

func TestCompile_Inline(t *testing.T) {
	reg := registry(t,
		inline(t, "set", "set {{ $key }}={{ $value }}", "unset {{ $key }}",
			Parameter{Name: "key", Required: true},
			Parameter{Name: "value", Required: true},
		),
		inline(t, "noop", "echo noop", ""),
	)

	got, err := NewCompiler().Compile([]*Call{
		NewCall("set", args("key", "A", "value", "1")),
		NewCall("noop", Arguments{}),
		NewCall("set", args("value", "2", "key", "B")),
	}, reg)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := CompiledCode{
		Code:       "set A=1\necho noop\nset B=2",
		RevertCode: "unset A\nunset B",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_Composite_RebindsArguments(t *testing.T) {
	reg := registry(t,
		inline(t, "echo", "echo {{ $msg }}", "echo undo {{ $msg }}",
			Parameter{Name: "msg", Required: true}),
		composite(t, "greet", []*Call{
			NewCall("echo", args("msg", "hello {{ $name }}")),
			NewCall("echo", args("msg", "bye {{ $name }}")),
		}, Parameter{Name: "name", Required: true}),
		composite(t, "twice", []*Call{
			NewCall("greet", args("name", "{{ $who }}")),
			NewCall("greet", args("name", "{{ $who }}!")),
		}, Parameter{Name: "who", Required: true}),
	)

	got, err := NewCompiler().Compile([]*Call{NewCall("twice", args("who", "bob"))}, reg)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := CompiledCode{
		Code:       "echo hello bob\necho bye bob\necho hello bob!\necho bye bob!",
		RevertCode: "echo undo hello bob\necho undo bye bob\necho undo hello bob!\necho undo bye bob!",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_RevertOrder(t *testing.T) {
	reg := registry(t,
		inline(t, "a", "do a", "undo a"),
		inline(t, "b", "do b", "undo b"),
	)
	calls := []*Call{NewCall("a", Arguments{}), NewCall("b", Arguments{})}

	forward, err := NewCompiler().Compile(calls, reg)
	if err != nil {
		t.Fatal(err)
	}

	reverse, err := NewCompiler(WithRevertOrder(ReverseOrder)).Compile(calls, reg)
	if err != nil {
		t.Fatal(err)
	}

	if forward.RevertCode != "undo a\nundo b" {
		t.Errorf("forward revert = %q", forward.RevertCode)
	}

	if reverse.RevertCode != "undo b\nundo a" {
		t.Errorf("reverse revert = %q", reverse.RevertCode)
	}

	if forward.Code != reverse.Code {
		t.Errorf("revert order changed code: %q vs %q", forward.Code, reverse.Code)
	}
}

func TestCompile_SkipsEmptyFragments(t *testing.T) {
	reg := registry(t,
		inline(t, "empty", "", ""),
		inline(t, "blank", "  \n\t", " "),
		inline(t, "x", "x", "  "),
		inline(t, "y", "y", "undo y"),
	)

	got, err := NewCompiler().Compile([]*Call{
		NewCall("empty", Arguments{}),
		NewCall("x", Arguments{}),
		NewCall("blank", Arguments{}),
		NewCall("empty", Arguments{}),
		NewCall("x", Arguments{}),
		NewCall("y", Arguments{}),
	}, reg)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(CompiledCode{Code: "x\nx\ny", RevertCode: "undo y"}, got); diff != "" {
		t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_OptionalParameters(t *testing.T) {
	reg := registry(t,
		inline(t, "f", "run{{ $flag }}", "",
			Parameter{Name: "flag"}),
		inline(t, "g", "run {{ $req }}", "",
			Parameter{Name: "req", Required: true}),
	)

	got, err := NewCompiler().Compile([]*Call{NewCall("f", Arguments{})}, reg)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if got.Code != "run" {
		t.Errorf("Compile() code = %q, want %q", got.Code, "run")
	}

	_, err = NewCompiler().Compile([]*Call{NewCall("g", Arguments{})}, reg)
	if err == nil || !strings.Contains(err.Error(), `"req"`) {
		t.Errorf("Compile() error = %v, want unresolved \"req\"", err)
	}
}

func TestCompile_Cycle(t *testing.T) {
	reg := registry(t,
		composite(t, "a", []*Call{NewCall("b", Arguments{})}),
		composite(t, "b", []*Call{NewCall("a", Arguments{})}),
	)

	_, err := NewCompiler().Compile([]*Call{NewCall("a", Arguments{})}, reg)
	if !errors.Is(err, ErrCyclicFunction) {
		t.Fatalf("Compile() error = %v, want ErrCyclicFunction", err)
	}

	if !strings.Contains(err.Error(), "a -> b -> a") {
		t.Errorf("error %q does not show the call chain", err)
	}
}

func TestCompile_MaxDepth(t *testing.T) {
	reg := registry(t,
		composite(t, "a", []*Call{NewCall("b", Arguments{})}),
		composite(t, "b", []*Call{NewCall("c", Arguments{})}),
		inline(t, "c", "c", ""),
	)
	calls := []*Call{NewCall("a", Arguments{})}

	if _, err := NewCompiler(WithMaxDepth(3)).Compile(calls, reg); err != nil {
		t.Fatalf("Compile() at limit error = %v", err)
	}

	_, err := NewCompiler(WithMaxDepth(2)).Compile(calls, reg)
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("Compile() error = %v, want ErrMaxDepthExceeded", err)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	reg := registry(t,
		inline(t, "f", "{{ $a }}-{{ $b }}", "", Parameter{Name: "a"}, Parameter{Name: "b"}),
	)
	calls := []*Call{NewCall("f", args("a", "1", "b", "2"))}
	c := NewCompiler()

	first, err := c.Compile(calls, reg)
	if err != nil {
		t.Fatal(err)
	}

	for range 5 {
		got, err := c.Compile(calls, reg)
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(first, got); diff != "" {
			t.Fatalf("non-deterministic output (-first +got):\n%s", diff)
		}
	}
}
