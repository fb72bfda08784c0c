package expression

import (
	"errors"
	"strings"
	"testing"
)

func TestCompile_SubstitutesPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     Map
		want     string
	}{
		{"single", "echo {{ $a }}", Map{"a": "X"}, "echo X"},
		{"no spaces", "echo {{$a}}", Map{"a": "X"}, "echo X"},
		{"repeated", "{{ $a }}-{{ $a }}", Map{"a": "X"}, "X-X"},
		{"multiple", "cp {{ $src }} {{ $dst }}", Map{"src": "a", "dst": "b"}, "cp a b"},
		{"multiline", "echo {{ $a }}\necho {{ $b }}", Map{"a": "1", "b": "2"}, "echo 1\necho 2"},
		{"empty value", "echo {{ $a }}.", Map{"a": ""}, "echo ."},
		{"unused argument", "echo {{ $a }}", Map{"a": "X", "b": "Y"}, "echo X"},
	}

	c := NewCompiler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Compile(tt.template, tt.args)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_WithoutPlaceholders_ReturnsInput(t *testing.T) {
	c := NewCompiler()

	for _, template := range []string{"", "echo hello", "echo {{ a }}", "{ $a }", "echo $a"} {
		got, err := c.Compile(template, nil)
		if err != nil {
			t.Fatalf("Compile(%q) error = %v", template, err)
		}

		if got != template {
			t.Errorf("Compile(%q) = %q, want input unchanged", template, got)
		}
	}
}

func TestCompile_UnresolvedParameters(t *testing.T) {
	c := NewCompiler()

	_, err := c.Compile("{{ $a }} {{ $b }} {{ $a }}", Map{"c": "1"})
	if !errors.Is(err, ErrUnresolvedParameter) {
		t.Fatalf("Compile() error = %v, want ErrUnresolvedParameter", err)
	}

	if !strings.Contains(err.Error(), `"a", "b"`) {
		t.Errorf("error %q does not list both unresolved names", err)
	}
}

func TestCompile_Pipes(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     Map
		want     string
	}{
		{"escape double quotes", `echo "{{ $a | escapeDoubleQuotes }}"`, Map{"a": `say "hi"`}, `echo "say \"hi\""`},
		{"escape single quotes", `echo '{{ $a | escapeSingleQuotes }}'`, Map{"a": "it's"}, `echo 'it'\''s'`},
		{"builtin upper", "{{ $a | upper }}", Map{"a": "abc"}, "ABC"},
		{"explicit call", "{{ $a | upper() }}", Map{"a": "abc"}, "ABC"},
		{"chained", `{{ $a | orDefault("world") | upper }}`, Map{"a": ""}, "WORLD"},
		{"default unused", `{{ $a | orDefault("world") }}`, Map{"a": "moon"}, "moon"},
		{"pipe char in string", `{{ $a | orDefault("a|b") }}`, Map{"a": ""}, "a|b"},
	}

	c := NewCompiler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Compile(tt.template, tt.args)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_PathPrefixPipe(t *testing.T) {
	got, err := NewCompiler().Compile(
		`{{ $path | pathPrefix(":", "/opt/bin") }}`,
		Map{"path": "/usr/bin"},
	)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if !strings.HasPrefix(got, "/opt/bin") || !strings.Contains(got, "/usr/bin") {
		t.Errorf("Compile() = %q, want /opt/bin prefixed to /usr/bin", got)
	}
}

func TestCompile_CustomPipe(t *testing.T) {
	c := NewCompiler(WithPipe("twice", func(s string) string { return s + s }))

	got, err := c.Compile("{{ $a | twice }}", Map{"a": "ab"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if got != "abab" {
		t.Errorf("Compile() = %q, want %q", got, "abab")
	}
}

func TestCompile_InvalidPipeline(t *testing.T) {
	c := NewCompiler()

	for _, template := range []string{
		"{{ $a | }}",
		"{{ $a | noSuchPipe }}",
		`{{ $a | orDefault("x }}`,
	} {
		_, err := c.Compile(template, Map{"a": "1"})
		if err == nil {
			t.Errorf("Compile(%q) expected error", template)
		}
	}
}

func TestCompile_MalformedPlaceholder(t *testing.T) {
	c := NewCompiler()

	tests := []struct {
		name     string
		template string
	}{
		{"hyphenated name", "echo {{ $my-param }}"},
		{"leading digit", "echo {{ $1a }}"},
		{"brace in pipe argument", `echo {{ $a | orDefault("}") }}`},
		{"unterminated", "echo {{ $a"},
		{"beside a valid one", "echo {{ $a }} {{ $a-b }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Compile(tt.template, Map{"a": "1", "my-param": "2", "1a": "3"})
			if !errors.Is(err, ErrInvalidPlaceholder) {
				t.Fatalf("Compile(%q) = %q, %v; want ErrInvalidPlaceholder", tt.template, got, err)
			}
		})
	}
}

func TestIsParameterName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a", true},
		{"_private", true},
		{"snake_case2", true},
		{"", false},
		{"my-param", false},
		{"2fast", false},
		{"has space", false},
	}

	for _, tt := range tests {
		if got := IsParameterName(tt.name); got != tt.want {
			t.Errorf("IsParameterName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCompile_Deterministic(t *testing.T) {
	c := NewCompiler()
	template := `{{ $a | upper }} {{ $b }}`
	args := Map{"a": "x", "b": "y"}

	first, err := c.Compile(template, args)
	if err != nil {
		t.Fatal(err)
	}

	second, err := c.Compile(template, args)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("outputs differ: %q vs %q", first, second)
	}
}

func TestSplitPipeline(t *testing.T) {
	got, err := splitPipeline(` a | b("x|y", 'z') | c `)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a", `b("x|y", 'z')`, "c"}
	if strings.Join(got, ";") != strings.Join(want, ";") {
		t.Errorf("splitPipeline() = %q, want %q", got, want)
	}

	if _, err := splitPipeline(`a("`); err == nil {
		t.Error("expected unbalanced error")
	}
}
