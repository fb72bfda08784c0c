package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/scriptgen/log"
)

func TestResolve(t *testing.T) {
	src := `
log-level: debug
log_format: text
max-depth: 8
script:
  - a
  - b
revert: true
`

	r, err := resolve(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"max-depth", "8"},
		{"script", "a,b"},
		{"revert", true},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_Malformed(t *testing.T) {
	if _, err := resolve(strings.NewReader("log-level: [")); err == nil {
		t.Error("resolve() expected error for malformed YAML")
	}

	r, err := resolve(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolve(empty) error = %v", err)
	}

	if got, _ := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "x"}}); got != nil {
		t.Errorf("Resolve() on empty config = %v", got)
	}
}

func TestLogConfig_Scan(t *testing.T) {
	defer log.SetDefault(log.Default())

	var cfg logConfig

	cfg.scan([]string{
		"compile", "--log-level", "debug", "--log-format=text",
		"--no-log-pretty", "--log-caller=true", "file.yaml",
	})

	if cfg.Level != "debug" || cfg.Format != "text" {
		t.Errorf("Level = %q, Format = %q", cfg.Level, cfg.Format)
	}

	if cfg.Pretty || !cfg.Caller {
		t.Errorf("Pretty = %v, Caller = %v", cfg.Pretty, cfg.Caller)
	}

	if got := log.Default().Level(); got != log.LevelDebug {
		t.Errorf("default logger level = %v, want debug", got)
	}
}

func TestRun_Compile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	defer log.SetDefault(log.Default())

	dir := t.TempDir()
	src := filepath.Join(dir, "collection.yaml")
	out := filepath.Join(dir, "out.bat")

	collection := `
os: windows
scripting:
  language: batchfile
actions:
  - category: Cleanup
    children:
      - name: Clear temp
        code: del /q %TEMP%\*
`
	if err := os.WriteFile(src, []byte(collection), 0o600); err != nil {
		t.Fatal(err)
	}

	exited := -1

	err := Run(context.Background(), func(code int) { exited = code },
		"--log-level=error", src, "-o", out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if exited != -1 {
		t.Errorf("exit called with %d", exited)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "echo --- Clear temp\r\ndel /q %TEMP%\\*\r\n") {
		t.Errorf("output = %q", data)
	}
}
