package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type initCLI struct {
	Level   string   `default:"info"`
	Pretty  bool     `default:"true"`
	Tags    []string `default:"a,b"`
	Empty   string
	Version kong.VersionFlag
	Init    Init `cmd:""`
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath, "version": "0"})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(append([]string{"init"}, args...))
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

func TestInit_Run(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{"create new config", false, false, nil},
		{"overwrite with force", true, true, nil},
		{"fail without force", false, true, ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			err := (&Init{Force: tt.force}).Run(initContext(t, confPath, "--level=debug"))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("generated config is not YAML: %v\n%s", err, data)
			}

			if got["level"] != "debug" || got["pretty"] != true {
				t.Errorf("config = %v", got)
			}

			for _, omitted := range []string{"empty", "help", "version"} {
				if _, ok := got[omitted]; ok {
					t.Errorf("config includes %q", omitted)
				}
			}

			if tags, ok := got["tags"].([]any); !ok || len(tags) != 2 {
				t.Errorf("tags = %#v", got["tags"])
			}
		})
	}
}
