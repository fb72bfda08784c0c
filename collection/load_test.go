package collection

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/scriptgen/lang"
)

const testCollection = `
os: linux
scripting:
  language: shellscript
  startCode: "#!/bin/sh"
  endCode: "echo done"
actions:
  - category: Privacy
    docs: https://example.com/privacy
    children:
      - name: Disable telemetry
        recommend: standard
        call:
          function: SetConfig
          parameters:
            key: telemetry
            value: "off"
      - category: Network
        children:
          - name: Block tracker
            recommend: strict
            docs:
              - https://example.com/a
              - https://example.com/b
            code: echo block
            revertCode: echo unblock
          - name: Flush cache
            call:
              - function: Echo
                parameters:
                  message: flushing
              - function: SetConfig
                parameters:
                  key: cache
                  value: "0"
functions:
  - name: SetConfig
    parameters:
      - name: key
      - name: value
    code: config set {{ $key }} {{ $value }}
    revertCode: config unset {{ $key }}
  - name: Echo
    parameters:
      - name: message
      - name: prefix
        optional: true
    code: echo {{ $prefix }}{{ $message }}
`

func TestLoad(t *testing.T) {
	ClearCache()

	c, err := Load(context.Background(), strings.NewReader(testCollection))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.OS != "linux" || c.Scripting.Language != lang.ShellScript {
		t.Errorf("OS = %q, Language = %v", c.OS, c.Scripting.Language)
	}

	if c.Scripting.FileExtension != "sh" {
		t.Errorf("FileExtension = %q, want default %q", c.Scripting.FileExtension, "sh")
	}

	var names []string
	for s := range c.Scripts() {
		names = append(names, s.Name)
	}

	if diff := cmp.Diff([]string{"Disable telemetry", "Block tracker", "Flush cache"}, names); diff != "" {
		t.Errorf("Scripts() mismatch (-want +got):\n%s", diff)
	}

	flush, ok := c.Script("Flush cache")
	if !ok {
		t.Fatal("Script(Flush cache) not found")
	}

	if flush.Code != "echo flushing\nconfig set cache 0" {
		t.Errorf("Flush cache code = %q", flush.Code)
	}

	if flush.RevertCode != "config unset cache" {
		t.Errorf("Flush cache revert = %q", flush.RevertCode)
	}

	block, _ := c.Script("Block tracker")
	if diff := cmp.Diff([]string{"https://example.com/a", "https://example.com/b"}, block.DocumentationURLs); diff != "" {
		t.Errorf("docs mismatch (-want +got):\n%s", diff)
	}

	if got := len(c.Recommended(LevelStandard)); got != 1 {
		t.Errorf("Recommended(standard) = %d scripts, want 1", got)
	}

	if got := len(c.Recommended(LevelStrict)); got != 2 {
		t.Errorf("Recommended(strict) = %d scripts, want 2", got)
	}

	var ids []int
	for cat := range c.AllCategories() {
		ids = append(ids, cat.ID)
	}

	if diff := cmp.Diff([]int{1, 2}, ids); diff != "" {
		t.Errorf("category IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_CachesIdenticalSources(t *testing.T) {
	ClearCache()

	ctx := context.Background()

	first, err := Load(ctx, strings.NewReader(testCollection))
	if err != nil {
		t.Fatal(err)
	}

	second, err := Load(ctx, strings.NewReader(testCollection))
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("Load() returned different collections for identical sources")
	}

	third, err := Load(ctx, strings.NewReader(testCollection), WithoutCache())
	if err != nil {
		t.Fatal(err)
	}

	if third == first {
		t.Error("Load(WithoutCache) returned the cached collection")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"malformed yaml", "os: [", ErrDecode},
		{"no os", "scripting: {language: shellscript}\nactions: [{category: c, children: [{name: s, code: x}]}]", ErrInvalidArgument},
		{"bad language", "os: x\nscripting: {language: cobol}\nactions: [{category: c, children: [{name: s, code: x}]}]", lang.ErrUnsupportedLanguage},
		{"no actions", "os: x\nscripting: {language: batchfile}", ErrInvalidArgument},
		{
			"duplicate script",
			"os: x\nscripting: {language: batchfile}\nactions: [{category: c, children: [{name: s, code: x}, {name: s, code: y}]}]",
			ErrDuplicateScript,
		},
		{
			"empty category",
			"os: x\nscripting: {language: batchfile}\nactions: [{category: c, children: []}]",
			ErrEmptyCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), strings.NewReader(tt.src), WithoutCache())
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linux.yaml")
	if err := os.WriteFile(path, []byte(testCollection), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(context.Background(), path, WithoutCache()); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("LoadFile(missing) error = %v, want ErrReadInput", err)
	}
}

func TestDecode_SingleOrList(t *testing.T) {
	data, err := Decode(context.Background(), []byte(testCollection))
	if err != nil {
		t.Fatal(err)
	}

	privacy := data.Actions[0]
	if diff := cmp.Diff(DocsData{"https://example.com/privacy"}, privacy.Docs); diff != "" {
		t.Errorf("single docs mismatch (-want +got):\n%s", diff)
	}

	telemetry := privacy.Children[0].Script
	if telemetry == nil || len(telemetry.Call) != 1 {
		t.Fatalf("single call not decoded as one-element list: %+v", telemetry)
	}

	if telemetry.Call[0].Parameters[0].Name != "key" {
		t.Errorf("parameter order not preserved: %v", telemetry.Call[0].Parameters)
	}

	network := privacy.Children[1].Category
	if network == nil || network.DisplayName() != "Network" {
		t.Fatalf("category child not decoded: %+v", privacy.Children[1])
	}

	if got := len(network.Children[1].Script.Call); got != 2 {
		t.Errorf("call list length = %d, want 2", got)
	}
}

func TestDecode_ArgumentSourceText(t *testing.T) {
	const src = `
os: linux
scripting: {language: shellscript}
actions:
  - category: c
    children:
      - name: s
        call:
          function: set
          parameters:
            mode: 0755
            id: 00000001
            version: 1.10
            quoted: "a: b"
            flag: true
            empty:
            block: |
              line
`

	data, err := Decode(context.Background(), []byte(src))
	if err != nil {
		t.Fatal(err)
	}

	want := argumentsData(
		"mode", "0755",
		"id", "00000001",
		"version", "1.10",
		"quoted", "a: b",
		"flag", "true",
		"empty", "",
		"block", "line\n",
	)

	got := data.Actions[0].Children[0].Script.Call[0].Parameters
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_NonScalarArgument(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"flow sequence", "[x, y]"},
		{"flow mapping", "{x: y}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "os: x\nscripting: {language: shellscript}\n" +
				"actions: [{category: c, children: [{name: s, call: [{function: set, parameters: {v: " +
				tt.value + "}}]}]}]"

			_, err := Decode(context.Background(), []byte(src))
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("Decode() error = %v, want ErrDecode", err)
			}

			if !strings.Contains(err.Error(), "invalid argument value") {
				t.Errorf("Decode() error = %q, want it to name the invalid argument", err)
			}
		})
	}
}

func TestLoad_NumericArgumentsKeepSourceText(t *testing.T) {
	const src = `
os: linux
scripting: {language: shellscript}
actions:
  - category: Files
    children:
      - name: Set mode
        call:
          function: Chmod
          parameters: {mode: 0755, version: 1.10, id: 00000001}
functions:
  - name: Chmod
    parameters: [{name: mode}, {name: version}, {name: id}]
    code: chmod {{ $mode }} v{{ $version }} {{ $id }}
`

	c, err := Load(context.Background(), strings.NewReader(src), WithoutCache())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s, ok := c.Script("Set mode")
	if !ok {
		t.Fatal("Script(Set mode) not found")
	}

	if want := "chmod 0755 v1.10 00000001"; s.Code != want {
		t.Errorf("code = %q, want %q", s.Code, want)
	}
}
