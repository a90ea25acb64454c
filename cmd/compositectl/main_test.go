package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/compositectl/internal/composite"
	"github.com/danmuck/compositectl/internal/testutil/testlog"
	"github.com/danmuck/compositectl/internal/view"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeHexArgumentText(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "", "decode", "0003666f6f00 0003626172 00")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{`"foo"`, `"bar"`, "kind=composite components=2 slice=none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	testlog.Logf("cli/decode: text output\n%s", out)
}

func TestDecodeDynamicBase64StdinJSON(t *testing.T) {
	testlog.Start(t)
	buf := []byte{0x00, 0x07, 'o', 'r', 'g', '.', 'f', 'o', 'o', 0x00, 0x03, 'b', 'a', 'r', 0x00}
	stdin := "AAdvcmcuZm9vAANiYXIA\n"
	if got, err := view.ParseInput(stdin, "base64"); err != nil || !bytes.Equal(got, buf) {
		t.Fatalf("fixture mismatch: %x %v", got, err)
	}

	out, err := run(t, stdin, "decode", "--dynamic", "--encoding", "base64", "--format", "json")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var result view.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	if result.Kind != "dynamic" || len(result.Types) != 1 || result.Types[0].Text != "org.foo" || result.Parts[0].Text != "bar" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestDecodeRawFileWithConfigDefaults(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "column.bin")
	if err := os.WriteFile(input, []byte{0x80, 's', 0x00, 0x01, 'x', 0xFF}, 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfgPath := filepath.Join(dir, "cli.toml")
	if err := os.WriteFile(cfgPath, []byte("encoding = \"raw\"\ndynamic = true\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := run(t, "", "decode", "--config", cfgPath, "--file", input)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, "kind=dynamic components=1 slice=before") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, err = run(t, "", "decode", "--config", cfgPath, "--dynamic=false", "--file", input)
	if err == nil {
		t.Fatalf("expected composite decode of dynamic bytes to fail, got:\n%s", out)
	}
}

func TestDecodeMalformedInput(t *testing.T) {
	testlog.Start(t)
	_, err := run(t, "", "decode", "00054142")
	if !errors.Is(err, composite.ErrTruncatedValue) {
		t.Fatalf("expected ErrTruncatedValue, got %v", err)
	}
	if _, err := run(t, "", "decode", "--format", "yaml", "00"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestLoadCLIConfig(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()

	partial := filepath.Join(dir, "partial.toml")
	if err := os.WriteFile(partial, []byte("format = \"JSON\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadCLIConfig(partial)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Format != formatJSON || cfg.Encoding != view.EncodingHex || cfg.Dynamic {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("encoding = \"octal\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadCLIConfig(bad); err == nil {
		t.Fatalf("expected unsupported encoding error")
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "server.toml")
	if _, err := run(t, "", "config", "init", "--kind", "server", "--output", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	out, err := run(t, "", "config", "validate", "--kind", "server", "--input", path)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Validated server config") {
		t.Fatalf("unexpected output: %s", out)
	}

	cliPath := filepath.Join(t.TempDir(), "cli.toml")
	if _, err := run(t, "", "config", "init", "--kind", "cli", "--output", cliPath); err != nil {
		t.Fatalf("config init cli: %v", err)
	}
	if _, err := run(t, "", "config", "validate", "--kind", "cli", "--input", cliPath); err != nil {
		t.Fatalf("config validate cli: %v", err)
	}
}
