package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/declarative/internal/config"
	"github.com/vango-dev/declarative/internal/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderDefault(t *testing.T) {
	out, err := run(t, "render")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Please sign in") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRenderWithSignals(t *testing.T) {
	out, err := run(t, "render", "--set", "loggedIn=true", "--set", "admin=true")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Welcome back", "Admin tools", "<li>Users</li>"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	out, err := run(t, "render", "--set", "maintenance=true", "--pretty", "--out", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "branch then") {
		t.Errorf("output:\n%s", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Down for maintenance") || !strings.Contains(string(data), "\n  ") {
		t.Errorf("file is not the pretty maintenance page:\n%s", data)
	}
}

func TestRenderBadSignal(t *testing.T) {
	_, err := run(t, "render", "--set", "nope=true")
	if errors.Code(err) != "E150" {
		t.Errorf("err = %v, want E150", err)
	}
	_, err = run(t, "render", "--set", "admin")
	if errors.Code(err) != "E151" {
		t.Errorf("err = %v, want E151", err)
	}
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Configuration valid") || !strings.Contains(out, "Demo tree renders") {
		t.Errorf("output:\n%s", out)
	}

	if _, err := run(t, "check", "--snapshot"); errors.Code(err) != "E123" {
		t.Errorf("check --snapshot = %v, want E123", err)
	}
}

func TestCheckRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.Server.Port = 99999
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", dir, "check"})
	if err := cmd.Execute(); errors.Code(err) != "E121" {
		t.Errorf("err = %v, want E121", err)
	}
}

func TestLogLevelFlag(t *testing.T) {
	if _, err := run(t, "--log-level", "loud", "render"); errors.Code(err) != "E122" {
		t.Errorf("err = %v, want E122", err)
	}
}

func TestPublishRequiresBucket(t *testing.T) {
	if _, err := run(t, "publish", "--name", "home"); errors.Code(err) != "E123" {
		t.Errorf("err = %v, want E123", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}
