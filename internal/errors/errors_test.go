package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		code    string
		wantMsg string
		wantCat Category
	}{
		{"E101", "If has no Then branch", CategoryStructure},
		{"E104", "Else branch is not last", CategoryStructure},
		{"E110", "PortalProvider not found", CategoryContext},
		{"E111", "Portal identifier is not comparable", CategoryContext},
		{"E121", "Invalid port", CategoryConfig},
		{"E999", "Unknown error", ""},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code)
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
		})
	}
}

func TestRegistryComplete(t *testing.T) {
	for _, code := range Codes() {
		tmpl, _ := Lookup(code)
		if tmpl.Message == "" || tmpl.Detail == "" || tmpl.Category == "" {
			t.Errorf("%s: incomplete template %+v", code, tmpl)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("%s: DocURL %q does not end with the code", code, tmpl.DocURL)
		}
	}
}

func TestErrorString(t *testing.T) {
	err := New("E140").Wrap(fmt.Errorf("access denied"))
	if got := err.Error(); got != "E140: Snapshot upload failed: access denied" {
		t.Errorf("Error() = %q", got)
	}
	if got := Newf(CategoryCLI, "bad %s", "flag").Error(); got != "bad flag" {
		t.Errorf("Newf().Error() = %q", got)
	}
}

func TestIsAndCode(t *testing.T) {
	base := fmt.Errorf("building view: %w", New("E103"))

	if !stderrors.Is(base, New("E103")) {
		t.Error("errors.Is did not match by code")
	}
	if stderrors.Is(base, New("E104")) {
		t.Error("errors.Is matched a different code")
	}
	if got := Code(base); got != "E103" {
		t.Errorf("Code() = %q, want E103", got)
	}
	if got := Code(fmt.Errorf("plain")); got != "" {
		t.Errorf("Code(plain) = %q, want empty", got)
	}
}

func TestFromPanic(t *testing.T) {
	if e, ok := FromPanic(New("E110")); !ok || e.Code != "E110" {
		t.Errorf("FromPanic(*Error) = %v, %v", e, ok)
	}
	if _, ok := FromPanic("boom"); ok {
		t.Error("FromPanic(string) ok = true")
	}
	wrapped := fmt.Errorf("ctx: %w", New("E101"))
	if e, ok := FromPanic(wrapped); !ok || e.Code != "E101" {
		t.Errorf("FromPanic(wrapped) = %v, %v", e, ok)
	}
}

func TestWithLocationReadsContext(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "view.go")
	src := "line1\nline2\nline3\nline4\nline5\nline6\n"
	if err := os.WriteFile(file, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("E104").WithLocation(file, 3)
	if len(err.Context) != 5 {
		t.Fatalf("Context = %v, want lines 1-5", err.Context)
	}
	if err.Context[0] != "line1" || err.Context[4] != "line5" {
		t.Errorf("Context = %v", err.Context)
	}
}

func TestWithCaller(t *testing.T) {
	err := New("E101").WithCaller(0)
	if err.Location == nil || !strings.HasSuffix(err.Location.File, "errors_test.go") {
		t.Fatalf("Location = %v, want this file", err.Location)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E104").WithSuggestion("Move Else to the end")
	out := err.Format()
	for _, want := range []string{
		"ERROR E104: Else branch is not last",
		"Hint: Move Else to the end",
		"Learn more: https://vango.dev/docs/declarative/errors/E104",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() contains ANSI codes with colors disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E102")
	if got := err.FormatCompact(); got != "E102: Then branch is not first" {
		t.Errorf("FormatCompact() = %q", got)
	}
	err.Location = &Location{File: "a.go", Line: 9}
	if got := err.FormatCompact(); got != "a.go:9: E102: Then branch is not first" {
		t.Errorf("FormatCompact() with location = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q longer than 20", l)
		}
	}
}
