package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/render"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// Scope creates a root owner for the test, makes it current on the test's
// goroutine and disposes it when the test finishes.
//
// Example:
//
//	func TestBanner(t *testing.T) {
//	    vtest.Scope(t)
//	    show := reactive.NewSignal(true)
//	    c := declarative.If(show.Get, declarative.Then(banner))
//	    vtest.ExpectContains(t, c.Render(), "Sale")
//	}
func Scope(t testing.TB) *reactive.Owner {
	t.Helper()
	owner := reactive.NewOwner(nil)
	restore := reactive.Enter(owner)
	t.Cleanup(func() {
		owner.Dispose()
		restore()
		reactive.Release()
	})
	return owner
}

// RenderToString renders a VNode and returns the HTML string.
// Render errors produce an empty string.
func RenderToString(node *vdom.VNode) string {
	html, err := render.New(render.Config{}).RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// RenderHTML renders c and fails the test on error.
//
// Example:
//
//	html := vtest.RenderHTML(t, vdom.Mount(cond))
func RenderHTML(t testing.TB, node *vdom.VNode) string {
	t.Helper()
	html, err := render.New(render.Config{}).RenderToString(node)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return html
}

// ExpectHTML asserts that node renders to exactly want.
func ExpectHTML(t testing.TB, node *vdom.VNode, want string) {
	t.Helper()
	if got := RenderHTML(t, node); got != want {
		t.Errorf("rendered HTML mismatch\n got: %s\nwant: %s", truncate(got, 500), want)
	}
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, cond.Render(), "Welcome Admin")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectEmpty asserts that node renders no markup.
func ExpectEmpty(t testing.TB, node *vdom.VNode) {
	t.Helper()
	if html := RenderToString(node); html != "" {
		t.Errorf("expected empty output, got:\n%s", truncate(html, 500))
	}
}

// ExpectPanicCode runs fn and asserts that it panics with an *errors.Error
// carrying code.
//
// Example:
//
//	vtest.ExpectPanicCode(t, "E101", func() {
//	    declarative.If(cond)
//	})
func ExpectPanicCode(t testing.TB, code string, fn func()) *errors.Error {
	t.Helper()
	var got *errors.Error
	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatalf("expected panic with %s, got none", code)
			}
			err, ok := errors.FromPanic(r)
			if !ok {
				t.Fatalf("expected panic with %s, got %v", code, r)
			}
			got = err
		}()
		fn()
	}()
	if got.Code != code {
		t.Errorf("panic code = %s, want %s (%s)", got.Code, code, got.Message)
	}
	return got
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
