package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"runtime"
)

// Category groups error codes.
type Category string

const (
	CategoryStructure Category = "structure"
	CategoryContext   Category = "context"
	CategoryConfig    Category = "config"
	CategoryRender    Category = "render"
	CategoryPublish   Category = "publish"
	CategoryCLI       Category = "cli"
)

// Location is a position in a source file.
type Location struct {
	File string
	Line int
}

// String formats the location as file:line.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error is a coded error with optional location, hint and cause.
type Error struct {
	Code       string
	Category   Category
	Message    string
	Detail     string
	Location   *Location
	Context    []string // source lines around Location
	Suggestion string
	DocURL     string
	Wrapped    error
}

// Error implements error.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches another *Error by code, so errors.Is(err, errors.New("E103"))
// holds for any E103.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithLocation records file:line and reads the surrounding source lines.
func (e *Error) WithLocation(file string, line int) *Error {
	e.Location = &Location{File: file, Line: line}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithCaller records the location of the caller skip frames above the
// function calling WithCaller.
func (e *Error) WithCaller(skip int) *Error {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return e
	}
	return e.WithLocation(file, line)
}

// WithDetail replaces the registered explanation.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithSuggestion adds a fix hint.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Wrap records the underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New returns an error for a registered code. Unknown codes produce an
// "Unknown error" message that still carries the code.
func New(code string) *Error {
	tmpl, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "Unknown error"}
	}
	return &Error{
		Code:     code,
		Category: tmpl.Category,
		Message:  tmpl.Message,
		Detail:   tmpl.Detail,
		DocURL:   tmpl.DocURL,
	}
}

// Newf returns an uncoded error.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// Code returns the code of the first *Error in err's chain, or "".
func Code(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// FromPanic converts a recovered panic value into an *Error when it is one.
func FromPanic(v any) (*Error, bool) {
	switch x := v.(type) {
	case *Error:
		return x, true
	case error:
		var e *Error
		if stderrors.As(x, &e) {
			return e, true
		}
	}
	return nil, false
}

func readContextLines(file string, target, size int) []string {
	f, err := os.Open(file)
	if err != nil {
		return nil
	}
	defer f.Close()

	first, last := target-size/2, target+size/2
	var lines []string
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		if n > last {
			break
		}
		if n >= first {
			lines = append(lines, sc.Text())
		}
	}
	return lines
}
