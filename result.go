package gqlserve

import (
	"fmt"

	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/pkg/errors"
)

// Location is a line/column position within the query text.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is one entry of a result's error list.
type Error struct {
	Message   string        `json:"message"`
	Locations []Location    `json:"locations,omitempty"`
	Path      []interface{} `json:"path,omitempty"`

	// Only populated in debug mode, for errors carrying a stack trace.
	Trace []string `json:"trace,omitempty"`
}

// Result is the structured outcome of one operation. The presence of its keys
// is meaningful: a parse or validation failure produces only "errors"
// (execution never ran), execution with per-field failures produces both
// "data" and "errors", and a clean execution produces only "data". Data is a
// pointer so that "data": null (a failed non-null root field) and an absent
// data key serialize differently.
type Result struct {
	Data       *interface{}           `json:"data,omitempty"`
	Errors     []*Error               `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// HasErrors returns true if the result contains any errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *Result) addExtension(key string, value interface{}) {
	if r.Extensions == nil {
		r.Extensions = map[string]interface{}{}
	}
	r.Extensions[key] = value
}

const redactedErrorMessage = "Internal server error"

// newError converts one of the engine's formatted errors. Errors raised by
// resolvers have their message redacted unless the underlying error is
// client-safe or the server is in debug mode; debug mode additionally exposes
// the stack trace recorded by the errors package, when there is one.
func newError(ferr gqlerrors.FormattedError, debug bool) *Error {
	ret := &Error{
		Message: ferr.Message,
		Path:    ferr.Path,
	}
	for _, loc := range ferr.Locations {
		ret.Locations = append(ret.Locations, Location{
			Line:   loc.Line,
			Column: loc.Column,
		})
	}
	if original := originalResolverError(ferr); original != nil {
		if debug {
			ret.Trace = stackTrace(original)
		} else if !isClientSafe(original) {
			ret.Message = redactedErrorMessage
		}
	}
	return ret
}

func newErrors(ferrs []gqlerrors.FormattedError, debug bool) []*Error {
	ret := make([]*Error, len(ferrs))
	for i, ferr := range ferrs {
		ret[i] = newError(ferr, debug)
	}
	return ret
}

// originalResolverError unwraps a formatted error down to the error the
// resolver actually returned. Syntax and validation errors originate inside
// the engine and unwrap to nil.
func originalResolverError(ferr gqlerrors.FormattedError) error {
	err := ferr.OriginalError()
	for err != nil {
		switch t := err.(type) {
		case *gqlerrors.Error:
			err = t.OriginalError
		case gqlerrors.Error:
			err = t.OriginalError
		default:
			return err
		}
	}
	return nil
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func stackTrace(err error) []string {
	st, ok := err.(stackTracer)
	if !ok {
		return nil
	}
	frames := st.StackTrace()
	ret := make([]string, len(frames))
	for i, frame := range frames {
		ret[i] = fmt.Sprintf("%+v", frame)
	}
	return ret
}
