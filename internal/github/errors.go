package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v75/github"
)

type authError struct {
	message string
	missing bool
	err     error
}

func (e *authError) Error() string {
	if e.missing {
		return e.message
	}
	return "authentication failed: " + e.message
}

func (e *authError) Unwrap() error { return e.err }

type notFoundError struct {
	err error
}

func (e *notFoundError) Error() string { return e.err.Error() }

func (e *notFoundError) Unwrap() error { return e.err }

// IsAuthError reports whether err is a missing or rejected credential.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// IsNotFound reports whether err is a 404 from the API (unknown owner/repo).
func IsNotFound(err error) bool {
	var nf *notFoundError
	return errors.As(err, &nf)
}

// classify turns 401/403 and 404 API replies into this package's error kinds.
// Rate-limit replies keep their go-github types.
func classify(err error) error {
	var er *gh.ErrorResponse
	if !errors.As(err, &er) || er.Response == nil {
		return err
	}
	switch er.Response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		msg := er.Message
		if msg == "" {
			msg = http.StatusText(er.Response.StatusCode)
		}
		return &authError{message: msg, err: err}
	case http.StatusNotFound:
		return &notFoundError{err: err}
	}
	return err
}

// statusCode extracts the HTTP status of an API error reply.
func statusCode(err error) (int, bool) {
	var (
		er  *gh.ErrorResponse
		rle *gh.RateLimitError
		are *gh.AbuseRateLimitError
	)
	var resp *http.Response
	switch {
	case errors.As(err, &er):
		resp = er.Response
	case errors.As(err, &rle):
		resp = rle.Response
	case errors.As(err, &are):
		resp = are.Response
	}
	if resp == nil {
		return 0, false
	}
	return resp.StatusCode, true
}

// DiffErrorKind classifies why a compare diff could not be obtained.
type DiffErrorKind int

const (
	// DiffTransport covers request construction, network and body read failures.
	DiffTransport DiffErrorKind = iota
	// DiffStatus means the API answered with a non-2xx status.
	DiffStatus
	// DiffDecode means the body was not valid UTF-8 text.
	DiffDecode
)

func (k DiffErrorKind) String() string {
	switch k {
	case DiffTransport:
		return "transport"
	case DiffStatus:
		return "status"
	case DiffDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// DiffError is returned by CompareDiff.
type DiffError struct {
	Kind       DiffErrorKind
	StatusCode int
	Err        error
}

func (e *DiffError) Error() string {
	switch e.Kind {
	case DiffStatus:
		return fmt.Sprintf("compare request returned status %d: %v", e.StatusCode, e.Err)
	case DiffDecode:
		return fmt.Sprintf("diff is not text: %v", e.Err)
	default:
		return fmt.Sprintf("compare request failed: %v", e.Err)
	}
}

func (e *DiffError) Unwrap() error { return e.Err }
