package dnsutil

import (
	"strings"
)

// shortenedError retains the original error so callers interested in the full context
// can still unwrap it.
type shortenedError struct {
	msg string
	err error
}

func (t *shortenedError) Error() string {
	return t.msg
}

func (t *shortenedError) Unwrap() error {
	return t.err
}

// ShortenLookupError reduces the long unwieldy errors returned by the net package and
// miekg exchanges to something succinct for the common cases. Anything unrecognized is
// returned untouched.
func ShortenLookupError(err error) error {
	if err == nil {
		return nil
	}
	m := err.Error()
	switch {
	case strings.Contains(m, "i/o timeout"):
		err = &shortenedError{msg: "Timeout", err: err}
	case strings.Contains(m, "connection refused"):
		err = &shortenedError{msg: "Connection refused", err: err}
	}

	return err
}
