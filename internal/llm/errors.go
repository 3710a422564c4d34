package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Kind classifies a NetworkError.
type Kind int

const (
	KindRequest Kind = iota
	KindConnection
	KindTimeout
	KindHTTPStatus
	KindMalformedJSON
	KindMissingField
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http status"
	case KindMalformedJSON:
		return "malformed json"
	case KindMissingField:
		return "missing field"
	default:
		return "request"
	}
}

// NetworkError is returned for every failure talking to the LLM server.
type NetworkError struct {
	Kind   Kind
	Server string
	// Timeout is set for KindTimeout.
	Timeout time.Duration
	// StatusCode and Detail are set for KindHTTPStatus.
	StatusCode int
	Detail     string
	// Field names the absent field for KindMissingField.
	Field string
	Err   error
}

func (e *NetworkError) Error() string {
	switch e.Kind {
	case KindConnection:
		return fmt.Sprintf("cannot connect to Ollama server at %s", e.Server)
	case KindTimeout:
		return fmt.Sprintf("request timed out after %s", e.Timeout)
	case KindHTTPStatus:
		msg := fmt.Sprintf("HTTP error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
		if e.Detail != "" {
			msg += ": " + e.Detail
		}
		return msg
	case KindMalformedJSON:
		return "invalid JSON response from server"
	case KindMissingField:
		return fmt.Sprintf("invalid response from server (missing '%s' field)", e.Field)
	default:
		if e.Err != nil {
			return fmt.Sprintf("request failed: %v", e.Err)
		}
		return "request failed"
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a NetworkError of the given kind.
func IsKind(err error, kind Kind) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr) && netErr.Kind == kind
}

// classifyTransportError maps an error from http.Client.Do (or a client
// library wrapping it) onto a NetworkError.
func classifyTransportError(err error, server string, timeout time.Duration) *NetworkError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &NetworkError{Kind: KindTimeout, Server: server, Timeout: timeout, Err: err}
	case isConnectionError(err):
		return &NetworkError{Kind: KindConnection, Server: server, Err: err}
	default:
		return &NetworkError{Kind: KindRequest, Server: server, Err: err}
	}
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	return errors.As(err, &opErr) ||
		errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET)
}

func isJSONError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
