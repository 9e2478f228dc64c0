package ovsdb

import "fmt"

// TransportError wraps a failure from the underlying byte stream: dial,
// read or write failures below the JSON framing layer.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("ovsdb: transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// FrameError reports a byte sequence that cannot be parsed as a JSON
// document, or a document that cannot be rewritten by the protocol adapter.
type FrameError struct {
	Err error
}

func (e *FrameError) Error() string { return fmt.Sprintf("ovsdb: frame: %v", e.Err) }
func (e *FrameError) Unwrap() error { return e.Err }

// ProtocolError reports a frame that is syntactically valid JSON but
// violates the expected OVSDB management protocol shape, e.g. an update
// notification with the wrong number of parameters.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return fmt.Sprintf("ovsdb: protocol: %s", e.Reason) }

// RPCError reports a call that reached the peer and came back with an
// application-level failure.
type RPCError struct {
	Method  string
	Details string
	Err     error
}

func (e *RPCError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ovsdb: %s: %s", e.Method, e.Details)
	}
	return fmt.Sprintf("ovsdb: %s: %v", e.Method, e.Err)
}

func (e *RPCError) Unwrap() error { return e.Err }

// DecodeError reports a value that cannot be converted into a declared Go
// field type. Field names the column or struct field that failed, when
// known; it is filled in by the layer that has that context.
type DecodeError struct {
	Field  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("ovsdb: decode field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("ovsdb: decode: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WithField returns a copy of e with Field set, unless it is already set.
func (e *DecodeError) WithField(field string) *DecodeError {
	if e.Field != "" {
		return e
	}
	cp := *e
	cp.Field = field
	return &cp
}
