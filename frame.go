package ovsdb

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// frameDecoder extracts complete JSON documents from a byte stream that
// carries no length prefix or delimiter, by repeatedly attempting to parse
// the accumulated buffer and distinguishing "not enough bytes yet" from a
// genuine syntax error. It relies on encoding/json's own balanced-brace
// parsing to find each document's end.
type frameDecoder struct {
	buf []byte
}

// Feed appends newly read bytes to the decode buffer.
func (d *frameDecoder) Feed(b []byte) {
	d.buf = append(d.buf, b...)
}

// Next attempts to decode one complete JSON document from the buffer.
// ok is false when more bytes are needed (including when the buffer is
// currently empty); err is non-nil only for a genuine syntax error.
func (d *frameDecoder) Next() (raw json.RawMessage, ok bool, err error) {
	if len(d.buf) == 0 {
		return nil, false, nil
	}
	dec := json.NewDecoder(bytes.NewReader(d.buf))
	var msg json.RawMessage
	decErr := dec.Decode(&msg)
	if decErr != nil {
		if errors.Is(decErr, io.EOF) || errors.Is(decErr, io.ErrUnexpectedEOF) {
			return nil, false, nil
		}
		return nil, false, &FrameError{Err: decErr}
	}
	consumed := dec.InputOffset()
	d.buf = d.buf[consumed:]
	return msg, true, nil
}
