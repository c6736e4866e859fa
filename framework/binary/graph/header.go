// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graph

import (
	"context"
	"fmt"
	"io"

	"github.com/google/graphcodec/core/fault"
	"github.com/google/graphcodec/core/log"
	"github.com/google/graphcodec/framework/binary"
	"github.com/google/graphcodec/framework/binary/registry"
	"github.com/pkg/errors"
)

const (
	// ErrBadHeader is returned for streams that do not start with a valid
	// header.
	ErrBadHeader = fault.Const("Bad header")
	// ErrRegistryMismatch is returned when a stream was written with a
	// registry that assigns tags differently from the reader's.
	ErrRegistryMismatch = fault.Const("Registry mismatch")
)

var magic = [4]byte{'g', 'r', 'p', 'h'}

const (
	headerVersion = 1
	headerSize    = len(magic) + 3 + len(registry.Fingerprint{})
	flagMemoized  = 1 << 0
)

// Header is the fixed size preamble of a stream:
//
//	magic       4 bytes "grph"
//	version     1 byte
//	format      1 byte, see Format
//	flags       1 byte, bit 0 set if the stream is memoized
//	fingerprint 32 bytes, see registry.Fingerprint
type Header struct {
	Format      Format
	Memoized    bool
	Fingerprint registry.Fingerprint
}

func (h Header) String() string {
	return fmt.Sprintf("format: %v memoized: %v registry: %v", h.Format, h.Memoized, h.Fingerprint)
}

// Header returns the header of streams written by the codecs.
func (c *Codecs) Header(memoized bool) Header {
	return Header{Format: c.format, Memoized: memoized, Fingerprint: c.registry.Fingerprint()}
}

// WriteHeader writes h to w.
func WriteHeader(w io.Writer, h Header) error {
	buf := make([]byte, 0, headerSize)
	buf = append(buf, magic[:]...)
	flags := byte(0)
	if h.Memoized {
		flags |= flagMemoized
	}
	buf = append(buf, headerVersion, byte(h.Format), flags)
	buf = append(buf, h.Fingerprint[:]...)
	_, err := w.Write(buf)
	return errors.Wrap(err, "Writing header")
}

// ReadHeader reads a header from r.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, errors.Wrapf(ErrBadHeader, "%v", err)
	}
	if string(buf[:len(magic)]) != string(magic[:]) {
		return Header{}, errors.Wrapf(ErrBadHeader, "magic %q", buf[:len(magic)])
	}
	buf = buf[len(magic):]
	if buf[0] != headerVersion {
		return Header{}, errors.Wrapf(ErrBadHeader, "version %d", buf[0])
	}
	h := Header{Format: Format(buf[1]), Memoized: buf[2]&flagMemoized != 0}
	if !h.Format.Valid() {
		return Header{}, errors.Wrapf(ErrBadHeader, "format %v", h.Format)
	}
	if buf[2]&^flagMemoized != 0 {
		return Header{}, errors.Wrapf(ErrBadHeader, "flags %#x", buf[2])
	}
	copy(h.Fingerprint[:], buf[3:])
	return h, nil
}

// Check returns ErrRegistryMismatch if h was written with a different
// registry.
func (c *Codecs) Check(h Header) error {
	if h.Fingerprint != c.registry.Fingerprint() {
		return errors.Wrapf(ErrRegistryMismatch, "stream %v, reader %v", h.Fingerprint, c.registry.Fingerprint())
	}
	return nil
}

// Encode writes a header followed by value to w.
func (c *Codecs) Encode(ctx context.Context, value interface{}, w io.Writer, memoize bool) (binary.Stats, error) {
	if err := WriteHeader(w, c.Header(memoize)); err != nil {
		return binary.Stats{}, err
	}
	return c.SerializeTo(ctx, value, w, memoize)
}

// Decode reads a header and the value that follows it from r. The stream's
// format and memoization are taken from the header.
func (c *Codecs) Decode(ctx context.Context, r io.Reader) (interface{}, Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, h, err
	}
	if err := c.Check(h); err != nil {
		return nil, h, err
	}
	log.D(ctx, "Stream header %v", h)
	value, _, err := c.DeserializeFrom(ctx, r, h.Format, h.Memoized)
	return value, h, err
}
