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

package binary

import (
	"github.com/google/graphcodec/framework/binary/ident"
	"github.com/pkg/errors"
)

// memoizer is the encode side memoization table.
// Entries hold on to their values so that an address cannot be reused by
// another object while the table is alive.
type memoizer struct {
	ordinals map[ident.Key]memoEntry
	// pending holds the MemoizeAfter values whose payload is being written.
	pending map[ident.Key]interface{}
	next    uint32
}

type memoEntry struct {
	ordinal uint32
	value   interface{}
}

func newMemoizer() *memoizer {
	return &memoizer{
		ordinals: map[ident.Key]memoEntry{},
		pending:  map[ident.Key]interface{}{},
	}
}

func (m *memoizer) lookup(key ident.Key) (uint32, bool) {
	e, ok := m.ordinals[key]
	return e.ordinal, ok
}

// assign gives the next ordinal to a value. Values without identity use up
// an ordinal so both sides stay in step, but are never keyed.
func (m *memoizer) assign(key ident.Key, keyed bool, value interface{}) uint32 {
	ordinal := m.next
	m.next++
	if keyed {
		m.ordinals[key] = memoEntry{ordinal, value}
	}
	return ordinal
}

func (m *memoizer) begin(key ident.Key, value interface{}) error {
	if _, found := m.pending[key]; found {
		return errors.Wrapf(ErrMemoizationMismatch,
			"%v refers to itself while it is being encoded, it needs a MemoizeBefore codec", key)
	}
	m.pending[key] = value
	return nil
}

func (m *memoizer) end(key ident.Key) {
	delete(m.pending, key)
}

type slotState int

const (
	slotReserved slotState = iota
	slotInitial
	slotComplete
)

type memoSlot struct {
	value interface{}
	state slotState
}

// memoTable is the decode side memoization table.
type memoTable struct {
	slots []memoSlot
	// frames holds, for each active codec Decode call, the slot that
	// RegisterInitialValue fills, or -1.
	frames []int
}

func (t *memoTable) claim(ordinal uint32) (int, error) {
	if next := uint32(len(t.slots)); ordinal != next {
		return 0, errors.Wrapf(ErrMemoizationMismatch,
			"stream assigned ordinal %d where the reader expected %d", ordinal, next)
	}
	t.slots = append(t.slots, memoSlot{})
	return len(t.slots) - 1, nil
}

func (t *memoTable) lookup(ordinal uint32) (interface{}, error) {
	if ordinal >= uint32(len(t.slots)) {
		return nil, errors.Wrapf(ErrDanglingBackreference,
			"ordinal %d, %d values recorded", ordinal, len(t.slots))
	}
	slot := t.slots[ordinal]
	if slot.state == slotReserved {
		return nil, errors.Wrapf(ErrMemoizationMismatch,
			"backreference to ordinal %d which is still being decoded", ordinal)
	}
	return slot.value, nil
}
