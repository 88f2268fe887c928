package track

import (
	"github.com/on-the-ground/trackmemo/datatype"
	"github.com/on-the-ground/trackmemo/value"
)

var (
	_ value.Structured = (*Shim)(nil)
	_ datatype.Tagger  = (*Shim)(nil)
)

// Shim wraps a structured value and records every observation made through it.
//
// Results are exactly what the wrapped value would return, except that
// structured property values come back wrapped as well. The first read of a
// key wins: later reads of the same key are served from the ledger.
type Shim struct {
	target value.Structured
	ledger *Ledger
}

// Original returns the wrapped value.
func (s *Shim) Original() value.Structured {
	return s.target
}

func (s *Shim) TypeTag() datatype.Tag {
	if s == nil {
		return datatype.Null
	}
	return datatype.Of(s.target)
}

// Get reads k. Symbol keys are identity markers and are not recorded.
func (s *Shim) Get(k value.Key) any {
	if k == value.OriginalKey {
		return s.target
	}
	if k.IsSymbol() {
		return s.target.Get(k)
	}
	e := s.ledger.entry(s.target)
	if r, ok := e.reads.load(k); ok {
		return r.Tracked
	}
	r := Normalize(s.target.Get(k), s.ledger)
	e.reads.store(k, r)
	return r.Tracked
}

func (s *Shim) Has(k value.Key) bool {
	e := s.ledger.entry(s.target)
	if v, ok := e.has.load(k); ok {
		return v
	}
	v := s.target.Has(k)
	e.has.store(k, v)
	return v
}

func (s *Shim) HasOwn(k value.Key) bool {
	e := s.ledger.entry(s.target)
	if v, ok := e.hasOwn.load(k); ok {
		return v
	}
	v := s.target.HasOwn(k)
	e.hasOwn.store(k, v)
	return v
}

// OwnProperty returns the real descriptor. Its presence is recorded like HasOwn.
func (s *Shim) OwnProperty(k value.Key) (value.Property, bool) {
	p, ok := s.target.OwnProperty(k)
	s.ledger.entry(s.target).hasOwn.store(k, ok)
	return p, ok
}

// OwnKeys returns the live own keys. The first enumeration is snapshotted.
func (s *Shim) OwnKeys() []value.Key {
	keys := s.target.OwnKeys()
	s.ledger.entry(s.target).observeOwnKeys(keys)
	return keys
}

// Set writes through to the wrapped value without recording anything.
func (s *Shim) Set(k value.Key, v any) bool {
	return s.target.Set(k, v)
}

// Delete removes k from the wrapped value without recording anything.
func (s *Shim) Delete(k value.Key) bool {
	return s.target.Delete(k)
}
