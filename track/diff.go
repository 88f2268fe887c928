package track

import (
	"strings"

	"github.com/on-the-ground/trackmemo/datatype"
	"github.com/on-the-ground/trackmemo/value"
)

// Config tunes change detection.
type Config struct {
	// ShallowCompare skips tracking entirely and compares raw values by identity.
	ShallowCompare bool
}

// ChangeKind names the first observation that no longer holds.
type ChangeKind int

const (
	// Identity means a non-structured value, or a shallow-compared value, is not identical.
	Identity ChangeKind = iota + 1
	// TypeTag means the value changed kind, e.g. from Object to Array.
	TypeTag
	// Untracked means nothing was recorded for the previous value.
	Untracked
	// Existence means an existence check would now answer differently.
	Existence
	// Enumeration means the own keys differ from the snapshot in content or order.
	Enumeration
	// OwnExistence means an own-property check would now answer differently.
	OwnExistence
)

func (k ChangeKind) String() string {
	switch k {
	case Identity:
		return "identity"
	case TypeTag:
		return "type"
	case Untracked:
		return "untracked"
	case Existence:
		return "existence"
	case Enumeration:
		return "enumeration"
	case OwnExistence:
		return "own-existence"
	default:
		return "unknown"
	}
}

// Reason locates the first detected difference.
// Path holds the keys read on the way from the argument to the changed value.
type Reason struct {
	Kind ChangeKind
	Path []value.Key
	// Key is the checked key for Existence and OwnExistence.
	Key value.Key
}

func (r Reason) String() string {
	var b strings.Builder
	b.WriteString(r.Kind.String())
	if len(r.Path) > 0 {
		b.WriteString(" at ")
		for i, k := range r.Path {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(k.String())
		}
	}
	if r.Kind == Existence || r.Kind == OwnExistence {
		b.WriteString(" of ")
		b.WriteString(r.Key.String())
	}
	return b.String()
}

// Changed reports whether anything observed on prev would differ for candidate.
func Changed(prev *Record, candidate any, cfg Config) bool {
	_, changed := Diff(prev, candidate, cfg)
	return changed
}

// Diff replays the observations recorded for prev against candidate, depth
// first, and returns the first one that no longer holds.
//
// Per structured value the order is: existence checks, then the enumeration
// snapshot (or, without one, own-property checks), then reads recursively.
// Properties that were never observed are never examined. A cyclic argument
// is compared once per (previous, candidate) pair.
func Diff(prev *Record, candidate any, cfg Config) (Reason, bool) {
	return diff(prev, candidate, cfg, nil)
}

type visit struct {
	prev, candidate value.Structured
}

func diff(prev *Record, candidate any, cfg Config, visiting map[visit]struct{}) (Reason, bool) {
	if cfg.ShallowCompare {
		if !value.Identical(prev.Raw, candidate) {
			return Reason{Kind: Identity}, true
		}
		return Reason{}, false
	}

	if datatype.Of(candidate) != prev.Tag {
		return Reason{Kind: TypeTag}, true
	}
	if !prev.Tag.Structured() {
		if !value.Identical(prev.Raw, candidate) {
			return Reason{Kind: Identity}, true
		}
		return Reason{}, false
	}

	raw, ok := prev.Raw.(value.Structured)
	if !ok {
		return Reason{Kind: Untracked}, true
	}
	e, ok := prev.Ledger.Lookup(raw)
	if !ok {
		return Reason{Kind: Untracked}, true
	}
	c, ok := candidate.(value.Structured)
	if !ok {
		return Reason{Kind: TypeTag}, true
	}

	at := visit{prev: raw, candidate: c}
	if _, ok := visiting[at]; ok {
		return Reason{}, false
	}
	if visiting == nil {
		visiting = map[visit]struct{}{}
	}
	visiting[at] = struct{}{}
	defer delete(visiting, at)

	for _, k := range e.has.keys() {
		if want, _ := e.has.load(k); c.Has(k) != want {
			return Reason{Kind: Existence, Key: k}, true
		}
	}

	if e.allKeys {
		if !sameKeys(e, c.OwnKeys()) {
			return Reason{Kind: Enumeration}, true
		}
	} else {
		for _, k := range e.hasOwn.keys() {
			if want, _ := e.hasOwn.load(k); c.HasOwn(k) != want {
				return Reason{Kind: OwnExistence, Key: k}, true
			}
		}
	}

	for _, k := range e.reads.keys() {
		r, _ := e.reads.load(k)
		if reason, changed := diff(r, c.Get(k), cfg, visiting); changed {
			reason.Path = append([]value.Key{k}, reason.Path...)
			return reason, true
		}
	}
	return Reason{}, false
}

// sameKeys compares the candidate's own keys to the recorded enumeration by
// length and fingerprint.
func sameKeys(e *Entry, cur []value.Key) bool {
	return len(cur) == e.keysLen && Fingerprint(cur) == e.keysDigest
}
