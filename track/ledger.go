package track

import "github.com/on-the-ground/trackmemo/value"

// observed keeps the first value stored per key, in first-observed order.
type observed[V any] struct {
	order []value.Key
	vals  map[value.Key]V
}

func (o *observed[V]) load(k value.Key) (V, bool) {
	v, ok := o.vals[k]
	return v, ok
}

func (o *observed[V]) store(k value.Key, v V) {
	if o.vals == nil {
		o.vals = map[value.Key]V{}
	}
	if _, ok := o.vals[k]; ok {
		return
	}
	o.order = append(o.order, k)
	o.vals[k] = v
}

func (o *observed[V]) keys() []value.Key {
	return o.order
}

// Entry is what a Ledger knows about one structured value.
type Entry struct {
	reads  observed[*Record]
	has    observed[bool]
	hasOwn observed[bool]

	// allKeys is set by the first enumeration. keysLen and keysDigest decide
	// later comparisons; snapshot is kept for callers that want to inspect it.
	allKeys    bool
	keysLen    int
	keysDigest uint64
	snapshot   []value.Key

	shim *Shim
}

// ReadKeys lists the keys read through the shim, in first-read order.
func (e *Entry) ReadKeys() []value.Key {
	return e.reads.keys()
}

// Read returns the record produced the first time k was read.
func (e *Entry) Read(k value.Key) (*Record, bool) {
	return e.reads.load(k)
}

// HasChecked returns the recorded result of the first existence check on k.
func (e *Entry) HasChecked(k value.Key) (result bool, checked bool) {
	return e.has.load(k)
}

// HasOwnChecked returns the recorded result of the first own-property check on k.
func (e *Entry) HasOwnChecked(k value.Key) (result bool, checked bool) {
	return e.hasOwn.load(k)
}

// OwnKeysObserved returns the snapshot taken at the first full enumeration.
func (e *Entry) OwnKeysObserved() ([]value.Key, bool) {
	return e.snapshot, e.allKeys
}

func (e *Entry) observeOwnKeys(keys []value.Key) {
	if e.allKeys {
		return
	}
	e.allKeys = true
	e.snapshot = append([]value.Key(nil), keys...)
	e.keysLen = len(keys)
	e.keysDigest = Fingerprint(keys)
}

// Ledger maps structured values, by identity, to what was observed on them.
//
// A fresh Ledger is created for every top-level argument on every recompute,
// and is dropped together with the records that reference it.
type Ledger struct {
	entries map[value.Structured]*Entry
	// clones maps a value holding locked properties to the copy that was wrapped instead.
	clones map[value.Structured]value.Structured
}

func NewLedger() *Ledger {
	return &Ledger{
		entries: map[value.Structured]*Entry{},
		clones:  map[value.Structured]value.Structured{},
	}
}

func (l *Ledger) Lookup(target value.Structured) (*Entry, bool) {
	e, ok := l.entries[target]
	return e, ok
}

// Forget drops everything observed on target. A later Diff against it reports Untracked.
func (l *Ledger) Forget(target value.Structured) {
	delete(l.entries, target)
}

// Len returns the number of values with an entry.
func (l *Ledger) Len() int {
	return len(l.entries)
}

func (l *Ledger) entry(target value.Structured) *Entry {
	e, ok := l.entries[target]
	if !ok {
		e = &Entry{}
		l.entries[target] = e
	}
	return e
}

// resolve returns the value that should actually be wrapped for s.
func (l *Ledger) resolve(s value.Structured) value.Structured {
	if c, ok := l.clones[s]; ok {
		return c
	}
	cl, ok := s.(value.Cloner)
	if !ok || !cl.HasLockedProperty() {
		return s
	}
	c := cl.CloneConfigurable()
	l.clones[s] = c
	return c
}
