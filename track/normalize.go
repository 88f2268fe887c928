package track

import (
	"github.com/on-the-ground/trackmemo/datatype"
	"github.com/on-the-ground/trackmemo/value"
)

// Record is the normalized form of one value seen by a tracked function.
// It is never modified after creation.
type Record struct {
	Tag datatype.Tag
	// Raw is the value later arguments are compared against. For a value
	// holding locked properties it is the configurable clone that was wrapped.
	Raw any
	// Tracked is what the function received: Raw itself, or its Shim.
	Tracked any
	Ledger  *Ledger
}

// Normalize prepares v for a tracked call.
//
// Non-structured values pass through untouched. Structured values are wrapped
// in a Shim bound to l; wrapping the same value twice through one ledger
// returns the same Shim. A value with locked properties is cloned first and
// the clone is wrapped, since a locked property must read back as exactly the
// stored value and a Shim would break that.
func Normalize(v any, l *Ledger) *Record {
	tag := datatype.Of(v)
	s, ok := v.(value.Structured)
	if !tag.Structured() || !ok {
		return &Record{Tag: tag, Raw: v, Tracked: v, Ledger: l}
	}
	if e, ok := l.entries[s]; ok && e.shim != nil {
		return &Record{Tag: tag, Raw: s, Tracked: e.shim, Ledger: l}
	}

	raw := l.resolve(s)
	e := l.entry(raw)
	if e.shim == nil {
		e.shim = &Shim{target: raw, ledger: l}
	}
	return &Record{Tag: tag, Raw: raw, Tracked: e.shim, Ledger: l}
}

// NormalizeArgs normalizes each argument against its own fresh Ledger.
func NormalizeArgs(args []any) (records []*Record, tracked []any) {
	records = make([]*Record, len(args))
	tracked = make([]any, len(args))
	for i, arg := range args {
		records[i] = Normalize(arg, NewLedger())
		tracked[i] = records[i].Tracked
	}
	return records, tracked
}
