package track_test

import (
	"testing"

	"github.com/on-the-ground/trackmemo/datatype"
	"github.com/on-the-ground/trackmemo/track"
	"github.com/on-the-ground/trackmemo/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shimOf(t *testing.T, v any) (*track.Shim, *track.Ledger, *track.Record) {
	t.Helper()
	l := track.NewLedger()
	r := track.Normalize(v, l)
	s, ok := r.Tracked.(*track.Shim)
	require.True(t, ok, "expected a shim, got %T", r.Tracked)
	return s, l, r
}

func TestShim_ReadIsRecordedOnce(t *testing.T) {
	obj := value.Obj("n", 1, "nested", value.Obj("m", 2))
	s, l, _ := shimOf(t, obj)

	assert.Equal(t, 1, s.Get(value.Name("n")))
	obj.Set(value.Name("n"), 5)
	assert.Equal(t, 1, s.Get(value.Name("n")), "later reads are served from the ledger")

	e, ok := l.Lookup(obj)
	require.True(t, ok)
	assert.Equal(t, []value.Key{value.Name("n")}, e.ReadKeys())

	r, ok := e.Read(value.Name("n"))
	require.True(t, ok)
	assert.Equal(t, datatype.Number, r.Tag)
	assert.Equal(t, 1, r.Raw)
}

func TestShim_NestedReadsAreWrappedAndStable(t *testing.T) {
	nested := value.Obj("m", 2)
	s, l, _ := shimOf(t, value.Obj("nested", nested))

	first := s.Get(value.Name("nested"))
	second := s.Get(value.Name("nested"))
	inner, ok := first.(*track.Shim)
	require.True(t, ok)
	assert.Same(t, inner, second)
	assert.Same(t, nested, inner.Original())
	assert.Equal(t, datatype.Object, datatype.Of(inner))

	assert.Equal(t, 2, value.Field(inner, "m"))
	_, ok = l.Lookup(nested)
	assert.True(t, ok, "nested values share the argument's ledger")
}

func TestShim_SymbolReadsBypassTracking(t *testing.T) {
	sym := value.NewSymbol("marker")
	obj := value.NewObject(nil)
	obj.Set(value.SymbolKey(sym), "hidden")
	s, l, _ := shimOf(t, obj)

	assert.Equal(t, "hidden", s.Get(value.SymbolKey(sym)))
	e, _ := l.Lookup(obj)
	assert.Empty(t, e.ReadKeys())
}

func TestShim_OriginalKey(t *testing.T) {
	obj := value.Obj("n", 1)
	s, _, _ := shimOf(t, obj)

	assert.Same(t, obj, s.Get(value.OriginalKey))
	o, ok := track.Original(s)
	require.True(t, ok)
	assert.Same(t, obj, o)

	_, ok = track.Original(obj)
	assert.False(t, ok)
	_, ok = track.Original(3)
	assert.False(t, ok)
}

func TestShim_HasAndHasOwnAreSeparate(t *testing.T) {
	proto := value.Obj("inherited", 1)
	obj := value.NewObject(proto)
	s, l, _ := shimOf(t, obj)

	assert.True(t, s.Has(value.Name("inherited")))
	assert.False(t, s.HasOwn(value.Name("inherited")))

	assert.False(t, s.Has(value.Name("missing")))

	e, _ := l.Lookup(obj)
	got, checked := e.HasChecked(value.Name("inherited"))
	assert.True(t, checked)
	assert.True(t, got)
	got, checked = e.HasOwnChecked(value.Name("inherited"))
	assert.True(t, checked)
	assert.False(t, got)
	_, checked = e.HasOwnChecked(value.Name("missing"))
	assert.False(t, checked)
}

func TestShim_HasIsMemoized(t *testing.T) {
	obj := value.Obj()
	s, _, _ := shimOf(t, obj)

	assert.False(t, s.Has(value.Name("a")))
	obj.Set(value.Name("a"), 1)
	assert.False(t, s.Has(value.Name("a")), "first check wins within a call")
}

func TestShim_OwnPropertyRecordsPresence(t *testing.T) {
	obj := value.Obj("a", 1)
	s, l, _ := shimOf(t, obj)

	p, ok := s.OwnProperty(value.Name("a"))
	require.True(t, ok)
	assert.Equal(t, 1, p.Value)

	e, _ := l.Lookup(obj)
	got, checked := e.HasOwnChecked(value.Name("a"))
	assert.True(t, checked)
	assert.True(t, got)
}

func TestShim_OwnKeysSnapshotAndLiveResult(t *testing.T) {
	obj := value.Obj("a", 1)
	s, l, _ := shimOf(t, obj)

	assert.Equal(t, []value.Key{value.Name("a")}, s.OwnKeys())
	obj.Set(value.Name("b"), 2)
	assert.Equal(t, []value.Key{value.Name("a"), value.Name("b")}, s.OwnKeys(), "enumeration stays live")

	e, _ := l.Lookup(obj)
	snapshot, observed := e.OwnKeysObserved()
	assert.True(t, observed)
	assert.Equal(t, []value.Key{value.Name("a")}, snapshot)
}

func TestShim_WritesPassThrough(t *testing.T) {
	obj := value.Obj("a", 1)
	s, l, _ := shimOf(t, obj)

	require.True(t, s.Set(value.Name("b"), 2))
	require.True(t, s.Delete(value.Name("a")))
	assert.Equal(t, []value.Key{value.Name("b")}, obj.OwnKeys())

	e, _ := l.Lookup(obj)
	assert.Empty(t, e.ReadKeys())
	_, observed := e.OwnKeysObserved()
	assert.False(t, observed)
}

func TestShim_ArrayLength(t *testing.T) {
	arr := value.Arr(1, 2, 3)
	s, l, _ := shimOf(t, arr)

	assert.Equal(t, datatype.Array, datatype.Of(s))
	assert.Equal(t, 3, value.Length(s))
	assert.Equal(t, 2, value.At(s, 1))

	e, _ := l.Lookup(arr)
	assert.Equal(t, []value.Key{value.LengthKey, value.Index(1)}, e.ReadKeys())
}
