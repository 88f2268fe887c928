package track_test

import (
	"testing"

	"github.com/on-the-ground/trackmemo/track"
	"github.com/on-the-ground/trackmemo/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetrack_Primitives(t *testing.T) {
	assert.Equal(t, 3, track.Detrack(3))
	assert.Nil(t, track.Detrack(nil))
}

func TestDetrack_ShimBecomesOriginal(t *testing.T) {
	obj := value.Obj("n", 1)
	r := track.Normalize(obj, track.NewLedger())

	assert.Same(t, obj, track.Detrack(r.Tracked))
}

func TestDetrack_NestedShimsAreReplaced(t *testing.T) {
	nested := value.Obj("a", 1)
	arr := value.Arr(1, 2)
	r := track.Normalize(value.Obj("nested", nested, "arr", arr), track.NewLedger())

	out := value.Obj(
		"newField", value.Field(r.Tracked, "nested"),
		"list", value.Arr(value.Field(r.Tracked, "arr"), "plain"),
	)
	got := track.Detrack(out)

	assert.Same(t, out, got, "result containers are rewritten in place, not copied")
	assert.Same(t, nested, value.Field(out, "newField"))
	assert.Same(t, arr, value.At(value.Field(out, "list"), 0))
	assert.Equal(t, "plain", value.At(value.Field(out, "list"), 1))
}

func TestDetrack_Cycles(t *testing.T) {
	nested := value.Obj()
	r := track.Normalize(value.Obj("nested", nested), track.NewLedger())

	out := value.Obj("ref", value.Field(r.Tracked, "nested"))
	out.Set(value.Name("self"), out)
	loop := value.Arr(out)
	out.Set(value.Name("loop"), loop)

	require.NotPanics(t, func() { track.Detrack(out) })
	assert.Same(t, nested, value.Field(out, "ref"))
	assert.Same(t, out, value.Field(out, "self"))
}

func TestDetrack_SkipsNonEnumerableAndSymbolKeys(t *testing.T) {
	nested := value.Obj()
	r := track.Normalize(value.Obj("nested", nested), track.NewLedger())
	shim := value.Field(r.Tracked, "nested")

	sym := value.NewSymbol("s")
	out := value.NewObject(nil)
	out.DefineProperty(value.Name("hidden"), value.Property{Value: shim, Writable: true, Configurable: true})
	out.Set(value.SymbolKey(sym), shim)

	track.Detrack(out)
	assert.Same(t, shim, out.Get(value.Name("hidden")))
	assert.Same(t, shim, out.Get(value.SymbolKey(sym)))
}

type holder struct {
	Ref    any
	Items  []any
	hidden any
}

func TestDetrack_GoContainers(t *testing.T) {
	nested := value.Obj("a", 1)
	arr := value.Arr(1)
	newShims := func() (any, any) {
		r := track.Normalize(value.Obj("nested", nested, "arr", arr), track.NewLedger())
		return value.Field(r.Tracked, "nested"), value.Field(r.Tracked, "arr")
	}

	t.Run("slice", func(t *testing.T) {
		n, a := newShims()
		out := []any{n, "plain", []any{a}}

		got := track.Detrack(out).([]any)
		assert.Same(t, nested, got[0])
		assert.Equal(t, "plain", got[1])
		assert.Same(t, arr, got[2].([]any)[0])
		assert.Same(t, nested, out[0], "slices are rewritten in place")
	})

	t.Run("map", func(t *testing.T) {
		n, a := newShims()
		out := map[string]any{"n": n, "list": []any{a}, "plain": 1}

		got := track.Detrack(out).(map[string]any)
		assert.Same(t, nested, got["n"])
		assert.Same(t, arr, got["list"].([]any)[0])
		assert.Equal(t, 1, got["plain"])
	})

	t.Run("struct pointer", func(t *testing.T) {
		n, a := newShims()
		out := &holder{Ref: n, Items: []any{a}, hidden: n}

		got := track.Detrack(out).(*holder)
		assert.Same(t, out, got)
		assert.Same(t, nested, got.Ref)
		assert.Same(t, arr, got.Items[0])
		assert.Same(t, n, got.hidden, "unexported fields are not touched")
	})

	t.Run("struct value", func(t *testing.T) {
		n, _ := newShims()
		out := holder{Ref: n}

		got := track.Detrack(out).(holder)
		assert.Same(t, nested, got.Ref)
		assert.Same(t, n, out.Ref, "values held by value are copied")
	})

	t.Run("typed slice of shims", func(t *testing.T) {
		n, _ := newShims()
		out := []*track.Shim{n.(*track.Shim)}

		require.NotPanics(t, func() { track.Detrack(out) })
		assert.Same(t, n, out[0], "an unwrapped value does not fit a *Shim slot")
	})

	t.Run("self-referencing slice", func(t *testing.T) {
		n, _ := newShims()
		out := make([]any, 2)
		out[0] = out
		out[1] = n

		require.NotPanics(t, func() { track.Detrack(out) })
		assert.Same(t, nested, out[1])
	})

	t.Run("typed nil", func(t *testing.T) {
		var o *value.Object
		var h *holder
		assert.Nil(t, track.Detrack(o))
		assert.Nil(t, track.Detrack(h))
	})
}
