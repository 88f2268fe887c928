package value

import (
	"math"
	"strconv"
	"sync/atomic"
)

var lastSymbolID atomic.Uint64

// Symbol is an opaque-identity key. Two symbols are equal only if they are the same pointer.
type Symbol struct {
	id          uint64
	description string
}

func NewSymbol(description string) *Symbol {
	return &Symbol{id: lastSymbolID.Add(1), description: description}
}

// ID is unique per symbol for the life of the process.
func (s *Symbol) ID() uint64 {
	return s.id
}

func (s *Symbol) String() string {
	return "Symbol(" + s.description + ")"
}

// Key addresses a property of a structured value.
// It is either a plain name or a Symbol, and is comparable.
type Key struct {
	name string
	sym  *Symbol
}

// Name returns the string key s.
func Name(s string) Key {
	return Key{name: s}
}

// Index returns the key of the i-th element of an Array.
func Index(i int) Key {
	return Key{name: strconv.Itoa(i)}
}

func SymbolKey(s *Symbol) Key {
	return Key{sym: s}
}

// LengthKey is the non-enumerable length property of an Array.
var LengthKey = Name("length")

// OriginalKey is reserved: reading it through a tracking wrapper yields the unwrapped value.
var OriginalKey = SymbolKey(NewSymbol("original"))

func (k Key) IsSymbol() bool {
	return k.sym != nil
}

func (k Key) Symbol() *Symbol {
	return k.sym
}

// Name returns the string form of a name key, or "" for a symbol key.
func (k Key) Name() string {
	return k.name
}

func (k Key) String() string {
	if k.sym != nil {
		return k.sym.String()
	}
	return k.name
}

// index reports the array position named by k. Positions stop below 2^32-1.
func (k Key) index() (int, bool) {
	if k.sym != nil || k.name == "" {
		return 0, false
	}
	if len(k.name) > 1 && k.name[0] == '0' {
		return 0, false
	}
	for _, c := range k.name {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(k.name)
	if err != nil || uint64(i) > math.MaxUint32-1 {
		return 0, false
	}
	return i, true
}
