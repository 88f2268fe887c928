package track

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/on-the-ground/trackmemo/value"
)

// Fingerprint digests an ordered key list. Every key is written with a kind
// byte and a length or symbol id, so distinct lists differ in their input and
// only collide by hash, with 64-bit probability.
func Fingerprint(keys []value.Key) uint64 {
	d := xxhash.New()
	var buf [9]byte
	for _, k := range keys {
		if k.IsSymbol() {
			buf[0] = 1
			binary.LittleEndian.PutUint64(buf[1:], k.Symbol().ID())
			_, _ = d.Write(buf[:])
			continue
		}
		buf[0] = 0
		binary.LittleEndian.PutUint64(buf[1:], uint64(len(k.Name())))
		_, _ = d.Write(buf[:])
		_, _ = d.WriteString(k.Name())
	}
	return d.Sum64()
}
