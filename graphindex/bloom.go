package graphindex

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/minio/highwayhash"
)

// EdgeBloomFilter answers "definitely not an edge" in O(k) without touching EdgeIndex's
// maps. Build fills one and exposes it as GraphIndex.Bloom; the query package, its
// StrategySelector included, does not consult it (spec.md §6). It reuses the same
// highwayhash primitive as ir.IDGenerator's content hashing, double-hashed per Kirsch-
// Mitzenmacher into k independent probes instead of pulling in a second hash library.
type EdgeBloomFilter struct {
	mu   sync.RWMutex
	bits []uint64
	m    uint64 // bit count
	k    int    // hash count
	keyA []byte
	keyB []byte
}

// NewEdgeBloomFilter sizes the filter for n expected edges at false-positive rate p.
func NewEdgeBloomFilter(n int, p float64) *EdgeBloomFilter {
	if n <= 0 {
		n = 1
	}
	if p <= 0 || p >= 1 {
		p = 0.01
	}
	m := uint64(math.Ceil(-1 * float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	if m < 64 {
		m = 64
	}
	k := int(math.Round((float64(m) / float64(n)) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return &EdgeBloomFilter{
		bits: make([]uint64, (m+63)/64),
		m:    m,
		k:    k,
		keyA: []byte("0123456789ABCDEF0123456789ABCDEF"),
		keyB: []byte("FEDCBA9876543210FEDCBA9876543210"),
	}
}

func edgeKey(kind, source, target string) string {
	return kind + "\x00" + source + "\x00" + target
}

func (f *EdgeBloomFilter) probes(key string) (h1, h2 uint64) {
	a, _ := highwayhash.New64(f.keyA)
	_, _ = a.Write([]byte(key))
	h1 = a.Sum64()
	b, _ := highwayhash.New64(f.keyB)
	_, _ = b.Write([]byte(key))
	h2 = b.Sum64()
	return h1, h2
}

func (f *EdgeBloomFilter) setBit(idx uint64) {
	word, bit := idx/64, idx%64
	f.bits[word] |= 1 << bit
}

func (f *EdgeBloomFilter) hasBit(idx uint64) bool {
	word, bit := idx/64, idx%64
	return f.bits[word]&(1<<bit) != 0
}

// Add registers the (kind, source, target) triple.
func (f *EdgeBloomFilter) Add(kind, source, target string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h1, h2 := f.probes(edgeKey(kind, source, target))
	for i := 0; i < f.k; i++ {
		idx := (h1 + uint64(i)*h2) % f.m
		f.setBit(idx)
	}
}

// MaybeHas reports whether (kind, source, target) might exist. False means it definitely
// does not; true means it probably does (subject to the configured false-positive rate).
func (f *EdgeBloomFilter) MaybeHas(kind, source, target string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	h1, h2 := f.probes(edgeKey(kind, source, target))
	for i := 0; i < f.k; i++ {
		idx := (h1 + uint64(i)*h2) % f.m
		if !f.hasBit(idx) {
			return false
		}
	}
	return true
}

// marshalUint64 encodes v as 8 little-endian bytes. Nothing in the module calls it, and
// the filter itself is never persisted.
func marshalUint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}
