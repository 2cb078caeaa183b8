package ir

import (
	"fmt"
	"strings"
	"sync"

	"github.com/minio/highwayhash"
)

// hashKey mirrors inspector/graph.Hash's fixed 32-byte key so content hashes computed
// for ids and for graph.Document chunks are produced by the same primitive.
var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

func contentHash8(parts ...string) string {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// highwayhash.New64 only fails on a malformed key, which hashKey never is.
		panic(err)
	}
	_, _ = h.Write([]byte(strings.Join(parts, "\x00")))
	return fmt.Sprintf("%08x", h.Sum64())[:8]
}

// IDGenerator mints stable node/edge ids per spec.md §6 and tracks the migration table
// used to preserve anonymous-construct identity across snapshots (§9).
//
// It is one of the three process-wide singletons named in the design notes; callers
// should prefer injecting one instance rather than reaching for a package-level global.
type IDGenerator struct {
	mu sync.Mutex

	externalFuncByRepo map[string]map[string]string // repoID -> external name -> node id
	// anonByContentHash supports the fuzzy-match migration: previous snapshot's
	// (kind, file, enclosing method, content hash) -> node id.
	anonByContentHash map[string]string
}

// NewIDGenerator returns a ready-to-use generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		externalFuncByRepo: map[string]map[string]string{},
		anonByContentHash:  map[string]string{},
	}
}

// NodeID returns the canonical id for a named symbol: "{kind}:{fqn}".
func NodeID(kind NodeKind, fqn string) string {
	return fmt.Sprintf("%s:%s", kind, fqn)
}

// FileNodeID returns the id for a File node: "file:{path}".
func FileNodeID(path string) string {
	return "file:" + path
}

// ModuleNodeID returns the id for a Module node: "module:{dotted}".
func ModuleNodeID(dotted string) string {
	return "module:" + dotted
}

// AnonNodeID derives a stable id for a lambda, method reference, or anonymous class from
// a content hash of (kind, parameter signature, functional-interface hint, captured
// names, enclosing method FQN), truncated to 8 hex chars (spec.md §9).
func (g *IDGenerator) AnonNodeID(kind NodeKind, paramSignature, functionalInterfaceHint string, capturedNames []string, enclosingFuncFQN string) string {
	h := contentHash8(string(kind), paramSignature, functionalInterfaceHint, strings.Join(capturedNames, ","), enclosingFuncFQN)
	return fmt.Sprintf("%s:anon.%s", kind, h)
}

// MigrateAnon records the mapping from a content hash to the id that should be reused
// across snapshots for an anonymous construct that scored >= 0.7 on the fuzzy match
// (see FuzzyMatchScore).
func (g *IDGenerator) MigrateAnon(contentHashKey, id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.anonByContentHash[contentHashKey] = id
}

// ResolveAnon looks up a previously migrated id for a content hash key, if any.
func (g *IDGenerator) ResolveAnon(contentHashKey string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.anonByContentHash[contentHashKey]
	return id, ok
}

// FuzzyMatchScore scores a candidate (removed, added) pair of anonymous nodes on four
// equally-weighted signals: same kind, same file, same enclosing method, same content
// hash. A score >= 0.7 means "migrate the id" rather than "remove + add" (spec.md §9).
func FuzzyMatchScore(sameKind, sameFile, sameEnclosingMethod, sameContentHash bool) float64 {
	score := 0.0
	for _, match := range []bool{sameKind, sameFile, sameEnclosingMethod, sameContentHash} {
		if match {
			score += 0.25
		}
	}
	return score
}

// ExternalFuncNodeID returns the id for an external (unresolved) function, cached per
// repo so the same external name always resolves to the same node within one repo
// (spec.md §6: "function:external.{name}" cached per repo to prevent cross-repo conflict).
func (g *IDGenerator) ExternalFuncNodeID(repoID, name string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	byName, ok := g.externalFuncByRepo[repoID]
	if !ok {
		byName = map[string]string{}
		g.externalFuncByRepo[repoID] = byName
	}
	if id, ok := byName[name]; ok {
		return id
	}
	id := fmt.Sprintf("function:external.%s", name)
	byName[name] = id
	return id
}

// EdgeID returns the deterministic id for an edge: "edge:{kind}:{source}→{target}@{occurrence}".
func EdgeID(kind EdgeKind, sourceID, targetID string, occurrence int) string {
	return fmt.Sprintf("edge:%s:%s→%s@%d", kind, sourceID, targetID, occurrence)
}
