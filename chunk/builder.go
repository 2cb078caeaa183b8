package chunk

import (
	"crypto/md5"
	"fmt"
	"strings"
	"sync"

	"github.com/josongsong/semantica-codegraph/ir"
)

const (
	// splitThreshold mirrors inspector/graph.Document's 8192-256 byte chunking
	// threshold; content above this size is split into numbered parts instead of
	// truncated (inspector/graph/document.go's SplitDocument).
	splitThreshold = 8192 - 256
)

// contentHash returns the chunk's stable external id component. spec.md's content_hash
// field is produced with MD5 rather than the highwayhash used internally for structural
// document dedup (inspector/graph.Document.HashContent), so two independently-built
// chunk stores can compare hashes without sharing the highwayhash key.
func contentHash(content string) string {
	sum := md5.Sum([]byte(content))
	return fmt.Sprintf("%x", sum)
}

// Builder walks an ir.IRDocument into a Repo -> Project -> Module -> File -> Class ->
// Function chunk tree with Docstring/FileHeader/Skeleton/Usage leaves, generalizing
// inspector/graph.Project.CreateDocuments's flat per-kind Document walk into a proper
// parent/child tree (spec.md §4.4).
type Builder struct {
	RepoID      string
	ProjectName string

	mu      sync.Mutex
	mintedIDs map[string]bool
}

// NewBuilder returns a chunk Builder for one repo/project pair.
func NewBuilder(repoID, projectName string) *Builder {
	return &Builder{RepoID: repoID, ProjectName: projectName, mintedIDs: map[string]bool{}}
}

// mintID returns "chunk:{repo}:{kind}:{fqn}", appending an 8-char content-hash suffix on
// collision so two chunks never share an id (spec.md §4.4). Guarded by a mutex so
// concurrent Build calls on one Builder do not race on the set of minted ids.
func (b *Builder) mintID(kind Kind, fqn, content string) string {
	base := fmt.Sprintf("chunk:%s:%s:%s", b.RepoID, kind, fqn)
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.mintedIDs[base] {
		b.mintedIDs[base] = true
		return base
	}
	suffixed := base + ":" + contentHash(content)[:8]
	b.mintedIDs[suffixed] = true
	return suffixed
}

// Build converts doc plus the source text each node's span was taken from (via
// fileContents, keyed by FilePath) into a full chunk Tree.
func (b *Builder) Build(doc *ir.IRDocument, fileContents map[string]string) *Tree {
	tree := &Tree{RepoID: b.RepoID, SnapshotID: doc.SnapshotID}

	repoChunk := &Chunk{
		ID: b.mintID(KindRepo, b.RepoID, b.RepoID), RepoID: b.RepoID, SnapshotID: doc.SnapshotID,
		Kind: KindRepo, FQN: b.RepoID, ContentHash: contentHash(b.RepoID),
	}
	tree.add(repoChunk)
	tree.Root = repoChunk

	projectChunk := &Chunk{
		ID: b.mintID(KindProject, b.ProjectName, b.ProjectName), RepoID: b.RepoID, SnapshotID: doc.SnapshotID,
		Kind: KindProject, FQN: b.ProjectName, ParentID: repoChunk.ID, ContentHash: contentHash(b.ProjectName),
	}
	tree.add(projectChunk)

	moduleChunks := map[string]*Chunk{}
	for _, pkg := range doc.Packages {
		if _, ok := moduleChunks[pkg.Path]; ok {
			continue
		}
		mc := &Chunk{
			ID: b.mintID(KindModule, pkg.Path, pkg.Path), RepoID: b.RepoID, SnapshotID: doc.SnapshotID,
			Kind: KindModule, FQN: pkg.Path, ParentID: projectChunk.ID, ContentHash: contentHash(pkg.Path),
		}
		tree.add(mc)
		moduleChunks[pkg.Path] = mc
	}

	fileChunks := map[string]*Chunk{}
	for _, n := range doc.Nodes {
		if n.Kind != ir.NodeFile {
			continue
		}
		parent := projectChunk
		if pkgPath, _ := n.Attrs["package"].(string); pkgPath != "" {
			if mc, ok := moduleChunks[pkgPath]; ok {
				parent = mc
			}
		}
		content := fileContents[n.FilePath]
		fc := &Chunk{
			ID: b.mintID(KindFile, n.FQN, content), RepoID: b.RepoID, SnapshotID: doc.SnapshotID,
			Kind: KindFile, FQN: n.FQN, ParentID: parent.ID, FilePath: n.FilePath, Language: n.Language,
			ContentHash: contentHash(content), NodeIDs: []string{n.ID},
			StartLine: 1, EndLine: lineCount(content),
		}
		tree.add(fc)
		fileChunks[n.ID] = fc

		if header := fileHeader(content); header != "" {
			headerFQN := n.FQN + "#header"
			tree.add(&Chunk{
				ID: b.mintID(KindFileHeader, headerFQN, header), RepoID: b.RepoID, SnapshotID: doc.SnapshotID,
				Kind: KindFileHeader, FQN: headerFQN, ParentID: fc.ID, FilePath: n.FilePath,
				Language: n.Language, ContentHash: contentHash(header), Summary: header,
				StartLine: fc.StartLine, EndLine: fc.StartLine + strings.Count(header, "\n"),
			})
		}
	}

	nodeChunks := map[string]*Chunk{}
	for _, n := range doc.Nodes {
		var parentChunk *Chunk
		switch {
		case n.ParentID != "" && fileChunks[n.ParentID] != nil:
			parentChunk = fileChunks[n.ParentID]
		case n.ParentID != "" && nodeChunks[n.ParentID] != nil:
			parentChunk = nodeChunks[n.ParentID]
		default:
			continue
		}

		var kind Kind
		switch n.Kind {
		case ir.NodeClass:
			kind = KindClass
		case ir.NodeFunction, ir.NodeMethod:
			kind = KindFunction
		default:
			continue
		}

		body := spanText(fileContents[n.FilePath], n.BodySpan)
		startLine, endLine := spanLines(n.BodySpan, n.Span, parentChunk)
		nc := b.appendContent(tree, &Chunk{
			ID: b.mintID(kind, n.FQN, body), RepoID: b.RepoID, SnapshotID: doc.SnapshotID,
			Kind: kind, FQN: n.FQN, ParentID: parentChunk.ID, FilePath: n.FilePath,
			Language: n.Language, NodeIDs: []string{n.ID},
			Visibility: visibilityOf(n), StartLine: startLine, EndLine: endLine,
		}, body)
		nodeChunks[n.ID] = nc

		if kind == KindFunction {
			skeletonFQN := n.FQN + "#skeleton"
			tree.add(&Chunk{
				ID: b.mintID(KindSkeleton, skeletonFQN, signature(n)), RepoID: b.RepoID, SnapshotID: doc.SnapshotID,
				Kind: KindSkeleton, FQN: skeletonFQN, ParentID: nc.ID, FilePath: n.FilePath,
				Language: n.Language, ContentHash: contentHash(signature(n)), Summary: signature(n),
				StartLine: nc.StartLine, EndLine: nc.StartLine,
			})
		}
	}

	return tree
}

// appendContent sets ContentHash and splits content exceeding splitThreshold into
// numbered Usage-kind children, mirroring inspector/graph.Documents.SplitDocument's
// 8192-256 byte chunking.
func (b *Builder) appendContent(tree *Tree, c *Chunk, content string) *Chunk {
	c.ContentHash = contentHash(content)
	tree.add(c)
	if len(content) <= splitThreshold {
		return c
	}
	for i, start := 0, 0; start < len(content); i++ {
		end := start + splitThreshold
		if end > len(content) {
			end = len(content)
		}
		part := content[start:end]
		usageFQN := fmt.Sprintf("%s#usage.%d", c.FQN, i)
		tree.add(&Chunk{
			ID: b.mintID(KindUsage, usageFQN, part), RepoID: c.RepoID, SnapshotID: c.SnapshotID,
			Kind: KindUsage, FQN: usageFQN, ParentID: c.ID,
			FilePath: c.FilePath, Language: c.Language, ContentHash: contentHash(part),
			StartLine: c.StartLine, EndLine: c.EndLine,
		})
		start = end
	}
	return c
}

func lineCount(content string) int {
	if content == "" {
		return 1
	}
	return strings.Count(content, "\n") + 1
}

// spanLines picks the most precise available span (body, then declaration) and clamps it
// to the parent chunk's range so the BoundaryValidator's invariant holds even when the
// front-end's span was computed against a slightly different line base.
func spanLines(body, decl *ir.Span, parent *Chunk) (int, int) {
	s := body
	if s == nil {
		s = decl
	}
	if s == nil {
		return parent.StartLine, parent.StartLine
	}
	start, end := s.StartLine, s.EndLine
	if parent.StartLine != 0 && start < parent.StartLine {
		start = parent.StartLine
	}
	if parent.EndLine != 0 && end > parent.EndLine {
		end = parent.EndLine
	}
	return start, end
}

func spanText(fileContent string, span *ir.Span) string {
	if span == nil || fileContent == "" {
		return ""
	}
	lines := strings.Split(fileContent, "\n")
	if span.StartLine < 1 || span.StartLine > len(lines) {
		return ""
	}
	end := span.EndLine
	if end > len(lines) {
		end = len(lines)
	}
	if end < span.StartLine {
		return ""
	}
	return strings.Join(lines[span.StartLine-1:end], "\n")
}

func fileHeader(content string) string {
	lines := strings.Split(content, "\n")
	var header []string
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*") {
			header = append(header, l)
			continue
		}
		break
	}
	return strings.Join(header, "\n")
}

func signature(n *ir.Node) string {
	if sig, ok := n.Attrs["signature"].(string); ok && sig != "" {
		return sig
	}
	return n.Name
}

func visibilityOf(n *ir.Node) string {
	if exported, ok := n.Attrs["is_exported"].(bool); ok {
		if exported {
			return "public"
		}
		return "private"
	}
	return "internal"
}
