package ir

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// DiscoverFiles walks root with afs and returns the path of every file whose extension
// (including the leading dot, e.g. ".go") matches one of exts (every file when exts is
// empty), in the order afs visits them. Each path is the walk's base URL joined with the
// file's parent folder and name, as afs reports them. It is the file-listing step spec.md §5 assumes runs "ahead of IR construction"
// before a caller builds one ir.FileUnit per discovered file and hands the batch to
// Builder.GenerateRepo.
//
// Grounded on analyzer.Analyzer.analyzePackages's own afs.Service.Walk + storage.OnVisit
// walk, which this mirrors at the single-file-list level instead of grouping by package dir.
func DiscoverFiles(ctx context.Context, fs afs.Service, root string, exts ...string) ([]string, error) {
	if fs == nil {
		fs = afs.New()
	}
	wanted := map[string]bool{}
	for _, e := range exts {
		wanted[strings.ToLower(e)] = true
	}

	var paths []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if len(wanted) > 0 {
			ext := strings.ToLower(extOf(info.Name()))
			if !wanted[ext] {
				return true, nil
			}
		}
		dir := url.Join(baseURL, parent)
		paths = append(paths, strings.TrimRight(dir, "/")+"/"+info.Name())
		return true, nil
	}
	if err := fs.Walk(ctx, root, visitor); err != nil {
		return nil, err
	}
	return paths, nil
}

func extOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}
