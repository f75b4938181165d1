// Package fsprovider is a filesystem-backed gdprovider.ProjectModel,
// used by integration tests that want to point the analyzer at a real
// directory of .gd files instead of hand-built in-memory fixtures. It
// is a reference/test double, not a project-enumeration feature of the
// core pipeline (spec §1 treats file/project enumeration as external).
package fsprovider

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/dekarrin/gdlint/gdprovider"
)

// Project walks a root URL (local path, `s3://`, `gs://`, anything afs
// supports) collecting every `.gd` file under it as a script.
type Project struct {
	fs     afs.Service
	root   string
	mu     sync.Mutex
	cached map[string]string
	scenes gdprovider.SceneProvider
}

// New returns a Project rooted at root. scenes may be nil, in which
// case an empty gdprovider.ReferenceScene is used.
func New(root string, scenes gdprovider.SceneProvider) *Project {
	if scenes == nil {
		scenes = gdprovider.NewReferenceScene()
	}
	return &Project{fs: afs.New(), root: root, scenes: scenes}
}

// Load walks the project root once, populating the script path cache.
// ScriptPaths/ReadScript are read-only after Load returns.
func (p *Project) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cached = make(map[string]string)
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if !strings.HasSuffix(info.Name(), ".gd") {
			return true, nil
		}
		loc := url.Join(baseURL, parent, info.Name())
		data, err := p.fs.DownloadWithURL(ctx, loc)
		if err != nil {
			return false, err
		}
		p.cached[loc] = string(data)
		return true, nil
	}
	return p.fs.Walk(ctx, p.root, visitor)
}

func (p *Project) ScriptPaths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.cached))
	for path := range p.cached {
		out = append(out, path)
	}
	return out
}

func (p *Project) ReadScript(path string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	src, ok := p.cached[path]
	if !ok {
		return "", &notLoadedError{path: path}
	}
	return src, nil
}

func (p *Project) Scenes() gdprovider.SceneProvider {
	return p.scenes
}

type notLoadedError struct{ path string }

func (e *notLoadedError) Error() string {
	return "script not loaded from project root: " + e.path
}
