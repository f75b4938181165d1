package gdprovider

// ReferenceProject is an in-memory ProjectModel: a fixed map of script
// path to source text, paired with a ReferenceScene. Used by gdsem and
// gdvalidate tests to exercise cross-file and scene-aware validators
// without touching a filesystem.
type ReferenceProject struct {
	scripts map[string]string
	scenes  *ReferenceScene
}

// NewReferenceProject builds a ReferenceProject over the given
// path->source map, backed by scenes (which may be nil for tests that
// don't need scene-aware validators).
func NewReferenceProject(scripts map[string]string, scenes *ReferenceScene) *ReferenceProject {
	if scenes == nil {
		scenes = NewReferenceScene()
	}
	return &ReferenceProject{scripts: scripts, scenes: scenes}
}

func (p *ReferenceProject) ScriptPaths() []string {
	out := make([]string, 0, len(p.scripts))
	for path := range p.scripts {
		out = append(out, path)
	}
	return out
}

func (p *ReferenceProject) ReadScript(path string) (string, error) {
	src, ok := p.scripts[path]
	if !ok {
		return "", &scriptNotFoundError{path: path}
	}
	return src, nil
}

func (p *ReferenceProject) Scenes() SceneProvider {
	return p.scenes
}

type scriptNotFoundError struct{ path string }

func (e *scriptNotFoundError) Error() string {
	return "script not found in project: " + e.path
}
