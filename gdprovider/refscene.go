package gdprovider

// ReferenceScene is an in-memory SceneProvider keyed by scene path,
// letting tests describe a scene tree without a `.tscn` file.
type ReferenceScene struct {
	scripts map[string][]string // resourcePath -> scene paths
	nodes   map[string]map[string]SceneNodeRef
}

// NewReferenceScene returns an empty scene catalog.
func NewReferenceScene() *ReferenceScene {
	return &ReferenceScene{
		scripts: make(map[string][]string),
		nodes:   make(map[string]map[string]SceneNodeRef),
	}
}

// AttachScript records that resourcePath is used by scenePath.
func (s *ReferenceScene) AttachScript(resourcePath, scenePath string) {
	s.scripts[resourcePath] = append(s.scripts[resourcePath], scenePath)
}

// AddNode registers a node in a scene's tree, optionally addressable by
// a `%UniqueName`.
func (s *ReferenceScene) AddNode(scenePath string, ref SceneNodeRef) {
	if s.nodes[scenePath] == nil {
		s.nodes[scenePath] = make(map[string]SceneNodeRef)
	}
	s.nodes[scenePath][ref.Path] = ref
	if ref.UniqueName != "" {
		s.nodes[scenePath]["%"+ref.UniqueName] = ref
	}
}

func (s *ReferenceScene) GetScenesForScript(resourcePath string) []string {
	return s.scripts[resourcePath]
}

func (s *ReferenceScene) GetNodeType(scenePath, nodePath string) (string, bool) {
	ref, ok := s.nodes[scenePath][nodePath]
	if !ok {
		return "", false
	}
	return ref.Type, true
}

func (s *ReferenceScene) GetUniqueNodeType(scenePath, uniqueName string) (string, bool) {
	ref, ok := s.nodes[scenePath]["%"+uniqueName]
	if !ok {
		return "", false
	}
	return ref.Type, true
}
