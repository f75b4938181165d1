// Package gdprovider defines the read-only collaborator interfaces the
// semantic model consults for facts it cannot derive from source alone:
// the Godot runtime type catalog, scene composition, and project file
// enumeration (component C3). These are external interfaces by design —
// the toolkit never bundles a Godot installation or a `.tscn` parser.
//
// The package also ships small in-memory reference implementations of
// all three, used by gdsem/gdvalidate's own tests so that validator
// behavior is exercisable without a real editor project on disk.
package gdprovider

// MemberKind distinguishes the different things a member lookup can
// resolve to.
type MemberKind int

const (
	MemberUnknown MemberKind = iota
	MemberMethod
	MemberProperty
	MemberSignal
	MemberConstant
)

// MemberInfo describes one resolved member of a runtime type.
type MemberInfo struct {
	Kind           MemberKind
	Name           string
	MinArgs        int
	MaxArgs        int // -1 means unbounded (vararg)
	IsVararg       bool
	ParameterTypes []string
	ReturnType     string
}

// ClassInfo describes a globally registered class (a user script with
// `class_name`, or a built-in engine class).
type ClassInfo struct {
	Name       string
	BaseType   string
	ScriptPath string
}

// RuntimeProvider is the read-only catalog of built-in types, their
// members, inheritance, and project-wide global classes (spec §6).
type RuntimeProvider interface {
	GetTypeInfo(name string) (ClassInfo, bool)
	GetMember(typeName, memberName string) (MemberInfo, bool)
	GetBaseType(typeName string) (string, bool)
	IsAssignableTo(src, tgt string) bool
	IsKnownType(name string) bool
	GetGlobalClass(name string) (ClassInfo, bool)
	GetSignal(typeName, signalName string) (MemberInfo, bool)
}

// SceneNodeRef is one entry of a scene's node tree, the slice of
// information the scene node validator needs.
type SceneNodeRef struct {
	Path string // e.g. "Player/Sprite2D"
	Type string
	// UniqueName is the `%Name` this node is addressable as, if any.
	UniqueName string
}

// SceneProvider answers questions about scene composition for the scene
// node validator (GD4011/GD4012).
type SceneProvider interface {
	GetScenesForScript(resourcePath string) []string
	GetNodeType(scenePath, nodePath string) (string, bool)
	GetUniqueNodeType(scenePath, uniqueName string) (string, bool)
}

// ProjectModel enumerates script files and hosts the scene provider used
// for cross-file and cross-scene queries.
type ProjectModel interface {
	ScriptPaths() []string
	ReadScript(path string) (string, error)
	Scenes() SceneProvider
}
