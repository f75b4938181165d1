package gdprovider

// ReferenceRuntime is a small in-memory RuntimeProvider covering the
// handful of built-in types the validator test suites exercise
// (Object, Node and its 2D/3D lineage, the primitive scalar types, and
// the two container types). It is not an attempt at a complete engine
// type catalog — a real one is supplied by the embedding host.
type ReferenceRuntime struct {
	classes map[string]ClassInfo
	members map[string]map[string]MemberInfo
	signals map[string]map[string]MemberInfo
}

// NewReferenceRuntime builds a ReferenceRuntime seeded with the base
// Godot class lineage used across the validator tests:
// Object <- Node <- Node2D/Node3D/Control, plus RefCounted.
func NewReferenceRuntime() *ReferenceRuntime {
	r := &ReferenceRuntime{
		classes: make(map[string]ClassInfo),
		members: make(map[string]map[string]MemberInfo),
		signals: make(map[string]map[string]MemberInfo),
	}

	r.addClass("Object", "")
	r.addClass("RefCounted", "Object")
	r.addClass("Resource", "RefCounted")
	r.addClass("Node", "Object")
	r.addClass("Node2D", "Node")
	r.addClass("Node3D", "Node")
	r.addClass("Control", "Node")
	r.addClass("CanvasItem", "Node")

	r.addMember("Object", MemberInfo{Kind: MemberMethod, Name: "has_method", MinArgs: 1, MaxArgs: 1, ParameterTypes: []string{"String"}, ReturnType: "bool"})
	r.addMember("Object", MemberInfo{Kind: MemberMethod, Name: "has_signal", MinArgs: 1, MaxArgs: 1, ParameterTypes: []string{"String"}, ReturnType: "bool"})
	r.addMember("Object", MemberInfo{Kind: MemberMethod, Name: "call", MinArgs: 1, MaxArgs: -1, IsVararg: true, ParameterTypes: []string{"String"}, ReturnType: "Variant"})
	r.addMember("Object", MemberInfo{Kind: MemberMethod, Name: "get", MinArgs: 1, MaxArgs: 1, ParameterTypes: []string{"String"}, ReturnType: "Variant"})
	r.addMember("Object", MemberInfo{Kind: MemberMethod, Name: "set", MinArgs: 2, MaxArgs: 2, ParameterTypes: []string{"String", "Variant"}, ReturnType: "void"})
	r.addMember("Object", MemberInfo{Kind: MemberMethod, Name: "connect", MinArgs: 2, MaxArgs: 3, ParameterTypes: []string{"String", "Callable"}, ReturnType: "int"})

	r.addMember("Node", MemberInfo{Kind: MemberMethod, Name: "get_node", MinArgs: 1, MaxArgs: 1, ParameterTypes: []string{"NodePath"}, ReturnType: "Node"})
	r.addMember("Node", MemberInfo{Kind: MemberMethod, Name: "get_node_or_null", MinArgs: 1, MaxArgs: 1, ParameterTypes: []string{"NodePath"}, ReturnType: "Node"})
	r.addMember("Node", MemberInfo{Kind: MemberMethod, Name: "get_parent", MinArgs: 0, MaxArgs: 0, ReturnType: "Node"})
	r.addMember("Node", MemberInfo{Kind: MemberMethod, Name: "queue_free", MinArgs: 0, MaxArgs: 0, ReturnType: "void"})
	r.addMember("Node", MemberInfo{Kind: MemberProperty, Name: "name", ReturnType: "StringName"})
	r.addMember("Node", MemberInfo{Kind: MemberSignal, Name: "tree_entered", ReturnType: "void"})
	r.addSignal("Node", MemberInfo{Kind: MemberSignal, Name: "tree_entered"})
	r.addSignal("Node", MemberInfo{Kind: MemberSignal, Name: "tree_exited"})

	r.addMember("Node2D", MemberInfo{Kind: MemberMethod, Name: "get_position", MinArgs: 0, MaxArgs: 0, ReturnType: "Vector2"})
	r.addMember("Node2D", MemberInfo{Kind: MemberMethod, Name: "set_position", MinArgs: 1, MaxArgs: 1, ParameterTypes: []string{"Vector2"}, ReturnType: "void"})
	r.addMember("Node2D", MemberInfo{Kind: MemberProperty, Name: "position", ReturnType: "Vector2"})
	r.addMember("Node2D", MemberInfo{Kind: MemberProperty, Name: "rotation", ReturnType: "float"})

	return r
}

func (r *ReferenceRuntime) addClass(name, base string) {
	r.classes[name] = ClassInfo{Name: name, BaseType: base}
	if r.members[name] == nil {
		r.members[name] = make(map[string]MemberInfo)
	}
	if r.signals[name] == nil {
		r.signals[name] = make(map[string]MemberInfo)
	}
}

func (r *ReferenceRuntime) addMember(typeName string, m MemberInfo) {
	if r.members[typeName] == nil {
		r.members[typeName] = make(map[string]MemberInfo)
	}
	r.members[typeName][m.Name] = m
}

func (r *ReferenceRuntime) addSignal(typeName string, m MemberInfo) {
	if r.signals[typeName] == nil {
		r.signals[typeName] = make(map[string]MemberInfo)
	}
	r.signals[typeName][m.Name] = m
}

// AddClass registers an additional class at runtime, letting tests
// extend the reference catalog with project-specific user classes.
func (r *ReferenceRuntime) AddClass(info ClassInfo) {
	r.classes[info.Name] = info
	if r.members[info.Name] == nil {
		r.members[info.Name] = make(map[string]MemberInfo)
	}
	if r.signals[info.Name] == nil {
		r.signals[info.Name] = make(map[string]MemberInfo)
	}
}

// AddMember registers an additional member on typeName, for test setup.
func (r *ReferenceRuntime) AddMember(typeName string, m MemberInfo) {
	r.addMember(typeName, m)
}

var primitiveTypes = map[string]bool{
	"int": true, "float": true, "bool": true, "String": true,
	"StringName": true, "NodePath": true, "Variant": true, "void": true,
	"Array": true, "Dictionary": true, "Callable": true, "Signal": true,
	"Vector2": true, "Vector3": true, "Color": true,
}

func (r *ReferenceRuntime) GetTypeInfo(name string) (ClassInfo, bool) {
	if c, ok := r.classes[name]; ok {
		return c, true
	}
	if primitiveTypes[name] {
		return ClassInfo{Name: name}, true
	}
	return ClassInfo{}, false
}

func (r *ReferenceRuntime) GetMember(typeName, memberName string) (MemberInfo, bool) {
	for t := typeName; t != ""; {
		if m, ok := r.members[t][memberName]; ok {
			return m, true
		}
		base, ok := r.GetBaseType(t)
		if !ok {
			break
		}
		t = base
	}
	return MemberInfo{}, false
}

func (r *ReferenceRuntime) GetBaseType(typeName string) (string, bool) {
	c, ok := r.classes[typeName]
	if !ok || c.BaseType == "" {
		return "", false
	}
	return c.BaseType, true
}

// IsAssignableTo reports whether a value of type src may be assigned to
// a variable of type tgt, via the inheritance chain, Variant
// universality, and exact-name equality. Numeric widening and
// null-to-reference rules live in gdsem.are_types_compatible, which
// layers on top of this structural check.
func (r *ReferenceRuntime) IsAssignableTo(src, tgt string) bool {
	if src == tgt || tgt == "Variant" {
		return true
	}
	for t := src; t != ""; {
		if t == tgt {
			return true
		}
		base, ok := r.GetBaseType(t)
		if !ok {
			break
		}
		t = base
	}
	return false
}

func (r *ReferenceRuntime) IsKnownType(name string) bool {
	_, ok := r.GetTypeInfo(name)
	return ok
}

func (r *ReferenceRuntime) GetGlobalClass(name string) (ClassInfo, bool) {
	c, ok := r.classes[name]
	return c, ok
}

func (r *ReferenceRuntime) GetSignal(typeName, signalName string) (MemberInfo, bool) {
	for t := typeName; t != ""; {
		if s, ok := r.signals[t][signalName]; ok {
			return s, true
		}
		base, ok := r.GetBaseType(t)
		if !ok {
			break
		}
		t = base
	}
	return MemberInfo{}, false
}
