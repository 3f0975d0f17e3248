package runtime

// NewEnv creates a lexical scope. parent is nil for the root environment.
func NewEnv(parent *Object) *Object {
	env := newObject(KindEnvironment)
	env.Parent = parent
	return env
}

// Register binds name in this scope without any declaration check;
// callers enforce declaration rules.
func (o *Object) Register(name string, val *Value) {
	o.Set(name, val)
}

// Lookup resolves name, walking up the parent chain. A miss yields
// Undefined, never an error.
func (o *Object) Lookup(name string) *Value {
	if owner := o.Owner(name); owner != nil {
		return owner.fields[name]
	}
	return Undefined
}

// Owner returns the nearest scope that binds name, or nil.
func (o *Object) Owner(name string) *Object {
	for scope := o; scope != nil; scope = scope.Parent {
		if _, ok := scope.fields[name]; ok {
			return scope
		}
	}
	return nil
}

// Depth counts the scopes between o and the root, for tracing.
func (o *Object) Depth() int {
	depth := 0
	for scope := o.Parent; scope != nil; scope = scope.Parent {
		depth++
	}
	return depth
}
