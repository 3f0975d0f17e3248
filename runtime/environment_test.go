package runtime

import "testing"

func TestEnvironmentChain(t *testing.T) {
	root := NewEnv(nil)
	root.Register("a", NewInteger(1))
	child := NewEnv(root)
	child.Register("b", NewInteger(2))
	grandchild := NewEnv(child)

	if grandchild.Lookup("a").Int != 1 || grandchild.Lookup("b").Int != 2 {
		t.Error("lookup should walk outward through every parent")
	}
	if !grandchild.Lookup("c").IsUndefined() {
		t.Error("a miss should yield undefined")
	}
	if !root.Lookup("b").IsUndefined() {
		t.Error("a parent must not see its children's bindings")
	}
	if grandchild.Owner("a") != root || grandchild.Owner("b") != child || grandchild.Owner("c") != nil {
		t.Error("Owner should return the nearest binding scope")
	}
	if root.Depth() != 0 || grandchild.Depth() != 2 {
		t.Errorf("Depth: root=%d grandchild=%d", root.Depth(), grandchild.Depth())
	}
}

func TestNearestBindingWins(t *testing.T) {
	root := NewEnv(nil)
	root.Register("x", NewString("outer"))
	inner := NewEnv(root)
	inner.Register("x", NewString("inner"))
	if inner.Lookup("x").Str != "inner" {
		t.Errorf("Lookup(x) = %s", inner.Lookup("x").Repr())
	}
	inner.Owner("x").Set("x", NewString("changed"))
	if root.Lookup("x").Str != "outer" {
		t.Error("mutating the inner binding must leave the outer one alone")
	}
}
