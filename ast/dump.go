package ast

// Dump converts a tree into plain maps and slices tagged with each node's
// kind, suitable for encoding/json.
func Dump(e Expr) map[string]interface{} {
	if e == nil {
		return nil
	}
	out := map[string]interface{}{
		"kind": Kind(e),
		"line": e.LineNumber(),
	}
	switch n := e.(type) {
	case *Block:
		out["instrs"] = dumpAll(n.Instrs)
	case *Literal:
		out["value"] = n.Value
	case *FunCall:
		out["callee"] = Dump(n.Callee)
		out["args"] = dumpAll(n.Args)
	case *LocalVarAccess:
		out["name"] = n.Name
	case *LocalVarAssignment:
		out["name"] = n.Name
		out["value"] = Dump(n.Value)
		out["declaration"] = n.Declaration
	case *Fun:
		out["name"] = n.DisplayName()
		out["params"] = n.Params
		out["body"] = Dump(n.Body)
	case *Return:
		out["value"] = Dump(n.Value)
	case *If:
		out["cond"] = Dump(n.Cond)
		out["then"] = Dump(n.Then)
		out["else"] = Dump(n.Else)
	case *New:
		fields := make([]map[string]interface{}, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = map[string]interface{}{"name": f.Name, "value": Dump(f.Value)}
		}
		out["fields"] = fields
	case *FieldAccess:
		out["receiver"] = Dump(n.Receiver)
		out["name"] = n.Name
	case *FieldAssignment:
		out["receiver"] = Dump(n.Receiver)
		out["name"] = n.Name
		out["value"] = Dump(n.Value)
	case *MethodCall:
		out["receiver"] = Dump(n.Receiver)
		out["name"] = n.Name
		out["args"] = dumpAll(n.Args)
	}
	return out
}

func dumpAll(exprs []Expr) []map[string]interface{} {
	out := make([]map[string]interface{}, len(exprs))
	for i, e := range exprs {
		out[i] = Dump(e)
	}
	return out
}
