package form

import (
	"github.com/barisa/untangled-ui/pkg/store"
)

// SubformPath is one statically computed route from a root entity to a nested
// subform instance: the property names to follow plus the child's spec.
type SubformPath struct {
	Path []string
	Spec Spec
}

// SubformPaths statically computes every subform path reachable from a spec
// by combining its declared subform links with the entity type's relational
// shape. A subform is recognized at a join property only when the schema
// marks it as a subform link, the shape declares it as a non-recursive,
// non-union join, and the joined type carries the full form capability set.
// Violations are returned as warnings and the join is excluded.
func SubformPaths(spec Spec) ([]SubformPath, []Warning) {
	var paths []SubformPath
	var warns []Warning
	if spec.Type == nil {
		return nil, nil
	}
	collectPaths(spec, nil, map[string]bool{spec.Type.Table(): true}, &paths, &warns)
	return paths, warns
}

func collectPaths(spec Spec, prefix []string, ancestors map[string]bool, paths *[]SubformPath, warns *[]Warning) {
	table := spec.Type.Table()
	shape := spec.Type.Shape()
	for _, link := range spec.Fields {
		if !link.IsSubform() {
			continue
		}
		join, ok := shape.Join(link.Name)
		if !ok {
			*warns = append(*warns, Warning{Table: table, Field: link.Name,
				Reason: "subform link has no matching join in the declared shape"})
			continue
		}
		if join.Union {
			*warns = append(*warns, Warning{Table: table, Field: link.Name,
				Reason: "subforms cannot be grouped through union joins; model the grouping manually"})
			continue
		}
		if join.Recursive {
			*warns = append(*warns, Warning{Table: table, Field: link.Name,
				Reason: "recursive joins are excluded from subform auto-discovery"})
			continue
		}
		target, err := targetCaps(link.Target)
		if err != nil {
			*warns = append(*warns, Warning{Table: table, Field: link.Name, Reason: err.Error()})
			continue
		}
		if ancestors[target.Table()] {
			*warns = append(*warns, Warning{Table: table, Field: link.Name,
				Reason: "subform join cycles back to " + target.Table() + "; excluded from auto-discovery"})
			continue
		}

		path := append(append([]string(nil), prefix...), link.Name)
		childSpec := Spec{Type: target, Fields: target.FormFields()}
		*paths = append(*paths, SubformPath{Path: path, Spec: childSpec})

		ancestors[target.Table()] = true
		collectPaths(childSpec, path, ancestors, paths, warns)
		delete(ancestors, target.Table())
	}
}

// ResolveInstances walks a property path through the live graph starting at
// one entity and collects the terminal idents. To-many relations fan the
// remaining path out across every member, so arbitrarily deep many-to-many
// chains resolve correctly.
func ResolveInstances(s store.Store, e store.Entity, path []string) []store.Ident {
	if len(path) == 0 || e == nil {
		return nil
	}
	refs, ok := store.Refs(e[path[0]])
	if !ok {
		return nil
	}
	rest := path[1:]
	var out []store.Ident
	for _, ref := range refs {
		if len(rest) == 0 {
			out = append(out, ref)
			continue
		}
		child, ok := s.Entity(ref)
		if !ok {
			continue
		}
		out = append(out, ResolveInstances(s, child, rest)...)
	}
	return out
}

// Node is one materialized form instance in a resolved tree.
type Node struct {
	Ident  store.Ident
	Spec   Spec
	Entity store.Entity
}

// FormsIn resolves the complete, currently materialized set of form nodes
// reachable from a root: the root entity plus every live subform instance,
// deduplicated. Idents that do not resolve to a stored entity are dropped,
// as are idents with a nil trailing key component.
func FormsIn(s store.Store, rootSpec Spec, rootID store.Ident) []Node {
	root, ok := s.Entity(rootID)
	if !ok {
		return nil
	}
	nodes := []Node{{Ident: rootID, Spec: rootSpec, Entity: root}}
	seen := map[store.Ident]bool{rootID: true}

	paths, _ := SubformPaths(rootSpec)
	for _, p := range paths {
		for _, id := range ResolveInstances(s, root, p.Path) {
			if id.Nil() || seen[id] {
				continue
			}
			e, ok := s.Entity(id)
			if !ok {
				continue
			}
			seen[id] = true
			nodes = append(nodes, Node{Ident: id, Spec: p.Spec, Entity: e})
		}
	}
	return nodes
}
