package skilltree

import (
	"errors"

	"github.com/google/uuid"

	"github.com/skilltrace/skilltrace-backend/internal/types"
)

var (
	// ErrCycleDetected means a parent chain revisited a node. The schema does
	// not enforce acyclicity, so traversal treats a cycle as data corruption.
	ErrCycleDetected = errors.New("skilltree: cycle detected")
	// ErrNodeNotFound means an id is not part of the curriculum's forest, or a
	// parent pointer dangles outside it.
	ErrNodeNotFound = errors.New("skilltree: node not found")
)

type node struct {
	parent   *uuid.UUID
	children []uuid.UUID
	domain   types.SkillDomain
	name     string
}

// Index is an id-keyed arena over one curriculum's skill forest. It is built
// fresh from the store for every operation and holds no shared mutable state,
// so concurrent operations never see each other's view of the tree.
type Index struct {
	nodes map[uuid.UUID]*node
	order []uuid.UUID
}

func NewIndex(rows []types.SkillNode) *Index {
	ix := &Index{nodes: make(map[uuid.UUID]*node, len(rows))}
	for _, row := range rows {
		ix.nodes[row.ID] = &node{parent: row.ParentID, domain: row.Domain, name: row.Name}
		ix.order = append(ix.order, row.ID)
	}
	for _, id := range ix.order {
		p := ix.nodes[id].parent
		if p == nil {
			continue
		}
		if parent, ok := ix.nodes[*p]; ok {
			parent.children = append(parent.children, id)
		}
	}
	return ix
}

func (ix *Index) Contains(id uuid.UUID) bool {
	_, ok := ix.nodes[id]
	return ok
}

func (ix *Index) Domain(id uuid.UUID) (types.SkillDomain, bool) {
	n, ok := ix.nodes[id]
	if !ok {
		return "", false
	}
	return n.domain, true
}

func (ix *Index) Name(id uuid.UUID) string {
	if n, ok := ix.nodes[id]; ok {
		return n.name
	}
	return ""
}

func (ix *Index) IsLeaf(id uuid.UUID) bool {
	n, ok := ix.nodes[id]
	return ok && len(n.children) == 0
}

// Roots returns root ids in input order, optionally filtered to a domain set.
func (ix *Index) Roots(domains ...types.SkillDomain) []uuid.UUID {
	var out []uuid.UUID
	for _, id := range ix.order {
		n := ix.nodes[id]
		if n.parent != nil {
			continue
		}
		if len(domains) > 0 && !domainIn(n.domain, domains) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func domainIn(d types.SkillDomain, set []types.SkillDomain) bool {
	for _, s := range set {
		if s == d {
			return true
		}
	}
	return false
}

// RootOf climbs parent pointers until it reaches a node with no parent.
func (ix *Index) RootOf(id uuid.UUID) (uuid.UUID, error) {
	cur := id
	seen := make(map[uuid.UUID]bool)
	for {
		n, ok := ix.nodes[cur]
		if !ok {
			return uuid.Nil, ErrNodeNotFound
		}
		if seen[cur] {
			return uuid.Nil, ErrCycleDetected
		}
		seen[cur] = true
		if n.parent == nil {
			return cur, nil
		}
		cur = *n.parent
	}
}

// DescendantLeaves collects every childless node reachable from rootID, in
// deterministic input order. A childless root is its own leaf.
func (ix *Index) DescendantLeaves(rootID uuid.UUID) ([]uuid.UUID, error) {
	if _, ok := ix.nodes[rootID]; !ok {
		return nil, ErrNodeNotFound
	}
	var leaves []uuid.UUID
	visited := make(map[uuid.UUID]bool)
	stack := []uuid.UUID{rootID}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			return nil, ErrCycleDetected
		}
		visited[cur] = true
		n := ix.nodes[cur]
		if len(n.children) == 0 {
			leaves = append(leaves, cur)
			continue
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
	return leaves, nil
}

// postOrder returns the subtree under rootID with every child preceding its
// parent, without recursing, so malformed or very deep trees cannot blow the
// stack.
func (ix *Index) postOrder(rootID uuid.UUID) ([]uuid.UUID, error) {
	if _, ok := ix.nodes[rootID]; !ok {
		return nil, ErrNodeNotFound
	}
	var reversed []uuid.UUID
	visited := make(map[uuid.UUID]bool)
	stack := []uuid.UUID{rootID}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			return nil, ErrCycleDetected
		}
		visited[cur] = true
		reversed = append(reversed, cur)
		stack = append(stack, ix.nodes[cur].children...)
	}
	out := make([]uuid.UUID, len(reversed))
	for i, id := range reversed {
		out[len(reversed)-1-i] = id
	}
	return out, nil
}
