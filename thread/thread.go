// Package thread turns a post's recursive comment slice into a flat arena of
// nodes with parent/child index references, so traversal and ordering logic
// stay independent of any rendering concern.
package thread

import (
	"sort"

	"humordrop/feed"
)

// RootParent marks a node with no parent comment (a top-level comment).
const RootParent = -1

// Node is one comment in the arena. Children are indexes into the same
// arena, pre-sorted descending by creation time.
type Node struct {
	Comment  feed.Comment
	Parent   int
	Children []int
	Depth    int
}

// Tree is an immutable arena built from one post's comments. Rebuild it when
// the canonical post is refreshed; it is never patched in place.
type Tree struct {
	nodes []Node
	roots []int
	index map[string]int
}

// Build constructs the arena for a post. Children at every level are ordered
// newest first, matching how threads render.
func Build(p *feed.Post) *Tree {
	t := &Tree{index: make(map[string]int)}
	if p == nil {
		return t
	}
	for _, c := range p.Comments {
		t.roots = append(t.roots, t.add(c, RootParent, 0))
	}
	t.sortLevel(t.roots)
	for i := range t.nodes {
		t.sortLevel(t.nodes[i].Children)
	}
	return t
}

func (t *Tree) add(c feed.Comment, parent, depth int) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node{Comment: c, Parent: parent, Depth: depth})
	t.index[c.ID] = idx
	for _, reply := range c.Replies {
		child := t.add(reply, idx, depth+1)
		t.nodes[idx].Children = append(t.nodes[idx].Children, child)
	}
	return idx
}

func (t *Tree) sortLevel(level []int) {
	sort.SliceStable(level, func(i, j int) bool {
		return t.nodes[level[i]].Comment.Timestamp.After(t.nodes[level[j]].Comment.Timestamp)
	})
}

// Len returns the total number of comments in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the arena node for a comment id.
func (t *Tree) Node(id string) (Node, bool) {
	idx, ok := t.index[id]
	if !ok {
		return Node{}, false
	}
	return t.nodes[idx], true
}

// ReplyCount returns the number of direct replies to a comment; it backs the
// "view N more replies" affordance in preview mode.
func (t *Tree) ReplyCount(id string) int {
	idx, ok := t.index[id]
	if !ok {
		return 0
	}
	return len(t.nodes[idx].Children)
}

// TopLevel returns the post's top-level comments, newest first. This is the
// preview view: each entry renders alone, with ReplyCount advertising any
// thread beneath it.
func (t *Tree) TopLevel() []Node {
	out := make([]Node, 0, len(t.roots))
	for _, idx := range t.roots {
		out = append(out, t.nodes[idx])
	}
	return out
}

// Thread returns the full view rooted at a comment: the root followed by all
// descendants in depth-first order, children newest first at every level.
// Depth on each node is relative to the whole tree, not the sub-thread.
func (t *Tree) Thread(rootID string) []Node {
	idx, ok := t.index[rootID]
	if !ok {
		return nil
	}
	var out []Node
	t.walk(idx, &out)
	return out
}

func (t *Tree) walk(idx int, out *[]Node) {
	*out = append(*out, t.nodes[idx])
	for _, child := range t.nodes[idx].Children {
		t.walk(child, out)
	}
}
