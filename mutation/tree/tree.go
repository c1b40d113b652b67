// Copyright 2024 Fudong and Hosen
// This file is part of the mutkit library.
//
// The mutkit library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The mutkit library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the mutkit library. If not, see <http://www.gnu.org/licenses/>.

// Package tree implements the bracket tree notation
//
//	tree  := value ('(' tree ')')*
//	value := one or more bytes other than '(' and ')'
//
// and the structural edits the tree mutators apply to it.
package tree

import (
	"strings"

	"github.com/AgnopraxLab/mutkit/mutation"
)

// Node is one tree node. A node is owned by its parent's child list; the
// parent pointer is only a back-reference.
type Node struct {
	Value    string
	parent   *Node
	children []*Node
}

// Parent returns the parent of n, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children of n in textual order. The slice must not
// be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild appends a new child holding value and returns it.
func (n *Node) AddChild(value string) *Node {
	child := &Node{Value: value, parent: n}
	n.children = append(n.children, child)
	return child
}

func (n *Node) clone() *Node {
	c := &Node{Value: n.Value}
	if len(n.children) > 0 {
		c.children = make([]*Node, len(n.children))
		for i, child := range n.children {
			cc := child.clone()
			cc.parent = c
			c.children[i] = cc
		}
	}
	return c
}

// detach removes n from its parent's child list.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, child := range p.children {
		if child == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (n *Node) size() int {
	total := 1
	for _, child := range n.children {
		total += child.size()
	}
	return total
}

func (n *Node) preorder(visit func(*Node)) {
	visit(n)
	for _, child := range n.children {
		child.preorder(visit)
	}
}

func (n *Node) write(sb *strings.Builder) {
	sb.WriteString(n.Value)
	for _, child := range n.children {
		sb.WriteByte('(')
		child.write(sb)
		sb.WriteByte(')')
	}
}

// Tree holds an optional root node.
type Tree struct {
	root *Node
}

// New creates a tree with a single root node.
func New(rootValue string) *Tree {
	return &Tree{root: &Node{Value: rootValue}}
}

// Root returns the root node, or nil if the tree is empty.
func (t *Tree) Root() *Node {
	return t.root
}

// Empty reports whether the tree has no root.
func (t *Tree) Empty() bool {
	return t.root == nil
}

// Size returns the number of nodes.
func (t *Tree) Size() int {
	if t.root == nil {
		return 0
	}
	return t.root.size()
}

// Nodes returns all nodes in pre-order.
func (t *Tree) Nodes() []*Node {
	if t.root == nil {
		return nil
	}
	var out []*Node
	t.root.preorder(func(n *Node) { out = append(out, n) })
	return out
}

// NodeAt returns the node with pre-order index i.
func (t *Tree) NodeAt(i int) (*Node, error) {
	nodes := t.Nodes()
	if i < 0 || i >= len(nodes) {
		return nil, mutation.Errorf(mutation.IndexOutOfRange, "tree", "node index %d outside [0, %d)", i, len(nodes))
	}
	return nodes[i], nil
}

// String serializes the tree. An empty tree serializes to "".
func (t *Tree) String() string {
	if t.root == nil {
		return ""
	}
	var sb strings.Builder
	t.root.write(&sb)
	return sb.String()
}

func (t *Tree) contains(n *Node) bool {
	for n.parent != nil {
		n = n.parent
	}
	return n == t.root
}

// DuplicateNode deep-copies node with all its descendants and appends the
// copy as the last child of newParent.
func (t *Tree) DuplicateNode(node, newParent *Node) (*Node, error) {
	const op = "tree.duplicate"
	if node == nil || newParent == nil {
		return nil, mutation.Errorf(mutation.UnexpectedError, op, "node and new parent must not be nil")
	}
	if node == t.root {
		return nil, mutation.Errorf(mutation.UsageError, op, "the root node cannot be duplicated")
	}
	if !t.contains(node) || !t.contains(newParent) {
		return nil, mutation.Errorf(mutation.UnexpectedError, op, "node does not belong to this tree")
	}
	dup := node.clone()
	dup.parent = newParent
	newParent.children = append(newParent.children, dup)
	return dup, nil
}

// DeleteNodeByIndex removes the subtree rooted at the node with pre-order
// index i. Index 0 empties the tree.
func (t *Tree) DeleteNodeByIndex(i int) error {
	node, err := t.NodeAt(i)
	if err != nil {
		return err
	}
	if node == t.root {
		t.root = nil
		return nil
	}
	node.detach()
	return nil
}
