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

package strategies

import (
	"github.com/AgnopraxLab/mutkit/mutation"
	"github.com/AgnopraxLab/mutkit/mutation/tree"
	"github.com/AgnopraxLab/mutkit/rng"
)

func parseTree(op string, data []byte, minSize int) (*tree.Tree, error) {
	if err := mutation.CheckBuffer(op, data, minSize); err != nil {
		return nil, err
	}
	return tree.Parse(string(data))
}

// DuplicateNode parses the buffer as a bracket tree and duplicates a random
// non-root subtree under its own parent.
type DuplicateNode struct{}

func (*DuplicateNode) Name() string {
	return "radamsa.duplicate-node"
}

func (*DuplicateNode) CanMutate(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	t, err := tree.Parse(string(data))
	return err == nil && t.Size() >= 2
}

func (m *DuplicateNode) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	t, err := parseTree(m.Name(), data, 4)
	if err != nil {
		return mutation.Result{}, err
	}
	size := t.Size()
	if size < 2 {
		return mutation.Result{}, mutation.Errorf(mutation.UsageError, m.Name(), "tree has no node besides the root")
	}
	node, err := t.NodeAt(r.Between(1, size-1))
	if err != nil {
		return mutation.Result{}, err
	}
	if _, err := t.DuplicateNode(node, node.Parent()); err != nil {
		return mutation.Result{}, err
	}
	return mutation.Mutated(terminated([]byte(t.String()))), nil
}

// DeleteNode parses the buffer as a bracket tree and deletes a random
// subtree. Deleting the root leaves only the terminator.
type DeleteNode struct{}

func (*DeleteNode) Name() string {
	return "radamsa.delete-node"
}

func (*DeleteNode) CanMutate(data []byte) bool {
	_, err := tree.Parse(string(data))
	return err == nil
}

func (m *DeleteNode) Mutate(data []byte, r rng.Source) (mutation.Result, error) {
	t, err := parseTree(m.Name(), data, 1)
	if err != nil {
		return mutation.Result{}, err
	}
	if err := t.DeleteNodeByIndex(r.Below(t.Size())); err != nil {
		return mutation.Result{}, err
	}
	return mutation.Mutated(terminated([]byte(t.String()))), nil
}
