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

package tree

import "github.com/AgnopraxLab/mutkit/mutation"

const parseOp = "tree.parse"

// frame is one open bracket level. parent receives the nodes flushed at
// this level; node is the value already flushed here, if any.
type frame struct {
	parent *Node
	node   *Node
}

// Parse reads s in a single left-to-right scan. Malformed nesting is a
// ConfigurationError; an empty tree is an UnexpectedError.
func Parse(s string) (*Tree, error) {
	t := &Tree{}
	stack := []frame{{}}
	start := -1

	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		top := &stack[len(stack)-1]
		if top.node != nil {
			return mutation.Errorf(mutation.ConfigurationError, parseOp, "second value at offset %d", start)
		}
		value := s[start:end]
		start = -1
		if top.parent == nil {
			top.node = &Node{Value: value}
			t.root = top.node
		} else {
			top.node = top.parent.AddChild(value)
		}
		return nil
	}

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			if err := flush(i); err != nil {
				return nil, err
			}
			top := stack[len(stack)-1]
			if top.node == nil {
				if len(stack) == 1 {
					return nil, mutation.Errorf(mutation.UnexpectedError, parseOp, "'(' at offset %d has no value", i)
				}
				return nil, mutation.Errorf(mutation.ConfigurationError, parseOp, "'(' at offset %d has no value", i)
			}
			stack = append(stack, frame{parent: top.node})
		case ')':
			if len(stack) == 1 {
				return nil, mutation.Errorf(mutation.ConfigurationError, parseOp, "unmatched ')' at offset %d", i)
			}
			if err := flush(i); err != nil {
				return nil, err
			}
			stack = stack[:len(stack)-1]
		default:
			if stack[len(stack)-1].node != nil {
				return nil, mutation.Errorf(mutation.ConfigurationError, parseOp, "value at offset %d follows a closed child", i)
			}
			if start < 0 {
				start = i
			}
		}
	}
	if len(stack) > 1 {
		return nil, mutation.Errorf(mutation.ConfigurationError, parseOp, "%d unclosed '('", len(stack)-1)
	}
	if err := flush(len(s)); err != nil {
		return nil, err
	}
	if t.root == nil {
		return nil, mutation.Errorf(mutation.UnexpectedError, parseOp, "empty tree")
	}
	return t, nil
}
