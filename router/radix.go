// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"fmt"
	"net/url"
	"strings"
)

// node is one segment trie node. At most one parameter edge and one
// wildcard edge may exist at a node, literal edges are keyed by segment
// text, and matching prefers literal > named > wildcard, applied left to
// right per segment.
type node struct {
	literal  map[string]*node // exact-segment children
	param    *paramEdge       // single named-capture child, if any
	wildcard *wildcardEdge    // single trailing-wildcard child, if any

	handlers []HandlerFunc // non-nil at a node that terminates a registered route
	pattern  string        // the pattern as registered, for routeTemplate/logging
}

type paramEdge struct {
	name string
	next *node
}

type wildcardEdge struct {
	name string
	next *node // next.handlers holds the terminal handlers; wildcard has no further children
}

func newNode() *node { return &node{} }

// segment describes one piece of a compiled PathPattern.
type segmentKind uint8

const (
	segLiteral segmentKind = iota
	segParam
	segWildcard
)

type patternSegment struct {
	kind segmentKind
	text string // literal text, or parameter/wildcard name
}

// splitPattern parses a registered pattern into segments. Empty segments
// produced by "//" are preserved.
func splitPattern(pattern string) ([]patternSegment, error) {
	pattern = strings.TrimPrefix(pattern, "/")
	var raw []string
	if pattern == "" {
		raw = nil
	} else {
		raw = strings.Split(pattern, "/")
	}

	segs := make([]patternSegment, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		switch {
		case strings.HasPrefix(r, "{") && strings.HasSuffix(r, "}") && len(r) > 2:
			name := r[1 : len(r)-1]
			if seen[name] {
				return nil, fmt.Errorf("%w: %q in pattern %q", ErrDuplicateParamName, name, pattern)
			}
			seen[name] = true
			segs = append(segs, patternSegment{kind: segParam, text: name})
		case strings.HasPrefix(r, "*"):
			if i != len(raw)-1 {
				return nil, fmt.Errorf("router: wildcard segment must be last in pattern %q", pattern)
			}
			name := strings.TrimPrefix(r, "*")
			if name == "" {
				name = "wildcard"
			}
			segs = append(segs, patternSegment{kind: segWildcard, text: name})
		default:
			segs = append(segs, patternSegment{kind: segLiteral, text: r})
		}
	}
	return segs, nil
}

// insert adds pattern's handlers to the trie rooted at n. It returns
// ErrDuplicateRoute if an identical pattern (same segments and captures)
// already terminates at the resulting node.
func (n *node) insert(pattern string, handlers []HandlerFunc) error {
	segs, err := splitPattern(pattern)
	if err != nil {
		return err
	}

	cur := n
	for _, s := range segs {
		switch s.kind {
		case segLiteral:
			if cur.literal == nil {
				cur.literal = make(map[string]*node)
			}
			child, ok := cur.literal[s.text]
			if !ok {
				child = newNode()
				cur.literal[s.text] = child
			}
			cur = child
		case segParam:
			if cur.param == nil {
				cur.param = &paramEdge{name: s.text, next: newNode()}
			} else if cur.param.name != s.text {
				return fmt.Errorf("router: conflicting parameter name %q vs %q at same position in pattern %q",
					cur.param.name, s.text, pattern)
			}
			cur = cur.param.next
		case segWildcard:
			if cur.wildcard == nil {
				cur.wildcard = &wildcardEdge{name: s.text, next: newNode()}
			}
			cur = cur.wildcard.next
		}
	}

	if cur.handlers != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, pattern)
	}
	cur.handlers = handlers
	cur.pattern = pattern
	return nil
}

// match walks the trie against path segments, backtracking across
// literal/param/wildcard alternatives so the highest-precedence match that
// actually terminates in a route always wins.
func (n *node) match(segs []string, idx int, params *[]PathParam) (*node, bool) {
	if idx == len(segs) {
		if n.handlers != nil {
			return n, true
		}
		// A wildcard with an empty remainder is still a valid match.
		if n.wildcard != nil && n.wildcard.next.handlers != nil {
			*params = append(*params, PathParam{Name: n.wildcard.name, Value: ""})
			return n.wildcard.next, true
		}
		return nil, false
	}

	raw := segs[idx]
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}

	// Literal > named > wildcard, left to right.
	if n.literal != nil {
		if child, ok := n.literal[decoded]; ok {
			savedLen := len(*params)
			if res, ok := child.match(segs, idx+1, params); ok {
				return res, true
			}
			*params = (*params)[:savedLen]
		}
	}

	if n.param != nil {
		savedLen := len(*params)
		*params = append(*params, PathParam{Name: n.param.name, Value: decoded})
		if res, ok := n.param.next.match(segs, idx+1, params); ok {
			return res, true
		}
		*params = (*params)[:savedLen]
	}

	if n.wildcard != nil {
		remainder := strings.Join(segs[idx:], "/")
		decodedRemainder, err := url.PathUnescape(remainder)
		if err != nil {
			decodedRemainder = remainder
		}
		if n.wildcard.next.handlers != nil {
			*params = append(*params, PathParam{Name: n.wildcard.name, Value: decodedRemainder})
			return n.wildcard.next, true
		}
	}

	return nil, false
}

// walk visits every terminal node reachable from n, depth-first, calling fn
// with each route's registered pattern and handler chain. Used by Mount to
// re-host a sub-router's routes under a new prefix.
func (n *node) walk(fn func(pattern string, handlers []HandlerFunc)) {
	if n.handlers != nil {
		fn(n.pattern, n.handlers)
	}
	for _, child := range n.literal {
		child.walk(fn)
	}
	if n.param != nil {
		n.param.next.walk(fn)
	}
	if n.wildcard != nil {
		n.wildcard.next.walk(fn)
	}
}

// lookup splits a raw request path and matches it against the trie. The
// path's segmentation (on "/") happens before percent-decoding so a literal
// "%2F" inside a path parameter never accidentally introduces a segment
// boundary.
func (n *node) lookup(path string) ([]HandlerFunc, string, []PathParam, bool) {
	trimmed := strings.TrimPrefix(path, "/")
	var segs []string
	if trimmed == "" {
		segs = nil
	} else {
		segs = strings.Split(trimmed, "/")
	}

	params := make([]PathParam, 0, 4)
	result, ok := n.match(segs, 0, &params)
	if !ok {
		return nil, "", nil, false
	}
	return result.handlers, result.pattern, params, true
}
