package story

import (
	"errors"
	"fmt"
	"log/slog"
)

// maxRedirectChain bounds background-redirect chains. Content graphs have
// no business chaining this many routing nodes; hitting the cap means the
// graph redirects in a cycle.
const maxRedirectChain = 64

var (
	ErrUnknownNode    = errors.New("unknown story node")
	ErrCyclicRedirect = errors.New("background redirect chain exceeded limit")
)

// PlaceholderID is the id of the synthetic dead-end node returned for
// unknown ids so a broken graph degrades gracefully instead of crashing
// the session.
const PlaceholderID = -1000

var placeholderNode = &Node{
	ID:   PlaceholderID,
	Text: "The path ahead crumbles into nothing. This part of the story has not been written.",
	Kind: KindDoom,
}

// Registry is the read-only story graph, built once at startup and shared
// by reference across sessions and simulation copies.
type Registry struct {
	nodes map[int]*Node
}

// NewRegistry indexes the given nodes. Duplicate ids are a content defect.
func NewRegistry(nodes []*Node) (*Registry, error) {
	r := &Registry{nodes: make(map[int]*Node, len(nodes))}
	for _, n := range nodes {
		if _, ok := r.nodes[n.ID]; ok {
			return nil, fmt.Errorf("duplicate story node id %d", n.ID)
		}
		r.nodes[n.ID] = n
	}
	return r, nil
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// FindNode resolves an id to its node. Unknown ids return the placeholder
// dead-end node along with ErrUnknownNode; callers that only care about
// having something to show can ignore the error.
func (r *Registry) FindNode(id int) (*Node, error) {
	n, ok := r.nodes[id]
	if !ok {
		slog.Warn("story node not found, substituting placeholder", "node", id)
		return placeholderNode, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return n, nil
}

// ResolveBackground follows the node's background-redirect hooks until a
// node with no pending redirect is reached. Background nodes are pure
// routing logic with no player-visible text, so redirects never mutate
// state on their own; their OnEvent still belongs to the caller.
func (r *Registry) ResolveBackground(node *Node, adv Adventurer) (*Node, error) {
	for i := 0; ; i++ {
		if i >= maxRedirectChain {
			return nil, fmt.Errorf("%w: starting at node %d", ErrCyclicRedirect, node.ID)
		}
		if node.OnBackground == nil {
			return node, nil
		}
		dest, redirect := node.OnBackground(adv)
		if !redirect {
			return node, nil
		}
		next, err := r.FindNode(dest)
		if err != nil {
			return next, nil
		}
		node = next
	}
}

// SimulateFuture previews the node the player would arrive at, running the
// background chain and entry event against a copy of the state. The live
// state is never touched; the copy is discarded with the call.
func (r *Registry) SimulateFuture(node *Node, adv Adventurer) (string, error) {
	ghost := adv.Clone()

	resolved, err := r.ResolveBackground(node, ghost)
	if err != nil {
		return "", err
	}
	if resolved.OnEvent != nil {
		resolved.OnEvent(ghost)
	}
	return resolved.Text, nil
}
