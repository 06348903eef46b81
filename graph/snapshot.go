package graph

import (
	"encoding/json"
	"fmt"
	"sort"

	jsonpatch "github.com/evanphx/json-patch"
)

// nodeSnap is the JSON shape of one node in a snapshot.
type nodeSnap struct {
	ID     NodeID            `json:"id"`
	Type   Type              `json:"type"`
	Fields map[string]any    `json:"fields,omitempty"`
	Slots  []string          `json:"slots,omitempty"`
	Inputs map[string]NodeID `json:"inputs,omitempty"`
	Next   NodeID            `json:"next,omitempty"`
	Pos    Position          `json:"pos"`
}

type snapshot struct {
	Viewport Viewport   `json:"viewport"`
	Nodes    []nodeSnap `json:"nodes"`
}

// Snapshot renders the whole graph as a JSON document: nodes, fields,
// slot wiring, chain links, positions and the viewport.
func (g *Graph) Snapshot() ([]byte, error) {
	snap := snapshot{Viewport: g.vp}
	for _, n := range g.order {
		ns := nodeSnap{
			ID:   n.id,
			Type: n.typ,
			Pos:  n.pos,
		}
		if len(n.fields) > 0 {
			ns.Fields = n.fields
		}
		if len(n.slots) > 0 {
			ns.Slots = n.Slots()
		}
		if len(n.inputs) > 0 {
			ns.Inputs = map[string]NodeID{}
			for s, c := range n.inputs {
				ns.Inputs[s] = c.id
			}
		}
		if n.next != nil {
			ns.Next = n.next.id
		}
		snap.Nodes = append(snap.Nodes, ns)
	}
	sort.Slice(snap.Nodes, func(i, j int) bool { return snap.Nodes[i].ID < snap.Nodes[j].ID })
	return json.MarshalIndent(&snap, "", "  ")
}

// Restore replaces the graph's content with a snapshot. Events are
// suppressed for the duration; callers resync explicitly afterwards.
// A snapshot that fails validation leaves the graph unchanged.
func (g *Graph) Restore(d []byte) error {
	snap := snapshot{}
	if err := json.Unmarshal(d, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	// Build and check the whole snapshot off to the side first. The
	// live graph is only replaced once nothing can fail, so a bad
	// document never destroys current content.
	byID := make(map[NodeID]*Node, len(snap.Nodes))
	order := make([]*Node, 0, len(snap.Nodes))
	maxID := NodeID(0)
	for i := range snap.Nodes {
		ns := &snap.Nodes[i]
		if !KnownType(ns.Type) {
			return fmt.Errorf("%w: unknown node type %q", ErrBadSnapshot, ns.Type)
		}
		if byID[ns.ID] != nil {
			return fmt.Errorf("%w: duplicate node id %d", ErrBadSnapshot, ns.ID)
		}
		n := &Node{
			g:      g,
			id:     ns.ID,
			typ:    ns.Type,
			fields: map[string]any{},
			inputs: map[string]*Node{},
			pos:    ns.Pos,
		}
		if spec, ok := typeSpecs[ns.Type]; ok {
			n.slots = append(n.slots, spec.inputs...)
		}
		if ns.ID > maxID {
			maxID = ns.ID
		}
		for k, v := range ns.Fields {
			n.fields[k] = v
		}
		if len(ns.Slots) > 0 {
			n.slots = append([]string(nil), ns.Slots...)
		}
		order = append(order, n)
		byID[n.id] = n
	}
	for i := range snap.Nodes {
		ns := &snap.Nodes[i]
		for slot, cid := range ns.Inputs {
			if byID[cid] == nil {
				return fmt.Errorf("%w: node %d slot %s references missing node %d", ErrBadSnapshot, ns.ID, slot, cid)
			}
		}
		if ns.Next != 0 && byID[ns.Next] == nil {
			return fmt.Errorf("%w: node %d chained to missing node %d", ErrBadSnapshot, ns.ID, ns.Next)
		}
	}

	on := g.eventsOn
	g.eventsOn = false
	defer func() { g.eventsOn = on }()

	g.Clear()
	g.vp = snap.Viewport
	g.nextID = maxID + 1
	for _, n := range order {
		g.nodes[n.id] = n
		g.order = append(g.order, n)
	}
	for i := range snap.Nodes {
		ns := &snap.Nodes[i]
		n := byID[ns.ID]
		for slot, cid := range ns.Inputs {
			n.Attach(slot, byID[cid])
		}
		if ns.Next != 0 {
			n.Chain(byID[ns.Next])
		}
	}
	return nil
}

// ApplyMergePatch applies an RFC 7386 merge patch to the snapshot of
// the graph and restores the patched document. This is how scripted
// (headless) graph edits are expressed.
func (g *Graph) ApplyMergePatch(patch []byte) error {
	cur, err := g.Snapshot()
	if err != nil {
		return err
	}
	merged, err := jsonpatch.MergePatch(cur, patch)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	return g.Restore(merged)
}
