package graph

import (
	"fmt"
	"sort"
	"strings"
)

// NodeID identifies a node within one Graph.
type NodeID int

// Position is a node's placement on the canvas. Vertical position is
// semantically meaningful: independent top-level chains compile in
// top-to-bottom order.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the user's scroll offset and zoom.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// EventKind classifies graph events.
type EventKind int

const (
	EventNodeCreate EventKind = iota
	EventNodeDelete
	EventFieldChange
	EventConnect
	EventDisconnect
	EventMove
	EventSelect
	EventDeselect
	EventViewport
	EventClick
	EventToolbox
)

// Cosmetic reports whether the event cannot change program structure.
// Cosmetic events never trigger a resync.
func (k EventKind) Cosmetic() bool {
	switch k {
	case EventSelect, EventDeselect, EventViewport, EventClick, EventToolbox:
		return true
	}
	return false
}

// Event is delivered to subscribers for every graph mutation while
// events are enabled.
type Event struct {
	Kind EventKind
	Node NodeID
}

// Node is one graph node: a type, data fields, named input slots,
// statement-chain links and a canvas position.
type Node struct {
	g          *Graph
	id         NodeID
	typ        Type
	fields     map[string]any
	slots      []string
	inputs     map[string]*Node
	prev, next *Node
	parent     *Node
	parentSlot string
	pos        Position
}

func (n *Node) ID() NodeID         { return n.id }
func (n *Node) Type() Type         { return n.typ }
func (n *Node) Prev() *Node        { return n.prev }
func (n *Node) Next() *Node        { return n.next }
func (n *Node) Parent() *Node      { return n.parent }
func (n *Node) ParentSlot() string { return n.parentSlot }
func (n *Node) Position() Position { return n.pos }

// Slots returns the node's input slot names in order: the type's
// fixed inputs followed by generated count slots.
func (n *Node) Slots() []string {
	out := make([]string, len(n.slots))
	copy(out, n.slots)
	return out
}

// Input returns the child attached to the named slot, or nil.
func (n *Node) Input(slot string) *Node {
	return n.inputs[slot]
}

// Field returns a data field value, or nil when unset.
func (n *Node) Field(name string) any {
	return n.fields[name]
}

// FieldNames returns the set field names, sorted.
func (n *Node) FieldNames() []string {
	out := make([]string, 0, len(n.fields))
	for name := range n.fields {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FieldString returns a field coerced to string.
func (n *Node) FieldString(name string) string {
	v, _ := n.fields[name].(string)
	return v
}

// FieldInt returns a field coerced to int. JSON-restored snapshots
// store numbers as float64; both arrive here.
func (n *Node) FieldInt(name string) int {
	switch v := n.fields[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// FieldBool returns a field coerced to bool.
func (n *Node) FieldBool(name string) bool {
	v, _ := n.fields[name].(bool)
	return v
}

// SetField sets a data field. Setting a registered count field
// regenerates the node's generated slots for that field: new empty
// slots appear, surplus slots are removed and their children
// detached.
func (n *Node) SetField(name string, v any) {
	n.fields[name] = v
	if spec, ok := typeSpecs[n.typ]; ok {
		for _, cs := range spec.counts {
			if cs.Field == name {
				n.regenerate(cs, toInt(v))
				break
			}
		}
	}
	n.g.emit(Event{Kind: EventFieldChange, Node: n.id})
}

func toInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case float64:
		return int(x)
	}
	return 0
}

func (n *Node) regenerate(cs CountSpec, count int) {
	// drop all generated slots for this count field, detaching
	// children beyond the new count
	keep := n.slots[:0]
	for _, s := range n.slots {
		owned, idx := cs.slotIndex(s)
		if !owned {
			keep = append(keep, s)
			continue
		}
		if idx >= count {
			if c := n.inputs[s]; c != nil {
				n.Detach(s)
			}
			delete(n.inputs, s)
		}
	}
	n.slots = keep
	for i := 0; i < count; i++ {
		for _, p := range cs.Prefixes {
			n.slots = append(n.slots, fmt.Sprintf("%s%d", p, i))
		}
	}
}

func (cs CountSpec) slotIndex(slot string) (bool, int) {
	for _, p := range cs.Prefixes {
		rest, ok := strings.CutPrefix(slot, p)
		if !ok || rest == "" {
			continue
		}
		idx := 0
		num := true
		for _, r := range rest {
			if r < '0' || r > '9' {
				num = false
				break
			}
			idx = idx*10 + int(r-'0')
		}
		if num {
			return true, idx
		}
	}
	return false, 0
}

// Attach places child into the named slot of n.
func (n *Node) Attach(slot string, child *Node) {
	if child == nil {
		return
	}
	if old := n.inputs[slot]; old != nil {
		old.parent = nil
		old.parentSlot = ""
	}
	n.inputs[slot] = child
	child.parent = n
	child.parentSlot = slot
	n.g.emit(Event{Kind: EventConnect, Node: child.id})
}

// Detach removes the child in the named slot.
func (n *Node) Detach(slot string) {
	child := n.inputs[slot]
	if child == nil {
		return
	}
	delete(n.inputs, slot)
	child.parent = nil
	child.parentSlot = ""
	n.g.emit(Event{Kind: EventDisconnect, Node: child.id})
}

// SetPosition moves the node. Moves are structural: top-level chain
// order derives from vertical position.
func (n *Node) SetPosition(p Position) {
	n.pos = p
	n.g.emit(Event{Kind: EventMove, Node: n.id})
}

// Chain connects n -> next in the statement chain.
func (n *Node) Chain(next *Node) {
	if next == nil {
		return
	}
	n.next = next
	next.prev = n
	n.g.emit(Event{Kind: EventConnect, Node: next.id})
}

// Unchain severs the link to the next statement.
func (n *Node) Unchain() {
	if n.next == nil {
		return
	}
	id := n.next.id
	n.next.prev = nil
	n.next = nil
	n.g.emit(Event{Kind: EventDisconnect, Node: id})
}

// Graph holds the node set, the viewport, and the event machinery.
// It is confined to the controller's event loop; no locking.
type Graph struct {
	nextID   NodeID
	nodes    map[NodeID]*Node
	order    []*Node
	eventsOn bool
	vp       Viewport
	selected NodeID
	subs     []func(Event)
}

// New returns an empty graph with events enabled.
func New() *Graph {
	return &Graph{
		nextID:   1,
		nodes:    map[NodeID]*Node{},
		eventsOn: true,
		vp:       Viewport{Zoom: 1},
	}
}

// NewNode creates a node of the given type with its type's slots.
func (g *Graph) NewNode(t Type) *Node {
	n := &Node{
		g:      g,
		id:     g.nextID,
		typ:    t,
		fields: map[string]any{},
		inputs: map[string]*Node{},
	}
	g.nextID++
	if spec, ok := typeSpecs[t]; ok {
		n.slots = append(n.slots, spec.inputs...)
	}
	g.nodes[n.id] = n
	g.order = append(g.order, n)
	g.emit(Event{Kind: EventNodeCreate, Node: n.id})
	return n
}

// Node looks up a node by id.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	copy(out, g.order)
	return out
}

// Remove deletes a node, severing its links.
func (g *Graph) Remove(n *Node) {
	if n == nil || g.nodes[n.id] == nil {
		return
	}
	if n.prev != nil {
		n.prev.Unchain()
	}
	n.Unchain()
	if n.parent != nil {
		n.parent.Detach(n.parentSlot)
	}
	for _, s := range n.Slots() {
		n.Detach(s)
	}
	delete(g.nodes, n.id)
	for i, o := range g.order {
		if o == n {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.emit(Event{Kind: EventNodeDelete, Node: n.id})
}

// Clear removes every node.
func (g *Graph) Clear() {
	for _, n := range g.order {
		g.emit(Event{Kind: EventNodeDelete, Node: n.id})
	}
	g.nodes = map[NodeID]*Node{}
	g.order = nil
	g.selected = 0
}

// Roots returns the statement-chain roots: nodes that have neither a
// predecessor nor a containing slot, sorted top-to-bottom then
// left-to-right. This ordering is the documented tie-break for
// otherwise-unordered layouts.
func (g *Graph) Roots() []*Node {
	var roots []*Node
	for _, n := range g.order {
		if n.prev == nil && n.parent == nil {
			roots = append(roots, n)
		}
	}
	sort.SliceStable(roots, func(i, j int) bool {
		if roots[i].pos.Y != roots[j].pos.Y {
			return roots[i].pos.Y < roots[j].pos.Y
		}
		return roots[i].pos.X < roots[j].pos.X
	})
	return roots
}

// FindType returns all nodes of type t in creation order.
func (g *Graph) FindType(t Type) []*Node {
	var out []*Node
	for _, n := range g.order {
		if n.typ == t {
			out = append(out, n)
		}
	}
	return out
}

// EventsEnabled reports whether mutations are being delivered.
func (g *Graph) EventsEnabled() bool { return g.eventsOn }

// SetEventsEnabled gates event delivery. Compilers disable events
// for the duration of a rebuild.
func (g *Graph) SetEventsEnabled(on bool) { g.eventsOn = on }

// Subscribe registers an event listener.
func (g *Graph) Subscribe(f func(Event)) {
	g.subs = append(g.subs, f)
}

func (g *Graph) emit(ev Event) {
	if !g.eventsOn {
		return
	}
	for _, f := range g.subs {
		f(ev)
	}
}

// Viewport returns the current viewport.
func (g *Graph) Viewport() Viewport { return g.vp }

// SetViewport pans/zooms. Cosmetic.
func (g *Graph) SetViewport(vp Viewport) {
	g.vp = vp
	g.emit(Event{Kind: EventViewport})
}

// Select marks a node selected and emits a selection event.
func (g *Graph) Select(id NodeID) {
	g.selected = id
	g.emit(Event{Kind: EventSelect, Node: id})
}

// Deselect clears the selection.
func (g *Graph) Deselect() {
	g.selected = 0
	g.emit(Event{Kind: EventDeselect})
}

// Selected returns the selected node id, 0 for none.
func (g *Graph) Selected() NodeID { return g.selected }
