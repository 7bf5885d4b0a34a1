package regexlib

import "fmt"

// StateID addresses a node inside one automaton. NFA and DFA ids are
// assigned by independent per-build counters.
type StateID int

// Edge is one element of a node's transition relation. A node may hold any
// number of edges, including several to the same target with different
// labels.
type Edge struct {
	Epsilon bool
	Symbol  string // empty when Epsilon
	To      StateID
}

func (e Edge) Label() string {
	if e.Epsilon {
		return "ε"
	}
	return e.Symbol
}

type NFANode struct {
	ID    StateID
	Start bool
	Final bool
	Edges []Edge
}

// NFA is a finished Thompson machine. Nodes live in an arena indexed by id;
// ids of nodes absorbed by concatenation stay allocated but are not part of
// the machine.
type NFA struct {
	arena []NFANode
	live  []StateID
	Start StateID
	Final StateID
}

// Node returns the arena node for id.
func (n *NFA) Node(id StateID) *NFANode { return &n.arena[id] }

// Nodes returns the machine's nodes ordered by id.
func (n *NFA) Nodes() []*NFANode {
	out := make([]*NFANode, 0, len(n.live))
	for _, id := range n.live {
		out = append(out, &n.arena[id])
	}
	return out
}

func (n *NFA) Len() int { return len(n.live) }

// ---------------------------------------------------------------------------
// Thompson construction

// machine is a working fragment: the ids it owns plus its boundary nodes.
type machine struct {
	nodes []StateID
	start StateID
	final StateID
}

// nfaBuilder owns the arena and the id counter for exactly one build.
type nfaBuilder struct {
	arena []NFANode
}

func (b *nfaBuilder) newNode(start, final bool) StateID {
	id := StateID(len(b.arena))
	b.arena = append(b.arena, NFANode{ID: id, Start: start, Final: final})
	return id
}

func (b *nfaBuilder) connect(from, to StateID, sym string) {
	b.arena[from].Edges = append(b.arena[from].Edges, Edge{Symbol: sym, To: to})
}

func (b *nfaBuilder) epsilon(from, to StateID) {
	b.arena[from].Edges = append(b.arena[from].Edges, Edge{Epsilon: true, To: to})
}

func (b *nfaBuilder) clearBoundary(m machine) {
	b.arena[m.start].Start = false
	b.arena[m.final].Final = false
}

func (b *nfaBuilder) literal(sym string) machine {
	s := b.newNode(true, false)
	f := b.newNode(false, true)
	b.connect(s, f, sym)
	return machine{nodes: []StateID{s, f}, start: s, final: f}
}

func (b *nfaBuilder) closure(ops []machine) machine {
	m := ops[0]
	s := b.newNode(true, false)
	f := b.newNode(false, true)
	b.epsilon(s, f)
	b.epsilon(s, m.start)
	b.epsilon(m.final, f)
	b.epsilon(m.final, m.start)
	b.clearBoundary(m)
	nodes := append([]StateID{s}, m.nodes...)
	return machine{nodes: append(nodes, f), start: s, final: f}
}

func (b *nfaBuilder) union(ops []machine) machine {
	m1, m2 := ops[0], ops[1]
	s := b.newNode(true, false)
	f := b.newNode(false, true)
	b.epsilon(s, m1.start)
	b.epsilon(s, m2.start)
	b.epsilon(m1.final, f)
	b.epsilon(m2.final, f)
	b.clearBoundary(m1)
	b.clearBoundary(m2)
	nodes := make([]StateID, 0, len(m1.nodes)+len(m2.nodes)+2)
	nodes = append(nodes, s)
	nodes = append(nodes, m1.nodes...)
	nodes = append(nodes, m2.nodes...)
	return machine{nodes: append(nodes, f), start: s, final: f}
}

// concat splices m2 onto m1: m2.start's edges move to m1.final and m2.start
// is dropped from the machine.
func (b *nfaBuilder) concat(ops []machine) machine {
	m1, m2 := ops[0], ops[1]
	b.arena[m1.final].Edges = append(b.arena[m1.final].Edges, b.arena[m2.start].Edges...)
	b.arena[m1.final].Final = false
	b.arena[m2.start].Start = false
	b.arena[m2.start].Edges = nil
	for _, id := range m2.nodes {
		if id != m2.start {
			m1.nodes = append(m1.nodes, id)
		}
	}
	m1.final = m2.final
	return m1
}

// thompsonRule describes one operator: how many operands it pops and how the
// operands, in push order, are combined.
type thompsonRule struct {
	arity int
	build func(*nfaBuilder, []machine) machine
}

var thompsonRules = map[TokenKind]thompsonRule{
	TokStar:   {arity: 1, build: (*nfaBuilder).closure},
	TokUnion:  {arity: 2, build: (*nfaBuilder).union},
	TokConcat: {arity: 2, build: (*nfaBuilder).concat},
}

// BuildNFA evaluates a postfix token stream against a stack of machines.
func BuildNFA(postfix []Token) (*NFA, error) {
	b := &nfaBuilder{}
	var stack []machine
	for _, t := range postfix {
		if t.Kind == TokSymbol {
			stack = append(stack, b.literal(t.Text))
			continue
		}
		rule, ok := thompsonRules[t.Kind]
		if !ok {
			return nil, syntaxErr(ErrMalformedExpression, t.Offset, "unexpected %q in postfix stream", t.Text)
		}
		if len(stack) < rule.arity {
			return nil, syntaxErr(ErrMalformedExpression, t.Offset, "operator %q needs %d operand(s), have %d", t.Text, rule.arity, len(stack))
		}
		ops := append([]machine(nil), stack[len(stack)-rule.arity:]...)
		stack = append(stack[:len(stack)-rule.arity], rule.build(b, ops))
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d machines left after evaluation", ErrMalformedExpression, len(stack))
	}
	m := stack[0]
	nfa := &NFA{arena: b.arena, Start: m.start, Final: m.final}
	nfa.live = sortedIDs(m.nodes)
	return nfa, nil
}
