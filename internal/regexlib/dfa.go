package regexlib

import (
	"context"
	"fmt"
)

type DFAState struct {
	ID    StateID
	Start bool
	Final bool
	// NFA is the backing set of NFA nodes, the state's structural identity.
	NFA  StateSet
	next map[string]StateID
}

// Next returns the target for sym; false means the input is rejected.
func (s *DFAState) Next(sym string) (StateID, bool) {
	to, ok := s.next[sym]
	return to, ok
}

type Transition struct {
	Symbol string
	To     StateID
}

type DFA struct {
	States   []*DFAState // States[i].ID == i
	Start    StateID
	Alphabet *Alphabet
}

// Transitions lists the outgoing edges of state id in alphabet order.
func (d *DFA) Transitions(id StateID) []Transition {
	s := d.States[id]
	out := make([]Transition, 0, len(s.next))
	for _, sym := range d.Alphabet.symbols {
		if to, ok := s.next[sym]; ok {
			out = append(out, Transition{Symbol: sym, To: to})
		}
	}
	return out
}

// Finals returns the ids of all accepting states, ascending.
func (d *DFA) Finals() []StateID {
	var out []StateID
	for _, s := range d.States {
		if s.Final {
			out = append(out, s.ID)
		}
	}
	return out
}

// Accepts runs the automaton over a sequence of symbols. A missing
// transition rejects.
func (d *DFA) Accepts(symbols []string) bool {
	cur := d.States[d.Start]
	for _, sym := range symbols {
		to, ok := cur.next[sym]
		if !ok {
			return false
		}
		cur = d.States[to]
	}
	return cur.Final
}

// SubsetConstruction determinizes n over alpha. States are discovered
// breadth first from the closure of the NFA start and numbered in discovery
// order, so a given NFA and alphabet always yield the same DFA.
func SubsetConstruction(n *NFA, alpha *Alphabet) *DFA {
	d, _ := SubsetConstructionLimit(context.Background(), n, alpha, 0)
	return d
}

// SubsetConstructionLimit is SubsetConstruction with a cancellation check
// between worklist items and a cap on the number of DFA states. A cap of 0
// means unlimited. Exceeding the cap fails with ErrTooManyStates.
func SubsetConstructionLimit(ctx context.Context, n *NFA, alpha *Alphabet, maxStates int) (*DFA, error) {
	d := &DFA{Alphabet: alpha}
	byKey := map[string]*DFAState{}

	add := func(set StateSet) (*DFAState, error) {
		if maxStates > 0 && len(d.States) >= maxStates {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyStates, maxStates)
		}
		s := &DFAState{
			ID:    StateID(len(d.States)),
			Final: n.containsFinal(set),
			NFA:   set,
			next:  map[string]StateID{},
		}
		byKey[set.Key()] = s
		d.States = append(d.States, s)
		return s, nil
	}

	start, err := add(n.EpsilonClosure(n.Start))
	if err != nil {
		return nil, err
	}
	start.Start = true
	d.Start = start.ID

	queue := []*DFAState{start}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := queue[0]
		queue = queue[1:]
		for _, sym := range alpha.symbols {
			moved := n.move(cur.NFA, sym)
			if len(moved) == 0 {
				continue
			}
			clo := n.EpsilonClosure(moved...)
			target, ok := byKey[clo.Key()]
			if !ok {
				if target, err = add(clo); err != nil {
					return nil, err
				}
				queue = append(queue, target)
			}
			cur.next[sym] = target.ID
		}
	}
	return d, nil
}
