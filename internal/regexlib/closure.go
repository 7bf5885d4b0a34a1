package regexlib

import (
	"sort"
	"strconv"
	"strings"
)

// StateSet is a set of NFA node ids kept sorted ascending, so two sets with
// the same members always compare and print the same.
type StateSet []StateID

// Key is the value identity of the set, used to deduplicate DFA states.
func (s StateSet) Key() string {
	var b strings.Builder
	for i, id := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}

func (s StateSet) Contains(id StateID) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	return i < len(s) && s[i] == id
}

func sortedIDs(ids []StateID) StateSet {
	out := append(StateSet(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func setOf(m map[StateID]struct{}) StateSet {
	out := make(StateSet, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EpsilonClosure returns the smallest superset of from that is closed under
// epsilon edges.
func (n *NFA) EpsilonClosure(from ...StateID) StateSet {
	seen := make(map[StateID]struct{}, len(from))
	stack := make([]StateID, 0, len(from))
	for _, id := range from {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range n.arena[id].Edges {
			if !e.Epsilon {
				continue
			}
			if _, ok := seen[e.To]; !ok {
				seen[e.To] = struct{}{}
				stack = append(stack, e.To)
			}
		}
	}
	return setOf(seen)
}

// move collects every target reachable from set over one sym edge.
func (n *NFA) move(set StateSet, sym string) []StateID {
	seen := map[StateID]struct{}{}
	var out []StateID
	for _, id := range set {
		for _, e := range n.arena[id].Edges {
			if e.Epsilon || e.Symbol != sym {
				continue
			}
			if _, ok := seen[e.To]; !ok {
				seen[e.To] = struct{}{}
				out = append(out, e.To)
			}
		}
	}
	return out
}

func (n *NFA) containsFinal(set StateSet) bool {
	for _, id := range set {
		if n.arena[id].Final {
			return true
		}
	}
	return false
}
