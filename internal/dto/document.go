package dto

import "retodfa/internal/regexlib"

// Document is the wire view of one conversion, shared by the HTTP API, the
// MCP tools, the JSON output of the CLI and the cache.
type Document struct {
	Alphabet   []string `json:"alphabet" jsonschema_description:"Alphabet symbols in declaration order"`
	Expression string   `json:"expression" jsonschema_description:"Expression with whitespace removed"`
	Expanded   string   `json:"expanded" jsonschema_description:"Expression with explicit concatenation"`
	Postfix    string   `json:"postfix" jsonschema_description:"Postfix form used to build the NFA"`
	NFAStates  int      `json:"nfa_states" jsonschema_description:"Number of Thompson NFA states"`
	Start      int      `json:"start" jsonschema_description:"Id of the DFA start state"`
	Finals     []int    `json:"finals" jsonschema_description:"Ids of accepting DFA states"`
	States     []State  `json:"states" jsonschema_description:"DFA states ordered by id"`
}

type State struct {
	ID          int          `json:"id"`
	Start       bool         `json:"start"`
	Final       bool         `json:"final"`
	NFA         []int        `json:"nfa"`
	Transitions []Transition `json:"transitions"`
}

type Transition struct {
	Symbol string `json:"symbol"`
	To     int    `json:"to"`
}

type MatchResult struct {
	Input    string `json:"input"`
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// FromResult converts a finished conversion into its wire form.
func FromResult(r *regexlib.Result) *Document {
	d := r.DFA
	doc := &Document{
		Alphabet:   r.Alphabet.Symbols(),
		Expression: r.Expression,
		Expanded:   r.ExpandedString(),
		Postfix:    r.PostfixString(),
		NFAStates:  r.NFA.Len(),
		Start:      int(d.Start),
		Finals:     []int{},
		States:     make([]State, 0, len(d.States)),
	}
	for _, id := range d.Finals() {
		doc.Finals = append(doc.Finals, int(id))
	}
	for _, s := range d.States {
		st := State{
			ID:          int(s.ID),
			Start:       s.Start,
			Final:       s.Final,
			NFA:         make([]int, 0, len(s.NFA)),
			Transitions: []Transition{},
		}
		for _, id := range s.NFA {
			st.NFA = append(st.NFA, int(id))
		}
		for _, tr := range d.Transitions(s.ID) {
			st.Transitions = append(st.Transitions, Transition{Symbol: tr.Symbol, To: int(tr.To)})
		}
		doc.States = append(doc.States, st)
	}
	return doc
}

// Accepts runs the document's transition table over symbols. It gives the
// same answer as the DFA the document was built from.
func (doc *Document) Accepts(symbols []string) bool {
	if doc.Start < 0 || doc.Start >= len(doc.States) {
		return false
	}
	cur := doc.States[doc.Start]
next:
	for _, sym := range symbols {
		for _, tr := range cur.Transitions {
			if tr.Symbol == sym {
				if tr.To < 0 || tr.To >= len(doc.States) {
					return false
				}
				cur = doc.States[tr.To]
				continue next
			}
		}
		return false
	}
	return cur.Final
}
