package stmtmock

// registry maps SQL text to the outcomes prepared for it.
// Both the keys and the outcomes of a key keep insertion order.
type registry struct {
	keys    []string
	entries map[string][]*Outcome
}

func newRegistry() *registry {
	return &registry{entries: make(map[string][]*Outcome)}
}

func (r *registry) add(sql string, o *Outcome) {
	list, ok := r.entries[sql]
	if !ok {
		r.keys = append(r.keys, sql)
	}
	r.entries[sql] = append(list, o)
}

func (r *registry) clear() {
	r.keys = nil
	r.entries = make(map[string][]*Outcome)
}

func (r *registry) len() int {
	n := 0
	for _, list := range r.entries {
		n += len(list)
	}
	return n
}
