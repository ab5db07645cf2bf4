package main

// stringpool.go - the string literal pool: an ordered list of {id, raw
// value} pairs, deduplicated by encounter so that every distinct literal
// appears exactly once in the data section (spec.md §3, §8).

// StringPool assigns each distinct string literal a `str<id>` label in
// first-encounter order.
type StringPool struct {
	values []string
	index  map[string]int
}

// NewStringPool returns an empty pool.
func NewStringPool() *StringPool {
	return &StringPool{index: make(map[string]int)}
}

// Intern returns the id for value, registering it if not already present.
func (p *StringPool) Intern(value string) int {
	if id, ok := p.index[value]; ok {
		return id
	}
	id := len(p.values)
	p.values = append(p.values, value)
	p.index[value] = id
	return id
}

// Entries returns the pool's contents in encounter order.
func (p *StringPool) Entries() []string {
	return p.values
}
