package autoconstructor

import (
	"fmt"
	"slices"

	"github.com/DomasM/AutoConstructor/internal/pkg/collection"
)

// rootTypeKeys are the implicit roots of every inheritance chain.
var rootTypeKeys = map[string]bool{
	"System.Object":    true,
	"System.ValueType": true,
}

// Compilation is the immutable set of declarations visible to one pass.
type Compilation struct {
	types []*TypeDecl
	byKey map[string]*TypeDecl
}

// NewCompilation indexes the declarations by key and rejects duplicate keys
// and cyclic inheritance.
func NewCompilation(types ...*TypeDecl) (*Compilation, error) {
	c := &Compilation{
		types: types,
		byKey: make(map[string]*TypeDecl, len(types)),
	}

	for _, decl := range types {
		key := decl.Key()
		if _, ok := c.byKey[key]; ok {
			return nil, fmt.Errorf("duplicate declaration of %s", decl.FullName())
		}
		c.byKey[key] = decl
	}

	if err := c.checkCycles(); err != nil {
		return nil, err
	}

	return c, nil
}

// Types returns the declarations in input order.
func (c *Compilation) Types() []*TypeDecl {
	return c.types
}

// Lookup returns the declaration a type reference points to.
func (c *Compilation) Lookup(t *Type) (*TypeDecl, bool) {
	if t == nil || t.Kind != KindReference && t.Kind != KindValue {
		return nil, false
	}
	decl, ok := c.byKey[t.key()]
	return decl, ok
}

// baseOf returns the declared base of decl, skipping implicit roots.
func (c *Compilation) baseOf(decl *TypeDecl) (*TypeDecl, bool) {
	if decl.Base == nil || rootTypeKeys[decl.Base.key()] {
		return nil, false
	}
	return c.Lookup(decl.Base)
}

// checkCycles runs Kahn's algorithm over the derived -> base edges.
func (c *Compilation) checkCycles() error {
	derivedCount := make(map[*TypeDecl]int, len(c.types))
	for _, decl := range c.types {
		if base, ok := c.baseOf(decl); ok {
			derivedCount[base]++
		}
	}

	queue := collection.NewQueue[*TypeDecl]()
	for _, decl := range c.types {
		if derivedCount[decl] == 0 {
			queue.Push(decl)
		}
	}

	visited := 0
	for decl := range queue.Iter {
		visited++
		if base, ok := c.baseOf(decl); ok {
			derivedCount[base]--
			if derivedCount[base] == 0 {
				queue.Push(base)
			}
		}
	}

	if visited == len(c.types) {
		return nil
	}

	for _, decl := range c.types {
		if derivedCount[decl] > 0 {
			return &CycleError{Chain: c.cycleFrom(decl)}
		}
	}
	return nil
}

// cycleFrom follows base edges from a declaration known to sit on or above a cycle.
func (c *Compilation) cycleFrom(start *TypeDecl) []string {
	var chain []*TypeDecl
	for decl, ok := start, true; ok; decl, ok = c.baseOf(decl) {
		if i := slices.Index(chain, decl); i >= 0 {
			names := make([]string, 0, len(chain)-i+1)
			for _, d := range chain[i:] {
				names = append(names, d.FullName())
			}
			return append(names, decl.FullName())
		}
		chain = append(chain, decl)
	}
	return nil
}
