// Package style injects scoped component stylesheets into a document and
// removes them when components go away.
package style

// Registry is a set of style nodes keyed by id, normally the head of a host
// document. It is shared by every mounted component using it.
type Registry interface {
	// Has reports whether node with id exists.
	Has(id string) bool
	// Upsert creates node with id or replaces its text.
	Upsert(id, text string)
	// Remove deletes node with id if present.
	Remove(id string)
}

// MemoryRegistry keeps style nodes in memory in insertion order.
// NOTE: not to be used concurrently.
type MemoryRegistry struct {
	ids       []string
	texts     map[string]string
	mutations int
}

// NewMemoryRegistry creates empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{texts: make(map[string]string)}
}

func (r *MemoryRegistry) Has(id string) bool {
	_, ok := r.texts[id]
	return ok
}

func (r *MemoryRegistry) Upsert(id, text string) {
	if _, ok := r.texts[id]; !ok {
		r.ids = append(r.ids, id)
	}
	r.texts[id] = text
	r.mutations++
}

func (r *MemoryRegistry) Remove(id string) {
	if _, ok := r.texts[id]; !ok {
		return
	}
	delete(r.texts, id)
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	r.mutations++
}

// IDs returns ids of present nodes in insertion order.
func (r *MemoryRegistry) IDs() []string {
	return append([]string(nil), r.ids...)
}

// Text returns text of node with id.
func (r *MemoryRegistry) Text(id string) (string, bool) {
	text, ok := r.texts[id]
	return text, ok
}

// Mutations returns number of changes made to the registry so far.
func (r *MemoryRegistry) Mutations() int {
	return r.mutations
}
