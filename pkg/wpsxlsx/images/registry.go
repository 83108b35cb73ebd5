package images

// Registry is the workbook-wide image index. Identical content is stored once
// and indices are 1-based in first-seen order.
type Registry struct {
	index   map[string]int
	records []Record
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Add registers rec and returns its 1-based index. A digest that is already
// registered keeps its original index.
func (r *Registry) Add(rec *Record) int {
	if idx, ok := r.index[rec.Digest]; ok {
		return idx
	}
	r.records = append(r.records, *rec)
	idx := len(r.records)
	r.index[rec.Digest] = idx
	return idx
}

// Lookup returns the index registered for a full digest.
func (r *Registry) Lookup(digest string) (int, bool) {
	idx, ok := r.index[digest]
	return idx, ok
}

// Len returns the number of distinct images.
func (r *Registry) Len() int {
	return len(r.records)
}

// HasImages reports whether any image was registered.
func (r *Registry) HasImages() bool {
	return len(r.records) > 0
}

// Records returns the registered images in index order.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}
