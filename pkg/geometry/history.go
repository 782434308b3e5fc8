package geometry

// Record is a single state-history sample.
type Record struct {
	// T is the logical time of the sample in seconds.
	T float64 `json:"t"`

	// Hit reports whether the agent had hit its target at the time of the
	// sample.
	Hit bool `json:"hit"`

	// State is the kinematic state at the time of the sample.
	State State `json:"state"`
}

// History is an append-only log of an agent's state over time. Samples are
// appended in nondecreasing time order; the most recent sample may be
// amended in place but samples are never removed.
type History struct {
	records []Record
}

// NewHistory returns a history seeded with an initial record.
func NewHistory(initial Record) *History {
	return &History{records: []Record{initial}}
}

// Add appends a record to the history.
func (h *History) Add(r Record) {
	h.records = append(h.records, r)
}

// UpdateLast replaces the most recent record.
func (h *History) UpdateLast(r Record) {
	h.records[len(h.records)-1] = r
}

// Back returns the most recent record.
func (h *History) Back() Record {
	return h.records[len(h.records)-1]
}

// Front returns the oldest record.
func (h *History) Front() Record {
	return h.records[0]
}

// Len returns the number of records.
func (h *History) Len() int {
	return len(h.records)
}

// Records returns the full sample log in chronological order. The returned
// slice is shared with the history and must not be mutated.
func (h *History) Records() []Record {
	return h.records
}
