package service

// loadTracker counts periods assigned per teacher per day within a single
// generation run. It is created fresh for every Generate call and never
// shared or persisted.
type loadTracker struct {
	counts map[int]map[string]int
}

func newLoadTracker() *loadTracker {
	return &loadTracker{counts: make(map[int]map[string]int)}
}

// CurrentLoad returns the number of periods already assigned to the teacher
// on the given day during this run.
func (t *loadTracker) CurrentLoad(day int, teacherID string) int {
	if t.counts[day] == nil {
		return 0
	}
	return t.counts[day][teacherID]
}

// RecordAssignment increments the teacher's load for the day by one period.
func (t *loadTracker) RecordAssignment(day int, teacherID string) {
	if t.counts[day] == nil {
		t.counts[day] = make(map[string]int)
	}
	t.counts[day][teacherID]++
}
