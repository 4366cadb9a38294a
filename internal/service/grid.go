package service

import (
	"sort"

	"github.com/edusuite/timetable-api/internal/models"
)

type cellKey struct {
	Day    int
	Period int
}

// weekGrid is the in-memory day × period matrix one generation or read
// operates on. Days are 1-based (1 = Monday), periods 1-based.
type weekGrid struct {
	classSectionID string
	settings       models.TimetableSettings
	cells          map[cellKey]*models.TimetableSlot
	fresh          map[cellKey]bool
}

// buildWeekGrid materialises placeholders for every working day and period,
// locking the configured lunch period. Existing slots, when provided, overlay
// the placeholders and keep their locked/assigned state.
func buildWeekGrid(classSectionID string, settings models.TimetableSettings, existing []models.TimetableSlot) *weekGrid {
	g := &weekGrid{
		classSectionID: classSectionID,
		settings:       settings,
		cells:          make(map[cellKey]*models.TimetableSlot),
		fresh:          make(map[cellKey]bool),
	}

	for _, day := range settings.WorkingDayNumbers() {
		for period := 1; period <= settings.PeriodsPerDay; period++ {
			slot := &models.TimetableSlot{
				ClassSectionID: classSectionID,
				DayOfWeek:      day,
				Period:         period,
				Source:         models.SlotSourceAuto,
			}
			if period == settings.LunchPeriod {
				slot.Locked = true
			}
			key := cellKey{Day: day, Period: period}
			g.cells[key] = slot
			g.fresh[key] = true
		}
	}

	for i := range existing {
		slot := existing[i]
		key := cellKey{Day: slot.DayOfWeek, Period: slot.Period}
		copied := slot
		g.cells[key] = &copied
		g.fresh[key] = false
	}

	return g
}

func (g *weekGrid) cell(day, period int) *models.TimetableSlot {
	return g.cells[cellKey{Day: day, Period: period}]
}

// openForPlacement reports whether the cell exists, is unlocked and carries
// no subject yet.
func (g *weekGrid) openForPlacement(day, period int) bool {
	slot := g.cell(day, period)
	if slot == nil {
		return false
	}
	return !slot.Locked && !slot.HasSubject()
}

// subjectOnDay reports whether the subject already appears anywhere on the
// given day. Backs the no-repeat-per-day rule.
func (g *weekGrid) subjectOnDay(day int, subjectID string) bool {
	for period := 1; period <= g.settings.PeriodsPerDay; period++ {
		slot := g.cell(day, period)
		if slot != nil && slot.HasSubject() && *slot.SubjectID == subjectID {
			return true
		}
	}
	return false
}

// place writes a subject (and optional teacher) into a cell and marks it as
// newly produced by this run.
func (g *weekGrid) place(day, period int, subjectID string, teacherID *string) {
	key := cellKey{Day: day, Period: period}
	slot := g.cells[key]
	if slot == nil {
		return
	}
	subject := subjectID
	slot.SubjectID = &subject
	slot.TeacherID = teacherID
	slot.Source = models.SlotSourceAuto
	g.fresh[key] = true
}

// newSlots returns the cells this run produced that are worth persisting:
// placed subjects and the locked break placeholders. Untouched empty
// placeholders are not written. Output is ordered by day then period.
func (g *weekGrid) newSlots() []models.TimetableSlot {
	keys := make([]cellKey, 0, len(g.cells))
	for key := range g.cells {
		if !g.fresh[key] {
			continue
		}
		slot := g.cells[key]
		if !slot.HasSubject() && !slot.Locked {
			continue
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Day == keys[j].Day {
			return keys[i].Period < keys[j].Period
		}
		return keys[i].Day < keys[j].Day
	})

	slots := make([]models.TimetableSlot, 0, len(keys))
	for _, key := range keys {
		slots = append(slots, *g.cells[key])
	}
	return slots
}
