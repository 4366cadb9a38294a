package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edusuite/timetable-api/internal/models"
)

// SlotRepository provides persistence for timetable slots.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository creates a new slot repository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

const slotColumns = `id, class_section_id, day_of_week, period, subject_id, teacher_id, locked, source, created_at, updated_at`

// ListByClassSection returns all slots for a class section ordered by day/period.
func (r *SlotRepository) ListByClassSection(ctx context.Context, classSectionID string) ([]models.TimetableSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM timetable_slots WHERE class_section_id = $1 ORDER BY day_of_week ASC, period ASC`, slotColumns)
	var slots []models.TimetableSlot
	if err := r.db.SelectContext(ctx, &slots, query, classSectionID); err != nil {
		return nil, fmt.Errorf("list slots by class section: %w", err)
	}
	return slots, nil
}

// FindByCell loads the slot occupying one (class section, day, period) cell.
func (r *SlotRepository) FindByCell(ctx context.Context, classSectionID string, dayOfWeek, period int) (*models.TimetableSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM timetable_slots WHERE class_section_id = $1 AND day_of_week = $2 AND period = $3`, slotColumns)
	var slot models.TimetableSlot
	if err := r.db.GetContext(ctx, &slot, query, classSectionID, dayOfWeek, period); err != nil {
		return nil, err
	}
	return &slot, nil
}

// FindTeacherConflicts returns slots held by a teacher at the given day/period
// in any class section other than the one being edited.
func (r *SlotRepository) FindTeacherConflicts(ctx context.Context, teacherID string, dayOfWeek, period int, excludeClassSectionID string) ([]models.TimetableSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM timetable_slots WHERE teacher_id = $1 AND day_of_week = $2 AND period = $3 AND class_section_id <> $4`, slotColumns)
	var slots []models.TimetableSlot
	if err := r.db.SelectContext(ctx, &slots, query, teacherID, dayOfWeek, period, excludeClassSectionID); err != nil {
		return nil, fmt.Errorf("find teacher slot conflicts: %w", err)
	}
	return slots, nil
}

// ListBusyTeacherIDs returns the ids of teachers holding any slot at the given
// day/period across all class sections.
func (r *SlotRepository) ListBusyTeacherIDs(ctx context.Context, dayOfWeek, period int) ([]string, error) {
	const query = `SELECT DISTINCT teacher_id FROM timetable_slots WHERE day_of_week = $1 AND period = $2 AND teacher_id IS NOT NULL`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, dayOfWeek, period); err != nil {
		return nil, fmt.Errorf("list busy teachers: %w", err)
	}
	return ids, nil
}

// CountByTeacherForDay returns per-teacher slot counts for one day of week,
// across all class sections. Used for substitute load ranking.
func (r *SlotRepository) CountByTeacherForDay(ctx context.Context, dayOfWeek int) (map[string]int, error) {
	const query = `SELECT teacher_id, COUNT(*) AS total FROM timetable_slots WHERE day_of_week = $1 AND teacher_id IS NOT NULL GROUP BY teacher_id`
	rows := []struct {
		TeacherID string `db:"teacher_id"`
		Total     int    `db:"total"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, dayOfWeek); err != nil {
		return nil, fmt.Errorf("count slots by teacher for day: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.TeacherID] = row.Total
	}
	return counts, nil
}

// BeginTxx exposes transaction creation for multi-step writes.
func (r *SlotRepository) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, opts)
}

// DeleteByClassSectionTx removes every slot of a class section inside an
// existing transaction, as the first step of a full regeneration.
func (r *SlotRepository) DeleteByClassSectionTx(ctx context.Context, tx *sqlx.Tx, classSectionID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM timetable_slots WHERE class_section_id = $1`, classSectionID); err != nil {
		return fmt.Errorf("delete slots by class section: %w", err)
	}
	return nil
}

// BulkCreateWithTx inserts slots using an existing transaction.
func (r *SlotRepository) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, slots []models.TimetableSlot) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	return r.bulkInsertSlots(ctx, tx, slots)
}

func (r *SlotRepository) bulkInsertSlots(ctx context.Context, exec sqlx.ExtContext, slots []models.TimetableSlot) error {
	now := time.Now().UTC()
	for i := range slots {
		payload := slots[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		payload.UpdatedAt = now

		if _, err := sqlx.NamedExecContext(ctx, exec, `INSERT INTO timetable_slots (id, class_section_id, day_of_week, period, subject_id, teacher_id, locked, source, created_at, updated_at)
			VALUES (:id, :class_section_id, :day_of_week, :period, :subject_id, :teacher_id, :locked, :source, :created_at, :updated_at)
			ON CONFLICT (class_section_id, day_of_week, period)
			DO UPDATE SET subject_id = EXCLUDED.subject_id, teacher_id = EXCLUDED.teacher_id, locked = EXCLUDED.locked, source = EXCLUDED.source, updated_at = EXCLUDED.updated_at`, &payload); err != nil {
			return fmt.Errorf("bulk insert slot: %w", err)
		}
		slots[i] = payload
	}
	return nil
}

// Upsert writes a single slot, replacing any existing row for the same cell.
func (r *SlotRepository) Upsert(ctx context.Context, slot *models.TimetableSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now

	const query = `INSERT INTO timetable_slots (id, class_section_id, day_of_week, period, subject_id, teacher_id, locked, source, created_at, updated_at)
		VALUES (:id, :class_section_id, :day_of_week, :period, :subject_id, :teacher_id, :locked, :source, :created_at, :updated_at)
		ON CONFLICT (class_section_id, day_of_week, period)
		DO UPDATE SET subject_id = EXCLUDED.subject_id, teacher_id = EXCLUDED.teacher_id, locked = EXCLUDED.locked, source = EXCLUDED.source, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}
