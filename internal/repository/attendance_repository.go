package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/school-dx/lesson-live-api/internal/models"
)

// AttendanceRepository persists per-lesson attendance marks.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert records a student's presence for a lesson, overwriting any
// earlier mark for the same pair.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.Attendance) error {
	const query = `INSERT INTO lesson_attendance (student_id, lesson_id, attendance_status)
VALUES ($1, $2, $3)
ON CONFLICT (student_id, lesson_id) DO UPDATE SET attendance_status = EXCLUDED.attendance_status
RETURNING attendance_id`

	if err := r.db.GetContext(ctx, &record.ID, query,
		record.StudentID, record.LessonID, record.Present); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// ListByLesson returns attendance marks for a lesson.
func (r *AttendanceRepository) ListByLesson(ctx context.Context, lessonID int64) ([]models.Attendance, error) {
	const query = `SELECT attendance_id, student_id, lesson_id, attendance_status
FROM lesson_attendance WHERE lesson_id = $1 ORDER BY student_id`

	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, lessonID); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}
