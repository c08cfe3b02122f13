package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/school-dx/lesson-live-api/internal/models"
)

// RosterRepository persists classes and students.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository constructs the repository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// ListClasses returns every class ordered by id.
func (r *RosterRepository) ListClasses(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes,
		`SELECT class_id, class_name, grade, teacher, academic_year FROM classes ORDER BY class_id`); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindClassByID fetches a class; returns nil when it does not exist.
func (r *RosterRepository) FindClassByID(ctx context.Context, id int64) (*models.Class, error) {
	var class models.Class
	if err := r.db.GetContext(ctx, &class,
		`SELECT class_id, class_name, grade, teacher, academic_year FROM classes WHERE class_id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get class: %w", err)
	}
	return &class, nil
}

// CreateClass inserts a class and fills in the generated id.
func (r *RosterRepository) CreateClass(ctx context.Context, class *models.Class) error {
	const query = `INSERT INTO classes (class_name, grade, teacher, academic_year)
VALUES ($1, $2, $3, $4) RETURNING class_id`

	if err := r.db.GetContext(ctx, &class.ID, query,
		class.ClassName, class.Grade, class.Teacher, class.AcademicYear); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// ListStudentsByClass returns a class roster ordered by student number.
func (r *RosterRepository) ListStudentsByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	const query = `SELECT student_id, class_id, student_number, name, mail_address, password_hash, enrollment_year
FROM students WHERE class_id = $1 ORDER BY student_number`

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindStudentByID fetches a student; returns nil when missing.
func (r *RosterRepository) FindStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	const query = `SELECT student_id, class_id, student_number, name, mail_address, password_hash, enrollment_year
FROM students WHERE student_id = $1`

	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &student, nil
}

// FindStudentByMail fetches a student by unique mail address.
func (r *RosterRepository) FindStudentByMail(ctx context.Context, mail string) (*models.Student, error) {
	const query = `SELECT student_id, class_id, student_number, name, mail_address, password_hash, enrollment_year
FROM students WHERE mail_address = $1`

	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, mail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by mail: %w", err)
	}
	return &student, nil
}

// CreateStudent inserts a student and fills in the generated id.
func (r *RosterRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (class_id, student_number, name, mail_address, password_hash, enrollment_year)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING student_id`

	if err := r.db.GetContext(ctx, &student.ID, query,
		student.ClassID, student.StudentNumber, student.Name,
		student.MailAddress, student.PasswordHash, student.EnrollmentYear); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}
