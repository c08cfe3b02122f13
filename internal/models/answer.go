package models

import "time"

// AnswerSlot is the per-student-per-question placeholder created in
// bulk when a lesson starts and mutated once when the student submits.
type AnswerSlot struct {
	ID             int64      `db:"lesson_answer_slot_id" json:"lesson_answer_slot_id"`
	StudentID      int64      `db:"student_id" json:"student_id"`
	LessonID       int64      `db:"lesson_id" json:"lesson_id"`
	ThemeID        int64      `db:"lesson_theme_id" json:"lesson_theme_id"`
	QuestionID     int64      `db:"lesson_question_id" json:"lesson_question_id"`
	ChoiceNumber   *int       `db:"choice_number" json:"choice_number"`
	Correctness    *bool      `db:"answer_correctness" json:"answer_correctness"`
	Status         int        `db:"answer_status" json:"answer_status"`
	StartTimestamp *time.Time `db:"answer_start_timestamp" json:"answer_start_timestamp"`
	StartUnix      *int64     `db:"answer_start_unix" json:"answer_start_unix"`
	EndTimestamp   *time.Time `db:"answer_end_timestamp" json:"answer_end_timestamp"`
	EndUnix        *int64     `db:"answer_end_unix" json:"answer_end_unix"`
}
