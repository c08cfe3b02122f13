package dto

import "time"

// AnswerUpdateRequest is a partial update for one answer slot. Absent
// fields leave the stored values untouched. When a wall-clock timestamp
// is supplied for an edge it wins over the matching unix field and the
// unix value is derived from it.
type AnswerUpdateRequest struct {
	ChoiceNumber   *int       `json:"choice_number"`
	Correctness    *bool      `json:"answer_correctness"`
	Status         *int       `json:"answer_status" validate:"omitempty,oneof=1 2 3"`
	StartTimestamp *time.Time `json:"answer_start_timestamp"`
	StartUnix      *int64     `json:"answer_start_unix"`
	EndTimestamp   *time.Time `json:"answer_end_timestamp"`
	EndUnix        *int64     `json:"answer_end_unix"`
}

// DashboardAnswer is one row of the live teacher dashboard listing.
type DashboardAnswer struct {
	SlotID        int64  `db:"lesson_answer_slot_id" json:"lesson_answer_slot_id"`
	StudentID     int64  `db:"student_id" json:"student_id"`
	LessonID      int64  `db:"lesson_id" json:"lesson_id"`
	QuestionID    int64  `db:"lesson_question_id" json:"lesson_question_id"`
	QuestionLabel string `db:"question_label" json:"question_label"`
	Correctness   *bool  `db:"answer_correctness" json:"answer_correctness"`
	Status        int    `db:"answer_status" json:"answer_status"`
	StartUnix     *int64 `db:"answer_start_unix" json:"answer_start_unix"`
	EndUnix       *int64 `db:"answer_end_unix" json:"answer_end_unix"`
}

// RealtimeAnswerFilter identifies a single slot by its logical key.
type RealtimeAnswerFilter struct {
	ThemeID    int64
	StudentID  int64
	QuestionID int64
}

// ClearAnswersResponse reports an administrative bulk clear.
type ClearAnswersResponse struct {
	LessonID    int64 `json:"lesson_id"`
	DeletedRows int64 `json:"deleted_rows"`
}
