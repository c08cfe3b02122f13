package dto

// StartLessonResponse reports the outcome of a lesson start, including
// how many answer slots were provisioned by this invocation.
type StartLessonResponse struct {
	LessonID     int64 `json:"lesson_id"`
	Status       int   `json:"lesson_status"`
	CreatedSlots int   `json:"created_slots"`
}

// LifecycleResponse acknowledges a plain status transition.
type LifecycleResponse struct {
	LessonID int64 `json:"lesson_id"`
	Status   int   `json:"status"`
}

// ExerciseResponse acknowledges an exercise sub-status transition.
type ExerciseResponse struct {
	LessonID       int64 `json:"lesson_id"`
	ThemeID        int64 `json:"lesson_theme_id"`
	ExerciseStatus int   `json:"exercise_status"`
}

// QuestionCountResponse lists the questions registered for a theme.
type QuestionCountResponse struct {
	ThemeID       int64   `json:"lesson_theme_id"`
	QuestionCount int     `json:"question_count"`
	QuestionIDs   []int64 `json:"question_ids"`
}
