package models

// Survey captures a student's feedback for a theme within a lesson.
type Survey struct {
	ID                 int64   `db:"lesson_survey_id" json:"lesson_survey_id"`
	StudentID          int64   `db:"student_id" json:"student_id"`
	LessonID           *int64  `db:"lesson_id" json:"lesson_id"`
	ThemeID            *int64  `db:"lesson_theme_id" json:"lesson_theme_id"`
	SurveyStatus       int     `db:"survey_status" json:"survey_status"`
	UnderstandingLevel *int    `db:"understanding_level" json:"understanding_level"`
	DifficultyPoint    *int    `db:"difficulty_point" json:"difficulty_point"`
	StudentComment     *string `db:"student_comment" json:"student_comment"`
}

// Attendance records whether a student was present in a lesson.
type Attendance struct {
	ID        int64 `db:"attendance_id" json:"attendance_id"`
	StudentID int64 `db:"student_id" json:"student_id"`
	LessonID  int64 `db:"lesson_id" json:"lesson_id"`
	Present   bool  `db:"attendance_status" json:"attendance_status"`
}
