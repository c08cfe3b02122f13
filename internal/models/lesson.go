package models

import "time"

// TimetableSlot is a calendar position a lesson can be scheduled into.
type TimetableSlot struct {
	ID        int64     `db:"timetable_id" json:"timetable_id"`
	Date      time.Time `db:"date" json:"date"`
	DayOfWeek string    `db:"day_of_week" json:"day_of_week"`
	Period    int       `db:"period" json:"period"`
	Time      string    `db:"time" json:"time"`
}

// Lesson identifies a scheduled class session. Status is mutated only
// by the lifecycle service.
type Lesson struct {
	ID          int64  `db:"lesson_id" json:"lesson_id"`
	ClassID     int64  `db:"class_id" json:"class_id"`
	TimetableID int64  `db:"timetable_id" json:"timetable_id"`
	LessonName  string `db:"lesson_name" json:"lesson_name"`
	Status      int    `db:"lesson_status" json:"lesson_status"`
}

// ThemeRegistration links a lesson to a theme and carries the exercise
// sub-status for that theme within the lesson.
type ThemeRegistration struct {
	ID             int64 `db:"lesson_registration_id" json:"lesson_registration_id"`
	LessonID       int64 `db:"lesson_id" json:"lesson_id"`
	ThemeID        int64 `db:"lesson_theme_id" json:"lesson_theme_id"`
	ExerciseStatus int   `db:"exercise_status" json:"exercise_status"`
}
