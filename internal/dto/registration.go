package dto

import (
	"time"

	"github.com/school-dx/lesson-live-api/internal/models"
)

// TimetableCreateRequest registers a calendar slot. An exact match on
// all four fields returns the existing slot instead of inserting.
type TimetableCreateRequest struct {
	Date      time.Time `json:"date" validate:"required"`
	DayOfWeek string    `json:"day_of_week" validate:"required"`
	Period    int       `json:"period" validate:"required,min=1"`
	Time      string    `json:"time" validate:"required"`
}

// RegisterLessonRequest creates a lesson together with its theme
// registrations.
type RegisterLessonRequest struct {
	ClassID     int64   `json:"class_id" validate:"required"`
	TimetableID int64   `json:"timetable_id" validate:"required"`
	LessonName  string  `json:"lesson_name" validate:"required"`
	ThemeIDs    []int64 `json:"lesson_theme_ids" validate:"required,min=1"`
}

// RegisterLessonResponse reports the created lesson and registrations.
type RegisterLessonResponse struct {
	LessonID        int64   `json:"lesson_id"`
	RegistrationIDs []int64 `json:"lesson_registration_ids"`
}

// CalendarEntry is one row of the registration calendar listing.
type CalendarEntry struct {
	TimetableID int64     `db:"timetable_id" json:"timetable_id"`
	Date        time.Time `db:"date" json:"date"`
	DayOfWeek   string    `db:"day_of_week" json:"day_of_week"`
	Period      int       `db:"period" json:"period"`
	Time        string    `db:"time" json:"time"`
	LessonID    int64     `db:"lesson_id" json:"lesson_id"`
	ClassID     int64     `db:"class_id" json:"class_id"`
	LessonName  string    `db:"lesson_name" json:"lesson_name"`
	Status      int       `db:"lesson_status" json:"lesson_status"`
	ClassName   string    `db:"class_name" json:"class_name"`
	Grade       int       `db:"grade" json:"grade"`
}

// CatalogResponse dumps the authoring catalog used by the registration
// screen.
type CatalogResponse struct {
	Materials []models.Material `json:"materials"`
	Units     []models.Unit     `json:"units"`
	Themes    []models.Theme    `json:"lesson_themes"`
}
