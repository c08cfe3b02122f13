package dto

// LessonThemeBlock is one registered theme with its content placement,
// used by the lesson information screen.
type LessonThemeBlock struct {
	RegistrationID int64  `db:"lesson_registration_id" json:"lesson_registration_id"`
	ThemeID        int64  `db:"lesson_theme_id" json:"lesson_theme_id"`
	ThemeName      string `db:"lesson_theme_name" json:"lesson_theme_name"`
	UnitID         int64  `db:"unit_id" json:"unit_id"`
	PartName       string `db:"part_name" json:"part_name"`
	ChapterName    string `db:"chapter_name" json:"chapter_name"`
	UnitName       string `db:"unit_name" json:"unit_name"`
	MaterialID     int64  `db:"material_id" json:"material_id"`
	MaterialName   string `db:"material_name" json:"material_name"`
}

// LessonInformationResponse describes a lesson going live together
// with its registered themes.
type LessonInformationResponse struct {
	LessonID   int64              `json:"lesson_id"`
	ClassID    int64              `json:"class_id"`
	LessonName string             `json:"lesson_name"`
	Status     int                `json:"lesson_status"`
	Themes     []LessonThemeBlock `json:"lesson_themes"`
}
