package models

// Material is a textbook-level content bundle.
type Material struct {
	ID           int64  `db:"material_id" json:"material_id"`
	MaterialName string `db:"material_name" json:"material_name"`
}

// Unit is a chapter-level subdivision of a material.
type Unit struct {
	ID          int64  `db:"unit_id" json:"unit_id"`
	MaterialID  int64  `db:"material_id" json:"material_id"`
	PartName    string `db:"part_name" json:"part_name"`
	ChapterName string `db:"chapter_name" json:"chapter_name"`
	UnitName    string `db:"unit_name" json:"unit_name"`
}

// Theme is a content unit (topic) grouping questions; lessons register
// themes for delivery.
type Theme struct {
	ID        int64  `db:"lesson_theme_id" json:"lesson_theme_id"`
	UnitID    int64  `db:"unit_id" json:"unit_id"`
	ThemeName string `db:"lesson_theme_name" json:"lesson_theme_name"`
}

// Question belongs to a theme and carries four choice texts plus the
// index of the correct one. Immutable during lesson execution.
type Question struct {
	ID            int64  `db:"lesson_question_id" json:"lesson_question_id"`
	ThemeID       int64  `db:"lesson_theme_id" json:"lesson_theme_id"`
	QuestionLabel string `db:"question_label" json:"question_label"`
	ChoiceText1   string `db:"choice_text_1" json:"choice_text_1"`
	ChoiceText2   string `db:"choice_text_2" json:"choice_text_2"`
	ChoiceText3   string `db:"choice_text_3" json:"choice_text_3"`
	ChoiceText4   string `db:"choice_text_4" json:"choice_text_4"`
	CorrectChoice int    `db:"correct_choice" json:"correct_choice"`
}
