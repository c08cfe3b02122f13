package dto

// StudentInfo identifies the answering student in raw grade data.
type StudentInfo struct {
	StudentID int64  `json:"student_id"`
	Name      string `json:"name"`
	ClassID   int64  `json:"class_id"`
}

// QuestionInfo describes the answered question, with its content
// placement when the theme and unit joins resolve.
type QuestionInfo struct {
	QuestionID    int64   `json:"question_id"`
	QuestionLabel string  `json:"question_label"`
	CorrectChoice string  `json:"correct_choice"`
	PartName      *string `json:"part_name"`
	ChapterName   *string `json:"chapter_name"`
	UnitName      *string `json:"unit_name"`
	ThemeName     *string `json:"lesson_theme_name"`
}

// AnswerInfo describes the recorded answer for raw grade data.
type AnswerInfo struct {
	SelectedChoice *string `json:"selected_choice"`
	IsCorrect      *bool   `json:"is_correct"`
	StartUnix      *int64  `json:"start_unix"`
	EndUnix        *int64  `json:"end_unix"`
}

// RawDataItem is one (student, question, answer) triple for a lesson.
type RawDataItem struct {
	Student  StudentInfo  `json:"student"`
	Question QuestionInfo `json:"question"`
	Answer   AnswerInfo   `json:"answer"`
}

// QuestionSummary aggregates correctness for one question.
type QuestionSummary struct {
	QuestionID     int64   `json:"question_id"`
	QuestionLabel  string  `json:"question_label"`
	TotalAnswers   int     `json:"total_answers"`
	CorrectAnswers int     `json:"correct_answers"`
	CorrectRate    float64 `json:"correct_rate"`
}

// GradeSummaryResponse groups per-question correctness for a cohort.
type GradeSummaryResponse struct {
	AcademicYear int               `json:"academic_year"`
	Grade        int               `json:"grade"`
	Summary      []QuestionSummary `json:"summary"`
}

// StudentComment is one survey comment surfaced for grading review.
type StudentComment struct {
	StudentID   int64  `json:"student_id"`
	StudentName string `json:"student_name"`
	CommentText string `json:"comment_text"`
}

// CommentsResponse lists survey comments for a lesson.
type CommentsResponse struct {
	LessonID int64            `json:"lesson_id"`
	Comments []StudentComment `json:"comments"`
}
