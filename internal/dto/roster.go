package dto

// CreateClassRequest registers a class.
type CreateClassRequest struct {
	ClassName    string `json:"class_name" validate:"required"`
	Grade        int    `json:"grade" validate:"required,min=1"`
	Teacher      string `json:"teacher" validate:"required"`
	AcademicYear int    `json:"academic_year" validate:"required,min=2000"`
}

// CreateStudentRequest enrolls a student into a class.
type CreateStudentRequest struct {
	ClassID        int64  `json:"class_id" validate:"required"`
	StudentNumber  int    `json:"student_number" validate:"required,min=1"`
	Name           string `json:"name" validate:"required"`
	MailAddress    string `json:"mail_address" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	EnrollmentYear int    `json:"enrollment_year" validate:"required,min=2000"`
}

// SurveyCreateRequest records a student's feedback for a theme.
type SurveyCreateRequest struct {
	StudentID          int64   `json:"student_id" validate:"required"`
	LessonID           *int64  `json:"lesson_id"`
	ThemeID            *int64  `json:"lesson_theme_id"`
	UnderstandingLevel *int    `json:"understanding_level" validate:"omitempty,min=1,max=5"`
	DifficultyPoint    *int    `json:"difficulty_point" validate:"omitempty,min=1,max=5"`
	StudentComment     *string `json:"student_comment"`
}

// AttendanceUpsertRequest marks a student present or absent.
type AttendanceUpsertRequest struct {
	StudentID int64 `json:"student_id" validate:"required"`
	LessonID  int64 `json:"lesson_id" validate:"required"`
	Present   bool  `json:"attendance_status"`
}
