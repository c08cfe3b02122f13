package models

// Class represents a school class owning students and lessons.
type Class struct {
	ID           int64  `db:"class_id" json:"class_id"`
	ClassName    string `db:"class_name" json:"class_name"`
	Grade        int    `db:"grade" json:"grade"`
	Teacher      string `db:"teacher" json:"teacher"`
	AcademicYear int    `db:"academic_year" json:"academic_year"`
}

// Student belongs to exactly one class. The roster is authored out of
// band and read-only from the lesson workflow's perspective.
type Student struct {
	ID             int64  `db:"student_id" json:"student_id"`
	ClassID        int64  `db:"class_id" json:"class_id"`
	StudentNumber  int    `db:"student_number" json:"student_number"`
	Name           string `db:"name" json:"name"`
	MailAddress    string `db:"mail_address" json:"mail_address"`
	PasswordHash   string `db:"password_hash" json:"-"`
	EnrollmentYear int    `db:"enrollment_year" json:"enrollment_year"`
}
