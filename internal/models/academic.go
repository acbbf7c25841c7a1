package models

import "time"

// Department is an academic department.
type Department struct {
	ID   string `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

// AcademicYear spans one teaching year, e.g. 2024-25.
type AcademicYear struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	IsCurrent bool      `db:"is_current" json:"is_current"`
}

// AcademicYearContext is resolved once per request and passed explicitly into the scheduling core.
type AcademicYearContext struct {
	ID        string
	Name      string
	StartYear int
}

// Context projects the academic year into the form consumed by scheduling.
func (a AcademicYear) Context() AcademicYearContext {
	return AcademicYearContext{ID: a.ID, Name: a.Name, StartYear: a.StartDate.Year()}
}

// Batch is a cohort admitted in a given year.
type Batch struct {
	ID            string  `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	DepartmentID  *string `db:"department_id" json:"department_id,omitempty"`
	AdmissionYear int     `db:"admission_year" json:"admission_year"`
	Active        bool    `db:"active" json:"active"`
}

// YearOfStudy returns the cohort's year of study within the academic year.
func (b Batch) YearOfStudy(year AcademicYearContext) int {
	return year.StartYear - b.AdmissionYear + 1
}

// SubjectAssignment is a (subject, faculty, academic year, semester, section) class group.
type SubjectAssignment struct {
	ID             string `db:"id" json:"id"`
	SubjectID      string `db:"subject_id" json:"subject_id"`
	SubjectName    string `db:"subject_name" json:"subject_name"`
	FacultyID      string `db:"faculty_id" json:"faculty_id"`
	DepartmentID   string `db:"department_id" json:"department_id"`
	AcademicYearID string `db:"academic_year_id" json:"academic_year_id"`
	YearOfStudy    int    `db:"year_of_study" json:"year_of_study"`
	Semester       int    `db:"semester" json:"semester"`
	Section        string `db:"section" json:"section"`
}

// Venue is a room that hosts one class at a time.
type Venue struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Capacity int    `db:"capacity" json:"capacity"`
	Active   bool   `db:"active" json:"active"`
}
