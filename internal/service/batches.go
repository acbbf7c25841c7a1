package service

import "github.com/noah-isme/college-schedule-api/internal/models"

// BatchesForYear returns the active batches that are in yearOfStudy during academicYear and
// belong to departmentID or to no department.
func BatchesForYear(batches []models.Batch, academicYear models.AcademicYearContext, departmentID string, yearOfStudy int) []models.Batch {
	var out []models.Batch
	for _, batch := range batches {
		if !batch.Active || batch.YearOfStudy(academicYear) != yearOfStudy {
			continue
		}
		if batch.DepartmentID != nil && *batch.DepartmentID != departmentID {
			continue
		}
		out = append(out, batch)
	}
	return out
}

func batchIDs(batches []models.Batch) []string {
	ids := make([]string, 0, len(batches))
	for _, batch := range batches {
		ids = append(ids, batch.ID)
	}
	return ids
}
