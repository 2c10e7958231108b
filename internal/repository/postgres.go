package repository

import (
	"context"
	"fmt"

	"github.com/flightlinehq/courser/internal/models"
)

// FetchPendingCourses retrieves uploaded courses whose turning points have
// not been resolved yet. It returns courses without an extraction timestamp,
// with fewer than 5 extraction attempts and a non-empty document, ordered by
// upload date and limited to the specified count.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of courses to retrieve.
//
// Returns:
// - A slice of models.Course containing the courses that match the criteria.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchPendingCourses(ctx context.Context, limit int) ([]models.Course, error) {
	var courses []models.Course
	query := `
		SELECT course_id, name, document
		FROM public.courses
		WHERE
			extracted_at IS NULL
			AND extraction_attempts < 5
			AND document IS NOT NULL AND document <> ''
		ORDER BY uploaded_at ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending courses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var course models.Course
		if errScan := rows.Scan(&course.ID, &course.Name, &course.Document); errScan != nil {
			return nil, fmt.Errorf("failed to scan pending course: %w", errScan)
		}
		r.log.DebugContext(ctx, "A new course without resolved turning points has been received.",
			"ID", course.ID, "Name", course.Name)
		courses = append(courses, course)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return courses, nil
}

// SaveTurningPoints replaces the stored turning points of a course with the
// given resolved set and stamps the course as extracted. All statements run
// in a single transaction so a course never loses its points when one of
// them fails. It returns an error if any statement fails.
func (r *Repository) SaveTurningPoints(ctx context.Context, courseID int, points []models.TurningPoint) error {
	deleteQuery := `
		DELETE FROM turning_points
		WHERE course_id = $1;
	`
	insertQuery := `
		INSERT INTO turning_points (course_id, position, name, longitude, latitude, locality)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	stampQuery := `
		UPDATE courses
		SET
			extracted_at = NOW(),
			extraction_error = NULL
		WHERE course_id = $1;
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, deleteQuery, courseID); err != nil {
		return fmt.Errorf("failed to delete stale turning points: %w", err)
	}

	for i, point := range points {
		_, err = tx.Exec(ctx, insertQuery,
			courseID, i, point.Name, point.Longitude, point.Latitude, point.Locality)
		if err != nil {
			return fmt.Errorf("failed to insert turning point: %w", err)
		}
	}

	if _, err = tx.Exec(ctx, stampQuery, courseID); err != nil {
		return fmt.Errorf("failed to stamp course as extracted: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit turning points: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the extraction attempt count for a
// specific course identified by courseID and updates the associated error
// message. If the update operation fails, it returns an error with
// additional context.
func (r *Repository) IncrementFailureCount(ctx context.Context, courseID int, errMsg string) error {
	query := `
		UPDATE courses
		SET
			extraction_attempts = extraction_attempts + 1,
			extraction_error = $1
		WHERE course_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, courseID)
	if err != nil {
		return fmt.Errorf("failed to update extraction error and number of attempts: %w", err)
	}

	return nil
}
