package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edukit/registrar/internal/app/models"
	"github.com/edukit/registrar/internal/db"
)

// StudentRepository handles database operations for students, including
// reconciliation of the student-course enrollment set.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: pool}
}

// studentCourses is the student-owned side of the student_courses junction.
// Removals and additions are scoped by student id so no other student's
// enrollment rows are touched.
var studentCourses = relation{
	readExisting: func(ctx context.Context, tx pgx.Tx, studentID int64) ([]int64, error) {
		return readRelatedIDs(ctx, tx,
			`SELECT course_id FROM student_courses WHERE student_id = $1`, studentID)
	},
	remove: func(ctx context.Context, tx pgx.Tx, studentID int64, courseIDs []int64) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM student_courses WHERE student_id = $1 AND course_id = ANY($2)`,
			studentID, courseIDs)
		return err
	},
	add: func(ctx context.Context, tx pgx.Tx, studentID int64, courseIDs []int64) error {
		return batchInsertPairs(ctx, tx,
			`INSERT INTO student_courses (student_id, course_id) VALUES ($1, $2)`,
			studentID, courseIDs, true)
	},
}

// Insert creates the student row and enrolls it in the desired courses as a
// single transaction. A nonexistent course id rolls back everything,
// including the just-inserted row, and surfaces as a data-consistency error.
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO student (name, coordinator_id)
			VALUES ($1, $2)
			RETURNING student_id
		`
		if err := tx.QueryRow(ctx, query, student.Name, student.CoordinatorID).Scan(&student.ID); err != nil {
			return err
		}

		return reconcileRelation(ctx, tx, student.ID, student.CourseIDs, studentCourses)
	})

	return classifyWriteError(err, "invalid course ids passed", "unexpected student insert failure")
}

// FindWithCoordinatorAndCoursesByID loads the student's scalar fields, its
// coordinator (if any) and its courses. Absence is reported as (nil, nil).
// The two queries run read-only without a shared snapshot; under concurrent
// writers they may observe different states.
func (r *StudentRepository) FindWithCoordinatorAndCoursesByID(ctx context.Context, studentID int64) (*models.StudentWithCoordinatorAndCourses, error) {
	view := &models.StudentWithCoordinatorAndCourses{Courses: []models.Course{}}

	query := `
		SELECT s.student_id, s.name, c.coordinator_id, c.name
		FROM student s LEFT JOIN coordinator c USING (coordinator_id)
		WHERE s.student_id = $1
	`
	var coordinatorID *int64
	var coordinatorName *string
	err := r.db.QueryRow(ctx, query, studentID).Scan(&view.ID, &view.Name, &coordinatorID, &coordinatorName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyStorageError(err, "unexpected student select failure")
	}

	if coordinatorID != nil {
		view.Coordinator = &models.Coordinator{ID: *coordinatorID, Name: *coordinatorName}
	}

	coursesQuery := `
		SELECT course_id, name
		FROM course INNER JOIN student_courses USING (course_id)
		WHERE student_id = $1
	`
	rows, err := r.db.Query(ctx, coursesQuery, studentID)
	if err != nil {
		return nil, classifyStorageError(err, "unexpected student courses select failure")
	}
	defer rows.Close()

	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name); err != nil {
			return nil, classifyStorageError(err, "unexpected student courses scan failure")
		}
		view.Courses = append(view.Courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStorageError(err, "unexpected student courses select failure")
	}

	return view, nil
}

// Update rewrites the student's scalar fields and reconciles its enrollment
// set against the submitted course ids in one transaction.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `UPDATE student SET name = $1, coordinator_id = $2 WHERE student_id = $3`
		if _, err := tx.Exec(ctx, query, student.Name, student.CoordinatorID, student.ID); err != nil {
			return err
		}

		return reconcileRelation(ctx, tx, student.ID, student.CourseIDs, studentCourses)
	})

	return classifyWriteError(err, "invalid course ids passed", "unexpected student update failure")
}

// DeleteByID deletes the student row. Junction rows disappear through the
// on-delete cascade on student_courses.
func (r *StudentRepository) DeleteByID(ctx context.Context, studentID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM student WHERE student_id = $1`, studentID)
	return classifyStorageError(err, "unexpected student delete failure")
}

// StudentFilter narrows List results.
type StudentFilter struct {
	CoordinatorID *int64
	CourseID      *int64
}

// List retrieves scalar student rows, optionally filtered by coordinator or
// enrolled course.
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter) ([]*models.Student, error) {
	builder := squirrel.Select("student_id", "name", "coordinator_id").
		From("student").
		OrderBy("student_id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.CoordinatorID != nil {
		builder = builder.Where("coordinator_id = ?", *filter.CoordinatorID)
	}
	if filter.CourseID != nil {
		builder = builder.Where("student_id IN (SELECT student_id FROM student_courses WHERE course_id = ?)", *filter.CourseID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, classifyStorageError(err, "unexpected student list failure")
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.CoordinatorID); err != nil {
			return nil, classifyStorageError(err, "unexpected student list scan failure")
		}
		students = append(students, &student)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStorageError(err, "unexpected student list failure")
	}

	return students, nil
}
