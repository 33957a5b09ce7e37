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

// CourseRepository handles database operations for courses, including
// reconciliation of the course-student enrollment set. It works on the same
// student_courses junction as StudentRepository, from the inverse direction.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: pool}
}

// courseStudents is the course-owned side of the student_courses junction.
var courseStudents = relation{
	readExisting: func(ctx context.Context, tx pgx.Tx, courseID int64) ([]int64, error) {
		return readRelatedIDs(ctx, tx,
			`SELECT student_id FROM student_courses WHERE course_id = $1`, courseID)
	},
	remove: func(ctx context.Context, tx pgx.Tx, courseID int64, studentIDs []int64) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM student_courses WHERE course_id = $1 AND student_id = ANY($2)`,
			courseID, studentIDs)
		return err
	},
	add: func(ctx context.Context, tx pgx.Tx, courseID int64, studentIDs []int64) error {
		return batchInsertPairs(ctx, tx,
			`INSERT INTO student_courses (student_id, course_id) VALUES ($1, $2)`,
			courseID, studentIDs, false)
	},
}

// Insert creates the course row and enrolls the desired students as a single
// transaction. A nonexistent student id rolls back everything and surfaces
// as a data-consistency error.
func (r *CourseRepository) Insert(ctx context.Context, course *models.Course) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `INSERT INTO course (name) VALUES ($1) RETURNING course_id`
		if err := tx.QueryRow(ctx, query, course.Name).Scan(&course.ID); err != nil {
			return err
		}

		return reconcileRelation(ctx, tx, course.ID, course.StudentIDs, courseStudents)
	})

	return classifyWriteError(err, "invalid student ids passed", "unexpected course insert failure")
}

// FindWithStudentsByID loads the course's scalar fields and its enrolled
// students. Absence is reported as (nil, nil). The two queries run read-only
// without a shared snapshot.
func (r *CourseRepository) FindWithStudentsByID(ctx context.Context, courseID int64) (*models.CourseWithStudents, error) {
	view := &models.CourseWithStudents{Students: []models.Student{}}

	err := r.db.QueryRow(ctx,
		`SELECT course_id, name FROM course WHERE course_id = $1`, courseID).
		Scan(&view.ID, &view.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyStorageError(err, "unexpected course select failure")
	}

	studentsQuery := `
		SELECT s.student_id, s.name, s.coordinator_id
		FROM student s INNER JOIN student_courses sc USING (student_id)
		WHERE sc.course_id = $1
	`
	rows, err := r.db.Query(ctx, studentsQuery, courseID)
	if err != nil {
		return nil, classifyStorageError(err, "unexpected course students select failure")
	}
	defer rows.Close()

	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.CoordinatorID); err != nil {
			return nil, classifyStorageError(err, "unexpected course students scan failure")
		}
		view.Students = append(view.Students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStorageError(err, "unexpected course students select failure")
	}

	return view, nil
}

// Update rewrites the course's scalar fields and reconciles its enrollment
// set against the submitted student ids in one transaction.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE course SET name = $1 WHERE course_id = $2`, course.Name, course.ID); err != nil {
			return err
		}

		return reconcileRelation(ctx, tx, course.ID, course.StudentIDs, courseStudents)
	})

	return classifyWriteError(err, "invalid student ids passed", "unexpected course update failure")
}

// DeleteByID deletes the course row. Junction rows disappear through the
// on-delete cascade on student_courses.
func (r *CourseRepository) DeleteByID(ctx context.Context, courseID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM course WHERE course_id = $1`, courseID)
	return classifyStorageError(err, "unexpected course delete failure")
}

// List retrieves all scalar course rows.
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := squirrel.Select("course_id", "name").
		From("course").
		OrderBy("course_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, classifyStorageError(err, "unexpected course list failure")
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name); err != nil {
			return nil, classifyStorageError(err, "unexpected course list scan failure")
		}
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStorageError(err, "unexpected course list failure")
	}

	return courses, nil
}
