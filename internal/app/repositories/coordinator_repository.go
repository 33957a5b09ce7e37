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

// CoordinatorRepository handles database operations for coordinators. The
// coordinator-student relation is a nullable foreign key on the student row,
// not a junction table, so reconciliation writes are UPDATE statements.
// Student ids that match no row are skipped by those updates rather than
// rejected; this differs from the junction relations, where unknown ids are
// a referential-integrity violation.
type CoordinatorRepository struct {
	db *pgxpool.Pool
}

// NewCoordinatorRepository creates a new coordinator repository
func NewCoordinatorRepository(pool *pgxpool.Pool) *CoordinatorRepository {
	return &CoordinatorRepository{db: pool}
}

// coordinatorStudents reconciles student.coordinator_id against the desired
// student set. The removal update is scoped by coordinator id so students
// reassigned to another coordinator in between are left alone.
var coordinatorStudents = relation{
	readExisting: func(ctx context.Context, tx pgx.Tx, coordinatorID int64) ([]int64, error) {
		return readRelatedIDs(ctx, tx,
			`SELECT student_id FROM student WHERE coordinator_id = $1`, coordinatorID)
	},
	remove: func(ctx context.Context, tx pgx.Tx, coordinatorID int64, studentIDs []int64) error {
		_, err := tx.Exec(ctx,
			`UPDATE student SET coordinator_id = NULL WHERE coordinator_id = $1 AND student_id = ANY($2)`,
			coordinatorID, studentIDs)
		return err
	},
	add: func(ctx context.Context, tx pgx.Tx, coordinatorID int64, studentIDs []int64) error {
		_, err := tx.Exec(ctx,
			`UPDATE student SET coordinator_id = $1 WHERE student_id = ANY($2)`,
			coordinatorID, studentIDs)
		return err
	},
}

// Insert creates the coordinator row and attaches the desired students in
// one transaction. Nonexistent student ids are silently skipped.
func (r *CoordinatorRepository) Insert(ctx context.Context, coordinator *models.Coordinator) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `INSERT INTO coordinator (name) VALUES ($1) RETURNING coordinator_id`
		if err := tx.QueryRow(ctx, query, coordinator.Name).Scan(&coordinator.ID); err != nil {
			return err
		}

		return reconcileRelation(ctx, tx, coordinator.ID, coordinator.StudentIDs, coordinatorStudents)
	})

	return classifyWriteError(err, "invalid student ids passed", "unexpected coordinator insert failure")
}

// FindWithStudentsByID loads the coordinator's scalar fields and the
// students referencing it. Absence is reported as (nil, nil). The two
// queries run read-only without a shared snapshot.
func (r *CoordinatorRepository) FindWithStudentsByID(ctx context.Context, coordinatorID int64) (*models.CoordinatorWithStudents, error) {
	view := &models.CoordinatorWithStudents{Students: []models.Student{}}

	err := r.db.QueryRow(ctx,
		`SELECT coordinator_id, name FROM coordinator WHERE coordinator_id = $1`, coordinatorID).
		Scan(&view.ID, &view.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyStorageError(err, "unexpected coordinator select failure")
	}

	rows, err := r.db.Query(ctx,
		`SELECT student_id, name, coordinator_id FROM student WHERE coordinator_id = $1`, coordinatorID)
	if err != nil {
		return nil, classifyStorageError(err, "unexpected coordinator students select failure")
	}
	defer rows.Close()

	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.CoordinatorID); err != nil {
			return nil, classifyStorageError(err, "unexpected coordinator students scan failure")
		}
		view.Students = append(view.Students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStorageError(err, "unexpected coordinator students select failure")
	}

	return view, nil
}

// Update rewrites the coordinator's scalar fields and reconciles its student
// set against the submitted ids in one transaction.
func (r *CoordinatorRepository) Update(ctx context.Context, coordinator *models.Coordinator) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE coordinator SET name = $1 WHERE coordinator_id = $2`,
			coordinator.Name, coordinator.ID); err != nil {
			return err
		}

		return reconcileRelation(ctx, tx, coordinator.ID, coordinator.StudentIDs, coordinatorStudents)
	})

	return classifyWriteError(err, "invalid student ids passed", "unexpected coordinator update failure")
}

// DeleteByID deletes the coordinator row. The on-delete-set-null constraint
// on student.coordinator_id detaches its students without deleting them.
func (r *CoordinatorRepository) DeleteByID(ctx context.Context, coordinatorID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM coordinator WHERE coordinator_id = $1`, coordinatorID)
	return classifyStorageError(err, "unexpected coordinator delete failure")
}

// List retrieves all scalar coordinator rows.
func (r *CoordinatorRepository) List(ctx context.Context) ([]*models.Coordinator, error) {
	sql, args, err := squirrel.Select("coordinator_id", "name").
		From("coordinator").
		OrderBy("coordinator_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, classifyStorageError(err, "unexpected coordinator list failure")
	}
	defer rows.Close()

	var coordinators []*models.Coordinator
	for rows.Next() {
		var coordinator models.Coordinator
		if err := rows.Scan(&coordinator.ID, &coordinator.Name); err != nil {
			return nil, classifyStorageError(err, "unexpected coordinator list scan failure")
		}
		coordinators = append(coordinators, &coordinator)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStorageError(err, "unexpected coordinator list failure")
	}

	return coordinators, nil
}
