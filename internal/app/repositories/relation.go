package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// relation describes the storage operations for one relation shape. The
// reconciler only needs three capabilities: read the related ids currently
// persisted for an owner, bulk-remove a set of ids from the owner's scope,
// and bulk-add a set of ids to it. All three run against the transaction the
// owning entity's scalar write opened.
type relation struct {
	readExisting func(ctx context.Context, tx pgx.Tx, ownerID int64) ([]int64, error)
	remove       func(ctx context.Context, tx pgx.Tx, ownerID int64, ids []int64) error
	add          func(ctx context.Context, tx pgx.Tx, ownerID int64, ids []int64) error
}

// reconcileRelation makes the persisted related-id set for ownerID equal the
// desired set, issuing only the delta writes. Removals and additions are both
// no-ops when empty, so reconciling twice with the same desired set writes
// nothing the second time. Referential-integrity violations from the
// underlying writes propagate to the caller unclassified.
func reconcileRelation(ctx context.Context, tx pgx.Tx, ownerID int64, desired []int64, rel relation) error {
	existing, err := rel.readExisting(ctx, tx, ownerID)
	if err != nil {
		return fmt.Errorf("error reading existing relation ids: %w", err)
	}

	removals, additions := diffIDs(existing, desired)

	if len(removals) > 0 {
		if err := rel.remove(ctx, tx, ownerID, removals); err != nil {
			return err
		}
	}

	if len(additions) > 0 {
		if err := rel.add(ctx, tx, ownerID, additions); err != nil {
			return err
		}
	}

	return nil
}

// diffIDs computes the set differences between the persisted ids and the
// desired ids: removals = existing − desired, additions = desired − existing.
// Duplicates in either input collapse; the outputs carry no defined order.
func diffIDs(existing, desired []int64) (removals, additions []int64) {
	existingSet := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	desiredSet := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	for id := range existingSet {
		if _, ok := desiredSet[id]; !ok {
			removals = append(removals, id)
		}
	}

	for id := range desiredSet {
		if _, ok := existingSet[id]; !ok {
			additions = append(additions, id)
		}
	}

	return removals, additions
}

// readRelatedIDs runs a single-column id query scoped by owner id.
func readRelatedIDs(ctx context.Context, tx pgx.Tx, sql string, ownerID int64) ([]int64, error) {
	rows, err := tx.Query(ctx, sql, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// batchInsertPairs inserts one (owner, related) row per id through a pgx
// batch. ownerFirst selects which column the owner id binds to.
func batchInsertPairs(ctx context.Context, tx pgx.Tx, sql string, ownerID int64, ids []int64, ownerFirst bool) error {
	batch := &pgx.Batch{}
	for _, id := range ids {
		if ownerFirst {
			batch.Queue(sql, ownerID, id)
		} else {
			batch.Queue(sql, id, ownerID)
		}
	}

	results := tx.SendBatch(ctx, batch)
	for range ids {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return err
		}
	}
	return results.Close()
}
