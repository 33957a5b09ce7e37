package repositories

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5"
)

func sortedCopy(ids []int64) []int64 {
	out := append([]int64(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equalIDs(a, b []int64) bool {
	a, b = sortedCopy(a), sortedCopy(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiffIDs(t *testing.T) {
	tests := []struct {
		name          string
		existing      []int64
		desired       []int64
		wantRemovals  []int64
		wantAdditions []int64
	}{
		{
			name:          "disjoint sets",
			existing:      []int64{1, 2},
			desired:       []int64{3, 4},
			wantRemovals:  []int64{1, 2},
			wantAdditions: []int64{3, 4},
		},
		{
			name:          "partial overlap",
			existing:      []int64{1, 2},
			desired:       []int64{1, 3},
			wantRemovals:  []int64{2},
			wantAdditions: []int64{3},
		},
		{
			name:     "identical sets",
			existing: []int64{5, 6, 7},
			desired:  []int64{7, 6, 5},
		},
		{
			name:          "empty desired clears everything",
			existing:      []int64{1, 2, 3},
			desired:       nil,
			wantRemovals:  []int64{1, 2, 3},
			wantAdditions: nil,
		},
		{
			name:          "empty existing adds everything",
			existing:      nil,
			desired:       []int64{8, 9},
			wantRemovals:  nil,
			wantAdditions: []int64{8, 9},
		},
		{
			name:          "duplicates collapse",
			existing:      []int64{1, 1, 2},
			desired:       []int64{2, 2, 3, 3},
			wantRemovals:  []int64{1},
			wantAdditions: []int64{3},
		},
		{
			name:     "both empty",
			existing: nil,
			desired:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			removals, additions := diffIDs(tt.existing, tt.desired)
			if !equalIDs(removals, tt.wantRemovals) {
				t.Errorf("removals = %v, want %v", removals, tt.wantRemovals)
			}
			if !equalIDs(additions, tt.wantAdditions) {
				t.Errorf("additions = %v, want %v", additions, tt.wantAdditions)
			}
		})
	}
}

// recordingRelation captures the writes reconcileRelation issues so tests
// can assert the exact delta without a database.
type recordingRelation struct {
	existing []int64
	removed  [][]int64
	added    [][]int64
}

func (r *recordingRelation) relation() relation {
	return relation{
		readExisting: func(ctx context.Context, tx pgx.Tx, ownerID int64) ([]int64, error) {
			return r.existing, nil
		},
		remove: func(ctx context.Context, tx pgx.Tx, ownerID int64, ids []int64) error {
			r.removed = append(r.removed, ids)
			return nil
		},
		add: func(ctx context.Context, tx pgx.Tx, ownerID int64, ids []int64) error {
			r.added = append(r.added, ids)
			return nil
		},
	}
}

func TestReconcileRelationIssuesExactDelta(t *testing.T) {
	rec := &recordingRelation{existing: []int64{1, 2}}

	if err := reconcileRelation(context.Background(), nil, 42, []int64{1, 3}, rec.relation()); err != nil {
		t.Fatalf("reconcileRelation: %v", err)
	}

	if len(rec.removed) != 1 || !equalIDs(rec.removed[0], []int64{2}) {
		t.Errorf("removed = %v, want one removal of [2]", rec.removed)
	}
	if len(rec.added) != 1 || !equalIDs(rec.added[0], []int64{3}) {
		t.Errorf("added = %v, want one addition of [3]", rec.added)
	}
}

func TestReconcileRelationNoWritesWhenSetsMatch(t *testing.T) {
	rec := &recordingRelation{existing: []int64{4, 5}}

	// Same set in a different order with duplicates; reconciliation is a
	// set operation and must issue no writes.
	if err := reconcileRelation(context.Background(), nil, 42, []int64{5, 4, 5}, rec.relation()); err != nil {
		t.Fatalf("reconcileRelation: %v", err)
	}

	if len(rec.removed) != 0 {
		t.Errorf("unexpected removals: %v", rec.removed)
	}
	if len(rec.added) != 0 {
		t.Errorf("unexpected additions: %v", rec.added)
	}
}

func TestReconcileRelationIdempotent(t *testing.T) {
	rec := &recordingRelation{existing: []int64{1}}
	desired := []int64{1, 2, 3}

	if err := reconcileRelation(context.Background(), nil, 7, desired, rec.relation()); err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	if len(rec.added) != 1 {
		t.Fatalf("added = %v, want one addition batch", rec.added)
	}

	// Second call sees the persisted state equal to desired.
	rec.existing = desired
	if err := reconcileRelation(context.Background(), nil, 7, desired, rec.relation()); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}

	if len(rec.removed) != 0 || len(rec.added) != 1 {
		t.Errorf("second reconcile wrote removals=%v additions=%v, want no new writes", rec.removed, rec.added)
	}
}

func TestReconcileRelationPropagatesWriteErrors(t *testing.T) {
	wantErr := errors.New("fk violation")
	rel := relation{
		readExisting: func(ctx context.Context, tx pgx.Tx, ownerID int64) ([]int64, error) {
			return nil, nil
		},
		remove: func(ctx context.Context, tx pgx.Tx, ownerID int64, ids []int64) error {
			t.Fatal("remove should not be called when nothing to remove")
			return nil
		},
		add: func(ctx context.Context, tx pgx.Tx, ownerID int64, ids []int64) error {
			return wantErr
		},
	}

	err := reconcileRelation(context.Background(), nil, 1, []int64{99}, rel)
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
