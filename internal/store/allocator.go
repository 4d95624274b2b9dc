package store

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds FOR UPDATE to the query so the read-then-insert
// window of an allocation cannot interleave with a concurrent writer in
// the same scope. SQLite has a single writer and rejects the clause, so
// it is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// nextSeq allocates the next sequence number for one scope (a period's
// meetings or motions, or a motion's amendments). It must run inside
// the transaction that also persists the new row: the highest existing
// row stays locked until that transaction commits. An empty scope has
// no row to lock; there the unique (scope, seq) index catches the race
// and the losing transaction retries.
//
// Numbers are never reused. Deleting an entity leaves a permanent gap.
func nextSeq(tx *gorm.DB, entity any, scope string, args ...any) (int, error) {
	var seqs []int
	err := lockForUpdate(tx.Model(entity)).
		Where(scope, args...).
		Order("seq DESC").
		Limit(1).
		Pluck("seq", &seqs).Error
	if err != nil {
		return 0, fmt.Errorf("failed to allocate sequence number: %w", err)
	}
	if len(seqs) == 0 {
		return 1, nil
	}
	return seqs[0] + 1, nil
}
