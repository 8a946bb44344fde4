package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SlotRepo struct {
	db *sql.DB
}

func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// Get returns the slot stored under key, or nil when there is none.
func (r *SlotRepo) Get(ctx context.Context, key string) (*SlotRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM slots WHERE key = ?`, key)

	var rec SlotRecord
	if err := row.Scan(&rec.Key, &rec.Value, &rec.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("slot get: %w", err)
	}
	return &rec, nil
}

// Put creates or replaces the slot under key.
func (r *SlotRepo) Put(ctx context.Context, key, value string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("slot put: %w", err)
		}
		return nil
	})
}

func (r *SlotRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("slot delete: %w", err)
	}
	return nil
}

// Keys lists every stored slot key in order.
func (r *SlotRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM slots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("slot keys: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("slot keys scan: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Slot binds a repo to one key. It satisfies engine.SnapshotStore.
type Slot struct {
	repo *SlotRepo
	key  string
}

func NewSlot(db *sql.DB, key string) *Slot {
	if key == "" {
		key = DefaultSlotKey
	}
	return &Slot{repo: NewSlotRepo(db), key: key}
}

func (s *Slot) Key() string { return s.key }

// Load returns the stored bytes, or nil when the slot is empty.
func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	rec, err := s.repo.Get(ctx, s.key)
	if err != nil || rec == nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (s *Slot) Save(ctx context.Context, data []byte) error {
	return s.repo.Put(ctx, s.key, string(data))
}

func (s *Slot) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.key)
}
