package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

const uniqueViolation = "23505"

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const listSQL = `
	SELECT c.id, c.disease, c.specialty, c.red_flag, s.symptom
	FROM catalog_condition c
	JOIN catalog_symptom s ON s.condition_id = c.id`

func (r *repoPG) List(ctx context.Context) ([]*Condition, error) {
	rows, err := r.pool.Query(ctx, listSQL+` ORDER BY c.id ASC, s.position ASC`)
	if err != nil {
		return nil, err
	}
	return collectConditions(rows)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Condition, error) {
	rows, err := r.pool.Query(ctx, listSQL+` WHERE c.id = $1 ORDER BY s.position ASC`, id)
	if err != nil {
		return nil, err
	}
	items, err := collectConditions(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("condition %d: %w", id, apperr.ErrNotFound)
	}
	return items[0], nil
}

// collectConditions folds the joined rows back into conditions. Rows for one
// condition arrive contiguously because every query orders by c.id first.
func collectConditions(rows pgx.Rows) ([]*Condition, error) {
	defer rows.Close()
	var items []*Condition
	var cur *Condition
	for rows.Next() {
		var (
			id                 int64
			disease, specialty string
			redFlag            bool
			symptom            string
		)
		if err := rows.Scan(&id, &disease, &specialty, &redFlag, &symptom); err != nil {
			return nil, err
		}
		if cur == nil || cur.ID != id {
			cur = &Condition{ID: id, Disease: disease, Specialty: specialty, RedFlag: redFlag}
			items = append(items, cur)
		}
		cur.Symptoms = append(cur.Symptoms, symptom)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repoPG) Symptoms(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT symptom FROM catalog_symptom ORDER BY symptom ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, c *Condition) error {
	return r.inTx(ctx, func(q queryable) error {
		err := q.QueryRow(ctx, `
			INSERT INTO catalog_condition (disease, specialty, red_flag)
			VALUES ($1, $2, $3) RETURNING id`,
			c.Disease, c.Specialty, c.RedFlag).Scan(&c.ID)
		if err != nil {
			return err
		}
		return insertSymptoms(ctx, q, c.ID, c.Symptoms)
	})
}

func (r *repoPG) Update(ctx context.Context, c *Condition) error {
	return r.inTx(ctx, func(q queryable) error {
		tag, err := q.Exec(ctx, `
			UPDATE catalog_condition SET disease = $2, specialty = $3, red_flag = $4
			WHERE id = $1`,
			c.ID, c.Disease, c.Specialty, c.RedFlag)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("condition %d: %w", c.ID, apperr.ErrNotFound)
		}
		return replaceSymptoms(ctx, q, c.ID, c.Symptoms)
	})
}

func (r *repoPG) Upsert(ctx context.Context, c *Condition) (bool, error) {
	var created bool
	err := r.inTx(ctx, func(q queryable) error {
		// xmax is zero only for a freshly inserted tuple.
		err := q.QueryRow(ctx, `
			INSERT INTO catalog_condition (disease, specialty, red_flag)
			VALUES ($1, $2, $3)
			ON CONFLICT (disease) DO UPDATE
				SET specialty = EXCLUDED.specialty, red_flag = EXCLUDED.red_flag
			RETURNING id, (xmax = 0)`,
			c.Disease, c.Specialty, c.RedFlag).Scan(&c.ID, &created)
		if err != nil {
			return err
		}
		return replaceSymptoms(ctx, q, c.ID, c.Symptoms)
	})
	return created, err
}

func replaceSymptoms(ctx context.Context, q queryable, id int64, symptoms []string) error {
	if _, err := q.Exec(ctx, `DELETE FROM catalog_symptom WHERE condition_id = $1`, id); err != nil {
		return err
	}
	return insertSymptoms(ctx, q, id, symptoms)
}

func insertSymptoms(ctx context.Context, q queryable, id int64, symptoms []string) error {
	for i, s := range symptoms {
		if _, err := q.Exec(ctx,
			`INSERT INTO catalog_symptom (condition_id, symptom, position) VALUES ($1, $2, $3)`,
			id, s, i); err != nil {
			return err
		}
	}
	return nil
}

// inTx runs fn in a transaction and translates unique violations into
// apperr.ErrConflict.
func (r *repoPG) inTx(ctx context.Context, fn func(q queryable) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, apperr.ErrConflict)
		}
		return err
	}
	return tx.Commit(ctx)
}
