package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const entryCols = `id, patient_name, selected_symptoms, urgency_label, urgency_score,
	assigned_doctor, assigned_specialty, likely_conditions, created_at`

func (r *repoPG) Append(ctx context.Context, e *Entry) error {
	symptoms, err := json.Marshal(e.SelectedSymptoms)
	if err != nil {
		return fmt.Errorf("marshal selected symptoms: %w", err)
	}
	likely, err := json.Marshal(e.LikelyConditions)
	if err != nil {
		return fmt.Errorf("marshal likely conditions: %w", err)
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO triage_entry (patient_name, selected_symptoms, urgency_label, urgency_score,
			assigned_doctor, assigned_specialty, likely_conditions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		e.PatientName, symptoms, e.UrgencyLabel, e.UrgencyScore,
		e.AssignedDoctor, e.AssignedSpecialty, likely,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *repoPG) List(ctx context.Context, limit int) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+entryCols+` FROM triage_entry
		ORDER BY urgency_score DESC, created_at ASC, id ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *repoPG) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+entryCols+` FROM triage_entry
		ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *repoPG) Clear(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM triage_entry`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanEntries(rows pgx.Rows) ([]*Entry, error) {
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		var (
			e        Entry
			symptoms []byte
			likely   []byte
		)
		if err := rows.Scan(&e.ID, &e.PatientName, &symptoms, &e.UrgencyLabel, &e.UrgencyScore,
			&e.AssignedDoctor, &e.AssignedSpecialty, &likely, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(symptoms, &e.SelectedSymptoms); err != nil {
			return nil, fmt.Errorf("entry %d selected_symptoms: %w", e.ID, err)
		}
		if err := json.Unmarshal(likely, &e.LikelyConditions); err != nil {
			return nil, fmt.Errorf("entry %d likely_conditions: %w", e.ID, err)
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}
