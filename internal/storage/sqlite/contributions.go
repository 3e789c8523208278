package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/internal/storage"
)

// InsertContribution persists a new contribution to the database.
func (s *SQLiteStore) InsertContribution(ctx context.Context, c *models.Contribution) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.Period.IsZero() {
		c.Period = models.PeriodOf(c.CreatedAt)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contributions (id, member, amount, created_at, note, period)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Member, c.Amount, c.CreatedAt.Unix(), c.Note, c.Period.String(),
	)
	if err != nil {
		return unavailable("insert contribution", err)
	}

	return nil
}

// ListContributions retrieves contributions, optionally for a single member.
func (s *SQLiteStore) ListContributions(ctx context.Context, member string) ([]*storage.ContributionRecord, error) {
	query := "SELECT id, member, amount, created_at, note, period FROM contributions"
	var args []any
	if member != "" {
		query += " WHERE member = ?"
		args = append(args, member)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("list contributions", err)
	}
	defer rows.Close()

	var records []*storage.ContributionRecord
	for rows.Next() {
		r := &storage.ContributionRecord{}
		var (
			amount    sql.NullInt64
			createdAt sql.NullInt64
			note      sql.NullString
			period    sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Member, &amount, &createdAt, &note, &period); err != nil {
			return nil, unavailable("scan contribution", err)
		}
		r.Amount = nullInt(amount)
		r.CreatedAt = nullTime(createdAt)
		r.Note = nullString(note)
		r.Period = nullString(period)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate contributions", err)
	}

	return records, nil
}
