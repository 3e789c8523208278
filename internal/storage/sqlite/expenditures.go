package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/internal/storage"
)

// InsertExpenditure persists a new expenditure to the database.
func (s *SQLiteStore) InsertExpenditure(ctx context.Context, e *models.Expenditure) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenditures (id, item, amount, purchased_on, recorded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Item, e.Amount, e.PurchasedOn.Unix(), e.RecordedBy, e.CreatedAt.Unix(),
	)
	if err != nil {
		return unavailable("insert expenditure", err)
	}

	return nil
}

// ListExpenditures retrieves all expenditures.
func (s *SQLiteStore) ListExpenditures(ctx context.Context) ([]*storage.ExpenditureRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, item, amount, purchased_on, recorded_by, created_at FROM expenditures",
	)
	if err != nil {
		return nil, unavailable("list expenditures", err)
	}
	defer rows.Close()

	var records []*storage.ExpenditureRecord
	for rows.Next() {
		r := &storage.ExpenditureRecord{}
		var (
			amount      sql.NullInt64
			purchasedOn sql.NullInt64
			recordedBy  sql.NullString
			createdAt   sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Item, &amount, &purchasedOn, &recordedBy, &createdAt); err != nil {
			return nil, unavailable("scan expenditure", err)
		}
		r.Amount = nullInt(amount)
		r.PurchasedOn = nullTime(purchasedOn)
		r.RecordedBy = nullString(recordedBy)
		r.CreatedAt = nullTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate expenditures", err)
	}

	return records, nil
}
