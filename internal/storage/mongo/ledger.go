package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/internal/storage"
)

// InsertContribution appends a contribution document.
func (s *Store) InsertContribution(ctx context.Context, c *models.Contribution) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.Period.IsZero() {
		c.Period = models.PeriodOf(c.CreatedAt)
	}

	if _, err := s.contributions.InsertOne(ctx, newContributionDoc(c)); err != nil {
		return unavailable("insert contribution", err)
	}
	return nil
}

// ListContributions finds contributions, optionally for one member.
func (s *Store) ListContributions(ctx context.Context, member string) ([]*storage.ContributionRecord, error) {
	filter := bson.M{}
	if member != "" {
		filter["member"] = member
	}

	cursor, err := s.contributions.Find(ctx, filter)
	if err != nil {
		return nil, unavailable("list contributions", err)
	}

	var docs []contributionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, unavailable("decode contributions", err)
	}

	records := make([]*storage.ContributionRecord, len(docs))
	for i := range docs {
		records[i] = docs[i].toRecord()
	}
	return records, nil
}

// InsertExpenditure appends an expenditure document.
func (s *Store) InsertExpenditure(ctx context.Context, e *models.Expenditure) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	if _, err := s.expenditures.InsertOne(ctx, newExpenditureDoc(e)); err != nil {
		return unavailable("insert expenditure", err)
	}
	return nil
}

// ListExpenditures finds all expenditures.
func (s *Store) ListExpenditures(ctx context.Context) ([]*storage.ExpenditureRecord, error) {
	cursor, err := s.expenditures.Find(ctx, bson.M{})
	if err != nil {
		return nil, unavailable("list expenditures", err)
	}

	var docs []expenditureDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, unavailable("decode expenditures", err)
	}

	records := make([]*storage.ExpenditureRecord, len(docs))
	for i := range docs {
		records[i] = docs[i].toRecord()
	}
	return records, nil
}
