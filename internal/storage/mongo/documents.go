package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/internal/storage"
)

// memberDoc is the stored shape of a member.
type memberDoc struct {
	ID           any    `bson:"_id,omitempty"`
	Name         string `bson:"name"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role,omitempty"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

// contributionDoc is the stored shape of a contribution.
// Pointer fields may be absent in older documents.
type contributionDoc struct {
	ID        any        `bson:"_id,omitempty"`
	Member    string     `bson:"member"`
	Amount    *int64     `bson:"amount,omitempty"`
	CreatedAt *time.Time `bson:"created_at,omitempty"`
	Note      *string    `bson:"note,omitempty"`
	Period    *string    `bson:"period,omitempty"`
}

// expenditureDoc is the stored shape of an expenditure.
type expenditureDoc struct {
	ID          any        `bson:"_id,omitempty"`
	Item        string     `bson:"item"`
	Amount      *int64     `bson:"amount,omitempty"`
	PurchasedOn *time.Time `bson:"purchased_on,omitempty"`
	RecordedBy  *string    `bson:"recorded_by,omitempty"`
	CreatedAt   *time.Time `bson:"created_at,omitempty"`
}

// idString renders a document key. New documents use UUID strings; older
// ones carry ObjectIDs.
func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	default:
		return fmt.Sprint(id)
	}
}

func (d *memberDoc) toModel() *models.Member {
	return &models.Member{
		ID:           idString(d.ID),
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         models.ParseRole(d.Role),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d *contributionDoc) toRecord() *storage.ContributionRecord {
	return &storage.ContributionRecord{
		ID:        idString(d.ID),
		Member:    d.Member,
		Amount:    d.Amount,
		CreatedAt: d.CreatedAt,
		Note:      d.Note,
		Period:    d.Period,
	}
}

func (d *expenditureDoc) toRecord() *storage.ExpenditureRecord {
	return &storage.ExpenditureRecord{
		ID:          idString(d.ID),
		Item:        d.Item,
		Amount:      d.Amount,
		PurchasedOn: d.PurchasedOn,
		RecordedBy:  d.RecordedBy,
		CreatedAt:   d.CreatedAt,
	}
}

func newContributionDoc(c *models.Contribution) *contributionDoc {
	period := c.Period.String()
	createdAt := c.CreatedAt
	return &contributionDoc{
		ID:        c.ID,
		Member:    c.Member,
		Amount:    &c.Amount,
		CreatedAt: &createdAt,
		Note:      &c.Note,
		Period:    &period,
	}
}

func newExpenditureDoc(e *models.Expenditure) *expenditureDoc {
	purchasedOn := e.PurchasedOn
	createdAt := e.CreatedAt
	return &expenditureDoc{
		ID:          e.ID,
		Item:        e.Item,
		Amount:      &e.Amount,
		PurchasedOn: &purchasedOn,
		RecordedBy:  &e.RecordedBy,
		CreatedAt:   &createdAt,
	}
}
