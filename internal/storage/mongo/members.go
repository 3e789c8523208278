package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/internal/storage"
)

// InsertMember inserts a new member document.
func (s *Store) InsertMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}
	if member.UpdatedAt == 0 {
		member.UpdatedAt = member.CreatedAt
	}

	_, err := s.members.InsertOne(ctx, &memberDoc{
		ID:           member.ID,
		Name:         member.Name,
		PasswordHash: member.PasswordHash,
		Role:         string(member.Role),
		CreatedAt:    member.CreatedAt,
		UpdatedAt:    member.UpdatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: member %q", storage.ErrDuplicate, member.Name)
	}
	if err != nil {
		return unavailable("insert member", err)
	}
	return nil
}

// GetMember finds a member by name.
func (s *Store) GetMember(ctx context.Context, name string) (*models.Member, error) {
	var doc memberDoc
	err := s.members.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if isNoDocuments(err) {
		return nil, fmt.Errorf("%w: member %q", storage.ErrNotFound, name)
	}
	if err != nil {
		return nil, unavailable("get member", err)
	}
	return doc.toModel(), nil
}

// ListMembers returns all members sorted by name.
func (s *Store) ListMembers(ctx context.Context) ([]*models.Member, error) {
	cursor, err := s.members.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, unavailable("list members", err)
	}

	var docs []memberDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, unavailable("decode members", err)
	}

	members := make([]*models.Member, len(docs))
	for i := range docs {
		members[i] = docs[i].toModel()
	}
	return members, nil
}

// CountMembers counts member documents.
func (s *Store) CountMembers(ctx context.Context) (int64, error) {
	n, err := s.members.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, unavailable("count members", err)
	}
	return n, nil
}

// MemberNames returns the distinct member names.
func (s *Store) MemberNames(ctx context.Context) ([]string, error) {
	values, err := s.members.Distinct(ctx, "name", bson.M{})
	if err != nil {
		return nil, unavailable("list member names", err)
	}

	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// UpdateMemberCredential sets a new password hash on the named member.
func (s *Store) UpdateMemberCredential(ctx context.Context, name, passwordHash string) error {
	res, err := s.members.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"password_hash": passwordHash, "updated_at": time.Now().Unix()}},
	)
	if err != nil {
		return unavailable("update member credential", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: member %q", storage.ErrNotFound, name)
	}
	return nil
}
