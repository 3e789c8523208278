package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/internal/storage"
)

// InsertMember inserts a new member into the database.
func (s *SQLiteStore) InsertMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}
	if member.UpdatedAt == 0 {
		member.UpdatedAt = member.CreatedAt
	}

	query := `
		INSERT INTO members (id, name, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		member.ID,
		member.Name,
		member.PasswordHash,
		string(member.Role),
		member.CreatedAt,
		member.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: member %q", storage.ErrDuplicate, member.Name)
		}
		return unavailable("insert member", err)
	}

	return nil
}

// GetMember retrieves a member by name.
func (s *SQLiteStore) GetMember(ctx context.Context, name string) (*models.Member, error) {
	query := `
		SELECT id, name, password_hash, role, created_at, updated_at
		FROM members
		WHERE name = ?
	`

	member, err := scanMember(s.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: member %q", storage.ErrNotFound, name)
	}
	if err != nil {
		return nil, unavailable("get member", err)
	}

	return member, nil
}

// ListMembers retrieves all members ordered by name.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, password_hash, role, created_at, updated_at
		FROM members
		ORDER BY name
	`)
	if err != nil {
		return nil, unavailable("list members", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, unavailable("scan member", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate members", err)
	}

	return members, nil
}

// CountMembers returns the number of members.
func (s *SQLiteStore) CountMembers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM members").Scan(&n); err != nil {
		return 0, unavailable("count members", err)
	}
	return n, nil
}

// MemberNames returns the distinct member names.
func (s *SQLiteStore) MemberNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT name FROM members")
	if err != nil {
		return nil, unavailable("list member names", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, unavailable("scan member name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate member names", err)
	}

	return names, nil
}

// UpdateMemberCredential replaces the password hash of a member.
func (s *SQLiteStore) UpdateMemberCredential(ctx context.Context, name, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE members SET password_hash = ?, updated_at = ? WHERE name = ?",
		passwordHash, time.Now().Unix(), name,
	)
	if err != nil {
		return unavailable("update member credential", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("update member credential", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: member %q", storage.ErrNotFound, name)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	member := &models.Member{}
	var role sql.NullString
	if err := row.Scan(
		&member.ID,
		&member.Name,
		&member.PasswordHash,
		&role,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return nil, err
	}
	member.Role = models.ParseRole(role.String)
	return member, nil
}
