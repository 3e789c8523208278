package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/kaskos/internal/models"
)

// RosterEntry is one member in the seed file.
type RosterEntry struct {
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

// Roster is the seed file layout:
//
//	members:
//	  - name: Aqil
//	    role: admin
//	    password: change-me-now
type Roster struct {
	Members []RosterEntry `yaml:"members"`
}

// LoadRoster reads a roster seed file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	seen := make(map[string]bool, len(roster.Members))
	for i, m := range roster.Members {
		if m.Name == "" {
			return nil, fmt.Errorf("roster entry %d has no name", i+1)
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("roster lists %q twice", m.Name)
		}
		seen[m.Name] = true
	}

	return &roster, nil
}

// MemberCounter reports how many members exist.
type MemberCounter interface {
	CountMembers(ctx context.Context) (int64, error)
}

// SeedRoster registers every roster entry, but only when no members exist
// yet. All entries are checked before any is inserted, so a bad file
// leaves the member set empty and a corrected file can be seeded on the
// next start. It returns the number of members created.
func SeedRoster(ctx context.Context, counter MemberCounter, authenticator Authenticator, roster *Roster) (int, error) {
	n, err := counter.CountMembers(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Debug("Roster already seeded", "members", n)
		return 0, nil
	}
	if roster == nil || len(roster.Members) == 0 {
		slog.Warn("Member set is empty and no roster was provided")
		return 0, nil
	}

	if err := validateRoster(authenticator, roster); err != nil {
		return 0, err
	}

	created := 0
	for _, entry := range roster.Members {
		member, err := authenticator.Register(ctx, entry.Name, models.ParseRole(entry.Role), entry.Password)
		if err != nil {
			return created, fmt.Errorf("failed to seed member %q: %w", entry.Name, err)
		}
		slog.Info("Seeded member", "name", member.Name, "role", member.Role)
		created++
	}

	return created, nil
}

// validateRoster reports every bad entry at once.
func validateRoster(authenticator Authenticator, roster *Roster) error {
	var errs []error
	seen := make(map[string]bool, len(roster.Members))
	for i, entry := range roster.Members {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("roster entry %d has no name", i+1))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("roster lists %q twice", name))
		}
		seen[name] = true
		if err := authenticator.ValidateCredential(entry.Password); err != nil {
			errs = append(errs, fmt.Errorf("roster member %q: %w", name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("roster not seeded: %w", errors.Join(errs...))
	}
	return nil
}
