package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/mod/semver"

	"github.com/nkapoor/mathex/internal/profile"
)

// LoadProfile reads the learner profile. A missing row, a schema
// version from a different major, or a document that fails validation
// all yield a fresh profile: losing stale data beats crashing on it.
func (s *Store) LoadProfile(ctx context.Context, now time.Time) (*profile.UserProfile, error) {
	var version, data string
	err := s.db.QueryRowContext(ctx,
		"SELECT schema_version, data FROM profile WHERE id = 1",
	).Scan(&version, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.New(now), nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	if semver.Major("v"+version) != semver.Major("v"+profile.SchemaVersion) {
		fmt.Fprintf(os.Stderr, "warning: profile schema version %s incompatible with %s, starting fresh\n", version, profile.SchemaVersion)
		return profile.New(now), nil
	}

	if err := validateProfileDoc([]byte(data)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stored profile is corrupt, starting fresh: %v\n", err)
		return profile.New(now), nil
	}

	var p profile.UserProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stored profile failed to decode, starting fresh: %v\n", err)
		return profile.New(now), nil
	}
	return &p, nil
}

// SaveProfile writes the whole aggregate back as one document. The
// profile is small by construction (bounded history and error logs),
// so full-document replacement is fine; there is no protection against
// a second concurrent writer.
func (s *Store) SaveProfile(ctx context.Context, p *profile.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profile (id, schema_version, data, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			schema_version = excluded.schema_version,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		profile.SchemaVersion, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Reset deletes all learner data.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM profile"); err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	return nil
}
