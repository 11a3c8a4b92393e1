package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"brickgate/migrations"
)

// Migrate applies the embedded up migrations in lexical order. Statements are
// idempotent (CREATE TABLE IF NOT EXISTS) so re-running on boot is safe.
func (p *Pool) Migrate(ctx context.Context) error {
	if p == nil || p.db == nil {
		return nil
	}

	entries, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(entries)

	for _, name := range entries {
		raw, err := migrations.FS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if strings.TrimSpace(string(raw)) == "" {
			continue
		}
		if _, err := p.db.ExecContext(ctx, string(raw)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
