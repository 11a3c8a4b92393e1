package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// PostgresStore persists submissions in PostgreSQL. Profile and documents are
// stored as JSONB; the wallet key is already lower-cased by ParseAddress.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, submission domain.Submission) error {
	profile, err := json.Marshal(submission.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	documents, err := json.Marshal(submission.Documents)
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}
	query := `
		INSERT INTO submissions (wallet, profile, documents, commitment, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (wallet) DO UPDATE SET
			profile = EXCLUDED.profile,
			documents = EXCLUDED.documents,
			commitment = EXCLUDED.commitment,
			submitted_at = EXCLUDED.submitted_at
	`
	_, err = s.db.ExecContext(ctx, query,
		string(submission.Wallet),
		profile,
		documents,
		string(submission.Commitment),
		submission.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, wallet id.Address) (domain.Submission, error) {
	query := `
		SELECT wallet, profile, documents, commitment, submitted_at
		FROM submissions
		WHERE wallet = $1
	`
	submission, err := scanSubmission(s.db.QueryRowContext(ctx, query, string(wallet)))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Submission{}, ErrNotFound
		}
		return domain.Submission{}, fmt.Errorf("find submission: %w", err)
	}
	return submission, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]domain.Submission, error) {
	query := `
		SELECT wallet, profile, documents, commitment, submitted_at
		FROM submissions
		ORDER BY submitted_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []domain.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

type submissionRow interface {
	Scan(dest ...any) error
}

func scanSubmission(row submissionRow) (domain.Submission, error) {
	var (
		submission domain.Submission
		wallet     string
		commitment string
		profile    []byte
		documents  []byte
	)
	if err := row.Scan(&wallet, &profile, &documents, &commitment, &submission.SubmittedAt); err != nil {
		return domain.Submission{}, err
	}
	submission.Wallet = id.Address(wallet)
	submission.Commitment = domain.Commitment(commitment)
	if err := json.Unmarshal(profile, &submission.Profile); err != nil {
		return domain.Submission{}, fmt.Errorf("decode profile: %w", err)
	}
	if err := json.Unmarshal(documents, &submission.Documents); err != nil {
		return domain.Submission{}, fmt.Errorf("decode documents: %w", err)
	}
	return submission, nil
}
