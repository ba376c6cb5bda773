package posting

import (
	"context"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
)

// Repository persists postings keyed by (position, recruiter).
type Repository interface {
	// Upsert stores a posting, overwriting any previous posting by the
	// same recruiter for the same position.
	Upsert(ctx context.Context, p *Posting) error

	Get(ctx context.Context, position kernel.Position, recruiter kernel.RecruiterID) (*Posting, error)

	ListByPosition(ctx context.Context, position kernel.Position) ([]*Posting, error)

	ListAll(ctx context.Context) ([]*Posting, error)
}

// CredentialRepository stores recruiter login credentials keyed by email.
type CredentialRepository interface {
	Store(ctx context.Context, email kernel.Email, passwordHash string) error

	// Hash returns the stored password hash, or a not-found error.
	Hash(ctx context.Context, email kernel.Email) (string, error)
}

// SimilarityService computes cosine similarity between two embeddings.
type SimilarityService interface {
	CosineSimilarity(ctx context.Context, a, b kernel.Embedding) (float64, error)
}

// RebuildNotifier signals that the global ranking for a position must be
// recomputed after a ranking run changed overall similarities.
type RebuildNotifier interface {
	NotifyRebuild(ctx context.Context, position kernel.Position) error
}
