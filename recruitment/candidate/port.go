package candidate

import (
	"context"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
)

// Repository persists candidate profiles keyed by (position, candidate ID).
type Repository interface {
	// Create stores a new profile. Returns a conflict error when a profile
	// already exists for the same position and candidate ID.
	Create(ctx context.Context, profile *Profile) error

	Get(ctx context.Context, position kernel.Position, id kernel.CandidateID) (*Profile, error)

	Update(ctx context.Context, profile *Profile) error

	// ListByPosition returns every profile registered for a position, in
	// stored order.
	ListByPosition(ctx context.Context, position kernel.Position) ([]*Profile, error)

	ListAll(ctx context.Context) ([]*Profile, error)

	// ReplacePool writes back the full candidate pool for a position in a
	// single operation, preserving the given order.
	ReplacePool(ctx context.Context, position kernel.Position, pool []*Profile) error
}

// CredentialRepository stores login credentials, keyed by email. One
// credential serves all of a candidate's per-position profiles.
type CredentialRepository interface {
	Store(ctx context.Context, email kernel.Email, passwordHash string) error

	// Hash returns the stored password hash, or a not-found error.
	Hash(ctx context.Context, email kernel.Email) (string, error)
}

// Extractor pulls the text for one category out of a raw document.
type Extractor interface {
	ExtractCategory(ctx context.Context, category kernel.Category, sourceText string, kind kernel.DocumentKind) (string, error)
}

// Embedder turns category text into a vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) (kernel.Embedding, error)
}

// Scorer assigns a 0-100 rubric score to one category of a CV.
type Scorer interface {
	ScoreCategory(ctx context.Context, category kernel.Category, text string, position kernel.Position) (float64, error)
}
