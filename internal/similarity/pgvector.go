package similarity

import (
	"context"
	"fmt"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Service computes the cosine similarity of two embeddings. Expected range
// is [0,1] for this embedding space.
type Service interface {
	CosineSimilarity(ctx context.Context, a, b kernel.Embedding) (float64, error)
}

// PgvectorService delegates the cosine computation to Postgres with the
// pgvector extension. <=> is cosine distance, so similarity is 1 - distance.
type PgvectorService struct {
	db *sqlx.DB
}

// NewPgvectorService creates a pgvector-backed similarity service.
func NewPgvectorService(db *sqlx.DB) *PgvectorService {
	return &PgvectorService{db: db}
}

// CosineSimilarity computes 1 - cosine_distance(a, b).
func (s *PgvectorService) CosineSimilarity(ctx context.Context, a, b kernel.Embedding) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("cannot compare empty embeddings")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}

	var similarity float64
	err := s.db.GetContext(ctx, &similarity,
		`SELECT 1 - ($1::vector <=> $2::vector)`,
		pgvector.NewVector(a), pgvector.NewVector(b),
	)
	if err != nil {
		return 0, fmt.Errorf("pgvector similarity query: %w", err)
	}

	return similarity, nil
}

// Ping verifies the similarity backend is reachable.
func (s *PgvectorService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
