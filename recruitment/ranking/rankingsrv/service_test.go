package rankingsrv

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/ranking"
)

// ============================================================================
// Test Doubles
// ============================================================================

type memoryCandidates struct {
	pools map[string][]*candidate.Profile
}

func (r *memoryCandidates) Create(_ context.Context, p *candidate.Profile) error {
	key := p.Position.String()
	r.pools[key] = append(r.pools[key], p)
	return nil
}

func (r *memoryCandidates) Get(_ context.Context, position kernel.Position, id kernel.CandidateID) (*candidate.Profile, error) {
	for _, p := range r.pools[position.String()] {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound()
}

func (r *memoryCandidates) Update(_ context.Context, p *candidate.Profile) error { return nil }

func (r *memoryCandidates) ListByPosition(_ context.Context, position kernel.Position) ([]*candidate.Profile, error) {
	return r.pools[position.String()], nil
}

func (r *memoryCandidates) ListAll(_ context.Context) ([]*candidate.Profile, error) {
	var all []*candidate.Profile
	for _, pool := range r.pools {
		all = append(all, pool...)
	}
	return all, nil
}

func (r *memoryCandidates) ReplacePool(_ context.Context, position kernel.Position, pool []*candidate.Profile) error {
	r.pools[position.String()] = pool
	return nil
}

type memoryRankings struct {
	items map[string]*ranking.GlobalRanking
}

func (r *memoryRankings) Put(_ context.Context, g *ranking.GlobalRanking) error {
	r.items[g.Position.String()] = g
	return nil
}

func (r *memoryRankings) Get(_ context.Context, position kernel.Position) (*ranking.GlobalRanking, error) {
	g, ok := r.items[position.String()]
	if !ok {
		return nil, ranking.ErrRankingNotFound()
	}
	return g, nil
}

func (r *memoryRankings) ListAll(_ context.Context) ([]*ranking.GlobalRanking, error) {
	var all []*ranking.GlobalRanking
	for _, g := range r.items {
		all = append(all, g)
	}
	return all, nil
}

// ============================================================================
// Fixtures
// ============================================================================

func profile(id, name, university, position string, overall float64) *candidate.Profile {
	return &candidate.Profile{
		ID:                kernel.CandidateID(id),
		Name:              name,
		University:        kernel.University(university),
		Position:          kernel.Position(position),
		OverallSimilarity: overall,
		SimilarityHistory: []float64{overall},
	}
}

func newFixture() (*memoryCandidates, *memoryRankings, *Service) {
	candidates := &memoryCandidates{pools: map[string][]*candidate.Profile{}}
	rankings := &memoryRankings{items: map[string]*ranking.GlobalRanking{}}
	return candidates, rankings, NewService(candidates, rankings)
}

// ============================================================================
// Tests
// ============================================================================

func TestRebuild(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by overall similarity with 1-based ranks", func(t *testing.T) {
		candidates, _, svc := newFixture()
		require.NoError(t, candidates.Create(ctx, profile("c1", "Low", "UNI", "backend", 0.2)))
		require.NoError(t, candidates.Create(ctx, profile("c2", "High", "UNI", "backend", 0.9)))
		require.NoError(t, candidates.Create(ctx, profile("c3", "Mid", "UNI", "backend", 0.5)))

		g, err := svc.Rebuild(ctx, "backend")
		require.NoError(t, err)

		require.Len(t, g.Entries, 3)
		assert.Equal(t, kernel.CandidateID("c2"), g.Entries[0].CandidateID)
		assert.Equal(t, 1, g.Entries[0].Rank)
		assert.Equal(t, kernel.CandidateID("c3"), g.Entries[1].CandidateID)
		assert.Equal(t, kernel.CandidateID("c1"), g.Entries[2].CandidateID)
		assert.Equal(t, 3, g.Entries[2].Rank)
	})

	t.Run("rank one always holds the maximum overall similarity", func(t *testing.T) {
		candidates, _, svc := newFixture()
		values := []float64{0.31, 0.87, 0.87, 0.12, 0.65}
		for i, v := range values {
			require.NoError(t, candidates.Create(ctx, profile(
				string(rune('a'+i)), "N", "UNI", "backend", v)))
		}

		g, err := svc.Rebuild(ctx, "backend")
		require.NoError(t, err)

		max := values[0]
		for _, v := range values {
			if v > max {
				max = v
			}
		}
		assert.InDelta(t, max, g.Entries[0].OverallSimilarity, 1e-9)
	})

	t.Run("is idempotent", func(t *testing.T) {
		candidates, _, svc := newFixture()
		require.NoError(t, candidates.Create(ctx, profile("c1", "A", "UNI", "backend", 0.4)))
		require.NoError(t, candidates.Create(ctx, profile("c2", "B", "UNI", "backend", 0.8)))

		first, err := svc.Rebuild(ctx, "backend")
		require.NoError(t, err)
		second, err := svc.Rebuild(ctx, "backend")
		require.NoError(t, err)

		assert.Equal(t, first.Entries, second.Entries)
	})

	t.Run("equal similarities keep stored order", func(t *testing.T) {
		candidates, _, svc := newFixture()
		require.NoError(t, candidates.Create(ctx, profile("first", "A", "UNI", "backend", 0.5)))
		require.NoError(t, candidates.Create(ctx, profile("second", "B", "UNI", "backend", 0.5)))

		g, err := svc.Rebuild(ctx, "backend")
		require.NoError(t, err)

		assert.Equal(t, kernel.CandidateID("first"), g.Entries[0].CandidateID)
		assert.Equal(t, kernel.CandidateID("second"), g.Entries[1].CandidateID)
	})

	t.Run("empty pool yields an empty ranking", func(t *testing.T) {
		_, rankings, svc := newFixture()
		g, err := svc.Rebuild(ctx, "backend")
		require.NoError(t, err)
		assert.Empty(t, g.Entries)

		stored, err := rankings.Get(ctx, "backend")
		require.NoError(t, err)
		assert.Empty(t, stored.Entries)
	})
}

func TestUniversityReport(t *testing.T) {
	ctx := context.Background()

	t.Run("covers only the requested university across positions", func(t *testing.T) {
		candidates, _, svc := newFixture()
		require.NoError(t, candidates.Create(ctx, profile("c1", "Ana", "MIT", "backend", 0.9)))
		require.NoError(t, candidates.Create(ctx, profile("c2", "Ben", "MIT", "frontend", 0.7)))
		require.NoError(t, candidates.Create(ctx, profile("c3", "Cleo", "Stanford", "backend", 0.8)))

		_, err := svc.Rebuild(ctx, "backend")
		require.NoError(t, err)
		_, err = svc.Rebuild(ctx, "frontend")
		require.NoError(t, err)

		report, err := svc.UniversityReport(ctx, "MIT")
		require.NoError(t, err)

		require.Len(t, report.Rows, 2)
		for _, row := range report.Rows {
			assert.NotEqual(t, "c3", row.CandidateID)
			assert.True(t, row.Ranked)
		}
	})

	t.Run("unranked candidates sort after ranked ones", func(t *testing.T) {
		candidates, _, svc := newFixture()
		require.NoError(t, candidates.Create(ctx, profile("ranked", "Ana", "MIT", "backend", 0.9)))
		require.NoError(t, candidates.Create(ctx, profile("unranked", "Ben", "MIT", "frontend", 0.99)))

		// Only the backend ranking exists.
		_, err := svc.Rebuild(ctx, "backend")
		require.NoError(t, err)

		report, err := svc.UniversityReport(ctx, "MIT")
		require.NoError(t, err)

		require.Len(t, report.Rows, 2)
		assert.Equal(t, "ranked", report.Rows[0].CandidateID)
		assert.True(t, report.Rows[0].Ranked)
		assert.Equal(t, "unranked", report.Rows[1].CandidateID)
		assert.False(t, report.Rows[1].Ranked)
		assert.Equal(t, 0, report.Rows[1].Rank)
	})

	t.Run("repeated runs return the same row order", func(t *testing.T) {
		candidates, _, svc := newFixture()
		for i := 0; i < 8; i++ {
			require.NoError(t, candidates.Create(ctx, profile(
				fmt.Sprintf("c%d", i), "N", "MIT", fmt.Sprintf("role-%d", i), 0.5)))
		}

		// No ranking exists for any position, so every row shares the
		// unranked sort key.
		first, err := svc.UniversityReport(ctx, "MIT")
		require.NoError(t, err)
		require.Len(t, first.Rows, 8)

		for i := 0; i < 20; i++ {
			again, err := svc.UniversityReport(ctx, "MIT")
			require.NoError(t, err)
			assert.Equal(t, first.Rows, again.Rows)
		}
	})

	t.Run("report does not mutate stored data", func(t *testing.T) {
		candidates, rankings, svc := newFixture()
		require.NoError(t, candidates.Create(ctx, profile("c1", "Ana", "MIT", "backend", 0.9)))
		_, err := svc.Rebuild(ctx, "backend")
		require.NoError(t, err)

		before, err := rankings.Get(ctx, "backend")
		require.NoError(t, err)
		beforeLen := len(before.Entries)

		_, err = svc.UniversityReport(ctx, "MIT")
		require.NoError(t, err)
		_, err = svc.UniversityReport(ctx, "MIT")
		require.NoError(t, err)

		after, err := rankings.Get(ctx, "backend")
		require.NoError(t, err)
		assert.Equal(t, beforeLen, len(after.Entries))
	})
}
