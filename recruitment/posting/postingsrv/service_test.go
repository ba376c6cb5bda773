package postingsrv

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting"
)

// ============================================================================
// Test Doubles
// ============================================================================

type memoryPostings struct {
	items map[string]*posting.Posting
}

func newMemoryPostings() *memoryPostings {
	return &memoryPostings{items: map[string]*posting.Posting{}}
}

func postingKey(position kernel.Position, recruiter kernel.RecruiterID) string {
	return position.String() + "/" + recruiter.String()
}

func (r *memoryPostings) Upsert(_ context.Context, p *posting.Posting) error {
	r.items[postingKey(p.Position, p.Recruiter)] = p
	return nil
}

func (r *memoryPostings) Get(_ context.Context, position kernel.Position, recruiter kernel.RecruiterID) (*posting.Posting, error) {
	p, ok := r.items[postingKey(position, recruiter)]
	if !ok {
		return nil, posting.ErrPostingNotFound()
	}
	return p, nil
}

func (r *memoryPostings) ListByPosition(_ context.Context, position kernel.Position) ([]*posting.Posting, error) {
	var out []*posting.Posting
	for _, p := range r.items {
		if p.Position == position {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryPostings) ListAll(_ context.Context) ([]*posting.Posting, error) {
	var out []*posting.Posting
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

type memoryCandidates struct {
	pools map[string][]*candidate.Profile
}

func newMemoryCandidates() *memoryCandidates {
	return &memoryCandidates{pools: map[string][]*candidate.Profile{}}
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

func (r *memoryCandidates) Update(_ context.Context, p *candidate.Profile) error {
	for i, existing := range r.pools[p.Position.String()] {
		if existing.ID == p.ID {
			r.pools[p.Position.String()][i] = p
			return nil
		}
	}
	return candidate.ErrCandidateNotFound()
}

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

type stubExtractor struct{}

func (stubExtractor) ExtractCategory(_ context.Context, category kernel.Category, _ string, _ kernel.DocumentKind) (string, error) {
	return "jd " + string(category), nil
}

type stubEmbedder struct{}

func (stubEmbedder) GenerateEmbedding(_ context.Context, _ string) (kernel.Embedding, error) {
	return kernel.Embedding{1, 0}, nil
}

// cosineSimilarity computes the real cosine over the tiny test vectors.
type cosineSimilarity struct {
	failFor kernel.Embedding
}

func (s cosineSimilarity) CosineSimilarity(_ context.Context, a, b kernel.Embedding) (float64, error) {
	if s.failFor != nil && len(b) == len(s.failFor) {
		same := true
		for i := range b {
			if b[i] != s.failFor[i] {
				same = false
				break
			}
		}
		if same {
			return 0, fmt.Errorf("similarity backend unavailable")
		}
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

type recordingNotifier struct {
	positions []kernel.Position
}

func (n *recordingNotifier) NotifyRebuild(_ context.Context, position kernel.Position) error {
	n.positions = append(n.positions, position)
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

const testPosition = "backend engineer"

// testProfile builds a candidate whose four category vectors all equal vec
// and whose four rubric scores all equal score.
func testProfile(id, name string, vec kernel.Embedding, score float64) *candidate.Profile {
	signals := map[kernel.Category]candidate.CategorySignal{}
	for _, category := range kernel.Categories() {
		signals[category] = candidate.CategorySignal{
			Text:      "cv " + string(category),
			Embedding: vec,
			Score:     score,
		}
	}
	return &candidate.Profile{
		ID:         kernel.CandidateID(id),
		Name:       name,
		University: "Test University",
		Position:   testPosition,
		Signals:    signals,
		ATS:        score,
	}
}

func postingRequest(email string, topCount int) posting.RegisterRequest {
	return posting.RegisterRequest{
		RecruiterName: "Sam Recruiter",
		Email:         email,
		Company:       "Acme",
		Salary:        "90000",
		Position:      testPosition,
		Description:   "We need a Go backend engineer with Postgres experience.",
		TopCount:      topCount,
	}
}

func newTestService(postings *memoryPostings, candidates *memoryCandidates, sim posting.SimilarityService, notifier posting.RebuildNotifier, cfg posting.PipelineConfig) *Service {
	return NewService(postings, candidates, stubExtractor{}, stubEmbedder{}, sim, notifier, nil, cfg)
}

// ============================================================================
// Tests
// ============================================================================

func TestRegister_RanksPool(t *testing.T) {
	ctx := context.Background()
	postingsRepo := newMemoryPostings()
	candidatesRepo := newMemoryCandidates()
	notifier := &recordingNotifier{}

	// Posting vectors are {1,0}. Expected similarities: a=1.0, b=0.0,
	// c=0.6.
	a := testProfile("cand-a", "Ana", kernel.Embedding{1, 0}, 70)
	b := testProfile("cand-b", "Ben", kernel.Embedding{0, 1}, 70)
	c := testProfile("cand-c", "Cleo", kernel.Embedding{0.6, 0.8}, 70)
	for _, p := range []*candidate.Profile{a, b, c} {
		require.NoError(t, candidatesRepo.Create(ctx, p))
	}

	svc := newTestService(postingsRepo, candidatesRepo, cosineSimilarity{}, notifier, posting.DefaultPipelineConfig())

	p, err := svc.Register(ctx, postingRequest("sam@acme.com", 2))
	require.NoError(t, err)

	t.Run("ranked list is descending with 1-based ranks", func(t *testing.T) {
		require.Len(t, p.RankedCandidates, 3)
		assert.Equal(t, kernel.CandidateID("cand-a"), p.RankedCandidates[0].CandidateID)
		assert.Equal(t, kernel.CandidateID("cand-c"), p.RankedCandidates[1].CandidateID)
		assert.Equal(t, kernel.CandidateID("cand-b"), p.RankedCandidates[2].CandidateID)
		for i, rc := range p.RankedCandidates {
			assert.Equal(t, i+1, rc.Rank)
		}
		assert.InDelta(t, 1.0, p.RankedCandidates[0].Similarity, 1e-9)
		assert.InDelta(t, 0.6, p.RankedCandidates[1].Similarity, 1e-9)
		assert.InDelta(t, 0.0, p.RankedCandidates[2].Similarity, 1e-9)
	})

	t.Run("top candidates get offers and the rest rejections", func(t *testing.T) {
		assert.Len(t, a.Offers, 1)
		assert.Len(t, c.Offers, 1)
		assert.Empty(t, b.Offers)
		assert.Len(t, b.Rejections, 1)

		assert.Equal(t, "Acme", a.Offers[0].Company)
		assert.Equal(t, kernel.Position(testPosition), a.Offers[0].Position)
		assert.NotEmpty(t, a.Notifications)
	})

	t.Run("histories are appended and overall recomputed", func(t *testing.T) {
		require.Equal(t, []float64{1.0}, a.SimilarityHistory)
		assert.InDelta(t, 1.0, a.OverallSimilarity, 1e-9)
		require.Len(t, b.SimilarityHistory, 1)
		assert.InDelta(t, 0.0, b.OverallSimilarity, 1e-9)
	})

	t.Run("posting is persisted and a rebuild queued", func(t *testing.T) {
		stored, err := postingsRepo.Get(ctx, testPosition, kernel.RecruiterID("sam@acme.com"))
		require.NoError(t, err)
		assert.Len(t, stored.RankedCandidates, 3)
		assert.Equal(t, []kernel.Position{testPosition}, notifier.positions)
	})
}

func TestRegister_Reregistration(t *testing.T) {
	ctx := context.Background()
	postingsRepo := newMemoryPostings()
	candidatesRepo := newMemoryCandidates()

	a := testProfile("cand-a", "Ana", kernel.Embedding{1, 0}, 70)
	require.NoError(t, candidatesRepo.Create(ctx, a))

	svc := newTestService(postingsRepo, candidatesRepo, cosineSimilarity{}, nil, posting.DefaultPipelineConfig())

	_, err := svc.Register(ctx, postingRequest("sam@acme.com", 1))
	require.NoError(t, err)
	_, err = svc.Register(ctx, postingRequest("sam@acme.com", 1))
	require.NoError(t, err)

	t.Run("overwrites instead of duplicating the posting", func(t *testing.T) {
		all, err := postingsRepo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("history grows on every run but offers dedup", func(t *testing.T) {
		assert.Len(t, a.SimilarityHistory, 2)
		assert.Len(t, a.Offers, 1)
	})
}

func TestRegister_RanksByOverallNotCurrentSimilarity(t *testing.T) {
	ctx := context.Background()
	postingsRepo := newMemoryPostings()
	candidatesRepo := newMemoryCandidates()

	// Veteran scores 0 against this posting but carries a strong history:
	// overall after append is (1.0+1.0+0.0)/3. Newcomer scores 0.6 with no
	// history, so overall 0.6 < 2/3 and the veteran stays on top.
	veteran := testProfile("cand-v", "Vera", kernel.Embedding{0, 1}, 70)
	veteran.SimilarityHistory = []float64{1.0, 1.0}
	veteran.RecomputeOverallSimilarity()
	newcomer := testProfile("cand-n", "Nico", kernel.Embedding{0.6, 0.8}, 70)
	require.NoError(t, candidatesRepo.Create(ctx, veteran))
	require.NoError(t, candidatesRepo.Create(ctx, newcomer))

	svc := newTestService(postingsRepo, candidatesRepo, cosineSimilarity{}, nil, posting.DefaultPipelineConfig())

	p, err := svc.Register(ctx, postingRequest("sam@acme.com", 1))
	require.NoError(t, err)

	require.Len(t, p.RankedCandidates, 2)
	assert.Equal(t, kernel.CandidateID("cand-v"), p.RankedCandidates[0].CandidateID)
	// The row still carries this posting's similarity, not the overall.
	assert.InDelta(t, 0.0, p.RankedCandidates[0].Similarity, 1e-9)
	assert.Equal(t, kernel.CandidateID("cand-n"), p.RankedCandidates[1].CandidateID)
	assert.InDelta(t, 0.6, p.RankedCandidates[1].Similarity, 1e-9)
}

func TestRegister_ZeroScoreGating(t *testing.T) {
	ctx := context.Background()

	run := func(gate bool) float64 {
		postingsRepo := newMemoryPostings()
		candidatesRepo := newMemoryCandidates()

		// Identical vectors but every rubric score is 0.
		p := testProfile("cand-a", "Ana", kernel.Embedding{1, 0}, 0)
		require.NoError(t, candidatesRepo.Create(ctx, p))

		cfg := posting.DefaultPipelineConfig()
		cfg.GateZeroScoreSimilarity = gate
		svc := newTestService(postingsRepo, candidatesRepo, cosineSimilarity{}, nil, cfg)

		registered, err := svc.Register(ctx, postingRequest("sam@acme.com", 1))
		require.NoError(t, err)
		return registered.RankedCandidates[0].Similarity
	}

	assert.InDelta(t, 0.0, run(true), 1e-9)
	assert.InDelta(t, 1.0, run(false), 1e-9)
}

func TestRegister_AllZeroPoolKeepsStoredOrder(t *testing.T) {
	ctx := context.Background()
	postingsRepo := newMemoryPostings()
	candidatesRepo := newMemoryCandidates()

	// All three gate to 0; the stable sort must keep stored order.
	first := testProfile("cand-1", "First", kernel.Embedding{1, 0}, 0)
	second := testProfile("cand-2", "Second", kernel.Embedding{1, 0}, 0)
	third := testProfile("cand-3", "Third", kernel.Embedding{1, 0}, 0)
	for _, p := range []*candidate.Profile{first, second, third} {
		require.NoError(t, candidatesRepo.Create(ctx, p))
	}

	svc := newTestService(postingsRepo, candidatesRepo, cosineSimilarity{}, nil, posting.DefaultPipelineConfig())

	p, err := svc.Register(ctx, postingRequest("sam@acme.com", 2))
	require.NoError(t, err)

	require.Len(t, p.RankedCandidates, 3)
	assert.Equal(t, kernel.CandidateID("cand-1"), p.RankedCandidates[0].CandidateID)
	assert.Equal(t, kernel.CandidateID("cand-2"), p.RankedCandidates[1].CandidateID)
	assert.Equal(t, kernel.CandidateID("cand-3"), p.RankedCandidates[2].CandidateID)
}

func TestRegister_SimilarityFailureDegradesPerCategory(t *testing.T) {
	ctx := context.Background()
	postingsRepo := newMemoryPostings()
	candidatesRepo := newMemoryCandidates()

	healthy := testProfile("cand-a", "Ana", kernel.Embedding{1, 0}, 70)

	// One of the four category vectors triggers a comparison failure; the
	// other three match the posting vector exactly.
	degraded := testProfile("cand-b", "Ben", kernel.Embedding{1, 0}, 70)
	poisoned := degraded.Signals[kernel.CategoryEducation]
	poisoned.Embedding = kernel.Embedding{9, 9}
	degraded.Signals[kernel.CategoryEducation] = poisoned

	require.NoError(t, candidatesRepo.Create(ctx, healthy))
	require.NoError(t, candidatesRepo.Create(ctx, degraded))

	sim := cosineSimilarity{failFor: kernel.Embedding{9, 9}}
	svc := newTestService(postingsRepo, candidatesRepo, sim, nil, posting.DefaultPipelineConfig())

	p, err := svc.Register(ctx, postingRequest("sam@acme.com", 1))
	require.NoError(t, err)

	// Only the failing category records 0; the three healthy ones still
	// contribute 1.0 each, so the pair lands at 0.75.
	require.Len(t, p.RankedCandidates, 2)
	assert.Equal(t, kernel.CandidateID("cand-a"), p.RankedCandidates[0].CandidateID)
	assert.InDelta(t, 1.0, p.RankedCandidates[0].Similarity, 1e-9)
	assert.Equal(t, kernel.CandidateID("cand-b"), p.RankedCandidates[1].CandidateID)
	assert.InDelta(t, 0.75, p.RankedCandidates[1].Similarity, 1e-9)
	require.Len(t, degraded.SimilarityHistory, 1)
	assert.InDelta(t, 0.75, degraded.SimilarityHistory[0], 1e-9)
}

func TestRegister_TruncatedStorage(t *testing.T) {
	ctx := context.Background()
	postingsRepo := newMemoryPostings()
	candidatesRepo := newMemoryCandidates()

	for i := 0; i < 4; i++ {
		p := testProfile(fmt.Sprintf("cand-%d", i), fmt.Sprintf("C%d", i), kernel.Embedding{1, 0}, 70)
		require.NoError(t, candidatesRepo.Create(ctx, p))
	}

	cfg := posting.DefaultPipelineConfig()
	cfg.TruncateRankedListInStorage = true
	svc := newTestService(postingsRepo, candidatesRepo, cosineSimilarity{}, nil, cfg)

	p, err := svc.Register(ctx, postingRequest("sam@acme.com", 2))
	require.NoError(t, err)

	assert.Len(t, p.RankedCandidates, 2)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(newMemoryPostings(), newMemoryCandidates(), cosineSimilarity{}, nil, posting.DefaultPipelineConfig())

	req := postingRequest("not-an-email", 1)
	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}
