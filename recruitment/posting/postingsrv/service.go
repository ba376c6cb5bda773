package postingsrv

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/fsx"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/logx"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting"
)

// Service registers job postings and ranks the candidate pool against
// them. Ranking is the write-heavy core of the system: it appends to every
// candidate's similarity history, issues offers and rejections, and stores
// the ranked list on the posting.
type Service struct {
	postings   posting.Repository
	candidates candidate.Repository
	extractor  candidate.Extractor
	embedder   candidate.Embedder
	similarity posting.SimilarityService
	rebuilds   posting.RebuildNotifier
	archive    fsx.FileWriter
	validate   *validator.Validate
	cfg        posting.PipelineConfig
}

func NewService(
	postings posting.Repository,
	candidates candidate.Repository,
	extractor candidate.Extractor,
	embedder candidate.Embedder,
	similarity posting.SimilarityService,
	rebuilds posting.RebuildNotifier,
	archive fsx.FileWriter,
	cfg posting.PipelineConfig,
) *Service {
	return &Service{
		postings:   postings,
		candidates: candidates,
		extractor:  extractor,
		embedder:   embedder,
		similarity: similarity,
		rebuilds:   rebuilds,
		archive:    archive,
		validate:   validator.New(),
		cfg:        cfg,
	}
}

// ============================================================================
// Registration and Ranking
// ============================================================================

// Register processes a job posting end to end: extracts and embeds the
// description, ranks the position's candidate pool, issues offers and
// rejections, and persists everything. Re-registration by the same
// recruiter for the same position overwrites the previous posting and
// re-ranks the pool.
func (s *Service) Register(ctx context.Context, req posting.RegisterRequest) (*posting.Posting, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, posting.ErrInvalidRequest(err)
	}

	p := posting.NewPosting(req)

	s.buildSignals(ctx, p)

	s.archiveDescription(ctx, p)

	if err := s.rankPool(ctx, p); err != nil {
		return nil, err
	}

	if err := s.postings.Upsert(ctx, p); err != nil {
		return nil, err
	}

	if s.rebuilds != nil {
		if err := s.rebuilds.NotifyRebuild(ctx, p.Position); err != nil {
			logx.Warnf("Failed to queue ranking rebuild for position %s: %v", p.Position, err)
		}
	}

	logx.Infof("Registered posting by %s for position %s, ranked %d candidates",
		p.Recruiter, p.Position, len(p.RankedCandidates))
	return p, nil
}

// buildSignals extracts and embeds the four category texts of the job
// description. Upstream failures degrade the affected stage to its neutral
// value; categories without an embedding simply contribute 0 similarity.
func (s *Service) buildSignals(ctx context.Context, p *posting.Posting) {
	for _, category := range kernel.Categories() {
		text, err := s.extractor.ExtractCategory(ctx, category, p.Description, kernel.DocumentKindJD)
		if err != nil {
			logx.Warnf("Extraction failed for posting %s category %s, storing empty signal: %v",
				p.Recruiter, category, err)
			p.Signals[category] = candidate.CategorySignal{}
			continue
		}

		signal := candidate.CategorySignal{Text: text}
		if text != "" {
			embedding, err := s.embedder.GenerateEmbedding(ctx, text)
			if err != nil {
				logx.Warnf("Embedding failed for posting %s category %s, storing empty vector: %v",
					p.Recruiter, category, err)
			} else {
				signal.Embedding = embedding
			}
		}
		p.Signals[category] = signal
	}
}

// rankPool scores every candidate in the position's pool against the
// posting, mutating candidate histories and issuing offers and rejections.
func (s *Service) rankPool(ctx context.Context, p *posting.Posting) error {
	pool, err := s.candidates.ListByPosition(ctx, p.Position)
	if err != nil {
		return err
	}

	byID := make(map[kernel.CandidateID]*candidate.Profile, len(pool))

	ranked := make([]posting.RankedCandidate, len(pool))
	for i, profile := range pool {
		similarity := s.pairSimilarity(ctx, p, profile)
		profile.RecordSimilarity(similarity)
		byID[profile.ID] = profile
		ranked[i] = posting.RankedCandidate{
			CandidateID: profile.ID,
			Name:        profile.Name,
			University:  profile.University,
			Similarity:  similarity,
			ATS:         profile.ATS,
		}
	}

	// Order by the cumulative overall similarity, not this posting's
	// score alone. Stable: equal candidates keep their stored order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return byID[ranked[i].CandidateID].OverallSimilarity >
			byID[ranked[j].CandidateID].OverallSimilarity
	})

	offer := p.Offer()
	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Offered = ranked[i].Rank <= p.TopCount

		profile := byID[ranked[i].CandidateID]
		if ranked[i].Offered {
			if profile.AddOffer(offer, s.cfg.DedupOffersByRecruiter) {
				profile.LogNotification(fmt.Sprintf(
					"Offer from %s for %s (rank %d)", p.Company, p.Position, ranked[i].Rank))
			}
		} else {
			if profile.AddRejection(offer, s.cfg.DedupOffersByRecruiter) {
				profile.LogNotification(fmt.Sprintf(
					"Update from %s for %s: not selected this round", p.Company, p.Position))
			}
		}
	}

	// Pool keeps its stored order; only profile contents changed.
	if err := s.candidates.ReplacePool(ctx, p.Position, pool); err != nil {
		return err
	}

	if s.cfg.TruncateRankedListInStorage && len(ranked) > p.TopCount {
		ranked = ranked[:p.TopCount]
	}
	p.RankedCandidates = ranked
	return nil
}

// pairSimilarity is the mean of the four per-category cosine similarities
// between a posting and a candidate. With gating enabled, a category where
// the candidate scored 0 contributes 0 regardless of embedding distance.
// Missing embeddings on either side also contribute 0, and so does a
// category whose comparison fails; the other categories still count.
func (s *Service) pairSimilarity(ctx context.Context, p *posting.Posting, profile *candidate.Profile) float64 {
	var sum float64
	for _, category := range kernel.Categories() {
		cs := profile.Signal(category)
		ps := p.Signal(category)

		if s.cfg.GateZeroScoreSimilarity && cs.Score == 0 {
			continue
		}
		if cs.Embedding.IsEmpty() || ps.Embedding.IsEmpty() {
			continue
		}

		similarity, err := s.similarity.CosineSimilarity(ctx, ps.Embedding, cs.Embedding)
		if err != nil {
			logx.Warnf("Similarity failed for candidate %s category %s against posting %s, contributing 0: %v",
				profile.ID, category, p.Recruiter, err)
			continue
		}
		sum += similarity
	}
	return sum / float64(len(kernel.Categories()))
}

// archiveDescription stores the raw job description for audit. Best
// effort.
func (s *Service) archiveDescription(ctx context.Context, p *posting.Posting) {
	if s.archive == nil {
		return
	}
	key := fmt.Sprintf("jd/%s/%s", p.Position, p.Recruiter)
	if err := s.archive.WriteFile(ctx, key, []byte(p.Description)); err != nil {
		logx.Warnf("Failed to archive job description for posting %s: %v", p.Recruiter, err)
	}
}

// ============================================================================
// Queries
// ============================================================================

func (s *Service) Posting(ctx context.Context, position kernel.Position, recruiter kernel.RecruiterID) (*posting.Posting, error) {
	if position.IsEmpty() || recruiter.IsEmpty() {
		return nil, posting.ErrInvalidRequest(fmt.Errorf("position and recruiter are required"))
	}
	return s.postings.Get(ctx, position, recruiter)
}

// PostingsByPosition lists the postings registered for a position.
func (s *Service) PostingsByPosition(ctx context.Context, position kernel.Position, opts kernel.PaginationOptions) (*kernel.Paginated[posting.PostingResponse], error) {
	if position.IsEmpty() {
		return nil, posting.ErrInvalidRequest(fmt.Errorf("position is required"))
	}

	items, err := s.postings.ListByPosition(ctx, position)
	if err != nil {
		return nil, err
	}

	responses := make([]posting.PostingResponse, len(items))
	for i, p := range items {
		responses[i] = posting.ToPostingResponse(p)
	}
	return kernel.NewPaginated(responses, opts), nil
}
