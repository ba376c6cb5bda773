package candidatesrv

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/SafalBhandari12/jd-cv-backend/internal/pdf"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/errx"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/fsx"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/logx"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
)

// Service builds and serves candidate profiles. Registration runs the
// profile pipeline: category extraction, embeddings, rubric scores and the
// aggregate ATS score.
type Service struct {
	repo        candidate.Repository
	credentials candidate.CredentialRepository
	extractor   candidate.Extractor
	embedder    candidate.Embedder
	scorer      candidate.Scorer
	archive     fsx.FileWriter
	validate    *validator.Validate
	atsPolicy   candidate.ATSPolicy
}

func NewService(
	repo candidate.Repository,
	credentials candidate.CredentialRepository,
	extractor candidate.Extractor,
	embedder candidate.Embedder,
	scorer candidate.Scorer,
	archive fsx.FileWriter,
	atsPolicy candidate.ATSPolicy,
) *Service {
	return &Service{
		repo:        repo,
		credentials: credentials,
		extractor:   extractor,
		embedder:    embedder,
		scorer:      scorer,
		archive:     archive,
		validate:    validator.New(),
		atsPolicy:   atsPolicy,
	}
}

// ============================================================================
// Registration
// ============================================================================

// Register creates a candidate profile for one position. A candidate may
// register for several positions; each registration is an independent
// profile under the same credentials.
func (s *Service) Register(ctx context.Context, req candidate.RegisterRequest) (*candidate.Profile, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, candidate.ErrInvalidRequest(err)
	}

	cvText, rawCV, err := s.resolveCV(req)
	if err != nil {
		return nil, err
	}

	profile := candidate.NewProfile(req, cvText)

	s.buildSignals(ctx, profile)
	profile.ATS = profile.ComputeATS(s.atsPolicy)

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, candidate.ErrRepository(err)
	}
	if err := s.credentials.Store(ctx, profile.Email, string(hash)); err != nil {
		return nil, err
	}

	s.archiveCV(ctx, profile, rawCV)

	logx.Infof("Registered candidate %s for position %s (ats=%.1f)",
		profile.ID, profile.Position, profile.ATS)
	return profile, nil
}

// resolveCV returns the CV text to run the pipeline on plus the raw bytes
// to archive. An uploaded PDF takes precedence over inline text.
func (s *Service) resolveCV(req candidate.RegisterRequest) (string, []byte, error) {
	if len(req.CVPDF) > 0 {
		text, err := pdf.ExtractText(req.CVPDF)
		if err != nil {
			return "", nil, candidate.ErrCVUnreadable(err)
		}
		return text, req.CVPDF, nil
	}

	text := strings.TrimSpace(req.CVText)
	if text == "" {
		return "", nil, candidate.ErrInvalidRequest(fmt.Errorf("cv text is empty"))
	}
	return text, []byte(text), nil
}

// buildSignals fills in the four category signals. Any upstream failure
// degrades that stage to its neutral value instead of failing the
// registration: empty text, empty embedding, score 0.
func (s *Service) buildSignals(ctx context.Context, profile *candidate.Profile) {
	for _, category := range kernel.Categories() {
		text, err := s.extractor.ExtractCategory(ctx, category, profile.CVText, kernel.DocumentKindCV)
		if err != nil {
			logx.Warnf("Extraction failed for candidate %s category %s, storing empty signal: %v",
				profile.ID, category, err)
			profile.Signals[category] = candidate.CategorySignal{}
			continue
		}

		signal := candidate.CategorySignal{Text: text}

		if text != "" {
			embedding, err := s.embedder.GenerateEmbedding(ctx, text)
			if err != nil {
				logx.Warnf("Embedding failed for candidate %s category %s, storing empty vector: %v",
					profile.ID, category, err)
			} else {
				signal.Embedding = embedding
			}
		}

		score, err := s.scorer.ScoreCategory(ctx, category, text, profile.Position)
		if err != nil {
			logx.Warnf("Scoring failed for candidate %s category %s, storing score 0: %v",
				profile.ID, category, err)
			score = 0
		}
		signal.Score = score

		profile.Signals[category] = signal
	}
}

// archiveCV stores the raw document for audit. Best effort, registration
// does not fail on archive errors.
func (s *Service) archiveCV(ctx context.Context, profile *candidate.Profile, raw []byte) {
	if s.archive == nil || len(raw) == 0 {
		return
	}
	key := fmt.Sprintf("cv/%s/%s", profile.Position, profile.ID)
	if err := s.archive.WriteFile(ctx, key, raw); err != nil {
		logx.Warnf("Failed to archive CV for candidate %s: %v", profile.ID, err)
	}
}

// ============================================================================
// Queries
// ============================================================================

func (s *Service) Profile(ctx context.Context, position kernel.Position, id kernel.CandidateID) (*candidate.Profile, error) {
	if position.IsEmpty() || id.IsEmpty() {
		return nil, candidate.ErrInvalidRequest(fmt.Errorf("position and candidate id are required"))
	}
	return s.repo.Get(ctx, position, id)
}

// ProfilesByPosition lists the candidate pool for a position, paginated in
// stored order.
func (s *Service) ProfilesByPosition(ctx context.Context, position kernel.Position, opts kernel.PaginationOptions) (*kernel.Paginated[candidate.ProfileResponse], error) {
	if position.IsEmpty() {
		return nil, candidate.ErrInvalidRequest(fmt.Errorf("position is required"))
	}

	pool, err := s.repo.ListByPosition(ctx, position)
	if err != nil {
		return nil, err
	}

	responses := make([]candidate.ProfileResponse, len(pool))
	for i, p := range pool {
		responses[i] = candidate.ToProfileResponse(p)
	}
	return kernel.NewPaginated(responses, opts), nil
}

// Authenticate checks the password against the stored hash. The returned
// error never reveals whether the email was known.
func (s *Service) Authenticate(ctx context.Context, email kernel.Email, password string) error {
	hash, err := s.credentials.Hash(ctx, email)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return candidate.ErrAuthenticationFailed()
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return candidate.ErrAuthenticationFailed()
	}
	return nil
}
