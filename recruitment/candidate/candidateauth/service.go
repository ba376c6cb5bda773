package candidateauth

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/iam/auth"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/logx"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate/candidatesrv"
)

// Service exchanges candidate credentials for a session token.
type Service struct {
	candidates *candidatesrv.Service
	tokens     auth.TokenService
	validate   *validator.Validate
}

func NewService(candidates *candidatesrv.Service, tokens auth.TokenService) *Service {
	return &Service{
		candidates: candidates,
		tokens:     tokens,
		validate:   validator.New(),
	}
}

func (s *Service) Login(ctx context.Context, req candidate.LoginRequest) (*candidate.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, candidate.ErrInvalidRequest(err)
	}

	email := kernel.Email(req.Email)
	if err := s.candidates.Authenticate(ctx, email, req.Password); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(req.Email, req.Email, auth.RoleCandidate)
	if err != nil {
		return nil, err
	}

	logx.Infof("Candidate %s logged in", req.Email)
	return &candidate.LoginResponse{Token: token}, nil
}
