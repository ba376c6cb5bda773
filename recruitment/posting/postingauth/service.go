package postingauth

import (
	"context"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/errx"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/iam/auth"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/logx"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting"
)

// Service manages recruiter accounts and issues recruiter session tokens.
type Service struct {
	credentials posting.CredentialRepository
	tokens      auth.TokenService
	validate    *validator.Validate
}

func NewService(credentials posting.CredentialRepository, tokens auth.TokenService) *Service {
	return &Service{
		credentials: credentials,
		tokens:      tokens,
		validate:    validator.New(),
	}
}

// Signup creates a recruiter account. Signing up again with the same email
// rotates the password.
func (s *Service) Signup(ctx context.Context, req posting.SignupRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return posting.ErrInvalidRequest(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return posting.ErrRepository(err)
	}
	if err := s.credentials.Store(ctx, kernel.Email(req.Email), string(hash)); err != nil {
		return err
	}

	logx.Infof("Recruiter %s signed up for %s", req.Email, req.Company)
	return nil
}

// Login exchanges recruiter credentials for a session token. The error
// never reveals whether the email was known.
func (s *Service) Login(ctx context.Context, req posting.LoginRequest) (*posting.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, posting.ErrInvalidRequest(err)
	}

	hash, err := s.credentials.Hash(ctx, kernel.Email(req.Email))
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, posting.ErrAuthenticationFailed()
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return nil, posting.ErrAuthenticationFailed()
	}

	token, err := s.tokens.GenerateToken(req.Email, req.Email, auth.RoleRecruiter)
	if err != nil {
		return nil, err
	}

	logx.Infof("Recruiter %s logged in", req.Email)
	return &posting.LoginResponse{Token: token}, nil
}
