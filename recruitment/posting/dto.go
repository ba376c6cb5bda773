package posting

import (
	"time"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
)

// RegisterRequest carries a recruiter's job posting. TopCount defaults to
// 5 when omitted.
type RegisterRequest struct {
	RecruiterName string `json:"recruiter_name" validate:"required,min=2,max=120"`
	Email         string `json:"email" validate:"required,email"`
	Company       string `json:"company" validate:"required,min=2,max=200"`
	Salary        string `json:"salary" validate:"omitempty,max=64"`
	Position      string `json:"position" validate:"required,min=2,max=120"`
	Description   string `json:"description" validate:"required,min=10"`
	TopCount      int    `json:"top_count" validate:"omitempty,min=1,max=100"`
}

const DefaultTopCount = 5

// SignupRequest creates a recruiter account. Posting registration requires
// a recruiter session.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Company  string `json:"company" validate:"required,min=2,max=200"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RankedCandidateResponse struct {
	Rank        int     `json:"rank"`
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	University  string  `json:"university"`
	Similarity  float64 `json:"similarity"`
	ATS         float64 `json:"ats"`
	Offered     bool    `json:"offered"`
}

type PostingResponse struct {
	Recruiter     string                    `json:"recruiter"`
	RecruiterName string                    `json:"recruiter_name"`
	Email         string                    `json:"email"`
	Company       string                    `json:"company"`
	Salary        string                    `json:"salary"`
	Position      string                    `json:"position"`
	Description   string                    `json:"description"`
	TopCount      int                       `json:"top_count"`
	Ranked        []RankedCandidateResponse `json:"ranked_candidates"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

func ToPostingResponse(p *Posting) PostingResponse {
	ranked := make([]RankedCandidateResponse, len(p.RankedCandidates))
	for i, rc := range p.RankedCandidates {
		ranked[i] = RankedCandidateResponse{
			Rank:        rc.Rank,
			CandidateID: rc.CandidateID.String(),
			Name:        rc.Name,
			University:  rc.University.String(),
			Similarity:  rc.Similarity,
			ATS:         rc.ATS,
			Offered:     rc.Offered,
		}
	}

	return PostingResponse{
		Recruiter:     p.Recruiter.String(),
		RecruiterName: p.RecruiterName,
		Email:         p.Email.String(),
		Company:       p.Company,
		Salary:        p.Salary,
		Position:      p.Position.String(),
		Description:   p.Description,
		TopCount:      p.TopCount,
		Ranked:        ranked,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// NewPosting builds an unsaved posting from a validated request. The
// recruiter ID is derived from the email so re-registration by the same
// recruiter lands on the same key.
func NewPosting(req RegisterRequest) *Posting {
	topCount := req.TopCount
	if topCount <= 0 {
		topCount = DefaultTopCount
	}

	now := time.Now()
	return &Posting{
		Recruiter:     kernel.RecruiterID(req.Email),
		RecruiterName: req.RecruiterName,
		Email:         kernel.Email(req.Email),
		Company:       req.Company,
		Salary:        req.Salary,
		Position:      kernel.Position(req.Position),
		Description:   req.Description,
		Signals:       make(map[kernel.Category]candidate.CategorySignal, len(kernel.Categories())),
		TopCount:      topCount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
