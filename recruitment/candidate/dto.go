package candidate

import (
	"time"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
)

// RegisterRequest carries a new candidate registration. CVText and CVPDF
// are alternatives; when both are present the PDF wins.
type RegisterRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=120"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,min=5,max=32"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	University     string `json:"university" validate:"required,min=2,max=200"`
	ExpectedSalary string `json:"expected_salary" validate:"omitempty,max=64"`
	Position       string `json:"position" validate:"required,min=2,max=120"`
	CVText         string `json:"cv_text" validate:"required_without=CVPDF"`
	CVPDF          []byte `json:"cv_pdf,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// SignalResponse exposes a category signal without its embedding vector.
type SignalResponse struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type OfferResponse struct {
	Recruiter      string    `json:"recruiter"`
	Company        string    `json:"company"`
	Salary         string    `json:"salary"`
	JobDescription string    `json:"job_description"`
	Position       string    `json:"position"`
	IssuedAt       time.Time `json:"issued_at"`
}

type ProfileResponse struct {
	ID                string                    `json:"id"`
	Name              string                    `json:"name"`
	Email             string                    `json:"email"`
	Phone             string                    `json:"phone"`
	University        string                    `json:"university"`
	ExpectedSalary    string                    `json:"expected_salary"`
	Position          string                    `json:"position"`
	Signals           map[string]SignalResponse `json:"signals"`
	ATS               float64                   `json:"ats"`
	OverallSimilarity float64                   `json:"overall_similarity"`
	SimilarityHistory []float64                 `json:"similarity_history"`
	Offers            []OfferResponse           `json:"offers"`
	Rejections        []OfferResponse           `json:"rejections"`
	CreatedAt         time.Time                 `json:"created_at"`
}

// ToProfileResponse strips embeddings and internal fields from a profile.
func ToProfileResponse(p *Profile) ProfileResponse {
	signals := make(map[string]SignalResponse, len(p.Signals))
	for category, signal := range p.Signals {
		signals[string(category)] = SignalResponse{
			Text:  signal.Text,
			Score: signal.Score,
		}
	}

	return ProfileResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		Email:             p.Email.String(),
		Phone:             p.Phone.String(),
		University:        p.University.String(),
		ExpectedSalary:    p.ExpectedSalary,
		Position:          p.Position.String(),
		Signals:           signals,
		ATS:               p.ATS,
		OverallSimilarity: p.OverallSimilarity,
		SimilarityHistory: p.SimilarityHistory,
		Offers:            toOfferResponses(p.Offers),
		Rejections:        toOfferResponses(p.Rejections),
		CreatedAt:         p.CreatedAt,
	}
}

func toOfferResponses(offers []CompanyOffer) []OfferResponse {
	out := make([]OfferResponse, len(offers))
	for i, offer := range offers {
		out[i] = OfferResponse{
			Recruiter:      offer.Recruiter.String(),
			Company:        offer.Company,
			Salary:         offer.Salary,
			JobDescription: offer.JobDescription,
			Position:       offer.Position.String(),
			IssuedAt:       offer.IssuedAt,
		}
	}
	return out
}

// NewProfile builds an unsaved profile from a validated request with a
// fresh ID. Signals and scores are filled in by the profile pipeline.
func NewProfile(req RegisterRequest, cvText string) *Profile {
	now := time.Now()
	return &Profile{
		ID:             kernel.GenerateCandidateID(),
		Name:           req.Name,
		Email:          kernel.Email(req.Email),
		Phone:          kernel.Phone(req.Phone),
		University:     kernel.University(req.University),
		ExpectedSalary: req.ExpectedSalary,
		Position:       kernel.Position(req.Position),
		CVText:         cvText,
		Signals:        make(map[kernel.Category]CategorySignal, len(kernel.Categories())),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
