package candidate

import (
	"time"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
)

// CategorySignal is the extracted text, embedding and rubric score for one
// of the four fixed categories of a document.
type CategorySignal struct {
	Text      string           `json:"text"`
	Embedding kernel.Embedding `json:"embedding,omitempty"`
	Score     float64          `json:"score"`
}

// CompanyOffer is a denormalized snapshot of a posting at the moment an
// offer or rejection was issued. Later edits to the posting do not change
// historical offer records.
type CompanyOffer struct {
	Recruiter      kernel.RecruiterID `json:"recruiter"`
	Company        string             `json:"company"`
	Salary         string             `json:"salary"`
	JobDescription string             `json:"job_description"`
	Position       kernel.Position    `json:"position"`
	IssuedAt       time.Time          `json:"issued_at"`
}

// NotificationEntry records a message queued for delivery to the
// candidate. Actual delivery is handled outside this system.
type NotificationEntry struct {
	Message  string    `json:"message"`
	LoggedAt time.Time `json:"logged_at"`
}

// Profile is one candidate's record for one position. A candidate applying
// to N positions holds N independent profiles keyed by
// (position, candidate ID).
type Profile struct {
	ID             kernel.CandidateID `json:"id"`
	Name           string             `json:"name"`
	Email          kernel.Email       `json:"email"`
	Phone          kernel.Phone       `json:"phone"`
	University     kernel.University  `json:"university"`
	ExpectedSalary string             `json:"expected_salary"`
	Position       kernel.Position    `json:"position"`
	CVText         string             `json:"cv_text"`

	Signals map[kernel.Category]CategorySignal `json:"signals"`

	// ATS is computed once at profile creation and never recomputed when
	// similarity history changes.
	ATS float64 `json:"ats"`

	// OverallSimilarity is the running mean of SimilarityHistory, 0 when
	// the history is empty.
	OverallSimilarity float64   `json:"overall_similarity"`
	SimilarityHistory []float64 `json:"similarity_history"`

	Offers        []CompanyOffer      `json:"offers"`
	Rejections    []CompanyOffer      `json:"rejections"`
	Notifications []NotificationEntry `json:"notifications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Signal returns the signal stored for a category, zero-valued when
// extraction never produced one.
func (p *Profile) Signal(category kernel.Category) CategorySignal {
	if p.Signals == nil {
		return CategorySignal{}
	}
	return p.Signals[category]
}

// RecordSimilarity appends one per-posting similarity to the history and
// recomputes the running mean. History is append-only.
func (p *Profile) RecordSimilarity(similarity float64) {
	p.SimilarityHistory = append(p.SimilarityHistory, similarity)
	p.RecomputeOverallSimilarity()
	p.UpdatedAt = time.Now()
}

// RecomputeOverallSimilarity restores the invariant
// OverallSimilarity == mean(SimilarityHistory).
func (p *Profile) RecomputeOverallSimilarity() {
	if len(p.SimilarityHistory) == 0 {
		p.OverallSimilarity = 0
		return
	}

	var sum float64
	for _, s := range p.SimilarityHistory {
		sum += s
	}
	p.OverallSimilarity = sum / float64(len(p.SimilarityHistory))
}

// HasOfferFrom reports whether the candidate already holds an offer from
// the recruiter.
func (p *Profile) HasOfferFrom(recruiter kernel.RecruiterID) bool {
	for _, offer := range p.Offers {
		if offer.Recruiter == recruiter {
			return true
		}
	}
	return false
}

// HasRejectionFrom reports whether the candidate already holds a rejection
// from the recruiter.
func (p *Profile) HasRejectionFrom(recruiter kernel.RecruiterID) bool {
	for _, rejection := range p.Rejections {
		if rejection.Recruiter == recruiter {
			return true
		}
	}
	return false
}

// AddOffer appends an offer snapshot. With dedup enabled, a repeated offer
// from the same recruiter is dropped. Returns whether the offer was added.
func (p *Profile) AddOffer(offer CompanyOffer, dedupByRecruiter bool) bool {
	if dedupByRecruiter && p.HasOfferFrom(offer.Recruiter) {
		return false
	}
	p.Offers = append(p.Offers, offer)
	p.UpdatedAt = time.Now()
	return true
}

// AddRejection appends a rejection snapshot, with the same dedup rule as
// offers.
func (p *Profile) AddRejection(rejection CompanyOffer, dedupByRecruiter bool) bool {
	if dedupByRecruiter && p.HasRejectionFrom(rejection.Recruiter) {
		return false
	}
	p.Rejections = append(p.Rejections, rejection)
	p.UpdatedAt = time.Now()
	return true
}

// LogNotification appends to the candidate's notification log.
func (p *Profile) LogNotification(message string) {
	p.Notifications = append(p.Notifications, NotificationEntry{
		Message:  message,
		LoggedAt: time.Now(),
	})
}

// ============================================================================
// ATS Scoring
// ============================================================================

// ATSPolicy selects how the aggregate ATS score is derived at profile
// creation. The two policies are alternatives, never mixed.
type ATSPolicy string

const (
	// ATSPolicyScores averages the four category rubric scores. Primary.
	ATSPolicyScores ATSPolicy = "scores"
	// ATSPolicyLength is the legacy policy derived from the character
	// lengths of the skills and experience texts.
	ATSPolicyLength ATSPolicy = "length"
)

// ComputeATS derives the aggregate 0-100 score from the profile's signals
// under the given policy.
func (p *Profile) ComputeATS(policy ATSPolicy) float64 {
	switch policy {
	case ATSPolicyLength:
		raw := float64(len(p.Signal(kernel.CategorySkills).Text)+
			len(p.Signal(kernel.CategoryExperience).Text)) / 20
		return clampScore(raw)
	default:
		var sum float64
		for _, category := range kernel.Categories() {
			sum += p.Signal(category).Score
		}
		return clampScore(sum / float64(len(kernel.Categories())))
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
