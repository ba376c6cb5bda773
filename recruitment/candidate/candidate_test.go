package candidate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
)

func profileWithScores(skills, education, responsibilities, experience float64) *Profile {
	return &Profile{
		Signals: map[kernel.Category]CategorySignal{
			kernel.CategorySkills:           {Text: "go, sql", Score: skills},
			kernel.CategoryEducation:        {Text: "bsc", Score: education},
			kernel.CategoryResponsibilities: {Text: "led team", Score: responsibilities},
			kernel.CategoryExperience:       {Text: "5 years", Score: experience},
		},
	}
}

func TestComputeATS_ScorePolicy(t *testing.T) {
	t.Run("averages the four category scores", func(t *testing.T) {
		p := profileWithScores(80, 60, 40, 20)
		assert.InDelta(t, 50.0, p.ComputeATS(ATSPolicyScores), 1e-9)
	})

	t.Run("missing signals count as zero", func(t *testing.T) {
		p := &Profile{Signals: map[kernel.Category]CategorySignal{
			kernel.CategorySkills: {Text: "go", Score: 100},
		}}
		assert.InDelta(t, 25.0, p.ComputeATS(ATSPolicyScores), 1e-9)
	})

	t.Run("stays within bounds", func(t *testing.T) {
		p := profileWithScores(100, 100, 100, 100)
		assert.LessOrEqual(t, p.ComputeATS(ATSPolicyScores), 100.0)

		empty := &Profile{}
		assert.GreaterOrEqual(t, empty.ComputeATS(ATSPolicyScores), 0.0)
	})
}

func TestComputeATS_LengthPolicy(t *testing.T) {
	t.Run("derives from skills and experience text lengths", func(t *testing.T) {
		p := &Profile{Signals: map[kernel.Category]CategorySignal{
			kernel.CategorySkills:     {Text: strings.Repeat("a", 120)},
			kernel.CategoryExperience: {Text: strings.Repeat("b", 80)},
		}}
		assert.InDelta(t, 10.0, p.ComputeATS(ATSPolicyLength), 1e-9)
	})

	t.Run("caps at 100", func(t *testing.T) {
		p := &Profile{Signals: map[kernel.Category]CategorySignal{
			kernel.CategorySkills:     {Text: strings.Repeat("a", 5000)},
			kernel.CategoryExperience: {Text: strings.Repeat("b", 5000)},
		}}
		assert.Equal(t, 100.0, p.ComputeATS(ATSPolicyLength))
	})

	t.Run("ignores rubric scores entirely", func(t *testing.T) {
		p := profileWithScores(100, 100, 100, 100)
		for category, signal := range p.Signals {
			signal.Text = ""
			p.Signals[category] = signal
		}
		assert.Equal(t, 0.0, p.ComputeATS(ATSPolicyLength))
	})
}

func TestRecordSimilarity(t *testing.T) {
	t.Run("history is append only and overall is the mean", func(t *testing.T) {
		p := &Profile{}

		p.RecordSimilarity(0.8)
		require.Equal(t, []float64{0.8}, p.SimilarityHistory)
		assert.InDelta(t, 0.8, p.OverallSimilarity, 1e-9)

		p.RecordSimilarity(0.4)
		require.Equal(t, []float64{0.8, 0.4}, p.SimilarityHistory)
		assert.InDelta(t, 0.6, p.OverallSimilarity, 1e-9)

		p.RecordSimilarity(0.0)
		require.Len(t, p.SimilarityHistory, 3)
		assert.InDelta(t, 0.4, p.OverallSimilarity, 1e-9)
	})

	t.Run("empty history means zero overall", func(t *testing.T) {
		p := &Profile{}
		p.RecomputeOverallSimilarity()
		assert.Equal(t, 0.0, p.OverallSimilarity)
	})
}

func TestAddOffer(t *testing.T) {
	offer := CompanyOffer{
		Recruiter: kernel.RecruiterID("r-1"),
		Company:   "Acme",
		Position:  kernel.Position("backend engineer"),
	}

	t.Run("dedup drops a repeat offer from the same recruiter", func(t *testing.T) {
		p := &Profile{}
		assert.True(t, p.AddOffer(offer, true))
		assert.False(t, p.AddOffer(offer, true))
		assert.Len(t, p.Offers, 1)
	})

	t.Run("without dedup repeats accumulate", func(t *testing.T) {
		p := &Profile{}
		assert.True(t, p.AddOffer(offer, false))
		assert.True(t, p.AddOffer(offer, false))
		assert.Len(t, p.Offers, 2)
	})

	t.Run("offers from different recruiters always accumulate", func(t *testing.T) {
		p := &Profile{}
		other := offer
		other.Recruiter = kernel.RecruiterID("r-2")
		assert.True(t, p.AddOffer(offer, true))
		assert.True(t, p.AddOffer(other, true))
		assert.Len(t, p.Offers, 2)
	})

	t.Run("rejections dedup independently of offers", func(t *testing.T) {
		p := &Profile{}
		assert.True(t, p.AddOffer(offer, true))
		assert.True(t, p.AddRejection(offer, true))
		assert.False(t, p.AddRejection(offer, true))
		assert.Len(t, p.Rejections, 1)
	})
}
