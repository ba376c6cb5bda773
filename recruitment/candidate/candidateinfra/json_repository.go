package candidateinfra

import (
	"context"
	"sort"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/storex"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
)

// candidateDocument is the on-disk shape of the candidate store: one pool
// of profiles per position.
type candidateDocument struct {
	Pools map[string][]*candidate.Profile `json:"pools"`
}

func emptyCandidateDocument() candidateDocument {
	return candidateDocument{Pools: map[string][]*candidate.Profile{}}
}

// JSONRepository persists candidate pools in a single JSON document.
type JSONRepository struct {
	store *storex.File
}

func NewJSONRepository(store *storex.File) *JSONRepository {
	return &JSONRepository{store: store}
}

func (r *JSONRepository) Create(ctx context.Context, profile *candidate.Profile) error {
	err := r.store.Update(func(read, write func(any) error) error {
		doc := emptyCandidateDocument()
		if err := read(&doc); err != nil {
			return err
		}

		pool := doc.Pools[profile.Position.String()]
		for _, existing := range pool {
			if existing.ID == profile.ID {
				return candidate.ErrCandidateExists().
					WithDetail("candidate_id", profile.ID.String()).
					WithDetail("position", profile.Position.String())
			}
		}

		doc.Pools[profile.Position.String()] = append(pool, profile)
		return write(doc)
	})
	return wrapStoreError(err)
}

func (r *JSONRepository) Get(ctx context.Context, position kernel.Position, id kernel.CandidateID) (*candidate.Profile, error) {
	doc := emptyCandidateDocument()
	if err := r.store.Read(&doc); err != nil {
		return nil, candidate.ErrRepository(err)
	}

	for _, profile := range doc.Pools[position.String()] {
		if profile.ID == id {
			return profile, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound().
		WithDetail("candidate_id", id.String()).
		WithDetail("position", position.String())
}

func (r *JSONRepository) Update(ctx context.Context, profile *candidate.Profile) error {
	err := r.store.Update(func(read, write func(any) error) error {
		doc := emptyCandidateDocument()
		if err := read(&doc); err != nil {
			return err
		}

		pool := doc.Pools[profile.Position.String()]
		for i, existing := range pool {
			if existing.ID == profile.ID {
				pool[i] = profile
				return write(doc)
			}
		}
		return candidate.ErrCandidateNotFound().
			WithDetail("candidate_id", profile.ID.String()).
			WithDetail("position", profile.Position.String())
	})
	return wrapStoreError(err)
}

func (r *JSONRepository) ListByPosition(ctx context.Context, position kernel.Position) ([]*candidate.Profile, error) {
	doc := emptyCandidateDocument()
	if err := r.store.Read(&doc); err != nil {
		return nil, candidate.ErrRepository(err)
	}
	return doc.Pools[position.String()], nil
}

// ListAll walks pools in sorted position order so repeated scans over an
// unchanged store return profiles in the same sequence.
func (r *JSONRepository) ListAll(ctx context.Context) ([]*candidate.Profile, error) {
	doc := emptyCandidateDocument()
	if err := r.store.Read(&doc); err != nil {
		return nil, candidate.ErrRepository(err)
	}

	positions := make([]string, 0, len(doc.Pools))
	for position := range doc.Pools {
		positions = append(positions, position)
	}
	sort.Strings(positions)

	var all []*candidate.Profile
	for _, position := range positions {
		all = append(all, doc.Pools[position]...)
	}
	return all, nil
}

func (r *JSONRepository) ReplacePool(ctx context.Context, position kernel.Position, pool []*candidate.Profile) error {
	err := r.store.Update(func(read, write func(any) error) error {
		doc := emptyCandidateDocument()
		if err := read(&doc); err != nil {
			return err
		}
		doc.Pools[position.String()] = pool
		return write(doc)
	})
	return wrapStoreError(err)
}
