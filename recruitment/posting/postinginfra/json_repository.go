package postinginfra

import (
	"context"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/errx"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/storex"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting"
)

// postingDocument is the on-disk shape of the posting store: per position,
// a list of postings keyed by recruiter within it.
type postingDocument struct {
	Postings map[string][]*posting.Posting `json:"postings"`
}

func emptyPostingDocument() postingDocument {
	return postingDocument{Postings: map[string][]*posting.Posting{}}
}

// JSONRepository persists postings in a single JSON document.
type JSONRepository struct {
	store *storex.File
}

func NewJSONRepository(store *storex.File) *JSONRepository {
	return &JSONRepository{store: store}
}

func (r *JSONRepository) Upsert(ctx context.Context, p *posting.Posting) error {
	err := r.store.Update(func(read, write func(any) error) error {
		doc := emptyPostingDocument()
		if err := read(&doc); err != nil {
			return err
		}

		list := doc.Postings[p.Position.String()]
		replaced := false
		for i, existing := range list {
			if existing.Recruiter == p.Recruiter {
				list[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			list = append(list, p)
		}

		doc.Postings[p.Position.String()] = list
		return write(doc)
	})
	return wrapStoreError(err)
}

func (r *JSONRepository) Get(ctx context.Context, position kernel.Position, recruiter kernel.RecruiterID) (*posting.Posting, error) {
	doc := emptyPostingDocument()
	if err := r.store.Read(&doc); err != nil {
		return nil, posting.ErrRepository(err)
	}

	for _, p := range doc.Postings[position.String()] {
		if p.Recruiter == recruiter {
			return p, nil
		}
	}
	return nil, posting.ErrPostingNotFound().
		WithDetail("position", position.String()).
		WithDetail("recruiter", recruiter.String())
}

func (r *JSONRepository) ListByPosition(ctx context.Context, position kernel.Position) ([]*posting.Posting, error) {
	doc := emptyPostingDocument()
	if err := r.store.Read(&doc); err != nil {
		return nil, posting.ErrRepository(err)
	}
	return doc.Postings[position.String()], nil
}

func (r *JSONRepository) ListAll(ctx context.Context) ([]*posting.Posting, error) {
	doc := emptyPostingDocument()
	if err := r.store.Read(&doc); err != nil {
		return nil, posting.ErrRepository(err)
	}

	var all []*posting.Posting
	for _, list := range doc.Postings {
		all = append(all, list...)
	}
	return all, nil
}

func wrapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errx.Error); ok {
		return err
	}
	return posting.ErrRepository(err)
}
