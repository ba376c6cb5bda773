package postinginfra

import (
	"context"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/storex"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/posting"
)

// recruiterCredentialDocument maps recruiter emails to bcrypt hashes.
type recruiterCredentialDocument struct {
	Credentials map[string]string `json:"credentials"`
}

// JSONCredentialRepository stores recruiter credentials in a JSON document
// separate from the posting store.
type JSONCredentialRepository struct {
	store *storex.File
}

func NewJSONCredentialRepository(store *storex.File) *JSONCredentialRepository {
	return &JSONCredentialRepository{store: store}
}

func (r *JSONCredentialRepository) Store(ctx context.Context, email kernel.Email, passwordHash string) error {
	err := r.store.Update(func(read, write func(any) error) error {
		doc := recruiterCredentialDocument{Credentials: map[string]string{}}
		if err := read(&doc); err != nil {
			return err
		}
		doc.Credentials[email.String()] = passwordHash
		return write(doc)
	})
	return wrapStoreError(err)
}

func (r *JSONCredentialRepository) Hash(ctx context.Context, email kernel.Email) (string, error) {
	doc := recruiterCredentialDocument{Credentials: map[string]string{}}
	if err := r.store.Read(&doc); err != nil {
		return "", posting.ErrRepository(err)
	}

	hash, ok := doc.Credentials[email.String()]
	if !ok {
		return "", posting.ErrRecruiterNotFound()
	}
	return hash, nil
}
