package candidateinfra

import (
	"context"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/errx"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/storex"
	"github.com/SafalBhandari12/jd-cv-backend/recruitment/candidate"
)

// credentialDocument maps emails to bcrypt password hashes. Plaintext
// passwords are never stored.
type credentialDocument struct {
	Credentials map[string]string `json:"credentials"`
}

// JSONCredentialRepository stores login credentials in a JSON document
// separate from the profile store.
type JSONCredentialRepository struct {
	store *storex.File
}

func NewJSONCredentialRepository(store *storex.File) *JSONCredentialRepository {
	return &JSONCredentialRepository{store: store}
}

func (r *JSONCredentialRepository) Store(ctx context.Context, email kernel.Email, passwordHash string) error {
	err := r.store.Update(func(read, write func(any) error) error {
		doc := credentialDocument{Credentials: map[string]string{}}
		if err := read(&doc); err != nil {
			return err
		}
		doc.Credentials[email.String()] = passwordHash
		return write(doc)
	})
	return wrapStoreError(err)
}

func (r *JSONCredentialRepository) Hash(ctx context.Context, email kernel.Email) (string, error) {
	doc := credentialDocument{Credentials: map[string]string{}}
	if err := r.store.Read(&doc); err != nil {
		return "", candidate.ErrRepository(err)
	}

	hash, ok := doc.Credentials[email.String()]
	if !ok {
		return "", candidate.ErrCandidateNotFound()
	}
	return hash, nil
}

// wrapStoreError keeps domain errors intact and wraps raw storage errors.
func wrapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errx.Error); ok {
		return err
	}
	return candidate.ErrRepository(err)
}
