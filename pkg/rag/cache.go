package rag

import "github.com/google/uuid"

// IndexCache stores document indexes keyed by document id. Absence is never
// an error; callers rebuild on miss.
type IndexCache interface {
	Save(index *DocumentIndex)
	Get(documentId uuid.UUID) (*DocumentIndex, bool)
	Delete(documentId uuid.UUID)
}
