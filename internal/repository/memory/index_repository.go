package memory

import (
	"time"

	"github.com/YarinTwito/whatsapp-smart-agent/pkg/rag"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// IndexRepository caches retrieval indexes keyed by document id. Entries
// expire on their own; a miss just means the index gets rebuilt from the
// persisted document text.
type IndexRepository struct {
	cache *cache.Cache
}

var _ rag.IndexCache = &IndexRepository{}

func NewIndexRepository() *IndexRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &IndexRepository{
		cache: c,
	}
}

func (r *IndexRepository) Save(index *rag.DocumentIndex) {
	r.cache.Set(index.DocumentId.String(), index, cache.DefaultExpiration)
}

func (r *IndexRepository) Get(documentId uuid.UUID) (*rag.DocumentIndex, bool) {
	if x, found := r.cache.Get(documentId.String()); found {
		return x.(*rag.DocumentIndex), true
	}
	return nil, false
}

func (r *IndexRepository) Delete(documentId uuid.UUID) {
	r.cache.Delete(documentId.String())
}
