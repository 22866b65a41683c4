package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/ProteinScope/pkg/errors"
)

// StructureStore caches raw structure text under "{prefix}pdb:{ID}".
type StructureStore struct {
	client *Client
	prefix string
	ttl    time.Duration
}

// NewStructureStore uses the key prefix and default TTL of the client's
// configuration.
func NewStructureStore(client *Client) *StructureStore {
	return &StructureStore{
		client: client,
		prefix: client.config.KeyPrefix + "pdb:",
		ttl:    client.config.DefaultTTL,
	}
}

func (s *StructureStore) key(pdbID string) string {
	return s.prefix + pdbID
}

// Get returns the cached text of pdbID or a not-found error.
func (s *StructureStore) Get(ctx context.Context, pdbID string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(pdbID)).Bytes()
	if err == redis.Nil {
		return nil, errors.NotFound("structure not cached").WithDetail(pdbID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to read cached structure")
	}
	return data, nil
}

// Put stores data for the configured TTL.
func (s *StructureStore) Put(ctx context.Context, pdbID string, data []byte) error {
	if err := s.client.Set(ctx, s.key(pdbID), data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to cache structure")
	}
	return nil
}

//Personal.AI order the ending
