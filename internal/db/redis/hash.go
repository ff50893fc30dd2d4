package redis

import (
	"context"

	"github.com/helix-supply/partdex/internal/db"
)

// HGetAll reads all fields of a hash. Returns an empty map for a
// missing key (Redis semantics).
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	fields, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return fields, nil
}
