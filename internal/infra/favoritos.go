package infra

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FavoritosRedis keeps the per-offer favorite counters in Redis. Counters are
// advisory decoration on listings, so read failures degrade to zero instead of
// failing the request; the service layer decides how to surface errors.
type FavoritosRedis struct {
	rdb *redis.Client
}

func NewFavoritosRedis(rdb *redis.Client) *FavoritosRedis {
	return &FavoritosRedis{rdb: rdb}
}

func favoritosKey(ofertaID uuid.UUID) string {
	return fmt.Sprintf("favoritos:oferta:%s", ofertaID)
}

func (f *FavoritosRedis) Count(ctx context.Context, ofertaID uuid.UUID) (int64, error) {
	n, err := f.rdb.Get(ctx, favoritosKey(ofertaID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// CountMany fetches the counters of a whole listing page in one MGET.
func (f *FavoritosRedis) CountMany(ctx context.Context, ofertaIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ofertaIDs))
	if len(ofertaIDs) == 0 {
		return counts, nil
	}

	keys := make([]string, len(ofertaIDs))
	for i, id := range ofertaIDs {
		keys[i] = favoritosKey(id)
	}

	vals, err := f.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // missing key, counter stays at zero
		}
		var n int64
		if _, err := fmt.Sscan(s, &n); err == nil {
			counts[ofertaIDs[i]] = n
		}
	}
	return counts, nil
}

func (f *FavoritosRedis) Incr(ctx context.Context, ofertaID uuid.UUID) (int64, error) {
	return f.rdb.Incr(ctx, favoritosKey(ofertaID)).Result()
}

func (f *FavoritosRedis) Decr(ctx context.Context, ofertaID uuid.UUID) (int64, error) {
	n, err := f.rdb.Decr(ctx, favoritosKey(ofertaID)).Result()
	if err != nil {
		return 0, err
	}
	// Counters never go negative; clamp racing decrements back to zero.
	if n < 0 {
		if err := f.rdb.Set(ctx, favoritosKey(ofertaID), 0, 0).Err(); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return n, nil
}
