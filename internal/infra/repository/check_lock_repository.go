package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

const checkLockKey = "check:inflight"

// unlockScript deletes the lock only when it still holds our owner token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type checkLockRepository struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	owner  string
}

// NewCheckLockRepository returns a lock held for at most ttl, so a crashed
// check cannot block later ones forever.
func NewCheckLockRepository(client *redis.Client, prefix string, ttl time.Duration) domain.CheckLock {
	return &checkLockRepository{
		client: client,
		key:    prefix + checkLockKey,
		ttl:    ttl,
		owner:  uuid.NewString(),
	}
}

func (r *checkLockRepository) TryLock(ctx context.Context) (bool, error) {
	return r.client.SetNX(ctx, r.key, r.owner, r.ttl).Result()
}

func (r *checkLockRepository) Unlock(ctx context.Context) error {
	return unlockScript.Run(ctx, r.client, []string{r.key}, r.owner).Err()
}
