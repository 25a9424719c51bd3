package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	PetKeyPrefix     = "pet:%d"
	PetListKeyPrefix = "user:%d:pets"
)

const (
	UserTTL    = 5 * time.Minute
	PetTTL     = 10 * time.Minute
	PetListTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PetKey(petID uint) string {
	return fmt.Sprintf(PetKeyPrefix, petID)
}

func PetListKey(userID uint) string {
	return fmt.Sprintf(PetListKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePet drops both the pet entry and the owner's list, since list
// membership and entity fields go stale together.
func InvalidatePet(ctx context.Context, petID, userID uint) {
	Invalidate(ctx, PetKey(petID))
	Invalidate(ctx, PetListKey(userID))
}
