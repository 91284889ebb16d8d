package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	PostKeyPrefix    = "post:%d"
	ProfileKeyPrefix = "profile:user:%d"
	ProfileListKey   = "profiles:all"
)

const (
	UserTTL        = 5 * time.Minute
	PostTTL        = 10 * time.Minute
	ProfileTTL     = 10 * time.Minute
	ProfileListTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateProfile drops both the per-user profile entry and the shared
// profile listing, since any profile write changes the listing too.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, ProfileListKey)
}
