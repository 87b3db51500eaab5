package income

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"academy/internal/academyapi"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ctx = context.Background()

func settingsCacheKey(packageName string) string {
	return fmt.Sprintf("pkg_settings@%s", packageName)
}

// GetSettings resolves the commission settings for a package tier.
// Redis is checked first, the db is the source of truth. rdb may be nil
// (worker unit tests), in which case the cache is skipped entirely.
func GetSettings(db *gorm.DB, rdb *redis.Client, packageName string) (*academyapi.PackageSettings, error) {
	if rdb != nil {
		raw, _ := rdb.Get(ctx, settingsCacheKey(packageName)).Result()
		if len(raw) > 0 {
			var cached academyapi.PackageSettings
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}
	var settings academyapi.PackageSettings
	res := db.Where("package_name = ?", packageName).First(&settings)
	if res.RowsAffected != 1 {
		return nil, ErrNoSettings
	}
	if rdb != nil {
		raw, _ := json.Marshal(settings)
		rdb.Set(ctx, settingsCacheKey(packageName), raw, 10*time.Minute)
	}
	return &settings, nil
}

// InvalidateSettings drops the cached copy after an admin update.
func InvalidateSettings(rdb *redis.Client, packageName string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, settingsCacheKey(packageName))
}
