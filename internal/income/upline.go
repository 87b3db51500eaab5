package income

import (
	"academy/internal/academyapi"

	"gorm.io/gorm"
)

// MaxLevelDepth is how far up the sponsor chain level income reaches.
const MaxLevelDepth = 12

// NextSponsor yields the direct sponsor of a user, 0 for network roots
// and unknown users.
func NextSponsor(db *gorm.DB, userId uint) uint {
	var user academyapi.User
	res := db.Where("id = ?", userId).First(&user)
	if res.RowsAffected != 1 {
		return 0
	}
	return user.SponsorId
}

// WalkUpline climbs the sponsor chain starting at the given user's
// direct sponsor, calling fn with the level (1-based) and the sponsor
// record. The walk stops at maxDepth, at the chain root, or on the
// first revisited user. A cyclic sponsor graph must never loop here.
func WalkUpline(db *gorm.DB, startUserId uint, maxDepth int, fn func(level int, sponsor academyapi.User) error) error {
	visited := map[uint]bool{startUserId: true}
	current := NextSponsor(db, startUserId)
	for level := 1; level <= maxDepth && current > 0; level++ {
		if visited[current] {
			break
		}
		visited[current] = true
		var sponsor academyapi.User
		res := db.Where("id = ?", current).First(&sponsor)
		if res.RowsAffected != 1 {
			break
		}
		if err := fn(level, sponsor); err != nil {
			return err
		}
		current = sponsor.SponsorId
	}
	return nil
}
