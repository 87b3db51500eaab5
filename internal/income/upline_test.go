package income

import (
	"testing"

	"academy/internal/academyapi"

	"github.com/stretchr/testify/require"
)

func TestNextSponsor(t *testing.T) {
	db := newTestDb(t)
	root := createUser(t, db, "root@academy.test", 0)
	child := createUser(t, db, "child@academy.test", root.Id)

	require.Equal(t, root.Id, NextSponsor(db, child.Id))
	require.Equal(t, uint(0), NextSponsor(db, root.Id))
	require.Equal(t, uint(0), NextSponsor(db, 9999))
}

func TestWalkUplineVisitsEachLevelInOrder(t *testing.T) {
	db := newTestDb(t)
	s3 := createUser(t, db, "s3@academy.test", 0)
	s2 := createUser(t, db, "s2@academy.test", s3.Id)
	s1 := createUser(t, db, "s1@academy.test", s2.Id)
	buyer := createUser(t, db, "b@academy.test", s1.Id)

	var visited []uint
	err := WalkUpline(db, buyer.Id, MaxLevelDepth, func(level int, sponsor academyapi.User) error {
		visited = append(visited, sponsor.Id)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []uint{s1.Id, s2.Id, s3.Id}, visited)
}

func TestWalkUplineStopsOnCycle(t *testing.T) {
	db := newTestDb(t)
	a := createUser(t, db, "a@academy.test", 0)
	b := createUser(t, db, "b@academy.test", a.Id)
	// Corrupt the graph: a sponsors b, b sponsors a.
	require.NoError(t, db.Model(&academyapi.User{}).
		Where("id = ?", a.Id).Update("sponsor_id", b.Id).Error)

	calls := 0
	err := WalkUpline(db, b.Id, MaxLevelDepth, func(level int, sponsor academyapi.User) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	// a is visited once; the walk must not loop back through b.
	require.Equal(t, 1, calls)
}

func TestWalkUplineHonorsDepthLimit(t *testing.T) {
	db := newTestDb(t)
	sponsorId := uint(0)
	var last academyapi.User
	for i := 0; i < 15; i++ {
		last = createUser(t, db, string(rune('a'+i))+"@academy.test", sponsorId)
		sponsorId = last.Id
	}

	calls := 0
	err := WalkUpline(db, last.Id, MaxLevelDepth, func(level int, sponsor academyapi.User) error {
		calls++
		require.Equal(t, calls, level)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, MaxLevelDepth, calls)
}
