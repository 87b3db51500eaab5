package income

import (
	"fmt"
	"testing"

	"academy/internal/academyapi"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func treeNodeOf(t *testing.T, db *gorm.DB, userId uint, packageName string) academyapi.TreeNode {
	t.Helper()
	var node academyapi.TreeNode
	db.Where("user_id = ? AND package_name = ?", userId, packageName).First(&node)
	return node
}

func TestTreeSlotsFillLeftMidRight(t *testing.T) {
	db := newTestDb(t)
	settings := goldSettings()
	sponsor := createUser(t, db, "sponsor@academy.test", 0)

	var buyers []academyapi.User
	for i := 0; i < 3; i++ {
		buyer := createUser(t, db, fmt.Sprintf("b%d@academy.test", i), sponsor.Id)
		buyers = append(buyers, buyer)
		require.NoError(t, ProcessRevenueShareTree(db, buyer, "Gold", &settings))
	}

	node := treeNodeOf(t, db, sponsor.Id, "Gold")
	require.Equal(t, buyers[0].Id, node.LeftId)
	require.Equal(t, buyers[1].Id, node.MidId)
	require.Equal(t, buyers[2].Id, node.RightId)
	require.Equal(t, uint(3), node.DownlineCount)

	// Every buyer got an own (empty) node pointing at the sponsor node.
	for _, buyer := range buyers {
		own := treeNodeOf(t, db, buyer.Id, "Gold")
		require.NotZero(t, own.Id)
		require.Equal(t, node.Id, own.ParentId)
		require.Zero(t, own.DownlineCount)
	}
}

func TestTreeCompletionFiresOnThirdPlacementOnly(t *testing.T) {
	db := newTestDb(t)
	settings := goldSettings()
	sponsor := createUser(t, db, "sponsor@academy.test", 0)

	for i := 0; i < 2; i++ {
		buyer := createUser(t, db, fmt.Sprintf("b%d@academy.test", i), sponsor.Id)
		require.NoError(t, ProcessRevenueShareTree(db, buyer, "Gold", &settings))
		require.Empty(t, historyOf(t, db, sponsor.Id, academyapi.IncomeTypeRevenueShare))
	}

	third := createUser(t, db, "b2@academy.test", sponsor.Id)
	require.NoError(t, ProcessRevenueShareTree(db, third, "Gold", &settings))

	entries := historyOf(t, db, sponsor.Id, academyapi.IncomeTypeRevenueShare)
	require.Len(t, entries, 1)
	require.Equal(t, float64(50), entries[0].Amount)
	require.Equal(t, uint(1), entries[0].LevelNumber)
}

func TestTreeSpilloverPlacementGoesBreadthFirst(t *testing.T) {
	db := newTestDb(t)
	settings := goldSettings()
	sponsor := createUser(t, db, "sponsor@academy.test", 0)

	var buyers []academyapi.User
	for i := 0; i < 4; i++ {
		buyer := createUser(t, db, fmt.Sprintf("b%d@academy.test", i), sponsor.Id)
		buyers = append(buyers, buyer)
		require.NoError(t, ProcessRevenueShareTree(db, buyer, "Gold", &settings))
	}

	// The fourth buyer overflows into the left child's node.
	leftNode := treeNodeOf(t, db, buyers[0].Id, "Gold")
	require.Equal(t, buyers[3].Id, leftNode.LeftId)
	require.Equal(t, uint(1), leftNode.DownlineCount)

	// The subtree counter on the sponsor node keeps growing.
	node := treeNodeOf(t, db, sponsor.Id, "Gold")
	require.Equal(t, uint(4), node.DownlineCount)

	// Between thresholds 3 and 12 nothing new fires.
	entries := historyOf(t, db, sponsor.Id, academyapi.IncomeTypeRevenueShare)
	require.Len(t, entries, 1)
}

func TestTreeLevelTwoCompletion(t *testing.T) {
	db := newTestDb(t)
	settings := goldSettings()
	sponsor := createUser(t, db, "sponsor@academy.test", 0)

	// Twelve placements fill the sponsor's node and all three child
	// nodes: the level 2 threshold lands exactly on the 12th.
	for i := 0; i < 12; i++ {
		buyer := createUser(t, db, fmt.Sprintf("b%d@academy.test", i), sponsor.Id)
		require.NoError(t, ProcessRevenueShareTree(db, buyer, "Gold", &settings))
	}

	node := treeNodeOf(t, db, sponsor.Id, "Gold")
	require.Equal(t, uint(12), node.DownlineCount)

	entries := historyOf(t, db, sponsor.Id, academyapi.IncomeTypeRevenueShare)
	require.Len(t, entries, 2)
	require.Equal(t, float64(50), entries[0].Amount)
	require.Equal(t, float64(150), entries[1].Amount)
	require.Equal(t, uint(2), entries[1].LevelNumber)
}

func TestTreeRepurchaseKeepsSingleSlot(t *testing.T) {
	db := newTestDb(t)
	settings := goldSettings()
	sponsor := createUser(t, db, "sponsor@academy.test", 0)
	buyer := createUser(t, db, "buyer@academy.test", sponsor.Id)

	require.NoError(t, ProcessRevenueShareTree(db, buyer, "Gold", &settings))
	require.NoError(t, ProcessRevenueShareTree(db, buyer, "Gold", &settings))

	// The second purchase must not occupy another slot or bump counters.
	node := treeNodeOf(t, db, sponsor.Id, "Gold")
	require.Equal(t, buyer.Id, node.LeftId)
	require.Zero(t, node.MidId)
	require.Zero(t, node.RightId)
	require.Equal(t, uint(1), node.DownlineCount)

	var nodeCount int64
	db.Model(&academyapi.TreeNode{}).
		Where("user_id = ? AND package_name = ?", buyer.Id, "Gold").
		Count(&nodeCount)
	require.Equal(t, int64(1), nodeCount)
}

func TestTreeSponsorShellNodeGetsPlacedOnOwnPurchase(t *testing.T) {
	db := newTestDb(t)
	settings := goldSettings()
	grand := createUser(t, db, "grand@academy.test", 0)
	sponsor := createUser(t, db, "sponsor@academy.test", grand.Id)
	child := createUser(t, db, "child@academy.test", sponsor.Id)

	// The downline buys first: the sponsor gets a parentless shell node.
	require.NoError(t, ProcessRevenueShareTree(db, child, "Gold", &settings))
	shell := treeNodeOf(t, db, sponsor.Id, "Gold")
	require.Zero(t, shell.ParentId)
	require.Equal(t, child.Id, shell.LeftId)

	// The sponsor's own purchase still places them under their upline
	// and backfills the shell's parent.
	require.NoError(t, ProcessRevenueShareTree(db, sponsor, "Gold", &settings))
	grandNode := treeNodeOf(t, db, grand.Id, "Gold")
	require.Equal(t, sponsor.Id, grandNode.LeftId)
	placed := treeNodeOf(t, db, sponsor.Id, "Gold")
	require.Equal(t, grandNode.Id, placed.ParentId)
	require.Equal(t, child.Id, placed.LeftId)
}

func TestTreeNodeCreatedForRootBuyer(t *testing.T) {
	db := newTestDb(t)
	settings := goldSettings()
	buyer := createUser(t, db, "root@academy.test", 0)

	require.NoError(t, ProcessRevenueShareTree(db, buyer, "Gold", &settings))

	own := treeNodeOf(t, db, buyer.Id, "Gold")
	require.NotZero(t, own.Id)
	require.Zero(t, own.ParentId)
	require.Zero(t, own.DownlineCount)

	var count int64
	db.Model(&academyapi.WalletHistory{}).Count(&count)
	require.Zero(t, count)
}
