package income

import (
	"fmt"

	"academy/internal/academyapi"

	"gorm.io/gorm"
)

// Revenue share milestones are full ternary subtree sizes carried over
// from the business plan as literal values. Exact-match only, so every
// level pays out exactly once per node.
var revShareThresholds = []uint{3, 12, 39, 120, 363, 1092, 3279, 9840}

// ProcessRevenueShareTree places the buyer into the sponsor's revenue
// share tree for this package and pays out completed levels. Slots fill
// strictly left, mid, right; when the sponsor's node is full the buyer
// spills over breadth-first into the first open slot of the subtree.
// The buyer always ends up with an own node so later purchases can be
// placed under them. A buyer holds exactly one slot per package: a
// repurchase after the first placement is a no-op here. Runs on the
// caller's transaction.
func ProcessRevenueShareTree(tx *gorm.DB, buyer academyapi.User, packageName string, settings *academyapi.PackageSettings) error {
	var own academyapi.TreeNode
	res := tx.Where("user_id = ? AND package_name = ?", buyer.Id, packageName).First(&own)
	ownExists := res.RowsAffected == 1
	if ownExists && own.ParentId > 0 {
		// Already placed on an earlier purchase. A node with a parent
		// occupies a slot somewhere; placing again would put the same
		// user in two slots and double-count every ancestor.
		return nil
	}
	placedUnder := uint(0)
	if buyer.SponsorId > 0 {
		var sponsorNode academyapi.TreeNode
		res := lockForUpdate(tx).Where("user_id = ? AND package_name = ?", buyer.SponsorId, packageName).First(&sponsorNode)
		if res.RowsAffected == 1 {
			target, err := findOpenNode(tx, sponsorNode, packageName)
			if err != nil {
				return err
			}
			switch {
			case target.LeftId == 0:
				target.LeftId = buyer.Id
			case target.MidId == 0:
				target.MidId = buyer.Id
			default:
				target.RightId = buyer.Id
			}
			res = tx.Save(&target)
			if res.Error != nil {
				return res.Error
			}
			placedUnder = target.Id
			if err := bumpDownlineCounts(tx, target, packageName, settings, buyer.Id); err != nil {
				return err
			}
		} else {
			sponsorNode = academyapi.TreeNode{
				UserId:        buyer.SponsorId,
				PackageName:   packageName,
				LeftId:        buyer.Id,
				DownlineCount: 1,
			}
			res = tx.Create(&sponsorNode)
			if res.Error != nil {
				return res.Error
			}
			placedUnder = sponsorNode.Id
		}
	}
	if !ownExists {
		own = academyapi.TreeNode{
			UserId:      buyer.Id,
			PackageName: packageName,
			ParentId:    placedUnder,
		}
		res = tx.Create(&own)
		if res.Error != nil {
			return res.Error
		}
	} else if own.ParentId == 0 && placedUnder > 0 {
		own.ParentId = placedUnder
		res = tx.Save(&own)
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}

// findOpenNode walks the subtree breadth-first in slot order and
// returns the first node with an empty slot.
func findOpenNode(tx *gorm.DB, root academyapi.TreeNode, packageName string) (academyapi.TreeNode, error) {
	queue := []academyapi.TreeNode{root}
	visited := map[uint]bool{}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if visited[node.Id] {
			continue
		}
		visited[node.Id] = true
		if !node.Full() {
			return node, nil
		}
		for _, childUserId := range []uint{node.LeftId, node.MidId, node.RightId} {
			var child academyapi.TreeNode
			res := lockForUpdate(tx).Where("user_id = ? AND package_name = ?", childUserId, packageName).First(&child)
			if res.RowsAffected == 1 {
				queue = append(queue, child)
			}
		}
	}
	return root, fmt.Errorf("no open slot in tree below node %d", root.Id)
}

// bumpDownlineCounts increments the subtree counter on the placement
// node and every ancestor, paying the revenue share level whenever a
// counter lands exactly on a threshold. Counters never decrease, so a
// level cannot fire twice.
func bumpDownlineCounts(tx *gorm.DB, start academyapi.TreeNode, packageName string, settings *academyapi.PackageSettings, fromUserId uint) error {
	node := start
	visited := map[uint]bool{}
	for {
		if visited[node.Id] {
			break
		}
		visited[node.Id] = true
		node.DownlineCount += 1
		res := tx.Save(&node)
		if res.Error != nil {
			return res.Error
		}
		if err := checkRevShareMilestone(tx, node, packageName, settings, fromUserId); err != nil {
			return err
		}
		if node.ParentId == 0 {
			break
		}
		var parent academyapi.TreeNode
		res = lockForUpdate(tx).Where("id = ?", node.ParentId).First(&parent)
		if res.RowsAffected != 1 {
			break
		}
		node = parent
	}
	return nil
}

func checkRevShareMilestone(tx *gorm.DB, node academyapi.TreeNode, packageName string, settings *academyapi.PackageSettings, fromUserId uint) error {
	for i, threshold := range revShareThresholds {
		if node.DownlineCount != threshold {
			continue
		}
		level := i + 1
		amount := settings.RevShareAmount(level)
		if amount <= 0 {
			break
		}
		desc := fmt.Sprintf("Revenue share level %d completed with %d downlines (%s)", level, threshold, packageName)
		return CreditWallet(tx, node.UserId, amount, desc, academyapi.IncomeTypeRevenueShare, uint(level), fromUserId)
	}
	return nil
}
