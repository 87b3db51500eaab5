package academyapi

import "time"

// TreeNode is one revenue share placement node, one per (user, package).
// The three child slots fill in fixed order left, mid, right and hold
// downline user ids. DownlineCount covers the whole subtree and only
// ever increases.
type TreeNode struct {
	Id            uint      `json:"id" gorm:"primarykey"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UserId        uint      `json:"user_id" gorm:"uniqueIndex:idx_tree_user_pkg;not null"`
	PackageName   string    `json:"package_name" gorm:"uniqueIndex:idx_tree_user_pkg;not null"`
	ParentId      uint      `json:"parent_id" gorm:"index"` // TreeNode id of the placement parent, 0 for roots
	LeftId        uint      `json:"left_id"`                // User id in the left slot, 0 = empty
	MidId         uint      `json:"mid_id"`
	RightId       uint      `json:"right_id"`
	DownlineCount uint      `json:"downline_count"`
}

func (n *TreeNode) Full() bool {
	return n.LeftId > 0 && n.MidId > 0 && n.RightId > 0
}
