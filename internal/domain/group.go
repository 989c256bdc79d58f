package domain

import "juntaai-backend/internal/money"

type GroupCategory string

const (
	GroupCategoryGeneral  GroupCategory = "general"
	GroupCategoryTravel   GroupCategory = "travel"
	GroupCategoryHome     GroupCategory = "home"
	GroupCategoryShopping GroupCategory = "shopping"
	GroupCategoryOther    GroupCategory = "other"
)

// ValidCategory reports whether c is one of the known group categories.
func ValidCategory(c GroupCategory) bool {
	switch c {
	case GroupCategoryGeneral, GroupCategoryTravel, GroupCategoryHome, GroupCategoryShopping, GroupCategoryOther:
		return true
	}
	return false
}

type Group struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  GroupCategory `json:"category"`
	TotalGoal money.Cents   `json:"total_goal_amount"`
	// PixKey is the shared payment-collection key. Transfers happen
	// off-system; the key is only displayed and copied.
	PixKey    string `json:"pix_key,omitempty"`
	OwnerID   string `json:"owner_id"`
	CreatedAt string `json:"created_at"`
}

// IsOwner is the single ownership predicate. Ownership is derived from
// owner_id equality on every call, never from a stored role.
func (g *Group) IsOwner(userID string) bool {
	return g.OwnerID == userID
}
