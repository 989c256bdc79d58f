package domain

// Profile is owned by the external identity provider. The ledger reads it
// for display only; nothing here affects balance math.
type Profile struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
