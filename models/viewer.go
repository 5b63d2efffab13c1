package models

// Viewer is the public shape of the currently authenticated user, as
// returned by wallet connect/disconnect endpoints.
type Viewer struct {
	ID         string `json:"id,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	HasWallet  bool   `json:"hasWallet"`
	DidRequest bool   `json:"didRequest"`
}

// NewViewer builds a Viewer from a resolved user. A nil user yields a
// viewer that only records that the request was made.
func NewViewer(u *User) Viewer {
	v := Viewer{DidRequest: true}
	if u != nil {
		v.ID = u.ID
		v.Avatar = u.Avatar
		v.HasWallet = u.HasWallet()
	}
	return v
}
