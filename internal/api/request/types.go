package request

// CreatePlayerRequest is the request body for creating a player.
// Absent fields are left nil and reported by validation. Points outside
// the int32 range fail to decode.
type CreatePlayerRequest struct {
	Pseudo *string `json:"pseudo"`
	Points *int32  `json:"points"`
	Rank   *string `json:"rank"`
}

// UpdatePlayerRequest is the request body for updating a player
type UpdatePlayerRequest struct {
	Points *int32  `json:"points"`
	Rank   *string `json:"rank"`
}

// IntPtr widens decoded points for the service layer, keeping nil as nil
func IntPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
