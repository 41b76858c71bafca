package response

// MessageResponse is returned by endpoints that only confirm an action.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
