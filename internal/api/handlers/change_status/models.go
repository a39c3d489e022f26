package change_status

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status string  `json:"status"` // CONFIRMED, IN_PROGRESS, COMPLETED, CANCELLED
	Reason *string `json:"reason,omitempty"`
}
