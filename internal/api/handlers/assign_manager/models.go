package assign_manager

// AssignManagerRequest HTTP request model
type AssignManagerRequest struct {
	ManagerID int64 `json:"managerId"`
}
