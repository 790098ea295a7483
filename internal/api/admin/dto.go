package admin

type AssignRoleRequest struct {
	UserID  uint   `json:"userId" binding:"required"`
	NewRole string `json:"newRole" binding:"required"`
}

type DeleteAccountRequest struct {
	Confirm bool `json:"confirm"`
}

type ProcessApplicationRequest struct {
	Action string `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Reason string `json:"reason"`
}

type ResolveReportRequest struct {
	ResolutionNotes string `json:"resolutionNotes" binding:"required"`
}
