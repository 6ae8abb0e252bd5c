package models

// UpdateServerConfigRequest represents the request body for updating the KMS
// server address. Pointer fields distinguish an omitted field, which falls
// back to the wildcard defaults, from an explicitly empty one.
type UpdateServerConfigRequest struct {
	IP   *string `json:"ip"`
	Port *string `json:"port"`
}

// ExecuteCommandRequest represents the request body for recording a client
// activation command in the audit log
type ExecuteCommandRequest struct {
	Command string `json:"command"`
	Product string `json:"product"`
}

// ExecuteCommandResponse represents the response structure for a recorded
// command
type ExecuteCommandResponse struct {
	Success bool   `json:"success"`
	Command string `json:"command"`
	Result  string `json:"result"`
	Product string `json:"product"`
}
