package models

// Snapshot is the full persisted state: every mutation rewrites the whole
// document rather than patching individual records.
type Snapshot struct {
	ServiceRequests []ServiceRequest `json:"serviceRequests"`
	CustomerUsers   []CustomerUser   `json:"customerUsers"`
	TechUsers       []TechUser       `json:"techUsers"`
}
