package domain

// ============================================================
// Request payloads for write operations
// ============================================================

// LeadImage is one image attachment on a lead. Images never travel as
// JSON; a non-empty image list switches the whole request to multipart.
type LeadImage struct {
	Filename string
	Content  []byte
}

// CreateLeadRequest is the payload for POST /api/repairs/leads.
type CreateLeadRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CarYear     int         `json:"car_year"`
	CarMake     string      `json:"car_make"`
	CarModel    string      `json:"car_model"`
	Urgency     Urgency     `json:"urgency"`
	Images      []LeadImage `json:"-"`
}

// CreateProposalRequest is the payload for POST /api/repairs/proposals.
// Message must be at least 20 characters; enforced before submission.
type CreateProposalRequest struct {
	LeadID            int64  `json:"lead_id"`
	Message           string `json:"message"`
	EstimatedCost     string `json:"estimated_cost,omitempty"`
	EstimatedDuration string `json:"estimated_duration,omitempty"`
	Warranty          string `json:"warranty,omitempty"`
}

// LeadFilter narrows GET /api/repairs/leads.
type LeadFilter struct {
	Status  LeadStatus
	Urgency Urgency
}

// RepairFilter narrows the repair report endpoints via query string.
type RepairFilter struct {
	VehicleID int64
	StartDate string
	EndDate   string
	Query     string
}

// ============================================================
// AI diagnosis
// ============================================================

// DiagnoseRequest is the payload for POST /api/ai-diagnosis: car
// context plus a free-text problem description.
type DiagnoseRequest struct {
	CarYear  int    `json:"car_year"`
	CarMake  string `json:"car_make"`
	CarModel string `json:"car_model"`
	Mileage  int    `json:"mileage,omitempty"`
	Message  string `json:"message"`
}

// Diagnosis is the AI service's answer.
type Diagnosis struct {
	Summary            string   `json:"summary"`
	PossibleCauses     []string `json:"possible_causes,omitempty"`
	RecommendedActions []string `json:"recommended_actions,omitempty"`
	Severity           string   `json:"severity,omitempty"`
	EstimatedCost      string   `json:"estimated_cost,omitempty"`
}
