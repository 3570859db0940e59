// Package domain holds the MotorTrust data types as the client layer
// understands them. All of these are DTOs mirrored from the backend —
// this layer owns no authoritative state beyond the cached session.
package domain

// Role is the closed set of account roles.
type Role string

const (
	RoleCarOwner         Role = "car_owner"
	RoleShopOwner        Role = "shop_owner"
	RoleInsuranceCompany Role = "insurance_company"
)

// User is the canonical, normalized identity record.
// Name is derived from first/last name during normalization.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zip_code,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Vehicle mirrors /api/vehicles rows. The rollup fields (RepairCount,
// LastServiceDate, TotalRepairCost) are supplied by the backend, never
// computed here.
type Vehicle struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	VIN          string `json:"vin"`
	Year         int    `json:"year"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Trim         string `json:"trim,omitempty"`
	Color        string `json:"color,omitempty"`
	LicensePlate string `json:"license_plate,omitempty"`
	Mileage      int    `json:"mileage,omitempty"`
	PurchaseDate string `json:"purchase_date,omitempty"`
	IsPrimary    bool   `json:"is_primary"`

	RepairCount     int    `json:"repair_count,omitempty"`
	LastServiceDate string `json:"last_service_date,omitempty"`
	TotalRepairCost string `json:"total_repair_cost,omitempty"`
}

// Repair mirrors /api/repairs rows. TotalCost stays a string on the wire
// to preserve decimal precision.
type Repair struct {
	ID               int64    `json:"id"`
	VehicleID        int64    `json:"vehicle_id"`
	ServiceDate      string   `json:"service_date"`
	ServiceType      string   `json:"service_type"`
	Description      string   `json:"description,omitempty"`
	TotalCost        string   `json:"total_cost"`
	MileageAtService int      `json:"mileage_at_service,omitempty"`
	ShopID           int64    `json:"shop_id,omitempty"`
	ShopName         string   `json:"shop_name,omitempty"`
	DiagnosticCodes  []string `json:"diagnostic_codes,omitempty"`
	PartsReplaced    []string `json:"parts_replaced,omitempty"`
	LaborHours       float64  `json:"labor_hours,omitempty"`
	Warranty         string   `json:"warranty,omitempty"`
	CreatedAt        string   `json:"created_at,omitempty"`
	UpdatedAt        string   `json:"updated_at,omitempty"`
}

// Urgency levels for a repair lead.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// LeadStatus is the lifecycle of a repair lead.
type LeadStatus string

const (
	LeadOpen       LeadStatus = "open"
	LeadInProgress LeadStatus = "in_progress"
	LeadCompleted  LeadStatus = "completed"
	LeadCancelled  LeadStatus = "cancelled"
)

// RepairLead is a car owner's open request for quotes, visible to shop
// owners for quoting.
type RepairLead struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CarYear       int        `json:"car_year"`
	CarMake       string     `json:"car_make"`
	CarModel      string     `json:"car_model"`
	Urgency       Urgency    `json:"urgency"`
	Status        LeadStatus `json:"status"`
	ProposalCount int        `json:"proposal_count"`
	Images        []string   `json:"images,omitempty"`
	Requester     *User      `json:"requester,omitempty"`
	CreatedAt     string     `json:"created_at,omitempty"`
}

// ProposalStatus is the lifecycle of a shop's quote against a lead.
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

// Proposal is a shop owner's quote against a lead.
type Proposal struct {
	ID                int64          `json:"id"`
	LeadID            int64          `json:"lead_id"`
	ShopID            int64          `json:"shop_id"`
	Shop              *Shop          `json:"shop,omitempty"`
	Message           string         `json:"message"`
	EstimatedCost     string         `json:"estimated_cost,omitempty"`
	EstimatedDuration string         `json:"estimated_duration,omitempty"`
	Warranty          string         `json:"warranty,omitempty"`
	Status            ProposalStatus `json:"status"`
	CreatedAt         string         `json:"created_at,omitempty"`
}

// VerificationStatus of a shop.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Shop mirrors /api/shops rows.
type Shop struct {
	ID                 int64              `json:"id"`
	OwnerID            int64              `json:"owner_id,omitempty"`
	Name               string             `json:"name"`
	Address            string             `json:"address"`
	Latitude           *float64           `json:"latitude,omitempty"`
	Longitude          *float64           `json:"longitude,omitempty"`
	Specialities       []string           `json:"specialities,omitempty"`
	Description        string             `json:"description,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	IsActive           bool               `json:"is_active"`
	CreatedAt          string             `json:"created_at,omitempty"`
}

// RepairStats is the aggregate report the backend computes for a user
// or a single vehicle.
type RepairStats struct {
	TotalRepairs  int               `json:"total_repairs"`
	TotalCost     string            `json:"total_cost"`
	AvgCost       string            `json:"avg_cost,omitempty"`
	ByCategory    map[string]int    `json:"by_category,omitempty"`
	CostByMonth   map[string]string `json:"cost_by_month,omitempty"`
	LastService   string            `json:"last_service,omitempty"`
	UpcomingCount int               `json:"upcoming_count,omitempty"`
}

// Reminder is a backend-computed upcoming service reminder.
type Reminder struct {
	VehicleID   int64  `json:"vehicle_id"`
	ServiceType string `json:"service_type"`
	DueDate     string `json:"due_date,omitempty"`
	DueMileage  int    `json:"due_mileage,omitempty"`
	Message     string `json:"message,omitempty"`
}
