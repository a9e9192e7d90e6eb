package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role determines which operations an account may perform.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// AccountStatus tracks the membership lifecycle.
type AccountStatus string

const (
	StatusActive            AccountStatus = "Active"
	StatusPendingOnboarding AccountStatus = "Pending Onboarding"
	StatusInactive          AccountStatus = "Inactive"
)

// MembershipLevel is the member's tier within the network.
type MembershipLevel string

const (
	LevelStarter       MembershipLevel = "Starter"
	LevelFranchise     MembershipLevel = "Franchise"
	LevelClusterLeader MembershipLevel = "Cluster Leader"
	LevelTrainee       MembershipLevel = "Trainee"
)

// TrainingStatus tracks a member's orientation progress.
type TrainingStatus string

const (
	TrainingCompleted          TrainingStatus = "Completed Training"
	TrainingPendingOrientation TrainingStatus = "Pending Orientation"
	TrainingCertified          TrainingStatus = "Certified"
)

// MilestoneStatus marks whether a milestone has been reached.
type MilestoneStatus string

const (
	MilestoneComplete MilestoneStatus = "complete"
	MilestonePending  MilestoneStatus = "pending"
)

// Milestone names, in the order members progress through them.
const (
	MilestoneJoined    = "Joined"
	MilestoneTrained   = "Trained"
	MilestoneOnboarded = "Onboarded"
	MilestoneFirstSale = "First Sale"
	MilestoneCertified = "Certified"
)

// Milestone is one step of the member onboarding journey. Date stays empty
// until the milestone is reached.
type Milestone struct {
	Name   string          `json:"name"`
	Date   string          `json:"date"`
	Status MilestoneStatus `json:"status"`
}

// Account represents a cooperative member or administrator. The password hash
// is persisted with the record but stripped before the account leaves the
// service layer.
type Account struct {
	ID                    uuid.UUID       `json:"id"`
	Username              string          `json:"username"`
	Name                  string          `json:"name"`
	Email                 string          `json:"email"`
	PasswordHash          string          `json:"passwordHash,omitempty"`
	Role                  Role            `json:"role"`
	RegistrationDate      time.Time       `json:"registrationDate"`
	Phone                 string          `json:"phone,omitempty"`
	ProfilePhotoURL       string          `json:"profilePhotoUrl,omitempty"`
	FarmLocation          string          `json:"farmLocation"`
	MembershipLevel       MembershipLevel `json:"membershipLevel"`
	Status                AccountStatus   `json:"status"`
	LastActivityDate      time.Time       `json:"lastActivityDate"`
	ProfitCycleCompletion int             `json:"profitCycleCompletion"`
	CDFContribution       decimal.Decimal `json:"cdfContribution"`
	TrainingStatus        TrainingStatus  `json:"trainingStatus"`
	EstimatedProfit       decimal.Decimal `json:"estimatedProfit"`
	Milestones            []Milestone     `json:"milestones"`
}

// Public returns a copy of the account safe to hand to callers: the password
// hash is cleared so it can never serialize.
func (a Account) Public() Account {
	a.PasswordHash = ""
	return a
}

// IsAdmin reports whether this account holds the admin role.
func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// OnboardingMilestones returns the milestone list for a freshly registered
// member: Joined is complete as of now, everything else pending.
func OnboardingMilestones(now time.Time) []Milestone {
	return []Milestone{
		{Name: MilestoneJoined, Date: now.Format(time.RFC3339), Status: MilestoneComplete},
		{Name: MilestoneTrained, Status: MilestonePending},
		{Name: MilestoneOnboarded, Status: MilestonePending},
		{Name: MilestoneFirstSale, Status: MilestonePending},
		{Name: MilestoneCertified, Status: MilestonePending},
	}
}
