package store

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"lcenhub/internal/model"
)

const seedBcryptCost = 10

// Fixed identities so seeded collections reference each other consistently
// across resets.
var (
	SeedJuanID  = uuid.MustParse("5b3f1c1e-8a04-4f4e-9d7b-2f6a1c9e0a11")
	SeedAdminID = uuid.MustParse("9c2d4e6f-1b3a-4c5d-8e7f-0a1b2c3d4e5f")
	SeedMariaID = uuid.MustParse("1f2e3d4c-5b6a-4798-8190-a1b2c3d4e5f6")
	SeedPedroID = uuid.MustParse("7a8b9c0d-1e2f-4356-9788-99aabbccddee")
)

// DefaultBackupEmail is the initial admin recovery address.
const DefaultBackupEmail = "backup.admin@lcen.com"

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), seedBcryptCost)
	if err != nil {
		// bcrypt only fails on cost/length misuse, which is a programming error
		log.Fatalf("seed: hash password: %v", err)
	}
	return string(hash)
}

// DefaultAccounts returns the built-in member roster. Hashing happens here so
// it is only paid when a collection actually needs reseeding.
func DefaultAccounts() []model.Account {
	now := time.Now()
	return []model.Account{
		{
			ID:                    SeedJuanID,
			Username:              "farmer_juan",
			PasswordHash:          mustHash("password123"),
			Name:                  "Juan dela Cruz",
			Email:                 "juan.delacruz@example.com",
			Role:                  model.RoleMember,
			RegistrationDate:      time.Date(2023, 10, 26, 10, 0, 0, 0, time.UTC),
			Phone:                 "09171234567",
			FarmLocation:          "Tuguegarao City",
			MembershipLevel:       model.LevelFranchise,
			Status:                model.StatusActive,
			LastActivityDate:      now.Add(-48 * time.Hour),
			ProfitCycleCompletion: 75,
			CDFContribution:       decimal.NewFromFloat(1250.00),
			TrainingStatus:        model.TrainingCertified,
			EstimatedProfit:       decimal.NewFromFloat(15200.50),
			Milestones: []model.Milestone{
				{Name: model.MilestoneJoined, Date: "2023-10-26T10:00:00Z", Status: model.MilestoneComplete},
				{Name: model.MilestoneTrained, Date: "2023-10-27T14:00:00Z", Status: model.MilestoneComplete},
				{Name: model.MilestoneOnboarded, Date: "2023-10-28T11:00:00Z", Status: model.MilestoneComplete},
				{Name: model.MilestoneFirstSale, Date: "2023-12-05T10:00:00Z", Status: model.MilestoneComplete},
				{Name: model.MilestoneCertified, Date: "2024-02-15T09:00:00Z", Status: model.MilestoneComplete},
			},
		},
		{
			ID:                    SeedAdminID,
			Username:              "admin",
			PasswordHash:          mustHash("adminpassword"),
			Name:                  "Admin User",
			Email:                 "admin@lcen.com",
			Role:                  model.RoleAdmin,
			RegistrationDate:      time.Date(2023, 10, 25, 9, 0, 0, 0, time.UTC),
			Phone:                 "09209876543",
			FarmLocation:          "LCEN HQ",
			MembershipLevel:       model.LevelClusterLeader,
			Status:                model.StatusActive,
			LastActivityDate:      now,
			ProfitCycleCompletion: 100,
			CDFContribution:       decimal.Zero,
			TrainingStatus:        model.TrainingCertified,
			EstimatedProfit:       decimal.Zero,
			Milestones:            []model.Milestone{},
		},
		{
			ID:                    SeedMariaID,
			Username:              "maria_santos",
			PasswordHash:          mustHash("password123"),
			Name:                  "Maria Santos",
			Email:                 "maria.santos@example.com",
			Role:                  model.RoleMember,
			RegistrationDate:      time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
			Phone:                 "09181112233",
			FarmLocation:          "Solana",
			MembershipLevel:       model.LevelStarter,
			Status:                model.StatusPendingOnboarding,
			LastActivityDate:      now.Add(-5 * 24 * time.Hour),
			ProfitCycleCompletion: 15,
			CDFContribution:       decimal.NewFromFloat(250.00),
			TrainingStatus:        model.TrainingPendingOrientation,
			EstimatedProfit:       decimal.Zero,
			Milestones: []model.Milestone{
				{Name: model.MilestoneJoined, Date: "2024-01-15T14:30:00Z", Status: model.MilestoneComplete},
				{Name: model.MilestoneTrained, Date: "2024-01-18T14:00:00Z", Status: model.MilestoneComplete},
				{Name: model.MilestoneOnboarded, Status: model.MilestonePending},
				{Name: model.MilestoneFirstSale, Status: model.MilestonePending},
				{Name: model.MilestoneCertified, Status: model.MilestonePending},
			},
		},
		{
			ID:                    SeedPedroID,
			Username:              "pedro_penduko",
			PasswordHash:          mustHash("password123"),
			Name:                  "Pedro Penduko",
			Email:                 "pedro.p@example.com",
			Role:                  model.RoleMember,
			RegistrationDate:      time.Date(2023, 12, 1, 11, 0, 0, 0, time.UTC),
			Phone:                 "09215556677",
			FarmLocation:          "Enrile",
			MembershipLevel:       model.LevelStarter,
			Status:                model.StatusInactive,
			LastActivityDate:      now.Add(-40 * 24 * time.Hour),
			ProfitCycleCompletion: 90,
			CDFContribution:       decimal.NewFromFloat(800.00),
			TrainingStatus:        model.TrainingCompleted,
			EstimatedProfit:       decimal.NewFromFloat(8500.00),
			Milestones: []model.Milestone{
				{Name: model.MilestoneJoined, Date: "2023-12-01T11:00:00Z", Status: model.MilestoneComplete},
				{Name: model.MilestoneTrained, Date: "2023-12-03T14:00:00Z", Status: model.MilestoneComplete},
				{Name: model.MilestoneOnboarded, Date: "2023-12-04T09:00:00Z", Status: model.MilestoneComplete},
				{Name: model.MilestoneFirstSale, Date: "2024-01-20T10:00:00Z", Status: model.MilestoneComplete},
				{Name: model.MilestoneCertified, Status: model.MilestonePending},
			},
		},
	}
}

// DefaultAuditLog seeds the audit trail with the system bootstrap entry.
func DefaultAuditLog() []model.AuditEntry {
	return []model.AuditEntry{
		{
			ID:        uuid.New(),
			Timestamp: time.Now(),
			Actor:     "system",
			Action:    model.ActionRegisterUser,
			Details:   "Registered user: admin",
		},
	}
}

// DefaultReminders seeds a handful of farm tasks for the demo members.
func DefaultReminders() []model.Reminder {
	now := time.Now()
	return []model.Reminder{
		{ID: uuid.New(), OwnerID: SeedJuanID, Title: "Check chick water levels", Description: "Ensure all drinkers are full and clean.", DueDate: now.Add(-time.Hour), IsCompleted: true},
		{ID: uuid.New(), OwnerID: SeedJuanID, Title: "Administer weekly vitamins", Description: "Mix vitamins in the morning water.", DueDate: now.Add(48 * time.Hour)},
		{ID: uuid.New(), OwnerID: SeedMariaID, Title: "Clean the coop", DueDate: now.Add(24 * time.Hour)},
		{ID: uuid.New(), OwnerID: SeedJuanID, Title: "Order new batch of feeds", Description: "Running low on grower pellets.", DueDate: now.Add(-2 * time.Minute)},
	}
}

// DefaultMarketStocks seeds the marketplace listings.
func DefaultMarketStocks() []model.MarketStock {
	now := time.Now()
	return []model.MarketStock{
		{ID: uuid.New(), OwnerID: SeedJuanID, Type: model.StockTableEggs, Quantity: 120, Price: decimal.NewFromInt(8), DateListed: now},
		{ID: uuid.New(), OwnerID: SeedMariaID, Type: model.StockLiveRIR, Quantity: 15, Price: decimal.NewFromInt(350), DateListed: now.Add(-48 * time.Hour)},
	}
}

// DefaultChatSessions seeds two assistant conversations for the demo member.
func DefaultChatSessions() []model.ChatSession {
	now := time.Now()
	return []model.ChatSession{
		{
			ID:          uuid.New(),
			OwnerID:     SeedJuanID,
			Title:       "Troubleshooting chick illness...",
			LastUpdated: now.Add(-24 * time.Hour),
			Messages: []model.ChatMessage{
				{Role: model.ChatRoleAssistant, Text: "Hi Juan dela Cruz! How can I help?"},
				{Role: model.ChatRoleUser, Text: "Some of my new chicks seem lethargic and are not eating. What could be wrong?"},
				{Role: model.ChatRoleAssistant, Text: "Lethargy in new chicks can be serious. Let's check a few things. How old are they, and what is the temperature in the brooder?"},
			},
		},
		{
			ID:          uuid.New(),
			OwnerID:     SeedJuanID,
			Title:       "Best feed for RIR layers...",
			LastUpdated: now.Add(-72 * time.Hour),
			Messages: []model.ChatMessage{
				{Role: model.ChatRoleAssistant, Text: "Welcome back! What can I help you with?"},
				{Role: model.ChatRoleUser, Text: "What is the best feed for my RIR hens that are about to start laying eggs?"},
			},
		},
	}
}

// DefaultPackages seeds the livelihood packages shown on the admin console.
func DefaultPackages() []model.OpportunityPackage {
	return []model.OpportunityPackage{
		{ID: uuid.New(), OwnerID: SeedJuanID, Name: "RIR Layer Starter Kit", Description: "Includes 50 RIR chicks, starter feeds, and basic vitamins.", DateAvailed: time.Date(2023, 10, 28, 11, 0, 0, 0, time.UTC), Status: "Active", Cost: decimal.NewFromInt(5000)},
		{ID: uuid.New(), OwnerID: SeedMariaID, Name: "Australorp Broiler Package", Description: "Includes 100 Australorp chicks and a brooding guide.", DateAvailed: time.Date(2023, 11, 20, 9, 30, 0, 0, time.UTC), Status: "Completed", Cost: decimal.NewFromInt(8500)},
	}
}

// DefaultTrainings seeds the training schedule.
func DefaultTrainings() []model.TrainingSession {
	return []model.TrainingSession{
		{ID: uuid.New(), OwnerID: SeedJuanID, Topic: "Poultry Raising 101", Date: time.Date(2023, 10, 27, 14, 0, 0, 0, time.UTC), Status: "Completed"},
		{ID: uuid.New(), OwnerID: SeedJuanID, Topic: "Advanced Disease Control", Date: time.Now().Add(7 * 24 * time.Hour), Status: "Scheduled"},
		{ID: uuid.New(), OwnerID: SeedMariaID, Topic: "Poultry Raising 101", Date: time.Date(2023, 11, 18, 14, 0, 0, 0, time.UTC), Status: "Completed"},
	}
}

// DefaultFeedOrders seeds the feed delivery schedule.
func DefaultFeedOrders() []model.FeedOrder {
	now := time.Now()
	return []model.FeedOrder{
		{ID: uuid.New(), OwnerID: SeedJuanID, Product: "Grower Pellets", Quantity: "10 bags", DeliveryDate: now.Add(5 * 24 * time.Hour), Status: "Scheduled"},
		{ID: uuid.New(), OwnerID: SeedJuanID, Product: "Starter Crumble", Quantity: "5 bags", DeliveryDate: time.Date(2023, 11, 15, 10, 0, 0, 0, time.UTC), Status: "Delivered"},
		{ID: uuid.New(), OwnerID: SeedMariaID, Product: "Finisher Pellets", Quantity: "20 bags", DeliveryDate: now.Add(3 * 24 * time.Hour), Status: "Scheduled"},
	}
}
