package main

import (
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"checkflow/models"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	// Ensure the roles master table exists first and seed it so users FK can be applied safely.
	if shouldMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Printf("migration warning (roles): %v", err)
		}
	}
	seedRoles()

	// Now migrate the rest (users will get FK to roles)
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Customer{}); err != nil {
			log.Printf("migration warning (customers): %v", err)
		}
		if err := db.AutoMigrate(&models.LedgerEntry{}); err != nil {
			log.Printf("migration warning (ledger_entries): %v", err)
		}
	}
	seedDB()
}

func seedRoles() {
	roles := []models.Role{{Name: "administrator", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedDB() {
	seedRoles()

	// Check if admin user exists
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			log.Printf("failed to find administrator role: %v", err)
		}
		rid := role.ID
		admin := models.User{
			Username: "admin",
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}

	seedDemoCustomers()
}

// seedDemoCustomers creates a couple of known customers so the pipeline can
// be exercised end to end on a fresh database. Controlled by SEED_DEMO_DATA
// (default on).
func seedDemoCustomers() {
	if v := strings.ToLower(os.Getenv("SEED_DEMO_DATA")); v == "false" || v == "0" || v == "no" {
		return
	}
	demos := []models.Customer{
		{ID: "6f9619ff-8b86-4d01-b42d-00c04fc964ff", Name: "John Doe", Email: "john.doe@example.com"},
		{ID: "8a4d55f2-17a3-4b05-9c4e-2f60d1a3e001", Name: "Jane Smith", Email: "jane.smith@example.com"},
	}
	for _, d := range demos {
		var cnt int64
		db.Model(&models.Customer{}).Where("id = ?", d.ID).Count(&cnt)
		if cnt == 0 {
			if err := db.Create(&d).Error; err != nil {
				log.Printf("failed to seed customer %s: %v", d.ID, err)
			}
		}
	}
}
