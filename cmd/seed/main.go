// Command seed provisions the default demo accounts. It talks to the
// database directly over DATABASE_URL, the administrative path that the
// runtime server never uses for this.
//
// Change these passwords before exposing a deployment.
package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/synctask-dev/synctask/db"
	"github.com/synctask-dev/synctask/internal/models"
	"github.com/synctask-dev/synctask/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Email    string
	Password string
	FullName string
	Emoji    string
	Role     string
}

var users = []seedUser{
	{Email: "admin@synctask.com", Password: "Admin@123", FullName: "System Admin", Emoji: "👑", Role: types.RoleAdmin},
	{Email: "nuwanga@synctask.com", Password: "Nuwanga@123", FullName: "Nuwanga Akalanka", Emoji: "📊", Role: types.RoleMember},
	{Email: "charuka@synctask.com", Password: "Charuka@123", FullName: "Charuka Abeysinghe", Emoji: "🏅", Role: types.RoleMember},
	{Email: "pramodi@synctask.com", Password: "Pramodi@123", FullName: "Pramodi Rashmika", Emoji: "🤣", Role: types.RoleMember},
	{Email: "dileka@synctask.com", Password: "Dileka@123", FullName: "Dileka Sathsarani", Emoji: "🚀", Role: types.RoleMember},
	{Email: "lasith@synctask.com", Password: "Lasith@123", FullName: "Lasith Dissanayake", Emoji: "💻", Role: types.RoleMember},
	{Email: "ashen@synctask.com", Password: "Ashen@123", FullName: "Ashen Gunasekara", Emoji: "🐯", Role: types.RoleMember},
	{Email: "warsha@synctask.com", Password: "Warsha@123", FullName: "Warsha Yashodini", Emoji: "🌧️", Role: types.RoleMember},
	{Email: "dedunu@synctask.com", Password: "Dedunu@123", FullName: "Nayomi Dedunu", Emoji: "🌈", Role: types.RoleMember},
	{Email: "shalitha@synctask.com", Password: "Shalitha@123", FullName: "Shalitha Pathum", Emoji: "😌", Role: types.RoleMember},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	database, err := db.Connect(dsn)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var created, skipped int

	for _, user := range users {
		var existing models.Profile

		err := database.Where("email = ?", user.Email).First(&existing).Error

		if err == nil {
			log.Printf("Skipping %s: already exists", user.Email)
			skipped++
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check existing user %s: %v", user.Email, err)
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)

		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", user.Email, err)
		}

		profile := models.Profile{
			Email:        user.Email,
			FullName:     user.FullName,
			Emoji:        user.Emoji,
			Role:         user.Role,
			PasswordHash: string(passwordHash),
		}

		if err := database.Create(&profile).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", user.Email, err)
		}

		log.Printf("Created %s (%s)", user.FullName, user.Email)
		created++
	}

	log.Printf("Seeding complete: %d created, %d skipped", created, skipped)
}
