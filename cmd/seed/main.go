package main

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/models"
)

func main() {
	db, err := gorm.Open(sqlite.Open("./data/umoja.db"), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Incident{},
		&models.IncidentNote{},
		&models.AdminMessage{},
		&models.MessageReadReceipt{},
		&models.AuditLog{},
		&models.DeliveryChannel{},
		&models.Setting{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("✓ Database migrated successfully")

	organizations := []models.Organization{
		{Name: "Nairobi Youth Collective", Country: "Kenya", Region: "Nairobi", ContactEmail: "hello@nyc.or.ke", MemberCount: 120},
		{Name: "Mombasa Shoreline Trust", Country: "Kenya", Region: "Coast", ContactEmail: "info@shoreline.or.ke", MemberCount: 45},
		{Name: "Kampala Learning Hub", Country: "Uganda", Region: "Central", ContactEmail: "team@klh.ug", MemberCount: 80},
	}
	for i := range organizations {
		var existing models.Organization
		err := db.Where("name = ?", organizations[i].Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&organizations[i]).Error; err != nil {
				log.Fatal("Failed to seed organization:", err)
			}
			fmt.Printf("✓ Created organization %s\n", organizations[i].Name)
		}
	}

	var admin models.User
	err = db.Where("email = ?", "admin@umoja.network").First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		admin = models.User{
			Email: "admin@umoja.network",
			Name:  "Network Admin",
			Role:  string(access.RoleSuperAdmin),
		}
		if err := admin.SetPassword("changeme"); err != nil {
			log.Fatal("Failed to hash password:", err)
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatal("Failed to seed admin:", err)
		}
		fmt.Println("✓ Created super admin admin@umoja.network (password: changeme)")
	}

	var channel models.DeliveryChannel
	err = db.Where("name = ?", "ops-webhook").First(&channel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		channel = models.DeliveryChannel{
			Name:    "ops-webhook",
			Type:    "generic",
			URL:     "generic://localhost:9000/hooks/broadcasts",
			Enabled: false,
		}
		if err := db.Create(&channel).Error; err != nil {
			log.Fatal("Failed to seed delivery channel:", err)
		}
		fmt.Println("✓ Created example delivery channel (disabled)")
	}

	fmt.Println("Done.")
}
