package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
)

// User is an admin profile. The scope fields matching the role (country for
// country admins, and so on) should be present; when one is absent the
// resolved context simply has no authorized scope.
type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // Never serialize password hash

	Role           string `json:"role" gorm:"default:'organization_admin'"`
	Country        string `json:"country,omitempty"`
	Region         string `json:"region,omitempty"`
	OrganizationID string `json:"organization_id,omitempty" gorm:"index"`

	ManagedCountries     []string `json:"managed_countries,omitempty" gorm:"serializer:json"`
	ManagedRegions       []string `json:"managed_regions,omitempty" gorm:"serializer:json"`
	ManagedOrganizations []string `json:"managed_organizations,omitempty" gorm:"serializer:json"`

	Suspended bool       `json:"suspended" gorm:"default:false"`
	LastLogin *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// SetPassword hashes and sets the user's password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the provided password with the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// AdminContext resolves the normalized caller scope from this profile. The
// context is built per request and discarded after use.
func (u User) AdminContext() access.AdminContext {
	return access.AdminContext{
		UserID:               u.ID,
		UserName:             u.Name,
		Role:                 access.Role(u.Role),
		Country:              u.Country,
		Region:               u.Region,
		OrganizationID:       u.OrganizationID,
		ManagedCountries:     u.ManagedCountries,
		ManagedRegions:       u.ManagedRegions,
		ManagedOrganizations: u.ManagedOrganizations,
	}
}

// Recipient returns the attribute set broadcast messages are matched against.
func (u User) Recipient() Recipient {
	return Recipient{
		UserID:         u.ID,
		Role:           access.Role(u.Role),
		Country:        u.Country,
		Region:         u.Region,
		OrganizationID: u.OrganizationID,
	}
}
