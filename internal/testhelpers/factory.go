package testhelpers

import (
	"context"
	"fmt"

	g "github.com/onsi/gomega"
	"gorm.io/gorm"

	"stockbot/internal/models"
	"stockbot/internal/security"
)

func CleanupDB(db *gorm.DB) {
	var tables []string

	err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error
	g.Expect(err).NotTo(g.HaveOccurred())

	if len(tables) == 0 {
		return
	}

	for _, table := range tables {
		if table == "spatial_ref_sys" || table == "schema_migrations" {
			continue
		}

		query := fmt.Sprintf("TRUNCATE TABLE \"%s\" RESTART IDENTITY CASCADE", table)
		err := db.Exec(query).Error
		g.Expect(err).NotTo(g.HaveOccurred(), "Failed to truncate table: "+table)
	}
}

// CreateUser inserts a user with a hashed password and sensible defaults.
func CreateUser(db *gorm.DB, ctx context.Context, user *models.User, password string) *models.User {
	hash, err := security.HashPassword(password)
	g.Expect(err).NotTo(g.HaveOccurred())
	user.HashPassword = hash

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.IsActive = true

	g.Expect(db.WithContext(ctx).Create(user).Error).NotTo(g.HaveOccurred())
	return user
}

func CreateCompany(db *gorm.DB, ctx context.Context, company *models.Company) *models.Company {
	if company.Name == "" {
		company.Name = "Company " + company.Code
	}
	g.Expect(db.WithContext(ctx).Create(company).Error).NotTo(g.HaveOccurred())
	return company
}

func CreateNotification(db *gorm.DB, ctx context.Context, notification *models.Notification) *models.Notification {
	g.Expect(db.WithContext(ctx).Create(notification).Error).NotTo(g.HaveOccurred())
	return notification
}
