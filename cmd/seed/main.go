package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodforward/internal/config"
	"foodforward/internal/db"
	"foodforward/internal/model"
	"foodforward/internal/repository"
)

// Demo fixtures: one user per role plus a couple of recipient organizations,
// enough to walk the whole donation lifecycle locally. Safe to re-run.
var seedUsers = []struct {
	Username string
	Email    string
	Password string
	Role     model.Role
	Phone    string
	Address  string
}{
	{"admin", "admin@foodforward.local", "admin123", model.RoleAdmin, "+10000000001", "1 Admin Plaza"},
	{"alice", "alice@foodforward.local", "alice123", model.RoleDonor, "+10000000002", "12 Baker Street"},
	{"bob", "bob@foodforward.local", "bob12345", model.RoleDelivery, "+10000000003", "34 Rider Lane"},
}

var seedRecipients = []model.Recipient{
	{Name: "Shelter A", ContactPerson: "Maria Lopez", Phone: "+10000000010", Address: "5 Harbor Road", RecipientType: "Shelter"},
	{Name: "Sunrise Old Age Home", ContactPerson: "James Okoro", Phone: "+10000000011", Address: "77 Hill Avenue", RecipientType: "Old Age Home"},
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logrus.Fatalf("connect database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Recipient{},
		&model.Donation{},
		&model.Delivery{},
	); err != nil {
		logrus.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	recipientRepo := repository.NewRecipientRepository(gormDB)

	created := 0
	for _, u := range seedUsers {
		existing, err := userRepo.FindByUsername(ctx, u.Username)
		if err != nil && err != gorm.ErrRecordNotFound {
			logrus.Fatalf("check user %s: %v", u.Username, err)
		}
		if existing != nil {
			logrus.Infof("user %s already exists, skipping", u.Username)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), 10)
		if err != nil {
			logrus.Fatalf("hash password for %s: %v", u.Username, err)
		}

		user := &model.User{
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         u.Role,
			Phone:        u.Phone,
			Address:      u.Address,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			logrus.Fatalf("create user %s: %v", u.Username, err)
		}
		created++
	}
	logrus.Infof("seeded %d users", created)

	existing, err := recipientRepo.List(ctx)
	if err != nil {
		logrus.Fatalf("list recipients: %v", err)
	}
	byName := make(map[string]bool, len(existing))
	for _, r := range existing {
		byName[r.Name] = true
	}

	created = 0
	for _, r := range seedRecipients {
		if byName[r.Name] {
			logrus.Infof("recipient %s already exists, skipping", r.Name)
			continue
		}
		recipient := r
		if err := recipientRepo.Create(ctx, &recipient); err != nil {
			logrus.Fatalf("create recipient %s: %v", r.Name, err)
		}
		created++
	}
	logrus.Infof("seeded %d recipients", created)

	logrus.Info("seed completed")
}
