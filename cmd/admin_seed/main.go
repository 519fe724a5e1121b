// Command admin_seed creates the initial admin account and the default
// mobile-money payment channels. Admins are never created through the API.
package main

import (
	"context"
	"os"

	"kolo/internal/config"
	"kolo/internal/models"
	"kolo/internal/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var defaultChannels = []models.PaymentMethod{
	{Code: "mtn", Name: "MTN Mobile Money", ReceiveAccount: "0500000001", Enabled: true},
	{Code: "orange", Name: "Orange Money", ReceiveAccount: "0700000001", Enabled: true},
	{Code: "moov", Name: "Moov Money", ReceiveAccount: "0100000001", Enabled: true},
	{Code: "wave", Name: "Wave", ReceiveAccount: "0500000002", Enabled: true},
}

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")
	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		logrus.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_PHONE must be set")
	}

	db, err := repositories.InitDB()
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}
	defer func() {
		if sqlDB, derr := db.DB(); derr == nil {
			sqlDB.Close()
		}
	}()

	ctx := context.Background()
	methodRepo := repositories.NewPaymentMethodRepository(db)
	for _, channel := range defaultChannels {
		channel := channel
		if err := methodRepo.Upsert(ctx, &channel); err != nil {
			logrus.WithError(err).WithField("code", channel.Code).Fatal("failed to seed payment channel")
		}
	}
	logrus.Infof("seeded %d payment channels", len(defaultChannels))

	userRepo := repositories.NewUserRepository(db)
	if _, err := userRepo.GetByEmail(adminEmail); err == nil {
		logrus.Info("admin account already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash admin password")
	}

	admin := &models.User{
		Name:     config.GetEnv("ADMIN_NAME", "Administrator"),
		Email:    adminEmail,
		Phone:    adminPhone,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		logrus.WithError(err).Fatal("failed to create admin account")
	}

	logrus.WithField("user_id", admin.ID).Info("admin account created")
}
