package dao

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Store{},
		&NotificationSetting{},
		&LotteryMaster{},
		&StoreLotteryInventory{},
		&ScannedTicket{},
		&DailyReport{},
	)
}

// SeedSuperAdmin creates the catalog admin account on first boot. It is a
// no-op when the account already exists.
func SeedSuperAdmin(db *gorm.DB, email, password string) error {
	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&User{
		Email:    email,
		Password: string(hash),
		Name:     "Super Admin",
		Role:     "super_admin",
	}).Error
}
