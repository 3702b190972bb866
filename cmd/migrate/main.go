package main

import (
	"crypto/sha1"
	"encoding/hex"
	"log"

	"schooltech/internal/app/ds"
	"schooltech/internal/app/dsn"
	"schooltech/internal/app/role"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func hashPassword(password string) string {
	h := sha1.New()
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	err = db.AutoMigrate(
		&ds.User{},
		&ds.Equipment{},
		&ds.Request{},
		&ds.Notification{},
		&ds.ChatMessage{},
		&ds.ActionLog{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully")

	// Учётная запись учителя: регистрация заводит только учеников
	var count int64
	db.Model(&ds.User{}).Where("username = ?", "GOPTAR").Count(&count)
	if count == 0 {
		teacher := ds.User{
			FirstName:    "ИГОРЬ",
			LastName:     "ГОПТАРЕВ",
			MiddleName:   "ОЛЕГОВИЧ",
			SchoolNumber: "2098",
			Class:        "УЧИТЕЛЬ",
			Username:     "GOPTAR",
			Email:        "goptar@school2098.ru",
			Password:     hashPassword("teacher123"),
			Role:         role.Teacher,
			IsActive:     true,
		}
		if err := db.Create(&teacher).Error; err != nil {
			log.Fatalf("Failed to seed teacher account: %v", err)
		}
		log.Println("Teacher account seeded")
	}
}
