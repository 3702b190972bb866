package main

import (
	"fmt"
	"log"

	"schooltech/internal/app/ds"
	"schooltech/internal/app/dsn"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Быстрая проверка содержимого таблицы оборудования: go run check_db.go
func main() {
	_ = godotenv.Load()

	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var equipment []ds.Equipment
	err = db.Find(&equipment).Error
	if err != nil {
		log.Fatal("Failed to get equipment:", err)
	}

	fmt.Println("Equipment in database:")
	for _, item := range equipment {
		image := "NULL"
		if item.ImageFilename != nil {
			image = *item.ImageFilename
		}
		fmt.Printf("ID: %d, Name: %s, School: %s, Available: %d, Image: %s\n",
			item.ID, item.Name, item.SchoolNumber, item.Available, image)
	}
}
