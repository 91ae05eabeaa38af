package main

import (
	"fmt"
	"log"

	"sklad-backend/models"
)

// Заполняет базу демонстрационными категориями и материалами.
// Запуск: go run scripts/seed_demo_data.go
func main() {
	db, err := models.InitDB()
	if err != nil {
		log.Fatal("Ошибка подключения к БД:", err)
	}

	db.AutoMigrate(&models.User{}, &models.Category{}, &models.Material{}, &models.Transaction{}, &models.LogEntry{})

	categories := map[string][]models.Material{
		"Крепеж": {
			{Name: "Болт М8", Unit: "шт", Quantity: 500, MinQuantity: 100},
			{Name: "Гайка М8", Unit: "шт", Quantity: 450, MinQuantity: 100},
			{Name: "Саморез 35мм", Unit: "шт", Quantity: 1200, MinQuantity: 200},
		},
		"Лакокрасочные материалы": {
			{Name: "Краска белая", Unit: "л", Quantity: 40, MinQuantity: 10},
			{Name: "Растворитель", Unit: "л", Quantity: 25, MinQuantity: 5},
		},
		"Электрика": {
			{Name: "Кабель ВВГ 3x1.5", Unit: "м", Quantity: 300, MinQuantity: 50},
			{Name: "Розетка", Unit: "шт", Quantity: 80, MinQuantity: 20},
		},
	}

	for categoryName, materials := range categories {
		var category models.Category
		if err := db.Where("name = ?", categoryName).First(&category).Error; err != nil {
			category = models.Category{Name: categoryName}
			if err := db.Create(&category).Error; err != nil {
				log.Fatalf("Ошибка создания категории '%s': %v", categoryName, err)
			}
		}

		for _, material := range materials {
			var count int64
			db.Model(&models.Material{}).Where("name = ?", material.Name).Count(&count)
			if count > 0 {
				continue
			}

			material.CategoryID = &category.ID
			if err := db.Create(&material).Error; err != nil {
				log.Fatalf("Ошибка создания материала '%s': %v", material.Name, err)
			}
		}
	}

	fmt.Println("Демонстрационные данные успешно добавлены в БД!")
}
