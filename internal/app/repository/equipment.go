package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"schooltech/internal/app/ds"
	"schooltech/internal/app/lending"

	"gorm.io/gorm"
)

// Инвентарный учёт: оборудование и счётчик свободных единиц

// EquipmentRow — представление оборудования для списков (с именем создателя)
type EquipmentRow struct {
	ID            uint
	Name          string
	Description   string
	Category      string
	SchoolNumber  string
	Available     int
	ImageFilename string
	CreatorName   string
}

func equipmentToRow(e ds.Equipment) EquipmentRow {
	row := EquipmentRow{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		Category:     e.Category,
		SchoolNumber: e.SchoolNumber,
		Available:    e.Available,
		CreatorName:  "Система",
	}
	if e.ImageFilename != nil {
		row.ImageFilename = *e.ImageFilename
	}
	if e.Creator != nil {
		row.CreatorName = e.Creator.FirstName + " " + e.Creator.LastName
	}
	return row
}

// GetEquipmentByID возвращает оборудование или lending.ErrNotFound
func (r *Repository) GetEquipmentByID(id uint) (*ds.Equipment, error) {
	var equipment ds.Equipment
	err := r.db.First(&equipment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("оборудование %d: %w", id, lending.ErrNotFound)
		}
		return nil, err
	}
	return &equipment, nil
}

// GetEquipmentBySchool — всё оборудование школы, отсортированное по названию
func (r *Repository) GetEquipmentBySchool(schoolNumber string) ([]EquipmentRow, error) {
	var items []ds.Equipment
	err := r.db.Preload("Creator").
		Where("school_number = ?", schoolNumber).
		Order("name").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	rows := make([]EquipmentRow, len(items))
	for i, e := range items {
		rows[i] = equipmentToRow(e)
	}
	return rows, nil
}

// SearchEquipmentByName — поиск оборудования школы по названию
func (r *Repository) SearchEquipmentByName(schoolNumber, name string) ([]EquipmentRow, error) {
	var items []ds.Equipment
	err := r.db.Preload("Creator").
		Where("school_number = ? AND name ILIKE ?", schoolNumber, "%"+name+"%").
		Order("name").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	rows := make([]EquipmentRow, len(items))
	for i, e := range items {
		rows[i] = equipmentToRow(e)
	}
	return rows, nil
}

func (r *Repository) CreateEquipment(equipment *ds.Equipment) error {
	equipment.Name = strings.ToUpper(equipment.Name)
	equipment.CreatedAt = time.Now().UTC()
	return r.db.Create(equipment).Error
}

func (r *Repository) UpdateEquipmentImage(id uint, filename string) error {
	return r.db.Model(&ds.Equipment{}).Where("id = ?", id).
		Update("image_filename", filename).Error
}

// TryReserve атомарно списывает одну единицу: проверка available > 0 и
// декремент выполняются одним UPDATE, конкурентные вызовы сериализуются
// на уровне строки (счётчик не уходит в минус и не выдаётся дважды).
func (r *Repository) TryReserve(equipmentID uint) error {
	return tryReserve(r.db, equipmentID)
}

func tryReserve(db *gorm.DB, equipmentID uint) error {
	result := db.Model(&ds.Equipment{}).
		Where("id = ? AND available > 0", equipmentID).
		UpdateColumn("available", gorm.Expr("available - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&ds.Equipment{}).Where("id = ?", equipmentID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("оборудование %d: %w", equipmentID, lending.ErrNotFound)
		}
		return lending.ErrUnavailable
	}
	return nil
}

// Release возвращает единицу в пул
func (r *Repository) Release(equipmentID uint) error {
	return release(r.db, equipmentID)
}

func release(db *gorm.DB, equipmentID uint) error {
	return db.Model(&ds.Equipment{}).
		Where("id = ?", equipmentID).
		UpdateColumn("available", gorm.Expr("available + 1")).Error
}

// GetAvailable — текущее число свободных единиц
func (r *Repository) GetAvailable(equipmentID uint) (int, error) {
	equipment, err := r.GetEquipmentByID(equipmentID)
	if err != nil {
		return 0, err
	}
	return equipment.Available, nil
}
