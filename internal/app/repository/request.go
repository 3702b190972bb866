package repository

import (
	"errors"
	"fmt"
	"time"

	"schooltech/internal/app/ds"
	"schooltech/internal/app/lending"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы для заявок. Переходы статусов выполняются транзакционно
// вместе с изменением счётчика оборудования, поэтому частичный сбой
// (резерв прошёл, вставка упала) откатывается целиком.

// ReserveAndCreateRequest атомарно списывает единицу и создаёт заявку pending
func (r *Repository) ReserveAndCreateRequest(studentID, equipmentID uint) (*ds.Request, error) {
	var request *ds.Request
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tryReserve(tx, equipmentID); err != nil {
			return err
		}

		req := &ds.Request{
			StudentID:   studentID,
			EquipmentID: equipmentID,
			Status:      ds.StatusPending,
			RequestDate: time.Now().UTC(),
		}
		if err := tx.Create(req).Error; err != nil {
			return fmt.Errorf("создание заявки: %w", err)
		}
		request = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// GetRequestByID возвращает заявку или lending.ErrNotFound
func (r *Repository) GetRequestByID(id uint) (*ds.Request, error) {
	var request ds.Request
	err := r.db.First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("заявка %d: %w", id, lending.ErrNotFound)
		}
		return nil, err
	}
	return &request, nil
}

// ApproveRequest переводит pending → approved. Инвентарь не трогается:
// единица уже зарезервирована при подаче заявки, одобрение лишь
// фиксирует дату возврата и учителя.
func (r *Repository) ApproveRequest(requestID, teacherID uint, dueDate string) (*ds.Request, error) {
	var request ds.Request
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("заявка %d: %w", requestID, lending.ErrNotFound)
			}
			return err
		}
		if request.Status != ds.StatusPending {
			return fmt.Errorf("заявка в статусе %q: %w", request.Status, lending.ErrInvalidTransition)
		}

		result := tx.Model(&ds.Request{}).
			Where("id = ? AND status = ?", requestID, ds.StatusPending).
			Updates(map[string]interface{}{
				"status":      ds.StatusApproved,
				"due_date":    dueDate,
				"approved_by": teacherID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return lending.ErrInvalidTransition
		}

		request.Status = ds.StatusApproved
		request.DueDate = &dueDate
		request.ApprovedBy = &teacherID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CloseRequest переводит pending/approved → rejected|returned и возвращает
// единицу в пул в той же транзакции. Повторный вызов на завершённой заявке
// возвращает ErrInvalidTransition и счётчик не трогает.
func (r *Repository) CloseRequest(requestID uint, status ds.RequestStatus) (*ds.Request, error) {
	if !status.Terminal() {
		return nil, fmt.Errorf("статус %q не терминальный: %w", status, lending.ErrInvalidInput)
	}

	var request ds.Request
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("заявка %d: %w", requestID, lending.ErrNotFound)
			}
			return err
		}

		result := tx.Model(&ds.Request{}).
			Where("id = ? AND status IN ?", requestID,
				[]ds.RequestStatus{ds.StatusPending, ds.StatusApproved}).
			Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("заявка в статусе %q: %w", request.Status, lending.ErrInvalidTransition)
		}

		if err := release(tx, request.EquipmentID); err != nil {
			return err
		}

		request.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// RequestsForTeacher — незавершённые заявки школы (кроме returned),
// новые первыми, с данными оборудования и ученика
func (r *Repository) RequestsForTeacher(schoolNumber string) ([]ds.TeacherRequestRow, error) {
	var requests []ds.Request
	err := r.db.Preload("Student").Preload("Equipment").
		Joins("JOIN equipment ON equipment.id = requests.equipment_id").
		Where("equipment.school_number = ? AND requests.status != ?", schoolNumber, ds.StatusReturned).
		Order("requests.request_date DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	rows := make([]ds.TeacherRequestRow, len(requests))
	for i, req := range requests {
		rows[i] = ds.TeacherRequestRow{
			ID:                 req.ID,
			Status:             req.Status,
			DueDate:            req.DueDate,
			RequestDate:        req.RequestDate,
			EquipmentID:        req.EquipmentID,
			EquipmentName:      req.Equipment.Name,
			EquipmentAvailable: req.Equipment.Available,
			StudentID:          req.StudentID,
			StudentName:        req.Student.FullName(),
			StudentClass:       req.Student.Class,
		}
	}
	return rows, nil
}

// RequestsForStudent — все заявки ученика, новые первыми
func (r *Repository) RequestsForStudent(studentID uint) ([]ds.StudentRequestRow, error) {
	var requests []ds.Request
	err := r.db.Preload("Equipment").
		Where("student_id = ?", studentID).
		Order("request_date DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	rows := make([]ds.StudentRequestRow, len(requests))
	for i, req := range requests {
		rows[i] = ds.StudentRequestRow{
			ID:                   req.ID,
			Status:               req.Status,
			DueDate:              req.DueDate,
			RequestDate:          req.RequestDate,
			EquipmentID:          req.EquipmentID,
			EquipmentName:        req.Equipment.Name,
			EquipmentDescription: req.Equipment.Description,
		}
	}
	return rows, nil
}
