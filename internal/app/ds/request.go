package ds

import "time"

// RequestStatus — закрытый тип статусов заявки
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
	StatusReturned RequestStatus = "returned"
)

// Terminal сообщает, завершена ли заявка (из терминального статуса переходов нет)
func (s RequestStatus) Terminal() bool {
	return s == StatusRejected || s == StatusReturned
}

// Таблица заявок на оборудование.
// Статусами/датой возврата/approved_by владеет только движок заявок (lending).
type Request struct {
	ID          uint          `gorm:"primaryKey"`
	StudentID   uint          `gorm:"not null;index"`
	EquipmentID uint          `gorm:"not null;index"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	DueDate     *string       `gorm:"type:varchar(10)"` // ISO дата ГГГГ-ММ-ДД, задаётся при одобрении
	RequestDate time.Time     `gorm:"not null"`
	ApprovedBy  *uint         `gorm:"default:null"`

	Student   User      `gorm:"foreignKey:StudentID"`
	Equipment Equipment `gorm:"foreignKey:EquipmentID"`
	Approver  *User     `gorm:"foreignKey:ApprovedBy"`
}

// TeacherRequestRow — строка списка заявок для учителя (JOIN с оборудованием и учеником)
type TeacherRequestRow struct {
	ID                 uint
	Status             RequestStatus
	DueDate            *string
	RequestDate        time.Time
	EquipmentID        uint
	EquipmentName      string
	EquipmentAvailable int
	StudentID          uint
	StudentName        string
	StudentClass       string
}

// StudentRequestRow — строка списка собственных заявок ученика
type StudentRequestRow struct {
	ID                   uint
	Status               RequestStatus
	DueDate              *string
	RequestDate          time.Time
	EquipmentID          uint
	EquipmentName        string
	EquipmentDescription string
}
