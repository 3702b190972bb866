package lending

import (
	"fmt"
	"time"

	"schooltech/internal/app/ds"
	"schooltech/internal/app/role"
)

// Формат даты возврата в заявке
const DueDateLayout = "2006-01-02"

// Storage — доступ движка к заявкам и инвентарному учёту.
// Каждый метод атомарен относительно конкурентных вызовов:
// резервирование и возврат единицы выполняются в одной транзакции
// с переходом статуса.
type Storage interface {
	// GetEquipmentByID возвращает оборудование или ErrNotFound
	GetEquipmentByID(id uint) (*ds.Equipment, error)
	// ReserveAndCreateRequest атомарно списывает единицу (available > 0)
	// и создаёт заявку в статусе pending. ErrUnavailable — единиц нет,
	// ErrNotFound — оборудование не существует.
	ReserveAndCreateRequest(studentID, equipmentID uint) (*ds.Request, error)
	// ApproveRequest переводит pending → approved, не трогая инвентарь:
	// единица под заявку уже зарезервирована при подаче.
	// ErrInvalidTransition — заявка не pending.
	ApproveRequest(requestID, teacherID uint, dueDate string) (*ds.Request, error)
	// CloseRequest переводит pending/approved → rejected|returned и
	// возвращает единицу в пул в той же транзакции.
	// ErrInvalidTransition — заявка уже в терминальном статусе.
	CloseRequest(requestID uint, status ds.RequestStatus) (*ds.Request, error)
	// RequestsForTeacher — незавершённые (кроме returned) заявки школы, новые первыми
	RequestsForTeacher(schoolNumber string) ([]ds.TeacherRequestRow, error)
	// RequestsForStudent — все заявки ученика, новые первыми
	RequestsForStudent(studentID uint) ([]ds.StudentRequestRow, error)
}

// UserProvider — поиск пользователя по ID (внешний справочник)
type UserProvider interface {
	GetUserByID(id uint) (*ds.User, error)
}

// Notifier — доставка уведомления пользователю.
// Вызов не блокирует и не возвращает ошибку: сбой доставки
// не откатывает переход статуса (best-effort).
type Notifier interface {
	Notify(userID uint, message string)
}

// Engine — движок жизненного цикла заявок на оборудование.
// Владеет машиной статусов и согласует её с инвентарным учётом.
type Engine struct {
	store Storage
	users UserProvider
	sink  Notifier
}

func NewEngine(store Storage, users UserProvider, sink Notifier) *Engine {
	return &Engine{store: store, users: users, sink: sink}
}

// SubmitRequest создаёт заявку ученика: проверяет роль и школу,
// атомарно резервирует единицу оборудования и вставляет запись pending.
func (e *Engine) SubmitRequest(studentID, equipmentID uint) (*ds.Request, error) {
	user, err := e.users.GetUserByID(studentID)
	if err != nil {
		return nil, fmt.Errorf("пользователь %d: %w", studentID, ErrNotFound)
	}
	if user.Role != role.Student {
		return nil, fmt.Errorf("заявки подают только ученики: %w", ErrForbidden)
	}

	equipment, err := e.store.GetEquipmentByID(equipmentID)
	if err != nil {
		return nil, err
	}
	// Ученик может запрашивать только оборудование своей школы
	if equipment.SchoolNumber != user.SchoolNumber {
		return nil, fmt.Errorf("оборудование другой школы: %w", ErrForbidden)
	}

	return e.store.ReserveAndCreateRequest(studentID, equipmentID)
}

// SetStatus выполняет действие учителя над заявкой: approved, rejected или returned.
// Любой другой статус отклоняется без побочных эффектов.
func (e *Engine) SetStatus(teacherID, requestID uint, status ds.RequestStatus, dueDate string) (*ds.Request, error) {
	user, err := e.users.GetUserByID(teacherID)
	if err != nil {
		return nil, fmt.Errorf("пользователь %d: %w", teacherID, ErrNotFound)
	}
	if user.Role != role.Teacher {
		return nil, fmt.Errorf("статус заявки меняет только учитель: %w", ErrForbidden)
	}

	switch status {
	case ds.StatusApproved:
		if dueDate == "" {
			return nil, fmt.Errorf("укажите дату возврата: %w", ErrInvalidInput)
		}
		if _, err := time.Parse(DueDateLayout, dueDate); err != nil {
			return nil, fmt.Errorf("неверный формат даты, используйте ГГГГ-ММ-ДД: %w", ErrInvalidInput)
		}
		request, err := e.store.ApproveRequest(requestID, teacherID, dueDate)
		if err != nil {
			return nil, err
		}
		e.sink.Notify(request.StudentID, "Заявка на оборудование одобрена! Дата возврата: "+dueDate)
		return request, nil

	case ds.StatusRejected:
		request, err := e.store.CloseRequest(requestID, ds.StatusRejected)
		if err != nil {
			return nil, err
		}
		e.sink.Notify(request.StudentID, "Ваша заявка на оборудование отклонена")
		return request, nil

	case ds.StatusReturned:
		request, err := e.store.CloseRequest(requestID, ds.StatusReturned)
		if err != nil {
			return nil, err
		}
		e.sink.Notify(request.StudentID, "Оборудование возвращено и готово к новым заявкам")
		return request, nil

	default:
		return nil, fmt.Errorf("неизвестный статус %q: %w", status, ErrInvalidInput)
	}
}

// RequestsForTeacher возвращает заявки школы учителя (кроме возвращённых)
func (e *Engine) RequestsForTeacher(teacherID uint) ([]ds.TeacherRequestRow, error) {
	user, err := e.users.GetUserByID(teacherID)
	if err != nil {
		return nil, fmt.Errorf("пользователь %d: %w", teacherID, ErrNotFound)
	}
	if user.Role != role.Teacher {
		return nil, ErrForbidden
	}
	return e.store.RequestsForTeacher(user.SchoolNumber)
}

// RequestsForStudent возвращает все заявки ученика
func (e *Engine) RequestsForStudent(studentID uint) ([]ds.StudentRequestRow, error) {
	return e.store.RequestsForStudent(studentID)
}
