package lending

import "errors"

// Таксономия ошибок движка заявок. Хранилище возвращает их же,
// чтобы обработчики могли различать причины через errors.Is.
var (
	// ErrUnavailable — свободных единиц оборудования не осталось
	ErrUnavailable = errors.New("оборудование недоступно")
	// ErrForbidden — действие не соответствует роли или школе пользователя
	ErrForbidden = errors.New("доступ запрещен")
	// ErrNotFound — заявка, оборудование или пользователь не найдены
	ErrNotFound = errors.New("запись не найдена")
	// ErrInvalidInput — некорректный статус или дата возврата
	ErrInvalidInput = errors.New("некорректные данные")
	// ErrInvalidTransition — недопустимый переход статуса (заявка уже завершена)
	ErrInvalidTransition = errors.New("недопустимый переход статуса заявки")
)
