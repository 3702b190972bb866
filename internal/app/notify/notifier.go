package notify

import (
	"github.com/sirupsen/logrus"
)

// Store — запись уведомления в хранилище
type Store interface {
	CreateNotification(userID uint, message string) error
}

type notification struct {
	userID  uint
	message string
}

// Service доставляет уведомления через буферизованный канал:
// отправитель никогда не блокируется и не видит ошибок записи,
// сбой доставки не откатывает вызвавший её переход статуса.
type Service struct {
	store Store
	queue chan notification
}

func NewService(store Store) *Service {
	s := &Service{
		store: store,
		queue: make(chan notification, 256),
	}
	go s.run()
	return s
}

// Notify ставит уведомление в очередь. При переполнении очереди
// уведомление отбрасывается с предупреждением в лог.
func (s *Service) Notify(userID uint, message string) {
	select {
	case s.queue <- notification{userID: userID, message: message}:
	default:
		logrus.Warnf("notify: очередь переполнена, уведомление для %d отброшено", userID)
	}
}

func (s *Service) run() {
	for n := range s.queue {
		if err := s.store.CreateNotification(n.userID, n.message); err != nil {
			logrus.Error("notify: запись уведомления не удалась: ", err)
		}
	}
}
