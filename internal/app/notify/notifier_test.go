package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type channelStore struct {
	written chan string
}

func (s *channelStore) CreateNotification(userID uint, message string) error {
	s.written <- message
	return nil
}

func TestNotifyDeliversAsync(t *testing.T) {
	store := &channelStore{written: make(chan string, 1)}
	svc := NewService(store)

	svc.Notify(7, "Заявка на оборудование одобрена!")

	select {
	case msg := <-store.written:
		require.Equal(t, "Заявка на оборудование одобрена!", msg)
	case <-time.After(time.Second):
		t.Fatal("уведомление не доставлено")
	}
}
