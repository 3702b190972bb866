package lending

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"schooltech/internal/app/ds"
	"schooltech/internal/app/role"

	"github.com/stretchr/testify/require"
)

// fakeStore — хранилище в памяти с той же атомарностью переходов,
// что и у боевого репозитория: один мьютекс на все операции.
type fakeStore struct {
	mu        sync.Mutex
	equipment map[uint]*ds.Equipment
	requests  map[uint]*ds.Request
	nextID    uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		equipment: make(map[uint]*ds.Equipment),
		requests:  make(map[uint]*ds.Request),
	}
}

func (f *fakeStore) addEquipment(id uint, school string, available int) {
	f.equipment[id] = &ds.Equipment{
		ID:           id,
		Name:         fmt.Sprintf("НОУТБУК-%d", id),
		Category:     "компьютеры",
		SchoolNumber: school,
		Available:    available,
	}
}

func (f *fakeStore) GetEquipmentByID(id uint) (*ds.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	eq, ok := f.equipment[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *eq
	return &copied, nil
}

func (f *fakeStore) ReserveAndCreateRequest(studentID, equipmentID uint) (*ds.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	eq, ok := f.equipment[equipmentID]
	if !ok {
		return nil, ErrNotFound
	}
	if eq.Available <= 0 {
		return nil, ErrUnavailable
	}
	eq.Available--
	f.nextID++
	req := &ds.Request{
		ID:          f.nextID,
		StudentID:   studentID,
		EquipmentID: equipmentID,
		Status:      ds.StatusPending,
		RequestDate: time.Now().UTC(),
	}
	f.requests[req.ID] = req
	copied := *req
	return &copied, nil
}

func (f *fakeStore) ApproveRequest(requestID, teacherID uint, dueDate string) (*ds.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[requestID]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Status != ds.StatusPending {
		return nil, ErrInvalidTransition
	}
	req.Status = ds.StatusApproved
	req.DueDate = &dueDate
	req.ApprovedBy = &teacherID
	copied := *req
	return &copied, nil
}

func (f *fakeStore) CloseRequest(requestID uint, status ds.RequestStatus) (*ds.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[requestID]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Status.Terminal() {
		return nil, ErrInvalidTransition
	}
	req.Status = status
	f.equipment[req.EquipmentID].Available++
	copied := *req
	return &copied, nil
}

func (f *fakeStore) RequestsForTeacher(schoolNumber string) ([]ds.TeacherRequestRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []ds.TeacherRequestRow
	for _, req := range f.requests {
		eq := f.equipment[req.EquipmentID]
		if eq.SchoolNumber != schoolNumber || req.Status == ds.StatusReturned {
			continue
		}
		rows = append(rows, ds.TeacherRequestRow{
			ID:            req.ID,
			Status:        req.Status,
			DueDate:       req.DueDate,
			RequestDate:   req.RequestDate,
			EquipmentID:   eq.ID,
			EquipmentName: eq.Name,
			StudentID:     req.StudentID,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows, nil
}

func (f *fakeStore) RequestsForStudent(studentID uint) ([]ds.StudentRequestRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []ds.StudentRequestRow
	for _, req := range f.requests {
		if req.StudentID != studentID {
			continue
		}
		eq := f.equipment[req.EquipmentID]
		rows = append(rows, ds.StudentRequestRow{
			ID:            req.ID,
			Status:        req.Status,
			DueDate:       req.DueDate,
			RequestDate:   req.RequestDate,
			EquipmentID:   eq.ID,
			EquipmentName: eq.Name,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows, nil
}

func (f *fakeStore) available(equipmentID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.equipment[equipmentID].Available
}

type fakeUsers struct {
	users map[uint]*ds.User
}

func (f *fakeUsers) GetUserByID(id uint) (*ds.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages map[uint][]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{messages: make(map[uint][]string)}
}

func (n *recordingNotifier) Notify(userID uint, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages[userID] = append(n.messages[userID], message)
}

const (
	studentID     = uint(1)
	teacherID     = uint(2)
	otherStudent  = uint(3)
	schoolNumber  = "2098"
	otherSchool   = "1234"
	laptopID      = uint(10)
	projectorID   = uint(11)
	foreignItemID = uint(12)
)

func newTestEngine() (*Engine, *fakeStore, *recordingNotifier) {
	store := newFakeStore()
	store.addEquipment(laptopID, schoolNumber, 1)
	store.addEquipment(projectorID, schoolNumber, 3)
	store.addEquipment(foreignItemID, otherSchool, 5)

	users := &fakeUsers{users: map[uint]*ds.User{
		studentID: {
			ID: studentID, FirstName: "ИВАН", LastName: "ПЕТРОВ",
			SchoolNumber: schoolNumber, Class: "10А", Role: role.Student,
		},
		teacherID: {
			ID: teacherID, FirstName: "ОЛЬГА", LastName: "СИДОРОВА",
			SchoolNumber: schoolNumber, Class: "УЧИТЕЛЬ", Role: role.Teacher,
		},
		otherStudent: {
			ID: otherStudent, FirstName: "ПЕТР", LastName: "ИВАНОВ",
			SchoolNumber: otherSchool, Class: "9Б", Role: role.Student,
		},
	}}

	sink := newRecordingNotifier()
	return NewEngine(store, users, sink), store, sink
}

func TestSubmitRequestReservesUnit(t *testing.T) {
	engine, store, _ := newTestEngine()

	req, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)
	require.Equal(t, ds.StatusPending, req.Status)
	require.Equal(t, studentID, req.StudentID)
	require.Equal(t, 0, store.available(laptopID))
}

func TestSubmitRequestUnavailable(t *testing.T) {
	engine, store, _ := newTestEngine()

	_, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)

	_, err = engine.SubmitRequest(studentID, laptopID)
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, 0, store.available(laptopID))
}

func TestSubmitRequestUnknownEquipment(t *testing.T) {
	engine, _, _ := newTestEngine()

	_, err := engine.SubmitRequest(studentID, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitRequestTeacherForbidden(t *testing.T) {
	engine, store, _ := newTestEngine()

	_, err := engine.SubmitRequest(teacherID, laptopID)
	require.ErrorIs(t, err, ErrForbidden)
	require.Equal(t, 1, store.available(laptopID))
}

func TestSubmitRequestWrongSchool(t *testing.T) {
	engine, store, _ := newTestEngine()

	_, err := engine.SubmitRequest(studentID, foreignItemID)
	require.ErrorIs(t, err, ErrForbidden)
	require.Equal(t, 5, store.available(foreignItemID))
}

// При гонке за последние единицы успешных заявок ровно столько,
// сколько было единиц, остальные получают ErrUnavailable.
func TestSubmitRequestConcurrent(t *testing.T) {
	engine, store, _ := newTestEngine()

	const workers = 20
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.SubmitRequest(studentID, projectorID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrUnavailable)
		}
	}
	require.Equal(t, 3, succeeded)
	require.Equal(t, 0, store.available(projectorID))
}

func TestApproveRequiresDueDate(t *testing.T) {
	engine, _, _ := newTestEngine()

	req, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)

	_, err = engine.SetStatus(teacherID, req.ID, ds.StatusApproved, "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = engine.SetStatus(teacherID, req.ID, ds.StatusApproved, "31.12.2026")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestApproveSetsDueDateAndNotifies(t *testing.T) {
	engine, _, sink := newTestEngine()

	req, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)

	approved, err := engine.SetStatus(teacherID, req.ID, ds.StatusApproved, "2026-12-31")
	require.NoError(t, err)
	require.Equal(t, ds.StatusApproved, approved.Status)
	require.NotNil(t, approved.DueDate)
	require.Equal(t, "2026-12-31", *approved.DueDate)
	require.NotNil(t, approved.ApprovedBy)
	require.Equal(t, teacherID, *approved.ApprovedBy)

	require.Len(t, sink.messages[studentID], 1)
	require.Contains(t, sink.messages[studentID][0], "одобрена")
}

// Одобрение последней единицы: заявка уже держит свой резерв,
// нулевой счётчик одобрению не мешает.
func TestApproveLastUnit(t *testing.T) {
	engine, store, sink := newTestEngine()

	req, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)
	require.Equal(t, 0, store.available(laptopID))

	approved, err := engine.SetStatus(teacherID, req.ID, ds.StatusApproved, "2026-12-31")
	require.NoError(t, err)
	require.Equal(t, ds.StatusApproved, approved.Status)
	require.Equal(t, 0, store.available(laptopID))
	require.Len(t, sink.messages[studentID], 1)
}

func TestApproveNonPendingFails(t *testing.T) {
	engine, _, _ := newTestEngine()

	req, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)

	_, err = engine.SetStatus(teacherID, req.ID, ds.StatusApproved, "2026-12-31")
	require.NoError(t, err)

	_, err = engine.SetStatus(teacherID, req.ID, ds.StatusApproved, "2027-01-15")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectReleasesUnit(t *testing.T) {
	engine, store, sink := newTestEngine()

	req, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)
	require.Equal(t, 0, store.available(laptopID))

	rejected, err := engine.SetStatus(teacherID, req.ID, ds.StatusRejected, "")
	require.NoError(t, err)
	require.Equal(t, ds.StatusRejected, rejected.Status)
	require.Equal(t, 1, store.available(laptopID))

	require.Len(t, sink.messages[studentID], 1)
	require.Contains(t, sink.messages[studentID][0], "отклонена")
}

func TestReturnReleasesUnitOnce(t *testing.T) {
	engine, store, _ := newTestEngine()

	req, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)

	_, err = engine.SetStatus(teacherID, req.ID, ds.StatusApproved, "2026-12-31")
	require.NoError(t, err)
	require.Equal(t, 0, store.available(laptopID))

	_, err = engine.SetStatus(teacherID, req.ID, ds.StatusReturned, "")
	require.NoError(t, err)
	require.Equal(t, 1, store.available(laptopID))

	// Повторное закрытие не возвращает единицу второй раз
	_, err = engine.SetStatus(teacherID, req.ID, ds.StatusReturned, "")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, 1, store.available(laptopID))

	_, err = engine.SetStatus(teacherID, req.ID, ds.StatusRejected, "")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, 1, store.available(laptopID))
}

func TestSetStatusStudentForbidden(t *testing.T) {
	engine, _, _ := newTestEngine()

	req, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)

	_, err = engine.SetStatus(studentID, req.ID, ds.StatusRejected, "")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestSetStatusUnknownStatus(t *testing.T) {
	engine, store, _ := newTestEngine()

	req, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)

	_, err = engine.SetStatus(teacherID, req.ID, ds.RequestStatus("lost"), "")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, 0, store.available(laptopID))
}

func TestSetStatusPendingRejected(t *testing.T) {
	engine, _, _ := newTestEngine()

	req, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)

	// Возврат единицы освобождает место под новую заявку
	_, err = engine.SetStatus(teacherID, req.ID, ds.StatusRejected, "")
	require.NoError(t, err)

	second, err := engine.SubmitRequest(studentID, laptopID)
	require.NoError(t, err)
	require.Equal(t, ds.StatusPending, second.Status)
}

func TestRequestsForTeacherExcludesReturned(t *testing.T) {
	engine, _, _ := newTestEngine()

	first, err := engine.SubmitRequest(studentID, projectorID)
	require.NoError(t, err)
	second, err := engine.SubmitRequest(studentID, projectorID)
	require.NoError(t, err)

	_, err = engine.SetStatus(teacherID, first.ID, ds.StatusApproved, "2026-12-31")
	require.NoError(t, err)
	_, err = engine.SetStatus(teacherID, first.ID, ds.StatusReturned, "")
	require.NoError(t, err)

	rows, err := engine.RequestsForTeacher(teacherID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, second.ID, rows[0].ID)
}

func TestRequestsForTeacherStudentForbidden(t *testing.T) {
	engine, _, _ := newTestEngine()

	_, err := engine.RequestsForTeacher(studentID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRequestsForStudentIncludesAll(t *testing.T) {
	engine, _, _ := newTestEngine()

	first, err := engine.SubmitRequest(studentID, projectorID)
	require.NoError(t, err)
	_, err = engine.SetStatus(teacherID, first.ID, ds.StatusApproved, "2026-12-31")
	require.NoError(t, err)
	_, err = engine.SetStatus(teacherID, first.ID, ds.StatusReturned, "")
	require.NoError(t, err)

	_, err = engine.SubmitRequest(studentID, projectorID)
	require.NoError(t, err)

	rows, err := engine.RequestsForStudent(studentID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}
