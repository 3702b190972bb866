package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeImageStore записывает последовательность операций с хранилищем
type fakeImageStore struct {
	ops        []string
	uploadErr  error
	nextUpload string
}

func (f *fakeImageStore) UploadFile(fileData []byte, originalFilename string) (string, error) {
	if f.uploadErr != nil {
		f.ops = append(f.ops, "upload-fail")
		return "", f.uploadErr
	}
	f.ops = append(f.ops, "upload:"+f.nextUpload)
	return f.nextUpload, nil
}

func (f *fakeImageStore) DeleteFile(filename string) error {
	f.ops = append(f.ops, "delete:"+filename)
	return nil
}

func TestReplaceEquipmentImageDeletesOldAfterSave(t *testing.T) {
	store := &fakeImageStore{nextUpload: "equipment_new.png"}
	saved := ""

	filename, err := replaceEquipmentImage(store, "equipment_old.png", []byte("data"), "photo.png",
		func(fn string) error {
			saved = fn
			return nil
		})
	require.NoError(t, err)
	require.Equal(t, "equipment_new.png", filename)
	require.Equal(t, "equipment_new.png", saved)

	// Старый файл удаляется строго после загрузки и записи в БД
	require.Equal(t, []string{"upload:equipment_new.png", "delete:equipment_old.png"}, store.ops)
}

func TestReplaceEquipmentImageUploadFailureKeepsOld(t *testing.T) {
	store := &fakeImageStore{uploadErr: errors.New("minio down")}

	_, err := replaceEquipmentImage(store, "equipment_old.png", []byte("data"), "photo.png",
		func(fn string) error {
			t.Fatal("save must not be called when upload fails")
			return nil
		})
	require.Error(t, err)

	// Старое изображение не тронуто, база продолжает на него ссылаться
	require.Equal(t, []string{"upload-fail"}, store.ops)
}

func TestReplaceEquipmentImageSaveFailureCleansUpNew(t *testing.T) {
	store := &fakeImageStore{nextUpload: "equipment_new.png"}

	_, err := replaceEquipmentImage(store, "equipment_old.png", []byte("data"), "photo.png",
		func(fn string) error {
			return fmt.Errorf("db write failed")
		})
	require.Error(t, err)

	// Подчищается только новый файл, старый остаётся на месте
	require.Equal(t, []string{"upload:equipment_new.png", "delete:equipment_new.png"}, store.ops)
}

func TestReplaceEquipmentImageNoOldFile(t *testing.T) {
	store := &fakeImageStore{nextUpload: "equipment_new.png"}

	filename, err := replaceEquipmentImage(store, "", []byte("data"), "photo.png",
		func(fn string) error { return nil })
	require.NoError(t, err)
	require.Equal(t, "equipment_new.png", filename)
	require.Equal(t, []string{"upload:equipment_new.png"}, store.ops)
}
