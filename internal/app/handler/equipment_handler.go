package handler

import (
	"io"
	"net/http"
	"strconv"

	"schooltech/internal/app/ds"
	"schooltech/internal/app/dto"
	"schooltech/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ОБОРУДОВАНИЕ ============

// ImageStore — операции хранилища изображений, нужные обработчикам
type ImageStore interface {
	UploadFile(fileData []byte, originalFilename string) (string, error)
	DeleteFile(filename string) error
}

// replaceEquipmentImage загружает новое изображение и сохраняет его имя
// через save. Старый файл удаляется только после успеха обеих операций:
// при сбое записи в БД база продолжает ссылаться на существующий объект,
// а свежезагруженный файл подчищается.
func replaceEquipmentImage(store ImageStore, oldFilename string, fileData []byte,
	originalFilename string, save func(filename string) error) (string, error) {
	filename, err := store.UploadFile(fileData, originalFilename)
	if err != nil {
		return "", err
	}

	if err := save(filename); err != nil {
		if delErr := store.DeleteFile(filename); delErr != nil {
			logrus.Warnf("Failed to clean up image %s: %v", filename, delErr)
		}
		return "", err
	}

	if oldFilename != "" {
		if err := store.DeleteFile(oldFilename); err != nil {
			logrus.Warnf("Failed to delete old image %s: %v", oldFilename, err)
		}
	}
	return filename, nil
}

func (h *APIHandler) equipmentToResponse(row repository.EquipmentRow) dto.EquipmentResponse {
	resp := dto.EquipmentResponse{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		Available:   row.Available,
		CreatorName: row.CreatorName,
	}
	if row.ImageFilename != "" && h.MinIOClient != nil {
		if url, err := h.MinIOClient.GetFileURL(row.ImageFilename); err == nil {
			resp.ImageURL = url
		}
	}
	return resp
}

// GetEquipment получает список оборудования школы текущего пользователя
// @Summary Список оборудования
// @Description Возвращает оборудование школы текущего пользователя с поиском по названию
// @Tags Equipment
// @Produce json
// @Security BearerAuth
// @Param query query string false "Поиск по названию"
// @Success 200 {object} dto.EquipmentListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/equipment [get]
func (h *APIHandler) GetEquipment(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Пользователь не найден")
		return
	}

	searchQuery := c.Query("query")

	var rows []repository.EquipmentRow
	if searchQuery == "" {
		rows, err = h.Repository.GetEquipmentBySchool(user.SchoolNumber)
	} else {
		rows, err = h.Repository.SearchEquipmentByName(user.SchoolNumber, searchQuery)
	}
	if err != nil {
		logrus.Error("Error getting equipment: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения оборудования")
		return
	}

	items := make([]dto.EquipmentResponse, len(rows))
	for i, row := range rows {
		items[i] = h.equipmentToResponse(row)
	}

	c.JSON(http.StatusOK, dto.EquipmentListResponse{
		Equipment: items,
		Total:     len(items),
	})
}

// GetEquipmentItem получает одну единицу оборудования
// @Summary Получение оборудования по ID
// @Tags Equipment
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID оборудования"
// @Success 200 {object} dto.EquipmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/equipment/{id} [get]
func (h *APIHandler) GetEquipmentItem(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID оборудования")
		return
	}

	equipment, err := h.Repository.GetEquipmentByID(uint(id))
	if err != nil {
		h.lendingError(c, err)
		return
	}

	row := repository.EquipmentRow{
		ID:           equipment.ID,
		Name:         equipment.Name,
		Description:  equipment.Description,
		Category:     equipment.Category,
		SchoolNumber: equipment.SchoolNumber,
		Available:    equipment.Available,
		CreatorName:  "Система",
	}
	if equipment.ImageFilename != nil {
		row.ImageFilename = *equipment.ImageFilename
	}
	if equipment.CreatedBy != nil {
		if creator, err := h.Repository.GetUserByID(*equipment.CreatedBy); err == nil {
			row.CreatorName = creator.FirstName + " " + creator.LastName
		}
	}

	c.JSON(http.StatusOK, h.equipmentToResponse(row))
}

// CreateEquipment создает оборудование (только учитель)
// @Summary Создание оборудования
// @Description Добавляет оборудование в школу учителя
// @Tags Equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEquipmentRequest true "Данные оборудования"
// @Success 201 {object} dto.EquipmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/equipment [post]
func (h *APIHandler) CreateEquipment(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Пользователь не найден")
		return
	}

	var req dto.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	available := 1
	if req.Available != nil {
		available = *req.Available
	}

	equipment := &ds.Equipment{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		SchoolNumber: user.SchoolNumber,
		Available:    available,
		CreatedBy:    &userID,
	}
	if err := h.Repository.CreateEquipment(equipment); err != nil {
		logrus.Error("Error creating equipment: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания оборудования")
		return
	}

	h.Repository.LogAction(userID, "ADD_EQUIPMENT")

	c.JSON(http.StatusCreated, dto.EquipmentResponse{
		ID:          equipment.ID,
		Name:        equipment.Name,
		Description: equipment.Description,
		Category:    equipment.Category,
		Available:   equipment.Available,
		CreatorName: user.FirstName + " " + user.LastName,
	})
}

// UploadEquipmentImage загружает изображение оборудования
// @Summary Загрузка изображения оборудования
// @Description Загружает изображение в MinIO (только учитель)
// @Tags Equipment
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID оборудования"
// @Param image formData file true "Файл изображения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/equipment/{id}/image [post]
func (h *APIHandler) UploadEquipmentImage(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID оборудования")
		return
	}

	equipment, err := h.Repository.GetEquipmentByID(uint(id))
	if err != nil {
		h.lendingError(c, err)
		return
	}

	if h.MinIOClient == nil {
		h.errorResponse(c, http.StatusInternalServerError, "Хранилище изображений не настроено")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл не найден в запросе")
		return
	}

	openedFile, err := file.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}
	defer openedFile.Close()

	fileData, err := io.ReadAll(openedFile)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}

	oldFilename := ""
	if equipment.ImageFilename != nil {
		oldFilename = *equipment.ImageFilename
	}

	filename, err := replaceEquipmentImage(h.MinIOClient, oldFilename, fileData, file.Filename,
		func(filename string) error {
			return h.Repository.UpdateEquipmentImage(uint(id), filename)
		})
	if err != nil {
		logrus.Error("Error replacing equipment image: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки изображения")
		return
	}

	h.successResponse(c, http.StatusOK, "Изображение успешно загружено", gin.H{
		"image_filename": filename,
	})
}
