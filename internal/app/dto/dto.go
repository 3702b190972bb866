package dto

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Пользователи ============

type RegisterRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	MiddleName   string `json:"middle_name"`
	SchoolNumber string `json:"school_number" binding:"required"`
	Class        string `json:"class" binding:"required"`
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MiddleName   string `json:"middle_name,omitempty"`
	SchoolNumber string `json:"school_number"`
	Class        string `json:"class"`
	Role         string `json:"role"`
	RoleDisplay  string `json:"role_display"`
	Avatar       string `json:"avatar"`
}

type UpdateProfileRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	MiddleName string `json:"middle_name"`
	Email      string `json:"email" binding:"required,email"`
}

// ============ Оборудование ============

type CreateEquipmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Available   *int   `json:"available" binding:"omitempty,gte=0"` // по умолчанию 1
}

type EquipmentResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Available   int    `json:"available"`
	ImageURL    string `json:"image_url,omitempty"`
	CreatorName string `json:"creator_name"`
}

type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
	Total     int                 `json:"total"`
}

// ============ Заявки ============

type SubmitRequestRequest struct {
	EquipmentID uint `json:"equipment_id" binding:"required"`
}

type SetRequestStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	DueDate string `json:"due_date"`
}

type TeacherRequestResponse struct {
	ID                 uint   `json:"id"`
	Status             string `json:"status"`
	DueDate            string `json:"due_date,omitempty"`
	RequestDate        string `json:"request_date"`
	EquipmentID        uint   `json:"equipment_id"`
	EquipmentName      string `json:"equipment_name"`
	EquipmentAvailable int    `json:"equipment_available"`
	StudentID          uint   `json:"student_id"`
	StudentName        string `json:"student_name"`
	StudentClass       string `json:"student_class"`
}

type StudentRequestResponse struct {
	ID                   uint   `json:"id"`
	Status               string `json:"status"`
	DueDate              string `json:"due_date,omitempty"`
	RequestDate          string `json:"request_date"`
	EquipmentID          uint   `json:"equipment_id"`
	EquipmentName        string `json:"equipment_name"`
	EquipmentDescription string `json:"equipment_description"`
}

type RequestListResponse struct {
	Requests interface{} `json:"requests"`
	Total    int         `json:"total"`
}

// ============ Уведомления ============

type NotificationResponse struct {
	ID        uint   `json:"id"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// ============ Чат ============

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Message    string `json:"message" binding:"required,max=1000"`
}

type ChatMessageResponse struct {
	ID         uint   `json:"id"`
	SenderID   uint   `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Message    string `json:"message"`
	IsMe       bool   `json:"is_me"`
	CreatedAt  string `json:"created_at"`
}

type ChatUserResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	Role        string `json:"role"`
	Avatar      string `json:"avatar"`
	RoleDisplay string `json:"role_display"`
}

// ============ Админка ============

type BroadcastNotificationRequest struct {
	Message string `json:"message" binding:"required"`
	Type    string `json:"type" binding:"omitempty,oneof=all students teachers"` // all по умолчанию
}

type LogResponse struct {
	Action    string `json:"action"`
	CreatedAt string `json:"created_at"`
	Username  string `json:"username,omitempty"`
	FullName  string `json:"full_name,omitempty"`
}

type AdminStatsResponse struct {
	StudentCount int64         `json:"student_count"`
	TeacherCount int64         `json:"teacher_count"`
	Logs         []LogResponse `json:"logs"`
}
