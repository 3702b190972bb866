package role

// Role — закрытый тип ролей пользователя вместо произвольных строк
type Role string

const (
	Student Role = "student"
	Teacher Role = "teacher"
)

// Valid проверяет, что роль одна из известных
func (r Role) Valid() bool {
	return r == Student || r == Teacher
}

// Display возвращает отображаемое название роли
func (r Role) Display() string {
	if r == Teacher {
		return "УЧИТЕЛЬ"
	}
	return "УЧЕНИК"
}
