package models

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// User - чат Telegram, привязанный к сотруднику
type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
	ChatID       int64  `gorm:"uniqueIndex;not null" json:"chat_id"`
	Username     string `json:"username"`
	EmployeeName string `json:"employee_name"`
	EmployeeKey  string `gorm:"index" json:"-"` // NormalizeName(EmployeeName)
	Role         string `gorm:"default:'client'" json:"role"`
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}

// IsLinked проверяет, привязан ли чат к сотруднику
func (u *User) IsLinked() bool {
	return u.EmployeeName != ""
}

// TableName задает имя таблицы в БД
func (User) TableName() string {
	return "users"
}
