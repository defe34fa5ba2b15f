package models

type Role string

const (
	RoleParent string = "parent"
	RoleNanny  string = "nanny"
	RoleAdmin  string = "admin"
)

type User struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	ChatID    int64  `gorm:"uniqueIndex;not null" json:"chat_id"`
	Username  string `json:"username"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `gorm:"default:'nanny'" json:"role"`
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManagePayroll - родители и администраторы ведут договоры и отмечают выплаты
func (u *User) CanManagePayroll() bool {
	return u.Role == RoleParent || u.Role == RoleAdmin
}

// SetRole устанавливает роль
func (u *User) SetRole(role Role) {
	u.Role = string(role)
}

// IsValidRole проверяет допустимость роли
func IsValidRole(role string) bool {
	return role == RoleParent || role == RoleNanny || role == RoleAdmin
}

// TableName задает имя таблицы в БД
func (User) TableName() string {
	return "users"
}
