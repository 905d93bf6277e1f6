package model

import "strings"

// Role 访问角色，由 is_advisor 派生
type Role string

const (
	RoleAdvisor Role = "advisor"
	RoleStudent Role = "student"
)

// UserNameMaxLen users.name 列宽，容纳 150 字符的名与姓及中间空格
const UserNameMaxLen = 301

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"         json:"username"`
	Name         string `gorm:"type:varchar(301);not null;default:''"          json:"name"`
	FirstName    string `gorm:"type:varchar(150);not null;default:''"          json:"first_name"`
	LastName     string `gorm:"type:varchar(150);not null;default:''"          json:"last_name"`
	Email        string `gorm:"type:varchar(255);not null;default:''"          json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	IsAdvisor    bool   `gorm:"not null;default:false"                         json:"is_advisor"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 有向关联：A 添加 B 不意味着 B 添加 A
	Symbiotes []User `gorm:"many2many:user_symbiotes;joinForeignKey:UserID;joinReferences:SymbioteID" json:"symbiotes,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Role 返回用户角色
func (u *User) Role() Role {
	if u.IsAdvisor {
		return RoleAdvisor
	}
	return RoleStudent
}

// DisplayName 有姓名时返回 "名 姓"，否则返回用户名
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// StoredName 写入 name 列的展示名，按字符截断到列宽
func (u *User) StoredName() string {
	name := []rune(u.DisplayName())
	if len(name) > UserNameMaxLen {
		name = name[:UserNameMaxLen]
	}
	return string(name)
}

// UserSymbiote 用户关联表 — 对应 user_symbiotes（有向）
type UserSymbiote struct {
	UserID     string `gorm:"type:uuid;primaryKey" json:"user_id"`
	SymbioteID string `gorm:"type:uuid;primaryKey" json:"symbiote_id"`
}

func (UserSymbiote) TableName() string { return "user_symbiotes" }
