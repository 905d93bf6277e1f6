package model

import "fmt"

// ApprovalStatus 课表审批状态（封闭枚举）
type ApprovalStatus string

const (
	StatusUnsubmitted ApprovalStatus = "unsubmitted"
	StatusPending     ApprovalStatus = "pending"
	StatusApproved    ApprovalStatus = "approved"
	StatusDenied      ApprovalStatus = "denied"
)

// ApprovalStatuses 全部合法状态
var ApprovalStatuses = []ApprovalStatus{StatusUnsubmitted, StatusPending, StatusApproved, StatusDenied}

// ParseApprovalStatus 将字符串解析为审批状态，未知值返回错误
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	for _, st := range ApprovalStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("未知的审批状态 %q", s)
}

// Label 状态展示名
func (s ApprovalStatus) Label() string {
	switch s {
	case StatusUnsubmitted:
		return "Unsubmitted"
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusDenied:
		return "Denied"
	}
	return string(s)
}

// Schedule 课表 — 对应 schedules
type Schedule struct {
	ScheduleID     string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"    json:"schedule_id"`
	StudentID      string         `gorm:"type:uuid;not null;index"                          json:"student_id"`
	ApproverID     string         `gorm:"type:uuid;not null;index"                          json:"approver_id"`
	Name           string         `gorm:"type:varchar(200);not null"                        json:"name"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);not null;default:'unsubmitted'"   json:"approval_status"`
	BaseModel

	// 关联
	Student  *User    `gorm:"foreignKey:StudentID;references:UserID"                                        json:"student,omitempty"`
	Approver *User    `gorm:"foreignKey:ApproverID;references:UserID"                                       json:"approver,omitempty"`
	Courses  []Course `gorm:"many2many:schedule_courses;joinForeignKey:ScheduleID;joinReferences:ClassNbr" json:"courses,omitempty"`
}

func (Schedule) TableName() string { return "schedules" }

// ScheduleCourse 课表课程关联表 — 对应 schedule_courses（集合语义）
type ScheduleCourse struct {
	ScheduleID string `gorm:"type:uuid;primaryKey"            json:"schedule_id"`
	ClassNbr   int    `gorm:"primaryKey;autoIncrement:false" json:"class_nbr"`
}

func (ScheduleCourse) TableName() string { return "schedule_courses" }
