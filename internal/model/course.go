package model

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Instructor 授课教师
type Instructor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Meeting 上课安排
// StartTime / EndTime 入库前已规整为 "03:04 PM" 格式
type Meeting struct {
	Days          string `json:"days"` // 两字符一组，如 "MoWeFr"
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	StartDt       string `json:"start_dt"`
	EndDt         string `json:"end_dt"`
	BldgCd        string `json:"bldg_cd"`
	FacilityDescr string `json:"facility_descr"`
	Room          string `json:"room"`
	FacilityID    string `json:"facility_id"`
	Instructor    string `json:"instructor"`
}

// Course 课程班级表 — 对应 courses
// 首次出现时写入，之后不再更新
type Course struct {
	ClassNbr             int    `gorm:"primaryKey;autoIncrement:false" json:"class_nbr"`
	Index                string `gorm:"column:index;type:varchar(255)" json:"index"`
	CrseID               string `gorm:"type:varchar(255)"              json:"crse_id"`
	CrseOfferNbr         int    `json:"crse_offer_nbr"`
	Strm                 string `gorm:"type:varchar(255)"              json:"strm"`
	SessionCode          string `gorm:"type:varchar(255)"              json:"session_code"`
	SessionDescr         string `gorm:"type:varchar(255)"              json:"session_descr"`
	ClassSection         string `gorm:"type:varchar(255)"              json:"class_section"`
	Location             string `gorm:"type:varchar(255)"              json:"location"`
	LocationDescr        string `gorm:"type:varchar(255)"              json:"location_descr"`
	StartDt              string `gorm:"type:varchar(255)"              json:"start_dt"`
	EndDt                string `gorm:"type:varchar(255)"              json:"end_dt"`
	ClassStat            string `gorm:"type:varchar(255)"              json:"class_stat"`
	Campus               string `gorm:"type:varchar(255)"              json:"campus"`
	CampusDescr          string `gorm:"type:varchar(255)"              json:"campus_descr"`
	AcadCareer           string `gorm:"type:varchar(255)"              json:"acad_career"`
	AcadCareerDescr      string `gorm:"type:varchar(255)"              json:"acad_career_descr"`
	Component            string `gorm:"type:varchar(255)"              json:"component"`
	Subject              string `gorm:"type:varchar(255)"              json:"subject"`
	SubjectDescr         string `gorm:"type:varchar(255)"              json:"subject_descr"`
	CatalogNbr           string `gorm:"type:varchar(255)"              json:"catalog_nbr"`
	ClassType            string `gorm:"type:varchar(255)"              json:"class_type"`
	SchedulePrint        string `gorm:"type:varchar(255)"              json:"schedule_print"`
	AcadGroup            string `gorm:"type:varchar(255)"              json:"acad_group"`
	InstructionMode      string `gorm:"type:varchar(255)"              json:"instruction_mode"`
	InstructionModeDescr string `gorm:"type:varchar(255)"              json:"instruction_mode_descr"`
	AcadOrg              string `gorm:"type:varchar(255)"              json:"acad_org"`
	WaitTot              int    `json:"wait_tot"`
	WaitCap              int    `json:"wait_cap"`
	ClassCapacity        int    `json:"class_capacity"`
	EnrollmentTotal      int    `json:"enrollment_total"`
	EnrollmentAvailable  int    `json:"enrollment_available"`
	Descr                string `gorm:"type:text;not null;default:''"  json:"descr"`
	RqmntDesigntn        string `gorm:"type:varchar(255)"              json:"rqmnt_designtn"`
	Units                string `gorm:"type:varchar(255)"              json:"units"`
	CombinedSection      string `gorm:"type:varchar(255)"              json:"combined_section"`
	EnrlStat             string `gorm:"type:varchar(255)"              json:"enrl_stat"`
	EnrlStatDescr        string `gorm:"type:varchar(255)"              json:"enrl_stat_descr"`
	Topic                string `gorm:"type:varchar(255)"              json:"topic"`
	SectionType          string `gorm:"type:varchar(255)"              json:"section_type"`
	CrseAttr             string `gorm:"type:varchar(255)"              json:"crse_attr"`
	CrseAttrValue        string `gorm:"type:varchar(255)"              json:"crse_attr_value"`

	Instructors datatypes.JSONSlice[Instructor] `gorm:"type:jsonb;not null;default:'[]'" json:"instructors"`
	Meetings    datatypes.JSONSlice[Meeting]    `gorm:"type:jsonb;not null;default:'[]'" json:"meetings"`
	ReserveCaps datatypes.JSON                  `gorm:"type:jsonb;not null;default:'[]'" json:"reserve_caps"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// FirstMeeting 返回第一条上课安排；冲突判断只看这一条
func (c *Course) FirstMeeting() (Meeting, bool) {
	if len(c.Meetings) == 0 {
		return Meeting{}, false
	}
	return c.Meetings[0], true
}

// UnitsValue 学分的整数值；"1 - 3" 之类的区间或空值按 0 计
func (c *Course) UnitsValue() int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Units))
	if err != nil {
		return 0
	}
	return n
}

// Label 展示用课程名，如 "CS 3240-001"
func (c *Course) Label() string {
	return c.Subject + " " + c.CatalogNbr + "-" + c.ClassSection
}
