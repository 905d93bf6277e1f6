package sis

import "encoding/json"

// Section 课程检索接口返回的一个班级
type Section struct {
	Index                int             `json:"index"`
	CrseID               string          `json:"crse_id"`
	CrseOfferNbr         int             `json:"crse_offer_nbr"`
	Strm                 string          `json:"strm"`
	SessionCode          string          `json:"session_code"`
	SessionDescr         string          `json:"session_descr"`
	ClassSection         string          `json:"class_section"`
	Location             string          `json:"location"`
	LocationDescr        string          `json:"location_descr"`
	StartDt              string          `json:"start_dt"`
	EndDt                string          `json:"end_dt"`
	ClassStat            string          `json:"class_stat"`
	Campus               string          `json:"campus"`
	CampusDescr          string          `json:"campus_descr"`
	ClassNbr             int             `json:"class_nbr"`
	AcadCareer           string          `json:"acad_career"`
	AcadCareerDescr      string          `json:"acad_career_descr"`
	Component            string          `json:"component"`
	Subject              string          `json:"subject"`
	SubjectDescr         string          `json:"subject_descr"`
	CatalogNbr           string          `json:"catalog_nbr"`
	ClassType            string          `json:"class_type"`
	SchedulePrint        string          `json:"schedule_print"`
	AcadGroup            string          `json:"acad_group"`
	InstructionMode      string          `json:"instruction_mode"`
	InstructionModeDescr string          `json:"instruction_mode_descr"`
	AcadOrg              string          `json:"acad_org"`
	WaitTot              int             `json:"wait_tot"`
	WaitCap              int             `json:"wait_cap"`
	ClassCapacity        int             `json:"class_capacity"`
	EnrollmentTotal      int             `json:"enrollment_total"`
	EnrollmentAvailable  int             `json:"enrollment_available"`
	Descr                string          `json:"descr"`
	RqmntDesigntn        string          `json:"rqmnt_designtn"`
	Units                string          `json:"units"`
	CombinedSection      string          `json:"combined_section"`
	EnrlStat             string          `json:"enrl_stat"`
	EnrlStatDescr        string          `json:"enrl_stat_descr"`
	Topic                string          `json:"topic"`
	Instructors          []Instructor    `json:"instructors"`
	SectionType          string          `json:"section_type"`
	Meetings             []Meeting       `json:"meetings"`
	CrseAttr             string          `json:"crse_attr"`
	CrseAttrValue        string          `json:"crse_attr_value"`
	ReserveCaps          json.RawMessage `json:"reserve_caps"`
}

// Instructor 授课教师
type Instructor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Meeting 上课安排，时间为接口原始格式 "13.00.00.000000-05:00"
type Meeting struct {
	Days          string `json:"days"`
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
