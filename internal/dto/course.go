package dto

// ── 课程模块 DTO ──

// CourseSearchRequest 课程检索参数
type CourseSearchRequest struct {
	Term            string `form:"term"`
	Keyword         string `form:"keyword"          binding:"omitempty,max=100"`
	Subject         string `form:"subject"          binding:"omitempty,max=20"`
	CatalogNbr      string `form:"catalog_nbr"      binding:"omitempty,max=20"`
	AcadOrg         string `form:"acad_org"         binding:"omitempty,max=20"`
	InstructionMode string `form:"instruction_mode" binding:"omitempty,max=10"`
	SessionCode     string `form:"session_code"     binding:"omitempty,max=10"`
	Location        string `form:"location"         binding:"omitempty,max=20"`
}

// HasRequiredFilter 关键字、科目、课程号、院系至少填写一项
func (r *CourseSearchRequest) HasRequiredFilter() bool {
	return r.Keyword != "" || r.Subject != "" || r.CatalogNbr != "" || r.AcadOrg != ""
}

// CourseResponse 课程班级信息
type CourseResponse struct {
	ClassNbr        int               `json:"class_nbr"`
	Strm            string            `json:"strm"`
	Label           string            `json:"label"` // 如 "CS 3240-001"
	Subject         string            `json:"subject"`
	CatalogNbr      string            `json:"catalog_nbr"`
	ClassSection    string            `json:"class_section"`
	Descr           string            `json:"descr"`
	Topic           string            `json:"topic,omitempty"`
	Component       string            `json:"component"`
	Units           string            `json:"units"`
	InstructionMode string            `json:"instruction_mode_descr"`
	EnrlStat        string            `json:"enrl_stat_descr"`
	Enrollment      string            `json:"enrollment"` // "已选/容量"
	Instructors     []string          `json:"instructors"`
	Meetings        []MeetingResponse `json:"meetings"`
}

// MeetingResponse 上课安排
type MeetingResponse struct {
	Days      string `json:"days"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
}

// TermOption 学期选项
type TermOption struct {
	Strm  int    `json:"strm"`
	Label string `json:"label"`
}
