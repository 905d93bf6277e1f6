package service

import (
	"fmt"
	"time"

	"course-planner/backend/internal/dto"
	"course-planner/backend/internal/model"
)

func toCourseResponse(c *model.Course) dto.CourseResponse {
	instructors := make([]string, 0, len(c.Instructors))
	for _, ins := range c.Instructors {
		instructors = append(instructors, ins.Name)
	}
	meetings := make([]dto.MeetingResponse, 0, len(c.Meetings))
	for _, m := range c.Meetings {
		meetings = append(meetings, dto.MeetingResponse{
			Days:      m.Days,
			StartTime: m.StartTime,
			EndTime:   m.EndTime,
			Room:      m.FacilityDescr,
		})
	}
	return dto.CourseResponse{
		ClassNbr:        c.ClassNbr,
		Strm:            c.Strm,
		Label:           c.Label(),
		Subject:         c.Subject,
		CatalogNbr:      c.CatalogNbr,
		ClassSection:    c.ClassSection,
		Descr:           c.Descr,
		Topic:           c.Topic,
		Component:       c.Component,
		Units:           c.Units,
		InstructionMode: c.InstructionModeDescr,
		EnrlStat:        c.EnrlStatDescr,
		Enrollment:      fmt.Sprintf("%d/%d", c.EnrollmentTotal, c.ClassCapacity),
		Instructors:     instructors,
		Meetings:        meetings,
	}
}

func toCourseResponses(courses []model.Course) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result
}

func totalUnits(courses []model.Course) int {
	total := 0
	for i := range courses {
		total += courses[i].UnitsValue()
	}
	return total
}

func toUserResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:          u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        string(u.Role()),
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func toUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{ID: u.UserID, DisplayName: u.DisplayName()}
}

func toScheduleResponse(s *model.Schedule) dto.ScheduleResponse {
	resp := dto.ScheduleResponse{
		ID:          s.ScheduleID,
		Name:        s.Name,
		Status:      string(s.ApprovalStatus),
		StatusLabel: s.ApprovalStatus.Label(),
		Student:     toUserBrief(s.Student),
		Approver:    toUserBrief(s.Approver),
		Courses:     toCourseResponses(s.Courses),
		TotalUnits:  totalUnits(s.Courses),
	}
	if !s.CreatedAt.IsZero() {
		resp.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func toScheduleResponses(schedules []model.Schedule) []dto.ScheduleResponse {
	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, toScheduleResponse(&schedules[i]))
	}
	return result
}

// ToConflictResponse 冲突详情，供接口层返回给前端
func ToConflictResponse(e *ConflictError) dto.ScheduleConflictResponse {
	return dto.ScheduleConflictResponse{
		Course:    toCourseResponse(&e.Course),
		Conflicts: toCourseResponses(e.Conflicts),
	}
}
