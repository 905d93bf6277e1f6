package service

import (
	"time"

	"course-planner/backend/internal/model"
)

// meetingTimeLayout 入库后的上课时间格式
const meetingTimeLayout = "03:04 PM"

// CoursesConflict 判断两个班级的上课时间是否冲突
//
// 只比较各自的第一条上课安排：
//   - 不同学期永不冲突
//   - 上课日按两字符拆分（"MoWeFr" → Mo, We, Fr），无共同上课日则不冲突
//   - 有共同上课日时，除非一方开始严格晚于另一方结束，否则视为冲突（端点相等也算冲突）
//   - 同一班级与自身冲突
//
// 时间无法解析时无法证明不重叠，按冲突处理
func CoursesConflict(a, b *model.Course) bool {
	if a.ClassNbr == b.ClassNbr {
		return true
	}
	if a.Strm != b.Strm {
		return false
	}

	ma, okA := a.FirstMeeting()
	mb, okB := b.FirstMeeting()
	if !okA || !okB {
		return false
	}

	if !shareDay(ma.Days, mb.Days) {
		return false
	}

	aStart, aEnd, errA := meetingSpan(ma)
	bStart, bEnd, errB := meetingSpan(mb)
	if errA != nil || errB != nil {
		return true
	}

	return !(bStart.After(aEnd) || aStart.After(bEnd))
}

// FindConflicts 返回 members 中与 course 冲突的班级，保持原有顺序
func FindConflicts(course *model.Course, members []model.Course) []model.Course {
	var conflicts []model.Course
	for i := range members {
		if CoursesConflict(course, &members[i]) {
			conflicts = append(conflicts, members[i])
		}
	}
	return conflicts
}

// dayTokens 将 "MoWeFr" 拆为 ["Mo", "We", "Fr"]
// 末尾不足两字符的部分不算上课日，异步网课的 "-" 因此没有上课日
func dayTokens(days string) []string {
	tokens := make([]string, 0, len(days)/2)
	for i := 0; i+2 <= len(days); i += 2 {
		tokens = append(tokens, days[i:i+2])
	}
	return tokens
}

func shareDay(a, b string) bool {
	seen := make(map[string]struct{})
	for _, d := range dayTokens(a) {
		seen[d] = struct{}{}
	}
	for _, d := range dayTokens(b) {
		if _, ok := seen[d]; ok {
			return true
		}
	}
	return false
}

func meetingSpan(m model.Meeting) (time.Time, time.Time, error) {
	start, err := time.Parse(meetingTimeLayout, m.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(meetingTimeLayout, m.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
