package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"course-planner/backend/config"
	"course-planner/backend/internal/dto"
	"course-planner/backend/internal/model"
	"course-planner/backend/internal/repository"
	"course-planner/backend/pkg/sis"
)

var (
	ErrSearchFilterRequired = errors.New("请至少填写关键字、科目、课程号或院系中的一项")
	ErrCourseNotFound       = errors.New("课程不存在")
)

// SectionFetcher 外部课程检索
type SectionFetcher interface {
	SearchAll(ctx context.Context, q sis.Query) []sis.Section
}

// CatalogService 课程目录业务接口
type CatalogService interface {
	Search(ctx context.Context, req *dto.CourseSearchRequest) ([]dto.CourseResponse, error)
	Ingest(ctx context.Context, section *sis.Section) (*model.Course, error)
	GetCourse(ctx context.Context, classNbr int) (*dto.CourseResponse, error)
	ListTerms() []dto.TermOption
}

type catalogService struct {
	cfg     *config.Config
	repo    *repository.Repository
	fetcher SectionFetcher
	logger  *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(
	cfg *config.Config,
	repo *repository.Repository,
	fetcher SectionFetcher,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		cfg:     cfg,
		repo:    repo,
		fetcher: fetcher,
		logger:  logger,
	}
}

func (s *catalogService) Search(ctx context.Context, req *dto.CourseSearchRequest) ([]dto.CourseResponse, error) {
	if !req.HasRequiredFilter() {
		return nil, ErrSearchFilterRequired
	}

	term := req.Term
	if term == "" {
		term = strconv.Itoa(s.cfg.Catalog.DefaultTerm)
	}

	sections := s.fetcher.SearchAll(ctx, sis.Query{
		Term:            term,
		Subject:         req.Subject,
		AcadOrg:         req.AcadOrg,
		CatalogNbr:      req.CatalogNbr,
		InstructionMode: req.InstructionMode,
		Keyword:         req.Keyword,
		SessionCode:     req.SessionCode,
		Location:        req.Location,
	})

	known, err := s.storedCourses(ctx, sections)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(sections))
	result := make([]dto.CourseResponse, 0, len(sections))
	for i := range sections {
		classNbr := sections[i].ClassNbr
		if _, dup := seen[classNbr]; dup {
			continue
		}
		seen[classNbr] = struct{}{}

		course, ok := known[classNbr]
		if !ok {
			if course, err = s.Ingest(ctx, &sections[i]); err != nil {
				return nil, err
			}
		}
		result = append(result, toCourseResponse(course))
	}

	s.logger.Info("课程检索完成",
		zap.String("term", term),
		zap.Int("fetched", len(sections)),
		zap.Int("returned", len(result)),
	)
	return result, nil
}

// storedCourses 一次查询取出本次结果中已入库的班级
func (s *catalogService) storedCourses(ctx context.Context, sections []sis.Section) (map[int]*model.Course, error) {
	classNbrs := make([]int, 0, len(sections))
	for i := range sections {
		classNbrs = append(classNbrs, sections[i].ClassNbr)
	}

	courses, err := s.repo.Course.ListByClassNbrs(ctx, classNbrs)
	if err != nil {
		s.logger.Error("批量查询课程失败", zap.Int("count", len(classNbrs)), zap.Error(err))
		return nil, err
	}

	known := make(map[int]*model.Course, len(courses))
	for i := range courses {
		known[courses[i].ClassNbr] = &courses[i]
	}
	return known, nil
}

// Ingest 首次出现时写入，已存在则原样返回库中记录，不做任何更新
func (s *catalogService) Ingest(ctx context.Context, section *sis.Section) (*model.Course, error) {
	existing, err := s.repo.Course.GetByClassNbr(ctx, section.ClassNbr)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询课程失败", zap.Int("class_nbr", section.ClassNbr), zap.Error(err))
		return nil, err
	}

	course := s.sectionToCourse(section)
	if _, err := s.repo.Course.CreateIfAbsent(ctx, course); err != nil {
		s.logger.Error("写入课程失败", zap.Int("class_nbr", section.ClassNbr), zap.Error(err))
		return nil, err
	}

	// 并发写入时以库中记录为准
	stored, err := s.repo.Course.GetByClassNbr(ctx, section.ClassNbr)
	if err != nil {
		s.logger.Error("回读课程失败", zap.Int("class_nbr", section.ClassNbr), zap.Error(err))
		return nil, err
	}
	return stored, nil
}

func (s *catalogService) GetCourse(ctx context.Context, classNbr int) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByClassNbr(ctx, classNbr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *catalogService) ListTerms() []dto.TermOption {
	terms := make([]dto.TermOption, 0, len(s.cfg.Catalog.Terms))
	for strm, label := range s.cfg.Catalog.Terms {
		terms = append(terms, dto.TermOption{Strm: strm, Label: label})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Strm > terms[j].Strm })
	return terms
}

func (s *catalogService) sectionToCourse(sec *sis.Section) *model.Course {
	meetings := make([]model.Meeting, 0, len(sec.Meetings))
	for _, m := range sec.Meetings {
		meetings = append(meetings, model.Meeting{
			Days:          m.Days,
			StartTime:     s.normalizeTime(sec.ClassNbr, m.StartTime),
			EndTime:       s.normalizeTime(sec.ClassNbr, m.EndTime),
			StartDt:       m.StartDt,
			EndDt:         m.EndDt,
			BldgCd:        m.BldgCd,
			FacilityDescr: m.FacilityDescr,
			Room:          m.Room,
			FacilityID:    m.FacilityID,
			Instructor:    m.Instructor,
		})
	}

	instructors := make([]model.Instructor, 0, len(sec.Instructors))
	for _, ins := range sec.Instructors {
		instructors = append(instructors, model.Instructor{Name: ins.Name, Email: ins.Email})
	}

	reserveCaps := datatypes.JSON("[]")
	if len(sec.ReserveCaps) > 0 && json.Valid(sec.ReserveCaps) && string(sec.ReserveCaps) != "null" {
		reserveCaps = datatypes.JSON(sec.ReserveCaps)
	}

	return &model.Course{
		ClassNbr:             sec.ClassNbr,
		Index:                strconv.Itoa(sec.Index),
		CrseID:               sec.CrseID,
		CrseOfferNbr:         sec.CrseOfferNbr,
		Strm:                 sec.Strm,
		SessionCode:          sec.SessionCode,
		SessionDescr:         sec.SessionDescr,
		ClassSection:         sec.ClassSection,
		Location:             sec.Location,
		LocationDescr:        sec.LocationDescr,
		StartDt:              sec.StartDt,
		EndDt:                sec.EndDt,
		ClassStat:            sec.ClassStat,
		Campus:               sec.Campus,
		CampusDescr:          sec.CampusDescr,
		AcadCareer:           sec.AcadCareer,
		AcadCareerDescr:      sec.AcadCareerDescr,
		Component:            sec.Component,
		Subject:              sec.Subject,
		SubjectDescr:         sec.SubjectDescr,
		CatalogNbr:           sec.CatalogNbr,
		ClassType:            sec.ClassType,
		SchedulePrint:        sec.SchedulePrint,
		AcadGroup:            sec.AcadGroup,
		InstructionMode:      sec.InstructionMode,
		InstructionModeDescr: sec.InstructionModeDescr,
		AcadOrg:              sec.AcadOrg,
		WaitTot:              sec.WaitTot,
		WaitCap:              sec.WaitCap,
		ClassCapacity:        sec.ClassCapacity,
		EnrollmentTotal:      sec.EnrollmentTotal,
		EnrollmentAvailable:  sec.EnrollmentAvailable,
		Descr:                sec.Descr,
		RqmntDesigntn:        sec.RqmntDesigntn,
		Units:                sec.Units,
		CombinedSection:      sec.CombinedSection,
		EnrlStat:             sec.EnrlStat,
		EnrlStatDescr:        sec.EnrlStatDescr,
		Topic:                sec.Topic,
		SectionType:          sec.SectionType,
		CrseAttr:             sec.CrseAttr,
		CrseAttrValue:        sec.CrseAttrValue,
		Instructors:          datatypes.NewJSONSlice(instructors),
		Meetings:             datatypes.NewJSONSlice(meetings),
		ReserveCaps:          reserveCaps,
	}
}

// normalizeTime 无法解析时保留原值，冲突判断会按冲突处理
func (s *catalogService) normalizeTime(classNbr int, raw string) string {
	t, err := sis.NormalizeMeetingTime(raw)
	if err != nil {
		s.logger.Warn("上课时间格式异常，保留原值", zap.Int("class_nbr", classNbr), zap.String("raw", raw), zap.Error(err))
		return raw
	}
	return t
}
