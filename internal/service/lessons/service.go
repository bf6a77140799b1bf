package lessons

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	lessonRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/lesson"
	"github.com/m04kA/SMC-LessonsService/internal/service/lessons/models"
)

// Service сервис для работы с уроками
type Service struct {
	lessonRepo LessonRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса уроков
func NewService(lessonRepo LessonRepository, logger Logger) *Service {
	return &Service{
		lessonRepo: lessonRepo,
		logger:     logger,
	}
}

// GetByID получает урок по ID
// Студент видит только свои уроки, администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.LessonResponse, error) {
	s.logger.Info("GetByID: fetching lesson id=%d for user=%d", id, userID)

	lesson, err := s.getLesson(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(lesson, userID, isAdmin); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to lesson id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched lesson id=%d", id)
	return models.FromDomainLesson(lesson), nil
}

// GetUserLessons получает уроки студента
// Опционально фильтрует по началу периода
func (s *Service) GetUserLessons(ctx context.Context, req *models.GetUserLessonsRequest) (*models.LessonListResponse, error) {
	s.logger.Info("GetUserLessons: fetching lessons for student=%d", req.StudentID)

	if req.StudentID <= 0 {
		return nil, fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	filter := domain.LessonsFilter{
		StudentID: &req.StudentID,
		FromDate:  req.FromDate,
	}

	lessons, err := s.lessonRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserLessons: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetUserLessons - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserLessons: successfully fetched %d lessons for student=%d", len(lessons), req.StudentID)
	return models.FromDomainLessonList(lessons), nil
}

// Delete отменяет урок
// Студент может отменить только свой урок, администратор - любой
func (s *Service) Delete(ctx context.Context, id int64, userID int64, isAdmin bool) error {
	s.logger.Info("Delete: deleting lesson id=%d by user=%d", id, userID)

	lesson, err := s.getLesson(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkUserAccess(lesson, userID, isAdmin); err != nil {
		s.logger.Warn("Delete: access denied for user=%d to lesson id=%d", userID, id)
		return err
	}

	if err := s.lessonRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("Delete: lesson id=%d not found during deletion", id)
			return ErrLessonNotFound
		}
		s.logger.Error("Delete: repository error for lesson id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted lesson id=%d", id)
	return nil
}

func (s *Service) getLesson(ctx context.Context, id int64) (*domain.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("getLesson: lesson id=%d not found", id)
			return nil, ErrLessonNotFound
		}
		s.logger.Error("getLesson: repository error for lesson id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getLesson - repository error: %v", ErrInternal, err)
	}
	return lesson, nil
}

// checkUserAccess проверяет права доступа к уроку
func (s *Service) checkUserAccess(lesson *domain.Lesson, userID int64, isAdmin bool) error {
	if isAdmin || lesson.StudentID == userID {
		return nil
	}
	return ErrAccessDenied
}
