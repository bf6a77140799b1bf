package students

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-LessonsService/internal/domain"
	studentRepo "github.com/m04kA/SMC-LessonsService/internal/infra/storage/student"
	"github.com/m04kA/SMC-LessonsService/internal/service/students/models"
	"github.com/m04kA/SMC-LessonsService/pkg/ptr"
)

// Service сервис для работы со студентами
type Service struct {
	studentRepo StudentRepository
	constraints domain.CalendarConstraints
	logger      Logger
}

// NewService создает новый экземпляр сервиса студентов
func NewService(studentRepo StudentRepository, constraints domain.CalendarConstraints, logger Logger) *Service {
	return &Service{
		studentRepo: studentRepo,
		constraints: constraints,
		logger:      logger,
	}
}

// Register регистрирует нового студента
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.StudentResponse, error) {
	s.logger.Info("Register: registering student username=%s", req.Username)

	if err := validateRegisterRequest(req); err != nil {
		s.logger.Warn("Register: validation failed for username=%s: %v", req.Username, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	student := &domain.Student{
		Username:     req.Username,
		FirstName:    req.FirstName,
		PasswordHash: string(hash),
		Phone:        ptr.Deref(req.Phone),
		Telegram:     ptr.Deref(req.Telegram),
	}

	created, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		if errors.Is(err, studentRepo.ErrUsernameTaken) {
			s.logger.Warn("Register: username=%s already taken", req.Username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("Register: repository error for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered student id=%d", created.ID)
	return models.FromDomainStudent(created), nil
}

// Authenticate проверяет учетные данные и возвращает студента.
// Несуществующий логин и неверный пароль наружу не различаются.
func (s *Service) Authenticate(ctx context.Context, creds AuthCredentials) (*models.StudentResponse, error) {
	student, err := s.studentRepo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			s.logger.Warn("Authenticate: username=%s not found", creds.Username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Authenticate: repository error for username=%s: %v", creds.Username, err)
		return nil, fmt.Errorf("%w: Authenticate - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(creds.Password)); err != nil {
		s.logger.Warn("Authenticate: wrong password for username=%s", creds.Username)
		return nil, ErrInvalidCredentials
	}

	return models.FromDomainStudent(student), nil
}

// GetByID получает студента по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			s.logger.Warn("GetByID: student id=%d not found", id)
			return nil, ErrStudentNotFound
		}
		s.logger.Error("GetByID: repository error for student id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStudent(student), nil
}

// List получает всех студентов
func (s *Service) List(ctx context.Context) (*models.StudentListResponse, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d students", len(students))
	return models.FromDomainStudentList(students), nil
}

// UpdatePricing устанавливает персональные цены студента
func (s *Service) UpdatePricing(ctx context.Context, id int64, req *models.UpdatePricingRequest) error {
	s.logger.Info("UpdatePricing: updating prices for student id=%d", id)

	if err := validatePricing(req, s.constraints); err != nil {
		s.logger.Warn("UpdatePricing: validation failed for student id=%d: %v", id, err)
		return err
	}

	if err := s.studentRepo.UpdatePricing(ctx, id, req.UsualPrice, req.HighPrice); err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			s.logger.Warn("UpdatePricing: student id=%d not found", id)
			return ErrStudentNotFound
		}
		s.logger.Error("UpdatePricing: repository error for student id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdatePricing - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePricing: successfully updated prices for student id=%d", id)
	return nil
}

// Delete удаляет студента вместе с его уроками
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting student id=%d", id)

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			s.logger.Warn("Delete: student id=%d not found", id)
			return ErrStudentNotFound
		}
		s.logger.Error("Delete: repository error for student id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted student id=%d", id)
	return nil
}
