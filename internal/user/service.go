package user

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/clearspend/expense-approval/internal/approval"
)

type RepositoryAPI interface {
	GetByID(companyID, id int64) (*User, error)
	ListByCompany(companyID int64) ([]User, error)
	EmailExists(email string) (bool, error)
	Create(user *User, passwordHash string) error
	Update(user *User) error
	CountAdmins(companyID int64) (int64, error)
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) GetUser(companyID, id int64) (*User, error) {
	return s.repo.GetByID(companyID, id)
}

func (s *Service) ListUsers(companyID int64) ([]User, error) {
	users, err := s.repo.ListByCompany(companyID)
	if err != nil {
		s.logger.Error("failed to list users", "error", err, "company_id", companyID)
		return nil, err
	}
	return users, nil
}

// CreateUser is the admin path for adding a member to their own company.
func (s *Service) CreateUser(companyID int64, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	if dto.ManagerID != nil {
		if err := s.checkManager(companyID, *dto.ManagerID); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:     dto.Email,
		Name:      dto.Name,
		Role:      approval.Role(dto.Role),
		CompanyID: companyID,
		ManagerID: dto.ManagerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Create(user, string(hash)); err != nil {
		s.logger.Error("failed to create user", "error", err, "company_id", companyID)
		return nil, err
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"company_id", companyID,
		"role", user.Role)

	return user, nil
}

// UpdateUser changes a member's name, role or manager assignment. The last
// admin of a company cannot be demoted, and admins cannot demote themselves.
func (s *Service) UpdateUser(companyID, id, actorID int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	if dto.Role != nil && approval.Role(*dto.Role) != user.Role {
		if id == actorID {
			return nil, ErrSelfDemotion
		}
		if user.Role == approval.RoleAdmin {
			admins, err := s.repo.CountAdmins(companyID)
			if err != nil {
				return nil, err
			}
			if admins <= 1 {
				return nil, ErrLastAdmin
			}
		}
		user.Role = approval.Role(*dto.Role)
	}

	if dto.Name != nil {
		user.Name = *dto.Name
	}
	if dto.ManagerID != nil {
		if *dto.ManagerID == id {
			return nil, ErrBadManager
		}
		if err := s.checkManager(companyID, *dto.ManagerID); err != nil {
			return nil, err
		}
		user.ManagerID = dto.ManagerID
	}

	if err := s.repo.Update(user); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id, "company_id", companyID, "role", user.Role)
	return user, nil
}

func (s *Service) checkManager(companyID, managerID int64) error {
	manager, err := s.repo.GetByID(companyID, managerID)
	if err != nil {
		return ErrBadManager
	}
	if manager.Role == approval.RoleEmployee {
		return ErrBadManager
	}
	return nil
}
