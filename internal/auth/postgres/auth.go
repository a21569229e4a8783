package postgres

import (
	"errors"
	"strings"

	"github.com/clearspend/expense-approval/internal/approval"
	"github.com/clearspend/expense-approval/internal/auth"
	companyDatamodel "github.com/clearspend/expense-approval/internal/core/datamodel/company"
	userDatamodel "github.com/clearspend/expense-approval/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var row userDatamodel.User
	err := r.db.Where("email = ?", strings.ToLower(email)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, auth.ErrUserNotFound
		}
		return "", 0, err
	}
	return row.PasswordHash, row.ID, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return toAuthUser(&row), nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(dto auth.RegisterDTO, passwordHash string, companyID int64) (*auth.User, error) {
	row := &userDatamodel.User{
		Email:        strings.ToLower(dto.Email),
		Name:         dto.Name,
		PasswordHash: passwordHash,
		Role:         dto.Role,
		CompanyID:    companyID,
	}
	if err := r.db.Create(row).Error; err != nil {
		return nil, err
	}
	return toAuthUser(row), nil
}

func (r *Repository) CreateCompany(name, currency string, thresholdCents int64) (int64, error) {
	if currency == "" {
		currency = "USD"
	}
	row := &companyDatamodel.Company{
		Name:                   name,
		Currency:               strings.ToUpper(currency),
		ApprovalThresholdCents: thresholdCents,
	}
	if err := r.db.Create(row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

// DefaultCompanyID returns the first company for single-tenant joins where no
// company was named at registration.
func (r *Repository) DefaultCompanyID() (int64, error) {
	var row companyDatamodel.Company
	err := r.db.Order("id ASC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, auth.ErrNoCompany
		}
		return 0, err
	}
	return row.ID, nil
}

func toAuthUser(row *userDatamodel.User) *auth.User {
	return &auth.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Role:      approval.Role(row.Role),
		CompanyID: row.CompanyID,
		ManagerID: row.ManagerID,
	}
}
