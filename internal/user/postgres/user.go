package postgres

import (
	"errors"
	"time"

	userDatamodel "github.com/clearspend/expense-approval/internal/core/datamodel/user"
	"github.com/clearspend/expense-approval/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.RepositoryAPI using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(companyID, id int64) (*user.User, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&row), nil
}

func (r *UserRepository) ListByCompany(companyID int64) ([]user.User, error) {
	var rows []userDatamodel.User
	err := r.db.Where("company_id = ?", companyID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	users := make([]user.User, 0, len(rows))
	for i := range rows {
		users = append(users, *user.FromDataModel(&rows[i]))
	}
	return users, nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Create(u *user.User, passwordHash string) error {
	row := &userDatamodel.User{
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: passwordHash,
		Role:         string(u.Role),
		CompanyID:    u.CompanyID,
		ManagerID:    u.ManagerID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	u.ID = row.ID
	return nil
}

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ? AND company_id = ?", u.ID, u.CompanyID).
		Select("name", "role", "manager_id", "updated_at").
		Updates(&userDatamodel.User{
			Name:      u.Name,
			Role:      string(u.Role),
			ManagerID: u.ManagerID,
			UpdatedAt: u.UpdatedAt,
		}).Error
}

func (r *UserRepository) CountAdmins(companyID int64) (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("company_id = ? AND role = ?", companyID, "admin").
		Count(&count).Error
	return count, err
}
