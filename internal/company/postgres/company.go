package postgres

import (
	"errors"
	"time"

	"github.com/clearspend/expense-approval/internal/company"
	companyDatamodel "github.com/clearspend/expense-approval/internal/core/datamodel/company"
	"gorm.io/gorm"
)

// CompanyRepository implements company.RepositoryAPI using GORM
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.RepositoryAPI {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) GetByID(id int64) (*company.Company, error) {
	var row companyDatamodel.Company
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, err
	}
	return company.FromDataModel(&row), nil
}

func (r *CompanyRepository) Update(c *company.Company) error {
	c.UpdatedAt = time.Now()
	return r.db.Save(company.ToDataModel(c)).Error
}
