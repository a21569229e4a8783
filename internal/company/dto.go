package company

import (
	"errors"
	"strings"
)

// UpdateCompanyDTO carries the admin-editable settings. Zero-value fields are
// left unchanged; the threshold uses a pointer so an explicit zero can be set.
type UpdateCompanyDTO struct {
	Name                   string `json:"name,omitempty"`
	Currency               string `json:"currency,omitempty"`
	ApprovalThresholdCents *int64 `json:"approval_threshold_cents,omitempty"`
}

func (dto *UpdateCompanyDTO) Validate() error {
	if dto.Currency != "" {
		dto.Currency = strings.ToUpper(strings.TrimSpace(dto.Currency))
		if len(dto.Currency) != 3 {
			return errors.New("currency must be a 3-letter code")
		}
	}
	if dto.ApprovalThresholdCents != nil && *dto.ApprovalThresholdCents < 0 {
		return errors.New("approval threshold cannot be negative")
	}
	return nil
}
