package service

import (
	"context"

	"stockbot/internal/models"
	"stockbot/internal/repository"
)

type CompanyService struct {
	companies *repository.CompanyRepository
	reports   *repository.ReportRepository
}

func NewCompanyService(companies *repository.CompanyRepository, reports *repository.ReportRepository) *CompanyService {
	return &CompanyService{companies: companies, reports: reports}
}

func (s *CompanyService) GetCompanies(ctx context.Context, code string, skip, limit int) ([]models.Company, int64, error) {
	return s.companies.Search(ctx, code, skip, limit)
}

func (s *CompanyService) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}

// GetReports returns a page of archived filings for one company.
func (s *CompanyService) GetReports(ctx context.Context, companyID int64, skip, limit int) ([]models.Report, int64, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, 0, err
	}
	if company == nil {
		return nil, 0, ErrCompanyNotFound
	}
	return s.reports.ListByCompany(ctx, companyID, skip, limit)
}
