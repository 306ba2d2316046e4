package models

import (
	"time"

	"gorm.io/datatypes"
)

// Report type values.
const (
	ReportTypeAnnual        = "annual"
	ReportTypeReport        = "report"
	ReportTypePossession    = "possession report"
	ReportTypeExtraordinary = "extraordinary report"
	ReportTypeOther         = "other"
)

// Document type values.
const (
	DocumentTypePDF = "pdf"
	DocumentTypeCSV = "csv"
	DocumentTypeZIP = "zip"
)

type Report struct {
	ID                int64          `gorm:"primaryKey" json:"id"`
	CompanyID         int64          `gorm:"not null;index" json:"company_id"`
	Code              string         `gorm:"not null" json:"code"`
	ReportType        string         `gorm:"not null" json:"report_type"`
	SubmittedDocument string         `json:"submitted_document"`
	SubmissionTime    *time.Time     `json:"submission_time"`
	Submitter         string         `json:"submitter"`
	DocumentType      string         `gorm:"not null" json:"document_type"`
	Remark            string         `json:"remark"`
	FilePath          string         `json:"file_path"`
	RawReportContent  datatypes.JSON `json:"raw_report_content"`
	ValidFrom         *time.Time     `json:"valid_from"`
	ValidTo           *time.Time     `json:"valid_to"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
