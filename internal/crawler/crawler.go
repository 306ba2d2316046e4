package crawler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/datatypes"

	"stockbot/internal/models"
	"stockbot/internal/pkg/edinet"
	"stockbot/internal/repository"
)

// ObjectStore is the slice of storage.Store the crawler needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Document type codes for periodic and extraordinary reports.
var crawlDocTypeCodes = []string{"120", "130", "140", "150", "160", "170"}

// DefaultWindowDays is the trailing date window a crawl covers.
const DefaultWindowDays = 400

// Crawler fetches the filing index for a trailing date window, archives the
// matching documents to object storage and records them as reports.
type Crawler struct {
	companies *repository.CompanyRepository
	reports   *repository.ReportRepository
	client    *edinet.Client
	store     ObjectStore
}

func New(companies *repository.CompanyRepository, reports *repository.ReportRepository, client *edinet.Client, store ObjectStore) *Crawler {
	return &Crawler{
		companies: companies,
		reports:   reports,
		client:    client,
		store:     store,
	}
}

// Run executes a single stateless crawl and returns the number of documents
// archived. A failure on one document never aborts the batch.
func (c *Crawler) Run(ctx context.Context, days int) (int, error) {
	log.Println("Starting EDINET document crawler")

	if days <= 0 {
		days = DefaultWindowDays
	}
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	companies, err := c.companies.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("load companies: %w", err)
	}
	codes := make([]string, 0, len(companies))
	for _, company := range companies {
		codes = append(codes, company.Code)
	}

	docs := c.client.DocumentsForDateRange(startDate, endDate, edinet.Filter{
		EdinetCodes:    codes,
		DocTypeCodes:   crawlDocTypeCodes,
		RequireSecCode: true,
	})
	if len(docs) == 0 {
		log.Println("No documents found")
		return 0, nil
	}

	processed := 0
	for _, doc := range docs {
		if err := c.processDocument(ctx, doc, startDate, endDate); err != nil {
			log.Printf("error processing document %s: %v", doc.DocID, err)
			continue
		}
		processed++
	}

	log.Printf("Successfully processed %d documents", processed)
	return processed, nil
}

// processDocument archives one filing and records it. The company update and
// the report insert commit independently.
func (c *Crawler) processDocument(ctx context.Context, doc edinet.Document, validFrom, validTo time.Time) error {
	content, err := c.client.GetDocument(doc.DocID)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}

	saveName := fmt.Sprintf("%s_%s_%s_%s.zip", doc.EdinetCode, doc.FilerName, doc.DocTypeCode, doc.DocID)
	key := fmt.Sprintf("edinet_docs/%s/%s", time.Now().Format("2006/01/02"), saveName)

	fileURL, err := c.store.Upload(ctx, key, bytes.NewReader(content), int64(len(content)), "application/zip")
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	company, err := c.companies.GetByCode(ctx, doc.EdinetCode)
	if err != nil {
		return err
	}
	if company == nil {
		return fmt.Errorf("no tracked company for code %s", doc.EdinetCode)
	}

	now := time.Now()
	if err := c.companies.Updates(ctx, company, map[string]any{
		"description": fileURL,
		"valid_from":  now,
	}); err != nil {
		return fmt.Errorf("update company %s: %w", doc.EdinetCode, err)
	}
	log.Printf("updated company %s with new document URL", doc.EdinetCode)

	rawContent, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	report := &models.Report{
		CompanyID:         company.ID,
		Code:              doc.EdinetCode,
		ReportType:        models.ReportTypeReport,
		SubmittedDocument: doc.FilerName,
		SubmissionTime:    parseSubmitDateTime(doc.SubmitDateTime),
		Submitter:         doc.FilerName,
		DocumentType:      models.DocumentTypeZIP,
		Remark:            "Document uploaded successfully",
		FilePath:          fileURL,
		RawReportContent:  datatypes.JSON(rawContent),
		ValidFrom:         &validFrom,
		ValidTo:           &validTo,
	}
	if err := c.reports.Create(ctx, report); err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	log.Printf("stored report for %s: %s (%d bytes)", doc.EdinetCode, doc.DocID, len(content))
	return nil
}

// EDINET submit times look like "2023-04-03 15:00".
func parseSubmitDateTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		return nil
	}
	return &t
}
