package edinet

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"slices"
	"time"
)

const (
	disclosureBaseURL = "https://disclosure.edinet-fsa.go.jp/api/v2"
	documentBaseURL   = "https://api.edinet-fsa.go.jp/api/v2"
)

type Client struct {
	key    string
	client *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		key: apiKey,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// UseDefaultClient routes requests through http.DefaultClient so tests can
// install a mock transport.
func (c *Client) UseDefaultClient() {
	c.client = http.DefaultClient
}

// Document is one entry of the daily filing index.
type Document struct {
	SeqNumber            int     `json:"seqNumber"`
	DocID                string  `json:"docID"`
	EdinetCode           string  `json:"edinetCode"`
	SecCode              *string `json:"secCode"`
	JCN                  string  `json:"JCN"`
	FilerName            string  `json:"filerName"`
	FundCode             string  `json:"fundCode"`
	OrdinanceCode        string  `json:"ordinanceCode"`
	FormCode             string  `json:"formCode"`
	DocTypeCode          string  `json:"docTypeCode"`
	PeriodStart          string  `json:"periodStart"`
	PeriodEnd            string  `json:"periodEnd"`
	SubmitDateTime       string  `json:"submitDateTime"`
	DocDescription       string  `json:"docDescription"`
	IssuerEdinetCode     string  `json:"issuerEdinetCode"`
	SubjectEdinetCode    string  `json:"subjectEdinetCode"`
	SubsidiaryEdinetCode string  `json:"subsidiaryEdinetCode"`
	CurrentReportReason  string  `json:"currentReportReason"`
	ParentDocID          string  `json:"parentDocID"`
	OpeDateTime          string  `json:"opeDateTime"`
	WithdrawalStatus     string  `json:"withdrawalStatus"`
	DocInfoEditStatus    string  `json:"docInfoEditStatus"`
	DisclosureStatus     string  `json:"disclosureStatus"`
	XbrlFlag             string  `json:"xbrlFlag"`
	PdfFlag              string  `json:"pdfFlag"`
	AttachDocFlag        string  `json:"attachDocFlag"`
	CsvFlag              string  `json:"csvFlag"`
	LegalStatus          string  `json:"legalStatus"`
}

type listResponse struct {
	Metadata struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"metadata"`
	Results []Document `json:"results"`
}

// 書類一覧API
// https://disclosure2dl.edinet-fsa.go.jp/guide/static/disclosure/WZEK0110.html
func (c *Client) ListDocuments(date time.Time) ([]Document, error) {
	u, _ := url.Parse(disclosureBaseURL + "/documents.json")
	q := u.Query()
	q.Set("date", date.Format("2006-01-02"))
	q.Set("type", "2") // '1' is metadata only; '2' is metadata and results
	q.Set("Subscription-Key", c.key)
	u.RawQuery = q.Encode()

	resp, err := c.client.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		buf, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("EDINET error %d: %s", resp.StatusCode, string(buf))
	}

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// 書類取得API。type=5 returns the CSV bundle as a zip archive.
func (c *Client) GetDocument(docID string) ([]byte, error) {
	u, _ := url.Parse(documentBaseURL + "/documents/" + docID)
	q := u.Query()
	q.Set("type", "5")
	q.Set("Subscription-Key", c.key)
	u.RawQuery = q.Encode()

	resp, err := c.client.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("EDINET error %d: %s", resp.StatusCode, string(buf))
	}
	return buf, nil
}

// Filter narrows a document list down to the filings worth archiving.
type Filter struct {
	EdinetCodes          []string
	DocTypeCodes         []string
	ExcludedDocTypeCodes []string
	RequireSecCode       bool
}

func (f Filter) Matches(doc Document) bool {
	if len(f.EdinetCodes) > 0 && !slices.Contains(f.EdinetCodes, doc.EdinetCode) {
		return false
	}
	if len(f.DocTypeCodes) > 0 && !slices.Contains(f.DocTypeCodes, doc.DocTypeCode) {
		return false
	}
	if slices.Contains(f.ExcludedDocTypeCodes, doc.DocTypeCode) {
		return false
	}
	if f.RequireSecCode && doc.SecCode == nil {
		return false
	}
	return true
}

func FilterDocuments(docs []Document, f Filter) []Document {
	var matched []Document
	for _, doc := range docs {
		if f.Matches(doc) {
			matched = append(matched, doc)
		}
	}
	return matched
}

// DocumentsForDateRange fetches the index once per date and accumulates the
// filtered entries. A failed date is logged and skipped, never retried.
func (c *Client) DocumentsForDateRange(start, end time.Time, f Filter) []Document {
	var matched []Document
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		docs, err := c.ListDocuments(date)
		if err != nil {
			log.Printf("failed to list documents for %s: %v", date.Format("2006-01-02"), err)
			continue
		}
		matched = append(matched, FilterDocuments(docs, f)...)
	}
	return matched
}
