package reportreq

import "github.com/xdd7520/QualityStar/internal/domain/coverage"

type URIItem struct {
	URL         string `json:"url"`
	Method      string `json:"method"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type DataURIItems struct {
	Name    string    `json:"name" binding:"required"`
	URLList []URIItem `json:"url_list"`
	BaseURL string    `json:"base_url"`
}

// ReportRequest is the batch posted by the automation suite.
type ReportRequest struct {
	Data []DataURIItems `json:"data" binding:"required"`
}

// ToReport converts the request to the ingestion input.
func (r ReportRequest) ToReport() *coverage.Report {
	report := &coverage.Report{Groups: make([]coverage.ReportGroup, 0, len(r.Data))}
	for _, group := range r.Data {
		urls := make([]coverage.ReportURL, 0, len(group.URLList))
		for _, u := range group.URLList {
			urls = append(urls, coverage.ReportURL{
				URL:         u.URL,
				Method:      u.Method,
				Description: u.Description,
			})
		}
		report.Groups = append(report.Groups, coverage.ReportGroup{
			Name:    group.Name,
			BaseURL: group.BaseURL,
			URLs:    urls,
		})
	}
	return report
}
