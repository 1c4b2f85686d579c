package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/slinkp/outreach/internal/model"
)

// ResearchOptions are the override flags for a research run. Omitted flags
// default to false on the wire.
type ResearchOptions struct {
	ForceLevels   bool `json:"force_levels"`
	ForceContacts bool `json:"force_contacts"`
}

// NewCompanyRequest submits a company for research by URL and/or name.
// At least one of the two is required.
type NewCompanyRequest struct {
	URL  string `json:"url,omitempty" validate:"omitempty,url"`
	Name string `json:"name,omitempty"`
}

// CompanyDetails carries the editable fields of a company.
type CompanyDetails struct {
	Name      *string `json:"name,omitempty"`
	Promising *bool   `json:"promising"`
	Notes     *string `json:"notes,omitempty"`
}

type listCompaniesResponse struct {
	Companies []model.Company `json:"companies"`
}

type duplicatesResponse struct {
	Duplicates []model.Duplicate `json:"duplicates"`
}

// ListCompanies returns the active companies, or all companies (archived
// included) when includeAll is set.
func (c *Client) ListCompanies(ctx context.Context, includeAll bool) ([]model.Company, error) {
	path := "/api/companies"
	if includeAll {
		path += "?include_all=true"
	}
	var resp listCompaniesResponse
	if err := c.do(ctx, http.MethodGet, path, "load companies", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Companies, nil
}

// GetCompany fetches a single company by id.
func (c *Client) GetCompany(ctx context.Context, id int64) (*model.Company, error) {
	var company model.Company
	path := fmt.Sprintf("/api/companies/%d", id)
	if err := c.do(ctx, http.MethodGet, path, "load company", nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// UpdateCompanyDetails patches the editable company fields and returns the
// updated record.
func (c *Client) UpdateCompanyDetails(ctx context.Context, id int64, details CompanyDetails) (*model.Company, error) {
	var company model.Company
	path := fmt.Sprintf("/api/companies/%d/details", id)
	if err := c.do(ctx, http.MethodPatch, path, "update company", details, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// ResearchCompany starts a background research task for the company and
// returns the task id to poll.
func (c *Client) ResearchCompany(ctx context.Context, id int64, opts ResearchOptions) (*TaskRef, error) {
	var ref TaskRef
	path := fmt.Sprintf("/api/companies/%d/research", id)
	if err := c.do(ctx, http.MethodPost, path, "start research", opts, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// CreateCompany submits a new company for research. The request is
// validated before any network call: at least one of URL or name is
// required, and the URL must parse when present.
func (c *Client) CreateCompany(ctx context.Context, req NewCompanyRequest) (*TaskRef, error) {
	if req.URL == "" && req.Name == "" {
		return nil, &ErrValidation{Message: "either a URL or a company name is required"}
	}
	if err := c.validate.Struct(req); err != nil {
		return nil, &ErrValidation{Message: "invalid company URL"}
	}
	var ref TaskRef
	if err := c.do(ctx, http.MethodPost, "/api/companies", "submit company", req, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// MergeCompanies merges duplicateID into canonicalID and returns the
// surviving record.
func (c *Client) MergeCompanies(ctx context.Context, canonicalID, duplicateID int64) (*model.Company, error) {
	var company model.Company
	path := fmt.Sprintf("/api/companies/%d/merge", canonicalID)
	body := map[string]int64{"duplicate_id": duplicateID}
	if err := c.do(ctx, http.MethodPost, path, "merge companies", body, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// PotentialDuplicates lists merge candidates for a company.
func (c *Client) PotentialDuplicates(ctx context.Context, id int64) ([]model.Duplicate, error) {
	var resp duplicatesResponse
	path := fmt.Sprintf("/api/companies/%d/potential-duplicates", id)
	if err := c.do(ctx, http.MethodGet, path, "find duplicates", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Duplicates, nil
}
