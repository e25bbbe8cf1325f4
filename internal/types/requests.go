package types

import (
	"github.com/go-playground/validator/v10"
)

// AddSectionRequest asks the editor to insert a new section.
type AddSectionRequest struct {
	Type     SectionType `json:"type" validate:"required"`
	Position Position    `json:"position"`
}

// UpdateSectionRequest replaces a section wholesale.
type UpdateSectionRequest struct {
	Section Section `json:"section"`
}

// ReorderRequest moves an item from OldIndex to NewIndex.
type ReorderRequest struct {
	OldIndex *int `json:"old_index" validate:"required,min=0"`
	NewIndex *int `json:"new_index" validate:"required,min=0"`
}

// TitleEditRequest drives the title edit state machine of a section.
type TitleEditRequest struct {
	Action string  `json:"action" validate:"required,oneof=begin set commit cancel"`
	Value  *string `json:"value,omitempty"`
}

// DragRequest reports a finished drag gesture by item id. An empty OverID means the item
// was dropped outside any target.
type DragRequest struct {
	ActiveID string `json:"active_id" validate:"required"`
	OverID   string `json:"over_id"`
}

// ScanRequest is a single resume-versus-job keyword scan.
type ScanRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// BatchScanRequest scans one resume against several job descriptions.
type BatchScanRequest struct {
	ResumeText      string   `json:"resume_text" validate:"required"`
	JobDescriptions []string `json:"job_descriptions" validate:"required,min=1,max=20,dive,required"`
}

// BatchScanResponse holds one result per job description, in request order.
type BatchScanResponse struct {
	Results []ScanResult `json:"results"`
}

// NormalizeTitleRequest carries a free-form job title.
type NormalizeTitleRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

// NormalizeTitleResponse lists up to three standard job titles.
type NormalizeTitleResponse struct {
	Success bool     `json:"success"`
	Terms   []string `json:"terms"`
}

// Validate validates the AddSectionRequest using the validator.
func (r *AddSectionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ReorderRequest using the validator.
func (r *ReorderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the TitleEditRequest using the validator.
func (r *TitleEditRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the DragRequest using the validator.
func (r *DragRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScanRequest using the validator.
func (r *ScanRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the BatchScanRequest using the validator.
func (r *BatchScanRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the NormalizeTitleRequest using the validator.
func (r *NormalizeTitleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
