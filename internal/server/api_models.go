package server

import "github.com/resistlab/amrburden/internal/model"

// GeneInfo is one catalog entry as returned by the genes endpoint.
type GeneInfo struct {
	Name      string `json:"name" example:"tetQ"`
	Mechanism string `json:"mechanism" example:"Target modification"`
}

// UploadAccepted is returned when an uploaded table passed validation and a
// score job was started.
type UploadAccepted struct {
	Batch *model.Batch `json:"batch"`
	JobID string       `json:"job_id" example:"6f1c5f1e-a633-4cbb-b77e-51f6427f6e36"`
}

// MissingGenesResponse reports a failed upload validation. GeneListPath
// points at the plain-text reference list users can download to fix their
// table.
type MissingGenesResponse struct {
	Error        string   `json:"error" example:"uploaded table is missing 1 required genes: tetQ"`
	MissingGenes []string `json:"missing_genes" example:"tetQ"`
	GeneListPath string   `json:"gene_list_path" example:"/api/genes/download"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
