package domain

// Persona is a named synthetic user with a pre-generated metric series,
// used for demos.
// @Description Demo persona summary.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PersonaData bundles a persona with its full day series.
// @Description Demo persona with its 30-day metric series.
type PersonaData struct {
	Persona
	Data []MetricRecord `json:"data"`
}

// PersonaDataResponse is PersonaData plus the computed summary, as served
// by GET /persona/{id}/data.
type PersonaDataResponse struct {
	PersonaData
	Summary SeriesSummary `json:"summary"`
}

// UploadResponse echoes normalized uploaded data with its summary.
// @Description Normalized upload with computed summary.
type UploadResponse struct {
	Data    []MetricRecord `json:"data"`
	Summary SeriesSummary  `json:"summary"`
}
