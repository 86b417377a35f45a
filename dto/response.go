package dto

// HealthResponseDTO is returned by /health.
type HealthResponseDTO struct {
	Status string `json:"status" example:"ok"`
	Store  string `json:"store" example:"supabase"`
}
