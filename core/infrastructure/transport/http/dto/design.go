package dto

// DesignRequest asks for a database design from a free-text description.
// database_type is optional and defaults to MySQL.
type DesignRequest struct {
	Description  string `json:"description" validate:"required"`
	DatabaseType string `json:"database_type"`
}

// DesignResponse carries the three generated fields.
type DesignResponse struct {
	ERDMermaid  string `json:"erd_mermaid"`
	SQLQueries  string `json:"sql_queries"`
	Explanation string `json:"explanation"`
}

// ValidateDesignRequest asks for a review of an existing design.
type ValidateDesignRequest struct {
	Design       string `json:"design" validate:"required"`
	Requirements string `json:"requirements"`
}

// ValidateDesignResponse carries the model's free-text feedback.
type ValidateDesignResponse struct {
	ValidationFeedback string `json:"validation_feedback"`
}

// ModelsResponse lists the models available on the Ollama host.
type ModelsResponse struct {
	AvailableModels []string `json:"available_models"`
}
