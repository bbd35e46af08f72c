package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pb33f/libopenapi"

	"github.com/EJcoding/DataAngelo/core/design"
)

// GenerateOpenAPISpec builds the OpenAPI 3.0 document for the service
// surface and validates it with libopenapi before returning it.
func GenerateOpenAPISpec(baseURL, version string) ([]byte, error) {
	errorSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean", "example": false},
			"error":   map[string]any{"type": "string"},
		},
	}

	spec := map[string]any{
		"openapi": "3.0.0",
		"info": map[string]any{
			"title":       "DataAngelo: AI Database Architect",
			"version":     version,
			"description": "Describe an application, pick a SQL dialect, get back a schema, an ERD and a design explanation generated by a locally hosted model.",
		},
		"servers": []map[string]any{
			{
				"url":         baseURL,
				"description": "DataAngelo server",
			},
		},
		"paths": map[string]any{
			"/design-database": map[string]any{
				"post": map[string]any{
					"summary":     "Generate a database design",
					"operationId": "designDatabase",
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"description": map[string]any{
											"type":        "string",
											"description": "Free-text application description",
											"example":     "A library lending system with members, books and loans",
										},
										"database_type": map[string]any{
											"type":        "string",
											"description": "Target SQL dialect",
											"enum":        design.SupportedDialects,
											"default":     design.DefaultDialect,
										},
									},
									"required": []string{"description"},
								},
							},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Generated design",
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{
										"type": "object",
										"properties": map[string]any{
											"erd_mermaid": map[string]any{"type": "string"},
											"sql_queries": map[string]any{"type": "string"},
											"explanation": map[string]any{"type": "string"},
										},
									},
								},
							},
						},
						"400": map[string]any{
							"description": "Invalid request",
							"content": map[string]any{
								"application/json": map[string]any{"schema": errorSchema},
							},
						},
						"502": map[string]any{
							"description": "Model runtime unreachable",
							"content": map[string]any{
								"application/json": map[string]any{"schema": errorSchema},
							},
						},
					},
				},
			},
			"/validate-design": map[string]any{
				"post": map[string]any{
					"summary":     "Review an existing database design",
					"operationId": "validateDesign",
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"design":       map[string]any{"type": "string"},
										"requirements": map[string]any{"type": "string"},
									},
									"required": []string{"design"},
								},
							},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Review feedback",
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{
										"type": "object",
										"properties": map[string]any{
											"validation_feedback": map[string]any{"type": "string"},
										},
									},
								},
							},
						},
						"502": map[string]any{
							"description": "Model runtime unreachable",
						},
					},
				},
			},
			"/models": map[string]any{
				"get": map[string]any{
					"summary":     "List available models",
					"operationId": "listModels",
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Models installed on the Ollama host",
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{
										"type": "object",
										"properties": map[string]any{
											"available_models": map[string]any{
												"type":  "array",
												"items": map[string]any{"type": "string"},
											},
										},
									},
								},
							},
						},
						"502": map[string]any{
							"description": "Ollama unreachable",
						},
					},
				},
			},
			"/healthz": map[string]any{
				"get": map[string]any{
					"summary":     "Health check",
					"operationId": "healthz",
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Service status with dependency checks",
						},
					},
				},
			},
		},
	}

	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spec: %w", err)
	}

	document, err := libopenapi.NewDocument(specJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create libopenapi document: %w", err)
	}

	if _, err := document.BuildV3Model(); err != nil {
		return nil, fmt.Errorf("failed to build v3 model (validation error): %w", err)
	}

	return specJSON, nil
}

// OpenAPIHandler returns an HTTP handler serving the OpenAPI document.
func OpenAPIHandler(baseURL, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		specJSON, err := GenerateOpenAPISpec(baseURL, version)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to generate OpenAPI spec: %v", err), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		// Pretty print the JSON
		var spec map[string]any
		if err := json.Unmarshal(specJSON, &spec); err != nil {
			http.Error(w, "Failed to format spec", http.StatusInternalServerError)
			return
		}

		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(spec); err != nil {
			http.Error(w, "Failed to encode OpenAPI spec", http.StatusInternalServerError)
		}
	}
}

// BaseURL derives the advertised server URL from a port.
func BaseURL(port string) string {
	return fmt.Sprintf("http://localhost:%s", strings.TrimPrefix(port, ":"))
}
