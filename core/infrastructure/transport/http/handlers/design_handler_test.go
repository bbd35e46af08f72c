package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EJcoding/DataAngelo/core/design"
	"github.com/EJcoding/DataAngelo/core/infrastructure/transport/http/dto"
	"github.com/EJcoding/DataAngelo/core/prompt"
)

const modelReply = "Here is the design.\n\n" +
	"```mermaid\nerDiagram\n    USERS ||--o{ ORDERS : places\n```\n\n" +
	"```sql\nCREATE TABLE users (id INT PRIMARY KEY);\n```\n\n" +
	"## Design Explanation\nUsers place orders.\n"

type stubModel struct {
	reply string
	err   error
}

func (s *stubModel) Generate(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newDesignHandler(t *testing.T, model *stubModel) *DesignHandler {
	t.Helper()
	renderer, err := prompt.NewRenderer("")
	require.NoError(t, err)
	return NewDesignHandler(design.NewService(model, renderer))
}

func TestDesignDatabase(t *testing.T) {
	h := newDesignHandler(t, &stubModel{reply: modelReply})

	body := `{"description": "An online store", "database_type": "PostgreSQL"}`
	req := httptest.NewRequest(http.MethodPost, "/design-database", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.DesignDatabase(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp dto.DesignResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.ERDMermaid, "erDiagram")
	assert.Contains(t, resp.SQLQueries, "CREATE TABLE users")
	assert.Contains(t, resp.Explanation, "Users place orders")
}

func TestDesignDatabaseInvalidJSON(t *testing.T) {
	h := newDesignHandler(t, &stubModel{reply: modelReply})

	req := httptest.NewRequest(http.MethodPost, "/design-database", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.DesignDatabase(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid JSON body", resp.Error)
}

func TestDesignDatabaseMissingDescription(t *testing.T) {
	h := newDesignHandler(t, &stubModel{reply: modelReply})

	req := httptest.NewRequest(http.MethodPost, "/design-database", strings.NewReader(`{"database_type": "MySQL"}`))
	rec := httptest.NewRecorder()

	h.DesignDatabase(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "Description", resp.Details[0].Field)
	assert.Equal(t, "required", resp.Details[0].Tag)
}

func TestDesignDatabaseUnknownDialect(t *testing.T) {
	h := newDesignHandler(t, &stubModel{reply: modelReply})

	body := `{"description": "A store", "database_type": "FoundationDB"}`
	req := httptest.NewRequest(http.MethodPost, "/design-database", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.DesignDatabase(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "unsupported database type")
}

func TestDesignDatabaseModelFailure(t *testing.T) {
	h := newDesignHandler(t, &stubModel{err: errors.New("connection refused")})

	body := `{"description": "A store"}`
	req := httptest.NewRequest(http.MethodPost, "/design-database", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.DesignDatabase(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, genericErrorMessage, resp.Error)
}

func TestValidateDesign(t *testing.T) {
	h := newDesignHandler(t, &stubModel{reply: "Looks consistent. Consider an index on orders.user_id."})

	body := `{"design": "erDiagram ...", "requirements": "An online store"}`
	req := httptest.NewRequest(http.MethodPost, "/validate-design", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.ValidateDesign(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ValidateDesignResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.ValidationFeedback, "Looks consistent")
}

func TestValidateDesignMissingDesign(t *testing.T) {
	h := newDesignHandler(t, &stubModel{reply: "ok"})

	req := httptest.NewRequest(http.MethodPost, "/validate-design", strings.NewReader(`{"requirements": "store"}`))
	rec := httptest.NewRecorder()

	h.ValidateDesign(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "Design", resp.Details[0].Field)
}
