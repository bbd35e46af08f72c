package design

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EJcoding/DataAngelo/core/prompt"
	apperrors "github.com/EJcoding/DataAngelo/core/shared/errors"
)

type fakeClient struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (f *fakeClient) Generate(_ context.Context, promptText string) (string, error) {
	f.calls++
	f.lastPrompt = promptText
	return f.reply, f.err
}

func newTestService(t *testing.T, client ModelClient) *Service {
	t.Helper()
	renderer, err := prompt.NewRenderer("")
	require.NoError(t, err)
	return NewService(client, renderer)
}

func TestServiceDesign(t *testing.T) {
	client := &fakeClient{reply: wellFormedReply}
	svc := newTestService(t, client)

	result, err := svc.Design(context.Background(), "a ticketing system", "postgresql")
	require.NoError(t, err)

	assert.Contains(t, result.ERDMermaid, "erDiagram")
	assert.Contains(t, result.SQLQueries, "CREATE TABLE users")
	assert.Contains(t, result.Explanation, "3NF")

	// The prompt carries the canonical dialect name and the description.
	assert.Contains(t, client.lastPrompt, "Database Type: PostgreSQL")
	assert.Contains(t, client.lastPrompt, "a ticketing system")
}

func TestServiceDesignEmptyDescription(t *testing.T) {
	client := &fakeClient{reply: wellFormedReply}
	svc := newTestService(t, client)

	_, err := svc.Design(context.Background(), "   ", "MySQL")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	// Validation happens before any model call.
	assert.Zero(t, client.calls)
}

func TestServiceDesignUnknownDialect(t *testing.T) {
	client := &fakeClient{reply: wellFormedReply}
	svc := newTestService(t, client)

	_, err := svc.Design(context.Background(), "a blog", "FoundationDB")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Zero(t, client.calls)
}

func TestServiceDesignModelUnavailable(t *testing.T) {
	client := &fakeClient{err: errors.New("dial tcp: connection refused")}
	svc := newTestService(t, client)

	_, err := svc.Design(context.Background(), "a blog", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsModelUnavailable(err))
}

func TestServiceDesignEmptyReply(t *testing.T) {
	client := &fakeClient{reply: "  \n "}
	svc := newTestService(t, client)

	_, err := svc.Design(context.Background(), "a blog", "")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeEmptyReply, appErr.Code)
}

func TestServiceDesignMalformedReplyDegrades(t *testing.T) {
	raw := "The model ignored the requested format entirely."
	client := &fakeClient{reply: raw}
	svc := newTestService(t, client)

	result, err := svc.Design(context.Background(), "a blog", "")
	require.NoError(t, err)

	assert.Equal(t, missingERDPlaceholder, result.ERDMermaid)
	assert.Equal(t, missingSQLPlaceholder, result.SQLQueries)
	// The explanation falls back to the full raw reply.
	assert.Equal(t, raw, result.Explanation)
}

func TestServiceValidate(t *testing.T) {
	client := &fakeClient{reply: "Looks reasonable; add an index on orders.user_id."}
	svc := newTestService(t, client)

	feedback, err := svc.Validate(context.Background(), "CREATE TABLE orders (id INT);", "track orders per user")
	require.NoError(t, err)
	assert.True(t, strings.Contains(feedback, "index"))
	assert.Contains(t, client.lastPrompt, "Requirements: track orders per user")
}

func TestServiceValidateEmptyDesign(t *testing.T) {
	svc := newTestService(t, &fakeClient{reply: "x"})

	_, err := svc.Validate(context.Background(), "", "anything")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
