package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mito-shogi/wars-kif-service/internal/apperr"
	"github.com/mito-shogi/wars-kif-service/internal/testutil"
)

func TestErrorKindNamesSentinel(t *testing.T) {
	cases := map[string]error{
		"structural mismatch": fmt.Errorf("history: %w", apperr.ErrStructuralMismatch),
		"illegal move":        fmt.Errorf("move 12: %w", apperr.ErrIllegalMove),
		"":                    errors.New("connection reset"),
	}
	for want, err := range cases {
		assert.Equal(t, want, errorKind(err), err.Error())
	}
}

func TestWriteErrorCarriesRequestIDHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/friends", nil)
	req.Header.Set("X-Request-ID", "abc")
	rr := httptest.NewRecorder()

	writeError(rr, req, http.StatusBadRequest, "prefix is required", nil)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertContentType(t, rr, "application/json")
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	assert.Equal(t, "prefix is required", body.Error)
	assert.Equal(t, "abc", body.RequestID)
	assert.Empty(t, body.Kind)
}

func TestWriteServiceErrorRejectsInputWith422(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	req := httptest.NewRequest(http.MethodGet, "/games/x", nil)
	rr := httptest.NewRecorder()

	writeServiceError(rr, req, fmt.Errorf("detail: %w", apperr.ErrMoveLogCorrupt), logger)

	testutil.AssertStatus(t, rr, http.StatusUnprocessableEntity)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	assert.Equal(t, "move log corrupt", body.Kind)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status_code=422")
}

func TestWriteTextSetsContentType(t *testing.T) {
	rr := httptest.NewRecorder()
	writeText(rr, http.StatusOK, contentTypeCSA, "V3.0\n")

	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertHeader(t, rr, "Content-Type", contentTypeCSA)
	assert.Equal(t, "V3.0\n", rr.Body.String())
}
