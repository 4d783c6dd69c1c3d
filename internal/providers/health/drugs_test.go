package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aiforhelp/carebot/internal/core"
	"github.com/stretchr/testify/require"
)

func TestDrugLookup_Search(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Query().Get("search"), "aspirin")
		_, _ = w.Write([]byte(`{
			"results": [{
				"openfda": {"brand_name": ["Aspirin"], "generic_name": ["acetylsalicylic acid"]},
				"purpose": ["Pain reliever"],
				"indications_and_usage": ["Headache relief"]
			}]
		}`))
	}))
	t.Cleanup(srv.Close)

	info, err := NewDrugLookupWithEndpoint(srv.URL).Search(context.Background(), "aspirin")
	require.NoError(t, err)
	require.NotNil(t, info)
	require.Equal(t, "Aspirin", info.BrandName)
	require.Equal(t, "acetylsalicylic acid", info.GenericName)
	require.Equal(t, "Pain reliever", info.Purpose)
	require.Equal(t, "Headache relief", info.IndicationsAndUsage)
}

func TestDrugLookup_NotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": "NOT_FOUND"}}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	info, err := NewDrugLookupWithEndpoint(srv.URL).Search(context.Background(), "no-such-drug")
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestDrugLookup_MissingFields(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"openfda": {}}]}`))
	}))
	t.Cleanup(srv.Close)

	info, err := NewDrugLookupWithEndpoint(srv.URL).Search(context.Background(), "mystery")
	require.NoError(t, err)
	require.NotNil(t, info)
	require.Equal(t, "N/A", info.BrandName)
	require.Equal(t, "N/A", info.Purpose)
}

func TestDrugLookup_EmptyName(t *testing.T) {
	t.Parallel()
	var verr *core.ValidationError
	_, err := NewDrugLookup().Search(context.Background(), "")
	require.ErrorAs(t, err, &verr)
}
