package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyLeadCaptured(t *testing.T) {
	var received LeadEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	event := LeadEvent{
		LeadID:     "abc123",
		Name:       "Asha",
		Phone:      "9876500001",
		Source:     "popup",
		CapturedAt: time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, client.NotifyLeadCaptured(context.Background(), event))
	assert.Equal(t, event, received)
}

func TestNotifyLeadCapturedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.NotifyLeadCaptured(context.Background(), LeadEvent{LeadID: "x"})
	assert.Error(t, err)
}
