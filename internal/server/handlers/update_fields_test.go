package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Partial updates arrive in the API's JSON shape but are stored under bson
// field names that differ for several fields. The translation layer must map
// every key; a raw client key reaching $set would no-op the update and leave
// junk fields in the document.

func TestPropertyUpdateFieldsUseStoredNames(t *testing.T) {
	var req updatePropertyRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Sunrise Villa",
		"furnishingType": "semi",
		"rate": "25,000",
		"bed": 3,
		"availability": false
	}`), &req))

	set := req.fields()

	assert.Equal(t, "Sunrise Villa", set["property_name"])
	assert.Equal(t, "semi", set["furnishing_type"])
	assert.Equal(t, "25,000", set["rate"])
	assert.Equal(t, 3, set["bed"])
	assert.Equal(t, false, set["availability"])

	// JSON keys must never leak into the document verbatim.
	assert.NotContains(t, set, "name")
	assert.NotContains(t, set, "furnishingType")
	assert.Len(t, set, 5)
}

func TestPropertyUpdateFieldsOmitsUnsetKeys(t *testing.T) {
	var req updatePropertyRequest
	require.NoError(t, json.Unmarshal([]byte(`{"city": "Pune"}`), &req))

	set := req.fields()

	require.Len(t, set, 1)
	assert.Equal(t, "Pune", set["city"])
}

func TestTenantUpdateFieldsUseStoredNames(t *testing.T) {
	propertyID := primitive.NewObjectID()

	var req updateTenantRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Asha Rao",
		"propertyId": "`+propertyID.Hex()+`",
		"propertyType": "pg",
		"startDate": "2024-03-01T00:00:00Z",
		"rent": "12,500"
	}`), &req))

	set, err := req.fields()
	require.NoError(t, err)

	assert.Equal(t, "Asha Rao", set["name"])
	assert.Equal(t, propertyID, set["property_id"])
	assert.Equal(t, "pg", set["property_type"])
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), set["startDate"])
	assert.Equal(t, "12,500", set["rent"])

	assert.NotContains(t, set, "propertyId")
	assert.NotContains(t, set, "propertyType")
}

func TestTenantUpdateFieldsRejectsBadValues(t *testing.T) {
	badID := "not-an-object-id"
	req := updateTenantRequest{PropertyID: &badID}
	_, err := req.fields()
	assert.EqualError(t, err, "invalid property id")

	badDate := "tomorrow"
	req = updateTenantRequest{StartDate: &badDate}
	_, err = req.fields()
	assert.EqualError(t, err, "startDate must be RFC3339")
}

// Immutable keys are simply not part of the update shape, so a body touching
// only those must be rejected before any repository call.
func TestUpdateRejectsImmutableOnlyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		handler gin.HandlerFunc
		body    string
	}{
		{"property", NewPropertyHandler(nil, nil, nil).Update, `{"id": "x", "createdAt": "2024-01-01T00:00:00Z"}`},
		{"tenant", NewTenantHandler(nil, nil).Update, `{"id": "x", "payments": [], "updatedAt": "2024-01-01T00:00:00Z"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.PUT("/x/:id", tc.handler)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut,
				"/x/"+primitive.NewObjectID().Hex(), strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "no updatable fields")
		})
	}
}
