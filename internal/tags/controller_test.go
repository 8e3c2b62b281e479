package tags_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mulnori/internal/tags"
)

func newTestRouter(repo *fakeRepo, threshold int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	tags.SetupTagRoutes(api, tags.NewController(tags.NewService(repo, threshold, 50)))
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestRequestAdditionEndpoint(t *testing.T) {
	t.Run("accepted request returns 201", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "샤워장"
		engine := newTestRouter(repo, 5)

		rec := postJSON(t, engine, "/api/v1/tags/request",
			tags.TagRequest{SiteID: 1, TagName: "주차장"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, "success", envelope["status"])
		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, "pending", data["status"])
	})

	t.Run("duplicate tag returns 409", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "주차장"
		engine := newTestRouter(repo, 5)

		rec := postJSON(t, engine, "/api/v1/tags/request",
			tags.TagRequest{SiteID: 1, TagName: "주차장"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown site returns 404", func(t *testing.T) {
		engine := newTestRouter(newFakeRepo(), 5)

		rec := postJSON(t, engine, "/api/v1/tags/request",
			tags.TagRequest{SiteID: 77, TagName: "바다"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		engine := newTestRouter(newFakeRepo(), 5)

		rec := postJSON(t, engine, "/api/v1/tags/request", map[string]interface{}{"site_id": 1})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequestDeletionEndpoint(t *testing.T) {
	t.Run("threshold crossing reports the hidden tag", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "주차장"
		engine := newTestRouter(repo, 2)

		body := tags.TagRequest{SiteID: 1, TagName: "주차장"}

		rec := postJSON(t, engine, "/api/v1/tags/request-deletion", body)
		assert.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, "Tag deletion request recorded", envelope["message"])

		rec = postJSON(t, engine, "/api/v1/tags/request-deletion", body)
		assert.Equal(t, http.StatusOK, rec.Code)
		envelope = decodeEnvelope(t, rec)
		assert.Contains(t, envelope["message"], "threshold crossed")

		rec = postJSON(t, engine, "/api/v1/tags/request-deletion", body)
		assert.Equal(t, http.StatusOK, rec.Code)
		envelope = decodeEnvelope(t, rec)
		assert.Contains(t, envelope["message"], "already hidden")
	})

	t.Run("absent tag returns 404", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "샤워장"
		engine := newTestRouter(repo, 5)

		rec := postJSON(t, engine, "/api/v1/tags/request-deletion",
			tags.TagRequest{SiteID: 1, TagName: "바다"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHiddenRequestEndpoints(t *testing.T) {
	t.Run("list and purge round trip", func(t *testing.T) {
		repo := newFakeRepo()
		repo.siteTags[1] = "주차장"
		engine := newTestRouter(repo, 1)

		rec := postJSON(t, engine, "/api/v1/tags/request-deletion",
			tags.TagRequest{SiteID: 1, TagName: "주차장"})
		require.Equal(t, http.StatusOK, rec.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/tags/hidden", nil)
		rec = httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		hidden := envelope["data"].([]interface{})
		require.Len(t, hidden, 1)
		id := hidden[0].(map[string]interface{})["id"].(float64)

		req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/admin/tags/%.0f", id), nil)
		rec = httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/tags/hidden", nil)
		rec = httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		envelope = decodeEnvelope(t, rec)
		assert.Empty(t, envelope["data"])
	})

	t.Run("purging an unknown id returns 404", func(t *testing.T) {
		engine := newTestRouter(newFakeRepo(), 5)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/tags/99", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		engine := newTestRouter(newFakeRepo(), 5)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/tags/abc", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
