package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
)

const provisionJSON = `{
	"employee_id": "8f14e45f-ceea-467f-a0e6-1b8e0b1c1a01",
	"location_id": "8f14e45f-ceea-467f-a0e6-1b8e0b1c1a02",
	"manager_id": "8f14e45f-ceea-467f-a0e6-1b8e0b1c1a03",
	"date": "2026-03-02",
	"arrival_time": "08:00",
	"departure_time": "17:00",
	"value": "150.00"
}`

// withURLParam attaches a chi route context carrying one path parameter.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func multipartBody(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", "proof.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestProvisionCreate(t *testing.T) {
	t.Run("multipart with photo", func(t *testing.T) {
		var got provision.CreateProvisionRequest
		svc := &fakeProvisionService{
			create: func(ctx context.Context, req provision.CreateProvisionRequest) (provision.ProvisionResponse, error) {
				got = req
				return provision.ProvisionResponse{ID: "p1", Status: provision.StatusPending}, nil
			},
		}
		h := NewProvisionHandler(svc)

		body, contentType := multipartBody(t, map[string]string{"data": provisionJSON}, []byte("\x89PNG\r\n\x1a\n"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/provisions", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "2026-03-02", got.Date)
		assert.Equal(t, "08:00", got.ArrivalTime)
		assert.Equal(t, "150", got.Value.String())
		require.NotNil(t, got.FileHeader)
		assert.Equal(t, "proof.png", got.FileHeader.Filename)
	})

	t.Run("plain json", func(t *testing.T) {
		svc := &fakeProvisionService{
			create: func(ctx context.Context, req provision.CreateProvisionRequest) (provision.ProvisionResponse, error) {
				assert.Nil(t, req.FileHeader)
				return provision.ProvisionResponse{ID: "p1"}, nil
			},
		}
		h := NewProvisionHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/provisions", strings.NewReader(provisionJSON))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("multipart without data field", func(t *testing.T) {
		h := NewProvisionHandler(&fakeProvisionService{})

		body, contentType := multipartBody(t, map[string]string{"notes": "x"}, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/provisions", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("time order violation", func(t *testing.T) {
		svc := &fakeProvisionService{
			create: func(ctx context.Context, req provision.CreateProvisionRequest) (provision.ProvisionResponse, error) {
				return provision.ProvisionResponse{}, &provision.TimeOrderError{Reason: provision.ReasonDepartureBeforeArrival}
			},
		}
		h := NewProvisionHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/provisions", strings.NewReader(provisionJSON))
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, "INVALID_TIME_ORDER", errorCode(t, resp))
		detail := resp["error"].(map[string]interface{})
		assert.Equal(t, provision.ReasonDepartureBeforeArrival, detail["message"])
	})

	t.Run("duplicate record", func(t *testing.T) {
		svc := &fakeProvisionService{
			create: func(ctx context.Context, req provision.CreateProvisionRequest) (provision.ProvisionResponse, error) {
				return provision.ProvisionResponse{}, provision.ErrDuplicateRecord
			},
		}
		h := NewProvisionHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/provisions", strings.NewReader(provisionJSON))
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestProvisionList(t *testing.T) {
	var got provision.ProvisionFilter
	svc := &fakeProvisionService{
		list: func(ctx context.Context, filter provision.ProvisionFilter) (provision.ListProvisionResponse, error) {
			got = filter
			return provision.ListProvisionResponse{}, nil
		},
	}
	h := NewProvisionHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/provisions?status=approved&start_date=2026-03-01&page=2&sort_by=value&sort_order=desc", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Status)
	assert.Equal(t, "approved", *got.Status)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2026-03-01", *got.StartDate)
	assert.Nil(t, got.EndDate)
	assert.Nil(t, got.EmployeeID)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 20, got.Limit)
	assert.Equal(t, "value", got.SortBy)
	assert.Equal(t, "desc", got.SortOrder)
}

func TestProvisionTransition(t *testing.T) {
	const id = "8f14e45f-ceea-467f-a0e6-1b8e0b1c1a09"

	t.Run("success", func(t *testing.T) {
		var got provision.TransitionRequest
		svc := &fakeProvisionService{
			transition: func(ctx context.Context, req provision.TransitionRequest) (provision.TransitionResponse, error) {
				got = req
				return provision.TransitionResponse{
					Provision: provision.ProvisionResponse{ID: id, Status: provision.StatusApproved},
					History: provision.HistoryResponse{
						ProvisionID:    id,
						PreviousStatus: provision.StatusPending,
						NewStatus:      provision.StatusApproved,
					},
				}, nil
			},
		}
		h := NewProvisionHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/provisions/"+id+"/transition", strings.NewReader(`{"status":"approved","notes":"ok"}`))
		req = withURLParam(req, "id", id)
		w := httptest.NewRecorder()

		h.Transition(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "approved", got.Status)
		assert.Equal(t, "ok", got.Notes)

		resp := decodeBody(t, w)
		assert.Equal(t, "Status changed to approved", resp["message"])
	})

	t.Run("same status", func(t *testing.T) {
		svc := &fakeProvisionService{
			transition: func(ctx context.Context, req provision.TransitionRequest) (provision.TransitionResponse, error) {
				return provision.TransitionResponse{}, provision.ErrStatusUnchanged
			},
		}
		h := NewProvisionHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/provisions/"+id+"/transition", strings.NewReader(`{"status":"pending"}`))
		req = withURLParam(req, "id", id)
		w := httptest.NewRecorder()

		h.Transition(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestProvisionHistory(t *testing.T) {
	svc := &fakeProvisionService{
		history: func(ctx context.Context, id string) ([]provision.HistoryResponse, error) {
			return []provision.HistoryResponse{
				{PreviousStatus: provision.StatusPending, NewStatus: provision.StatusInReview},
				{PreviousStatus: provision.StatusInReview, NewStatus: provision.StatusApproved},
			}, nil
		},
	}
	h := NewProvisionHandler(svc)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/provisions/x/history", nil), "id", "x")
	w := httptest.NewRecorder()

	h.History(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	meta, ok := resp["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, meta["total_items"])
}

func TestProvisionPhoto(t *testing.T) {
	t.Run("streams content", func(t *testing.T) {
		svc := &fakeProvisionService{
			photo: func(ctx context.Context, id string) (io.ReadCloser, string, error) {
				return io.NopCloser(strings.NewReader("jpeg-bytes")), "image/jpeg", nil
			},
		}
		h := NewProvisionHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/provisions/x/photo", nil), "id", "x")
		w := httptest.NewRecorder()

		h.Photo(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
		assert.Equal(t, "jpeg-bytes", w.Body.String())
	})

	t.Run("no photo", func(t *testing.T) {
		svc := &fakeProvisionService{
			photo: func(ctx context.Context, id string) (io.ReadCloser, string, error) {
				return nil, "", provision.ErrPhotoNotFound
			},
		}
		h := NewProvisionHandler(svc)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/provisions/x/photo", nil), "id", "x")
		w := httptest.NewRecorder()

		h.Photo(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
