package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/domain/punch"
)

func TestPunchCreate(t *testing.T) {
	t.Run("captures ip and coordinates", func(t *testing.T) {
		var got punch.CreatePunchRequest
		svc := &fakePunchService{
			create: func(ctx context.Context, req punch.CreatePunchRequest) (punch.PunchResponse, error) {
				got = req
				return punch.PunchResponse{ID: "k1"}, nil
			},
		}
		h := NewPunchHandler(svc)

		body, contentType := multipartBody(t, map[string]string{
			"latitude":  "-23.5505",
			"longitude": "-46.6333",
		}, []byte("\xff\xd8\xff"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/punches", body)
		req.Header.Set("Content-Type", contentType)
		req.RemoteAddr = "192.168.0.7:41000"
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "192.168.0.7", got.IPAddress)
		require.NotNil(t, got.Latitude)
		require.NotNil(t, got.Longitude)
		assert.InDelta(t, -23.5505, *got.Latitude, 1e-9)
		assert.InDelta(t, -46.6333, *got.Longitude, 1e-9)
		require.NotNil(t, got.FileHeader)
	})

	t.Run("coordinates are optional", func(t *testing.T) {
		var got punch.CreatePunchRequest
		svc := &fakePunchService{
			create: func(ctx context.Context, req punch.CreatePunchRequest) (punch.PunchResponse, error) {
				got = req
				return punch.PunchResponse{ID: "k1"}, nil
			},
		}
		h := NewPunchHandler(svc)

		body, contentType := multipartBody(t, nil, []byte("\xff\xd8\xff"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/punches", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Nil(t, got.Latitude)
		assert.Nil(t, got.Longitude)
	})

	t.Run("invalid latitude", func(t *testing.T) {
		h := NewPunchHandler(&fakePunchService{})

		body, contentType := multipartBody(t, map[string]string{"latitude": "north"}, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/punches", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		h := NewPunchHandler(&fakePunchService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/punches", nil)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("caller without employee profile", func(t *testing.T) {
		svc := &fakePunchService{
			create: func(ctx context.Context, req punch.CreatePunchRequest) (punch.PunchResponse, error) {
				return punch.PunchResponse{}, punch.ErrNotEmployee
			},
		}
		h := NewPunchHandler(svc)

		body, contentType := multipartBody(t, nil, []byte("\xff\xd8\xff"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/punches", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
