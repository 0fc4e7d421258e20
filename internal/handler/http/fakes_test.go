package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/domain/auth"
	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
	"github.com/terceiro-labs/provision-backend/internal/domain/punch"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
	"github.com/terceiro-labs/provision-backend/internal/pkg/storage"
)

const handlerTestSecret = "test-secret-key-for-jwt"

func newTestJWT() jwt.Service {
	return jwt.NewJWTService(handlerTestSecret, time.Hour, 24*time.Hour, false)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func errorCode(t *testing.T, resp map[string]interface{}) string {
	t.Helper()
	detail, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object: %v", resp)
	code, _ := detail["code"].(string)
	return code
}

// ===== auth =====

type fakeAuthService struct {
	register func(ctx context.Context, req auth.RegisterRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error)
	login    func(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error)
	refresh  func(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error)
	logout   func(ctx context.Context, refreshToken string) error
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return f.register(ctx, req, session)
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return f.login(ctx, req, session)
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	return f.refresh(ctx, req)
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string) error {
	return f.logout(ctx, refreshToken)
}

// ===== provisions =====

type fakeProvisionService struct {
	create     func(ctx context.Context, req provision.CreateProvisionRequest) (provision.ProvisionResponse, error)
	get        func(ctx context.Context, id string) (provision.ProvisionResponse, error)
	list       func(ctx context.Context, filter provision.ProvisionFilter) (provision.ListProvisionResponse, error)
	update     func(ctx context.Context, req provision.UpdateProvisionRequest) (provision.ProvisionResponse, error)
	transition func(ctx context.Context, req provision.TransitionRequest) (provision.TransitionResponse, error)
	history    func(ctx context.Context, id string) ([]provision.HistoryResponse, error)
	summary    func(ctx context.Context, filter provision.ProvisionFilter) (provision.SummaryResponse, error)
	photo      func(ctx context.Context, id string) (io.ReadCloser, string, error)
}

func (f *fakeProvisionService) CreateProvision(ctx context.Context, req provision.CreateProvisionRequest) (provision.ProvisionResponse, error) {
	return f.create(ctx, req)
}

func (f *fakeProvisionService) GetProvision(ctx context.Context, id string) (provision.ProvisionResponse, error) {
	return f.get(ctx, id)
}

func (f *fakeProvisionService) ListProvisions(ctx context.Context, filter provision.ProvisionFilter) (provision.ListProvisionResponse, error) {
	return f.list(ctx, filter)
}

func (f *fakeProvisionService) UpdateProvision(ctx context.Context, req provision.UpdateProvisionRequest) (provision.ProvisionResponse, error) {
	return f.update(ctx, req)
}

func (f *fakeProvisionService) Transition(ctx context.Context, req provision.TransitionRequest) (provision.TransitionResponse, error) {
	return f.transition(ctx, req)
}

func (f *fakeProvisionService) GetHistory(ctx context.Context, id string) ([]provision.HistoryResponse, error) {
	return f.history(ctx, id)
}

func (f *fakeProvisionService) GetSummary(ctx context.Context, filter provision.ProvisionFilter) (provision.SummaryResponse, error) {
	return f.summary(ctx, filter)
}

func (f *fakeProvisionService) OpenProofPhoto(ctx context.Context, id string) (io.ReadCloser, string, error) {
	return f.photo(ctx, id)
}

// ===== punches =====

type fakePunchService struct {
	create func(ctx context.Context, req punch.CreatePunchRequest) (punch.PunchResponse, error)
}

func (f *fakePunchService) CreatePunch(ctx context.Context, req punch.CreatePunchRequest) (punch.PunchResponse, error) {
	return f.create(ctx, req)
}

func (f *fakePunchService) GetPunch(ctx context.Context, id string) (punch.PunchResponse, error) {
	return punch.PunchResponse{ID: id}, nil
}

func (f *fakePunchService) ListPunches(ctx context.Context, filter punch.PunchFilter) (punch.ListPunchResponse, error) {
	return punch.ListPunchResponse{}, nil
}

func (f *fakePunchService) GetSummary(ctx context.Context, filter punch.PunchFilter) (punch.SummaryResponse, error) {
	return punch.SummaryResponse{}, nil
}

// ===== files =====

type fakeFileService struct {
	files map[string][]byte
}

func (f *fakeFileService) UploadProvisionProof(ctx context.Context, employeeID string, date time.Time, file io.Reader) (string, error) {
	return "", nil
}

func (f *fakeFileService) UploadPunchPhoto(ctx context.Context, employeeID string, at time.Time, file io.Reader) (string, error) {
	return "", nil
}

func (f *fakeFileService) UploadUserPhoto(ctx context.Context, userID string, file io.Reader) (string, error) {
	return "", nil
}

func (f *fakeFileService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	content, ok := f.files[key]
	if !ok {
		return nil, storage.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, key string) error { return nil }

func (f *fakeFileService) URL(key string) string { return "http://files.test/" + key }

// tokenFor issues an access token for role, with an employee profile when employeeID is set.
func tokenFor(t *testing.T, svc jwt.Service, role user.Role, employeeID string) string {
	t.Helper()
	subject := jwt.Subject{
		UserID:   "0b0e9c7e-5d7b-4c43-9d59-2f9d6a1c2b11",
		Username: "tester",
		Role:     role,
	}
	if employeeID != "" {
		subject.EmployeeID = &employeeID
	}
	token, _, err := svc.GenerateAccessToken(subject)
	require.NoError(t, err)
	return token
}
