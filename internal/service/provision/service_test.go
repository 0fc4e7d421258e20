package provision

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/domain/master/location"
	"github.com/terceiro-labs/provision-backend/internal/domain/provision"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

const (
	employeeA  = "0b6c3f1e-2a55-4a4e-9d3c-0000000000a1"
	employeeB  = "0b6c3f1e-2a55-4a4e-9d3c-0000000000b2"
	locationID = "5f1d8c2a-7b44-4e0b-8a61-000000000001"
	managerID  = "9a3e6d4f-1c22-4b7a-9e18-000000000002"
)

// ===== FAKES =====

type fakeProvisionRepo struct {
	records map[string]provision.Record
	history []provision.HistoryEntry
}

func newFakeProvisionRepo() *fakeProvisionRepo {
	return &fakeProvisionRepo{records: map[string]provision.Record{}}
}

func (f *fakeProvisionRepo) Create(_ context.Context, r provision.Record) (provision.Record, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == r.EmployeeID && existing.LocationID == r.LocationID && existing.Date.Equal(r.Date) {
			return provision.Record{}, provision.ErrDuplicateRecord
		}
	}
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.records[r.ID] = r
	return r, nil
}

func (f *fakeProvisionRepo) GetByID(_ context.Context, id string) (provision.Detail, error) {
	r, ok := f.records[id]
	if !ok {
		return provision.Detail{}, provision.ErrProvisionNotFound
	}
	return provision.Detail{Record: r, EmployeeName: "Maria Souza", LocationName: "Clinica Central"}, nil
}

func (f *fakeProvisionRepo) GetForUpdate(_ context.Context, id string) (provision.Record, error) {
	r, ok := f.records[id]
	if !ok {
		return provision.Record{}, provision.ErrProvisionNotFound
	}
	return r, nil
}

func (f *fakeProvisionRepo) Update(_ context.Context, r provision.Record) error {
	f.records[r.ID] = r
	return nil
}

func (f *fakeProvisionRepo) UpdateStatus(_ context.Context, id string, status provision.Status) error {
	r := f.records[id]
	r.Status = status
	f.records[id] = r
	return nil
}

func (f *fakeProvisionRepo) SetProofPhoto(_ context.Context, id string, key string) error {
	r := f.records[id]
	r.ProofPhotoURL = &key
	f.records[id] = r
	return nil
}

func (f *fakeProvisionRepo) List(_ context.Context, filter provision.ProvisionFilter) ([]provision.Detail, int64, error) {
	var out []provision.Detail
	for _, r := range f.records {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, provision.Detail{Record: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, int64(len(out)), nil
}

func (f *fakeProvisionRepo) Summary(_ context.Context, filter provision.ProvisionFilter) (provision.Summary, error) {
	var s provision.Summary
	for _, r := range f.records {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		s.Total++
		if r.Status == provision.StatusApproved {
			s.Approved++
			s.TotalValue = s.TotalValue.Add(r.Value)
		}
	}
	return s, nil
}

func (f *fakeProvisionRepo) ListTimeSheets(context.Context, provision.ProvisionFilter) ([]provision.TimeSheet, error) {
	return nil, nil
}

func (f *fakeProvisionRepo) AppendHistory(_ context.Context, e provision.HistoryEntry) (provision.HistoryEntry, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	f.history = append(f.history, e)
	return e, nil
}

func (f *fakeProvisionRepo) ListHistory(_ context.Context, provisionID string) ([]provision.HistoryEntry, error) {
	var out []provision.HistoryEntry
	for _, e := range f.history {
		if e.ProvisionID == provisionID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeLocationRepo struct {
	location.LocationRepository
	getByID func(ctx context.Context, id string) (location.Location, error)
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string) (location.Location, error) {
	return f.getByID(ctx, id)
}

type passThroughTransactor struct{}

func (passThroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeFileService struct {
	uploaded []string
	deleted  []string
}

func (f *fakeFileService) UploadProvisionProof(_ context.Context, employeeID string, date time.Time, _ io.Reader) (string, error) {
	key := "provisions/" + date.Format("2006-01-02") + "/" + employeeID + ".jpg"
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeFileService) UploadPunchPhoto(context.Context, string, time.Time, io.Reader) (string, error) {
	return "", nil
}

func (f *fakeFileService) UploadUserPhoto(context.Context, string, io.Reader) (string, error) {
	return "", nil
}

func (f *fakeFileService) Open(_ context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(key)), nil
}

func (f *fakeFileService) DeleteFile(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeFileService) URL(key string) string {
	return "http://localhost:8080/api/v1/files/" + key
}

// ===== HELPERS =====

func ptr[T any](v T) *T { return &v }

func newTestService(repo *fakeProvisionRepo, files *fakeFileService) provision.ProvisionService {
	locations := &fakeLocationRepo{getByID: func(_ context.Context, id string) (location.Location, error) {
		if id != locationID {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{ID: id, Latitude: ptr(-23.5505), Longitude: ptr(-46.6333)}, nil
	}}
	return NewProvisionService(repo, repo, locations, passThroughTransactor{}, files, 0)
}

func contextAs(t *testing.T, subject jwt.Subject) context.Context {
	t.Helper()
	svc := jwt.NewJWTService("test-secret-key-for-jwt", time.Hour, time.Hour, false)
	token, _, err := svc.GenerateAccessToken(subject)
	require.NoError(t, err)
	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), decoded, nil)
}

func employeeCtx(t *testing.T, employeeID string) context.Context {
	return contextAs(t, jwt.Subject{UserID: "user-" + employeeID[len(employeeID)-2:], Role: user.RoleEmployee, EmployeeID: ptr(employeeID)})
}

func managerCtx(t *testing.T) context.Context {
	return contextAs(t, jwt.Subject{UserID: "manager-user", Role: user.RoleManager, ManagerID: ptr(managerID)})
}

func validRequest() provision.CreateProvisionRequest {
	return provision.CreateProvisionRequest{
		LocationID:       locationID,
		ManagerID:        managerID,
		Date:             "2024-03-05",
		ArrivalTime:      "08:00",
		LunchOutTime:     ptr("12:00"),
		LunchInTime:      ptr("13:00"),
		DepartureTime:    "17:00",
		Value:            decimal.RequireFromString("200.00"),
		ArrivalLatitude:  ptr(-23.5506),
		ArrivalLongitude: ptr(-46.6334),
	}
}

// ===== CREATE =====

func TestCreateProvision_EmployeeDefaultsToSelf(t *testing.T) {
	repo := newFakeProvisionRepo()
	svc := newTestService(repo, &fakeFileService{})

	resp, err := svc.CreateProvision(employeeCtx(t, employeeA), validRequest())
	require.NoError(t, err)

	assert.Equal(t, employeeA, resp.EmployeeID)
	assert.Equal(t, provision.StatusPending, resp.Status)
	assert.Equal(t, "8.00", resp.WorkedHours)
	assert.Equal(t, "25.00", resp.HourlyRate)
	assert.Equal(t, "200.00", resp.Value)
	assert.True(t, resp.OnSiteValidated)
	require.NotNil(t, resp.CreatedBy)
	assert.Equal(t, "user-a1", *resp.CreatedBy)
}

func TestCreateProvision_OffSiteArrival(t *testing.T) {
	svc := newTestService(newFakeProvisionRepo(), &fakeFileService{})

	req := validRequest()
	req.ArrivalLatitude = ptr(-22.9068)
	req.ArrivalLongitude = ptr(-43.1729)

	resp, err := svc.CreateProvision(employeeCtx(t, employeeA), req)
	require.NoError(t, err)
	assert.False(t, resp.OnSiteValidated)
}

func TestCreateProvision_EmployeeForSomeoneElse(t *testing.T) {
	svc := newTestService(newFakeProvisionRepo(), &fakeFileService{})

	req := validRequest()
	req.EmployeeID = employeeB

	_, err := svc.CreateProvision(employeeCtx(t, employeeA), req)
	assert.ErrorIs(t, err, provision.ErrNotOwnRecord)
}

func TestCreateProvision_ManagerForEmployee(t *testing.T) {
	svc := newTestService(newFakeProvisionRepo(), &fakeFileService{})

	req := validRequest()
	req.EmployeeID = employeeB

	resp, err := svc.CreateProvision(managerCtx(t), req)
	require.NoError(t, err)
	assert.Equal(t, employeeB, resp.EmployeeID)
}

func TestCreateProvision_DuplicateRejected(t *testing.T) {
	repo := newFakeProvisionRepo()
	svc := newTestService(repo, &fakeFileService{})
	ctx := employeeCtx(t, employeeA)

	_, err := svc.CreateProvision(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.CreateProvision(ctx, validRequest())
	assert.ErrorIs(t, err, provision.ErrDuplicateRecord)
	assert.Len(t, repo.records, 1)
}

func TestCreateProvision_TimeOrderReported(t *testing.T) {
	repo := newFakeProvisionRepo()
	svc := newTestService(repo, &fakeFileService{})

	req := validRequest()
	req.ArrivalTime = "18:00"

	_, err := svc.CreateProvision(employeeCtx(t, employeeA), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, provision.ErrInvalidTimeOrder)
	assert.Equal(t, provision.ReasonDepartureBeforeArrival, err.Error())
	assert.Empty(t, repo.records)
}

func TestCreateProvision_UnknownLocation(t *testing.T) {
	svc := newTestService(newFakeProvisionRepo(), &fakeFileService{})

	req := validRequest()
	req.LocationID = uuid.NewString()

	_, err := svc.CreateProvision(employeeCtx(t, employeeA), req)
	assert.ErrorIs(t, err, provision.ErrInvalidReference)
}

func TestCreateProvision_WithoutClaims(t *testing.T) {
	svc := newTestService(newFakeProvisionRepo(), &fakeFileService{})
	_, err := svc.CreateProvision(context.Background(), validRequest())
	assert.ErrorIs(t, err, jwt.ErrMissingClaims)
}

// ===== TRANSITIONS =====

func TestTransition_AppendsOneEntryPerChange(t *testing.T) {
	repo := newFakeProvisionRepo()
	svc := newTestService(repo, &fakeFileService{})

	created, err := svc.CreateProvision(employeeCtx(t, employeeA), validRequest())
	require.NoError(t, err)

	ctx := managerCtx(t)
	steps := []provision.Status{
		provision.StatusInReview,
		provision.StatusApproved,
		provision.StatusPending,
		provision.StatusRejected,
		provision.StatusApproved,
	}
	for _, st := range steps {
		resp, err := svc.Transition(ctx, provision.TransitionRequest{ID: created.ID, Status: string(st), Notes: "checked"})
		require.NoError(t, err)
		assert.Equal(t, st, resp.Provision.Status)
		assert.Equal(t, st, resp.History.NewStatus)
		assert.Equal(t, "manager-user", resp.History.ValidatedBy)
	}

	history, err := svc.GetHistory(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, len(steps))

	previous := provision.StatusPending
	for i, h := range history {
		assert.Equal(t, previous, h.PreviousStatus)
		assert.Equal(t, steps[i], h.NewStatus)
		previous = h.NewStatus
	}
}

func TestTransition_SameStatusRejected(t *testing.T) {
	repo := newFakeProvisionRepo()
	svc := newTestService(repo, &fakeFileService{})

	created, err := svc.CreateProvision(employeeCtx(t, employeeA), validRequest())
	require.NoError(t, err)

	_, err = svc.Transition(managerCtx(t), provision.TransitionRequest{ID: created.ID, Status: "pending"})
	assert.ErrorIs(t, err, provision.ErrStatusUnchanged)
	assert.Empty(t, repo.history)
}

func TestTransition_RequiresManager(t *testing.T) {
	repo := newFakeProvisionRepo()
	svc := newTestService(repo, &fakeFileService{})
	ctx := employeeCtx(t, employeeA)

	created, err := svc.CreateProvision(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.Transition(ctx, provision.TransitionRequest{ID: created.ID, Status: "approved"})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestTransition_UnknownStatus(t *testing.T) {
	svc := newTestService(newFakeProvisionRepo(), &fakeFileService{})

	_, err := svc.Transition(managerCtx(t), provision.TransitionRequest{ID: uuid.NewString(), Status: "archived"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

// ===== READS =====

func TestGetProvision_HiddenFromOtherEmployees(t *testing.T) {
	svc := newTestService(newFakeProvisionRepo(), &fakeFileService{})

	created, err := svc.CreateProvision(employeeCtx(t, employeeA), validRequest())
	require.NoError(t, err)

	_, err = svc.GetProvision(employeeCtx(t, employeeB), created.ID)
	assert.ErrorIs(t, err, provision.ErrProvisionNotFound)

	_, err = svc.GetProvision(managerCtx(t), created.ID)
	assert.NoError(t, err)
}

func TestListProvisions_EmployeeSeesOwnOnly(t *testing.T) {
	svc := newTestService(newFakeProvisionRepo(), &fakeFileService{})

	_, err := svc.CreateProvision(employeeCtx(t, employeeA), validRequest())
	require.NoError(t, err)
	_, err = svc.CreateProvision(employeeCtx(t, employeeB), validRequest())
	require.NoError(t, err)

	own, err := svc.ListProvisions(employeeCtx(t, employeeA), provision.ProvisionFilter{EmployeeID: ptr(employeeB)})
	require.NoError(t, err)
	require.Len(t, own.Provisions, 1)
	assert.Equal(t, employeeA, own.Provisions[0].EmployeeID)
	assert.Equal(t, int64(1), own.TotalCount)

	all, err := svc.ListProvisions(managerCtx(t), provision.ProvisionFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Provisions, 2)
}

func TestUpdateProvision_RevalidatesTimes(t *testing.T) {
	repo := newFakeProvisionRepo()
	svc := newTestService(repo, &fakeFileService{})

	created, err := svc.CreateProvision(employeeCtx(t, employeeA), validRequest())
	require.NoError(t, err)

	ctx := managerCtx(t)
	_, err = svc.UpdateProvision(ctx, provision.UpdateProvisionRequest{ID: created.ID, LunchInTime: ptr("11:00")})
	assert.ErrorIs(t, err, provision.ErrInvalidTimeOrder)

	resp, err := svc.UpdateProvision(ctx, provision.UpdateProvisionRequest{ID: created.ID, DepartureTime: ptr("18:00")})
	require.NoError(t, err)
	assert.Equal(t, "9.00", resp.WorkedHours)
	assert.Equal(t, provision.StatusPending, resp.Status)
}

func TestUpdateProvision_PartialLunchRejected(t *testing.T) {
	repo := newFakeProvisionRepo()
	svc := newTestService(repo, &fakeFileService{})

	req := validRequest()
	req.LunchOutTime, req.LunchInTime = nil, nil
	created, err := svc.CreateProvision(employeeCtx(t, employeeA), req)
	require.NoError(t, err)

	ctx := managerCtx(t)
	_, err = svc.UpdateProvision(ctx, provision.UpdateProvisionRequest{ID: created.ID, LunchInTime: ptr("20:00")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "lunch_in_time", verrs[0].Field)

	stored := repo.records[created.ID]
	assert.Nil(t, stored.LunchOut)
	assert.Nil(t, stored.LunchIn)

	// Clearing one side of an existing lunch is rejected the same way
	withLunch := validRequest()
	withLunch.Date = "2024-03-06"
	second, err := svc.CreateProvision(employeeCtx(t, employeeA), withLunch)
	require.NoError(t, err)
	_, err = svc.UpdateProvision(ctx, provision.UpdateProvisionRequest{ID: second.ID, ClearLunch: true, DepartureTime: ptr("18:00")})
	require.NoError(t, err)
	_, err = svc.UpdateProvision(ctx, provision.UpdateProvisionRequest{ID: second.ID, LunchOutTime: ptr("12:00")})
	require.ErrorAs(t, err, &verrs)
}

func TestOpenProofPhoto(t *testing.T) {
	repo := newFakeProvisionRepo()
	files := &fakeFileService{}
	svc := newTestService(repo, files)
	ctx := employeeCtx(t, employeeA)

	without, err := svc.CreateProvision(ctx, validRequest())
	require.NoError(t, err)
	_, _, err = svc.OpenProofPhoto(ctx, without.ID)
	assert.ErrorIs(t, err, provision.ErrPhotoNotFound)

	req := validRequest()
	req.Date = "2024-03-06"
	req.File = nopFile{strings.NewReader("jpeg bytes")}
	with, err := svc.CreateProvision(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, with.ProofPhotoURL)
	assert.Equal(t, "http://localhost:8080/api/v1/files/provisions/2024-03-06/"+employeeA+".jpg", *with.ProofPhotoURL)

	rc, contentType, err := svc.OpenProofPhoto(ctx, with.ID)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "image/jpeg", contentType)
}

// nopFile satisfies multipart.File for upload tests.
type nopFile struct {
	*strings.Reader
}

func (nopFile) Close() error { return nil }
