package member

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/upstream"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListMembers(ctx context.Context, token string) ([]models.Member, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Member), args.Error(1)
}

func (m *MockRepository) GetMember(ctx context.Context, token, id string) (*models.Member, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockRepository) FindMemberByDNI(ctx context.Context, token, dni string) (*models.Member, error) {
	args := m.Called(ctx, token, dni)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockRepository) ListActiveMembers(ctx context.Context, token string) ([]models.Member, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Member), args.Error(1)
}

func (m *MockRepository) ListExpiredMembers(ctx context.Context, token string) ([]models.Member, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Member), args.Error(1)
}

func (m *MockRepository) CreateMember(ctx context.Context, token string, req models.CreateMemberRequest) (*models.Member, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockRepository) UpdateMember(ctx context.Context, token, id string, req models.UpdateMemberRequest) (*models.Member, error) {
	args := m.Called(ctx, token, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockRepository) RenewMembership(ctx context.Context, token string, req models.RenewMembershipRequest) (*models.Member, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockRepository) DeleteMember(ctx context.Context, token, id string) (*models.Member, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockRepository) RecomputeMemberStatuses(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) ListPlans(ctx context.Context, token string) ([]models.MembershipPlan, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MembershipPlan), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func expectCacheMiss(c *MockCache, key string) {
	c.On("Get", mock.Anything, key, mock.Anything).Return(false, nil)
	c.On("Set", mock.Anything, key, mock.Anything, mock.Anything).Return(nil)
}

func expectFamilyInvalidation(c *MockCache) {
	c.On("Invalidate", mock.Anything, KeyMembers).Return(nil)
	c.On("Invalidate", mock.Anything, KeyMembersActive).Return(nil)
	c.On("Invalidate", mock.Anything, KeyMembersExpired).Return(nil)
	c.On("InvalidatePrefix", mock.Anything, "member:").Return(nil)
}

func TestListCacheMissFetchesBackend(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	svc := New(repo, c, testLogger(), time.Minute)

	expectCacheMiss(c, KeyMembers)
	repo.On("ListMembers", mock.Anything, "tok").Return([]models.Member{
		{ID: "m1", FirstName: "Ana", MembershipStatus: models.MembershipActive, Status: models.MemberActive},
	}, nil)

	members, err := svc.List(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "m1", members[0].ID)

	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestListCacheHitSkipsBackend(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	svc := New(repo, c, testLogger(), time.Minute)

	c.On("Get", mock.Anything, KeyMembers, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*[]models.Member)
			*out = []models.Member{{ID: "cached"}}
		}).Return(true, nil)

	members, err := svc.List(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "cached", members[0].ID)

	repo.AssertNotCalled(t, "ListMembers", mock.Anything, mock.Anything)
}

func TestCreateInvalidatesFamily(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	svc := New(repo, c, testLogger(), time.Minute)

	req := models.CreateMemberRequest{
		FirstName:   "Ana",
		LastName:    "Ruiz",
		DNI:         "40222333",
		StartDate:   "2026-01-10",
		RenewalDate: "2026-02-10",
	}
	repo.On("CreateMember", mock.Anything, "tok", req).
		Return(&models.Member{ID: "m2", DNI: "40222333"}, nil)
	expectFamilyInvalidation(c)

	member, err := svc.Create(context.Background(), "tok", req)
	require.NoError(t, err)
	assert.Equal(t, "m2", member.ID)

	c.AssertExpectations(t)
}

func TestCreateFailureLeavesCacheUntouched(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	svc := New(repo, c, testLogger(), time.Minute)

	repo.On("CreateMember", mock.Anything, "tok", mock.Anything).
		Return(nil, &upstream.Error{StatusCode: http.StatusBadRequest, Message: "duplicate dni"})

	member, err := svc.Create(context.Background(), "tok", models.CreateMemberRequest{DNI: "40222333"})
	assert.Nil(t, member)
	assert.Error(t, err)

	c.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	c.AssertNotCalled(t, "InvalidatePrefix", mock.Anything, mock.Anything)
}

func TestDeleteInvalidatesFamily(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	svc := New(repo, c, testLogger(), time.Minute)

	repo.On("DeleteMember", mock.Anything, "tok", "m1").
		Return(&models.Member{ID: "m1"}, nil)
	expectFamilyInvalidation(c)

	_, err := svc.Delete(context.Background(), "tok", "m1")
	require.NoError(t, err)

	c.AssertExpectations(t)
}

func TestFindByDNIAbsenceIsNotAnError(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	svc := New(repo, c, testLogger(), time.Minute)

	repo.On("FindMemberByDNI", mock.Anything, "tok", "99999999").
		Return(nil, &upstream.Error{StatusCode: http.StatusNotFound, Message: "not found"})

	member, err := svc.FindByDNI(context.Background(), "tok", "99999999")
	require.NoError(t, err)
	assert.Nil(t, member)
}

func TestCheckInInfoEnabled(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	svc := New(repo, c, testLogger(), time.Minute)

	planID := "p1"
	repo.On("FindMemberByDNI", mock.Anything, "tok", "40222333").Return(&models.Member{
		ID:               "m1",
		FirstName:        "Ana",
		LastName:         "Ruiz",
		StartDate:        "2026-01-10",
		RenewalDate:      "2026-02-10",
		MembershipStatus: models.MembershipActive,
		MembershipPlanID: &planID,
		Status:           models.MemberActive,
	}, nil)
	repo.On("ListPlans", mock.Anything, "tok").Return([]models.MembershipPlan{
		{ID: "p1", Name: "Monthly Full", Duration: models.DurationMonthly, Price: 30},
	}, nil)

	info, err := svc.CheckInInfo(context.Background(), "tok", "40222333")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, StatusTextEnabled, info.MembershipStatusText)
	require.NotNil(t, info.PlanName)
	assert.Equal(t, "Monthly Full", *info.PlanName)
}

func TestCheckInInfoDisabledWhenExpired(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	svc := New(repo, c, testLogger(), time.Minute)

	repo.On("FindMemberByDNI", mock.Anything, "tok", "40222333").Return(&models.Member{
		ID:               "m1",
		MembershipStatus: models.MembershipExpired,
		Status:           models.MemberActive,
	}, nil)

	info, err := svc.CheckInInfo(context.Background(), "tok", "40222333")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, StatusTextDisabled, info.MembershipStatusText)
	assert.Nil(t, info.PlanName)

	repo.AssertNotCalled(t, "ListPlans", mock.Anything, mock.Anything)
}

func TestCheckInInfoDisabledWhenSuspended(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	svc := New(repo, c, testLogger(), time.Minute)

	repo.On("FindMemberByDNI", mock.Anything, "tok", "40222333").Return(&models.Member{
		ID:               "m1",
		MembershipStatus: models.MembershipActive,
		Status:           models.MemberSuspended,
	}, nil)

	info, err := svc.CheckInInfo(context.Background(), "tok", "40222333")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, StatusTextDisabled, info.MembershipStatusText)
}

func TestCheckInInfoUnknownDNI(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	svc := New(repo, c, testLogger(), time.Minute)

	repo.On("FindMemberByDNI", mock.Anything, "tok", "00000000").
		Return(nil, &upstream.Error{StatusCode: http.StatusNotFound, Message: "not found"})

	info, err := svc.CheckInInfo(context.Background(), "tok", "00000000")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestEffectiveStatusDerivation(t *testing.T) {
	svc := New(new(MockRepository), new(MockCache), testLogger(), time.Minute)

	tests := []struct {
		name   string
		member models.Member
		want   string
	}{
		{
			name:   "backend value wins",
			member: models.Member{MembershipStatus: models.MembershipExpired, RenewalDate: "2999-01-01"},
			want:   models.MembershipExpired,
		},
		{
			name:   "future renewal derives active",
			member: models.Member{RenewalDate: time.Now().AddDate(0, 1, 0).Format("2006-01-02")},
			want:   models.MembershipActive,
		},
		{
			name:   "past renewal derives expired",
			member: models.Member{RenewalDate: "2020-01-01"},
			want:   models.MembershipExpired,
		},
		{
			name:   "iso timestamp accepted",
			member: models.Member{RenewalDate: time.Now().AddDate(0, 1, 0).Format(time.RFC3339)},
			want:   models.MembershipActive,
		},
		{
			name:   "unparseable date treated as expired",
			member: models.Member{RenewalDate: "sometime"},
			want:   models.MembershipExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.effectiveStatus(tt.member))
		})
	}
}
