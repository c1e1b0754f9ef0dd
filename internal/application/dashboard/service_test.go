package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cryptokey/dashboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) ListAll(ctx context.Context) ([]domain.UserRecord, error) {
	args := m.Called(ctx)
	if recs, _ := args.Get(0).([]domain.UserRecord); recs != nil {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.UserRecord, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.UserRecord); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.UserRecord); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEmailLog struct{ mock.Mock }

func (m *mockEmailLog) ListByUser(ctx context.Context, userID string) ([]domain.DeliveryReceipt, error) {
	args := m.Called(ctx, userID)
	if recs, _ := args.Get(0).([]domain.DeliveryReceipt); recs != nil {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDispatcher struct{ mock.Mock }

func (m *mockDispatcher) Send(ctx context.Context, recipient string, kind domain.NotificationKind, userID string) (*domain.DeliveryReceipt, error) {
	args := m.Called(ctx, recipient, kind, userID)
	if r, _ := args.Get(0).(*domain.DeliveryReceipt); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

var admin = Caller{UserID: "admin-id", Email: domain.AdminEmail}

func newTestService(users *mockUserStore, d *mockDispatcher, now time.Time) Service {
	svc := NewService(users, &mockEmailLog{}, d).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *time.Time { return &t }

// --- List ---

func TestList_AdminSeesAllSortedByRegistrationDescending(t *testing.T) {
	users := &mockUserStore{}
	users.On("ListAll", mock.Anything).Return([]domain.UserRecord{
		{UserID: "old", RegisteredAt: ts("2026-01-01T00:00:00Z")},
		{UserID: "newest", RegisteredAt: ts("2026-03-01T00:00:00Z")},
		{UserID: "middle", RegisteredAt: ts("2026-02-01T00:00:00Z")},
	}, nil)

	svc := NewService(users, &mockEmailLog{}, &mockDispatcher{})
	records, err := svc.List(context.Background(), admin)

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "newest", records[0].UserID)
	assert.Equal(t, "middle", records[1].UserID)
	assert.Equal(t, "old", records[2].UserID)
}

func TestList_NonAdminSeesOwnRecordOnly(t *testing.T) {
	users := &mockUserStore{}
	users.On("Get", mock.Anything, "u1").Return(&domain.UserRecord{UserID: "u1", Email: "me@x.com"}, nil)

	svc := NewService(users, &mockEmailLog{}, &mockDispatcher{})
	records, err := svc.List(context.Background(), Caller{UserID: "u1", Email: "me@x.com"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "u1", records[0].UserID)
	users.AssertNotCalled(t, "ListAll")
}

func TestList_NonAdminMissingRecord(t *testing.T) {
	users := &mockUserStore{}
	users.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := NewService(users, &mockEmailLog{}, &mockDispatcher{})
	_, err := svc.List(context.Background(), Caller{UserID: "ghost", Email: "ghost@x.com"})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- ResendWelcome ---

func TestResendWelcome_NonAdminForbidden(t *testing.T) {
	users := &mockUserStore{}
	d := &mockDispatcher{}
	svc := NewService(users, &mockEmailLog{}, d)

	_, err := svc.ResendWelcome(context.Background(), Caller{UserID: "u1", Email: "me@x.com"}, "other@x.com")

	assert.True(t, errors.Is(err, domain.ErrForbidden))
	users.AssertNotCalled(t, "GetByEmail")
	d.AssertNotCalled(t, "Send")
}

func TestResendWelcome_WithinWindow_Sends(t *testing.T) {
	registered := ts("2026-01-10T12:00:00Z")
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "new@x.com").Return(&domain.UserRecord{
		UserID: "u1", Email: "new@x.com", RegisteredAt: registered,
	}, nil)
	d := &mockDispatcher{}
	d.On("Send", mock.Anything, "new@x.com", domain.KindWelcome, "u1").Return(&domain.DeliveryReceipt{}, nil)

	svc := newTestService(users, d, registered.Add(time.Hour))
	sent, err := svc.ResendWelcome(context.Background(), admin, "new@x.com")

	require.NoError(t, err)
	assert.True(t, sent)
	d.AssertExpectations(t)
}

func TestResendWelcome_WindowBoundary(t *testing.T) {
	registered := ts("2026-01-10T12:00:00Z")

	cases := []struct {
		name     string
		now      time.Time
		eligible bool
	}{
		{"one second inside", registered.Add(24*time.Hour - time.Second), true},
		{"exactly 24h", registered.Add(24 * time.Hour), true},
		{"one second past", registered.Add(24*time.Hour + time.Second), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &domain.UserRecord{UserID: "u1", Email: "new@x.com", RegisteredAt: registered}
			assert.Equal(t, tc.eligible, EligibleForWelcomeResend(rec, tc.now))
		})
	}
}

func TestResendWelcome_PastWindow_BadRequest(t *testing.T) {
	registered := ts("2026-01-10T12:00:00Z")
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "old@x.com").Return(&domain.UserRecord{
		UserID: "u1", Email: "old@x.com", RegisteredAt: registered,
	}, nil)
	d := &mockDispatcher{}

	svc := newTestService(users, d, registered.Add(25*time.Hour))
	_, err := svc.ResendWelcome(context.Background(), admin, "old@x.com")

	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	d.AssertNotCalled(t, "Send")
}

func TestResendWelcome_SameDayDuplicateSuppressed(t *testing.T) {
	registered := ts("2026-01-10T02:00:00Z")
	now := ts("2026-01-10T12:00:00Z")
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "new@x.com").Return(&domain.UserRecord{
		UserID: "u1", Email: "new@x.com",
		RegisteredAt:  registered,
		LastEmailSent: ptr(ts("2026-01-10T03:00:00Z")),
	}, nil)
	d := &mockDispatcher{}

	svc := newTestService(users, d, now)
	sent, err := svc.ResendWelcome(context.Background(), admin, "new@x.com")

	require.NoError(t, err)
	assert.False(t, sent)
	d.AssertNotCalled(t, "Send")
}

func TestResendWelcome_PreviousDaySendDoesNotSuppress(t *testing.T) {
	registered := ts("2026-01-10T20:00:00Z")
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "new@x.com").Return(&domain.UserRecord{
		UserID: "u1", Email: "new@x.com",
		RegisteredAt:  registered,
		LastEmailSent: ptr(ts("2026-01-10T21:00:00Z")),
	}, nil)
	d := &mockDispatcher{}
	d.On("Send", mock.Anything, "new@x.com", domain.KindWelcome, "u1").Return(&domain.DeliveryReceipt{}, nil)

	// Next UTC day but still inside the 24h window.
	svc := newTestService(users, d, ts("2026-01-11T10:00:00Z"))
	sent, err := svc.ResendWelcome(context.Background(), admin, "new@x.com")

	require.NoError(t, err)
	assert.True(t, sent)
	d.AssertExpectations(t)
}

func TestResendWelcome_UnknownEmail(t *testing.T) {
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)

	svc := NewService(users, &mockEmailLog{}, &mockDispatcher{})
	_, err := svc.ResendWelcome(context.Background(), admin, "ghost@x.com")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestResendWelcome_DispatchFailureSurfaced(t *testing.T) {
	registered := ts("2026-01-10T12:00:00Z")
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "new@x.com").Return(&domain.UserRecord{
		UserID: "u1", Email: "new@x.com", RegisteredAt: registered,
	}, nil)
	d := &mockDispatcher{}
	d.On("Send", mock.Anything, "new@x.com", domain.KindWelcome, "u1").Return(nil, errors.New("provider down"))

	svc := newTestService(users, d, registered.Add(time.Hour))
	sent, err := svc.ResendWelcome(context.Background(), admin, "new@x.com")

	require.Error(t, err)
	assert.False(t, sent)
}

// --- Emails ---

func TestEmails_AdminSeesAnyHistory(t *testing.T) {
	log := &mockEmailLog{}
	log.On("ListByUser", mock.Anything, "u1").Return([]domain.DeliveryReceipt{
		{ReceiptID: "r2", UserID: "u1", Kind: domain.KindWalletCreated},
		{ReceiptID: "r1", UserID: "u1", Kind: domain.KindWelcome},
	}, nil)

	svc := NewService(&mockUserStore{}, log, &mockDispatcher{})
	receipts, err := svc.Emails(context.Background(), admin, "u1")

	require.NoError(t, err)
	assert.Len(t, receipts, 2)
}

func TestEmails_OwnHistoryAllowed(t *testing.T) {
	log := &mockEmailLog{}
	log.On("ListByUser", mock.Anything, "u1").Return([]domain.DeliveryReceipt{{ReceiptID: "r1"}}, nil)

	svc := NewService(&mockUserStore{}, log, &mockDispatcher{})
	receipts, err := svc.Emails(context.Background(), Caller{UserID: "u1", Email: "me@x.com"}, "u1")

	require.NoError(t, err)
	assert.Len(t, receipts, 1)
}

func TestEmails_OtherUsersHistoryForbidden(t *testing.T) {
	log := &mockEmailLog{}

	svc := NewService(&mockUserStore{}, log, &mockDispatcher{})
	_, err := svc.Emails(context.Background(), Caller{UserID: "u1", Email: "me@x.com"}, "u2")

	assert.True(t, errors.Is(err, domain.ErrForbidden))
	log.AssertNotCalled(t, "ListByUser")
}
