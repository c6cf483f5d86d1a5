package contacts

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/store"
)

type fakeNotifier struct {
	got []Contact
	err error
}

func (f *fakeNotifier) NotifyContact(_ context.Context, c Contact) error {
	f.got = append(f.got, c)
	return f.err
}

func newService(t *testing.T, n Notifier) *Service {
	t.Helper()
	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "contacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(NewStore(db), n, nil)
}

func validRequest() CreateRequest {
	return CreateRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Message:   "Hello, this is a test.",
	}
}

func TestSubmitStoresAndNotifies(t *testing.T) {
	n := &fakeNotifier{}
	svc := newService(t, n)

	c, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, StatusNew, c.Status)
	assert.False(t, c.CreatedAt.IsZero())
	require.Len(t, n.got, 1)
	assert.Equal(t, "John Doe", n.got[0].FullName())

	loaded, err := svc.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Email, loaded.Email)
	assert.Equal(t, c.Message, loaded.Message)
	assert.True(t, c.CreatedAt.Equal(loaded.CreatedAt))
}

func TestSubmitTrimsInput(t *testing.T) {
	svc := newService(t, nil)
	req := validRequest()
	req.FirstName = "  John  "
	req.Email = " john@example.com "

	c, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "John", c.FirstName)
	assert.Equal(t, "john@example.com", c.Email)
}

func TestSubmitSurvivesNotifierFailure(t *testing.T) {
	svc := newService(t, &fakeNotifier{err: errors.New("smtp down")})

	c, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
}

func TestSubmitValidation(t *testing.T) {
	svc := newService(t, nil)

	cases := map[string]struct {
		mutate func(*CreateRequest)
		field  string
	}{
		"first name blank": {func(r *CreateRequest) { r.FirstName = "   " }, "first_name"},
		"last name long":   {func(r *CreateRequest) { r.LastName = strings.Repeat("x", 101) }, "last_name"},
		"email shape":      {func(r *CreateRequest) { r.Email = "not-an-email" }, "email"},
		"message short":    {func(r *CreateRequest) { r.Message = "  too short " }, "message"},
		"first name crlf":  {func(r *CreateRequest) { r.FirstName = "Eve\r\nBcc: victim@example.net" }, "first_name"},
		"last name tab":    {func(r *CreateRequest) { r.LastName = "Doe\tX" }, "last_name"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Submit(context.Background(), req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		c, err := svc.Submit(ctx, validRequest())
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	_, err := svc.UpdateStatus(ctx, ids[0], StatusUpdate{Status: StatusRead})
	require.NoError(t, err)

	all, err := svc.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)

	read, err := svc.List(ctx, ListOptions{Status: StatusRead})
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, ids[0], read[0].ID)

	page, err := svc.List(ctx, ListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)

	_, err = svc.List(ctx, ListOptions{Status: "archived"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{StatusNew: 2, StatusRead: 1, StatusReplied: 0}, counts)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	c, err := svc.Submit(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, c.ID, StatusUpdate{Status: "spam"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	updated, err := svc.UpdateStatus(ctx, c.ID, StatusUpdate{Status: StatusReplied})
	require.NoError(t, err)
	assert.Equal(t, StatusReplied, updated.Status)

	_, err = svc.UpdateStatus(ctx, 9999, StatusUpdate{Status: StatusRead})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, c.ID))
	require.ErrorIs(t, svc.Delete(ctx, c.ID), ErrNotFound)
	_, err = svc.Get(ctx, c.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
