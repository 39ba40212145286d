package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/scopetrack/internal/domain/activity"
	"github.com/rpggio/scopetrack/internal/domain/scope"
	"github.com/rpggio/scopetrack/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_ListByEntity(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}

	kind := activity.EntityContract
	want := []activity.Entry{
		{ID: "a1", EntityKind: kind, EntityID: "k1", Kind: activity.KindCreated, Description: "Contract 'X' created"},
		{ID: "a2", EntityKind: kind, EntityID: "k1", Kind: activity.KindStatusChanged, Description: "Contract 'X' status changed to Active"},
	}
	repo.On("Exists", ctx, kind, "k1").Return(true, nil)
	repo.On("List", ctx, activity.ListOptions{EntityKind: &kind, EntityID: "k1"}).Return(want, nil)

	svc := activity.NewService(repo, nil)
	got, err := svc.ListByEntity(ctx, kind, "k1")
	require.NoError(t, err)
	require.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestActivityService_ListByEntity_Validates(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	svc := activity.NewService(repo, nil)

	_, err := svc.ListByEntity(context.Background(), "Invoice", "x")
	require.ErrorIs(t, err, scope.ErrInvalidArgument)

	_, err = svc.ListByEntity(context.Background(), activity.EntityClient, "")
	require.ErrorIs(t, err, scope.ErrInvalidArgument)

	repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestActivityService_ListByEntity_UnknownEntity(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Exists", ctx, activity.EntityContract, "nope").Return(false, nil)

	svc := activity.NewService(repo, nil)
	entries, err := svc.ListByEntity(ctx, activity.EntityContract, "nope")
	require.ErrorIs(t, err, activity.ErrEntityNotFound)
	require.Equal(t, "Contract nope: entity not found", err.Error())
	require.Nil(t, entries)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestActivityService_ListByEntity_ExistsFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")
	repo := &mocks.ActivityRepository{}
	repo.On("Exists", ctx, activity.EntityClient, "c1").Return(false, boom)

	svc := activity.NewService(repo, nil)
	_, err := svc.ListByEntity(ctx, activity.EntityClient, "c1")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, activity.ErrEntityNotFound)
}

func TestActivityService_RecentWrapsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")
	repo := &mocks.ActivityRepository{}
	repo.On("List", ctx, activity.ListOptions{Newest: true, Limit: 5}).Return(nil, boom)

	svc := activity.NewService(repo, nil)
	_, err := svc.Recent(ctx, activity.ListOptions{Limit: 5})
	require.ErrorIs(t, err, boom)
}
