package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"loandocs/internal/domain"
	"loandocs/internal/service"
	"loandocs/mocks"
)

func TestNotify_PersistsAndMirrorsToEmail(t *testing.T) {
	notifRepo := new(mocks.MockNotificationRepo)
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewNotificationService(notifRepo, userRepo, sender)

	userID := uuid.New()
	user := testUser(userID)

	var created *domain.Notification
	notifRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Notification)
		}).
		Return(nil)
	userRepo.On("GetByID", mock.Anything, userID).Return(user, nil)
	sender.On("SendNotificationEmail", mock.Anything, user.Email, user.FullName,
		"Document processed", "Your aadhaar document has been processed.").Return(nil)

	svc.Notify(context.Background(), userID, "Document processed", "Your aadhaar document has been processed.")

	require.NotNil(t, created)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Document processed", created.Title)
	assert.Equal(t, domain.NotificationTypeDocument, created.Type)
	assert.False(t, created.IsRead)

	sender.AssertExpectations(t)
}

func TestNotify_NilSenderSkipsEmail(t *testing.T) {
	notifRepo := new(mocks.MockNotificationRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewNotificationService(notifRepo, userRepo, nil)

	notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc.Notify(context.Background(), uuid.New(), "Document verified", "done")

	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestNotify_PersistFailureSkipsEmail(t *testing.T) {
	notifRepo := new(mocks.MockNotificationRepo)
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewNotificationService(notifRepo, userRepo, sender)

	notifRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	svc.Notify(context.Background(), uuid.New(), "Document rejected", "blurred")

	sender.AssertNotCalled(t, "SendNotificationEmail",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotify_EmailFailureIsSwallowed(t *testing.T) {
	notifRepo := new(mocks.MockNotificationRepo)
	userRepo := new(mocks.MockUserRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewNotificationService(notifRepo, userRepo, sender)

	userID := uuid.New()
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("GetByID", mock.Anything, userID).Return(testUser(userID), nil)
	sender.On("SendNotificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("ses throttled"))

	// Must not panic or propagate.
	svc.Notify(context.Background(), userID, "Re-upload required", "please re-upload")
	notifRepo.AssertExpectations(t)
}

func TestMarkRead_DelegatesToRepo(t *testing.T) {
	notifRepo := new(mocks.MockNotificationRepo)
	svc := service.NewNotificationService(notifRepo, new(mocks.MockUserRepo), nil)

	userID := uuid.New()
	notifID := uuid.New()
	notifRepo.On("MarkRead", mock.Anything, userID, notifID).Return(domain.ErrNotificationNotFound)

	err := svc.MarkRead(context.Background(), userID, notifID)
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}
