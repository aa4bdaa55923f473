package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"loandocs/internal/domain"
	"loandocs/internal/service"
	"loandocs/mocks"
)

func TestRecoveryWorker_DispatchesStalledDocuments(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	docService := new(mocks.MockDocumentService)

	stalled := []domain.Document{
		{ID: uuid.New(), Status: domain.DocStatusProcessing},
		{ID: uuid.New(), Status: domain.DocStatusPending},
	}

	var mu sync.Mutex
	processed := make(map[uuid.UUID]bool)

	docRepo.On("ClaimStalled", mock.Anything, 5*time.Minute, mock.Anything).Return(stalled, nil).Once()
	docRepo.On("ClaimStalled", mock.Anything, 5*time.Minute, mock.Anything).Return([]domain.Document{}, nil).Maybe()
	docService.On("ProcessDocument", mock.Anything, mock.AnythingOfType("*domain.Document")).
		Run(func(args mock.Arguments) {
			doc := args.Get(1).(*domain.Document)
			mu.Lock()
			processed[doc.ID] = true
			mu.Unlock()
		}).
		Return()

	worker := service.NewRecoveryWorker(docRepo, docService, service.RecoveryConfig{
		PollInterval: 10 * time.Millisecond,
		StalledAfter: 5 * time.Minute,
		Concurrency:  2,
		JobTimeout:   time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not shut down after context cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, processed[stalled[0].ID])
	assert.True(t, processed[stalled[1].ID])
}

func TestRecoveryWorker_ClaimErrorKeepsPolling(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	docService := new(mocks.MockDocumentService)

	docRepo.On("ClaimStalled", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("deadlock detected"))

	worker := service.NewRecoveryWorker(docRepo, docService, service.RecoveryConfig{
		PollInterval: 10 * time.Millisecond,
		StalledAfter: 5 * time.Minute,
		Concurrency:  1,
		JobTimeout:   time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not shut down after context cancel")
	}

	// Polling survived repeated claim errors.
	assert.GreaterOrEqual(t, len(docRepo.Calls), 2)
	docService.AssertNotCalled(t, "ProcessDocument", mock.Anything, mock.Anything)
}

func TestRecoveryWorker_RespectsConcurrencyLimit(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	docService := new(mocks.MockDocumentService)

	// The worker never asks for more documents than it has free slots.
	docRepo.On("ClaimStalled", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			limit := args.Int(2)
			assert.LessOrEqual(t, limit, 2)
			assert.Greater(t, limit, 0)
		}).
		Return([]domain.Document{}, nil)

	worker := service.NewRecoveryWorker(docRepo, docService, service.RecoveryConfig{
		PollInterval: 10 * time.Millisecond,
		StalledAfter: 5 * time.Minute,
		Concurrency:  2,
		JobTimeout:   time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()
	<-done
}
