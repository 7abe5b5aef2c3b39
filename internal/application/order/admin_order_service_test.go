package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/turkmasale/backend/internal/domain/cart"
	"github.com/turkmasale/backend/internal/domain/order"
	"github.com/turkmasale/backend/internal/domain/shared"
)

// recordingNotifier counts completion notifications without real delivery
type recordingNotifier struct {
	mu     sync.Mutex
	calls  []uint
	err    error
	fired  chan struct{}
}

func newRecordingNotifier(err error) *recordingNotifier {
	return &recordingNotifier{err: err, fired: make(chan struct{}, 8)}
}

func (n *recordingNotifier) NotifyOrderCompleted(_ context.Context, o *order.Order) (string, error) {
	n.mu.Lock()
	n.calls = append(n.calls, o.ID)
	n.mu.Unlock()
	n.fired <- struct{}{}
	if n.err != nil {
		return "", n.err
	}
	return "https://wa.me/919876543210", nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func (n *recordingNotifier) wait(t *testing.T) {
	t.Helper()
	select {
	case <-n.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("notification did not fire")
	}
}

func newTestOrder(t *testing.T, id uint) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.Contact{
		FullName:    "Asha Verma",
		Phone:       "9876543210",
		Pincode:     "263139",
		City:        "Haldwani",
		FullAddress: "12 Mall Road",
	}, []cart.Item{
		{Slug: "garam-masala", Title: "Garam Masala", Size: "100g", Price: decimal.NewFromInt(80), Quantity: 2},
	})
	require.NoError(t, err)
	o.ID = id
	return o
}

func TestAdminOrderService_Get(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewAdminOrderService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("FindByID", ctx, uint(3)).Return(newTestOrder(t, 3), nil)

	result, err := service.Get(ctx, 3)

	require.NoError(t, err)
	assert.Equal(t, uint(3), result.ID)
	assert.Equal(t, "Asha Verma", result.FullName)
	assert.Len(t, result.Items, 1)
	mockRepo.AssertExpectations(t)
}

func TestAdminOrderService_Get_NotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewAdminOrderService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("FindByID", ctx, uint(99)).Return(nil, shared.ErrNotFound)

	result, err := service.Get(ctx, 99)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAdminOrderService_List_NewestFirst(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewAdminOrderService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	expected := shared.Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "id",
		OrderDir: "desc",
		Filters:  map[string]interface{}{},
	}
	orders := []order.Order{*newTestOrder(t, 2), *newTestOrder(t, 1)}
	mockRepo.On("FindAll", ctx, expected).Return(orders, nil)
	mockRepo.On("Count", ctx, expected).Return(int64(2), nil)

	result, total, err := service.List(ctx, OrderListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, uint(2), result[0].ID)
	mockRepo.AssertExpectations(t)
}

func TestAdminOrderService_List_StatusAndSearch(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewAdminOrderService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	expected := shared.Filter{
		Page:     2,
		PageSize: 10,
		OrderBy:  "id",
		OrderDir: "desc",
		Search:   "asha",
		Filters:  map[string]interface{}{"status": "Pending"},
	}
	mockRepo.On("FindAll", ctx, expected).Return([]order.Order{}, nil)
	mockRepo.On("Count", ctx, expected).Return(int64(0), nil)

	_, _, err := service.List(ctx, OrderListFilter{Status: "Pending", Search: "asha", Page: 2, PageSize: 10})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAdminOrderService_List_AllStatusMeansNoFilter(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewAdminOrderService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	expected := shared.Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "id",
		OrderDir: "desc",
		Filters:  map[string]interface{}{},
	}
	mockRepo.On("FindAll", ctx, expected).Return([]order.Order{}, nil)
	mockRepo.On("Count", ctx, expected).Return(int64(0), nil)

	_, _, err := service.List(ctx, OrderListFilter{Status: "All"})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAdminOrderService_SetStatus_CompletedNotifiesOnce(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier(nil)
	service := NewAdminOrderService(mockRepo, notifier, zap.NewNop())

	ctx := context.Background()
	o := newTestOrder(t, 5)
	mockRepo.On("FindByID", ctx, uint(5)).Return(o, nil)
	mockRepo.On("Save", ctx, o).Return(nil)

	result, err := service.SetStatus(ctx, 5, "Completed")

	require.NoError(t, err)
	assert.Equal(t, "Completed", result.Status)

	notifier.wait(t)
	assert.Equal(t, 1, notifier.count())
	mockRepo.AssertExpectations(t)
}

func TestAdminOrderService_SetStatus_IdempotentRepeatDoesNotNotify(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier(nil)
	service := NewAdminOrderService(mockRepo, notifier, zap.NewNop())

	ctx := context.Background()
	o := newTestOrder(t, 5)
	_, err := o.SetStatus(order.OrderStatusCompleted)
	require.NoError(t, err)

	mockRepo.On("FindByID", ctx, uint(5)).Return(o, nil)
	mockRepo.On("Save", ctx, o).Return(nil)

	result, err := service.SetStatus(ctx, 5, "Completed")

	require.NoError(t, err)
	assert.Equal(t, "Completed", result.Status)

	// give any stray goroutine a moment to fire
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, notifier.count())
	mockRepo.AssertExpectations(t)
}

func TestAdminOrderService_SetStatus_BackToPendingDoesNotNotify(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier(nil)
	service := NewAdminOrderService(mockRepo, notifier, zap.NewNop())

	ctx := context.Background()
	o := newTestOrder(t, 5)
	_, err := o.SetStatus(order.OrderStatusCompleted)
	require.NoError(t, err)

	mockRepo.On("FindByID", ctx, uint(5)).Return(o, nil)
	mockRepo.On("Save", ctx, o).Return(nil)

	result, err := service.SetStatus(ctx, 5, "Pending")

	require.NoError(t, err)
	assert.Equal(t, "Pending", result.Status)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, notifier.count())
}

func TestAdminOrderService_SetStatus_InvalidStatus(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := NewAdminOrderService(mockRepo, nil, zap.NewNop())

	ctx := context.Background()
	mockRepo.On("FindByID", ctx, uint(5)).Return(newTestOrder(t, 5), nil)

	result, err := service.SetStatus(ctx, 5, "Shipped")

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdminOrderService_SetStatus_NotificationFailureDoesNotRollBack(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier(assert.AnError)
	service := NewAdminOrderService(mockRepo, notifier, zap.NewNop())

	ctx := context.Background()
	o := newTestOrder(t, 5)
	mockRepo.On("FindByID", ctx, uint(5)).Return(o, nil)
	mockRepo.On("Save", ctx, o).Return(nil)

	result, err := service.SetStatus(ctx, 5, "Completed")

	require.NoError(t, err)
	assert.Equal(t, "Completed", result.Status)
	notifier.wait(t)
	mockRepo.AssertExpectations(t)
}

func TestAdminOrderService_SetStatus_SaveFailureSkipsNotification(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	notifier := newRecordingNotifier(nil)
	service := NewAdminOrderService(mockRepo, notifier, zap.NewNop())

	ctx := context.Background()
	o := newTestOrder(t, 5)
	mockRepo.On("FindByID", ctx, uint(5)).Return(o, nil)
	mockRepo.On("Save", ctx, o).Return(assert.AnError)

	result, err := service.SetStatus(ctx, 5, "Completed")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, assert.AnError)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, notifier.count())
}
