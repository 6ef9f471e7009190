package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	basesvc "github.com/ndip23/pressing-management-system-sub000/internal/api/base/service"
	customerModels "github.com/ndip23/pressing-management-system-sub000/internal/api/customer/models"
	deliveryModels "github.com/ndip23/pressing-management-system-sub000/internal/api/delivery/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/order/dto"
	"github.com/ndip23/pressing-management-system-sub000/internal/api/order/models"
	"github.com/ndip23/pressing-management-system-sub000/internal/common"
	"github.com/ndip23/pressing-management-system-sub000/internal/global"
	"github.com/ndip23/pressing-management-system-sub000/internal/logger"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification"
	"github.com/ndip23/pressing-management-system-sub000/internal/notification/dispatcher"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// orderStore các thao tác Mongo mà OrderService cần (BaseServiceMongoImpl thỏa mãn)
type orderStore interface {
	InsertOne(ctx context.Context, data models.Order) (models.Order, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (models.Order, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Order, error)
	UpdateOne(ctx context.Context, filter interface{}, set bson.M) (models.Order, error)
}

// CustomerLookup đọc khách hàng
type CustomerLookup interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*customerModels.Customer, error)
	GetForTenant(ctx context.Context, tenantID, id primitive.ObjectID) (*customerModels.Customer, error)
}

// NotificationDispatcher gửi thông báo vòng đời cho khách
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, customer *customerModels.Customer, scenario notification.Scenario, order *models.Order, extra map[string]interface{}) dispatcher.Outcome
}

// HistoryRecorder ghi lịch sử gửi thông báo
type HistoryRecorder interface {
	Record(ctx context.Context, h deliveryModels.DeliveryHistory) error
}

// ReceiptAllocator cấp số biên nhận
type ReceiptAllocator interface {
	NextReceiptNumber(ctx context.Context, now time.Time) (string, error)
}

// OrderService nghiệp vụ đơn hàng: tạo, thanh toán, đổi trạng thái (kèm hook thông báo) và
// truy vấn đơn quá hạn cho scanner
type OrderService struct {
	store      orderStore
	customers  CustomerLookup
	dispatcher NotificationDispatcher
	history    HistoryRecorder // optional
	receipts   ReceiptAllocator
	now        func() time.Time
}

// OrderServiceDeps các phụ thuộc của OrderService
type OrderServiceDeps struct {
	Customers  CustomerLookup
	Dispatcher NotificationDispatcher
	History    HistoryRecorder
	Receipts   ReceiptAllocator
}

// NewOrderService tạo service từ collection orders trong registry
func NewOrderService(deps OrderServiceDeps) (*OrderService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}
	return NewOrderServiceWithStore(basesvc.NewBaseServiceMongo[models.Order](col), deps), nil
}

// NewOrderServiceWithStore tạo service với store tùy ý
func NewOrderServiceWithStore(store orderStore, deps OrderServiceDeps) *OrderService {
	return &OrderService{
		store:      store,
		customers:  deps.Customers,
		dispatcher: deps.Dispatcher,
		history:    deps.History,
		receipts:   deps.Receipts,
		now:        time.Now,
	}
}

// SetClock thay đồng hồ (dùng trong test)
func (s *OrderService) SetClock(now func() time.Time) {
	s.now = now
}

// ====================================
// NHÓM 1: TẠO / ĐỌC ĐƠN
// ====================================

// Create tạo đơn mới: tính tài chính, cấp số biên nhận, trạng thái Pending
func (s *OrderService) Create(ctx context.Context, tenantID primitive.ObjectID, input *dto.OrderCreateInput) (*models.Order, error) {
	customerID, err := primitive.ObjectIDFromHex(input.CustomerID)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "customerId không hợp lệ", common.StatusBadRequest, nil)
	}
	if _, err := s.customers.GetForTenant(ctx, tenantID, customerID); err != nil {
		return nil, err
	}

	now := s.now()
	receipt, err := s.receipts.NextReceiptNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		TenantID:           tenantID,
		CustomerID:         customerID,
		ReceiptNumber:      receipt,
		Subtotal:           input.Subtotal,
		Discount:           models.Discount{Type: models.DiscountType(input.Discount.Type), Value: input.Discount.Value},
		AmountPaid:         input.AmountPaid,
		Status:             models.StatusPending,
		ExpectedPickupAt:   input.ExpectedPickupAt,
		NotificationMethod: notification.MethodNone,
		Notes:              strings.TrimSpace(input.Notes),
	}
	for _, it := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			Name:      strings.TrimSpace(it.Name),
			Service:   strings.TrimSpace(it.Service),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	if len(order.Items) > 0 {
		order.Subtotal = models.SubtotalOf(order.Items)
	}
	order.ApplyFinancials()

	created, err := s.store.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	logger.WithContext(ctx).WithFields(logrus.Fields{
		"orderId":       created.ID.Hex(),
		"tenantId":      tenantID.Hex(),
		"receiptNumber": created.ReceiptNumber,
	}).Info("🧾 [ORDER] Đã tạo đơn hàng")
	return &created, nil
}

// Get lấy đơn theo id trong phạm vi tenant
func (s *OrderService) Get(ctx context.Context, tenantID, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.store.FindOne(ctx, bson.M{"_id": id, "tenantId": tenantID}, nil)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ====================================
// NHÓM 2: THANH TOÁN / TRẠNG THÁI
// ====================================

// RecordPayment cộng thêm khoản thanh toán và tính lại isFullyPaid
func (s *OrderService) RecordPayment(ctx context.Context, tenantID, id primitive.ObjectID, amount float64) (*models.Order, error) {
	if amount <= 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Số tiền thanh toán phải lớn hơn 0", common.StatusBadRequest, nil)
	}
	order, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if order.Status == models.StatusCancelled {
		return nil, common.NewError(common.ErrCodeBusinessState, "Không thể thanh toán cho đơn đã hủy", common.StatusBadRequest, nil)
	}

	order.AmountPaid, _ = decimal.NewFromFloat(order.AmountPaid).Add(decimal.NewFromFloat(amount)).Float64()
	order.ApplyFinancials()

	updated, err := s.store.UpdateOne(ctx, bson.M{"_id": order.ID, "tenantId": tenantID}, bson.M{
		"amountPaid":  order.AmountPaid,
		"isFullyPaid": order.IsFullyPaid,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus đổi trạng thái đơn. Completed ghi actualPickupAt; Ready for Pickup kích hoạt
// thông báo tự động nếu đơn chưa được báo. Kết quả gửi không làm thất bại thao tác đổi trạng thái
func (s *OrderService) UpdateStatus(ctx context.Context, tenantID, id primitive.ObjectID, next models.OrderStatus) (*models.Order, error) {
	if !next.IsValid() {
		return nil, common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("Trạng thái %q không hợp lệ", next), common.StatusBadRequest, nil)
	}
	order, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if order.Status == next {
		return order, nil
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Không thể chuyển trạng thái từ %q sang %q", order.Status, next), common.StatusBadRequest, nil)
	}

	set := bson.M{"status": next}
	if next == models.StatusCompleted {
		set["actualPickupAt"] = s.now().UnixMilli()
	}

	// Điều kiện theo trạng thái cũ để hai request đồng thời không cùng chuyển một đơn
	updated, err := s.store.UpdateOne(ctx, bson.M{"_id": order.ID, "tenantId": tenantID, "status": order.Status}, set)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrCodeBusinessState, "Trạng thái đơn vừa được thay đổi bởi thao tác khác", common.StatusConflict, nil)
		}
		return nil, err
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"orderId":  updated.ID.Hex(),
		"tenantId": tenantID.Hex(),
		"from":     order.Status,
		"to":       next,
	}).Info("🧾 [ORDER] Đổi trạng thái đơn")

	if next == models.StatusReadyForPickup && !updated.Notified {
		return s.notifyReadyForPickup(ctx, &updated), nil
	}
	return &updated, nil
}

// ====================================
// NHÓM 3: HOOK THÔNG BÁO KHÁCH
// ====================================

// notifyReadyForPickup gửi thông báo tự động và ghi kết quả lên đơn.
// notified chỉ true khi gửi thành công; thất bại ghi failed-auto hoặc no-contact-auto
func (s *OrderService) notifyReadyForPickup(ctx context.Context, order *models.Order) *models.Order {
	log := logger.WithContext(ctx).WithFields(logrus.Fields{"orderId": order.ID.Hex(), "tenantId": order.TenantID.Hex()})

	customer, err := s.customers.GetByID(ctx, order.CustomerID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		log.WithError(err).Error("📣 [DISPATCH] Không đọc được khách hàng, bỏ qua thông báo tự động")
		return order
	}

	outcome := s.dispatcher.Dispatch(ctx, customer, notification.ScenarioReadyForPickup, order, nil)

	var method notification.Method
	switch {
	case outcome.Sent:
		method = notification.MethodFor(outcome.Method, false)
	case outcome.OptedOut:
		method = notification.MethodNone
	case outcome.NoContact || !customer.HasContact():
		method = notification.MethodNoContactAuto
	default:
		method = notification.MethodFailedAuto
	}

	s.recordHistory(ctx, order, notification.ScenarioReadyForPickup, outcome, method, false)

	updated, err := s.store.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{
		"notified":           outcome.Sent,
		"notificationMethod": method,
	})
	if err != nil {
		log.WithError(err).Error("📣 [DISPATCH] Không ghi được kết quả thông báo lên đơn")
		return order
	}
	return &updated
}

// NotifyManually nhắc khách thủ công (luôn được phép, bất kể notified). Thành công ghi
// notificationMethod = manual-<kênh>; thất bại giữ nguyên đơn và trả lỗi của Dispatcher
func (s *OrderService) NotifyManually(ctx context.Context, tenantID, id primitive.ObjectID, extra map[string]interface{}) (*models.Order, error) {
	order, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.GetByID(ctx, order.CustomerID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	outcome := s.dispatcher.Dispatch(ctx, customer, notification.ScenarioManualReminder, order, extra)
	if !outcome.Sent {
		s.recordHistory(ctx, order, notification.ScenarioManualReminder, outcome, order.NotificationMethod, true)
		return nil, common.NewNotificationError(outcome.Error, outcomeDetails(outcome))
	}

	method := notification.MethodFor(outcome.Method, true)
	s.recordHistory(ctx, order, notification.ScenarioManualReminder, outcome, method, true)

	updated, err := s.store.UpdateOne(ctx, bson.M{"_id": order.ID, "tenantId": tenantID}, bson.M{
		"notified":           true,
		"notificationMethod": method,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func outcomeDetails(o dispatcher.Outcome) map[string]interface{} {
	return map[string]interface{}{
		"dispatchId": o.DispatchID,
		"method":     o.Method,
		"noContact":  o.NoContact,
		"optedOut":   o.OptedOut,
	}
}

// recordHistory ghi DeliveryHistory; lỗi chỉ được log
func (s *OrderService) recordHistory(ctx context.Context, order *models.Order, scenario notification.Scenario, outcome dispatcher.Outcome, method notification.Method, manual bool) {
	if s.history == nil {
		return
	}
	status := deliveryModels.StatusFailed
	switch {
	case outcome.Sent:
		status = deliveryModels.StatusSent
	case outcome.OptedOut:
		status = deliveryModels.StatusSkipped
	}
	h := deliveryModels.DeliveryHistory{
		TenantID:   order.TenantID,
		OrderID:    order.ID,
		DispatchID: outcome.DispatchID,
		Scenario:   scenario,
		Channel:    outcome.Method,
		Method:     method,
		Recipient:  outcome.Recipient,
		Status:     status,
		Error:      outcome.Error,
		Manual:     manual,
	}
	if err := s.history.Record(ctx, h); err != nil {
		logger.WithContext(ctx).WithError(err).WithField("orderId", order.ID.Hex()).Warn("📣 [DISPATCH] Không ghi được delivery history")
	}
}

// ====================================
// NHÓM 4: TRUY VẤN CHO OVERDUE SCANNER
// ====================================

// FindImpendingOverdue đơn chưa đóng có hạn lấy đồ trong [from, to]
func (s *OrderService) FindImpendingOverdue(ctx context.Context, from, to time.Time, onlyUnflagged bool) ([]models.Order, error) {
	return s.store.Find(ctx, ImpendingOverdueFilter(from, to, onlyUnflagged), options.Find().SetSort(bson.D{{Key: "expectedPickupAt", Value: 1}}))
}

// FindActualOverdue đơn chưa đóng đã quá hạn lấy đồ
func (s *OrderService) FindActualOverdue(ctx context.Context, now time.Time, onlyUnflagged bool) ([]models.Order, error) {
	return s.store.Find(ctx, ActualOverdueFilter(now, onlyUnflagged), options.Find().SetSort(bson.D{{Key: "expectedPickupAt", Value: 1}}))
}

// MarkAdminNotified bật cờ đã cảnh báo admin cho đơn
func (s *OrderService) MarkAdminNotified(ctx context.Context, orderID primitive.ObjectID, kind AlertKind) error {
	_, err := s.store.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{kind.FlagField(): true})
	return err
}
