package domain

// OrderStatus представляет статус заказа
type OrderStatus string

const (
	OrderStatusCreated                OrderStatus = "order_created"
	OrderStatusRequestUnderReview     OrderStatus = "request_under_review"
	OrderStatusRequestApproved        OrderStatus = "request_approved"
	OrderStatusRequestRejected        OrderStatus = "request_rejected"
	OrderStatusMeetingScheduled       OrderStatus = "meeting_scheduled"
	OrderStatusMeetingCompleted       OrderStatus = "meeting_completed"
	OrderStatusMeetingMissedClient    OrderStatus = "meeting_missed_client"
	OrderStatusMeetingMissedOurTeam   OrderStatus = "meeting_missed_our_team"
	OrderStatusReschedulingRequired   OrderStatus = "rescheduling_required"
	OrderStatusConfigurationProgress  OrderStatus = "configuration_in_progress"
	OrderStatusConfigurationCompleted OrderStatus = "configuration_completed"
	OrderStatusConfigurationBlocked   OrderStatus = "configuration_blocked"
	OrderStatusTestingProgress        OrderStatus = "testing_in_progress"
	OrderStatusTestingCompleted       OrderStatus = "testing_completed"
	OrderStatusTestingFailed          OrderStatus = "testing_failed"
	OrderStatusPendingClientApproval  OrderStatus = "pending_client_approval"
	OrderStatusApprovedByClient       OrderStatus = "approved_by_client"
	OrderStatusRejectedByClient       OrderStatus = "rejected_by_client"
	OrderStatusInvoiceSent            OrderStatus = "invoice_sent"
	OrderStatusPaymentPending         OrderStatus = "payment_pending"
	OrderStatusPaymentCompleted       OrderStatus = "payment_completed"
	OrderStatusPaymentFailed          OrderStatus = "payment_failed"
	OrderStatusVendorPaymentPending   OrderStatus = "vendor_payment_pending"
	OrderStatusVendorPaymentCompleted OrderStatus = "vendor_payment_completed"
	OrderStatusCompletedSuccessfully  OrderStatus = "order_completed_successfully"
	OrderStatusCancelledClient        OrderStatus = "order_cancelled_client"
	OrderStatusCancelledInternal      OrderStatus = "order_cancelled_internal"
	OrderStatusOnHold                 OrderStatus = "order_on_hold"
)

// allStatuses в порядке жизненного цикла
var allStatuses = []OrderStatus{
	OrderStatusCreated,
	OrderStatusRequestUnderReview,
	OrderStatusRequestApproved,
	OrderStatusRequestRejected,
	OrderStatusMeetingScheduled,
	OrderStatusMeetingCompleted,
	OrderStatusMeetingMissedClient,
	OrderStatusMeetingMissedOurTeam,
	OrderStatusReschedulingRequired,
	OrderStatusConfigurationProgress,
	OrderStatusConfigurationCompleted,
	OrderStatusConfigurationBlocked,
	OrderStatusTestingProgress,
	OrderStatusTestingCompleted,
	OrderStatusTestingFailed,
	OrderStatusPendingClientApproval,
	OrderStatusApprovedByClient,
	OrderStatusRejectedByClient,
	OrderStatusInvoiceSent,
	OrderStatusPaymentPending,
	OrderStatusPaymentCompleted,
	OrderStatusPaymentFailed,
	OrderStatusVendorPaymentPending,
	OrderStatusVendorPaymentCompleted,
	OrderStatusCompletedSuccessfully,
	OrderStatusCancelledClient,
	OrderStatusCancelledInternal,
	OrderStatusOnHold,
}

var terminalStatuses = map[OrderStatus]bool{
	OrderStatusRequestRejected:       true,
	OrderStatusMeetingMissedClient:   true,
	OrderStatusMeetingMissedOurTeam:  true,
	OrderStatusRejectedByClient:      true,
	OrderStatusCompletedSuccessfully: true,
	OrderStatusCancelledClient:       true,
	OrderStatusCancelledInternal:     true,
}

// forwardTransitions содержит основной путь заказа и петли повтора.
// Переходы в hold и отмену добавляются в CanTransition для всех нетерминальных статусов.
var forwardTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:                {OrderStatusRequestUnderReview},
	OrderStatusRequestUnderReview:     {OrderStatusRequestApproved, OrderStatusRequestRejected},
	OrderStatusRequestApproved:        {OrderStatusMeetingScheduled},
	OrderStatusMeetingScheduled:       {OrderStatusMeetingCompleted, OrderStatusMeetingMissedClient, OrderStatusMeetingMissedOurTeam, OrderStatusReschedulingRequired},
	OrderStatusReschedulingRequired:   {OrderStatusMeetingScheduled},
	OrderStatusMeetingCompleted:       {OrderStatusConfigurationProgress},
	OrderStatusConfigurationProgress:  {OrderStatusConfigurationCompleted, OrderStatusConfigurationBlocked},
	OrderStatusConfigurationBlocked:   {OrderStatusConfigurationProgress},
	OrderStatusConfigurationCompleted: {OrderStatusTestingProgress},
	OrderStatusTestingProgress:        {OrderStatusTestingCompleted, OrderStatusTestingFailed},
	OrderStatusTestingFailed:          {OrderStatusConfigurationProgress, OrderStatusTestingProgress},
	OrderStatusTestingCompleted:       {OrderStatusPendingClientApproval},
	OrderStatusPendingClientApproval:  {OrderStatusApprovedByClient, OrderStatusRejectedByClient},
	OrderStatusApprovedByClient:       {OrderStatusInvoiceSent},
	OrderStatusInvoiceSent:            {OrderStatusPaymentPending},
	OrderStatusPaymentPending:         {OrderStatusPaymentCompleted, OrderStatusPaymentFailed},
	OrderStatusPaymentFailed:          {OrderStatusPaymentPending},
	OrderStatusPaymentCompleted:       {OrderStatusVendorPaymentPending},
	OrderStatusVendorPaymentPending:   {OrderStatusVendorPaymentCompleted},
	OrderStatusVendorPaymentCompleted: {OrderStatusCompletedSuccessfully},
}

// AllStatuses возвращает все статусы заказа в порядке жизненного цикла
func AllStatuses() []OrderStatus {
	out := make([]OrderStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// IsValid проверяет, что статус входит в перечень известных
func (s OrderStatus) IsValid() bool {
	for _, st := range allStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// IsTerminal сообщает, что из статуса нет выхода
func (s OrderStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

// LedgerExempt сообщает, что для заказа в этом статусе леджер еще не формируется
func (s OrderStatus) LedgerExempt() bool {
	return s == OrderStatusCreated || s == OrderStatusRequestUnderReview
}

// CanTransition проверяет допустимость перехода from -> to по таблице переходов
func CanTransition(from, to OrderStatus) bool {
	if !from.IsValid() || !to.IsValid() || from.IsTerminal() {
		return false
	}

	switch to {
	case OrderStatusOnHold, OrderStatusCancelledClient, OrderStatusCancelledInternal:
		return from != to
	}

	// Из hold можно вернуться в любой нетерминальный статус
	if from == OrderStatusOnHold {
		return !to.IsTerminal()
	}

	for _, next := range forwardTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses возвращает статусы, в которые допустим переход из s
func NextStatuses(s OrderStatus) []OrderStatus {
	var out []OrderStatus
	for _, to := range allStatuses {
		if CanTransition(s, to) {
			out = append(out, to)
		}
	}
	return out
}

// TransitionPolicy определяет, проверяются ли переходы статусов
type TransitionPolicy string

const (
	TransitionPolicyStrict     TransitionPolicy = "strict"
	TransitionPolicyPermissive TransitionPolicy = "permissive"
)

// Allows проверяет переход с учетом политики
func (p TransitionPolicy) Allows(from, to OrderStatus) bool {
	if !to.IsValid() {
		return false
	}
	if p == TransitionPolicyPermissive {
		return true
	}
	return CanTransition(from, to)
}

// Next возвращает статусы, в которые политика разрешает перейти из s
func (p TransitionPolicy) Next(s OrderStatus) []OrderStatus {
	if p != TransitionPolicyPermissive {
		return NextStatuses(s)
	}
	out := make([]OrderStatus, 0, len(allStatuses)-1)
	for _, to := range allStatuses {
		if to != s {
			out = append(out, to)
		}
	}
	return out
}
