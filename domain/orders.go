package domain

// Order statuses that count as a completed purchase.
const (
	OrderStatusPaid      = "PAID"
	OrderStatusCompleted = "COMPLETED"
)
