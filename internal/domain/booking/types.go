package booking

type Type string

const (
	TypeHotel   Type = "Hotel"
	TypePackage Type = "Package"
)

func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeHotel, TypePackage:
		return Type(s), true
	default:
		return "", false
	}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return PaymentStatus(s), true
	default:
		return "", false
	}
}

// Rank orders payment states so that webhook deliveries arriving out of
// order never downgrade a booking. A failed notification after a capture is
// stale information, not a regression.
func (s PaymentStatus) Rank() int {
	switch s {
	case PaymentPending:
		return 0
	case PaymentFailed:
		return 1
	case PaymentCompleted:
		return 2
	case PaymentRefunded:
		return 3
	default:
		return -1
	}
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(s), true
	default:
		return "", false
	}
}
