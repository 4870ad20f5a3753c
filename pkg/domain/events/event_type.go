package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	EventTypeWithdrawalDispensed EventType = "Withdrawal.Dispensed"
	EventTypeRatesRefreshed      EventType = "Rates.Refreshed"
	EventTypeReportWritten       EventType = "Report.Written"
)

// String returns the wire name of the event type.
func (t EventType) String() string {
	return string(t)
}
