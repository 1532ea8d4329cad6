package services

// Notifier pushes realtime events to connected participants. Implemented by
// the websocket hub; a nil Notifier disables pushes without changing any
// business outcome.
type Notifier interface {
	JobStatusChanged(jobID int, status string, clientID int, cleanerID *int)
	ApplicationReceived(jobID, clientID int)
}
