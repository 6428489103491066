// README: Dispatch backend vocabulary: request statuses and response models.
package dispatch

// Status is the backend-side lifecycle of one vehicle request.
type Status string

const (
	StatusRequested      Status = "requested"
	StatusAccepted       Status = "accepted"
	StatusInProgress     Status = "in_progress"
	StatusCompleted      Status = "completed"
	StatusNoDrivers      Status = "no_drivers_available"
	StatusDriverCanceled Status = "driver_canceled"
)

// Terminal reports whether the backend declared the request dead.
func (s Status) Terminal() bool {
	return s == StatusNoDrivers || s == StatusDriverCanceled
}

// WaitEstimate is the backend's forecast of time until a vehicle could arrive
// at the given position. It is fetched once per pickup request and treated as
// immutable for the lifetime of that request.
type WaitEstimate struct {
	ProductID   string
	WaitSeconds float64
}

type Driver struct {
	Name        string
	PhoneNumber string
}

// Details is the backend's view of one dispatch request.
type Details struct {
	RequestID  string
	Status     Status
	ETAMinutes float64
	Driver     *Driver
}
