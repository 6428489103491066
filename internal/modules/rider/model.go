// README: Rider identity as provided by the identity provider, plus the
// emergency contact the rider registers.
package rider

import "time"

type Rider struct {
	UUID             string
	AccessToken      string
	FirstName        string
	LastName         string
	Email            string
	Picture          string
	PromoCode        string
	EmergencyContact string // E.164, empty when not set
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DisplayName is the rider's full name as spoken in notifications.
func (r *Rider) DisplayName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}
