// README: Shared Google Maps API client construction.
package maps

import (
	"fmt"

	"googlemaps.github.io/maps"
)

func NewClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}
