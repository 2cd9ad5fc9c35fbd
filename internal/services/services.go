// package services defines interface SubscriptionService for the remote
// subscription backend
//
// YouTube Music (via proxy)
package services

import (
	"context"

	"ytsm/internal/models"
)

// SubscriptionService is the narrow seam between the sync core and the
// remote streaming service. The planner and executor only ever see this
// interface, so they can be tested against an in-memory fake.
type SubscriptionService interface {
	// ListSubscriptions retrieves the artists the account is currently
	// subscribed to, each with status Subscribed, in service order.
	ListSubscriptions(ctx context.Context) ([]models.Artist, error)

	// SearchArtist looks up an artist by name.
	// A miss is reported as an error wrapping [shared.ErrArtistNotFound];
	// any other error is a transport or service failure.
	SearchArtist(ctx context.Context, name string) (*models.Artist, error)

	// SubscribeArtist subscribes to the given artist. Returns false when
	// the service rejected the subscribe without failing outright. On
	// success the artist's status is set to Subscribed.
	SubscribeArtist(ctx context.Context, artist *models.Artist) (bool, error)

	// Name returns the service name (e.g. "YouTube Music")
	Name() string
}
