package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/quickbite/storefront/lib/myerrors"
	"github.com/quickbite/storefront/lib/myhttp"
	"github.com/quickbite/storefront/lib/mylog"
	"github.com/quickbite/storefront/services/session/sessionevents"
)

// Subscribe registers this service for session change events so a login or
// logout anywhere immediately re-scopes the cart.
func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.CreateTopic(c, sessionevents.TopicName)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error creating topic %s: %s", sessionevents.TopicName, err))
	}

	err = s.subscriber.Subscribe(c, sessionevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/cart/event")
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error subscribing to topic %s: %s", sessionevents.TopicName, err))
	}

	return nil
}

func (s *service) OnSessionChanged(c context.Context, topic string, event sessionevents.SessionChanged) error {
	s.logger.Log(c, "", mylog.SeverityInfo, "Session changed to %q, reconciling cart", event.UserUID)
	return s.ReconcileIdentity(c)
}

// ReconcileIdentity compares the identity owning the in-memory cart against
// the current session and reacts to a difference: the old cart is discarded
// in full, then, when someone is signed in, their cart is fetched fresh. When
// nothing changed this is a no-op, so it is safe to call as often as needed.
func (s *service) ReconcileIdentity(c context.Context) error {
	currentSession, err := s.sessions.Current(c)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
	}
	currentKey := ownerKeyFor(currentSession)

	s.mutex.Lock()
	ownerUID := s.state.OwnerUID
	s.mutex.Unlock()

	if ownerUID == currentKey {
		return nil
	}

	s.discard(c)
	if currentSession.IsAnonymous() {
		return nil
	}
	return s.FetchCart(c)
}

// RunIdentityWatcher polls for session changes that arrive outside the event
// pipeline, for example a session file shared with another process. It
// returns immediately, the polling goroutine stops when the context is done.
func (s *service) RunIdentityWatcher(c context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-c.Done():
				return
			case <-ticker.C:
				if err := s.ReconcileIdentity(c); err != nil {
					s.logger.Log(c, "", mylog.SeverityWarn, "Error reconciling cart identity: %s", err)
				}
			}
		}
	}()
}
