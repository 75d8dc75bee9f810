package session

import (
	"fmt"

	"context"

	"github.com/quickbite/storefront/lib/myerrors"
	"github.com/quickbite/storefront/lib/mylog"
	"github.com/quickbite/storefront/lib/mypublisher"
	"github.com/quickbite/storefront/lib/mystore"
	"github.com/quickbite/storefront/services/session/sessionevents"
)

// The store holds at most one session under this key. The store itself is shared
// at the process boundary: another local process may install or clear the session
// behind our back, which is exactly what the cart watcher polls for.
const currentSessionKey = "current"

type service struct {
	store     mystore.Store[Session]
	publisher mypublisher.Publisher
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Session], publisher mypublisher.Publisher, logger mylog.Logger) *service {
	return &service{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Current returns the persisted session. A missing record means anonymous.
func (s *service) Current(c context.Context) (Session, error) {
	session, found, err := s.store.Get(c, currentSessionKey)
	if err != nil {
		return Session{}, myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
	}
	if !found {
		return Session{}, nil
	}
	return session, nil
}

// signIn persists an externally issued token and profile and announces the change.
func (s *service) signIn(c context.Context, session Session) error {
	if session.Token == "" {
		return myerrors.NewInvalidInputErrorf("cannot sign in without a token")
	}

	s.logger.Log(c, session.UserUID(), mylog.SeverityInfo, "Installing session for user %s", session.UserUID())

	err := s.store.RunInTransaction(c, func(c context.Context) error {
		err := s.store.Put(c, currentSessionKey, session)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, sessionevents.TopicName, sessionevents.SessionChanged{
			UserUID: session.UserUID(),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// signOut clears the persisted identity and announces the change.
func (s *service) signOut(c context.Context) error {
	s.logger.Log(c, "", mylog.SeverityInfo, "Clearing session")

	err := s.store.RunInTransaction(c, func(c context.Context) error {
		err := s.store.Delete(c, currentSessionKey)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, sessionevents.TopicName, sessionevents.SessionChanged{
			UserUID: "",
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}
