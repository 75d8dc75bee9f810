package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickbite/storefront/lib/myerrors"
	"github.com/quickbite/storefront/lib/mylog"
	"github.com/quickbite/storefront/lib/mynotify"
	"github.com/quickbite/storefront/services/cartapi"
)

// FetchCart replaces the in-memory cart with whatever the remote cart service
// holds for the current identity. Without a signed-in session the cart is
// simply empty, no call is made.
func (s *service) FetchCart(c context.Context) error {
	currentSession, err := s.sessions.Current(c)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
	}
	if currentSession.IsAnonymous() {
		s.discard(c)
		return nil
	}

	s.setPhase(PhaseHydrating)
	lines, err := s.caller.Fetch(c, currentSession.Token)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error fetching cart: %s", err)
		s.notifier.Notify(c, mynotify.LevelError, "Failed to load cart")
		s.setPhase(phaseFor(s.CurrentState(c).Entries))
		return err
	}

	s.apply(c, ownerKeyFor(currentSession), hydrated{entries: lines})
	return nil
}

// AddToCart asks the remote cart service to add quantity of a product and
// adopts the line it returns. Anonymous visitors are told to log in first,
// nothing is sent.
func (s *service) AddToCart(c context.Context, productUID string, quantity int) error {
	if quantity < 1 {
		return myerrors.NewInvalidInputErrorf("quantity must be at least 1, got %d", quantity)
	}

	currentSession, err := s.sessions.Current(c)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
	}
	if currentSession.IsAnonymous() {
		s.notifier.Notify(c, mynotify.LevelError, "Login to add items")
		return myerrors.NewNotAuthenticatedError(errors.New("not signed in"))
	}

	s.setPhase(PhaseMutating)
	line, err := s.caller.Add(c, currentSession.Token, productUID, quantity)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error adding product %s to cart: %s", productUID, err)
		s.notifier.Notify(c, mynotify.LevelError, failureMessage(err, "Failed to add item"))
		s.setPhase(phaseFor(s.CurrentState(c).Entries))
		return err
	}

	s.apply(c, ownerKeyFor(currentSession), addConfirmed{line: line})
	s.notifier.Notify(c, mynotify.LevelSuccess, "Added to cart")
	return nil
}

// UpdateQuantity sets the quantity of an existing line to an exact value and
// adopts whatever quantity the remote cart service settled on. Callers that
// want a line gone must use RemoveFromCart, quantity zero is not accepted.
func (s *service) UpdateQuantity(c context.Context, lineUID string, quantity int) error {
	if quantity < 1 {
		return myerrors.NewInvalidInputErrorf("quantity must be at least 1, got %d", quantity)
	}

	currentSession, err := s.sessions.Current(c)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
	}
	if currentSession.IsAnonymous() {
		s.notifier.Notify(c, mynotify.LevelError, "Login to update cart")
		return myerrors.NewNotAuthenticatedError(errors.New("not signed in"))
	}

	s.setPhase(PhaseMutating)
	line, err := s.caller.Update(c, currentSession.Token, lineUID, quantity)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error updating cart line %s: %s", lineUID, err)
		s.notifier.Notify(c, mynotify.LevelError, "Failed to update cart")
		s.setPhase(phaseFor(s.CurrentState(c).Entries))
		return err
	}

	s.apply(c, ownerKeyFor(currentSession), updateConfirmed{line: line})
	return nil
}

// RemoveFromCart deletes a single line.
func (s *service) RemoveFromCart(c context.Context, lineUID string) error {
	currentSession, err := s.sessions.Current(c)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
	}
	if currentSession.IsAnonymous() {
		s.notifier.Notify(c, mynotify.LevelError, "Login to remove items from cart")
		return myerrors.NewNotAuthenticatedError(errors.New("not signed in"))
	}

	s.setPhase(PhaseMutating)
	err = s.caller.Remove(c, currentSession.Token, lineUID)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error removing cart line %s: %s", lineUID, err)
		s.notifier.Notify(c, mynotify.LevelError, "Failed to remove item")
		s.setPhase(phaseFor(s.CurrentState(c).Entries))
		return err
	}

	s.apply(c, ownerKeyFor(currentSession), removeConfirmed{lineUID: lineUID})
	s.notifier.Notify(c, mynotify.LevelSuccess, "Removed from cart")
	return nil
}

// ClearCart empties the cart on the remote cart service. The call is made
// even when the local cart already looks empty: local state may be stale,
// only the backend knows.
func (s *service) ClearCart(c context.Context) error {
	currentSession, err := s.sessions.Current(c)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
	}
	if currentSession.IsAnonymous() {
		s.notifier.Notify(c, mynotify.LevelError, "Login to clear cart")
		return myerrors.NewNotAuthenticatedError(errors.New("not signed in"))
	}

	s.setPhase(PhaseMutating)
	err = s.caller.Clear(c, currentSession.Token)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error clearing cart: %s", err)
		s.notifier.Notify(c, mynotify.LevelError, "Failed to clear cart")
		s.setPhase(phaseFor(s.CurrentState(c).Entries))
		return err
	}

	s.apply(c, ownerKeyFor(currentSession), cleared{})
	s.notifier.Notify(c, mynotify.LevelSuccess, "Cart cleared")
	return nil
}

// failureMessage prefers the message the backend attached to the failure and
// falls back to a generic one for transport-level errors.
func failureMessage(err error, fallback string) string {
	remoteErr := cartapi.RemoteError{}
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	return fallback
}
