package account

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ashaconnect/payout-system/internal/core/domain"
)

// Notifier surfaces user-facing messages. The browser equivalent is a
// blocking alert; accountctl prints to the terminal.
type Notifier interface {
	Notify(message string)
}

// State is the controller's view of one worker's account. Credits and
// Payment are always recomputed from Count on load; they are never read back
// from the cache as authoritative values.
type State struct {
	Username string
	Count    int
	Credits  int
	Payment  int
	Status   domain.PaymentStatus
}

// CanSubmit reports whether a new payment request may be sent: there must be
// payment due and no active request.
func (s State) CanSubmit() bool {
	return s.Payment > 0 && s.Status == domain.StatusNone
}

// CanReset reports whether the reset action is unlocked: only after the
// admin's approval has been observed.
func (s State) CanReset() bool {
	return s.Status == domain.StatusApproved
}

// MergeStatus folds the two independent poll results of the legacy account
// page (pending-check and approved-check) into one status. The polls may
// race; approval supersedes a pending state when both are set.
func MergeStatus(pendingSeen, approvedSeen bool) domain.PaymentStatus {
	switch {
	case approvedSeen:
		return domain.StatusApproved
	case pendingSeen:
		return domain.StatusPending
	default:
		return domain.StatusNone
	}
}

// Controller drives the worker-side payment workflow: derived earnings,
// status synchronisation, and the one-shot request → approve → reset cycle.
type Controller struct {
	store    Store
	api      PaymentAPI
	notifier Notifier
	log      zerolog.Logger

	mu    sync.Mutex
	state State
}

func NewController(store Store, api PaymentAPI, notifier Notifier, log zerolog.Logger) *Controller {
	return &Controller{store: store, api: api, notifier: notifier, log: log}
}

// Load rebuilds the local state from the cache. The cached count defaults to
// "0" when absent, and earnings are derived fresh on every load.
func (c *Controller) Load() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	username, ok := c.store.Get(usernameKey)
	if !ok || username == "undefined" {
		username = ""
	}

	count := 0
	if username != "" {
		raw, ok := c.store.Get(countKey(username))
		if !ok {
			raw = "0"
		}
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			count = n
		}
	}

	if username != c.state.Username {
		// A different identity logged in; the previous user's request
		// status must not leak into the new session.
		c.state.Status = domain.StatusNone
	}

	c.state.Username = username
	c.state.Count = count
	c.state.Credits = domain.DeriveCredits(count)
	c.state.Payment = domain.DerivePayment(count)
	if c.state.Status == "" {
		c.state.Status = domain.StatusNone
	}

	return c.state
}

// Sync polls the server for the current request status and merges it into the
// local state. A failed poll leaves the previous state untouched.
func (c *Controller) Sync(ctx context.Context) error {
	c.mu.Lock()
	username := c.state.Username
	c.mu.Unlock()

	if username == "" {
		return nil
	}

	status, err := c.api.Status(ctx, username)
	if err != nil {
		c.log.Error().Err(err).Str("username", username).Msg("failed to fetch payment status")
		return err
	}

	c.mu.Lock()
	c.state.Status = status
	c.mu.Unlock()

	return nil
}

// SubmitRequest sends the accrued payment due to the admin. Guarded locally
// against zero amounts and double submission; the server enforces the same
// rules authoritatively.
func (c *Controller) SubmitRequest(ctx context.Context) error {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if state.Username == "" {
		return errors.New("not logged in")
	}
	if !state.CanSubmit() {
		if state.Payment <= 0 {
			return errors.New("no payment due")
		}
		return errors.New("a payment request is already active")
	}

	err := c.api.SubmitRequest(ctx, SubmitInput{
		Username: state.Username,
		Count:    state.Count,
		Credits:  state.Credits,
		Payment:  state.Payment,
	})
	if err != nil {
		c.log.Error().Err(err).Str("username", state.Username).Msg("payment request failed")
		c.notifier.Notify("Payment request failed. Please try again.")
		return err
	}

	c.mu.Lock()
	c.state.Status = domain.StatusPending
	c.mu.Unlock()

	c.notifier.Notify("Payment request sent to Admin!")
	return nil
}

// Reset clears the approved request on the server and zeroes the local
// account. The cached count is explicitly re-seeded to "0" rather than merely
// removed, so the next load cannot pick up a stale value.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if state.Username == "" {
		return errors.New("not logged in")
	}
	if !state.CanReset() {
		return errors.New("payment has not been approved yet")
	}

	if err := c.api.Reset(ctx, state.Username); err != nil {
		c.log.Error().Err(err).Str("username", state.Username).Msg("payment reset failed")
		c.notifier.Notify("Payment reset failed: " + err.Error())
		return err
	}

	key := countKey(state.Username)
	if err := c.store.Remove(key); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear cached count")
	}
	if err := c.store.Set(key, "0"); err != nil {
		c.log.Warn().Err(err).Msg("failed to re-seed cached count")
	}

	c.mu.Lock()
	c.state.Count = 0
	c.state.Credits = 0
	c.state.Payment = 0
	c.state.Status = domain.StatusNone
	c.mu.Unlock()

	c.notifier.Notify("Payment cleared! You can start new summaries now.")
	return nil
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
