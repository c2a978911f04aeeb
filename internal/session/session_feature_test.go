package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"pizzeria/internal/catalog"
	"pizzeria/internal/models"
	"pizzeria/internal/reservation"
)

type sessionTestContext struct {
	session *Session
	snap    Snapshot
	before  Snapshot
}

func (c *sessionTestContext) aFreshSession(day string, fee int) error {
	now, err := time.ParseInLocation(models.DayFormat, day, time.UTC)
	if err != nil {
		return err
	}
	now = now.Add(12 * time.Hour)
	c.session = New(catalog.Default(), Options{
		DeliveryFee: int64(fee),
		Now:         func() time.Time { return now },
		Location:    time.UTC,
	})
	c.snap = c.session.Snapshot()
	return nil
}

func (c *sessionTestContext) iAddTimes(id string, n int) error {
	for i := 0; i < n; i++ {
		c.snap = c.session.AddItem(id)
	}
	return nil
}

func (c *sessionTestContext) iChangeTheQuantityBy(id string, delta int) error {
	c.snap = c.session.UpdateQuantity(id, delta)
	return nil
}

func (c *sessionTestContext) iRemove(id string) error {
	c.snap = c.session.RemoveItem(id)
	return nil
}

func (c *sessionTestContext) iAdvanceToTheSummary() error {
	c.snap = c.session.AdvanceToSummary()
	return nil
}

func (c *sessionTestContext) iFinalizeTheOrder() error {
	c.snap = c.session.FinalizeOrder(context.Background())
	return nil
}

func (c *sessionTestContext) iAcknowledgeTheSuccess() error {
	c.before = c.snap
	c.snap = c.session.AcknowledgeSuccessAndReset()
	return nil
}

func (c *sessionTestContext) iOpenTheOverlayOn(tab string) error {
	c.snap = c.session.OpenOverlay(Tab(tab))
	return nil
}

func (c *sessionTestContext) iSwitchToTheTab(tab string) error {
	c.snap = c.session.SetActiveTab(Tab(tab))
	return nil
}

func (c *sessionTestContext) iCloseTheOverlay() error {
	c.snap = c.session.CloseOverlay()
	return nil
}

func (c *sessionTestContext) iSelectDayOfTheWindow(n int) error {
	days := c.session.AvailableDays()
	if n < 1 || n > len(days) {
		return fmt.Errorf("day %d outside the %d-day window", n, len(days))
	}
	c.snap = c.session.SelectDay(days[n-1])
	return nil
}

func (c *sessionTestContext) iSelectTheTime(value string) error {
	slot, ok := reservation.ParseSlot(value)
	if !ok {
		return fmt.Errorf("unknown slot %q", value)
	}
	c.snap = c.session.SelectTime(slot)
	return nil
}

func (c *sessionTestContext) iConfirmTheReservation() error {
	c.snap = c.session.ConfirmReservation(context.Background())
	return nil
}

func (c *sessionTestContext) theCartHasLines(n int) error {
	if len(c.snap.Lines) != n {
		return fmt.Errorf("expected %d lines, got %d", n, len(c.snap.Lines))
	}
	return nil
}

func (c *sessionTestContext) theCartHasWithQuantity(id string, qty int) error {
	if got := c.snap.Quantity(id); got != qty {
		return fmt.Errorf("expected %s quantity %d, got %d", id, qty, got)
	}
	return nil
}

func (c *sessionTestContext) theCartLinesAre(list string) error {
	ids := make([]string, len(c.snap.Lines))
	for i, l := range c.snap.Lines {
		ids[i] = l.Item.ID
	}
	if got := strings.Join(ids, ", "); got != list {
		return fmt.Errorf("expected lines %q, got %q", list, got)
	}
	return nil
}

func (c *sessionTestContext) theCartIsEmpty() error {
	if !c.snap.CartEmpty() {
		return fmt.Errorf("expected empty cart, got %d lines", len(c.snap.Lines))
	}
	return nil
}

func (c *sessionTestContext) theSubtotalIs(v int) error {
	if c.snap.Subtotal != int64(v) {
		return fmt.Errorf("expected subtotal %d, got %d", v, c.snap.Subtotal)
	}
	return nil
}

func (c *sessionTestContext) theTotalIs(v int) error {
	if c.snap.Total != int64(v) {
		return fmt.Errorf("expected total %d, got %d", v, c.snap.Total)
	}
	return nil
}

func (c *sessionTestContext) theOrderFlowIs(state string) error {
	if string(c.snap.Flow) != state {
		return fmt.Errorf("expected flow %q, got %q", state, c.snap.Flow)
	}
	return nil
}

func (c *sessionTestContext) theCheckoutActionIsNotOffered() error {
	if c.snap.CanAdvance {
		return errors.New("checkout offered for an empty cart")
	}
	return nil
}

func (c *sessionTestContext) theFinalizedOrderNumberIs(number string) error {
	if c.snap.Order == nil {
		return errors.New("no finalized order in snapshot")
	}
	if c.snap.Order.Number != number {
		return fmt.Errorf("expected order number %q, got %q", number, c.snap.Order.Number)
	}
	return nil
}

func (c *sessionTestContext) theOverlayIsClosed() error {
	if c.snap.OverlayOpen {
		return errors.New("overlay still open")
	}
	return nil
}

func (c *sessionTestContext) theAcknowledgmentWasASingleChange() error {
	if c.snap.Version != c.before.Version+1 {
		return fmt.Errorf("expected version %d, got %d", c.before.Version+1, c.snap.Version)
	}
	return nil
}

func (c *sessionTestContext) theReservationIsConfirmable() error {
	if !c.snap.Confirmable {
		return errors.New("reservation not confirmable")
	}
	return nil
}

func (c *sessionTestContext) theReservationIsNotConfirmable() error {
	if c.snap.Confirmable {
		return errors.New("reservation unexpectedly confirmable")
	}
	return nil
}

func (c *sessionTestContext) theReservationIsConfirmedFor(slot string) error {
	if c.snap.Confirmation == nil {
		return errors.New("reservation not confirmed")
	}
	if c.snap.Confirmation.Slot != slot {
		return fmt.Errorf("expected slot %q, got %q", slot, c.snap.Confirmation.Slot)
	}
	return nil
}

func (c *sessionTestContext) aReservationDayIsSelected() error {
	if c.snap.Day == nil {
		return errors.New("no reservation day selected")
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &sessionTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*tc = sessionTestContext{}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a fresh session on "([^"]*)" with a delivery fee of (\d+)$`, tc.aFreshSession)

	// When steps
	ctx.Step(`^I add "([^"]*)" (\d+) times$`, tc.iAddTimes)
	ctx.Step(`^I change the quantity of "([^"]*)" by (-?\d+)$`, tc.iChangeTheQuantityBy)
	ctx.Step(`^I remove "([^"]*)"$`, tc.iRemove)
	ctx.Step(`^I advance to the summary$`, tc.iAdvanceToTheSummary)
	ctx.Step(`^I finalize the order$`, tc.iFinalizeTheOrder)
	ctx.Step(`^I acknowledge the success$`, tc.iAcknowledgeTheSuccess)
	ctx.Step(`^I open the overlay on the "([^"]*)" tab$`, tc.iOpenTheOverlayOn)
	ctx.Step(`^I switch to the "([^"]*)" tab$`, tc.iSwitchToTheTab)
	ctx.Step(`^I close the overlay$`, tc.iCloseTheOverlay)
	ctx.Step(`^I select day (\d+) of the window$`, tc.iSelectDayOfTheWindow)
	ctx.Step(`^I select the time "([^"]*)"$`, tc.iSelectTheTime)
	ctx.Step(`^I confirm the reservation$`, tc.iConfirmTheReservation)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the cart has "([^"]*)" with quantity (\d+)$`, tc.theCartHasWithQuantity)
	ctx.Step(`^the cart lines are "([^"]*)"$`, tc.theCartLinesAre)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the subtotal is (\d+)$`, tc.theSubtotalIs)
	ctx.Step(`^the total is (\d+)$`, tc.theTotalIs)
	ctx.Step(`^the order flow is "([^"]*)"$`, tc.theOrderFlowIs)
	ctx.Step(`^the checkout action is not offered$`, tc.theCheckoutActionIsNotOffered)
	ctx.Step(`^the finalized order number is "([^"]*)"$`, tc.theFinalizedOrderNumberIs)
	ctx.Step(`^the overlay is closed$`, tc.theOverlayIsClosed)
	ctx.Step(`^the acknowledgment was a single change$`, tc.theAcknowledgmentWasASingleChange)
	ctx.Step(`^the reservation is confirmable$`, tc.theReservationIsConfirmable)
	ctx.Step(`^the reservation is not confirmable$`, tc.theReservationIsNotConfirmable)
	ctx.Step(`^the reservation is confirmed for "([^"]*)"$`, tc.theReservationIsConfirmedFor)
	ctx.Step(`^a reservation day is selected$`, tc.aReservationDayIsSelected)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/session.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
