package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/tixgo/internal/client/models"
)

var errUsage = errors.New("usage")

func (a *App) usage(text string) error {
	a.view.println("Usage:", text)
	return errUsage
}

func (a *App) Attendance(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("attendance <event_id>")
	}

	att, err := a.attendance.Attendance(ctx, args[0])
	if err != nil {
		a.reportError(err)
		return err
	}

	a.view.println("Event:", att.EventID, orNA(att.EventName))
	a.view.println(fmt.Sprintf("  Checked in: %d / %d (%.0f%%)", att.TotalCheckedIn, att.TotalRegistered, att.CheckinPercentage))
	if len(att.CheckIns) > 0 {
		a.printCheckIns(att.CheckIns)
	}
	return nil
}

func (a *App) CheckIn(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("checkin <event_id> <ticket_id>")
	}

	c, err := a.attendance.CheckIn(ctx, args[0], args[1])
	if err != nil {
		a.reportError(err)
		return err
	}

	a.view.println(fmt.Sprintf("Checked in ticket %s for event %s (%s, %s)", c.TicketID, c.EventID, orNA(c.CheckinID), orNA(c.Status)))
	return nil
}

func (a *App) CheckIns(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return a.usage("checkins [event_id]")
	}
	var eventID string
	if len(args) == 1 {
		eventID = args[0]
	}

	list, err := a.attendance.CheckIns(ctx, eventID)
	if err != nil {
		a.reportError(err)
		return err
	}

	if len(list.CheckIns) == 0 {
		a.view.println("No check-ins.")
		return nil
	}
	a.printCheckIns(list.CheckIns)
	return nil
}

func (a *App) printCheckIns(items []models.CheckIn) {
	a.view.mu.Lock()
	defer a.view.mu.Unlock()

	tw := tabwriter.NewWriter(a.view.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEVENT\tTICKET\tTIME\tSTATUS")
	for _, c := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.CheckinID, c.EventID, c.TicketID, orNA(c.CheckinTime), orNA(c.Status))
	}
	_ = tw.Flush()
}
