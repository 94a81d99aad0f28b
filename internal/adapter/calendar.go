package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcphub/internal/config"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"
)

// Calendar computes availability locally from per-client settings; it
// calls no third-party API. Settings (all defaulted): calendar.timezone,
// calendar.business_hours, calendar.excluded_days, calendar.slot_minutes.
type Calendar struct {
	loc          *time.Location
	openMinutes  int
	closeMinutes int
	excludedDays map[time.Weekday]bool
	slotMinutes  int
}

func NewCalendar(ctx context.Context, res *config.Resolver) (Adapter, error) {
	tz, err := res.GetString(ctx, "calendar", "timezone")
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("calendar.timezone: %w", err)
	}

	hours, err := res.Get(ctx, "calendar", "business_hours")
	if err != nil {
		return nil, err
	}
	openMin, closeMin, err := parseBusinessHours(hours)
	if err != nil {
		return nil, err
	}

	days, err := res.GetStringSlice(ctx, "calendar", "excluded_days")
	if err != nil {
		return nil, err
	}
	excluded, err := parseWeekdays(days)
	if err != nil {
		return nil, err
	}

	slot, err := res.GetInt(ctx, "calendar", "slot_minutes")
	if err != nil {
		return nil, err
	}
	if slot <= 0 {
		return nil, fmt.Errorf("calendar.slot_minutes must be positive, got %d", slot)
	}

	return &Calendar{
		loc:          loc,
		openMinutes:  openMin,
		closeMinutes: closeMin,
		excludedDays: excluded,
		slotMinutes:  slot,
	}, nil
}

func (c *Calendar) Name() string { return "calendar" }

func (c *Calendar) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_available_slots",
		mcp.WithDescription("List open appointment slots within business hours on a date"),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD form")),
		mcp.WithNumber("duration_minutes", mcp.Description("Slot length; defaults to the configured slot size")),
	), c.handleListSlots)

	s.AddTool(mcp.NewTool("check_availability",
		mcp.WithDescription("Check whether a start time falls inside business hours"),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD form")),
		mcp.WithString("time", mcp.Required(), mcp.Description("Start time in HH:MM form")),
		mcp.WithNumber("duration_minutes", mcp.Description("Appointment length; defaults to the configured slot size")),
	), c.handleCheckAvailability)
}

func (c *Calendar) handleListSlots(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateStr, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	day, err := time.ParseInLocation(dateLayout, dateStr, c.loc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("date must look like 2024-01-31: %v", err)), nil
	}
	duration := req.GetInt("duration_minutes", c.slotMinutes)
	if duration <= 0 {
		return mcp.NewToolResultError("duration_minutes must be positive"), nil
	}
	if c.excludedDays[day.Weekday()] {
		return mcp.NewToolResultText(fmt.Sprintf("No availability on %s (%s is excluded)",
			dateStr, strings.ToLower(day.Weekday().String()))), nil
	}
	var slots []string
	for start := c.openMinutes; start+duration <= c.closeMinutes; start += duration {
		slots = append(slots, fmt.Sprintf("%02d:%02d", start/60, start%60))
	}
	if len(slots) == 0 {
		return mcp.NewToolResultText("No slots fit inside business hours"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Available %d-minute slots on %s (%s): %s",
		duration, dateStr, c.loc.String(), strings.Join(slots, ", "))), nil
}

func (c *Calendar) handleCheckAvailability(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateStr, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeStr, err := req.RequireString("time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	day, err := time.ParseInLocation(dateLayout, dateStr, c.loc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("date must look like 2024-01-31: %v", err)), nil
	}
	start, err := parseClock(timeStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	duration := req.GetInt("duration_minutes", c.slotMinutes)
	if duration <= 0 {
		return mcp.NewToolResultError("duration_minutes must be positive"), nil
	}
	switch {
	case c.excludedDays[day.Weekday()]:
		return mcp.NewToolResultText(fmt.Sprintf("Unavailable: %s is excluded", strings.ToLower(day.Weekday().String()))), nil
	case start < c.openMinutes || start+duration > c.closeMinutes:
		return mcp.NewToolResultText(fmt.Sprintf("Unavailable: outside business hours %02d:%02d-%02d:%02d",
			c.openMinutes/60, c.openMinutes%60, c.closeMinutes/60, c.closeMinutes%60)), nil
	default:
		return mcp.NewToolResultText(fmt.Sprintf("Available: %s %s for %d minutes", dateStr, timeStr, duration)), nil
	}
}

// parseBusinessHours accepts the document shape {start: "09:00", end:
// "17:00"} or the env-override shape "09:00-17:00".
func parseBusinessHours(v any) (openMin, closeMin int, err error) {
	var startStr, endStr string
	switch t := v.(type) {
	case map[string]any:
		startStr, _ = t["start"].(string)
		endStr, _ = t["end"].(string)
	case string:
		parts := strings.SplitN(t, "-", 2)
		if len(parts) != 2 {
			return 0, 0, fmt.Errorf("calendar.business_hours must look like 09:00-17:00, got %q", t)
		}
		startStr, endStr = parts[0], parts[1]
	default:
		return 0, 0, fmt.Errorf("calendar.business_hours is %T, want a start/end mapping", v)
	}
	if openMin, err = parseClock(startStr); err != nil {
		return 0, 0, fmt.Errorf("calendar.business_hours.start: %w", err)
	}
	if closeMin, err = parseClock(endStr); err != nil {
		return 0, 0, fmt.Errorf("calendar.business_hours.end: %w", err)
	}
	if closeMin <= openMin {
		return 0, 0, fmt.Errorf("calendar.business_hours end %q is not after start %q", endStr, startStr)
	}
	return openMin, closeMin, nil
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse(hourLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("time must look like 09:30: %w", err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func parseWeekdays(names []string) (map[time.Weekday]bool, error) {
	byName := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	out := make(map[time.Weekday]bool, len(names))
	for _, name := range names {
		d, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("calendar.excluded_days: unknown day %q", name)
		}
		out[d] = true
	}
	return out, nil
}
