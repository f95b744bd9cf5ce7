package game

import (
	"fmt"
	"strings"
)

// Outcome is the session's terminal predicate, polled by the driver once
// per tick.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeEscaped
	OutcomeCaptured
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeEscaped:
		return "escaped"
	case OutcomeCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (o Outcome) Terminal() bool { return o != OutcomeOngoing }

// SessionSummary is a read-only digest of a session, handed to record
// keeping and reporting collaborators once a session ends.
type SessionSummary struct {
	ID               string
	Seed             int64
	Outcome          Outcome
	Elapsed          float64 // s of simulated time
	Ticks            int
	Width            int
	Height           int
	RouteLen         int
	PickupsCollected int
	PickupsTotal     int
	Replans          int
	MinStamina       float64
	Description      string
}

// Summary digests the current session state.
func (s *Session) Summary() SessionSummary {
	collected := 0
	for _, it := range s.pickups {
		if it.collected {
			collected++
		}
	}
	sum := SessionSummary{
		ID:               s.id,
		Seed:             s.seed,
		Outcome:          s.outcome,
		Elapsed:          s.elapsed,
		Ticks:            s.tick,
		Width:            s.grid.Width(),
		Height:           s.grid.Height(),
		RouteLen:         len(s.route),
		PickupsCollected: collected,
		PickupsTotal:     len(s.pickups),
		MinStamina:       s.minStamina,
	}
	if s.adversary != nil {
		sum.Replans = s.adversary.Replans()
	}
	switch s.outcome {
	case OutcomeEscaped:
		sum.Description = fmt.Sprintf("escaped_in_%.2fs", s.elapsed)
	case OutcomeCaptured:
		sum.Description = fmt.Sprintf("captured_at_%.2fs", s.elapsed)
	default:
		sum.Description = "in_progress"
	}
	return sum
}

// Report renders a plain-text session report: the summary followed by the
// last lastTicks ticks of the event log.
func (s *Session) Report(lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 600
	}
	sum := s.Summary()

	var b strings.Builder
	fmt.Fprintf(&b, "--- Maze Escape session report ---\n")
	fmt.Fprintf(&b, "id=%s seed=%d maze=%dx%d route=%d\n", sum.ID, sum.Seed, sum.Width, sum.Height, sum.RouteLen)
	fmt.Fprintf(&b, "outcome=%s elapsed=%.2fs ticks=%d\n", sum.Outcome, sum.Elapsed, sum.Ticks)
	fmt.Fprintf(&b, "pickups=%d/%d replans=%d min_stamina=%.1f\n", sum.PickupsCollected, sum.PickupsTotal, sum.Replans, sum.MinStamina)
	fmt.Fprintf(&b, "player=(%.2f,%.2f) heading=%.2f stamina=%.1f\n", s.player.x, s.player.y, s.player.heading, s.player.stamina)
	if s.adversary != nil {
		fmt.Fprintf(&b, "adversary=(%.2f,%.2f) state=%s path=%d\n", s.adversary.x, s.adversary.y, s.adversary.state, len(s.adversary.path))
	}
	b.WriteString("\nevents:\n")
	from := s.tick - lastTicks + 1
	if from < 0 {
		from = 0
	}
	b.WriteString(s.log.Dump(from))
	return b.String()
}
