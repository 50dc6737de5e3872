package hearing

import (
	"bufio"
	"bytes"
	"strings"
	"time"

	"go.uber.org/zap"
)

// dtstartLayout is the local-time timestamp form produced by the court
// portal's exports. Timezone-qualified variants are out of scope.
const dtstartLayout = "20060102T150405"

// ParseICS reads a restricted iCalendar subset: VEVENT blocks with
// SUMMARY, DTSTART, LOCATION and DESCRIPTION lines, value taken after the
// first colon. An event needs both a parsable start and a summary to be
// kept; everything else in the feed is ignored. Malformed timestamps drop
// the event silently rather than aborting the whole feed.
func ParseICS(data []byte) []Event {
	var (
		events  []Event
		cur     Event
		inEvent bool
		dropped int
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		switch {
		case line == "BEGIN:VEVENT":
			inEvent = true
			cur = Event{}
		case line == "END:VEVENT":
			if inEvent && !cur.Start.IsZero() && cur.Summary != "" {
				events = append(events, cur)
			} else if inEvent {
				dropped++
			}
			inEvent = false
		case !inEvent:
			// ignore calendar-level lines
		case strings.HasPrefix(line, "SUMMARY"):
			cur.Summary = valueAfterColon(line)
		case strings.HasPrefix(line, "DTSTART"):
			if ts, err := time.ParseInLocation(dtstartLayout, valueAfterColon(line), time.Local); err == nil {
				cur.Start = ts
			}
		case strings.HasPrefix(line, "LOCATION"):
			cur.Location = valueAfterColon(line)
		case strings.HasPrefix(line, "DESCRIPTION"):
			cur.Description = valueAfterColon(line)
		}
	}

	if dropped > 0 {
		zap.L().Warn("calendar events dropped during parse", zap.Int("count", dropped))
	}

	return events
}

func valueAfterColon(line string) string {
	if i := strings.Index(line, ":"); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return ""
}
