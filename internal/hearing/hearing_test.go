package hearing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//UYAP//Durusma Takvimi//TR
BEGIN:VEVENT
SUMMARY:Duruşma - 2024/123 Esas
DTSTART:20240915T100000
LOCATION:Ankara 1. Asliye Hukuk Mahkemesi
DESCRIPTION:Ön inceleme duruşması
END:VEVENT
BEGIN:VEVENT
SUMMARY:Keşif - 2024/77 Esas
DTSTART:20241002T140000
END:VEVENT
END:VCALENDAR
`

func TestParseICS(t *testing.T) {
	events := ParseICS([]byte(sampleFeed))
	require.Len(t, events, 2)

	assert.Equal(t, "Duruşma - 2024/123 Esas", events[0].Summary)
	assert.Equal(t, time.Date(2024, 9, 15, 10, 0, 0, 0, time.Local), events[0].Start)
	assert.Equal(t, "Ankara 1. Asliye Hukuk Mahkemesi", events[0].Location)
	assert.Equal(t, "Ön inceleme duruşması", events[0].Description)

	assert.Empty(t, events[1].Location)
}

func TestParseICS_DropsIncompleteEvents(t *testing.T) {
	feed := `BEGIN:VEVENT
SUMMARY:tarihsiz etkinlik
END:VEVENT
BEGIN:VEVENT
DTSTART:20240915T100000
END:VEVENT
BEGIN:VEVENT
SUMMARY:bozuk tarih
DTSTART:not-a-timestamp
END:VEVENT
BEGIN:VEVENT
SUMMARY:geçerli
DTSTART:20240920T090000
END:VEVENT
`
	events := ParseICS([]byte(feed))
	require.Len(t, events, 1)
	assert.Equal(t, "geçerli", events[0].Summary)
}

func TestParseICS_IgnoresLinesOutsideEvents(t *testing.T) {
	feed := "SUMMARY:kalendar düzeyinde satır\nDTSTART:20240915T100000\n"
	assert.Empty(t, ParseICS([]byte(feed)))
}

func TestClassify(t *testing.T) {
	now := time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  Status
	}{
		{"yesterday is past", now.Add(-24 * time.Hour), Past},
		{"exactly now is past", now, Past},
		{"in one hour is imminent", now.Add(time.Hour), Imminent},
		{"just under 24h is imminent", now.Add(24*time.Hour - time.Second), Imminent},
		{"exactly 24h is upcoming", now.Add(24 * time.Hour), Upcoming},
		{"next week is upcoming", now.Add(7 * 24 * time.Hour), Upcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Event{Start: tt.start}.Classify(now))
		})
	}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hearings.json")
	s, err := OpenStore(path)
	require.NoError(t, err)
	return s, path
}

func TestStore_AddDeduplicates(t *testing.T) {
	s, _ := newTestStore(t)

	ev := Event{Summary: "Duruşma", Start: time.Date(2024, 9, 15, 10, 0, 0, 0, time.UTC)}

	added, err := s.Add([]Event{ev, ev})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	added, err = s.Add([]Event{ev})
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	assert.Len(t, s.Events(), 1)
}

func TestStore_AddFailedFlushLeavesNothingBehind(t *testing.T) {
	s, path := newTestStore(t)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	s.path = filepath.Join(blocker, "hearings.json") // flush cannot create this

	ev := Event{Summary: "Duruşma", Start: time.Date(2024, 9, 15, 10, 0, 0, 0, time.UTC)}

	added, err := s.Add([]Event{ev})
	require.Error(t, err)
	assert.Equal(t, 0, added)
	assert.Empty(t, s.Events(), "a failed flush must not keep unpersisted events in memory")

	// A retry after the write problem is gone persists the same event.
	s.path = path
	added, err = s.Add([]Event{ev})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	s, path := newTestStore(t)

	_, err := s.Add([]Event{
		{Summary: "İkinci", Start: time.Date(2024, 10, 2, 14, 0, 0, 0, time.UTC)},
		{Summary: "Birinci", Start: time.Date(2024, 9, 15, 10, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	reopened, err := OpenStore(path)
	require.NoError(t, err)

	events := reopened.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "Birinci", events[0].Summary, "Events must come back sorted by start")
	assert.Equal(t, "İkinci", events[1].Summary)
}

func TestStore_MissingFileIsEmptyCalendar(t *testing.T) {
	s, err := OpenStore(filepath.Join(t.TempDir(), "yok", "hearings.json"))
	require.NoError(t, err)
	assert.Empty(t, s.Events())
}

func TestStore_Clear(t *testing.T) {
	s, path := newTestStore(t)
	_, err := s.Add([]Event{{Summary: "a", Start: time.Now()}})
	require.NoError(t, err)

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Events())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestStore_CorruptFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hearings.json")
	require.NoError(t, os.WriteFile(path, []byte("{ bozuk"), 0o644))

	_, err := OpenStore(path)
	require.Error(t, err)
}
