package ledger

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

var (
	today     = civil.Date{Year: 2026, Month: time.March, Day: 14}
	yesterday = today.AddDays(-1)
)

func datePtr(d civil.Date) *civil.Date { return &d }

func TestRecordCompletion_FirstOfDay(t *testing.T) {
	p := Profile{StreakCount: 3, TotalPoints: 500, LastLessonDate: datePtr(yesterday)}

	u := RecordCompletion(p, "savings", today, 70, 70, ModeNormal)
	if !u.Apply {
		t.Fatal("expected Apply for normal mode")
	}
	if !u.FirstToday {
		t.Error("expected FirstToday")
	}
	if u.Profile.StreakCount != 4 {
		t.Errorf("StreakCount = %d, want 4", u.Profile.StreakCount)
	}
	if u.Profile.TotalPoints != 570 {
		t.Errorf("TotalPoints = %d, want 570", u.Profile.TotalPoints)
	}
	if u.Profile.LastLessonDate == nil || *u.Profile.LastLessonDate != today {
		t.Errorf("LastLessonDate = %v, want %v", u.Profile.LastLessonDate, today)
	}
	if len(u.Profile.CompletedLessons) != 1 {
		t.Fatalf("len(CompletedLessons) = %d, want 1", len(u.Profile.CompletedLessons))
	}
	rec := u.Profile.CompletedLessons[0]
	if rec.TopicID != "savings" || rec.Date != today || rec.Score != 70 {
		t.Errorf("record = %+v, want {savings %v 70}", rec, today)
	}
}

func TestRecordCompletion_SecondTopicSameDay(t *testing.T) {
	p := Profile{StreakCount: 3, TotalPoints: 500, LastLessonDate: datePtr(yesterday)}

	first := RecordCompletion(p, "savings", today, 70, 70, ModeNormal)
	second := RecordCompletion(first.Profile, "budgeting", today, 50, 50, ModeNormal)

	if second.FirstToday {
		t.Error("second completion of the day should not be FirstToday")
	}
	if second.Profile.StreakCount != 4 {
		t.Errorf("StreakCount = %d, want 4", second.Profile.StreakCount)
	}
	if second.Profile.TotalPoints != 620 {
		t.Errorf("TotalPoints = %d, want 620", second.Profile.TotalPoints)
	}
	if len(second.Profile.CompletedLessons) != 2 {
		t.Errorf("len(CompletedLessons) = %d, want 2", len(second.Profile.CompletedLessons))
	}
}

func TestRecordCompletion_SameTopicSameDayReplaces(t *testing.T) {
	p := Profile{}

	first := RecordCompletion(p, "budgeting", today, 40, 40, ModeNormal)
	second := RecordCompletion(first.Profile, "budgeting", today, 90, 90, ModeNormal)

	var matches []CompletionRecord
	for _, r := range second.Profile.CompletedLessons {
		if r.TopicID == "budgeting" && r.Date == today {
			matches = append(matches, r)
		}
	}
	if len(matches) != 1 {
		t.Fatalf("records for (budgeting, today) = %d, want 1", len(matches))
	}
	if matches[0].Score != 90 {
		t.Errorf("Score = %d, want 90 (second attempt)", matches[0].Score)
	}
	if second.Profile.StreakCount != 1 {
		t.Errorf("StreakCount = %d, want 1", second.Profile.StreakCount)
	}
	if second.Profile.TotalPoints != 130 {
		t.Errorf("TotalPoints = %d, want 130", second.Profile.TotalPoints)
	}
}

func TestRecordCompletion_KeepsOtherDays(t *testing.T) {
	p := Profile{
		StreakCount:    1,
		LastLessonDate: datePtr(yesterday),
		CompletedLessons: []CompletionRecord{
			{TopicID: "budgeting", Date: yesterday, Score: 60},
		},
	}

	u := RecordCompletion(p, "budgeting", today, 80, 80, ModeNormal)
	if len(u.Profile.CompletedLessons) != 2 {
		t.Fatalf("len(CompletedLessons) = %d, want 2", len(u.Profile.CompletedLessons))
	}
	if u.Profile.CompletedLessons[0].Score != 60 {
		t.Errorf("yesterday's score changed to %d", u.Profile.CompletedLessons[0].Score)
	}
}

func TestRecordCompletion_PracticeLeavesProfileUntouched(t *testing.T) {
	p := Profile{
		StreakCount:    5,
		TotalPoints:    900,
		LastLessonDate: datePtr(yesterday),
		CompletedLessons: []CompletionRecord{
			{TopicID: "investing", Date: yesterday, Score: 100},
		},
	}

	for i := 0; i < 3; i++ {
		u := RecordCompletion(p, "investing", today, 100, 200, ModePractice)
		if u.Apply {
			t.Fatal("practice mode must not apply")
		}
		p = u.Profile
	}

	if p.StreakCount != 5 || p.TotalPoints != 900 {
		t.Errorf("profile changed: streak=%d points=%d", p.StreakCount, p.TotalPoints)
	}
	if *p.LastLessonDate != yesterday {
		t.Errorf("LastLessonDate = %v, want %v", *p.LastLessonDate, yesterday)
	}
	if len(p.CompletedLessons) != 1 {
		t.Errorf("len(CompletedLessons) = %d, want 1", len(p.CompletedLessons))
	}
}

func TestRecordCompletion_DoesNotMutateInput(t *testing.T) {
	last := yesterday
	p := Profile{
		StreakCount:    2,
		TotalPoints:    10,
		LastLessonDate: &last,
		CompletedLessons: []CompletionRecord{
			{TopicID: "savings", Date: today, Score: 10},
		},
	}

	_ = RecordCompletion(p, "savings", today, 100, 100, ModeNormal)

	if p.StreakCount != 2 || p.TotalPoints != 10 {
		t.Errorf("input counters mutated: %+v", p)
	}
	if last != yesterday || *p.LastLessonDate != yesterday {
		t.Error("input LastLessonDate mutated")
	}
	if p.CompletedLessons[0].Score != 10 {
		t.Error("input CompletedLessons mutated")
	}
}

func TestRecordCompletion_ScoreRounding(t *testing.T) {
	tests := []struct {
		percent float64
		want    int
	}{
		{100.0 / 3, 33},
		{200.0 / 3, 67},
		{62.5, 63},
		{0, 0},
		{100, 100},
	}

	for _, tt := range tests {
		u := RecordCompletion(Profile{}, "t", today, tt.percent, 0, ModeNormal)
		if got := u.Profile.CompletedLessons[0].Score; got != tt.want {
			t.Errorf("score for %v%% = %d, want %d", tt.percent, got, tt.want)
		}
	}
}

func TestRecordCompletion_NegativePointsIgnored(t *testing.T) {
	u := RecordCompletion(Profile{TotalPoints: 10}, "t", today, 0, -5, ModeNormal)
	if u.Profile.TotalPoints != 10 {
		t.Errorf("TotalPoints = %d, want 10", u.Profile.TotalPoints)
	}
}

func TestCompletedOn(t *testing.T) {
	p := Profile{
		LastLessonDate: datePtr(today),
		CompletedLessons: []CompletionRecord{
			{TopicID: "budgeting", Date: today, Score: 80},
			{TopicID: "savings", Date: yesterday, Score: 50},
		},
	}

	tests := []struct {
		topic string
		day   civil.Date
		want  bool
	}{
		{"budgeting", today, true},
		{"budgeting", yesterday, false},
		{"savings", today, false},
		{"savings", yesterday, true},
		{"investing", today, false},
	}

	for _, tt := range tests {
		if got := CompletedOn(p, tt.topic, tt.day); got != tt.want {
			t.Errorf("CompletedOn(%q, %v) = %v, want %v", tt.topic, tt.day, got, tt.want)
		}
	}
}

func TestDailyChallengeDone(t *testing.T) {
	if DailyChallengeDone(Profile{}, today) {
		t.Error("empty profile should not have the daily challenge done")
	}
	if DailyChallengeDone(Profile{LastLessonDate: datePtr(yesterday)}, today) {
		t.Error("yesterday's lesson should not count for today")
	}
	if !DailyChallengeDone(Profile{LastLessonDate: datePtr(today)}, today) {
		t.Error("expected daily challenge done")
	}
}

func TestBestScores(t *testing.T) {
	p := Profile{CompletedLessons: []CompletionRecord{
		{TopicID: "budgeting", Date: yesterday, Score: 60},
		{TopicID: "budgeting", Date: today, Score: 40},
		{TopicID: "savings", Date: today, Score: 90},
	}}

	best := BestScores(p)
	if best["budgeting"] != 60 {
		t.Errorf("best[budgeting] = %d, want 60", best["budgeting"])
	}
	if best["savings"] != 90 {
		t.Errorf("best[savings] = %d, want 90", best["savings"])
	}
	if _, ok := best["investing"]; ok {
		t.Error("unexpected entry for investing")
	}
}

func TestSanitize(t *testing.T) {
	p := Profile{
		StreakCount:    -2,
		TotalPoints:    -10,
		LastLessonDate: &civil.Date{},
		CompletedLessons: []CompletionRecord{
			{TopicID: "budgeting", Date: today, Score: 40},
			{TopicID: "", Date: today, Score: 50},
			{TopicID: "savings", Date: civil.Date{}, Score: 50},
			{TopicID: "budgeting", Date: today, Score: 140},
			{TopicID: "savings", Date: yesterday, Score: -3},
		},
	}

	got := Sanitize(p)
	if got.StreakCount != 0 || got.TotalPoints != 0 {
		t.Errorf("counters = (%d, %d), want (0, 0)", got.StreakCount, got.TotalPoints)
	}
	if got.LastLessonDate != nil {
		t.Errorf("LastLessonDate = %v, want nil for an invalid date", got.LastLessonDate)
	}
	if len(got.CompletedLessons) != 2 {
		t.Fatalf("len(CompletedLessons) = %d, want 2: %+v", len(got.CompletedLessons), got.CompletedLessons)
	}
	if r := got.CompletedLessons[0]; r.TopicID != "budgeting" || r.Score != 100 {
		t.Errorf("first record = %+v, want budgeting clamped to 100", r)
	}
	if r := got.CompletedLessons[1]; r.TopicID != "savings" || r.Score != 0 {
		t.Errorf("second record = %+v, want savings clamped to 0", r)
	}
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2026, time.March, 14, 20, 0, 0, 0, time.UTC)

	if got := Today(now, time.UTC); got != today {
		t.Errorf("Today(UTC) = %v, want %v", got, today)
	}
	if got := Today(now, loc); got != today.AddDays(1) {
		t.Errorf("Today(UTC+10) = %v, want %v", got, today.AddDays(1))
	}
}

func TestModeString(t *testing.T) {
	if ModeNormal.String() != "normal" || ModePractice.String() != "practice" {
		t.Errorf("unexpected mode strings: %q %q", ModeNormal, ModePractice)
	}
}
