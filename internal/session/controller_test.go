package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/questiongen"
)

// testController returns a controller backed by a fresh profile and a
// fake clock that advances two seconds per reading.
func testController() *Controller {
	c := NewController(profile.New(time.Unix(0, 0)), rand.New(rand.NewSource(3)))
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time {
		clock = clock.Add(2 * time.Second)
		return clock
	}
	return c
}

func mustStart(t *testing.T, c *Controller, s Settings) *questiongen.Question {
	t.Helper()
	q, err := c.Start(s)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if q == nil {
		t.Fatal("Start returned nil question")
	}
	return q
}

func TestStartValidatesSettings(t *testing.T) {
	cases := []Settings{
		FixedQuestions{Types: nil, Difficulties: []questiongen.Difficulty{questiongen.DifficultyEasy}, Count: 5},
		FixedQuestions{Types: []questiongen.Type{questiongen.TypeSquares}, Difficulties: nil, Count: 5},
		FixedQuestions{Types: []questiongen.Type{questiongen.TypeSquares}, Difficulties: []questiongen.Difficulty{questiongen.DifficultyEasy}, Count: 0},
		FixedTime{Types: []questiongen.Type{questiongen.TypeSquares}, Difficulties: []questiongen.Difficulty{questiongen.DifficultyEasy}, TimeSecs: 5},
		Challenge{Types: []questiongen.Type{questiongen.TypeSquares}, TimeSecs: 20},
		Adaptive{Types: []questiongen.Type{questiongen.TypeSquares}},
		Adaptive{Types: []questiongen.Type{questiongen.TypeSquares}, Count: 10, TimeSecs: 60},
		Targeted{Spec: questiongen.TargetSpec{Kind: "bogus"}, Count: 5},
	}
	for _, s := range cases {
		c := testController()
		if _, err := c.Start(s); err == nil {
			t.Errorf("Start(%+v) accepted invalid settings", s)
		}
		if c.State().Phase != PhaseConfiguring {
			t.Errorf("failed Start left phase %v", c.State().Phase)
		}
	}
}

func TestFixedQuestionsEndToEnd(t *testing.T) {
	c := testController()
	q := mustStart(t, c, FixedQuestions{
		Types:        []questiongen.Type{questiongen.TypeMultiplication},
		Difficulties: []questiongen.Difficulty{questiongen.DifficultyEasy},
		Count:        3,
	})

	// Question 1: correct.
	out, err := c.Submit(q.Answer)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Status != profile.StatusCorrect || out.Done || out.Next == nil {
		t.Fatalf("question 1 outcome = %+v", out)
	}

	// Question 2: skipped.
	out, err = c.Skip()
	if err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if out.Status != profile.StatusSkipped || out.Done {
		t.Fatalf("question 2 outcome = %+v", out)
	}

	// Question 3: incorrect; target reached.
	out, err = c.Submit("not a number")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Status != profile.StatusIncorrect || !out.Done || out.Next != nil {
		t.Fatalf("question 3 outcome = %+v", out)
	}

	rec, err := c.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	sum := rec.Summary
	if sum.Correct != 1 || sum.Incorrect != 1 || sum.Skipped != 1 {
		t.Errorf("summary counts = %d/%d/%d, want 1/1/1", sum.Correct, sum.Incorrect, sum.Skipped)
	}
	if sum.Accuracy != 50.0 {
		t.Errorf("accuracy = %v, want 50.0", sum.Accuracy)
	}
	if len(rec.Details) != 3 {
		t.Fatalf("details length = %d, want 3", len(rec.Details))
	}
	wantOrder := []profile.Status{profile.StatusCorrect, profile.StatusSkipped, profile.StatusIncorrect}
	for i, want := range wantOrder {
		if rec.Details[i].Status != want {
			t.Errorf("details[%d].Status = %s, want %s", i, rec.Details[i].Status, want)
		}
	}
	if rec.Details[1].TimeMs != nil || rec.Details[1].UserAnswer != profile.SkippedAnswer {
		t.Errorf("skipped detail = %+v", rec.Details[1])
	}
	if rec.Details[0].TimeMs == nil {
		t.Error("answered detail missing TimeMs")
	}
}

func TestSubmitAfterEndFails(t *testing.T) {
	c := testController()
	mustStart(t, c, FixedQuestions{
		Types:        []questiongen.Type{questiongen.TypeSquares},
		Difficulties: []questiongen.Difficulty{questiongen.DifficultyEasy},
		Count:        1,
	})
	if _, err := c.Skip(); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if _, err := c.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if _, err := c.Submit("1"); err == nil {
		t.Error("Submit after End succeeded")
	}
	// End is idempotent once ended.
	rec1, _ := c.End()
	rec2, _ := c.End()
	if rec1 != rec2 {
		t.Error("repeated End built a second record")
	}
}

func TestTickCountdownExpires(t *testing.T) {
	c := testController()
	mustStart(t, c, FixedTime{
		Types:        []questiongen.Type{questiongen.TypeMultiplication},
		Difficulties: []questiongen.Difficulty{questiongen.DifficultyEasy},
		TimeSecs:     10,
	})
	for i := 0; i < 9; i++ {
		if c.Tick() {
			t.Fatalf("expired after %d ticks", i+1)
		}
	}
	if !c.Tick() {
		t.Fatal("clock did not expire at zero")
	}
	// The next resolution ends the session.
	out, err := c.Submit("0")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !out.Done {
		t.Error("resolution after expiry did not end the session")
	}
}

func TestTickNoopForCountBound(t *testing.T) {
	c := testController()
	mustStart(t, c, FixedQuestions{
		Types:        []questiongen.Type{questiongen.TypeMultiplication},
		Difficulties: []questiongen.Difficulty{questiongen.DifficultyEasy},
		Count:        5,
	})
	for i := 0; i < 100; i++ {
		if c.Tick() {
			t.Fatal("count-bound session expired on tick")
		}
	}
}

func TestAdaptiveRamp(t *testing.T) {
	c := testController()
	mustStart(t, c, Adaptive{
		Types:    []questiongen.Type{questiongen.TypeMultiplication},
		TimeSecs: 600,
	})
	// Timed adaptive uses the default threshold of 5.
	for i := 0; i < 5; i++ {
		if got := c.State().Ramp.Difficulty; got != questiongen.DifficultyEasy {
			t.Fatalf("difficulty stepped early at %d: %s", i, got)
		}
		if _, err := c.Submit(c.State().CurrentQuestion.Answer); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if got := c.State().Ramp.Difficulty; got != questiongen.DifficultyMedium {
		t.Fatalf("after 5 correct, difficulty = %s, want medium", got)
	}
	// Two consecutive wrong answers step back down.
	for i := 0; i < 2; i++ {
		if _, err := c.Submit("wrong"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if got := c.State().Ramp.Difficulty; got != questiongen.DifficultyEasy {
		t.Fatalf("after 2 incorrect, difficulty = %s, want easy", got)
	}
}

func TestAdaptiveIncreaseThresholdClamp(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{1, 2},
		{5, 2},
		{10, 2},
		{15, 3},
		{20, 4},
		{25, 5},
		{100, 5},
	}
	for _, tc := range cases {
		if got := IncreaseThresholdFor(tc.count); got != tc.want {
			t.Errorf("IncreaseThresholdFor(%d) = %d, want %d", tc.count, got, tc.want)
		}
	}
}

func TestChallengeRatchetAndBonus(t *testing.T) {
	c := testController()
	mustStart(t, c, Challenge{
		Types:    []questiongen.Type{questiongen.TypeMultiplication},
		TimeSecs: 60,
	})
	before := c.State().RemainingSecs

	// Three correct at easy ratchet difficulty up and bank 0.5s each.
	for i := 0; i < 3; i++ {
		out, err := c.Submit(c.State().CurrentQuestion.Answer)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if out.BonusSecs != 0.5 {
			t.Fatalf("easy bonus = %v, want 0.5", out.BonusSecs)
		}
	}
	if got := c.State().Ramp.Difficulty; got != questiongen.DifficultyMedium {
		t.Fatalf("after 3 correct, difficulty = %s, want medium", got)
	}
	if got := c.State().ChallengeScore; got != 1.5 {
		t.Errorf("challenge score = %v, want 1.5", got)
	}
	// Each 0.5s bonus rounds to a whole second on the clock.
	if got := c.State().RemainingSecs; got != before+3 {
		t.Errorf("remaining = %d, want %d", got, before+3)
	}

	// Wrong answers never step challenge difficulty down.
	for i := 0; i < 5; i++ {
		if _, err := c.Submit("wrong"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if got := c.State().Ramp.Difficulty; got != questiongen.DifficultyMedium {
		t.Errorf("challenge difficulty dropped to %s", got)
	}
}

func TestTargetedSessionExcludedFromProfile(t *testing.T) {
	c := testController()
	mustStart(t, c, Targeted{
		Spec:  questiongen.TargetSpec{Kind: questiongen.TargetMultiplicationTable, Tables: []int{6}},
		Count: 2,
	})
	if got := c.State().CurrentQuestion.Difficulty; got != questiongen.DifficultyTargeted {
		t.Fatalf("targeted question difficulty = %s", got)
	}
	if _, err := c.Submit(c.State().CurrentQuestion.Answer); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := c.Submit("wrong"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := c.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if len(c.prof.Performance) != 0 {
		t.Errorf("targeted session touched buckets: %+v", c.prof.Performance)
	}
	if c.prof.Global.Sessions != 1 {
		t.Errorf("session not counted globally: %+v", c.prof.Global)
	}
}

func TestEndAppliesToProfile(t *testing.T) {
	c := testController()
	mustStart(t, c, FixedQuestions{
		Types:        []questiongen.Type{questiongen.TypeCubes},
		Difficulties: []questiongen.Difficulty{questiongen.DifficultyHard},
		Count:        2,
	})
	if _, err := c.Submit(c.State().CurrentQuestion.Answer); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := c.Submit("wrong"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	rec, err := c.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	b := c.prof.Bucket(questiongen.TypeCubes, questiongen.DifficultyHard)
	if b.TotalAttempts != 2 || b.Correct != 1 {
		t.Errorf("bucket = %+v", b)
	}
	if b.Mastery != 0.5 {
		t.Errorf("mastery = %v, want 0.5", b.Mastery)
	}
	if c.prof.SessionByID(rec.ID) == nil {
		t.Error("record not in history")
	}
	// mastery 0.5 → 3-day review interval
	due := c.prof.ReviewSchedule[questiongen.TypeCubes][questiongen.DifficultyHard]
	if want := rec.EndedAt.AddDate(0, 0, 3); !due.Equal(want) {
		t.Errorf("review due %v, want %v", due, want)
	}
}

func TestSpeedTag(t *testing.T) {
	cases := []struct {
		timeMs, avgMs int64
		want          string
	}{
		{500, 1000, "fast"},
		{749, 1000, "fast"},
		{750, 1000, ""},
		{1250, 1000, ""},
		{1251, 1000, "slow"},
		{100, 0, ""},
	}
	for _, tc := range cases {
		if got := SpeedTag(tc.timeMs, tc.avgMs); got != tc.want {
			t.Errorf("SpeedTag(%d, %d) = %q, want %q", tc.timeMs, tc.avgMs, got, tc.want)
		}
	}
}
