package lasso

import (
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/samdwyer/linguaquest/data"
	"github.com/samdwyer/linguaquest/internal/input"
	"github.com/samdwyer/linguaquest/internal/schedule"
)

func testQuestions() []Question {
	return []Question{
		{WordParts: []string{"squirrels", "the", "gather", "nuts"}, CorrectOrderIndices: []int{1, 0, 2, 3}},
		{WordParts: []string{"is", "the", "lake", "frozen"}, CorrectOrderIndices: []int{1, 2, 0, 3}},
	}
}

func newTestPuzzle(cfg Config) (*Puzzle, *schedule.Scheduler) {
	sched := schedule.New()
	return NewPuzzle(cfg, testQuestions(), rand.New(rand.NewSource(5)), sched), sched
}

func collectAll(p *Puzzle, order []int) {
	for _, id := range order {
		p.Collect(id)
	}
}

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"valid", Question{WordParts: []string{"a", "b"}, CorrectOrderIndices: []int{1, 0}}, false},
		{"empty", Question{}, true},
		{"short order", Question{WordParts: []string{"a", "b"}, CorrectOrderIndices: []int{0}}, true},
		{"out of range", Question{WordParts: []string{"a", "b"}, CorrectOrderIndices: []int{0, 2}}, true},
		{"repeated", Question{WordParts: []string{"a", "b"}, CorrectOrderIndices: []int{1, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadQuestionsSkipsInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"q.json": {Data: []byte(`{"questions":[
			{"wordParts":["b","a"],"correctOrderIndices":[1,0]},
			{"wordParts":["x"],"correctOrderIndices":[3]}
		]}`)},
		"bad.json": {Data: []byte(`{"questions":`)},
	}

	if qs := LoadQuestions(fsys, "q.json"); len(qs) != 1 {
		t.Errorf("loaded %d questions, want 1", len(qs))
	}
	if qs := LoadQuestions(fsys, "bad.json"); qs != nil {
		t.Errorf("malformed file gave %v", qs)
	}
	if qs := LoadQuestions(fsys, "missing.json"); qs != nil {
		t.Errorf("missing file gave %v", qs)
	}
}

func TestEmbeddedQuestions(t *testing.T) {
	qs := LoadQuestions(data.Lasso(), "word_order.json")
	if len(qs) == 0 {
		t.Fatal("no embedded questions")
	}
	if got := qs[0].Answer(); len(got) != 4 || got[0] != "the" || got[1] != "squirrels" {
		t.Errorf("answer = %v", got)
	}
}

func TestStartShufflesEveryPart(t *testing.T) {
	p, _ := newTestPuzzle(DefaultConfig())
	p.Start()

	if p.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, want playing", p.Phase())
	}
	seen := make(map[int]bool)
	for _, w := range p.Words() {
		if w.Text != testQuestions()[0].WordParts[w.ID] {
			t.Errorf("word %d text %q does not match its part", w.ID, w.Text)
		}
		seen[w.ID] = true
	}
	if len(seen) != 4 {
		t.Errorf("got %d distinct words, want 4", len(seen))
	}
}

func TestCorrectOrderAdvances(t *testing.T) {
	cfg := DefaultConfig()
	p, sched := newTestPuzzle(cfg)
	p.Start()

	collectAll(p, []int{1, 0, 2, 3})
	if p.Phase() != PhaseSuccess {
		t.Fatalf("phase = %v, want success", p.Phase())
	}
	if p.Assembled() != "the squirrels gather nuts" {
		t.Errorf("assembled = %q", p.Assembled())
	}
	if p.Collect(1) {
		t.Error("collect accepted during feedback")
	}

	sched.Tick(cfg.SuccessDelay + 0.01)
	if idx, _ := p.QuestionIndex(); idx != 1 || p.Phase() != PhasePlaying {
		t.Fatalf("index = %d phase = %v after success", idx, p.Phase())
	}

	collectAll(p, []int{1, 2, 0, 3})
	sched.Tick(cfg.SuccessDelay + 0.01)
	if p.Phase() != PhaseComplete {
		t.Errorf("phase = %v, want complete", p.Phase())
	}
	if p.Solved() != 2 || p.Failures() != 0 {
		t.Errorf("solved = %d failures = %d", p.Solved(), p.Failures())
	}
}

func TestWrongOrderResetsSameQuestion(t *testing.T) {
	cfg := DefaultConfig()
	p, sched := newTestPuzzle(cfg)
	p.Start()

	collectAll(p, []int{0, 1, 2, 3})
	if p.Phase() != PhaseFail {
		t.Fatalf("phase = %v, want fail", p.Phase())
	}

	sched.Tick(cfg.SuccessDelay + 0.01)
	if p.Phase() != PhaseFail {
		t.Fatal("reset before the fail delay")
	}
	sched.Tick(cfg.FailDelay)

	if idx, _ := p.QuestionIndex(); idx != 0 || p.Phase() != PhasePlaying {
		t.Errorf("index = %d phase = %v, want same question replaying", idx, p.Phase())
	}
	if p.Assembled() != "" {
		t.Errorf("collected words kept after reset: %q", p.Assembled())
	}
	if p.Failures() != 1 {
		t.Errorf("failures = %d, want 1", p.Failures())
	}
}

func TestCollectRejectsDuplicatesAndUnknown(t *testing.T) {
	p, _ := newTestPuzzle(DefaultConfig())
	p.Start()

	if !p.Collect(2) {
		t.Fatal("collect failed")
	}
	if p.Collect(2) {
		t.Error("collected the same word twice")
	}
	if p.Collect(42) {
		t.Error("collected an unknown word")
	}
}

func TestPutBackRequiresUndo(t *testing.T) {
	p, _ := newTestPuzzle(DefaultConfig())
	p.Start()
	p.Collect(1)
	if p.PutBack() {
		t.Error("put back allowed with undo disabled")
	}

	cfg := DefaultConfig()
	cfg.UndoEnabled = true
	p, _ = newTestPuzzle(cfg)
	p.Start()
	p.Collect(1)
	p.Collect(3)

	if !p.PutBack() {
		t.Fatal("put back failed")
	}
	if p.Assembled() != "the" {
		t.Errorf("assembled = %q, want %q", p.Assembled(), "the")
	}
	// The returned word can be collected again.
	if !p.Collect(3) {
		t.Error("could not re-collect the returned word")
	}
}

func TestHandleInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UndoEnabled = true
	p, _ := newTestPuzzle(cfg)
	p.Start()

	in := input.NewState()
	in.Press(input.ActionPrev)
	p.HandleInput(in)
	in.EndTick()
	if p.Cursor() != 3 {
		t.Fatalf("cursor = %d, want 3 after wrapping", p.Cursor())
	}

	in.Press(input.ActionInteract)
	p.HandleInput(in)
	in.EndTick()
	want := p.Words()[3].Text
	if p.Assembled() != want {
		t.Errorf("assembled = %q, want %q", p.Assembled(), want)
	}

	in.Press(input.ActionUndo)
	p.HandleInput(in)
	in.EndTick()
	if p.Assembled() != "" {
		t.Errorf("undo did not put the word back: %q", p.Assembled())
	}
}

func TestStartWithoutQuestions(t *testing.T) {
	p := NewPuzzle(DefaultConfig(), nil, nil, nil)
	p.Start()
	if p.Phase() != PhaseComplete {
		t.Errorf("phase = %v, want complete", p.Phase())
	}
}

func TestNoSchedulerResolvesImmediately(t *testing.T) {
	p := NewPuzzle(DefaultConfig(), testQuestions(), nil, nil)
	p.Start()
	collectAll(p, []int{1, 0, 2, 3})

	if idx, _ := p.QuestionIndex(); idx != 1 || p.Phase() != PhasePlaying {
		t.Errorf("index = %d phase = %v, want next question", idx, p.Phase())
	}
}
