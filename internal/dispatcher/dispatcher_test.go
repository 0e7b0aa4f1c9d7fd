package dispatcher_test

import (
	"errors"
	"testing"

	"github.com/dshills/softtab/internal/dispatcher"
	"github.com/dshills/softtab/internal/dispatcher/handler"
	"github.com/dshills/softtab/internal/input/key"
)

type recorder struct {
	name   string
	result handler.Result
	seen   []key.Event
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Handle(ev key.Event) handler.Result {
	r.seen = append(r.seen, ev)
	return r.result
}

func TestDispatchEmptyChainForwards(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	if res := d.Dispatch(key.MustParse("a")); !res.IsForward() {
		t.Errorf("expected forward, got %v", res.Status)
	}
}

func TestDispatchForwardsUnchanged(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	first := &recorder{name: "first", result: handler.Forward()}
	second := &recorder{name: "second", result: handler.Handled().WithMessage("done")}
	third := &recorder{name: "third", result: handler.Handled()}

	for _, l := range []handler.Link{first, second, third} {
		if err := d.Append(l); err != nil {
			t.Fatalf("Append(%s): %v", l.Name(), err)
		}
	}

	ev := key.MustParse("S-Right")
	res := d.Dispatch(ev)

	if !res.IsHandled() || res.Message != "done" {
		t.Errorf("expected second link's result verbatim, got %+v", res)
	}
	if len(first.seen) != 1 || !first.seen[0].Equals(ev) {
		t.Errorf("first link saw %v", first.seen)
	}
	if len(second.seen) != 1 || !second.seen[0].Equals(ev) {
		t.Errorf("second link saw %v", second.seen)
	}
	if len(third.seen) != 0 {
		t.Errorf("third link should not run, saw %v", third.seen)
	}
}

func TestDispatchAllForward(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	_ = d.Append(&recorder{name: "a", result: handler.Forward()})
	_ = d.Append(&recorder{name: "b", result: handler.Forward()})

	if res := d.Dispatch(key.MustParse("Esc")); !res.IsForward() {
		t.Errorf("expected forward, got %v", res.Status)
	}
}

func TestDispatchErrorStopsChain(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	boom := errors.New("boom")
	_ = d.Append(&recorder{name: "bad", result: handler.Error(boom)})
	after := &recorder{name: "after", result: handler.Handled()}
	_ = d.Append(after)

	res := d.Dispatch(key.MustParse("x"))
	if res.Status != handler.StatusError || !errors.Is(res.Error, boom) {
		t.Errorf("expected boom error, got %+v", res)
	}
	if len(after.seen) != 0 {
		t.Error("link after an error should not run")
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	_ = d.Append(handler.NewLinkFunc("panicky", func(key.Event) handler.Result {
		panic("nope")
	}))

	res := d.Dispatch(key.MustParse("x"))
	if res.Status != handler.StatusError || !errors.Is(res.Error, dispatcher.ErrPanic) {
		t.Fatalf("expected ErrPanic, got %+v", res)
	}

	lm, ok := d.Metrics().Link("panicky")
	if !ok || lm.Panics != 1 {
		t.Errorf("expected 1 recorded panic, got %+v", lm)
	}
}

func TestChainEditing(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	_ = d.Append(&recorder{name: "softtab"})
	_ = d.Append(&recorder{name: "editor"})

	if err := d.Append(&recorder{name: "editor"}); !errors.Is(err, dispatcher.ErrDuplicateLink) {
		t.Errorf("expected ErrDuplicateLink, got %v", err)
	}
	if err := d.InsertBefore("softtab", &recorder{name: "completion"}); err != nil {
		t.Fatalf("InsertBefore: %v", err)
	}
	if err := d.InsertBefore("missing", &recorder{name: "x"}); !errors.Is(err, dispatcher.ErrLinkNotFound) {
		t.Errorf("expected ErrLinkNotFound, got %v", err)
	}

	got := d.Links()
	want := []string{"completion", "softtab", "editor"}
	if len(got) != len(want) {
		t.Fatalf("links = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("links = %v, want %v", got, want)
		}
	}

	if err := d.Remove("softtab"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := d.Remove("softtab"); !errors.Is(err, dispatcher.ErrLinkNotFound) {
		t.Errorf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestMetrics(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	_ = d.Append(handler.NewLinkFunc("arrows", func(ev key.Event) handler.Result {
		if ev.Key.IsArrowKey() {
			return handler.Handled()
		}
		return handler.Forward()
	}))

	d.Dispatch(key.MustParse("Left"))
	d.Dispatch(key.MustParse("Right"))
	d.Dispatch(key.MustParse("x"))

	lm, _ := d.Metrics().Link("arrows")
	if lm.Handled != 2 || lm.Forwarded != 1 {
		t.Errorf("unexpected link metrics %+v", lm)
	}
	dispatches, forwarded, errs := d.Metrics().Totals()
	if dispatches != 3 || forwarded != 1 || errs != 0 {
		t.Errorf("totals = %d/%d/%d", dispatches, forwarded, errs)
	}

	d.Metrics().Reset()
	if len(d.Metrics().Links()) != 0 {
		t.Error("Reset should clear link metrics")
	}
}
