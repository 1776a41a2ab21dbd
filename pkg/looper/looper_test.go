package looper

import (
	"io"
	"testing"

	"github.com/tonefall/voice/pkg/debug"
	"github.com/tonefall/voice/pkg/sink"
)

func quietLogger() *debug.Logger {
	l := debug.New(io.Discard, "")
	l.SetLevel(debug.LevelOff)
	return l
}

func TestScriptedCycleTiming(t *testing.T) {
	out := sink.NewMemory()
	out.SetClip(sink.StubClip{Seconds: 1})

	cycles := 0
	l := New(out, func() (float64, bool) {
		cycles++
		out.Play()
		return 1.0, true
	})

	l.Start(false)
	if cycles != 1 {
		t.Fatalf("cycles after Start = %d, want 1", cycles)
	}
	if l.Phase() != PhaseLooping {
		t.Fatalf("phase = %v, want Looping", l.Phase())
	}

	// 2.5 seconds of ticks: cycles at t=1.0 and t=2.0.
	for i := 0; i < 10; i++ {
		l.Update(0.25)
	}
	if cycles != 3 {
		t.Errorf("cycles after 2.5s = %d, want 3", cycles)
	}
}

func TestScriptedStopWhenCycleFails(t *testing.T) {
	out := sink.NewMemory()
	calls := 0
	l := New(out, func() (float64, bool) {
		calls++
		return 0.25, calls == 1 // first cycle plays, second has nothing
	})

	l.Start(false)
	l.Update(0.25)
	if l.Phase() != PhaseStopped {
		t.Errorf("phase after failed cycle = %v, want Stopped", l.Phase())
	}
}

func TestScriptedZeroWaitNeverStartsLoop(t *testing.T) {
	out := sink.NewMemory()
	out.SetClip(sink.StubClip{Seconds: 0})

	cycles := 0
	l := New(out, func() (float64, bool) {
		cycles++
		out.Play()
		return 0, true // a zero-length clip schedules no wait
	})
	l.SetLogger(quietLogger())

	l.Start(false)
	if l.Phase() != PhaseStopped {
		t.Fatalf("phase after zero-wait start = %v, want Stopped", l.Phase())
	}
	if cycles != 1 {
		t.Errorf("cycles = %d, want exactly 1", cycles)
	}
}

func TestScriptedZeroWaitMidLoopStops(t *testing.T) {
	out := sink.NewMemory()
	cycles := 0
	l := New(out, func() (float64, bool) {
		cycles++
		if cycles > 1 {
			return 0, true // clip swapped for a zero-length one mid-loop
		}
		return 0.25, true
	})
	l.SetLogger(quietLogger())

	l.Start(false)
	// Each tick must return; a zero wait ends the loop instead of
	// re-cycling forever inside one Update.
	l.Update(0.25)
	if l.Phase() != PhaseStopped {
		t.Errorf("phase after zero-wait cycle = %v, want Stopped", l.Phase())
	}
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2 (no respin)", cycles)
	}
}

func TestStartWithNothingPlayable(t *testing.T) {
	out := sink.NewMemory()
	l := New(out, func() (float64, bool) { return 0, false })

	l.Start(false)
	if l.Phase() != PhaseStopped {
		t.Errorf("scripted phase = %v, want Stopped", l.Phase())
	}

	l.Start(true)
	if l.Phase() != PhaseStopped {
		t.Errorf("native phase = %v, want Stopped", l.Phase())
	}
	if out.Looping() {
		t.Error("sink loop flag left raised after failed native start")
	}
}

func TestScriptedPauseCachesRemaining(t *testing.T) {
	out := sink.NewMemory()
	cycles := 0
	l := New(out, func() (float64, bool) {
		cycles++
		return 1.0, true
	})

	l.Start(false)
	l.Update(0.25)
	l.Update(0.25) // 0.5s remaining

	l.Pause()
	if l.Phase() != PhasePaused {
		t.Fatalf("phase = %v, want Paused", l.Phase())
	}
	for i := 0; i < 20; i++ {
		l.Update(0.25) // paused: no cycles
	}
	if cycles != 1 {
		t.Fatalf("cycles advanced while paused: %d", cycles)
	}

	l.UnPause()
	l.Update(0.25) // 0.25s: not yet
	if cycles != 1 {
		t.Errorf("cycle fired early after resume: %d", cycles)
	}
	l.Update(0.25) // 0.5s: now
	if cycles != 2 {
		t.Errorf("cycle did not fire at cached remaining time: %d", cycles)
	}
}

func TestNativeLoopRaisesSinkFlag(t *testing.T) {
	out := sink.NewMemory()
	out.SetClip(sink.StubClip{Seconds: 1})

	l := New(out, func() (float64, bool) {
		out.Play()
		return 0, true
	})

	l.Start(true)
	if !out.Looping() {
		t.Error("native start did not raise the sink loop flag")
	}
	if !l.Native() {
		t.Error("looper does not report native mode")
	}

	l.Stop()
	if out.Looping() {
		t.Error("Stop left the sink loop flag raised")
	}
}

func TestNativeRepeatFiresOncePerWrap(t *testing.T) {
	out := sink.NewMemory()
	out.SetClip(sink.StubClip{Seconds: 1})

	l := New(out, func() (float64, bool) {
		out.Play()
		return 0, true
	})
	repeats := 0
	l.OnRepeat = func() { repeats++ }

	l.Start(true)
	// Drive the sink and the looper together for 3.75 clip lengths.
	for i := 0; i < 30; i++ {
		out.Update(0.125)
		l.Update(0.125)
	}
	if repeats != 3 {
		t.Errorf("OnRepeat fired %d times over 3 wraps, want 3", repeats)
	}
}

func TestNativePauseDropsLoopFlag(t *testing.T) {
	out := sink.NewMemory()
	out.SetClip(sink.StubClip{Seconds: 1})

	l := New(out, func() (float64, bool) {
		out.Play()
		return 0, true
	})

	l.Start(true)
	l.Pause()
	if out.Looping() {
		t.Error("pause left the sink loop flag raised")
	}

	l.UnPause()
	if !out.Looping() {
		t.Error("unpause did not restore the sink loop flag")
	}
	if l.Phase() != PhaseLooping {
		t.Errorf("phase after unpause = %v, want Looping", l.Phase())
	}
}
