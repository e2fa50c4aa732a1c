package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"wakealarm/internal/config"
	"wakealarm/internal/core/alarm"
	"wakealarm/internal/core/clock"
	"wakealarm/internal/core/countdown"
	"wakealarm/internal/core/model"
	"wakealarm/internal/ui/animation"
	"wakealarm/internal/xslog"
)

type timerCall struct {
	Text  string
	Class countdown.ColorClass
}

type fakeRenderer struct {
	mu       sync.Mutex
	timers   []timerCall
	progress []float64
	statuses []string
	scenes   int
}

func (renderer *fakeRenderer) RenderTimer(text string, class countdown.ColorClass) {
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	renderer.timers = append(renderer.timers, timerCall{Text: text, Class: class})
}

func (renderer *fakeRenderer) RenderProgress(percent float64) {
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	renderer.progress = append(renderer.progress, percent)
}

func (renderer *fakeRenderer) RenderStatus(message string) {
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	renderer.statuses = append(renderer.statuses, message)
}

func (renderer *fakeRenderer) RenderScene(animation.Frame) {
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	renderer.scenes++
}

func (renderer *fakeRenderer) lastTimer() timerCall {
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	if len(renderer.timers) == 0 {
		return timerCall{}
	}
	return renderer.timers[len(renderer.timers)-1]
}

func (renderer *fakeRenderer) hasStatus(message string) bool {
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	return slices.Contains(renderer.statuses, message)
}

type fakeNotifier struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errs     []string
	alarms   []string
	dismiss  func()
}

func (notifier *fakeNotifier) ShowInfo(message string) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.infos = append(notifier.infos, message)
}

func (notifier *fakeNotifier) ShowWarning(message string) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.warnings = append(notifier.warnings, message)
}

func (notifier *fakeNotifier) ShowError(message string) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.errs = append(notifier.errs, message)
}

func (notifier *fakeNotifier) ShowAlarm(message string, onDismiss func()) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.alarms = append(notifier.alarms, message)
	notifier.dismiss = onDismiss
}

func (notifier *fakeNotifier) alarmCount() int {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return len(notifier.alarms)
}

type fakePlayer struct {
	mu    sync.Mutex
	tones []int
}

func (player *fakePlayer) PlayTone(freqHz, _ int) error {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.tones = append(player.tones, freqHz)
	return nil
}

func (player *fakePlayer) PlayFile(string, int) error { return nil }
func (player *fakePlayer) Playing() bool              { return false }
func (player *fakePlayer) StopPlayback()              {}

func (player *fakePlayer) firstTone() int {
	player.mu.Lock()
	defer player.mu.Unlock()
	if len(player.tones) == 0 {
		return 0
	}
	return player.tones[0]
}

type fixture struct {
	app      *App
	clock    *clock.Manual
	renderer *fakeRenderer
	notifier *fakeNotifier
	player   *fakePlayer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.ToneGap = 0
	cfg.StarCount = 5

	f := &fixture{
		clock:    clock.NewManual(time.Date(2026, 1, 1, 7, 0, 0, 0, time.UTC)),
		renderer: &fakeRenderer{},
		notifier: &fakeNotifier{},
		player:   &fakePlayer{},
	}
	f.app = New(cfg, Deps{
		Renderer: f.renderer,
		Notifier: f.notifier,
		Player:   f.player,
		Clock:    f.clock,
		Logger:   xslog.Discard(),
	})
	t.Cleanup(func() { _ = f.app.Shutdown() })
	return f
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStartValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if err := f.app.StartCountdown("   ", 5); !errors.Is(err, countdown.ErrValidation) {
		t.Fatalf("blank name error = %v, want ErrValidation", err)
	}
	if err := f.app.StartCountdownText("Sam", "soon"); !errors.Is(err, countdown.ErrValidation) {
		t.Fatalf("bad minutes error = %v, want ErrValidation", err)
	}
	if got := f.app.Snapshot().Status; got != countdown.StatusIdle {
		t.Fatalf("status after rejected starts = %s, want idle", got)
	}
}

func TestCompletionFiresAlarmOnceAndAcknowledges(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if err := f.app.StartCountdown("Alex", 0.1); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		f.app.machine.Tick()
	}
	f.app.machine.Tick()

	if diff := cmp.Diff([]string{"Time's up Alex! Time to wake up!"}, f.notifier.alarms); diff != "" {
		t.Fatalf("alarm prompts mismatch (-want +got):\n%s", diff)
	}
	f.app.trigger.Wait()
	if got := len(f.player.tones); got != 10 {
		t.Fatalf("played %d tones, want 10", got)
	}

	f.notifier.dismiss()
	snapshot := f.app.Snapshot()
	if snapshot.Status != countdown.StatusIdle {
		t.Fatalf("status after dismiss = %s, want idle", snapshot.Status)
	}
	if f.app.AlarmActive() {
		t.Fatal("alarm still active after dismiss")
	}
	if got := f.renderer.lastTimer(); got != (timerCall{Text: "00:00", Class: countdown.ClassNormal}) {
		t.Fatalf("timer after dismiss = %+v", got)
	}
}

func TestStartWhileCompletedNeedsAcknowledgement(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if err := f.app.StartCountdown("Alex", 1.0/60); err != nil {
		t.Fatal(err)
	}
	f.app.machine.Tick()
	if err := f.app.StartCountdown("Alex", 1); !errors.Is(err, countdown.ErrAwaitingAcknowledgement) {
		t.Fatalf("start while completed = %v, want ErrAwaitingAcknowledgement", err)
	}
	f.app.Acknowledge()
	if err := f.app.StartCountdown("Alex", 1); err != nil {
		t.Fatalf("start after acknowledge: %v", err)
	}
}

func TestSoundChoiceCapturedAtStart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	urgent, _ := model.LookupPreset("urgent")
	gentle, _ := model.LookupPreset("gentle")
	f.app.SetAlarmChoice(urgent)
	if err := f.app.StartCountdown("Kai", 1.0/60); err != nil {
		t.Fatal(err)
	}
	f.app.SetAlarmChoice(gentle)
	f.app.machine.Tick()
	f.app.trigger.Wait()

	if got := f.player.firstTone(); got != urgent.FrequencyHz {
		t.Fatalf("first tone = %d Hz, want %d (captured at start)", got, urgent.FrequencyHz)
	}
	if diff := cmp.Diff(model.SoundChoice(gentle), f.app.AlarmChoice()); diff != "" {
		t.Fatalf("current choice mismatch (-want +got):\n%s", diff)
	}
}

func TestResetSuppressesCompletion(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if err := f.app.StartCountdown("Sam", 0.1); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		f.app.machine.Tick()
	}
	f.app.engine.Step()
	f.app.Reset()

	snapshot := f.app.Snapshot()
	if snapshot.Status != countdown.StatusIdle || snapshot.Remaining != 0 || snapshot.TargetPercent != 0 {
		t.Fatalf("snapshot after reset = %+v", snapshot)
	}
	if got := f.app.Engine().Progress(); got != 0 {
		t.Fatalf("displayed progress after reset = %.2f, want 0", got)
	}
	for i := 0; i < 10; i++ {
		f.app.machine.Tick()
	}
	if f.notifier.alarmCount() != 0 {
		t.Fatal("alarm fired after reset")
	}
}

func TestResetDuringCompletionHandoffSilencesAlarm(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if err := f.app.StartCountdown("Sam", 1.0/60); err != nil {
		t.Fatal(err)
	}

	// Holding the app lock parks the completion handler before it fires.
	f.app.mu.Lock()
	ticked := make(chan struct{})
	go func() {
		defer close(ticked)
		f.app.machine.Tick()
	}()
	eventually(t, "completed status", func() bool { return f.app.Snapshot().Status == countdown.StatusCompleted })
	f.app.Reset()
	f.app.mu.Unlock()

	<-ticked
	f.app.trigger.Wait()

	if got := f.app.Snapshot().Status; got != countdown.StatusIdle {
		t.Fatalf("status = %s, want idle", got)
	}
	f.player.mu.Lock()
	tones := len(f.player.tones)
	f.player.mu.Unlock()
	if prompts := f.notifier.alarmCount(); prompts != 0 || tones != 0 {
		t.Fatalf("alarm rang for a reset session: prompts=%d tones=%d", prompts, tones)
	}
}

func TestStalePromptCannotAcknowledgeLaterSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if err := f.app.StartCountdown("Alex", 1.0/60); err != nil {
		t.Fatal(err)
	}
	f.app.machine.Tick()
	f.notifier.mu.Lock()
	stale := f.notifier.dismiss
	f.notifier.mu.Unlock()

	f.app.Reset()
	if err := f.app.StartCountdown("Kai", 1.0/60); err != nil {
		t.Fatal(err)
	}
	f.app.machine.Tick()
	if f.notifier.alarmCount() != 2 {
		t.Fatalf("prompts = %d, want 2", f.notifier.alarmCount())
	}

	stale()
	if got := f.app.Snapshot().Status; got != countdown.StatusCompleted {
		t.Fatalf("stale dismissal moved the new session to %s", got)
	}

	f.notifier.mu.Lock()
	current := f.notifier.dismiss
	f.notifier.mu.Unlock()
	current()
	if got := f.app.Snapshot().Status; got != countdown.StatusIdle {
		t.Fatalf("status after dismissal = %s, want idle", got)
	}
}

func TestFrameRendersOnlyChanges(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if err := f.app.StartCountdown("Sam", 5); err != nil {
		t.Fatal(err)
	}
	f.app.engine.Step()
	f.app.engine.Step()

	f.renderer.mu.Lock()
	timers := append([]timerCall(nil), f.renderer.timers...)
	scenes := f.renderer.scenes
	f.renderer.mu.Unlock()

	if diff := cmp.Diff([]timerCall{{Text: "05:00", Class: countdown.ClassNormal}}, timers); diff != "" {
		t.Fatalf("timer renders mismatch (-want +got):\n%s", diff)
	}
	if scenes != 2 {
		t.Fatalf("scene rendered %d times, want 2", scenes)
	}

	for i := 0; i < 280; i++ {
		f.app.machine.Tick()
	}
	f.app.engine.Step()
	if got := f.renderer.lastTimer(); got != (timerCall{Text: "00:20", Class: countdown.ClassWarning}) {
		t.Fatalf("timer at 20s = %+v", got)
	}
}

func TestFrameNightFollowsStatus(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if frame := f.app.engine.Step(); frame.Night {
		t.Fatal("idle frame is night")
	}
	if err := f.app.StartCountdown("Sam", 5); err != nil {
		t.Fatal(err)
	}
	f.app.PauseResume()
	if frame := f.app.engine.Step(); !frame.Night {
		t.Fatal("paused frame should stay night")
	}
	f.app.Reset()
	if frame := f.app.engine.Step(); frame.Night {
		t.Fatal("frame after reset is night")
	}
}

func TestSelectCustomSound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	before := f.app.AlarmChoice()
	err := f.app.SelectCustomSound(filepath.Join(t.TempDir(), "nope.mp3"))
	if !errors.Is(err, alarm.ErrSoundFile) {
		t.Fatalf("missing file error = %v, want ErrSoundFile", err)
	}
	if diff := cmp.Diff(before, f.app.AlarmChoice()); diff != "" {
		t.Fatalf("choice changed after rejected file (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "rooster.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := f.app.SelectCustomSound(path); err != nil {
		t.Fatalf("SelectCustomSound: %v", err)
	}
	if diff := cmp.Diff(model.SoundChoice(model.CustomFile{Path: path}), f.app.AlarmChoice()); diff != "" {
		t.Fatalf("choice mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Custom alarm sound loaded: rooster.wav"}, f.notifier.infos); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRunningAppDrivesCountdown(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := f.app.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := f.app.Start(ctx); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second Start = %v, want ErrAlreadyStarted", err)
	}
	eventually(t, "ready status", func() bool { return f.renderer.hasStatus(StatusReady) })

	if err := f.app.StartCountdown("Alex", 0.1); err != nil {
		t.Fatal(err)
	}
	eventually(t, "start status", func() bool { return f.renderer.hasStatus("Hey Alex! Timer started!") })

	for i := 0; i < 6; i++ {
		waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
		// Frame ticker plus the armed tick timer.
		if err := f.clock.BlockUntil(waitCtx, 2); err != nil {
			waitCancel()
			t.Fatalf("tick %d never armed: %v", i+1, err)
		}
		waitCancel()
		f.clock.Advance(time.Second)
	}

	eventually(t, "alarm prompt", func() bool { return f.notifier.alarmCount() == 1 })
	eventually(t, "wake-up status", func() bool { return f.renderer.hasStatus(StatusWakeUp) })

	f.clock.Advance(10 * time.Second)
	time.Sleep(10 * time.Millisecond)
	if got := f.notifier.alarmCount(); got != 1 {
		t.Fatalf("alarm prompted %d times, want 1", got)
	}

	if err := f.app.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
