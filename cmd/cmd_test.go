package cmd

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/urfave/cli"

	cmdCommon "github.com/nudgecli/nudge/cmd/common"
	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/config"
	"github.com/nudgecli/nudge/internal/email"
	"github.com/nudgecli/nudge/internal/llm"
	"github.com/nudgecli/nudge/internal/notify"
	"github.com/nudgecli/nudge/internal/osched"
	"github.com/nudgecli/nudge/internal/reminder"
	"github.com/nudgecli/nudge/internal/scheduler"
	"github.com/nudgecli/nudge/pkg/logger"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeAdapter struct {
	scheduled []reminder.Request
	cancelled []string
	backend   string
	err       error
}

func (f *fakeAdapter) Schedule(ctx context.Context, req reminder.Request) (osched.ScheduledReminder, error) {
	if f.err != nil {
		return osched.ScheduledReminder{}, f.err
	}
	f.scheduled = append(f.scheduled, req)
	return osched.ScheduledReminder{
		ID:        "1773144000000-0a1b2c3d",
		Task:      req.Task,
		When:      req.When,
		Platform:  "linux",
		Backend:   "systemd",
		Artifacts: []string{"/home/tester/.local-reminders/1773144000000-0a1b2c3d.sh"},
	}, nil
}

func (f *fakeAdapter) Cancel(ctx context.Context, id string) error {
	if id != "1773144000000-0a1b2c3d" {
		return osched.ErrUnknownReminder
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeAdapter) Backend() string { return "fake" }

type fakeSender struct {
	sent []email.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, m email.Message) (email.SendResult, error) {
	if err := m.Validate(); err != nil {
		return email.SendResult{}, err
	}
	if f.err != nil {
		return email.SendResult{}, &common.SendError{Recipient: m.To, Err: f.err}
	}
	f.sent = append(f.sent, m)
	return email.SendResult{Success: true}, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(ctx context.Context, title, message string) error {
	r.mu.Lock()
	r.messages = append(r.messages, title+": "+message)
	r.mu.Unlock()
	return nil
}

func (r *recordingNotifier) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

type memStore map[string]string

func (m memStore) Get(name string) (string, error) {
	v, ok := m[name]
	if !ok {
		return "", config.ErrSecretNotFound
	}
	return v, nil
}
func (m memStore) Set(name, value string) error { m[name] = value; return nil }
func (m memStore) Delete(name string) error {
	if _, ok := m[name]; !ok {
		return config.ErrSecretNotFound
	}
	delete(m, name)
	return nil
}

// testEnv swaps every seam for a fake and restores them on cleanup.
type testEnv struct {
	adapter    *fakeAdapter
	adapterErr error
	llm        *llm.Fake
	sender     *fakeSender
	notifier   *recordingNotifier
	store      memStore
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, env := range []string{
		common.SMTPHostEnv, common.SMTPPortEnv, common.SMTPUserEnv, common.SMTPPassEnv,
		common.SMTPFromEnv, common.LLMAPIKeyEnv, common.LLMBaseURLEnv, common.LLMModelEnv,
		common.BackendEnv, common.StorageDirEnv, common.DebugEnv,
	} {
		t.Setenv(env, "")
	}
	te := &testEnv{
		adapter:  &fakeAdapter{},
		sender:   &fakeSender{},
		notifier: &recordingNotifier{},
		store:    memStore{},
	}
	dir := t.TempDir()

	oldConfigDir, oldStore, oldNow := configDir, secretStore, now
	oldAdapter, oldLLM, oldSender, oldNotifier := newAdapter, newLLMClient, newSender, newNotifier
	t.Cleanup(func() {
		configDir, secretStore, now = oldConfigDir, oldStore, oldNow
		newAdapter, newLLMClient, newSender, newNotifier = oldAdapter, oldLLM, oldSender, oldNotifier
		resetFlags()
	})
	resetFlags()

	configDir = func() (string, error) { return dir, nil }
	secretStore = func() config.SecretStore { return te.store }
	now = func() time.Time { return testNow }
	newAdapter = func(cfg *config.Config, backend string, l logger.Logger) (osched.Adapter, error) {
		if te.adapterErr != nil {
			return nil, te.adapterErr
		}
		te.adapter.backend = backend
		return te.adapter, nil
	}
	newLLMClient = func(cfg *config.Config, l logger.Logger) (llm.Client, error) {
		if te.llm == nil {
			return nil, common.NewValidationError("llm.api_key", "not configured")
		}
		return te.llm, nil
	}
	newSender = func(cfg *config.Config, l logger.Logger) (email.Sender, error) {
		return te.sender, nil
	}
	newNotifier = func(l logger.Logger) (notify.Notifier, error) {
		return te.notifier, nil
	}
	return te
}

func resetFlags() {
	remindTask, remindAt, remindMinutes, remindBackend = "", "", 0, ""
	mailTo, mailTopic, mailTone, mailSubject, mailBody, dryRun = "", "", "", "", "", false
	watchRepeat, watchStdout = "", false
	serveAddr = ""
}

func TestRemind_FreeText(t *testing.T) {
	te := setupTestEnv(t)
	app := cli.NewApp()
	ctx := newContext(app, []string{"me", "to", "drink", "water", "in", "10", "minutes"}, "remind")

	var err error
	stdout := captureStdout(func() { err = remind(ctx) })
	if err != nil {
		t.Fatalf("remind: %v", err)
	}
	assertContains(t, stdout, "Reminder scheduled", "drink water", "1773144000000-0a1b2c3d", "systemd")
	if len(te.adapter.scheduled) != 1 {
		t.Fatalf("expected one scheduled reminder, got %d", len(te.adapter.scheduled))
	}
	if got := te.adapter.scheduled[0].When; !got.Equal(testNow.Add(10 * time.Minute)) {
		t.Errorf("When = %v, want %v", got, testNow.Add(10*time.Minute))
	}
}

func TestRemind_TaskWithMinutes(t *testing.T) {
	te := setupTestEnv(t)
	remindTask, remindMinutes, remindBackend = "stand up", 30, "at"
	ctx := newContext(cli.NewApp(), nil, "remind")

	var err error
	captureStdout(func() { err = remind(ctx) })
	if err != nil {
		t.Fatalf("remind: %v", err)
	}
	if te.adapter.backend != "at" {
		t.Errorf("backend = %q, want at", te.adapter.backend)
	}
	if r := te.adapter.scheduled[0]; r.Task != "stand up" || !r.When.Equal(testNow.Add(30*time.Minute)) {
		t.Errorf("scheduled %+v", r)
	}
}

func TestRemind_TaskWithoutTime(t *testing.T) {
	setupTestEnv(t)
	remindTask = "stand up"
	ctx := newContext(cli.NewApp(), nil, "remind")

	var err error
	stdout := captureStdout(func() { err = remind(ctx) })
	if !errors.Is(err, cmdCommon.ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	assertContains(t, stdout, "--task needs --at or --in-minutes")
}

func TestRemind_NoArgs(t *testing.T) {
	setupTestEnv(t)
	ctx := newContext(cli.NewApp(), nil, "remind")
	stdout := captureStdout(func() { remind(ctx) })
	assertContains(t, stdout, "no reminder text provided")
}

func TestRemind_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		setup  func(*testEnv)
		action string
		msg    string
	}{
		{"unparseable", []string{"buy", "milk"}, nil, "parse", "unrecognized reminder syntax"},
		{"past", []string{"meeting", "2020-01-01T09:00:00Z"}, nil, "parse", "in the past"},
		{"unsupported", []string{"me", "to", "x", "in", "1", "minute"}, func(te *testEnv) {
			te.adapterErr = &common.UnsupportedPlatformError{Platform: "plan9"}
		}, "select_backend", "plan9"},
		{"schedule", []string{"me", "to", "x", "in", "1", "minute"}, func(te *testEnv) {
			te.adapter.err = &common.SchedulingError{Op: "systemctl", Output: "Failed to connect to bus", Err: errors.New("exit status 1")}
		}, "schedule", "Failed to connect to bus"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			te := setupTestEnv(t)
			if tc.setup != nil {
				tc.setup(te)
			}
			ctx := newContext(cli.NewApp(), tc.args, "remind")
			var err error
			stdout := captureStdout(func() { err = remind(ctx) })
			if !errors.Is(err, cmdCommon.ErrReported) {
				t.Fatalf("expected ErrReported, got %v", err)
			}
			assertErrorFormat(t, stdout, "remind", tc.action)
			assertContains(t, stdout, tc.msg)
		})
	}
}

func TestRemind_LLMFallback(t *testing.T) {
	te := setupTestEnv(t)
	te.llm = &llm.Fake{Response: `{"task":"call mom","datetime":"2026-03-11T18:00:00Z"}`}
	ctx := newContext(cli.NewApp(), []string{"ring", "mom", "tomorrow", "evening"}, "remind")

	var err error
	captureStdout(func() { err = remind(ctx) })
	if err != nil {
		t.Fatalf("remind: %v", err)
	}
	want := time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC)
	if r := te.adapter.scheduled[0]; r.Task != "call mom" || !r.When.Equal(want) {
		t.Errorf("scheduled %+v", r)
	}
	if len(te.llm.Requests()) != 1 {
		t.Errorf("expected one model call, got %d", len(te.llm.Requests()))
	}
}

func TestReminderText(t *testing.T) {
	if got := reminderText([]string{"me", "to", "nap", "in", "5", "minutes"}); got != "remind me to nap in 5 minutes" {
		t.Errorf("got %q", got)
	}
	if got := reminderText([]string{"set", "rent", "for", "2026-04-01"}); got != "set rent for 2026-04-01" {
		t.Errorf("got %q", got)
	}
}

func TestCancelReminder(t *testing.T) {
	te := setupTestEnv(t)
	ctx := newContext(cli.NewApp(), []string{"1773144000000-0a1b2c3d"}, "cancel")
	var err error
	stdout := captureStdout(func() { err = cancelReminder(ctx) })
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	assertContains(t, stdout, "cancelled")
	if len(te.adapter.cancelled) != 1 {
		t.Errorf("cancelled = %v", te.adapter.cancelled)
	}

	ctx = newContext(cli.NewApp(), []string{"nope"}, "cancel")
	stdout = captureStdout(func() { err = cancelReminder(ctx) })
	if !errors.Is(err, cmdCommon.ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	assertErrorFormat(t, stdout, "remind", "cancel")
	assertContains(t, stdout, osched.ErrUnknownReminder.Error())
}

func TestDraftEmail(t *testing.T) {
	te := setupTestEnv(t)
	te.llm = &llm.Fake{Response: "```json\n{\"subject\":\"Lunch Friday?\",\"body\":\"<p>Are you free?</p>\"}\n```"}
	mailTo, mailTopic, mailTone = "bob@example.com", "lunch", "casual"
	ctx := newContext(cli.NewApp(), nil, "draft")

	var err error
	stdout := captureStdout(func() { err = draftEmail(ctx) })
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	assertContains(t, stdout, "Subject: Lunch Friday?", "Are you free?")
	assertNotContains(t, stdout, "<p>")
	assertNotContains(t, stdout, "placeholder")
	if len(te.sender.sent) != 0 {
		t.Error("draft must not send")
	}
	if p := te.llm.Requests()[0].Prompt; !strings.Contains(p, "Tone: casual") {
		t.Errorf("prompt = %q", p)
	}
}

func TestDraftEmail_RawFallback(t *testing.T) {
	te := setupTestEnv(t)
	te.llm = &llm.Fake{Response: "Hi Bob, lunch on Friday?"}
	mailTo, mailTopic = "bob@example.com", "lunch"
	ctx := newContext(cli.NewApp(), nil, "draft")

	stdout := captureStdout(func() { draftEmail(ctx) })
	assertContains(t, stdout, "Subject: Draft email", "Hi Bob, lunch on Friday?", "placeholder")
}

func TestDraftEmail_Errors(t *testing.T) {
	te := setupTestEnv(t)
	mailTo, mailTopic = "bob@example.com", "lunch"
	ctx := newContext(cli.NewApp(), nil, "draft")

	stdout := captureStdout(func() { draftEmail(ctx) })
	assertErrorFormat(t, stdout, "draft", "new_client")

	te.llm = &llm.Fake{Err: errors.New("503 overloaded")}
	stdout = captureStdout(func() { draftEmail(ctx) })
	assertErrorFormat(t, stdout, "draft", "generate")
	assertContains(t, stdout, "503 overloaded")

	mailTopic = ""
	stdout = captureStdout(func() { draftEmail(ctx) })
	assertContains(t, stdout, "no topic provided")
}

func TestComposeEmail(t *testing.T) {
	te := setupTestEnv(t)
	te.llm = &llm.Fake{Response: `{"subject":"Report","body":"Attached."}`}
	mailTo, mailTopic = "boss@example.com", "quarterly report"
	ctx := newContext(cli.NewApp(), nil, "email")

	var err error
	stdout := captureStdout(func() { err = composeEmail(ctx) })
	if err != nil {
		t.Fatalf("email: %v", err)
	}
	assertContains(t, stdout, "Sent to boss@example.com")
	if len(te.sender.sent) != 1 || te.sender.sent[0].Subject != "Report" {
		t.Errorf("sent = %+v", te.sender.sent)
	}
}

func TestComposeEmail_DryRun(t *testing.T) {
	te := setupTestEnv(t)
	te.llm = &llm.Fake{Response: `{"subject":"Report","body":"Attached."}`}
	mailTo, mailTopic, dryRun = "boss@example.com", "quarterly report", true
	ctx := newContext(cli.NewApp(), nil, "email")

	stdout := captureStdout(func() { composeEmail(ctx) })
	assertContains(t, stdout, "Subject: Report")
	assertNotContains(t, stdout, "Sent to")
	if len(te.sender.sent) != 0 {
		t.Error("dry run must not send")
	}
}

func TestComposeEmail_SendFailure(t *testing.T) {
	te := setupTestEnv(t)
	te.llm = &llm.Fake{Response: `{"subject":"Report","body":"Attached."}`}
	te.sender.err = errors.New("535 authentication failed")
	mailTo, mailTopic = "boss@example.com", "quarterly report"
	ctx := newContext(cli.NewApp(), nil, "email")

	var err error
	stdout := captureStdout(func() { err = composeEmail(ctx) })
	if !errors.Is(err, cmdCommon.ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	assertErrorFormat(t, stdout, "email", "compose")
	assertContains(t, stdout, "535 authentication failed")
}

func TestSendEmail(t *testing.T) {
	te := setupTestEnv(t)
	mailTo, mailSubject, mailBody = "bob@example.com", "Hi", "See you at noon."
	ctx := newContext(cli.NewApp(), nil, "send")

	var err error
	stdout := captureStdout(func() { err = sendEmail(ctx) })
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	assertContains(t, stdout, "Sent to bob@example.com")
	if len(te.sender.sent) != 1 {
		t.Fatalf("sent = %+v", te.sender.sent)
	}

	mailTo = "not-an-address"
	stdout = captureStdout(func() { err = sendEmail(ctx) })
	if !errors.Is(err, cmdCommon.ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	assertErrorFormat(t, stdout, "send", "smtp")
}

func TestWatchEvents(t *testing.T) {
	p := reminder.LLMParser{Parser: reminder.Parser{Location: time.UTC}}
	ctx := context.Background()

	events, err := watchEvents(ctx, p, []string{"remind me to stretch in 20 minutes", "remind me to eat in 1 hour"}, "", testNow)
	if err != nil {
		t.Fatalf("watchEvents: %v", err)
	}
	if len(events) != 2 || events[0].Task != "stretch" || !events[1].TriggerAt.Equal(testNow.Add(time.Hour)) {
		t.Errorf("events = %+v", events)
	}
	if events[0].Recurring() {
		t.Error("plain reminders must not recur")
	}

	events, err = watchEvents(ctx, p, []string{"drink", "water"}, "*/30 * * * *", testNow)
	if err != nil {
		t.Fatalf("watchEvents repeat: %v", err)
	}
	if len(events) != 1 || events[0].Task != "drink water" || events[0].CronExpr != "*/30 * * * *" {
		t.Fatalf("events = %+v", events)
	}
	if want := testNow.Add(30 * time.Minute); !events[0].TriggerAt.Equal(want) {
		t.Errorf("first trigger = %v, want %v", events[0].TriggerAt, want)
	}

	if _, err := watchEvents(ctx, p, []string{"x"}, "not a cron", testNow); !common.IsValidation(err) {
		t.Errorf("expected validation error for bad cron, got %v", err)
	}
	if _, err := watchEvents(ctx, p, []string{"buy milk"}, "", testNow); !common.IsParse(err) {
		t.Errorf("expected parse error, got %v", err)
	}
	if _, err := watchEvents(ctx, p, []string{"meeting 2020-01-01T09:00:00Z"}, "", testNow); !common.IsValidation(err) {
		t.Errorf("expected validation error for past time, got %v", err)
	}
}

func TestRunWatch_ExitsWhenOneShotsFire(t *testing.T) {
	n := &recordingNotifier{}
	start := time.Now()
	events := []scheduler.ScheduleEvent{
		{ID: "watch-1", Task: "first", TriggerAt: start.Add(20 * time.Millisecond)},
		{ID: "watch-2", Task: "second", TriggerAt: start.Add(40 * time.Millisecond)},
	}
	done := make(chan error, 1)
	go func() { done <- runWatch(context.Background(), events, n, logger.NewNopLogger()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runWatch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not return")
	}
	got := n.all()
	if len(got) != 2 || got[0] != "Reminder: first" || got[1] != "Reminder: second" {
		t.Errorf("notifications = %v", got)
	}
}

func TestRunWatch_StopsOnCancel(t *testing.T) {
	n := &recordingNotifier{}
	events := []scheduler.ScheduleEvent{
		{ID: "watch-1", Task: "later", TriggerAt: time.Now().Add(time.Hour)},
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, events, n, logger.NewNopLogger()) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runWatch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not return after cancel")
	}
	if len(n.all()) != 0 {
		t.Errorf("unexpected notifications %v", n.all())
	}
}

func TestWatchNotifier(t *testing.T) {
	te := setupTestEnv(t)
	l := logger.NewMockLogger()

	n, err := watchNotifier(l)
	if err != nil {
		t.Fatalf("watchNotifier: %v", err)
	}
	if m, ok := n.(notify.Multi); !ok || len(m) != 2 || m[0] != notify.Notifier(te.notifier) {
		t.Errorf("expected desktop and printer, got %#v", n)
	}

	newNotifier = func(logger.Logger) (notify.Notifier, error) {
		return nil, &common.UnsupportedPlatformError{Platform: "plan9"}
	}
	n, err = watchNotifier(l)
	if err != nil {
		t.Fatalf("watchNotifier: %v", err)
	}
	if _, ok := n.(notify.Printer); !ok {
		t.Errorf("expected printer fallback, got %#v", n)
	}
	if len(l.WarningCalls) != 1 {
		t.Errorf("expected a warning, got %v", l.WarningCalls)
	}
}

func TestWatch_NoArgs(t *testing.T) {
	setupTestEnv(t)
	ctx := newContext(cli.NewApp(), nil, "watch")
	stdout := captureStdout(func() { watch(ctx) })
	assertContains(t, stdout, "no reminder text provided")
}

func TestWatch_ParseError(t *testing.T) {
	setupTestEnv(t)
	ctx := newContext(cli.NewApp(), []string{"buy milk"}, "watch")
	stdout := captureStdout(func() { watch(ctx) })
	assertErrorFormat(t, stdout, "watch", "parse")
}

func TestServerDeps(t *testing.T) {
	te := setupTestEnv(t)
	e := &env{cfg: &config.Config{}, log: logger.NewNopLogger()}

	deps, err := serverDeps(e)
	if err != nil {
		t.Fatalf("serverDeps: %v", err)
	}
	if deps.Scheduler == nil || deps.Drafter != nil || deps.Sender != nil {
		t.Errorf("unconfigured deps = %+v", deps)
	}

	te.llm = &llm.Fake{}
	e.cfg.SMTP.Host = "smtp.example.com"
	deps, err = serverDeps(e)
	if err != nil {
		t.Fatalf("serverDeps: %v", err)
	}
	if deps.Drafter == nil || deps.Sender == nil || deps.Parser.Client == nil {
		t.Errorf("configured deps = %+v", deps)
	}

	te.adapterErr = &common.UnsupportedPlatformError{Platform: "plan9"}
	deps, err = serverDeps(e)
	if err != nil {
		t.Fatalf("serverDeps: %v", err)
	}
	if deps.Scheduler != nil {
		t.Error("expected reminders to be disabled")
	}

	te.adapterErr = common.NewValidationError("backend", "bad")
	if _, err := serverDeps(e); !common.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSetSecret(t *testing.T) {
	te := setupTestEnv(t)
	ctx := newContext(cli.NewApp(), []string{"openai", "sk-test"}, "set-secret")
	var err error
	stdout := captureStdout(func() { err = setSecret(ctx) })
	if err != nil {
		t.Fatalf("setSecret: %v", err)
	}
	assertContains(t, stdout, "Stored openai secret")
	if te.store["openai"] != "sk-test" {
		t.Errorf("store = %v", te.store)
	}

	old := stdin
	stdin = strings.NewReader("hunter2\n")
	defer func() { stdin = old }()
	ctx = newContext(cli.NewApp(), []string{"smtp"}, "set-secret")
	captureStdout(func() { err = setSecret(ctx) })
	if err != nil || te.store["smtp"] != "hunter2" {
		t.Fatalf("setSecret from stdin: %v, store = %v", err, te.store)
	}

	ctx = newContext(cli.NewApp(), []string{"smtp"}, "delete-secret")
	stdout = captureStdout(func() { err = deleteSecret(ctx) })
	if err != nil {
		t.Fatalf("deleteSecret: %v", err)
	}
	assertContains(t, stdout, "Removed smtp secret")
	stdout = captureStdout(func() { deleteSecret(ctx) })
	assertContains(t, stdout, "No smtp secret stored")
}

func TestLoadEnv_KeyringSecretsReachConfig(t *testing.T) {
	te := setupTestEnv(t)
	te.store["openai"] = "sk-keyring"
	e, err := loadEnv()
	if err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	defer e.close()
	if e.cfg.LLM.APIKey != "sk-keyring" {
		t.Errorf("APIKey = %q", e.cfg.LLM.APIKey)
	}
}

func TestExecute_Version(t *testing.T) {
	var err error
	stdout := captureStdout(func() {
		err = Execute([]string{"nudge", "version"}, BuildArgs{Version: "1.0.0", BuildType: "test"})
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	assertContains(t, stdout, "nudge 1.0.0-test")
}

func TestExecute_RemindRoutes(t *testing.T) {
	te := setupTestEnv(t)
	var err error
	stdout := captureStdout(func() {
		err = Execute([]string{"nudge", "remind", "me", "to", "stretch", "in", "5", "minutes"}, BuildArgs{})
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	assertContains(t, stdout, "Reminder scheduled")
	if len(te.adapter.scheduled) != 1 || te.adapter.scheduled[0].Task != "stretch" {
		t.Errorf("scheduled = %+v", te.adapter.scheduled)
	}

	stdout = captureStdout(func() {
		err = Execute([]string{"nudge", "remind", "cancel", "unknown-id"}, BuildArgs{})
	})
	if !errors.Is(err, cmdCommon.ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	assertErrorFormat(t, stdout, "remind", "cancel")
}

func TestTemplates(t *testing.T) {
	if len(HELP_TEMPL) == 0 || len(CMD_HELP_TEMPL) == 0 {
		t.Fatal("expected help templates")
	}
	for _, d := range []string{RemindDescription, EmailDescription, WatchDescription, ServeDescription} {
		if !strings.Contains(d, "nudge ") {
			t.Errorf("description without example: %q", d)
		}
	}
}
