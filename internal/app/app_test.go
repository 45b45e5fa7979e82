package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/adapter/mailer"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/worker"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (s *recordingSender) Send(_ context.Context, n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestDispatcher(sender mailer.Sender) *worker.MailDispatcher {
	return worker.NewMailDispatcher(sender, 1, 4, time.Second, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewMailDispatcherUsesConfig(t *testing.T) {
	d := newMailDispatcher(dispatcherParams{
		Sender: &recordingSender{},
		Config: &config.Config{MailWorkers: 3, MailQueueSize: 16, MailSendTimeout: time.Second},
		Logger: discardLogger(),
	})
	if d == nil {
		t.Fatal("expected dispatcher instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	sender := &recordingSender{}
	dispatcher := newTestDispatcher(sender)
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Ctx:        ctx,
		Logger:     discardLogger(),
		Server:     server,
		Dispatcher: dispatcher,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	if err := recorder.Start(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	if err := dispatcher.Notify(ctx, model.Notification{OrderID: uuid.New(), To: "a@shop.io"}); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.Stop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
	if sender.count() != 1 {
		t.Fatalf("expected queued mail to be delivered before stop returns, got %d", sender.count())
	}
	if shutdowner.Calls() != 0 {
		t.Fatalf("expected no shutdown request on clean run, got %d", shutdowner.Calls())
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	server := &http.Server{Addr: "bad addr"}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Ctx:        context.Background(),
		Logger:     discardLogger(),
		Server:     server,
		Dispatcher: newTestDispatcher(&recordingSender{}),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderOrdering(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	var calls []string
	for _, name := range []string{"a", "b"} {
		recorder.Append(fx.Hook{
			OnStart: func(context.Context) error { calls = append(calls, "start "+name); return nil },
			OnStop:  func(context.Context) error { calls = append(calls, "stop "+name); return nil },
		})
	}
	recorder.Append(fx.Hook{})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := recorder.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	want := []string{"start a", "start b", "stop b", "stop a"}
	if len(calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, calls)
		}
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
	if shutdowner.Calls() != 1 {
		t.Fatalf("expected one call, got %d", shutdowner.Calls())
	}
}
