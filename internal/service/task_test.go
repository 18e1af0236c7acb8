package service

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTaskLifecycle(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	task := NewTask("en", "ru", "apple", func(from, to, text string) Result {
		close(started)
		<-release
		return Result{Plaintext: "яблоко"}
	})

	if task.State() != StateCreated {
		t.Errorf("new task state = %v, want Created", task.State())
	}
	if task.IsAlive() {
		t.Error("unstarted task should not be alive")
	}

	task.Start()
	<-started
	if !task.IsAlive() {
		t.Error("running task should be alive")
	}

	close(release)
	result := task.Join()
	if task.State() != StateCompleted {
		t.Errorf("finished task state = %v, want Completed", task.State())
	}
	if task.IsAlive() {
		t.Error("finished task should not be alive")
	}
	if result.Plaintext != "яблоко" {
		t.Errorf("result plaintext = %q, want яблоко", result.Plaintext)
	}
}

func TestTaskStampsLanguagePair(t *testing.T) {
	task := NewTask("en", "fr", "apple", func(from, to, text string) Result {
		return Result{Plaintext: "pomme"}
	})
	task.Start()
	result := task.Join()

	if result.LangFrom != "en" || result.LangTo != "fr" {
		t.Errorf("result pair = %s-%s, want en-fr", result.LangFrom, result.LangTo)
	}
}

func TestTaskErrorReachesFailedState(t *testing.T) {
	task := NewTask("en", "ru", "apple", func(from, to, text string) Result {
		return Result{Err: true, Plaintext: "- something broke"}
	})
	task.Start()
	result := task.Join()

	if task.State() != StateFailed {
		t.Errorf("errored task state = %v, want Failed", task.State())
	}
	if !result.Err {
		t.Error("result should carry the error flag")
	}
	if result.Plaintext == "" {
		t.Error("error result must carry the message in its plaintext")
	}
}

func TestTaskStartIsIdempotent(t *testing.T) {
	var runs atomic.Int32
	task := NewTask("en", "ru", "apple", func(from, to, text string) Result {
		runs.Add(1)
		return Result{Plaintext: "x"}
	})
	task.Start()
	task.Join()
	task.Start()

	// Give a rogue second goroutine a chance to run before checking.
	time.Sleep(10 * time.Millisecond)
	if n := runs.Load(); n != 1 {
		t.Errorf("task body ran %d times, want 1", n)
	}
}

func TestTaskDoneUnblocksEveryWaiter(t *testing.T) {
	task := NewTask("en", "ru", "apple", func(from, to, text string) Result {
		return Result{Plaintext: "x"}
	})
	task.Start()

	for i := 0; i < 3; i++ {
		select {
		case <-task.Done():
		case <-time.After(time.Second):
			t.Fatal("Done() did not unblock")
		}
	}
}

func TestTaskStateString(t *testing.T) {
	tests := []struct {
		state TaskState
		want  string
	}{
		{StateCreated, "Created"},
		{StateRunning, "Running"},
		{StateCompleted, "Completed"},
		{StateFailed, "Failed"},
		{TaskState(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("TaskState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
