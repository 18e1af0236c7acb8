package service

import "sync/atomic"

// TaskState is the lifecycle state of a lookup task.
type TaskState int32

const (
	StateCreated TaskState = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s TaskState) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result is the outcome of one completed lookup task. It is frozen at
// task completion and safe to share between goroutines without locking.
type Result struct {
	LangFrom  string
	LangTo    string
	Plaintext string
	HTML      string
	// Err marks transport, HTTP, parse and configuration failures. The
	// human-readable failure message is carried in Plaintext/HTML in
	// place of the dictionary body.
	Err bool
}

// RunFunc performs the network round-trip for a task. It must recover
// every failure into a Result with Err set; nothing may panic or escape
// across the goroutine boundary.
type RunFunc func(langFrom, langTo, text string) Result

// Task is one asynchronous dictionary lookup bound to a language pair
// and text. It is owned by its creator until completion; afterwards the
// result is shared read-only state.
type Task struct {
	langFrom string
	langTo   string
	text     string
	run      RunFunc

	state  atomic.Int32
	done   chan struct{}
	result Result
}

// NewTask creates a task in the Created state.
func NewTask(langFrom, langTo, text string, run RunFunc) *Task {
	return &Task{
		langFrom: langFrom,
		langTo:   langTo,
		text:     text,
		run:      run,
		done:     make(chan struct{}),
	}
}

func (t *Task) LangFrom() string { return t.langFrom }
func (t *Task) LangTo() string   { return t.langTo }
func (t *Task) Text() string     { return t.text }

// State returns the current lifecycle state.
func (t *Task) State() TaskState {
	return TaskState(t.state.Load())
}

// Start begins execution on a new goroutine. Starting an already
// started task is a no-op.
func (t *Task) Start() {
	if !t.state.CompareAndSwap(int32(StateCreated), int32(StateRunning)) {
		return
	}
	go func() {
		res := t.run(t.langFrom, t.langTo, t.text)
		res.LangFrom = t.langFrom
		res.LangTo = t.langTo
		t.result = res
		if res.Err {
			t.state.Store(int32(StateFailed))
		} else {
			t.state.Store(int32(StateCompleted))
		}
		close(t.done)
	}()
}

// IsAlive reports whether the task has been started and not yet reached
// a terminal state.
func (t *Task) IsAlive() bool {
	return t.State() == StateRunning
}

// Done returns a channel closed when the task reaches a terminal state.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Join blocks until the task completes and returns its result.
func (t *Task) Join() Result {
	<-t.done
	return t.result
}

// Result returns the task outcome. Valid only after completion.
func (t *Task) Result() Result {
	return t.result
}
