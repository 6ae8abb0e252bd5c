package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/imyashkale/kmsdash/internal/logger"
	"github.com/imyashkale/kmsdash/internal/sink"
)

// StartupGrace is how long callers should wait after Start before assuming
// the KMS server is accepting connections. There is no readiness probe; the
// child counts as up once the operating system created it.
const StartupGrace = 2 * time.Second

// stopTimeout bounds how long Stop waits for the child to exit after SIGTERM
// before escalating to SIGKILL.
const stopTimeout = 5 * time.Second

// Supervisor launches and monitors the KMS server child process. Everything
// the child writes to stdout or stderr lands in the shared log sink, in
// whatever order the operating system delivers it.
type Supervisor struct {
	bin  string
	args []string
	dir  string
	sink *sink.Sink

	mu            sync.Mutex
	state         State
	cmd           *exec.Cmd
	runID         string
	stopRequested bool
	done          chan struct{}

	onState func(State)
}

// New creates a supervisor for the given command line. The working directory
// may be empty to inherit the dashboard's own.
func New(bin string, args []string, dir string, logSink *sink.Sink) *Supervisor {
	return &Supervisor{
		bin:   bin,
		args:  args,
		dir:   dir,
		sink:  logSink,
		state: StateNotStarted,
	}
}

// OnStateChange registers a callback fired after every state transition.
// Must be set before Start; the callback runs with the supervisor lock held
// and must not call back into the supervisor.
func (s *Supervisor) OnStateChange(fn func(State)) {
	s.onState = fn
}

// Start truncates the sink, spawns the child and transitions to Running as
// soon as the operating system confirms creation. It does not wait for the
// child to become ready; callers should allow StartupGrace before relying on
// it. A failure to spawn surfaces as a SpawnError and leaves the previous
// state untouched.
func (s *Supervisor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return fmt.Errorf("kms server already running with pid %d", s.cmd.Process.Pid)
	}

	out, err := s.sink.Create()
	if err != nil {
		return &SpawnError{Err: err}
	}

	cmd := exec.Command(s.bin, s.args...)
	cmd.Dir = s.dir
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.Stdin = nil
	cmd.SysProcAttr = procAttr()

	if err := cmd.Start(); err != nil {
		out.Close()
		return &SpawnError{Err: err}
	}

	s.cmd = cmd
	s.runID = uuid.New().String()
	s.stopRequested = false
	s.done = make(chan struct{})
	s.setStateLocked(StateRunning)

	logger.WithFields(map[string]interface{}{
		"pid":    cmd.Process.Pid,
		"run_id": s.runID,
		"log":    s.sink.Path(),
	}).Info("KMS server started")

	go s.reap(cmd, out, s.done)

	return nil
}

// Stop sends SIGTERM to the child and waits for it to exit, escalating to
// SIGKILL after stopTimeout. Stopping when nothing is running is a no-op.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return nil
	}
	s.stopRequested = true
	cmd := s.cmd
	done := s.done
	s.mu.Unlock()

	logger.WithField("pid", cmd.Process.Pid).Info("Stopping KMS server")

	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			<-done
			return nil
		}
		return fmt.Errorf("failed to signal kms server: %w", err)
	}

	select {
	case <-done:
	case <-time.After(stopTimeout):
		logger.Warn("KMS server did not exit in time, killing")
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("failed to kill kms server: %w", err)
		}
		<-done
	}

	return nil
}

// Restart stops the current child if one is running and launches a fresh
// one, truncating the sink for the new run.
func (s *Supervisor) Restart() error {
	if err := s.Stop(); err != nil {
		return err
	}
	return s.Start()
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PID returns the child process id, or 0 when nothing is running.
func (s *Supervisor) PID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning || s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// RunID returns the identifier of the current or most recent child run, or
// an empty string before the first start.
func (s *Supervisor) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// reap waits for the child to exit and records the outcome. An exit that was
// not requested through Stop is a crash, whatever the exit code. The child
// is never restarted automatically.
func (s *Supervisor) reap(cmd *exec.Cmd, out *os.File, done chan struct{}) {
	err := cmd.Wait()
	out.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	exitCode := cmd.ProcessState.ExitCode()

	if s.stopRequested {
		s.setStateLocked(StateStopped)
		logger.WithField("exit_code", exitCode).Info("KMS server stopped")
	} else {
		fields := map[string]interface{}{"exit_code": exitCode}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.setStateLocked(StateCrashed)
		logger.WithFields(fields).Error("KMS server exited unexpectedly")
	}

	close(done)
}

// setStateLocked transitions the state and fires the callback. Callers hold mu.
func (s *Supervisor) setStateLocked(next State) {
	if s.state == next {
		return
	}
	prev := s.state
	s.state = next

	logger.WithFields(map[string]interface{}{
		"from": prev.String(),
		"to":   next.String(),
	}).Debug("Supervisor state transition")

	if s.onState != nil {
		s.onState(next)
	}
}
