package fetch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tplfill/tpl-fill/internal/model"
	"github.com/tplfill/tpl-fill/internal/platform"
	"github.com/tplfill/tpl-fill/internal/scan"
)

// Summary aggregates the outcome of a fill session
type Summary struct {
	Total     int
	Completed int
	Failed    int
	Stopped   int
	Bytes     int64
}

// Service handles fetch operations for one fill session at a time
type Service struct {
	tasks       map[string]*model.FetchTask
	order       []string // task IDs in enqueue order
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	doneCount   int
	running     bool

	templateRoot string
	baseURL      string
	client       *Client

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	onUpdate   func(*model.FetchTask) // callback for UI updates
	onProgress func(done, total int)  // callback for the progress bar
	onLog      func(string)           // callback for the log panel

	// progressMutex serializes progress deliveries so the reported count
	// never moves backwards when workers finish concurrently
	progressMutex sync.Mutex
}

// NewService creates a new fetch service
func NewService(client *Client, maxParallel int) *Service {
	if client == nil {
		client = NewClient(DefaultClientConfig())
	}
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Service{
		tasks:       make(map[string]*model.FetchTask),
		maxParallel: maxParallel,
		client:      client,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.FetchTask)) {
	s.onUpdate = callback
}

// SetProgressCallback sets the callback for session progress
func (s *Service) SetProgressCallback(callback func(done, total int)) {
	s.onProgress = callback
}

// SetLogCallback sets the callback for human-readable log lines
func (s *Service) SetLogCallback(callback func(string)) {
	s.onLog = callback
}

// SetMaxParallel sets the maximum number of parallel fetches
func (s *Service) SetMaxParallel(max int) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	if max < 1 {
		max = 1
	}
	s.maxParallel = max
}

// Start begins fetching the given candidates into templateRoot. Only one
// session runs at a time.
func (s *Service) Start(templateRoot, baseURL string, candidates []scan.Candidate) error {
	if err := ValidateBaseURL(baseURL); err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("nothing to fetch")
	}

	s.tasksMutex.Lock()
	if s.running {
		s.tasksMutex.Unlock()
		return fmt.Errorf("a fill session is already running")
	}

	s.running = true
	s.tasks = make(map[string]*model.FetchTask, len(candidates))
	s.order = make([]string, 0, len(candidates))
	s.doneCount = 0
	s.templateRoot = templateRoot
	s.baseURL = baseURL
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.done = make(chan struct{})

	for _, c := range candidates {
		task := &model.FetchTask{
			ID:        generateTaskID(),
			RelPath:   c.RelPath,
			LocalPath: c.LocalPath,
			Reason:    c.Reason,
			Status:    model.TaskStatusPending,
		}
		s.tasks[task.ID] = task
		s.order = append(s.order, task.ID)
	}

	var starting []*model.FetchTask
	for _, id := range s.order {
		if len(starting) >= s.maxParallel {
			break
		}
		starting = append(starting, s.tasks[id])
		s.tasks[id].Status = model.TaskStatusFetching
	}
	s.tasksMutex.Unlock()

	s.log(fmt.Sprintf("Fetching %d files from %s", len(candidates), baseURL))

	for _, task := range starting {
		go s.runTask(task)
	}
	return nil
}

// Stop cancels the running session. In-flight requests are aborted and
// pending tasks finish as Stopped.
func (s *Service) Stop() {
	s.tasksMutex.RLock()
	cancel := s.cancel
	running := s.running
	s.tasksMutex.RUnlock()

	if running && cancel != nil {
		s.log("Stopping...")
		cancel()
	}
}

// Wait blocks until the current session finishes. Returns immediately if
// no session was started.
func (s *Service) Wait() {
	s.tasksMutex.RLock()
	done := s.done
	s.tasksMutex.RUnlock()

	if done != nil {
		<-done
	}
}

// Active reports whether a session is in progress
func (s *Service) Active() bool {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.running
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.FetchTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	return task, exists
}

// GetAllTasks returns all tasks in enqueue order
func (s *Service) GetAllTasks() []*model.FetchTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.FetchTask, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks
}

// Summary returns the aggregate outcome of the current or last session
func (s *Service) Summary() Summary {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	summary := Summary{Total: len(s.order)}
	for _, id := range s.order {
		task := s.tasks[id]
		switch task.Status {
		case model.TaskStatusCompleted:
			summary.Completed++
			summary.Bytes += task.Size
		case model.TaskStatusFailed:
			summary.Failed++
		case model.TaskStatusStopped:
			summary.Stopped++
		}
	}
	return summary
}

// runTask fetches one file and writes it to disk
func (s *Service) runTask(task *model.FetchTask) {
	s.tasksMutex.Lock()
	s.activeCount++
	task.Status = model.TaskStatusFetching
	task.StartedAt = time.Now()
	ctx := s.ctx
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	status, err := s.fetchOne(ctx, task)

	s.tasksMutex.Lock()
	task.StatusCode = status
	task.FinishedAt = time.Now()
	if err != nil {
		if ctx.Err() == context.Canceled {
			task.Status = model.TaskStatusStopped
		} else {
			task.Status = model.TaskStatusFailed
			task.LastError = err.Error()
		}
	} else {
		task.Status = model.TaskStatusCompleted
	}
	s.activeCount--
	s.tasksMutex.Unlock()

	switch task.Status {
	case model.TaskStatusCompleted:
		s.log(fmt.Sprintf("Downloaded: %s -> %s", task.RemoteURL, task.LocalPath))
	case model.TaskStatusStopped:
		s.log(fmt.Sprintf("Stopped: %s", task.DisplayName()))
	default:
		name := task.RemoteURL
		if name == "" {
			name = task.DisplayName()
		}
		if status != 0 && status != 200 {
			s.log(fmt.Sprintf("Failed: %s (Status %d)", name, status))
		} else {
			s.log(fmt.Sprintf("Error downloading %s: %v", name, err))
		}
	}

	s.notifyUpdate(task)
	s.finishTask()
}

// fetchOne resolves the remote URL, performs the GET, and writes the body
func (s *Service) fetchOne(ctx context.Context, task *model.FetchTask) (int, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	remoteURL, err := BuildRemoteURL(s.baseURL, task.RelPath)
	if err != nil {
		return 0, err
	}

	s.tasksMutex.Lock()
	task.RemoteURL = remoteURL
	s.tasksMutex.Unlock()

	body, status, err := s.client.Fetch(ctx, remoteURL)
	if err != nil {
		return status, err
	}

	if err := platform.EnsureWithin(s.templateRoot, task.LocalPath); err != nil {
		return status, err
	}
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(task.LocalPath)); err != nil {
		return status, err
	}
	if err := os.WriteFile(task.LocalPath, body, 0644); err != nil {
		return status, err
	}

	s.tasksMutex.Lock()
	task.Size = int64(len(body))
	s.tasksMutex.Unlock()

	return status, nil
}

// finishTask advances session accounting and starts the next pending task
func (s *Service) finishTask() {
	s.tasksMutex.Lock()
	s.doneCount++
	finished := s.doneCount >= len(s.order)
	if finished {
		s.running = false
	}

	var next *model.FetchTask
	if !finished && s.activeCount < s.maxParallel {
		for _, id := range s.order {
			if s.tasks[id].Status == model.TaskStatusPending {
				next = s.tasks[id]
				next.Status = model.TaskStatusFetching
				break
			}
		}
	}
	doneCh := s.done
	s.tasksMutex.Unlock()

	s.notifyProgress()

	if finished {
		summary := s.Summary()
		s.log(fmt.Sprintf("Done: %d downloaded, %d failed, %d stopped (%d bytes)",
			summary.Completed, summary.Failed, summary.Stopped, summary.Bytes))
		close(doneCh)
		return
	}

	if next != nil {
		go s.runTask(next)
	}
}

// notifyProgress delivers the current done/total counts. The counter is
// re-read under the progress mutex, so deliveries are non-decreasing even
// when several workers finish at once, and the final delivery carries the
// full count.
func (s *Service) notifyProgress() {
	if s.onProgress == nil {
		return
	}

	s.progressMutex.Lock()
	defer s.progressMutex.Unlock()

	s.tasksMutex.RLock()
	done := s.doneCount
	total := len(s.order)
	s.tasksMutex.RUnlock()

	s.onProgress(done, total)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.FetchTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// log forwards a line to the log callback and the process log
func (s *Service) log(msg string) {
	if s.onLog != nil {
		s.onLog(msg)
	}
	log.Printf("%s", msg)
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return fmt.Sprintf("task-%s", uuid.NewString())
}
