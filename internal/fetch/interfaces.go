package fetch

import (
	"github.com/tplfill/tpl-fill/internal/model"
	"github.com/tplfill/tpl-fill/internal/scan"
)

// Filler defines the interface for the fetch service.
type Filler interface {
	SetUpdateCallback(func(*model.FetchTask))
	SetProgressCallback(func(done, total int))
	SetLogCallback(func(string))
	Start(templateRoot, baseURL string, candidates []scan.Candidate) error
	Stop()
	Wait()
	Active() bool
	GetTask(id string) (*model.FetchTask, bool)
	GetAllTasks() []*model.FetchTask
	Summary() Summary

	// SetMaxParallel sets the maximum number of parallel fetches
	SetMaxParallel(max int)
}
