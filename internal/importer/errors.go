package importer

import (
	"errors"
)

// ErrEmptySelection indicates an import was requested with no content
// selected. No queue is created.
var ErrEmptySelection = errors.New("no content selected for import")

// ErrImportRunning indicates another import run is in progress. Only one
// import may run at a time, process-wide.
var ErrImportRunning = errors.New("an import is already in progress")

// cancelledMessage is recorded on tasks that were in flight when a run was
// cancelled.
const cancelledMessage = "Import cancelled"
