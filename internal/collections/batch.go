package collections

import (
	"fmt"

	"github.com/desertthunder/ytshelf/internal/shared"
)

// Batch operation names.
const (
	BatchMove   = "move"
	BatchDelete = "delete"
	BatchCopy   = "copy"
)

// BatchInput describes a structural operation applied across collections.
type BatchInput struct {
	Operation      string   `json:"operation"`
	CollectionIDs  []string `json:"collection_ids"`
	TargetParentID *string  `json:"target_parent_id,omitempty"`
}

// BatchError pairs a failed collection id with the reason.
type BatchError struct {
	CollectionID string `json:"collection_id"`
	Reason       string `json:"reason"`
}

// BatchResult is the scoreboard of a batch operation. The batch never aborts
// early; every requested id lands in either list, except moves skipped for a
// missing target parent.
type BatchResult struct {
	Success []string     `json:"success"`
	Errors  []BatchError `json:"errors"`
}

// BatchOperation applies move or delete across a list of collection ids with
// per-id result aggregation. Copy is an explicit unsupported operation and
// fails every id with ErrNotImplemented.
func (e *Engine) BatchOperation(input BatchInput) (*BatchResult, error) {
	switch input.Operation {
	case BatchMove, BatchDelete, BatchCopy:
	default:
		err := fmt.Errorf("%w: unknown batch operation %q", shared.ErrInvalidArgument, input.Operation)
		e.metrics.RecordOperation("batch", err)
		return nil, err
	}

	result := &BatchResult{Success: []string{}, Errors: []BatchError{}}

	for _, id := range input.CollectionIDs {
		var err error
		switch input.Operation {
		case BatchDelete:
			err = e.DeleteCollection(id)
		case BatchMove:
			if input.TargetParentID == nil {
				e.logger.Warn("batch move skipped, no target parent", "id", id)
				continue
			}
			_, err = e.Reparent(id, input.TargetParentID, nil)
		case BatchCopy:
			err = fmt.Errorf("%w: copy", shared.ErrNotImplemented)
		}

		if err != nil {
			result.Errors = append(result.Errors, BatchError{CollectionID: id, Reason: err.Error()})
		} else {
			result.Success = append(result.Success, id)
		}
	}

	e.logger.Info("batch operation finished",
		"operation", input.Operation,
		"requested", len(input.CollectionIDs),
		"succeeded", len(result.Success),
		"failed", len(result.Errors),
	)
	e.metrics.RecordOperation("batch", nil)
	return result, nil
}
