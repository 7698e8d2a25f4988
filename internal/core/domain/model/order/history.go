package order

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// Comments recorded by the aggregate itself.
const (
	CreatedComment     = "order created"
	ItemsEditedComment = "items edited"
)

// HistoryEntry is an append-only record of a status change. Item edits are
// recorded with equal old and new statuses. The creation entry has Unknown as
// its old status.
type HistoryEntry struct {
	id        kernel.UUID
	oldStatus Status
	newStatus Status
	changedBy *kernel.UUID
	source    ChangeSource
	comment   string
	createdAt time.Time
}

func newHistoryEntry(oldStatus, newStatus Status, changedBy *kernel.UUID, source ChangeSource, comment string, at time.Time) HistoryEntry {
	return HistoryEntry{
		id:        kernel.NewUUID(),
		oldStatus: oldStatus,
		newStatus: newStatus,
		changedBy: changedBy,
		source:    source,
		comment:   comment,
		createdAt: at,
	}
}

// RestoreHistoryEntry rebuilds a persisted history entry.
func RestoreHistoryEntry(
	id kernel.UUID,
	oldStatus, newStatus Status,
	changedBy *kernel.UUID,
	source ChangeSource,
	comment string,
	createdAt time.Time,
) (HistoryEntry, error) {
	if err := errors.Join(id.Validate(), newStatus.Validate(), source.Validate()); err != nil {
		return HistoryEntry{}, err
	}
	if oldStatus != Unknown {
		if err := oldStatus.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}
	return newHistoryEntry(oldStatus, newStatus, changedBy, source, comment, createdAt).withID(id), nil
}

func (h HistoryEntry) withID(id kernel.UUID) HistoryEntry {
	h.id = id
	return h
}

func (h HistoryEntry) ID() kernel.UUID { return h.id }
func (h HistoryEntry) OldStatus() Status { return h.oldStatus }
func (h HistoryEntry) NewStatus() Status { return h.newStatus }
func (h HistoryEntry) ChangedBy() *kernel.UUID { return h.changedBy }
func (h HistoryEntry) Source() ChangeSource { return h.source }
func (h HistoryEntry) Comment() string { return h.comment }
func (h HistoryEntry) CreatedAt() time.Time { return h.createdAt }
