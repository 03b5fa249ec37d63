package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SignalDash/internal/domain/models"
	domrepo "SignalDash/internal/domain/repository"
	applogger "SignalDash/pkg/logger"
	"SignalDash/pkg/queue"
)

// ExportJob snapshots a client's user record into its export. Runs on the
// queue workers.
type ExportJob struct {
	session *SessionStore
	exports domrepo.ExportStore
	l       *applogger.Logger
	now     func() time.Time
}

func NewExportJob(session *SessionStore, exports domrepo.ExportStore, l *applogger.Logger) *ExportJob {
	return &ExportJob{session: session, exports: exports, l: l, now: time.Now}
}

func (j *ExportJob) Name() string { return "account-export" }

func (j *ExportJob) Type() string { return ExportMessageType }

func (j *ExportJob) Handle(ctx context.Context, payload interface{}) error {
	msg, err := queue.ParsePayload[exportMessage](payload)
	if err != nil {
		return err
	}
	job, err := j.exports.Get(ctx, msg.JobID)
	if err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			j.l.Warn("export job expired before processing", applogger.String("job", msg.JobID))
			return nil
		}
		return err
	}
	if job.Status == models.ExportDone {
		return nil
	}

	u, err := j.session.User(ctx, msg.Client)
	if err != nil {
		return fmt.Errorf("export %s: %w", job.ID, err)
	}
	done := j.now().UTC()
	job.CompletedAt = &done
	if u == nil {
		job.Status = models.ExportFailed
		job.Error = "no signed-in user"
	} else {
		job.Status = models.ExportDone
		job.Payload = u
	}
	if err := j.exports.Save(ctx, job); err != nil {
		return err
	}
	j.l.Info("export finished", applogger.String("job", job.ID), applogger.String("status", string(job.Status)))
	return nil
}

var _ queue.Job = (*ExportJob)(nil)
