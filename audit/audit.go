// Package audit appends who-did-what entries to the audit log. Writes are best effort:
// by the time an entry is recorded the mutation has committed, so a failed write is
// logged and counted and never returned.
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/landauthority/dispute-api/databases"
	"github.com/landauthority/dispute-api/logging"
	"github.com/landauthority/dispute-api/metrics"
	"github.com/landauthority/dispute-api/models"
)

// Target types
const (
	TargetCase       = "case"
	TargetInvitation = "invitation"
)

// Logger writes entries to the auditlogs collection
type Logger struct {
	db  databases.AuditLogDatabase
	log *zap.SugaredLogger
	now func() time.Time
}

// New returns a Logger backed by db
func New(db databases.AuditLogDatabase) *Logger {
	return &Logger{db: db, log: logging.New("audit"), now: time.Now}
}

// Record appends one entry
func (l *Logger) Record(ctx context.Context, actor models.Actor, action, targetType, targetID string, details map[string]interface{}) {
	entry := models.AuditLog{
		ID:         primitive.NewObjectID(),
		ActorID:    actor.ID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		CreatedAt:  l.now().UTC(),
	}
	// the request may already be finishing, the entry must still be attempted
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := l.db.Append(ctx, entry); err != nil {
		metrics.AuditFailures.Inc()
		l.log.Errorw("failed to write audit entry",
			"action", action,
			"targetType", targetType,
			"targetId", targetID,
			"actorId", actor.ID,
			"error", err,
		)
	}
}
