package databases

// go generate: mockery --name AuditLogDatabase

import (
	"context"

	"github.com/landauthority/dispute-api/models"
)

const auditLogName = "auditlogs"

// AuditLogDatabase is the append-only audit trail
type AuditLogDatabase interface {
	Append(ctx context.Context, entry models.AuditLog) error
}

type auditLogDatabase struct {
	db DatabaseHelper
}

// NewAuditLogDatabase initializes a new instance of audit log database with the provided db connection
func NewAuditLogDatabase(db DatabaseHelper) AuditLogDatabase {
	return &auditLogDatabase{
		db: db,
	}
}

func (a *auditLogDatabase) Append(ctx context.Context, entry models.AuditLog) error {
	_, err := a.db.Collection(auditLogName).InsertOne(ctx, entry)
	return err
}
