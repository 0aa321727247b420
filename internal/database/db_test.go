package database

import (
	"context"
	"strings"
	"testing"
)

func TestOpenersRequireConnectionSettings(t *testing.T) {
	ctx := context.Background()
	if _, err := OpenPostgres(ctx, "", 10); err == nil {
		t.Fatal("expected error for empty DATABASE_URL")
	}
	if _, err := OpenMongo(ctx, ""); err == nil {
		t.Fatal("expected error for empty MONGO_URI")
	}
	if _, err := OpenFirestore(ctx, ""); err == nil {
		t.Fatal("expected error for empty project")
	}
}

func TestMigrateRequiresDB(t *testing.T) {
	if err := MigrateOrCreateSchema(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestTaskOwnerIsNotAForeignKey(t *testing.T) {
	if strings.Contains(schema, "REFERENCES") {
		t.Fatal("tasks.user_id must not reference users")
	}
	if !strings.Contains(schema, "DROP CONSTRAINT IF EXISTS tasks_user_id_fkey") {
		t.Fatal("expected schema to drop the old owner foreign key")
	}
}
