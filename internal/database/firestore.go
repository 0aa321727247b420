package database

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	"taskboard/pkg/logger"
)

// OpenFirestore creates a Firestore client for the project. Credentials come
// from the environment (ADC or FIRESTORE_EMULATOR_HOST).
func OpenFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, errors.New("GOOGLE_CLOUD_PROJECT is not set")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	logger.Info(ctx, "Firestore client initialized", "project", projectID)
	return client, nil
}
