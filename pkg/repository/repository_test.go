package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/repository/firestore"
)

const testScope = "biz-test"

// samplePaymentAction builds a valid pending payment_reminder action
func samplePaymentAction() *model.Action {
	return &model.Action{
		Type:     "payment_reminder",
		Priority: "high",
		Status:   "pending",
		Details: model.ActionDetails{
			PaymentReminder: &model.PaymentReminderDetails{
				RecipientID: "cust-001",
				Amount:      5000,
				Currency:    "USD",
				DaysOverdue: 7,
				Message:     "Your invoice is overdue",
			},
		},
		Reasoning: "Invoice 7 days overdue, customer usually pays after reminder",
	}
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}
