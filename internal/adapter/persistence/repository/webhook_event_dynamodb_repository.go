package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/usecase/interfaces"
)

const (
	defaultWebhookEventsTableName = "webhook_events"
	// webhookEventRetention outlives the processor's redelivery window (3 days).
	webhookEventRetention = 30 * 24 * time.Hour
)

type webhookEventItem struct {
	EventID     string `dynamodbav:"event_id"`
	Type        string `dynamodbav:"type"`
	ProcessedAt string `dynamodbav:"processed_at"`
	ExpiresAt   int64  `dynamodbav:"expires_at"`
}

// WebhookEventDynamoRepository records handled webhook event ids.
//
// Table requirements:
//   - PK: event_id (string)
//   - TTL attribute: expires_at
type WebhookEventDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IWebhookEventRepository = (*WebhookEventDynamoRepository)(nil)

func NewWebhookEventDynamoRepository(ddb DynamoAPI, tableName string) *WebhookEventDynamoRepository {
	return &WebhookEventDynamoRepository{
		ddb:       ddb,
		tableName: tableNameOrDefault(tableName, defaultWebhookEventsTableName),
	}
}

// MarkProcessed is a conditional put: the first writer of an event id wins.
func (r *WebhookEventDynamoRepository) MarkProcessed(ctx context.Context, ev entities.ProcessedEvent) (bool, error) {
	processedAt := ev.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now().UTC()
	}
	av, err := attributevalue.MarshalMap(webhookEventItem{
		EventID:     ev.EventID,
		Type:        string(ev.Type),
		ProcessedAt: processedAt.UTC().Format(time.RFC3339Nano),
		ExpiresAt:   processedAt.Add(webhookEventRetention).Unix(),
	})
	if err != nil {
		return false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#event_id)"),
		ExpressionAttributeNames: map[string]string{
			"#event_id": "event_id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *WebhookEventDynamoRepository) Release(ctx context.Context, eventID string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"event_id": &types.AttributeValueMemberS{Value: eventID},
		},
	})
	return err
}
