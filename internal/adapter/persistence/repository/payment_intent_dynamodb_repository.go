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

const defaultPaymentIntentsTableName = "payment_intents"

type paymentIntentItem struct {
	ID           string            `dynamodbav:"id"`
	Amount       int64             `dynamodbav:"amount"`
	Currency     string            `dynamodbav:"currency"`
	Status       string            `dynamodbav:"status"`
	ReceiptEmail string            `dynamodbav:"receipt_email,omitempty"`
	Description  string            `dynamodbav:"description,omitempty"`
	Metadata     map[string]string `dynamodbav:"metadata,omitempty"`
	LastError    string            `dynamodbav:"last_error,omitempty"`
	UpdatedAt    string            `dynamodbav:"updated_at"`
}

// PaymentIntentDynamoRepository persists the local view of payment intents.
// Client secrets are never written.
//
// Table requirements:
//   - PK: id (string)
type PaymentIntentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IPaymentIntentRepository = (*PaymentIntentDynamoRepository)(nil)

func NewPaymentIntentDynamoRepository(ddb DynamoAPI, tableName string) *PaymentIntentDynamoRepository {
	return &PaymentIntentDynamoRepository{
		ddb:       ddb,
		tableName: tableNameOrDefault(tableName, defaultPaymentIntentsTableName),
		now:       time.Now,
	}
}

// Save overwrites the stored record.
func (r *PaymentIntentDynamoRepository) Save(ctx context.Context, rec entities.PaymentIntentRecord) (entities.PaymentIntentRecord, error) {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = r.now().UTC()
	}
	rec.ClientSecret = ""

	av, err := attributevalue.MarshalMap(toPaymentIntentItem(rec))
	if err != nil {
		return entities.PaymentIntentRecord{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.PaymentIntentRecord{}, err
	}
	return rec, nil
}

func (r *PaymentIntentDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentIntentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentIntentRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentIntentRecord{}, nil
	}

	var it paymentIntentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentIntentRecord{}, err
	}
	return fromPaymentIntentItem(it), nil
}

// UpdateStatus returns a zero record when the intent is not stored.
func (r *PaymentIntentDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.PaymentIntentStatus, lastError string) (entities.PaymentIntentRecord, error) {
	now := r.now().UTC().Format(time.RFC3339Nano)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #last_error = :last_error, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":last_error": &types.AttributeValueMemberS{Value: lastError},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#status":     "status",
			"#last_error": "last_error",
			"#updated_at": "updated_at",
		}, map[string]string{"#id": "id"}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.PaymentIntentRecord{}, nil
		}
		return entities.PaymentIntentRecord{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.PaymentIntentRecord{}, nil
	}
	var it paymentIntentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentIntentRecord{}, err
	}
	return fromPaymentIntentItem(it), nil
}

func toPaymentIntentItem(rec entities.PaymentIntentRecord) paymentIntentItem {
	return paymentIntentItem{
		ID:           rec.ID,
		Amount:       rec.Amount,
		Currency:     rec.Currency,
		Status:       string(rec.Status),
		ReceiptEmail: rec.ReceiptEmail,
		Description:  rec.Description,
		Metadata:     rec.Metadata,
		LastError:    rec.LastError,
		UpdatedAt:    rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentIntentItem(it paymentIntentItem) entities.PaymentIntentRecord {
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.PaymentIntentRecord{
		ID:           it.ID,
		Amount:       it.Amount,
		Currency:     it.Currency,
		Status:       entities.PaymentIntentStatus(it.Status),
		ReceiptEmail: it.ReceiptEmail,
		Description:  it.Description,
		Metadata:     it.Metadata,
		LastError:    it.LastError,
		UpdatedAt:    updatedAt,
	}
}
