package repository

import (
	"context"
	"sort"
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultPaymentsTableName = "payments"
	paymentsOrderRefIndex    = "order_ref-index"
)

type paymentRecordItem struct {
	ID           string `dynamodbav:"id"`
	Provider     string `dynamodbav:"provider"`
	OrderRef     string `dynamodbav:"order_ref"`
	ProviderTxID string `dynamodbav:"provider_tx_id"`
	Synthetic    bool   `dynamodbav:"synthetic_tx_id"`
	Status       string `dynamodbav:"status"`
	RawPayload   string `dynamodbav:"raw_payload"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

// PaymentRecordDynamoRepository persists PaymentRecord audit rows in DynamoDB.
//
// Table requirements:
//   - PK: id (string, provider#provider_tx_id)
//   - GSI: order_ref-index (PK: order_ref)
type PaymentRecordDynamoRepository struct {
	ddb       dynamoDBAPI
	tableName string
}

var _ interfaces.IPaymentRecordRepository = (*PaymentRecordDynamoRepository)(nil)

func NewPaymentRecordDynamoRepository(ddb dynamoDBAPI, tableName string) *PaymentRecordDynamoRepository {
	if tableName == "" {
		tableName = DefaultPaymentsTableName
	}
	return &PaymentRecordDynamoRepository{ddb: ddb, tableName: tableName}
}

// Upsert writes the latest view of a notification. Resends of the same
// transaction overwrite status and payload but keep the first created_at.
func (r *PaymentRecordDynamoRepository) Upsert(ctx context.Context, rec entities.PaymentRecord) (entities.PaymentRecord, error) {
	if rec.ID == "" {
		rec.ID = entities.PaymentRecordID(rec.Provider, rec.ProviderTxID)
	}
	now := rec.UpdatedAt
	if now.IsZero() {
		now = time.Now()
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = now
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: rec.ID},
		},
		UpdateExpression: aws.String("SET #provider = :provider, #order_ref = :order_ref, #provider_tx_id = :provider_tx_id, " +
			"#synthetic = :synthetic, #status = :status, #raw_payload = :raw_payload, #updated_at = :updated_at, " +
			"#created_at = if_not_exists(#created_at, :created_at)"),
		ExpressionAttributeNames: map[string]string{
			"#provider":       "provider",
			"#order_ref":      "order_ref",
			"#provider_tx_id": "provider_tx_id",
			"#synthetic":      "synthetic_tx_id",
			"#status":         "status",
			"#raw_payload":    "raw_payload",
			"#updated_at":     "updated_at",
			"#created_at":     "created_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":provider":       &types.AttributeValueMemberS{Value: rec.Provider},
			":order_ref":      &types.AttributeValueMemberS{Value: rec.OrderRef},
			":provider_tx_id": &types.AttributeValueMemberS{Value: rec.ProviderTxID},
			":synthetic":      &types.AttributeValueMemberBOOL{Value: rec.Synthetic},
			":status":         &types.AttributeValueMemberS{Value: rec.Status},
			":raw_payload":    &types.AttributeValueMemberS{Value: rec.RawPayload},
			":updated_at":     &types.AttributeValueMemberS{Value: formatTime(now)},
			":created_at":     &types.AttributeValueMemberS{Value: formatTime(created)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}

	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil || it.ID == "" {
		return rec, nil
	}
	return fromPaymentRecordItem(it), nil
}

func (r *PaymentRecordDynamoRepository) ListByOrderRef(ctx context.Context, orderRef string) ([]entities.PaymentRecord, error) {
	var (
		items    []entities.PaymentRecord
		startKey map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(paymentsOrderRefIndex),
			KeyConditionExpression: aws.String("order_ref = :ref"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":ref": &types.AttributeValueMemberS{Value: orderRef},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it paymentRecordItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromPaymentRecordItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func fromPaymentRecordItem(it paymentRecordItem) entities.PaymentRecord {
	return entities.PaymentRecord{
		ID:           it.ID,
		Provider:     it.Provider,
		OrderRef:     it.OrderRef,
		ProviderTxID: it.ProviderTxID,
		Synthetic:    it.Synthetic,
		Status:       it.Status,
		RawPayload:   it.RawPayload,
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
}
