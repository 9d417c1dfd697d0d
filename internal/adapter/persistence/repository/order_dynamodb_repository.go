package repository

import (
	"context"
	"fmt"
	"time"

	"checkout_service/internal/domain/entities"
	"checkout_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const DefaultOrdersTableName = "orders"

type orderItem struct {
	OrderRef    string  `dynamodbav:"order_ref"`
	ProductCode string  `dynamodbav:"product_code"`
	Amount      float64 `dynamodbav:"amount"`
	Currency    string  `dynamodbav:"currency"`
	Status      string  `dynamodbav:"status"`
	CreatedAt   string  `dynamodbav:"created_at"`
	UpdatedAt   string  `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: order_ref (string)
//
// Status leaves created through one conditional UpdateItem, so concurrent
// or repeated notifications cannot apply twice.
type OrderDynamoRepository struct {
	ddb       dynamoDBAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb dynamoDBAPI, tableName string) *OrderDynamoRepository {
	if tableName == "" {
		tableName = DefaultOrdersTableName
	}
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName, now: time.Now}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#order_ref)"),
		ExpressionAttributeNames: map[string]string{
			"#order_ref": "order_ref",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Order{}, fmt.Errorf("%w: %s", entities.ErrOrderAlreadyExists, o.OrderRef)
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByRef(ctx context.Context, orderRef string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_ref": &types.AttributeValueMemberS{Value: orderRef},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) TransitionStatus(ctx context.Context, orderRef string, to entities.OrderStatus) (entities.Order, bool, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_ref": &types.AttributeValueMemberS{Value: orderRef},
		},
		ConditionExpression: aws.String("attribute_exists(#order_ref) AND #status = :created"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":created":    &types.AttributeValueMemberS{Value: string(entities.OrderStatusCreated)},
			":status":     &types.AttributeValueMemberS{Value: string(to)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(r.now())},
		},
		ExpressionAttributeNames: mergeNames(
			map[string]string{"#status": "status", "#updated_at": "updated_at"},
			map[string]string{"#order_ref": "order_ref"},
		),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Order{}, false, nil
		}
		return entities.Order{}, false, err
	}

	// The write already happened; an unreadable echo must not look like a failure.
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil || it.OrderRef == "" {
		return entities.Order{OrderRef: orderRef, Status: to}, true, nil
	}
	return fromOrderItem(it), true, nil
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		OrderRef:    o.OrderRef,
		ProductCode: string(o.ProductCode),
		Amount:      o.Amount,
		Currency:    o.Currency,
		Status:      string(o.Status),
		CreatedAt:   formatTime(o.CreatedAt),
		UpdatedAt:   formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	return entities.Order{
		OrderRef:    it.OrderRef,
		ProductCode: entities.ProductCode(it.ProductCode),
		Amount:      it.Amount,
		Currency:    it.Currency,
		Status:      entities.OrderStatus(it.Status),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
