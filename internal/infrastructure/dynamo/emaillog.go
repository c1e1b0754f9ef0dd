package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cryptokey/dashboard-api/internal/domain"
)

// EmailLogRepo provides typed DynamoDB operations for the email_log table.
type EmailLogRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewEmailLogRepo(client *dynamodb.Client, tableName string) *EmailLogRepo {
	return &EmailLogRepo{client: client, tableName: tableName}
}

func (r *EmailLogRepo) Put(ctx context.Context, receipt *domain.DeliveryReceipt) error {
	item, err := attributevalue.MarshalMap(receipt)
	if err != nil {
		return fmt.Errorf("marshal delivery receipt: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByUser queries the user_id-sent_at GSI, newest first.
func (r *EmailLogRepo) ListByUser(ctx context.Context, userID string) ([]domain.DeliveryReceipt, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-sent_at-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var receipts []domain.DeliveryReceipt
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}
