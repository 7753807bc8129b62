package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-reservation-api/internal/domain"
)

// ReservationRepo provides typed DynamoDB operations for the reservations table.
type ReservationRepo struct {
	client    API
	tableName string
}

func NewReservationRepo(client API, tableName string) *ReservationRepo {
	return &ReservationRepo{client: client, tableName: tableName}
}

func (r *ReservationRepo) Put(ctx context.Context, res *domain.Reservation) error {
	item, err := attributevalue.MarshalMap(res)
	if err != nil {
		return fmt.Errorf("marshal reservation: %w", err)
	}
	item[fieldCreatedAt] = &types.AttributeValueMemberS{Value: res.CreatedAt.UTC().Format(sortableTimeLayout)}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByCustomer returns the customer's reservations, newest first, following
// LastEvaluatedKey across result pages.
func (r *ReservationRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error) {
	reservations := []domain.Reservation{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(indexCustomerCreatedAt),
			KeyConditionExpression: aws.String("#c = :cid"),
			ExpressionAttributeNames: map[string]string{
				"#c": fieldCustomerID,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":cid": &types.AttributeValueMemberS{Value: customerID},
			},
			ScanIndexForward:  aws.Bool(false),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Reservation
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		reservations = append(reservations, page...)
		if len(out.LastEvaluatedKey) == 0 {
			return reservations, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
