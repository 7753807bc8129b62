package dynamo

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-reservation-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReservationRepo_ListByCustomer_NewestFirst(t *testing.T) {
	res := domain.Reservation{ReservationID: "r1", CustomerID: "c1", Date: "2026-10-20", Time: "19:30", Guests: 2,
		Status: domain.ReservationPending, CreatedAt: time.Now().UTC()}
	item, err := attributevalue.MarshalMap(res)
	require.NoError(t, err)

	api := &mockAPI{}
	api.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return aws.ToString(in.IndexName) == "customer_id-created_at-index" && !aws.ToBool(in.ScanIndexForward)
	})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}, nil)

	got, err := NewReservationRepo(api, "reservations").ListByCustomer(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ReservationID)
	assert.Equal(t, 2, got[0].Guests)
}

func TestReservationRepo_ListByCustomer_Empty(t *testing.T) {
	api := &mockAPI{}
	api.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

	got, err := NewReservationRepo(api, "reservations").ListByCustomer(context.Background(), "c1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReservationRepo_Put_SortableCreatedAt(t *testing.T) {
	var captured *dynamodb.PutItemInput
	api := &mockAPI{}
	api.On("PutItem", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*dynamodb.PutItemInput) }).
		Return(&dynamodb.PutItemOutput{}, nil)

	whole := time.Date(2026, 10, 18, 12, 0, 5, 0, time.UTC)
	res := &domain.Reservation{ReservationID: "r1", CustomerID: "c1", Status: domain.ReservationPending, CreatedAt: whole}
	require.NoError(t, NewReservationRepo(api, "reservations").Put(context.Background(), res))

	created, ok := captured.Item[fieldCreatedAt].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "2026-10-18T12:00:05.000000000Z", created.Value)

	// A timestamp 100ms later must sort after the whole-second one.
	later := whole.Add(100 * time.Millisecond).Format(sortableTimeLayout)
	assert.Less(t, created.Value, later)

	var back domain.Reservation
	require.NoError(t, attributevalue.UnmarshalMap(captured.Item, &back))
	assert.True(t, whole.Equal(back.CreatedAt))
}

func TestReservationRepo_ListByCustomer_FollowsPages(t *testing.T) {
	first, err := attributevalue.MarshalMap(domain.Reservation{ReservationID: "r2", CustomerID: "c1"})
	require.NoError(t, err)
	second, err := attributevalue.MarshalMap(domain.Reservation{ReservationID: "r1", CustomerID: "c1"})
	require.NoError(t, err)
	cursor := map[string]types.AttributeValue{fieldReservationID: &types.AttributeValueMemberS{Value: "r2"}}

	api := &mockAPI{}
	api.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.QueryOutput{
		Items:            []map[string]types.AttributeValue{first},
		LastEvaluatedKey: cursor,
	}, nil).Once()
	api.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey != nil
	})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{second}}, nil).Once()

	got, err := NewReservationRepo(api, "reservations").ListByCustomer(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r2", got[0].ReservationID)
	assert.Equal(t, "r1", got[1].ReservationID)
	api.AssertExpectations(t)
}
