package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-reservation-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAdmin struct{ mock.Mock }

func (m *mockAdmin) CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.CreateTableOutput)
	return out, args.Error(1)
}

func (m *mockAdmin) UpdateTimeToLive(ctx context.Context, in *dynamodb.UpdateTimeToLiveInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateTimeToLiveOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.UpdateTimeToLiveOutput)
	return out, args.Error(1)
}

var testTables = config.DynamoTables{Customers: "customers", Sessions: "sessions", Reservations: "reservations"}

func TestBootstrap_CreatesTablesAndSessionTTL(t *testing.T) {
	admin := &mockAdmin{}
	var created []*dynamodb.CreateTableInput
	admin.On("CreateTable", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = append(created, args.Get(1).(*dynamodb.CreateTableInput)) }).
		Return(&dynamodb.CreateTableOutput{}, nil)
	admin.On("UpdateTimeToLive", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateTimeToLiveInput) bool {
		return aws.ToString(in.TableName) == "sessions" &&
			aws.ToString(in.TimeToLiveSpecification.AttributeName) == fieldExpiresAt
	})).Return(&dynamodb.UpdateTimeToLiveOutput{}, nil).Once()

	Bootstrap(context.Background(), admin, testTables)

	require.Len(t, created, 3)
	customers := created[0]
	assert.Equal(t, "customers", aws.ToString(customers.TableName))
	assert.Equal(t, fieldEmail, aws.ToString(customers.KeySchema[0].AttributeName))
	assert.Empty(t, customers.GlobalSecondaryIndexes)
	assert.Len(t, customers.AttributeDefinitions, 1)

	assert.Equal(t, "sessions", aws.ToString(created[1].TableName))
	assert.Empty(t, created[1].GlobalSecondaryIndexes)

	reservations := created[2]
	require.Len(t, reservations.GlobalSecondaryIndexes, 1)
	ks := reservations.GlobalSecondaryIndexes[0].KeySchema
	require.Len(t, ks, 2)
	assert.Equal(t, types.KeyTypeRange, ks[1].KeyType)
	assert.Len(t, reservations.AttributeDefinitions, 3)
	admin.AssertExpectations(t)
}

func TestBootstrap_ExistingTablesAreNotFatal(t *testing.T) {
	admin := &mockAdmin{}
	admin.On("CreateTable", mock.Anything, mock.Anything).
		Return(nil, &types.ResourceInUseException{Message: aws.String("exists")})
	admin.On("UpdateTimeToLive", mock.Anything, mock.Anything).
		Return(nil, errors.New("TimeToLive is already enabled"))

	assert.NotPanics(t, func() { Bootstrap(context.Background(), admin, testTables) })
	admin.AssertNumberOfCalls(t, "CreateTable", 3)
	admin.AssertNumberOfCalls(t, "UpdateTimeToLive", 1)
}
