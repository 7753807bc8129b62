package dynamo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-reservation-api/internal/config"
)

// TableAdmin is the subset of the DynamoDB client Bootstrap needs.
type TableAdmin interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	UpdateTimeToLive(ctx context.Context, in *dynamodb.UpdateTimeToLiveInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateTimeToLiveOutput, error)
}

type tableDef struct {
	name    string
	hashKey string
	// extra attributes referenced only by indexes
	indexAttrs []string
	indexes    []types.GlobalSecondaryIndex
	ttlAttr    string
}

func tableDefs(tables config.DynamoTables) []tableDef {
	return []tableDef{
		{
			name:    tables.Customers,
			hashKey: fieldEmail,
		},
		{
			name:    tables.Sessions,
			hashKey: fieldSessionID,
			ttlAttr: fieldExpiresAt,
		},
		{
			name:       tables.Reservations,
			hashKey:    fieldReservationID,
			indexAttrs: []string{fieldCustomerID, fieldCreatedAt},
			indexes:    []types.GlobalSecondaryIndex{gsi(indexCustomerCreatedAt, fieldCustomerID, fieldCreatedAt)},
		},
	}
}

// Bootstrap creates the customers, sessions and reservations tables, the
// reservations GSI, and enables TTL on sessions. Existing tables are left alone,
// so it runs on every startup. Failures are logged, not returned.
func Bootstrap(ctx context.Context, client TableAdmin, tables config.DynamoTables) {
	for _, def := range tableDefs(tables) {
		createTable(ctx, client, def.input())
		if def.ttlAttr != "" {
			enableTTL(ctx, client, def.name, def.ttlAttr)
		}
	}
}

func (d tableDef) input() *dynamodb.CreateTableInput {
	attrs := []types.AttributeDefinition{
		{AttributeName: aws.String(d.hashKey), AttributeType: types.ScalarAttributeTypeS},
	}
	for _, a := range d.indexAttrs {
		attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(a), AttributeType: types.ScalarAttributeTypeS})
	}
	in := &dynamodb.CreateTableInput{
		TableName:            aws.String(d.name),
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: attrs,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(d.hashKey), KeyType: types.KeyTypeHash},
		},
	}
	if len(d.indexes) > 0 {
		in.GlobalSecondaryIndexes = d.indexes
	}
	return in
}

// gsi builds a GSI descriptor. If sortKey is empty, only a hash key is added.
func gsi(indexName, hashKey, sortKey string) types.GlobalSecondaryIndex {
	ks := []types.KeySchemaElement{
		{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
	}
	if sortKey != "" {
		ks = append(ks, types.KeySchemaElement{
			AttributeName: aws.String(sortKey), KeyType: types.KeyTypeRange,
		})
	}
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(indexName),
		KeySchema:  ks,
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}

func createTable(ctx context.Context, client TableAdmin, input *dynamodb.CreateTableInput) {
	if _, err := client.CreateTable(ctx, input); err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			slog.Debug("table already exists", "table", *input.TableName)
			return
		}
		slog.Warn("could not create table", "table", *input.TableName, "err", err)
		return
	}
	slog.Info("created table", "table", *input.TableName)
}

func enableTTL(ctx context.Context, client TableAdmin, tableName, ttlAttr string) {
	_, err := client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
		TableName: aws.String(tableName),
		TimeToLiveSpecification: &types.TimeToLiveSpecification{
			Enabled:       aws.Bool(true),
			AttributeName: aws.String(ttlAttr),
		},
	})
	if err != nil {
		slog.Warn("could not enable TTL", "table", tableName, "err", err)
	}
}
