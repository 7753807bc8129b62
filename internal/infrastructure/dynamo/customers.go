package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-reservation-api/internal/domain"
)

// CustomerRepo provides typed DynamoDB operations for the customers table.
// The table is keyed by email, so uniqueness and the verification
// compare-and-swap are both enforced by condition expressions.
type CustomerRepo struct {
	client    API
	tableName string
}

func NewCustomerRepo(client API, tableName string) *CustomerRepo {
	return &CustomerRepo{client: client, tableName: tableName}
}

// Create inserts c only if no customer with the same email exists.
func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#e)"),
		ExpressionAttributeNames: map[string]string{"#e": fieldEmail},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("create customer: %w", domain.ErrDuplicateEmail)
	}
	return err
}

func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldEmail, email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("customer not found: %w", domain.ErrNotFound)
	}
	var c domain.Customer
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// MarkVerified flips is_verified and removes the OTP fields in one write,
// guarded on the customer still being unverified with the given code.
// Losing a race against another verification yields ErrInvalidRequest.
func (r *CustomerRepo) MarkVerified(ctx context.Context, email, otp string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey(fieldEmail, email),
		UpdateExpression:    aws.String("SET #v = :true, #u = :now REMOVE #otp, #exp"),
		ConditionExpression: aws.String("attribute_exists(#e) AND #v = :false AND #otp = :otp"),
		ExpressionAttributeNames: map[string]string{
			"#e":   fieldEmail,
			"#v":   fieldIsVerified,
			"#u":   fieldUpdatedAt,
			"#otp": fieldOTP,
			"#exp": fieldOTPExpiry,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":otp":   &types.AttributeValueMemberS{Value: otp},
			":now":   &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("mark verified: %w", domain.ErrInvalidRequest)
	}
	return err
}

// UpdatePasswordHash overwrites the stored hash of an existing customer.
func (r *CustomerRepo) UpdatePasswordHash(ctx context.Context, email, hash string) error {
	return r.update(ctx, email, map[string]interface{}{fieldPasswordHash: hash})
}

func (r *CustomerRepo) update(ctx context.Context, email string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339Nano)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	ue.Names["#e"] = fieldEmail
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldEmail, email),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#e)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if isConditionFailed(err) {
		return fmt.Errorf("customer not found: %w", domain.ErrNotFound)
	}
	return err
}
