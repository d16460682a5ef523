package dynamo

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/phone-auth-api/internal/domain"
)

// batchDeleteMax is the DynamoDB BatchWriteItem request limit.
const batchDeleteMax = 25

// VerificationRepo manages pending phone verification records.
// PK: code_id. The sweep-index GSI (sweep_bucket, expires_at) serves the
// expiry range query.
type VerificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVerificationRepo(client *dynamodb.Client, tableName string) *VerificationRepo {
	return &VerificationRepo{client: client, tableName: tableName}
}

// Put persists a record as a single atomic write.
func (r *VerificationRepo) Put(ctx context.Context, v *domain.VerificationRecord) error {
	v.SweepBucket = sweepBucket
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *VerificationRepo) Get(ctx context.Context, codeID string) (*domain.VerificationRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("code_id", codeID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("verification not found: %w", domain.ErrNotFound)
	}
	var v domain.VerificationRecord
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes a record and reports whether it existed at delete time.
// ReturnValues=ALL_OLD makes the delete a conditional observation: when two
// callers race for the same code, exactly one sees existed=true. Deleting a
// missing key is a no-op, not an error.
func (r *VerificationRepo) Delete(ctx context.Context, codeID string) (bool, error) {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          strKey("code_id", codeID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	return len(out.Attributes) > 0, nil
}

// QueryExpired returns the ids of all records with expires_at <= cutoff
// (Unix milliseconds), ordered by expiry via the sweep-index GSI.
func (r *VerificationRepo) QueryExpired(ctx context.Context, cutoff int64) ([]string, error) {
	var ids []string
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String("sweep-index"),
			KeyConditionExpression: aws.String("sweep_bucket = :b AND expires_at <= :cutoff"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":b":      &types.AttributeValueMemberS{Value: sweepBucket},
				":cutoff": &types.AttributeValueMemberN{Value: strconv.FormatInt(cutoff, 10)},
			},
			ProjectionExpression: aws.String("code_id"),
			ExclusiveStartKey:    startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			if v, ok := item["code_id"].(*types.AttributeValueMemberS); ok {
				ids = append(ids, v.Value)
			}
		}
		if out.LastEvaluatedKey == nil {
			return ids, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// DeleteBatch removes the given records in BatchWriteItem chunks. Keys that
// no longer exist (deleted concurrently by a verifier) are silently ignored
// by DynamoDB.
func (r *VerificationRepo) DeleteBatch(ctx context.Context, codeIDs []string) error {
	for start := 0; start < len(codeIDs); start += batchDeleteMax {
		end := start + batchDeleteMax
		if end > len(codeIDs) {
			end = len(codeIDs)
		}
		reqs := make([]types.WriteRequest, 0, end-start)
		for _, id := range codeIDs[start:end] {
			reqs = append(reqs, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: strKey("code_id", id)},
			})
		}
		out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{r.tableName: reqs},
		})
		if err != nil {
			return fmt.Errorf("batch delete verifications: %w", err)
		}
		// Throttled leftovers are picked up by the next sweep.
		if n := len(out.UnprocessedItems[r.tableName]); n > 0 {
			slog.Warn("batch delete left unprocessed items", "count", n)
		}
	}
	return nil
}
