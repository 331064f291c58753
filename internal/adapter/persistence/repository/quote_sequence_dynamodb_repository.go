package repository

import (
	"context"
	"fmt"
	"strconv"

	"sterkbouw_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCountersTableName = "quote_counters"

// QuoteSequenceDynamoRepository hands out per-period quote sequence numbers.
//
// Table requirements:
//   - quote_counters: PK period (string)
//
// The increment is a single UpdateItem with an ADD action, which DynamoDB
// applies atomically. ReturnValues ALL_NEW hands back the value this caller
// produced, so no two callers ever observe the same number for a period no
// matter how many service instances run.

type QuoteSequenceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteSequenceRepository = (*QuoteSequenceDynamoRepository)(nil)

func NewQuoteSequenceDynamoRepository(ddb *dynamodb.Client, tableName string) *QuoteSequenceDynamoRepository {
	if tableName == "" {
		tableName = defaultCountersTableName
	}
	return &QuoteSequenceDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteSequenceDynamoRepository) NextSequence(ctx context.Context, periodKey string) (int, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"period": &types.AttributeValueMemberS{Value: periodKey},
		},
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return 0, err
	}

	attr, ok := out.Attributes["seq"]
	if !ok {
		return 0, fmt.Errorf("counter item for period %s missing seq attribute", periodKey)
	}
	n, ok := attr.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter item for period %s has non-numeric seq", periodKey)
	}
	return strconv.Atoi(n.Value)
}
