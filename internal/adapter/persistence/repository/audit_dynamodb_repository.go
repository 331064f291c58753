package repository

import (
	"context"
	"time"

	"sterkbouw_quotes/internal/domain/entities"
	"sterkbouw_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultAuditTableName = "quote_audit"

type auditItem struct {
	ID         string            `dynamodbav:"id"`
	Type       string            `dynamodbav:"type"`
	ActorType  string            `dynamodbav:"actor_type"`
	ActorID    string            `dynamodbav:"actor_id,omitempty"`
	TargetType string            `dynamodbav:"target_type"`
	TargetID   string            `dynamodbav:"target_id"`
	Metadata   map[string]string `dynamodbav:"metadata,omitempty"`
	CreatedAt  string            `dynamodbav:"created_at"`
}

// AuditDynamoRepository appends compliance events.
//
// Table requirements:
//   - quote_audit: PK id (string)
//
// Events are append-only: the condition expression rejects any write that
// would overwrite an existing event, and no update or delete path exists.

type AuditDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAuditRecorder = (*AuditDynamoRepository)(nil)

func NewAuditDynamoRepository(ddb *dynamodb.Client, tableName string) *AuditDynamoRepository {
	if tableName == "" {
		tableName = defaultAuditTableName
	}
	return &AuditDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *AuditDynamoRepository) Record(ctx context.Context, event entities.AuditEvent) error {
	av, err := attributevalue.MarshalMap(auditItem{
		ID:         event.ID,
		Type:       string(event.Type),
		ActorType:  string(event.ActorType),
		ActorID:    event.ActorID,
		TargetType: event.TargetType,
		TargetID:   event.TargetID,
		Metadata:   event.Metadata,
		CreatedAt:  event.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}
