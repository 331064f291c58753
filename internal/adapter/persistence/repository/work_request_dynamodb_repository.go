package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"sterkbouw_quotes/internal/domain/entities"
	"sterkbouw_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultWorkRequestsTableName = "work_requests"

type materialInputItem struct {
	Description string  `dynamodbav:"description"`
	Quantity    string  `dynamodbav:"quantity"`
	UnitPrice   *string `dynamodbav:"unit_price,omitempty"`
}

type workRequestItem struct {
	ID            string              `dynamodbav:"id"`
	ProjectID     string              `dynamodbav:"project_id"`
	Description   string              `dynamodbav:"description"`
	ClientContact string              `dynamodbav:"client_contact"`
	Status        string              `dynamodbav:"status"`
	LaborHours    string              `dynamodbav:"labor_hours"`
	Materials     []materialInputItem `dynamodbav:"materials"`
	CreatedAt     string              `dynamodbav:"created_at"`
}

// WorkRequestDynamoRepository reads work requests and advances their status
// once the attached quote is approved.
//
// Table requirements:
//   - work_requests: PK id (string)
//
// Work requests are created by the upstream project service; this repository
// never inserts them.

type WorkRequestDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWorkRequestRepository = (*WorkRequestDynamoRepository)(nil)

func NewWorkRequestDynamoRepository(ddb *dynamodb.Client, tableName string) *WorkRequestDynamoRepository {
	if tableName == "" {
		tableName = defaultWorkRequestsTableName
	}
	return &WorkRequestDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *WorkRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.WorkRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WorkRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.WorkRequest{}, nil
	}

	var it workRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WorkRequest{}, err
	}
	return fromWorkRequestItem(it), nil
}

func (r *WorkRequestDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.WorkRequestStatus) (entities.WorkRequest, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.WorkRequest{}, nil
		}
		return entities.WorkRequest{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.WorkRequest{}, nil
	}

	var it workRequestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.WorkRequest{}, err
	}
	return fromWorkRequestItem(it), nil
}

func fromWorkRequestItem(it workRequestItem) entities.WorkRequest {
	materials := make([]entities.MaterialInput, 0, len(it.Materials))
	for _, m := range it.Materials {
		quantity, _ := strconv.ParseFloat(m.Quantity, 64)
		input := entities.MaterialInput{
			Description: m.Description,
			Quantity:    quantity,
		}
		if m.UnitPrice != nil {
			price, err := strconv.ParseFloat(*m.UnitPrice, 64)
			if err == nil {
				input.UnitPrice = &price
			}
		}
		materials = append(materials, input)
	}

	laborHours, _ := strconv.ParseFloat(it.LaborHours, 64)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)

	return entities.WorkRequest{
		ID:            it.ID,
		ProjectID:     it.ProjectID,
		Description:   it.Description,
		ClientContact: it.ClientContact,
		Status:        entities.WorkRequestStatus(it.Status),
		LaborHours:    laborHours,
		Materials:     materials,
		CreatedAt:     createdAt,
	}
}
