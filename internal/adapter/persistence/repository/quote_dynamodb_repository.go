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

const (
	defaultQuotesTableName    = "quotes"
	defaultApprovalsTableName = "quote_approvals"
	workRequestIndexName      = "work_request_id-index"
)

type quoteLineItem struct {
	Kind        string `dynamodbav:"kind"`
	Description string `dynamodbav:"description"`
	Quantity    string `dynamodbav:"quantity"`
	UnitPrice   string `dynamodbav:"unit_price"`
	LineTotal   string `dynamodbav:"line_total"`
}

type quoteItem struct {
	ID            string          `dynamodbav:"id"`
	WorkRequestID string          `dynamodbav:"work_request_id"`
	ProjectID     string          `dynamodbav:"project_id"`
	ClientContact string          `dynamodbav:"client_contact"`
	Status        string          `dynamodbav:"status"`
	Currency      string          `dynamodbav:"currency"`
	Lines         []quoteLineItem `dynamodbav:"lines"`
	Subtotal      string          `dynamodbav:"subtotal"`
	VATRate       string          `dynamodbav:"vat_rate"`
	VATAmount     string          `dynamodbav:"vat_amount"`
	Total         string          `dynamodbav:"total"`
	ValidUntil    string          `dynamodbav:"valid_until"`
	DocumentURL   string          `dynamodbav:"document_url,omitempty"`
	CreatedBy     string          `dynamodbav:"created_by"`
	CreatedAt     string          `dynamodbav:"created_at"`
	UpdatedAt     string          `dynamodbav:"updated_at"`

	ApproverName    string `dynamodbav:"approver_name,omitempty"`
	ApprovedAt      string `dynamodbav:"approved_at,omitempty"`
	ApprovalOrigin  string `dynamodbav:"approval_origin,omitempty"`
	SignatureDigest string `dynamodbav:"signature_digest,omitempty"`
}

type approvalItem struct {
	QuoteID         string `dynamodbav:"quote_id"`
	ApproverName    string `dynamodbav:"approver_name"`
	ApprovedAt      string `dynamodbav:"approved_at"`
	OriginAddress   string `dynamodbav:"origin_address"`
	SignatureDigest string `dynamodbav:"signature_digest"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - quotes: PK id (string), GSI work_request_id-index on work_request_id
//   - quote_approvals: PK quote_id (string)
//
// Every status transition goes through UpdateStatus, whose condition
// expression pins both existence and the expected prior status. Two
// concurrent transitions on the same quote therefore cannot both succeed.

type QuoteDynamoRepository struct {
	ddb            *dynamodb.Client
	tableName      string
	approvalsTable string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client, tableName, approvalsTable string) *QuoteDynamoRepository {
	if tableName == "" {
		tableName = defaultQuotesTableName
	}
	if approvalsTable == "" {
		approvalsTable = defaultApprovalsTableName
	}
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName, approvalsTable: approvalsTable}
}

func (r *QuoteDynamoRepository) Insert(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, interfaces.ErrDuplicateQuote
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) GetByWorkRequestID(ctx context.Context, workRequestID string) (entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(workRequestIndexName),
		KeyConditionExpression: aws.String("#wr = :wr"),
		ExpressionAttributeNames: map[string]string{
			"#wr": "work_request_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":wr": &types.AttributeValueMemberS{Value: workRequestID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Items) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, expected entities.QuoteStatus, patch interfaces.QuotePatch) (entities.Quote, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	expr := "SET #status = :status, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(patch.Status)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
		":expected":   &types.AttributeValueMemberS{Value: string(expected)},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
		"#id":         "id",
	}

	if patch.DocumentURL != nil {
		expr += ", #document_url = :document_url"
		names["#document_url"] = "document_url"
		vals[":document_url"] = &types.AttributeValueMemberS{Value: *patch.DocumentURL}
	}
	if patch.Approval != nil {
		expr += ", approver_name = :approver_name, approved_at = :approved_at, approval_origin = :approval_origin, signature_digest = :signature_digest"
		vals[":approver_name"] = &types.AttributeValueMemberS{Value: patch.Approval.ApproverName}
		vals[":approved_at"] = &types.AttributeValueMemberS{Value: patch.Approval.ApprovedAt.UTC().Format(time.RFC3339Nano)}
		vals[":approval_origin"] = &types.AttributeValueMemberS{Value: patch.Approval.OriginAddress}
		vals[":signature_digest"] = &types.AttributeValueMemberS{Value: patch.Approval.SignatureDigest}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :expected"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			// Re-read so the caller learns the status actually found.
			current, gerr := r.GetByID(ctx, id)
			if gerr != nil {
				return entities.Quote{}, gerr
			}
			return current, interfaces.ErrStatusConflict
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) RecordApproval(ctx context.Context, rec entities.ApprovalRecord) error {
	av, err := attributevalue.MarshalMap(approvalItem{
		QuoteID:         rec.QuoteID,
		ApproverName:    rec.ApproverName,
		ApprovedAt:      rec.ApprovedAt.UTC().Format(time.RFC3339Nano),
		OriginAddress:   rec.OriginAddress,
		SignatureDigest: rec.SignatureDigest,
	})
	if err != nil {
		return err
	}

	// Write-once: a second approval record for the same quote is rejected.
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.approvalsTable),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#quote_id)"),
		ExpressionAttributeNames: map[string]string{
			"#quote_id": "quote_id",
		},
	})
	return err
}

func toQuoteItem(q entities.Quote) quoteItem {
	lines := make([]quoteLineItem, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, quoteLineItem{
			Kind:        string(l.Kind),
			Description: l.Description,
			Quantity:    floatToString(l.Quantity),
			UnitPrice:   floatToString(l.UnitPrice),
			LineTotal:   floatToString(l.LineTotal),
		})
	}

	it := quoteItem{
		ID:            q.ID,
		WorkRequestID: q.WorkRequestID,
		ProjectID:     q.ProjectID,
		ClientContact: q.ClientContact,
		Status:        string(q.Status),
		Currency:      q.Currency,
		Lines:         lines,
		Subtotal:      floatToString(q.Subtotal),
		VATRate:       floatToString(q.VATRate),
		VATAmount:     floatToString(q.VATAmount),
		Total:         floatToString(q.Total),
		ValidUntil:    q.ValidUntil.UTC().Format(time.RFC3339Nano),
		DocumentURL:   q.DocumentURL,
		CreatedBy:     q.CreatedBy,
		CreatedAt:     q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     q.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if q.Approval != nil {
		it.ApproverName = q.Approval.ApproverName
		it.ApprovedAt = q.Approval.ApprovedAt.UTC().Format(time.RFC3339Nano)
		it.ApprovalOrigin = q.Approval.OriginAddress
		it.SignatureDigest = q.Approval.SignatureDigest
	}
	return it
}

func fromQuoteItem(it quoteItem) entities.Quote {
	lines := make([]entities.QuoteLine, 0, len(it.Lines))
	for _, l := range it.Lines {
		quantity, _ := strconv.ParseFloat(l.Quantity, 64)
		unitPrice, _ := strconv.ParseFloat(l.UnitPrice, 64)
		lineTotal, _ := strconv.ParseFloat(l.LineTotal, 64)
		lines = append(lines, entities.QuoteLine{
			Kind:        entities.LineKind(l.Kind),
			Description: l.Description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
	}

	subtotal, _ := strconv.ParseFloat(it.Subtotal, 64)
	vatRate, _ := strconv.ParseFloat(it.VATRate, 64)
	vatAmount, _ := strconv.ParseFloat(it.VATAmount, 64)
	total, _ := strconv.ParseFloat(it.Total, 64)
	validUntil, _ := time.Parse(time.RFC3339Nano, it.ValidUntil)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	q := entities.Quote{
		ID:            it.ID,
		WorkRequestID: it.WorkRequestID,
		ProjectID:     it.ProjectID,
		ClientContact: it.ClientContact,
		Status:        entities.QuoteStatus(it.Status),
		Currency:      it.Currency,
		Lines:         lines,
		Subtotal:      subtotal,
		VATRate:       vatRate,
		VATAmount:     vatAmount,
		Total:         total,
		ValidUntil:    validUntil,
		DocumentURL:   it.DocumentURL,
		CreatedBy:     it.CreatedBy,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
	if it.ApproverName != "" {
		approvedAt, _ := time.Parse(time.RFC3339Nano, it.ApprovedAt)
		q.Approval = &entities.ApprovalRecord{
			QuoteID:         it.ID,
			ApproverName:    it.ApproverName,
			ApprovedAt:      approvedAt,
			OriginAddress:   it.ApprovalOrigin,
			SignatureDigest: it.SignatureDigest,
		}
	}
	return q
}
