package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// CommentRepository implements ports.CommentRepository using DynamoDB.
// The sort key embeds the zero-padded creation nanosecond so a plain
// query returns comments oldest first.
type CommentRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string // GSI2 - COMMENTID lookups
	logger    *zap.Logger
}

// NewCommentRepository creates a CommentRepository
func NewCommentRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.CommentRepository {
	return &CommentRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// commentItem is the DynamoDB item structure for a comment. Deleted
// comments keep their row with State flipped and Content emptied.
type commentItem struct {
	PK              string `dynamodbav:"PK"`
	SK              string `dynamodbav:"SK"`
	GSI2PK          string `dynamodbav:"GSI2PK"`
	GSI2SK          string `dynamodbav:"GSI2SK"`
	EntityType      string `dynamodbav:"EntityType"`
	CommentID       string `dynamodbav:"CommentID"`
	MemoryID        string `dynamodbav:"MemoryID"`
	UserID          string `dynamodbav:"UserID"`
	FamilyUnitID    string `dynamodbav:"FamilyUnitID"`
	ParentCommentID string `dynamodbav:"ParentCommentID,omitempty"`
	Depth           int    `dynamodbav:"Depth"`
	Content         string `dynamodbav:"Content"`
	State           string `dynamodbav:"State"`
	CreatedAtNano   int64  `dynamodbav:"CreatedAtNano"`
	CreatedAt       string `dynamodbav:"CreatedAt"`
	UpdatedAt       string `dynamodbav:"UpdatedAt"`
}

func commentSK(createdAt time.Time, commentID string) string {
	return fmt.Sprintf("COMMENT#%020d#%s", createdAt.UnixNano(), commentID)
}

func toCommentItem(c *entities.Comment) commentItem {
	item := commentItem{
		PK:            fmt.Sprintf("MEMORY#%s", c.MemoryID().String()),
		SK:            commentSK(c.CreatedAt(), c.ID().String()),
		GSI2PK:        fmt.Sprintf("COMMENTID#%s", c.ID().String()),
		GSI2SK:        "METADATA",
		EntityType:    "COMMENT",
		CommentID:     c.ID().String(),
		MemoryID:      c.MemoryID().String(),
		UserID:        c.UserID(),
		FamilyUnitID:  c.FamilyUnitID(),
		Depth:         c.Depth(),
		Content:       c.Content(),
		State:         string(c.State()),
		CreatedAtNano: c.CreatedAt().UnixNano(),
		CreatedAt:     c.CreatedAt().UTC().Format(time.RFC3339Nano),
		UpdatedAt:     c.UpdatedAt().UTC().Format(time.RFC3339Nano),
	}
	if parentID := c.ParentCommentID(); parentID != nil {
		item.ParentCommentID = parentID.String()
	}
	return item
}

func fromCommentItem(item commentItem) (*entities.Comment, error) {
	id, err := valueobjects.NewCommentIDFromString(item.CommentID)
	if err != nil {
		return nil, fmt.Errorf("malformed comment item %s: %w", item.CommentID, err)
	}
	memoryID, err := valueobjects.NewMemoryIDFromString(item.MemoryID)
	if err != nil {
		return nil, fmt.Errorf("malformed comment memory ID for %s: %w", item.CommentID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("malformed created_at for %s: %w", item.CommentID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("malformed updated_at for %s: %w", item.CommentID, err)
	}

	var parentID *valueobjects.CommentID
	if item.ParentCommentID != "" {
		pid, err := valueobjects.NewCommentIDFromString(item.ParentCommentID)
		if err != nil {
			return nil, fmt.Errorf("malformed parent comment ID for %s: %w", item.CommentID, err)
		}
		parentID = &pid
	}

	var content valueobjects.CommentContent
	if item.State == string(entities.CommentStateActive) {
		content, err = valueobjects.NewCommentContent(item.Content)
		if err != nil {
			return nil, fmt.Errorf("malformed content for %s: %w", item.CommentID, err)
		}
	}

	return entities.ReconstructComment(
		id,
		memoryID,
		item.UserID,
		item.FamilyUnitID,
		parentID,
		item.Depth,
		content,
		entities.CommentState(item.State),
		createdAt,
		updatedAt,
	), nil
}

// Save persists a new comment
func (r *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	av, err := attributevalue.MarshalMap(toCommentItem(comment))
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal comment", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to save comment",
			zap.String("commentID", comment.ID().String()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("save comment", err)
	}

	return nil
}

// FindByID retrieves a comment via the GSI2 direct-lookup index
func (r *CommentRepository) FindByID(ctx context.Context, id valueobjects.CommentID) (*entities.Comment, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI2PK = :pk AND GSI2SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("COMMENTID#%s", id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query comment", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("comment not found")
	}

	var item commentItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal comment", err)
	}

	return fromCommentItem(item)
}

// FindByMemory returns all of a memory's comments oldest first, deleted
// ones included.
func (r *CommentRepository) FindByMemory(ctx context.Context, memoryID valueobjects.MemoryID) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	var lastKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: fmt.Sprintf("MEMORY#%s", memoryID.String())},
				":prefix": &types.AttributeValueMemberS{Value: "COMMENT#"},
			},
			ExclusiveStartKey: lastKey,
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query comments", err)
		}

		for _, raw := range result.Items {
			var item commentItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Error("Skipping malformed comment item", zap.Error(err))
				continue
			}
			comment, err := fromCommentItem(item)
			if err != nil {
				r.logger.Error("Skipping malformed comment item",
					zap.String("commentID", item.CommentID),
					zap.Error(err),
				)
				continue
			}
			comments = append(comments, comment)
		}

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	return comments, nil
}

// Update overwrites an existing comment. The sort key is derived from the
// immutable creation time, so the overwrite lands on the same row.
func (r *CommentRepository) Update(ctx context.Context, comment *entities.Comment) error {
	av, err := attributevalue.MarshalMap(toCommentItem(comment))
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal comment", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to update comment",
			zap.String("commentID", comment.ID().String()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("update comment", err)
	}

	return nil
}

// CountActiveByMemory counts non-deleted comments on a memory
func (r *CommentRepository) CountActiveByMemory(ctx context.Context, memoryID valueobjects.MemoryID) (int, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("MEMORY#%s", memoryID.String()))).
		And(expression.Key("SK").BeginsWith("COMMENT#"))
	filter := expression.Name("State").Equal(expression.Value(string(entities.CommentStateActive)))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return 0, pkgerrors.NewDatabaseError("build comment count query", err)
	}

	count := 0
	var lastKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			Select:                    types.SelectCount,
			ExclusiveStartKey:         lastKey,
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return 0, pkgerrors.NewDatabaseError("count comments", err)
		}
		count += int(result.Count)

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	return count, nil
}
