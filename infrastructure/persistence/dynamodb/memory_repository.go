// Package dynamodb implements the repository ports on a single DynamoDB
// table. Memories key by family, comments and reactions key by memory, and
// two GSIs give direct lookups by item ID.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
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
	"keepsake-backend/domain/feed"
	pkgerrors "keepsake-backend/pkg/errors"
)

// MemoryRepository implements ports.MemoryRepository using DynamoDB
type MemoryRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string // GSI1 - MEMORYID lookups
	logger    *zap.Logger
}

// NewMemoryRepository creates a MemoryRepository
func NewMemoryRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.MemoryRepository {
	return &MemoryRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// memoryItem is the DynamoDB item structure for a memory. SearchText is a
// lowercased concatenation of title and description so substring search
// can run as a case-insensitive contains filter.
type memoryItem struct {
	PK           string   `dynamodbav:"PK"`
	SK           string   `dynamodbav:"SK"`
	GSI1PK       string   `dynamodbav:"GSI1PK"`
	GSI1SK       string   `dynamodbav:"GSI1SK"`
	EntityType   string   `dynamodbav:"EntityType"`
	MemoryID     string   `dynamodbav:"MemoryID"`
	UserID       string   `dynamodbav:"UserID"`
	FamilyUnitID string   `dynamodbav:"FamilyUnitID"`
	Title        string   `dynamodbav:"Title"`
	Description  string   `dynamodbav:"Description"`
	SearchText   string   `dynamodbav:"SearchText"`
	MemoryDate   string   `dynamodbav:"MemoryDate"`
	Location     string   `dynamodbav:"Location"`
	Tags         []string `dynamodbav:"Tags,omitempty"`
	Status       string   `dynamodbav:"Status"`
	CreatedAt    string   `dynamodbav:"CreatedAt"`
	UpdatedAt    string   `dynamodbav:"UpdatedAt"`
	ModifiedBy   string   `dynamodbav:"ModifiedBy"`
}

func memoryPK(familyUnitID string) string { return fmt.Sprintf("FAMILY#%s", familyUnitID) }
func memorySK(memoryID string) string     { return fmt.Sprintf("MEMORY#%s", memoryID) }

func toMemoryItem(m *entities.Memory) memoryItem {
	return memoryItem{
		PK:           memoryPK(m.FamilyUnitID()),
		SK:           memorySK(m.ID().String()),
		GSI1PK:       fmt.Sprintf("MEMORYID#%s", m.ID().String()),
		GSI1SK:       "METADATA",
		EntityType:   "MEMORY",
		MemoryID:     m.ID().String(),
		UserID:       m.UserID(),
		FamilyUnitID: m.FamilyUnitID(),
		Title:        m.Title(),
		Description:  m.Description(),
		SearchText:   strings.ToLower(m.Title() + " " + m.Description()),
		MemoryDate:   m.MemoryDate().UTC().Format(time.RFC3339),
		Location:     m.Location(),
		Tags:         m.Tags(),
		Status:       string(m.Status()),
		CreatedAt:    m.CreatedAt().UTC().Format(time.RFC3339Nano),
		UpdatedAt:    m.UpdatedAt().UTC().Format(time.RFC3339Nano),
		ModifiedBy:   m.ModifiedBy(),
	}
}

func fromMemoryItem(item memoryItem) (*entities.Memory, error) {
	id, err := valueobjects.NewMemoryIDFromString(item.MemoryID)
	if err != nil {
		return nil, fmt.Errorf("malformed memory item %s: %w", item.MemoryID, err)
	}
	memoryDate, err := time.Parse(time.RFC3339, item.MemoryDate)
	if err != nil {
		return nil, fmt.Errorf("malformed memory date for %s: %w", item.MemoryID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("malformed created_at for %s: %w", item.MemoryID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("malformed updated_at for %s: %w", item.MemoryID, err)
	}

	return entities.ReconstructMemory(
		id,
		item.UserID,
		item.FamilyUnitID,
		item.Title,
		item.Description,
		memoryDate,
		item.Location,
		item.Tags,
		entities.MemoryStatus(item.Status),
		createdAt,
		updatedAt,
		item.ModifiedBy,
	), nil
}

// Save persists a new memory
func (r *MemoryRepository) Save(ctx context.Context, memory *entities.Memory) error {
	av, err := attributevalue.MarshalMap(toMemoryItem(memory))
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal memory", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to save memory",
			zap.String("memoryID", memory.ID().String()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("save memory", err)
	}

	return nil
}

// FindByID retrieves a memory via the GSI1 direct-lookup index
func (r *MemoryRepository) FindByID(ctx context.Context, id valueobjects.MemoryID) (*entities.Memory, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("MEMORYID#%s", id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query memory", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("memory not found")
	}

	var item memoryItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal memory", err)
	}

	return fromMemoryItem(item)
}

// FindByFamily queries a family's memories with the filter pushed down as
// a DynamoDB filter expression. Malformed rows are logged and skipped.
func (r *MemoryRepository) FindByFamily(ctx context.Context, familyUnitID string, filter feed.Filter) ([]*entities.Memory, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(memoryPK(familyUnitID))).
		And(expression.Key("SK").BeginsWith("MEMORY#"))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)

	if cond, ok := buildMemoryFilter(filter); ok {
		builder = builder.WithFilter(cond)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build memory query", err)
	}

	var memories []*entities.Memory
	var lastKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query family memories", err)
		}

		for _, raw := range result.Items {
			var item memoryItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Error("Skipping malformed memory item", zap.Error(err))
				continue
			}
			memory, err := fromMemoryItem(item)
			if err != nil {
				r.logger.Error("Skipping malformed memory item",
					zap.String("memoryID", item.MemoryID),
					zap.Error(err),
				)
				continue
			}
			memories = append(memories, memory)
		}

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	return memories, nil
}

// buildMemoryFilter translates a feed filter into a DynamoDB condition.
// Returns false when no condition applies.
func buildMemoryFilter(filter feed.Filter) (expression.ConditionBuilder, bool) {
	var conds []expression.ConditionBuilder

	if filter.Status != "" {
		conds = append(conds, expression.Name("Status").Equal(expression.Value(filter.Status)))
	}
	if filter.UserID != "" {
		conds = append(conds, expression.Name("UserID").Equal(expression.Value(filter.UserID)))
	}
	if len(filter.Tags) > 0 {
		// Any-match across the requested tags
		tagCond := expression.Name("Tags").Contains(strings.ToLower(filter.Tags[0]))
		for _, tag := range filter.Tags[1:] {
			tagCond = tagCond.Or(expression.Name("Tags").Contains(strings.ToLower(tag)))
		}
		conds = append(conds, tagCond)
	}
	if filter.MemoryDateFrom != nil {
		conds = append(conds, expression.Name("MemoryDate").
			GreaterThanEqual(expression.Value(filter.MemoryDateFrom.UTC().Format(time.RFC3339))))
	}
	if filter.MemoryDateTo != nil {
		conds = append(conds, expression.Name("MemoryDate").
			LessThanEqual(expression.Value(filter.MemoryDateTo.UTC().Format(time.RFC3339))))
	}
	if filter.Search != "" {
		conds = append(conds, expression.Name("SearchText").Contains(strings.ToLower(filter.Search)))
	}

	if len(conds) == 0 {
		return expression.ConditionBuilder{}, false
	}

	cond := conds[0]
	for _, c := range conds[1:] {
		cond = cond.And(c)
	}
	return cond, true
}

// Update overwrites an existing memory
func (r *MemoryRepository) Update(ctx context.Context, memory *entities.Memory) error {
	av, err := attributevalue.MarshalMap(toMemoryItem(memory))
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal memory", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewNotFoundError("memory not found")
		}
		r.logger.Error("Failed to update memory",
			zap.String("memoryID", memory.ID().String()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("update memory", err)
	}

	return nil
}
