package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// ReactionRepository implements ports.ReactionRepository using DynamoDB.
// The sort key encodes user and emoji, so the one-reaction-per-user-per-
// emoji rule is a conditional write rather than a read-then-write check.
// Two concurrent identical reactions race safely: exactly one wins.
type ReactionRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string // GSI2 - REACTIONID lookups
	logger    *zap.Logger
}

// NewReactionRepository creates a ReactionRepository
func NewReactionRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.ReactionRepository {
	return &ReactionRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// reactionItem is the DynamoDB item structure for a reaction
type reactionItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	GSI2PK       string `dynamodbav:"GSI2PK"`
	GSI2SK       string `dynamodbav:"GSI2SK"`
	EntityType   string `dynamodbav:"EntityType"`
	ReactionID   string `dynamodbav:"ReactionID"`
	MemoryID     string `dynamodbav:"MemoryID"`
	UserID       string `dynamodbav:"UserID"`
	FamilyUnitID string `dynamodbav:"FamilyUnitID"`
	Emoji        string `dynamodbav:"Emoji"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
}

func reactionSK(userID, emojiKey string) string {
	return fmt.Sprintf("REACTION#%s#%s", userID, emojiKey)
}

func toReactionItem(r *entities.Reaction) reactionItem {
	return reactionItem{
		PK:           fmt.Sprintf("MEMORY#%s", r.MemoryID().String()),
		SK:           reactionSK(r.UserID(), r.Emoji().Key()),
		GSI2PK:       fmt.Sprintf("REACTIONID#%s", r.ID().String()),
		GSI2SK:       "METADATA",
		EntityType:   "REACTION",
		ReactionID:   r.ID().String(),
		MemoryID:     r.MemoryID().String(),
		UserID:       r.UserID(),
		FamilyUnitID: r.FamilyUnitID(),
		Emoji:        r.Emoji().String(),
		CreatedAt:    r.CreatedAt().UTC().Format(time.RFC3339Nano),
	}
}

func fromReactionItem(item reactionItem) (*entities.Reaction, error) {
	id, err := valueobjects.NewReactionIDFromString(item.ReactionID)
	if err != nil {
		return nil, fmt.Errorf("malformed reaction item %s: %w", item.ReactionID, err)
	}
	memoryID, err := valueobjects.NewMemoryIDFromString(item.MemoryID)
	if err != nil {
		return nil, fmt.Errorf("malformed reaction memory ID for %s: %w", item.ReactionID, err)
	}
	emoji, err := valueobjects.NewEmoji(item.Emoji)
	if err != nil {
		return nil, fmt.Errorf("malformed reaction emoji for %s: %w", item.ReactionID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("malformed created_at for %s: %w", item.ReactionID, err)
	}

	return entities.ReconstructReaction(id, memoryID, item.UserID, item.FamilyUnitID, emoji, createdAt), nil
}

// Save stores a reaction, rejecting duplicates at write time
func (r *ReactionRepository) Save(ctx context.Context, reaction *entities.Reaction) error {
	av, err := attributevalue.MarshalMap(toReactionItem(reaction))
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal reaction", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewDuplicateReactionError()
		}
		r.logger.Error("Failed to save reaction",
			zap.String("reactionID", reaction.ID().String()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("save reaction", err)
	}

	return nil
}

// FindByID retrieves a reaction via the GSI2 direct-lookup index
func (r *ReactionRepository) FindByID(ctx context.Context, id valueobjects.ReactionID) (*entities.Reaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI2PK = :pk AND GSI2SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("REACTIONID#%s", id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query reaction", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("reaction not found")
	}

	var item reactionItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal reaction", err)
	}

	return fromReactionItem(item)
}

// FindByMemory returns a memory's reactions ordered by creation time
func (r *ReactionRepository) FindByMemory(ctx context.Context, memoryID valueobjects.MemoryID) ([]*entities.Reaction, error) {
	items, err := r.queryByPrefix(ctx, memoryID, "REACTION#")
	if err != nil {
		return nil, err
	}

	reactions := make([]*entities.Reaction, 0, len(items))
	for _, item := range items {
		reaction, err := fromReactionItem(item)
		if err != nil {
			r.logger.Error("Skipping malformed reaction item",
				zap.String("reactionID", item.ReactionID),
				zap.Error(err),
			)
			continue
		}
		reactions = append(reactions, reaction)
	}

	// Sort key order is user/emoji; callers expect creation order
	sort.SliceStable(reactions, func(i, j int) bool {
		return reactions[i].CreatedAt().Before(reactions[j].CreatedAt())
	})

	return reactions, nil
}

// FindByMemoryAndUser returns one user's reactions on a memory
func (r *ReactionRepository) FindByMemoryAndUser(ctx context.Context, memoryID valueobjects.MemoryID, userID string) ([]*entities.Reaction, error) {
	items, err := r.queryByPrefix(ctx, memoryID, fmt.Sprintf("REACTION#%s#", userID))
	if err != nil {
		return nil, err
	}

	reactions := make([]*entities.Reaction, 0, len(items))
	for _, item := range items {
		reaction, err := fromReactionItem(item)
		if err != nil {
			r.logger.Error("Skipping malformed reaction item",
				zap.String("reactionID", item.ReactionID),
				zap.Error(err),
			)
			continue
		}
		reactions = append(reactions, reaction)
	}

	sort.SliceStable(reactions, func(i, j int) bool {
		return reactions[i].CreatedAt().Before(reactions[j].CreatedAt())
	})

	return reactions, nil
}

func (r *ReactionRepository) queryByPrefix(ctx context.Context, memoryID valueobjects.MemoryID, prefix string) ([]reactionItem, error) {
	var items []reactionItem
	var lastKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: fmt.Sprintf("MEMORY#%s", memoryID.String())},
				":prefix": &types.AttributeValueMemberS{Value: prefix},
			},
			ExclusiveStartKey: lastKey,
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query reactions", err)
		}

		for _, raw := range result.Items {
			var item reactionItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Error("Skipping malformed reaction item", zap.Error(err))
				continue
			}
			items = append(items, item)
		}

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	return items, nil
}

// Delete removes a reaction
func (r *ReactionRepository) Delete(ctx context.Context, reaction *entities.Reaction) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("MEMORY#%s", reaction.MemoryID().String())},
			"SK": &types.AttributeValueMemberS{Value: reactionSK(reaction.UserID(), reaction.Emoji().Key())},
		},
	})
	if err != nil {
		r.logger.Error("Failed to delete reaction",
			zap.String("reactionID", reaction.ID().String()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("delete reaction", err)
	}

	return nil
}
