package db

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/sentiview/internal/models"
)

const HISTORY_RETENTION = 30 * 24 * time.Hour

// DynamoDBAPI is the subset of the DynamoDB client the history store uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// HistoryStore keeps analysis summaries in a DynamoDB table keyed by "id".
// Items expire through the table's TTL attribute "expires_at".
type HistoryStore struct {
	client DynamoDBAPI
	table  string
}

func NewHistoryStore(client DynamoDBAPI, table string) *HistoryStore {
	return &HistoryStore{client: client, table: table}
}

func (s *HistoryStore) Save(ctx context.Context, summary models.Summary) error {
	item, err := attributevalue.MarshalMap(summary)
	if err != nil {
		return fmt.Errorf("[DynamoDB] failed to marshal summary: %w", err)
	}
	expiresAt := summary.CreatedAt.Add(HISTORY_RETENTION).Unix()
	item["expires_at"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(expiresAt, 10)}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] failed to store summary: %w", err)
	}

	slog.Info("[DynamoDB] Stored analysis summary",
		slog.String("table", s.table),
		slog.String("analysis_id", summary.ID))
	return nil
}

// Recent returns up to limit summaries, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]models.Summary, error) {
	var summaries []models.Summary
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] scan for summaries failed: %w", err)
		}
		var page []models.Summary
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal summary page",
				slog.String("error", err.Error()))
			return nil, err
		}
		summaries = append(summaries, page...)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}

	slog.Debug("[DynamoDB] Retrieved summaries", slog.Int("count", len(summaries)))
	return summaries, nil
}
