// Package dynamo stores players in a DynamoDB table keyed by pseudo.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/mcoot/tournament/internal/model"
	"github.com/mcoot/tournament/internal/storage"
)

const (
	pseudoAttr = "pseudo"

	tableReadyTimeout = 30 * time.Second
)

// API is the subset of the DynamoDB client used by Storage
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Storage is a DynamoDB-backed implementation of the storage interface
type Storage struct {
	client API
	cfg    Config
}

// New builds a DynamoDB client from cfg and makes sure the table exists
func New(ctx context.Context, cfg Config) (*Storage, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	switch {
	case cfg.AccessKeyID != "":
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	case cfg.Endpoint != "":
		// DynamoDB Local accepts any key but the SDK still signs requests
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	s := NewWithClient(client, cfg)
	if err := s.EnsureTable(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithClient creates a DynamoDB storage with an existing client (for testing)
func NewWithClient(client API, cfg Config) *Storage {
	defaults := DefaultConfig()
	if cfg.Table == "" {
		cfg.Table = defaults.Table
	}
	if cfg.ReadCapacity == 0 {
		cfg.ReadCapacity = defaults.ReadCapacity
	}
	if cfg.WriteCapacity == 0 {
		cfg.WriteCapacity = defaults.WriteCapacity
	}
	return &Storage{client: client, cfg: cfg}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// EnsureTable creates the players table when it is missing and waits for it
func (s *Storage) EnsureTable(ctx context.Context) error {
	paginator := dynamodb.NewListTablesPaginator(s.client, &dynamodb.ListTablesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list tables: %w", err)
		}
		for _, name := range page.TableNames {
			if name == s.cfg.Table {
				return nil
			}
		}
	}

	_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.cfg.Table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(pseudoAttr), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(pseudoAttr), KeyType: types.KeyTypeHash},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(s.cfg.ReadCapacity),
			WriteCapacityUnits: aws.Int64(s.cfg.WriteCapacity),
		},
	})
	if err != nil && !isErrorCode(err, "ResourceInUseException") {
		return fmt.Errorf("create table %s: %w", s.cfg.Table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.cfg.Table)}, tableReadyTimeout); err != nil {
		return fmt.Errorf("wait for table %s: %w", s.cfg.Table, err)
	}
	return nil
}

func (s *Storage) key(pseudo string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		pseudoAttr: &types.AttributeValueMemberS{Value: pseudo},
	}
}

func (s *Storage) GetPlayer(ctx context.Context, pseudo string) (*model.StoredPlayer, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.cfg.Table),
		Key:            s.key(pseudo),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get item %q: %w", pseudo, err)
	}
	if len(out.Item) == 0 {
		return nil, model.ErrPlayerNotFound
	}
	return itemToPlayer(out.Item)
}

func (s *Storage) PlayerExists(ctx context.Context, pseudo string) (bool, error) {
	_, err := s.GetPlayer(ctx, pseudo)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SavePlayer expresses the write condition as a DynamoDB condition expression
func (s *Storage) SavePlayer(ctx context.Context, player *model.StoredPlayer, cond storage.Condition) error {
	av, err := playerToItem(player)
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.cfg.Table),
		Item:      av,
	}
	switch cond {
	case storage.IfAbsent:
		input.ConditionExpression = aws.String("attribute_not_exists(#pk)")
		input.ExpressionAttributeNames = map[string]string{"#pk": pseudoAttr}
	case storage.IfPresent:
		input.ConditionExpression = aws.String("attribute_exists(#pk)")
		input.ExpressionAttributeNames = map[string]string{"#pk": pseudoAttr}
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return model.ErrWriteConflict
		}
		return fmt.Errorf("put item %q: %w", player.Pseudo, err)
	}
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, pseudo string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.cfg.Table),
		Key:       s.key(pseudo),
	})
	if err != nil {
		return fmt.Errorf("delete item %q: %w", pseudo, err)
	}
	return nil
}

// ListPlayers scans the whole table, ordered by pseudo
func (s *Storage) ListPlayers(ctx context.Context) ([]*model.StoredPlayer, error) {
	players := []*model.StoredPlayer{}

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.cfg.Table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.cfg.Table, err)
		}
		for _, item := range page.Items {
			player, err := itemToPlayer(item)
			if err != nil {
				return nil, err
			}
			players = append(players, player)
		}
	}

	sort.Slice(players, func(i, j int) bool { return players[i].Pseudo < players[j].Pseudo })
	return players, nil
}

// item is the table row; points are kept in a string attribute
type item struct {
	Pseudo string  `dynamodbav:"pseudo"`
	Points string  `dynamodbav:"points"`
	Rank   *string `dynamodbav:"rank,omitempty"`
}

func playerToItem(p *model.StoredPlayer) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(item{
		Pseudo: p.Pseudo,
		Points: strconv.Itoa(p.Points),
		Rank:   p.Rank,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal player %q: %w", p.Pseudo, err)
	}
	return av, nil
}

func itemToPlayer(av map[string]types.AttributeValue) (*model.StoredPlayer, error) {
	var row item
	if err := attributevalue.UnmarshalMap(av, &row); err != nil {
		return nil, fmt.Errorf("unmarshal player: %w", err)
	}
	if row.Pseudo == "" {
		return nil, fmt.Errorf("item missing %s attribute", pseudoAttr)
	}

	points, err := strconv.Atoi(row.Points)
	if err != nil {
		return nil, fmt.Errorf("player %q: invalid points %q: %w", row.Pseudo, row.Points, err)
	}
	return &model.StoredPlayer{Pseudo: row.Pseudo, Points: points, Rank: row.Rank}, nil
}

func isErrorCode(err error, code string) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}
