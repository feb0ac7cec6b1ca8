package repository

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"taller_manager/internal/domain/entities"
	"taller_manager/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultSnapshotsTableName = "snapshots"

// snapshotItem is one whole collection stored as a single item. Collections
// here are small (one shop, hundreds of records) and every mutation rewrites
// the full list, so a JSON blob keyed by collection name is the natural
// shape: Load and Save stay a single consistent read / single write.
//
// Table requirements:
//   - PK: collection (string)
type snapshotItem struct {
	Collection string `dynamodbav:"collection"`
	Payload    string `dynamodbav:"payload"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

type snapshotStore struct {
	ddb       *dynamodb.Client
	tableName string
}

func newSnapshotStore(ddb *dynamodb.Client) snapshotStore {
	tableName := os.Getenv("SNAPSHOTS_TABLE")
	if tableName == "" {
		tableName = defaultSnapshotsTableName
	}
	return snapshotStore{ddb: ddb, tableName: tableName}
}

// load reads a collection payload into dest. A missing item leaves dest
// untouched and returns false; the repositories map that to an empty
// collection.
func (s snapshotStore) load(ctx context.Context, collection string, dest any) (bool, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"collection": &types.AttributeValueMemberS{Value: collection},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(out.Item) == 0 {
		return false, nil
	}

	var it snapshotItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return false, err
	}
	if it.Payload == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(it.Payload), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s snapshotStore) save(ctx context.Context, collection string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(snapshotItem{
		Collection: collection,
		Payload:    string(raw),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	return err
}

type ServiceDynamoRepository struct{ store snapshotStore }

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb *dynamodb.Client) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{store: newSnapshotStore(ddb)}
}

func (r *ServiceDynamoRepository) Load(ctx context.Context) ([]entities.Service, error) {
	services := []entities.Service{}
	if _, err := r.store.load(ctx, "services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceDynamoRepository) Save(ctx context.Context, services []entities.Service) error {
	return r.store.save(ctx, "services", services)
}

type CostDynamoRepository struct{ store snapshotStore }

var _ interfaces.ICostRepository = (*CostDynamoRepository)(nil)

func NewCostDynamoRepository(ddb *dynamodb.Client) *CostDynamoRepository {
	return &CostDynamoRepository{store: newSnapshotStore(ddb)}
}

func (r *CostDynamoRepository) Load(ctx context.Context) ([]entities.Cost, error) {
	costs := []entities.Cost{}
	if _, err := r.store.load(ctx, "costs", &costs); err != nil {
		return nil, err
	}
	return costs, nil
}

func (r *CostDynamoRepository) Save(ctx context.Context, costs []entities.Cost) error {
	return r.store.save(ctx, "costs", costs)
}

type QuoteDynamoRepository struct{ store snapshotStore }

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{store: newSnapshotStore(ddb)}
}

func (r *QuoteDynamoRepository) Load(ctx context.Context) ([]entities.Quote, error) {
	quotes := []entities.Quote{}
	if _, err := r.store.load(ctx, "quotes", &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *QuoteDynamoRepository) Save(ctx context.Context, quotes []entities.Quote) error {
	return r.store.save(ctx, "quotes", quotes)
}

type SettingsDynamoRepository struct{ store snapshotStore }

var _ interfaces.ISettingsRepository = (*SettingsDynamoRepository)(nil)

func NewSettingsDynamoRepository(ddb *dynamodb.Client) *SettingsDynamoRepository {
	return &SettingsDynamoRepository{store: newSnapshotStore(ddb)}
}

// Load falls back to the default settings when nothing was saved yet.
func (r *SettingsDynamoRepository) Load(ctx context.Context) (entities.AppSettings, error) {
	settings := entities.DefaultSettings()
	if _, err := r.store.load(ctx, "settings", &settings); err != nil {
		return entities.AppSettings{}, err
	}
	return settings, nil
}

func (r *SettingsDynamoRepository) Save(ctx context.Context, settings entities.AppSettings) error {
	return r.store.save(ctx, "settings", settings)
}
