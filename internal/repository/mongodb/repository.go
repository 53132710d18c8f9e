package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

const (
	categoriesCollection = "uniform_categories"
	itemsCollection      = "uniform_items"
	issuancesCollection  = "uniform_issuances"
)

// Store implements repository.Store on MongoDB. AdjustQuantity relies on a
// conditional FindOneAndUpdate so concurrent decrements cannot drive a
// quantity negative.
type Store struct {
	client *mongo.Client
	dbName string
	now    func() time.Time
}

var _ repository.Store = (*Store)(nil)

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName, now: time.Now}, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

func (s *Store) AddCategory(ctx context.Context, category models.Category) (models.Category, error) {
	category.ID = primitive.NewObjectID().Hex()
	category.CreatedAt = s.now().UTC()
	if _, err := s.collection(categoriesCollection).InsertOne(ctx, category); err != nil {
		return models.Category{}, fmt.Errorf("insert category: %w: %w", models.ErrPersistence, err)
	}
	return category, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.collection(categoriesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.collection(categoriesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("category %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *Store) AddItem(ctx context.Context, item models.StockItem) (models.StockItem, error) {
	item.ID = primitive.NewObjectID().Hex()
	item.UpdatedAt = s.now().UTC()
	if _, err := s.collection(itemsCollection).InsertOne(ctx, item); err != nil {
		return models.StockItem{}, fmt.Errorf("insert item: %w: %w", models.ErrPersistence, err)
	}
	return item, nil
}

func (s *Store) GetItem(ctx context.Context, id string) (models.StockItem, error) {
	var item models.StockItem
	err := s.collection(itemsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.StockItem{}, fmt.Errorf("item %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.StockItem{}, fmt.Errorf("find item: %w", err)
	}
	return item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]models.StockItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.collection(itemsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	var items []models.StockItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

func (s *Store) UpdateItem(ctx context.Context, id string, update repository.ItemUpdate) (models.StockItem, error) {
	set := bson.M{"updated_at": s.now().UTC()}
	unset := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Category != nil {
		if *update.Category == "" {
			unset["category"] = ""
		} else {
			set["category"] = *update.Category
		}
	}
	if update.Total != nil {
		set["total_quantity"] = *update.Total
	}
	if update.Remaining != nil {
		set["remaining_quantity"] = *update.Remaining
	}

	changes := bson.M{"$set": set}
	if len(unset) > 0 {
		changes["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.StockItem
	err := s.collection(itemsCollection).FindOneAndUpdate(ctx, bson.M{"_id": id}, changes, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.StockItem{}, fmt.Errorf("item %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.StockItem{}, fmt.Errorf("update item: %w: %w", models.ErrPersistence, err)
	}
	return item, nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	res, err := s.collection(itemsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("item %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *Store) AdjustQuantity(ctx context.Context, id string, delta int, adjustTotal bool) (models.StockItem, error) {
	filter := bson.M{"_id": id}
	if delta < 0 {
		// The update only matches while enough stock remains; losing a race
		// surfaces as insufficient stock below instead of a negative count.
		filter["remaining_quantity"] = bson.M{"$gte": -delta}
	}

	inc := bson.M{"remaining_quantity": delta}
	if adjustTotal {
		inc["total_quantity"] = delta
	}
	changes := bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": s.now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.StockItem
	err := s.collection(itemsCollection).FindOneAndUpdate(ctx, filter, changes, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		count, countErr := s.collection(itemsCollection).CountDocuments(ctx, bson.M{"_id": id})
		if countErr == nil && count > 0 {
			return models.StockItem{}, fmt.Errorf("item %s: %w", id, models.ErrInsufficientStock)
		}
		return models.StockItem{}, fmt.Errorf("item %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.StockItem{}, fmt.Errorf("adjust quantity: %w: %w", models.ErrPersistence, err)
	}
	return item, nil
}

func (s *Store) AddIssuance(ctx context.Context, record models.IssuanceRecord) (models.IssuanceRecord, error) {
	record.ID = primitive.NewObjectID().Hex()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now().UTC()
	}
	if _, err := s.collection(issuancesCollection).InsertOne(ctx, record); err != nil {
		return models.IssuanceRecord{}, fmt.Errorf("insert issuance: %w: %w", models.ErrPersistence, err)
	}
	return record, nil
}

func (s *Store) GetIssuance(ctx context.Context, id string) (models.IssuanceRecord, error) {
	var record models.IssuanceRecord
	err := s.collection(issuancesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.IssuanceRecord{}, fmt.Errorf("issuance %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.IssuanceRecord{}, fmt.Errorf("find issuance: %w", err)
	}
	return record, nil
}

func (s *Store) ListIssuances(ctx context.Context, limit int) ([]models.IssuanceRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.collection(issuancesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find issuances: %w", err)
	}
	var records []models.IssuanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode issuances: %w", err)
	}
	return records, nil
}

func (s *Store) UpdateIssuance(ctx context.Context, id string, update repository.IssuanceUpdate) (models.IssuanceRecord, error) {
	set := bson.M{}
	if update.StudentName != nil {
		set["student_name"] = *update.StudentName
	}
	if update.Quantity != nil {
		set["quantity_taken"] = *update.Quantity
	}
	if update.IssueDate != nil {
		set["issue_date"] = *update.IssueDate
	}
	if len(set) == 0 {
		return s.GetIssuance(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var record models.IssuanceRecord
	err := s.collection(issuancesCollection).FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.IssuanceRecord{}, fmt.Errorf("issuance %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.IssuanceRecord{}, fmt.Errorf("update issuance: %w: %w", models.ErrPersistence, err)
	}
	return record, nil
}

func (s *Store) DeleteIssuance(ctx context.Context, id string) error {
	res, err := s.collection(issuancesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete issuance: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("issuance %s: %w", id, models.ErrNotFound)
	}
	return nil
}
