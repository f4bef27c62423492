package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskvault/todo-api/internal/core/domain"
)

const todosCollection = "todos"

type MongoTodoRepository struct {
	coll *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *MongoTodoRepository {
	return &MongoTodoRepository{coll: db.Collection(todosCollection)}
}

// ensureTodoIndexes creates the owner_id index that backs every ownership
// filter. Run by Connect.
func ensureTodoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(todosCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create todo indexes: %w", err)
	}
	return nil
}

type mongoTodo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Priority    int                `bson:"priority"`
	Complete    bool               `bson:"complete"`
	OwnerID     string             `bson:"owner_id"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoTodoRepository) Create(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	doc := mongoTodo{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt.Unix(),
		UpdatedAt:   t.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}

	created := *t
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByID retrieves a todo by id. When ownerID is non-empty, the query is
// additionally filtered by owner_id: an existing todo owned by someone else
// decodes to no documents and is reported as not found.
func (r *MongoTodoRepository) FindByID(ctx context.Context, todoID, ownerID string) (*domain.Todo, error) {
	filter, err := todoFilter(todoID, ownerID)
	if err != nil {
		return nil, err
	}

	var mt mongoTodo
	if err := r.coll.FindOne(ctx, filter).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *MongoTodoRepository) ListAll(ctx context.Context) ([]domain.Todo, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoTodoRepository) list(ctx context.Context, filter bson.M) ([]domain.Todo, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := make([]domain.Todo, 0)
	for cursor.Next(ctx) {
		var mt mongoTodo
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, *mt.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (r *MongoTodoRepository) Update(ctx context.Context, t *domain.Todo) error {
	filter, err := todoFilter(t.ID, t.OwnerID)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"complete":    t.Complete,
		"updated_at":  t.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *MongoTodoRepository) Delete(ctx context.Context, todoID, ownerID string) error {
	filter, err := todoFilter(todoID, ownerID)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// todoFilter builds the id filter, adding the owner_id clause when ownerID is
// non-empty. A malformed id cannot match anything, so it maps to not found.
func todoFilter(todoID, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(todoID)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}
	filter := bson.M{"_id": oid}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}
	return filter, nil
}

func (mt *mongoTodo) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          mt.ID.Hex(),
		Title:       mt.Title,
		Description: mt.Description,
		Priority:    mt.Priority,
		Complete:    mt.Complete,
		OwnerID:     mt.OwnerID,
		CreatedAt:   unixToTime(mt.CreatedAt),
		UpdatedAt:   unixToTime(mt.UpdatedAt),
	}
}
