// Package store implements the data-access layer over a single MongoDB
// collection of todo documents.
//
// Identifier-keyed operations report presence with an explicit found flag
// instead of an error: a syntactically malformed id folds into the same
// absent result as a well-formed id that matches nothing. Storage failures
// are never masked; they come back as a non-nil error.
package store

import (
	"context"
	"math"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/todovault/todovault/internal/errors"
	"github.com/todovault/todovault/internal/logging"
	"github.com/todovault/todovault/internal/models"
)

// CollectionName is the logical collection all operations run against.
const CollectionName = "todos"

// Collection is the slice of the MongoDB collection API the store depends on.
// *mongo.Collection satisfies it; tests substitute a fake.
type Collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// Store exposes the todo CRUD and query operations. It receives an
// already-open collection handle and never manages connection lifecycle.
type Store struct {
	coll   Collection
	logger *logging.Logger
	now    func() time.Time
}

// New creates a store on top of the given collection handle.
func New(coll Collection, logger *logging.Logger) *Store {
	return &Store{
		coll:   coll,
		logger: logger.WithComponent("store"),
		now:    time.Now,
	}
}

// NewForDatabase creates a store bound to the todos collection of db.
func NewForDatabase(db *mongo.Database, logger *logging.Logger) *Store {
	return New(db.Collection(CollectionName), logger)
}

// Create stores a new todo with defaults applied and both timestamps set to
// the current time, and returns the stored record with its assigned id.
func (s *Store) Create(ctx context.Context, req models.CreateTodoRequest) (*models.Todo, error) {
	now := s.now().UTC().Truncate(time.Millisecond)

	todo := models.Todo{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if todo.Priority == "" {
		todo.Priority = models.PriorityMedium
	}
	if todo.Tags == nil {
		todo.Tags = []string{}
	}

	res, err := s.coll.InsertOne(ctx, todo)
	if err != nil {
		s.logger.Error("insert failed", "error", err)
		return nil, errors.Wrap(err, "failed to insert todo")
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected inserted id type %T", res.InsertedID)
	}
	todo.ID = oid

	return &todo, nil
}

// GetByID returns the matching record. Malformed and unknown ids both come
// back as (nil, false, nil).
func (s *Store) GetByID(ctx context.Context, id string) (*models.Todo, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}
	return s.findOne(ctx, oid)
}

func (s *Store) findOne(ctx context.Context, oid primitive.ObjectID) (*models.Todo, bool, error) {
	var todo models.Todo
	err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&todo)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("find failed", "id", oid.Hex(), "error", err)
		return nil, false, errors.Wrap(err, "failed to find todo")
	}
	return &todo, true, nil
}

// List returns records matching the filter, sorted by created_at descending,
// with offset records skipped and at most limit returned.
func (s *Store) List(ctx context.Context, offset, limit int64, f Filter) ([]models.Todo, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	return s.findAll(ctx, f.bson(), opts)
}

// Count returns how many records match the filter, ignoring pagination.
func (s *Store) Count(ctx context.Context, f Filter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, f.bson())
	if err != nil {
		s.logger.Error("count failed", "error", err)
		return 0, errors.Wrap(err, "failed to count todos")
	}
	return n, nil
}

// Update applies a field-level patch. Fields absent from the request are left
// unchanged, and updated_at refreshes only when at least one field actually
// changes value; a patch that changes nothing returns the current record
// untouched.
func (s *Store) Update(ctx context.Context, id string, req models.UpdateTodoRequest) (*models.Todo, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}

	current, found, err := s.findOne(ctx, oid)
	if err != nil || !found {
		return nil, false, err
	}

	set := changedFields(current, req)
	if len(set) == 0 {
		return current, true, nil
	}
	set["updated_at"] = s.now().UTC().Truncate(time.Millisecond)

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		s.logger.Error("update failed", "id", id, "error", err)
		return nil, false, errors.Wrap(err, "failed to update todo")
	}
	if res.MatchedCount == 0 {
		// Lost a race with a concurrent delete.
		return nil, false, nil
	}

	return s.findOne(ctx, oid)
}

// changedFields builds the $set document from the patch fields whose value
// differs from the stored record.
func changedFields(current *models.Todo, req models.UpdateTodoRequest) bson.M {
	set := bson.M{}
	if req.Title != nil && *req.Title != current.Title {
		set["title"] = *req.Title
	}
	if req.Description != nil && *req.Description != current.Description {
		set["description"] = *req.Description
	}
	if req.Completed != nil && *req.Completed != current.Completed {
		set["completed"] = *req.Completed
	}
	if req.Priority != nil && *req.Priority != current.Priority {
		set["priority"] = *req.Priority
	}
	if req.DueDate != nil && !sameTime(req.DueDate, current.DueDate) {
		set["due_date"] = *req.DueDate
	}
	if req.Tags != nil && !slices.Equal(req.Tags, current.Tags) {
		set["tags"] = req.Tags
	}
	return set
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Delete removes the record and reports whether anything was removed.
// Malformed and unknown ids both report false.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		s.logger.Error("delete failed", "id", id, "error", err)
		return false, errors.Wrap(err, "failed to delete todo")
	}
	return res.DeletedCount > 0, nil
}

// Toggle flips the completed flag and refreshes updated_at.
func (s *Store) Toggle(ctx context.Context, id string) (*models.Todo, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, nil
	}

	current, found, err := s.findOne(ctx, oid)
	if err != nil || !found {
		return nil, false, err
	}

	set := bson.M{
		"completed":  !current.Completed,
		"updated_at": s.now().UTC().Truncate(time.Millisecond),
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		s.logger.Error("toggle failed", "id", id, "error", err)
		return nil, false, errors.Wrap(err, "failed to toggle todo")
	}
	if res.MatchedCount == 0 {
		return nil, false, nil
	}

	return s.findOne(ctx, oid)
}

// ListByTag returns every record carrying the tag, newest first.
func (s *Store) ListByTag(ctx context.Context, tag string) ([]models.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.findAll(ctx, bson.M{"tags": tag}, opts)
}

// ListCompleted returns every completed record, most recently updated first.
func (s *Store) ListCompleted(ctx context.Context) ([]models.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	return s.findAll(ctx, bson.M{"completed": true}, opts)
}

// ListPending returns every pending record, newest first.
func (s *Store) ListPending(ctx context.Context) ([]models.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.findAll(ctx, bson.M{"completed": false}, opts)
}

func (s *Store) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Todo, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		s.logger.Error("find failed", "error", err)
		return nil, errors.Wrap(err, "failed to query todos")
	}
	defer cur.Close(ctx)

	todos := []models.Todo{}
	if err := cur.All(ctx, &todos); err != nil {
		s.logger.Error("cursor decode failed", "error", err)
		return nil, errors.Wrap(err, "failed to decode todos")
	}
	return todos, nil
}

// Stats aggregates collection-wide counters. The six counts are independent
// single-document-filter queries, so they run concurrently.
func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	var (
		stats     models.Stats
		completed = true
		pending   = false
	)

	g, ctx := errgroup.WithContext(ctx)
	count := func(dst *int64, f Filter) {
		g.Go(func() error {
			n, err := s.Count(ctx, f)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&stats.TotalTodos, Filter{})
	count(&stats.CompletedTodos, Filter{Completed: &completed})
	count(&stats.PendingTodos, Filter{Completed: &pending})
	count(&stats.PriorityBreakdown.High, Filter{Priority: string(models.PriorityHigh)})
	count(&stats.PriorityBreakdown.Medium, Filter{Priority: string(models.PriorityMedium)})
	count(&stats.PriorityBreakdown.Low, Filter{Priority: string(models.PriorityLow)})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if stats.TotalTodos > 0 {
		rate := float64(stats.CompletedTodos) / float64(stats.TotalTodos) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}

	return &stats, nil
}
