package store

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/todovault/todovault/internal/logging"
	"github.com/todovault/todovault/internal/models"
)

type updateCall struct {
	filter interface{}
	update interface{}
}

// fakeCollection implements Collection with canned results, recording the
// filters and options each operation receives.
type fakeCollection struct {
	mu sync.Mutex

	insertedDocs []interface{}
	insertResult *mongo.InsertOneResult
	insertErr    error

	findOneDocs    []interface{} // queue; nil entry means not-found
	findOneFilters []interface{}

	findDocs   []interface{}
	findErr    error
	findFilter interface{}
	findOpts   []*options.FindOptions

	countFn      func(filter interface{}) (int64, error)
	countFilters []interface{}

	updateResult *mongo.UpdateResult
	updateErr    error
	updateCalls  []updateCall

	deleteCounts  []int64 // queue of DeletedCount values
	deleteErr     error
	deleteFilters []interface{}
}

func (f *fakeCollection) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertedDocs = append(f.insertedDocs, document)
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if f.insertResult != nil {
		return f.insertResult, nil
	}
	return &mongo.InsertOneResult{InsertedID: primitive.NewObjectID()}, nil
}

func (f *fakeCollection) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findOneFilters = append(f.findOneFilters, filter)
	if len(f.findOneDocs) == 0 {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	doc := f.findOneDocs[0]
	f.findOneDocs = f.findOneDocs[1:]
	if doc == nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(doc, nil, nil)
}

func (f *fakeCollection) Find(_ context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findFilter = filter
	f.findOpts = opts
	if f.findErr != nil {
		return nil, f.findErr
	}
	return mongo.NewCursorFromDocuments(f.findDocs, nil, nil)
}

func (f *fakeCollection) CountDocuments(_ context.Context, filter interface{}, _ ...*options.CountOptions) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countFilters = append(f.countFilters, filter)
	if f.countFn != nil {
		return f.countFn(filter)
	}
	return 0, nil
}

func (f *fakeCollection) UpdateOne(_ context.Context, filter interface{}, update interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, updateCall{filter: filter, update: update})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateResult != nil {
		return f.updateResult, nil
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeCollection) DeleteOne(_ context.Context, filter interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteFilters = append(f.deleteFilters, filter)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	var count int64
	if len(f.deleteCounts) > 0 {
		count = f.deleteCounts[0]
		f.deleteCounts = f.deleteCounts[1:]
	}
	return &mongo.DeleteResult{DeletedCount: count}, nil
}

func newTestStore(coll Collection) *Store {
	return New(coll, logging.NewLogger("error"))
}

func sampleTodo(oid primitive.ObjectID) models.Todo {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return models.Todo{
		ID:        oid,
		Title:     "Buy milk",
		Completed: false,
		Priority:  models.PriorityHigh,
		Tags:      []string{"groceries"},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	oid := primitive.NewObjectID()
	coll := &fakeCollection{insertResult: &mongo.InsertOneResult{InsertedID: oid}}
	s := newTestStore(coll)

	todo, err := s.Create(context.Background(), models.CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if todo.ID != oid {
		t.Errorf("ID = %v, want %v", todo.ID, oid)
	}
	if todo.ID.IsZero() {
		t.Error("ID should never be empty")
	}
	if todo.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want default medium", todo.Priority)
	}
	if todo.Completed {
		t.Error("Completed should default to false")
	}
	if todo.Tags == nil {
		t.Error("Tags should default to an empty slice, not nil")
	}
	if !todo.CreatedAt.Equal(todo.UpdatedAt) {
		t.Errorf("CreatedAt (%v) should equal UpdatedAt (%v) at creation", todo.CreatedAt, todo.UpdatedAt)
	}
	if len(coll.insertedDocs) != 1 {
		t.Fatalf("InsertOne calls = %d, want 1", len(coll.insertedDocs))
	}
}

func TestCreatePropagatesStorageError(t *testing.T) {
	coll := &fakeCollection{insertErr: errors.New("connection reset")}
	s := newTestStore(coll)

	if _, err := s.Create(context.Background(), models.CreateTodoRequest{Title: "x"}); err == nil {
		t.Fatal("Create() should propagate storage errors")
	}
}

func TestGetByIDMalformedIDIsAbsent(t *testing.T) {
	coll := &fakeCollection{}
	s := newTestStore(coll)

	todo, found, err := s.GetByID(context.Background(), "not-a-hex-id")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found || todo != nil {
		t.Error("malformed id should fold into the absent result")
	}
	if len(coll.findOneFilters) != 0 {
		t.Error("malformed id should never reach the collection")
	}
}

func TestGetByIDFound(t *testing.T) {
	oid := primitive.NewObjectID()
	coll := &fakeCollection{findOneDocs: []interface{}{sampleTodo(oid)}}
	s := newTestStore(coll)

	todo, found, err := s.GetByID(context.Background(), oid.Hex())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !found {
		t.Fatal("expected the record to be found")
	}
	if todo.Title != "Buy milk" || todo.ID != oid {
		t.Errorf("unexpected record: %+v", todo)
	}

	wantFilter := bson.M{"_id": oid}
	if !reflect.DeepEqual(coll.findOneFilters[0], wantFilter) {
		t.Errorf("filter = %#v, want %#v", coll.findOneFilters[0], wantFilter)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	coll := &fakeCollection{}
	s := newTestStore(coll)

	todo, found, err := s.GetByID(context.Background(), primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found || todo != nil {
		t.Error("unknown id should be absent")
	}
}

func TestListAppliesSortSkipLimit(t *testing.T) {
	coll := &fakeCollection{findDocs: []interface{}{
		sampleTodo(primitive.NewObjectID()),
		sampleTodo(primitive.NewObjectID()),
	}}
	s := newTestStore(coll)

	todos, err := s.List(context.Background(), 20, 10, Filter{Priority: "high"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(todos) != 2 {
		t.Errorf("len(todos) = %d, want 2", len(todos))
	}

	if !reflect.DeepEqual(coll.findFilter, bson.M{"priority": "high"}) {
		t.Errorf("filter = %#v", coll.findFilter)
	}
	opts := coll.findOpts[0]
	if opts.Skip == nil || *opts.Skip != 20 {
		t.Errorf("Skip = %v, want 20", opts.Skip)
	}
	if opts.Limit == nil || *opts.Limit != 10 {
		t.Errorf("Limit = %v, want 10", opts.Limit)
	}
	wantSort := bson.D{{Key: "created_at", Value: -1}}
	if !reflect.DeepEqual(opts.Sort, wantSort) {
		t.Errorf("Sort = %#v, want %#v", opts.Sort, wantSort)
	}
}

func TestListEmptyResultIsNotNil(t *testing.T) {
	coll := &fakeCollection{}
	s := newTestStore(coll)

	todos, err := s.List(context.Background(), 10, 10, Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if todos == nil {
		t.Error("List() should return an empty slice, not nil")
	}
	if len(todos) != 0 {
		t.Errorf("len(todos) = %d, want 0", len(todos))
	}
}

func TestUpdateEmptyPatchIsNoOp(t *testing.T) {
	oid := primitive.NewObjectID()
	coll := &fakeCollection{findOneDocs: []interface{}{sampleTodo(oid)}}
	s := newTestStore(coll)

	todo, found, err := s.Update(context.Background(), oid.Hex(), models.UpdateTodoRequest{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !found {
		t.Fatal("expected the record to be found")
	}
	if len(coll.updateCalls) != 0 {
		t.Error("an empty patch must not write to storage")
	}
	want := sampleTodo(oid)
	if !todo.UpdatedAt.Equal(want.UpdatedAt) {
		t.Error("an empty patch must not refresh updated_at")
	}
}

func TestUpdateUnchangedValuesSkipWrite(t *testing.T) {
	oid := primitive.NewObjectID()
	coll := &fakeCollection{findOneDocs: []interface{}{sampleTodo(oid)}}
	s := newTestStore(coll)

	title := "Buy milk" // identical to the stored value
	todo, found, err := s.Update(context.Background(), oid.Hex(), models.UpdateTodoRequest{Title: &title})
	if err != nil || !found {
		t.Fatalf("Update() = (%v, %v), want found", err, found)
	}
	if len(coll.updateCalls) != 0 {
		t.Error("a patch that changes nothing must not refresh updated_at")
	}
	if todo.Title != "Buy milk" {
		t.Errorf("Title = %q", todo.Title)
	}
}

func TestUpdateChangedField(t *testing.T) {
	oid := primitive.NewObjectID()
	updated := sampleTodo(oid)
	updated.Title = "Buy oat milk"
	coll := &fakeCollection{findOneDocs: []interface{}{sampleTodo(oid), updated}}
	s := newTestStore(coll)

	title := "Buy oat milk"
	todo, found, err := s.Update(context.Background(), oid.Hex(), models.UpdateTodoRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !found {
		t.Fatal("expected the record to be found")
	}
	if todo.Title != "Buy oat milk" {
		t.Errorf("Title = %q, want updated value", todo.Title)
	}

	if len(coll.updateCalls) != 1 {
		t.Fatalf("UpdateOne calls = %d, want 1", len(coll.updateCalls))
	}
	set := coll.updateCalls[0].update.(bson.M)["$set"].(bson.M)
	if set["title"] != "Buy oat milk" {
		t.Errorf("$set title = %v", set["title"])
	}
	if _, ok := set["updated_at"]; !ok {
		t.Error("$set must refresh updated_at when a field changed")
	}
	if _, ok := set["completed"]; ok {
		t.Error("absent fields must stay untouched")
	}
}

func TestUpdateMalformedIDIsAbsent(t *testing.T) {
	coll := &fakeCollection{}
	s := newTestStore(coll)

	title := "x"
	_, found, err := s.Update(context.Background(), "zzz", models.UpdateTodoRequest{Title: &title})
	if err != nil || found {
		t.Errorf("Update() = (found=%v, err=%v), want absent with nil error", found, err)
	}
}

func TestDeleteIdempotence(t *testing.T) {
	oid := primitive.NewObjectID()
	coll := &fakeCollection{deleteCounts: []int64{1, 0}}
	s := newTestStore(coll)

	removed, err := s.Delete(context.Background(), oid.Hex())
	if err != nil || !removed {
		t.Fatalf("first Delete() = (%v, %v), want (true, nil)", removed, err)
	}
	removed, err = s.Delete(context.Background(), oid.Hex())
	if err != nil || removed {
		t.Fatalf("second Delete() = (%v, %v), want (false, nil)", removed, err)
	}
}

func TestDeleteMalformedID(t *testing.T) {
	coll := &fakeCollection{}
	s := newTestStore(coll)

	removed, err := s.Delete(context.Background(), "not-an-id")
	if err != nil || removed {
		t.Errorf("Delete() = (%v, %v), want (false, nil)", removed, err)
	}
	if len(coll.deleteFilters) != 0 {
		t.Error("malformed id should never reach the collection")
	}
}

func TestToggleFlipsCompleted(t *testing.T) {
	oid := primitive.NewObjectID()
	toggled := sampleTodo(oid)
	toggled.Completed = true
	toggled.UpdatedAt = toggled.UpdatedAt.Add(time.Minute)
	coll := &fakeCollection{findOneDocs: []interface{}{sampleTodo(oid), toggled}}
	s := newTestStore(coll)

	todo, found, err := s.Toggle(context.Background(), oid.Hex())
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !found {
		t.Fatal("expected the record to be found")
	}
	if !todo.Completed {
		t.Error("Toggle() should flip completed to true")
	}
	if !todo.UpdatedAt.After(todo.CreatedAt) {
		t.Error("updated_at should move forward on toggle")
	}

	set := coll.updateCalls[0].update.(bson.M)["$set"].(bson.M)
	if set["completed"] != true {
		t.Errorf("$set completed = %v, want true", set["completed"])
	}
	if _, ok := set["updated_at"]; !ok {
		t.Error("$set must refresh updated_at")
	}
}

func TestToggleNotFound(t *testing.T) {
	coll := &fakeCollection{}
	s := newTestStore(coll)

	_, found, err := s.Toggle(context.Background(), primitive.NewObjectID().Hex())
	if err != nil || found {
		t.Errorf("Toggle() = (found=%v, err=%v), want absent", found, err)
	}
}

func TestListCompletedSortsByUpdatedAt(t *testing.T) {
	coll := &fakeCollection{}
	s := newTestStore(coll)

	if _, err := s.ListCompleted(context.Background()); err != nil {
		t.Fatalf("ListCompleted() error = %v", err)
	}
	if !reflect.DeepEqual(coll.findFilter, bson.M{"completed": true}) {
		t.Errorf("filter = %#v", coll.findFilter)
	}
	wantSort := bson.D{{Key: "updated_at", Value: -1}}
	if !reflect.DeepEqual(coll.findOpts[0].Sort, wantSort) {
		t.Errorf("Sort = %#v, want %#v", coll.findOpts[0].Sort, wantSort)
	}
}

func TestListByTag(t *testing.T) {
	coll := &fakeCollection{findDocs: []interface{}{sampleTodo(primitive.NewObjectID())}}
	s := newTestStore(coll)

	todos, err := s.ListByTag(context.Background(), "groceries")
	if err != nil {
		t.Fatalf("ListByTag() error = %v", err)
	}
	if len(todos) != 1 {
		t.Errorf("len(todos) = %d, want 1", len(todos))
	}
	if !reflect.DeepEqual(coll.findFilter, bson.M{"tags": "groceries"}) {
		t.Errorf("filter = %#v", coll.findFilter)
	}
}

func TestStats(t *testing.T) {
	coll := &fakeCollection{countFn: func(filter interface{}) (int64, error) {
		f := filter.(bson.M)
		switch {
		case len(f) == 0:
			return 3, nil
		case f["completed"] == true:
			return 1, nil
		case f["completed"] == false:
			return 2, nil
		case f["priority"] == "high":
			return 1, nil
		case f["priority"] == "medium":
			return 1, nil
		case f["priority"] == "low":
			return 1, nil
		}
		return 0, nil
	}}
	s := newTestStore(coll)

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalTodos != 3 || stats.CompletedTodos != 1 || stats.PendingTodos != 2 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.PriorityBreakdown.High != 1 || stats.PriorityBreakdown.Medium != 1 || stats.PriorityBreakdown.Low != 1 {
		t.Errorf("priority breakdown = %+v", stats.PriorityBreakdown)
	}
	if stats.CompletionRate != 33.33 {
		t.Errorf("CompletionRate = %v, want 33.33", stats.CompletionRate)
	}
}

func TestStatsEmptyCollection(t *testing.T) {
	coll := &fakeCollection{}
	s := newTestStore(coll)

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.CompletionRate != 0 {
		t.Errorf("CompletionRate = %v, want 0 for an empty collection", stats.CompletionRate)
	}
}

func TestStatsPropagatesCountError(t *testing.T) {
	coll := &fakeCollection{countFn: func(interface{}) (int64, error) {
		return 0, errors.New("server selection timeout")
	}}
	s := newTestStore(coll)

	if _, err := s.Stats(context.Background()); err == nil {
		t.Fatal("Stats() should propagate storage errors")
	}
}
