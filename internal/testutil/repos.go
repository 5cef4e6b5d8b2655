package testutil

import (
	"context"
	"time"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/repository"
)

// Adapter accessors. Each returns a view of the shared Store satisfying one
// repository interface.

func (s *Store) ItemRepo() repository.ItemRepository             { return itemRepo{s} }
func (s *Store) DefinitionRepo() repository.DefinitionRepository { return definitionRepo{s} }
func (s *Store) OccurrenceRepo() repository.OccurrenceRepository { return occurrenceRepo{s} }
func (s *Store) CompletionRepo() repository.CompletionRepository { return completionRepo{s} }
func (s *Store) UserRepo() repository.UserRepository             { return userRepo{s} }
func (s *Store) UnitOfWork() repository.UnitOfWork               { return s }

type itemRepo struct{ s *Store }

func (r itemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return r.s.GetItem(ctx, id)
}
func (r itemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]domain.Item, error) {
	return r.s.ListItems(ctx, filter)
}
func (r itemRepo) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	return r.s.CreateItem(ctx, item)
}
func (r itemRepo) Update(ctx context.Context, item *domain.Item) error {
	return r.s.UpdateItem(ctx, item)
}
func (r itemRepo) Delete(ctx context.Context, id string) error {
	return r.s.DeleteItem(ctx, id)
}

type definitionRepo struct{ s *Store }

func (r definitionRepo) GetByID(ctx context.Context, id string) (*domain.Definition, error) {
	return r.s.GetDefinition(ctx, id)
}
func (r definitionRepo) List(ctx context.Context, filter repository.DefinitionFilter) ([]domain.Definition, error) {
	return r.s.ListDefinitions(ctx, filter)
}
func (r definitionRepo) Create(ctx context.Context, def *domain.Definition) (*domain.Definition, error) {
	return r.s.CreateDefinition(ctx, def)
}
func (r definitionRepo) Delete(ctx context.Context, id string) error {
	return r.s.DeleteDefinition(ctx, id)
}
func (r definitionRepo) DeleteByItem(ctx context.Context, itemID string) error {
	return r.s.DeleteDefinitionsByItem(ctx, itemID)
}

type occurrenceRepo struct{ s *Store }

func (r occurrenceRepo) GetByID(ctx context.Context, id string) (*domain.Occurrence, error) {
	return r.s.GetOccurrence(ctx, id)
}
func (r occurrenceRepo) List(ctx context.Context, filter repository.OccurrenceFilter) ([]domain.Occurrence, error) {
	return r.s.ListOccurrences(ctx, filter)
}
func (r occurrenceRepo) CreateBatch(ctx context.Context, occurrences []domain.Occurrence) error {
	return r.s.CreateOccurrences(ctx, occurrences)
}
func (r occurrenceRepo) Update(ctx context.Context, occurrence *domain.Occurrence) error {
	return r.s.UpdateOccurrence(ctx, occurrence)
}
func (r occurrenceRepo) Delete(ctx context.Context, id string) error {
	return r.s.DeleteOccurrence(ctx, id)
}
func (r occurrenceRepo) DeleteByDefinition(ctx context.Context, definitionID string) error {
	return r.s.DeleteOccurrencesByDefinition(ctx, definitionID)
}
func (r occurrenceRepo) DeleteByItem(ctx context.Context, itemID string) error {
	return r.s.DeleteOccurrencesByItem(ctx, itemID)
}
func (r occurrenceRepo) MaxDueDate(ctx context.Context, definitionID string) (*time.Time, error) {
	return r.s.OccurrenceMaxDueDate(ctx, definitionID)
}

type completionRepo struct{ s *Store }

func (r completionRepo) Append(ctx context.Context, record *domain.CompletionRecord) error {
	return r.s.AppendRecord(ctx, record)
}
func (r completionRepo) List(ctx context.Context) ([]domain.CompletionRecord, error) {
	return r.s.ListRecords(ctx)
}
func (r completionRepo) ListByOccurrence(ctx context.Context, occurrenceID string) ([]domain.CompletionRecord, error) {
	return r.s.ListRecordsByOccurrence(ctx, occurrenceID)
}

type userRepo struct{ s *Store }

func (r userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.s.GetUser(ctx, id)
}
func (r userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.s.GetUserByUsername(ctx, username)
}
func (r userRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.s.CreateUser(ctx, user)
}
func (r userRepo) Update(ctx context.Context, user *domain.User) error {
	return r.s.UpdateUser(ctx, user)
}
