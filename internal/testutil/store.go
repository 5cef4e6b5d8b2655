// Package testutil provides deterministic in-memory fakes for use case tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/repository"
)

// Store is an in-memory implementation of every repository interface plus
// the unit of work. Begin snapshots all maps; Rollback restores them, so
// atomicity behaves like the real thing for single-goroutine tests.
type Store struct {
	mu sync.Mutex

	Users       map[string]domain.User
	Items       map[string]domain.Item
	Definitions map[string]domain.Definition
	Occurrences map[string]domain.Occurrence
	Records     []domain.CompletionRecord

	// FailWrites makes every write return a store failure; tests use it to
	// verify that engine errors surface instead of being swallowed.
	FailWrites bool

	snapshot *storeSnapshot
}

type storeSnapshot struct {
	users       map[string]domain.User
	items       map[string]domain.Item
	definitions map[string]domain.Definition
	occurrences map[string]domain.Occurrence
	records     []domain.CompletionRecord
}

func NewStore() *Store {
	return &Store{
		Users:       make(map[string]domain.User),
		Items:       make(map[string]domain.Item),
		Definitions: make(map[string]domain.Definition),
		Occurrences: make(map[string]domain.Occurrence),
	}
}

func (s *Store) failure() error {
	if s.FailWrites {
		return domain.WrapStore("fake store unavailable", nil)
	}
	return nil
}

// --- UnitOfWork ---

func (s *Store) Begin(ctx context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &storeSnapshot{
		users:       cloneMap(s.Users),
		items:       cloneMap(s.Items),
		definitions: cloneMap(s.Definitions),
		occurrences: cloneMap(s.Occurrences),
		records:     append([]domain.CompletionRecord(nil), s.Records...),
	}
	return ctx, nil
}

func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	return nil
}

func (s *Store) Rollback(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil {
		s.Users = s.snapshot.users
		s.Items = s.snapshot.items
		s.Definitions = s.snapshot.definitions
		s.Occurrences = s.snapshot.occurrences
		s.Records = s.snapshot.records
		s.snapshot = nil
	}
	return nil
}

// --- ItemRepository ---

func (s *Store) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.Items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (s *Store) ListItems(ctx context.Context, filter repository.ItemFilter) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Item
	for _, item := range s.Items {
		if filter.UserID != "" && item.UserID != filter.UserID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := s.failure(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	s.Items[item.ID] = *item
	return item, nil
}

func (s *Store) UpdateItem(ctx context.Context, item *domain.Item) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	s.Items[item.ID] = *item
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(s.Items, id)
	return nil
}

// --- DefinitionRepository ---

func (s *Store) GetDefinition(ctx context.Context, id string) (*domain.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, ok := s.Definitions[id]
	if !ok {
		return nil, domain.ErrDefinitionNotFound
	}
	return &def, nil
}

func (s *Store) ListDefinitions(ctx context.Context, filter repository.DefinitionFilter) ([]domain.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Definition
	for _, def := range s.Definitions {
		if filter.ItemID != "" && def.ItemID != filter.ItemID {
			continue
		}
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateDefinition(ctx context.Context, def *domain.Definition) (*domain.Definition, error) {
	if err := s.failure(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	s.Definitions[def.ID] = *def
	return def, nil
}

func (s *Store) DeleteDefinition(ctx context.Context, id string) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Definitions[id]; !ok {
		return domain.ErrDefinitionNotFound
	}
	delete(s.Definitions, id)
	return nil
}

func (s *Store) DeleteDefinitionsByItem(ctx context.Context, itemID string) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, def := range s.Definitions {
		if def.ItemID == itemID {
			delete(s.Definitions, id)
		}
	}
	return nil
}

// --- OccurrenceRepository ---

func (s *Store) GetOccurrence(ctx context.Context, id string) (*domain.Occurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	occ, ok := s.Occurrences[id]
	if !ok {
		return nil, domain.ErrOccurrenceNotFound
	}
	return &occ, nil
}

func (s *Store) ListOccurrences(ctx context.Context, filter repository.OccurrenceFilter) ([]domain.Occurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Occurrence
	for _, occ := range s.Occurrences {
		if !matchOccurrence(occ, filter) {
			continue
		}
		out = append(out, occ)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) CreateOccurrences(ctx context.Context, occurrences []domain.Occurrence) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range occurrences {
		if occurrences[i].ID == "" {
			occurrences[i].ID = uuid.NewString()
		}
		s.Occurrences[occurrences[i].ID] = occurrences[i]
	}
	return nil
}

func (s *Store) UpdateOccurrence(ctx context.Context, occurrence *domain.Occurrence) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Occurrences[occurrence.ID]; !ok {
		return domain.ErrOccurrenceNotFound
	}
	s.Occurrences[occurrence.ID] = *occurrence
	return nil
}

func (s *Store) DeleteOccurrence(ctx context.Context, id string) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Occurrences[id]; !ok {
		return domain.ErrOccurrenceNotFound
	}
	delete(s.Occurrences, id)
	return nil
}

func (s *Store) DeleteOccurrencesByDefinition(ctx context.Context, definitionID string) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, occ := range s.Occurrences {
		if occ.DefinitionID == definitionID {
			delete(s.Occurrences, id)
		}
	}
	return nil
}

func (s *Store) DeleteOccurrencesByItem(ctx context.Context, itemID string) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, occ := range s.Occurrences {
		if occ.ItemID == itemID {
			delete(s.Occurrences, id)
		}
	}
	return nil
}

func (s *Store) OccurrenceMaxDueDate(ctx context.Context, definitionID string) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var max *time.Time
	for _, occ := range s.Occurrences {
		if occ.DefinitionID != definitionID {
			continue
		}
		due := occ.DueDate
		if max == nil || due.After(*max) {
			max = &due
		}
	}
	return max, nil
}

// --- CompletionRepository ---

func (s *Store) AppendRecord(ctx context.Context, record *domain.CompletionRecord) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	s.Records = append(s.Records, *record)
	return nil
}

func (s *Store) ListRecords(ctx context.Context) ([]domain.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CompletionRecord(nil), s.Records...), nil
}

func (s *Store) ListRecordsByOccurrence(ctx context.Context, occurrenceID string) ([]domain.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CompletionRecord
	for _, rec := range s.Records {
		if rec.OccurrenceID == occurrenceID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// --- UserRepository ---

func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.Users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.failure(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.Users[user.ID] = *user
	return user, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	if err := s.failure(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	s.Users[user.ID] = *user
	return nil
}

func matchOccurrence(occ domain.Occurrence, filter repository.OccurrenceFilter) bool {
	if filter.From != nil && occ.DueDate.Before(domain.Midnight(*filter.From)) {
		return false
	}
	if filter.To != nil && occ.DueDate.After(domain.Midnight(*filter.To)) {
		return false
	}
	if filter.DueOn != nil && !domain.SameDay(occ.DueDate, *filter.DueOn) {
		return false
	}
	if filter.ItemID != "" && occ.ItemID != filter.ItemID {
		return false
	}
	if filter.DefinitionID != "" && occ.DefinitionID != filter.DefinitionID {
		return false
	}
	if filter.TaskCategory != "" && occ.TaskCategory != filter.TaskCategory {
		return false
	}
	if filter.Completed != nil && occ.Completed != *filter.Completed {
		return false
	}
	return true
}

func cloneMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
