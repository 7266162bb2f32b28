package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mbeaulieu/courses/internal/access"
	"github.com/mbeaulieu/courses/internal/aggregate"
	"github.com/mbeaulieu/courses/internal/auth"
	"github.com/mbeaulieu/courses/internal/model"
	"github.com/mbeaulieu/courses/internal/notify"
	"github.com/mbeaulieu/courses/internal/store"
	"github.com/mbeaulieu/courses/internal/suggest"
)

// Session is one authenticated login. It holds which list the user is
// viewing and their notification feed; all item mutations flow
// through it so the access check cannot be skipped.
type Session struct {
	reg       *Registry
	feed      *notify.Feed
	token     string
	createdAt time.Time

	mu      sync.Mutex
	user    model.User
	viewing string // owner of the list currently displayed
}

func (s *Session) Token() string { return s.token }

func (s *Session) User() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) Viewing() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewing
}

// deliver routes a mutation event into this session's feed.
func (s *Session) deliver(ev notify.Event) {
	s.mu.Lock()
	viewerID, viewingID := s.user.ID, s.viewing
	s.mu.Unlock()
	s.feed.Record(ev, viewerID, viewingID)
}

// SetViewing switches the displayed list. Any authenticated user may
// view any non-admin user's list; only the mutation paths are gated.
func (s *Session) SetViewing(ctx context.Context, ownerID string) error {
	if ownerID == s.User().ID {
		s.mu.Lock()
		s.viewing = ownerID
		s.mu.Unlock()
		return nil
	}

	users, err := s.reg.Gateway().Users(ctx)
	if err != nil {
		return err
	}
	if !access.IsViewableOwner(users, ownerID) {
		return validationErr("Liste introuvable")
	}

	s.mu.Lock()
	s.viewing = ownerID
	s.mu.Unlock()
	return nil
}

// ItemInput carries the mutable fields of an item through add and
// edit operations.
type ItemInput struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Weight      string   `json:"weight"`
	Store       string   `json:"store"`
	Remarks     string   `json:"remarks"`
}

func (s *Session) validateInput(ctx context.Context, in *ItemInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return validationErr("Le nom de l'article est requis")
	}
	if in.Category == "" {
		return validationErr("La catégorie est requise")
	}

	custom, err := s.reg.Gateway().Categories(ctx)
	if err != nil {
		return err
	}
	if !model.CategoryExists(in.Category, custom) {
		return validationErr("Catégorie inconnue")
	}
	return nil
}

// AddItem creates an item on the list currently being viewed. The
// item is attributed to that list's owner, not to the acting user.
func (s *Session) AddItem(ctx context.Context, in ItemInput) (*model.ShoppingItem, error) {
	s.mu.Lock()
	actor, owner := s.user, s.viewing
	s.mu.Unlock()

	if !access.CanModify(actor, owner) {
		return nil, access.ErrForbidden
	}
	if err := s.validateInput(ctx, &in); err != nil {
		return nil, err
	}

	item, err := s.reg.Gateway().InsertItem(ctx, &model.ShoppingItem{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Weight:      in.Weight,
		Store:       in.Store,
		Remarks:     in.Remarks,
		Completed:   false,
		UserID:      owner,
	})
	if err != nil {
		return nil, err
	}

	s.recordHistory(ctx, actor.ID, *item)
	s.publishMutation(model.MutationAdd, item.Name, actor, owner)
	return item, nil
}

// UpdateItem edits an existing item wherever it lives; the access
// check runs against the owning list.
func (s *Session) UpdateItem(ctx context.Context, id string, in ItemInput) (*model.ShoppingItem, error) {
	actor := s.User()

	existing, err := s.reg.Gateway().ItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanModify(actor, existing.UserID) {
		return nil, access.ErrForbidden
	}
	if err := s.validateInput(ctx, &in); err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Category = in.Category
	existing.Description = in.Description
	existing.Price = in.Price
	existing.Weight = in.Weight
	existing.Store = in.Store
	existing.Remarks = in.Remarks

	item, err := s.reg.Gateway().UpdateItem(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.recordHistory(ctx, actor.ID, *item)
	s.publishMutation(model.MutationEdit, item.Name, actor, item.UserID)
	return item, nil
}

// ToggleItem flips the completion flag. Toggling twice restores the
// original value.
func (s *Session) ToggleItem(ctx context.Context, id string) (*model.ShoppingItem, error) {
	actor := s.User()

	existing, err := s.reg.Gateway().ItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanModify(actor, existing.UserID) {
		return nil, access.ErrForbidden
	}

	item, err := s.reg.Gateway().SetItemCompleted(ctx, id, !existing.Completed)
	if err != nil {
		return nil, err
	}

	s.publishMutation(model.MutationToggle, item.Name, actor, item.UserID)
	return item, nil
}

// DeleteItem removes an item. A missing item is a no-op.
func (s *Session) DeleteItem(ctx context.Context, id string) error {
	actor := s.User()

	existing, err := s.reg.Gateway().ItemByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !access.CanModify(actor, existing.UserID) {
		return access.ErrForbidden
	}

	if err := s.reg.Gateway().DeleteItem(ctx, id); err != nil {
		return err
	}

	s.publishMutation(model.MutationDelete, existing.Name, actor, existing.UserID)
	return nil
}

// recordHistory feeds the suggestion index after a successful add or
// edit. History belongs to the acting user, only exists in persistent
// mode, and a failure here never rolls back the item write.
func (s *Session) recordHistory(ctx context.Context, actorID string, item model.ShoppingItem) {
	if s.reg.Mode() != store.ModePersistent {
		return
	}
	if err := suggest.Record(ctx, s.reg.Gateway(), actorID, item); err != nil {
		s.reg.log.Error("record product history", "user", actorID, "item", item.Name, "error", err)
	}
}

func (s *Session) publishMutation(t model.MutationType, itemName string, actor model.User, ownerID string) {
	s.reg.publish(notify.Event{
		Type:      t,
		ItemName:  itemName,
		ActorID:   actor.ID,
		ActorName: actor.Username,
		OwnerID:   ownerID,
		At:        time.Now().UTC(),
	})
}

// ListView is the fully derived state the list screen renders.
type ListView struct {
	Viewing         string               `json:"viewing"`
	GroupByCategory bool                 `json:"group_by_category"`
	Search          string               `json:"search,omitempty"`
	CanModify       bool                 `json:"can_modify"`
	Groups          []aggregate.Group    `json:"groups"`
	Stats           aggregate.Summary    `json:"stats"`
	Notifications   []model.Notification `json:"notifications"`
}

// View recomputes the derived list view. A transient load failure is
// logged and yields an empty view for this load only; it never flips
// the storage mode.
func (s *Session) View(ctx context.Context, searchTerm string) *ListView {
	s.mu.Lock()
	user, viewing := s.user, s.viewing
	s.mu.Unlock()

	items, err := s.reg.Gateway().Items(ctx)
	if err != nil {
		s.reg.log.Error("load items", "error", err)
		items = nil
	}

	grouped := false
	settings, err := s.reg.Gateway().Settings(ctx, user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.reg.log.Error("load settings", "error", err)
	}
	if settings != nil {
		grouped = settings.GroupByCategory
	}

	owned := aggregate.OwnerItems(items, viewing)
	filtered := aggregate.FilterByName(owned, searchTerm)

	return &ListView{
		Viewing:         viewing,
		GroupByCategory: grouped,
		Search:          searchTerm,
		CanModify:       access.CanModify(user, viewing),
		Groups:          aggregate.GroupItems(filtered, grouped),
		Stats:           aggregate.Stats(owned),
		Notifications:   s.feed.List(),
	}
}

// Suggestions ranks the acting user's product history against a
// partial name. Ephemeral mode keeps no history, so it returns
// nothing there.
func (s *Session) Suggestions(ctx context.Context, query string) ([]model.ProductHistory, error) {
	if s.reg.Mode() != store.ModePersistent {
		return nil, nil
	}
	history, err := s.reg.Gateway().History(ctx, s.User().ID)
	if err != nil {
		return nil, err
	}
	return suggest.Lookup(history, query), nil
}

// GroupByCategory returns the stored display preference, defaulting
// to false.
func (s *Session) GroupByCategory(ctx context.Context) bool {
	settings, err := s.reg.Gateway().Settings(ctx, s.User().ID)
	if err != nil {
		return false
	}
	return settings.GroupByCategory
}

// SetGroupByCategory upserts the display preference.
func (s *Session) SetGroupByCategory(ctx context.Context, grouped bool) error {
	return s.reg.Gateway().UpsertSettings(ctx, s.User().ID, grouped)
}

// CreateCategory adds a custom category. The name must not collide
// with a built-in or an existing custom category (exact match).
func (s *Session) CreateCategory(ctx context.Context, name string) (*model.CustomCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("Le nom de la catégorie est requis")
	}
	if model.IsBuiltinCategory(name) {
		return nil, validationErr("Cette catégorie existe déjà")
	}

	c, err := s.reg.Gateway().InsertCategory(ctx, name)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, validationErr("Cette catégorie existe déjà")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ChangePassword verifies the current password and the new-password
// policy before writing anything. The stored value is hashed.
func (s *Session) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	user := s.User()

	if !auth.VerifyPassword(user.Password, current) {
		return validationErr("Mot de passe actuel incorrect")
	}
	if newPassword != confirm {
		return validationErr("Les nouveaux mots de passe ne correspondent pas")
	}
	if len(newPassword) < 6 {
		return validationErr("Le mot de passe doit contenir au moins 6 caractères")
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.reg.Gateway().UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}

	s.mu.Lock()
	s.user.Password = hashed
	s.mu.Unlock()
	return nil
}

// ResetPassword sets another user's password directly. Admin only; no
// current-password check.
func (s *Session) ResetPassword(ctx context.Context, targetID, newPassword string) error {
	if !s.User().IsAdmin {
		return access.ErrForbidden
	}
	if targetID == "" || newPassword == "" {
		return validationErr("Utilisateur et nouveau mot de passe requis")
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.reg.Gateway().UpdatePassword(ctx, targetID, hashed)
}

// Notifications returns the session's feed, newest first.
func (s *Session) Notifications() []model.Notification {
	return s.feed.List()
}

// ClearNotifications empties the feed.
func (s *Session) ClearNotifications() {
	s.feed.Clear()
}
