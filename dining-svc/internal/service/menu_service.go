package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"tableside/dining-svc/internal/domain"

	"github.com/google/uuid"
)

type MenuService struct {
	store      Store
	menu       MenuRepository
	categories CategoryRepository
	cache      MenuCache
	media      MediaStore
	clock      Clock
	logger     *slog.Logger
}

func NewMenuService(repos Repositories, cache MenuCache, media MediaStore, clock Clock, logger *slog.Logger) *MenuService {
	return &MenuService{
		store:      repos.Store,
		menu:       repos.Menu,
		categories: repos.Categories,
		cache:      cache,
		media:      media,
		clock:      clock,
		logger:     logger,
	}
}

// Menu returns the full menu, or the items whose name or description
// contains query, ignoring case.
func (s *MenuService) Menu(ctx context.Context, query string) ([]domain.MenuItem, error) {
	items, err := s.allItems(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items, nil
	}

	matched := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.Description), query) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (s *MenuService) allItems(ctx context.Context) ([]domain.MenuItem, error) {
	if s.cache != nil {
		items, ok, err := s.cache.GetMenu(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "menu cache read failed", "error", err)
		} else if ok {
			return items, nil
		}
	}

	items, err := s.menu.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	if items == nil {
		items = []domain.MenuItem{}
	}

	if s.cache != nil {
		if err := s.cache.SetMenu(ctx, items); err != nil {
			s.logger.WarnContext(ctx, "menu cache write failed", "error", err)
		}
	}
	return items, nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMenu(ctx); err != nil {
		s.logger.WarnContext(ctx, "menu cache invalidation failed", "error", err)
	}
}

func (s *MenuService) GetItem(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	return s.menu.GetMenuItem(ctx, id)
}

func (s *MenuService) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	if err := s.checkItem(ctx, item); err != nil {
		return err
	}

	now := s.clock.Now()
	item.ID = uuid.New()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := s.menu.CreateMenuItem(ctx, item); err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *MenuService) UpdateItem(ctx context.Context, id uuid.UUID, patch domain.MenuItemPatch) (*domain.MenuItem, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}

	var item *domain.MenuItem
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.menu.GetMenuItem(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(item)
		if err := s.checkItem(ctx, item); err != nil {
			return err
		}
		item.UpdatedAt = s.clock.Now()
		return s.menu.UpdateMenuItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *MenuService) checkItem(ctx context.Context, item *domain.MenuItem) error {
	if err := validateStruct(item); err != nil {
		return err
	}
	if item.Price.IsNegative() {
		return domain.Invalid("price must not be negative")
	}
	if item.CategoryID == uuid.Nil {
		return domain.Invalid("category_id is required")
	}
	_, err := s.categories.GetCategory(ctx, item.CategoryID)
	return err
}

// DeleteItem removes the item at once. Orders keep their own name and price
// snapshot.
func (s *MenuService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.menu.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*domain.MenuItem, error) {
	if s.media == nil {
		return nil, fmt.Errorf("%w: no media host configured", domain.ErrUpstream)
	}
	item, err := s.menu.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("menu/%s-%s%s", id, uuid.NewString()[:8], strings.ToLower(path.Ext(filename)))
	url, err := s.media.Upload(ctx, name, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("%w: upload image: %v", domain.ErrUpstream, err)
	}

	return s.storeImageURL(ctx, item, url)
}

// SetImageURL records an image the client already uploaded to the media host.
func (s *MenuService) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) (*domain.MenuItem, error) {
	if err := validateVar("image_url", imageURL, "required,url,max=2048"); err != nil {
		return nil, err
	}
	item, err := s.menu.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.storeImageURL(ctx, item, imageURL)
}

func (s *MenuService) storeImageURL(ctx context.Context, item *domain.MenuItem, url string) (*domain.MenuItem, error) {
	item.ImageURL = url
	item.UpdatedAt = s.clock.Now()
	if err := s.menu.UpdateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update menu item %s: %w", item.ID, err)
	}
	s.invalidate(ctx)
	return item, nil
}

func (s *MenuService) CreateCategory(ctx context.Context, category *domain.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if err := validateStruct(category); err != nil {
		return err
	}
	category.ID = uuid.New()
	category.CreatedAt = s.clock.Now()
	return s.categories.CreateCategory(ctx, category)
}

func (s *MenuService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

// DeleteCategory refuses while any menu item still points at the category.
func (s *MenuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.store.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.categories.GetCategory(ctx, id); err != nil {
			return err
		}
		inUse, err := s.menu.CountMenuItemsInCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("count menu items: %w", err)
		}
		if inUse > 0 {
			return fmt.Errorf("%w: %d menu items", domain.ErrCategoryInUse, inUse)
		}
		return s.categories.DeleteCategory(ctx, id)
	})
}
