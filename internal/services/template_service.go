package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/cache"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/repository"
	"github.com/rs/zerolog/log"
)

// TemplateService serves result form templates, caching reads since
// technicians fetch the same template on every submission.
type TemplateService struct {
	templateRepo *repository.TemplateRepository
	cache        cache.Cache
	ttl          time.Duration
}

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo *repository.TemplateRepository, c cache.Cache, ttl time.Duration) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		cache:        c,
		ttl:          ttl,
	}
}

// Create stores a template after checking its field definitions
func (s *TemplateService) Create(ctx context.Context, req *models.TemplateRequest) (*models.ResultTemplate, error) {
	if err := validateFields(req); err != nil {
		return nil, err
	}

	template := &models.ResultTemplate{
		Name:     req.Name,
		Category: req.Category,
		Fields:   req.Fields,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}
	s.invalidateLists(ctx)
	return template, nil
}

// Get retrieves a template, trying the cache first
func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*models.ResultTemplate, error) {
	key := cache.TemplateKey(id.String())

	if data, err := s.cache.Get(ctx, key); err == nil {
		var template models.ResultTemplate
		if err := json.Unmarshal(data, &template); err == nil {
			return &template, nil
		}
	}

	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(template); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			log.Warn().Err(err).Str("template_id", id.String()).Msg("Failed to cache template")
		}
	}
	return template, nil
}

// List retrieves templates by category, trying the cache first
func (s *TemplateService) List(ctx context.Context, category models.OrderCategory) ([]models.ResultTemplate, error) {
	key := cache.TemplateListKey(string(category))

	if data, err := s.cache.Get(ctx, key); err == nil {
		var templates []models.ResultTemplate
		if err := json.Unmarshal(data, &templates); err == nil {
			return templates, nil
		}
	}

	templates, err := s.templateRepo.List(ctx, category)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(templates); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			log.Warn().Err(err).Msg("Failed to cache template list")
		}
	}
	return templates, nil
}

// Update replaces a template and invalidates its cache entry
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, req *models.TemplateRequest) (*models.ResultTemplate, error) {
	if err := validateFields(req); err != nil {
		return nil, err
	}

	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	template.Name = req.Name
	template.Category = req.Category
	template.Fields = req.Fields
	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, cache.TemplateKey(id.String())); err != nil {
		log.Warn().Err(err).Str("template_id", id.String()).Msg("Failed to invalidate template cache")
	}
	s.invalidateLists(ctx)
	return template, nil
}

func (s *TemplateService) invalidateLists(ctx context.Context) {
	if err := s.cache.Clear(ctx, "templates:*"); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate template list cache")
	}
}

func validateFields(req *models.TemplateRequest) error {
	if req.Name == "" {
		return invalid("template name is required")
	}
	if len(req.Fields) == 0 {
		return invalid("template needs at least one field")
	}

	seen := make(map[string]bool, len(req.Fields))
	for _, f := range req.Fields {
		if f.Name == "" {
			return invalid("every field needs a name")
		}
		if seen[f.Name] {
			return invalid("duplicate field %q", f.Name)
		}
		seen[f.Name] = true

		switch f.Type {
		case models.FieldTypeNumber:
			if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
				return invalid("field %q has min greater than max", f.Name)
			}
		case models.FieldTypeSelect:
			if len(f.Options) == 0 {
				return invalid("select field %q needs options", f.Name)
			}
		case models.FieldTypeText:
		default:
			return invalid("field %q has unknown type %q", f.Name, f.Type)
		}
	}
	return nil
}
