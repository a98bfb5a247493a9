package services

import (
	"context"
	"fmt"
	"log"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"
	"invoicesflow/internal/storage/cache"
	"invoicesflow/internal/transport/dto"

	"github.com/google/uuid"
)

// The six reference entities share one service shape: list with cache
// read-through on the full collection, CRUD with invalidation on mutate.

type clientService struct {
	repo  storage.ClientRepository
	cache *cache.Cache
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo storage.ClientRepository, c *cache.Cache) ClientService {
	return &clientService{repo: repo, cache: c}
}

func (s *clientService) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Client, error) {
	items, err := s.repo.List(ctx, req)
	if err != nil {
		log.Printf("ClientService: Error listing clients: %v", err)
		return nil, fmt.Errorf("internal error listing clients: %w", err)
	}
	return items, nil
}

func (s *clientService) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	if s.cache != nil {
		var cached models.Client
		if s.cache.GetJSON(ctx, cache.IDKey("clients", id.String()), &cached) {
			return &cached, nil
		}
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "getting client by ID")
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, cache.IDKey("clients", id.String()), item)
	}
	return item, nil
}

func (s *clientService) Create(ctx context.Context, req *dto.CreateClientRequest) (*models.Client, error) {
	item, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating client")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.CollectionKey("clients"))
	}
	return item, nil
}

func (s *clientService) Update(ctx context.Context, req *dto.UpdateClientRequest) (*models.Client, error) {
	item, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "updating client")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("clients", req.ID.String()), cache.CollectionKey("clients"))
	}
	return item, nil
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "deleting client")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("clients", id.String()), cache.CollectionKey("clients"))
	}
	return nil
}

type campaignService struct {
	repo  storage.CampaignRepository
	cache *cache.Cache
}

// NewCampaignService creates a new instance of CampaignService.
func NewCampaignService(repo storage.CampaignRepository, c *cache.Cache) CampaignService {
	return &campaignService{repo: repo, cache: c}
}

func (s *campaignService) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Campaign, error) {
	items, err := s.repo.List(ctx, req)
	if err != nil {
		log.Printf("CampaignService: Error listing campaigns: %v", err)
		return nil, fmt.Errorf("internal error listing campaigns: %w", err)
	}
	return items, nil
}

func (s *campaignService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Campaign, error) {
	items, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		log.Printf("CampaignService: Error listing campaigns for client %s: %v", clientID, err)
		return nil, fmt.Errorf("internal error listing campaigns: %w", err)
	}
	return items, nil
}

func (s *campaignService) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "getting campaign by ID")
	}
	return item, nil
}

func (s *campaignService) Create(ctx context.Context, req *dto.CreateCampaignRequest) (*models.Campaign, error) {
	item, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating campaign")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.CollectionKey("campaigns"))
	}
	return item, nil
}

func (s *campaignService) Update(ctx context.Context, req *dto.UpdateCampaignRequest) (*models.Campaign, error) {
	item, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "updating campaign")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("campaigns", req.ID.String()), cache.CollectionKey("campaigns"))
	}
	return item, nil
}

func (s *campaignService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "deleting campaign")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("campaigns", id.String()), cache.CollectionKey("campaigns"))
	}
	return nil
}

type providerService struct {
	repo  storage.ProviderRepository
	cache *cache.Cache
}

// NewProviderService creates a new instance of ProviderService.
func NewProviderService(repo storage.ProviderRepository, c *cache.Cache) ProviderService {
	return &providerService{repo: repo, cache: c}
}

func (s *providerService) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Provider, error) {
	items, err := s.repo.List(ctx, req)
	if err != nil {
		log.Printf("ProviderService: Error listing providers: %v", err)
		return nil, fmt.Errorf("internal error listing providers: %w", err)
	}
	return items, nil
}

func (s *providerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Provider, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "getting provider by ID")
	}
	return item, nil
}

func (s *providerService) Create(ctx context.Context, req *dto.CreateProviderRequest) (*models.Provider, error) {
	item, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating provider")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.CollectionKey("providers"))
	}
	return item, nil
}

func (s *providerService) Update(ctx context.Context, req *dto.UpdateProviderRequest) (*models.Provider, error) {
	item, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "updating provider")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("providers", req.ID.String()), cache.CollectionKey("providers"))
	}
	return item, nil
}

func (s *providerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "deleting provider")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("providers", id.String()), cache.CollectionKey("providers"))
	}
	return nil
}

type managerService struct {
	repo  storage.ManagerRepository
	cache *cache.Cache
}

// NewManagerService creates a new instance of ManagerService.
func NewManagerService(repo storage.ManagerRepository, c *cache.Cache) ManagerService {
	return &managerService{repo: repo, cache: c}
}

func (s *managerService) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Manager, error) {
	items, err := s.repo.List(ctx, req)
	if err != nil {
		log.Printf("ManagerService: Error listing managers: %v", err)
		return nil, fmt.Errorf("internal error listing managers: %w", err)
	}
	return items, nil
}

func (s *managerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Manager, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "getting manager by ID")
	}
	return item, nil
}

func (s *managerService) Create(ctx context.Context, req *dto.CreateManagerRequest) (*models.Manager, error) {
	item, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating manager")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.CollectionKey("managers"))
	}
	return item, nil
}

func (s *managerService) Update(ctx context.Context, req *dto.UpdateManagerRequest) (*models.Manager, error) {
	item, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "updating manager")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("managers", req.ID.String()), cache.CollectionKey("managers"))
	}
	return item, nil
}

func (s *managerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "deleting manager")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("managers", id.String()), cache.CollectionKey("managers"))
	}
	return nil
}

type companyService struct {
	repo  storage.CompanyRepository
	cache *cache.Cache
}

// NewCompanyService creates a new instance of CompanyService.
func NewCompanyService(repo storage.CompanyRepository, c *cache.Cache) CompanyService {
	return &companyService{repo: repo, cache: c}
}

func (s *companyService) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.Company, error) {
	items, err := s.repo.List(ctx, req)
	if err != nil {
		log.Printf("CompanyService: Error listing companies: %v", err)
		return nil, fmt.Errorf("internal error listing companies: %w", err)
	}
	return items, nil
}

func (s *companyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "getting company by ID")
	}
	return item, nil
}

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error) {
	item, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating company")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.CollectionKey("companies"))
	}
	return item, nil
}

func (s *companyService) Update(ctx context.Context, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	item, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "updating company")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("companies", req.ID.String()), cache.CollectionKey("companies"))
	}
	return item, nil
}

func (s *companyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "deleting company")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("companies", id.String()), cache.CollectionKey("companies"))
	}
	return nil
}

type jobTypeService struct {
	repo  storage.JobTypeRepository
	cache *cache.Cache
}

// NewJobTypeService creates a new instance of JobTypeService.
func NewJobTypeService(repo storage.JobTypeRepository, c *cache.Cache) JobTypeService {
	return &jobTypeService{repo: repo, cache: c}
}

func (s *jobTypeService) List(ctx context.Context, req *dto.ListEntitiesRequest) ([]models.JobType, error) {
	items, err := s.repo.List(ctx, req)
	if err != nil {
		log.Printf("JobTypeService: Error listing job types: %v", err)
		return nil, fmt.Errorf("internal error listing job types: %w", err)
	}
	return items, nil
}

func (s *jobTypeService) GetByID(ctx context.Context, id uuid.UUID) (*models.JobType, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "getting job type by ID")
	}
	return item, nil
}

func (s *jobTypeService) Create(ctx context.Context, req *dto.CreateJobTypeRequest) (*models.JobType, error) {
	item, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating job type")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.CollectionKey("job_types"))
	}
	return item, nil
}

func (s *jobTypeService) Update(ctx context.Context, req *dto.UpdateJobTypeRequest) (*models.JobType, error) {
	item, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "updating job type")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("job_types", req.ID.String()), cache.CollectionKey("job_types"))
	}
	return item, nil
}

func (s *jobTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "deleting job type")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.IDKey("job_types", id.String()), cache.CollectionKey("job_types"))
	}
	return nil
}
