package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/almacen-erp/internal/application/dto"
	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// WarehouseCacheReader lee bodegas de la caché. Get devuelve (nil, nil) si la
// entrada no existe; la fuente de verdad sigue siendo el repositorio.
type WarehouseCacheReader interface {
	Get(warehouseID string) (*entity.Warehouse, error)
}

// WarehouseUseCase casos de uso CRUD para bodegas. Cada mutación despacha
// su evento para mantener la caché al día; las lecturas por ID pasan primero
// por la caché.
type WarehouseUseCase struct {
	repo       repository.WarehouseRepository
	cache      WarehouseCacheReader
	dispatcher *events.Dispatcher
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, cache WarehouseCacheReader, dispatcher *events.Dispatcher) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, cache: cache, dispatcher: dispatcher}
}

// Create crea una nueva bodega.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		ManagerID: in.ManagerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	if err := uc.dispatcher.Dispatch(ctx, events.WarehouseCreated{Warehouse: warehouse}); err != nil {
		return nil, err
	}
	return dto.ToWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID, leyendo primero la caché.
// Un error de caché no es fatal: se ignora y se consulta el repositorio.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(id); err == nil && cached != nil {
			return dto.ToWarehouseResponse(cached), nil
		}
	}
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.ManagerID != nil {
		warehouse.ManagerID = *in.ManagerID
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	if err := uc.dispatcher.Dispatch(ctx, events.WarehouseUpdated{Warehouse: warehouse}); err != nil {
		return nil, err
	}
	return dto.ToWarehouseResponse(warehouse), nil
}

// Delete elimina una bodega.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	return uc.dispatcher.Dispatch(ctx, events.WarehouseDeleted{WarehouseID: id})
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *dto.ToWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
