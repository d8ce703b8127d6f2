// Package sync implementa la reconciliación de catálogo contra el POS externo:
// upserts idempotentes de secciones, ingredientes y proveedores, con registro
// de frescura por tipo de entidad y tolerancia a fallos parciales.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/infrastructure/poster"
)

// Reconciler reconcilia el catálogo local con el POS. Las llamadas HTTP al POS
// ocurren siempre fuera del contexto de tenant: una lectura remota lenta no
// debe retener una conexión del pool.
type Reconciler struct {
	runner         repository.TenantRunner
	pos            poster.API
	log            zerolog.Logger
	perTypeTimeout time.Duration
	staleAfter     time.Duration
}

// NewReconciler construye el reconciliador. perTypeTimeout acota cada tipo de
// entidad (cero usa 30s); staleAfter es el umbral de frescura (cero usa 24h).
func NewReconciler(runner repository.TenantRunner, pos poster.API, log zerolog.Logger, perTypeTimeout, staleAfter time.Duration) *Reconciler {
	if perTypeTimeout <= 0 {
		perTypeTimeout = 30 * time.Second
	}
	if staleAfter <= 0 {
		staleAfter = 24 * time.Hour
	}
	return &Reconciler{runner: runner, pos: pos, log: log, perTypeTimeout: perTypeTimeout, staleAfter: staleAfter}
}

// ReconcileAll reconcilia todos los tipos de entidad en orden (las secciones
// primero: los ingredientes dependen de sus almacenes). El fallo de un tipo se
// reporta y no aborta los demás.
func (rc *Reconciler) ReconcileAll(ctx context.Context, restaurantID string) (*dto.SyncSummaryResponse, error) {
	summary := &dto.SyncSummaryResponse{}
	for _, entityType := range entity.SyncEntityTypes {
		res, err := rc.Reconcile(ctx, restaurantID, entityType)
		if err != nil {
			return nil, err
		}
		summary.Results = append(summary.Results, res)
	}
	return summary, nil
}

// Reconcile reconcilia un solo tipo de entidad. Un fallo de lectura del POS se
// reporta en el campo Error del resultado (fallo parcial), no como error de la
// operación; los errores de persistencia o de contexto de tenant sí son fatales.
func (rc *Reconciler) Reconcile(ctx context.Context, restaurantID, entityType string) (dto.SyncResultResponse, error) {
	res := dto.SyncResultResponse{EntityType: entityType}
	if !entity.ValidSyncEntity(entityType) {
		return res, fmt.Errorf("%w: tipo de entidad desconocido %q", domain.ErrInvalidInput, entityType)
	}
	creds, err := rc.credentials(ctx, restaurantID)
	if err != nil {
		return res, err
	}

	callCtx, cancel := context.WithTimeout(ctx, rc.perTypeTimeout)
	defer cancel()

	switch entityType {
	case entity.SyncEntitySections:
		err = rc.syncSections(callCtx, restaurantID, creds, &res)
	case entity.SyncEntityIngredients:
		err = rc.syncIngredients(callCtx, restaurantID, creds, &res)
	case entity.SyncEntitySuppliers:
		err = rc.syncSuppliers(callCtx, restaurantID, creds, &res)
	}
	if err != nil {
		return res, err
	}
	if res.Error != "" {
		rc.log.Warn().Str("restaurant_id", restaurantID).Str("entity_type", entityType).Str("error", res.Error).
			Msg("reconciliación con fallo parcial")
		return res, nil
	}

	// Un diff vacío exitoso también reinicia el staleness.
	now := time.Now()
	err = rc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		return r.SyncStatus.Touch(entityType, now)
	})
	if err != nil {
		return res, err
	}
	rc.log.Info().Str("restaurant_id", restaurantID).Str("entity_type", entityType).
		Int("created", res.Created).Int("updated", res.Updated).Msg("reconciliación completada")
	return res, nil
}

// Status devuelve la frescura de cada tipo de entidad. Un tipo nunca
// sincronizado aparece sin timestamp y siempre stale.
func (rc *Reconciler) Status(ctx context.Context, restaurantID string) ([]dto.SyncStatusResponse, error) {
	var statuses []*entity.SyncStatus
	err := rc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		l, err := r.SyncStatus.List()
		if err != nil {
			return err
		}
		statuses = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	byType := make(map[string]*entity.SyncStatus, len(statuses))
	for _, s := range statuses {
		byType[s.EntityType] = s
	}
	now := time.Now()
	out := make([]dto.SyncStatusResponse, 0, len(entity.SyncEntityTypes))
	for _, entityType := range entity.SyncEntityTypes {
		s := byType[entityType]
		resp := dto.SyncStatusResponse{EntityType: entityType, Stale: s.NeedsSync(rc.staleAfter, now)}
		if s != nil {
			ts := s.LastSyncedAt
			resp.LastSyncedAt = &ts
		}
		out = append(out, resp)
	}
	return out, nil
}

// credentials carga las credenciales Poster del restaurante.
func (rc *Reconciler) credentials(ctx context.Context, restaurantID string) (poster.Credentials, error) {
	var creds poster.Credentials
	err := rc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		rest, err := r.Restaurant.Get()
		if err != nil {
			return err
		}
		if rest == nil || rest.PosterToken == "" {
			return fmt.Errorf("%w: restaurante sin cuenta Poster vinculada", domain.ErrInvalidInput)
		}
		creds = poster.Credentials{Account: rest.PosterAccount, Token: rest.PosterToken}
		return nil
	})
	return creds, err
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (rc *Reconciler) syncSections(ctx context.Context, restaurantID string, creds poster.Credentials, res *dto.SyncResultResponse) error {
	storages, err := rc.pos.Storages(ctx, creds)
	if err != nil {
		res.Error = err.Error()
		return nil
	}
	return rc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		now := time.Now()
		for _, st := range storages {
			storageID := st.ID.Int64()
			existing, err := r.Sections.GetByPosterStorageID(storageID)
			if err != nil {
				return err
			}
			if existing == nil {
				section := &entity.Section{
					ID:              uuid.New().String(),
					RestaurantID:    restaurantID,
					Name:            st.Name,
					PosterStorageID: &storageID,
					IsActive:        true,
					CreatedAt:       now,
					UpdatedAt:       now,
				}
				if err := r.Sections.Create(section); err != nil {
					return err
				}
				res.Created++
				continue
			}
			// Una sección presente upstream se reactiva aunque un operador la
			// haya desactivado: el POS es la fuente de verdad del catálogo.
			if existing.Name != st.Name || !existing.IsActive {
				existing.Name = st.Name
				existing.IsActive = true
				existing.UpdatedAt = now
				if err := r.Sections.Update(existing); err != nil {
					return err
				}
				res.Updated++
			}
		}
		return nil
	})
}

// ── Ingredientes ──────────────────────────────────────────────────────────────

func (rc *Reconciler) syncIngredients(ctx context.Context, restaurantID string, creds poster.Credentials, res *dto.SyncResultResponse) error {
	// Fase 1: secciones vinculadas, con la conexión devuelta antes de salir a la red.
	var linked []*entity.Section
	err := rc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		l, err := r.Sections.ListLinked()
		if err != nil {
			return err
		}
		linked = l
		return nil
	})
	if err != nil {
		return err
	}
	if len(linked) == 0 {
		return nil
	}

	// Fase 2: lecturas remotas. El catálogo es imprescindible; el stock de cada
	// almacén es independiente y su fallo solo excluye esa sección.
	catalog, err := rc.pos.Ingredients(ctx, creds)
	if err != nil {
		res.Error = err.Error()
		return nil
	}
	byID := make(map[int64]poster.Ingredient, len(catalog))
	for _, ing := range catalog {
		byID[ing.ID.Int64()] = ing
	}

	type sectionPlan struct {
		section     *entity.Section
		ingredients []poster.Ingredient
	}
	var plans []sectionPlan
	for _, section := range linked {
		leftovers, err := rc.pos.StorageLeftovers(ctx, creds, *section.PosterStorageID)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("sección %q: stock no disponible: %v", section.Name, err))
			continue
		}
		plan := sectionPlan{section: section}
		if len(leftovers) == 0 {
			// Almacén vacío = todavía no poblado: se siembra el catálogo completo.
			plan.ingredients = catalog
		} else {
			// Almacén con stock: solo lo que de verdad se rastrea ahí.
			for _, stock := range leftovers {
				ing, ok := byID[stock.IngredientID.Int64()]
				if !ok {
					res.Warnings = append(res.Warnings, fmt.Sprintf("sección %q: ingrediente %d en stock pero no en catálogo", section.Name, stock.IngredientID.Int64()))
					continue
				}
				plan.ingredients = append(plan.ingredients, ing)
			}
		}
		plans = append(plans, plan)
	}

	// Fase 3: upserts.
	return rc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		now := time.Now()
		for _, plan := range plans {
			for _, ing := range plan.ingredients {
				ingredientID := ing.ID.Int64()
				existing, err := r.Products.GetByPosterIngredientID(plan.section.ID, ingredientID)
				if err != nil {
					return err
				}
				if existing == nil {
					product := &entity.Product{
						ID:                 uuid.New().String(),
						RestaurantID:       restaurantID,
						SectionID:          plan.section.ID,
						Name:               ing.Name,
						Unit:               ing.Unit,
						Category:           ing.Category,
						PosterIngredientID: &ingredientID,
						IsActive:           true,
						CreatedAt:          now,
						UpdatedAt:          now,
					}
					if err := r.Products.Create(product); err != nil {
						return err
					}
					res.Created++
					continue
				}
				if existing.Name != ing.Name || existing.Unit != ing.Unit || existing.Category != ing.Category {
					existing.Name = ing.Name
					existing.Unit = ing.Unit
					existing.Category = ing.Category
					existing.UpdatedAt = now
					if err := r.Products.Update(existing); err != nil {
						return err
					}
					res.Updated++
				}
			}
		}
		return nil
	})
}

// ── Proveedores ───────────────────────────────────────────────────────────────

func (rc *Reconciler) syncSuppliers(ctx context.Context, restaurantID string, creds poster.Credentials, res *dto.SyncResultResponse) error {
	suppliers, err := rc.pos.Suppliers(ctx, creds)
	if err != nil {
		res.Error = err.Error()
		return nil
	}
	return rc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		now := time.Now()
		for _, sup := range suppliers {
			supplierID := sup.ID.Int64()
			existing, err := r.Suppliers.GetByPosterSupplierID(supplierID)
			if err != nil {
				return err
			}
			if existing == nil {
				// Un proveedor creado a mano con el mismo nombre se adopta en
				// vez de duplicarse.
				existing, err = r.Suppliers.GetByName(sup.Name)
				if err != nil {
					return err
				}
			}
			if existing == nil {
				supplier := &entity.Supplier{
					ID:               uuid.New().String(),
					RestaurantID:     restaurantID,
					Name:             sup.Name,
					Phone:            sup.Phone,
					PosterSupplierID: &supplierID,
					IsActive:         true,
					CreatedAt:        now,
					UpdatedAt:        now,
				}
				if err := r.Suppliers.Create(supplier); err != nil {
					return err
				}
				res.Created++
				continue
			}
			if existing.PosterSupplierID == nil || *existing.PosterSupplierID != supplierID ||
				existing.Name != sup.Name || existing.Phone != sup.Phone {
				existing.Name = sup.Name
				existing.Phone = sup.Phone
				existing.PosterSupplierID = &supplierID
				existing.UpdatedAt = now
				if err := r.Suppliers.Update(existing); err != nil {
					return err
				}
				res.Updated++
			}
		}
		return nil
	})
}
