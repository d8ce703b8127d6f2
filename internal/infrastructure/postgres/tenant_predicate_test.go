package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/order"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
)

// recordingQuerier captura el SQL de cada llamada sin tocar una base real.
// Las lecturas devuelven "sin filas" para que los repos terminen limpio.
type recordingQuerier struct {
	sqls []string
}

func (r *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.sqls = append(r.sqls, sql)
	return pgconn.CommandTag{}, nil
}

func (r *recordingQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	r.sqls = append(r.sqls, sql)
	return nil, errors.New("sin filas")
}

func (r *recordingQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	r.sqls = append(r.sqls, sql)
	return noRow{}
}

type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

// Toda consulta sobre tablas de restaurante debe llevar el predicado de tenant
// además de la política RLS. Un repo que lo olvide quedaría expuesto si la
// política se deshabilita por error, así que se verifica estructuralmente.
func TestRepositoriosTenant_TodaConsultaLlevaPredicadoDeTenant(t *testing.T) {
	posterID := int64(7)
	supplierID := "sup-1"

	cases := []struct {
		name string
		run  func(q Querier)
	}{
		{"sections", func(q Querier) {
			r := NewSectionRepository(q)
			_ = r.Create(&entity.Section{ID: "s1", Name: "Cocina"})
			_, _ = r.GetByID("s1")
			_, _ = r.GetByName("Cocina")
			_, _ = r.GetByPosterStorageID(posterID)
			_, _ = r.List(10, 0)
			_, _ = r.ListLinked()
			_ = r.Update(&entity.Section{ID: "s1", Name: "Cocina"})
			_ = r.Deactivate("s1")
		}},
		{"suppliers", func(q Querier) {
			r := NewSupplierRepository(q)
			_ = r.Create(&entity.Supplier{ID: "p1", Name: "Molinos SA"})
			_, _ = r.GetByID("p1")
			_, _ = r.GetByPosterSupplierID(posterID)
			_, _ = r.GetByName("Molinos SA")
			_, _ = r.List(10, 0)
			_ = r.Update(&entity.Supplier{ID: "p1", Name: "Molinos SA"})
			_ = r.Deactivate("p1")
		}},
		{"products", func(q Querier) {
			r := NewProductRepository(q)
			_ = r.Create(&entity.Product{ID: "pr1", SectionID: "s1", Name: "Harina", Unit: "kg", SupplierID: &supplierID})
			_, _ = r.GetByID("pr1")
			_, _ = r.GetByPosterIngredientID("s1", posterID)
			_, _ = r.ListBySection("s1", 10, 0)
			_, _ = r.List(10, 0)
			_ = r.Update(&entity.Product{ID: "pr1", SectionID: "s1", Name: "Harina", Unit: "kg"})
			_ = r.Deactivate("pr1")
		}},
		{"orders", func(q Querier) {
			r := NewOrderRepository(q)
			_ = r.Create(&order.Order{ID: "o1", Status: order.StatusPending})
			_, _ = r.GetByID("o1")
			_, _ = r.List(repository.OrderFilter{Statuses: []order.Status{order.StatusPending}, Limit: 5})
			_ = r.Update(&order.Order{ID: "o1", Status: order.StatusSent})
		}},
		{"section_assignments", func(q Querier) {
			r := NewSectionAssignmentRepository(q)
			_ = r.Upsert(&entity.SectionAssignment{UserID: "u1", SectionID: "s1", CanSendOrders: true})
			_, _ = r.ListByUser("u1")
			_, _ = r.ListBySection("s1")
			_ = r.Delete("u1", "s1")
		}},
		{"sync_status", func(q Querier) {
			r := NewSyncStatusRepository(q)
			_, _ = r.Get(entity.SyncEntitySections)
			_, _ = r.List()
			_ = r.Touch(entity.SyncEntitySections, time.Now())
		}},
		{"restaurant (vista tenant)", func(q Querier) {
			r := NewRestaurantRepository(q)
			_, _ = r.Get()
			_ = r.Update(&entity.Restaurant{ID: "r1", Name: "Demo"})
			_ = r.Deactivate()
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recordingQuerier{}
			tc.run(rec)

			require.NotEmpty(t, rec.sqls, "el caso debe ejecutar al menos una consulta")
			for _, sql := range rec.sqls {
				assert.Truef(t, strings.Contains(sql, tenantID),
					"consulta sin predicado de tenant:\n%s", sql)
			}
		})
	}
}

// Las consultas globales (autenticación y vinculación) son las únicas sin
// predicado: corren antes de conocer el tenant.
func TestConsultasGlobales_NoLlevanPredicadoDeTenant(t *testing.T) {
	rec := &recordingQuerier{}

	users := NewUserRepository(rec)
	_, _ = users.FindByEmail("ana@example.com")

	dir := NewRestaurantDirectory(rec)
	_, _ = dir.GetByID("r1")
	_, _ = dir.GetByPosterAccount("demo-account")

	require.NotEmpty(t, rec.sqls)
	for _, sql := range rec.sqls {
		assert.Falsef(t, strings.Contains(sql, tenantID),
			"consulta global con predicado de tenant:\n%s", sql)
	}
}
