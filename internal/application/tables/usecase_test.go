package tables

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comandapos/comanda-api/internal/application/dto"
	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/internal/domain/entity"
)

type fakeTableStore struct {
	tables map[string]*entity.Table
}

func newFakeTableStore() *fakeTableStore {
	return &fakeTableStore{tables: make(map[string]*entity.Table)}
}

func (r *fakeTableStore) Create(t *entity.Table) error {
	cp := *t
	r.tables[t.ID] = &cp
	return nil
}

func (r *fakeTableStore) GetByID(id string) (*entity.Table, error) {
	t, ok := r.tables[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTableStore) ListByBusiness(businessID string, onlyActive bool) ([]*entity.Table, error) {
	var out []*entity.Table
	for _, t := range r.tables {
		if t.BusinessID != businessID || (onlyActive && !t.Active) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTableStore) Update(t *entity.Table) error {
	cp := *t
	r.tables[t.ID] = &cp
	return nil
}

func (r *fakeTableStore) SoftDelete(id string) error {
	t, ok := r.tables[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Active = false
	return nil
}

const tblBizID = "biz-1"

func newTableFixture() (*TableUseCase, *fakeTableStore) {
	store := newFakeTableStore()
	return NewTableUseCase(store), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Derivación del tipo al crear
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_TipoDerivadoDelNombre(t *testing.T) {
	cases := []struct {
		name     string
		wantType string
	}{
		{"Mesa 4", entity.TableTypeDineIn},
		{"Domicilio 1", entity.TableTypeDelivery},
		{"DOMICILIO express", entity.TableTypeDelivery},
		{"Para llevar", entity.TableTypeTakeout},
		{"Barra", entity.TableTypeDineIn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _ := newTableFixture()
			out, err := uc.Create(context.Background(), tblBizID, dto.CreateTableRequest{Name: tc.name})
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, out.Type)
		})
	}
}

func TestCreate_TipoExplicitoGanaSobreElNombre(t *testing.T) {
	uc, _ := newTableFixture()
	out, err := uc.Create(context.Background(), tblBizID, dto.CreateTableRequest{
		Name: "Domicilio 1",
		Type: entity.TableTypeDineIn,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TableTypeDineIn, out.Type, "el tipo explícito no se sobreescribe")
}

func TestCreate_TipoExplicitoInvalido_Rechazado(t *testing.T) {
	uc, _ := newTableFixture()
	_, err := uc.Create(context.Background(), tblBizID, dto.CreateTableRequest{
		Name: "Mesa 1",
		Type: "terraza",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CapacidadNegativa_Rechazada(t *testing.T) {
	uc, _ := newTableFixture()
	_, err := uc.Create(context.Background(), tblBizID, dto.CreateTableRequest{
		Name:     "Mesa 1",
		Capacity: -2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Renombrar nunca re-deriva el tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_RenombrarNoCambiaElTipo(t *testing.T) {
	uc, store := newTableFixture()
	created, err := uc.Create(context.Background(), tblBizID, dto.CreateTableRequest{Name: "Mesa 3"})
	require.NoError(t, err)
	require.Equal(t, entity.TableTypeDineIn, created.Type)

	// El nombre nuevo contiene "domicilio" pero el tipo guardado manda
	newName := "Mesa domicilio provisional"
	out, err := uc.Update(context.Background(), tblBizID, created.ID, dto.UpdateTableRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, newName, out.Name)
	assert.Equal(t, entity.TableTypeDineIn, out.Type, "renombrar no re-deriva el tipo")

	stored, _ := store.GetByID(created.ID)
	assert.Equal(t, entity.TableTypeDineIn, stored.Type)
}

func TestUpdate_TipoExplicitoSiCambia(t *testing.T) {
	uc, _ := newTableFixture()
	created, err := uc.Create(context.Background(), tblBizID, dto.CreateTableRequest{Name: "Mesa 3"})
	require.NoError(t, err)

	newType := entity.TableTypeDelivery
	out, err := uc.Update(context.Background(), tblBizID, created.ID, dto.UpdateTableRequest{Type: &newType})
	require.NoError(t, err)
	assert.Equal(t, entity.TableTypeDelivery, out.Type)
}

func TestUpdate_DeOtroNegocio_Prohibida(t *testing.T) {
	uc, _ := newTableFixture()
	created, err := uc.Create(context.Background(), tblBizID, dto.CreateTableRequest{Name: "Mesa 3"})
	require.NoError(t, err)

	name := "Mesa 3b"
	_, err = uc.Update(context.Background(), "biz-ajeno", created.ID, dto.UpdateTableRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_EsBorradoLogico(t *testing.T) {
	uc, store := newTableFixture()
	created, err := uc.Create(context.Background(), tblBizID, dto.CreateTableRequest{Name: "Mesa 9"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), tblBizID, created.ID))

	stored, _ := store.GetByID(created.ID)
	require.NotNil(t, stored, "las comandas históricas siguen referenciando la mesa")
	assert.False(t, stored.Active)

	list, err := uc.List(context.Background(), tblBizID)
	require.NoError(t, err)
	assert.Empty(t, list, "el listado solo trae activas")
}
