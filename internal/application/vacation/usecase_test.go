package vacation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vacaciones-api/internal/application/dto"
	"github.com/jhoicas/vacaciones-api/internal/application/vacation"
	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con la misma semántica condicional que el almacén real:
// los updates solo aplican si la fila sigue en pending.
// ──────────────────────────────────────────────────────────────────────────────

type fakeVacationRepo struct {
	store map[string]*entity.VacationRequest

	directListErr error
	privList      []*entity.VacationRequest
	privCalls     int
}

func newFakeVacationRepo() *fakeVacationRepo {
	return &fakeVacationRepo{store: make(map[string]*entity.VacationRequest)}
}

func (f *fakeVacationRepo) Create(_ context.Context, v *entity.VacationRequest) error {
	cp := *v
	f.store[v.ID] = &cp
	return nil
}

func (f *fakeVacationRepo) GetByID(_ context.Context, id string) (*entity.VacationRequest, error) {
	v, ok := f.store[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVacationRepo) UpdateContent(_ context.Context, v *entity.VacationRequest) error {
	cur, ok := f.store[v.ID]
	if !ok || !cur.IsPending() {
		return domain.ErrNotPending
	}
	cp := *v
	cp.Status = cur.Status
	f.store[v.ID] = &cp
	return nil
}

func (f *fakeVacationRepo) UpdateStatusIfPending(_ context.Context, id, newStatus string) error {
	cur, ok := f.store[id]
	if !ok || !cur.IsPending() {
		return domain.ErrNotPending
	}
	cur.Status = newStatus
	return nil
}

func (f *fakeVacationRepo) Delete(_ context.Context, id string) error {
	delete(f.store, id)
	return nil
}

func (f *fakeVacationRepo) ListByUser(_ context.Context, userID string) ([]*entity.VacationRequest, error) {
	if f.directListErr != nil {
		return nil, f.directListErr
	}
	var out []*entity.VacationRequest
	for _, v := range f.store {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVacationRepo) ListByUserPrivileged(_ context.Context, _ string) ([]*entity.VacationRequest, error) {
	f.privCalls++
	return f.privList, nil
}

func (f *fakeVacationRepo) ListByStatus(_ context.Context, status string) ([]*entity.VacationRequest, error) {
	var out []*entity.VacationRequest
	for _, v := range f.store {
		if v.Status == status {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVacationRepo) ListAll(context.Context) ([]*entity.VacationRequest, error) {
	var out []*entity.VacationRequest
	for _, v := range f.store {
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVacationRepo) ListApprovedBetween(_ context.Context, from, to time.Time) ([]*entity.VacationRequest, error) {
	var out []*entity.VacationRequest
	for _, v := range f.store {
		if v.Status == entity.StatusApproved && !v.DateFrom.After(to) && !v.DateTo.Before(from) {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	created   []*entity.Notification
	createErr error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(context.Context, string) ([]*entity.Notification, error) {
	return f.created, nil
}

func (f *fakeNotificationRepo) MarkRead(context.Context, string, string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var (
	owner    = vacation.Actor{UserID: "u-owner", Role: entity.RoleEmployee}
	admin    = vacation.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	stranger = vacation.Actor{UserID: "u-otro", Role: entity.RoleEmployee}
)

func buildUseCase() (*vacation.VacationUseCase, *fakeVacationRepo, *fakeNotificationRepo) {
	vr := newFakeVacationRepo()
	nr := &fakeNotificationRepo{}
	return vacation.NewVacationUseCase(vr, nr, logger.Nop()), vr, nr
}

func annualInput() dto.VacationInput {
	return dto.VacationInput{
		Type:     entity.VacationAnnual,
		DateFrom: "2024-06-10",
		DateTo:   "2024-06-14",
		Comment:  "vacaciones de verano",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NacePendienteConDiasRecalculados(t *testing.T) {
	uc, vr, _ := buildUseCase()

	v, err := uc.Create(context.Background(), owner, annualInput())

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, v.Status, "toda solicitud nace pendiente")
	assert.Equal(t, 5, v.DaysTotal, "del 10 al 14 de junio: 5 días, ambos extremos incluidos")
	assert.Equal(t, owner.UserID, v.UserID, "el dueño es el actor, no lo que diga el cuerpo")
	assert.Len(t, vr.store, 1)
}

func TestCreate_RangoInvertido_SeRechazaAntesDePersistir(t *testing.T) {
	uc, vr, _ := buildUseCase()

	in := annualInput()
	in.DateFrom = "2024-06-14"
	in.DateTo = "2024-06-10"
	_, err := uc.Create(context.Background(), owner, in)

	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	assert.Empty(t, vr.store, "un rango invertido nunca toca el almacén")
}

func TestCreate_TipoDesconocido(t *testing.T) {
	uc, _, _ := buildUseCase()

	in := annualInput()
	in.Type = "sabbatical"
	_, err := uc.Create(context.Background(), owner, in)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_FechaIlegible(t *testing.T) {
	uc, _, _ := buildUseCase()

	in := annualInput()
	in.DateFrom = "10/06/2024"
	_, err := uc.Create(context.Background(), owner, in)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_UnSoloDia(t *testing.T) {
	uc, _, _ := buildUseCase()

	in := annualInput()
	in.DateFrom = "2024-06-10"
	in.DateTo = "2024-06-10"
	v, err := uc.Create(context.Background(), owner, in)

	require.NoError(t, err)
	assert.Equal(t, 1, v.DaysTotal)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — solo el dueño, solo mientras siga pendiente
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_DuenoEditaPendiente(t *testing.T) {
	uc, _, _ := buildUseCase()
	v, err := uc.Create(context.Background(), owner, annualInput())
	require.NoError(t, err)

	in := annualInput()
	in.DateTo = "2024-06-12"
	updated, err := uc.Update(context.Background(), owner, v.ID, in)

	require.NoError(t, err)
	assert.Equal(t, 3, updated.DaysTotal, "los días se recalculan al editar")
	assert.Equal(t, entity.StatusPending, updated.Status)
}

func TestUpdate_NoDueno_Forbidden(t *testing.T) {
	uc, _, _ := buildUseCase()
	v, _ := uc.Create(context.Background(), owner, annualInput())

	_, err := uc.Update(context.Background(), stranger, v.ID, annualInput())

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_YaAprobada_NotPending(t *testing.T) {
	uc, _, _ := buildUseCase()
	v, _ := uc.Create(context.Background(), owner, annualInput())
	require.NoError(t, uc.Approve(context.Background(), admin, v.ID))

	_, err := uc.Update(context.Background(), owner, v.ID, annualInput())

	assert.ErrorIs(t, err, domain.ErrNotPending)
}

func TestUpdate_Inexistente_NotFound(t *testing.T) {
	uc, _, _ := buildUseCase()

	_, err := uc.Update(context.Background(), owner, "no-existe", annualInput())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve / Reject — solo admin, pending -> terminal, notificación al dueño
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_AdminTransicionaYNotifica(t *testing.T) {
	uc, vr, nr := buildUseCase()
	v, _ := uc.Create(context.Background(), owner, annualInput())

	require.NoError(t, uc.Approve(context.Background(), admin, v.ID))

	stored := vr.store[v.ID]
	assert.Equal(t, entity.StatusApproved, stored.Status)
	require.Len(t, nr.created, 1, "la transición emite exactamente una notificación")
	assert.Equal(t, owner.UserID, nr.created[0].UserID, "la notificación va al dueño de la solicitud")
	assert.Contains(t, nr.created[0].Message, "aprobada")
}

func TestReject_AdminTransicionaYNotifica(t *testing.T) {
	uc, vr, nr := buildUseCase()
	v, _ := uc.Create(context.Background(), owner, annualInput())

	require.NoError(t, uc.Reject(context.Background(), admin, v.ID))

	assert.Equal(t, entity.StatusRejected, vr.store[v.ID].Status)
	require.Len(t, nr.created, 1)
	assert.Contains(t, nr.created[0].Message, "rechazada")
}

func TestApprove_EmpleadoNoTransiciona(t *testing.T) {
	uc, vr, nr := buildUseCase()
	v, _ := uc.Create(context.Background(), owner, annualInput())

	err := uc.Approve(context.Background(), owner, v.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.StatusPending, vr.store[v.ID].Status, "un no-admin no mueve el estado")
	assert.Empty(t, nr.created)
}

func TestApprove_YaAprobada_NotPending(t *testing.T) {
	uc, _, nr := buildUseCase()
	v, _ := uc.Create(context.Background(), owner, annualInput())
	require.NoError(t, uc.Approve(context.Background(), admin, v.ID))

	// Segunda transición concurrente: el guard condicional la rechaza.
	err := uc.Reject(context.Background(), admin, v.ID)

	assert.ErrorIs(t, err, domain.ErrNotPending)
	assert.Len(t, nr.created, 1, "la transición perdedora no emite notificación")
}

func TestApprove_Inexistente_NotFound(t *testing.T) {
	uc, _, _ := buildUseCase()

	err := uc.Approve(context.Background(), admin, "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_NotificacionFalla_LaTransicionNoSeRevierte(t *testing.T) {
	uc, vr, nr := buildUseCase()
	nr.createErr = errors.New("tabla de notificaciones caída")
	v, _ := uc.Create(context.Background(), owner, annualInput())

	err := uc.Approve(context.Background(), admin, v.ID)

	assert.NoError(t, err, "la notificación es fire-and-forget: su fallo no revierte la aprobación")
	assert.Equal(t, entity.StatusApproved, vr.store[v.ID].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — dueño o admin, cualquier estado
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_DuenoBorraPropia(t *testing.T) {
	uc, vr, _ := buildUseCase()
	v, _ := uc.Create(context.Background(), owner, annualInput())

	require.NoError(t, uc.Delete(context.Background(), owner, v.ID))
	assert.Empty(t, vr.store)
}

func TestDelete_AdminBorraAjenaAprobada(t *testing.T) {
	uc, vr, _ := buildUseCase()
	v, _ := uc.Create(context.Background(), owner, annualInput())
	require.NoError(t, uc.Approve(context.Background(), admin, v.ID))

	require.NoError(t, uc.Delete(context.Background(), admin, v.ID),
		"approved no bloquea el borrado: el estado es terminal, el registro no")
	assert.Empty(t, vr.store)
}

func TestDelete_TerceroNoBorra(t *testing.T) {
	uc, vr, _ := buildUseCase()
	v, _ := uc.Create(context.Background(), owner, annualInput())

	err := uc.Delete(context.Background(), stranger, v.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, vr.store, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListOwn_LecturaDirectaResuelve(t *testing.T) {
	uc, vr, _ := buildUseCase()
	_, err := uc.Create(context.Background(), owner, annualInput())
	require.NoError(t, err)

	list, err := uc.ListOwn(context.Background(), owner)

	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Zero(t, vr.privCalls, "con lectura directa con datos no se usa el procedimiento privilegiado")
}

func TestListOwn_DirectaVacia_CaeAlPrivilegiado(t *testing.T) {
	uc, vr, _ := buildUseCase()
	vr.privList = []*entity.VacationRequest{{ID: "v-1", UserID: owner.UserID, Status: entity.StatusPending}}

	list, err := uc.ListOwn(context.Background(), owner)

	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, vr.privCalls)
}

func TestListOwn_DirectaFalla_CaeAlPrivilegiado(t *testing.T) {
	uc, vr, _ := buildUseCase()
	vr.directListErr = errors.New("permission denied")
	vr.privList = []*entity.VacationRequest{{ID: "v-1", UserID: owner.UserID}}

	list, err := uc.ListOwn(context.Background(), owner)

	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListPending_SoloAdmin(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.Create(context.Background(), owner, annualInput())
	require.NoError(t, err)

	_, err = uc.ListPending(context.Background(), owner)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.ListPending(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListAll_SoloAdmin(t *testing.T) {
	uc, _, _ := buildUseCase()

	_, err := uc.ListAll(context.Background(), owner)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Calendar
// ──────────────────────────────────────────────────────────────────────────────

func TestCalendar_SoloAprobadasQueTocanElRango(t *testing.T) {
	uc, _, _ := buildUseCase()
	v1, _ := uc.Create(context.Background(), owner, annualInput()) // 10..14 junio
	require.NoError(t, uc.Approve(context.Background(), admin, v1.ID))

	in := annualInput() // pendiente: no debe aparecer
	in.DateFrom = "2024-06-11"
	in.DateTo = "2024-06-12"
	_, err := uc.Create(context.Background(), stranger, in)
	require.NoError(t, err)

	from, _ := entity.ParseDate("2024-06-12")
	to, _ := entity.ParseDate("2024-06-30")
	list, err := uc.Calendar(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, list, 1, "solo la aprobada que solapa el rango")
	assert.Equal(t, v1.ID, list[0].ID)
}

func TestCalendar_RangoInvertido(t *testing.T) {
	uc, _, _ := buildUseCase()

	from, _ := entity.ParseDate("2024-06-30")
	to, _ := entity.ParseDate("2024-06-01")
	_, err := uc.Calendar(context.Background(), from, to)

	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}
