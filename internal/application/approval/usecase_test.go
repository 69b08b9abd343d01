package approval_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appapproval "github.com/cotizapp/cotiz-api/internal/application/approval"
	"github.com/cotizapp/cotiz-api/internal/domain"
	domapproval "github.com/cotizapp/cotiz-api/internal/domain/approval"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
	"github.com/cotizapp/cotiz-api/internal/events"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeQuoteRepo guarda cotizaciones en memoria. TransitionStatus implementa la
// misma semántica compare-and-swap que el UPDATE condicional de PostgreSQL:
// bajo mutex, la transición solo procede si el estado almacenado coincide.
type fakeQuoteRepo struct {
	mu     sync.Mutex
	quotes map[string]*entity.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[string]*entity.Quote)}
}

func (r *fakeQuoteRepo) put(q *entity.Quote) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	r.quotes[q.ID] = &cp
}

func (r *fakeQuoteRepo) Create(q *entity.Quote) error {
	r.put(q)
	return nil
}

func (r *fakeQuoteRepo) CreateItem(*entity.QuoteItem) error { return nil }

func (r *fakeQuoteRepo) GetByID(id string) (*entity.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuoteRepo) GetItemsByQuoteID(string) ([]*entity.QuoteItem, error) { return nil, nil }

func (r *fakeQuoteRepo) ListByClient(string, string, int, int) ([]*entity.Quote, error) {
	return nil, nil
}

func (r *fakeQuoteRepo) SetApprovalPending(id, levelID string, updatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok || q.Status != entity.QuoteStatusDraft {
		return false, nil
	}
	q.Status = entity.QuoteStatusPendingApproval
	q.ApprovalLevelID = levelID
	q.UpdatedAt = updatedAt
	return true, nil
}

func (r *fakeQuoteRepo) TransitionStatus(id, from, to string, updatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok || q.Status != from {
		return false, nil
	}
	q.Status = to
	q.UpdatedAt = updatedAt
	return true, nil
}

func (r *fakeQuoteRepo) ReopenForResubmission(id string, updatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok || q.Status != entity.QuoteStatusRejected {
		return false, nil
	}
	q.Status = entity.QuoteStatusDraft
	q.ApprovalLevelID = ""
	q.ApprovalCycle++
	q.UpdatedAt = updatedAt
	return true, nil
}

type fakeLevelRepo struct {
	mu     sync.Mutex
	levels map[string]*entity.ApprovalLevel
}

func newFakeLevelRepo(levels ...*entity.ApprovalLevel) *fakeLevelRepo {
	r := &fakeLevelRepo{levels: make(map[string]*entity.ApprovalLevel)}
	for _, l := range levels {
		cp := *l
		r.levels[l.ID] = &cp
	}
	return r
}

func (r *fakeLevelRepo) Create(l *entity.ApprovalLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.levels[l.ID] = &cp
	return nil
}

func (r *fakeLevelRepo) GetByID(id string) (*entity.ApprovalLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.levels[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLevelRepo) ListActiveByClient(clientID string) ([]*entity.ApprovalLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ApprovalLevel
	for _, l := range r.levels {
		if l.ClientID == clientID && l.Active {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLevelRepo) ListByClient(clientID string) ([]*entity.ApprovalLevel, error) {
	return r.ListActiveByClient(clientID)
}

func (r *fakeLevelRepo) Update(l *entity.ApprovalLevel) error { return r.Create(l) }

func (r *fakeLevelRepo) Deactivate(id, clientID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.levels[id]
	if !ok || l.ClientID != clientID {
		return false, nil
	}
	l.Active = false
	return true, nil
}

func (r *fakeLevelRepo) ExistsActiveThreshold(string, decimal.Decimal, string) (bool, error) {
	return false, nil
}

type fakeDecisionRepo struct {
	mu        sync.Mutex
	decisions []*entity.ApprovalDecision
}

func (r *fakeDecisionRepo) Append(d *entity.ApprovalDecision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.decisions = append(r.decisions, &cp)
	return nil
}

func (r *fakeDecisionRepo) ListByQuoteID(quoteID string) ([]*entity.ApprovalDecision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ApprovalDecision
	for _, d := range r.decisions {
		if d.QuoteID == quoteID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directamente sobre los mismos fakes; el
// compare-and-swap del fakeQuoteRepo preserva la atomicidad que importa aquí.
type fakeTxRunner struct {
	quoteRepo    *fakeQuoteRepo
	decisionRepo *fakeDecisionRepo
}

func (r *fakeTxRunner) RunApproval(_ context.Context, fn func(
	quoteRepo repository.QuoteRepository,
	decisionRepo repository.ApprovalDecisionRepository,
) error) error {
	return fn(r.quoteRepo, r.decisionRepo)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.ApprovalEvent
}

func (p *fakePublisher) Publish(evt events.ApprovalEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

const testClientID = "client-1"

type fixture struct {
	uc        *appapproval.UseCase
	quotes    *fakeQuoteRepo
	levels    *fakeLevelRepo
	decisions *fakeDecisionRepo
	published *fakePublisher
}

func newFixture(levels ...*entity.ApprovalLevel) *fixture {
	quotes := newFakeQuoteRepo()
	levelRepo := newFakeLevelRepo(levels...)
	decisions := &fakeDecisionRepo{}
	pub := &fakePublisher{}
	uc := appapproval.NewUseCase(
		&fakeTxRunner{quoteRepo: quotes, decisionRepo: decisions},
		quotes,
		levelRepo,
		decisions,
		domapproval.NewResolver(zerolog.Nop()),
		pub,
		zerolog.Nop(),
	)
	return &fixture{uc: uc, quotes: quotes, levels: levelRepo, decisions: decisions, published: pub}
}

func testLevel(id string, threshold int64, approvers ...string) *entity.ApprovalLevel {
	return &entity.ApprovalLevel{
		ID:              id,
		ClientID:        testClientID,
		Name:            "Nivel " + id,
		AmountThreshold: decimal.NewFromInt(threshold),
		Approvers:       approvers,
		Active:          true,
		CreatedAt:       time.Now(),
	}
}

func testQuote(id string, total int64) *entity.Quote {
	now := time.Now()
	return &entity.Quote{
		ID:            id,
		ClientID:      testClientID,
		RequesterID:   "solicitante-1",
		Title:         "Mantenimiento ascensor",
		Total:         decimal.NewFromInt(total),
		Status:        entity.QuoteStatusDraft,
		ApprovalCycle: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RequestApproval
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: un nivel en 1000, cotización de 2500 -> resuelve al nivel,
// queda pending_approval con el nivel congelado.
func TestRequestApproval_ResuelveYCongelaNivel(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	f.quotes.put(testQuote("q1", 2500))

	out, err := f.uc.RequestApproval(context.Background(), testClientID, "q1")
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusPendingApproval, out.Status)
	assert.Equal(t, "l1", out.ApprovalLevelID)

	stored, _ := f.quotes.GetByID("q1")
	assert.Equal(t, entity.QuoteStatusPendingApproval, stored.Status)
	assert.Equal(t, "l1", stored.ApprovalLevelID)
	assert.Empty(t, f.published.events, "pasar a pendiente no publica evento de decisión")
}

// Escenario: cotización de 500 por debajo del único umbral (1000) ->
// aprobación automática inmediata con decisión del sistema.
func TestRequestApproval_BajoTodosLosUmbrales_AutoAprueba(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	f.quotes.put(testQuote("q1", 500))

	out, err := f.uc.RequestApproval(context.Background(), testClientID, "q1")
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusApproved, out.Status)
	assert.Empty(t, out.ApprovalLevelID, "no aplicó ningún nivel")

	recs, _ := f.decisions.ListByQuoteID("q1")
	require.Len(t, recs, 1, "la auto-aprobación también deja auditoría")
	assert.Equal(t, entity.SystemApproverID, recs[0].ApproverID)
	assert.Equal(t, entity.DecisionApproved, recs[0].Decision)
	assert.True(t, decimal.NewFromInt(500).Equal(recs[0].AmountAtDecision))

	require.Len(t, f.published.events, 1)
	assert.Equal(t, entity.SystemApproverID, f.published.events[0].ApproverID)
}

// Cliente sin ningún nivel activo: error de configuración, la cotización sigue en draft.
func TestRequestApproval_SinNivelesConfigurados(t *testing.T) {
	f := newFixture() // sin niveles
	f.quotes.put(testQuote("q1", 2500))

	_, err := f.uc.RequestApproval(context.Background(), testClientID, "q1")
	assert.ErrorIs(t, err, domain.ErrNoLevelsConfigured)

	stored, _ := f.quotes.GetByID("q1")
	assert.Equal(t, entity.QuoteStatusDraft, stored.Status)
	recs, _ := f.decisions.ListByQuoteID("q1")
	assert.Empty(t, recs)
}

// Selección por tramos: niveles en 1000 y 5000, total 4000 -> gana el de 1000.
func TestRequestApproval_SeleccionPorTramos(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"), testLevel("l2", 5000, "u2"))
	f.quotes.put(testQuote("q1", 4000))

	out, err := f.uc.RequestApproval(context.Background(), testClientID, "q1")
	require.NoError(t, err)
	assert.Equal(t, "l1", out.ApprovalLevelID)
}

func TestRequestApproval_EstadoInvalido(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	q := testQuote("q1", 2500)
	q.Status = entity.QuoteStatusApproved
	f.quotes.put(q)

	_, err := f.uc.RequestApproval(context.Background(), testClientID, "q1")
	assert.ErrorIs(t, err, domain.ErrInvalidQuoteState)
}

func TestRequestApproval_CotizacionDeOtroCliente(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	q := testQuote("q1", 2500)
	q.ClientID = "otro-cliente"
	f.quotes.put(q)

	_, err := f.uc.RequestApproval(context.Background(), testClientID, "q1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decide
// ──────────────────────────────────────────────────────────────────────────────

func pendingQuote(f *fixture, id string, total int64, levelID string) {
	q := testQuote(id, total)
	q.Status = entity.QuoteStatusPendingApproval
	q.ApprovalLevelID = levelID
	f.quotes.put(q)
}

// Escenario: aprobador autorizado aprueba -> approved + un registro de auditoría.
func TestDecide_AprobadorAutorizado(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	pendingQuote(f, "q1", 2500, "l1")

	out, err := f.uc.Decide(context.Background(), testClientID, "q1", "u1", entity.DecisionApproved, "ok")
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusApproved, out.Status)

	recs, _ := f.decisions.ListByQuoteID("q1")
	require.Len(t, recs, 1)
	assert.Equal(t, "u1", recs[0].ApproverID)
	assert.Equal(t, "l1", recs[0].LevelID)
	assert.Equal(t, "ok", recs[0].Comment)
	assert.True(t, decimal.NewFromInt(2500).Equal(recs[0].AmountAtDecision))

	require.Len(t, f.published.events, 1)
	assert.Equal(t, entity.DecisionApproved, f.published.events[0].Decision)
}

func TestDecide_Rechazo(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	pendingQuote(f, "q1", 2500, "l1")

	out, err := f.uc.Decide(context.Background(), testClientID, "q1", "u1", entity.DecisionRejected, "muy caro")
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusRejected, out.Status)
}

// Escenario: u2 no es aprobador del nivel -> UnauthorizedError, el estado no cambia
// y no se escribe auditoría.
func TestDecide_AprobadorNoAutorizado(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	pendingQuote(f, "q1", 2500, "l1")

	_, err := f.uc.Decide(context.Background(), testClientID, "q1", "u2", entity.DecisionApproved, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorizedApprover)

	stored, _ := f.quotes.GetByID("q1")
	assert.Equal(t, entity.QuoteStatusPendingApproval, stored.Status)
	recs, _ := f.decisions.ListByQuoteID("q1")
	assert.Empty(t, recs)
}

func TestDecide_DecisionInvalida(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	pendingQuote(f, "q1", 2500, "l1")

	_, err := f.uc.Decide(context.Background(), testClientID, "q1", "u1", "maybe", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecide_CotizacionYaDecidida(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	q := testQuote("q1", 2500)
	q.Status = entity.QuoteStatusApproved
	q.ApprovalLevelID = "l1"
	f.quotes.put(q)

	_, err := f.uc.Decide(context.Background(), testClientID, "q1", "u1", entity.DecisionApproved, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuoteState)
}

// Asignación congelada: desactivar o re-configurar el nivel después de la
// resolución no cambia el nivel asignado ni quita autoridad a sus miembros.
func TestDecide_NivelCongeladoSobreviveCambiosDeConfiguracion(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	pendingQuote(f, "q1", 2500, "l1")

	// El administrador desactiva el nivel mientras la cotización está pendiente.
	_, err := f.levels.Deactivate("l1", testClientID)
	require.NoError(t, err)

	out, err := f.uc.Decide(context.Background(), testClientID, "q1", "u1", entity.DecisionApproved, "")
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusApproved, out.Status)

	stored, _ := f.quotes.GetByID("q1")
	assert.Equal(t, "l1", stored.ApprovalLevelID, "el nivel congelado no cambia")
}

// Carrera de decisión: dos aprobadores deciden a la vez sobre la misma
// cotización pendiente. Exactamente uno gana; el otro observa
// ErrInvalidQuoteState y el estado final corresponde al ganador.
func TestDecide_CarreraGanaExactamenteUno(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1", "u2"))
	pendingQuote(f, "q1", 2500, "l1")

	type result struct {
		decision string
		err      error
	}
	results := make(chan result, 2)

	var wg sync.WaitGroup
	start := make(chan struct{})
	decide := func(approver, decision string) {
		defer wg.Done()
		<-start
		_, err := f.uc.Decide(context.Background(), testClientID, "q1", approver, decision, "")
		results <- result{decision: decision, err: err}
	}
	wg.Add(2)
	go decide("u1", entity.DecisionApproved)
	go decide("u2", entity.DecisionRejected)
	close(start)
	wg.Wait()
	close(results)

	var winners, losers []result
	for r := range results {
		if r.err == nil {
			winners = append(winners, r)
		} else {
			assert.ErrorIs(t, r.err, domain.ErrInvalidQuoteState)
			losers = append(losers, r)
		}
	}
	require.Len(t, winners, 1, "exactamente una decisión debe ganar")
	require.Len(t, losers, 1)

	wantStatus := entity.QuoteStatusApproved
	if winners[0].decision == entity.DecisionRejected {
		wantStatus = entity.QuoteStatusRejected
	}
	stored, _ := f.quotes.GetByID("q1")
	assert.Equal(t, wantStatus, stored.Status, "el estado final es el del ganador")

	recs, _ := f.decisions.ListByQuoteID("q1")
	assert.Len(t, recs, 1, "solo el ganador deja registro de auditoría")
	assert.Len(t, f.published.events, 1, "solo el ganador publica evento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Resubmit y completitud de auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestResubmit_ReabreCicloNuevo(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	q := testQuote("q1", 2500)
	q.Status = entity.QuoteStatusRejected
	q.ApprovalLevelID = "l1"
	f.quotes.put(q)

	out, err := f.uc.Resubmit(context.Background(), testClientID, "q1")
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusDraft, out.Status)
	assert.Empty(t, out.ApprovalLevelID, "el nivel congelado se limpia para el nuevo ciclo")
	assert.Equal(t, 2, out.ApprovalCycle)
}

func TestResubmit_SoloDesdeRechazada(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	f.quotes.put(testQuote("q1", 2500)) // draft

	_, err := f.uc.Resubmit(context.Background(), testClientID, "q1")
	assert.ErrorIs(t, err, domain.ErrInvalidQuoteState)
}

// Completitud de auditoría: ciclo completo rechazo -> reenvío -> aprobación
// deja un registro por decisión, cada uno con su ciclo y monto del momento.
func TestAuditoria_CicloCompleto(t *testing.T) {
	f := newFixture(testLevel("l1", 1000, "u1"))
	f.quotes.put(testQuote("q1", 2500))
	ctx := context.Background()

	_, err := f.uc.RequestApproval(ctx, testClientID, "q1")
	require.NoError(t, err)
	_, err = f.uc.Decide(ctx, testClientID, "q1", "u1", entity.DecisionRejected, "ajustar alcance")
	require.NoError(t, err)
	_, err = f.uc.Resubmit(ctx, testClientID, "q1")
	require.NoError(t, err)
	_, err = f.uc.RequestApproval(ctx, testClientID, "q1")
	require.NoError(t, err)
	_, err = f.uc.Decide(ctx, testClientID, "q1", "u1", entity.DecisionApproved, "")
	require.NoError(t, err)

	out, err := f.uc.ListDecisions(testClientID, "q1")
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, entity.DecisionRejected, out.Items[0].Decision)
	assert.Equal(t, 1, out.Items[0].Cycle)
	assert.Equal(t, entity.DecisionApproved, out.Items[1].Decision)
	assert.Equal(t, 2, out.Items[1].Cycle)

	stored, _ := f.quotes.GetByID("q1")
	assert.Equal(t, entity.QuoteStatusApproved, stored.Status)
}
