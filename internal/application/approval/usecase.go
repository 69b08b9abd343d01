package approval

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/domain"
	domapproval "github.com/cotizapp/cotiz-api/internal/domain/approval"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
	"github.com/cotizapp/cotiz-api/internal/events"
)

// UseCase orquesta el flujo de aprobación de cotizaciones:
// resolución del nivel, congelamiento, decisión y auditoría.
//
// Estados: draft -> pending_approval -> {approved, rejected}.
// rejected -> draft solo vía Resubmit (nuevo ciclo, nueva resolución).
type UseCase struct {
	txRunner     TxRunner
	quoteRepo    repository.QuoteRepository
	levelRepo    repository.ApprovalLevelRepository
	decisionRepo repository.ApprovalDecisionRepository
	resolver     *domapproval.Resolver
	publisher    EventPublisher
	log          zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	quoteRepo repository.QuoteRepository,
	levelRepo repository.ApprovalLevelRepository,
	decisionRepo repository.ApprovalDecisionRepository,
	resolver *domapproval.Resolver,
	publisher EventPublisher,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		quoteRepo:    quoteRepo,
		levelRepo:    levelRepo,
		decisionRepo: decisionRepo,
		resolver:     resolver,
		publisher:    publisher,
		log:          log,
	}
}

// RequestApproval somete una cotización en draft al flujo de aprobación.
//
//   - Resuelve el nivel aplicable al total actual y lo congela en la
//     cotización (el nivel asignado no cambia aunque la configuración cambie
//     después).
//   - Si el monto está por debajo de todos los umbrales activos, la
//     cotización se aprueba automáticamente y se escribe una decisión con
//     ApproverID = system: toda cotización aprobada tiene auditoría.
//   - Si el cliente no tiene ningún nivel activo, falla con
//     ErrNoLevelsConfigured y la cotización permanece en draft.
func (uc *UseCase) RequestApproval(ctx context.Context, clientID, quoteID string) (*dto.QuoteResponse, error) {
	quote, err := uc.getClientQuote(quoteID, clientID)
	if err != nil {
		return nil, err
	}
	if quote.Status != entity.QuoteStatusDraft {
		return nil, domain.ErrInvalidQuoteState
	}

	levels, err := uc.levelRepo.ListActiveByClient(clientID)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		// Sin configuración de aprobación: error para el administrador, no se reintenta.
		return nil, domain.ErrNoLevelsConfigured
	}

	now := time.Now()
	level, ok := uc.resolver.Resolve(levels, quote.Total)
	if !ok {
		// Monto por debajo de todos los umbrales: aprobación automática con auditoría.
		return uc.autoApprove(ctx, quote, now)
	}

	moved, err := uc.quoteRepo.SetApprovalPending(quote.ID, level.ID, now)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domain.ErrInvalidQuoteState
	}

	quote.Status = entity.QuoteStatusPendingApproval
	quote.ApprovalLevelID = level.ID
	quote.UpdatedAt = now
	return toQuoteResponse(quote), nil
}

// autoApprove transiciona draft -> approved y registra la decisión del sistema
// en una sola transacción.
func (uc *UseCase) autoApprove(ctx context.Context, quote *entity.Quote, now time.Time) (*dto.QuoteResponse, error) {
	decision := &entity.ApprovalDecision{
		ID:               uuid.New().String(),
		QuoteID:          quote.ID,
		ApproverID:       entity.SystemApproverID,
		Decision:         entity.DecisionApproved,
		Comment:          "monto por debajo de todos los umbrales configurados",
		Cycle:            quote.ApprovalCycle,
		AmountAtDecision: quote.Total,
		DecidedAt:        now,
	}
	err := uc.txRunner.RunApproval(ctx, func(
		quoteRepo repository.QuoteRepository,
		decisionRepo repository.ApprovalDecisionRepository,
	) error {
		moved, err := quoteRepo.TransitionStatus(quote.ID, entity.QuoteStatusDraft, entity.QuoteStatusApproved, now)
		if err != nil {
			return err
		}
		if !moved {
			return domain.ErrInvalidQuoteState
		}
		return decisionRepo.Append(decision)
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(events.ApprovalEvent{
		QuoteID:    quote.ID,
		ClientID:   quote.ClientID,
		ApproverID: entity.SystemApproverID,
		Decision:   entity.DecisionApproved,
		Cycle:      quote.ApprovalCycle,
		OccurredAt: now.UTC(),
	})

	quote.Status = entity.QuoteStatusApproved
	quote.UpdatedAt = now
	return toQuoteResponse(quote), nil
}

// Decide registra la decisión de un aprobador sobre una cotización pendiente.
//
// Precondiciones: estado exactamente pending_approval y approverID miembro del
// nivel congelado. La transición usa un update condicional sobre el estado
// almacenado: ante dos decisiones concurrentes gana exactamente una y la otra
// recibe ErrInvalidQuoteState (conflicto, reintentable tras releer).
func (uc *UseCase) Decide(ctx context.Context, clientID, quoteID, approverID, decision, comment string) (*dto.QuoteResponse, error) {
	if decision != entity.DecisionApproved && decision != entity.DecisionRejected {
		return nil, domain.ErrInvalidInput
	}

	quote, err := uc.getClientQuote(quoteID, clientID)
	if err != nil {
		return nil, err
	}
	if quote.Status != entity.QuoteStatusPendingApproval {
		return nil, domain.ErrInvalidQuoteState
	}

	// Nivel congelado al solicitar aprobación; se consulta aunque esté inactivo.
	level, err := uc.levelRepo.GetByID(quote.ApprovalLevelID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		uc.log.Error().
			Str("quote_id", quote.ID).
			Str("level_id", quote.ApprovalLevelID).
			Msg("cotización pendiente referencia un nivel inexistente")
		return nil, domain.ErrNotFound
	}
	if !domapproval.IsAuthorizedApprover(level, approverID) {
		return nil, domain.ErrUnauthorizedApprover
	}

	now := time.Now()
	record := &entity.ApprovalDecision{
		ID:               uuid.New().String(),
		QuoteID:          quote.ID,
		LevelID:          level.ID,
		ApproverID:       approverID,
		Decision:         decision,
		Comment:          comment,
		Cycle:            quote.ApprovalCycle,
		AmountAtDecision: quote.Total,
		DecidedAt:        now,
	}

	targetStatus := entity.QuoteStatusApproved
	if decision == entity.DecisionRejected {
		targetStatus = entity.QuoteStatusRejected
	}

	err = uc.txRunner.RunApproval(ctx, func(
		quoteRepo repository.QuoteRepository,
		decisionRepo repository.ApprovalDecisionRepository,
	) error {
		moved, err := quoteRepo.TransitionStatus(quote.ID, entity.QuoteStatusPendingApproval, targetStatus, now)
		if err != nil {
			return err
		}
		if !moved {
			// Otro aprobador decidió primero: el registro de auditoría no se escribe.
			return domain.ErrInvalidQuoteState
		}
		return decisionRepo.Append(record)
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(events.ApprovalEvent{
		QuoteID:    quote.ID,
		ClientID:   quote.ClientID,
		LevelID:    level.ID,
		ApproverID: approverID,
		Decision:   decision,
		Cycle:      quote.ApprovalCycle,
		OccurredAt: now.UTC(),
	})

	quote.Status = targetStatus
	quote.UpdatedAt = now
	return toQuoteResponse(quote), nil
}

// Resubmit reabre una cotización rechazada como draft: limpia el nivel
// congelado e inicia un nuevo ciclo. La nueva solicitud de aprobación vuelve
// a resolver el nivel (el total puede haber cambiado).
func (uc *UseCase) Resubmit(ctx context.Context, clientID, quoteID string) (*dto.QuoteResponse, error) {
	quote, err := uc.getClientQuote(quoteID, clientID)
	if err != nil {
		return nil, err
	}
	if quote.Status != entity.QuoteStatusRejected {
		return nil, domain.ErrInvalidQuoteState
	}

	now := time.Now()
	moved, err := uc.quoteRepo.ReopenForResubmission(quote.ID, now)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domain.ErrInvalidQuoteState
	}

	quote.Status = entity.QuoteStatusDraft
	quote.ApprovalLevelID = ""
	quote.ApprovalCycle++
	quote.UpdatedAt = now
	return toQuoteResponse(quote), nil
}

// ListDecisions devuelve el historial de auditoría de una cotización del cliente.
func (uc *UseCase) ListDecisions(clientID, quoteID string) (*dto.DecisionListResponse, error) {
	if _, err := uc.getClientQuote(quoteID, clientID); err != nil {
		return nil, err
	}
	list, err := uc.decisionRepo.ListByQuoteID(quoteID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DecisionResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.DecisionResponse{
			ID:               d.ID,
			QuoteID:          d.QuoteID,
			LevelID:          d.LevelID,
			ApproverID:       d.ApproverID,
			Decision:         d.Decision,
			Comment:          d.Comment,
			Cycle:            d.Cycle,
			AmountAtDecision: d.AmountAtDecision,
			DecidedAt:        d.DecidedAt,
		})
	}
	return &dto.DecisionListResponse{Items: items}, nil
}

// getClientQuote obtiene la cotización validando pertenencia al tenant.
// El clientID siempre llega explícito desde el token; nunca se lee estado ambiente.
func (uc *UseCase) getClientQuote(quoteID, clientID string) (*entity.Quote, error) {
	if quoteID == "" || clientID == "" {
		return nil, domain.ErrInvalidInput
	}
	quote, err := uc.quoteRepo.GetByID(quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil || quote.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	return quote, nil
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	if q == nil {
		return nil
	}
	return &dto.QuoteResponse{
		ID:              q.ID,
		ClientID:        q.ClientID,
		SupplierID:      q.SupplierID,
		CostCenterID:    q.CostCenterID,
		RequesterID:     q.RequesterID,
		Title:           q.Title,
		Description:     q.Description,
		Total:           q.Total,
		Status:          q.Status,
		ApprovalLevelID: q.ApprovalLevelID,
		ApprovalCycle:   q.ApprovalCycle,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}
