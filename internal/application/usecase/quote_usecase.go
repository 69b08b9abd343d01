package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

// QuoteTxRunner ejecuta una función con el repo de cotizaciones atado a una
// transacción: cabecera y líneas se persisten juntas o no se persisten.
type QuoteTxRunner interface {
	RunQuote(ctx context.Context, fn func(quoteRepo repository.QuoteRepository) error) error
}

// QuoteUseCase alta y consulta de cotizaciones. El flujo de aprobación vive en
// el paquete application/approval; aquí solo la parte CRUD.
type QuoteUseCase struct {
	txRunner       QuoteTxRunner
	quoteRepo      repository.QuoteRepository
	supplierRepo   repository.SupplierRepository
	costCenterRepo repository.CostCenterRepository
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	txRunner QuoteTxRunner,
	quoteRepo repository.QuoteRepository,
	supplierRepo repository.SupplierRepository,
	costCenterRepo repository.CostCenterRepository,
) *QuoteUseCase {
	return &QuoteUseCase{
		txRunner:       txRunner,
		quoteRepo:      quoteRepo,
		supplierRepo:   supplierRepo,
		costCenterRepo: costCenterRepo,
	}
}

// Create crea una cotización en draft. El total se calcula en el servidor a
// partir de las líneas (cantidad × precio unitario); nunca se acepta del cliente.
func (uc *QuoteUseCase) Create(ctx context.Context, clientID, requesterID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if in.Title == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Proveedor y centro de costo son opcionales; si vienen, deben ser del cliente.
	if in.SupplierID != "" {
		sup, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if sup == nil || sup.ClientID != clientID {
			return nil, domain.ErrNotFound
		}
	}
	if in.CostCenterID != "" {
		ccs, err := uc.costCenterRepo.ListByClient(clientID)
		if err != nil {
			return nil, err
		}
		found := false
		for _, cc := range ccs {
			if cc.ID == in.CostCenterID && cc.Active {
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	quote := &entity.Quote{
		ID:            uuid.New().String(),
		ClientID:      clientID,
		SupplierID:    in.SupplierID,
		CostCenterID:  in.CostCenterID,
		RequesterID:   requesterID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        entity.QuoteStatusDraft,
		ApprovalCycle: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	total := decimal.Zero
	items := make([]*entity.QuoteItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Description == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		subtotal := it.Quantity.Mul(it.UnitPrice)
		total = total.Add(subtotal)
		items = append(items, &entity.QuoteItem{
			ID:          uuid.New().String(),
			QuoteID:     quote.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    subtotal,
		})
	}
	quote.Total = total

	err := uc.txRunner.RunQuote(ctx, func(quoteRepo repository.QuoteRepository) error {
		if err := quoteRepo.Create(quote); err != nil {
			return err
		}
		for _, item := range items {
			if err := quoteRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toQuoteResponse(quote)
	resp.Items = toItemResponses(items)
	return resp, nil
}

// GetByID devuelve la cotización con sus líneas, validando pertenencia al cliente.
func (uc *QuoteUseCase) GetByID(clientID, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil || quote.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.quoteRepo.GetItemsByQuoteID(id)
	if err != nil {
		return nil, err
	}
	resp := toQuoteResponse(quote)
	resp.Items = toItemResponses(items)
	return resp, nil
}

// List lista cotizaciones del cliente con filtro opcional por estado.
func (uc *QuoteUseCase) List(clientID, status string, limit, offset int) (*dto.QuoteListResponse, error) {
	list, err := uc.quoteRepo.ListByClient(clientID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *toQuoteResponse(q))
	}
	return &dto.QuoteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
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

func toItemResponses(items []*entity.QuoteItem) []dto.QuoteItemResponse {
	out := make([]dto.QuoteItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.QuoteItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}
