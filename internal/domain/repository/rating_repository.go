package repository

import "github.com/cotizapp/cotiz-api/internal/domain/entity"

// RatingRepository define el puerto de persistencia para calificaciones de proveedores.
type RatingRepository interface {
	Create(rating *entity.Rating) error
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.Rating, error)
	// AverageBySupplier devuelve el promedio de score y la cantidad de calificaciones.
	AverageBySupplier(supplierID string) (avg float64, count int, err error)
}
