// seed crea datos de demostración: un cliente, usuarios de cada rol,
// dos niveles de aprobación, proveedores y un centro de costo.
//
// Uso: go run ./cmd/seed
// Requiere las mismas variables de entorno que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/infrastructure/postgres"
	"github.com/cotizapp/cotiz-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	clientRepo := postgres.NewClientRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	levelRepo := postgres.NewApprovalLevelRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	costCenterRepo := postgres.NewCostCenterRepository(pool)

	now := time.Now()

	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      "Condominio Vista Verde",
		TaxID:     "900123456-7",
		Type:      entity.ClientTypeCondominio,
		Email:     "administracion@vistaverde.example",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := clientRepo.Create(client); err != nil {
		fail("crear cliente: %v", err)
	}
	fmt.Println("cliente:", client.ID)

	users := map[string]string{} // role -> userID
	for _, def := range []struct{ role, email, name string }{
		{entity.RoleAdmin, "admin@vistaverde.example", "Ana Admin"},
		{entity.RoleGestor, "gestor@vistaverde.example", "Gabriel Gestor"},
		{entity.RoleAprobador, "aprobador@vistaverde.example", "Alicia Aprobadora"},
		{entity.RoleSolicitante, "solicitante@vistaverde.example", "Sergio Solicitante"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte("cotiz1234"), bcrypt.DefaultCost)
		if err != nil {
			fail("hash de password: %v", err)
		}
		u := &entity.User{
			ID:           uuid.New().String(),
			ClientID:     client.ID,
			Email:        def.email,
			PasswordHash: string(hash),
			Name:         def.name,
			Role:         def.role,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(u); err != nil {
			fail("crear usuario %s: %v", def.email, err)
		}
		users[def.role] = u.ID
		fmt.Printf("usuario %s (%s): password cotiz1234\n", def.email, def.role)
	}

	for i, def := range []struct {
		name      string
		threshold string
	}{
		{"Gerencia", "1000.00"},
		{"Directorio", "5000.00"},
	} {
		threshold, _ := decimal.NewFromString(def.threshold)
		l := &entity.ApprovalLevel{
			ID:              uuid.New().String(),
			ClientID:        client.ID,
			Name:            def.name,
			OrderLevel:      i + 1,
			AmountThreshold: threshold,
			Approvers:       []string{users[entity.RoleAprobador], users[entity.RoleAdmin]},
			Active:          true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := levelRepo.Create(l); err != nil {
			fail("crear nivel %s: %v", def.name, err)
		}
		fmt.Printf("nivel %s desde %s: %s\n", def.name, def.threshold, l.ID)
	}

	for _, def := range []struct{ name, category string }{
		{"Limpieza Total SAS", "limpieza"},
		{"Jardines del Sur", "jardinería"},
		{"Electrotec Mantenimiento", "mantenimiento"},
	} {
		s := &entity.Supplier{
			ID:        uuid.New().String(),
			ClientID:  client.ID,
			Name:      def.name,
			Category:  def.category,
			Status:    "active",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := supplierRepo.Create(s); err != nil {
			fail("crear proveedor %s: %v", def.name, err)
		}
		fmt.Println("proveedor:", def.name)
	}

	cc := &entity.CostCenter{
		ID:        uuid.New().String(),
		ClientID:  client.ID,
		Code:      "MANT-01",
		Name:      "Mantenimiento general",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := costCenterRepo.Create(cc); err != nil {
		fail("crear centro de costo: %v", err)
	}
	fmt.Println("centro de costo:", cc.Code)

	fmt.Println("seed completado")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
