package nightsale

import (
	"errors"
	"time"

	"burgerclub-backend/internal/ledger"
	"burgerclub-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrNotFound          = errors.New("sale_not_found")
	ErrInvalidTransition = errors.New("invalid_transition")
)

// Ventana del historial del cocinero: pendientes + aceptados recientes.
const CookHistoryWindow = 48 * time.Hour

// Ventana del indicador "ingresos recientes" del tablero del admin.
const IncomeStatWindow = 35 * time.Hour

// Service implementa el flujo pending -> accepted/rejected de los cortes de
// caja nocturnos. Aceptar abona al capital y borrar un corte ya aceptado
// revierte ese abono; cada par de escrituras comparte transacción.
type Service struct {
	db     *gorm.DB
	ledger *ledger.Service
}

func NewService(db *gorm.DB, ledgerSvc *ledger.Service) *Service {
	return &Service{db: db, ledger: ledgerSvc}
}

// Submit registra el corte del cocinero. Siempre nace pendiente.
func (s *Service) Submit(cookID uint, totalAmount float64, description string) (*models.NightSale, error) {
	if totalAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	sale := models.NightSale{
		CookID:      cookID,
		TotalAmount: totalAmount,
		Description: description,
		Status:      models.SaleStatusPending,
	}
	if err := s.db.Create(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// Accept marca el corte como aceptado y abona el monto al capital. El UPDATE
// condicionado sobre status evita el doble abono si dos admins coinciden.
func (s *Service) Accept(saleID uint) (*models.NightSale, error) {
	var sale models.NightSale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if sale.Status != models.SaleStatusPending {
			return ErrInvalidTransition
		}

		now := time.Now()
		res := tx.Model(&models.NightSale{}).
			Where("id = ? AND status = ?", saleID, models.SaleStatusPending).
			Updates(map[string]interface{}{
				"status":      models.SaleStatusAccepted,
				"accepted_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		sale.Status = models.SaleStatusAccepted
		sale.AcceptedAt = &now

		return s.ledger.WithTx(tx).Adjust(sale.TotalAmount)
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// Reject marca el corte como rechazado. El capital no se toca.
func (s *Service) Reject(saleID uint) error {
	res := s.db.Model(&models.NightSale{}).
		Where("id = ? AND status = ?", saleID, models.SaleStatusPending).
		Update("status", models.SaleStatusRejected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		s.db.Model(&models.NightSale{}).Where("id = ?", saleID).Count(&count)
		if count == 0 {
			return ErrNotFound
		}
		return ErrInvalidTransition
	}
	return nil
}

// Delete elimina el corte en cualquier estado. Si estaba aceptado, primero
// resta el monto del capital para que el saldo siga cuadrando con el
// historial visible.
func (s *Service) Delete(saleID uint) (*models.NightSale, error) {
	var sale models.NightSale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if sale.Status == models.SaleStatusAccepted {
			if err := s.ledger.WithTx(tx).Adjust(-sale.TotalAmount); err != nil {
				return err
			}
		}

		return tx.Delete(&models.NightSale{}, "id = ?", saleID).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// CookHistory devuelve lo que el cocinero ve de sus propios envíos: todos
// sus pendientes más los aceptados de las últimas 48 horas, lo más nuevo
// primero, máximo limit registros. Es política de pantalla, no del flujo.
func (s *Service) CookHistory(cookID uint, limit int) ([]models.NightSale, error) {
	cutoff := time.Now().Add(-CookHistoryWindow)

	var sales []models.NightSale
	err := s.db.
		Where("cook_id = ?", cookID).
		Where("status = ? OR (status = ? AND accepted_at >= ?)",
			models.SaleStatusPending, models.SaleStatusAccepted, cutoff).
		Order("created_at desc").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

// RecentIncome suma los cortes aceptados de las últimas 35 horas: el dato
// de "ingresos recientes" del tablero.
func (s *Service) RecentIncome() (float64, error) {
	cutoff := time.Now().Add(-IncomeStatWindow)

	var total float64
	err := s.db.Model(&models.NightSale{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ? AND accepted_at >= ?", models.SaleStatusAccepted, cutoff).
		Scan(&total).Error
	return total, err
}
