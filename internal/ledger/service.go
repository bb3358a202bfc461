package ledger

import (
	"errors"

	"burgerclub-backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("capital_not_found")

// Service es el único dueño de la fila de capital. Nadie más la toca
// directamente: así el ajuste concurrente queda auditable en un solo lugar.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// WithTx devuelve un Service ligado a la transacción dada, para que los
// workflows (aceptar/eliminar un corte) muevan el capital en la misma tx.
func (s *Service) WithTx(tx *gorm.DB) *Service {
	return &Service{db: tx}
}

// Read devuelve la fila de capital; si no existe la crea con el monto
// inicial. Si llegara a haber más de una fila, la primera por id manda.
func (s *Service) Read() (*models.Capital, error) {
	var cap models.Capital
	err := s.db.Order("id asc").First(&cap).Error
	if err == nil {
		return &cap, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cap = models.Capital{Amount: models.InitialCapital}
	if err := s.db.Create(&cap).Error; err != nil {
		return nil, ErrNotFound
	}
	return &cap, nil
}

// Adjust suma delta (puede ser negativo) con un solo UPDATE atómico en el
// servidor, para no perder ajustes cuando dos sesiones mueven el capital a
// la vez.
func (s *Service) Adjust(delta float64) error {
	cap, err := s.Read()
	if err != nil {
		return err
	}
	return s.db.Model(&models.Capital{}).
		Where("id = ?", cap.ID).
		Update("amount", gorm.Expr("amount + ?", delta)).Error
}

// Set sobreescribe el monto sin condiciones (corrección manual del admin).
func (s *Service) Set(newAmount float64) (*models.Capital, error) {
	cap, err := s.Read()
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Capital{}).
		Where("id = ?", cap.ID).
		Update("amount", newAmount).Error; err != nil {
		return nil, err
	}
	cap.Amount = newAmount
	return cap, nil
}
