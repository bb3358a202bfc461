package kitchen

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"burgerclub-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEmptyTitle        = errors.New("empty_title")
	ErrNoLines           = errors.New("no_lines")
	ErrNotFound          = errors.New("list_not_found")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrNotOwner          = errors.New("not_owner")
)

// Line es un renglón capturado al crear la lista.
type Line struct {
	Name           string
	Quantity       string // texto libre
	EstimatedPrice float64
}

// Service implementa el flujo pending -> approved/rejected de las listas de
// cocina. Aprobar materializa un ShoppingItem por renglón; las dos escrituras
// comparten transacción para que nunca quede una lista aprobada a medias.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Submit crea la lista. Punto de entrada único para ambos roles: si quien la
// manda es admin, sus propias compras no pasan por revisión y se aprueban y
// materializan de inmediato.
func (s *Service) Submit(actor *models.User, title string, targetDate time.Time, lines []Line) (*models.KitchenList, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	list := models.KitchenList{
		UserID:     actor.ID,
		Title:      title,
		TargetDate: targetDate,
		Status:     models.ListStatusPending,
	}
	for _, l := range lines {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return nil, ErrNoLines
		}
		qty := strings.TrimSpace(l.Quantity)
		if qty == "" {
			qty = "1"
		}
		list.Items = append(list.Items, models.KitchenListItem{
			Name:           name,
			Quantity:       qty,
			EstimatedPrice: l.EstimatedPrice,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if actor.Role == models.RoleAdmin {
			now := time.Now()
			list.Status = models.ListStatusApproved
			list.ApprovedAt = &now
		}
		if err := tx.Create(&list).Error; err != nil {
			return err
		}
		if actor.Role == models.RoleAdmin {
			return materializeLines(tx, list.Items, targetDate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Approve pasa la lista de pending a approved y materializa sus renglones
// como compras de la fecha elegida. El UPDATE condicionado sobre status
// garantiza que una segunda sesión de admin no materialice dos veces.
func (s *Service) Approve(listID uint, purchaseDate time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var list models.KitchenList
		if err := tx.Preload("Items").First(&list, listID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if list.Status != models.ListStatusPending {
			return ErrInvalidTransition
		}

		if err := materializeLines(tx, list.Items, purchaseDate); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.KitchenList{}).
			Where("id = ? AND status = ?", listID, models.ListStatusPending).
			Updates(map[string]interface{}{
				"status":      models.ListStatusApproved,
				"approved_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// otra sesión ganó la transición; deshace la materialización
			return ErrInvalidTransition
		}
		return nil
	})
}

// Reject pasa la lista de pending a rejected. Sin efectos colaterales.
func (s *Service) Reject(listID uint) error {
	res := s.db.Model(&models.KitchenList{}).
		Where("id = ? AND status = ?", listID, models.ListStatusPending).
		Update("status", models.ListStatusRejected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		s.db.Model(&models.KitchenList{}).Where("id = ?", listID).Count(&count)
		if count == 0 {
			return ErrNotFound
		}
		return ErrInvalidTransition
	}
	return nil
}

// SoftDelete oculta una lista pendiente de la vista del propio cocinero.
// Para el admin y el historial sigue existiendo.
func (s *Service) SoftDelete(listID, cookID uint) error {
	var list models.KitchenList
	if err := s.db.First(&list, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if list.UserID != cookID {
		return ErrNotOwner
	}
	if list.Status != models.ListStatusPending {
		return ErrInvalidTransition
	}
	now := time.Now()
	return s.db.Model(&list).Update("deleted_by_cook", now).Error
}

// HardDelete elimina la lista y sus renglones definitivamente (admin). Con
// materialize=true primero crea las compras, sin tocar el status: la lista
// está a punto de desaparecer de todos modos.
func (s *Service) HardDelete(listID uint, materialize bool, purchaseDate time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var list models.KitchenList
		if err := tx.Preload("Items").First(&list, listID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if materialize {
			if err := materializeLines(tx, list.Items, purchaseDate); err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.KitchenListItem{}, "kitchen_list_id = ?", listID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.KitchenList{}, "id = ?", listID).Error
	})
}

func materializeLines(tx *gorm.DB, items []models.KitchenListItem, purchaseDate time.Time) error {
	if len(items) == 0 {
		return nil
	}
	shoppingItems := make([]models.ShoppingItem, 0, len(items))
	for _, item := range items {
		shoppingItems = append(shoppingItems, models.ShoppingItem{
			Name:         fmt.Sprintf("%s (%s)", item.Name, item.Quantity),
			Price:        item.EstimatedPrice,
			IsCompleted:  false,
			PurchaseDate: purchaseDate,
		})
	}
	return tx.Create(&shoppingItems).Error
}
