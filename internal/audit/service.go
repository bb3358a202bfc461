package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string // si viene vacío se resuelve desde la base
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb de Postgres necesita "null" literal, no cadena vacía
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	if opts.UserName == "" && opts.UserID != 0 {
		var user models.User
		if err := database.DB.First(&user, opts.UserID).Error; err == nil {
			opts.UserName = user.Name
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el audit log: %w", err)
	}

	return nil
}

// UndoLog revierte una operación registrada. Solo se soportan entidades sin
// invariantes cruzados: los cortes de caja aceptados y el capital mueven
// saldo compartido y se corrigen por sus propios flujos, no por undo.
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log no encontrado: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("esta operación ya fue revertida")
	}

	switch log.Action {
	case models.AuditActionCreate:
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("no se pudo eliminar la entidad: %w", err)
		}

	case models.AuditActionDelete:
		if err := recreateEntity(log.EntityType, log.BeforeData); err != nil {
			return fmt.Errorf("no se pudo recrear la entidad: %w", err)
		}

	default:
		return fmt.Errorf("este tipo de operación no se puede revertir")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("no se pudo actualizar el log: %w", err)
	}

	undoLog := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Revertido: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el log de reversión: %w", err)
	}

	return nil
}

func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "payroll_payment":
		return database.DB.Delete(&models.PayrollPayment{}, "id = ?", entityID).Error
	case "shopping_item":
		return database.DB.Delete(&models.ShoppingItem{}, "id = ?", entityID).Error
	case "task":
		return database.DB.Delete(&models.Task{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("tipo de entidad no reversible: %s", entityType)
	}
}

func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "payroll_payment":
		var payment models.PayrollPayment
		if err := json.Unmarshal([]byte(dataJSON), &payment); err != nil {
			return err
		}
		payment.ID = 0
		return database.DB.Create(&payment).Error

	case "shopping_item":
		var item models.ShoppingItem
		if err := json.Unmarshal([]byte(dataJSON), &item); err != nil {
			return err
		}
		item.ID = 0
		return database.DB.Create(&item).Error

	case "task":
		var task models.Task
		if err := json.Unmarshal([]byte(dataJSON), &task); err != nil {
			return err
		}
		task.ID = 0
		return database.DB.Create(&task).Error

	default:
		return fmt.Errorf("tipo de entidad no reversible: %s", entityType)
	}
}
