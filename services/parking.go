package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"smartpark/database"
	"smartpark/models"
)

// Administrative CRUD over the document-store entities: estacionamientos,
// áreas and espacios. Name searches are prefix ranges, the equivalent of
// the admin screens' search boxes.

// --- Estacionamientos ---

func CreateParkingLot(lot *models.ParkingLot) error {
	if err := database.DB.Create(lot).Error; err != nil {
		log.Printf("Failed to create parking lot: %v", err)
		return fmt.Errorf("failed to create parking lot: %w", err)
	}
	log.Printf("Created parking lot %d (%s)", lot.LotID, lot.Nombre)
	return nil
}

func GetParkingLots(nombrePrefix string) ([]models.ParkingLot, error) {
	var lots []models.ParkingLot
	query := database.DB.Order("lot_id")
	if nombrePrefix != "" {
		query = query.Where("nombre LIKE ?", nombrePrefix+"%")
	}
	if err := query.Find(&lots).Error; err != nil {
		log.Printf("Failed to query parking lots: %v", err)
		return nil, fmt.Errorf("failed to query parking lots: %w", err)
	}
	return lots, nil
}

func GetParkingLotByID(id int) (*models.ParkingLot, error) {
	var lot models.ParkingLot
	if err := database.DB.First(&lot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: estacionamiento %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get parking lot %d: %w", id, err)
	}
	return &lot, nil
}

func UpdateParkingLot(id int, req models.UpdateParkingLotRequest) (*models.ParkingLot, error) {
	lot, err := GetParkingLotByID(id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		lot.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		lot.Direccion = *req.Direccion
	}
	if err := database.DB.Save(lot).Error; err != nil {
		log.Printf("Failed to update parking lot %d: %v", id, err)
		return nil, fmt.Errorf("failed to update parking lot %d: %w", id, err)
	}
	return lot, nil
}

// DeleteParkingLot refuses while areas still reference the lot.
func DeleteParkingLot(id int) error {
	var count int64
	if err := database.DB.Model(&models.Area{}).Where("lot_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check areas for lot %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: el estacionamiento %d todavía tiene áreas asociadas", ErrValidation, id)
	}
	result := database.DB.Delete(&models.ParkingLot{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete parking lot %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: estacionamiento %d", ErrNotFound, id)
	}
	log.Printf("Deleted parking lot %d", id)
	return nil
}

// --- Áreas ---

func CreateArea(area *models.Area) error {
	if _, err := GetParkingLotByID(area.LotID); err != nil {
		return err
	}
	if err := database.DB.Create(area).Error; err != nil {
		log.Printf("Failed to create area: %v", err)
		return fmt.Errorf("failed to create area: %w", err)
	}
	log.Printf("Created area %d (%s) in lot %d", area.AreaID, area.Nombre, area.LotID)
	return nil
}

func GetAreas(lotID int, nombrePrefix string) ([]models.Area, error) {
	var areas []models.Area
	query := database.DB.Order("area_id")
	if lotID > 0 {
		query = query.Where("lot_id = ?", lotID)
	}
	if nombrePrefix != "" {
		query = query.Where("nombre LIKE ?", nombrePrefix+"%")
	}
	if err := query.Find(&areas).Error; err != nil {
		log.Printf("Failed to query areas: %v", err)
		return nil, fmt.Errorf("failed to query areas: %w", err)
	}
	return areas, nil
}

func UpdateArea(id int, req models.UpdateAreaRequest) (*models.Area, error) {
	var area models.Area
	if err := database.DB.First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: área %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get area %d: %w", id, err)
	}
	if req.LotID != nil {
		if _, err := GetParkingLotByID(*req.LotID); err != nil {
			return nil, err
		}
		area.LotID = *req.LotID
	}
	if req.Nombre != nil {
		area.Nombre = *req.Nombre
	}
	if err := database.DB.Save(&area).Error; err != nil {
		log.Printf("Failed to update area %d: %v", id, err)
		return nil, fmt.Errorf("failed to update area %d: %w", id, err)
	}
	return &area, nil
}

// DeleteArea refuses while spaces still reference the area.
func DeleteArea(id int) error {
	var count int64
	if err := database.DB.Model(&models.Space{}).Where("area_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check spaces for area %d: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: el área %d todavía tiene espacios asociados", ErrValidation, id)
	}
	result := database.DB.Delete(&models.Area{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete area %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: área %d", ErrNotFound, id)
	}
	log.Printf("Deleted area %d", id)
	return nil
}

// --- Espacios ---

func CreateSpace(space *models.Space) error {
	var area models.Area
	if err := database.DB.First(&area, space.AreaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: área %d", ErrNotFound, space.AreaID)
		}
		return fmt.Errorf("failed to check area %d: %w", space.AreaID, err)
	}
	if space.Estado == "" {
		space.Estado = models.SpaceLibre
	}
	if err := database.DB.Create(space).Error; err != nil {
		log.Printf("Failed to create space: %v", err)
		return fmt.Errorf("failed to create space: %w", err)
	}
	log.Printf("Created space %d (#%d) in area %d", space.SpaceID, space.Numero, space.AreaID)
	return nil
}

func GetSpaces(areaID int) ([]models.Space, error) {
	var spaces []models.Space
	query := database.DB.Order("space_id")
	if areaID > 0 {
		query = query.Where("area_id = ?", areaID)
	}
	if err := query.Find(&spaces).Error; err != nil {
		log.Printf("Failed to query spaces: %v", err)
		return nil, fmt.Errorf("failed to query spaces: %w", err)
	}
	return spaces, nil
}

func UpdateSpace(id int, req models.UpdateSpaceRequest) (*models.Space, error) {
	var space models.Space
	if err := database.DB.First(&space, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: espacio %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get space %d: %w", id, err)
	}
	if req.AreaID != nil {
		var area models.Area
		if err := database.DB.First(&area, *req.AreaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: área %d", ErrNotFound, *req.AreaID)
			}
			return nil, fmt.Errorf("failed to check area %d: %w", *req.AreaID, err)
		}
		space.AreaID = *req.AreaID
	}
	if req.Numero != nil {
		space.Numero = *req.Numero
	}
	if req.Estado != nil {
		space.Estado = *req.Estado
	}
	if err := database.DB.Save(&space).Error; err != nil {
		log.Printf("Failed to update space %d: %v", id, err)
		return nil, fmt.Errorf("failed to update space %d: %w", id, err)
	}
	return &space, nil
}

func DeleteSpace(id int) error {
	result := database.DB.Delete(&models.Space{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete space %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: espacio %d", ErrNotFound, id)
	}
	log.Printf("Deleted space %d", id)
	return nil
}
