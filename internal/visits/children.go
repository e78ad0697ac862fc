package visits

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The replace helpers implement the wholesale replace contract for stage
// child collections: delete every existing row for the visit, then insert the
// new set. An empty or absent set is a "no change" signal and leaves existing
// rows untouched; it does NOT clear the collection.

func replaceBrandProducts(tx *gorm.DB, visitID uuid.UUID, items []BrandProductItem) error {
	if len(items) == 0 {
		return nil
	}

	if err := tx.Where("visit_id = ?", visitID).Delete(&BrandProductAssessment{}).Error; err != nil {
		return err
	}

	rows := make([]BrandProductAssessment, 0, len(items))
	for _, item := range items {
		rows = append(rows, BrandProductAssessment{
			VisitID:     visitID,
			ProductName: item.ProductName,
			Price:       item.Price,
			PromoPrice:  item.PromoPrice,
			OnPromotion: item.OnPromotion,
			ShelfShare:  item.ShelfShare,
			FacingCount: item.FacingCount,
			Notes:       item.Notes,
		})
	}
	return tx.Create(&rows).Error
}

func replaceCompetitors(tx *gorm.DB, visitID uuid.UUID, items []CompetitorItem) error {
	if len(items) == 0 {
		return nil
	}

	if err := tx.Where("visit_id = ?", visitID).Delete(&CompetitorAssessment{}).Error; err != nil {
		return err
	}

	rows := make([]CompetitorAssessment, 0, len(items))
	for _, item := range items {
		rows = append(rows, CompetitorAssessment{
			VisitID:        visitID,
			CompetitorName: item.CompetitorName,
			ProductName:    item.ProductName,
			Price:          item.Price,
			OnPromotion:    item.OnPromotion,
			ShelfShare:     item.ShelfShare,
			Notes:          item.Notes,
		})
	}
	return tx.Create(&rows).Error
}

func replacePopMaterials(tx *gorm.DB, visitID uuid.UUID, items []PopMaterialItem) error {
	if len(items) == 0 {
		return nil
	}

	if err := tx.Where("visit_id = ?", visitID).Delete(&PopMaterialCheck{}).Error; err != nil {
		return err
	}

	rows := make([]PopMaterialCheck, 0, len(items))
	for _, item := range items {
		rows = append(rows, PopMaterialCheck{
			VisitID:      visitID,
			MaterialName: item.MaterialName,
			Negotiated:   item.Negotiated,
			Present:      item.Present,
			Condition:    item.Condition,
			Notes:        item.Notes,
		})
	}
	return tx.Create(&rows).Error
}

func replaceExhibitions(tx *gorm.DB, visitID uuid.UUID, items []ExhibitionItem) error {
	if len(items) == 0 {
		return nil
	}

	if err := tx.Where("visit_id = ?", visitID).Delete(&ExhibitionCheck{}).Error; err != nil {
		return err
	}

	rows := make([]ExhibitionCheck, 0, len(items))
	for _, item := range items {
		rows = append(rows, ExhibitionCheck{
			VisitID:        visitID,
			ExhibitionType: item.ExhibitionType,
			Negotiated:     item.Negotiated,
			Present:        item.Present,
			Condition:      item.Condition,
			Notes:          item.Notes,
		})
	}
	return tx.Create(&rows).Error
}
