package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/store"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Migrate creates the relational tables: the document store plus the
// catalog and activity log.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&store.Document{},
		&models.Product{},
		&models.ActivityLog{},
	)
}

// Seed writes the default record for every table that does not exist yet
// and loads a starter catalog into an empty database. Existing data is
// never touched: table records live for the whole install.
func Seed(db *gorm.DB, st store.Store, tableCount int) error {
	ctx := context.Background()

	for n := 1; n <= tableCount; n++ {
		key := fmt.Sprintf("table_%d", n)
		_, err := st.Get(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		raw, err := json.Marshal(models.DefaultTable())
		if err != nil {
			return err
		}
		if err := st.Put(ctx, key, raw); err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	starter := []models.Product{
		{ID: "prod_1", Name: "Milanesa con papas", Price: 25000, Category: models.CategoryFood},
		{ID: "prod_2", Name: "Hamburguesa completa", Price: 20000, Category: models.CategoryFood},
		{ID: "prod_3", Name: "Empanada", Price: 5000, Category: models.CategoryFood},
		{ID: "prod_4", Name: "Pizza muzzarella", Price: 30000, Category: models.CategoryFood},
		{ID: "prod_5", Name: "Cerveza", Price: 10000, Category: models.CategoryDrink},
		{ID: "prod_6", Name: "Gaseosa", Price: 6000, Category: models.CategoryDrink},
		{ID: "prod_7", Name: "Agua mineral", Price: 4000, Category: models.CategoryDrink},
		{ID: "prod_8", Name: "Flan casero", Price: 8000, Category: models.CategoryDessert},
		{ID: "prod_9", Name: "Helado", Price: 9000, Category: models.CategoryDessert},
	}
	if err := db.Create(&starter).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded catalog with %d products", len(starter))
	return nil
}
