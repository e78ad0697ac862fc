package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// ListBrands returns the caller's tenant brands, optionally with products.
func ListBrands(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := db.DB.Where("tenant_id = ?", ac.TenantID)
	if r.URL.Query().Get("include") == "products" {
		query = query.Preload("Products")
	}

	var brands []Brand
	if err := query.Find(&brands).Error; err != nil {
		http.Error(w, "Failed to fetch brands: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(brands)
}

func CreateBrand(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var brand Brand
	if err := json.NewDecoder(r.Body).Decode(&brand); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if brand.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	brand.TenantID = ac.TenantID
	brand.Slug = Slugify(brand.Name)
	brand.Active = true

	if err := db.DB.Create(&brand).Error; err != nil {
		http.Error(w, "Failed to create brand: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(brand)
}

func UpdateBrand(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var brand Brand
	if err := db.DB.First(&brand, "id = ? AND tenant_id = ?", chi.URLParam(r, "brand_id"), ac.TenantID).Error; err != nil {
		http.Error(w, "Brand not found", http.StatusNotFound)
		return
	}

	var input struct {
		Name   *string `json:"name"`
		Active *bool   `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil && *input.Name != "" {
		updates["name"] = *input.Name
		updates["slug"] = Slugify(*input.Name)
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&brand).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update brand: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(brand)
}

func ListZones(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var zones []Zone
	if err := db.DB.Where("tenant_id = ?", ac.TenantID).Find(&zones).Error; err != nil {
		http.Error(w, "Failed to fetch zones: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(zones)
}

func CreateZone(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var zone Zone
	if err := json.NewDecoder(r.Body).Decode(&zone); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if zone.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	zone.TenantID = ac.TenantID
	zone.Slug = Slugify(zone.Name)

	if err := db.DB.Create(&zone).Error; err != nil {
		http.Error(w, "Failed to create zone: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(zone)
}

// ListClients supports ?q= case/diacritic-insensitive name search and ?zone_id=.
func ListClients(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := db.DB.Where("tenant_id = ?", ac.TenantID)
	if q := r.URL.Query().Get("q"); q != "" {
		query = query.Where("search_key LIKE ?", "%"+SearchKey(q)+"%")
	}
	if zoneID := r.URL.Query().Get("zone_id"); zoneID != "" {
		query = query.Where("zone_id = ?", zoneID)
	}

	var clients []ClientStore
	if err := query.Order("name ASC").Find(&clients).Error; err != nil {
		http.Error(w, "Failed to fetch clients: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clients)
}

func GetClient(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var client ClientStore
	if err := db.DB.First(&client, "id = ? AND tenant_id = ?", chi.URLParam(r, "client_id"), ac.TenantID).Error; err != nil {
		http.Error(w, "Client not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(client)
}

func CreateClient(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var client ClientStore
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if client.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	client.TenantID = ac.TenantID
	client.SearchKey = SearchKey(client.Name)

	if err := db.DB.Create(&client).Error; err != nil {
		http.Error(w, "Failed to create client: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(client)
}

func UpdateClient(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var client ClientStore
	if err := db.DB.First(&client, "id = ? AND tenant_id = ?", chi.URLParam(r, "client_id"), ac.TenantID).Error; err != nil {
		http.Error(w, "Client not found", http.StatusNotFound)
		return
	}

	var input ClientStore
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.Name != "" {
		client.Name = input.Name
		client.SearchKey = SearchKey(input.Name)
	}
	client.ZoneID = input.ZoneID
	if input.Channel != "" {
		client.Channel = input.Channel
	}
	if input.Address != "" {
		client.Address = input.Address
	}
	if input.Lat != nil {
		client.Lat = input.Lat
	}
	if input.Lng != nil {
		client.Lng = input.Lng
	}
	if input.ContactName != "" {
		client.ContactName = input.ContactName
	}
	if input.ContactTel != "" {
		client.ContactTel = input.ContactTel
	}

	if err := db.DB.Save(&client).Error; err != nil {
		http.Error(w, "Failed to update client: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(client)
}

// DeleteClient tombstones a client store (soft delete).
func DeleteClient(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result := db.DB.Where("id = ? AND tenant_id = ?", chi.URLParam(r, "client_id"), ac.TenantID).Delete(&ClientStore{})
	if result.Error != nil {
		http.Error(w, "Failed to delete client: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Client not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func ListProducts(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := db.DB.Where("tenant_id = ?", ac.TenantID)
	if brandID := r.URL.Query().Get("brand_id"); brandID != "" {
		query = query.Where("brand_id = ?", brandID)
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		http.Error(w, "Failed to fetch products: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func CreateProduct(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var product Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if product.Name == "" || product.SKU == "" {
		http.Error(w, "Name and SKU are required", http.StatusBadRequest)
		return
	}

	// Brand must exist inside the same tenant
	var brand Brand
	if err := db.DB.First(&brand, "id = ? AND tenant_id = ?", product.BrandID, ac.TenantID).Error; err != nil {
		http.Error(w, "Brand not found", http.StatusNotFound)
		return
	}

	product.TenantID = ac.TenantID
	if err := db.DB.Create(&product).Error; err != nil {
		http.Error(w, "Failed to create product: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

func ListCompetitors(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var competitors []Competitor
	if err := db.DB.Where("tenant_id = ?", ac.TenantID).Find(&competitors).Error; err != nil {
		http.Error(w, "Failed to fetch competitors: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(competitors)
}

func CreateCompetitor(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var competitor Competitor
	if err := json.NewDecoder(r.Body).Decode(&competitor); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if competitor.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	competitor.TenantID = ac.TenantID
	if err := db.DB.Where("tenant_id = ? AND name = ?", ac.TenantID, competitor.Name).
		First(&Competitor{}).Error; err == nil {
		http.Error(w, "Competitor already exists", http.StatusConflict)
		return
	} else if err != gorm.ErrRecordNotFound {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	if err := db.DB.Create(&competitor).Error; err != nil {
		http.Error(w, "Failed to create competitor: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(competitor)
}

func ListPopMaterials(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var materials []PopMaterialType
	if err := db.DB.Where("tenant_id = ?", ac.TenantID).Find(&materials).Error; err != nil {
		http.Error(w, "Failed to fetch POP materials: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(materials)
}

func CreatePopMaterial(w http.ResponseWriter, r *http.Request) {
	ac, ok := utils.GetAuthContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var material PopMaterialType
	if err := json.NewDecoder(r.Body).Decode(&material); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if material.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	material.TenantID = ac.TenantID
	if err := db.DB.Create(&material).Error; err != nil {
		http.Error(w, "Failed to create POP material: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(material)
}
